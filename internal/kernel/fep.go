package kernel

import (
	"github.com/chewxy/math32"

	"github.com/mdforge/nbkern/internal/forcefield"
	"github.com/mdforge/nbkern/internal/nblist"
)

// runPerturbed is the free-energy inner loop. Each record's j-range splits
// into a leading unperturbed block, which takes the plain state-A path, and
// a trailing perturbed block, which evaluates both end states at soft-core
// regularized distances and blends the forces by (1-lambda) and lambda.
//
// Soft-core: for end state s with complementary coupling ls (lambda for A,
// 1-lambda for B), rs^6 = r^6 + alpha*ls*sigma_s^6. Terms are evaluated at
// rs and chain-ruled back with drs/dr = r^5/rs^5, so the force-over-distance
// scale picks up r^4/rs^4. As a pair is grown in or annihilated the
// regularized distance stays bounded away from zero, which is what removes
// the force singularity at the vanishing end state.
//
// Energies are not blended: state A accumulates into Vnb/Vc, state B into
// VnbB/VcB, and unperturbed pairs (identical in both states) into both.
func runPerturbed[C coulTerm, V vdwTerm](coul C, vdw V, list *nblist.List, shift *nblist.ShiftTable, pos []float32, p *forcefield.Params, out *Out) {
	f := out.F
	nt2 := 2 * int(p.NType)
	pert := p.Pert

	lam := pert.Lambda
	wA, wB := 1-lam, lam
	alphaA := pert.Alpha * lam
	alphaB := pert.Alpha * (1 - lam)

	for k := 0; k < list.Len(); k++ {
		rec := list.Record(k)
		sx, sy, sz := shift.Vec(rec.Shift)
		i3 := rec.I * 3
		ix := pos[i3] + sx
		iy := pos[i3+1] + sy
		iz := pos[i3+2] + sz

		var iqA, iqB float32
		if coul.coulEnabled() {
			iqA = p.Facel * p.Charges[rec.I]
			iqB = p.Facel * pert.ChargesB[rec.I]
		}
		var tiA, tiB int
		if vdw.vdwEnabled() {
			tiA = nt2 * int(p.Types[rec.I])
			tiB = nt2 * int(pert.TypesB[rec.I])
		}

		js := list.J(k)
		nsplit := len(js) - int(rec.NPerturbed)

		var fix, fiy, fiz float32
		var vcA, vcB, vnbA, vnbB float32

		for idx, j := range js {
			j3 := j * 3
			dx := ix - pos[j3]
			dy := iy - pos[j3+1]
			dz := iz - pos[j3+2]
			rsq := dx*dx + dy*dy + dz*dz
			rinv := 1 / math32.Sqrt(rsq)

			var fscal float32
			if idx < nsplit {
				// Unperturbed pair: plain state-A path, counted in
				// both end states.
				if coul.coulEnabled() {
					fs, v := coul.eval(iqA*p.Charges[j], rsq, rinv)
					fscal += fs
					vcA += v
					vcB += v
				}
				if vdw.vdwEnabled() {
					tj := tiA + 2*int(p.Types[j])
					fs, v := vdw.eval(p.C6C12[tj], p.C6C12[tj+1], rsq, rinv)
					fscal += fs
					vnbA += v
					vnbB += v
				}
			} else {
				r4 := rsq * rsq
				r6 := r4 * rsq

				var qq, c6, c12 float32
				if coul.coulEnabled() {
					qq = iqA * p.Charges[j]
				}
				if vdw.vdwEnabled() {
					tj := tiA + 2*int(p.Types[j])
					c6, c12 = p.C6C12[tj], p.C6C12[tj+1]
				}
				fs, vc, vnb := evalState(coul, vdw, qq, c6, c12, r4, r6, alphaA, pert.DefSig6)
				fscal += wA * fs
				vcA += vc
				vnbA += vnb

				if coul.coulEnabled() {
					qq = iqB * pert.ChargesB[j]
				}
				if vdw.vdwEnabled() {
					tj := tiB + 2*int(pert.TypesB[j])
					c6, c12 = p.C6C12[tj], p.C6C12[tj+1]
				}
				fs, vc, vnb = evalState(coul, vdw, qq, c6, c12, r4, r6, alphaB, pert.DefSig6)
				fscal += wB * fs
				vcB += vc
				vnbB += vnb
			}

			fx := fscal * dx
			fy := fscal * dy
			fz := fscal * dz
			fix += fx
			fiy += fy
			fiz += fz
			f[j3] -= fx
			f[j3+1] -= fy
			f[j3+2] -= fz
		}

		f[i3] += fix
		f[i3+1] += fiy
		f[i3+2] += fiz

		s3 := rec.Shift * 3
		out.FShift[s3] += fix
		out.FShift[s3+1] += fiy
		out.FShift[s3+2] += fiz
		const c3 = nblist.CentralShift * 3
		out.FShift[c3] -= fix
		out.FShift[c3+1] -= fiy
		out.FShift[c3+2] -= fiz

		out.Vc[rec.Gid] += vcA
		out.Vnb[rec.Gid] += vnbA
		out.VcB[rec.Gid] += vcB
		out.VnbB[rec.Gid] += vnbB
	}
}

// evalState evaluates both terms for one end state at the soft-core
// distance and returns the chain-ruled force scale and the state's
// unweighted energies.
func evalState[C coulTerm, V vdwTerm](coul C, vdw V, qq, c6, c12, r4, r6, alpha, defSig6 float32) (fscal, vc, vnb float32) {
	u := r6
	if alpha > 0 {
		u += alpha * forcefield.Sigma6(c6, c12, defSig6)
	}
	rs2 := math32.Cbrt(u)
	rinvs := 1 / math32.Sqrt(rs2)
	chain := r4 / (rs2 * rs2)

	if coul.coulEnabled() {
		fs, v := coul.eval(qq, rs2, rinvs)
		fscal += fs
		vc = v
	}
	if vdw.vdwEnabled() {
		fs, v := vdw.eval(c6, c12, rs2, rinvs)
		fscal += fs
		vnb = v
	}
	return fscal * chain, vc, vnb
}
