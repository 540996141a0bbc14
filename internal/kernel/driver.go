package kernel

import (
	"github.com/chewxy/math32"

	"github.com/mdforge/nbkern/internal/forcefield"
	"github.com/mdforge/nbkern/internal/nblist"
)

// run is the non-perturbed inner loop, instantiated once per term
// combination. Per i-record it resolves the shift once, accumulates the
// i-forces locally and flushes them in one write per record, which both
// cuts write traffic and keeps action-reaction symmetry exact under
// rounding: the j side sees the same pair force values the i side summed.
//
// Shift forces follow the closure convention: the record's force sum goes
// to its shift code and its negation to the central code, so FShift sums
// to zero over all codes and the central entry (zero shift vector) never
// moves the virial.
func run[C coulTerm, V vdwTerm](coul C, vdw V, list *nblist.List, shift *nblist.ShiftTable, pos []float32, p *forcefield.Params, out *Out) {
	f := out.F
	nt2 := 2 * int(p.NType)

	for k := 0; k < list.Len(); k++ {
		rec := list.Record(k)
		sx, sy, sz := shift.Vec(rec.Shift)
		i3 := rec.I * 3
		ix := pos[i3] + sx
		iy := pos[i3+1] + sy
		iz := pos[i3+2] + sz

		var iq float32
		if coul.coulEnabled() {
			iq = p.Facel * p.Charges[rec.I]
		}
		var ti int
		if vdw.vdwEnabled() {
			ti = nt2 * int(p.Types[rec.I])
		}

		var fix, fiy, fiz float32
		var vc, vnb float32

		for _, j := range list.J(k) {
			j3 := j * 3
			dx := ix - pos[j3]
			dy := iy - pos[j3+1]
			dz := iz - pos[j3+2]
			rsq := dx*dx + dy*dy + dz*dz
			rinv := 1 / math32.Sqrt(rsq)

			var fscal float32
			if coul.coulEnabled() {
				fs, v := coul.eval(iq*p.Charges[j], rsq, rinv)
				fscal += fs
				vc += v
			}
			if vdw.vdwEnabled() {
				tj := ti + 2*int(p.Types[j])
				fs, v := vdw.eval(p.C6C12[tj], p.C6C12[tj+1], rsq, rinv)
				fscal += fs
				vnb += v
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

		out.Vc[rec.Gid] += vc
		out.Vnb[rec.Gid] += vnb
	}
}
