package compute

import (
	"math"
	"testing"

	"github.com/mdforge/nbkern/internal/box"
	"github.com/mdforge/nbkern/internal/forcefield"
	"github.com/mdforge/nbkern/internal/kernel"
	"github.com/mdforge/nbkern/internal/nblist"
)

func scene(t *testing.T, n, perturbed int) (*box.System, *nblist.List, *nblist.ShiftTable, *forcefield.Params) {
	t.Helper()
	b := box.Cube(4.0)
	sys := box.NewLattice(n, b, box.LatticeOpts{
		Charge:     0.5,
		NTypes:     1,
		NGroups:    2,
		Jitter:     0.04,
		Seed:       3,
		NPerturbed: perturbed,
	})
	list, err := box.BuildList(sys, 1.2)
	if err != nil {
		t.Fatal(err)
	}
	c6, c12 := forcefield.LJCoefs(0.34, 0.996)
	krf, crf := forcefield.RFConstants(1.2, 0)
	p := &forcefield.Params{
		Charges: sys.Charges,
		Facel:   138.935,
		Krf:     krf,
		Crf:     crf,
		Types:   sys.Types,
		NType:   1,
		C6C12:   []float32{c6, c12},
	}
	if perturbed > 0 {
		p.Pert = &forcefield.Perturbation{
			TypesB:   sys.Types,
			ChargesB: make([]float32, sys.N), // perturbed states discharge
			Lambda:   0.4,
			Alpha:    0.5,
			DefSig6:  float32(math.Pow(0.34, 6)),
		}
		copy(p.Pert.ChargesB, sys.Charges)
		for i := sys.N - perturbed; i < sys.N; i++ {
			p.Pert.ChargesB[i] = 0
		}
	}
	return sys, list, b.ShiftTable(), p
}

func assertOutsEqual(t *testing.T, got, want *kernel.Out, tol float64) {
	t.Helper()
	cmp := func(name string, g, w []float32) {
		var maxW float64
		for _, v := range w {
			if a := math.Abs(float64(v)); a > maxW {
				maxW = a
			}
		}
		if maxW == 0 {
			maxW = 1
		}
		for i := range w {
			if d := math.Abs(float64(g[i] - w[i])); d > tol*maxW {
				t.Fatalf("%s[%d]: parallel %v, serial %v", name, i, g[i], w[i])
			}
		}
	}
	cmp("F", got.F, want.F)
	cmp("FShift", got.FShift, want.FShift)
	cmp("Vnb", got.Vnb, want.Vnb)
	cmp("Vc", got.Vc, want.Vc)
	if want.VnbB != nil {
		cmp("VnbB", got.VnbB, want.VnbB)
		cmp("VcB", got.VcB, want.VcB)
	}
}

func TestParallelMatchesSerial(t *testing.T) {
	sys, list, shift, p := scene(t, 216, 0)
	f, err := kernel.Lookup(kernel.Spec{Vdw: kernel.VdwLJ, Coul: kernel.CoulRF})
	if err != nil {
		t.Fatal(err)
	}
	ngids := sys.NGroups * sys.NGroups

	serial := kernel.NewOut(sys.N, ngids, false)
	NewExecutor(1).Run(f, list, shift, sys.Pos, p, serial)

	parallel := kernel.NewOut(sys.N, ngids, false)
	NewExecutor(4).Run(f, list, shift, sys.Pos, p, parallel)

	// Merge order differs from serial accumulation order, so allow
	// float32 rounding drift.
	assertOutsEqual(t, parallel, serial, 1e-5)
}

func TestParallelPerturbed(t *testing.T) {
	sys, list, shift, p := scene(t, 216, 16)
	f, err := kernel.Lookup(kernel.Spec{Vdw: kernel.VdwLJ, Coul: kernel.CoulRF, Perturbed: true})
	if err != nil {
		t.Fatal(err)
	}
	ngids := sys.NGroups * sys.NGroups

	serial := kernel.NewOut(sys.N, ngids, true)
	NewExecutor(1).Run(f, list, shift, sys.Pos, p, serial)

	parallel := kernel.NewOut(sys.N, ngids, true)
	NewExecutor(8).Run(f, list, shift, sys.Pos, p, parallel)

	assertOutsEqual(t, parallel, serial, 1e-5)
}

func TestRunAccumulatesIntoExistingOut(t *testing.T) {
	sys, list, shift, p := scene(t, 216, 0)
	f, err := kernel.Lookup(kernel.Spec{Vdw: kernel.VdwLJ, Coul: kernel.CoulRF})
	if err != nil {
		t.Fatal(err)
	}
	ngids := sys.NGroups * sys.NGroups

	once := kernel.NewOut(sys.N, ngids, false)
	NewExecutor(4).Run(f, list, shift, sys.Pos, p, once)

	twice := kernel.NewOut(sys.N, ngids, false)
	NewExecutor(4).Run(f, list, shift, sys.Pos, p, twice)
	NewExecutor(4).Run(f, list, shift, sys.Pos, p, twice)

	for g := range once.Vc {
		want := 2 * float64(once.Vc[g])
		if got := float64(twice.Vc[g]); math.Abs(got-want) > 1e-4*math.Abs(want) {
			t.Errorf("Vc[%d] after two runs = %v, want %v", g, got, want)
		}
	}
}
