package kernel

import (
	"math"
	"testing"

	"github.com/mdforge/nbkern/internal/forcefield"
	"github.com/mdforge/nbkern/internal/nblist"
)

// fepScene: four particles, the last two perturbed. State B swaps the
// perturbed particles to a softened type and removes their charge.
func fepScene() (pos []float32, list *nblist.List, p *forcefield.Params) {
	pos = []float32{
		0, 0, 0,
		0.4, 0, 0,
		0, 0.45, 0,
		0.4, 0.45, 0,
	}

	var b nblist.Builder
	b.Begin(0, nblist.CentralShift, 0)
	b.Add(1)
	b.AddPerturbed(2)
	b.AddPerturbed(3)
	b.Begin(1, nblist.CentralShift, 0)
	b.AddPerturbed(2)
	b.AddPerturbed(3)
	b.Begin(2, nblist.CentralShift, 0)
	b.AddPerturbed(3)
	list, err := b.Build()
	if err != nil {
		panic(err)
	}

	c6, c12 := forcefield.LJCoefs(0.34, 0.996)
	coefs := forcefield.PairTable(2, func(ti, tj int) (float32, float32) {
		s := float32(1)
		if ti == 1 {
			s *= 0.5
		}
		if tj == 1 {
			s *= 0.5
		}
		return c6 * s, c12 * s
	})
	p = &forcefield.Params{
		Charges: []float32{0.5, -0.5, 0.5, -0.5},
		Facel:   facel,
		Types:   []int32{0, 0, 0, 0},
		NType:   2,
		C6C12:   coefs,
		Pert: &forcefield.Perturbation{
			TypesB:   []int32{0, 0, 1, 1},
			ChargesB: []float32{0.5, -0.5, 0, 0},
			Lambda:   0,
			Alpha:    0.5,
			DefSig6:  float32(math.Pow(0.34, 6)),
		},
	}
	return pos, list, p
}

// plainParams builds the non-perturbed parameter set of one end state.
func plainParams(p *forcefield.Params, stateB bool) *forcefield.Params {
	q := *p
	q.Pert = nil
	if stateB {
		q.Charges = p.Pert.ChargesB
		q.Types = p.Pert.TypesB
	}
	return &q
}

func runPair(t *testing.T, s Spec, list *nblist.List, pos []float32, p *forcefield.Params) *Out {
	t.Helper()
	f := mustLookup(t, s)
	out := NewOut(len(pos)/3, 1, s.Perturbed)
	f(list, openShift(), pos, p, out)
	return out
}

func TestPerturbedEndpointA(t *testing.T) {
	pos, list, p := fepScene()
	p.Pert.Lambda = 0

	fep := runPair(t, Spec{VdwLJ, CoulPlain, true}, list, pos, p)
	ref := runPair(t, Spec{VdwLJ, CoulPlain, false}, list, pos, plainParams(p, false))

	assertForcesMatch(t, fep.F, ref.F, 1e-4)
	if rel(float64(fep.Vc[0]), float64(ref.Vc[0])) > 1e-4 {
		t.Errorf("state-A Vc = %v, plain %v", fep.Vc[0], ref.Vc[0])
	}
	if rel(float64(fep.Vnb[0]), float64(ref.Vnb[0])) > 1e-4 {
		t.Errorf("state-A Vnb = %v, plain %v", fep.Vnb[0], ref.Vnb[0])
	}
}

func TestPerturbedEndpointB(t *testing.T) {
	pos, list, p := fepScene()
	p.Pert.Lambda = 1

	fep := runPair(t, Spec{VdwLJ, CoulPlain, true}, list, pos, p)
	ref := runPair(t, Spec{VdwLJ, CoulPlain, false}, list, pos, plainParams(p, true))

	assertForcesMatch(t, fep.F, ref.F, 1e-4)
	if rel(float64(fep.VcB[0]), float64(ref.Vc[0])) > 1e-4 {
		t.Errorf("state-B Vc = %v, plain %v", fep.VcB[0], ref.Vc[0])
	}
	if rel(float64(fep.VnbB[0]), float64(ref.Vnb[0])) > 1e-4 {
		t.Errorf("state-B Vnb = %v, plain %v", fep.VnbB[0], ref.Vnb[0])
	}
}

func TestPerturbedListWithoutExtentsMatchesPlain(t *testing.T) {
	// A perturbed kernel over a list with no perturbed entries is the
	// plain state-A computation at any lambda.
	pos := []float32{0, 0, 0, 0.4, 0, 0}
	var b nblist.Builder
	b.Begin(0, nblist.CentralShift, 0)
	b.Add(1)
	list, err := b.Build()
	if err != nil {
		t.Fatal(err)
	}

	_, _, p := fepScene()
	p.Charges = []float32{0.5, -0.5}
	p.Types = []int32{0, 0}
	p.Pert.ChargesB = []float32{0.5, -0.5}
	p.Pert.TypesB = []int32{0, 0}
	p.Pert.Lambda = 0.37

	fep := runPair(t, Spec{VdwLJ, CoulPlain, true}, list, pos, p)
	ref := runPair(t, Spec{VdwLJ, CoulPlain, false}, list, pos, plainParams(p, false))

	assertForcesMatch(t, fep.F, ref.F, 1e-4)
	if rel(float64(fep.Vnb[0]), float64(ref.Vnb[0])) > 1e-4 {
		t.Errorf("Vnb = %v, plain %v", fep.Vnb[0], ref.Vnb[0])
	}
	if rel(float64(fep.VnbB[0]), float64(ref.Vnb[0])) > 1e-4 {
		t.Errorf("state-B Vnb = %v, plain %v", fep.VnbB[0], ref.Vnb[0])
	}
}

func TestSoftCoreBoundsOverlappingPair(t *testing.T) {
	// A nearly coincident perturbed pair: the soft-core path must stay
	// finite while the plain path blows up.
	pos := []float32{0, 0, 0, 0.02, 0, 0}
	var b nblist.Builder
	b.Begin(0, nblist.CentralShift, 0)
	b.AddPerturbed(1)
	list, err := b.Build()
	if err != nil {
		t.Fatal(err)
	}

	_, _, p := fepScene()
	p.Charges = []float32{0.5, -0.5}
	p.Types = []int32{0, 0}
	p.Pert.ChargesB = []float32{0, 0}
	p.Pert.TypesB = []int32{1, 1}
	p.Pert.Lambda = 0.5

	fep := runPair(t, Spec{VdwLJ, CoulPlain, true}, list, pos, p)

	for i, v := range fep.F {
		if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			t.Fatalf("force component %d is %v", i, v)
		}
	}
	// With alpha*sigma^6 dominating r^6, the effective distance is near
	// alpha^(1/6)*sigma, so the force is on the scale of an ordinary
	// contact pair, not a r^-13 singularity.
	ref := runPair(t, Spec{VdwLJ, CoulPlain, false}, list, pos, plainParams(p, false))
	if math.Abs(float64(fep.F[0])) >= math.Abs(float64(ref.F[0])) {
		t.Errorf("soft-core force %v not reduced below plain %v", fep.F[0], ref.F[0])
	}
}

func TestPerturbedActionReaction(t *testing.T) {
	pos, list, p := fepScene()
	p.Pert.Lambda = 0.5

	fep := runPair(t, Spec{VdwLJ, CoulPlain, true}, list, pos, p)

	for c := 0; c < 3; c++ {
		var sum, scale float64
		for i := 0; i < 4; i++ {
			sum += float64(fep.F[i*3+c])
			scale += math.Abs(float64(fep.F[i*3+c]))
		}
		if scale > 0 && math.Abs(sum) > 1e-4*scale {
			t.Errorf("net force component %d = %v", c, sum)
		}
	}
}

func assertForcesMatch(t *testing.T, got, want []float32, tol float64) {
	t.Helper()
	var maxW float64
	for _, w := range want {
		if a := math.Abs(float64(w)); a > maxW {
			maxW = a
		}
	}
	if maxW == 0 {
		maxW = 1
	}
	for i := range want {
		if d := math.Abs(float64(got[i] - want[i])); d > tol*maxW {
			t.Fatalf("force %d: got %v, want %v", i, got[i], want[i])
		}
	}
}
