package analysis

import (
	"math"
	"testing"

	"github.com/mdforge/nbkern/internal/box"
)

func TestComputeRDFIdealGas(t *testing.T) {
	// A dense jittered lattice approximates uniform density beyond the
	// first shell, so g(r) there must hover around 1.
	b := box.Cube(6.0)
	sys := box.NewLattice(1000, b, box.LatticeOpts{Jitter: 0.25, Seed: 5})

	rdf, err := ComputeRDF(sys, 2.5, 50)
	if err != nil {
		t.Fatal(err)
	}

	var sum float64
	var n int
	for k := range rdf.Bins {
		if rdf.R(k) < 1.0 {
			continue // structured region
		}
		sum += rdf.Bins[k]
		n++
	}
	if n == 0 {
		t.Fatal("no long-range bins")
	}
	if mean := sum / float64(n); math.Abs(mean-1) > 0.1 {
		t.Errorf("long-range g(r) mean = %v, want ~1", mean)
	}
}

func TestComputeRDFExcludedCore(t *testing.T) {
	b := box.Cube(6.0)
	sys := box.NewLattice(512, b, box.LatticeOpts{Jitter: 0.02, Seed: 5})

	rdf, err := ComputeRDF(sys, 2.0, 40)
	if err != nil {
		t.Fatal(err)
	}
	// Lattice spacing is 0.75, so bins well below it are empty.
	for k := 0; k < len(rdf.Bins); k++ {
		if rdf.R(k) < 0.5 && rdf.Bins[k] != 0 {
			t.Errorf("g(%v) = %v inside the excluded core", rdf.R(k), rdf.Bins[k])
		}
	}
}

func TestComputeRDFErrors(t *testing.T) {
	b := box.Cube(2.0)
	sys := box.NewLattice(8, b, box.LatticeOpts{Seed: 1})
	if _, err := ComputeRDF(sys, 1.5, 10); err == nil {
		t.Error("expected minimum-image violation")
	}
	if _, err := ComputeRDF(sys, 0.9, 0); err == nil {
		t.Error("expected error for zero bins")
	}
}
