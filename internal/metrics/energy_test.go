package metrics

import (
	"math"
	"testing"

	"github.com/mdforge/nbkern/internal/kernel"
)

func TestPotential(t *testing.T) {
	out := kernel.NewOut(1, 2, false)
	out.Vnb[0], out.Vnb[1] = 1, 2
	out.Vc[0], out.Vc[1] = 0.5, -0.5
	if got := Potential(out); math.Abs(got-3) > 1e-6 {
		t.Errorf("Potential = %v, want 3", got)
	}
}

func TestMaxForce(t *testing.T) {
	f := []float32{
		0, 0, 1,
		3, 4, 0, // norm 5
		-2, 0, 0,
	}
	if got := MaxForce(f); math.Abs(got-5) > 1e-6 {
		t.Errorf("MaxForce = %v, want 5", got)
	}
	if got := MaxForce(nil); got != 0 {
		t.Errorf("MaxForce(nil) = %v", got)
	}
}

func TestDrift(t *testing.T) {
	var d Drift
	d.Observe(100)
	d.Observe(101)
	d.Observe(99.5)
	if got := d.Value(); math.Abs(got-0.01) > 1e-9 {
		t.Errorf("Drift = %v, want 0.01", got)
	}
	d.Reset()
	if d.Value() != 0 {
		t.Error("Reset did not clear the tracker")
	}
	d.Observe(50)
	if d.Value() != 0 {
		t.Error("first sample after Reset should be the new reference")
	}
}
