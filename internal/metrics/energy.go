// Package metrics computes step-level observables from kernel output:
// energy totals, conservation drift over a demo run, and force extrema.
package metrics

import (
	"math"

	"github.com/mdforge/nbkern/internal/kernel"
	"github.com/mdforge/nbkern/internal/simd"
)

// Potential returns the total potential energy in out, state A.
func Potential(out *kernel.Out) float64 {
	return float64(simd.Sum(out.Vnb) + simd.Sum(out.Vc))
}

// MaxForce returns the largest per-particle force norm in f.
func MaxForce(f []float32) float64 {
	var max float64
	for i := 0; i+2 < len(f); i += 3 {
		fx := float64(f[i])
		fy := float64(f[i+1])
		fz := float64(f[i+2])
		if n := math.Sqrt(fx*fx + fy*fy + fz*fz); n > max {
			max = n
		}
	}
	return max
}

// Drift tracks relative total-energy drift across a run. The first observed
// value becomes the reference.
type Drift struct {
	initial  float64
	maxDrift float64
	samples  int
}

// Observe records one total-energy sample.
func (d *Drift) Observe(energy float64) {
	if d.samples == 0 {
		d.initial = energy
	}
	d.samples++
	if d.initial != 0 {
		if drift := math.Abs(energy-d.initial) / math.Abs(d.initial); drift > d.maxDrift {
			d.maxDrift = drift
		}
	}
}

// Value returns the largest relative drift seen so far.
func (d *Drift) Value() float64 { return d.maxDrift }

// Reset clears the tracker for a new run.
func (d *Drift) Reset() {
	d.initial = 0
	d.maxDrift = 0
	d.samples = 0
}
