// Package sweep evaluates a perturbed configuration across a range of
// coupling values, collecting the end-state energies at each point.
package sweep

import (
	"fmt"

	"github.com/mdforge/nbkern/internal/config"
	"github.com/mdforge/nbkern/internal/demo"
	"github.com/mdforge/nbkern/internal/simd"
)

// Point is one sweep sample: the coupling value and the total energies of
// both end states evaluated there.
type Point struct {
	Lambda float64
	VnbA   float64
	VcA    float64
	VnbB   float64
	VcB    float64
}

// TotalA returns the state-A potential at this point.
func (p Point) TotalA() float64 { return p.VnbA + p.VcA }

// TotalB returns the state-B potential at this point.
func (p Point) TotalB() float64 { return p.VnbB + p.VcB }

// Lambda runs the configured perturbed system at steps evenly spaced
// coupling values over [0, 1]. The same generated system is reused across
// points so only the coupling varies.
func Lambda(cfg *config.Config, steps int) ([]Point, error) {
	if !cfg.Perturbed {
		return nil, fmt.Errorf("sweep: configuration is not perturbed")
	}
	if steps < 2 {
		return nil, fmt.Errorf("sweep: need at least 2 points, got %d", steps)
	}

	c := *cfg
	c.Lambda = 0
	scene, err := demo.New(&c)
	if err != nil {
		return nil, err
	}
	out := scene.NewOut()

	points := make([]Point, 0, steps)
	for i := 0; i < steps; i++ {
		lam := float64(i) / float64(steps-1)
		scene.Params.Pert.Lambda = float32(lam)
		scene.Step(out)
		points = append(points, Point{
			Lambda: lam,
			VnbA:   float64(simd.Sum(out.Vnb)),
			VcA:    float64(simd.Sum(out.Vc)),
			VnbB:   float64(simd.Sum(out.VnbB)),
			VcB:    float64(simd.Sum(out.VcB)),
		})
	}
	return points, nil
}
