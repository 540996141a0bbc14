// Package analysis derives structural observables from particle systems.
package analysis

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/mdforge/nbkern/internal/box"
)

// RDF is a radial distribution function g(r): pair density relative to an
// ideal gas at the same bulk density, binned up to rmax.
type RDF struct {
	Rmax float32
	Bins []float64
}

// BinWidth returns the radial extent of one bin.
func (r *RDF) BinWidth() float64 { return float64(r.Rmax) / float64(len(r.Bins)) }

// R returns the center distance of bin k.
func (r *RDF) R(k int) float64 { return (float64(k) + 0.5) * r.BinWidth() }

// ComputeRDF accumulates g(r) over all minimum-image pairs of sys. rmax must
// respect the minimum-image convention.
func ComputeRDF(sys *box.System, rmax float32, bins int) (*RDF, error) {
	if 2*rmax >= sys.Box.MinEdge() {
		return nil, fmt.Errorf("analysis: rmax %v needs box edges above %v for minimum image", rmax, 2*rmax)
	}
	if bins < 1 {
		return nil, fmt.Errorf("analysis: need at least one bin")
	}

	rdf := &RDF{Rmax: rmax, Bins: make([]float64, bins)}
	width := float32(rdf.BinWidth())
	counts := make([]int, bins)

	for i := 0; i < sys.N; i++ {
		i3 := i * 3
		for j := i + 1; j < sys.N; j++ {
			j3 := j * 3
			dx := sys.Pos[j3] - sys.Pos[i3]
			dy := sys.Pos[j3+1] - sys.Pos[i3+1]
			dz := sys.Pos[j3+2] - sys.Pos[i3+2]
			dx -= math32.Round(dx/sys.Box.X) * sys.Box.X
			dy -= math32.Round(dy/sys.Box.Y) * sys.Box.Y
			dz -= math32.Round(dz/sys.Box.Z) * sys.Box.Z
			r := math32.Sqrt(dx*dx + dy*dy + dz*dz)
			if r >= rmax {
				continue
			}
			counts[int(r/width)]++
		}
	}

	// Normalize by the ideal-gas expectation for each shell.
	vol := float64(sys.Box.X) * float64(sys.Box.Y) * float64(sys.Box.Z)
	density := float64(sys.N) / vol
	n := float64(sys.N)
	w := rdf.BinWidth()
	for k := range rdf.Bins {
		rIn := float64(k) * w
		rOut := rIn + w
		shell := 4.0 / 3.0 * 3.141592653589793 * (rOut*rOut*rOut - rIn*rIn*rIn)
		ideal := 0.5 * n * density * shell // half: each pair counted once
		if ideal > 0 {
			rdf.Bins[k] = float64(counts[k]) / ideal
		}
	}
	return rdf, nil
}
