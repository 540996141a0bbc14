// Package integrate provides the minimal time stepping the live demo needs.
// Force evaluation stays in the kernels; this package only moves particles.
package integrate

import "github.com/mdforge/nbkern/internal/box"

// Leapfrog advances positions and velocities by one step from the forces of
// the previous evaluation, kick then drift. Velocities end up half a step
// ahead of positions, the usual leapfrog offset.
type Leapfrog struct {
	Dt float32
}

// Step updates vel from f, then pos from vel, wrapping into b. All slices
// are xyz triplets of the same length.
func (l Leapfrog) Step(pos, vel, f []float32, b box.Box) {
	for i := range vel {
		vel[i] += f[i] * l.Dt
	}
	edges := [3]float32{b.X, b.Y, b.Z}
	for i := range pos {
		pos[i] += vel[i] * l.Dt
		e := edges[i%3]
		for pos[i] < 0 {
			pos[i] += e
		}
		for pos[i] >= e {
			pos[i] -= e
		}
	}
}

// KineticEnergy returns the total kinetic energy for unit masses, the
// convention the demo systems use.
func KineticEnergy(vel []float32) float64 {
	var ke float64
	for _, v := range vel {
		ke += 0.5 * float64(v) * float64(v)
	}
	return ke
}
