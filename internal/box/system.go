package box

import (
	"math"
	"math/rand"
)

// System is a caller-side particle system for demos and tests: positions,
// charges, types and energy groups in the flat layouts the kernels read.
type System struct {
	N       int
	Pos     []float32 // xyz triplets
	Charges []float32
	Types   []int32
	Groups  []int32
	NGroups int
	Box     Box

	// Perturbed flags particles whose parameters differ between end
	// states; nil when the system has no perturbation.
	Perturbed []bool
}

// LatticeOpts controls NewLattice.
type LatticeOpts struct {
	Charge     float64 // alternating +/- charge magnitude; 0 for neutral
	NTypes     int     // particle types, cycled; minimum 1
	NGroups    int     // energy groups, assigned in blocks; minimum 1
	Jitter     float64 // uniform displacement amplitude off lattice sites
	Seed       int64
	NPerturbed int // trailing particles flagged perturbed
}

// NewLattice places n particles on a cubic lattice inside b with optional
// jitter. The lattice keeps initial pair distances bounded away from zero,
// which the kernels require.
func NewLattice(n int, b Box, o LatticeOpts) *System {
	if o.NTypes < 1 {
		o.NTypes = 1
	}
	if o.NGroups < 1 {
		o.NGroups = 1
	}
	rng := rand.New(rand.NewSource(o.Seed))

	side := int(math.Ceil(math.Cbrt(float64(n))))
	dx := b.X / float32(side)
	dy := b.Y / float32(side)
	dz := b.Z / float32(side)

	sys := &System{
		N:       n,
		Pos:     make([]float32, 3*n),
		Charges: make([]float32, n),
		Types:   make([]int32, n),
		Groups:  make([]int32, n),
		NGroups: o.NGroups,
		Box:     b,
	}

	blockSize := (n + o.NGroups - 1) / o.NGroups
	for i := 0; i < n; i++ {
		cx := i % side
		cy := (i / side) % side
		cz := i / (side * side)
		jx := float32((rng.Float64()*2 - 1) * o.Jitter)
		jy := float32((rng.Float64()*2 - 1) * o.Jitter)
		jz := float32((rng.Float64()*2 - 1) * o.Jitter)
		sys.Pos[i*3] = (float32(cx)+0.5)*dx + jx
		sys.Pos[i*3+1] = (float32(cy)+0.5)*dy + jy
		sys.Pos[i*3+2] = (float32(cz)+0.5)*dz + jz

		if i%2 == 0 {
			sys.Charges[i] = float32(o.Charge)
		} else {
			sys.Charges[i] = float32(-o.Charge)
		}
		sys.Types[i] = int32(i % o.NTypes)
		sys.Groups[i] = int32(i / blockSize)
	}

	if o.NPerturbed > 0 {
		sys.Perturbed = make([]bool, n)
		for i := n - o.NPerturbed; i < n; i++ {
			if i >= 0 {
				sys.Perturbed[i] = true
			}
		}
	}
	return sys
}
