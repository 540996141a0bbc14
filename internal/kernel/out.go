package kernel

import (
	"github.com/mdforge/nbkern/internal/nblist"
	"github.com/mdforge/nbkern/internal/simd"
)

// Out is the set of caller-owned accumulators a kernel writes. Kernels only
// ever add to the existing contents: invocations over different neighbor
// list chunks accumulate into the same buffers. The caller zeroes before
// the first call of a step and reads after the last.
type Out struct {
	F      []float32 // per-particle force, xyz triplets
	FShift []float32 // per-shift force correction, xyz per code
	Vnb    []float32 // VdW energy per group-pair slot
	Vc     []float32 // Coulomb energy per group-pair slot

	// State-B energies, written by perturbed kernels only. Vnb/Vc hold
	// state A; lambda mixing and dV/dlambda estimation are downstream.
	VnbB []float32
	VcB  []float32
}

// NewOut allocates zeroed accumulators for n particles and ngids
// group-pair slots.
func NewOut(n, ngids int, perturbed bool) *Out {
	o := &Out{
		F:      make([]float32, 3*n),
		FShift: make([]float32, 3*nblist.ShiftCount),
		Vnb:    make([]float32, ngids),
		Vc:     make([]float32, ngids),
	}
	if perturbed {
		o.VnbB = make([]float32, ngids)
		o.VcB = make([]float32, ngids)
	}
	return o
}

// Zero resets every accumulator.
func (o *Out) Zero() {
	simd.Zero(o.F)
	simd.Zero(o.FShift)
	simd.Zero(o.Vnb)
	simd.Zero(o.Vc)
	simd.Zero(o.VnbB)
	simd.Zero(o.VcB)
}

// Merge adds src into o. Both must have identical shapes.
func (o *Out) Merge(src *Out) {
	simd.Merge(o.F, src.F)
	simd.Merge(o.FShift, src.FShift)
	simd.Merge(o.Vnb, src.Vnb)
	simd.Merge(o.Vc, src.Vc)
	simd.Merge(o.VnbB, src.VnbB)
	simd.Merge(o.VcB, src.VcB)
}
