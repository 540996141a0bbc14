package forcefield

import (
	"fmt"
	"math"

	"github.com/mdforge/nbkern/internal/table"
)

// Params bundles the per-step interaction parameters the kernels read.
// Every slice is caller-owned and immutable for the step; which fields
// must be populated depends on the kernel specialization in use.
type Params struct {
	// Electrostatics.
	Charges []float32 // one per particle
	Facel   float32   // electrostatic conversion constant

	// Reaction field constants, used by reaction-field kernels only.
	Krf float32
	Crf float32

	// Van der Waals.
	Types []int32   // one per particle
	NType int32     // number of distinct types
	C6C12 []float32 // 2*NType*NType: C6 at 2*(NType*ti+tj), C12 next

	// Tabulated potentials.
	Table *table.Table

	// Free-energy perturbation; nil for non-perturbed kernels.
	Pert *Perturbation
}

// Perturbation holds the state-B parameter set and the soft-core controls
// for free-energy kernels. State A is the plain fields of Params.
type Perturbation struct {
	TypesB   []int32
	ChargesB []float32
	Lambda   float32 // mixing position: 0 is pure A, 1 is pure B
	Alpha    float32 // soft-core strength; 0 disables regularization
	DefSig6  float32 // sigma^6 used when a state's C6 or C12 vanishes
}

// CoefIndex returns the C6C12 index for a type pair.
func (p *Params) CoefIndex(ti, tj int32) int {
	return 2 * (int(p.NType)*int(ti) + int(tj))
}

// Sigma6 derives the soft-core sigma^6 for a pair from its coefficients,
// falling back to def when either vanishes.
func Sigma6(c6, c12, def float32) float32 {
	if c6 > 0 && c12 > 0 {
		return c12 / c6
	}
	return def
}

// RFConstants returns the reaction-field correction constants for cutoff rc
// and reaction-field permittivity epsRF relative to the medium (eps = 1).
// epsRF <= 0 selects the conducting-boundary limit. The correction keeps
// the potential and its derivative continuous at the cutoff.
func RFConstants(rc, epsRF float64) (krf, crf float32) {
	var k float64
	if epsRF <= 0 {
		k = 1 / (2 * rc * rc * rc)
	} else {
		k = (epsRF - 1) / ((2*epsRF + 1) * rc * rc * rc)
	}
	return float32(k), float32(1/rc + k*rc*rc)
}

// PairTable builds the symmetric 2*ntype*ntype coefficient table from a
// per-pair closure.
func PairTable(ntype int, coef func(ti, tj int) (c6, c12 float32)) []float32 {
	t := make([]float32, 2*ntype*ntype)
	for ti := 0; ti < ntype; ti++ {
		for tj := 0; tj < ntype; tj++ {
			c6, c12 := coef(ti, tj)
			k := 2 * (ntype*ti + tj)
			t[k] = c6
			t[k+1] = c12
		}
	}
	return t
}

// LJCoefs converts sigma/epsilon to C6/C12.
func LJCoefs(sigma, eps float64) (c6, c12 float32) {
	s6 := math.Pow(sigma, 6)
	return float32(4 * eps * s6), float32(4 * eps * s6 * s6)
}

// Validate checks array sizing against the particle count and the needs of
// the requested features. It runs once per step, outside the kernels.
func (p *Params) Validate(n int, coulomb, vdw, tabulated bool) error {
	if coulomb {
		if len(p.Charges) != n {
			return fmt.Errorf("forcefield: %d charges for %d particles", len(p.Charges), n)
		}
	}
	if vdw {
		if len(p.Types) != n {
			return fmt.Errorf("forcefield: %d types for %d particles", len(p.Types), n)
		}
		if want := 2 * int(p.NType) * int(p.NType); len(p.C6C12) != want {
			return fmt.Errorf("forcefield: coefficient table has %d floats, want %d", len(p.C6C12), want)
		}
		for i, t := range p.Types {
			if t < 0 || t >= p.NType {
				return fmt.Errorf("forcefield: particle %d has type %d outside [0,%d)", i, t, p.NType)
			}
		}
	}
	if tabulated && p.Table == nil {
		return fmt.Errorf("forcefield: tabulated kernel requested without a table")
	}
	if p.Pert != nil {
		if coulomb && len(p.Pert.ChargesB) != n {
			return fmt.Errorf("forcefield: %d state-B charges for %d particles", len(p.Pert.ChargesB), n)
		}
		if vdw && len(p.Pert.TypesB) != n {
			return fmt.Errorf("forcefield: %d state-B types for %d particles", len(p.Pert.TypesB), n)
		}
		if p.Pert.Lambda < 0 || p.Pert.Lambda > 1 {
			return fmt.Errorf("forcefield: lambda %v outside [0,1]", p.Pert.Lambda)
		}
	}
	return nil
}
