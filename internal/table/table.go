package table

import "fmt"

// Per-sample layout: four floats (value, scaled derivative, and two cubic
// coefficients) per tabulated function. Fused tables stack the quads of
// several functions at each sample so one pass touches one cache region.
const (
	QuadLen = 4

	// Quad offsets within a sample.
	OffCoul = 0 // Coulomb shape
	OffDisp = 0 // dispersion shape in a VdW-only table
	OffRep  = 4 // repulsion shape in a VdW-only table

	// Quad offsets within a combined Coulomb+VdW sample.
	OffCombDisp = 4
	OffCombRep  = 8

	StrideCoul = 4  // Coulomb only
	StrideVdw  = 8  // dispersion + repulsion
	StrideBoth = 12 // Coulomb + dispersion + repulsion
)

// Table is a uniformly sampled potential/force table. Sample k corresponds
// to distance k/Scale; Data holds Stride floats per sample. Immutable for
// the duration of a step.
type Table struct {
	Scale  float32
	Stride int
	N      int
	Data   []float32
}

// Rmax returns the largest distance the table can be evaluated at.
func (t *Table) Rmax() float32 {
	return float32(t.N-1) / t.Scale
}

// Check verifies the table covers distances up to rmax.
func (t *Table) Check(rmax float32) error {
	if len(t.Data) != t.N*t.Stride {
		return fmt.Errorf("table: %d samples of stride %d need %d floats, have %d",
			t.N, t.Stride, t.N*t.Stride, len(t.Data))
	}
	if t.Rmax() < rmax {
		return fmt.Errorf("table: covers r <= %v, need %v", t.Rmax(), rmax)
	}
	return nil
}

// Interp evaluates one quad of a table at distance r, returning the
// interpolated value and its derivative with respect to the fractional
// sample offset. The force is -FF*scale; the caller folds in per-pair
// coefficients and the 1/r direction factor.
//
// No bounds checks beyond the slice's own: distances past the table end
// are a caller contract violation.
func Interp(data []float32, scale float32, stride, off int, r float32) (vv, ff float32) {
	rt := r * scale
	n := int32(rt)
	eps := rt - float32(n)
	eps2 := eps * eps
	i := int(n)*stride + off
	geps := data[i+2] * eps
	heps2 := data[i+3] * eps2
	fp := data[i+1] + geps + heps2
	vv = data[i] + eps*fp
	ff = fp + geps + 2*heps2
	return vv, ff
}
