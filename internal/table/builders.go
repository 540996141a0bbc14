package table

import "math"

// fill writes Hermite quads for v over samples [0, n) at spacing h=1/scale
// into dst, one quad per sample at the given stride and offset. Samples at
// distances below rmin are zeroed; singular potentials use it to blank the
// region the neighbor list can never produce.
//
// The quad (Y, F, G, H) reproduces v and h*v' exactly at both ends of each
// interval, so the interpolation error is bounded by the fourth derivative
// of v over one spacing.
func fill(dst []float32, stride, off, n int, scale float64, v func(r float64) (float64, float64), rmin float64) {
	h := 1 / scale
	for k := 0; k < n; k++ {
		r := float64(k) * h
		i := k*stride + off
		if r < rmin {
			dst[i], dst[i+1], dst[i+2], dst[i+3] = 0, 0, 0, 0
			continue
		}
		v0, d0 := v(r)
		v1, d1 := v(r + h)
		dy := v1 - v0
		f := h * d0
		g := 3*dy - h*(2*d0+d1)
		hh := -2*dy + h*(d0+d1)
		dst[i] = float32(v0)
		dst[i+1] = float32(f)
		dst[i+2] = float32(g)
		dst[i+3] = float32(hh)
	}
}

// NewCoulomb tabulates the plain Coulomb shape 1/r over n samples.
func NewCoulomb(n int, scale float64) *Table {
	t := &Table{Scale: float32(scale), Stride: StrideCoul, N: n, Data: make([]float32, n*StrideCoul)}
	fill(t.Data, t.Stride, OffCoul, n, scale, coulShape, rminFor(scale))
	return t
}

// NewCoulombRF tabulates the reaction-field Coulomb shape
// 1/r + krf*r^2 - crf.
func NewCoulombRF(n int, scale, krf, crf float64) *Table {
	shape := func(r float64) (float64, float64) {
		return 1/r + krf*r*r - crf, -1/(r*r) + 2*krf*r
	}
	t := &Table{Scale: float32(scale), Stride: StrideCoul, N: n, Data: make([]float32, n*StrideCoul)}
	fill(t.Data, t.Stride, OffCoul, n, scale, shape, rminFor(scale))
	return t
}

// NewVdw tabulates the dispersion (-r^-6) and repulsion (r^-12) shapes,
// scaled per pair by C6 and C12 at lookup time.
func NewVdw(n int, scale float64) *Table {
	t := &Table{Scale: float32(scale), Stride: StrideVdw, N: n, Data: make([]float32, n*StrideVdw)}
	fill(t.Data, t.Stride, OffDisp, n, scale, dispShape, rminFor(scale))
	fill(t.Data, t.Stride, OffRep, n, scale, repShape, rminFor(scale))
	return t
}

// NewCombined tabulates Coulomb, dispersion and repulsion shapes fused at
// each sample so kernels with both terms tabulated make one table pass.
func NewCombined(n int, scale float64) *Table {
	t := &Table{Scale: float32(scale), Stride: StrideBoth, N: n, Data: make([]float32, n*StrideBoth)}
	fill(t.Data, t.Stride, OffCoul, n, scale, coulShape, rminFor(scale))
	fill(t.Data, t.Stride, OffCombDisp, n, scale, dispShape, rminFor(scale))
	fill(t.Data, t.Stride, OffCombRep, n, scale, repShape, rminFor(scale))
	return t
}

// FromFunction tabulates an arbitrary potential with analytic derivative
// as a Coulomb-layout table.
func FromFunction(n int, scale float64, v func(r float64) (val, deriv float64)) *Table {
	t := &Table{Scale: float32(scale), Stride: StrideCoul, N: n, Data: make([]float32, n*StrideCoul)}
	fill(t.Data, t.Stride, OffCoul, n, scale, v, rminFor(scale))
	return t
}

func coulShape(r float64) (float64, float64) {
	return 1 / r, -1 / (r * r)
}

func dispShape(r float64) (float64, float64) {
	r6 := math.Pow(r, 6)
	return -1 / r6, 6 / (r6 * r)
}

func repShape(r float64) (float64, float64) {
	r12 := math.Pow(r, 12)
	return 1 / r12, -12 / (r12 * r)
}

// rminFor blanks the first few samples where inverse-power shapes overflow
// single precision. The kernels' contract keeps pair distances well above
// this region.
func rminFor(scale float64) float64 {
	return 8 / scale
}
