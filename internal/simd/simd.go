package simd

import "github.com/viterin/vek/vek32"

// Merge adds src into dst element-wise. Used to fold per-worker force and
// energy accumulators back into the caller's buffers.
func Merge(dst, src []float32) {
	if len(dst) == 0 {
		return
	}
	vek32.Add_Inplace(dst, src)
}

// Sum returns the total of v.
func Sum(v []float32) float32 {
	if len(v) == 0 {
		return 0
	}
	return vek32.Sum(v)
}

// Zero clears v in place. A plain loop: vek's multiply-by-zero would keep
// NaNs alive, and accumulators must reset to true zero.
func Zero(v []float32) {
	for i := range v {
		v[i] = 0
	}
}

// Info describes the active acceleration path.
type Info struct {
	Features    []string
	Accelerated bool
}

// Runtime reports whether vek is using a vectorized implementation.
func Runtime() Info {
	info := vek32.Info()
	return Info{Features: info.CPUFeatures, Accelerated: info.Acceleration}
}
