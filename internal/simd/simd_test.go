package simd

import (
	"math"
	"testing"
)

func TestMerge(t *testing.T) {
	dst := []float32{1, -2, 3, 0}
	src := []float32{0.5, 2, -3, 4}
	Merge(dst, src)
	want := []float32{1.5, 0, 0, 4}
	for i := range want {
		if dst[i] != want[i] {
			t.Errorf("dst[%d] = %v, want %v", i, dst[i], want[i])
		}
	}

	Merge(nil, nil) // empty buffers are a no-op, not a panic
}

func TestSum(t *testing.T) {
	v := make([]float32, 1000)
	for i := range v {
		v[i] = float32(i % 7)
	}
	var want float64
	for _, x := range v {
		want += float64(x)
	}
	if got := float64(Sum(v)); math.Abs(got-want) > 1e-3 {
		t.Errorf("Sum = %v, want %v", got, want)
	}
	if Sum(nil) != 0 {
		t.Error("Sum(nil) != 0")
	}
}

func TestZeroClearsNaN(t *testing.T) {
	v := []float32{1, float32(math.NaN()), float32(math.Inf(1))}
	Zero(v)
	for i, x := range v {
		if x != 0 {
			t.Errorf("v[%d] = %v after Zero", i, x)
		}
	}
}
