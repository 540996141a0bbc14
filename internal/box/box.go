package box

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/mdforge/nbkern/internal/nblist"
)

// Box is an orthorhombic periodic cell.
type Box struct {
	X, Y, Z float32
}

// Cube returns a cubic box with edge l.
func Cube(l float32) Box { return Box{l, l, l} }

// ShiftTable builds the periodic translation table for the box.
func (b Box) ShiftTable() *nblist.ShiftTable {
	return nblist.NewShiftTable(b.X, b.Y, b.Z)
}

// MinEdge returns the shortest box edge.
func (b Box) MinEdge() float32 {
	m := b.X
	if b.Y < m {
		m = b.Y
	}
	if b.Z < m {
		m = b.Z
	}
	return m
}

// BuildList constructs a half neighbor list for sys under the minimum-image
// convention: each in-range pair appears exactly once, attached to the
// i-record whose shift brings i's image nearest to j. Records are split by
// (shift code, group pair), with perturbed j-particles in the trailing
// sub-block of each record.
//
// This is brute-force O(N^2) scaffolding for demos and tests; a production
// list builder (cell lists, domain decomposition) is outside this module.
func BuildList(sys *System, cutoff float32) (*nblist.List, error) {
	if 2*cutoff >= sys.Box.MinEdge() {
		return nil, fmt.Errorf("box: cutoff %v needs box edges above %v for minimum image", cutoff, 2*cutoff)
	}
	cut2 := cutoff * cutoff
	ng := int32(sys.NGroups)

	var b nblist.Builder
	type bucket struct {
		normal    []int32
		perturbed []int32
	}

	for i := 0; i < sys.N; i++ {
		i3 := i * 3
		buckets := map[[2]int32]*bucket{}

		for j := i + 1; j < sys.N; j++ {
			j3 := j * 3
			dx := sys.Pos[j3] - sys.Pos[i3]
			dy := sys.Pos[j3+1] - sys.Pos[i3+1]
			dz := sys.Pos[j3+2] - sys.Pos[i3+2]
			ox := int(math32.Round(dx / sys.Box.X))
			oy := int(math32.Round(dy / sys.Box.Y))
			oz := int(math32.Round(dz / sys.Box.Z))
			mx := dx - float32(ox)*sys.Box.X
			my := dy - float32(oy)*sys.Box.Y
			mz := dz - float32(oz)*sys.Box.Z
			if mx*mx+my*my+mz*mz > cut2 {
				continue
			}

			// The kernel shifts i, computing (i + S) - j, so the
			// record's shift is the image offset of j seen from i.
			code := nblist.ShiftCode(ox, oy, oz)
			gid := sys.Groups[i]*ng + sys.Groups[j]
			key := [2]int32{code, gid}
			bk := buckets[key]
			if bk == nil {
				bk = &bucket{}
				buckets[key] = bk
			}
			if sys.pairPerturbed(i, j) {
				bk.perturbed = append(bk.perturbed, int32(j))
			} else {
				bk.normal = append(bk.normal, int32(j))
			}
		}

		// Deterministic record order: by shift code, then group pair.
		for code := int32(0); code < nblist.ShiftCount; code++ {
			for gid := int32(0); gid < ng*ng; gid++ {
				bk := buckets[[2]int32{code, gid}]
				if bk == nil {
					continue
				}
				b.Begin(int32(i), code, gid)
				for _, j := range bk.normal {
					b.Add(j)
				}
				for _, j := range bk.perturbed {
					b.AddPerturbed(j)
				}
			}
		}
	}
	return b.Build()
}

func (sys *System) pairPerturbed(i, j int) bool {
	if sys.Perturbed == nil {
		return false
	}
	return sys.Perturbed[i] || sys.Perturbed[j]
}
