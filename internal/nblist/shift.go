package nblist

// Shift codes enumerate periodic image offsets in {-1, 0, +1} along each
// box axis. CentralShift is the zero offset; kernels route the balancing
// half of every shift-force contribution there so the table always sums
// to zero.
const (
	ShiftCount   = 27
	CentralShift = 13
)

// ShiftCode maps an image offset triplet to its shift code. Each component
// must be -1, 0 or +1.
func ShiftCode(ox, oy, oz int) int32 {
	return int32((oz+1)*9 + (oy+1)*3 + (ox + 1))
}

// ShiftTable holds the periodic translation vector for every shift code,
// three components per code. It is immutable for the duration of a step.
type ShiftTable struct {
	vecs [ShiftCount * 3]float32
}

// NewShiftTable builds the table for an orthorhombic box with the given
// edge lengths.
func NewShiftTable(bx, by, bz float32) *ShiftTable {
	t := &ShiftTable{}
	for oz := -1; oz <= 1; oz++ {
		for oy := -1; oy <= 1; oy++ {
			for ox := -1; ox <= 1; ox++ {
				s := ShiftCode(ox, oy, oz) * 3
				t.vecs[s] = float32(ox) * bx
				t.vecs[s+1] = float32(oy) * by
				t.vecs[s+2] = float32(oz) * bz
			}
		}
	}
	return t
}

// Vec returns the translation for a shift code.
func (t *ShiftTable) Vec(code int32) (x, y, z float32) {
	s := code * 3
	return t.vecs[s], t.vecs[s+1], t.vecs[s+2]
}
