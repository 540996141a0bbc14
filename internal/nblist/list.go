package nblist

import "fmt"

// Record describes one i-particle entry of a neighbor list: the i-particle
// index, the periodic shift applied to it, the energy-group pair slot its
// energies accumulate into, and the half-open range of its j-particles in
// the list's backing storage. NPerturbed counts trailing entries of the
// range that take the perturbed path in free-energy kernels.
type Record struct {
	I          int32
	Shift      int32
	Gid        int32
	JStart     int32
	JEnd       int32
	NPerturbed int32
}

// List is a neighbor list over contiguous backing arrays. Records with the
// same i-particle but distinct shift codes (or group pairs) may repeat; the
// j-range of every record is contiguous.
//
// A List is immutable once built and may be walked any number of times.
type List struct {
	iinr   []int32 // i-particle per record
	shift  []int32 // shift code per record
	gid    []int32 // energy-group pair slot per record
	nper   []int32 // trailing perturbed count per record; nil when unused
	jindex []int32 // len(iinr)+1 prefix offsets into jjnr
	jjnr   []int32 // j-particles, all records back to back
}

// Len returns the number of i-records.
func (l *List) Len() int { return len(l.iinr) }

// Pairs returns the total number of (i, j) pairs in the list.
func (l *List) Pairs() int { return len(l.jjnr) }

// Record returns the k-th i-record.
func (l *List) Record(k int) Record {
	var np int32
	if l.nper != nil {
		np = l.nper[k]
	}
	return Record{
		I:          l.iinr[k],
		Shift:      l.shift[k],
		Gid:        l.gid[k],
		JStart:     l.jindex[k],
		JEnd:       l.jindex[k+1],
		NPerturbed: np,
	}
}

// J returns the j-particles of the k-th record as a view into the backing
// array. Callers must not modify it.
func (l *List) J(k int) []int32 {
	return l.jjnr[l.jindex[k]:l.jindex[k+1]]
}

// Perturbed reports whether any record carries perturbed entries.
func (l *List) Perturbed() bool { return l.nper != nil }

// Slice returns a view of records [start, end). The view shares backing
// storage with l; j-ranges stay valid because jindex offsets are absolute.
func (l *List) Slice(start, end int) *List {
	return &List{
		iinr:   l.iinr[start:end],
		shift:  l.shift[start:end],
		gid:    l.gid[start:end],
		nper:   sliceOrNil(l.nper, start, end),
		jindex: l.jindex[start : end+1],
		jjnr:   l.jjnr,
	}
}

func sliceOrNil(v []int32, start, end int) []int32 {
	if v == nil {
		return nil
	}
	return v[start:end]
}

// Builder assembles a List record by record. Within one record all
// unperturbed j-particles must be added before perturbed ones, so that the
// perturbed sub-block is the trailing part of the range.
type Builder struct {
	list    List
	badSeen bool
}

// Begin opens a new i-record. Any previously open record is finalized.
func (b *Builder) Begin(i, shift, gid int32) {
	b.list.iinr = append(b.list.iinr, i)
	b.list.shift = append(b.list.shift, shift)
	b.list.gid = append(b.list.gid, gid)
	b.list.nper = append(b.list.nper, 0)
	b.list.jindex = append(b.list.jindex, int32(len(b.list.jjnr)))
}

// Add appends an unperturbed j-particle to the open record.
func (b *Builder) Add(j int32) {
	k := len(b.list.iinr) - 1
	if b.list.nper[k] != 0 {
		b.badSeen = true
	}
	b.list.jjnr = append(b.list.jjnr, j)
}

// AddPerturbed appends a perturbed j-particle to the open record.
func (b *Builder) AddPerturbed(j int32) {
	k := len(b.list.iinr) - 1
	b.list.nper[k]++
	b.list.jjnr = append(b.list.jjnr, j)
}

// Build finalizes and returns the list. It fails if any record interleaved
// unperturbed entries after perturbed ones.
func (b *Builder) Build() (*List, error) {
	if b.badSeen {
		return nil, fmt.Errorf("nblist: unperturbed j added after perturbed j in the same record")
	}
	l := b.list
	l.jindex = append(l.jindex, int32(len(l.jjnr)))
	perturbed := false
	for _, n := range l.nper {
		if n > 0 {
			perturbed = true
			break
		}
	}
	if !perturbed {
		l.nper = nil
	}
	return &l, nil
}
