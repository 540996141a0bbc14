package kernel

import "github.com/mdforge/nbkern/internal/table"

// Term types are the per-pair math of each feature choice. The drivers are
// generic over one Coulomb and one VdW term; instantiation produces one
// specialized loop per combination, with the enabled() branches resolved
// per instantiation rather than per pair.
//
// Every eval returns the force-over-distance scale (multiplied by the
// displacement vector to get the force) and the point energy.

type coulTerm interface {
	coulEnabled() bool
	eval(qq, rsq, rinv float32) (fscal, v float32)
}

type vdwTerm interface {
	vdwEnabled() bool
	eval(c6, c12, rsq, rinv float32) (fscal, v float32)
}

// noCoul / noVdw disable a term entirely.
type noCoul struct{}

func (noCoul) coulEnabled() bool                       { return false }
func (noCoul) eval(_, _, _ float32) (float32, float32) { return 0, 0 }

type noVdw struct{}

func (noVdw) vdwEnabled() bool                           { return false }
func (noVdw) eval(_, _, _, _ float32) (float32, float32) { return 0, 0 }

// coulomb is the plain 1/r electrostatic term.
type coulomb struct{}

func (coulomb) coulEnabled() bool { return true }

func (coulomb) eval(qq, rsq, rinv float32) (float32, float32) {
	v := qq * rinv
	return v * rinv * rinv, v
}

// reactionField adds the distance-quadratic correction that keeps energy
// and force continuous at the cutoff.
type reactionField struct {
	krf, crf float32
}

func (reactionField) coulEnabled() bool { return true }

func (c reactionField) eval(qq, rsq, rinv float32) (float32, float32) {
	v := qq * (rinv + c.krf*rsq - c.crf)
	f := qq * (rinv*rinv*rinv - 2*c.krf)
	return f, v
}

// lennardJones computes 12-6 interactions directly from inverse powers of
// the squared distance; numerically exact, no interpolation.
type lennardJones struct{}

func (lennardJones) vdwEnabled() bool { return true }

func (lennardJones) eval(c6, c12, rsq, rinv float32) (float32, float32) {
	rinvsq := rinv * rinv
	rinvsix := rinvsq * rinvsq * rinvsq
	v6 := c6 * rinvsix
	v12 := c12 * rinvsix * rinvsix
	return (12*v12 - 6*v6) * rinvsq, v12 - v6
}

// tabCoul evaluates the Coulomb term from a table quad.
type tabCoul struct {
	data   []float32
	scale  float32
	stride int
}

func (tabCoul) coulEnabled() bool { return true }

func (c tabCoul) eval(qq, rsq, rinv float32) (float32, float32) {
	r := rsq * rinv
	vv, ff := table.Interp(c.data, c.scale, c.stride, table.OffCoul, r)
	return -qq * ff * c.scale * rinv, qq * vv
}

// tabVdw evaluates dispersion and repulsion quads, scaled per pair by the
// looked-up C6/C12. In the combined layout its quads sit next to the
// Coulomb quad of the same sample, so both terms hit one cache region.
type tabVdw struct {
	data   []float32
	scale  float32
	stride int
	off    int // dispersion quad offset; repulsion follows
}

func (tabVdw) vdwEnabled() bool { return true }

func (v tabVdw) eval(c6, c12, rsq, rinv float32) (float32, float32) {
	r := rsq * rinv
	vd, fd := table.Interp(v.data, v.scale, v.stride, v.off, r)
	vr, fr := table.Interp(v.data, v.scale, v.stride, v.off+table.QuadLen, r)
	return -(c6*fd + c12*fr) * v.scale * rinv, c6*vd + c12*vr
}
