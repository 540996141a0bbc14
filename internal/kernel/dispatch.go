package kernel

import (
	"errors"
	"fmt"

	"github.com/mdforge/nbkern/internal/forcefield"
	"github.com/mdforge/nbkern/internal/nblist"
	"github.com/mdforge/nbkern/internal/table"
)

// ErrUnknownSpec indicates a specialization request outside the registered
// matrix.
var ErrUnknownSpec = errors.New("kernel: no such specialization")

// VdwKind selects the van der Waals model of a specialization.
type VdwKind int

const (
	VdwNone VdwKind = iota
	VdwLJ
	VdwTab
)

// CoulKind selects the electrostatic model of a specialization.
type CoulKind int

const (
	CoulNone CoulKind = iota
	CoulPlain
	CoulRF
	CoulTab
)

// Spec names one point of the specialization matrix.
type Spec struct {
	Vdw       VdwKind
	Coul      CoulKind
	Perturbed bool
}

func (s Spec) String() string {
	vdw := [...]string{"none", "lj", "table"}[s.Vdw]
	coul := [...]string{"none", "coul", "rf", "table"}[s.Coul]
	name := fmt.Sprintf("vdw=%s coul=%s", vdw, coul)
	if s.Perturbed {
		name += " fep"
	}
	return name
}

// Func is the uniform call contract of every specialization. It always
// completes; correctness depends entirely on caller-enforced preconditions
// (array sizing, index validity, list well-formedness, pair distances
// within the table range and away from zero).
type Func func(list *nblist.List, shift *nblist.ShiftTable, pos []float32, p *forcefield.Params, out *Out)

var kernels = map[Spec]Func{}

// Lookup returns the specialization for s. Selection happens once, ahead
// of the hot loop; the returned Func carries no feature branches.
func Lookup(s Spec) (Func, error) {
	f, ok := kernels[s]
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrUnknownSpec, s)
	}
	return f, nil
}

// Specs lists every registered specialization.
func Specs() []Spec {
	out := make([]Spec, 0, len(kernels))
	for s := range kernels {
		out = append(out, s)
	}
	return out
}

// reg instantiates the drivers for one term combination. The mk closure
// builds the term values from the step's parameters at call time, outside
// the pair loop.
func reg[C coulTerm, V vdwTerm](s Spec, mk func(p *forcefield.Params) (C, V)) {
	if s.Perturbed {
		kernels[s] = func(list *nblist.List, shift *nblist.ShiftTable, pos []float32, p *forcefield.Params, out *Out) {
			c, v := mk(p)
			runPerturbed(c, v, list, shift, pos, p, out)
		}
		return
	}
	kernels[s] = func(list *nblist.List, shift *nblist.ShiftTable, pos []float32, p *forcefield.Params, out *Out) {
		c, v := mk(p)
		run(c, v, list, shift, pos, p, out)
	}
}

func init() {
	for _, pert := range []bool{false, true} {
		reg(Spec{VdwLJ, CoulNone, pert},
			func(p *forcefield.Params) (noCoul, lennardJones) { return noCoul{}, lennardJones{} })
		reg(Spec{VdwTab, CoulNone, pert},
			func(p *forcefield.Params) (noCoul, tabVdw) {
				return noCoul{}, tabVdw{p.Table.Data, p.Table.Scale, table.StrideVdw, table.OffDisp}
			})

		reg(Spec{VdwNone, CoulPlain, pert},
			func(p *forcefield.Params) (coulomb, noVdw) { return coulomb{}, noVdw{} })
		reg(Spec{VdwLJ, CoulPlain, pert},
			func(p *forcefield.Params) (coulomb, lennardJones) { return coulomb{}, lennardJones{} })
		reg(Spec{VdwTab, CoulPlain, pert},
			func(p *forcefield.Params) (coulomb, tabVdw) {
				return coulomb{}, tabVdw{p.Table.Data, p.Table.Scale, table.StrideVdw, table.OffDisp}
			})

		reg(Spec{VdwNone, CoulRF, pert},
			func(p *forcefield.Params) (reactionField, noVdw) { return reactionField{p.Krf, p.Crf}, noVdw{} })
		reg(Spec{VdwLJ, CoulRF, pert},
			func(p *forcefield.Params) (reactionField, lennardJones) {
				return reactionField{p.Krf, p.Crf}, lennardJones{}
			})
		reg(Spec{VdwTab, CoulRF, pert},
			func(p *forcefield.Params) (reactionField, tabVdw) {
				return reactionField{p.Krf, p.Crf}, tabVdw{p.Table.Data, p.Table.Scale, table.StrideVdw, table.OffDisp}
			})

		reg(Spec{VdwNone, CoulTab, pert},
			func(p *forcefield.Params) (tabCoul, noVdw) {
				return tabCoul{p.Table.Data, p.Table.Scale, table.StrideCoul}, noVdw{}
			})
		reg(Spec{VdwLJ, CoulTab, pert},
			func(p *forcefield.Params) (tabCoul, lennardJones) {
				return tabCoul{p.Table.Data, p.Table.Scale, table.StrideCoul}, lennardJones{}
			})

		// Both tabulated: one combined table, quads fused per sample.
		reg(Spec{VdwTab, CoulTab, pert},
			func(p *forcefield.Params) (tabCoul, tabVdw) {
				return tabCoul{p.Table.Data, p.Table.Scale, table.StrideBoth},
					tabVdw{p.Table.Data, p.Table.Scale, table.StrideBoth, table.OffCombDisp}
			})
	}
}
