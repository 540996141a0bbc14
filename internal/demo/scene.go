package demo

import (
	"fmt"
	"math"

	"github.com/mdforge/nbkern/internal/box"
	"github.com/mdforge/nbkern/internal/compute"
	"github.com/mdforge/nbkern/internal/config"
	"github.com/mdforge/nbkern/internal/forcefield"
	"github.com/mdforge/nbkern/internal/kernel"
	"github.com/mdforge/nbkern/internal/nblist"
	"github.com/mdforge/nbkern/internal/table"
)

// Scene is a fully assembled step: a generated system, its neighbor list
// and the selected kernel, ready to evaluate.
type Scene struct {
	Cfg    *config.Config
	Sys    *box.System
	List   *nblist.List
	Shift  *nblist.ShiftTable
	Params *forcefield.Params
	Spec   kernel.Spec
	Kernel kernel.Func
	NGids  int

	exec *compute.Executor
}

// New builds a scene from a config: lattice system, neighbor list, force
// field parameters, tables, and the dispatched kernel.
func New(cfg *config.Config) (*Scene, error) {
	spec, err := cfg.KernelSpec()
	if err != nil {
		return nil, err
	}
	fn, err := kernel.Lookup(spec)
	if err != nil {
		return nil, err
	}

	b := box.Cube(float32(cfg.BoxEdge))
	nPert := 0
	if cfg.Perturbed {
		nPert = cfg.NPerturbed
	}
	ntypes := 1
	if cfg.Perturbed {
		ntypes = 2 // state B uses the second type
	}
	sys := box.NewLattice(cfg.Particles, b, box.LatticeOpts{
		Charge:     cfg.Charge,
		NTypes:     1,
		NGroups:    cfg.Groups,
		Jitter:     cfg.Jitter,
		Seed:       cfg.Seed,
		NPerturbed: nPert,
	})

	list, err := box.BuildList(sys, float32(cfg.Cutoff))
	if err != nil {
		return nil, err
	}

	p, err := buildParams(cfg, sys, ntypes, spec)
	if err != nil {
		return nil, err
	}

	return &Scene{
		Cfg:    cfg,
		Sys:    sys,
		List:   list,
		Shift:  b.ShiftTable(),
		Params: p,
		Spec:   spec,
		Kernel: fn,
		NGids:  cfg.Groups * cfg.Groups,
		exec:   compute.NewExecutor(cfg.Workers),
	}, nil
}

func buildParams(cfg *config.Config, sys *box.System, ntypes int, spec kernel.Spec) (*forcefield.Params, error) {
	c6, c12 := forcefield.LJCoefs(cfg.Sigma, cfg.Epsilon)
	// Type 1, present only in perturbed runs, is the softened end state.
	coefs := forcefield.PairTable(ntypes, func(ti, tj int) (float32, float32) {
		scale := float32(1)
		if ti == 1 {
			scale *= 0.5
		}
		if tj == 1 {
			scale *= 0.5
		}
		return c6 * scale, c12 * scale
	})

	krf, crf := forcefield.RFConstants(cfg.Cutoff, cfg.EpsRF)
	p := &forcefield.Params{
		Charges: sys.Charges,
		Facel:   float32(cfg.Facel),
		Krf:     krf,
		Crf:     crf,
		Types:   sys.Types,
		NType:   int32(ntypes),
		C6C12:   coefs,
	}

	defSig6 := float32(math.Pow(cfg.Sigma, 6))
	if spec.Perturbed {
		typesB := make([]int32, sys.N)
		chargesB := make([]float32, sys.N)
		copy(chargesB, sys.Charges)
		for i := 0; i < sys.N; i++ {
			typesB[i] = sys.Types[i]
			if sys.Perturbed != nil && sys.Perturbed[i] {
				typesB[i] = 1
				chargesB[i] = 0 // annihilated in state B
			}
		}
		p.Pert = &forcefield.Perturbation{
			TypesB:   typesB,
			ChargesB: chargesB,
			Lambda:   float32(cfg.Lambda),
			Alpha:    float32(cfg.Alpha),
			DefSig6:  defSig6,
		}
	}

	if spec.Vdw == kernel.VdwTab || spec.Coul == kernel.CoulTab {
		p.Table = buildTable(cfg, spec, defSig6)
		if err := p.Table.Check(tableReach(cfg, spec, defSig6)); err != nil {
			return nil, err
		}
	}

	if err := p.Validate(sys.N,
		spec.Coul != kernel.CoulNone,
		spec.Vdw != kernel.VdwNone,
		p.Table != nil); err != nil {
		return nil, err
	}
	return p, nil
}

// tableReach is the largest distance a tabulated kernel can request: the
// cutoff, stretched by the soft-core offset in perturbed runs.
func tableReach(cfg *config.Config, spec kernel.Spec, defSig6 float32) float32 {
	r := cfg.Cutoff
	if spec.Perturbed {
		r6 := math.Pow(cfg.Cutoff, 6) + float64(cfg.Alpha)*float64(defSig6)
		r = math.Pow(r6, 1.0/6)
	}
	return float32(r)
}

func buildTable(cfg *config.Config, spec kernel.Spec, defSig6 float32) *table.Table {
	reach := float64(tableReach(cfg, spec, defSig6))
	n := int(cfg.TableScale*reach) + 3
	switch {
	case spec.Vdw == kernel.VdwTab && spec.Coul == kernel.CoulTab:
		return table.NewCombined(n, cfg.TableScale)
	case spec.Vdw == kernel.VdwTab:
		return table.NewVdw(n, cfg.TableScale)
	default:
		return table.NewCoulomb(n, cfg.TableScale)
	}
}

// Rebuild reconstructs the neighbor list after positions moved.
func (s *Scene) Rebuild() error {
	list, err := box.BuildList(s.Sys, float32(s.Cfg.Cutoff))
	if err != nil {
		return err
	}
	s.List = list
	return nil
}

// Step runs one kernel evaluation into out, which it zeroes first.
func (s *Scene) Step(out *kernel.Out) {
	out.Zero()
	s.exec.Run(s.Kernel, s.List, s.Shift, s.Sys.Pos, s.Params, out)
}

// NewOut allocates accumulators shaped for this scene.
func (s *Scene) NewOut() *kernel.Out {
	return kernel.NewOut(s.Sys.N, s.NGids, s.Spec.Perturbed)
}

// Describe returns a short human-readable summary.
func (s *Scene) Describe() string {
	return fmt.Sprintf("%d particles, box %.2f, cutoff %.2f, %s, %d records / %d pairs",
		s.Sys.N, s.Cfg.BoxEdge, s.Cfg.Cutoff, s.Spec, s.List.Len(), s.List.Pairs())
}
