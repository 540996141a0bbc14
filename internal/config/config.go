package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mdforge/nbkern/internal/kernel"
)

const (
	DefaultParticles  = 216
	DefaultBoxEdge    = 4.0
	DefaultCutoff     = 1.0
	DefaultTableScale = 2000.0
	DefaultFacel      = 138.935
	DefaultSigma      = 0.34
	DefaultEpsilon    = 0.996
	DefaultEpsRF      = 78.0
	DefaultAlpha      = 0.5
)

// Config describes one demo step: the system to generate and the kernel
// specialization to run over it.
type Config struct {
	Particles int     `yaml:"particles"`
	BoxEdge   float64 `yaml:"box_edge"`
	Cutoff    float64 `yaml:"cutoff"`
	Seed      int64   `yaml:"seed"`
	Jitter    float64 `yaml:"jitter"`
	Groups    int     `yaml:"groups"`

	Vdw     string `yaml:"vdw"`     // none | lj | table
	Coulomb string `yaml:"coulomb"` // none | plain | rf | table

	Charge     float64 `yaml:"charge"`
	Facel      float64 `yaml:"facel"`
	EpsRF      float64 `yaml:"eps_rf"` // <= 0 selects the conducting limit
	Sigma      float64 `yaml:"sigma"`
	Epsilon    float64 `yaml:"epsilon"`
	TableScale float64 `yaml:"table_scale"`

	Perturbed  bool    `yaml:"perturbed"`
	Lambda     float64 `yaml:"lambda"`
	Alpha      float64 `yaml:"alpha"`
	NPerturbed int     `yaml:"n_perturbed"`

	Workers int `yaml:"workers"`

	// Live-view demo loop.
	Steps int     `yaml:"steps"`
	Dt    float64 `yaml:"dt"`
}

func DefaultConfig() *Config {
	return &Config{
		Particles:  DefaultParticles,
		BoxEdge:    DefaultBoxEdge,
		Cutoff:     DefaultCutoff,
		Jitter:     0.05,
		Groups:     1,
		Vdw:        "lj",
		Coulomb:    "none",
		Charge:     0.5,
		Facel:      DefaultFacel,
		EpsRF:      DefaultEpsRF,
		Sigma:      DefaultSigma,
		Epsilon:    DefaultEpsilon,
		TableScale: DefaultTableScale,
		Lambda:     0,
		Alpha:      DefaultAlpha,
		Workers:    0,
		Steps:      200,
		Dt:         0.002,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// KernelSpec resolves the vdw/coulomb strings to a kernel specialization.
func (c *Config) KernelSpec() (kernel.Spec, error) {
	var s kernel.Spec
	switch c.Vdw {
	case "", "none":
		s.Vdw = kernel.VdwNone
	case "lj":
		s.Vdw = kernel.VdwLJ
	case "table":
		s.Vdw = kernel.VdwTab
	default:
		return s, fmt.Errorf("config: unknown vdw model %q", c.Vdw)
	}
	switch c.Coulomb {
	case "", "none":
		s.Coul = kernel.CoulNone
	case "plain":
		s.Coul = kernel.CoulPlain
	case "rf":
		s.Coul = kernel.CoulRF
	case "table":
		s.Coul = kernel.CoulTab
	default:
		return s, fmt.Errorf("config: unknown coulomb model %q", c.Coulomb)
	}
	if s.Vdw == kernel.VdwNone && s.Coul == kernel.CoulNone {
		return s, fmt.Errorf("config: vdw and coulomb cannot both be none")
	}
	s.Perturbed = c.Perturbed
	return s, nil
}
