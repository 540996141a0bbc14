package config

// Presets are ready-made demo configurations.
var Presets = map[string]*Config{
	"argon": {
		Particles: 216, BoxEdge: 4.0, Cutoff: 1.0, Jitter: 0.05, Groups: 1,
		Vdw: "lj", Coulomb: "none",
		Sigma: 0.34, Epsilon: 0.996,
		TableScale: DefaultTableScale, Steps: 200, Dt: 0.002,
	},
	"molten-salt": {
		Particles: 512, BoxEdge: 4.0, Cutoff: 1.2, Jitter: 0.03, Groups: 2,
		Vdw: "lj", Coulomb: "rf",
		Charge: 1.0, Facel: DefaultFacel, EpsRF: 0,
		Sigma: 0.32, Epsilon: 0.8,
		TableScale: DefaultTableScale, Steps: 200, Dt: 0.001,
	},
	"tabulated": {
		Particles: 216, BoxEdge: 4.0, Cutoff: 1.0, Jitter: 0.05, Groups: 1,
		Vdw: "table", Coulomb: "table",
		Charge: 0.5, Facel: DefaultFacel,
		Sigma: 0.34, Epsilon: 0.996,
		TableScale: DefaultTableScale, Steps: 200, Dt: 0.002,
	},
	"mutation": {
		Particles: 216, BoxEdge: 4.0, Cutoff: 1.0, Jitter: 0.05, Groups: 1,
		Vdw: "lj", Coulomb: "plain",
		Charge: 0.5, Facel: DefaultFacel,
		Sigma: 0.34, Epsilon: 0.996,
		Perturbed: true, Lambda: 0.5, Alpha: DefaultAlpha, NPerturbed: 8,
		TableScale: DefaultTableScale, Steps: 200, Dt: 0.002,
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *p
	return &c
}

// ListPresets returns the preset names.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
