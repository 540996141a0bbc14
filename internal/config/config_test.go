package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mdforge/nbkern/internal/kernel"
)

func TestDefaults(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, DefaultParticles, cfg.Particles)
	assert.Equal(t, DefaultFacel, cfg.Facel)
	assert.Equal(t, "lj", cfg.Vdw)
	assert.False(t, cfg.Perturbed)

	s, err := cfg.KernelSpec()
	require.NoError(t, err)
	assert.Equal(t, kernel.Spec{Vdw: kernel.VdwLJ, Coul: kernel.CoulNone}, s)
}

func TestKernelSpecMapping(t *testing.T) {
	cases := []struct {
		vdw, coulomb string
		perturbed    bool
		want         kernel.Spec
	}{
		{"lj", "plain", false, kernel.Spec{Vdw: kernel.VdwLJ, Coul: kernel.CoulPlain}},
		{"lj", "rf", false, kernel.Spec{Vdw: kernel.VdwLJ, Coul: kernel.CoulRF}},
		{"table", "table", false, kernel.Spec{Vdw: kernel.VdwTab, Coul: kernel.CoulTab}},
		{"none", "plain", false, kernel.Spec{Vdw: kernel.VdwNone, Coul: kernel.CoulPlain}},
		{"", "rf", false, kernel.Spec{Vdw: kernel.VdwNone, Coul: kernel.CoulRF}},
		{"lj", "", true, kernel.Spec{Vdw: kernel.VdwLJ, Coul: kernel.CoulNone, Perturbed: true}},
	}
	for _, c := range cases {
		cfg := DefaultConfig()
		cfg.Vdw, cfg.Coulomb, cfg.Perturbed = c.vdw, c.coulomb, c.perturbed
		s, err := cfg.KernelSpec()
		require.NoErrorf(t, err, "vdw=%q coulomb=%q", c.vdw, c.coulomb)
		assert.Equal(t, c.want, s)
	}
}

func TestKernelSpecErrors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Vdw, cfg.Coulomb = "none", "none"
	_, err := cfg.KernelSpec()
	assert.Error(t, err, "both interactions disabled")

	cfg = DefaultConfig()
	cfg.Vdw = "buckingham"
	_, err = cfg.KernelSpec()
	assert.Error(t, err)

	cfg = DefaultConfig()
	cfg.Coulomb = "pme"
	_, err = cfg.KernelSpec()
	assert.Error(t, err)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")

	cfg := GetPreset("molten-salt")
	require.NotNil(t, cfg)
	cfg.Workers = 4
	require.NoError(t, Save(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")

	// A hand-written partial file inherits defaults for unset fields.
	partial := []byte("particles: 64\ncoulomb: rf\n")
	require.NoError(t, os.WriteFile(path, partial, 0644))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 64, got.Particles)
	assert.Equal(t, "rf", got.Coulomb)
	assert.Equal(t, DefaultCutoff, got.Cutoff)
	assert.Equal(t, DefaultFacel, got.Facel)
}

func TestPresetsResolve(t *testing.T) {
	for _, name := range ListPresets() {
		cfg := GetPreset(name)
		require.NotNilf(t, cfg, "preset %q", name)
		_, err := cfg.KernelSpec()
		assert.NoErrorf(t, err, "preset %q", name)
	}
	assert.Nil(t, GetPreset("no-such-preset"))
}

func TestGetPresetReturnsCopy(t *testing.T) {
	a := GetPreset("argon")
	require.NotNil(t, a)
	a.Particles = 1
	assert.Equal(t, 216, Presets["argon"].Particles)
}
