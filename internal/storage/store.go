// Package storage persists step reports: JSON metadata plus CSV force and
// energy tables, one directory per run.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/mdforge/nbkern/internal/kernel"
	"github.com/mdforge/nbkern/internal/simd"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Kernel    string             `json:"kernel"`
	Timestamp time.Time          `json:"timestamp"`
	Particles int                `json:"particles"`
	Records   int                `json:"records"`
	Pairs     int                `json:"pairs"`
	Energies  map[string]float64 `json:"energies"`
}

// SaveStep writes one evaluated step under a fresh run directory and
// returns the run id.
func (s *Store) SaveStep(kernelName string, records, pairs int, out *kernel.Out) (string, error) {
	runID := fmt.Sprintf("step_%d", time.Now().UnixNano())
	runDir := filepath.Join(s.baseDir, runID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Kernel:    kernelName,
		Timestamp: time.Now(),
		Particles: len(out.F) / 3,
		Records:   records,
		Pairs:     pairs,
		Energies: map[string]float64{
			"vdw":     float64(simd.Sum(out.Vnb)),
			"coulomb": float64(simd.Sum(out.Vc)),
		},
	}
	if out.VnbB != nil {
		meta.Energies["vdw_b"] = float64(simd.Sum(out.VnbB))
		meta.Energies["coulomb_b"] = float64(simd.Sum(out.VcB))
	}

	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(filepath.Join(runDir, "meta.json"), data, 0644); err != nil {
		return "", err
	}

	if err := s.writeForces(filepath.Join(runDir, "forces.csv"), out.F); err != nil {
		return "", err
	}
	if err := s.writeEnergies(filepath.Join(runDir, "energies.csv"), out); err != nil {
		return "", err
	}
	return runID, nil
}

func (s *Store) writeForces(path string, f []float32) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	if err := w.Write([]string{"particle", "fx", "fy", "fz"}); err != nil {
		return err
	}
	for i := 0; i < len(f)/3; i++ {
		row := []string{
			strconv.Itoa(i),
			formatF(f[i*3]),
			formatF(f[i*3+1]),
			formatF(f[i*3+2]),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
}

func (s *Store) writeEnergies(path string, out *kernel.Out) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	header := []string{"gid", "vdw", "coulomb"}
	if out.VnbB != nil {
		header = append(header, "vdw_b", "coulomb_b")
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for g := range out.Vnb {
		row := []string{strconv.Itoa(g), formatF(out.Vnb[g]), formatF(out.Vc[g])}
		if out.VnbB != nil {
			row = append(row, formatF(out.VnbB[g]), formatF(out.VcB[g]))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return w.Error()
}

func formatF(v float32) string {
	return strconv.FormatFloat(float64(v), 'g', 7, 32)
}
