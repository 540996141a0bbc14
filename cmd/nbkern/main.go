package main

import (
	"fmt"
	"math"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/mdforge/nbkern/internal/analysis"
	"github.com/mdforge/nbkern/internal/config"
	"github.com/mdforge/nbkern/internal/demo"
	"github.com/mdforge/nbkern/internal/kernel"
	"github.com/mdforge/nbkern/internal/metrics"
	"github.com/mdforge/nbkern/internal/simd"
	"github.com/mdforge/nbkern/internal/storage"
	"github.com/mdforge/nbkern/internal/sweep"
	"github.com/mdforge/nbkern/internal/table"
	"github.com/mdforge/nbkern/internal/tui"
)

var (
	configFile  string
	preset      string
	outDir      string
	sweepPoints int
)

func loadConfig() (*config.Config, error) {
	if preset != "" {
		cfg := config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset %q (have: %s)",
				preset, strings.Join(config.ListPresets(), ", "))
		}
		return cfg, nil
	}
	if configFile != "" {
		return config.Load(configFile)
	}
	return config.DefaultConfig(), nil
}

func main() {
	root := &cobra.Command{
		Use:   "nbkern",
		Short: "Nonbonded pair-interaction kernel demo",
		Long: `nbkern evaluates pairwise van der Waals and electrostatic interactions
over a precomputed neighbor list, using specialized kernels selected by
the requested feature combination.`,
	}
	root.PersistentFlags().StringVarP(&configFile, "config", "c", "", "yaml config file")
	root.PersistentFlags().StringVarP(&preset, "preset", "p", "", "named preset configuration")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Evaluate one step and report forces and energies",
		RunE:  runStep,
	}
	runCmd.Flags().StringVarP(&outDir, "out", "o", "", "directory to persist the step report")

	curveCmd := &cobra.Command{
		Use:   "curve",
		Short: "Plot the pair potential, analytic vs tabulated",
		RunE:  runCurve,
	}

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "Run a live demo loop in the terminal",
		RunE:  runLive,
	}

	rdfCmd := &cobra.Command{
		Use:   "rdf",
		Short: "Plot the radial distribution function of the generated system",
		RunE:  runRDF,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "Evaluate a perturbed system across the coupling range",
		RunE:  runSweep,
	}
	sweepCmd.Flags().IntVar(&sweepPoints, "points", 11, "number of coupling values over [0,1]")

	kernelsCmd := &cobra.Command{
		Use:   "kernels",
		Short: "List available kernel specializations",
		Run: func(cmd *cobra.Command, args []string) {
			specs := kernel.Specs()
			names := make([]string, len(specs))
			for i, s := range specs {
				names[i] = s.String()
			}
			sort.Strings(names)
			for _, n := range names {
				fmt.Println(n)
			}
		},
	}

	root.AddCommand(runCmd, curveCmd, liveCmd, rdfCmd, sweepCmd, kernelsCmd)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runStep(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	scene, err := demo.New(cfg)
	if err != nil {
		return err
	}

	out := scene.NewOut()
	scene.Step(out)

	info := simd.Runtime()
	fmt.Println(scene.Describe())
	if info.Accelerated {
		fmt.Printf("accumulator merge: vectorized (%s)\n", strings.Join(info.Features, ","))
	}
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "group pair\tVnb\tVc")
	for g := range out.Vnb {
		fmt.Fprintf(w, "%d\t%.6f\t%.6f\n", g, out.Vnb[g], out.Vc[g])
	}
	fmt.Fprintf(w, "total\t%.6f\t%.6f\n", simd.Sum(out.Vnb), simd.Sum(out.Vc))
	if out.VnbB != nil {
		fmt.Fprintf(w, "total (state B)\t%.6f\t%.6f\n", simd.Sum(out.VnbB), simd.Sum(out.VcB))
	}
	w.Flush()

	fmt.Printf("\nmax |F| = %.4f\n", metrics.MaxForce(out.F))

	if outDir != "" {
		store := storage.New(outDir)
		if err := store.Init(); err != nil {
			return err
		}
		id, err := store.SaveStep(scene.Spec.String(), scene.List.Len(), scene.List.Pairs(), out)
		if err != nil {
			return err
		}
		fmt.Printf("saved %s\n", id)
	}
	return nil
}

func runCurve(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	n := int(cfg.TableScale*cfg.Cutoff) + 3
	tab := table.NewCoulomb(n, cfg.TableScale)

	const points = 120
	r0, r1 := 0.3*cfg.Cutoff, cfg.Cutoff
	analytic := make([]float64, points)
	interp := make([]float64, points)
	for i := 0; i < points; i++ {
		r := r0 + (r1-r0)*float64(i)/float64(points-1)
		analytic[i] = cfg.Facel / r
		vv, _ := table.Interp(tab.Data, tab.Scale, tab.Stride, table.OffCoul, float32(r))
		interp[i] = cfg.Facel * float64(vv)
	}

	fmt.Println(asciigraph.PlotMany([][]float64{analytic, interp},
		asciigraph.Height(16),
		asciigraph.Width(points),
		asciigraph.Caption(fmt.Sprintf("facel/r over [%.2f, %.2f] (analytic and tabulated overlap)", r0, r1)),
	))

	var maxErr float64
	for i := range analytic {
		if e := math.Abs(analytic[i] - interp[i]); e > maxErr {
			maxErr = e
		}
	}
	fmt.Printf("max tabulation error: %.3g (scale %.0f)\n", maxErr, cfg.TableScale)
	return nil
}

func runRDF(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	scene, err := demo.New(cfg)
	if err != nil {
		return err
	}

	rmax := float32(cfg.BoxEdge) * 0.49
	rdf, err := analysis.ComputeRDF(scene.Sys, rmax, 80)
	if err != nil {
		return err
	}

	fmt.Println(asciigraph.Plot(rdf.Bins,
		asciigraph.Height(16),
		asciigraph.Width(len(rdf.Bins)),
		asciigraph.Caption(fmt.Sprintf("g(r) over [0, %.2f], %d particles", rmax, scene.Sys.N)),
	))
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	points, err := sweep.Lambda(cfg, sweepPoints)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "lambda\tV_A\tV_B\tV_B - V_A")
	a := make([]float64, len(points))
	bb := make([]float64, len(points))
	for i, p := range points {
		a[i], bb[i] = p.TotalA(), p.TotalB()
		fmt.Fprintf(w, "%.3f\t%.4f\t%.4f\t%.4f\n", p.Lambda, a[i], bb[i], bb[i]-a[i])
	}
	w.Flush()

	fmt.Println()
	fmt.Println(asciigraph.PlotMany([][]float64{a, bb},
		asciigraph.Height(12),
		asciigraph.Width(60),
		asciigraph.Caption("end-state potentials across the coupling range"),
	))
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	scene, err := demo.New(cfg)
	if err != nil {
		return err
	}
	m := tui.NewModel(scene)
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
