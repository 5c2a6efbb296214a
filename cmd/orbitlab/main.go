package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/orbitlab/internal/analysis"
	"github.com/san-kum/orbitlab/internal/config"
	"github.com/san-kum/orbitlab/internal/engine"
	"github.com/san-kum/orbitlab/internal/export"
	"github.com/san-kum/orbitlab/internal/metrics"
	"github.com/san-kum/orbitlab/internal/storage"
	"github.com/san-kum/orbitlab/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	runName    string

	dt          float64
	duration    float64
	numBodies   int
	seed        int64
	gravity     float64
	adaptive    bool
	changeRatio float64
	speed       float64
	trailLen    int

	outPath   string
	svgWidth  int
	svgHeight int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "orbitlab",
		Short: "interactive gravitational n-body laboratory",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Bare invocation drops straight into the live view.
			sc, err := resolveScenario(cmd)
			if err != nil {
				return err
			}
			return viz.Run(newEngine(sc))
		},
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".orbitlab", "data directory")
	addScenarioFlags(rootCmd)

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a headless simulation and record it",
		RunE:  runHeadless,
	}
	addScenarioFlags(runCmd)
	runCmd.Flags().Float64Var(&duration, "time", 20.0, "simulated seconds")
	runCmd.Flags().StringVar(&runName, "name", "", "run name (defaults to scenario name)")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "interactive terminal visualization",
		RunE: func(cmd *cobra.Command, args []string) error {
			sc, err := resolveScenario(cmd)
			if err != nil {
				return err
			}
			return viz.Run(newEngine(sc))
		},
	}
	addScenarioFlags(liveCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list scenario presets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListPresets() {
				sc := config.GetPreset(name)
				fmt.Printf("%-16s %d bodies, adaptive=%v\n", name, sc.Engine.NumBodies, sc.Engine.AdaptiveStep)
			}
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot conserved quantities of a recorded run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run frames to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().StringVar(&outPath, "out", "", "output file (default stdout)")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVar(&outPath, "out", "", "output file (default stdout)")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "render recorded trajectories to SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVar(&outPath, "out", "", "output file (default trajectories.svg)")
	exportSVGCmd.Flags().IntVar(&svgWidth, "width", 800, "image width")
	exportSVGCmd.Flags().IntVar(&svgHeight, "height", 600, "image height")

	rootCmd.AddCommand(runCmd, liveCmd, presetsCmd, listCmd, plotCmd,
		exportCSVCmd, exportJSONCmd, exportSVGCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addScenarioFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&dt, "dt", engine.DefaultDt, "base timestep")
	cmd.Flags().IntVar(&numBodies, "bodies", engine.DefaultBodies, "number of bodies (2-5)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 = from clock)")
	cmd.Flags().Float64Var(&gravity, "g", engine.DefaultG, "gravitational constant")
	cmd.Flags().BoolVar(&adaptive, "adaptive", false, "adaptive time stepping")
	cmd.Flags().Float64Var(&changeRatio, "ratio", engine.DefaultChangeRatio,
		"max per-step position change as a fraction of the tightest gap")
	cmd.Flags().Float64Var(&speed, "speed", engine.DefaultSpeed, "playback speed multiplier")
	cmd.Flags().IntVar(&trailLen, "trail", engine.DefaultMaxTrailLength, "trail length")
	cmd.Flags().StringVar(&configFile, "config", "", "scenario file (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "scenario preset")
}

// resolveScenario layers preset, config file and flags: flags win over the
// file, the file wins over the preset.
func resolveScenario(cmd *cobra.Command) (*config.Scenario, error) {
	sc := config.Default()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		*sc = *p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("loading scenario: %w", err)
		}
		sc = loaded
	}

	flagSets := map[string]func(){
		"dt":       func() { sc.Engine.Dt = dt },
		"bodies":   func() { sc.Engine.NumBodies = numBodies },
		"g":        func() { sc.Engine.G = gravity },
		"adaptive": func() { sc.Engine.AdaptiveStep = adaptive },
		"ratio":    func() { sc.Engine.MaxPositionChangeRatio = changeRatio },
		"speed":    func() { sc.Engine.SpeedMultiplier = speed },
		"trail":    func() { sc.Engine.MaxTrailLength = trailLen },
		"seed":     func() { sc.Seed = seed },
	}
	for name, apply := range flagSets {
		if cmd.Flags().Changed(name) {
			apply()
		}
	}

	if sc.Seed == 0 {
		sc.Seed = time.Now().UnixNano()
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return sc, nil
}

func newEngine(sc *config.Scenario) *engine.Engine {
	return engine.New(sc.Engine, rand.New(rand.NewSource(sc.Seed)))
}

func runHeadless(cmd *cobra.Command, args []string) error {
	sc, err := resolveScenario(cmd)
	if err != nil {
		return err
	}

	st, err := storage.Open(dataDir)
	if err != nil {
		return err
	}
	defer st.Close()

	eng := newEngine(sc)
	eng.Start()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	observers := metrics.Defaults()

	name := runName
	if name == "" {
		name = sc.Name
	}
	fmt.Printf("running %s (%d bodies, dt=%.4f, seed=%d)...\n",
		name, sc.Engine.NumBodies, sc.Engine.Dt, sc.Seed)
	start := time.Now()

	var frames []storage.Frame
	for t := 0.0; t < duration; {
		select {
		case <-ctx.Done():
			fmt.Println("interrupted, saving partial run")
			t = duration
			continue
		default:
		}

		for _, m := range observers {
			m.Observe(eng, t)
		}
		eng.Step()
		t += eng.EffectiveTimeStep()

		frame := storage.Frame{T: t, Dt: eng.EffectiveTimeStep()}
		for _, b := range eng.Bodies() {
			frame.Bodies = append(frame.Bodies, storage.BodyState{
				X: b.Pos.X, Y: b.Pos.Y, VX: b.Vel.X, VY: b.Vel.Y,
			})
		}
		frames = append(frames, frame)
	}
	elapsed := time.Since(start)

	results := make(map[string]float64, len(observers))
	for _, m := range observers {
		results[m.Name()] = m.Value()
	}

	masses := make([]float64, 0, len(eng.Bodies()))
	for _, b := range eng.Bodies() {
		masses = append(masses, b.Mass)
	}

	runID, err := st.SaveRun(storage.RunMeta{
		Name:      name,
		Seed:      sc.Seed,
		Dt:        sc.Engine.Dt,
		G:         sc.Engine.G,
		NumBodies: sc.Engine.NumBodies,
		Adaptive:  sc.Engine.AdaptiveStep,
		Masses:    masses,
		Metrics:   results,
	}, frames)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", len(frames))
	fmt.Println("\nmetrics:")
	for name, val := range results {
		fmt.Printf("  %s: %.6g\n", name, val)
	}

	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	sum := analysis.Summarize(meta, frames)
	fmt.Println("\nsummary:")
	fmt.Printf("  energy mean/std: %.6g / %.6g\n", sum.EnergyMean, sum.EnergyStd)
	fmt.Printf("  energy drift: %.6g\n", sum.EnergyDrift)
	fmt.Printf("  min pair distance: %.4f (p10 %.4f)\n", sum.MinPairDistance, sum.MinDistanceP10)
	if sc.Engine.AdaptiveStep {
		fmt.Printf("  effective dt range: [%.6f, %.6f]\n", sum.EffectiveDtMin, sum.EffectiveDtMax)
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st, err := storage.Open(dataDir)
	if err != nil {
		return err
	}
	defer st.Close()

	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTIME\tBODIES\tSTEPS\tDT\tADAPTIVE")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%.4f\t%v\n",
			run.ID, run.Name, run.Timestamp.Format("2006-01-02 15:04:05"),
			run.NumBodies, run.Steps, run.Dt, run.Adaptive)
	}
	return w.Flush()
}

func loadRun(runID string) (*storage.RunMeta, []storage.Frame, error) {
	st, err := storage.Open(dataDir)
	if err != nil {
		return nil, nil, err
	}
	defer st.Close()

	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	frames, err := st.LoadFrames(runID)
	if err != nil {
		return nil, nil, err
	}
	return meta, frames, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, frames, err := loadRun(args[0])
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("run %s has no frames", args[0])
	}

	s := analysis.Trace(meta, frames)

	fmt.Printf("run: %s  (%d bodies, %d steps)\n\n", meta.ID, meta.NumBodies, len(frames))
	fmt.Println(asciigraph.Plot(s.Energy,
		asciigraph.Height(10), asciigraph.Width(70), asciigraph.Caption("total energy")))
	fmt.Println()
	fmt.Println(asciigraph.Plot(s.MinDistance,
		asciigraph.Height(10), asciigraph.Width(70), asciigraph.Caption("min pair distance")))
	if meta.Adaptive {
		fmt.Println()
		fmt.Println(asciigraph.Plot(s.EffectiveDt,
			asciigraph.Height(6), asciigraph.Width(70), asciigraph.Caption("effective dt")))
	}
	return nil
}

func outWriter() (*os.File, func(), error) {
	if outPath == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(outPath)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	_, frames, err := loadRun(args[0])
	if err != nil {
		return err
	}
	w, done, err := outWriter()
	if err != nil {
		return err
	}
	defer done()
	return export.WriteCSV(w, frames)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	meta, frames, err := loadRun(args[0])
	if err != nil {
		return err
	}
	w, done, err := outWriter()
	if err != nil {
		return err
	}
	defer done()
	return export.WriteJSON(w, meta, frames)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	_, frames, err := loadRun(args[0])
	if err != nil {
		return err
	}
	svg := export.TrajectorySVG(frames, svgWidth, svgHeight)
	if svg == "" {
		return fmt.Errorf("run %s has too few frames to render", args[0])
	}
	if outPath == "" {
		outPath = "trajectories.svg"
	}
	if err := os.WriteFile(outPath, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", outPath)
	return nil
}
