package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/torqopt/internal/config"
	"github.com/san-kum/torqopt/internal/objective"
	"github.com/san-kum/torqopt/internal/optim"
	"github.com/san-kum/torqopt/internal/storage"
	"github.com/san-kum/torqopt/internal/viz"
)

var (
	dataDir    string
	particles  int
	iterations int
	inertia    float64
	accel      float64
	seed       int64
	dim        int
	configFile string
	preset     string
	plot       bool
	live       bool
	format     string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "torqopt",
		Short: "swarm search for low-torque cycloidal motion profiles",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".torqopt", "data directory")

	optimizeCmd := &cobra.Command{
		Use:   "optimize [encoding]",
		Short: "run a particle swarm optimization",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runOptimize,
	}
	optimizeCmd.Flags().IntVar(&particles, "particles", optim.DefaultParticles, "swarm size")
	optimizeCmd.Flags().IntVar(&iterations, "iters", optim.DefaultIterations, "iteration budget")
	optimizeCmd.Flags().Float64Var(&inertia, "inertia", optim.DefaultInertia, "inertia weight")
	optimizeCmd.Flags().Float64Var(&accel, "accel", optim.DefaultAccel, "acceleration coefficient")
	optimizeCmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	optimizeCmd.Flags().IntVar(&dim, "dim", 6, "parameter count (power encoding)")
	optimizeCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	optimizeCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	optimizeCmd.Flags().BoolVar(&plot, "plot", false, "plot convergence history")
	optimizeCmd.Flags().BoolVar(&live, "live", false, "live convergence view")

	evaluateCmd := &cobra.Command{
		Use:   "evaluate [encoding] [values...]",
		Short: "score one parameter vector",
		Args:  cobra.MinimumNArgs(2),
		RunE:  runEvaluate,
	}
	evaluateCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVar(&format, "format", "json", "output format: json or csv")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list preset configurations",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
		},
	}

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write a default config file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Save(args[0], config.DefaultConfig()); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", args[0])
			return nil
		},
	}

	rootCmd.AddCommand(optimizeCmd, evaluateCmd, listCmd, exportCmd, presetsCmd, initCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if len(args) > 0 {
		cfg.Encoding = args[0]
	}

	// CLI flags override preset and file values.
	if cmd.Flags().Changed("particles") {
		cfg.Particles = particles
	}
	if cmd.Flags().Changed("iters") {
		cfg.Iterations = iterations
	}
	if cmd.Flags().Changed("inertia") {
		cfg.Inertia = inertia
	}
	if cmd.Flags().Changed("accel") {
		cfg.Accel = accel
	}
	if cmd.Flags().Changed("dim") {
		cfg.Dim = dim
	}
	if cfg.Seed == 0 || cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}

	return cfg, nil
}

func runOptimize(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	swarmCfg, err := cfg.SwarmConfig()
	if err != nil {
		return err
	}

	obj := objective.New(cfg.ObjectiveConfig(), cfg.Mode())
	eng, err := optim.New(swarmCfg, optim.ObjectiveFunc(func(v optim.Vector) float64 {
		return obj.Evaluate(v)
	}))
	if err != nil {
		return err
	}

	history := make([]float64, 0, cfg.Iterations)
	eng.AddObserver(optim.ObserverFunc(func(iter int, best optim.Vector, bestVal float64) {
		history = append(history, bestVal)
	}))

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	if live {
		return runLive(cfg, eng, st, &history)
	}

	fmt.Printf("optimizing %s encoding (%d particles, %d iterations)...\n",
		cfg.Encoding, cfg.Particles, cfg.Iterations)
	start := time.Now()

	best, err := eng.Run(context.Background())
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	runID, err := saveRun(st, cfg, eng, best, history)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	printBest(obj, eng, best)

	if plot && len(history) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(history,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("best score by iteration"),
		))
	}

	return nil
}

func runLive(cfg *config.Config, eng *optim.Engine, st *storage.Store, history *[]float64) error {
	p := tea.NewProgram(viz.NewModel(cfg.Encoding, cfg.Iterations))

	eng.AddObserver(optim.ObserverFunc(func(iter int, best optim.Vector, bestVal float64) {
		p.Send(viz.IterMsg{Iter: iter, Best: best.Clone(), BestVal: bestVal})
	}))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	type outcome struct {
		best optim.Vector
		err  error
	}
	done := make(chan outcome, 1)
	go func() {
		best, err := eng.Run(ctx)
		done <- outcome{best, err}
		p.Send(viz.DoneMsg{Best: best, Err: err})
	}()

	if _, err := p.Run(); err != nil {
		return err
	}
	cancel()

	out := <-done
	if out.err != nil && !errors.Is(out.err, context.Canceled) {
		return out.err
	}

	runID, err := saveRun(st, cfg, eng, out.best, *history)
	if err != nil {
		return err
	}
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("best score: %.6f\n", eng.Swarm().BestVal)
	fmt.Printf("best vector: %s\n", formatVector(out.best))
	return nil
}

func saveRun(st *storage.Store, cfg *config.Config, eng *optim.Engine, best optim.Vector, history []float64) (string, error) {
	return st.Save(storage.RunRecord{
		Encoding:    cfg.Encoding,
		Particles:   cfg.Particles,
		Iterations:  cfg.Iterations,
		Inertia:     cfg.Inertia,
		Accel:       cfg.Accel,
		Seed:        cfg.Seed,
		BestScore:   eng.Swarm().BestVal,
		Best:        best,
		Evaluations: cfg.Particles * (len(history) + 1),
	}, history)
}

func printBest(obj *objective.Torque, eng *optim.Engine, best optim.Vector) {
	res := obj.Describe(best)
	fmt.Printf("best score: %.6f\n", eng.Swarm().BestVal)
	fmt.Printf("best vector: %s\n", formatVector(best))
	fmt.Printf("peak torque: %.6f\n", res.Peak)
	fmt.Printf("max accel: %.6f\n", res.MaxAccel)
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	cfg.Encoding = args[0]

	vals := make([]float64, 0, len(args)-1)
	for _, s := range args[1:] {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("invalid value %q: %w", s, err)
		}
		vals = append(vals, v)
	}
	cfg.Dim = len(vals)

	enc, err := optim.ParseEncoding(cfg.Encoding, cfg.Dim)
	if err != nil {
		return err
	}
	if len(vals) != enc.Dim() {
		return fmt.Errorf("%s encoding expects %d values, got %d", cfg.Encoding, enc.Dim(), len(vals))
	}

	obj := objective.New(cfg.ObjectiveConfig(), cfg.Mode())
	res := obj.Describe(vals)

	fmt.Printf("cost: %.6f\n", res.Cost)
	fmt.Printf("peak torque: %.6f\n", res.Peak)
	fmt.Printf("max accel: %.6f\n", res.MaxAccel)
	if !res.Valid {
		fmt.Println("trajectory invalid: acceleration limit exceeded (penalty applied)")
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tENCODING\tTIME\tPARTICLES\tITERS\tBEST")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%.6f\n",
			run.ID,
			run.Encoding,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Particles,
			run.Iterations,
			run.BestScore,
		)
	}

	return w.Flush()
}

func exportRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir)

	rec, err := st.Load(runID)
	if err != nil {
		return err
	}

	switch format {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rec)
	case "csv":
		history, err := st.LoadHistory(runID)
		if err != nil {
			return err
		}
		w := csv.NewWriter(os.Stdout)
		defer w.Flush()
		if err := w.Write([]string{"iteration", "best_score"}); err != nil {
			return err
		}
		for i, score := range history {
			if err := w.Write([]string{strconv.Itoa(i), strconv.FormatFloat(score, 'f', 6, 64)}); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func formatVector(v optim.Vector) string {
	parts := make([]string, len(v))
	for i, x := range v {
		parts[i] = fmt.Sprintf("%.4f", x)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
