package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/lifesim/internal/analysis"
	"github.com/san-kum/lifesim/internal/automation"
	"github.com/san-kum/lifesim/internal/codec"
	"github.com/san-kum/lifesim/internal/config"
	"github.com/san-kum/lifesim/internal/grid"
	"github.com/san-kum/lifesim/internal/metrics"
	"github.com/san-kum/lifesim/internal/sim"
	"github.com/san-kum/lifesim/internal/viz"
	"github.com/san-kum/lifesim/internal/world"
	"github.com/san-kum/lifesim/internal/zoo"
)

var (
	configFile  string
	preset      string
	width       int
	height      int
	toroidal    bool
	generations int
	stopOnCycle bool
	offsetX     int
	offsetY     int
	rotation    int
	density     float64
	seed        int64
	outPath     string
	// live view
	frameRate int
	theme     string
	gifPath   string
	// grid tools
	aliveOnly bool
	// analysis
	damageX, damageY int
	sweepMin         float64
	sweepMax         float64
	sweepSteps       int
	sweepRuns        int
)

var headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))

func main() {
	rootCmd := &cobra.Command{
		Use:          "lifesim",
		Short:        "conway's game of life lab",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return viz.RunMenu()
		},
	}

	runCmd := &cobra.Command{
		Use:   "run [pattern|file]",
		Short: "advance a world and print the result",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulation,
	}
	addWorldFlags(runCmd)
	runCmd.Flags().StringVar(&outPath, "out", "", "save the final grid (.gol or .bgol)")

	liveCmd := &cobra.Command{
		Use:   "live [pattern|file]",
		Short: "run a world with live visualization",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addWorldFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", config.DefaultFPS, "generations per second")
	liveCmd.Flags().StringVar(&theme, "theme", config.DefaultTheme, fmt.Sprintf("color theme %v", viz.ThemeNames()))
	liveCmd.Flags().StringVar(&gifPath, "gif", viz.DefaultGIFPath, "recording output path")

	plotCmd := &cobra.Command{
		Use:   "plot [pattern|file]",
		Short: "plot population over generations",
		Args:  cobra.MaximumNArgs(1),
		RunE:  plotPopulation,
	}
	addWorldFlags(plotCmd)

	analyzeCmd := &cobra.Command{
		Use:   "analyze [pattern|file]",
		Short: "frequency analysis of the population",
		Args:  cobra.MaximumNArgs(1),
		RunE:  analyzeRun,
	}
	addWorldFlags(analyzeCmd)
	analyzeCmd.Flags().IntVar(&damageX, "damage-x", 0, "flip this column for damage spreading")
	analyzeCmd.Flags().IntVar(&damageY, "damage-y", 0, "flip this row for damage spreading")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "final density of random soups across initial densities",
		Args:  cobra.NoArgs,
		RunE:  densitySweep,
	}
	addWorldFlags(sweepCmd)
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 0.05, "lowest initial density")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 0.95, "highest initial density")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 10, "number of densities")
	sweepCmd.Flags().IntVar(&sweepRuns, "runs", 4, "soups per density")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark generations per second",
		Args:  cobra.NoArgs,
		RunE:  benchWorld,
	}
	benchCmd.Flags().IntVar(&generations, "generations", 100, "generations per size")

	patternsCmd := &cobra.Command{
		Use:   "patterns",
		Short: "list built-in patterns",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range zoo.Names() {
				g, err := zoo.Lookup(name)
				if err != nil {
					return err
				}
				fmt.Printf("%s (%dx%d, %d alive)\n", headingStyle.Render(name), g.Width(), g.Height(), g.AliveCells())
				fmt.Print(grid.Render(g))
			}
			return nil
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list scenario presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	initCmd := &cobra.Command{
		Use:   "init-config [path]",
		Short: "write a config file to edit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.DefaultConfig()
			if preset != "" {
				if cfg = config.GetPreset(preset); cfg == nil {
					return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
				}
			}
			if err := config.Save(args[0], cfg); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", args[0])
			return nil
		},
	}
	initCmd.Flags().StringVar(&preset, "preset", "", "start from a preset")

	batchCmd := &cobra.Command{
		Use:   "batch [scenario.yaml]",
		Short: "run a scripted sequence of simulations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scenario, err := automation.LoadScenario(args[0])
			if err != nil {
				return fmt.Errorf("failed to load scenario: %w", err)
			}
			if scenario.Name != "" {
				fmt.Println(headingStyle.Render(scenario.Name))
			}
			_, err = automation.RunScenario(cmd.Context(), scenario, os.Stdout)
			return err
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, plotCmd, analyzeCmd, sweepCmd, benchCmd, patternsCmd, presetsCmd, initCmd, batchCmd)
	rootCmd.AddCommand(gridCommands()...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func addWorldFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().IntVar(&width, "width", config.DefaultWidth, "world width (0 = fit the pattern)")
	cmd.Flags().IntVar(&height, "height", config.DefaultHeight, "world height (0 = fit the pattern)")
	cmd.Flags().BoolVar(&toroidal, "torus", true, "wrap edges")
	cmd.Flags().IntVar(&generations, "generations", config.DefaultGenerations, "generations to run")
	cmd.Flags().BoolVar(&stopOnCycle, "stop-on-cycle", false, "stop at the first repeated state")
	cmd.Flags().IntVar(&offsetX, "x", 0, "pattern column offset")
	cmd.Flags().IntVar(&offsetY, "y", 0, "pattern row offset")
	cmd.Flags().IntVar(&rotation, "rotate", 0, "clockwise quarter turns applied to the pattern")
	cmd.Flags().Float64Var(&density, "density", 0, "random soup density in [0,1]")
	cmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
}

// resolveConfig layers defaults, preset, config file, positional argument
// and explicitly set flags, in that order.
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
		if codec.IsGridFile(args[0]) {
			cfg.Input, cfg.Pattern = args[0], ""
			if preset == "" && configFile == "" {
				cfg.Width, cfg.Height = 0, 0
			}
		} else {
			cfg.Pattern, cfg.Input = args[0], ""
		}
	}

	flags := cmd.Flags()
	if flags.Changed("width") {
		cfg.Width = width
	}
	if flags.Changed("height") {
		cfg.Height = height
	}
	if flags.Changed("torus") {
		cfg.Toroidal = toroidal
	}
	if flags.Changed("generations") {
		cfg.Generations = generations
	}
	if flags.Changed("stop-on-cycle") {
		cfg.StopOnCycle = stopOnCycle
	}
	if flags.Changed("x") {
		cfg.Placement.X = offsetX
	}
	if flags.Changed("y") {
		cfg.Placement.Y = offsetY
	}
	if flags.Changed("rotate") {
		cfg.Placement.Rotation = rotation
	}
	if flags.Changed("density") {
		cfg.Soup.Density = density
	}
	if flags.Changed("seed") || (cfg.Soup.Seed == 0 && cfg.Soup.Density > 0) {
		cfg.Soup.Seed = seed
	}
	if flags.Changed("out") {
		cfg.Output = outPath
	}
	if flags.Changed("fps") {
		cfg.View.FPS = frameRate
	}
	if flags.Changed("theme") {
		cfg.View.Theme = theme
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func configName(cfg *config.Config) string {
	switch {
	case preset != "":
		return preset
	case cfg.Input != "":
		return cfg.Input
	case cfg.Pattern != "":
		return cfg.Pattern
	default:
		return "soup"
	}
}

// simulate builds the configured world and runs it with the standard
// metrics.
func simulate(cmd *cobra.Command, cfg *config.Config) (*sim.Result, *grid.Grid, error) {
	initial, err := cfg.BuildGrid()
	if err != nil {
		return nil, nil, err
	}

	s := sim.New(world.FromGrid(initial))
	for _, m := range metrics.Standard() {
		s.AddMetric(m)
	}

	result, err := s.Run(cmd.Context(), sim.Config{
		Generations: cfg.Generations,
		Toroidal:    cfg.Toroidal,
		StopOnCycle: cfg.StopOnCycle,
	})
	if err != nil {
		return nil, nil, err
	}
	return result, initial, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	name := configName(cfg)
	fmt.Printf("running %s...\n", name)
	start := time.Now()

	result, initial, err := simulate(cmd, cfg)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Print(grid.Render(result.Final))
	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("world: %dx%d %s\n", initial.Width(), initial.Height(), topologyName(cfg.Toroidal))
	fmt.Printf("generations: %d\n", result.Generations)
	fmt.Printf("population: %d -> %d\n", result.Populations[0], result.Populations[len(result.Populations)-1])
	if result.Cycle != nil {
		fmt.Printf("cycle: period %d from generation %d\n", result.Cycle.Period, result.Cycle.Start)
	}

	fmt.Println("\n" + headingStyle.Render("metrics:"))
	names := make([]string, 0, len(result.Metrics))
	for n := range result.Metrics {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		fmt.Printf("  %s: %.6f\n", n, result.Metrics[n])
	}

	if cfg.Output != "" {
		if err := codec.Save(cfg.Output, result.Final); err != nil {
			return err
		}
		fmt.Printf("\nsaved %s\n", cfg.Output)
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && preset == "" && configFile == "" {
		return viz.RunMenu()
	}

	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	initial, err := cfg.BuildGrid()
	if err != nil {
		return err
	}

	m := viz.NewModel(initial, viz.Options{
		Name:     configName(cfg),
		Toroidal: cfg.Toroidal,
		FPS:      cfg.View.FPS,
		Theme:    cfg.View.Theme,
		GIFPath:  gifPath,
	})
	return viz.Run(m)
}

func plotPopulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	result, _, err := simulate(cmd, cfg)
	if err != nil {
		return err
	}

	fmt.Printf("%s: %d generations\n\n", headingStyle.Render(configName(cfg)), result.Generations)
	graph := asciigraph.Plot(analysis.Series(result.Populations),
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("population"),
	)
	fmt.Println(graph)
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	result, initial, err := simulate(cmd, cfg)
	if err != nil {
		return err
	}

	series := analysis.Series(result.Populations)
	ps := analysis.PowerSpectrum(series)
	if len(ps) < 2 {
		return fmt.Errorf("not enough generations for analysis: %d", result.Generations)
	}

	fmt.Printf("%s: %d generations\n\n", headingStyle.Render(configName(cfg)), result.Generations)
	graph := asciigraph.Plot(ps[1:],
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("population power spectrum"),
	)
	fmt.Println(graph)

	if p := analysis.DominantPeriod(series); p > 0 {
		fmt.Printf("\ndominant period: %.2f generations\n", p)
	} else {
		fmt.Println("\ndominant period: none (flat population)")
	}
	if result.Cycle != nil {
		fmt.Printf("exact cycle: period %d from generation %d\n", result.Cycle.Period, result.Cycle.Start)
	}

	if cmd.Flags().Changed("damage-x") || cmd.Flags().Changed("damage-y") {
		spread, err := analysis.DamageSpread(initial, damageX, damageY, result.Generations, cfg.Toroidal)
		if err != nil {
			return err
		}
		fmt.Println()
		fmt.Println(asciigraph.Plot(analysis.Series(spread),
			asciigraph.Height(8),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("cells differing after flipping (%d,%d)", damageX, damageY)),
		))
	}
	return nil
}

func densitySweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}
	if cfg.Width == 0 || cfg.Height == 0 {
		return fmt.Errorf("sweep needs a non-empty world, got %dx%d", cfg.Width, cfg.Height)
	}

	points, err := analysis.DensitySweep(cmd.Context(), analysis.SweepConfig{
		Width:       cfg.Width,
		Height:      cfg.Height,
		MinDensity:  sweepMin,
		MaxDensity:  sweepMax,
		Steps:       sweepSteps,
		Runs:        sweepRuns,
		Generations: cfg.Generations,
		Toroidal:    cfg.Toroidal,
		Seed:        cfg.Soup.Seed,
	})
	if err != nil {
		return err
	}

	fmt.Printf("sweeping %dx%d %s, %d generations, %d runs per density\n\n",
		cfg.Width, cfg.Height, topologyName(cfg.Toroidal), cfg.Generations, sweepRuns)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DENSITY\tFINAL DENSITY\tFINAL POPULATIONS")
	finals := make([]float64, len(points))
	for i, p := range points {
		finals[i] = p.FinalDensity
		fmt.Fprintf(w, "%.3f\t%.4f\t%v\n", p.Density, p.FinalDensity, p.Populations)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(asciigraph.Plot(finals,
		asciigraph.Height(10),
		asciigraph.Width(60),
		asciigraph.Caption("final density by initial density"),
	))
	return nil
}

func benchWorld(cmd *cobra.Command, args []string) error {
	sizes := []int{32, 64, 128, 256}

	fmt.Printf("benchmarking %d generations of a %.0f%% soup\n\n", generations, config.DefaultDensity*100)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SIZE\tTOPOLOGY\tGENERATIONS\tTIME\tGENS/SEC\tCELLS/SEC")

	for _, n := range sizes {
		for _, wrap := range []bool{false, true} {
			cfg := config.DefaultConfig()
			cfg.Width, cfg.Height, cfg.Pattern = n, n, ""
			cfg.Soup = config.SoupConfig{Density: config.DefaultDensity, Seed: 42}
			initial, err := cfg.BuildGrid()
			if err != nil {
				return err
			}

			s := sim.New(world.FromGrid(initial))
			start := time.Now()
			result, err := s.Run(cmd.Context(), sim.Config{Generations: generations, Toroidal: wrap})
			if err != nil {
				return err
			}
			elapsed := time.Since(start)

			gensPerSec := float64(result.Generations) / elapsed.Seconds()
			fmt.Fprintf(w, "%dx%d\t%s\t%d\t%v\t%.0f\t%.0f\n",
				n, n, topologyName(wrap), result.Generations, elapsed, gensPerSec, gensPerSec*float64(n*n))
		}
	}

	return w.Flush()
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSIZE\tTOPOLOGY\tSEED\tGENERATIONS\tTHEME")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%dx%d\t%s\t%s\t%d\t%s\n",
			name, p.Width, p.Height, topologyName(p.Toroidal), seedName(p), p.Generations, p.View.Theme)
	}
	return w.Flush()
}

func seedName(cfg *config.Config) string {
	var parts []string
	if cfg.Soup.Density > 0 {
		parts = append(parts, fmt.Sprintf("soup %.0f%%", cfg.Soup.Density*100))
	}
	if cfg.Pattern != "" {
		parts = append(parts, cfg.Pattern)
	}
	if cfg.Input != "" {
		parts = append(parts, cfg.Input)
	}
	if len(parts) == 0 {
		return "empty"
	}
	return strings.Join(parts, " + ")
}

func topologyName(toroidal bool) string {
	if toroidal {
		return "toroidal"
	}
	return "bounded"
}
