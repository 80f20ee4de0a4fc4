package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/tidestress/internal/body"
	"github.com/san-kum/tidestress/internal/config"
	"github.com/san-kum/tidestress/internal/grid"
	"github.com/san-kum/tidestress/internal/store"
	"github.com/san-kum/tidestress/internal/stress"
	"github.com/san-kum/tidestress/internal/tui"
)

var (
	dataDir    string
	configFile string
	preset     string

	lat       float64
	lon       float64
	timeAt    float64
	component string
	steps     int
	workers   int
	outFile   string
	frameDt   float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "tidestress",
		Short: "tidal stress fields on icy satellites",
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".tidestress", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "satellite config file (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "europa", "built-in satellite preset")

	describeCmd := &cobra.Command{
		Use:   "describe",
		Short: "print the satellite and its derived quantities",
		RunE:  describeSatellite,
	}

	tensorCmd := &cobra.Command{
		Use:   "tensor",
		Short: "evaluate the stress tensor at one surface point",
		RunE:  evalTensor,
	}
	tensorCmd.Flags().Float64Var(&lat, "lat", 45.0, "latitude (degrees, north positive)")
	tensorCmd.Flags().Float64Var(&lon, "lon", 60.0, "longitude (degrees, east positive)")
	tensorCmd.Flags().Float64Var(&timeAt, "t", 0.0, "time since pericenter (seconds)")

	traceCmd := &cobra.Command{
		Use:   "trace",
		Short: "plot one tensor component over an orbit",
		RunE:  traceComponent,
	}
	traceCmd.Flags().Float64Var(&lat, "lat", 45.0, "latitude (degrees)")
	traceCmd.Flags().Float64Var(&lon, "lon", 60.0, "longitude (degrees)")
	traceCmd.Flags().StringVar(&component, "component", "Ttt", "component: Ttt, Tpt, Tpp")
	traceCmd.Flags().IntVar(&steps, "steps", 72, "samples per orbit")

	gridCmd := &cobra.Command{
		Use:   "grid",
		Short: "run a gridded calculation and store the result",
		RunE:  runGrid,
	}
	gridCmd.Flags().IntVar(&workers, "workers", 0, "worker goroutines (0 = GOMAXPROCS)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export a stored run as CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().StringVar(&outFile, "out", "", "output file (default stdout)")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a stored run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVar(&outFile, "out", "", "output file (default stdout)")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "watch the tensor evolve at one point",
		RunE:  runLive,
	}
	liveCmd.Flags().Float64Var(&lat, "lat", 45.0, "latitude (degrees)")
	liveCmd.Flags().Float64Var(&lon, "lon", 60.0, "longitude (degrees)")
	liveCmd.Flags().Float64Var(&frameDt, "dt", 3600.0, "simulated seconds per frame")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in satellite presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
			return nil
		},
	}

	rootCmd.AddCommand(describeCmd, tensorCmd, traceCmd, gridCmd, listCmd,
		exportCSVCmd, exportJSONCmd, liveCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	if configFile != "" {
		return config.Load(configFile)
	}
	cfg := config.GetPreset(preset)
	if cfg == nil {
		return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
	}
	return cfg, nil
}

func loadSatellite() (*config.Config, *body.Satellite, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	sat, err := cfg.BuildSatellite(cfg.Solver())
	if err != nil {
		return nil, nil, err
	}
	return cfg, sat, nil
}

func buildCalculator(ctx context.Context, cfg *config.Config, sat *body.Satellite) (*stress.Calculator, error) {
	var fields []*stress.Field
	for _, name := range cfg.Stresses {
		var (
			f   *stress.Field
			err error
		)
		switch name {
		case "diurnal":
			f, err = stress.NewDiurnal(ctx, sat)
		case "nsr":
			f, err = stress.NewNSR(ctx, sat)
		default:
			err = fmt.Errorf("%w: %s", config.ErrUnknownStress, name)
		}
		if err != nil {
			return nil, err
		}
		fields = append(fields, f)
	}
	return stress.NewCalculator(fields...)
}

func describeSatellite(cmd *cobra.Command, args []string) error {
	_, sat, err := loadSatellite()
	if err != nil {
		return err
	}
	fmt.Print(sat)
	return nil
}

func evalTensor(cmd *cobra.Command, args []string) error {
	cfg, sat, err := loadSatellite()
	if err != nil {
		return err
	}
	calc, err := buildCalculator(cmd.Context(), cfg, sat)
	if err != nil {
		return err
	}

	theta := (90 - lat) * math.Pi / 180
	phi := lon * math.Pi / 180
	tau := calc.Tensor(theta, phi, timeAt)
	pr := tau.Principal()

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "Ttt\t%+.6e Pa\n", tau.Ttt)
	fmt.Fprintf(w, "Tpt\t%+.6e Pa\n", tau.Tpt)
	fmt.Fprintf(w, "Tpp\t%+.6e Pa\n", tau.Tpp)
	fmt.Fprintf(w, "sigma_max\t%+.6e Pa\n", pr.Max)
	fmt.Fprintf(w, "sigma_min\t%+.6e Pa\n", pr.Min)
	fmt.Fprintf(w, "azimuth\t%.2f deg\n", pr.Azimuth*180/math.Pi)
	return w.Flush()
}

func traceComponent(cmd *cobra.Command, args []string) error {
	cfg, sat, err := loadSatellite()
	if err != nil {
		return err
	}
	calc, err := buildCalculator(cmd.Context(), cfg, sat)
	if err != nil {
		return err
	}

	theta := (90 - lat) * math.Pi / 180
	phi := lon * math.Pi / 180
	period := sat.OrbitPeriod()

	data := make([]float64, steps)
	for i := range data {
		t := period * float64(i) / float64(steps)
		tau := calc.Tensor(theta, phi, t)
		switch component {
		case "Ttt":
			data[i] = tau.Ttt
		case "Tpt":
			data[i] = tau.Tpt
		case "Tpp":
			data[i] = tau.Tpp
		default:
			return fmt.Errorf("unknown component: %s (want Ttt, Tpt, or Tpp)", component)
		}
	}

	fmt.Printf("%s at lat %.1f lon %.1f over one orbit (%.4g s), Pa\n", component, lat, lon, period)
	fmt.Println(asciigraph.Plot(data, asciigraph.Height(16), asciigraph.Width(72)))
	return nil
}

func runGrid(cmd *cobra.Command, args []string) error {
	cfg, sat, err := loadSatellite()
	if err != nil {
		return err
	}
	calc, err := buildCalculator(cmd.Context(), cfg, sat)
	if err != nil {
		return err
	}
	g, err := cfg.BuildGrid(sat)
	if err != nil {
		return err
	}

	res, err := grid.Eval(cmd.Context(), calc, g, workers)
	if err != nil {
		return err
	}

	st := store.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(sat.Name(), cfg.Stresses, res)
	if err != nil {
		return err
	}
	fmt.Printf("saved run %s (%d points)\n", runID, len(res.Points))
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	metas, err := store.New(dataDir).List()
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "RUN_ID\tSATELLITE\tSTRESSES\tPOINTS\tCREATED")
	for _, m := range metas {
		fmt.Fprintf(w, "%s\t%s\t%v\t%d\t%s\n",
			m.RunID, m.Satellite, m.Stresses, m.Points, m.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	return w.Flush()
}

func exportWriter() (*os.File, func(), error) {
	if outFile == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(outFile)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	res, err := store.New(dataDir).LoadResult(args[0])
	if err != nil {
		return err
	}
	w, done, err := exportWriter()
	if err != nil {
		return err
	}
	defer done()
	return store.WriteCSV(w, res)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	res, err := store.New(dataDir).LoadResult(args[0])
	if err != nil {
		return err
	}
	w, done, err := exportWriter()
	if err != nil {
		return err
	}
	defer done()
	return store.WriteJSON(w, res)
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, sat, err := loadSatellite()
	if err != nil {
		return err
	}
	calc, err := buildCalculator(cmd.Context(), cfg, sat)
	if err != nil {
		return err
	}
	return tui.Run(calc, sat.Name(), lat, lon, frameDt)
}
