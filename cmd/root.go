package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/brewsim/brewsim/sim"
	"github.com/brewsim/brewsim/sim/brewery"
	"github.com/brewsim/brewsim/sim/chart"
	"github.com/brewsim/brewsim/sim/export"
	"github.com/brewsim/brewsim/sim/trace"
)

var (
	// CLI flags for the brewery run
	configPath string  // YAML file layered over the built-in defaults
	seed       int64   // Seed for demand and recipe draws
	horizon    float64 // Total simulation horizon (in days)
	logLevel   string  // Log verbosity level
	tankPolicy string  // What a brew cycle does when no fermentation tank is free
	traceLevel string  // Trace detail: none or stages
	continuous bool    // Restart brew cycles after packaging
	showChart  bool    // Print ASCII charts after the run
	metricsOut string  // Prometheus textfile destination
	dbPath     string  // SQLite results database
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "brewsim",
	Short: "Discrete-event simulator for a craft brewery",
}

// runCmd executes the simulation using parameters from the config file and CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the brewery simulation",
	Run: func(cmd *cobra.Command, args []string) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		cfg, err := resolveConfig(cmd, configPath)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		if err := runSimulation(cmd.Context(), cfg, os.Stdout); err != nil {
			logrus.Fatalf("%v", err)
		}
		logrus.Info("Simulation complete.")
	},
}

// runSimulation runs one brewery simulation and writes every requested output.
func runSimulation(ctx context.Context, cfg brewery.Config, out io.Writer) error {
	sm, err := brewery.NewSimulation(cfg)
	if err != nil {
		return err
	}

	startTime := time.Now()
	rep := sm.Run()
	logrus.Infof("Run %s simulated %g days in %s", rep.RunID, rep.Horizon, time.Since(startTime))

	fmt.Fprintf(out, "Run ID               : %s\n", rep.RunID)
	rep.Metrics.Print(out)
	if rep.Trace != nil {
		printTraceSummary(out, trace.Summarize(rep.Trace))
	}
	if showChart {
		printCharts(out, rep)
	}

	if metricsOut != "" {
		if err := rep.Collector.WriteTextfile(metricsOut); err != nil {
			return err
		}
		logrus.Infof("Metrics written to %s", metricsOut)
	}
	if dbPath != "" {
		if ctx == nil {
			ctx = context.Background()
		}
		if err := export.WriteSQLite(ctx, dbPath, rep); err != nil {
			return fmt.Errorf("exporting run %s: %w", rep.RunID, err)
		}
		logrus.Infof("Run %s saved to %s", rep.RunID, dbPath)
	}
	return nil
}

func printTraceSummary(out io.Writer, s *trace.TraceSummary) {
	fmt.Fprintln(out, "=== Trace Summary ===")
	fmt.Fprintf(out, "Stage Transitions    : %d\n", s.TotalTransitions)
	fmt.Fprintf(out, "Batches Traced       : %d\n", s.UniqueBatches)
	fmt.Fprintf(out, "Tank Misses          : %d\n", s.TankMisses)
	fmt.Fprintf(out, "Max Queue Ahead      : %d\n", s.MaxQueued)
	for _, resource := range []string{"kettles", "grain", "brite-tanks"} {
		if n := s.ContentionCounts[resource]; n > 0 {
			fmt.Fprintf(out, "Waits (%-12s) : %d\n", resource, n)
		}
	}
}

func printCharts(out io.Writer, rep *brewery.Report) {
	g := chart.NewGenerator()
	profit := chart.Series{Name: "Profit", Unit: "$"}
	for _, rec := range rep.ProfitTimeline {
		v, _ := rec.Profit.Float64()
		profit.Points = append(profit.Points, chart.Point{Time: rec.Time, Value: v})
	}
	fmt.Fprint(out, g.GenerateSeriesChart(profit, rep.Horizon))
	fmt.Fprint(out, g.GenerateSeriesChart(
		samplesSeries("Production", "pints", rep.Config.Production.InitialBeer, rep.ProductionSamples), rep.Horizon))
	fmt.Fprint(out, g.GenerateSeriesChart(
		samplesSeries("Grain", "", rep.Config.Inventory.InitialGrain, rep.GrainSamples), rep.Horizon))
	fmt.Fprint(out, g.GenerateCountSummary("Packaged By Recipe", rep.Metrics.PackagedByRecipe))
}

func samplesSeries(name, unit string, initial float64, samples []sim.Sample) chart.Series {
	s := chart.Series{Name: name, Unit: unit, Initial: initial}
	for _, smp := range samples {
		s.Points = append(s.Points, chart.Point{Time: smp.Time, Value: smp.Level})
	}
	return s
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	def := brewery.DefaultConfig()

	runCmd.Flags().StringVar(&configPath, "config", "", "YAML config file layered over the built-in defaults")
	runCmd.Flags().Int64Var(&seed, "seed", def.Seed, "Seed for demand and recipe draws")
	runCmd.Flags().Float64Var(&horizon, "horizon", def.Horizon, "Total simulation horizon (in days)")
	runCmd.Flags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")

	// Brewhouse policies
	runCmd.Flags().StringVar(&tankPolicy, "tank-policy", def.Brewhouse.TankPolicy, "Action when no fermentation tank is free (drop, retry, block)")
	runCmd.Flags().BoolVar(&continuous, "continuous", false, "Restart each brew cycle with a new recipe after packaging")
	runCmd.Flags().StringVar(&traceLevel, "trace", def.Trace, "Trace detail (none, stages)")

	// Outputs
	runCmd.Flags().BoolVar(&showChart, "chart", false, "Print ASCII charts of profit and store levels")
	runCmd.Flags().StringVar(&metricsOut, "metrics-out", "", "Write end-of-run metrics in Prometheus text format to this file")
	runCmd.Flags().StringVar(&dbPath, "db", "", "Append the run report to this SQLite database")

	// Attach subcommands to `root`
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(defaultsCmd)
}
