package app

import (
	"context"
	"encoding/json"
	goflag "flag"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/klog/v2"
	"k8s.io/utils/ptr"
	"sigs.k8s.io/yaml"

	"github.com/worldtour/tspga/apis/config/v1alpha1"
	"github.com/worldtour/tspga/pkg/tsp"
	"github.com/worldtour/tspga/pkg/tsp/algorithms"
	"github.com/worldtour/tspga/pkg/tsp/benchmarks"
	"github.com/worldtour/tspga/pkg/tsp/framework"
	"github.com/worldtour/tspga/pkg/tsp/metrics"
	"github.com/worldtour/tspga/pkg/tsp/util"
)

const progressInterval = 2 * time.Second

// NewCommand creates the tspga root command with its run subcommand and the
// klog flags.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "tspga",
		Short:        "Approximate travelling salesman tours with a genetic algorithm",
		SilenceUsage: true,
	}

	klogFlags := goflag.NewFlagSet("klog", goflag.ContinueOnError)
	klog.InitFlags(klogFlags)
	cmd.PersistentFlags().AddGoFlagSet(klogFlags)

	cmd.AddCommand(NewRunCommand())
	return cmd
}

// NewRunCommand creates the run subcommand.
func NewRunCommand() *cobra.Command {
	opts := NewOptions()
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a TourSimulation and print it with its status",
		Example: `  tspga run -f simulation.yaml --plot-dir plots
  tspga run --benchmark polygon:12 --seed 7 -o yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.Validate(); err != nil {
				return err
			}
			flags := cmd.Flags()
			overrides := overrides{
				generations: flags.Changed("generations"),
				seed:        flags.Changed("seed"),
				workers:     flags.Changed("workers"),
			}
			return Run(cmd.Context(), opts, overrides, cmd.OutOrStdout())
		},
	}
	opts.AddFlags(cmd.Flags())
	return cmd
}

type overrides struct {
	generations, seed, workers bool
}

// Run loads the simulation, runs it to completion or cancellation and writes
// the result to out. A cancelled run is still reported and is not an error.
func Run(ctx context.Context, opts *Options, set overrides, out io.Writer) error {
	logger := klog.FromContext(ctx)

	obj, err := loadObject(opts)
	if err != nil {
		return err
	}
	if set.generations {
		obj.Spec.NumberOfGenerations = ptr.To(opts.Generations)
	}
	if set.seed {
		obj.Spec.Seed = ptr.To(opts.Seed)
	}
	if set.workers {
		obj.Spec.Workers = opts.Workers
	}

	simOpts := []tsp.Option{
		tsp.WithObserver(algorithms.LoggingObserver(logger.V(3))),
	}
	if opts.MetricsAddr != "" {
		reg := prometheus.NewRegistry()
		observer, err := metrics.NewObserver(reg)
		if err != nil {
			return err
		}
		simOpts = append(simOpts, tsp.WithObserver(observer))

		stop, err := serveMetrics(ctx, opts.MetricsAddr, reg)
		if err != nil {
			return err
		}
		defer stop()
	}

	sim, err := tsp.New(ctx, obj, simOpts...)
	if err != nil {
		return err
	}

	result, err := runWithProgress(ctx, sim)
	if err != nil && result.Status.Phase == v1alpha1.TourSimulationPhaseFailed {
		return err
	}

	if err := writeArtifacts(opts, result, sim.History()); err != nil {
		return err
	}
	return printObject(out, opts.Output, result)
}

func loadObject(opts *Options) (*v1alpha1.TourSimulation, error) {
	if opts.File != "" {
		return v1alpha1.Load(opts.File)
	}

	problem, err := benchmarks.ByName(opts.Benchmark)
	if err != nil {
		return nil, err
	}
	return objectFor(problem), nil
}

// objectFor wraps a benchmark problem in a TourSimulation.
func objectFor(problem framework.Problem) *v1alpha1.TourSimulation {
	toLocation := func(l framework.Location) v1alpha1.Location {
		return v1alpha1.Location{Name: l.Name, X: l.X, Y: l.Y}
	}
	start := toLocation(problem.Start())
	locs := problem.Locations()
	obj := &v1alpha1.TourSimulation{
		ObjectMeta: metav1.ObjectMeta{Name: strings.ToLower(problem.Name())},
		Spec: v1alpha1.TourSimulationSpec{
			Start:     &start,
			Locations: make([]v1alpha1.Location, len(locs)),
		},
	}
	for i, l := range locs {
		obj.Spec.Locations[i] = toLocation(l)
	}
	if optimum := problem.KnownOptimum(); optimum > 0 {
		obj.Annotations = map[string]string{
			v1alpha1.GroupName + "/known-optimum": humanize.FtoaWithDigits(optimum, 6),
		}
	}
	return obj
}

// runWithProgress runs sim on its own goroutine and logs the generation
// reached every progressInterval until it finishes.
func runWithProgress(ctx context.Context, sim *tsp.Simulation) (*v1alpha1.TourSimulation, error) {
	logger := klog.FromContext(ctx)

	type outcome struct {
		obj *v1alpha1.TourSimulation
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		obj, err := sim.Run(ctx)
		done <- outcome{obj, err}
	}()

	ticker := time.NewTicker(progressInterval)
	defer ticker.Stop()
	for {
		select {
		case res := <-done:
			return res.obj, res.err
		case <-ticker.C:
			engine := sim.Engine()
			distance, err := engine.DistanceForBestTour()
			if err != nil {
				continue
			}
			logger.V(1).Info("Simulation progress", "generation", engine.Generation(), "totalDistance", distance)
		}
	}
}

func serveMetrics(ctx context.Context, addr string, reg *prometheus.Registry) (func(), error) {
	logger := klog.FromContext(ctx)

	l, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listening for metrics on %s: %w", addr, err)
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.Serve(l); err != nil && err != http.ErrServerClosed {
			logger.Error(err, "Metrics server stopped")
		}
	}()
	logger.V(1).Info("Serving metrics", "addr", l.Addr().String())

	return func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error(err, "Shutting down metrics server")
		}
	}, nil
}

func writeArtifacts(opts *Options, obj *v1alpha1.TourSimulation, history *util.History) error {
	if opts.PlotDir == "" && opts.Report == "" {
		return nil
	}
	best, ok := history.Best()
	if !ok {
		return nil
	}

	entries := history.Entries()
	name := obj.Name
	if name == "" {
		name = "tspga"
	}
	if opts.PlotDir != "" {
		if err := util.WritePlots(opts.PlotDir, name, entries, best); err != nil {
			return fmt.Errorf("writing plots: %w", err)
		}
	}
	if opts.Report != "" {
		if err := util.SaveReport(opts.Report, entries, best); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
	}
	return nil
}

func printObject(out io.Writer, format string, obj *v1alpha1.TourSimulation) error {
	switch format {
	case OutputYAML:
		data, err := yaml.Marshal(obj)
		if err != nil {
			return err
		}
		_, err = out.Write(data)
		return err
	case OutputJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(obj)
	}

	status := obj.Status
	fmt.Fprintf(out, "Simulation:   %s\n", obj.Name)
	fmt.Fprintf(out, "Phase:        %s\n", status.Phase)
	fmt.Fprintf(out, "Run:          %s\n", status.RunID)
	fmt.Fprintf(out, "Generations:  %s\n", humanize.Comma(int64(status.GenerationsCompleted)))
	fmt.Fprintf(out, "Distance:     %s\n", humanize.CommafWithDigits(status.BestDistance, 4))
	if status.StartTime != nil && status.CompletionTime != nil {
		fmt.Fprintf(out, "Elapsed:      %s\n", status.CompletionTime.Sub(status.StartTime.Time).Round(time.Millisecond))
	}
	if status.Message != "" {
		fmt.Fprintf(out, "Message:      %s\n", status.Message)
	}
	_, err := fmt.Fprintf(out, "Route:        %s\n", strings.Join(status.Route, " -> "))
	return err
}
