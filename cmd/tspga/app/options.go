package app

import (
	"fmt"
	"slices"

	"github.com/spf13/pflag"
)

const (
	OutputYAML = "yaml"
	OutputJSON = "json"
	OutputText = "text"
)

var outputFormats = []string{OutputYAML, OutputJSON, OutputText}

// Options holds the flags of the run command. Generations, Seed and Workers
// only override the loaded TourSimulation when they were set on the command
// line.
type Options struct {
	File      string
	Benchmark string

	Generations int
	Seed        uint64
	Workers     int

	PlotDir     string
	Report      string
	MetricsAddr string
	Output      string
}

func NewOptions() *Options {
	return &Options{
		Output: OutputText,
	}
}

func (o *Options) AddFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&o.File, "file", "f", o.File, "TourSimulation file (YAML or JSON) to run.")
	fs.StringVar(&o.Benchmark, "benchmark", o.Benchmark, `Run a built-in instance instead of a file: "square" or "polygon:<n>".`)
	fs.IntVar(&o.Generations, "generations", o.Generations, "Number of generations to evolve, overriding spec.numberOfGenerations.")
	fs.Uint64Var(&o.Seed, "seed", o.Seed, "Random seed, overriding spec.seed.")
	fs.IntVar(&o.Workers, "workers", o.Workers, "Goroutines building each generation, overriding spec.workers. 0 uses every CPU.")
	fs.StringVar(&o.PlotDir, "plot-dir", o.PlotDir, "Directory to write the convergence and tour charts to.")
	fs.StringVar(&o.Report, "report", o.Report, "Path of an .xlsx report with every generation and the best tour.")
	fs.StringVar(&o.MetricsAddr, "metrics-addr", o.MetricsAddr, "Address to serve Prometheus metrics on while running, e.g. :9090.")
	fs.StringVarP(&o.Output, "output", "o", o.Output, fmt.Sprintf("Output format, one of %v.", outputFormats))
}

func (o *Options) Validate() error {
	if (o.File == "") == (o.Benchmark == "") {
		return fmt.Errorf("exactly one of --file or --benchmark is required")
	}
	if !slices.Contains(outputFormats, o.Output) {
		return fmt.Errorf("unsupported output %q, want one of %v", o.Output, outputFormats)
	}
	if o.Generations < 0 {
		return fmt.Errorf("--generations must not be negative, got %d", o.Generations)
	}
	if o.Workers < 0 {
		return fmt.Errorf("--workers must not be negative, got %d", o.Workers)
	}
	return nil
}
