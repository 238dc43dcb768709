package util

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"github.com/worldtour/tspga/pkg/tsp/framework"
)

// PlotConvergence renders the fittest distance of every generation as a line
// chart.
func PlotConvergence(w io.Writer, entries []Entry, title string) error {
	if len(entries) == 0 {
		return fmt.Errorf("no generations to plot for %s", title)
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: fmt.Sprintf("Fittest Tour Distance for %s", title),
		}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithInitializationOpts(opts.Initialization{
			Theme: types.ThemeWesteros,
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: "generation",
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: "distance",
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(true),
			},
		}))

	generations := make([]int, len(entries))
	distances := make([]opts.LineData, len(entries))
	for i, e := range entries {
		generations[i] = e.Generation
		distances[i] = opts.LineData{Value: e.Distance}
	}

	line.SetXAxis(generations).
		AddSeries("Fittest", distances).
		SetSeriesOptions(
			charts.WithLabelOpts(opts.Label{
				Show: opts.Bool(false),
			}),
		)

	return line.Render(w)
}

// PlotTour renders the locations of tour as a scatter plot, with the closed
// route drawn over them.
func PlotTour(w io.Writer, tour framework.Tour, title string) error {
	route := tour.Route()

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: fmt.Sprintf("total distance %.4f", tour.TotalDistance()),
		}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithInitializationOpts(opts.Initialization{
			Theme: types.ThemeWesteros,
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: "x",
			Type: "value",
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(true),
			},
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: "y",
			SplitLine: &opts.SplitLine{
				Show: opts.Bool(true),
			},
		}))

	start := []opts.ScatterData{{
		Name:       route[0].Name,
		Value:      []float64{route[0].X, route[0].Y},
		Symbol:     "diamond",
		SymbolSize: 16,
	}}
	stops := make([]opts.ScatterData, 0, tour.Len())
	for _, loc := range route[1 : len(route)-1] {
		stops = append(stops, opts.ScatterData{
			Name:       loc.Name,
			Value:      []float64{loc.X, loc.Y},
			Symbol:     "circle",
			SymbolSize: 10,
		})
	}

	path := charts.NewLine()
	legs := make([]opts.LineData, len(route))
	for i, loc := range route {
		legs[i] = opts.LineData{Name: loc.Name, Value: []float64{loc.X, loc.Y}}
	}
	path.AddSeries("Route", legs)

	scatter.AddSeries("Start", start).
		AddSeries("Stops", stops).
		SetSeriesOptions(
			charts.WithLabelOpts(opts.Label{
				Show:      opts.Bool(true),
				Formatter: "{b}",
				Position:  "right",
			}),
		)
	scatter.Overlap(path)

	return scatter.Render(w)
}

// WritePlots writes <name>_convergence.html and <name>_tour.html into dir.
func WritePlots(dir, name string, entries []Entry, best framework.Tour) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	if err := renderFile(filepath.Join(dir, fmt.Sprintf("%s_convergence.html", name)), func(w io.Writer) error {
		return PlotConvergence(w, entries, name)
	}); err != nil {
		return err
	}
	return renderFile(filepath.Join(dir, fmt.Sprintf("%s_tour.html", name)), func(w io.Writer) error {
		return PlotTour(w, best, fmt.Sprintf("Fittest Tour for %s", name))
	})
}

func renderFile(path string, render func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return render(f)
}
