package util

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/worldtour/tspga/pkg/tsp/framework"
)

const (
	GenerationsSheet = "Generations"
	BestTourSheet    = "Best Tour"
)

// NewReport builds a workbook with one row per generation and the best tour
// broken down leg by leg.
func NewReport(entries []Entry, best framework.Tour) (*excelize.File, error) {
	f := excelize.NewFile()

	// Rename the default sheet rather than leaving an empty one behind
	if err := f.SetSheetName("Sheet1", GenerationsSheet); err != nil {
		f.Close()
		return nil, err
	}
	if err := writeRows(f, GenerationsSheet, []any{"Generation", "Distance", "Route"}, len(entries), func(i int) []any {
		e := entries[i]
		return []any{e.Generation, e.Distance, strings.Join(e.Route, " -> ")}
	}); err != nil {
		f.Close()
		return nil, err
	}

	if _, err := f.NewSheet(BestTourSheet); err != nil {
		f.Close()
		return nil, err
	}
	route := best.Route()
	var total float64
	if err := writeRows(f, BestTourSheet, []any{"Leg", "From", "To", "Distance", "Cumulative"}, len(route)-1, func(i int) []any {
		leg := framework.Distance(route[i], route[i+1])
		total += leg
		return []any{i + 1, route[i].Name, route[i+1].Name, leg, total}
	}); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

func writeRows(f *excelize.File, sheet string, header []any, n int, row func(i int) []any) error {
	cell, err := excelize.CoordinatesToCellName(1, 1)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &header); err != nil {
		return fmt.Errorf("writing %s header: %w", sheet, err)
	}
	for i := 0; i < n; i++ {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := row(i)
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("writing %s row %d: %w", sheet, i+2, err)
		}
	}
	return nil
}

// WriteReport writes the workbook built by NewReport to w.
func WriteReport(w io.Writer, entries []Entry, best framework.Tour) error {
	f, err := NewReport(entries, best)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.WriteTo(w)
	return err
}

// SaveReport writes the workbook built by NewReport to path.
func SaveReport(path string, entries []Entry, best framework.Tour) error {
	f, err := NewReport(entries, best)
	if err != nil {
		return err
	}
	defer f.Close()

	return f.SaveAs(path)
}
