package algorithms

import (
	"sort"

	"github.com/worldtour/tspga/pkg/tsp/framework"
)

var (
	home   = framework.Location{Name: "A", X: 0, Y: 0}
	square = []framework.Location{
		{Name: "B", X: 1, Y: 0},
		{Name: "C", X: 1, Y: 1},
		{Name: "D", X: 0, Y: 1},
	}
	cities = []framework.Location{
		{Name: "c1", X: 3, Y: 7},
		{Name: "c2", X: 9, Y: 1},
		{Name: "c3", X: 4, Y: 4},
		{Name: "c4", X: 8, Y: 8},
		{Name: "c5", X: 1, Y: 9},
		{Name: "c6", X: 6, Y: 2},
		{Name: "c7", X: 2, Y: 3},
		{Name: "c8", X: 7, Y: 5},
	}
)

func sortedNames(locs []framework.Location) []string {
	out := make([]string, len(locs))
	for i, l := range locs {
		out[i] = l.Name
	}
	sort.Strings(out)
	return out
}

func reversed(locs []framework.Location) []framework.Location {
	out := make([]framework.Location, len(locs))
	for i, l := range locs {
		out[len(locs)-1-i] = l
	}
	return out
}
