package benchmarks

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/worldtour/tspga/pkg/tsp/framework"
)

// ByName resolves "square" or "polygon:<n>" (radius 1).
func ByName(name string) (framework.Problem, error) {
	switch {
	case strings.EqualFold(name, "square"):
		return NewSquare(), nil
	case strings.HasPrefix(strings.ToLower(name), "polygon:"):
		n, err := strconv.Atoi(name[len("polygon:"):])
		if err != nil {
			return nil, fmt.Errorf("invalid polygon size in %q: %w", name, err)
		}
		return NewRegularPolygon(n, 1)
	}
	return nil, fmt.Errorf("unknown benchmark %q, want \"square\" or \"polygon:<n>\"", name)
}
