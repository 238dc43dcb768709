package app

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/klog/v2/ktesting"
	"sigs.k8s.io/yaml"

	"github.com/worldtour/tspga/apis/config/v1alpha1"
)

const simulationYAML = `apiVersion: tspga.worldtour.io/v1alpha1
kind: TourSimulation
metadata:
  name: canada
spec:
  populationSize: 20
  numberOfGenerations: 15
  seed: 9
  locationsFile: ca.json
`

const citiesJSON = `[
  {"city": "Toronto", "lat": "43.6532", "lng": "-79.3832"},
  {"city": "Montreal", "lat": "45.5017", "lng": "-73.5673"},
  {"city": "Vancouver", "lat": "49.2827", "lng": "-123.1207"},
  {"city": "Calgary", "lat": "51.0447", "lng": "-114.0719"},
  {"city": "Halifax", "lat": "44.6488", "lng": "-63.5752"}
]`

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	_, ctx := ktesting.NewTestContext(t)

	var out bytes.Buffer
	cmd := NewCommand()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	err := cmd.ExecuteContext(ctx)
	return out.String(), err
}

func writeSimulation(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ca.json"), []byte(citiesJSON), 0o644))
	path := filepath.Join(dir, "simulation.yaml")
	require.NoError(t, os.WriteFile(path, []byte(simulationYAML), 0o644))
	return path
}

func TestRunFileYAML(t *testing.T) {
	out, err := execute(t, "run", "-f", writeSimulation(t), "-o", "yaml")
	require.NoError(t, err)

	var obj v1alpha1.TourSimulation
	require.NoError(t, yaml.Unmarshal([]byte(out), &obj))
	assert.Equal(t, "canada", obj.Name)
	assert.Equal(t, v1alpha1.TourSimulationPhaseSucceeded, obj.Status.Phase)
	assert.Equal(t, 15, obj.Status.GenerationsCompleted)
	require.Len(t, obj.Status.Route, 6)
	assert.Equal(t, "Toronto", obj.Status.Route[0])
	assert.Equal(t, "Toronto", obj.Status.Route[5])
	assert.Equal(t, uint64(9), *obj.Status.Seed)
}

func TestRunOverridesAndArtifacts(t *testing.T) {
	dir := t.TempDir()
	report := filepath.Join(dir, "report.xlsx")
	plots := filepath.Join(dir, "plots")

	out, err := execute(t, "run", "-f", writeSimulation(t), "-o", "json",
		"--generations", "4", "--seed", "11", "--workers", "2",
		"--plot-dir", plots, "--report", report, "--metrics-addr", "127.0.0.1:0")
	require.NoError(t, err)

	var obj v1alpha1.TourSimulation
	require.NoError(t, json.Unmarshal([]byte(out), &obj))
	assert.Equal(t, 4, obj.Status.GenerationsCompleted)
	assert.Equal(t, 4, *obj.Spec.NumberOfGenerations)
	assert.Equal(t, 2, obj.Spec.Workers)
	assert.Equal(t, uint64(11), *obj.Status.Seed)

	for _, path := range []string{
		report,
		filepath.Join(plots, "canada_convergence.html"),
		filepath.Join(plots, "canada_tour.html"),
	} {
		_, err := os.Stat(path)
		assert.NoError(t, err, path)
	}
}

func TestRunBenchmarkText(t *testing.T) {
	out, err := execute(t, "run", "--benchmark", "square", "--seed", "1", "--generations", "50")
	require.NoError(t, err)

	assert.Contains(t, out, "Simulation:   square")
	assert.Contains(t, out, "Phase:        Succeeded")
	assert.Contains(t, out, "Generations:  50")
	assert.Contains(t, out, "Distance:     4\n")
	assert.Contains(t, out, "Route:        A -> ")
}

func TestRunBenchmarkDeterministic(t *testing.T) {
	first, err := execute(t, "run", "--benchmark", "polygon:9", "--seed", "5", "--generations", "30", "-o", "json")
	require.NoError(t, err)
	second, err := execute(t, "run", "--benchmark", "polygon:9", "--seed", "5", "--generations", "30", "--workers", "1", "-o", "json")
	require.NoError(t, err)

	var a, b v1alpha1.TourSimulation
	require.NoError(t, json.Unmarshal([]byte(first), &a))
	require.NoError(t, json.Unmarshal([]byte(second), &b))
	assert.Equal(t, a.Status.Route, b.Status.Route)
	assert.Equal(t, a.Status.BestDistance, b.Status.BestDistance)
	assert.Contains(t, a.Annotations, v1alpha1.GroupName+"/known-optimum")
}

func TestRunErrors(t *testing.T) {
	tests := map[string][]string{
		"no input":         {"run"},
		"both inputs":      {"run", "-f", "x.yaml", "--benchmark", "square"},
		"bad output":       {"run", "--benchmark", "square", "-o", "xml"},
		"bad benchmark":    {"run", "--benchmark", "zdt1"},
		"missing file":     {"run", "-f", filepath.Join(t.TempDir(), "missing.yaml")},
		"bad generations":  {"run", "--benchmark", "square", "--generations", "-1"},
		"unexpected args":  {"run", "--benchmark", "square", "extra"},
		"unknown strategy": nil,
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("spec:\n  selection: rank\n  locations: [{name: A, x: 0, y: 0}, {name: B, x: 1, y: 0}]\n"), 0o644))
	tests["unknown strategy"] = []string{"run", "-f", bad}

	for name, args := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := execute(t, args...)
			assert.Error(t, err)
		})
	}
}
