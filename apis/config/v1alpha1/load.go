/*
Copyright 2024 The Kubernetes Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/


package v1alpha1

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"sigs.k8s.io/yaml"
)

// Load reads a TourSimulation from a YAML or JSON file and applies defaults.
// A relative locationsFile is resolved against the file's directory.
func Load(path string) (*TourSimulation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	obj, err := Decode(data, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return obj, nil
}

// Decode parses data strictly: unknown fields are errors. Locations from
// spec.locationsFile, resolved against baseDir, are appended to
// spec.locations before defaults are applied.
func Decode(data []byte, baseDir string) (*TourSimulation, error) {
	obj := &TourSimulation{}
	if err := yaml.UnmarshalStrict(data, obj); err != nil {
		return nil, err
	}
	if obj.APIVersion != "" && obj.APIVersion != SchemeGroupVersion.String() {
		return nil, fmt.Errorf("unsupported apiVersion %q, want %q", obj.APIVersion, SchemeGroupVersion.String())
	}
	if obj.Kind != "" && obj.Kind != Kind {
		return nil, fmt.Errorf("unsupported kind %q, want %q", obj.Kind, Kind)
	}

	if file := obj.Spec.LocationsFile; file != "" {
		if !filepath.IsAbs(file) {
			file = filepath.Join(baseDir, file)
		}
		locs, err := LoadLocationsFile(file)
		if err != nil {
			return nil, err
		}
		obj.Spec.Locations = append(obj.Spec.Locations, locs...)
	}

	SetDefaults_TourSimulation(obj)
	return obj, nil
}

// cityRecord is one entry of a locations file: {"city": "Toronto",
// "lat": "43.6532", "lng": "-79.3832"}.
type cityRecord struct {
	City string     `json:"city"`
	Lat  coordinate `json:"lat"`
	Lng  coordinate `json:"lng"`
}

// coordinate accepts both a JSON number and a string holding one.
type coordinate float64

func (c *coordinate) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("coordinate %q is not a number", s)
		}
		*c = coordinate(f)
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*c = coordinate(f)
	return nil
}

// LoadLocationsFile reads a JSON (or YAML) list of city records. Latitude maps
// to X and longitude to Y.
func LoadLocationsFile(path string) ([]Location, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var records []cityRecord
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing locations file %s: %w", path, err)
	}

	locs := make([]Location, 0, len(records))
	for i, r := range records {
		if r.City == "" {
			return nil, fmt.Errorf("parsing locations file %s: entry %d has no city", path, i)
		}
		locs = append(locs, Location{Name: r.City, X: float64(r.Lat), Y: float64(r.Lng)})
	}
	return locs, nil
}
