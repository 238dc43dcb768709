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
	"fmt"
	"math"

	"k8s.io/apimachinery/pkg/util/validation/field"
)

var (
	supportedSelections = []string{SelectionThreshold, SelectionRoulette, SelectionTournament}
	supportedCrossovers = []string{CrossoverSplice, CrossoverTwoPoint}
	supportedMutations  = []string{MutationSwap}
)

// ValidateTourSimulation validates a defaulted TourSimulation.
func ValidateTourSimulation(obj *TourSimulation) field.ErrorList {
	return ValidateTourSimulationSpec(&obj.Spec, field.NewPath("spec"))
}

// ValidateTourSimulationSpec validates the algorithm parameters and the
// locations of spec.
func ValidateTourSimulationSpec(spec *TourSimulationSpec, fldPath *field.Path) field.ErrorList {
	var allErrs field.ErrorList

	if spec.PopulationSize <= 0 {
		allErrs = append(allErrs, field.Invalid(fldPath.Child("populationSize"), spec.PopulationSize, "must be greater than zero"))
	} else if spec.Selection == SelectionRoulette && spec.PopulationSize < 2 {
		allErrs = append(allErrs, field.Invalid(fldPath.Child("populationSize"), spec.PopulationSize, "roulette selection needs at least 2 tours"))
	}
	if spec.NumberOfGenerations != nil && *spec.NumberOfGenerations < 0 {
		allErrs = append(allErrs, field.Invalid(fldPath.Child("numberOfGenerations"), *spec.NumberOfGenerations, "must not be negative"))
	}
	if spec.MutationRate != nil {
		if rate := *spec.MutationRate; math.IsNaN(rate) || rate < 0 || rate > 100 {
			allErrs = append(allErrs, field.Invalid(fldPath.Child("mutationRate"), rate, "must be a percentage in [0,100]"))
		}
	}
	allErrs = append(allErrs, validateOneOf(spec.Selection, supportedSelections, fldPath.Child("selection"))...)
	allErrs = append(allErrs, validateOneOf(spec.Crossover, supportedCrossovers, fldPath.Child("crossover"))...)
	allErrs = append(allErrs, validateOneOf(spec.Mutation, supportedMutations, fldPath.Child("mutation"))...)
	if spec.Workers < 0 {
		allErrs = append(allErrs, field.Invalid(fldPath.Child("workers"), spec.Workers, "must not be negative"))
	}

	allErrs = append(allErrs, validateLocations(spec, fldPath)...)
	return allErrs
}

func validateOneOf(value string, supported []string, fldPath *field.Path) field.ErrorList {
	for _, s := range supported {
		if value == s {
			return nil
		}
	}
	return field.ErrorList{field.NotSupported(fldPath, value, supported)}
}

func validateLocations(spec *TourSimulationSpec, fldPath *field.Path) field.ErrorList {
	var allErrs field.ErrorList

	names := map[string]bool{}
	if spec.Start == nil {
		allErrs = append(allErrs, field.Required(fldPath.Child("start"), "a start location is required"))
	} else {
		allErrs = append(allErrs, validateLocation(*spec.Start, fldPath.Child("start"))...)
		names[spec.Start.Name] = true
	}

	locPath := fldPath.Child("locations")
	if len(spec.Locations) == 0 {
		allErrs = append(allErrs, field.Required(locPath, "at least one location besides the start is required"))
	}
	for i, loc := range spec.Locations {
		idxPath := locPath.Index(i)
		allErrs = append(allErrs, validateLocation(loc, idxPath)...)
		if loc.Name == "" {
			continue
		}
		if names[loc.Name] {
			allErrs = append(allErrs, field.Duplicate(idxPath.Child("name"), loc.Name))
		}
		names[loc.Name] = true
	}
	return allErrs
}

func validateLocation(loc Location, fldPath *field.Path) field.ErrorList {
	var allErrs field.ErrorList
	if loc.Name == "" {
		allErrs = append(allErrs, field.Required(fldPath.Child("name"), ""))
	}
	for _, c := range []struct {
		name  string
		value float64
	}{{"x", loc.X}, {"y", loc.Y}} {
		if math.IsNaN(c.value) || math.IsInf(c.value, 0) {
			allErrs = append(allErrs, field.Invalid(fldPath.Child(c.name), fmt.Sprint(c.value), "must be a finite number"))
		}
	}
	return allErrs
}

// IsMissingLocations reports whether errs contains the error for a spec
// without locations to visit.
func IsMissingLocations(errs field.ErrorList) bool {
	for _, err := range errs {
		if err.Type == field.ErrorTypeRequired && err.Field == "spec.locations" {
			return true
		}
	}
	return false
}
