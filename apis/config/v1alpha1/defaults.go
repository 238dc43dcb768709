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

const (
	SelectionThreshold  = "threshold"
	SelectionRoulette   = "roulette"
	SelectionTournament = "tournament"

	CrossoverSplice   = "splice"
	CrossoverTwoPoint = "two-point"

	MutationSwap = "swap"
)

var (
	DefaultPopulationSize      = 50
	DefaultNumberOfGenerations = 200
	DefaultMutationRate        = 1.5
	DefaultSelection           = SelectionThreshold
	DefaultCrossover           = CrossoverSplice
	DefaultMutation            = MutationSwap
)

// SetDefaults_TourSimulation fills in every unset field. When no start is
// given, the first location becomes the start.
func SetDefaults_TourSimulation(obj *TourSimulation) {
	if obj.APIVersion == "" {
		obj.APIVersion = SchemeGroupVersion.String()
	}
	if obj.Kind == "" {
		obj.Kind = Kind
	}

	spec := &obj.Spec
	if spec.PopulationSize == 0 {
		spec.PopulationSize = DefaultPopulationSize
	}
	if spec.NumberOfGenerations == nil {
		n := DefaultNumberOfGenerations
		spec.NumberOfGenerations = &n
	}
	if spec.MutationRate == nil {
		rate := DefaultMutationRate
		spec.MutationRate = &rate
	}
	if spec.Selection == "" {
		spec.Selection = DefaultSelection
	}
	if spec.Crossover == "" {
		spec.Crossover = DefaultCrossover
	}
	if spec.Mutation == "" {
		spec.Mutation = DefaultMutation
	}
	if spec.Start == nil && len(spec.Locations) > 0 {
		start := spec.Locations[0]
		spec.Start = &start
		spec.Locations = spec.Locations[1:]
	}

	if obj.Status.Phase == "" {
		obj.Status.Phase = TourSimulationPhasePending
	}
}
