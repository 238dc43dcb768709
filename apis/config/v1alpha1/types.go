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
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// TourSimulation describes one genetic algorithm run over a set of locations,
// and records how far it got.
// +k8s:deepcopy-gen:interfaces=k8s.io/apimachinery/pkg/runtime.Object
// +kubebuilder:object:root=true
// +kubebuilder:resource:shortName={tour,tours}
// +kubebuilder:subresource:status
// +kubebuilder:printcolumn:name="Phase",JSONPath=".status.phase",type=string,description="Current phase of the simulation"
// +kubebuilder:printcolumn:name="Generations",JSONPath=".status.generationsCompleted",type=integer,description="Generations evolved so far"
// +kubebuilder:printcolumn:name="Distance",JSONPath=".status.bestDistance",type=number,description="Distance of the fittest tour"
type TourSimulation struct {
	metav1.TypeMeta   `json:",inline"`
	metav1.ObjectMeta `json:"metadata,omitempty"`

	Spec   TourSimulationSpec   `json:"spec,omitempty"`
	Status TourSimulationStatus `json:"status,omitempty"`
}

// TourSimulationSpec defines the problem and the algorithm parameters
type TourSimulationSpec struct {
	// PopulationSize is the number of tours in every generation
	PopulationSize int `json:"populationSize,omitempty"`

	// NumberOfGenerations is how many generations a run evolves
	NumberOfGenerations *int `json:"numberOfGenerations,omitempty"`

	// MutationRate is the percentage chance, in [0,100], that a child is mutated
	MutationRate *float64 `json:"mutationRate,omitempty"`

	// Selection names the parent selection strategy
	// +kubebuilder:validation:Enum=threshold;roulette;tournament
	Selection string `json:"selection,omitempty"`

	// Crossover names the crossover strategy
	// +kubebuilder:validation:Enum=splice;two-point
	Crossover string `json:"crossover,omitempty"`

	// Mutation names the mutation strategy
	// +kubebuilder:validation:Enum=swap
	Mutation string `json:"mutation,omitempty"`

	// Workers bounds the goroutines building one generation. 0 uses every CPU.
	Workers int `json:"workers,omitempty"`

	// Seed makes the run reproducible. A random seed is used when unset.
	Seed *uint64 `json:"seed,omitempty"`

	// Start is where every tour begins and ends. Defaults to the first location.
	Start *Location `json:"start,omitempty"`

	// Locations are the stops every tour visits
	Locations []Location `json:"locations,omitempty"`

	// LocationsFile is a JSON file of {"city","lat","lng"} records appended to
	// Locations. Relative paths are resolved against the config file.
	LocationsFile string `json:"locationsFile,omitempty"`
}

// Location is a named point. Latitude and longitude map to X and Y.
type Location struct {
	Name string  `json:"name"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// TourSimulationStatus defines the observed state of TourSimulation
type TourSimulationStatus struct {
	// Phase represents the current phase of the simulation
	// +kubebuilder:validation:Enum=Pending;Running;Succeeded;Cancelled;Failed
	Phase TourSimulationPhase `json:"phase,omitempty"`

	// RunID identifies the engine instance in logs
	RunID string `json:"runID,omitempty"`

	// Seed is the seed the run actually used
	Seed *uint64 `json:"seed,omitempty"`

	// GenerationsCompleted is the number of generations evolved
	GenerationsCompleted int `json:"generationsCompleted,omitempty"`

	// BestDistance is the total distance of the fittest tour
	BestDistance float64 `json:"bestDistance,omitempty"`

	// Route lists the location names of the fittest tour, start to start
	Route []string `json:"route,omitempty"`

	// StartTime is when the run began
	StartTime *metav1.Time `json:"startTime,omitempty"`

	// CompletionTime is when the run ended, whatever the outcome
	CompletionTime *metav1.Time `json:"completionTime,omitempty"`

	// Message explains a Failed or Cancelled phase
	Message string `json:"message,omitempty"`
}

// TourSimulationPhase represents the phase of a simulation
type TourSimulationPhase string

const (
	// TourSimulationPhasePending indicates the simulation has not started
	TourSimulationPhasePending TourSimulationPhase = "Pending"

	// TourSimulationPhaseRunning indicates generations are being evolved
	TourSimulationPhaseRunning TourSimulationPhase = "Running"

	// TourSimulationPhaseSucceeded indicates every requested generation was evolved
	TourSimulationPhaseSucceeded TourSimulationPhase = "Succeeded"

	// TourSimulationPhaseCancelled indicates the run was stopped early
	TourSimulationPhaseCancelled TourSimulationPhase = "Cancelled"

	// TourSimulationPhaseFailed indicates a strategy returned an error
	TourSimulationPhaseFailed TourSimulationPhase = "Failed"
)

// +kubebuilder:object:root=true
// +k8s:deepcopy-gen:interfaces=k8s.io/apimachinery/pkg/runtime.Object

// TourSimulationList contains a list of TourSimulation
type TourSimulationList struct {
	metav1.TypeMeta `json:",inline"`
	metav1.ListMeta `json:"metadata,omitempty"`
	Items           []TourSimulation `json:"items"`
}
