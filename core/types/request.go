// Package types - Plan request types
package types

import (
	"fmt"
	"strings"
)

// InputSource indicates the origin of a request
type InputSource string

const (
	SourceCLI InputSource = "cli"
	SourceAPI InputSource = "api"
)

// String returns the string representation
func (s InputSource) String() string {
	return string(s)
}

// PlanRequest carries everything the pipeline needs for one weekly plan
type PlanRequest struct {
	// Location is a free-form city string, e.g. "Bogotá, CO"
	Location string `json:"location"`

	// Headcount is the number of people; callers guarantee > 0
	Headcount int `json:"headcount"`

	// MealType selects the recipe table
	MealType MealType `json:"meal_type"`

	// Mode is the time budget per preparation, echoed on the plan
	Mode string `json:"mode,omitempty"`

	// Diet is the dietary constraint, echoed on the plan
	Diet string `json:"diet,omitempty"`

	// ExternalMenu is untrusted generative output; nil when absent
	ExternalMenu any `json:"menu,omitempty"`

	// Source is where the request came from
	Source InputSource `json:"-"`
}

// Validate checks the caller contract
func (r *PlanRequest) Validate() error {
	if r.Headcount <= 0 {
		return fmt.Errorf("headcount must be a positive integer, got %d", r.Headcount)
	}
	if strings.TrimSpace(r.Location) == "" {
		return fmt.Errorf("location is required")
	}
	return nil
}
