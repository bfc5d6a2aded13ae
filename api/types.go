// Package api - API types for weekly plan estimation
// These types define the contract for POST /api/v1/plans.
// The API is stateless and deterministic: equal requests yield equal plans.
package api

import (
	"time"

	"grocery-cost/core/types"
)

// PlanRequest is the input to POST /api/v1/plans.
// Omitted fields take the configured defaults.
type PlanRequest struct {
	// Location is a free-form city string
	Location string `json:"location"`

	// Headcount is the number of people; nil uses the default
	Headcount *int `json:"headcount"`

	// MealType is breakfast, lunch or dinner
	MealType string `json:"meal_type"`

	// Mode is the time budget per preparation
	Mode string `json:"mode,omitempty"`

	// Diet is the dietary constraint
	Diet string `json:"diet,omitempty"`

	// Menu is an externally generated menu, either the 7-day array or
	// an object wrapping it under "menu"
	Menu any `json:"menu,omitempty"`
}

// PlanResponse wraps a plan with request metadata
type PlanResponse struct {
	RequestID string            `json:"request_id"`
	Plan      *types.WeeklyPlan `json:"plan"`
	Metadata  ResponseMetadata  `json:"metadata"`
}

// ResponseMetadata describes how the plan was produced
type ResponseMetadata struct {
	EngineVersion string `json:"engine_version"`
	PricebookHash string `json:"pricebook_hash"`
	DurationMs    int64  `json:"duration_ms"`
}

// ErrorResponse is returned for every failed request
type ErrorResponse struct {
	Error     string         `json:"error"`
	Code      string         `json:"code"`
	RequestID string         `json:"request_id,omitempty"`
	Details   map[string]any `json:"details,omitempty"`
}

// HealthResponse is returned by GET /api/v1/health
type HealthResponse struct {
	Status    string    `json:"status"`
	Version   string    `json:"version"`
	Timestamp time.Time `json:"timestamp"`
	Cities    int       `json:"cities"`
	Items     int       `json:"items"`
}

// VersionResponse is returned by GET /api/v1/version
type VersionResponse struct {
	Version    string `json:"version"`
	Engine     string `json:"engine"`
	APIVersion string `json:"api_version"`
}

// CityResponse is one entry of GET /api/v1/cities
type CityResponse struct {
	Key        string `json:"key"`
	Multiplier string `json:"multiplier"`
}

// CitiesResponse is returned by GET /api/v1/cities
type CitiesResponse struct {
	Currency types.Currency `json:"currency"`
	Cities   []CityResponse `json:"cities"`
}
