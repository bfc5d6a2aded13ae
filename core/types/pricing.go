// Package types - Pricing types
package types

import "github.com/shopspring/decimal"

// PriceSource records which tier produced a quote
type PriceSource string

const (
	// PriceSourceCatalog is an exact pricebook entry
	PriceSourceCatalog PriceSource = "catalog"

	// PriceSourceCategory is a category-average approximation
	PriceSourceCategory PriceSource = "category"

	// PriceSourceNone means nothing matched
	PriceSourceNone PriceSource = "none"
)

// PriceQuote is a city-adjusted per-unit price for one ingredient.
// Only the rates the source defines are set.
type PriceQuote struct {
	// PerGram is the price of one gram
	PerGram *decimal.Decimal `json:"per_gram,omitempty"`

	// PerMl is the price of one milliliter
	PerMl *decimal.Decimal `json:"per_ml,omitempty"`

	// PerUnit is the price of one piece
	PerUnit *decimal.Decimal `json:"per_unit,omitempty"`

	// Source is the tier that produced the quote
	Source PriceSource `json:"source"`

	// Multiplier is the city factor already applied to the rates
	Multiplier decimal.Decimal `json:"multiplier"`
}

// Rate returns the rate matching the unit
func (q PriceQuote) Rate(unit Unit) (decimal.Decimal, bool) {
	var r *decimal.Decimal
	switch unit {
	case UnitGram:
		r = q.PerGram
	case UnitMilliliter:
		r = q.PerMl
	case UnitCount:
		r = q.PerUnit
	}
	if r == nil {
		return decimal.Zero, false
	}
	return *r, true
}

// Estimate returns quantity * matching rate, or nil when the unit has no rate
func (q PriceQuote) Estimate(quantity float64, unit Unit) *decimal.Decimal {
	rate, ok := q.Rate(unit)
	if !ok {
		return nil
	}
	est := decimal.NewFromFloat(quantity).Mul(rate)
	return &est
}

// StorageUnit is the retail unit a pricebook price is quoted in
type StorageUnit string

const (
	StorageKilogram StorageUnit = "kg"
	StorageLiter    StorageUnit = "l"
	StoragePiece    StorageUnit = "ud"
)

// IsValid checks if the storage unit is known
func (s StorageUnit) IsValid() bool {
	switch s {
	case StorageKilogram, StorageLiter, StoragePiece:
		return true
	default:
		return false
	}
}

// StoreKind classifies a suggested store
type StoreKind string

const (
	StoreHardDiscount StoreKind = "hard-discount"
	StoreSupermarket  StoreKind = "supermarket"
)

// StoreOption is a store the household could shop at
type StoreOption struct {
	Name string    `json:"name"`
	Kind StoreKind `json:"kind"`
}

// StoreSuggestion pairs the recommended store with alternatives
type StoreSuggestion struct {
	Suggested StoreOption   `json:"suggested"`
	Options   []StoreOption `json:"options"`
	MapsURL   string        `json:"maps_url,omitempty"`
}
