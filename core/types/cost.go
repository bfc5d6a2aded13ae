// Package types - Cost summary types
package types

import "github.com/shopspring/decimal"

// IngredientLine is one quantity of one ingredient.
// Name is free text until normalized.
type IngredientLine struct {
	// Name is the ingredient name
	Name string `json:"name"`

	// Quantity is in grams, milliliters or pieces depending on Unit
	Quantity float64 `json:"quantity"`

	// Unit is the measure
	Unit Unit `json:"unit"`

	// EstimatedCost is nil when no rate matches the unit
	EstimatedCost *decimal.Decimal `json:"estimated_cost,omitempty"`
}

// CostOrZero returns the estimate, treating a missing one as zero
func (l IngredientLine) CostOrZero() decimal.Decimal {
	if l.EstimatedCost == nil {
		return decimal.Zero
	}
	return *l.EstimatedCost
}

// CategoryItems groups consolidated lines under one category
type CategoryItems struct {
	Category Category         `json:"category"`
	Items    []IngredientLine `json:"items"`
}

// ShoppingList is ordered by first category encountered
type ShoppingList []CategoryItems

// Find returns the items for a category
func (s ShoppingList) Find(c Category) ([]IngredientLine, bool) {
	for _, group := range s {
		if group.Category == c {
			return group.Items, true
		}
	}
	return nil, false
}

// Len returns the number of lines across all categories
func (s ShoppingList) Len() int {
	n := 0
	for _, group := range s {
		n += len(group.Items)
	}
	return n
}

// CategoryCost is the subtotal of one category
type CategoryCost struct {
	Category Category        `json:"category"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

// Coverage counts how consolidated lines were priced
type Coverage struct {
	// Exact lines were priced from a pricebook item
	Exact int `json:"exact"`

	// Approximate lines were priced from category rates
	Approximate int `json:"approximate"`

	// Unpriced lines had no matching rate
	Unpriced int `json:"unpriced"`
}

// Total returns the number of lines counted
func (c Coverage) Total() int {
	return c.Exact + c.Approximate + c.Unpriced
}

// CostSummary is the priced outcome of a weekly shopping list
type CostSummary struct {
	// ByCategory holds subtotals in shopping-list order
	ByCategory []CategoryCost `json:"by_category"`

	// Subtotal is the sum of category subtotals
	Subtotal decimal.Decimal `json:"subtotal"`

	// Total is Subtotal with the buffer applied
	Total decimal.Decimal `json:"total"`

	// BufferMultiplier is the factor applied to Subtotal
	BufferMultiplier decimal.Decimal `json:"buffer_multiplier"`

	// Currency is the cost currency
	Currency Currency `json:"currency"`

	// Note explains the estimate to the reader
	Note string `json:"note"`

	// Detail lists every priced line, most expensive first
	Detail []IngredientLine `json:"detail"`

	// Coverage counts exact, approximate and unpriced lines
	Coverage Coverage `json:"coverage"`
}

// SubtotalFor returns the subtotal of a category
func (s *CostSummary) SubtotalFor(c Category) (decimal.Decimal, bool) {
	for _, cc := range s.ByCategory {
		if cc.Category == c {
			return cc.Subtotal, true
		}
	}
	return decimal.Zero, false
}
