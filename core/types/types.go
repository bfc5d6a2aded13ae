// Package types defines core domain types shared across all layers.
// This package contains NO business logic - only type definitions.
package types

import "strings"

// Unit is the measure an ingredient quantity is expressed in
type Unit string

const (
	// UnitGram is a mass quantity in grams
	UnitGram Unit = "g"

	// UnitMilliliter is a volume quantity in milliliters
	UnitMilliliter Unit = "ml"

	// UnitCount is a count of discrete pieces
	UnitCount Unit = "ud"
)

// String returns the string representation of the unit
func (u Unit) String() string {
	return string(u)
}

// IsValid checks if the unit is one of the known units
func (u Unit) IsValid() bool {
	switch u {
	case UnitGram, UnitMilliliter, UnitCount:
		return true
	default:
		return false
	}
}

// IsBulk reports whether the unit is a mass or volume measure
func (u Unit) IsBulk() bool {
	return u == UnitGram || u == UnitMilliliter
}

// ParseUnit resolves a free-form unit label
func ParseUnit(s string) (Unit, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "g", "gr", "gram", "grams", "gramo", "gramos", "mass":
		return UnitGram, true
	case "ml", "milliliter", "milliliters", "millilitre", "millilitres", "mililitro", "mililitros", "volume":
		return UnitMilliliter, true
	case "ud", "u", "unit", "units", "unidad", "unidades", "count", "pc", "pcs":
		return UnitCount, true
	default:
		return "", false
	}
}

// Category is a shopping-list grouping
type Category string

const (
	CategoryProduce Category = "Produce"
	CategoryProtein Category = "Protein"
	CategoryGrains  Category = "Grains"
	CategoryDairy   Category = "Dairy"
	CategoryPantry  Category = "Pantry"
	CategoryCanned  Category = "Canned"
	CategoryOther   Category = "Other"
)

// Categories lists every category in declaration order
var Categories = []Category{
	CategoryProduce,
	CategoryProtein,
	CategoryGrains,
	CategoryDairy,
	CategoryPantry,
	CategoryCanned,
	CategoryOther,
}

// String returns the string representation
func (c Category) String() string {
	return string(c)
}

// IsValid checks if the category is a known category
func (c Category) IsValid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// ParseCategory resolves a category label case-insensitively
func ParseCategory(s string) (Category, bool) {
	s = strings.TrimSpace(s)
	for _, c := range Categories {
		if strings.EqualFold(s, string(c)) {
			return c, true
		}
	}
	return "", false
}

// MealType selects which meal of the day a weekly plan covers
type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
)

// String returns the string representation
func (m MealType) String() string {
	return string(m)
}

// ParseMealType resolves a meal label, defaulting to lunch
func ParseMealType(s string) MealType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "breakfast", "breakfasts", "desayuno", "desayunos":
		return MealBreakfast
	case "dinner", "dinners", "cena", "cenas":
		return MealDinner
	default:
		return MealLunch
	}
}

// Currency represents a currency code
type Currency string

const (
	CurrencyCOP Currency = "COP"
)

// String returns the string representation
func (c Currency) String() string {
	return string(c)
}
