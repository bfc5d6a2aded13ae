// Package pricing resolves ingredient prices from a pricebook.
// Resolution is exact entry first, then category average, then nothing.
package pricing

import (
	"strings"

	"github.com/shopspring/decimal"

	"grocery-cost/core/normalize"
	"grocery-cost/core/types"
)

var (
	thousand = decimal.NewFromInt(1000)
	one      = decimal.NewFromInt(1)
)

// Resolver quotes prices against one pricebook
type Resolver struct {
	book *Pricebook
}

// NewResolver creates a resolver.
// A nil pricebook is a wiring error and panics.
func NewResolver(book *Pricebook) *Resolver {
	if book == nil {
		panic("INVARIANT VIOLATED: resolver requires a pricebook")
	}
	return &Resolver{book: book}
}

// Pricebook returns the underlying pricebook
func (r *Resolver) Pricebook() *Pricebook {
	return r.book
}

// CityMultiplier returns the multiplier of the first city, in pricebook order,
// whose key is a substring of the folded location. Defaults to 1.
func (r *Resolver) CityMultiplier(location string) decimal.Decimal {
	loc := normalize.Fold(location)
	if loc == "" {
		return one
	}
	for _, c := range r.book.cities {
		if strings.Contains(loc, c.Key) {
			return c.Multiplier
		}
	}
	return one
}

// Locate binds the resolver to a location so the multiplier is computed once
func (r *Resolver) Locate(location string) Local {
	return Local{book: r.book, multiplier: r.CityMultiplier(location)}
}

// Quote prices one canonical ingredient at a location
func (r *Resolver) Quote(name string, category types.Category, location string) types.PriceQuote {
	return r.Locate(location).Quote(name, category)
}

// Local is a resolver bound to a city multiplier
type Local struct {
	book       *Pricebook
	multiplier decimal.Decimal
}

// Multiplier returns the bound city multiplier
func (l Local) Multiplier() decimal.Decimal {
	return l.multiplier
}

// Quote resolves the per-gram, per-ml and per-unit rates for an ingredient.
// An exact entry only sets the rate of its own storage unit; the category
// average is not consulted for the other units.
func (l Local) Quote(name string, category types.Category) types.PriceQuote {
	q := types.PriceQuote{Source: types.PriceSourceNone, Multiplier: l.multiplier}

	if item, ok := l.book.Item(name); ok {
		q.Source = types.PriceSourceCatalog
		price := item.Price.Mul(l.multiplier)
		switch item.Unit {
		case types.StorageKilogram:
			q.PerGram = ptr(price.Div(thousand))
		case types.StorageLiter:
			q.PerMl = ptr(price.Div(thousand))
		case types.StoragePiece:
			q.PerUnit = ptr(price)
		}
		return q
	}

	rate, ok := l.book.CategoryRate(category)
	if !ok {
		return q
	}
	q.Source = types.PriceSourceCategory
	if rate.PerKg != nil {
		q.PerGram = ptr(rate.PerKg.Mul(l.multiplier).Div(thousand))
	}
	if rate.PerL != nil {
		q.PerMl = ptr(rate.PerL.Mul(l.multiplier).Div(thousand))
	}
	if rate.PerUnit != nil {
		q.PerUnit = ptr(rate.PerUnit.Mul(l.multiplier))
	}
	if q.PerGram == nil && q.PerMl == nil && q.PerUnit == nil {
		q.Source = types.PriceSourceNone
	}
	return q
}

// Estimate prices a line, rounded to the nearest whole currency unit.
// The estimate is nil when no rate matches the line's unit.
func (l Local) Estimate(line types.IngredientLine, category types.Category) (*decimal.Decimal, types.PriceSource) {
	q := l.Quote(line.Name, category)
	est := q.Estimate(line.Quantity, line.Unit)
	if est == nil {
		return nil, q.Source
	}
	return ptr(est.Round(0)), q.Source
}

func ptr(d decimal.Decimal) *decimal.Decimal {
	return &d
}
