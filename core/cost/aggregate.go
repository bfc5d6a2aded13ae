// Package cost prices a consolidated shopping list.
// Each line is rounded to whole currency units, each category subtotal is
// rounded again and the buffer is applied to the sum of subtotals.
package cost

import (
	"github.com/shopspring/decimal"

	"grocery-cost/core/consolidate"
	"grocery-cost/core/types"
)

// DefaultNote explains the estimate to the reader
const DefaultNote = "Estimated with the local pricebook (+10% buffer). Prices vary by store and season."

// BufferMultiplier is applied to the subtotal to absorb price variance
var BufferMultiplier = decimal.RequireFromString("1.10")

// Classifier assigns a category to a canonical ingredient name
type Classifier interface {
	Classify(name string) types.Category
}

// LinePricer prices one line at an already bound location.
// A nil estimate means no rate matches the line's unit.
type LinePricer interface {
	Estimate(line types.IngredientLine, category types.Category) (*decimal.Decimal, types.PriceSource)
}

// Aggregator groups lines by category and totals their cost
type Aggregator struct {
	classifier Classifier
	note       string
}

// NewAggregator creates an aggregator
func NewAggregator(classifier Classifier) *Aggregator {
	return &Aggregator{classifier: classifier, note: DefaultNote}
}

// Aggregate builds the shopping list and cost summary for consolidated lines.
// Category order follows first encounter. Input lines are not modified.
func (a *Aggregator) Aggregate(lines []types.IngredientLine, pricer LinePricer, currency types.Currency) (types.ShoppingList, *types.CostSummary) {
	var list types.ShoppingList
	groups := make(map[types.Category]int)
	summary := &types.CostSummary{
		Subtotal:         decimal.Zero,
		Total:            decimal.Zero,
		BufferMultiplier: BufferMultiplier,
		Currency:         currency,
		Note:             a.note,
	}

	priced := make([]types.IngredientLine, 0, len(lines))
	for _, line := range lines {
		category := a.classifier.Classify(line.Name)
		est, source := pricer.Estimate(line, category)

		line.EstimatedCost = est
		switch {
		case est == nil:
			summary.Coverage.Unpriced++
		case source == types.PriceSourceCatalog:
			summary.Coverage.Exact++
		default:
			summary.Coverage.Approximate++
		}

		i, ok := groups[category]
		if !ok {
			i = len(list)
			groups[category] = i
			list = append(list, types.CategoryItems{Category: category})
		}
		list[i].Items = append(list[i].Items, line)
		priced = append(priced, line)
	}

	for _, group := range list {
		sum := decimal.Zero
		for _, item := range group.Items {
			sum = sum.Add(item.CostOrZero())
		}
		sub := sum.Round(0)
		summary.ByCategory = append(summary.ByCategory, types.CategoryCost{Category: group.Category, Subtotal: sub})
		summary.Subtotal = summary.Subtotal.Add(sub)
	}

	summary.Total = summary.Subtotal.Mul(BufferMultiplier).Round(0)
	summary.Detail = consolidate.SortByCost(priced)
	return list, summary
}
