// Package consolidate merges a week of ingredient lines into one line per
// canonical name and unit.
package consolidate

import (
	"sort"

	"grocery-cost/core/normalize"
	"grocery-cost/core/quantity"
	"grocery-cost/core/types"
)

type key struct {
	name string
	unit types.Unit
}

// Consolidate groups lines by (canonical name, unit) in first-encounter order.
// Quantities are summed and rounded once; estimates are not carried over.
// Lines with the same name but different units stay separate.
// Sums beyond quantity.MaxQuantity, overflow included, are capped there.
func Consolidate(lines []types.IngredientLine, n *normalize.Normalizer) []types.IngredientLine {
	index := make(map[key]int, len(lines))
	out := make([]types.IngredientLine, 0, len(lines))

	for _, line := range lines {
		k := key{name: n.Canonical(line.Name), unit: line.Unit}
		if i, ok := index[k]; ok {
			out[i].Quantity += line.Quantity
			continue
		}
		index[k] = len(out)
		out = append(out, types.IngredientLine{Name: k.name, Quantity: line.Quantity, Unit: line.Unit})
	}

	for i := range out {
		out[i].Quantity = quantity.Round(out[i].Quantity, out[i].Unit)
	}
	return out
}

// SortByCost orders lines by estimate, most expensive first.
// Missing estimates count as zero. Ties keep their input order.
func SortByCost(lines []types.IngredientLine) []types.IngredientLine {
	sorted := make([]types.IngredientLine, len(lines))
	copy(sorted, lines)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CostOrZero().GreaterThan(sorted[j].CostOrZero())
	})
	return sorted
}
