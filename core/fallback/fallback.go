// Package fallback generates the built-in weekly menu.
// It is used whenever no usable external menu is available and never fails.
package fallback

import (
	"grocery-cost/core/quantity"
	"grocery-cost/core/types"
)

// Steps are attached to every built-in dish
var Steps = []string{"Chop", "Sauté", "Simmer", "Serve"}

// Tip is attached to every built-in dish
const Tip = "Plan around leftovers and shared bases."

// Generate scales the built-in week for a headcount.
// Non-positive headcounts produce zero quantities.
func Generate(headcount int, meal types.MealType) types.Menu {
	recipes := Recipes(meal)
	menu := make(types.Menu, 0, len(recipes))

	for _, r := range recipes {
		lines := make([]types.IngredientLine, 0, len(r.Portions))
		for _, p := range r.Portions {
			lines = append(lines, types.IngredientLine{
				Name:     p.Name,
				Quantity: quantity.Scale(p.PerPerson, headcount, p.Unit),
				Unit:     p.Unit,
			})
		}
		menu = append(menu, types.DayPlan{
			DayIndex:    r.Day,
			DishName:    r.Dish,
			Ingredients: lines,
			Steps:       append([]string(nil), Steps...),
			Tip:         Tip,
		})
	}
	return menu
}
