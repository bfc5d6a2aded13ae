package reconcile

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"grocery-cost/core/fallback"
	"grocery-cost/core/quantity"
	"grocery-cost/core/types"
)

func weekJSON(days int) string {
	entries := make([]string, 0, days)
	for i := 1; i <= days; i++ {
		entries = append(entries, fmt.Sprintf(`{
			"dia": %d,
			"plato": "Dish %d",
			"ingredientes": [{"name": "arroz", "qty": 180, "unit": "g"}, {"name": "huevo", "qty": 2, "unit": "ud"}],
			"pasos": ["Cook", "Serve"],
			"tip": "Tip %d"
		}`, i, i, i))
	}
	return `{"menu": [` + strings.Join(entries, ",") + `]}`
}

func hasViolation(vs []types.Violation, path string) bool {
	for _, v := range vs {
		if v.Path == path {
			return true
		}
	}
	return false
}

// TestReconcileAcceptsWellFormedWeek tests a clean 7-day menu with Spanish keys
func TestReconcileAcceptsWellFormedWeek(t *testing.T) {
	fb := fallback.Generate(2, types.MealLunch)
	res := Reconcile(json.RawMessage(weekJSON(7)), fb)

	if !res.Valid {
		t.Fatalf("expected valid result, violations: %v", res.Violations)
	}
	if len(res.Violations) != 0 {
		t.Errorf("expected no violations, got %v", res.Violations)
	}
	if !res.Menu.IsWeek() {
		t.Fatal("expected a full week")
	}
	day := res.Menu[2]
	if day.DishName != "Dish 3" || day.Tip != "Tip 3" || len(day.Steps) != 2 {
		t.Errorf("unexpected day: %+v", day)
	}
	// 180 g rounds to 200
	if day.Ingredients[0] != (types.IngredientLine{Name: "arroz", Quantity: 200, Unit: types.UnitGram}) {
		t.Errorf("unexpected ingredient: %+v", day.Ingredients[0])
	}
}

// TestReconcileFiveEntriesUsesFallback tests that a short menu is rejected whole
func TestReconcileFiveEntriesUsesFallback(t *testing.T) {
	fb := fallback.Generate(2, types.MealLunch)
	res := Reconcile(json.RawMessage(weekJSON(5)), fb)

	if res.Valid {
		t.Fatal("expected invalid result for 5 entries")
	}
	if len(res.Menu) != len(fb) {
		t.Fatalf("expected fallback menu, got %d days", len(res.Menu))
	}
	for i := range fb {
		if res.Menu[i].DishName != fb[i].DishName {
			t.Errorf("day %d: got %q, want fallback %q", i+1, res.Menu[i].DishName, fb[i].DishName)
		}
	}
	if !hasViolation(res.Violations, "menu") {
		t.Errorf("expected a menu violation, got %v", res.Violations)
	}
}

// TestReconcileRejectsBadShapes tests inputs that cannot become a week
func TestReconcileRejectsBadShapes(t *testing.T) {
	fb := fallback.Generate(1, types.MealBreakfast)

	tests := []struct {
		name string
		raw  any
	}{
		{"nil", nil},
		{"string", "seven days of rice"},
		{"number", 7.0},
		{"object without menu", map[string]any{"days": []any{}}},
		{"empty array", []any{}},
		{"eight entries", make([]any, 8)},
		{"non-object entry", []any{map[string]any{}, map[string]any{}, map[string]any{}, "day", map[string]any{}, map[string]any{}, map[string]any{}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Reconcile(tt.raw, fb)
			if res.Valid {
				t.Fatal("expected invalid result")
			}
			if len(res.Violations) == 0 {
				t.Error("expected violations")
			}
			if res.Menu[0].DishName != fb[0].DishName {
				t.Error("expected the fallback menu")
			}
		})
	}
}

// TestReconcileInvalidJSON tests unparseable text
func TestReconcileInvalidJSON(t *testing.T) {
	fb := fallback.Generate(2, types.MealDinner)
	res := Reconcile(json.RawMessage(`{"menu": [`), fb)
	if res.Valid || len(res.Violations) != 1 {
		t.Errorf("expected one violation and fallback, got %+v", res)
	}
}

// TestReconcileCoercesEntries tests defaults for missing and malformed fields
func TestReconcileCoercesEntries(t *testing.T) {
	entries := make([]any, 7)
	for i := range entries {
		entries[i] = map[string]any{
			"day_index":   float64(i + 1),
			"dish_name":   fmt.Sprintf("Dish %d", i+1),
			"ingredients": []any{},
			"steps":       []any{"Cook"},
			"tip":         "ok",
		}
	}
	entries[1] = map[string]any{
		"dayIndex": "two",
		"dishName": "   ",
		"ingredients": []any{
			map[string]any{"name": "rice", "quantity": "90", "unit": "grams"},
			map[string]any{"name": "oil", "qty": -5, "unit": "ml"},
			map[string]any{"name": "egg", "qty": 2.4, "unit": "dozen"},
			map[string]any{"name": "   ", "qty": 1, "unit": "ud"},
			map[string]any{"qty": 1},
			"salt",
			map[string]any{"name": "milk", "unit": "ml"},
		},
		"steps": "stir",
	}

	fb := fallback.Generate(2, types.MealLunch)
	res := Reconcile(entries, fb)
	if !res.Valid {
		t.Fatalf("expected valid result, violations: %v", res.Violations)
	}

	day := res.Menu[1]
	if day.DayIndex != 2 {
		t.Errorf("expected day index 2, got %d", day.DayIndex)
	}
	if day.DishName != "Day 2" {
		t.Errorf("expected default dish name, got %q", day.DishName)
	}
	if day.Tip != DefaultTip {
		t.Errorf("expected default tip, got %q", day.Tip)
	}
	if len(day.Steps) != len(DefaultSteps) || day.Steps[0] != DefaultSteps[0] {
		t.Errorf("expected default steps, got %v", day.Steps)
	}

	want := []types.IngredientLine{
		{Name: "rice", Quantity: 100, Unit: types.UnitGram},
		{Name: "oil", Quantity: 0, Unit: types.UnitMilliliter},
		{Name: "egg", Quantity: 0, Unit: types.UnitGram},
		{Name: "milk", Quantity: 0, Unit: types.UnitMilliliter},
	}
	if len(day.Ingredients) != len(want) {
		t.Fatalf("expected %d ingredients, got %+v", len(want), day.Ingredients)
	}
	for i, w := range want {
		if day.Ingredients[i] != w {
			t.Errorf("ingredient %d: got %+v, want %+v", i, day.Ingredients[i], w)
		}
	}

	for _, path := range []string{
		"menu[1].dayIndex",
		"menu[1].dish_name",
		"menu[1].tip",
		"menu[1].steps",
		"menu[1].ingredients[1].qty",
		"menu[1].ingredients[2].unit",
		"menu[1].ingredients[3].name",
		"menu[1].ingredients[4].name",
		"menu[1].ingredients[5]",
		"menu[1].ingredients[6].quantity",
	} {
		if !hasViolation(res.Violations, path) {
			t.Errorf("expected violation at %s", path)
		}
	}
}

// TestReconcileOrdersDays tests sorting a permutation and renumbering duplicates
func TestReconcileOrdersDays(t *testing.T) {
	build := func(indices ...float64) []any {
		entries := make([]any, len(indices))
		for i, idx := range indices {
			entries[i] = map[string]any{
				"day":         idx,
				"dish":        fmt.Sprintf("Dish at %d", i),
				"ingredients": []any{},
				"steps":       []any{"Cook"},
				"tip":         "ok",
			}
		}
		return entries
	}
	fb := fallback.Generate(2, types.MealLunch)

	t.Run("permutation is sorted", func(t *testing.T) {
		res := Reconcile(build(7, 6, 5, 4, 3, 2, 1), fb)
		if !res.Valid || !res.Menu.IsWeek() {
			t.Fatalf("expected a valid ordered week, got %+v", res)
		}
		if res.Menu[0].DishName != "Dish at 6" {
			t.Errorf("expected day 1 to be the last entry, got %q", res.Menu[0].DishName)
		}
	})

	t.Run("duplicates are renumbered", func(t *testing.T) {
		res := Reconcile(build(1, 1, 2, 3, 4, 5, 6), fb)
		if !res.Valid || !res.Menu.IsWeek() {
			t.Fatalf("expected a valid ordered week, got %+v", res)
		}
		if res.Menu[1].DishName != "Dish at 1" {
			t.Errorf("expected positional order, got %q", res.Menu[1].DishName)
		}
	})

	t.Run("out of range and fractional", func(t *testing.T) {
		res := Reconcile(build(1, 2, 3, 42, 5, 6.5, 7), fb)
		if !res.Menu.IsWeek() {
			t.Fatal("expected a full week")
		}
		if !hasViolation(res.Violations, "menu[3].day") || !hasViolation(res.Violations, "menu[5].day") {
			t.Errorf("expected day violations, got %v", res.Violations)
		}
	})
}

// TestReconcileTypedInput tests that Go values are normalized through JSON
func TestReconcileTypedInput(t *testing.T) {
	fb := fallback.Generate(3, types.MealLunch)
	res := Reconcile(fallback.Generate(1, types.MealBreakfast), fb)
	if !res.Valid {
		t.Fatalf("expected a typed menu to reconcile, violations: %v", res.Violations)
	}
	if res.Menu[0].DishName != fallback.Breakfasts[0].Dish {
		t.Errorf("unexpected dish %q", res.Menu[0].DishName)
	}
}

// TestReconcileDoesNotShareFallback tests that the fallback is copied
func TestReconcileDoesNotShareFallback(t *testing.T) {
	fb := fallback.Generate(2, types.MealLunch)
	res := Reconcile(nil, fb)
	res.Menu[0].Ingredients[0].Quantity = 9999
	if fb[0].Ingredients[0].Quantity == 9999 {
		t.Error("fallback menu was mutated through the result")
	}
}

// TestReconcileCapsHugeQuantities tests that an oversized quantity is capped
// and reported instead of silently zeroed
func TestReconcileCapsHugeQuantities(t *testing.T) {
	entries := make([]any, types.DaysPerWeek)
	for i := range entries {
		entries[i] = map[string]any{
			"day_index":   float64(i + 1),
			"dish_name":   "Rice",
			"ingredients": []any{map[string]any{"name": "rice", "quantity": 1e308, "unit": "g"}},
			"steps":       []any{"Cook"},
			"tip":         "Tip",
		}
	}

	res := Reconcile(entries, fallback.Generate(2, types.MealLunch))
	if !res.Valid {
		t.Fatalf("expected valid result, violations: %v", res.Violations)
	}
	if got := res.Menu[0].Ingredients[0].Quantity; got != quantity.MaxQuantity {
		t.Errorf("quantity = %v, want %v", got, quantity.MaxQuantity)
	}
	if !hasViolation(res.Violations, "menu[0].ingredients[0].quantity") {
		t.Errorf("expected a quantity violation, got %v", res.Violations)
	}
}
