package fallback

import (
	"testing"

	"grocery-cost/core/types"
)

// TestGenerateIsAFullWeek tests day count and ordering for every meal type
func TestGenerateIsAFullWeek(t *testing.T) {
	for _, meal := range []types.MealType{types.MealBreakfast, types.MealLunch, types.MealDinner} {
		t.Run(string(meal), func(t *testing.T) {
			menu := Generate(2, meal)
			if !menu.IsWeek() {
				t.Fatalf("expected a 7-day week, got %d days", len(menu))
			}
			for i, day := range menu {
				if day.DayIndex != i+1 {
					t.Errorf("day %d has index %d", i, day.DayIndex)
				}
				if day.DishName == "" || len(day.Ingredients) == 0 {
					t.Errorf("day %d is incomplete: %+v", i+1, day)
				}
				if day.Tip != Tip || len(day.Steps) != len(Steps) {
					t.Errorf("day %d has unexpected steps or tip", i+1)
				}
			}
		})
	}
}

// TestGenerateScalesAndRounds tests day one of the main week for two people
func TestGenerateScalesAndRounds(t *testing.T) {
	day := Generate(2, types.MealLunch)[0]

	want := []types.IngredientLine{
		{Name: "rice", Quantity: 200, Unit: types.UnitGram},
		{Name: "chicken breast", Quantity: 300, Unit: types.UnitGram},
		{Name: "tomato", Quantity: 150, Unit: types.UnitGram},
		{Name: "onion", Quantity: 100, Unit: types.UnitGram},
		{Name: "garlic", Quantity: 0, Unit: types.UnitGram},
		{Name: "oil", Quantity: 25, Unit: types.UnitMilliliter},
	}
	if len(day.Ingredients) != len(want) {
		t.Fatalf("expected %d ingredients, got %d", len(want), len(day.Ingredients))
	}
	for i, w := range want {
		if day.Ingredients[i] != w {
			t.Errorf("ingredient %d: got %+v, want %+v", i, day.Ingredients[i], w)
		}
	}
}

// TestGenerateLunchAndDinnerShareTable tests that only breakfast differs
func TestGenerateLunchAndDinnerShareTable(t *testing.T) {
	lunch, dinner, breakfast := Generate(3, types.MealLunch), Generate(3, types.MealDinner), Generate(3, types.MealBreakfast)
	for i := range lunch {
		if lunch[i].DishName != dinner[i].DishName {
			t.Errorf("day %d: lunch %q != dinner %q", i+1, lunch[i].DishName, dinner[i].DishName)
		}
	}
	if breakfast[0].DishName == lunch[0].DishName {
		t.Error("breakfast should use its own table")
	}
}

// TestGenerateDoesNotShareSteps tests that menus can be edited independently
func TestGenerateDoesNotShareSteps(t *testing.T) {
	a, b := Generate(1, types.MealLunch), Generate(1, types.MealLunch)
	a[0].Steps[0] = "changed"
	if b[0].Steps[0] != Steps[0] || Steps[0] != "Chop" {
		t.Error("steps slice is shared between menus")
	}
}

// TestGenerateCountsRoundToIntegers tests unit-count scaling
func TestGenerateCountsRoundToIntegers(t *testing.T) {
	day := Generate(3, types.MealBreakfast)[0]
	if day.Ingredients[0].Quantity != 3 || day.Ingredients[0].Unit != types.UnitCount {
		t.Errorf("expected 3 arepas, got %+v", day.Ingredients[0])
	}
}
