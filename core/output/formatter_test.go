package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"grocery-cost/core/types"
)

func samplePlan() *types.WeeklyPlan {
	cost := decimal.NewFromInt(1764)
	return &types.WeeklyPlan{
		ID:   "plan-0123456789abcdef",
		Meta: types.PlanMeta{Location: "Bogotá, CO", Headcount: 2, MealType: types.MealLunch, Currency: types.CurrencyCOP},
		Menu: types.Menu{{
			DayIndex:    1,
			DishName:    "Chicken and rice",
			Ingredients: []types.IngredientLine{{Name: "rice", Quantity: 200, Unit: types.UnitGram}},
			Steps:       []string{"Chop", "Serve"},
			Tip:         "Cook extra rice.",
		}},
		ShoppingList: types.ShoppingList{
			{Category: types.CategoryGrains, Items: []types.IngredientLine{{Name: "rice", Quantity: 350, Unit: types.UnitGram, EstimatedCost: &cost}}},
			{Category: types.CategoryOther, Items: []types.IngredientLine{{Name: "saffron", Quantity: 25, Unit: types.UnitGram}}},
		},
		Costs: types.CostSummary{
			ByCategory: []types.CategoryCost{
				{Category: types.CategoryGrains, Subtotal: cost},
				{Category: types.CategoryOther, Subtotal: decimal.Zero},
			},
			Subtotal: cost,
			Total:    decimal.NewFromInt(1940),
			Currency: types.CurrencyCOP,
			Note:     "Estimated.",
			Coverage: types.Coverage{Exact: 1, Unpriced: 1},
		},
		Batch:     types.BatchPrep{BaseA: "Sofrito for 3 days", BaseB: "Base stock for soups"},
		Leftovers: []string{"Cooked rice", "Sofrito"},
		Stores: types.StoreSuggestion{
			Suggested: types.StoreOption{Name: "D1", Kind: types.StoreHardDiscount},
			Options:   []types.StoreOption{{Name: "Ara", Kind: types.StoreHardDiscount}},
			MapsURL:   "https://www.google.com/maps/search/D1%20near%20Bogota",
		},
		MenuSource: types.MenuSourceFallback,
	}
}

// TestMoney tests thousands grouping and rounding
func TestMoney(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "COP 0"},
		{"950", "COP 950"},
		{"9114.6", "COP 9,115"},
		{"1234567", "COP 1,234,567"},
		{"-1234.5", "COP -1,235"},
		{"123456789012345678901234567.4", "COP 123,456,789,012,345,678,901,234,567"},
	}
	for _, tt := range tests {
		if got := Money(decimal.RequireFromString(tt.in), types.CurrencyCOP); got != tt.want {
			t.Errorf("Money(%s) = %q, want %q", tt.in, got, tt.want)
		}
	}
	if got := OptionalMoney(nil, types.CurrencyCOP); got != "n/a" {
		t.Errorf("OptionalMoney(nil) = %q", got)
	}
	if got := Quantity(2, types.UnitCount); got != "2 ud" {
		t.Errorf("Quantity = %q", got)
	}
}

// TestRegistry tests default registration and duplicates
func TestRegistry(t *testing.T) {
	r := DefaultRegistry(true)
	for _, f := range []Format{FormatCLI, FormatJSON, FormatMarkdown} {
		if _, ok := r.Get(f); !ok {
			t.Errorf("missing formatter %s", f)
		}
	}
	if len(r.Formats()) != 3 {
		t.Errorf("expected 3 formats, got %v", r.Formats())
	}
	if err := r.Register(NewJSONFormatter(false)); err == nil {
		t.Error("expected duplicate registration to fail")
	}
	if _, ok := r.Get("html"); ok {
		t.Error("unexpected html formatter")
	}
}

// TestRenderers tests that each format contains the key figures
func TestRenderers(t *testing.T) {
	tests := []struct {
		formatter Formatter
		want      []string
	}{
		{NewCLIFormatter(true), []string{"Chicken and rice", "Grains (COP 1,764)", "350 g", "n/a", "COP 1,940", "D1 (hard-discount)"}},
		{NewMarkdownFormatter(), []string{"# Weekly plan: Bogotá, CO", "### Day 1: Chicken and rice", "| rice | 350 g | COP 1,764 |", "**Total: COP 1,940**", "[D1](https://"}},
		{NewJSONFormatter(false), []string{`"id":"plan-0123456789abcdef"`, `"total":"1940"`}},
	}

	for _, tt := range tests {
		t.Run(string(tt.formatter.Format()), func(t *testing.T) {
			plan := samplePlan()
			before, _ := json.Marshal(plan)

			var buf bytes.Buffer
			if err := tt.formatter.Render(&buf, plan); err != nil {
				t.Fatalf("Render: %v", err)
			}
			for _, want := range tt.want {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("missing %q in:\n%s", want, buf.String())
				}
			}

			after, _ := json.Marshal(plan)
			if !bytes.Equal(before, after) {
				t.Error("formatter modified the plan")
			}
		})
	}
}
