package output

import (
	"fmt"
	"io"
	"strconv"

	"grocery-cost/core/types"
	"grocery-cost/core/ui"
)

// CLIFormatter renders a plan as terminal tables
type CLIFormatter struct {
	noColor bool
}

// NewCLIFormatter creates a CLI formatter
func NewCLIFormatter(noColor bool) *CLIFormatter {
	return &CLIFormatter{noColor: noColor}
}

// Format returns FormatCLI
func (f *CLIFormatter) Format() Format {
	return FormatCLI
}

// Render writes the plan
func (f *CLIFormatter) Render(w io.Writer, plan *types.WeeklyPlan) error {
	out := ui.NewWriter(w, f.noColor)
	currency := plan.Costs.Currency

	out.Header("Weekly Plan")
	out.Info("%s · %d people · %s · menu: %s", plan.Meta.Location, plan.Meta.Headcount, plan.Meta.MealType, plan.MenuSource)
	out.Debug("plan %s", plan.ID)
	out.Println("")

	menu := out.NewTable("Day", "Dish", "Ingredients")
	for _, day := range plan.Menu {
		menu.AddRow(strconv.Itoa(day.DayIndex), day.DishName, strconv.Itoa(len(day.Ingredients)))
	}
	menu.Render()

	out.Header("Shopping List")
	for _, group := range plan.ShoppingList {
		subtotal, _ := plan.Costs.SubtotalFor(group.Category)
		out.SubHeader(fmt.Sprintf("%s (%s)", group.Category, Money(subtotal, currency)))
		table := out.NewTable("Item", "Quantity", "Cost").AlignRight(1).AlignRight(2)
		for _, item := range group.Items {
			table.AddRow(item.Name, Quantity(item.Quantity, item.Unit), OptionalMoney(item.EstimatedCost, currency))
		}
		table.Render()
		out.Println("")
	}

	summary := out.NewCostSummary()
	summary.Total = Money(plan.Costs.Total, currency)
	summary.Subtotal = Money(plan.Costs.Subtotal, currency)
	summary.Note = plan.Costs.Note
	summary.Lines = plan.ShoppingList.Len()
	summary.Unpriced = plan.Costs.Coverage.Unpriced
	summary.Render()

	out.Header("Where to Shop")
	if plan.Stores.Suggested.Name != "" {
		out.Success("%s (%s)", plan.Stores.Suggested.Name, plan.Stores.Suggested.Kind)
		for _, s := range plan.Stores.Options {
			out.Println("  %s (%s)", s.Name, s.Kind)
		}
		out.Println("  %s", plan.Stores.MapsURL)
	}
	out.Println("")
	out.Info("Batch: %s; %s", plan.Batch.BaseA, plan.Batch.BaseB)

	if len(plan.Violations) > 0 {
		out.Println("")
		out.Warning("external menu had %d problems", len(plan.Violations))
		for _, v := range plan.Violations {
			out.Debug("%s", v.String())
		}
	}
	return out.Err()
}
