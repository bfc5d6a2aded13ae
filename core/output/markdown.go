package output

import (
	"fmt"
	"io"
	"strings"

	"grocery-cost/core/types"
)

// MarkdownFormatter renders a plan as a markdown document
type MarkdownFormatter struct{}

// NewMarkdownFormatter creates a markdown formatter
func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

// Format returns FormatMarkdown
func (f *MarkdownFormatter) Format() Format {
	return FormatMarkdown
}

// Render writes the plan
func (f *MarkdownFormatter) Render(w io.Writer, plan *types.WeeklyPlan) error {
	var b strings.Builder
	currency := plan.Costs.Currency

	fmt.Fprintf(&b, "# Weekly plan: %s\n\n", plan.Meta.Location)
	fmt.Fprintf(&b, "%d people · %s · menu source: %s\n\n", plan.Meta.Headcount, plan.Meta.MealType, plan.MenuSource)

	b.WriteString("## Menu\n\n")
	for _, day := range plan.Menu {
		fmt.Fprintf(&b, "### Day %d: %s\n\n", day.DayIndex, day.DishName)
		for _, ing := range day.Ingredients {
			fmt.Fprintf(&b, "- %s %s\n", Quantity(ing.Quantity, ing.Unit), ing.Name)
		}
		b.WriteString("\n")
		for i, step := range day.Steps {
			fmt.Fprintf(&b, "%d. %s\n", i+1, step)
		}
		fmt.Fprintf(&b, "\n> %s\n\n", day.Tip)
	}

	b.WriteString("## Shopping list\n\n")
	for _, group := range plan.ShoppingList {
		subtotal, _ := plan.Costs.SubtotalFor(group.Category)
		fmt.Fprintf(&b, "### %s (%s)\n\n", group.Category, Money(subtotal, currency))
		b.WriteString("| Item | Quantity | Cost |\n|---|---:|---:|\n")
		for _, item := range group.Items {
			fmt.Fprintf(&b, "| %s | %s | %s |\n", escapeCell(item.Name), Quantity(item.Quantity, item.Unit), OptionalMoney(item.EstimatedCost, currency))
		}
		b.WriteString("\n")
	}

	b.WriteString("## Costs\n\n")
	fmt.Fprintf(&b, "- Subtotal: %s\n", Money(plan.Costs.Subtotal, currency))
	fmt.Fprintf(&b, "- **Total: %s**\n\n", Money(plan.Costs.Total, currency))
	fmt.Fprintf(&b, "_%s_\n\n", plan.Costs.Note)

	b.WriteString("## Batch cooking\n\n")
	fmt.Fprintf(&b, "- %s\n- %s\n\n", plan.Batch.BaseA, plan.Batch.BaseB)
	fmt.Fprintf(&b, "Leftovers: %s\n\n", strings.Join(plan.Leftovers, ", "))

	if plan.Stores.Suggested.Name != "" {
		b.WriteString("## Where to shop\n\n")
		fmt.Fprintf(&b, "Suggested: [%s](%s)\n\n", plan.Stores.Suggested.Name, plan.Stores.MapsURL)
		for _, s := range plan.Stores.Options {
			fmt.Fprintf(&b, "- %s (%s)\n", s.Name, s.Kind)
		}
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
