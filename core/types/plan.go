// Package types - Weekly plan types
package types

// DaysPerWeek is the fixed length of every menu
const DaysPerWeek = 7

// DayPlan is the dish for one day of the week
type DayPlan struct {
	// DayIndex is 1..7
	DayIndex int `json:"day_index"`

	// DishName is the display name of the dish
	DishName string `json:"dish_name"`

	// Ingredients are already scaled to the household
	Ingredients []IngredientLine `json:"ingredients"`

	// Steps are short preparation steps
	Steps []string `json:"steps"`

	// Tip is a single cooking or shopping tip
	Tip string `json:"tip"`
}

// Menu is the ordered list of day plans
type Menu []DayPlan

// Ingredients flattens every ingredient line of the week
func (m Menu) Ingredients() []IngredientLine {
	var all []IngredientLine
	for _, day := range m {
		all = append(all, day.Ingredients...)
	}
	return all
}

// IsWeek reports whether the menu has 7 days indexed 1..7 in order
func (m Menu) IsWeek() bool {
	if len(m) != DaysPerWeek {
		return false
	}
	for i, day := range m {
		if day.DayIndex != i+1 {
			return false
		}
	}
	return true
}

// Clone returns a deep copy so callers never share ingredient slices
func (m Menu) Clone() Menu {
	out := make(Menu, len(m))
	for i, day := range m {
		out[i] = day
		out[i].Ingredients = append([]IngredientLine(nil), day.Ingredients...)
		out[i].Steps = append([]string(nil), day.Steps...)
	}
	return out
}

// MenuSource records where the menu came from
type MenuSource string

const (
	// MenuSourceFallback is the built-in deterministic menu
	MenuSourceFallback MenuSource = "fallback"

	// MenuSourceExternal is a reconciled externally generated menu
	MenuSourceExternal MenuSource = "external"
)

// Violation is one structural problem found in an external menu
type Violation struct {
	// Path locates the offending value, e.g. "menu[2].ingredients[0].unit"
	Path string `json:"path"`

	// Message describes the problem and the substitution made
	Message string `json:"message"`
}

// String returns "path: message"
func (v Violation) String() string {
	if v.Path == "" {
		return v.Message
	}
	return v.Path + ": " + v.Message
}

// PlanMeta echoes the request parameters on the plan
type PlanMeta struct {
	Location  string   `json:"location"`
	Headcount int      `json:"headcount"`
	MealType  MealType `json:"meal_type"`
	Mode      string   `json:"mode,omitempty"`
	Diet      string   `json:"diet,omitempty"`
	Currency  Currency `json:"currency"`
}

// BatchPrep names the shared bases cooked once for several days
type BatchPrep struct {
	BaseA string `json:"base_a"`
	BaseB string `json:"base_b"`
}

// WeeklyPlan is the complete output consumed by presentation and export
type WeeklyPlan struct {
	// ID is a stable hash of the request
	ID string `json:"id"`

	// Meta echoes the request
	Meta PlanMeta `json:"meta"`

	// Menu always holds 7 days
	Menu Menu `json:"menu"`

	// ShoppingList groups consolidated lines by category
	ShoppingList ShoppingList `json:"shopping_list"`

	// Costs summarizes the shopping list
	Costs CostSummary `json:"costs"`

	// Batch lists shared bases
	Batch BatchPrep `json:"batch"`

	// Leftovers lists preparations worth reusing
	Leftovers []string `json:"leftovers"`

	// Stores suggests where to shop
	Stores StoreSuggestion `json:"stores"`

	// MenuSource tells whether the external menu was accepted
	MenuSource MenuSource `json:"menu_source"`

	// Violations lists problems found while reconciling an external menu
	Violations []Violation `json:"violations,omitempty"`
}
