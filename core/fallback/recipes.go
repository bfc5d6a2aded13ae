package fallback

import "grocery-cost/core/types"

// Portion is a per-person reference quantity of one ingredient
type Portion struct {
	Name      string
	Unit      types.Unit
	PerPerson float64
}

// Recipe is one day of a built-in plan
type Recipe struct {
	Day      int
	Dish     string
	Portions []Portion
}

func g(name string, q float64) Portion  { return Portion{Name: name, Unit: types.UnitGram, PerPerson: q} }
func ml(name string, q float64) Portion { return Portion{Name: name, Unit: types.UnitMilliliter, PerPerson: q} }
func ud(name string, q float64) Portion { return Portion{Name: name, Unit: types.UnitCount, PerPerson: q} }

// Breakfasts is the built-in breakfast week
var Breakfasts = []Recipe{
	{1, "Arepa with egg and cheese", []Portion{ud("arepa", 1), ud("egg", 1), g("cheese", 30)}},
	{2, "Oatmeal with banana", []Portion{g("oats", 60), ml("milk", 200), ud("banana", 1)}},
	{3, "Scrambled eggs with tomato and onion", []Portion{ud("egg", 2), g("tomato", 60), g("onion", 40), ml("oil", 6)}},
	{4, "Avocado toast", []Portion{ud("bread", 2), g("avocado", 80), ml("lemon", 10)}},
	{5, "Arepa with shredded chicken", []Portion{ud("arepa", 1), g("chicken breast", 80), g("onion", 30)}},
	{6, "Yogurt with fruit", []Portion{ml("yogurt", 200), ud("banana", 1)}},
	{7, "Light rice and egg hash", []Portion{g("rice", 80), ud("egg", 1), g("onion", 30)}},
}

// Mains is the built-in week shared by lunch and dinner
var Mains = []Recipe{
	{1, "Chicken and rice", []Portion{g("rice", 90), g("chicken breast", 140), g("tomato", 80), g("onion", 60), g("garlic", 6), ml("oil", 8)}},
	{2, "Pasta with tomato", []Portion{g("pasta", 100), g("tomato", 120), g("onion", 50), g("garlic", 6), ml("oil", 8)}},
	{3, "Beef and vegetable stir-fry", []Portion{g("ground beef", 140), g("carrot", 80), g("bell pepper", 60), g("onion", 50), ml("oil", 10)}},
	{4, "Lentil stew", []Portion{g("lentils", 90), g("carrot", 70), g("tomato", 80), g("onion", 50)}},
	{5, "Lemon pork with rice", []Portion{g("pork", 140), g("rice", 80), ml("lemon", 10), g("garlic", 6), ml("oil", 8)}},
	{6, "Tuna tortillas", []Portion{ud("tortilla", 2), g("tuna", 90), g("tomato", 60), g("onion", 40)}},
	{7, "Vegetable stir-fry with egg", []Portion{g("broccoli", 120), g("carrot", 100), g("onion", 50), ud("egg", 1), ml("oil", 8)}},
}

// Recipes returns the built-in week for a meal type
func Recipes(meal types.MealType) []Recipe {
	if meal == types.MealBreakfast {
		return Breakfasts
	}
	return Mains
}
