// Package catalog - Built-in category lists and keyword rules
package catalog

import (
	"regexp"

	"grocery-cost/core/types"
)

// DefaultLists are checked in this order. Some words appear in more than one
// list ("egg", "cheese", "tuna"); the earlier list owns them.
var DefaultLists = []WordList{
	{
		Category: types.CategoryProduce,
		Words: []string{
			"tomato", "onion", "green onion", "carrot", "pepper", "broccoli", "potato", "lemon",
			"cilantro", "lettuce", "cucumber", "banana", "avocado", "garlic",
		},
	},
	{
		Category: types.CategoryProtein,
		Words: []string{
			"chicken", "ground beef", "pork", "fish", "tuna",
			"egg", "cheese", "lentils", "beans", "chickpeas",
		},
	},
	{
		Category: types.CategoryGrains,
		Words:    []string{"rice", "pasta", "tortilla", "arepa", "flour", "bread", "oats"},
	},
	{
		Category: types.CategoryDairy,
		Words:    []string{"milk", "yogurt", "butter", "egg", "cheese"},
	},
	{
		Category: types.CategoryPantry,
		Words:    []string{"oil", "salt", "sugar", "black pepper", "cumin", "oregano", "vinegar"},
	},
	{
		Category: types.CategoryCanned,
		Words:    []string{"tuna", "canned corn", "tomato sauce"},
	},
}

// DefaultRules run only when no list matched. Order: protein, grains, dairy, produce, pantry.
var DefaultRules = []Rule{
	{Category: types.CategoryProtein, Pattern: regexp.MustCompile(`(chicken|beef|pork|turkey|egg|cheese|fish|tuna|lentil|bean|chickpea)`)},
	{Category: types.CategoryGrains, Pattern: regexp.MustCompile(`(rice|pasta|tortilla|arepa|flour|bread|oat)`)},
	{Category: types.CategoryDairy, Pattern: regexp.MustCompile(`(milk|yogurt|butter|cream)`)},
	{Category: types.CategoryProduce, Pattern: regexp.MustCompile(`(tomato|onion|carrot|pepper|brocc?oli|potato|lemon|cilantro|lettuce|cucumber|avocado)`)},
	{Category: types.CategoryPantry, Pattern: regexp.MustCompile(`(oil|salt|sugar|pepper|cumin|oregano|vinegar|sauce)`)},
}

// NewDefault creates a catalog with the built-in lists and rules
func NewDefault() *Catalog {
	c := NewCatalog()
	for _, list := range DefaultLists {
		c.RegisterList(list)
	}
	for _, rule := range DefaultRules {
		if err := c.RegisterRule(rule); err != nil {
			panic("INVARIANT VIOLATED: built-in catalog: " + err.Error())
		}
	}
	return c
}
