// Package catalog - Authoritative ingredient category catalog
// Assigns every canonical ingredient name to exactly one shopping category.
// Resolution order is a contract: exact word lists, then keyword rules, then Other.
package catalog

import (
	"fmt"
	"regexp"

	"grocery-cost/core/normalize"
	"grocery-cost/core/types"
)

// Tier identifies which resolution step classified a name
type Tier int

const (
	// TierExact - name is listed verbatim under a category
	TierExact Tier = iota
	// TierKeyword - name matched a keyword rule
	TierKeyword
	// TierDefault - nothing matched, category is Other
	TierDefault
)

// String returns string representation
func (t Tier) String() string {
	switch t {
	case TierExact:
		return "exact"
	case TierKeyword:
		return "keyword"
	case TierDefault:
		return "default"
	default:
		return "unknown"
	}
}

// WordList is the exact-membership list of one category
type WordList struct {
	Category types.Category
	Words    []string
}

// Rule is one keyword heuristic
type Rule struct {
	Category types.Category
	Pattern  *regexp.Regexp
}

// Classification is the outcome of classifying one name
type Classification struct {
	Category types.Category
	Tier     Tier
}

// Catalog is the read-only classifier.
// Lists and rules are consulted in registration order; the first match wins.
type Catalog struct {
	lists []registeredList
	rules []Rule
}

type registeredList struct {
	category types.Category
	words    map[string]bool
	ordered  []string
}

// NewCatalog creates an empty catalog
func NewCatalog() *Catalog {
	return &Catalog{}
}

// RegisterList appends an exact-membership list.
// Words are folded so the comparison ignores case and accents.
func (c *Catalog) RegisterList(list WordList) {
	rl := registeredList{
		category: list.Category,
		words:    make(map[string]bool, len(list.Words)),
	}
	for _, w := range list.Words {
		f := normalize.Fold(w)
		if f == "" || rl.words[f] {
			continue
		}
		rl.words[f] = true
		rl.ordered = append(rl.ordered, f)
	}
	c.lists = append(c.lists, rl)
}

// RegisterRule appends a keyword rule.
// A rule without a pattern is rejected so Classify stays total.
func (c *Catalog) RegisterRule(rule Rule) error {
	if rule.Pattern == nil {
		return fmt.Errorf("rule for %q has no pattern", rule.Category)
	}
	c.rules = append(c.rules, rule)
	return nil
}

// Classify returns the category of a canonical name. It never fails.
func (c *Catalog) Classify(name string) types.Category {
	return c.Explain(name).Category
}

// Explain classifies a name and reports which tier decided it
func (c *Catalog) Explain(name string) Classification {
	n := normalize.Fold(name)
	if n == "" {
		return Classification{Category: types.CategoryOther, Tier: TierDefault}
	}

	for _, list := range c.lists {
		if list.words[n] {
			return Classification{Category: list.category, Tier: TierExact}
		}
	}

	for _, rule := range c.rules {
		if rule.Pattern.MatchString(n) {
			return Classification{Category: rule.Category, Tier: TierKeyword}
		}
	}

	return Classification{Category: types.CategoryOther, Tier: TierDefault}
}

// Words returns the folded words listed under a category, across all lists
func (c *Catalog) Words(category types.Category) []string {
	var out []string
	for _, list := range c.lists {
		if list.category == category {
			out = append(out, list.ordered...)
		}
	}
	return out
}

// Stats returns catalog statistics
func (c *Catalog) Stats() CatalogStats {
	stats := CatalogStats{
		WordsByCategory: make(map[types.Category]int),
		Rules:           len(c.rules),
	}
	for _, list := range c.lists {
		stats.Lists++
		stats.Words += len(list.ordered)
		stats.WordsByCategory[list.category] += len(list.ordered)
	}
	return stats
}

// CatalogStats holds catalog statistics
type CatalogStats struct {
	Lists           int
	Words           int
	Rules           int
	WordsByCategory map[types.Category]int
}
