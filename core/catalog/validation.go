// Package catalog - Catalog validation
// Ensures catalog integrity before it is used for classification.
package catalog

import (
	"fmt"

	"grocery-cost/core/types"
)

// ValidationRule checks one aspect of a catalog
type ValidationRule func(*Catalog) []error

// DefaultValidationRules returns the standard validation rules
func DefaultValidationRules() []ValidationRule {
	return []ValidationRule{
		validateListCategories,
		validateRuleCategories,
		validateNoEmptyLists,
	}
}

// Validate checks a catalog against validation rules
func (c *Catalog) Validate(rules []ValidationRule) []error {
	var errs []error
	for _, rule := range rules {
		errs = append(errs, rule(c)...)
	}
	return errs
}

// validateListCategories ensures lists target known, non-default categories
func validateListCategories(c *Catalog) []error {
	var errs []error
	for i, list := range c.lists {
		if !list.category.IsValid() || list.category == types.CategoryOther {
			errs = append(errs, fmt.Errorf("list %d: invalid category %q", i, list.category))
		}
	}
	return errs
}

// validateRuleCategories ensures rules target known, non-default categories
func validateRuleCategories(c *Catalog) []error {
	var errs []error
	for i, rule := range c.rules {
		if !rule.Category.IsValid() || rule.Category == types.CategoryOther {
			errs = append(errs, fmt.Errorf("rule %d: invalid category %q", i, rule.Category))
		}
	}
	return errs
}

// validateNoEmptyLists flags lists that would never match
func validateNoEmptyLists(c *Catalog) []error {
	var errs []error
	for i, list := range c.lists {
		if len(list.ordered) == 0 {
			errs = append(errs, fmt.Errorf("list %d (%s): no words", i, list.category))
		}
	}
	return errs
}
