// Package engine provides the API-primary weekly plan engine.
// CLI and HTTP are thin wrappers around this engine.
package engine

import (
	"errors"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"grocery-cost/core/catalog"
	"grocery-cost/core/consolidate"
	"grocery-cost/core/cost"
	"grocery-cost/core/determinism"
	"grocery-cost/core/fallback"
	"grocery-cost/core/normalize"
	"grocery-cost/core/pricing"
	"grocery-cost/core/reconcile"
	"grocery-cost/core/types"
)

// MapsSearchURL is the prefix of store search links
const MapsSearchURL = "https://www.google.com/maps/search/"

// DefaultBatch names the shared bases suggested with every plan
var DefaultBatch = types.BatchPrep{
	BaseA: "Sofrito for 3 days",
	BaseB: "Base stock for soups",
}

// DefaultLeftovers are preparations worth cooking once and reusing
var DefaultLeftovers = []string{"Cooked rice", "Sofrito"}

// Engine computes weekly plans.
// It holds no per-request state and is safe for concurrent use.
type Engine struct {
	book       *pricing.Pricebook
	resolver   *pricing.Resolver
	normalizer *normalize.Normalizer
	aggregator *cost.Aggregator
	ids        *determinism.IDGenerator
	logger     *zap.Logger
}

// New creates an engine over a pricebook.
// A nil pricebook panics; nil normalizer or classifier use the defaults.
// A *catalog.Catalog classifier must pass validation or New panics.
func New(book *pricing.Pricebook, normalizer *normalize.Normalizer, classifier cost.Classifier) *Engine {
	resolver := pricing.NewResolver(book)
	if normalizer == nil {
		normalizer = DefaultNormalizer(book)
	}
	if classifier == nil {
		classifier = catalog.NewDefault()
	}
	if c, ok := classifier.(*catalog.Catalog); ok {
		if errs := c.Validate(catalog.DefaultValidationRules()); len(errs) > 0 {
			panic("INVARIANT VIOLATED: invalid catalog: " + errors.Join(errs...).Error())
		}
	}
	return &Engine{
		book:       book,
		resolver:   resolver,
		normalizer: normalizer,
		aggregator: cost.NewAggregator(classifier),
		ids:        determinism.NewIDGenerator("plan"),
		logger:     zap.NewNop(),
	}
}

// DefaultNormalizer merges the built-in synonyms with the pricebook's.
// Pricebook entries win on conflict.
func DefaultNormalizer(book *pricing.Pricebook) *normalize.Normalizer {
	synonyms := make(map[string]string, len(normalize.DefaultSynonyms))
	for k, v := range normalize.DefaultSynonyms {
		synonyms[normalize.Fold(k)] = v
	}
	for k, v := range book.Synonyms() {
		synonyms[k] = v
	}
	return normalize.New(synonyms)
}

// WithLogger sets the engine logger
func (e *Engine) WithLogger(logger *zap.Logger) *Engine {
	if logger != nil {
		e.logger = logger
	}
	return e
}

// Pricebook returns the pricebook the engine prices with
func (e *Engine) Pricebook() *pricing.Pricebook {
	return e.book
}

// ComputeWeeklyPlan builds the menu, shopping list and costs for one request.
// The built-in menu is always computed; a usable external menu replaces it.
// Headcount must be positive; callers validate requests first.
func (e *Engine) ComputeWeeklyPlan(req types.PlanRequest) *types.WeeklyPlan {
	if req.Headcount <= 0 {
		panic("INVARIANT VIOLATED: headcount must be positive, got " + strconv.Itoa(req.Headcount))
	}
	meal := types.ParseMealType(string(req.MealType))

	menu := fallback.Generate(req.Headcount, meal)
	source := types.MenuSourceFallback
	var violations []types.Violation

	if req.ExternalMenu != nil {
		res := reconcile.Reconcile(req.ExternalMenu, menu)
		menu, violations = res.Menu, res.Violations
		if res.Valid {
			source = types.MenuSourceExternal
		}
		e.logger.Info("external menu reconciled",
			zap.Bool("accepted", res.Valid),
			zap.Int("violations", len(res.Violations)),
		)
	}

	lines := consolidate.Consolidate(menu.Ingredients(), e.normalizer)
	local := e.resolver.Locate(req.Location)
	list, summary := e.aggregator.Aggregate(lines, local, e.book.Currency())

	plan := &types.WeeklyPlan{
		ID: e.planID(req, meal).String(),
		Meta: types.PlanMeta{
			Location:  req.Location,
			Headcount: req.Headcount,
			MealType:  meal,
			Mode:      req.Mode,
			Diet:      req.Diet,
			Currency:  e.book.Currency(),
		},
		Menu:         menu,
		ShoppingList: list,
		Costs:        *summary,
		Batch:        DefaultBatch,
		Leftovers:    append([]string(nil), DefaultLeftovers...),
		Stores:       e.stores(req.Location),
		MenuSource:   source,
		Violations:   violations,
	}

	e.logger.Debug("weekly plan computed",
		zap.String("plan_id", plan.ID),
		zap.String("location", req.Location),
		zap.String("multiplier", local.Multiplier().String()),
		zap.Int("lines", list.Len()),
		zap.String("total", summary.Total.String()),
		zap.Int("unpriced", summary.Coverage.Unpriced),
	)
	return plan
}

// planID hashes everything that influences the plan
func (e *Engine) planID(req types.PlanRequest, meal types.MealType) determinism.StableID {
	return e.ids.Generate(
		e.book.Hash(),
		normalize.Fold(req.Location),
		strconv.Itoa(req.Headcount),
		string(meal),
		req.Mode,
		req.Diet,
		determinism.CanonicalJSON(req.ExternalMenu),
	)
}

// stores suggests the first hard-discount store and lists the rest.
// Without any hard-discount store the first listed store is suggested.
func (e *Engine) stores(location string) types.StoreSuggestion {
	all := e.book.Stores()
	if len(all) == 0 {
		return types.StoreSuggestion{Options: []types.StoreOption{}}
	}

	pick := 0
	for i, s := range all {
		if s.Kind == types.StoreHardDiscount {
			pick = i
			break
		}
	}

	options := make([]types.StoreOption, 0, len(all)-1)
	options = append(options, all[:pick]...)
	options = append(options, all[pick+1:]...)

	suggested := all[pick]
	return types.StoreSuggestion{
		Suggested: suggested,
		Options:   options,
		MapsURL:   MapsSearchURL + url.PathEscape(suggested.Name+" near "+location),
	}
}
