// Package reconcile validates an externally generated menu and coerces it
// into a well-formed week. Anything structurally unusable yields the fallback
// menu instead. Reconciliation never fails; problems are reported as violations.
package reconcile

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"grocery-cost/core/quantity"
	"grocery-cost/core/types"
)

// DefaultSteps replace missing or unusable preparation steps
var DefaultSteps = []string{"Prep", "Cook", "Serve"}

// DefaultTip replaces a missing tip
const DefaultTip = "Make the most of leftovers."

// Accepted key aliases, tried in order
var (
	dayKeys        = []string{"day_index", "dayIndex", "day", "dia"}
	dishKeys       = []string{"dish_name", "dishName", "dish", "plato"}
	ingredientKeys = []string{"ingredients", "ingredientes"}
	stepKeys       = []string{"steps", "pasos"}
	tipKeys        = []string{"tip"}
	nameKeys       = []string{"name", "nombre"}
	quantityKeys   = []string{"quantity", "qty", "cantidad"}
	unitKeys       = []string{"unit", "unidad"}
)

// Result is the outcome of reconciling an external menu
type Result struct {
	// Menu is the coerced external menu when Valid, otherwise the fallback
	Menu types.Menu

	// Valid reports whether the external menu was used
	Valid bool

	// Violations lists every problem found and every substitution made
	Violations []types.Violation
}

// Reconcile checks a decoded external menu against the weekly shape.
// raw may be the array itself or an object wrapping it under "menu".
// Values other than decoded JSON, json.RawMessage included, are normalized
// through encoding/json first.
func Reconcile(raw any, fallback types.Menu) Result {
	r := &reconciler{}
	menu, ok := r.reconcile(normalizeValue(raw))
	if !ok {
		return Result{Menu: fallback.Clone(), Valid: false, Violations: r.violations}
	}
	return Result{Menu: menu, Valid: true, Violations: r.violations}
}

// normalizeValue turns arbitrary Go values into the generic shapes
// produced by encoding/json (map[string]any, []any, float64, string, bool).
func normalizeValue(raw any) any {
	switch v := raw.(type) {
	case nil, map[string]any, []any, string, float64, bool:
		return v
	case json.RawMessage:
		var out any
		if err := json.Unmarshal(v, &out); err != nil {
			return nil
		}
		return out
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return nil
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil
	}
	return out
}

type reconciler struct {
	violations []types.Violation
}

func (r *reconciler) violate(path, format string, args ...any) {
	r.violations = append(r.violations, types.Violation{Path: path, Message: fmt.Sprintf(format, args...)})
}

func (r *reconciler) reconcile(raw any) (types.Menu, bool) {
	if obj, ok := raw.(map[string]any); ok {
		inner, found := obj["menu"]
		if !found {
			r.violate("menu", "object has no menu key")
			return nil, false
		}
		raw = inner
	}

	entries, ok := raw.([]any)
	if !ok {
		r.violate("menu", "expected an array, got %s", describe(raw))
		return nil, false
	}
	if len(entries) != types.DaysPerWeek {
		r.violate("menu", "expected %d days, got %d", types.DaysPerWeek, len(entries))
		return nil, false
	}

	objects := make([]map[string]any, len(entries))
	shapeOK := true
	for i, e := range entries {
		obj, ok := e.(map[string]any)
		if !ok {
			r.violate(fmt.Sprintf("menu[%d]", i), "expected an object, got %s", describe(e))
			shapeOK = false
			continue
		}
		objects[i] = obj
	}
	if !shapeOK {
		return nil, false
	}

	menu := make(types.Menu, len(objects))
	for i, obj := range objects {
		menu[i] = r.day(i, obj)
	}
	r.orderDays(menu)
	return menu, true
}

func (r *reconciler) day(i int, obj map[string]any) types.DayPlan {
	path := fmt.Sprintf("menu[%d]", i)
	day := types.DayPlan{}

	if v, key, ok := lookup(obj, dayKeys); ok {
		if n, ok := asInt(v); ok && n >= 1 && n <= types.DaysPerWeek {
			day.DayIndex = n
		} else {
			r.violate(path+"."+key, "invalid day index %s, using %d", describe(v), i+1)
			day.DayIndex = i + 1
		}
	} else {
		r.violate(path+".day_index", "missing, using %d", i+1)
		day.DayIndex = i + 1
	}

	if v, _, ok := lookup(obj, dishKeys); ok && nonEmptyString(v) != "" {
		day.DishName = nonEmptyString(v)
	} else {
		day.DishName = fmt.Sprintf("Day %d", i+1)
		r.violate(path+".dish_name", "missing or empty, using %q", day.DishName)
	}

	day.Ingredients = r.ingredients(path, obj)
	day.Steps = r.steps(path, obj)

	if v, _, ok := lookup(obj, tipKeys); ok && nonEmptyString(v) != "" {
		day.Tip = nonEmptyString(v)
	} else {
		day.Tip = DefaultTip
		r.violate(path+".tip", "missing or empty, using default")
	}
	return day
}

func (r *reconciler) ingredients(path string, obj map[string]any) []types.IngredientLine {
	v, key, ok := lookup(obj, ingredientKeys)
	if !ok {
		r.violate(path+".ingredients", "missing, using none")
		return []types.IngredientLine{}
	}
	items, ok := v.([]any)
	if !ok {
		r.violate(path+"."+key, "expected an array, got %s", describe(v))
		return []types.IngredientLine{}
	}

	lines := make([]types.IngredientLine, 0, len(items))
	for j, item := range items {
		ipath := fmt.Sprintf("%s.%s[%d]", path, key, j)
		ing, ok := item.(map[string]any)
		if !ok {
			r.violate(ipath, "expected an object, dropped")
			continue
		}

		nv, _, _ := lookup(ing, nameKeys)
		name := nonEmptyString(nv)
		if name == "" {
			r.violate(ipath+".name", "missing or empty, dropped")
			continue
		}

		unit := types.UnitGram
		if uv, ukey, ok := lookup(ing, unitKeys); ok {
			s, _ := uv.(string)
			if parsed, ok := types.ParseUnit(s); ok {
				unit = parsed
			} else {
				r.violate(ipath+"."+ukey, "unknown unit %s, using g", describe(uv))
			}
		} else {
			r.violate(ipath+".unit", "missing, using g")
		}

		q := 0.0
		if qv, qkey, ok := lookup(ing, quantityKeys); ok {
			if f, ok := asFloat(qv); ok && f >= 0 {
				q = f
				if q > quantity.MaxQuantity {
					r.violate(ipath+"."+qkey, "quantity %s exceeds %g, capped", describe(qv), quantity.MaxQuantity)
				}
			} else {
				r.violate(ipath+"."+qkey, "invalid quantity %s, using 0", describe(qv))
			}
		} else {
			r.violate(ipath+".quantity", "missing, using 0")
		}

		lines = append(lines, types.IngredientLine{Name: name, Quantity: quantity.Round(q, unit), Unit: unit})
	}
	return lines
}

func (r *reconciler) steps(path string, obj map[string]any) []string {
	v, key, ok := lookup(obj, stepKeys)
	if !ok {
		r.violate(path+".steps", "missing, using default")
		return append([]string(nil), DefaultSteps...)
	}
	items, ok := v.([]any)
	if !ok {
		r.violate(path+"."+key, "expected an array, using default")
		return append([]string(nil), DefaultSteps...)
	}

	steps := make([]string, 0, len(items))
	for j, item := range items {
		s := nonEmptyString(item)
		if s == "" {
			r.violate(fmt.Sprintf("%s.%s[%d]", path, key, j), "expected a non-empty string, dropped")
			continue
		}
		steps = append(steps, s)
	}
	if len(steps) == 0 {
		r.violate(path+"."+key, "no usable steps, using default")
		return append([]string(nil), DefaultSteps...)
	}
	return steps
}

// orderDays sorts a permutation of 1..7 into order and renumbers anything
// else by position.
func (r *reconciler) orderDays(menu types.Menu) {
	if menu.IsWeek() {
		return
	}

	seen := make(map[int]bool, len(menu))
	for _, d := range menu {
		seen[d.DayIndex] = true
	}
	if len(seen) == types.DaysPerWeek {
		sort.SliceStable(menu, func(i, j int) bool { return menu[i].DayIndex < menu[j].DayIndex })
		r.violate("menu", "days out of order, sorted by day index")
		return
	}

	for i := range menu {
		menu[i].DayIndex = i + 1
	}
	r.violate("menu", "day indices do not cover 1..%d, renumbered by position", types.DaysPerWeek)
}

func lookup(obj map[string]any, keys []string) (any, string, bool) {
	for _, k := range keys {
		if v, ok := obj[k]; ok && v != nil {
			return v, k, true
		}
	}
	return nil, "", false
}

func nonEmptyString(v any) string {
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}

func asFloat(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func asInt(v any) (int, bool) {
	switch v.(type) {
	case float64, json.Number:
	default:
		return 0, false
	}
	f, ok := asFloat(v)
	if !ok || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}

func describe(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		return strconv.Quote(t)
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case []any:
		return fmt.Sprintf("array of %d", len(t))
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
