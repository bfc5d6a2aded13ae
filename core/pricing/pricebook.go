// Package pricing - Immutable pricebook
// A pricebook is validated and content-hashed once at construction.
// Nothing mutates it afterwards, so it is safe to share across requests.
package pricing

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"grocery-cost/core/normalize"
	"grocery-cost/core/types"
)

// CityMultiplier adjusts prices for locations containing Key
type CityMultiplier struct {
	Key        string          `json:"key"`
	Multiplier decimal.Decimal `json:"multiplier"`
}

// Item is an exact pricebook entry: Price per one StorageUnit
type Item struct {
	Name  string            `json:"name"`
	Price decimal.Decimal   `json:"price"`
	Unit  types.StorageUnit `json:"unit"`
}

// CategoryRate is the average price of a category per kilogram, liter and piece.
// Any of the rates may be absent.
type CategoryRate struct {
	Category types.Category   `json:"category"`
	PerKg    *decimal.Decimal `json:"per_kg,omitempty"`
	PerL     *decimal.Decimal `json:"per_l,omitempty"`
	PerUnit  *decimal.Decimal `json:"per_unit,omitempty"`
}

// Synonym maps a variant ingredient name to a canonical one
type Synonym struct {
	Variant   string `json:"variant"`
	Canonical string `json:"canonical"`
}

// Definition is the raw content of a pricebook before validation
type Definition struct {
	Currency      types.Currency      `json:"currency"`
	Cities        []CityMultiplier    `json:"cities"`
	Items         []Item              `json:"items"`
	CategoryRates []CategoryRate      `json:"category_rates"`
	Synonyms      []Synonym           `json:"synonyms"`
	Stores        []types.StoreOption `json:"stores"`
}

// ErrInvalidPricebook wraps every pricebook validation failure
var ErrInvalidPricebook = errors.New("invalid pricebook")

// Pricebook is the read-only price reference for one currency
type Pricebook struct {
	currency   types.Currency
	cities     []CityMultiplier
	items      map[string]Item
	itemOrder  []string
	categories map[types.Category]CategoryRate
	synonyms   map[string]string
	stores     []types.StoreOption
	hash       string
}

// NewPricebook validates a definition and freezes it.
// City keys and item names are folded; city order is preserved.
func NewPricebook(def Definition) (*Pricebook, error) {
	var errs []error

	book := &Pricebook{
		currency:   def.Currency,
		items:      make(map[string]Item, len(def.Items)),
		categories: make(map[types.Category]CategoryRate, len(def.CategoryRates)),
		synonyms:   make(map[string]string, len(def.Synonyms)),
	}
	if book.currency == "" {
		book.currency = types.CurrencyCOP
	}

	seenCity := make(map[string]bool)
	for i, c := range def.Cities {
		key := normalize.Fold(c.Key)
		switch {
		case key == "":
			errs = append(errs, fmt.Errorf("city %d: empty key", i))
			continue
		case seenCity[key]:
			errs = append(errs, fmt.Errorf("city %q: defined twice", c.Key))
			continue
		case !c.Multiplier.IsPositive():
			errs = append(errs, fmt.Errorf("city %q: multiplier must be positive", c.Key))
			continue
		}
		seenCity[key] = true
		book.cities = append(book.cities, CityMultiplier{Key: key, Multiplier: c.Multiplier})
	}

	for i, it := range def.Items {
		name := normalize.Fold(it.Name)
		switch {
		case name == "":
			errs = append(errs, fmt.Errorf("item %d: empty name", i))
			continue
		case !it.Unit.IsValid():
			errs = append(errs, fmt.Errorf("item %q: unknown unit %q", it.Name, it.Unit))
			continue
		case !it.Price.IsPositive():
			errs = append(errs, fmt.Errorf("item %q: price must be positive", it.Name))
			continue
		}
		if _, dup := book.items[name]; dup {
			errs = append(errs, fmt.Errorf("item %q: defined twice", it.Name))
			continue
		}
		book.items[name] = Item{Name: name, Price: it.Price, Unit: it.Unit}
		book.itemOrder = append(book.itemOrder, name)
	}

	for _, cr := range def.CategoryRates {
		if !cr.Category.IsValid() {
			errs = append(errs, fmt.Errorf("category rate: unknown category %q", cr.Category))
			continue
		}
		if _, dup := book.categories[cr.Category]; dup {
			errs = append(errs, fmt.Errorf("category rate %q: defined twice", cr.Category))
			continue
		}
		for label, r := range map[string]*decimal.Decimal{"per_kg": cr.PerKg, "per_l": cr.PerL, "per_unit": cr.PerUnit} {
			if r != nil && !r.IsPositive() {
				errs = append(errs, fmt.Errorf("category rate %q: %s must be positive", cr.Category, label))
			}
		}
		book.categories[cr.Category] = cr
	}

	for _, s := range def.Synonyms {
		variant, canonical := normalize.Fold(s.Variant), normalize.Fold(s.Canonical)
		if variant == "" || canonical == "" {
			errs = append(errs, fmt.Errorf("synonym %q -> %q: empty name", s.Variant, s.Canonical))
			continue
		}
		book.synonyms[variant] = canonical
	}

	for i, s := range def.Stores {
		if s.Name == "" {
			errs = append(errs, fmt.Errorf("store %d: empty name", i))
			continue
		}
		if s.Kind != types.StoreHardDiscount && s.Kind != types.StoreSupermarket {
			errs = append(errs, fmt.Errorf("store %q: unknown kind %q", s.Name, s.Kind))
			continue
		}
		book.stores = append(book.stores, s)
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPricebook, errors.Join(errs...))
	}

	hash, err := book.computeHash()
	if err != nil {
		return nil, fmt.Errorf("hashing pricebook: %w", err)
	}
	book.hash = hash
	return book, nil
}

// Currency returns the pricebook currency
func (p *Pricebook) Currency() types.Currency {
	return p.currency
}

// Cities returns city multipliers in definition order
func (p *Pricebook) Cities() []CityMultiplier {
	return append([]CityMultiplier(nil), p.cities...)
}

// Item looks up an exact entry by canonical name
func (p *Pricebook) Item(name string) (Item, bool) {
	it, ok := p.items[normalize.Fold(name)]
	return it, ok
}

// Items returns entries in definition order
func (p *Pricebook) Items() []Item {
	out := make([]Item, 0, len(p.itemOrder))
	for _, name := range p.itemOrder {
		out = append(out, p.items[name])
	}
	return out
}

// CategoryRate returns the fallback rates of a category
func (p *Pricebook) CategoryRate(c types.Category) (CategoryRate, bool) {
	cr, ok := p.categories[c]
	return cr, ok
}

// Synonyms returns a copy of the synonym table
func (p *Pricebook) Synonyms() map[string]string {
	out := make(map[string]string, len(p.synonyms))
	for k, v := range p.synonyms {
		out[k] = v
	}
	return out
}

// Stores returns store options in definition order
func (p *Pricebook) Stores() []types.StoreOption {
	return append([]types.StoreOption(nil), p.stores...)
}

// Hash returns the content hash of the pricebook
func (p *Pricebook) Hash() string {
	return p.hash
}

// computeHash hashes the frozen content in a stable order
func (p *Pricebook) computeHash() (string, error) {
	rates := make([]CategoryRate, 0, len(p.categories))
	for _, c := range types.Categories {
		if cr, ok := p.categories[c]; ok {
			rates = append(rates, cr)
		}
	}
	synonyms := make([]Synonym, 0, len(p.synonyms))
	for variant, canonical := range p.synonyms {
		synonyms = append(synonyms, Synonym{Variant: variant, Canonical: canonical})
	}
	sort.Slice(synonyms, func(i, j int) bool { return synonyms[i].Variant < synonyms[j].Variant })

	data, err := json.Marshal(Definition{
		Currency:      p.currency,
		Cities:        p.cities,
		Items:         p.Items(),
		CategoryRates: rates,
		Synonyms:      synonyms,
		Stores:        p.stores,
	})
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
