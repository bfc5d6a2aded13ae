// Package pricebook loads pricebooks from HCL files.
// The default Colombian pricebook is embedded; any file in the same format
// can replace it.
package pricebook

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/shopspring/decimal"
	"github.com/zclconf/go-cty/cty"
	"go.uber.org/zap"

	"grocery-cost/core/determinism"
	"grocery-cost/core/pricing"
	"grocery-cost/core/types"
	"grocery-cost/internal/errors"
)

// DefaultFilename names the embedded pricebook in diagnostics
const DefaultFilename = "pricebook.hcl"

//go:embed data/pricebook.hcl
var defaultSource []byte

// DefaultSource returns a copy of the embedded pricebook
func DefaultSource() []byte {
	return append([]byte(nil), defaultSource...)
}

// fileSchema is the top-level layout of a pricebook file
type fileSchema struct {
	Currency   string          `hcl:"currency,optional"`
	Cities     []cityBlock     `hcl:"city,block"`
	Items      []itemBlock     `hcl:"item,block"`
	Categories []categoryBlock `hcl:"category,block"`
	Synonyms   []synonymBlock  `hcl:"synonym,block"`
	Stores     []storeBlock    `hcl:"store,block"`
}

type cityBlock struct {
	Key        string    `hcl:"key,label"`
	Multiplier cty.Value `hcl:"multiplier"`
}

type itemBlock struct {
	Name  string    `hcl:"name,label"`
	Price cty.Value `hcl:"price"`
	Unit  string    `hcl:"unit"`
}

type categoryBlock struct {
	Category string    `hcl:"category,label"`
	PerKg    cty.Value `hcl:"per_kg,optional"`
	PerL     cty.Value `hcl:"per_l,optional"`
	PerUnit  cty.Value `hcl:"per_unit,optional"`
}

type synonymBlock struct {
	Variant   string `hcl:"variant,label"`
	Canonical string `hcl:"canonical"`
}

type storeBlock struct {
	Name string `hcl:"name,label"`
	Kind string `hcl:"kind"`
}

// Source describes where a loaded pricebook came from
type Source struct {
	// Filename is the file path, or DefaultFilename for the embedded book
	Filename string

	// Hash is the content hash of the raw file
	Hash determinism.ContentHash
}

// Loader parses pricebook files
type Loader struct {
	logger *zap.Logger
}

// NewLoader creates a loader
func NewLoader(logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{logger: logger}
}

// Load reads a pricebook from path, or the embedded default when path is empty
func (l *Loader) Load(path string) (*pricing.Pricebook, Source, error) {
	if path == "" {
		return l.Parse(defaultSource, DefaultFilename)
	}
	src, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, Source{}, errors.NotFound("pricebook", path)
		}
		return nil, Source{}, errors.Pricebook("reading pricebook", err).WithContext("path", path)
	}
	return l.Parse(src, path)
}

// Parse decodes and validates pricebook source
func (l *Loader) Parse(src []byte, filename string) (*pricing.Pricebook, Source, error) {
	source := Source{Filename: filename, Hash: determinism.ComputeHash(src)}

	// hclparse caches files by name, so each parse gets its own parser
	file, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, source, errors.Parsing("parsing pricebook", diags).WithContext("file", filename)
	}

	var raw fileSchema
	if diags := gohcl.DecodeBody(file.Body, nil, &raw); diags.HasErrors() {
		return nil, source, errors.Parsing("decoding pricebook", diags).WithContext("file", filename)
	}

	def, err := toDefinition(raw)
	if err != nil {
		return nil, source, errors.Pricebook("invalid pricebook values", err).WithContext("file", filename)
	}

	book, err := pricing.NewPricebook(def)
	if err != nil {
		return nil, source, errors.Pricebook("invalid pricebook", err).WithContext("file", filename)
	}

	l.logger.Info("pricebook loaded",
		zap.String("file", filename),
		zap.String("content_hash", source.Hash.String()),
		zap.Int("cities", len(def.Cities)),
		zap.Int("items", len(def.Items)),
		zap.Int("synonyms", len(def.Synonyms)),
	)
	return book, source, nil
}

// LoadDefault parses the embedded pricebook.
// The embedded file is validated by tests, so failure is a build defect.
func LoadDefault() *pricing.Pricebook {
	book, _, err := NewLoader(nil).Load("")
	if err != nil {
		panic("INVARIANT VIOLATED: embedded pricebook is invalid: " + err.Error())
	}
	return book
}

func toDefinition(raw fileSchema) (pricing.Definition, error) {
	def := pricing.Definition{Currency: types.Currency(raw.Currency)}

	for _, c := range raw.Cities {
		m, err := requireDecimal(c.Multiplier)
		if err != nil {
			return def, fmt.Errorf("city %q multiplier: %w", c.Key, err)
		}
		def.Cities = append(def.Cities, pricing.CityMultiplier{Key: c.Key, Multiplier: m})
	}

	for _, it := range raw.Items {
		price, err := requireDecimal(it.Price)
		if err != nil {
			return def, fmt.Errorf("item %q price: %w", it.Name, err)
		}
		def.Items = append(def.Items, pricing.Item{Name: it.Name, Price: price, Unit: types.StorageUnit(it.Unit)})
	}

	for _, cb := range raw.Categories {
		category, ok := types.ParseCategory(cb.Category)
		if !ok {
			return def, fmt.Errorf("unknown category %q", cb.Category)
		}
		rate := pricing.CategoryRate{Category: category}
		var err error
		if rate.PerKg, err = optionalDecimal(cb.PerKg); err != nil {
			return def, fmt.Errorf("category %q per_kg: %w", cb.Category, err)
		}
		if rate.PerL, err = optionalDecimal(cb.PerL); err != nil {
			return def, fmt.Errorf("category %q per_l: %w", cb.Category, err)
		}
		if rate.PerUnit, err = optionalDecimal(cb.PerUnit); err != nil {
			return def, fmt.Errorf("category %q per_unit: %w", cb.Category, err)
		}
		def.CategoryRates = append(def.CategoryRates, rate)
	}

	for _, s := range raw.Synonyms {
		def.Synonyms = append(def.Synonyms, pricing.Synonym{Variant: s.Variant, Canonical: s.Canonical})
	}

	for _, s := range raw.Stores {
		def.Stores = append(def.Stores, types.StoreOption{Name: s.Name, Kind: types.StoreKind(s.Kind)})
	}
	return def, nil
}

// requireDecimal converts a known, non-null number to a decimal without
// passing through float64.
func requireDecimal(v cty.Value) (decimal.Decimal, error) {
	if v.Type() == cty.NilType || v.IsNull() {
		return decimal.Zero, fmt.Errorf("value is required")
	}
	if !v.IsKnown() {
		return decimal.Zero, fmt.Errorf("value is unknown")
	}
	if !v.Type().Equals(cty.Number) {
		return decimal.Zero, fmt.Errorf("expected a number, got %s", v.Type().FriendlyName())
	}
	return decimal.NewFromString(v.AsBigFloat().Text('f', -1))
}

// optionalDecimal is requireDecimal for optional attributes.
// gohcl leaves absent cty.Value fields as cty.NilVal.
func optionalDecimal(v cty.Value) (*decimal.Decimal, error) {
	if v.Type() == cty.NilType || v.IsNull() {
		return nil, nil
	}
	d, err := requireDecimal(v)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
