// Package normalize canonicalizes ingredient names.
// Canonical names are the consolidation and classification key.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold strips diacritics, lowercases, collapses whitespace and trims.
func Fold(s string) string {
	// transform.Chain is stateful, so each call builds its own.
	stripAccents := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(stripAccents, s)
	if err != nil {
		folded = s
	}
	return strings.Join(strings.Fields(strings.ToLower(folded)), " ")
}

// DefaultSynonyms maps common variants to the pricebook's canonical names
var DefaultSynonyms = map[string]string{
	"red onion":       "onion",
	"white onion":     "onion",
	"yellow onion":    "onion",
	"bell pepper":     "pepper",
	"red pepper":      "pepper",
	"green pepper":    "pepper",
	"chicken breast":  "chicken",
	"chicken breasts": "chicken",
	"beef":            "ground beef",
	"minced beef":     "ground beef",
	"tinned tuna":     "tuna",
	"canned tuna":     "tuna",
	"eggs":            "egg",
	"tomatoes":        "tomato",
	"potatoes":        "potato",
	"carrots":         "carrot",
	"lentil":          "lentils",
	"lime":            "lemon",
	"scallion":        "green onion",
	"spring onion":    "green onion",
	"olive oil":       "oil",
	"vegetable oil":   "oil",
	"white rice":      "rice",
	"spaghetti":       "pasta",
	"plain yogurt":    "yogurt",
	"yoghurt":         "yogurt",
}

// Normalizer resolves raw names to canonical names.
// It is read-only after construction and safe for concurrent use.
type Normalizer struct {
	synonyms map[string]string
}

// New creates a normalizer over a synonym table.
// Keys and values are folded so lookups ignore case and accents.
// Chains (a -> b, b -> c) are collapsed to their final name and
// cyclic entries are dropped, so every result is a fixed point.
func New(synonyms map[string]string) *Normalizer {
	folded := make(map[string]string, len(synonyms))
	for variant, canonical := range synonyms {
		key := Fold(variant)
		value := Fold(canonical)
		if key == "" || value == "" || key == value {
			continue
		}
		folded[key] = value
	}

	n := &Normalizer{synonyms: make(map[string]string, len(folded))}
	for key, value := range folded {
		seen := map[string]bool{key: true}
		for {
			next, ok := folded[value]
			if !ok {
				break
			}
			if seen[value] {
				value = ""
				break
			}
			seen[value] = true
			value = next
		}
		if value != "" {
			n.synonyms[key] = value
		}
	}
	return n
}

// NewDefault creates a normalizer over DefaultSynonyms
func NewDefault() *Normalizer {
	return New(DefaultSynonyms)
}

// Canonical returns the canonical name for a raw ingredient name.
// Unknown names pass through folded.
func (n *Normalizer) Canonical(raw string) string {
	key := Fold(raw)
	if canonical, ok := n.synonyms[key]; ok {
		return canonical
	}
	return key
}

// Len returns the number of synonyms
func (n *Normalizer) Len() int {
	return len(n.synonyms)
}
