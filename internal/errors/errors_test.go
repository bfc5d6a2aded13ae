package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

// TestErrorFormatting tests messages with and without a cause
func TestErrorFormatting(t *testing.T) {
	if got := Input("headcount must be positive").Error(); got != "[INPUT_ERROR] headcount must be positive" {
		t.Errorf("unexpected message %q", got)
	}
	err := Pricebook("loading pricebook", fmt.Errorf("bad unit"))
	if got := err.Error(); got != "[PRICEBOOK_ERROR] loading pricebook: bad unit" {
		t.Errorf("unexpected message %q", got)
	}
}

// TestTypeOfFollowsWrapping tests type detection through fmt wrapping
func TestTypeOfFollowsWrapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Type
	}{
		{"direct", Input("x"), TypeInput},
		{"wrapped", fmt.Errorf("cli: %w", Config("bad file", nil)), TypeConfig},
		{"untyped", stderrors.New("boom"), TypeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TypeOf(tt.err); got != tt.want {
				t.Errorf("TypeOf = %s, want %s", got, tt.want)
			}
		})
	}
}

// TestIsTypeSearchesChain tests nested typed errors
func TestIsTypeSearchesChain(t *testing.T) {
	inner := Parsing("decoding menu", stderrors.New("unexpected EOF"))
	outer := Wrap(TypeInput, "reading request", inner)

	if !IsType(outer, TypeInput) || !IsType(outer, TypeParsing) {
		t.Error("expected both types to be found")
	}
	if IsType(outer, TypePricebook) {
		t.Error("unexpected pricebook type")
	}
	if IsType(nil, TypeInput) {
		t.Error("nil error has no type")
	}
}

// TestWithContext tests context accumulation
func TestWithContext(t *testing.T) {
	err := NotFound("city", "Atlantis").WithContext("known", 5)
	if err.Context["known"] != 5 {
		t.Errorf("expected context to be recorded, got %v", err.Context)
	}
	if !err.Is(TypeNotFound) {
		t.Error("expected NOT_FOUND")
	}
}
