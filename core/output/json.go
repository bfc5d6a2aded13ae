package output

import (
	"encoding/json"
	"io"

	"grocery-cost/core/types"
)

// JSONFormatter writes the plan as JSON
type JSONFormatter struct {
	indent bool
}

// NewJSONFormatter creates a JSON formatter
func NewJSONFormatter(indent bool) *JSONFormatter {
	return &JSONFormatter{indent: indent}
}

// Format returns FormatJSON
func (f *JSONFormatter) Format() Format {
	return FormatJSON
}

// Render writes the plan
func (f *JSONFormatter) Render(w io.Writer, plan *types.WeeklyPlan) error {
	enc := json.NewEncoder(w)
	if f.indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(plan)
}
