// Package validation collects per-field violations before an operation runs.
package validation

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// Violations maps a field name to a short violation code.
type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

// Err returns nil when there is no violation, otherwise an *Error carrying
// the map.
func (v Violations) Err() error {
	if v.Empty() {
		return nil
	}
	return &Error{Violations: v}
}

// Error is the failure reported to the caller when input is invalid.
type Error struct {
	Violations Violations
}

func (e *Error) Error() string {
	fields := make([]string, 0, len(e.Violations))
	for f, code := range e.Violations {
		fields = append(fields, f+": "+code)
	}
	sort.Strings(fields)
	return "validation: " + strings.Join(fields, ", ")
}

// Basic validators

func Required(field, value string, v Violations) {
	if strings.TrimSpace(value) == "" {
		v[field] = "required"
	}
}

func PositiveDecimal(field string, d decimal.Decimal, v Violations) {
	if d.Sign() <= 0 {
		v[field] = "must_be_positive"
	}
}

func NonEmptyList(field string, length int, v Violations) {
	if length == 0 {
		v[field] = "empty"
	}
}
