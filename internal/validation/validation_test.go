package validation

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestViolations(t *testing.T) {
	v := make(Violations)
	if err := v.Err(); err != nil {
		t.Fatalf("empty violations should be nil, got %v", err)
	}

	Required("nom", "  ", v)
	Required("ville", "Paris", v)
	PositiveDecimal("prix", decimal.Zero, v)
	NonEmptyList("articles", 0, v)

	if len(v) != 3 {
		t.Fatalf("violations = %v, want 3 entries", v)
	}
	err := v.Err()
	if err == nil {
		t.Fatal("expected an error")
	}
	want := "validation: articles: empty, nom: required, prix: must_be_positive"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
