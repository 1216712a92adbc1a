package models

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseError signals a malformed numeric field in form input. The caller must
// not add a partially built article when it is returned.
type ParseError struct {
	Field string
	Value string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("valeur invalide pour %s: %q", e.Field, e.Value)
}

// ParseArticle builds an Article from form-style string input. Decimal commas
// are accepted ("1,5" parses as 1.5, matching the original French input
// fields). An empty TVA falls back to DefaultTVA. Any non-parseable numeric
// field yields a *ParseError naming the field.
func ParseArticle(designation, quantite, prixUnitaire, tva string) (Article, error) {
	qte, err := parseDecimal(quantite)
	if err != nil {
		return Article{}, &ParseError{Field: "quantite", Value: quantite}
	}
	prix, err := parseDecimal(prixUnitaire)
	if err != nil {
		return Article{}, &ParseError{Field: "prix_unitaire", Value: prixUnitaire}
	}
	taux := DefaultTVA
	if strings.TrimSpace(tva) != "" {
		taux, err = parseDecimal(tva)
		if err != nil {
			return Article{}, &ParseError{Field: "tva", Value: tva}
		}
	}
	return Article{
		Designation:  strings.TrimSpace(designation),
		Quantite:     qte,
		PrixUnitaire: prix,
		TVA:          taux,
	}, nil
}

func parseDecimal(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return decimal.Zero, fmt.Errorf("empty value")
	}
	return decimal.NewFromString(s)
}
