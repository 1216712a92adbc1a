package models

import "github.com/shopspring/decimal"

// DefaultTVA is the tax rate applied when none is given (20%).
var DefaultTVA = decimal.RequireFromString("20.0")

var cent = decimal.NewFromInt(100)

// Article is a single line item: a designation, a possibly fractional
// quantity (hours, units), a unit price and a VAT rate in percent.
// Amounts are always derived, never stored.
type Article struct {
	Designation  string
	Quantite     decimal.Decimal
	PrixUnitaire decimal.Decimal
	TVA          decimal.Decimal // taux en pourcentage (20.0, 5.5, ...)
}

// MontantHT returns quantity × unit price.
func (a Article) MontantHT() decimal.Decimal {
	return a.Quantite.Mul(a.PrixUnitaire)
}

// MontantTVA returns the VAT amount: HT × rate / 100.
func (a Article) MontantTVA() decimal.Decimal {
	return a.MontantHT().Mul(a.TVA).Div(cent)
}

// MontantTTC returns the gross amount: HT + TVA.
func (a Article) MontantTTC() decimal.Decimal {
	return a.MontantHT().Add(a.MontantTVA())
}
