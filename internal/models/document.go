package models

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// DocType is the variant tag distinguishing quotes from invoices. It is the
// value written in the `type` field of archive records.
type DocType string

const (
	TypeDevis   DocType = "devis"
	TypeFacture DocType = "facture"
)

// Label returns the human title of the document type ("Devis", "Facture").
func (t DocType) Label() string {
	if t == TypeFacture {
		return "Facture"
	}
	return "Devis"
}

// Document carries the fields shared by both variants. Articles keep their
// insertion order: it is display-significant and never sorted.
type Document struct {
	Numero     string
	Date       time.Time
	Client     Client
	Entreprise Entreprise
	Articles   []Article
	Conditions string
	Notes      string
}

// TotalHT sums the net amounts of all articles.
func (d *Document) TotalHT() decimal.Decimal {
	total := decimal.Zero
	for _, a := range d.Articles {
		total = total.Add(a.MontantHT())
	}
	return total
}

// TotalTVA sums the VAT amounts of all articles.
func (d *Document) TotalTVA() decimal.Decimal {
	total := decimal.Zero
	for _, a := range d.Articles {
		total = total.Add(a.MontantTVA())
	}
	return total
}

// TotalTTC returns TotalHT + TotalTVA.
func (d *Document) TotalTTC() decimal.Decimal {
	return d.TotalHT().Add(d.TotalTVA())
}

// LigneTVA is one row of the VAT breakdown: the taxable base and the VAT
// amount accumulated for a given rate.
type LigneTVA struct {
	Taux    decimal.Decimal
	Base    decimal.Decimal
	Montant decimal.Decimal
}

// TVAParTaux groups articles by exact rate equality (20.0 and 20.00 are the
// same rate, 20.0 and 5.5 are not) and returns one row per distinct rate,
// sorted ascending for display.
func (d *Document) TVAParTaux() []LigneTVA {
	var lignes []LigneTVA
	for _, a := range d.Articles {
		idx := -1
		for i, l := range lignes {
			if l.Taux.Equal(a.TVA) {
				idx = i
				break
			}
		}
		if idx == -1 {
			lignes = append(lignes, LigneTVA{Taux: a.TVA, Base: decimal.Zero, Montant: decimal.Zero})
			idx = len(lignes) - 1
		}
		lignes[idx].Base = lignes[idx].Base.Add(a.MontantHT())
		lignes[idx].Montant = lignes[idx].Montant.Add(a.MontantTVA())
	}
	sort.Slice(lignes, func(i, j int) bool {
		return lignes[i].Taux.Cmp(lignes[j].Taux) < 0
	})
	return lignes
}

// Doc is implemented by both document variants. The codec and the renderer
// switch on Type() instead of on concrete types.
type Doc interface {
	Base() *Document
	Type() DocType
}

// Devis is a quote: a priced proposal valid for a limited number of days.
type Devis struct {
	Document
	ValiditeJours int
}

// NewDevis wraps a Document into a quote with the default 30-day validity.
func NewDevis(d Document) *Devis {
	return &Devis{Document: d, ValiditeJours: 30}
}

// DateValidite returns the last day the quote can be accepted.
func (d *Devis) DateValidite() time.Time {
	return d.Date.AddDate(0, 0, d.ValiditeJours)
}

func (d *Devis) Base() *Document { return &d.Document }
func (d *Devis) Type() DocType   { return TypeDevis }

// Facture is an invoice: a binding billing document with a due date and an
// optional reference to the quote it originates from.
type Facture struct {
	Document
	DateEcheance   time.Time
	ReferenceDevis string
	Payee          bool
}

// NewFacture wraps a Document into an invoice. The due date defaults to the
// issue date plus 30 days.
func NewFacture(d Document) *Facture {
	return &Facture{Document: d, DateEcheance: d.Date.AddDate(0, 0, 30)}
}

func (f *Facture) Base() *Document { return &f.Document }
func (f *Facture) Type() DocType   { return TypeFacture }
