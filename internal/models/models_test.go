package models

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestClient_NomComplet(t *testing.T) {
	tests := []struct {
		name   string
		client Client
		want   string
	}{
		{"company wins", Client{Entreprise: "Acme", Nom: "Dupont", Prenom: "Jean"}, "Acme"},
		{"first and last", Client{Prenom: "Jean", Nom: "Dupont"}, "Jean Dupont"},
		{"last only", Client{Nom: "Dupont"}, "Dupont"},
		{"first only", Client{Prenom: "Jean"}, "Jean"},
		{"empty", Client{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.client.NomComplet(); got != tt.want {
				t.Errorf("NomComplet() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestArticle_Montants(t *testing.T) {
	a := Article{
		Designation:  "Prestation",
		Quantite:     dec("2.5"),
		PrixUnitaire: dec("100.00"),
		TVA:          dec("20.0"),
	}
	if got := a.MontantHT(); !got.Equal(dec("250")) {
		t.Errorf("MontantHT() = %s, want 250", got)
	}
	if got := a.MontantTVA(); !got.Equal(dec("50")) {
		t.Errorf("MontantTVA() = %s, want 50", got)
	}
	if got := a.MontantTTC(); !got.Equal(dec("300")) {
		t.Errorf("MontantTTC() = %s, want 300", got)
	}
}

func TestArticle_MontantsExactDecimal(t *testing.T) {
	// 0.1 + 0.2 style drift must not appear with decimal arithmetic.
	a := Article{Quantite: dec("3"), PrixUnitaire: dec("0.10"), TVA: dec("5.5")}
	if got := a.MontantHT(); !got.Equal(dec("0.3")) {
		t.Errorf("MontantHT() = %s, want 0.3", got)
	}
	if got := a.MontantTVA(); !got.Equal(dec("0.0165")) {
		t.Errorf("MontantTVA() = %s, want 0.0165", got)
	}
}

func TestDocument_Totaux(t *testing.T) {
	d := Document{
		Articles: []Article{
			{Quantite: dec("2"), PrixUnitaire: dec("100"), TVA: dec("20.0")}, // HT 200, TVA 40
			{Quantite: dec("1"), PrixUnitaire: dec("50"), TVA: dec("10.0")},  // HT 50, TVA 5
			{Quantite: dec("3"), PrixUnitaire: dec("10"), TVA: dec("5.5")},   // HT 30, TVA 1.65
		},
	}
	if got := d.TotalHT(); !got.Equal(dec("280")) {
		t.Errorf("TotalHT() = %s, want 280", got)
	}
	if got := d.TotalTVA(); !got.Equal(dec("46.65")) {
		t.Errorf("TotalTVA() = %s, want 46.65", got)
	}
	if got := d.TotalTTC(); !got.Equal(dec("326.65")) {
		t.Errorf("TotalTTC() = %s, want 326.65", got)
	}
}

func TestDocument_TVAParTaux(t *testing.T) {
	d := Document{
		Articles: []Article{
			{Quantite: dec("1"), PrixUnitaire: dec("100"), TVA: dec("20.0")},
			{Quantite: dec("1"), PrixUnitaire: dec("40"), TVA: dec("5.5")},
			{Quantite: dec("1"), PrixUnitaire: dec("60"), TVA: dec("20.00")}, // same rate as 20.0
		},
	}
	lignes := d.TVAParTaux()
	if len(lignes) != 2 {
		t.Fatalf("expected 2 rates, got %d", len(lignes))
	}
	// Ascending order: 5.5 before 20.0.
	if !lignes[0].Taux.Equal(dec("5.5")) || !lignes[1].Taux.Equal(dec("20.0")) {
		t.Fatalf("rates out of order: %s, %s", lignes[0].Taux, lignes[1].Taux)
	}
	if !lignes[1].Base.Equal(dec("160")) {
		t.Errorf("base at 20%% = %s, want 160", lignes[1].Base)
	}
	if !lignes[1].Montant.Equal(dec("32")) {
		t.Errorf("montant at 20%% = %s, want 32", lignes[1].Montant)
	}
	// The breakdown must account for the whole VAT total.
	sum := decimal.Zero
	for _, l := range lignes {
		sum = sum.Add(l.Montant)
	}
	if !sum.Equal(d.TotalTVA()) {
		t.Errorf("breakdown sums to %s, TotalTVA() = %s", sum, d.TotalTVA())
	}
}

func TestDevis_DateValidite(t *testing.T) {
	d := NewDevis(Document{Date: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)})
	if d.ValiditeJours != 30 {
		t.Fatalf("default validity = %d, want 30", d.ValiditeJours)
	}
	want := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
	if got := d.DateValidite(); !got.Equal(want) {
		t.Errorf("DateValidite() = %s, want %s", got, want)
	}
}

func TestFacture_DateEcheanceParDefaut(t *testing.T) {
	f := NewFacture(Document{Date: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)})
	want := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
	if !f.DateEcheance.Equal(want) {
		t.Errorf("DateEcheance = %s, want %s", f.DateEcheance, want)
	}
	if f.Payee {
		t.Error("new invoice must not be marked paid")
	}
	if f.ReferenceDevis != "" {
		t.Errorf("ReferenceDevis = %q, want empty", f.ReferenceDevis)
	}
}

func TestParseArticle(t *testing.T) {
	a, err := ParseArticle("Conseil", "1,5", "80,00", "")
	if err != nil {
		t.Fatalf("ParseArticle() error: %v", err)
	}
	if !a.Quantite.Equal(dec("1.5")) {
		t.Errorf("Quantite = %s, want 1.5", a.Quantite)
	}
	if !a.PrixUnitaire.Equal(dec("80")) {
		t.Errorf("PrixUnitaire = %s, want 80", a.PrixUnitaire)
	}
	if !a.TVA.Equal(DefaultTVA) {
		t.Errorf("TVA = %s, want default %s", a.TVA, DefaultTVA)
	}
}

func TestParseArticle_BadInput(t *testing.T) {
	tests := []struct {
		name      string
		qte, prix string
		tva       string
		field     string
	}{
		{"bad quantity", "abc", "10", "20.0", "quantite"},
		{"empty quantity", "", "10", "20.0", "quantite"},
		{"bad price", "1", "dix", "20.0", "prix_unitaire"},
		{"bad rate", "1", "10", "vingt", "tva"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseArticle("X", tt.qte, tt.prix, tt.tva)
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("expected *ParseError, got %v", err)
			}
			if pe.Field != tt.field {
				t.Errorf("Field = %q, want %q", pe.Field, tt.field)
			}
		})
	}
}

func TestDocType_Label(t *testing.T) {
	if TypeDevis.Label() != "Devis" || TypeFacture.Label() != "Facture" {
		t.Errorf("unexpected labels: %s, %s", TypeDevis.Label(), TypeFacture.Label())
	}
}
