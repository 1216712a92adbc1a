package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/diewo77/myinvo/internal/models"
)

func testConfig(t *testing.T) *Config {
	t.Helper()
	return &Config{WorkingDir: t.TempDir()}
}

func TestEnsureDirs(t *testing.T) {
	c := testConfig(t)
	if err := c.EnsureDirs(); err != nil {
		t.Fatalf("EnsureDirs() error: %v", err)
	}
	for _, d := range []string{"config", "archives", "devis", "factures", "logs"} {
		if _, err := os.Stat(filepath.Join(c.WorkingDir, d)); err != nil {
			t.Errorf("missing directory %s: %v", d, err)
		}
	}
	// Idempotent.
	if err := c.EnsureDirs(); err != nil {
		t.Errorf("second EnsureDirs() error: %v", err)
	}
}

func TestEntreprise_DefaultWhenMissing(t *testing.T) {
	c := testConfig(t)
	e := c.LoadEntreprise()
	if e.Nom != "Votre Entreprise" {
		t.Errorf("Nom = %q, want placeholder profile", e.Nom)
	}
}

func TestEntreprise_RoundTrip(t *testing.T) {
	c := testConfig(t)
	want := models.Entreprise{
		Nom:        "Atelier Dubois",
		Adresse:    "8 avenue des Ternes",
		CodePostal: "75017",
		Ville:      "Paris",
		SIRET:      "987 654 321 00021",
		Email:      "contact@atelier-dubois.fr",
		Logo:       "logo.png",
	}
	if err := c.SaveEntreprise(want); err != nil {
		t.Fatalf("SaveEntreprise() error: %v", err)
	}
	got := c.LoadEntreprise()
	if got != want {
		t.Errorf("LoadEntreprise() = %+v, want %+v", got, want)
	}
}

func TestPreferences_Defaults(t *testing.T) {
	c := testConfig(t)
	p := c.LoadPreferences()
	if !p.AutoSauvegarde || !p.ConfirmerSuppression || p.TVADefaut != "20.0" {
		t.Errorf("unexpected defaults: %+v", p)
	}
}

func TestPreferences_RoundTrip(t *testing.T) {
	c := testConfig(t)
	want := Preferences{AutoSauvegarde: false, ConfirmerSuppression: true, TVADefaut: "5.5"}
	if err := c.SavePreferences(want); err != nil {
		t.Fatalf("SavePreferences() error: %v", err)
	}
	if got := c.LoadPreferences(); got != want {
		t.Errorf("LoadPreferences() = %+v, want %+v", got, want)
	}
}

func TestDefaultPDFPath(t *testing.T) {
	c := &Config{WorkingDir: "/tmp/w"}
	if got := c.DefaultPDFPath("Devis", "N1"); got != filepath.Join("/tmp/w", "devis", "Devis_N1.pdf") {
		t.Errorf("DefaultPDFPath(devis) = %s", got)
	}
	if got := c.DefaultPDFPath("Facture", "N1"); got != filepath.Join("/tmp/w", "factures", "Facture_N1.pdf") {
		t.Errorf("DefaultPDFPath(facture) = %s", got)
	}
}
