package services

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/diewo77/myinvo/internal/config"
	"github.com/diewo77/myinvo/internal/license"
	"github.com/diewo77/myinvo/internal/models"
	"github.com/diewo77/myinvo/internal/validation"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// fakeGate drives the license decision from test fields.
type fakeGate struct {
	activated bool
	info      *license.InstallInfo
	expired   bool
	days      int
}

func (f *fakeGate) IsActivated() bool                         { return f.activated }
func (f *fakeGate) InstallInfo() (*license.InstallInfo, bool) { return f.info, f.info != nil }
func (f *fakeGate) IsExpired(info *license.InstallInfo) bool  { return f.expired }
func (f *fakeGate) DaysRemaining() int                        { return f.days }

func testService(t *testing.T, gate license.Gate) (*DocumentService, *config.Config) {
	t.Helper()
	cfg := &config.Config{WorkingDir: t.TempDir()}
	if err := cfg.EnsureDirs(); err != nil {
		t.Fatal(err)
	}
	return NewDocumentService(cfg, config.DefaultPreferences(), gate), cfg
}

func validDraft() *Draft {
	d := NewDraft(models.TypeDevis, time.Date(2025, 4, 1, 10, 0, 0, 0, time.UTC))
	d.Client = models.Client{Nom: "Dupont", Prenom: "Jean"}
	d.AddArticle(models.Article{Designation: "Conseil", Quantite: dec("1"), PrixUnitaire: dec("100"), TVA: dec("20.0")})
	return d
}

func entreprise() models.Entreprise {
	return models.Entreprise{Nom: "E", Adresse: "A", CodePostal: "75000", Ville: "Paris"}
}

func TestBuild_RejectsEmptyArticles(t *testing.T) {
	s, _ := testService(t, &fakeGate{days: -1})
	d := validDraft()
	d.Articles = nil

	_, err := s.Build(d, entreprise())
	var ve *validation.Error
	if !errors.As(err, &ve) {
		t.Fatalf("expected *validation.Error, got %v", err)
	}
	if ve.Violations["articles"] != "empty" {
		t.Errorf("violations = %v", ve.Violations)
	}
	// The draft itself is untouched by a failed build.
	if d.Numero == "" {
		t.Error("draft mutated by failed build")
	}
}

func TestBuild_RejectsMissingClientName(t *testing.T) {
	s, _ := testService(t, &fakeGate{days: -1})
	d := validDraft()
	d.Client = models.Client{}

	_, err := s.Build(d, entreprise())
	var ve *validation.Error
	if !errors.As(err, &ve) {
		t.Fatalf("expected *validation.Error, got %v", err)
	}
	if _, ok := ve.Violations["client"]; !ok {
		t.Errorf("violations = %v", ve.Violations)
	}
}

func TestBuild_Variants(t *testing.T) {
	s, _ := testService(t, &fakeGate{days: -1})

	d := validDraft()
	d.ValiditeJours = 15
	doc, err := s.Build(d, entreprise())
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	devis, ok := doc.(*models.Devis)
	if !ok || devis.ValiditeJours != 15 {
		t.Errorf("Build() = %T (%+v), want devis with 15 days", doc, doc)
	}

	d = validDraft()
	d.Type = models.TypeFacture
	d.ReferenceDevis = "20250301-090000"
	doc, err = s.Build(d, entreprise())
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	facture, ok := doc.(*models.Facture)
	if !ok {
		t.Fatalf("Build() = %T, want *models.Facture", doc)
	}
	if facture.ReferenceDevis != "20250301-090000" {
		t.Errorf("ReferenceDevis = %q", facture.ReferenceDevis)
	}
	want := d.Date.AddDate(0, 0, 30)
	if !facture.DateEcheance.Equal(want) {
		t.Errorf("DateEcheance = %s, want %s", facture.DateEcheance, want)
	}
}

func TestExport_TrialAddsArchiveAndPDF(t *testing.T) {
	s, cfg := testService(t, &fakeGate{days: -1}) // no key: watermark mode

	doc, err := s.Build(validDraft(), entreprise())
	if err != nil {
		t.Fatal(err)
	}
	res, err := s.Export(doc, "")
	if err != nil {
		t.Fatalf("Export() error: %v", err)
	}
	if res.Decision.Mode != license.ExportWatermark {
		t.Errorf("Decision.Mode = %v, want watermark", res.Decision.Mode)
	}
	if res.ArchivePath == "" {
		t.Error("auto-save on: archive path expected")
	}
	if _, err := os.Stat(res.PDFPath); err != nil {
		t.Errorf("PDF not written: %v", err)
	}
	if filepath.Dir(res.PDFPath) != filepath.Join(cfg.WorkingDir, "devis") {
		t.Errorf("default PDF path = %s", res.PDFPath)
	}
}

func TestExport_ExpiredKeyBlocksAndWritesNothing(t *testing.T) {
	gate := &fakeGate{
		activated: false,
		info:      &license.InstallInfo{Key: "K", KeyType: license.KeyStandard},
		expired:   true,
	}
	s, cfg := testService(t, gate)

	doc, err := s.Build(validDraft(), entreprise())
	if err != nil {
		t.Fatal(err)
	}
	_, err = s.Export(doc, "")
	var le *license.Error
	if !errors.As(err, &le) {
		t.Fatalf("expected *license.Error, got %v", err)
	}

	entries, err := s.Store().List()
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Error("blocked export must not archive")
	}
	if _, err := os.Stat(cfg.DefaultPDFPath("Devis", doc.Base().Numero)); !os.IsNotExist(err) {
		t.Error("blocked export must not write a PDF")
	}
}

func TestExport_NoAutoSave(t *testing.T) {
	cfg := &config.Config{WorkingDir: t.TempDir()}
	if err := cfg.EnsureDirs(); err != nil {
		t.Fatal(err)
	}
	prefs := config.DefaultPreferences()
	prefs.AutoSauvegarde = false
	s := NewDocumentService(cfg, prefs, &fakeGate{activated: true, days: -1})

	doc, err := s.Build(validDraft(), entreprise())
	if err != nil {
		t.Fatal(err)
	}
	res, err := s.Export(doc, "")
	if err != nil {
		t.Fatalf("Export() error: %v", err)
	}
	if res.ArchivePath != "" {
		t.Error("auto-save off: no archive expected")
	}
	if res.Decision.Mode != license.ExportAllow {
		t.Errorf("Decision.Mode = %v, want allow", res.Decision.Mode)
	}
}

func TestDraft_SaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "draft.json")

	if d, err := LoadDraft(path); err != nil || d != nil {
		t.Fatalf("LoadDraft(missing) = %v, %v; want nil, nil", d, err)
	}

	d := validDraft()
	d.Notes = "brouillon"
	if err := d.Save(path); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	got, err := LoadDraft(path)
	if err != nil {
		t.Fatalf("LoadDraft() error: %v", err)
	}
	if got.Numero != d.Numero || got.Notes != "brouillon" || len(got.Articles) != 1 {
		t.Errorf("round trip lost data: %+v", got)
	}
	if !got.Articles[0].PrixUnitaire.Equal(dec("100")) {
		t.Errorf("PrixUnitaire = %s", got.Articles[0].PrixUnitaire)
	}
}

func TestDraft_RemoveArticle(t *testing.T) {
	d := validDraft()
	d.AddArticle(models.Article{Designation: "Deuxième", Quantite: dec("1"), PrixUnitaire: dec("10"), TVA: dec("5.5")})

	if err := d.RemoveArticle(5); err == nil {
		t.Error("expected error for out-of-range index")
	}
	if err := d.RemoveArticle(0); err != nil {
		t.Fatalf("RemoveArticle(0) error: %v", err)
	}
	if len(d.Articles) != 1 || d.Articles[0].Designation != "Deuxième" {
		t.Errorf("unexpected articles after removal: %+v", d.Articles)
	}
}

func TestFromDocument(t *testing.T) {
	facture := models.NewFacture(models.Document{
		Numero:   "N9",
		Date:     time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
		Client:   models.Client{Entreprise: "Acme"},
		Articles: []models.Article{{Designation: "X", Quantite: dec("1"), PrixUnitaire: dec("5"), TVA: dec("20.0")}},
	})
	facture.ReferenceDevis = "REF"

	d := FromDocument(facture)
	if d.Type != models.TypeFacture || d.Numero != "N9" || d.ReferenceDevis != "REF" {
		t.Errorf("FromDocument() = %+v", d)
	}
	if len(d.Articles) != 1 {
		t.Errorf("articles not copied: %+v", d.Articles)
	}
}
