package archive

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/diewo77/myinvo/internal/models"
)

func storeBase(numero string) models.Document {
	return models.Document{
		Numero: numero,
		Date:   time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC),
		Entreprise: models.Entreprise{
			Nom: "E", Adresse: "A", CodePostal: "75000", Ville: "Paris",
		},
		Client: models.Client{Nom: "Dupont"},
		Articles: []models.Article{
			{Designation: "Conseil", Quantite: dec("1"), PrixUnitaire: dec("500"), TVA: dec("20.0")},
		},
	}
}

func TestStore_SaveLoad(t *testing.T) {
	s := NewStore(t.TempDir())

	devis := models.NewDevis(storeBase("20250310-093000"))
	path, err := s.Save(devis)
	if err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	if filepath.Base(path) != "devis_20250310-093000.json" {
		t.Errorf("unexpected file name %s", filepath.Base(path))
	}

	doc, err := s.Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if doc.Type() != models.TypeDevis {
		t.Errorf("Type() = %s, want devis", doc.Type())
	}
	if doc.Base().Numero != "20250310-093000" {
		t.Errorf("Numero = %s", doc.Base().Numero)
	}
}

func TestStore_SaveOverwrites(t *testing.T) {
	s := NewStore(t.TempDir())
	devis := models.NewDevis(storeBase("N1"))
	if _, err := s.Save(devis); err != nil {
		t.Fatal(err)
	}
	devis.Notes = "updated"
	path, err := s.Save(devis)
	if err != nil {
		t.Fatal(err)
	}
	doc, err := s.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if doc.Base().Notes != "updated" {
		t.Errorf("Notes = %q, want updated (last write wins)", doc.Base().Notes)
	}
}

func TestStore_List(t *testing.T) {
	s := NewStore(t.TempDir())

	if entries, err := s.List(); err != nil || entries != nil {
		t.Fatalf("List() on missing dir = %v, %v; want nil, nil", entries, err)
	}

	if _, err := s.Save(models.NewDevis(storeBase("A1"))); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Save(models.NewFacture(storeBase("B2"))); err != nil {
		t.Fatal(err)
	}

	entries, err := s.List()
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2", len(entries))
	}
	if entries[0].Type != models.TypeDevis || entries[0].Numero != "A1" {
		t.Errorf("entries[0] = %+v", entries[0])
	}
	if entries[1].Type != models.TypeFacture || entries[1].Numero != "B2" {
		t.Errorf("entries[1] = %+v", entries[1])
	}
}
