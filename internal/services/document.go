// Package services orchestrates the export pipeline: validate the draft,
// consult the license gate, archive the record and write the PDF. All
// failures propagate synchronously and leave the draft untouched.
package services

import (
	"fmt"
	"time"

	"github.com/diewo77/myinvo/internal/archive"
	"github.com/diewo77/myinvo/internal/config"
	"github.com/diewo77/myinvo/internal/license"
	"github.com/diewo77/myinvo/internal/models"
	"github.com/diewo77/myinvo/internal/pdf"
	"github.com/diewo77/myinvo/internal/validation"
)

// DocumentService builds documents from drafts and runs exports.
type DocumentService struct {
	cfg      *config.Config
	prefs    config.Preferences
	gate     license.Gate
	store    *archive.Store
	renderer *pdf.Renderer
}

// NewDocumentService wires the service onto the working directory.
func NewDocumentService(cfg *config.Config, prefs config.Preferences, gate license.Gate) *DocumentService {
	return &DocumentService{
		cfg:      cfg,
		prefs:    prefs,
		gate:     gate,
		store:    archive.NewStore(cfg.WorkingDir),
		renderer: pdf.NewRenderer(),
	}
}

// Store exposes the archive store for listing and loading.
func (s *DocumentService) Store() *archive.Store {
	return s.store
}

// Build turns the draft into the document variant it describes, stamping the
// issuer profile. It fails with a validation error when the draft has no
// line items or no derivable client name.
func (s *DocumentService) Build(d *Draft, entreprise models.Entreprise) (models.Doc, error) {
	v := make(validation.Violations)
	validation.NonEmptyList("articles", len(d.Articles), v)
	validation.Required("client", d.Client.NomComplet(), v)
	for i, a := range d.Articles {
		if a.Designation == "" {
			v[fmt.Sprintf("articles[%d].designation", i)] = "required"
		}
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	numero := d.Numero
	if numero == "" {
		numero = GenererNumero(time.Now())
	}
	date := d.Date
	if date.IsZero() {
		date = time.Now().Truncate(time.Second)
	}

	base := models.Document{
		Numero:     numero,
		Date:       date,
		Client:     d.Client,
		Entreprise: entreprise,
		Articles:   append([]models.Article(nil), d.Articles...),
		Conditions: d.Conditions,
		Notes:      d.Notes,
	}

	switch d.Type {
	case models.TypeFacture:
		facture := models.NewFacture(base)
		facture.ReferenceDevis = d.ReferenceDevis
		return facture, nil
	default:
		devis := models.NewDevis(base)
		if d.ValiditeJours > 0 {
			devis.ValiditeJours = d.ValiditeJours
		}
		return devis, nil
	}
}

// ExportResult reports what an export produced.
type ExportResult struct {
	PDFPath     string
	ArchivePath string // empty when auto-save is disabled
	Decision    license.Decision
}

// Export runs the full pipeline for an already-built document. A blocked
// license yields a *license.Error and nothing is written.
func (s *DocumentService) Export(doc models.Doc, pdfPath string) (*ExportResult, error) {
	decision := license.Decide(s.gate)
	if decision.Mode == license.ExportBlock {
		return nil, &license.Error{Reason: decision.Reason}
	}

	if pdfPath == "" {
		pdfPath = s.cfg.DefaultPDFPath(doc.Type().Label(), doc.Base().Numero)
	}

	res := &ExportResult{PDFPath: pdfPath, Decision: decision}

	if s.prefs.AutoSauvegarde {
		archivePath, err := s.store.Save(doc)
		if err != nil {
			return nil, err
		}
		res.ArchivePath = archivePath
	}

	isTrial := decision.Mode == license.ExportWatermark
	if err := s.renderer.WriteFile(doc, pdfPath, isTrial); err != nil {
		return nil, err
	}
	return res, nil
}

// Archive saves the document record without rendering, for an explicit save
// when auto-save is off.
func (s *DocumentService) Archive(doc models.Doc) (string, error) {
	return s.store.Save(doc)
}
