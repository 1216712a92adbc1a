package services

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/diewo77/myinvo/internal/models"
)

// Draft is the in-progress document the user assembles action by action. It
// is the working set the orchestrator owns: persisted between invocations,
// exclusively mutated here, and handed to codec and renderer only as a built
// read-only document.
type Draft struct {
	Type           models.DocType   `json:"type"`
	Numero         string           `json:"numero"`
	Date           time.Time        `json:"date"`
	Client         models.Client    `json:"client"`
	Articles       []models.Article `json:"articles"`
	Conditions     string           `json:"conditions"`
	Notes          string           `json:"notes"`
	ValiditeJours  int              `json:"validite_jours"`
	ReferenceDevis string           `json:"reference_devis"`
}

// NewDraft starts a fresh draft of the given type, numbered from the clock
// like the original form did.
func NewDraft(t models.DocType, now time.Time) *Draft {
	return &Draft{
		Type:          t,
		Numero:        GenererNumero(now),
		Date:          now.Truncate(time.Second),
		ValiditeJours: 30,
	}
}

// GenererNumero builds the default document number: YYYYMMDD-HHMMSS.
func GenererNumero(now time.Time) string {
	return now.Format("20060102-150405")
}

// LoadDraft reads the persisted draft. A missing file returns (nil, nil):
// there is simply no draft in progress.
func LoadDraft(path string) (*Draft, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("brouillon: lecture: %w", err)
	}
	var d Draft
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("brouillon: fichier illisible: %w", err)
	}
	return &d, nil
}

// Save persists the draft.
func (d *Draft) Save(path string) error {
	data, err := json.MarshalIndent(d, "", "    ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("brouillon: écriture: %w", err)
	}
	return nil
}

// AddArticle appends a line item. Order is preserved: it is
// display-significant.
func (d *Draft) AddArticle(a models.Article) {
	d.Articles = append(d.Articles, a)
}

// RemoveArticle deletes the line item at index (0-based).
func (d *Draft) RemoveArticle(index int) error {
	if index < 0 || index >= len(d.Articles) {
		return fmt.Errorf("brouillon: pas d'article n°%d", index+1)
	}
	d.Articles = append(d.Articles[:index], d.Articles[index+1:]...)
	return nil
}

// FromDocument replaces the draft content with an archived document, the way
// the original loaded an archive back into the form.
func FromDocument(doc models.Doc) *Draft {
	base := doc.Base()
	d := &Draft{
		Type:          doc.Type(),
		Numero:        base.Numero,
		Date:          base.Date,
		Client:        base.Client,
		Articles:      append([]models.Article(nil), base.Articles...),
		Conditions:    base.Conditions,
		Notes:         base.Notes,
		ValiditeJours: 30,
	}
	switch v := doc.(type) {
	case *models.Devis:
		d.ValiditeJours = v.ValiditeJours
	case *models.Facture:
		d.ReferenceDevis = v.ReferenceDevis
	}
	return d
}
