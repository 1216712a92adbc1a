// Package pdf projects documents into the printable A4 layout. The section
// order is fixed: trial banner, header (logo + title, numero/date band),
// parties block, article table, totals with the per-rate VAT detail, the
// variant block, then conditions and notes.
package pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/border"
	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/diewo77/myinvo/internal/models"
)

// Palette reprise de la charte du générateur d'origine.
var (
	bleuFonce  = props.Color{Red: 26, Green: 84, Blue: 144}   // #1a5490
	bleuClair  = props.Color{Red: 232, Green: 244, Blue: 248} // #e8f4f8
	bleuPale   = props.Color{Red: 240, Green: 247, Blue: 251} // #f0f7fb
	grisClair  = props.Color{Red: 247, Green: 247, Blue: 247} // #f7f7f7
	grisBord   = props.Color{Red: 204, Green: 204, Blue: 204} // #cccccc
	grisTexte  = props.Color{Red: 150, Green: 150, Blue: 150}
	blanc      = props.Color{Red: 255, Green: 255, Blue: 255}
	dateFormat = "02/01/2006"
)

const trialBanner = "VERSION D'ESSAI - myInvo - Achetez une licence pour supprimer ce filigrane"

// Renderer generates the PDF byte stream for a document. It is stateless and
// treats the document as read-only.
type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render lays out the document and returns the PDF bytes. isTrial prepends
// the trial banner; it is a rendering flag only and never mutates the
// document. Layout failures for well-formed input are programming errors and
// are returned as-is, never swallowed.
func (r *Renderer) Render(doc models.Doc, isTrial bool) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(20).
		WithRightMargin(20).
		WithTopMargin(20).
		WithBottomMargin(20).
		Build()

	m := maroto.New(cfg)

	var rows []core.Row
	if isTrial {
		rows = append(rows, trialRow())
	}
	rows = append(rows, headerRows(doc)...)
	rows = append(rows, partiesRows(doc.Base())...)
	rows = append(rows, articleRows(doc.Base())...)
	rows = append(rows, totauxRows(doc.Base())...)
	rows = append(rows, variantRows(doc)...)
	rows = append(rows, notesRows(doc.Base())...)
	m.AddRows(rows...)

	generated, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: génération: %w", err)
	}
	return generated.GetBytes(), nil
}

// WriteFile renders the document and writes the PDF to path. A write failure
// is an I/O error for the caller; the in-memory document is left intact.
func (r *Renderer) WriteFile(doc models.Doc, path string, isTrial bool) error {
	data, err := r.Render(doc, isTrial)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("pdf: écriture de %s: %w", path, err)
	}
	return nil
}

func trialRow() core.Row {
	return row.New(8).Add(
		col.New(12).Add(
			text.New(trialBanner, props.Text{Size: 9, Color: &grisTexte}),
		),
	)
}

func headerRows(doc models.Doc) []core.Row {
	base := doc.Base()
	title := text.New(strings.ToUpper(doc.Type().Label()), props.Text{
		Size:  24,
		Style: fontstyle.Bold,
		Align: align.Center,
		Color: &bleuFonce,
	})

	var rows []core.Row
	if logo, ok := logoComponent(base.Entreprise.Logo); ok {
		rows = append(rows, row.New(25).Add(
			col.New(3).Add(logo),
			col.New(9).Add(title),
		))
	} else {
		// Pas de logo exploitable : titre seul, jamais une erreur.
		rows = append(rows, row.New(16).Add(col.New(12).Add(title)))
	}

	rows = append(rows, row.New(4))
	rows = append(rows, row.New(10).WithStyle(&props.Cell{BackgroundColor: &bleuClair}).Add(
		col.New(6).Add(
			text.New("Numéro: "+base.Numero, props.Text{Size: 11, Style: fontstyle.Bold, Left: 2, Top: 2}),
		),
		col.New(6).Add(
			text.New("Date: "+base.Date.Format(dateFormat), props.Text{Size: 11, Align: align.Right, Right: 2, Top: 2}),
		),
	))
	rows = append(rows, row.New(6))
	return rows
}

// logoComponent loads the issuer logo scaled into the header box, preserving
// the aspect ratio (maroto fits bytes images proportionally). An unset path,
// a missing file or an unsupported format silently degrades to no logo.
func logoComponent(path string) (core.Component, bool) {
	if path == "" {
		return nil, false
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	var ext extension.Type
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		ext = extension.Png
	case ".jpg", ".jpeg":
		ext = extension.Jpg
	default:
		// SVG et autres formats vectoriels non rasterisables ici.
		return nil, false
	}
	return image.NewFromBytes(data, ext, props.Rect{Center: true, Percent: 100}), true
}

func partiesRows(base *models.Document) []core.Row {
	e := base.Entreprise
	issuer := []string{
		e.Nom,
		e.Adresse,
		strings.TrimSpace(e.CodePostal + " " + e.Ville),
	}
	if e.SIRET != "" {
		issuer = append(issuer, "SIRET: "+e.SIRET)
	}
	if e.TVAIntra != "" {
		issuer = append(issuer, "TVA: "+e.TVAIntra)
	}
	if e.Telephone != "" {
		issuer = append(issuer, "Tél: "+e.Telephone)
	}
	if e.Email != "" {
		issuer = append(issuer, "Email: "+e.Email)
	}

	c := base.Client
	client := []string{c.NomComplet()}
	if c.Entreprise != "" && c.NomComplet() != c.Entreprise {
		client = append(client, c.Entreprise)
	}
	if c.Adresse != "" {
		client = append(client, c.Adresse)
	}
	if cp := strings.TrimSpace(c.CodePostal + " " + c.Ville); cp != "" {
		client = append(client, cp)
	}
	if c.Email != "" {
		client = append(client, "Email: "+c.Email)
	}
	if c.Telephone != "" {
		client = append(client, "Tél: "+c.Telephone)
	}

	lines := len(issuer)
	if len(client) > lines {
		lines = len(client)
	}
	height := float64(lines)*5 + 4

	boxed := func(bg *props.Color, texts []string) core.Col {
		cell := &props.Cell{
			BackgroundColor: bg,
			BorderColor:     &grisBord,
			BorderType:      border.Full,
			BorderThickness: 0.4,
		}
		column := col.New(6).WithStyle(cell)
		for i, line := range texts {
			style := props.Text{Size: 10, Top: float64(i)*5 + 2, Left: 2}
			if i == 0 {
				style.Style = fontstyle.Bold
			}
			column.Add(text.New(line, style))
		}
		return column
	}

	return []core.Row{
		row.New(height).Add(
			boxed(&bleuPale, issuer),
			boxed(&blanc, client),
		),
		row.New(6),
	}
}

func articleRows(base *models.Document) []core.Row {
	header := row.New(9).WithStyle(&props.Cell{BackgroundColor: &bleuFonce}).Add(
		tableCell(6, "Désignation", align.Left, fontstyle.Bold, &blanc),
		tableCell(1, "Qté", align.Center, fontstyle.Bold, &blanc),
		tableCell(2, "Prix U. HT", align.Center, fontstyle.Bold, &blanc),
		tableCell(1, "TVA", align.Center, fontstyle.Bold, &blanc),
		tableCell(2, "Total HT", align.Center, fontstyle.Bold, &blanc),
	)

	rows := []core.Row{header}
	for i, a := range base.Articles {
		line := row.New(8)
		if i%2 == 1 {
			line.WithStyle(&props.Cell{BackgroundColor: &grisClair})
		}
		line.Add(
			tableCell(6, a.Designation, align.Left, fontstyle.Normal, nil),
			// Quantities print as stored, never reformatted.
			tableCell(1, a.Quantite.String(), align.Center, fontstyle.Normal, nil),
			tableCell(2, money(a.PrixUnitaire), align.Center, fontstyle.Normal, nil),
			tableCell(1, taux(a.TVA), align.Center, fontstyle.Normal, nil),
			tableCell(2, money(a.MontantHT()), align.Center, fontstyle.Normal, nil),
		)
		rows = append(rows, line)
	}
	rows = append(rows, row.New(4))
	return rows
}

func tableCell(size int, content string, a align.Type, style fontstyle.Type, color *props.Color) core.Col {
	return col.New(size).Add(text.New(content, props.Text{
		Size:  10,
		Align: a,
		Style: style,
		Color: color,
		Top:   1.5,
		Left:  1,
		Right: 1,
	}))
}

func totauxRows(base *models.Document) []core.Row {
	totalLine := func(label, value string) core.Row {
		return row.New(6).Add(
			col.New(8).Add(text.New(label, props.Text{Size: 10, Align: align.Right})),
			col.New(4).Add(text.New(value, props.Text{Size: 10, Align: align.Right})),
		)
	}

	rows := []core.Row{totalLine("Total HT:", money(base.TotalHT()))}
	for _, l := range base.TVAParTaux() {
		label := fmt.Sprintf("TVA %s sur %s:", taux(l.Taux), money(l.Base))
		rows = append(rows, totalLine(label, money(l.Montant)))
	}
	rows = append(rows, row.New(10).WithStyle(&props.Cell{BackgroundColor: &bleuClair}).Add(
		col.New(8).Add(text.New("Total TTC:", props.Text{Size: 13, Style: fontstyle.Bold, Align: align.Right, Top: 2})),
		col.New(4).Add(text.New(money(base.TotalTTC()), props.Text{Size: 13, Style: fontstyle.Bold, Align: align.Right, Top: 2, Right: 2})),
	))
	return rows
}

func variantRows(doc models.Doc) []core.Row {
	switch d := doc.(type) {
	case *models.Devis:
		label := fmt.Sprintf("Validité du devis: %d jours (jusqu'au %s)",
			d.ValiditeJours, d.DateValidite().Format(dateFormat))
		return []core.Row{
			row.New(8),
			row.New(6).Add(col.New(12).Add(text.New(label, props.Text{Size: 10, Style: fontstyle.Bold}))),
		}
	case *models.Facture:
		rows := []core.Row{
			row.New(8),
			row.New(6).Add(col.New(12).Add(
				text.New("Date d'échéance: "+d.DateEcheance.Format(dateFormat), props.Text{Size: 10, Style: fontstyle.Bold}),
			)),
		}
		if d.ReferenceDevis != "" {
			rows = append(rows, row.New(6).Add(col.New(12).Add(
				text.New("Référence devis: "+d.ReferenceDevis, props.Text{Size: 10}),
			)))
		}
		return rows
	}
	return nil
}

func notesRows(base *models.Document) []core.Row {
	var rows []core.Row
	section := func(title, body string) {
		rows = append(rows,
			row.New(8).Add(col.New(12).Add(
				text.New(title, props.Text{Size: 12, Style: fontstyle.Bold, Color: &bleuFonce, Top: 3}),
			)),
			row.New(textHeight(body)).Add(col.New(12).Add(
				text.New(body, props.Text{Size: 10}),
			)),
		)
	}
	if base.Conditions != "" {
		section("Conditions:", base.Conditions)
	}
	if base.Notes != "" {
		section("Notes:", base.Notes)
	}
	return rows
}

// textHeight gives free text enough vertical room; ~90 chars per line at the
// body font size inside the printable width.
func textHeight(s string) float64 {
	lines := len(s)/90 + 1
	return float64(lines) * 5
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2) + " €"
}

func taux(d decimal.Decimal) string {
	return d.StringFixed(1) + "%"
}
