// Package archive round-trips documents to the JSON archive format and
// manages the per-document files under the archive directory.
//
// A record is self-describing: the `type` field carries the variant tag
// ("devis" or "facture") and the variant-specific fields sit next to the
// shared ones. Monetary values are serialized as decimal strings so that
// cent-level amounts survive the round trip exactly; legacy archives that
// stored bare JSON numbers still decode.
package archive

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/diewo77/myinvo/internal/models"
)

// DateLayout is the timezone-naive ISO-8601 form used for all dates in
// archive records. It sorts lexicographically.
const DateLayout = "2006-01-02T15:04:05"

// DecodeError reports a malformed or incomplete archive record. Field names
// the offending JSON field using dotted paths ("client.nom",
// "articles[2].tva").
type DecodeError struct {
	Field  string
	Reason string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("archive: champ %s: %s", e.Field, e.Reason)
}

func missing(field string) error {
	return &DecodeError{Field: field, Reason: "champ requis manquant"}
}

func invalid(field, reason string) error {
	return &DecodeError{Field: field, Reason: reason}
}

type entrepriseRecord struct {
	Nom        string `json:"nom"`
	Adresse    string `json:"adresse"`
	CodePostal string `json:"code_postal"`
	Ville      string `json:"ville"`
	SIRET      string `json:"siret"`
	TVAIntra   string `json:"tva_intracommunautaire"`
	Telephone  string `json:"telephone"`
	Email      string `json:"email"`
	Logo       string `json:"logo"`
}

type clientRecord struct {
	Nom        string `json:"nom"`
	Prenom     string `json:"prenom"`
	Entreprise string `json:"entreprise"`
	Adresse    string `json:"adresse"`
	CodePostal string `json:"code_postal"`
	Ville      string `json:"ville"`
	Email      string `json:"email"`
	Telephone  string `json:"telephone"`
}

// articleRecord keeps the numeric fields as raw JSON so a malformed value is
// reported against its own field instead of aborting the whole record.
type articleRecord struct {
	Designation  string          `json:"designation"`
	Quantite     json.RawMessage `json:"quantite"`
	PrixUnitaire json.RawMessage `json:"prix_unitaire"`
	TVA          json.RawMessage `json:"tva"`
}

type record struct {
	Numero     string           `json:"numero"`
	Date       string           `json:"date"`
	Entreprise entrepriseRecord `json:"entreprise"`
	Client     clientRecord     `json:"client"`
	Articles   []articleRecord  `json:"articles"`
	Conditions string           `json:"conditions"`
	Notes      string           `json:"notes"`
	Type       string           `json:"type"`

	// Devis only.
	ValiditeJours *int `json:"validite_jours,omitempty"`

	// Facture only.
	DateEcheance   string `json:"date_echeance,omitempty"`
	ReferenceDevis string `json:"reference_devis,omitempty"`
	Payee          *bool  `json:"payee,omitempty"`
}

// Encode serializes a document to its archive record. The output is indented
// the way the original archives were written.
func Encode(doc models.Doc) ([]byte, error) {
	base := doc.Base()
	rec := record{
		Numero: base.Numero,
		Date:   base.Date.Format(DateLayout),
		Entreprise: entrepriseRecord{
			Nom:        base.Entreprise.Nom,
			Adresse:    base.Entreprise.Adresse,
			CodePostal: base.Entreprise.CodePostal,
			Ville:      base.Entreprise.Ville,
			SIRET:      base.Entreprise.SIRET,
			TVAIntra:   base.Entreprise.TVAIntra,
			Telephone:  base.Entreprise.Telephone,
			Email:      base.Entreprise.Email,
			Logo:       base.Entreprise.Logo,
		},
		Client: clientRecord{
			Nom:        base.Client.Nom,
			Prenom:     base.Client.Prenom,
			Entreprise: base.Client.Entreprise,
			Adresse:    base.Client.Adresse,
			CodePostal: base.Client.CodePostal,
			Ville:      base.Client.Ville,
			Email:      base.Client.Email,
			Telephone:  base.Client.Telephone,
		},
		Conditions: base.Conditions,
		Notes:      base.Notes,
		Type:       string(doc.Type()),
	}
	for _, a := range base.Articles {
		rec.Articles = append(rec.Articles, articleRecord{
			Designation:  a.Designation,
			Quantite:     rawDecimal(a.Quantite),
			PrixUnitaire: rawDecimal(a.PrixUnitaire),
			TVA:          rawDecimal(a.TVA),
		})
	}

	switch d := doc.(type) {
	case *models.Devis:
		v := d.ValiditeJours
		rec.ValiditeJours = &v
	case *models.Facture:
		rec.DateEcheance = d.DateEcheance.Format(DateLayout)
		rec.ReferenceDevis = d.ReferenceDevis
		p := d.Payee
		rec.Payee = &p
	default:
		return nil, fmt.Errorf("archive: type de document inconnu %q", doc.Type())
	}

	return json.MarshalIndent(rec, "", "    ")
}

// Decode parses an archive record back into the exact variant it was encoded
// from. Required fields are never defaulted; optional variant fields
// (reference_devis, payee, validite_jours) take their construction defaults
// when absent.
func Decode(data []byte) (models.Doc, error) {
	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, &DecodeError{Field: "(record)", Reason: err.Error()}
	}

	if rec.Numero == "" {
		return nil, missing("numero")
	}
	if rec.Date == "" {
		return nil, missing("date")
	}
	date, err := parseDate(rec.Date)
	if err != nil {
		return nil, invalid("date", "date illisible: "+rec.Date)
	}
	if rec.Entreprise.Nom == "" {
		return nil, missing("entreprise.nom")
	}
	if rec.Entreprise.Adresse == "" {
		return nil, missing("entreprise.adresse")
	}
	if rec.Entreprise.CodePostal == "" {
		return nil, missing("entreprise.code_postal")
	}
	if rec.Entreprise.Ville == "" {
		return nil, missing("entreprise.ville")
	}
	// The client display name must be derivable: either a person name or a
	// company name has to be present.
	if rec.Client.Nom == "" && rec.Client.Entreprise == "" {
		return nil, missing("client.nom")
	}

	base := models.Document{
		Numero: rec.Numero,
		Date:   date,
		Entreprise: models.Entreprise{
			Nom:        rec.Entreprise.Nom,
			Adresse:    rec.Entreprise.Adresse,
			CodePostal: rec.Entreprise.CodePostal,
			Ville:      rec.Entreprise.Ville,
			SIRET:      rec.Entreprise.SIRET,
			TVAIntra:   rec.Entreprise.TVAIntra,
			Telephone:  rec.Entreprise.Telephone,
			Email:      rec.Entreprise.Email,
			Logo:       rec.Entreprise.Logo,
		},
		Client: models.Client{
			Nom:        rec.Client.Nom,
			Prenom:     rec.Client.Prenom,
			Entreprise: rec.Client.Entreprise,
			Adresse:    rec.Client.Adresse,
			CodePostal: rec.Client.CodePostal,
			Ville:      rec.Client.Ville,
			Email:      rec.Client.Email,
			Telephone:  rec.Client.Telephone,
		},
		Conditions: rec.Conditions,
		Notes:      rec.Notes,
	}

	for i, ar := range rec.Articles {
		field := func(name string) string { return fmt.Sprintf("articles[%d].%s", i, name) }
		if ar.Designation == "" {
			return nil, missing(field("designation"))
		}
		qte, err := decodeDecimal(field("quantite"), ar.Quantite)
		if err != nil {
			return nil, err
		}
		prix, err := decodeDecimal(field("prix_unitaire"), ar.PrixUnitaire)
		if err != nil {
			return nil, err
		}
		tva, err := decodeDecimal(field("tva"), ar.TVA)
		if err != nil {
			return nil, err
		}
		base.Articles = append(base.Articles, models.Article{
			Designation:  ar.Designation,
			Quantite:     qte,
			PrixUnitaire: prix,
			TVA:          tva,
		})
	}

	switch models.DocType(rec.Type) {
	case models.TypeDevis:
		devis := models.NewDevis(base)
		if rec.ValiditeJours != nil {
			devis.ValiditeJours = *rec.ValiditeJours
		}
		return devis, nil
	case models.TypeFacture:
		if rec.DateEcheance == "" {
			return nil, missing("date_echeance")
		}
		echeance, err := parseDate(rec.DateEcheance)
		if err != nil {
			return nil, invalid("date_echeance", "date illisible: "+rec.DateEcheance)
		}
		facture := models.NewFacture(base)
		facture.DateEcheance = echeance
		facture.ReferenceDevis = rec.ReferenceDevis
		if rec.Payee != nil {
			facture.Payee = *rec.Payee
		}
		return facture, nil
	case "":
		return nil, missing("type")
	default:
		return nil, invalid("type", "type de document inconnu: "+rec.Type)
	}
}

// rawDecimal serializes a decimal for an article record (quoted string, the
// shopspring default).
func rawDecimal(d decimal.Decimal) json.RawMessage {
	b, _ := d.MarshalJSON()
	return b
}

// decodeDecimal parses an article numeric, accepting both the quoted-string
// form and the bare numbers of legacy records.
func decodeDecimal(field string, raw json.RawMessage) (decimal.Decimal, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return decimal.Decimal{}, missing(field)
	}
	var d decimal.Decimal
	if err := json.Unmarshal(raw, &d); err != nil {
		return decimal.Decimal{}, invalid(field, "nombre illisible: "+string(raw))
	}
	return d, nil
}

// parseDate accepts the archive layout plus the plain-date form found in
// hand-edited records.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
