package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/diewo77/myinvo/internal/models"
)

type entrepriseFile struct {
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

// DefaultEntreprise is the placeholder profile used until the user configures
// their own company.
func DefaultEntreprise() models.Entreprise {
	return models.Entreprise{
		Nom:        "Votre Entreprise",
		Adresse:    "123 Rue Example",
		CodePostal: "75000",
		Ville:      "Paris",
		SIRET:      "123 456 789 00010",
		TVAIntra:   "FR12345678901",
		Telephone:  "01 23 45 67 89",
		Email:      "contact@entreprise.fr",
	}
}

// LoadEntreprise reads the issuer profile, falling back to the default
// profile when the file does not exist or cannot be parsed.
func (c *Config) LoadEntreprise() models.Entreprise {
	data, err := os.ReadFile(c.CompanyFile())
	if err != nil {
		return DefaultEntreprise()
	}
	var f entrepriseFile
	if err := json.Unmarshal(data, &f); err != nil {
		return DefaultEntreprise()
	}
	return models.Entreprise{
		Nom:        f.Nom,
		Adresse:    f.Adresse,
		CodePostal: f.CodePostal,
		Ville:      f.Ville,
		SIRET:      f.SIRET,
		TVAIntra:   f.TVAIntra,
		Telephone:  f.Telephone,
		Email:      f.Email,
		Logo:       f.Logo,
	}
}

// SaveEntreprise writes the issuer profile to the configuration file.
func (c *Config) SaveEntreprise(e models.Entreprise) error {
	f := entrepriseFile{
		Nom:        e.Nom,
		Adresse:    e.Adresse,
		CodePostal: e.CodePostal,
		Ville:      e.Ville,
		SIRET:      e.SIRET,
		TVAIntra:   e.TVAIntra,
		Telephone:  e.Telephone,
		Email:      e.Email,
		Logo:       e.Logo,
	}
	data, err := json.MarshalIndent(f, "", "    ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(c.ConfigDir(), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(c.CompanyFile(), data, 0o644); err != nil {
		return fmt.Errorf("config: sauvegarde entreprise: %w", err)
	}
	return nil
}
