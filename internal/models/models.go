// Package models contient les objets métier des devis et factures.
// All values are transient value objects: they are built from form input or
// decoded from an archive record, and are treated as read-only by the codec
// and the PDF renderer.
package models

import "strings"

// Client represents the recipient of a document.
// Only Nom is required; Entreprise takes precedence in the display name.
type Client struct {
	Nom        string
	Prenom     string
	Entreprise string
	Adresse    string
	CodePostal string
	Ville      string
	Email      string
	Telephone  string
}

// NomComplet returns the display name of the client: the company name when
// set, otherwise "prenom nom" trimmed.
func (c Client) NomComplet() string {
	if c.Entreprise != "" {
		return c.Entreprise
	}
	return strings.TrimSpace(c.Prenom + " " + c.Nom)
}

// Entreprise holds the issuer's company information. It is loaded once from
// the configuration file and shared by every document of the session.
type Entreprise struct {
	Nom        string
	Adresse    string
	CodePostal string
	Ville      string
	SIRET      string
	TVAIntra   string // numéro TVA intracommunautaire
	Telephone  string
	Email      string
	Logo       string // chemin du logo, optionnel
}
