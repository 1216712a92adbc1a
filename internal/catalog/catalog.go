// Package catalog persists reusable clients and products in a local SQLite
// database so documents can be pre-filled instead of retyped. Prices and
// rates are stored as decimal strings to keep monetary exactness across the
// database round trip.
package catalog

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/diewo77/myinvo/internal/models"
)

// ErrNotFound is returned when a lookup matches nothing.
var ErrNotFound = errors.New("catalogue: introuvable")

// Client is a stored client record.
type Client struct {
	ID         uint   `gorm:"primaryKey"`
	Nom        string `gorm:"not null;index"`
	Prenom     string
	Entreprise string `gorm:"index"`
	Adresse    string
	CodePostal string
	Ville      string
	Email      string
	Telephone  string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Value converts the record to the document value object.
func (c Client) Value() models.Client {
	return models.Client{
		Nom:        c.Nom,
		Prenom:     c.Prenom,
		Entreprise: c.Entreprise,
		Adresse:    c.Adresse,
		CodePostal: c.CodePostal,
		Ville:      c.Ville,
		Email:      c.Email,
		Telephone:  c.Telephone,
	}
}

// Produit is a stored product or service.
type Produit struct {
	ID           uint   `gorm:"primaryKey"`
	Designation  string `gorm:"not null;index"`
	PrixUnitaire string `gorm:"not null"` // decimal string
	TVA          string `gorm:"not null"` // decimal string, pourcentage
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Article builds a line item for the given quantity from the stored product.
func (p Produit) Article(quantite decimal.Decimal) (models.Article, error) {
	prix, err := decimal.NewFromString(p.PrixUnitaire)
	if err != nil {
		return models.Article{}, fmt.Errorf("catalogue: prix du produit %d illisible: %w", p.ID, err)
	}
	tva, err := decimal.NewFromString(p.TVA)
	if err != nil {
		return models.Article{}, fmt.Errorf("catalogue: TVA du produit %d illisible: %w", p.ID, err)
	}
	return models.Article{
		Designation:  p.Designation,
		Quantite:     quantite,
		PrixUnitaire: prix,
		TVA:          tva,
	}, nil
}

// Catalog wraps the SQLite database.
type Catalog struct {
	db *gorm.DB
}

// Open connects to the database at path and applies the GORM migrations.
func Open(path string) (*Catalog, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("catalogue: connexion BDD échouée: %w", err)
	}
	if err := db.AutoMigrate(&Client{}, &Produit{}); err != nil {
		return nil, fmt.Errorf("catalogue: migrations échouées: %w", err)
	}
	return &Catalog{db: db}, nil
}

// SaveClient inserts or updates a client record.
func (c *Catalog) SaveClient(client *Client) error {
	return c.db.Save(client).Error
}

// Clients lists all clients ordered by name.
func (c *Catalog) Clients() ([]Client, error) {
	var clients []Client
	err := c.db.Order("nom").Find(&clients).Error
	return clients, err
}

// FindClient looks a client up by id.
func (c *Catalog) FindClient(id uint) (*Client, error) {
	var client Client
	err := c.db.First(&client, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &client, nil
}

// DeleteClient removes a client record.
func (c *Catalog) DeleteClient(id uint) error {
	res := c.db.Delete(&Client{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// SaveProduit inserts or updates a product.
func (c *Catalog) SaveProduit(p *Produit) error {
	if _, err := decimal.NewFromString(p.PrixUnitaire); err != nil {
		return fmt.Errorf("catalogue: prix unitaire invalide %q", p.PrixUnitaire)
	}
	if _, err := decimal.NewFromString(p.TVA); err != nil {
		return fmt.Errorf("catalogue: taux de TVA invalide %q", p.TVA)
	}
	return c.db.Save(p).Error
}

// Produits lists all products ordered by designation.
func (c *Catalog) Produits() ([]Produit, error) {
	var produits []Produit
	err := c.db.Order("designation").Find(&produits).Error
	return produits, err
}

// FindProduit looks a product up by id.
func (c *Catalog) FindProduit(id uint) (*Produit, error) {
	var p Produit
	err := c.db.First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// DeleteProduit removes a product.
func (c *Catalog) DeleteProduit(id uint) error {
	res := c.db.Delete(&Produit{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
