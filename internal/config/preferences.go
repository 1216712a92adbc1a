package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Preferences are the recognized user preference keys. Unknown keys in the
// file are ignored on load and dropped on save.
type Preferences struct {
	// AutoSauvegarde archives the JSON record automatically on export.
	AutoSauvegarde bool `json:"auto_sauvegarde"`
	// ConfirmerSuppression asks before removing a draft line item.
	ConfirmerSuppression bool `json:"confirmer_suppression"`
	// TVADefaut is the string-encoded rate pre-filled on new line items.
	TVADefaut string `json:"tva_defaut"`
}

// DefaultPreferences mirrors the defaults of the original application.
func DefaultPreferences() Preferences {
	return Preferences{
		AutoSauvegarde:       true,
		ConfirmerSuppression: true,
		TVADefaut:            "20.0",
	}
}

// LoadPreferences reads the preferences file, falling back to defaults when
// it is absent or unreadable.
func (c *Config) LoadPreferences() Preferences {
	data, err := os.ReadFile(c.PreferencesFile())
	if err != nil {
		return DefaultPreferences()
	}
	p := DefaultPreferences()
	if err := json.Unmarshal(data, &p); err != nil {
		return DefaultPreferences()
	}
	if p.TVADefaut == "" {
		p.TVADefaut = "20.0"
	}
	return p
}

// SavePreferences writes the preferences file.
func (c *Config) SavePreferences(p Preferences) error {
	data, err := json.MarshalIndent(p, "", "    ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(c.ConfigDir(), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(c.PreferencesFile(), data, 0o644); err != nil {
		return fmt.Errorf("config: sauvegarde préférences: %w", err)
	}
	return nil
}
