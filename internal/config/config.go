// Package config provides the working-directory layout, the issuer company
// profile and the user preferences, all loaded once at startup and passed
// explicitly to the components that need them.
package config

import (
	"os"
	"path/filepath"
)

// Config holds the process-wide settings.
type Config struct {
	// WorkingDir is the root under which config/, archives/, devis/,
	// factures/ and logs/ live.
	WorkingDir string
}

// Load reads configuration from environment variables, with sensible
// defaults for running from the current directory.
func Load() *Config {
	return &Config{
		WorkingDir: getEnv("MYINVO_DIR", "."),
	}
}

// EnsureDirs creates the working-directory layout. It is idempotent.
func (c *Config) EnsureDirs() error {
	for _, d := range []string{"config", "archives", "devis", "factures", "logs"} {
		if err := os.MkdirAll(filepath.Join(c.WorkingDir, d), 0o755); err != nil {
			return err
		}
	}
	return nil
}

// ConfigDir returns the config/ directory.
func (c *Config) ConfigDir() string {
	return filepath.Join(c.WorkingDir, "config")
}

// CompanyFile is the issuer profile JSON file.
func (c *Config) CompanyFile() string {
	return filepath.Join(c.ConfigDir(), "config_entreprise.json")
}

// PreferencesFile is the user preferences JSON file.
func (c *Config) PreferencesFile() string {
	return filepath.Join(c.ConfigDir(), "preferences_utilisateur.json")
}

// LicenseFile is the install-key record consulted by the license gate.
func (c *Config) LicenseFile() string {
	return filepath.Join(c.ConfigDir(), "license.json")
}

// DraftFile is the in-progress document persisted between invocations.
func (c *Config) DraftFile() string {
	return filepath.Join(c.ConfigDir(), "draft.json")
}

// CatalogFile is the SQLite database holding reusable clients and products.
func (c *Config) CatalogFile() string {
	return filepath.Join(c.ConfigDir(), "catalogue.db")
}

// LogFile is the session log destination.
func (c *Config) LogFile() string {
	return filepath.Join(c.WorkingDir, "logs", "myinvo.log")
}

// DefaultPDFPath suggests where an export lands when the caller gives no
// target: devis/ or factures/ depending on the variant.
func (c *Config) DefaultPDFPath(typeLabel, numero string) string {
	dir := "devis"
	if typeLabel == "Facture" {
		dir = "factures"
	}
	return filepath.Join(c.WorkingDir, dir, typeLabel+"_"+numero+".pdf")
}

// getEnv returns the value of an environment variable or a default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
