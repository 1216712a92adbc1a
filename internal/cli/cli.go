// Package cli implémente l'interface en ligne de commande de myInvo.
//
// The command tree mirrors the workflow of the desktop tool: a persistent
// draft (brouillon) is assembled with the draft subcommands, then export runs
// the validate/license/archive/render pipeline. Company profile, preferences,
// catalog and license each get their own command group.
package cli

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/diewo77/myinvo/internal/config"
	"github.com/diewo77/myinvo/internal/license"
	"github.com/diewo77/myinvo/internal/services"
)

// app carries the state shared by all commands, loaded once at startup.
type app struct {
	cfg    *config.Config
	prefs  config.Preferences
	logger *log.Logger
	out    io.Writer
}

// Execute runs the myinvo CLI. It loads .env, prepares the working directory
// and dispatches to the command tree.
func Execute() error {
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.EnsureDirs(); err != nil {
		return err
	}

	a := &app{
		cfg:   cfg,
		prefs: cfg.LoadPreferences(),
		out:   os.Stdout,
	}

	var verbose bool
	root := &cobra.Command{
		Use:          "myinvo",
		Short:        "myInvo crée des devis et des factures en PDF",
		Long:         "myInvo gère un brouillon de devis ou de facture, l'archive en JSON et l'exporte en PDF, avec un catalogue local de clients et de produits.",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := log.InfoLevel
			if verbose {
				level = log.DebugLevel
			}
			a.logger = newLogger(cfg, level)
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "journalisation détaillée")

	root.AddCommand(
		a.draftCommand(),
		a.exportCommand(),
		a.openCommand(),
		a.listCommand(),
		a.companyCommand(),
		a.prefsCommand(),
		a.clientsCommand(),
		a.produitsCommand(),
		a.licenseCommand(),
	)

	return root.ExecuteContext(context.Background())
}

// newLogger writes to stderr and appends a copy to logs/myinvo.log when the
// file is writable.
func newLogger(cfg *config.Config, level log.Level) *log.Logger {
	w := io.Writer(os.Stderr)
	if f, err := os.OpenFile(cfg.LogFile(), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644); err == nil {
		w = io.MultiWriter(os.Stderr, f)
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Level:           level,
	})
}

// service wires the export pipeline onto the current configuration.
func (a *app) service() *services.DocumentService {
	gate := license.NewFileGate(a.cfg.LicenseFile())
	return services.NewDocumentService(a.cfg, a.prefs, gate)
}

// loadDraft returns the draft in progress or a user-facing error when there
// is none.
func (a *app) loadDraft() (*services.Draft, error) {
	d, err := services.LoadDraft(a.cfg.DraftFile())
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, errors.New("aucun brouillon en cours (lancez: myinvo draft new)")
	}
	return d, nil
}

func (a *app) saveDraft(d *services.Draft) error {
	return d.Save(a.cfg.DraftFile())
}
