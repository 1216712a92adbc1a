package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/diewo77/myinvo/internal/license"
	"github.com/diewo77/myinvo/internal/services"
	"github.com/diewo77/myinvo/internal/validation"
)

func (a *app) exportCommand() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Exporter le brouillon en PDF (et l'archiver)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.loadDraft()
			if err != nil {
				return err
			}
			svc := a.service()
			doc, err := svc.Build(d, a.cfg.LoadEntreprise())
			if err != nil {
				var ve *validation.Error
				if errors.As(err, &ve) {
					for field, code := range ve.Violations {
						a.logger.Error("brouillon incomplet", "champ", field, "probleme", code)
					}
				}
				return err
			}
			res, err := svc.Export(doc, output)
			if err != nil {
				var le *license.Error
				if errors.As(err, &le) {
					a.logger.Error("export refusé", "raison", le.Reason)
				}
				return err
			}
			if res.Decision.Mode == license.ExportWatermark {
				a.logger.Warn("version d'essai: le PDF porte un filigrane")
			}
			if res.Decision.Reason != "" && res.Decision.Mode == license.ExportAllow {
				a.logger.Warn(res.Decision.Reason)
			}
			a.logger.Info("PDF exporté", "fichier", res.PDFPath)
			if res.ArchivePath != "" {
				a.logger.Info("document archivé", "fichier", res.ArchivePath)
			}
			fmt.Fprintln(a.out, res.PDFPath)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "chemin du PDF (défaut: devis/ ou factures/)")
	return cmd
}

func (a *app) openCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "open <numero|fichier>",
		Short: "Recharger un document archivé comme brouillon",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store := a.service().Store()

			path := args[0]
			if _, err := os.Stat(path); err != nil {
				// Not a file: look the number up in the archives.
				entries, err := store.List()
				if err != nil {
					return err
				}
				path = ""
				for _, e := range entries {
					if e.Numero == args[0] {
						path = e.Path
						break
					}
				}
				if path == "" {
					return fmt.Errorf("aucune archive pour %q", args[0])
				}
			}

			doc, err := store.Load(path)
			if err != nil {
				return err
			}
			d := services.FromDocument(doc)
			if err := a.saveDraft(d); err != nil {
				return err
			}
			a.logger.Info("archive rechargée", "type", d.Type.Label(), "numero", d.Numero)
			a.printDraft(d)
			return nil
		},
	}
}

func (a *app) listCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Lister les documents archivés",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store := a.service().Store()
			entries, err := store.List()
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(a.out, "Aucune archive")
				return nil
			}
			for _, e := range entries {
				doc, err := store.Load(e.Path)
				if err != nil {
					a.logger.Warn("archive illisible", "fichier", e.Path, "err", err)
					continue
				}
				base := doc.Base()
				fmt.Fprintf(a.out, "%-7s  %s  %s  %10s €  %s\n",
					e.Type.Label(), e.Numero, base.Date.Format("02/01/2006"),
					base.TotalTTC().StringFixed(2), base.Client.NomComplet())
			}
			return nil
		},
	}
}
