package cli

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func (a *app) prefsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Gérer les préférences utilisateur",
	}
	cmd.AddCommand(a.prefsShowCommand(), a.prefsSetCommand())
	return cmd
}

func (a *app) prefsShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Afficher les préférences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := a.prefs
			fmt.Fprintf(a.out, "auto_sauvegarde:       %t\n", p.AutoSauvegarde)
			fmt.Fprintf(a.out, "confirmer_suppression: %t\n", p.ConfirmerSuppression)
			fmt.Fprintf(a.out, "tva_defaut:            %s\n", p.TVADefaut)
			return nil
		},
	}
}

func (a *app) prefsSetCommand() *cobra.Command {
	var (
		autoSave  bool
		confirmRm bool
		tva       string
	)
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Modifier les préférences",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := a.cfg.LoadPreferences()
			if cmd.Flags().Changed("auto-sauvegarde") {
				p.AutoSauvegarde = autoSave
			}
			if cmd.Flags().Changed("confirmer-suppression") {
				p.ConfirmerSuppression = confirmRm
			}
			if cmd.Flags().Changed("tva-defaut") {
				tva = strings.ReplaceAll(strings.TrimSpace(tva), ",", ".")
				if _, err := decimal.NewFromString(tva); err != nil {
					return fmt.Errorf("taux de TVA invalide: %q", tva)
				}
				p.TVADefaut = tva
			}
			if err := a.cfg.SavePreferences(p); err != nil {
				return err
			}
			a.prefs = p
			a.logger.Info("préférences enregistrées")
			return nil
		},
	}
	cmd.Flags().BoolVar(&autoSave, "auto-sauvegarde", true, "archiver automatiquement à l'export")
	cmd.Flags().BoolVar(&confirmRm, "confirmer-suppression", true, "demander confirmation avant suppression")
	cmd.Flags().StringVar(&tva, "tva-defaut", "20.0", "taux de TVA par défaut des nouveaux articles")
	return cmd
}
