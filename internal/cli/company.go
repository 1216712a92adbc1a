package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/diewo77/myinvo/internal/models"
)

func (a *app) companyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "company",
		Short: "Gérer le profil de l'entreprise émettrice",
	}
	cmd.AddCommand(a.companyShowCommand(), a.companySetCommand())
	return cmd
}

func (a *app) companyShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Afficher le profil de l'entreprise",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e := a.cfg.LoadEntreprise()
			fmt.Fprintf(a.out, "Nom:        %s\n", e.Nom)
			fmt.Fprintf(a.out, "Adresse:    %s, %s %s\n", e.Adresse, e.CodePostal, e.Ville)
			fmt.Fprintf(a.out, "SIRET:      %s\n", e.SIRET)
			fmt.Fprintf(a.out, "TVA intra.: %s\n", e.TVAIntra)
			fmt.Fprintf(a.out, "Téléphone:  %s\n", e.Telephone)
			fmt.Fprintf(a.out, "Email:      %s\n", e.Email)
			if e.Logo != "" {
				fmt.Fprintf(a.out, "Logo:       %s\n", e.Logo)
			}
			return nil
		},
	}
}

func (a *app) companySetCommand() *cobra.Command {
	var in models.Entreprise
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Modifier le profil de l'entreprise",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e := a.cfg.LoadEntreprise()
			set := func(flag string, dst *string, val string) {
				if cmd.Flags().Changed(flag) {
					*dst = val
				}
			}
			set("nom", &e.Nom, in.Nom)
			set("adresse", &e.Adresse, in.Adresse)
			set("cp", &e.CodePostal, in.CodePostal)
			set("ville", &e.Ville, in.Ville)
			set("siret", &e.SIRET, in.SIRET)
			set("tva-intra", &e.TVAIntra, in.TVAIntra)
			set("tel", &e.Telephone, in.Telephone)
			set("email", &e.Email, in.Email)
			set("logo", &e.Logo, in.Logo)
			if err := a.cfg.SaveEntreprise(e); err != nil {
				return err
			}
			a.logger.Info("profil entreprise enregistré", "nom", e.Nom)
			return nil
		},
	}
	cmd.Flags().StringVar(&in.Nom, "nom", "", "raison sociale")
	cmd.Flags().StringVar(&in.Adresse, "adresse", "", "adresse")
	cmd.Flags().StringVar(&in.CodePostal, "cp", "", "code postal")
	cmd.Flags().StringVar(&in.Ville, "ville", "", "ville")
	cmd.Flags().StringVar(&in.SIRET, "siret", "", "numéro SIRET")
	cmd.Flags().StringVar(&in.TVAIntra, "tva-intra", "", "numéro de TVA intracommunautaire")
	cmd.Flags().StringVar(&in.Telephone, "tel", "", "téléphone")
	cmd.Flags().StringVar(&in.Email, "email", "", "email")
	cmd.Flags().StringVar(&in.Logo, "logo", "", "chemin du logo (PNG ou JPEG)")
	return cmd
}
