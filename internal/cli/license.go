package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/diewo77/myinvo/internal/license"
)

func (a *app) licenseCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "license",
		Short: "Consulter et activer la licence",
	}
	cmd.AddCommand(a.licenseStatusCommand(), a.licenseActivateCommand())
	return cmd
}

func (a *app) licenseStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Afficher l'état de la licence",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			gate := license.NewFileGate(a.cfg.LicenseFile())
			info, ok := gate.InstallInfo()
			if !ok {
				fmt.Fprintln(a.out, "Version d'essai (aucune licence installée)")
				fmt.Fprintln(a.out, "Les PDF exportés portent un filigrane.")
				return nil
			}
			fmt.Fprintf(a.out, "Licence %s\n", info.KeyType)
			if info.Company != "" {
				fmt.Fprintf(a.out, "Société: %s\n", info.Company)
			}
			if info.UserName != "" {
				fmt.Fprintf(a.out, "Titulaire: %s\n", info.UserName)
			}
			fmt.Fprintf(a.out, "Activée le: %s\n", info.ActivatedAt.Format("02/01/2006"))
			switch {
			case info.Expiry == nil:
				fmt.Fprintln(a.out, "Validité: perpétuelle")
			case gate.IsExpired(info):
				fmt.Fprintf(a.out, "EXPIRÉE depuis le %s\n", info.Expiry.Format("02/01/2006"))
			default:
				fmt.Fprintf(a.out, "Expire le: %s (%d jour(s) restants)\n",
					info.Expiry.Format("02/01/2006"), gate.DaysRemaining())
			}
			decision := license.Decide(gate)
			if decision.Reason != "" {
				a.logger.Warn(decision.Reason)
			}
			return nil
		},
	}
}

func (a *app) licenseActivateCommand() *cobra.Command {
	var (
		key     string
		keyType string
		company string
		name    string
		expires string
	)
	cmd := &cobra.Command{
		Use:   "activate",
		Short: "Installer une clé de licence",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if key == "" {
				return fmt.Errorf("--key est obligatoire")
			}
			switch keyType {
			case license.KeyStandard, license.KeyPremium, license.KeyTrial:
			default:
				return fmt.Errorf("type de clé inconnu %q (standard, premium ou trial)", keyType)
			}
			info := license.InstallInfo{
				Key:      key,
				KeyType:  keyType,
				Company:  company,
				UserName: name,
			}
			if expires != "" {
				t, err := time.Parse("2006-01-02", expires)
				if err != nil {
					return fmt.Errorf("date d'expiration invalide %q (attendu AAAA-MM-JJ)", expires)
				}
				info.Expiry = &t
			}
			if err := license.WriteInstallInfo(a.cfg.LicenseFile(), info); err != nil {
				return err
			}
			a.logger.Info("licence activée", "type", keyType)
			return nil
		},
	}
	cmd.Flags().StringVar(&key, "key", "", "clé de licence")
	cmd.Flags().StringVar(&keyType, "type", license.KeyStandard, "type de clé (standard, premium, trial)")
	cmd.Flags().StringVar(&company, "company", "", "société titulaire")
	cmd.Flags().StringVar(&name, "name", "", "nom du titulaire")
	cmd.Flags().StringVar(&expires, "expires", "", "date d'expiration AAAA-MM-JJ (vide: perpétuelle)")
	return cmd
}
