package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/diewo77/myinvo/internal/catalog"
)

func (a *app) openCatalog() (*catalog.Catalog, error) {
	return catalog.Open(a.cfg.CatalogFile())
}

func (a *app) clientsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clients",
		Short: "Gérer le catalogue de clients",
	}
	cmd.AddCommand(a.clientsAddCommand(), a.clientsListCommand(), a.clientsRmCommand())
	return cmd
}

func (a *app) clientsAddCommand() *cobra.Command {
	var rec catalog.Client
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Ajouter un client au catalogue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if rec.Value().NomComplet() == "" {
				return fmt.Errorf("le client doit avoir un nom ou une entreprise")
			}
			cat, err := a.openCatalog()
			if err != nil {
				return err
			}
			if err := cat.SaveClient(&rec); err != nil {
				return err
			}
			a.logger.Info("client enregistré", "id", rec.ID, "client", rec.Value().NomComplet())
			return nil
		},
	}
	cmd.Flags().StringVar(&rec.Nom, "nom", "", "nom")
	cmd.Flags().StringVar(&rec.Prenom, "prenom", "", "prénom")
	cmd.Flags().StringVar(&rec.Entreprise, "entreprise", "", "raison sociale")
	cmd.Flags().StringVar(&rec.Adresse, "adresse", "", "adresse")
	cmd.Flags().StringVar(&rec.CodePostal, "cp", "", "code postal")
	cmd.Flags().StringVar(&rec.Ville, "ville", "", "ville")
	cmd.Flags().StringVar(&rec.Email, "email", "", "email")
	cmd.Flags().StringVar(&rec.Telephone, "tel", "", "téléphone")
	return cmd
}

func (a *app) clientsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Lister les clients du catalogue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := a.openCatalog()
			if err != nil {
				return err
			}
			clients, err := cat.Clients()
			if err != nil {
				return err
			}
			if len(clients) == 0 {
				fmt.Fprintln(a.out, "Aucun client")
				return nil
			}
			for _, c := range clients {
				v := c.Value()
				fmt.Fprintf(a.out, "%4d  %-30s  %s %s\n", c.ID, v.NomComplet(), v.CodePostal, v.Ville)
			}
			return nil
		},
	}
}

func (a *app) clientsRmCommand() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Supprimer un client du catalogue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseUint(args[0], 10, 32)
			if err != nil {
				return fmt.Errorf("identifiant invalide: %q", args[0])
			}
			if a.prefs.ConfirmerSuppression && !force {
				if !confirm(fmt.Sprintf("Supprimer le client n°%d ?", id)) {
					a.logger.Info("suppression annulée")
					return nil
				}
			}
			cat, err := a.openCatalog()
			if err != nil {
				return err
			}
			return cat.DeleteClient(uint(id))
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "ne pas demander de confirmation")
	return cmd
}

func (a *app) produitsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "produits",
		Short: "Gérer le catalogue de produits et prestations",
	}
	cmd.AddCommand(a.produitsAddCommand(), a.produitsListCommand(), a.produitsRmCommand())
	return cmd
}

func (a *app) produitsAddCommand() *cobra.Command {
	var tva string
	cmd := &cobra.Command{
		Use:   "add <designation> <prix>",
		Short: "Ajouter un produit au catalogue",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if tva == "" {
				tva = a.prefs.TVADefaut
			}
			cat, err := a.openCatalog()
			if err != nil {
				return err
			}
			p := &catalog.Produit{Designation: args[0], PrixUnitaire: args[1], TVA: tva}
			if err := cat.SaveProduit(p); err != nil {
				return err
			}
			a.logger.Info("produit enregistré", "id", p.ID, "designation", p.Designation)
			return nil
		},
	}
	cmd.Flags().StringVar(&tva, "tva", "", "taux de TVA (défaut: préférence tva_defaut)")
	return cmd
}

func (a *app) produitsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Lister les produits du catalogue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := a.openCatalog()
			if err != nil {
				return err
			}
			produits, err := cat.Produits()
			if err != nil {
				return err
			}
			if len(produits) == 0 {
				fmt.Fprintln(a.out, "Aucun produit")
				return nil
			}
			for _, p := range produits {
				fmt.Fprintf(a.out, "%4d  %-40s  %10s €  TVA %s%%\n", p.ID, p.Designation, p.PrixUnitaire, p.TVA)
			}
			return nil
		},
	}
}

func (a *app) produitsRmCommand() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Supprimer un produit du catalogue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseUint(args[0], 10, 32)
			if err != nil {
				return fmt.Errorf("identifiant invalide: %q", args[0])
			}
			if a.prefs.ConfirmerSuppression && !force {
				if !confirm(fmt.Sprintf("Supprimer le produit n°%d ?", id)) {
					a.logger.Info("suppression annulée")
					return nil
				}
			}
			cat, err := a.openCatalog()
			if err != nil {
				return err
			}
			return cat.DeleteProduit(uint(id))
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "ne pas demander de confirmation")
	return cmd
}
