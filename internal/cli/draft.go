package cli

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/diewo77/myinvo/internal/catalog"
	"github.com/diewo77/myinvo/internal/models"
	"github.com/diewo77/myinvo/internal/services"
)

func (a *app) draftCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "draft",
		Short: "Gérer le brouillon en cours",
	}
	cmd.AddCommand(
		a.draftNewCommand(),
		a.draftShowCommand(),
		a.draftSetCommand(),
		a.draftSetClientCommand(),
		a.draftAddCommand(),
		a.draftAddProduitCommand(),
		a.draftRmCommand(),
	)
	return cmd
}

func (a *app) draftNewCommand() *cobra.Command {
	return &cobra.Command{
		Use:       "new [devis|facture]",
		Short:     "Commencer un nouveau brouillon (devis par défaut)",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{string(models.TypeDevis), string(models.TypeFacture)},
		RunE: func(cmd *cobra.Command, args []string) error {
			t := models.TypeDevis
			if len(args) == 1 {
				switch models.DocType(args[0]) {
				case models.TypeDevis:
				case models.TypeFacture:
					t = models.TypeFacture
				default:
					return fmt.Errorf("type inconnu %q (devis ou facture)", args[0])
				}
			}
			d := services.NewDraft(t, time.Now())
			if err := a.saveDraft(d); err != nil {
				return err
			}
			a.logger.Info("nouveau brouillon", "type", t.Label(), "numero", d.Numero)
			return nil
		},
	}
}

func (a *app) draftShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Afficher le brouillon en cours",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.loadDraft()
			if err != nil {
				return err
			}
			a.printDraft(d)
			return nil
		},
	}
}

func (a *app) printDraft(d *services.Draft) {
	fmt.Fprintf(a.out, "%s n°%s du %s\n", d.Type.Label(), d.Numero, d.Date.Format("02/01/2006"))
	if name := d.Client.NomComplet(); name != "" {
		fmt.Fprintf(a.out, "Client: %s\n", name)
	} else {
		fmt.Fprintln(a.out, "Client: (non renseigné)")
	}
	if len(d.Articles) == 0 {
		fmt.Fprintln(a.out, "Aucun article")
		return
	}
	for i, art := range d.Articles {
		fmt.Fprintf(a.out, "%2d. %s  %s x %s €  (TVA %s%%)  = %s €\n",
			i+1, art.Designation, art.Quantite.String(),
			art.PrixUnitaire.StringFixed(2), art.TVA.StringFixed(1),
			art.MontantHT().StringFixed(2))
	}
	doc := models.Document{Articles: d.Articles}
	fmt.Fprintf(a.out, "Total HT:  %s €\n", doc.TotalHT().StringFixed(2))
	fmt.Fprintf(a.out, "Total TVA: %s €\n", doc.TotalTVA().StringFixed(2))
	fmt.Fprintf(a.out, "Total TTC: %s €\n", doc.TotalTTC().StringFixed(2))
}

func (a *app) draftSetCommand() *cobra.Command {
	var (
		conditions string
		notes      string
		validite   int
		reference  string
	)
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Modifier les champs du brouillon",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.loadDraft()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("conditions") {
				d.Conditions = conditions
			}
			if cmd.Flags().Changed("notes") {
				d.Notes = notes
			}
			if cmd.Flags().Changed("validite") {
				if validite <= 0 {
					return fmt.Errorf("validité invalide: %d jours", validite)
				}
				d.ValiditeJours = validite
			}
			if cmd.Flags().Changed("reference") {
				d.ReferenceDevis = reference
			}
			return a.saveDraft(d)
		},
	}
	cmd.Flags().StringVar(&conditions, "conditions", "", "conditions de règlement")
	cmd.Flags().StringVar(&notes, "notes", "", "notes libres")
	cmd.Flags().IntVar(&validite, "validite", 0, "validité du devis en jours")
	cmd.Flags().StringVar(&reference, "reference", "", "numéro du devis d'origine (factures)")
	return cmd
}

func (a *app) draftSetClientCommand() *cobra.Command {
	var (
		id     uint
		client models.Client
	)
	cmd := &cobra.Command{
		Use:   "set-client",
		Short: "Renseigner le client du brouillon",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.loadDraft()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("id") {
				cat, err := catalog.Open(a.cfg.CatalogFile())
				if err != nil {
					return err
				}
				rec, err := cat.FindClient(id)
				if err != nil {
					return err
				}
				d.Client = rec.Value()
			} else {
				d.Client = client
			}
			if d.Client.NomComplet() == "" {
				return fmt.Errorf("le client doit avoir un nom ou une entreprise")
			}
			if err := a.saveDraft(d); err != nil {
				return err
			}
			a.logger.Info("client renseigné", "client", d.Client.NomComplet())
			return nil
		},
	}
	cmd.Flags().UintVar(&id, "id", 0, "reprendre un client du catalogue")
	cmd.Flags().StringVar(&client.Nom, "nom", "", "nom")
	cmd.Flags().StringVar(&client.Prenom, "prenom", "", "prénom")
	cmd.Flags().StringVar(&client.Entreprise, "entreprise", "", "raison sociale")
	cmd.Flags().StringVar(&client.Adresse, "adresse", "", "adresse")
	cmd.Flags().StringVar(&client.CodePostal, "cp", "", "code postal")
	cmd.Flags().StringVar(&client.Ville, "ville", "", "ville")
	cmd.Flags().StringVar(&client.Email, "email", "", "email")
	cmd.Flags().StringVar(&client.Telephone, "tel", "", "téléphone")
	return cmd
}

func (a *app) draftAddCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "add <designation> <quantite> <prix> [tva]",
		Short: "Ajouter un article au brouillon",
		Args:  cobra.RangeArgs(3, 4),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.loadDraft()
			if err != nil {
				return err
			}
			tva := a.prefs.TVADefaut
			if len(args) == 4 {
				tva = args[3]
			}
			art, err := models.ParseArticle(args[0], args[1], args[2], tva)
			if err != nil {
				return err
			}
			d.AddArticle(art)
			if err := a.saveDraft(d); err != nil {
				return err
			}
			a.logger.Info("article ajouté", "designation", art.Designation, "montant_ht", art.MontantHT().StringFixed(2))
			return nil
		},
	}
}

func (a *app) draftAddProduitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "add-produit <id> <quantite>",
		Short: "Ajouter un produit du catalogue au brouillon",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.loadDraft()
			if err != nil {
				return err
			}
			id, err := strconv.ParseUint(args[0], 10, 32)
			if err != nil {
				return fmt.Errorf("identifiant produit invalide: %q", args[0])
			}
			qte, err := decimal.NewFromString(strings.ReplaceAll(args[1], ",", "."))
			if err != nil {
				return fmt.Errorf("quantité invalide: %q", args[1])
			}
			cat, err := catalog.Open(a.cfg.CatalogFile())
			if err != nil {
				return err
			}
			p, err := cat.FindProduit(uint(id))
			if err != nil {
				return err
			}
			art, err := p.Article(qte)
			if err != nil {
				return err
			}
			d.AddArticle(art)
			if err := a.saveDraft(d); err != nil {
				return err
			}
			a.logger.Info("produit ajouté", "designation", art.Designation, "quantite", qte.String())
			return nil
		},
	}
}

func (a *app) draftRmCommand() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "rm <numero-article>",
		Short: "Supprimer un article du brouillon (numérotation de draft show)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.loadDraft()
			if err != nil {
				return err
			}
			n, err := strconv.Atoi(args[0])
			if err != nil || n < 1 {
				return fmt.Errorf("numéro d'article invalide: %q", args[0])
			}
			if a.prefs.ConfirmerSuppression && !force {
				if !confirm(fmt.Sprintf("Supprimer l'article n°%d ?", n)) {
					a.logger.Info("suppression annulée")
					return nil
				}
			}
			if err := d.RemoveArticle(n - 1); err != nil {
				return err
			}
			return a.saveDraft(d)
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "ne pas demander de confirmation")
	return cmd
}

// confirm asks a yes/no question on stdin. Anything but o/oui/y/yes is no.
func confirm(question string) bool {
	fmt.Fprintf(os.Stderr, "%s [o/N] ", question)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "o", "oui", "y", "yes":
		return true
	}
	return false
}
