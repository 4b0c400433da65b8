package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/gokul-sureshkumar/Tariff-AI/pkg/models"
	"github.com/gokul-sureshkumar/Tariff-AI/pkg/validation"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect and validate plan catalogs",
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the plans in a catalog",
	RunE:  runCatalogList,
}

var catalogValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a plan catalog",
	Long: `Validate every plan in a catalog and report field-level problems. The
command exits non-zero when any plan fails validation.`,
	RunE: runCatalogValidate,
}

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.AddCommand(catalogListCmd)
	catalogCmd.AddCommand(catalogValidateCmd)

	catalogListCmd.Flags().String("category", "", "only list plans in this category")
	catalogListCmd.Flags().String("tier", "", "only list plans in this price tier (Budget, Standard, Premium)")
}

func runCatalogList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	catalog, skipped, err := loadCatalog(ctx)
	if err != nil {
		return err
	}

	categoryFilter, _ := cmd.Flags().GetString("category")
	tierFilter, _ := cmd.Flags().GetString("tier")

	titleCaser := cases.Title(language.Und)
	filtered := make(models.Catalog, 0, len(catalog))
	for _, plan := range catalog {
		if categoryFilter != "" && !strings.EqualFold(plan.Category(), categoryFilter) {
			continue
		}
		if tierFilter != "" && !strings.EqualFold(string(plan.Tier()), tierFilter) {
			continue
		}
		filtered = append(filtered, plan)
	}

	format := viperOutputFormat()
	switch format {
	case "json":
		data, err := json.MarshalIndent(filtered, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal catalog: %w", err)
		}
		fmt.Println(string(data))
	case "yaml":
		data, err := yaml.Marshal(map[string]models.Catalog{"plans": filtered})
		if err != nil {
			return fmt.Errorf("failed to marshal catalog: %w", err)
		}
		fmt.Print(string(data))
	default:
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		if _, err := fmt.Fprintln(w, "PLAN\tCATEGORY\tTIER\tRENTAL\tFREE LOCAL\tFREE INTL"); err != nil {
			return err
		}
		for _, plan := range filtered {
			if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t%.0f\t%d\t%d\n",
				plan.Name,
				titleCaser.String(strings.ToLower(plan.Category())),
				plan.Tier(),
				plan.MonthlyRental,
				plan.TotalFreeLocalMinutes(),
				plan.FreeIntl); err != nil {
				return err
			}
		}
		if err := w.Flush(); err != nil {
			return err
		}
		fmt.Printf("\n%d plans", len(filtered))
		if len(skipped) > 0 {
			fmt.Printf(" (%d rows skipped)", len(skipped))
		}
		fmt.Println()
	}

	return nil
}

func runCatalogValidate(cmd *cobra.Command, args []string) error {
	logger := GetLogger()
	ctx := cmd.Context()

	catalog, skipped, err := loadCatalog(ctx)
	if err != nil {
		return err
	}

	problems := validation.ValidateCatalog(catalog)

	for _, row := range skipped {
		fmt.Printf("row %d: %s\n", row.Line, row.Reason)
	}
	for idx, result := range problems {
		for _, verr := range result.Errors {
			fmt.Printf("plan %d (%s): %s\n", idx, catalog[idx].Name, verr.Error())
		}
	}

	if len(problems) == 0 && len(skipped) == 0 {
		logger.Info("Catalog is valid", "plans", len(catalog))
		fmt.Printf("Catalog is valid: %d plans\n", len(catalog))
		return nil
	}

	return fmt.Errorf("catalog validation failed: %d skipped rows, %d invalid plans",
		len(skipped), len(problems))
}

// viperOutputFormat normalizes the global --output flag for commands that only
// distinguish structured formats from the default table view.
func viperOutputFormat() string {
	switch strings.ToLower(viper.GetString("output")) {
	case "json":
		return "json"
	case "yaml", "yml":
		return "yaml"
	default:
		return "table"
	}
}
