package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"alcyxob/workout-planner/internal/catalog"
	"alcyxob/workout-planner/internal/domain"
)

func newCatalogCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect and validate exercise catalogs",
	}
	cmd.AddCommand(newCatalogValidateCommand(), newCatalogListCommand(), newCatalogDumpCommand())
	return cmd
}

func newCatalogValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Check that a YAML catalog file can be loaded",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := catalog.LoadFile(args[0])
			if err != nil {
				return err
			}
			counts := make(map[domain.Category]int)
			for _, ex := range cat.All() {
				counts[ex.Category]++
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d exercises\n", args[0], cat.Len())
			for _, c := range domain.AllCategories {
				fmt.Fprintf(cmd.OutOrStdout(), "  %-12s %d\n", c, counts[c])
			}
			return nil
		},
	}
}

func newCatalogListCommand() *cobra.Command {
	var path, category, difficulty, equipment string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog exercises",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var q catalog.Query
			var err error
			if category != "" {
				if q.Category, err = domain.ParseCategory(category); err != nil {
					return err
				}
			}
			if difficulty != "" {
				if q.Difficulty, err = domain.ParseDifficulty(difficulty); err != nil {
					return err
				}
			}
			if equipment != "" {
				if q.Equipment, err = domain.ParseEquipmentTier(equipment); err != nil {
					return err
				}
			}
			cat, err := loadCatalog(path)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tDIFFICULTY\tEQUIPMENT\tMUSCLES")
			for _, ex := range cat.Find(q) {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
					ex.ID, ex.Name, ex.Category, ex.Difficulty, ex.Equipment, strings.Join(ex.MuscleGroups, ","))
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&path, "catalog", "", "YAML catalog file (default: built-in catalog)")
	cmd.Flags().StringVar(&category, "category", "", "Only this category")
	cmd.Flags().StringVar(&difficulty, "difficulty", "", "Only this difficulty")
	cmd.Flags().StringVar(&equipment, "equipment", "", "Only this equipment tier")
	return cmd
}

func newCatalogDumpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dump",
		Short: "Print the built-in catalog as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat, err := catalog.Default()
			if err != nil {
				return err
			}
			return catalog.Marshal(cmd.OutOrStdout(), cat.All())
		},
	}
}
