// Package cli implements the plangen command, which generates plans and inspects catalogs
// without a database or HTTP server.
package cli

import (
	"github.com/spf13/cobra"

	"alcyxob/workout-planner/internal/catalog"
)

// NewRootCommand builds the plangen command tree.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "plangen",
		Short: "Generate workout plans from an exercise catalog",
		Long: `plangen runs the workout plan generator locally. It reads the built-in exercise
catalog or a YAML catalog file and prints the plan as JSON, text or an Excel workbook.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newGenerateCommand(), newCatalogCommand())
	return root
}

// loadCatalog reads path, or the built-in catalog when path is empty.
func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default()
	}
	return catalog.LoadFile(path)
}
