package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/abhisek/mathctx/internal/catalog"
	"github.com/abhisek/mathctx/internal/store"
	"github.com/spf13/cobra"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Import, export or reset the stored context catalog",
}

var catalogImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Validate a catalog file and store it as the active catalog",
	Long: `Validate a catalog file (.csv, .json, .yaml) and store it in the database.

The stored catalog replaces any previous import and is used whenever neither
--catalog nor MATHCTX_CATALOG is set.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := catalog.LoadFile(args[0])
		if err != nil {
			return err
		}

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.ContextRepo().Replace(cmd.Context(), cat.All()); err != nil {
			return fmt.Errorf("store catalog: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d contexts in %d categories.\n", cat.Len(), len(cat.Categories()))
		return nil
	},
}

var catalogExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the active catalog as CSV or YAML",
	RunE: func(cmd *cobra.Command, args []string) error {
		outPath, _ := cmd.Flags().GetString("out")
		format, _ := cmd.Flags().GetString("format")
		if format == "" {
			format = strings.TrimPrefix(filepath.Ext(outPath), ".")
		}

		return withCatalog(cmd, func(_ *store.Store, cat *catalog.Catalog) error {
			var w io.Writer = cmd.OutOrStdout()
			if outPath != "" {
				f, err := os.Create(outPath)
				if err != nil {
					return fmt.Errorf("create %s: %w", outPath, err)
				}
				defer f.Close()
				w = f
			}

			switch strings.ToLower(format) {
			case "", "csv":
				return catalog.WriteCSV(w, cat.All())
			case "yaml", "yml":
				return catalog.WriteYAML(w, cat.All())
			default:
				return fmt.Errorf("unsupported export format %q (want csv or yaml)", format)
			}
		})
	},
}

var catalogResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Remove the stored catalog and fall back to the built-in one",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		n, err := st.ContextRepo().Count(cmd.Context())
		if err != nil {
			return err
		}
		if err := st.ContextRepo().Replace(cmd.Context(), nil); err != nil {
			return fmt.Errorf("clear catalog: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %d stored contexts.\n", n)
		return nil
	},
}

func init() {
	catalogExportCmd.Flags().StringP("out", "o", "", "Output file (default: stdout)")
	catalogExportCmd.Flags().String("format", "", "csv or yaml (default: from --out extension, else csv)")

	catalogCmd.AddCommand(catalogImportCmd)
	catalogCmd.AddCommand(catalogExportCmd)
	catalogCmd.AddCommand(catalogResetCmd)
}

// appendToStore adds def to the active catalog and stores the result.
func appendToStore(cmd *cobra.Command, st *store.Store, cat *catalog.Catalog, def catalog.ContextDefinition) error {
	merged, err := catalog.Load(catalog.Rows(append(cat.All(), def)...))
	if err != nil {
		return err
	}
	return st.ContextRepo().Replace(cmd.Context(), merged.All())
}
