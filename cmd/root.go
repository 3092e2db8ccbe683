package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/abhisek/mathctx/internal/catalog"
	"github.com/abhisek/mathctx/internal/store"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "mathctx",
	Short: "Contextual mean word problem generator",
	Long: `mathctx builds arithmetic mean word problems set in real-world contexts.

Run without a subcommand to open the interactive studio.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStudio(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides MATHCTX_DB env var)")
	rootCmd.PersistentFlags().String("catalog", "", "Catalog file (.csv, .json, .yaml); overrides MATHCTX_CATALOG")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log debug output to stderr")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(contextsCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(assessCmd)
	rootCmd.AddCommand(draftCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(studioCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then MATHCTX_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

// newLogger returns a debug text logger on stderr with --verbose, otherwise
// a logger that drops everything.
func newLogger(cmd *cobra.Command) *slog.Logger {
	if v, _ := cmd.Flags().GetBool("verbose"); v {
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return slog.New(slog.DiscardHandler)
}

// catalogSource names where a catalog came from, for messages.
type catalogSource string

const (
	sourceFlag    catalogSource = "--catalog"
	sourceEnv     catalogSource = "MATHCTX_CATALOG"
	sourceStore   catalogSource = "database"
	sourceBuiltIn catalogSource = "built-in"
)

// loadCatalog resolves the active catalog: --catalog, then MATHCTX_CATALOG,
// then the rows stored in the database, then the built-in catalog. st may be
// nil, in which case the database is skipped.
func loadCatalog(cmd *cobra.Command, st *store.Store) (*catalog.Catalog, catalogSource, error) {
	if p, _ := cmd.Flags().GetString("catalog"); p != "" {
		c, err := catalog.LoadFile(p)
		return c, sourceFlag, err
	}
	if p := os.Getenv("MATHCTX_CATALOG"); p != "" {
		c, err := catalog.LoadFile(p)
		return c, sourceEnv, err
	}
	if st != nil {
		rows, err := st.ContextRepo().Rows(cmd.Context())
		if err != nil {
			return nil, sourceStore, fmt.Errorf("read stored catalog: %w", err)
		}
		if len(rows) > 0 {
			c, err := catalog.Load(rows)
			return c, sourceStore, err
		}
	}
	return catalog.Default(), sourceBuiltIn, nil
}

// withCatalog opens the store, resolves the catalog and calls fn. The store
// stays open for the duration of fn.
func withCatalog(cmd *cobra.Command, fn func(st *store.Store, cat *catalog.Catalog) error) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	cat, src, err := loadCatalog(cmd, st)
	if err != nil {
		return fmt.Errorf("load catalog (%s): %w", src, err)
	}
	newLogger(cmd).Debug("catalog loaded", "source", string(src), "contexts", cat.Len())
	return fn(st, cat)
}
