package cmd

import (
	"fmt"

	"github.com/dustin/go-humanize/english"
	"github.com/spf13/cobra"

	"github.com/abhisek/mathctx/internal/app"
	"github.com/abhisek/mathctx/internal/problemgen"
)

var studioCmd = &cobra.Command{
	Use:   "studio",
	Short: "Open the interactive question studio",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStudio(cmd)
	},
}

// runStudio starts the TUI over the active catalog. The engine runs without
// a logger since stderr output would tear the alternate screen.
func runStudio(cmd *cobra.Command) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	cat, src, err := loadCatalog(cmd, st)
	if err != nil {
		return fmt.Errorf("load catalog (%s): %w", src, err)
	}

	return app.Run(app.Options{
		Engine:  problemgen.New(cat, problemgen.DefaultConfig()),
		Catalog: cat,
		Status:  fmt.Sprintf("%s catalog · %s", src, english.Plural(cat.Len(), "context", "")),
	})
}
