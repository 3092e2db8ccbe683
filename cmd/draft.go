package cmd

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/abhisek/mathctx/internal/catalog"
	"github.com/abhisek/mathctx/internal/drafting"
	"github.com/abhisek/mathctx/internal/llm"
	"github.com/abhisek/mathctx/internal/store"
	"github.com/spf13/cobra"
)

var draftCmd = &cobra.Command{
	Use:   "draft <topic>",
	Short: "Draft a new context with an LLM",
	Long: `Ask the configured LLM provider for a new context about <topic>.

The draft is checked like any catalog row and must generate questions for
every variation it claims before it is printed. Configure the provider with
MATHCTX_LLM_PROVIDER and MATHCTX_<PROVIDER>_API_KEY, or just set one of
ANTHROPIC_API_KEY, OPENAI_API_KEY, GEMINI_API_KEY or OPENROUTER_API_KEY.`,
	Example: `  mathctx draft "bus commute times" --unit minutes
  mathctx draft "school bake sale" --variation calculate,compare --save`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDraft,
}

func init() {
	draftCmd.Flags().String("category", "", "Preferred category")
	draftCmd.Flags().String("unit", "", "Required unit")
	draftCmd.Flags().StringSlice("variation", nil, "Variations the context must support")
	draftCmd.Flags().Int("repairs", drafting.DefaultConfig().MaxRepairs, "Times a rejected draft is sent back for correction")
	draftCmd.Flags().Bool("save", false, "Add the draft to the stored catalog")
}

func runDraft(cmd *cobra.Command, args []string) error {
	category, _ := cmd.Flags().GetString("category")
	unit, _ := cmd.Flags().GetString("unit")
	variationVals, _ := cmd.Flags().GetStringSlice("variation")
	repairs, _ := cmd.Flags().GetInt("repairs")
	save, _ := cmd.Flags().GetBool("save")

	req := drafting.Request{
		Topic:    strings.Join(args, " "),
		Category: category,
		Unit:     unit,
	}
	for _, s := range variationVals {
		v, err := catalog.ParseVariation(s)
		if err != nil {
			return err
		}
		req.Variations = append(req.Variations, v)
	}

	logger := newLogger(cmd)
	return withCatalog(cmd, func(st *store.Store, cat *catalog.Catalog) error {
		provider, err := providerFromEnv(cmd, st.EventRepo(), logger)
		if err != nil {
			return err
		}

		cfg := drafting.DefaultConfig()
		cfg.MaxRepairs = repairs
		d, err := drafting.New(provider, cat, cfg, logger).Draft(cmd.Context(), req)
		if err != nil {
			return err
		}

		if err := catalog.WriteYAML(cmd.OutOrStdout(), []catalog.ContextDefinition{d.Definition}); err != nil {
			return err
		}
		if !save {
			return nil
		}
		if err := appendToStore(cmd, st, cat, d.Definition); err != nil {
			return fmt.Errorf("save draft: %w", err)
		}
		cmd.PrintErrf("Saved %s to the stored catalog.\n", d.Definition.ID)
		return nil
	})
}

// providerFromEnv builds the LLM provider from MATHCTX_ variables, falling
// back to the first plain <PROVIDER>_API_KEY found.
func providerFromEnv(cmd *cobra.Command, events store.EventRepo, logger *slog.Logger) (llm.Provider, error) {
	cfg := llm.ConfigFromEnv()
	if err := cfg.Validate(); err != nil {
		discovered, ok := llm.DiscoverConfig()
		if !ok {
			return nil, fmt.Errorf("LLM provider not configured: %w", err)
		}
		cfg = discovered
	}
	return llm.NewProvider(cmd.Context(), cfg, events, logger)
}
