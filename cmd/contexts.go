package cmd

import (
	"fmt"
	"strings"

	"github.com/abhisek/mathctx/internal/catalog"
	"github.com/abhisek/mathctx/internal/store"
	"github.com/abhisek/mathctx/internal/units"
	"github.com/mitchellh/go-wordwrap"
	"github.com/spf13/cobra"
)

var contextsCmd = &cobra.Command{
	Use:   "contexts",
	Short: "Browse the context catalog",
}

var contextsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List contexts (optionally filtered by variation or category)",
	RunE: func(cmd *cobra.Command, args []string) error {
		variationVal, _ := cmd.Flags().GetString("variation")
		category, _ := cmd.Flags().GetString("category")

		return withCatalog(cmd, func(_ *store.Store, cat *catalog.Catalog) error {
			defs := cat.All()
			if category != "" {
				defs = cat.ByCategory(category)
				if len(defs) == 0 {
					return fmt.Errorf("no contexts found for category %q", category)
				}
			}
			if variationVal != "" {
				v, err := catalog.ParseVariation(variationVal)
				if err != nil {
					return err
				}
				filtered := defs[:0:0]
				for _, d := range defs {
					if d.Supports(v) {
						filtered = append(filtered, d)
					}
				}
				defs = filtered
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%-24s  %-28s  %-16s  %-18s  %s\n",
				"ID", "Name", "Category", "Range", "Variations")
			fmt.Fprintln(out, strings.Repeat("─", 110))

			for _, d := range defs {
				name := d.Name
				if len(name) > 28 {
					name = name[:25] + "..."
				}
				fmt.Fprintf(out, "%-24s  %-28s  %-16s  %-18s  %s\n",
					d.ID, name, d.Category, valueRange(d), variationList(d.Variations))
			}

			fmt.Fprintf(out, "\n%d contexts\n", len(defs))
			return nil
		})
	},
}

var contextsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one context with its templates",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withCatalog(cmd, func(_ *store.Store, cat *catalog.Catalog) error {
			d, err := cat.Get(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "ID:          %s\n", d.ID)
			fmt.Fprintf(out, "Name:        %s\n", d.Name)
			fmt.Fprintf(out, "Category:    %s\n", d.Category)
			fmt.Fprintf(out, "Description: %s\n", d.Description)
			fmt.Fprintf(out, "Range:       %s\n", valueRange(d))
			fmt.Fprintf(out, "Data label:  %s\n", d.DataLabel)
			fmt.Fprintf(out, "Variations:  %s\n", variationList(d.Variations))

			sep := strings.Repeat("─", 60)
			for _, level := range catalog.AllLevels() {
				t, _ := d.Template(level)
				fmt.Fprintf(out, "\n%s\n%s template\n%s\n", sep, level, sep)
				fmt.Fprintln(out, wordwrap.WrapString(t, 78))
			}
			return nil
		})
	},
}

func init() {
	contextsListCmd.Flags().String("variation", "", "Only contexts supporting this variation")
	contextsListCmd.Flags().String("category", "", "Only contexts in this category")

	contextsCmd.AddCommand(contextsListCmd)
	contextsCmd.AddCommand(contextsShowCmd)
}

func valueRange(d catalog.ContextDefinition) string {
	rule := units.For(d.Unit)
	return rule.FormatValue(d.ValueMin) + " - " + rule.FormatValue(d.ValueMax)
}

func variationList(vs []catalog.Variation) string {
	names := make([]string, len(vs))
	for i, v := range vs {
		names[i] = string(v)
	}
	return strings.Join(names, ", ")
}
