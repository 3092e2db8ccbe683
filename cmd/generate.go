package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/abhisek/mathctx/internal/catalog"
	"github.com/abhisek/mathctx/internal/problemgen"
	"github.com/abhisek/mathctx/internal/store"
	"github.com/mitchellh/go-wordwrap"
	"github.com/spf13/cobra"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate mean word problems",
	Long: `Generate one or more arithmetic mean questions.

With --seed the output is reproducible: the same seed, catalog and flags
always produce the same questions.`,
	Example: `  mathctx generate --variation missing_value --difficulty 3
  mathctx generate --context server_tips --level rich --seed 42 --json`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().String("variation", string(catalog.VariationCalculate), "Variation: calculate, missing_value, compare, missing_count")
	generateCmd.Flags().String("context", "", "Context id (default: random compatible context)")
	generateCmd.Flags().String("level", string(catalog.LevelStandard), "Narrative level: minimal, standard, rich")
	generateCmd.Flags().Int("difficulty", 2, "Difficulty 1-5")
	generateCmd.Flags().Int("count", 1, "Number of questions")
	generateCmd.Flags().String("seed", "", "Seed (number or any string) for reproducible output")
	generateCmd.Flags().Bool("json", false, "Print questions as JSON")
	generateCmd.Flags().Bool("no-steps", false, "Omit the worked solution")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	variationVal, _ := cmd.Flags().GetString("variation")
	contextID, _ := cmd.Flags().GetString("context")
	levelVal, _ := cmd.Flags().GetString("level")
	difficulty, _ := cmd.Flags().GetInt("difficulty")
	count, _ := cmd.Flags().GetInt("count")
	seedVal, _ := cmd.Flags().GetString("seed")
	asJSON, _ := cmd.Flags().GetBool("json")
	noSteps, _ := cmd.Flags().GetBool("no-steps")

	variation, err := catalog.ParseVariation(variationVal)
	if err != nil {
		return err
	}
	level, err := catalog.ParseLevel(levelVal)
	if err != nil {
		return err
	}
	if count < 1 {
		return fmt.Errorf("--count must be at least 1, got %d", count)
	}

	return withCatalog(cmd, func(_ *store.Store, cat *catalog.Catalog) error {
		engine := problemgen.New(cat, problemgen.DefaultConfig(), problemgen.WithLogger(newLogger(cmd)))

		inputs := make([]problemgen.GenerateInput, count)
		for i := range inputs {
			inputs[i] = problemgen.GenerateInput{
				Variation:  variation,
				ContextID:  contextID,
				Level:      level,
				Difficulty: difficulty,
				OmitSteps:  noSteps,
			}
		}
		questions, err := problemgen.GenerateBatch(cmd.Context(), engine, inputs, resolveSeed(seedVal))
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if asJSON {
			return writeQuestionsJSON(out, questions)
		}
		for i, q := range questions {
			if i > 0 {
				fmt.Fprintln(out, strings.Repeat("─", 60))
			}
			printQuestion(out, q)
		}
		return nil
	})
}

// resolveSeed turns --seed into a numeric seed. Numbers are used as is, any
// other string is hashed, and an empty value draws a random seed.
func resolveSeed(s string) uint64 {
	if s == "" {
		return rand.Uint64()
	}
	if n, err := strconv.ParseUint(s, 10, 64); err == nil {
		return n
	}
	return problemgen.SeedFromString(s)
}

func writeQuestionsJSON(w io.Writer, questions []*problemgen.Question) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if len(questions) == 1 {
		return enc.Encode(questions[0])
	}
	return enc.Encode(questions)
}

func printQuestion(w io.Writer, q *problemgen.Question) {
	fmt.Fprintf(w, "%s (%s, %s, difficulty %d, %d marks)\n\n",
		q.Given.ContextName, q.Given.Variation.DisplayName(), q.Given.Level, q.Difficulty, q.TotalMarks)
	fmt.Fprintln(w, wordwrap.WrapString(q.Text, 78))
	fmt.Fprintf(w, "\nAnswer: %s\n", q.Answer)
	if len(q.Steps) > 0 {
		fmt.Fprintln(w, "\nSteps:")
		for i, s := range q.Steps {
			fmt.Fprintf(w, "  %d. %s\n", i+1, s)
		}
	}
}
