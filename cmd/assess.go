package cmd

import (
	"fmt"
	"os"

	"github.com/abhisek/mathctx/internal/assessment"
	"github.com/abhisek/mathctx/internal/catalog"
	"github.com/abhisek/mathctx/internal/problemgen"
	"github.com/abhisek/mathctx/internal/store"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var assessCmd = &cobra.Command{
	Use:       "assess <practice|worksheet|quiz|test>",
	Short:     "Build a printable practice sheet, worksheet, quiz or test",
	ValidArgs: []string{"practice", "worksheet", "quiz", "test"},
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	Long: `Generate a paginated plain-text assessment document.

Questions are requested either from flags (one section per variation, or a
single section when --skill is set) or from a YAML/JSON plan file given with
--plan. Quizzes and tests are ordered from easiest to hardest.`,
	Example: `  mathctx assess quiz --variation calculate,compare --difficulty 1,3,5 --count 2
  mathctx assess practice --skill "Finding the Mean" --answer-key with_steps
  mathctx assess test --plan unit_test.yaml --out -`,
	RunE: runAssess,
}

func init() {
	assessCmd.Flags().String("title", "", "Document title (default depends on the kind)")
	assessCmd.Flags().String("skill", "", "Skill name; puts every question in one section")
	assessCmd.Flags().StringSlice("variation", []string{string(catalog.VariationCalculate)}, "Variations to include")
	assessCmd.Flags().String("level", string(catalog.LevelStandard), "Narrative level: minimal, standard, rich")
	assessCmd.Flags().IntSlice("difficulty", []int{2}, "Difficulties to include (1-5)")
	assessCmd.Flags().Int("count", 5, "Questions per variation and difficulty")
	assessCmd.Flags().String("context", "", "Use one context for every question")
	assessCmd.Flags().String("answer-key", string(assessment.AnswerKeyAnswersOnly), "none, answers_only or with_steps")
	assessCmd.Flags().StringP("out", "o", ".", "Output directory, or - for stdout")
	assessCmd.Flags().String("seed", "", "Seed (number or any string) for reproducible output")
	assessCmd.Flags().String("plan", "", "YAML or JSON plan file; replaces the question flags")
}

func runAssess(cmd *cobra.Command, args []string) error {
	kind, err := assessment.ParseKind(args[0])
	if err != nil {
		return err
	}
	outDir, _ := cmd.Flags().GetString("out")

	plan, err := assessPlan(cmd, kind)
	if err != nil {
		return err
	}
	if err := plan.Validate(); err != nil {
		return err
	}

	return withCatalog(cmd, func(_ *store.Store, cat *catalog.Catalog) error {
		engine := problemgen.New(cat, problemgen.DefaultConfig(), problemgen.WithLogger(newLogger(cmd)))
		doc, err := assessment.Build(cmd.Context(), engine, plan)
		if err != nil {
			return err
		}

		layout := assessment.DefaultLayout()
		if outDir == "-" {
			return assessment.Render(cmd.OutOrStdout(), doc, layout)
		}
		path, err := assessment.WriteFile(outDir, doc, layout)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d questions)\n", path, doc.QuestionCount())
		return nil
	})
}

// assessPlan builds the plan from --plan or from the question flags. Flags
// that apply to the whole document (title, answer key, seed) override the
// plan file when set.
func assessPlan(cmd *cobra.Command, kind assessment.Kind) (assessment.Plan, error) {
	flags := cmd.Flags()
	planPath, _ := flags.GetString("plan")
	title, _ := flags.GetString("title")
	keyVal, _ := flags.GetString("answer-key")
	seedVal, _ := flags.GetString("seed")

	var plan assessment.Plan
	if planPath != "" {
		data, err := os.ReadFile(planPath)
		if err != nil {
			return plan, fmt.Errorf("read plan: %w", err)
		}
		if err := yaml.Unmarshal(data, &plan); err != nil {
			return plan, fmt.Errorf("parse plan %s: %w", planPath, err)
		}
	} else {
		items, err := planItems(cmd, kind)
		if err != nil {
			return plan, err
		}
		plan.Items = items
	}

	plan.Kind = kind
	if title != "" {
		plan.Title = title
	}
	if plan.AnswerKey == "" || flags.Changed("answer-key") {
		plan.AnswerKey = assessment.AnswerKey(keyVal)
	}
	if plan.Seed == 0 || flags.Changed("seed") {
		plan.Seed = resolveSeed(seedVal)
	}
	return plan, nil
}

func planItems(cmd *cobra.Command, kind assessment.Kind) ([]assessment.Item, error) {
	flags := cmd.Flags()
	skill, _ := flags.GetString("skill")
	variationVals, _ := flags.GetStringSlice("variation")
	levelVal, _ := flags.GetString("level")
	difficulties, _ := flags.GetIntSlice("difficulty")
	count, _ := flags.GetInt("count")
	contextID, _ := flags.GetString("context")

	level, err := catalog.ParseLevel(levelVal)
	if err != nil {
		return nil, err
	}
	variations := make([]catalog.Variation, 0, len(variationVals))
	for _, s := range variationVals {
		v, err := catalog.ParseVariation(s)
		if err != nil {
			return nil, err
		}
		variations = append(variations, v)
	}
	if len(variations) == 0 || len(difficulties) == 0 {
		return nil, fmt.Errorf("at least one --variation and one --difficulty are required")
	}
	if skill == "" && kind == assessment.KindPractice && len(variations) > 1 {
		skill = "Arithmetic Mean"
	}

	var items []assessment.Item
	for _, v := range variations {
		name := skill
		if name == "" {
			name = v.DisplayName()
		}
		for _, d := range difficulties {
			items = append(items, assessment.Item{
				SkillName:  name,
				Variation:  v,
				Level:      level,
				Difficulty: d,
				Count:      count,
				ContextID:  contextID,
			})
		}
	}
	return items, nil
}
