package problemgen

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand/v2"
	"reflect"
	"strings"
	"testing"

	"github.com/abhisek/mathctx/internal/catalog"
	"github.com/abhisek/mathctx/internal/synth"
)

// fixedSampler returns the same dataset for every request.
type fixedSampler struct {
	ds synth.Dataset
}

func (f fixedSampler) Synthesize(catalog.ContextDefinition, catalog.Variation, int, *rand.Rand) (synth.Dataset, error) {
	return f.ds.Clone(), nil
}

func defaultEngine(opts ...Option) *Engine {
	return New(catalog.Default(), DefaultConfig(), opts...)
}

func TestGenerate_ServerTipsScenario(t *testing.T) {
	eng := defaultEngine(WithSampler(fixedSampler{ds: synth.Dataset{
		Values: []float64{45, 52, 48, 50, 55},
		Hidden: -1,
		Mean:   50,
	}}))

	q, err := eng.Generate(context.Background(), GenerateInput{
		Variation:  catalog.VariationCalculate,
		ContextID:  "server_tips",
		Level:      catalog.LevelMinimal,
		Difficulty: 1,
		Rand:       NewRand(42),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Answer != "$50.00" {
		t.Errorf("expected answer $50.00, got %q", q.Answer)
	}
	if len(q.Steps) == 0 {
		t.Fatal("expected solution steps")
	}
	if !strings.Contains(q.Steps[0], "45") || !strings.Contains(q.Steps[0], "250") {
		t.Errorf("first step should contain 45 and 250, got %q", q.Steps[0])
	}
	if q.Difficulty != 1 || q.TotalMarks != 2 {
		t.Errorf("difficulty/marks = %d/%d, want 1/2", q.Difficulty, q.TotalMarks)
	}
	if q.Given.ContextID != "server_tips" || q.Given.Level != catalog.LevelMinimal || q.Given.Variation != catalog.VariationCalculate {
		t.Errorf("unexpected given data: %+v", q.Given)
	}
	if !strings.Contains(q.Text, "$45.00, $52.00, $48.00, $50.00 and $55.00") {
		t.Errorf("question text does not show the data: %q", q.Text)
	}
}

func TestGenerate_MissingValueScenario(t *testing.T) {
	eng := defaultEngine(WithSampler(fixedSampler{ds: synth.Dataset{
		Values: []float64{78, 85, 88, 72, 90},
		Hidden: 2,
		Mean:   82.6,
	}}))

	q, err := eng.Generate(context.Background(), GenerateInput{
		Variation:  catalog.VariationMissingValue,
		ContextID:  "test_scores",
		Level:      catalog.LevelStandard,
		Difficulty: 2,
		Rand:       NewRand(1),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Answer != "88 points" {
		t.Errorf("expected answer 88 points, got %q", q.Answer)
	}
	if !strings.Contains(q.Steps[2], "413 - 325 = 88") {
		t.Errorf("unexpected final step %q", q.Steps[2])
	}
	if q.TotalMarks != 3 {
		t.Errorf("TotalMarks = %d, want 3", q.TotalMarks)
	}
}

func TestGenerate_NoCompatibleContext(t *testing.T) {
	cat, err := catalog.Load([]catalog.Row{{
		catalog.ColID:               "only_calc",
		catalog.ColName:             "Only Calculate",
		catalog.ColCategory:         "Testing",
		catalog.ColValueMin:         "1",
		catalog.ColValueMax:         "10",
		catalog.ColUnit:             "kg",
		catalog.ColDescription:      "calculate only",
		catalog.ColMinimalTemplate:  "{data}",
		catalog.ColStandardTemplate: "{name}: {data}",
		catalog.ColRichTemplate:     "{name} weighed things: {data}",
		catalog.ColCalculate:        "Y",
	}})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	_, err = New(cat, DefaultConfig()).Generate(context.Background(), GenerateInput{
		Variation:  catalog.VariationCompare,
		Level:      catalog.LevelMinimal,
		Difficulty: 1,
		Rand:       NewRand(1),
	})
	var nc *catalog.ErrNoCompatibleContext
	if !errors.As(err, &nc) {
		t.Fatalf("expected *catalog.ErrNoCompatibleContext, got %T: %v", err, err)
	}
}

func TestGenerate_ContextAtCatalogLimits(t *testing.T) {
	cat, err := catalog.Load([]catalog.Row{{
		catalog.ColID:               "at_limits",
		catalog.ColName:             "At Limits",
		catalog.ColCategory:         "Testing",
		catalog.ColValueMin:         "-1000000000",
		catalog.ColValueMax:         "1000000000",
		catalog.ColUnit:             "widgets per hour",
		catalog.ColDataLabel:        strings.Repeat("w", catalog.MaxLabelLength),
		catalog.ColDescription:      "widest range and longest substitutions a catalog accepts",
		catalog.ColMinimalTemplate:  "{data}",
		catalog.ColStandardTemplate: "{name} {data}",
		catalog.ColRichTemplate:     "{name} " + strings.Repeat("a", 780) + " {data}",
		catalog.ColCalculate:        "Y",
		catalog.ColMissingValue:     "Y",
		catalog.ColCompare:          "Y",
		catalog.ColMissingCount:     "Y",
	}})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	eng := New(cat, DefaultConfig())
	for _, v := range catalog.AllVariations() {
		for seed := range uint64(10) {
			q, err := eng.Generate(context.Background(), GenerateInput{
				Variation:  v,
				ContextID:  "at_limits",
				Level:      catalog.LevelRich,
				Difficulty: MaxDifficulty,
				Rand:       NewRand(seed),
			})
			if err != nil {
				t.Fatalf("%s seed %d: %v", v, seed, err)
			}
			if len(q.Text) > MaxTextLength {
				t.Errorf("%s seed %d: text is %d bytes", v, seed, len(q.Text))
			}
		}
	}
}

func TestGenerate_CompatibilityClosure(t *testing.T) {
	eng := defaultEngine()
	for _, def := range catalog.Default().All() {
		for _, v := range catalog.AllVariations() {
			_, err := eng.Generate(context.Background(), GenerateInput{
				Variation:  v,
				ContextID:  def.ID,
				Level:      catalog.LevelStandard,
				Difficulty: 3,
				Rand:       NewRand(7),
			})
			var ic *ErrIncompatibleContext
			incompatible := errors.As(err, &ic)
			compatible := eng.Catalog().IsCompatible(def.ID, v)

			if compatible && err != nil {
				t.Errorf("%s/%s: compatible but failed: %v", def.ID, v, err)
			}
			if !compatible && !incompatible {
				t.Errorf("%s/%s: incompatible but got %v", def.ID, v, err)
			}
		}
	}
}

func TestGenerate_AllCombinations(t *testing.T) {
	eng := defaultEngine()
	for _, def := range catalog.Default().All() {
		for _, v := range def.Variations {
			for _, level := range catalog.AllLevels() {
				for diff := MinDifficulty; diff <= MaxDifficulty; diff++ {
					q, err := eng.Generate(context.Background(), GenerateInput{
						Variation:  v,
						ContextID:  def.ID,
						Level:      level,
						Difficulty: diff,
						Rand:       NewRand(uint64(diff) * 31),
					})
					if err != nil {
						t.Fatalf("%s/%s/%s/%d: %v", def.ID, v, level, diff, err)
					}
					if q.Given.ContextID != def.ID {
						t.Errorf("context = %s, want %s", q.Given.ContextID, def.ID)
					}
				}
			}
		}
	}
}

func TestGenerate_UnknownContext(t *testing.T) {
	_, err := defaultEngine().Generate(context.Background(), GenerateInput{
		Variation:  catalog.VariationCalculate,
		ContextID:  "nope",
		Level:      catalog.LevelMinimal,
		Difficulty: 1,
	})
	var nf *catalog.ErrNotFound
	if !errors.As(err, &nf) {
		t.Fatalf("expected *catalog.ErrNotFound, got %v", err)
	}
}

func TestGenerate_InvalidArguments(t *testing.T) {
	base := GenerateInput{
		Variation:  catalog.VariationCalculate,
		ContextID:  "server_tips",
		Level:      catalog.LevelMinimal,
		Difficulty: 3,
	}
	tests := []struct {
		name   string
		mutate func(*GenerateInput)
		field  string
	}{
		{"difficulty zero", func(in *GenerateInput) { in.Difficulty = 0 }, "difficulty"},
		{"difficulty six", func(in *GenerateInput) { in.Difficulty = 6 }, "difficulty"},
		{"level", func(in *GenerateInput) { in.Level = "epic" }, "level"},
		{"empty level", func(in *GenerateInput) { in.Level = "" }, "level"},
		{"variation", func(in *GenerateInput) { in.Variation = "median" }, "variation"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := base
			tt.mutate(&in)
			_, err := defaultEngine().Generate(context.Background(), in)
			var ia *ErrInvalidArgument
			if !errors.As(err, &ia) {
				t.Fatalf("expected *ErrInvalidArgument, got %v", err)
			}
			if ia.Field != tt.field {
				t.Errorf("Field = %q, want %q", ia.Field, tt.field)
			}
		})
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	eng := defaultEngine()
	in := GenerateInput{
		Variation:  catalog.VariationMissingValue,
		Level:      catalog.LevelRich,
		Difficulty: 4,
	}

	in.Rand = NewRand(2024)
	a, err := eng.Generate(context.Background(), in)
	if err != nil {
		t.Fatal(err)
	}
	in.Rand = NewRand(2024)
	b, err := eng.Generate(context.Background(), in)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Errorf("same seed produced different questions:\n%+v\n%+v", a, b)
	}

	ja, _ := json.Marshal(a)
	jb, _ := json.Marshal(b)
	if string(ja) != string(jb) {
		t.Error("JSON encodings differ")
	}
}

func TestGenerate_OmitSteps(t *testing.T) {
	q, err := defaultEngine().Generate(context.Background(), GenerateInput{
		Variation:  catalog.VariationCompare,
		Level:      catalog.LevelMinimal,
		Difficulty: 2,
		OmitSteps:  true,
		Rand:       NewRand(5),
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(q.Steps) != 0 {
		t.Errorf("expected no steps, got %v", q.Steps)
	}
	raw, _ := json.Marshal(q)
	if !strings.Contains(string(raw), `"solution_steps":[]`) {
		t.Errorf("solution_steps should encode as an empty list: %s", raw)
	}
}

func TestGenerate_ValidationFailure(t *testing.T) {
	// The stated mean does not match the data, so the withheld value
	// cannot be recovered.
	eng := defaultEngine(WithSampler(fixedSampler{ds: synth.Dataset{
		Values: []float64{78, 85, 88, 72, 90},
		Hidden: 2,
		Mean:   80,
	}}))
	_, err := eng.Generate(context.Background(), GenerateInput{
		Variation:  catalog.VariationMissingValue,
		ContextID:  "test_scores",
		Level:      catalog.LevelMinimal,
		Difficulty: 1,
		Rand:       NewRand(1),
	})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	if verr.Validator != "math-check" {
		t.Errorf("Validator = %q, want math-check", verr.Validator)
	}
}

func TestGenerate_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := defaultEngine().Generate(ctx, GenerateInput{
		Variation:  catalog.VariationCalculate,
		Level:      catalog.LevelMinimal,
		Difficulty: 1,
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestGenerate_RandomContextIsCompatible(t *testing.T) {
	eng := defaultEngine()
	for seed := range uint64(30) {
		q, err := eng.Generate(context.Background(), GenerateInput{
			Variation:  catalog.VariationMissingCount,
			Level:      catalog.LevelStandard,
			Difficulty: 2,
			Rand:       NewRand(seed),
		})
		if err != nil {
			t.Fatal(err)
		}
		if !eng.Catalog().IsCompatible(q.Given.ContextID, catalog.VariationMissingCount) {
			t.Errorf("picked incompatible context %s", q.Given.ContextID)
		}
	}
}

func TestGenerate_DefaultRand(t *testing.T) {
	q, err := defaultEngine().Generate(context.Background(), GenerateInput{
		Variation:  catalog.VariationCalculate,
		Level:      catalog.LevelMinimal,
		Difficulty: 1,
	})
	if err != nil {
		t.Fatal(err)
	}
	if q.Text == "" || q.Answer == "" {
		t.Error("expected a complete question")
	}
}
