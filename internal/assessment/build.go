package assessment

import (
	"context"
	"fmt"

	"github.com/abhisek/mathctx/internal/catalog"
	"github.com/abhisek/mathctx/internal/problemgen"
)

// Item requests Count questions of one shape for a skill section.
type Item struct {
	SkillName  string            `json:"skill_name" yaml:"skill_name"`
	Variation  catalog.Variation `json:"variation" yaml:"variation"`
	Level      catalog.Level     `json:"level" yaml:"level"`
	Difficulty int               `json:"difficulty" yaml:"difficulty"`
	Count      int               `json:"count" yaml:"count"`
	ContextID  string            `json:"context_id,omitempty" yaml:"context_id,omitempty"`
}

// Plan describes a whole document to generate.
type Plan struct {
	Kind      Kind      `json:"kind" yaml:"kind"`
	Title     string    `json:"title,omitempty" yaml:"title,omitempty"`
	AnswerKey AnswerKey `json:"answer_key,omitempty" yaml:"answer_key,omitempty"`
	Items     []Item    `json:"items" yaml:"items"`
	Seed      uint64    `json:"seed" yaml:"seed"`
}

// Validate reports the first problem with the plan.
func (p Plan) Validate() error {
	if _, err := ParseKind(string(p.Kind)); err != nil {
		return err
	}
	if _, err := ParseAnswerKey(string(p.AnswerKey)); err != nil {
		return err
	}
	if len(p.Items) == 0 {
		return fmt.Errorf("plan has no items")
	}
	for i, it := range p.Items {
		if it.Count < 1 {
			return fmt.Errorf("item %d: count must be at least 1, got %d", i+1, it.Count)
		}
	}
	if p.Kind == KindPractice {
		for _, it := range p.Items[1:] {
			if it.SkillName != p.Items[0].SkillName {
				return fmt.Errorf("practice documents cover one skill, got %q and %q", p.Items[0].SkillName, it.SkillName)
			}
		}
	}
	return nil
}

// Build generates every question the plan asks for and assembles the
// document. Items sharing a skill name land in the same section, in the
// order the skill first appears. Steps are only generated when the answer
// key prints them.
func Build(ctx context.Context, gen problemgen.Generator, plan Plan) (*Document, error) {
	if err := plan.Validate(); err != nil {
		return nil, err
	}
	key, _ := ParseAnswerKey(string(plan.AnswerKey))

	var inputs []problemgen.GenerateInput
	var skills []string
	for _, it := range plan.Items {
		for range it.Count {
			inputs = append(inputs, problemgen.GenerateInput{
				Variation:  it.Variation,
				ContextID:  it.ContextID,
				Level:      it.Level,
				Difficulty: it.Difficulty,
				OmitSteps:  key != AnswerKeyWithSteps,
			})
			skills = append(skills, it.SkillName)
		}
	}

	questions, err := problemgen.GenerateBatch(ctx, gen, inputs, plan.Seed)
	if err != nil {
		return nil, err
	}

	var sections []Section
	index := map[string]int{}
	for i, q := range questions {
		name := skills[i]
		at, ok := index[name]
		if !ok {
			at = len(sections)
			index[name] = at
			sections = append(sections, Section{SkillName: name})
		}
		sections[at].Records = append(sections[at].Records, FromQuestion(q, name))
	}
	return NewDocument(plan.Kind, plan.Title, sections, key), nil
}
