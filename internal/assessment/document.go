// Package assessment lays generated questions out as printable documents:
// practice pages, worksheets, quizzes and tests, with optional answer keys.
package assessment

import (
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/mathctx/internal/problemgen"
)

// Kind is the document type.
type Kind string

const (
	KindPractice  Kind = "practice"  // one skill, no score box
	KindWorksheet Kind = "worksheet" // several skill sections
	KindQuiz      Kind = "quiz"      // sections ordered by difficulty, score box
	KindTest      Kind = "test"      // one list across skills, class and score boxes
)

// AllKinds returns every document kind.
func AllKinds() []Kind {
	return []Kind{KindPractice, KindWorksheet, KindQuiz, KindTest}
}

// ParseKind converts a string to a Kind.
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if !slices.Contains(AllKinds(), k) {
		return "", fmt.Errorf("unknown document kind %q", s)
	}
	return k, nil
}

// AnswerKey selects what the answer key page shows.
type AnswerKey string

const (
	AnswerKeyNone        AnswerKey = "none"
	AnswerKeyAnswersOnly AnswerKey = "answers_only"
	AnswerKeyWithSteps   AnswerKey = "with_steps"
)

// ParseAnswerKey converts a string to an AnswerKey. Empty means none.
func ParseAnswerKey(s string) (AnswerKey, error) {
	switch AnswerKey(s) {
	case "", AnswerKeyNone:
		return AnswerKeyNone, nil
	case AnswerKeyAnswersOnly, AnswerKeyWithSteps:
		return AnswerKey(s), nil
	default:
		return "", fmt.Errorf("unknown answer key type %q (want none, answers_only, with_steps)", s)
	}
}

// Record is one question as the renderer sees it. It carries no knowledge
// of how the question was generated.
type Record struct {
	Question   string   `json:"question"`
	Answer     string   `json:"answer"`
	Steps      []string `json:"steps"`
	Difficulty int      `json:"difficulty"`
	SkillName  string   `json:"skill_name"`
}

// FromQuestion converts a generated question into a renderer record.
func FromQuestion(q *problemgen.Question, skillName string) Record {
	return Record{
		Question:   q.Text,
		Answer:     q.Answer,
		Steps:      slices.Clone(q.Steps),
		Difficulty: q.Difficulty,
		SkillName:  skillName,
	}
}

// DifficultyLabel names a 1-5 difficulty for printed headings.
func DifficultyLabel(d int) string {
	switch {
	case d <= 2:
		return "Easy"
	case d == 3:
		return "Medium"
	default:
		return "Hard"
	}
}

// Section groups the records of one skill.
type Section struct {
	SkillName string
	Records   []Record
}

// Document is a renderable assessment.
type Document struct {
	ID        string
	Kind      Kind
	Title     string
	Sections  []Section
	AnswerKey AnswerKey
	Date      time.Time
}

// NewDocument assembles a document and applies the kind's ordering: quizzes
// sort each section by increasing difficulty, and tests merge all sections
// into one list sorted the same way. Sorting is stable.
func NewDocument(kind Kind, title string, sections []Section, key AnswerKey) *Document {
	doc := &Document{
		ID:        uuid.NewString(),
		Kind:      kind,
		Title:     title,
		AnswerKey: key,
		Date:      time.Now(),
	}
	if doc.AnswerKey == "" {
		doc.AnswerKey = AnswerKeyNone
	}

	byDifficulty := func(a, b Record) int { return a.Difficulty - b.Difficulty }
	switch kind {
	case KindQuiz:
		for _, s := range sections {
			s.Records = slices.Clone(s.Records)
			slices.SortStableFunc(s.Records, byDifficulty)
			doc.Sections = append(doc.Sections, s)
		}
	case KindTest:
		var all []Record
		for _, s := range sections {
			for _, r := range s.Records {
				if r.SkillName == "" {
					r.SkillName = s.SkillName
				}
				all = append(all, r)
			}
		}
		slices.SortStableFunc(all, byDifficulty)
		doc.Sections = []Section{{Records: all}}
	default:
		doc.Sections = slices.Clone(sections)
	}
	if doc.Title == "" {
		doc.Title = defaultTitle(kind)
	}
	return doc
}

func defaultTitle(kind Kind) string {
	switch kind {
	case KindPractice:
		return "Mathematics Practice"
	case KindWorksheet:
		return "Mean Calculation Worksheet"
	case KindQuiz:
		return "Mean Calculation Quiz"
	default:
		return "Mean Calculation Test"
	}
}

// Records returns every record in print order.
func (d *Document) Records() []Record {
	var out []Record
	for _, s := range d.Sections {
		out = append(out, s.Records...)
	}
	return out
}

// QuestionCount returns the number of questions in the document.
func (d *Document) QuestionCount() int {
	n := 0
	for _, s := range d.Sections {
		n += len(s.Records)
	}
	return n
}
