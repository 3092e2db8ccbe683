package assessment

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/mitchellh/go-wordwrap"
)

// Layout controls the printed page geometry.
type Layout struct {
	// Width is the line width in characters.
	Width int

	// PageLines is the number of lines per page, footer included.
	PageLines int
}

// DefaultLayout returns a layout that fits a letter page in a monospace font.
func DefaultLayout() Layout {
	return Layout{Width: 78, PageLines: 60}
}

const (
	footerLines    = 2
	infoColumn     = 42
	questionIndent = 4
	answerIndent   = 8
)

// block is a run of lines kept together on one page when it fits.
type block struct {
	lines     []string
	pageBreak bool // start a new page before this block
}

// Render writes doc as plain text pages separated by form feeds, each ending
// with a "Page i of n" footer.
func Render(w io.Writer, doc *Document, layout Layout) error {
	if layout.Width <= 20 {
		layout.Width = DefaultLayout().Width
	}
	if layout.PageLines <= footerLines+5 {
		layout.PageLines = DefaultLayout().PageLines
	}
	r := &renderer{doc: doc, layout: layout}
	r.header()
	r.questions()
	if doc.AnswerKey != AnswerKeyNone && doc.AnswerKey != "" {
		r.answerKey()
	}
	return r.write(w)
}

type renderer struct {
	doc    *Document
	layout Layout
	blocks []block
}

func (r *renderer) add(b block) {
	r.blocks = append(r.blocks, b)
}

func (r *renderer) header() {
	doc := r.doc
	lines := []string{center(doc.Title, r.layout.Width), center(strings.Repeat("=", utf8.RuneCountInString(doc.Title)), r.layout.Width)}
	if doc.Kind == KindPractice && len(doc.Sections) > 0 && doc.Sections[0].SkillName != "" {
		lines = append(lines, center("Skill: "+doc.Sections[0].SkillName, r.layout.Width))
	}
	lines = append(lines, "")

	count := "Questions: "
	if doc.Kind != KindPractice {
		count = "Total Questions: "
	}
	rows := [][2]string{
		{"Name: _______________________________", "Date: " + doc.Date.Format("January 2, 2006")},
	}
	switch doc.Kind {
	case KindTest:
		rows = append(rows,
			[2]string{"Class: ______________________________", count + fmt.Sprint(doc.QuestionCount())},
			[2]string{"", "Score: ______ / ______"})
	case KindQuiz:
		rows = append(rows,
			[2]string{"", count + fmt.Sprint(doc.QuestionCount())},
			[2]string{"", "Score: ______ / ______"})
	default:
		rows = append(rows, [2]string{"", count + fmt.Sprint(doc.QuestionCount())})
	}
	for _, row := range rows {
		lines = append(lines, columns(row[0], row[1]))
	}
	lines = append(lines, "")

	switch doc.Kind {
	case KindWorksheet:
		lines = append(lines, r.wrap("Instructions: Complete all questions. Show your work.", 0)...)
		lines = append(lines, "")
	case KindQuiz:
		lines = append(lines, r.wrap("Instructions: Answer all questions. Show your work for full credit. Questions increase in difficulty.", 0)...)
		lines = append(lines, "")
	case KindTest:
		lines = append(lines,
			"Instructions:",
			"  - Read each question carefully",
			"  - Show all your work for full credit",
			"  - Questions progress from easier to more challenging",
			"  - Use the back of pages if you need more space",
			"")
	}
	r.add(block{lines: lines})
}

func (r *renderer) questions() {
	n := 1
	for _, s := range r.doc.Sections {
		var pending []string
		if r.showSectionHeaders() && s.SkillName != "" {
			pending = []string{"Skill: " + s.SkillName, strings.Repeat("-", utf8.RuneCountInString(s.SkillName)+7), ""}
		}
		for _, rec := range s.Records {
			lines := append(pending, r.heading(n, rec, s.SkillName))
			lines = append(lines, r.wrap(rec.Question, questionIndent)...)
			lines = append(lines, "", "")
			r.add(block{lines: lines})
			pending = nil
			n++
		}
	}
}

func (r *renderer) answerKey() {
	r.add(block{
		lines:     []string{center("Answer Key", r.layout.Width), center("==========", r.layout.Width), ""},
		pageBreak: true,
	})
	n := 1
	for _, s := range r.doc.Sections {
		var pending []string
		if r.showSectionHeaders() && s.SkillName != "" {
			pending = []string{"Skill: " + s.SkillName, ""}
		}
		for _, rec := range s.Records {
			lines := append(pending, r.heading(n, rec, s.SkillName))
			lines = append(lines, r.wrap("Answer: "+rec.Answer, answerIndent)...)
			if r.doc.AnswerKey == AnswerKeyWithSteps && len(rec.Steps) > 0 {
				lines = append(lines, strings.Repeat(" ", answerIndent)+"Steps:")
				for _, step := range rec.Steps {
					lines = append(lines, r.wrapHanging("- "+step, answerIndent, 2)...)
				}
			}
			lines = append(lines, "")
			r.add(block{lines: lines})
			pending = nil
			n++
		}
	}
}

func (r *renderer) showSectionHeaders() bool {
	return r.doc.Kind == KindWorksheet || r.doc.Kind == KindQuiz
}

func (r *renderer) heading(n int, rec Record, section string) string {
	switch r.doc.Kind {
	case KindQuiz:
		return fmt.Sprintf("Question %d (%s)", n, DifficultyLabel(rec.Difficulty))
	case KindTest:
		skill := rec.SkillName
		if skill == "" {
			skill = section
		}
		return fmt.Sprintf("Question %d - %s (%s)", n, skill, DifficultyLabel(rec.Difficulty))
	default:
		return fmt.Sprintf("Question %d", n)
	}
}

// wrap word-wraps s to the layout width with every line indented.
func (r *renderer) wrap(s string, indent int) []string {
	return r.wrapHanging(s, indent, 0)
}

// wrapHanging wraps s with continuation lines indented by a further hang.
func (r *renderer) wrapHanging(s string, indent, hang int) []string {
	limit := max(r.layout.Width-indent-hang, 10)
	wrapped := strings.Split(wordwrap.WrapString(s, uint(limit)), "\n")
	out := make([]string, len(wrapped))
	for i, line := range wrapped {
		pad := indent
		if i > 0 {
			pad += hang
		}
		out[i] = strings.Repeat(" ", pad) + line
	}
	return out
}

// write paginates the blocks and writes every page with its footer.
func (r *renderer) write(w io.Writer) error {
	capacity := r.layout.PageLines - footerLines
	pages := [][]string{nil}
	for _, b := range r.blocks {
		cur := len(pages) - 1
		if b.pageBreak && len(pages[cur]) > 0 {
			pages = append(pages, nil)
			cur++
		}
		if len(pages[cur])+len(b.lines) > capacity && len(pages[cur]) > 0 {
			pages = append(pages, nil)
			cur++
		}
		lines := b.lines
		for len(lines) > 0 {
			room := capacity - len(pages[cur])
			if room == 0 {
				pages = append(pages, nil)
				cur++
				room = capacity
			}
			take := min(room, len(lines))
			pages[cur] = append(pages[cur], lines[:take]...)
			lines = lines[take:]
		}
	}

	bw := bufio.NewWriter(w)
	for i, page := range pages {
		if i > 0 {
			bw.WriteString("\f")
		}
		for _, line := range page {
			bw.WriteString(strings.TrimRight(line, " ") + "\n")
		}
		for range capacity - len(page) {
			bw.WriteString("\n")
		}
		bw.WriteString("\n")
		bw.WriteString(center(fmt.Sprintf("Page %d of %d", i+1, len(pages)), r.layout.Width) + "\n")
	}
	return bw.Flush()
}

func center(s string, width int) string {
	pad := (width - utf8.RuneCountInString(s)) / 2
	if pad <= 0 {
		return s
	}
	return strings.Repeat(" ", pad) + s
}

func columns(left, right string) string {
	if right == "" {
		return left
	}
	pad := max(infoColumn-utf8.RuneCountInString(left), 1)
	return left + strings.Repeat(" ", pad) + right
}
