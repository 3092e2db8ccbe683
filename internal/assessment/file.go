package assessment

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var slugUnsafe = regexp.MustCompile(`[^a-z0-9]+`)

// FileName returns the output file name for doc, stamped with its date.
// Practice documents also carry the skill name.
func FileName(doc *Document) string {
	ts := doc.Date.Format("20060102_150405")
	if doc.Kind == KindPractice && len(doc.Sections) > 0 {
		if slug := slugify(doc.Sections[0].SkillName); slug != "" {
			return fmt.Sprintf("practice_%s_%s.txt", slug, ts)
		}
	}
	return fmt.Sprintf("%s_%s.txt", doc.Kind, ts)
}

// WriteFile renders doc into dir, creating the directory if needed, and
// returns the written path.
func WriteFile(dir string, doc *Document, layout Layout) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(dir, FileName(doc))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	if err := Render(f, doc, layout); err != nil {
		f.Close()
		return "", fmt.Errorf("render %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return path, nil
}

func slugify(s string) string {
	return strings.Trim(slugUnsafe.ReplaceAllString(strings.ToLower(s), "_"), "_")
}
