package catalog

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"
)

// SchemaVersion is written into exported JSON and YAML documents.
const SchemaVersion = "v1.0.0"

// Document is the JSON/YAML catalog format.
type Document struct {
	SchemaVersion string  `json:"schema_version" yaml:"schema_version"`
	Contexts      []Entry `json:"contexts" yaml:"contexts"`
}

// Entry is one context in a JSON/YAML document.
type Entry struct {
	ID          string            `json:"id" yaml:"id"`
	Name        string            `json:"name" yaml:"name"`
	Category    string            `json:"category" yaml:"category"`
	Description string            `json:"description" yaml:"description"`
	ValueMin    float64           `json:"value_min" yaml:"value_min"`
	ValueMax    float64           `json:"value_max" yaml:"value_max"`
	Unit        string            `json:"unit" yaml:"unit"`
	DataLabel   string            `json:"data_label,omitempty" yaml:"data_label,omitempty"`
	Variations  []string          `json:"variations" yaml:"variations"`
	Templates   map[string]string `json:"templates" yaml:"templates"`
}

// Row converts the entry into the tabular form consumed by Load.
func (e Entry) Row() Row {
	row := Row{
		ColID:          e.ID,
		ColName:        e.Name,
		ColCategory:    e.Category,
		ColDescription: e.Description,
		ColValueMin:    strconv.FormatFloat(e.ValueMin, 'f', -1, 64),
		ColValueMax:    strconv.FormatFloat(e.ValueMax, 'f', -1, 64),
		ColUnit:        e.Unit,
		ColDataLabel:   e.DataLabel,
	}
	for level, col := range templateColumns {
		row[col] = e.Templates[string(level)]
	}
	for _, v := range e.Variations {
		if col, ok := variationColumns[Variation(v)]; ok {
			row[col] = "Y"
		}
	}
	return row
}

// EntryOf converts a definition to its document entry.
func EntryOf(d ContextDefinition) Entry {
	e := Entry{
		ID:          d.ID,
		Name:        d.Name,
		Category:    d.Category,
		Description: d.Description,
		ValueMin:    d.ValueMin,
		ValueMax:    d.ValueMax,
		Unit:        d.Unit,
		DataLabel:   d.DataLabel,
		Templates:   make(map[string]string, len(d.Templates)),
	}
	for _, v := range d.Variations {
		e.Variations = append(e.Variations, string(v))
	}
	for level, t := range d.Templates {
		e.Templates[string(level)] = t
	}
	return e
}

// ReadCSV reads a header row followed by data rows.
func ReadCSV(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, &ErrDataFormat{Err: errors.New("empty CSV source")}
	}
	if err != nil {
		return nil, &ErrDataFormat{Err: fmt.Errorf("read header: %w", err)}
	}
	seen := make(map[string]bool, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if seen[h] {
			return nil, &ErrDataFormat{Column: h, Err: errors.New("duplicate column")}
		}
		seen[h] = true
		header[i] = h
	}

	var rows []Row
	for n := 1; ; n++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &ErrDataFormat{Row: n, Err: err}
		}
		if len(rec) > len(header) {
			return nil, &ErrDataFormat{Row: n, Err: fmt.Errorf("%d cells but only %d columns", len(rec), len(header))}
		}
		row := make(Row, len(header))
		for i, cell := range rec {
			row[header[i]] = cell
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ReadJSON reads a catalog Document, validating it against the document
// schema before conversion.
func ReadJSON(r io.Reader) ([]Row, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read JSON source: %w", err)
	}
	if err := validateDocument(raw); err != nil {
		return nil, err
	}
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, &ErrDataFormat{Err: fmt.Errorf("decode JSON: %w", err)}
	}
	return documentRows(doc)
}

// ReadYAML reads a catalog Document in YAML form. The decoded document goes
// through the same schema validation as JSON.
func ReadYAML(r io.Reader) ([]Row, error) {
	var doc Document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &ErrDataFormat{Err: errors.New("empty YAML source")}
		}
		return nil, &ErrDataFormat{Err: fmt.Errorf("decode YAML: %w", err)}
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("re-encode YAML document: %w", err)
	}
	if err := validateDocument(raw); err != nil {
		return nil, err
	}
	return documentRows(doc)
}

func documentRows(doc Document) ([]Row, error) {
	if err := checkSchemaVersion(doc.SchemaVersion); err != nil {
		return nil, err
	}
	rows := make([]Row, 0, len(doc.Contexts))
	for _, e := range doc.Contexts {
		rows = append(rows, e.Row())
	}
	return rows, nil
}

// checkSchemaVersion accepts any valid v1 semantic version.
func checkSchemaVersion(v string) error {
	if !semver.IsValid(v) {
		return &ErrDataFormat{Column: "schema_version", Err: fmt.Errorf("invalid semantic version %q", v)}
	}
	if semver.Major(v) != semver.Major(SchemaVersion) {
		return &ErrDataFormat{Column: "schema_version", Err: fmt.Errorf("unsupported schema version %s (want %s.x.y)", v, semver.Major(SchemaVersion))}
	}
	return nil
}

// LoadFile reads and loads a catalog, choosing the reader by extension.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	rows, err := ReadFile(f, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return Load(rows)
}

// ReadFile reads rows from r using the reader registered for ext.
func ReadFile(r io.Reader, ext string) ([]Row, error) {
	switch strings.ToLower(ext) {
	case ".csv":
		return ReadCSV(r)
	case ".json":
		return ReadJSON(r)
	case ".yaml", ".yml":
		return ReadYAML(r)
	default:
		return nil, fmt.Errorf("unsupported catalog format %q (want .csv, .json, .yaml)", ext)
	}
}

// WriteCSV writes definitions with a header row in canonical column order.
func WriteCSV(w io.Writer, defs []ContextDefinition) error {
	cw := csv.NewWriter(w)
	cols := Columns()
	if err := cw.Write(cols); err != nil {
		return err
	}
	for _, row := range Rows(defs...) {
		rec := make([]string, len(cols))
		for i, c := range cols {
			rec[i] = row[c]
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteYAML writes definitions as a YAML Document.
func WriteYAML(w io.Writer, defs []ContextDefinition) error {
	doc := Document{SchemaVersion: SchemaVersion}
	for _, d := range defs {
		doc.Contexts = append(doc.Contexts, EntryOf(d))
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return err
	}
	_, err := w.Write(buf.Bytes())
	return err
}
