package catalog

import (
	"errors"
	"fmt"
	"maps"
	"math"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Row is one tabular catalog record keyed by column name.
type Row map[string]string

// Column names of the catalog data source.
const (
	ColID               = "ContextID"
	ColName             = "ContextName"
	ColCategory         = "Category"
	ColValueMin         = "ValueMin"
	ColValueMax         = "ValueMax"
	ColUnit             = "Unit"
	ColDescription      = "Description"
	ColDataLabel        = "DataLabel"
	ColMinimalTemplate  = "MinimalTemplate"
	ColStandardTemplate = "StandardTemplate"
	ColRichTemplate     = "RichTemplate"
	ColCalculate        = "Calculate"
	ColMissingValue     = "MissingValue"
	ColCompare          = "Compare"
	ColMissingCount     = "MissingCount"
)

// requiredColumns must be present (and non-empty) in every row.
var requiredColumns = []string{
	ColID, ColName, ColCategory, ColValueMin, ColValueMax, ColUnit, ColDescription,
	ColMinimalTemplate, ColStandardTemplate, ColRichTemplate,
}

// Columns returns every column in canonical order.
func Columns() []string {
	return []string{
		ColID, ColName, ColCategory, ColValueMin, ColValueMax, ColUnit, ColDescription,
		ColDataLabel, ColMinimalTemplate, ColStandardTemplate, ColRichTemplate,
		ColCalculate, ColMissingValue, ColCompare, ColMissingCount,
	}
}

// templateColumns maps each level to its template column.
var templateColumns = map[Level]string{
	LevelMinimal:  ColMinimalTemplate,
	LevelStandard: ColStandardTemplate,
	LevelRich:     ColRichTemplate,
}

// variationColumns maps each variation to its compatibility column.
var variationColumns = map[Variation]string{
	VariationCalculate:    ColCalculate,
	VariationMissingValue: ColMissingValue,
	VariationCompare:      ColCompare,
	VariationMissingCount: ColMissingCount,
}

// VariationColumn returns the compatibility column for v.
func VariationColumn(v Variation) string {
	return variationColumns[v]
}

// Placeholders understood by the narrative composer.
const (
	PlaceholderName  = "{name}"
	PlaceholderData  = "{data}"
	PlaceholderCount = "{count}"
	PlaceholderUnit  = "{unit}"
	PlaceholderLabel = "{label}"
)

var (
	placeholderRe    = regexp.MustCompile(`\{[a-z_]+\}`)
	knownPlaceholder = map[string]bool{
		PlaceholderName:  true,
		PlaceholderData:  true,
		PlaceholderCount: true,
		PlaceholderUnit:  true,
		PlaceholderLabel: true,
	}
	idRe = regexp.MustCompile(`^[a-z0-9][a-z0-9_]*$`)
)

const defaultDataLabel = "values"

// Length limits. A template whose expansion, not counting {data}, fits in
// MaxTemplateLength leaves room for the data sentence and instruction within
// MaxTextLength at any difficulty.
const (
	MaxTextLength     = 2000
	MaxTemplateLength = 800
	MaxUnitLength     = 16
	MaxLabelLength    = 40

	// maxActorLength and maxCountLength are the longest expansions assumed
	// for {name} and {count}.
	maxActorLength = 16
	maxCountLength = len("several")
)

// Load parses tabular rows into a Catalog. The first malformed row stops the
// load with *ErrDataFormat.
func Load(rows []Row) (*Catalog, error) {
	if len(rows) == 0 {
		return nil, &ErrDataFormat{Err: errors.New("no context rows")}
	}

	defs := make([]ContextDefinition, 0, len(rows))
	for i, row := range rows {
		d, err := parseRow(row)
		if err != nil {
			var df *ErrDataFormat
			if errors.As(err, &df) {
				df.Row = i + 1
				return nil, df
			}
			return nil, &ErrDataFormat{Row: i + 1, Err: err}
		}
		defs = append(defs, d)
	}

	if err := checkDuplicates(defs); err != nil {
		return nil, err
	}
	return build(defs), nil
}

// New builds a Catalog from in-code definitions, applying the same
// validation as Load.
func New(defs ...ContextDefinition) (*Catalog, error) {
	if len(defs) == 0 {
		return nil, &ErrDataFormat{Err: errors.New("no context definitions")}
	}
	out := make([]ContextDefinition, 0, len(defs))
	for i, d := range defs {
		d = d.clone()
		for level, tmpl := range d.Templates {
			d.Templates[level] = strings.TrimSpace(tmpl)
		}
		if d.DataLabel == "" {
			d.DataLabel = defaultDataLabel
		}
		if err := validateDefinition(d); err != nil {
			var df *ErrDataFormat
			if errors.As(err, &df) {
				df.Row = i + 1
				return nil, df
			}
			return nil, &ErrDataFormat{Row: i + 1, Err: err}
		}
		out = append(out, d)
	}
	if err := checkDuplicates(out); err != nil {
		return nil, err
	}
	return build(out), nil
}

// parseRow converts one row into a validated definition.
func parseRow(row Row) (ContextDefinition, error) {
	for _, col := range requiredColumns {
		if strings.TrimSpace(row[col]) == "" {
			return ContextDefinition{}, &ErrDataFormat{Column: col, Err: errors.New("required column missing or empty")}
		}
	}

	lo, err := parseNumber(row[ColValueMin])
	if err != nil {
		return ContextDefinition{}, &ErrDataFormat{Column: ColValueMin, Err: err}
	}
	hi, err := parseNumber(row[ColValueMax])
	if err != nil {
		return ContextDefinition{}, &ErrDataFormat{Column: ColValueMax, Err: err}
	}

	d := ContextDefinition{
		ID:          strings.TrimSpace(row[ColID]),
		Name:        strings.TrimSpace(row[ColName]),
		Category:    strings.TrimSpace(row[ColCategory]),
		Description: strings.TrimSpace(row[ColDescription]),
		ValueMin:    lo,
		ValueMax:    hi,
		Unit:        strings.TrimSpace(row[ColUnit]),
		DataLabel:   strings.TrimSpace(row[ColDataLabel]),
		Templates:   make(map[Level]string, len(templateColumns)),
	}
	if d.DataLabel == "" {
		d.DataLabel = defaultDataLabel
	}

	for _, v := range AllVariations() {
		col := variationColumns[v]
		ok, err := parseFlag(row[col])
		if err != nil {
			return ContextDefinition{}, &ErrDataFormat{Column: col, Err: err}
		}
		if ok {
			d.Variations = append(d.Variations, v)
		}
	}

	for _, level := range AllLevels() {
		d.Templates[level] = strings.TrimSpace(row[templateColumns[level]])
	}

	if err := validateDefinition(d); err != nil {
		return ContextDefinition{}, err
	}
	return d, nil
}

// validateDefinition checks every ContextDefinition invariant.
func validateDefinition(d ContextDefinition) error {
	if !idRe.MatchString(d.ID) {
		return &ErrDataFormat{Column: ColID, Err: fmt.Errorf("id %q must be lower_snake_case", d.ID)}
	}
	if d.Name == "" {
		return &ErrDataFormat{Column: ColName, Err: errors.New("name is empty")}
	}
	if d.Unit == "" {
		return &ErrDataFormat{Column: ColUnit, Err: errors.New("unit is empty")}
	}
	if err := checkSubstitution(d.Unit, MaxUnitLength); err != nil {
		return &ErrDataFormat{Column: ColUnit, Err: err}
	}
	if err := checkSubstitution(d.DataLabel, MaxLabelLength); err != nil {
		return &ErrDataFormat{Column: ColDataLabel, Err: err}
	}
	if err := CheckRange(d.ValueMin, d.ValueMax); err != nil {
		return &ErrDataFormat{Column: ColValueMax, Err: err}
	}
	if len(d.Variations) == 0 {
		return &ErrDataFormat{Err: errors.New("context supports no variation")}
	}
	for _, v := range d.Variations {
		if !v.Valid() {
			return &ErrDataFormat{Err: fmt.Errorf("unknown variation %q", v)}
		}
	}

	var prev *templateShape
	for _, level := range AllLevels() {
		col := templateColumns[level]
		tmpl, ok := d.Template(level)
		if !ok {
			return &ErrDataFormat{Column: col, Err: fmt.Errorf("missing %s template", level)}
		}
		if err := checkTemplate(tmpl); err != nil {
			return &ErrDataFormat{Column: col, Err: err}
		}
		if n := expandedLength(tmpl, d); n > MaxTemplateLength {
			return &ErrDataFormat{Column: col, Err: fmt.Errorf("%s template expands to %d bytes, limit is %d", level, n, MaxTemplateLength)}
		}
		shape := shapeOf(tmpl)
		if prev != nil && !shape.covers(*prev) {
			return &ErrDataFormat{Column: col, Err: fmt.Errorf("%s template is less detailed than the previous level", level)}
		}
		prev = &shape
	}
	return nil
}

// checkTemplate verifies placeholders: only known ones, {data} exactly once.
func checkTemplate(tmpl string) error {
	for _, p := range placeholderRe.FindAllString(tmpl, -1) {
		if !knownPlaceholder[p] {
			return fmt.Errorf("unknown placeholder %s", p)
		}
	}
	if n := strings.Count(tmpl, PlaceholderData); n != 1 {
		return fmt.Errorf("template must contain %s exactly once, found %d", PlaceholderData, n)
	}
	if rest := placeholderRe.ReplaceAllString(tmpl, ""); strings.ContainsAny(rest, "{}") {
		return errors.New("template has a brace outside a placeholder")
	}
	return nil
}

// checkSubstitution verifies a value substituted into templates.
func checkSubstitution(s string, limit int) error {
	if len(s) > limit {
		return fmt.Errorf("%q is longer than %d bytes", s, limit)
	}
	if strings.ContainsAny(s, "{}") {
		return fmt.Errorf("%q contains a brace", s)
	}
	return nil
}

// expandedLength is the longest rendering of tmpl for d, with {data}
// counted as empty.
func expandedLength(tmpl string, d ContextDefinition) int {
	widths := map[string]int{
		PlaceholderName:  maxActorLength,
		PlaceholderData:  0,
		PlaceholderCount: maxCountLength,
		PlaceholderUnit:  len(d.Unit),
		PlaceholderLabel: len(d.DataLabel),
	}
	n := len(tmpl)
	for _, p := range placeholderRe.FindAllString(tmpl, -1) {
		n += widths[p] - len(p)
	}
	return n
}

// templateShape summarises a template for the level ordering check: the
// literal text length and how often each placeholder occurs. A template
// covering another renders at least as long for any substitution.
type templateShape struct {
	literal int
	counts  map[string]int
}

func shapeOf(tmpl string) templateShape {
	s := templateShape{counts: make(map[string]int)}
	literal := placeholderRe.ReplaceAllStringFunc(tmpl, func(p string) string {
		s.counts[p]++
		return ""
	})
	s.literal = utf8.RuneCountInString(literal)
	return s
}

func (s templateShape) covers(other templateShape) bool {
	if s.literal < other.literal {
		return false
	}
	for p, n := range other.counts {
		if s.counts[p] < n {
			return false
		}
	}
	return true
}

func checkDuplicates(defs []ContextDefinition) error {
	seen := make(map[string]int, len(defs))
	for i, d := range defs {
		if first, ok := seen[d.ID]; ok {
			return &ErrDataFormat{Row: i + 1, Column: ColID, Err: fmt.Errorf("duplicate id %q (first seen in row %d)", d.ID, first)}
		}
		seen[d.ID] = i + 1
	}
	return nil
}

// parseNumber accepts plain decimals with optional thousands separators.
func parseNumber(s string) (float64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	return f, nil
}

// parseFlag reads a compatibility cell. Blank means unsupported.
func parseFlag(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes", "true", "1", "x":
		return true, nil
	case "", "n", "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid compatibility flag %q", s)
	}
}

// Rows converts a definition back into a tabular row.
func Rows(defs ...ContextDefinition) []Row {
	out := make([]Row, 0, len(defs))
	for _, d := range defs {
		row := Row{
			ColID:          d.ID,
			ColName:        d.Name,
			ColCategory:    d.Category,
			ColValueMin:    strconv.FormatFloat(d.ValueMin, 'f', -1, 64),
			ColValueMax:    strconv.FormatFloat(d.ValueMax, 'f', -1, 64),
			ColUnit:        d.Unit,
			ColDescription: d.Description,
			ColDataLabel:   d.DataLabel,
		}
		for level, col := range templateColumns {
			row[col] = d.Templates[level]
		}
		for v, col := range variationColumns {
			if d.Supports(v) {
				row[col] = "Y"
			} else {
				row[col] = "N"
			}
		}
		out = append(out, row)
	}
	return out
}

// clone returns a deep copy so callers cannot mutate catalog state.
func (d ContextDefinition) clone() ContextDefinition {
	d.Variations = slices.Clone(d.Variations)
	d.Templates = maps.Clone(d.Templates)
	return d
}
