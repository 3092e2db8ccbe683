package catalog

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCSV_RoundTrip(t *testing.T) {
	want := Default().All()

	var buf bytes.Buffer
	if err := WriteCSV(&buf, want); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	rows, err := ReadCSV(&buf)
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	c, err := Load(rows)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	got := c.All()
	if len(got) != len(want) {
		t.Fatalf("got %d contexts, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].ID != want[i].ID || got[i].ValueMax != want[i].ValueMax ||
			got[i].Templates[LevelRich] != want[i].Templates[LevelRich] ||
			len(got[i].Variations) != len(want[i].Variations) {
			t.Errorf("context %d differs after round trip:\n got  %+v\n want %+v", i, got[i], want[i])
		}
	}
}

func TestReadCSV_Errors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"duplicate header", "ContextID,ContextID\na,b\n"},
		{"too many cells", "ContextID\na,b\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadCSV(strings.NewReader(tt.in))
			var df *ErrDataFormat
			if !errors.As(err, &df) {
				t.Errorf("expected *ErrDataFormat, got %v", err)
			}
		})
	}
}

func TestReadCSV_MissingColumn(t *testing.T) {
	in := "ContextID,ContextName,Category,ValueMin,ValueMax,Unit\n" +
		"tips,Tips,Money,1,5,$\n"
	rows, err := ReadCSV(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	_, err = Load(rows)
	var df *ErrDataFormat
	if !errors.As(err, &df) {
		t.Fatalf("expected *ErrDataFormat, got %v", err)
	}
	if df.Column != ColDescription {
		t.Errorf("Column = %q, want %q", df.Column, ColDescription)
	}
}

const validJSON = `{
  "schema_version": "v1.2.0",
  "contexts": [
    {
      "id": "bike_rides",
      "name": "Bike Rides",
      "category": "Sports",
      "description": "Lengths of weekend bike rides",
      "value_min": 5,
      "value_max": 60,
      "unit": "km",
      "data_label": "ride lengths",
      "variations": ["calculate", "compare"],
      "templates": {
        "minimal": "{name} rides a bike. {data}",
        "standard": "{name} rides a bike every weekend and logs the {label}. {data}",
        "rich": "{name} got a new bike for a birthday and rides it every weekend along the river. The {label} are saved by a cycling app. {data}"
      }
    }
  ]
}`

func TestReadJSON(t *testing.T) {
	rows, err := ReadJSON(strings.NewReader(validJSON))
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	c, err := Load(rows)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	d, err := c.Get("bike_rides")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !d.Supports(VariationCompare) || d.Supports(VariationMissingValue) {
		t.Errorf("Variations = %v", d.Variations)
	}
	if d.DataLabel != "ride lengths" {
		t.Errorf("DataLabel = %q", d.DataLabel)
	}
}

func TestReadJSON_Invalid(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"not json", `{`},
		{"major version", strings.Replace(validJSON, "v1.2.0", "v2.0.0", 1)},
		{"bad version", strings.Replace(validJSON, "v1.2.0", "1.2", 1)},
		{"unknown variation", strings.Replace(validJSON, `"compare"]`, `"median"]`, 1)},
		{"missing unit", strings.Replace(validJSON, `"unit": "km",`, "", 1)},
		{"extra field", strings.Replace(validJSON, `"unit": "km",`, `"unit": "km", "colour": "red",`, 1)},
		{"no contexts", `{"schema_version": "v1.0.0", "contexts": []}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadJSON(strings.NewReader(tt.in))
			var df *ErrDataFormat
			if !errors.As(err, &df) {
				t.Errorf("expected *ErrDataFormat, got %v", err)
			}
		})
	}
}

func TestYAML_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteYAML(&buf, Default().All()); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "schema_version: "+SchemaVersion) {
		t.Errorf("unexpected YAML header: %q", buf.String()[:40])
	}
	rows, err := ReadYAML(&buf)
	if err != nil {
		t.Fatalf("ReadYAML: %v", err)
	}
	c, err := Load(rows)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Len() != Default().Len() {
		t.Errorf("Len = %d, want %d", c.Len(), Default().Len())
	}
}

func TestReadYAML_UnknownField(t *testing.T) {
	in := "schema_version: v1.0.0\ncontexts: []\nextra: true\n"
	var df *ErrDataFormat
	if _, err := ReadYAML(strings.NewReader(in)); !errors.As(err, &df) {
		t.Errorf("expected *ErrDataFormat, got %v", err)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "contexts.json")
	if err := os.WriteFile(jsonPath, []byte(validJSON), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := LoadFile(jsonPath)
	if err != nil {
		t.Fatalf("LoadFile(json): %v", err)
	}
	if !c.Has("bike_rides") {
		t.Error("bike_rides missing")
	}

	csvPath := filepath.Join(dir, "contexts.csv")
	var buf bytes.Buffer
	if err := WriteCSV(&buf, Default().All()); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(csvPath, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(csvPath); err != nil {
		t.Fatalf("LoadFile(csv): %v", err)
	}

	txtPath := filepath.Join(dir, "contexts.txt")
	if err := os.WriteFile(txtPath, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(txtPath); err == nil {
		t.Error("expected error for unsupported extension")
	}
}
