package drafting

import (
	"fmt"
	"strings"

	"github.com/abhisek/mathctx/internal/catalog"
)

const systemPrompt = `You write real-world scenarios for arithmetic mean (average) word problems aimed at students aged 11 to 14.

A scenario is one kind of numeric data a person collects over time, such as tips earned per shift or minutes spent reading each night. You return it as a single JSON object.

Rules:
- id is lower_snake_case and unique.
- value_min and value_max bound every data value a question may use. Pick a realistic range for the unit, with value_max greater than value_min.
- data_label is a plural noun phrase that reads naturally after "the", e.g. "daily step counts".
- variations lists the question kinds that make sense for the data:
  calculate (find the mean), missing_value (find one missing value from the mean),
  compare (compare two people's means), missing_count (find how many values were recorded).
- templates.minimal, templates.standard and templates.rich are three separately written narratives.
  Placeholders: {name} is the person, {data} is where the numbers go, {label} is the data_label,
  {unit} is the unit and {count} is the number of values.
  Every template must contain {data} exactly once and no other placeholders.
  minimal is one short sentence followed by {data}.
  standard adds the setting. rich adds a short backstory.
  Each level must be at least as long as the previous one and use every placeholder the previous one used, at least as often.
- Keep the content suitable for a classroom.`

// buildUserMessage describes the requested scenario and the catalog it joins.
func buildUserMessage(req Request, existing *catalog.Catalog) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Topic: %s\n", req.Topic)
	if req.Category != "" {
		fmt.Fprintf(&b, "Category: %s\n", req.Category)
	}
	if req.Unit != "" {
		fmt.Fprintf(&b, "Unit: %s\n", req.Unit)
	}
	if len(req.Variations) > 0 {
		names := make([]string, len(req.Variations))
		for i, v := range req.Variations {
			names[i] = string(v)
		}
		fmt.Fprintf(&b, "Required variations: %s\n", strings.Join(names, ", "))
	}

	if existing != nil && existing.Len() > 0 {
		fmt.Fprintf(&b, "\nExisting categories: %s\n", strings.Join(existing.Categories(), ", "))
		ids := make([]string, 0, existing.Len())
		for _, d := range existing.All() {
			ids = append(ids, d.ID)
		}
		fmt.Fprintf(&b, "Ids already taken: %s\n", strings.Join(ids, ", "))
		b.WriteString("Reuse an existing category when one fits.\n")
	}

	b.WriteString("\nDraft the scenario.")
	return b.String()
}

// repairMessage asks the model to fix a rejected draft.
func repairMessage(err error) string {
	return fmt.Sprintf("That scenario was rejected: %v\nReturn a corrected scenario as a complete JSON object.", err)
}
