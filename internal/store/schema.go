package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

const (
	contextsTable    = "contexts"
	llmRequestsTable = "llm_request_events"
)

var (
	// ContextsColumns holds the columns of the "contexts" table.
	ContextsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString},
		{Name: "position", Type: field.TypeInt},
		{Name: "name", Type: field.TypeString},
		{Name: "category", Type: field.TypeString},
		{Name: "description", Type: field.TypeString, Size: 2147483647},
		{Name: "value_min", Type: field.TypeFloat64},
		{Name: "value_max", Type: field.TypeFloat64},
		{Name: "unit", Type: field.TypeString, Default: ""},
		{Name: "data_label", Type: field.TypeString, Default: ""},
		{Name: "minimal_template", Type: field.TypeString, Size: 2147483647},
		{Name: "standard_template", Type: field.TypeString, Size: 2147483647},
		{Name: "rich_template", Type: field.TypeString, Size: 2147483647},
		{Name: "variations", Type: field.TypeString, Default: ""},
		{Name: "updated_at", Type: field.TypeTime},
	}
	// ContextsTable holds the schema information for the "contexts" table.
	ContextsTable = &schema.Table{
		Name:       contextsTable,
		Columns:    ContextsColumns,
		PrimaryKey: []*schema.Column{ContextsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "context_category", Unique: false, Columns: []*schema.Column{ContextsColumns[3]}},
		},
	}

	// LLMRequestEventsColumns holds the columns of the "llm_request_events" table.
	LLMRequestEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "provider", Type: field.TypeString},
		{Name: "model", Type: field.TypeString},
		{Name: "purpose", Type: field.TypeString},
		{Name: "input_tokens", Type: field.TypeInt, Default: 0},
		{Name: "output_tokens", Type: field.TypeInt, Default: 0},
		{Name: "latency_ms", Type: field.TypeInt64, Default: 0},
		{Name: "success", Type: field.TypeBool},
		{Name: "error_message", Type: field.TypeString, Default: ""},
		{Name: "request_body", Type: field.TypeString, Size: 2147483647, Default: ""},
		{Name: "response_body", Type: field.TypeString, Size: 2147483647, Default: ""},
	}
	// LLMRequestEventsTable holds the schema information for the "llm_request_events" table.
	LLMRequestEventsTable = &schema.Table{
		Name:       llmRequestsTable,
		Columns:    LLMRequestEventsColumns,
		PrimaryKey: []*schema.Column{LLMRequestEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "llmrequestevent_timestamp", Unique: false, Columns: []*schema.Column{LLMRequestEventsColumns[2]}},
			{Name: "llmrequestevent_purpose", Unique: false, Columns: []*schema.Column{LLMRequestEventsColumns[5]}},
			{Name: "llmrequestevent_success", Unique: false, Columns: []*schema.Column{LLMRequestEventsColumns[9]}},
		},
	}

	// Tables holds all the tables in the schema.
	Tables = []*schema.Table{
		ContextsTable,
		LLMRequestEventsTable,
	}
)
