package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// eventColumns are shared by every event table: a global sequence for
// cross-table ordering and a UTC timestamp.
func eventColumns() []*schema.Column {
	return []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
	}
}

func eventTable(name string, cols ...*schema.Column) *schema.Table {
	base := eventColumns()
	t := &schema.Table{
		Name:       name,
		Columns:    append(base, cols...),
		PrimaryKey: base[:1],
	}
	t.Indexes = []*schema.Index{
		{Name: name + "_timestamp", Columns: []*schema.Column{base[2]}},
	}
	return t
}

var (
	kvTable = func() *schema.Table {
		key := &schema.Column{Name: "key", Type: field.TypeString, Size: 255}
		return &schema.Table{
			Name: "kv",
			Columns: []*schema.Column{
				key,
				{Name: "value", Type: field.TypeString, Size: 2147483647},
				{Name: "updated_at", Type: field.TypeTime},
			},
			PrimaryKey: []*schema.Column{key},
		}
	}()

	assessmentEventsTable = eventTable("assessment_events",
		&schema.Column{Name: "scope", Type: field.TypeString},
		&schema.Column{Name: "score", Type: field.TypeFloat64},
		&schema.Column{Name: "band", Type: field.TypeString},
		&schema.Column{Name: "answered", Type: field.TypeInt},
		&schema.Column{Name: "total", Type: field.TypeInt},
		&schema.Column{Name: "categories", Type: field.TypeJSON, Nullable: true},
		&schema.Column{Name: "answers", Type: field.TypeJSON, Nullable: true},
	)

	moodEventsTable = eventTable("mood_events",
		&schema.Column{Name: "temperature", Type: field.TypeFloat64},
		&schema.Column{Name: "zone", Type: field.TypeString},
		&schema.Column{Name: "answers", Type: field.TypeJSON, Nullable: true},
	)

	exerciseEventsTable = eventTable("exercise_events",
		&schema.Column{Name: "session_id", Type: field.TypeString},
		&schema.Column{Name: "exercise_id", Type: field.TypeString},
		&schema.Column{Name: "action", Type: field.TypeString},
		&schema.Column{Name: "elapsed_secs", Type: field.TypeInt, Default: 0},
	)

	llmRequestEventsTable = eventTable("llm_request_events",
		&schema.Column{Name: "provider", Type: field.TypeString},
		&schema.Column{Name: "model", Type: field.TypeString},
		&schema.Column{Name: "purpose", Type: field.TypeString},
		&schema.Column{Name: "input_tokens", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "output_tokens", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "latency_ms", Type: field.TypeInt64, Default: 0},
		&schema.Column{Name: "success", Type: field.TypeBool},
		&schema.Column{Name: "error_message", Type: field.TypeString, Default: "", Size: 2147483647},
		&schema.Column{Name: "request_body", Type: field.TypeString, Default: "", Size: 2147483647},
		&schema.Column{Name: "response_body", Type: field.TypeString, Default: "", Size: 2147483647},
	)

	journalEntriesTable = func() *schema.Table {
		id := &schema.Column{Name: "id", Type: field.TypeInt, Increment: true}
		created := &schema.Column{Name: "created_at", Type: field.TypeTime}
		return &schema.Table{
			Name: "journal_entries",
			Columns: []*schema.Column{
				id,
				{Name: "title", Type: field.TypeString},
				{Name: "body", Type: field.TypeString, Size: 2147483647},
				{Name: "mood", Type: field.TypeString, Default: ""},
				created,
				{Name: "updated_at", Type: field.TypeTime},
			},
			PrimaryKey: []*schema.Column{id},
			Indexes: []*schema.Index{
				{Name: "journal_entries_created_at", Columns: []*schema.Column{created}},
			},
		}
	}()

	calendarEventsTable = func() *schema.Table {
		id := &schema.Column{Name: "id", Type: field.TypeInt, Increment: true}
		day := &schema.Column{Name: "day", Type: field.TypeString, Size: 10}
		return &schema.Table{
			Name: "calendar_events",
			Columns: []*schema.Column{
				id,
				day,
				{Name: "time", Type: field.TypeString, Size: 5, Default: ""},
				{Name: "title", Type: field.TypeString},
			},
			PrimaryKey: []*schema.Column{id},
			Indexes: []*schema.Index{
				{Name: "calendar_events_day", Columns: []*schema.Column{day}},
			},
		}
	}()
)

// Tables lists every table the store migrates.
var Tables = []*schema.Table{
	kvTable,
	assessmentEventsTable,
	moodEventsTable,
	exerciseEventsTable,
	llmRequestEventsTable,
	journalEntriesTable,
	calendarEventsTable,
}
