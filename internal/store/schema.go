package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

var (
	// StorageEntriesColumns holds the columns for the "storage_entries" table.
	StorageEntriesColumns = []*schema.Column{
		{Name: "key", Type: field.TypeString},
		{Name: "value", Type: field.TypeString, Size: 2147483647},
		{Name: "updated_at", Type: field.TypeInt64},
	}
	// StorageEntriesTable holds the schema information for the "storage_entries" table.
	StorageEntriesTable = &schema.Table{
		Name:       entriesTable,
		Columns:    StorageEntriesColumns,
		PrimaryKey: []*schema.Column{StorageEntriesColumns[0]},
	}

	// AttemptEventsColumns holds the columns for the "attempt_events" table.
	AttemptEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt64, Increment: true},
		{Name: "attempt_id", Type: field.TypeString},
		{Name: "character_id", Type: field.TypeString},
		{Name: "action", Type: field.TypeString},
		{Name: "question_index", Type: field.TypeInt, Default: 0},
		{Name: "correct", Type: field.TypeBool, Default: false},
		{Name: "xp", Type: field.TypeInt, Default: 0},
		{Name: "timestamp", Type: field.TypeInt64},
	}
	// AttemptEventsTable holds the schema information for the "attempt_events" table.
	AttemptEventsTable = &schema.Table{
		Name:       eventsTable,
		Columns:    AttemptEventsColumns,
		PrimaryKey: []*schema.Column{AttemptEventsColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "attemptevent_attempt_id",
				Unique:  false,
				Columns: []*schema.Column{AttemptEventsColumns[1]},
			},
			{
				Name:    "attemptevent_character_id_action",
				Unique:  false,
				Columns: []*schema.Column{AttemptEventsColumns[2], AttemptEventsColumns[3]},
			},
		},
	}

	// Tables holds all the tables in the schema.
	Tables = []*schema.Table{
		StorageEntriesTable,
		AttemptEventsTable,
	}
)
