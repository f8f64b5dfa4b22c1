package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Table and column definitions in the shape ent's migrate package expects.
// They are kept by hand because the tables are shared with other clients
// of the same database and their names are fixed.

const (
	sessionsTable    = "math_problem_sessions"
	submissionsTable = "math_problem_submissions"
	llmEventsTable   = "llm_request_events"
)

var (
	// SessionsColumns holds the columns for the "math_problem_sessions" table.
	SessionsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString, Size: 36, Unique: true},
		{Name: "problem_text", Type: field.TypeString, Size: 2147483647},
		{Name: "correct_answer", Type: field.TypeFloat64},
		{Name: "created_at", Type: field.TypeTime},
	}
	// SessionsTable holds the schema information for the "math_problem_sessions" table.
	SessionsTable = &schema.Table{
		Name:       sessionsTable,
		Columns:    SessionsColumns,
		PrimaryKey: []*schema.Column{SessionsColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "mathproblemsession_created_at",
				Unique:  false,
				Columns: []*schema.Column{SessionsColumns[3]},
			},
		},
	}

	// SubmissionsColumns holds the columns for the "math_problem_submissions" table.
	SubmissionsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString, Size: 36, Unique: true},
		{Name: "user_answer", Type: field.TypeFloat64},
		{Name: "is_correct", Type: field.TypeBool},
		{Name: "feedback_text", Type: field.TypeString, Size: 2147483647},
		{Name: "created_at", Type: field.TypeTime},
		{Name: "session_id", Type: field.TypeString, Size: 36},
	}
	// SubmissionsTable holds the schema information for the "math_problem_submissions" table.
	SubmissionsTable = &schema.Table{
		Name:       submissionsTable,
		Columns:    SubmissionsColumns,
		PrimaryKey: []*schema.Column{SubmissionsColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "math_problem_submissions_math_problem_sessions_submissions",
				Columns:    []*schema.Column{SubmissionsColumns[5]},
				RefColumns: []*schema.Column{SessionsColumns[0]},
				OnDelete:   schema.Cascade,
			},
		},
		Indexes: []*schema.Index{
			{
				Name:    "mathproblemsubmission_session_id",
				Unique:  false,
				Columns: []*schema.Column{SubmissionsColumns[5]},
			},
		},
	}

	// LLMEventsColumns holds the columns for the "llm_request_events" table.
	LLMEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "provider", Type: field.TypeString},
		{Name: "model", Type: field.TypeString},
		{Name: "purpose", Type: field.TypeString},
		{Name: "input_tokens", Type: field.TypeInt, Default: 0},
		{Name: "output_tokens", Type: field.TypeInt, Default: 0},
		{Name: "latency_ms", Type: field.TypeInt64, Default: 0},
		{Name: "success", Type: field.TypeBool},
		{Name: "error_message", Type: field.TypeString, Size: 2147483647, Default: ""},
		{Name: "request_body", Type: field.TypeString, Size: 2147483647, Default: ""},
		{Name: "response_body", Type: field.TypeString, Size: 2147483647, Default: ""},
	}
	// LLMEventsTable holds the schema information for the "llm_request_events" table.
	LLMEventsTable = &schema.Table{
		Name:       llmEventsTable,
		Columns:    LLMEventsColumns,
		PrimaryKey: []*schema.Column{LLMEventsColumns[0]},
		Indexes: []*schema.Index{
			{
				Name:    "llmrequestevent_timestamp",
				Unique:  false,
				Columns: []*schema.Column{LLMEventsColumns[1]},
			},
			{
				Name:    "llmrequestevent_purpose",
				Unique:  false,
				Columns: []*schema.Column{LLMEventsColumns[4]},
			},
		},
	}

	// Tables holds all the tables in the schema.
	Tables = []*schema.Table{
		SessionsTable,
		SubmissionsTable,
		LLMEventsTable,
	}
)

func init() {
	SubmissionsTable.ForeignKeys[0].RefTable = SessionsTable
}
