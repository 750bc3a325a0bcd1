package snapshot

import (
	_ "embed"
	"encoding/json"
	"time"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/hugo-lorenzo-mato/taskflow/internal/core"
)

//go:embed schema.json
var schemaJSON string

var backupSchema = jsonschema.MustCompileString("taskflow-backup.schema.json", schemaJSON)

// Encode serializes the document for export.
func Encode(doc Document) ([]byte, error) {
	return json.MarshalIndent(doc, "", "  ")
}

// Decode parses and validates a backup document. Malformed input fails
// here, before any state is touched: only a document that passes both the
// JSON parse and the schema check reaches the store. Missing task fields
// receive defaults (priority medium, status pending, category personal,
// recurrence none, empty tags and subtasks).
func Decode(data []byte) (Document, error) {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return Document{}, core.ErrValidation(core.CodeInvalidSnapshot, "not valid JSON").WithCause(err)
	}
	if err := backupSchema.Validate(raw); err != nil {
		return Document{}, core.ErrValidation(core.CodeInvalidSnapshot, "document does not match backup schema").WithCause(err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, core.ErrValidation(core.CodeInvalidSnapshot, "decoding document").WithCause(err)
	}

	for i := range doc.Tasks {
		applyDefaults(&doc.Tasks[i])
	}
	return doc, nil
}

func applyDefaults(t *core.Task) {
	if t.Priority == "" {
		t.Priority = core.PriorityMedium
	}
	if t.Status == "" {
		t.Status = core.TaskStatusPending
	}
	if t.Category == "" {
		t.Category = core.DefaultCategory
	}
	if t.Tags == nil {
		t.Tags = []string{}
	}
	if t.Subtasks == nil {
		t.Subtasks = []core.Subtask{}
	}
	if t.Recurrence == "" {
		t.Recurrence = core.RecurrenceNone
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}
	if t.UpdatedAt.Before(t.CreatedAt) {
		t.UpdatedAt = t.CreatedAt
	}
}
