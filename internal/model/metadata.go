package model

import "slices"

// TaskMetadata holds the structured fields of a task.
// Zero values mean "absent": 0 for dates and priority, "" for strings, nil for lists.
type TaskMetadata struct {
	// Dates are epoch milliseconds.
	DueDate       int64 `json:"due_date,omitempty"`
	StartDate     int64 `json:"start_date,omitempty"`
	ScheduledDate int64 `json:"scheduled_date,omitempty"`
	CompletedDate int64 `json:"completed_date,omitempty"`
	CancelledDate int64 `json:"cancelled_date,omitempty"`
	CreatedDate   int64 `json:"created_date,omitempty"`

	// Priority ranges 1 (lowest) to 5 (highest).
	Priority int `json:"priority,omitempty"`

	Project string `json:"project,omitempty"`
	Context string `json:"context,omitempty"`
	Area    string `json:"area,omitempty"`

	// Tags are stored without the leading '#', in first-seen order, without duplicates.
	Tags []string `json:"tags,omitempty"`

	Recurrence   string   `json:"recurrence,omitempty"`
	OnCompletion string   `json:"on_completion,omitempty"`
	DependsOn    []string `json:"depends_on,omitempty"`
	ID           string   `json:"id,omitempty"`

	Source      Source `json:"source,omitempty"`
	SourceField string `json:"source_field,omitempty"`
	SourceValue string `json:"source_value,omitempty"`
	SourceTag   string `json:"source_tag,omitempty"`
}

// Field names one encodable metadata field.
type Field int

const (
	FieldTags Field = iota
	FieldProject
	FieldContext
	FieldPriority
	FieldRecurrence
	FieldCreated
	FieldStart
	FieldScheduled
	FieldDue
	FieldCompletion
	FieldCancelled
	FieldOnCompletion
	FieldDependsOn
	FieldID
)

// CanonicalFields lists every encodable field in canonical encoding order.
var CanonicalFields = []Field{
	FieldTags,
	FieldProject,
	FieldContext,
	FieldPriority,
	FieldRecurrence,
	FieldCreated,
	FieldStart,
	FieldScheduled,
	FieldDue,
	FieldCompletion,
	FieldCancelled,
	FieldOnCompletion,
	FieldDependsOn,
	FieldID,
}

var fieldNames = map[Field]string{
	FieldTags:         "tags",
	FieldProject:      "project",
	FieldContext:      "context",
	FieldPriority:     "priority",
	FieldRecurrence:   "recurrence",
	FieldCreated:      "created",
	FieldStart:        "start",
	FieldScheduled:    "scheduled",
	FieldDue:          "due",
	FieldCompletion:   "completion",
	FieldCancelled:    "cancelled",
	FieldOnCompletion: "onCompletion",
	FieldDependsOn:    "dependsOn",
	FieldID:           "id",
}

func (f Field) String() string {
	if name, ok := fieldNames[f]; ok {
		return name
	}
	return "unknown"
}

// Rank returns the field's position in canonical order.
func (f Field) Rank() int {
	return int(f)
}

// ParseField resolves a field name as used on the command line.
func ParseField(name string) (Field, bool) {
	for f, n := range fieldNames {
		if n == name {
			return f, true
		}
	}
	return 0, false
}

// IsDate reports whether the field holds an epoch-millisecond date.
func (f Field) IsDate() bool {
	switch f {
	case FieldCreated, FieldStart, FieldScheduled, FieldDue, FieldCompletion, FieldCancelled:
		return true
	}
	return false
}

// Has reports whether the field is present on m.
func (m TaskMetadata) Has(f Field) bool {
	switch f {
	case FieldTags:
		return len(m.Tags) > 0
	case FieldProject:
		return m.Project != ""
	case FieldContext:
		return m.Context != ""
	case FieldPriority:
		return m.Priority > 0
	case FieldRecurrence:
		return m.Recurrence != ""
	case FieldOnCompletion:
		return m.OnCompletion != ""
	case FieldDependsOn:
		return len(m.DependsOn) > 0
	case FieldID:
		return m.ID != ""
	}
	if f.IsDate() {
		return m.Date(f) != 0
	}
	return false
}

// Date returns the epoch-millisecond value of a date field.
func (m TaskMetadata) Date(f Field) int64 {
	switch f {
	case FieldCreated:
		return m.CreatedDate
	case FieldStart:
		return m.StartDate
	case FieldScheduled:
		return m.ScheduledDate
	case FieldDue:
		return m.DueDate
	case FieldCompletion:
		return m.CompletedDate
	case FieldCancelled:
		return m.CancelledDate
	}
	return 0
}

// SetDate sets a date field. Non-date fields are ignored.
func (m *TaskMetadata) SetDate(f Field, ms int64) {
	switch f {
	case FieldCreated:
		m.CreatedDate = ms
	case FieldStart:
		m.StartDate = ms
	case FieldScheduled:
		m.ScheduledDate = ms
	case FieldDue:
		m.DueDate = ms
	case FieldCompletion:
		m.CompletedDate = ms
	case FieldCancelled:
		m.CancelledDate = ms
	}
}

// Copy returns a deep copy of m.
func (m TaskMetadata) Copy() TaskMetadata {
	out := m
	out.Tags = slices.Clone(m.Tags)
	out.DependsOn = slices.Clone(m.DependsOn)
	return out
}

// Merge returns base with the listed fields taken from patch.
// A field listed but absent in patch is cleared.
func Merge(base, patch TaskMetadata, fields []Field) TaskMetadata {
	out := base.Copy()
	for _, f := range fields {
		switch f {
		case FieldTags:
			out.Tags = slices.Clone(patch.Tags)
		case FieldProject:
			out.Project = patch.Project
		case FieldContext:
			out.Context = patch.Context
		case FieldPriority:
			out.Priority = patch.Priority
		case FieldRecurrence:
			out.Recurrence = patch.Recurrence
		case FieldOnCompletion:
			out.OnCompletion = patch.OnCompletion
		case FieldDependsOn:
			out.DependsOn = slices.Clone(patch.DependsOn)
		case FieldID:
			out.ID = patch.ID
		default:
			if f.IsDate() {
				out.SetDate(f, patch.Date(f))
			}
		}
	}
	return out
}

// AddTag appends tag unless it is already present.
func (m *TaskMetadata) AddTag(tag string) {
	if tag == "" || slices.Contains(m.Tags, tag) {
		return
	}
	m.Tags = append(m.Tags, tag)
}
