package derive

import "strings"

// FieldRole classifies a configured frontmatter field name. The role decides
// how the field's value maps to a task status.
type FieldRole int

const (
	// RoleGeneric fields use the configured default status.
	RoleGeneric FieldRole = iota
	// RoleCompletion fields ("complete", "done") hold a boolean.
	RoleCompletion
	// RoleTodo fields ("todo", "task") hold a boolean or a status mark.
	RoleTodo
	// RoleDue fields ("due") always produce an incomplete task.
	RoleDue
)

func (r FieldRole) String() string {
	switch r {
	case RoleCompletion:
		return "completion"
	case RoleTodo:
		return "todo"
	case RoleDue:
		return "due"
	}
	return "generic"
}

// ClassifyField returns the role of a frontmatter field name.
func ClassifyField(name string) FieldRole {
	n := strings.ToLower(name)
	switch {
	case strings.Contains(n, "complete"), strings.Contains(n, "done"):
		return RoleCompletion
	case strings.Contains(n, "todo"), strings.Contains(n, "task"):
		return RoleTodo
	case strings.Contains(n, "due"):
		return RoleDue
	}
	return RoleGeneric
}
