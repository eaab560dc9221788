package domain

// Todo represents a to-do item in the domain model.
// Completed is a real boolean here; the 0/1 storage form stays in the
// repository.
type Todo struct {
	ID        int64    `json:"id"`
	Task      string   `json:"task"`
	Completed bool     `json:"completed"`
	Priority  Priority `json:"priority"`
}

// NewTodo creates an incomplete Todo. An empty priority becomes the default.
func NewTodo(task string, priority Priority) Todo {
	if priority == "" {
		priority = DefaultPriority
	}
	return Todo{
		Task:     task,
		Priority: priority,
	}
}

// String returns the task text for display purposes.
func (t Todo) String() string {
	return t.Task
}

// TodoPatch carries the optional fields of a partial update. A nil field was
// not supplied by the caller.
type TodoPatch struct {
	Task      *string
	Priority  *Priority
	Completed *bool
}

// IsEmpty reports whether no field was supplied.
func (p TodoPatch) IsEmpty() bool {
	return p.Task == nil && p.Priority == nil && p.Completed == nil
}
