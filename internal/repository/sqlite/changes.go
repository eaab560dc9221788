package sqlite

import "strings"

// Columns that an update may touch, in the order they are rendered.
const (
	ColumnTask      = "task"
	ColumnPriority  = "priority"
	ColumnCompleted = "completed"
)

var updatableColumns = []string{ColumnTask, ColumnPriority, ColumnCompleted}

// TodoChanges collects the new value of each column a partial update sets.
// Rendering walks a fixed column order, so the same set of changes always
// produces the same statement.
type TodoChanges struct {
	values map[string]interface{}
}

// NewTodoChanges returns an empty change set
func NewTodoChanges() *TodoChanges {
	return &TodoChanges{values: make(map[string]interface{})}
}

// SetTask records a new task text
func (c *TodoChanges) SetTask(task string) *TodoChanges {
	c.values[ColumnTask] = task
	return c
}

// SetPriority records a new priority
func (c *TodoChanges) SetPriority(priority string) *TodoChanges {
	c.values[ColumnPriority] = priority
	return c
}

// SetCompleted records the new 0/1 completion flag
func (c *TodoChanges) SetCompleted(completed int64) *TodoChanges {
	c.values[ColumnCompleted] = completed
	return c
}

// Len returns the number of columns that will be updated
func (c *TodoChanges) Len() int {
	if c == nil {
		return 0
	}
	return len(c.values)
}

// Columns returns the columns set, in render order
func (c *TodoChanges) Columns() []string {
	var columns []string
	for _, column := range updatableColumns {
		if _, ok := c.values[column]; ok {
			columns = append(columns, column)
		}
	}
	return columns
}

// Value returns the value recorded for column
func (c *TodoChanges) Value(column string) (interface{}, bool) {
	v, ok := c.values[column]
	return v, ok
}

// SetClause renders the assignments ("task = ?, completed = ?") and their
// arguments in matching order.
func (c *TodoChanges) SetClause() (string, []interface{}) {
	columns := c.Columns()
	assignments := make([]string, 0, len(columns))
	args := make([]interface{}, 0, len(columns))
	for _, column := range columns {
		assignments = append(assignments, column+" = ?")
		args = append(args, c.values[column])
	}
	return strings.Join(assignments, ", "), args
}
