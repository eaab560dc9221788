package domain

import (
	"todo-api/internal/repository/sqlite"
)

// TodoMapper handles conversion between domain and database Todo models.
type TodoMapper struct{}

// NewTodoMapper creates a new TodoMapper instance.
func NewTodoMapper() *TodoMapper {
	return &TodoMapper{}
}

// ToDatabase converts a domain Todo to a database Todo.
func (m *TodoMapper) ToDatabase(todo Todo) sqlite.Todo {
	return sqlite.Todo{
		ID:        todo.ID,
		Task:      todo.Task,
		Completed: BoolToFlag(todo.Completed),
		Priority:  string(todo.Priority),
	}
}

// FromDatabase converts a database Todo to a domain Todo.
func (m *TodoMapper) FromDatabase(row sqlite.Todo) Todo {
	return Todo{
		ID:        row.ID,
		Task:      row.Task,
		Completed: row.Completed == 1,
		Priority:  Priority(row.Priority),
	}
}

// FromDatabaseSlice converts database rows to domain Todos. The result is
// never nil so it encodes as an empty JSON array.
func (m *TodoMapper) FromDatabaseSlice(rows []*sqlite.Todo) []Todo {
	todos := make([]Todo, 0, len(rows))
	for _, row := range rows {
		todos = append(todos, m.FromDatabase(*row))
	}
	return todos
}

// ToChanges renders a patch as the column changes the repository applies.
func (m *TodoMapper) ToChanges(patch TodoPatch) *sqlite.TodoChanges {
	changes := sqlite.NewTodoChanges()
	if patch.Task != nil {
		changes.SetTask(*patch.Task)
	}
	if patch.Priority != nil {
		changes.SetPriority(string(*patch.Priority))
	}
	if patch.Completed != nil {
		changes.SetCompleted(BoolToFlag(*patch.Completed))
	}
	return changes
}

// ToFilter converts an optional completed flag to a repository filter.
func (m *TodoMapper) ToFilter(completed *bool) sqlite.TodoFilter {
	if completed == nil {
		return sqlite.TodoFilter{}
	}
	flag := BoolToFlag(*completed)
	return sqlite.TodoFilter{Completed: &flag}
}

// BoolToFlag converts a boolean to the 0/1 integer stored in the database.
func BoolToFlag(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

// Mapper provides access to all domain mappers.
type Mapper struct {
	Todo *TodoMapper
}

// NewMapper creates a new Mapper with all domain mappers.
func NewMapper() *Mapper {
	return &Mapper{
		Todo: NewTodoMapper(),
	}
}
