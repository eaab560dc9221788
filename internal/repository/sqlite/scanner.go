package sqlite

// Scanner interface defines the common scanning behavior for both sql.Row and sql.Rows
type Scanner interface {
	Scan(dest ...interface{}) error
}

// Rows interface defines the common behavior for sql.Rows
type Rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

// ScanTodo scans a single todo from a database row
func ScanTodo(scanner Scanner) (*Todo, error) {
	todo := &Todo{}
	err := scanner.Scan(&todo.ID, &todo.Task, &todo.Completed, &todo.Priority)
	if err != nil {
		return nil, err
	}
	return todo, nil
}

// ScanTodos scans every todo from database rows. The result is never nil.
func ScanTodos(rows Rows) ([]*Todo, error) {
	todos := []*Todo{}
	for rows.Next() {
		todo, err := ScanTodo(rows)
		if err != nil {
			return nil, err
		}
		todos = append(todos, todo)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return todos, nil
}
