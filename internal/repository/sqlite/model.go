package sqlite

// Todo mirrors one row of the todos table. Completed keeps the stored 0/1
// integer; conversion to a boolean happens in the domain mapper.
type Todo struct {
	ID        int64
	Task      string
	Completed int64
	Priority  string
}

// TodoFilter restricts ListTodos. A nil Completed lists every row.
type TodoFilter struct {
	Completed *int64
}
