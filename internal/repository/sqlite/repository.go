package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"todo-api/internal/errors"
	"todo-api/internal/repository/sqlite/migrations"

	_ "modernc.org/sqlite"
)

// MemoryPath opens a private in-memory database
const MemoryPath = ":memory:"

// busyTimeout bounds how long a statement waits for another process's lock
const busyTimeout = 5 * time.Second

const todoEntity = "todo"

// Repository defines the interface for database operations
type Repository interface {
	CreateTodo(ctx context.Context, todo *Todo) error
	ListTodos(ctx context.Context, filter TodoFilter) ([]*Todo, error)
	UpdateTodo(ctx context.Context, id int64, changes *TodoChanges) error
	CompleteAllTodos(ctx context.Context) (int64, error)
	DeleteTodo(ctx context.Context, id int64) error

	Close() error
}

// SQLiteRepository implements the Repository interface
type SQLiteRepository struct {
	db *sql.DB
}

// New opens (creating if absent) the database at dbPath and makes sure the
// todos table exists. The pool holds a single connection, so statements
// from concurrent requests queue up instead of failing with SQLITE_BUSY.
func New(dbPath string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", dataSourceName(dbPath))
	if err != nil {
		return nil, errors.NewDatabaseError("open database", err)
	}

	// One connection also keeps :memory: from handing each caller its own
	// empty database
	db.SetMaxOpenConns(1)

	if err := migrations.RunMigrations(context.Background(), db); err != nil {
		db.Close()
		return nil, errors.NewDatabaseError("run migrations", err)
	}

	return &SQLiteRepository{db: db}, nil
}

// dataSourceName adds a busy timeout to file databases so writers in other
// processes, such as a concurrent init-db, are waited for
func dataSourceName(dbPath string) string {
	if dbPath == MemoryPath {
		return dbPath
	}
	return fmt.Sprintf("%s?_pragma=busy_timeout(%d)", dbPath, busyTimeout.Milliseconds())
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// CreateTodo inserts todo and sets its ID from the insert result
func (r *SQLiteRepository) CreateTodo(ctx context.Context, todo *Todo) error {
	query := `INSERT INTO todos (task, priority) VALUES (?, ?)`

	id, err := ExecuteWithLastInsertID(ctx, r.db, query, todo.Task, todo.Priority)
	if err != nil {
		return err
	}

	todo.ID = id
	todo.Completed = 0
	return nil
}

// ListTodos retrieves todos in insertion order, optionally by completion flag
func (r *SQLiteRepository) ListTodos(ctx context.Context, filter TodoFilter) ([]*Todo, error) {
	query := `SELECT id, task, completed, priority FROM todos`
	var args []interface{}

	if filter.Completed != nil {
		query += ` WHERE completed = ?`
		args = append(args, *filter.Completed)
	}
	query += ` ORDER BY id ASC`

	return QueryMultiple(ctx, r.db, query, ScanTodos, "todos", args...)
}

// UpdateTodo applies changes to the todo with the given ID. Nothing matching
// is reported as a not found error.
func (r *SQLiteRepository) UpdateTodo(ctx context.Context, id int64, changes *TodoChanges) error {
	if changes.Len() == 0 {
		return errors.NewInvalidInputError("changes", nil, "no columns to update")
	}

	setClause, args := changes.SetClause()
	query := `UPDATE todos SET ` + setClause + ` WHERE id = ?`
	args = append(args, id)

	return ExecuteWithRowsAffected(ctx, r.db, query, todoEntity, strconv.FormatInt(id, 10), args...)
}

// CompleteAllTodos marks every todo completed and returns how many rows
// the statement touched
func (r *SQLiteRepository) CompleteAllTodos(ctx context.Context) (int64, error) {
	return ExecuteCount(ctx, r.db, `UPDATE todos SET completed = 1`)
}

// DeleteTodo deletes a todo by ID
func (r *SQLiteRepository) DeleteTodo(ctx context.Context, id int64) error {
	query := `DELETE FROM todos WHERE id = ?`
	return ExecuteWithRowsAffected(ctx, r.db, query, todoEntity, strconv.FormatInt(id, 10), id)
}
