package services

import (
	"context"

	"todo-api/internal/domain"
)

// CreateTodoInput carries the fields of a create request. Nil means the
// field was absent from the request body.
type CreateTodoInput struct {
	Task     *string
	Priority *domain.Priority
}

// TodoService handles the todo lifecycle: validation, persistence and
// mapping between storage rows and domain values
type TodoService interface {
	ListTodos(ctx context.Context, completed *bool) ([]domain.Todo, error)
	CreateTodo(ctx context.Context, input CreateTodoInput) (*domain.Todo, error)
	UpdateTodo(ctx context.Context, id int64, patch domain.TodoPatch) error
	CompleteAllTodos(ctx context.Context) error
	DeleteTodo(ctx context.Context, id int64) error
}
