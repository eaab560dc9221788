package services

import (
	"context"

	"todo-api/internal/domain"
	"todo-api/internal/errors"
	"todo-api/internal/logging"
	"todo-api/internal/repository/sqlite"
	"todo-api/internal/validation"
)

// todoServiceImpl implements the TodoService interface
type todoServiceImpl struct {
	repo          sqlite.Repository
	mapper        *domain.Mapper
	todoValidator *validation.TodoValidator
}

// NewTodoService creates a new TodoService backed by repo
func NewTodoService(repo sqlite.Repository) TodoService {
	return &todoServiceImpl{
		repo:          repo,
		mapper:        domain.NewMapper(),
		todoValidator: validation.NewTodoValidator(),
	}
}

// ListTodos returns every todo, or only those whose completed flag matches
func (s *todoServiceImpl) ListTodos(ctx context.Context, completed *bool) ([]domain.Todo, error) {
	rows, err := s.repo.ListTodos(ctx, s.mapper.Todo.ToFilter(completed))
	if err != nil {
		return nil, err
	}
	return s.mapper.Todo.FromDatabaseSlice(rows), nil
}

// CreateTodo validates input and stores a new incomplete todo
func (s *todoServiceImpl) CreateTodo(ctx context.Context, input CreateTodoInput) (*domain.Todo, error) {
	var priority domain.Priority
	if input.Priority != nil {
		priority = *input.Priority
	}
	if priority == "" {
		priority = domain.DefaultPriority
	}

	if err := s.todoValidator.ValidateTodoForCreation(input.Task, priority); err != nil {
		return nil, errors.NewValidationError("invalid todo", err)
	}

	row := s.mapper.Todo.ToDatabase(domain.NewTodo(*input.Task, priority))
	if err := s.repo.CreateTodo(ctx, &row); err != nil {
		return nil, err
	}

	logging.Debug("created todo %d with priority %s", row.ID, row.Priority)
	todo := s.mapper.Todo.FromDatabase(row)
	return &todo, nil
}

// UpdateTodo applies the supplied fields of patch to the todo with id
func (s *todoServiceImpl) UpdateTodo(ctx context.Context, id int64, patch domain.TodoPatch) error {
	if err := s.todoValidator.ValidatePatch(patch); err != nil {
		return errors.NewValidationError("invalid todo update", err)
	}

	changes := s.mapper.Todo.ToChanges(patch)
	logging.Debug("updating todo %d columns %v", id, changes.Columns())
	return s.repo.UpdateTodo(ctx, id, changes)
}

// CompleteAllTodos marks every todo completed
func (s *todoServiceImpl) CompleteAllTodos(ctx context.Context) error {
	count, err := s.repo.CompleteAllTodos(ctx)
	if err != nil {
		return err
	}
	logging.Debug("marked %d todos completed", count)
	return nil
}

// DeleteTodo removes the todo with id
func (s *todoServiceImpl) DeleteTodo(ctx context.Context, id int64) error {
	return s.repo.DeleteTodo(ctx, id)
}
