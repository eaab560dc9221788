package validation

import (
	"todo-api/internal/domain"
)

// Messages returned to API clients for rejected input.
const (
	MessageTaskRequired    = "Task is required."
	MessageInvalidPriority = "Invalid priority value."
	MessageNoFields        = "No valid fields to update."
)

// TodoValidator provides validation for Todo-related operations
type TodoValidator struct {
	validator *Validator
}

// NewTodoValidator creates a new todo validator
func NewTodoValidator() *TodoValidator {
	return &TodoValidator{
		validator: NewValidator(),
	}
}

// ValidateTask checks that the task text was supplied and is not empty
func (tv *TodoValidator) ValidateTask(task *string) error {
	if !tv.validator.IsPresent(task) {
		validationError := NewValidationError()
		validationError.AddError("task", ErrorTypeRequired, MessageTaskRequired, nil)
		return validationError
	}
	return nil
}

// ValidatePriority checks that p is one of the allowed priorities
func (tv *TodoValidator) ValidatePriority(p domain.Priority) error {
	if !tv.validator.IsAllowedPriority(p) {
		validationError := NewValidationError()
		validationError.AddError("priority", ErrorTypeInvalidValue, MessageInvalidPriority, string(p))
		return validationError
	}
	return nil
}

// ValidateTodoForCreation validates the fields of a new todo. Priority must
// already have its default applied.
func (tv *TodoValidator) ValidateTodoForCreation(task *string, priority domain.Priority) error {
	if err := tv.ValidateTask(task); err != nil {
		return err
	}
	return tv.ValidatePriority(priority)
}

// ValidatePatch validates a partial update. A supplied priority is checked
// first, then the patch must carry at least one field.
func (tv *TodoValidator) ValidatePatch(patch domain.TodoPatch) error {
	if patch.Priority != nil {
		if err := tv.ValidatePriority(*patch.Priority); err != nil {
			return err
		}
	}

	if patch.IsEmpty() {
		validationError := NewValidationError()
		validationError.AddError("body", ErrorTypeRequired, MessageNoFields, nil)
		return validationError
	}

	return nil
}
