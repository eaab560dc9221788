package cli

import (
	"errors"
	"fmt"

	"todo-api/internal/config"
	apperrors "todo-api/internal/errors"
)

// ErrorHandler turns command failures into messages for the terminal
type ErrorHandler struct{}

// NewErrorHandler creates a new error handler
func NewErrorHandler() *ErrorHandler {
	return &ErrorHandler{}
}

// Handle prefixes err with the failed operation. Storage failures are
// reported with the engine's own message.
func (eh *ErrorHandler) Handle(operation string, err error) error {
	if err == nil {
		return nil
	}

	var configErr *config.ConfigError
	if errors.As(err, &configErr) {
		return fmt.Errorf("invalid configuration: %w", configErr)
	}

	if eh.IsDatabaseError(err) {
		return fmt.Errorf("failed to %s: %s", operation, apperrors.RawMessage(err))
	}

	return fmt.Errorf("failed to %s: %w", operation, err)
}

// IsDatabaseError checks if an error is a database error
func (eh *ErrorHandler) IsDatabaseError(err error) bool {
	return apperrors.IsErrorType(err, apperrors.ErrorTypeDatabase)
}
