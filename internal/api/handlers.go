package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"todo-api/internal/domain"
	apperrors "todo-api/internal/errors"
	"todo-api/internal/logging"
	"todo-api/internal/services"
	"todo-api/internal/validation"
)

// Messages written for outcomes that carry no validation detail.
const (
	MessageNotFound       = "To-Do item not found"
	MessageInvalidPayload = "Invalid request payload"
	MessageUpdated        = "To-Do item updated successfully."
	MessageAllCompleted   = "All to-do items marked as completed."
)

// TodoHandler serves the /todos routes
type TodoHandler struct {
	service services.TodoService
}

// NewTodoHandler creates a handler backed by service
func NewTodoHandler(service services.TodoService) *TodoHandler {
	return &TodoHandler{service: service}
}

type messageResponse struct {
	Message string `json:"message"`
}

// ListTodos handles GET /todos[?completed=true|false]
func (h *TodoHandler) ListTodos(w http.ResponseWriter, r *http.Request) {
	var completed *bool
	if values, ok := r.URL.Query()["completed"]; ok {
		filter := ParseCompletedQuery(values)
		completed = &filter
	}

	todos, err := h.service.ListTodos(r.Context(), completed)
	if err != nil {
		writeError(w, "list todos", err)
		return
	}

	respondWithJSON(w, http.StatusOK, todos)
}

// CreateTodo handles POST /todos
func (h *TodoHandler) CreateTodo(w http.ResponseWriter, r *http.Request) {
	input, err := parseCreateInput(r)
	if err != nil {
		writeError(w, "create todo", err)
		return
	}

	todo, err := h.service.CreateTodo(r.Context(), input)
	if err != nil {
		writeError(w, "create todo", err)
		return
	}

	respondWithJSON(w, http.StatusCreated, todo)
}

// UpdateTodo handles PUT /todos/{id}
func (h *TodoHandler) UpdateTodo(w http.ResponseWriter, r *http.Request) {
	id, err := todoID(r)
	if err != nil {
		writeError(w, "update todo", err)
		return
	}

	patch, err := parseTodoPatch(r)
	if err != nil {
		writeError(w, "update todo", err)
		return
	}

	if err := h.service.UpdateTodo(r.Context(), id, patch); err != nil {
		writeError(w, "update todo", err)
		return
	}

	respondWithJSON(w, http.StatusOK, messageResponse{Message: MessageUpdated})
}

// CompleteAllTodos handles PUT /todos/complete-all
func (h *TodoHandler) CompleteAllTodos(w http.ResponseWriter, r *http.Request) {
	if err := h.service.CompleteAllTodos(r.Context()); err != nil {
		writeError(w, "complete all todos", err)
		return
	}

	respondWithJSON(w, http.StatusOK, messageResponse{Message: MessageAllCompleted})
}

// DeleteTodo handles DELETE /todos/{id}
func (h *TodoHandler) DeleteTodo(w http.ResponseWriter, r *http.Request) {
	id, err := todoID(r)
	if err != nil {
		writeError(w, "delete todo", err)
		return
	}

	if err := h.service.DeleteTodo(r.Context(), id); err != nil {
		writeError(w, "delete todo", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ParseCompletedQuery interprets the completed query parameter. Only the
// first value counts.
func ParseCompletedQuery(values []string) bool {
	if len(values) == 0 {
		return false
	}
	return domain.ParseCompletedFilter(values[0])
}

// respondWithJSON writes payload as a JSON response with the given status
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		logging.Error(err, "encode response")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// writeError answers with a plain-text body. Storage failures carry the
// engine's own message.
func writeError(w http.ResponseWriter, operation string, err error) {
	status := apperrors.HTTPStatus(err)

	var message string
	switch {
	case apperrors.IsErrorType(err, apperrors.ErrorTypeNotFound):
		message = MessageNotFound
	case apperrors.IsErrorType(err, apperrors.ErrorTypeInvalidInput):
		message = MessageInvalidPayload
	case apperrors.IsErrorType(err, apperrors.ErrorTypeValidation):
		if ve, ok := validation.AsValidationError(err); ok {
			message = ve.GetUserFriendlyMessage()
		} else {
			message = apperrors.RawMessage(err)
		}
	default:
		message = apperrors.RawMessage(err)
	}

	if apperrors.ShouldLogError(err) {
		logging.Error(err, fmt.Sprintf("%s [%s]", operation, apperrors.GetErrorCode(err)))
	} else if appErr, ok := apperrors.AsAppError(err); ok {
		logging.Debug("%s rejected (%s): %s %s", operation, appErr.Code, appErr.Message, appErr.Detail())
	}

	http.Error(w, message, status)
}
