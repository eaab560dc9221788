package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"todo-api/internal/domain"
	apperrors "todo-api/internal/errors"
	"todo-api/internal/services"
	"todo-api/internal/validation"
)

// decodeObject reads a JSON object body keyed by field name. An empty body
// decodes as an empty object.
func decodeObject(r *http.Request) (map[string]json.RawMessage, error) {
	fields := make(map[string]json.RawMessage)

	err := json.NewDecoder(r.Body).Decode(&fields)
	if errors.Is(err, io.EOF) {
		return fields, nil
	}
	if err != nil {
		return nil, apperrors.NewInvalidInputError("body", nil, err.Error())
	}
	if fields == nil {
		// a literal null body
		fields = make(map[string]json.RawMessage)
	}
	return fields, nil
}

func isNull(raw json.RawMessage) bool {
	return string(raw) == "null"
}

// isFalsy reports whether raw is null, false, zero or the empty string.
// A create request with such a priority gets the default one.
func isFalsy(raw json.RawMessage) bool {
	var value interface{}
	if err := json.Unmarshal(raw, &value); err != nil {
		return false
	}
	switch v := value.(type) {
	case nil:
		return true
	case bool:
		return !v
	case float64:
		return v == 0
	case string:
		return v == ""
	default:
		return false
	}
}

// decodeTask reads an optional task field. Null counts as absent on create.
func decodeTask(fields map[string]json.RawMessage, ve *validation.ValidationError) *string {
	raw, ok := fields["task"]
	if !ok || isNull(raw) {
		return nil
	}
	var task string
	if err := json.Unmarshal(raw, &task); err != nil {
		ve.AddInvalidTypeError("task", string(raw), "string")
		return nil
	}
	return &task
}

// decodePriority reads the priority field as a string. JSON null decodes to
// the empty priority. Any other non-string value is kept as its raw JSON
// text, which is never an allowed priority.
func decodePriority(raw json.RawMessage) domain.Priority {
	var priority string
	if err := json.Unmarshal(raw, &priority); err != nil {
		return domain.Priority(raw)
	}
	return domain.Priority(priority)
}

// parseCreateInput extracts the fields of a create request body
func parseCreateInput(r *http.Request) (services.CreateTodoInput, error) {
	var input services.CreateTodoInput

	fields, err := decodeObject(r)
	if err != nil {
		return input, err
	}

	ve := validation.NewValidationError()
	input.Task = decodeTask(fields, ve)
	if ve.HasErrors() {
		return input, apperrors.NewValidationError("invalid todo", ve)
	}

	if raw, ok := fields["priority"]; ok && !isFalsy(raw) {
		priority := decodePriority(raw)
		input.Priority = &priority
	}

	return input, nil
}

// parseTodoPatch extracts the supplied fields of an update request body
func parseTodoPatch(r *http.Request) (domain.TodoPatch, error) {
	var patch domain.TodoPatch

	fields, err := decodeObject(r)
	if err != nil {
		return patch, err
	}

	ve := validation.NewValidationError()
	if raw, ok := fields["task"]; ok {
		var task string
		if err := json.Unmarshal(raw, &task); err != nil || isNull(raw) {
			ve.AddInvalidTypeError("task", string(raw), "string")
		} else {
			patch.Task = &task
		}
	}
	if ve.HasErrors() {
		return patch, apperrors.NewValidationError("invalid todo update", ve)
	}

	if raw, ok := fields["priority"]; ok {
		priority := decodePriority(raw)
		patch.Priority = &priority
	}

	if raw, ok := fields["completed"]; ok {
		var value interface{}
		// Unmarshal into interface{} only fails on invalid JSON, which the
		// decoder has already ruled out
		_ = json.Unmarshal(raw, &value)
		completed := domain.ParseCompletedFlag(value)
		patch.Completed = &completed
	}

	return patch, nil
}

// todoID reads the {id} path variable. A value that is not an integer can
// never match a row and is reported as not found.
func todoID(r *http.Request) (int64, error) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apperrors.NewNotFoundError("todo", raw)
	}
	return id, nil
}
