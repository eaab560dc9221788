package api

import (
	"net/http"

	gorillahandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"todo-api/internal/services"
)

// NewRouter wires the todo routes, CORS and the request middleware chain
func NewRouter(service services.TodoService, allowedOrigins []string) http.Handler {
	h := NewTodoHandler(service)

	r := mux.NewRouter()
	r.Use(RequestID, Logging)

	// complete-all must be matched before the {id} pattern
	r.HandleFunc("/todos", h.ListTodos).Methods(http.MethodGet)
	r.HandleFunc("/todos", h.CreateTodo).Methods(http.MethodPost)
	r.HandleFunc("/todos/complete-all", h.CompleteAllTodos).Methods(http.MethodPut)
	r.HandleFunc("/todos/{id}", h.UpdateTodo).Methods(http.MethodPut)
	r.HandleFunc("/todos/{id}", h.DeleteTodo).Methods(http.MethodDelete)

	headers := gorillahandlers.AllowedHeaders([]string{"X-Requested-With", "Content-Type", RequestIDHeader})
	methods := gorillahandlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions})
	origins := gorillahandlers.AllowedOrigins(allowedOrigins)

	return Recovery(gorillahandlers.CORS(headers, methods, origins)(r))
}
