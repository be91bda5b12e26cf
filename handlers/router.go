package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/AnuragDayal94/role-based-task-manager/middleware"
)

// NewRouter wires every route. Login and the health check are open, the
// /api subrouter behind them requires a valid bearer token.
func NewRouter(userHandler *UserHandler, taskHandler *TaskHandler, authMiddleware *middleware.AuthMiddleware) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("Task manager api is running"))
	}).Methods(http.MethodGet)
	r.HandleFunc("/api/users/login", userHandler.Login).Methods(http.MethodPost)

	protected := r.PathPrefix("/api").Subrouter()
	protected.Use(authMiddleware.Protect)

	protected.HandleFunc("/tasks", taskHandler.CreateTask).Methods(http.MethodPost)
	protected.HandleFunc("/tasks", taskHandler.GetTasks).Methods(http.MethodGet)
	protected.HandleFunc("/tasks/{id}/status", taskHandler.UpdateTaskStatus).Methods(http.MethodPatch)
	protected.HandleFunc("/tasks/{id}", taskHandler.DeleteTask).Methods(http.MethodDelete)

	protected.HandleFunc("/users", userHandler.GetUsers).Methods(http.MethodGet)
	protected.HandleFunc("/users/create-user", userHandler.CreateUser).Methods(http.MethodPost)
	protected.HandleFunc("/users/delete-user/{id}", userHandler.DeleteUser).Methods(http.MethodDelete)
	protected.HandleFunc("/users/profile", userHandler.Profile).Methods(http.MethodGet)

	return r
}
