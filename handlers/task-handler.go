package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/AnuragDayal94/role-based-task-manager/middleware"
	"github.com/AnuragDayal94/role-based-task-manager/models"
	"github.com/AnuragDayal94/role-based-task-manager/services"
)

type TaskHandler struct {
	taskService *services.TaskService
}

func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

type createTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	AssignedTo  string `json:"assignedTo"`
}

type updateStatusRequest struct {
	Status models.TaskStatus `json:"status"`
}

func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Invalid token")
		return
	}

	var req createTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request data")
		return
	}

	assignedTo := primitive.NilObjectID
	if req.AssignedTo != "" {
		var err error
		assignedTo, err = primitive.ObjectIDFromHex(req.AssignedTo)
		if err != nil {
			respondMessage(w, http.StatusBadRequest, "Invalid user ID format")
			return
		}
	}

	task, err := h.taskService.CreateTask(r.Context(), caller, req.Title, req.Description, assignedTo)
	if err != nil {
		handleServiceError(w, err, "Failed to create task")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Task created successfully",
		"task":    task,
	})
}

// GetTasks lists all tasks for an admin and the caller's own for a user.
func (h *TaskHandler) GetTasks(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Invalid token")
		return
	}

	tasks, err := h.taskService.GetTasks(r.Context(), caller)
	if err != nil {
		handleServiceError(w, err, "Failed to fetch tasks")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count": len(tasks),
		"tasks": tasks,
	})
}

func (h *TaskHandler) UpdateTaskStatus(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Invalid token")
		return
	}

	taskID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid task ID format")
		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request data")
		return
	}

	task, err := h.taskService.UpdateTaskStatus(r.Context(), caller, taskID, req.Status)
	if err != nil {
		handleServiceError(w, err, "Failed to update task")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Task status updated",
		"task":    task,
	})
}

func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		respondMessage(w, http.StatusUnauthorized, "Invalid token")
		return
	}

	taskID, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid task ID format")
		return
	}

	if err := h.taskService.DeleteTask(r.Context(), caller, taskID); err != nil {
		handleServiceError(w, err, "Failed to delete task")
		return
	}

	respondMessage(w, http.StatusOK, "Task deleted successfully")
}
