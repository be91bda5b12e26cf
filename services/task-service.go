package services

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/AnuragDayal94/role-based-task-manager/auth"
	"github.com/AnuragDayal94/role-based-task-manager/logging"
	"github.com/AnuragDayal94/role-based-task-manager/models"
)

type TaskService struct {
	tasks TaskRepository
	users UserRepository
}

func NewTaskService(tasks TaskRepository, users UserRepository) *TaskService {
	return &TaskService{
		tasks: tasks,
		users: users,
	}
}

// CreateTask creates a task assigned to exactly one user. Admin only.
// The assignee is not checked against the user store, a task can be created
// for an id that no longer exists.
func (s *TaskService) CreateTask(ctx context.Context, caller models.User, title, description string, assignedTo primitive.ObjectID) (models.Task, error) {
	if !auth.Allow(caller, auth.ActionCreateTask, primitive.NilObjectID) {
		return models.Task{}, ErrForbidden
	}
	if title == "" || assignedTo.IsZero() {
		return models.Task{}, ErrMissingTaskFields
	}

	task := models.Task{
		Title:       title,
		Description: description,
		Status:      models.StatusPending,
		AssignedTo:  assignedTo,
		CreatedBy:   caller.ID,
	}
	if err := s.tasks.Insert(ctx, &task); err != nil {
		return models.Task{}, fmt.Errorf("failed to create task: %v", err)
	}

	logging.Logger.Infof("Task %s created by %s, assigned to %s", task.ID.Hex(), caller.ID.Hex(), assignedTo.Hex())
	return task, nil
}

// GetTasks returns all tasks for an admin and only the caller's assigned
// tasks for a regular user, each with the assignee and creator resolved.
func (s *TaskService) GetTasks(ctx context.Context, caller models.User) ([]models.TaskDetails, error) {
	var (
		tasks []models.Task
		err   error
	)
	if caller.IsAdmin() {
		tasks, err = s.tasks.GetAll(ctx)
	} else {
		tasks, err = s.tasks.GetByAssignee(ctx, caller.ID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch tasks: %v", err)
	}

	details := make([]models.TaskDetails, 0, len(tasks))
	refs := make(map[primitive.ObjectID]models.UserRef)
	for _, task := range tasks {
		details = append(details, models.TaskDetails{
			ID:          task.ID,
			Title:       task.Title,
			Description: task.Description,
			Status:      task.Status,
			AssignedTo:  s.resolveUser(ctx, task.AssignedTo, refs),
			CreatedBy:   s.resolveUser(ctx, task.CreatedBy, refs),
		})
	}
	return details, nil
}

// resolveUser looks up the name and email behind a task reference. A deleted
// user leaves the reference with just the id.
func (s *TaskService) resolveUser(ctx context.Context, id primitive.ObjectID, cache map[primitive.ObjectID]models.UserRef) models.UserRef {
	if ref, ok := cache[id]; ok {
		return ref
	}
	ref := models.UserRef{ID: id}
	if user, err := s.users.GetByID(ctx, id); err == nil {
		ref.Name = user.Name
		ref.Email = user.Email
	}
	cache[id] = ref
	return ref
}

// UpdateTaskStatus moves a task to any of the three statuses. Allowed for an
// admin or the assigned user. There is no ordering between statuses, a
// completed task may go back to pending.
func (s *TaskService) UpdateTaskStatus(ctx context.Context, caller models.User, taskID primitive.ObjectID, status models.TaskStatus) (models.Task, error) {
	if !status.IsValid() {
		return models.Task{}, ErrInvalidStatus
	}

	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Task{}, ErrTaskNotFound
		}
		return models.Task{}, fmt.Errorf("failed to fetch task: %v", err)
	}

	if !auth.Allow(caller, auth.ActionUpdateTask, task.AssignedTo) {
		return models.Task{}, ErrTaskForbidden
	}

	if err := s.tasks.UpdateStatus(ctx, taskID, status); err != nil {
		return models.Task{}, fmt.Errorf("failed to update task status: %v", err)
	}

	logging.Logger.Infof("Task %s status changed to %s by %s", taskID.Hex(), status, caller.ID.Hex())
	task.Status = status
	return task, nil
}

// DeleteTask removes a task. Admin only.
func (s *TaskService) DeleteTask(ctx context.Context, caller models.User, taskID primitive.ObjectID) error {
	if _, err := s.tasks.GetByID(ctx, taskID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to fetch task: %v", err)
	}

	if !auth.Allow(caller, auth.ActionDeleteTask, primitive.NilObjectID) {
		return ErrForbidden
	}

	if err := s.tasks.Delete(ctx, taskID); err != nil {
		return fmt.Errorf("failed to delete task: %v", err)
	}
	logging.Logger.Infof("Task %s deleted by %s", taskID.Hex(), caller.ID.Hex())
	return nil
}
