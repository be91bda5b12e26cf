package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/AnuragDayal94/role-based-task-manager/models"
)

// UserRepository is the credential store. Implementations return
// mongo.ErrNoDocuments when a lookup misses.
type UserRepository interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (models.User, error)
	GetByEmail(ctx context.Context, email string) (models.User, error)
	GetAll(ctx context.Context) ([]models.User, error)
	Insert(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	CountByRole(ctx context.Context, role models.Role) (int64, error)
}

// TaskRepository is the task store, keyed by id with a secondary lookup
// by assignee.
type TaskRepository interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (models.Task, error)
	GetAll(ctx context.Context) ([]models.Task, error)
	GetByAssignee(ctx context.Context, userID primitive.ObjectID) ([]models.Task, error)
	Insert(ctx context.Context, task *models.Task) error
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.TaskStatus) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}
