package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/AnuragDayal94/role-based-task-manager/models"
)

// In-memory stands-ins for the Mongo repositories. They mimic the contract
// the services rely on: mongo.ErrNoDocuments on a miss, ids assigned on
// insert. failWith forces every call to error, for store-failure paths.

type memUserRepo struct {
	users    []models.User
	failWith error
}

func (r *memUserRepo) GetByID(_ context.Context, id primitive.ObjectID) (models.User, error) {
	if r.failWith != nil {
		return models.User{}, r.failWith
	}
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return models.User{}, mongo.ErrNoDocuments
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (models.User, error) {
	if r.failWith != nil {
		return models.User{}, r.failWith
	}
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return models.User{}, mongo.ErrNoDocuments
}

func (r *memUserRepo) GetAll(_ context.Context) ([]models.User, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	out := make([]models.User, len(r.users))
	copy(out, r.users)
	return out, nil
}

func (r *memUserRepo) Insert(_ context.Context, user *models.User) error {
	if r.failWith != nil {
		return r.failWith
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	r.users = append(r.users, *user)
	return nil
}

func (r *memUserRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if r.failWith != nil {
		return r.failWith
	}
	for i, u := range r.users {
		if u.ID == id {
			r.users = append(r.users[:i], r.users[i+1:]...)
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

func (r *memUserRepo) CountByRole(_ context.Context, role models.Role) (int64, error) {
	if r.failWith != nil {
		return 0, r.failWith
	}
	var count int64
	for _, u := range r.users {
		if u.Role == role {
			count++
		}
	}
	return count, nil
}

type memTaskRepo struct {
	tasks    []models.Task
	failWith error
}

func (r *memTaskRepo) GetByID(_ context.Context, id primitive.ObjectID) (models.Task, error) {
	if r.failWith != nil {
		return models.Task{}, r.failWith
	}
	for _, t := range r.tasks {
		if t.ID == id {
			return t, nil
		}
	}
	return models.Task{}, mongo.ErrNoDocuments
}

func (r *memTaskRepo) GetAll(_ context.Context) ([]models.Task, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	out := make([]models.Task, len(r.tasks))
	copy(out, r.tasks)
	return out, nil
}

func (r *memTaskRepo) GetByAssignee(_ context.Context, userID primitive.ObjectID) ([]models.Task, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	var out []models.Task
	for _, t := range r.tasks {
		if t.AssignedTo == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *memTaskRepo) Insert(_ context.Context, task *models.Task) error {
	if r.failWith != nil {
		return r.failWith
	}
	if task.ID.IsZero() {
		task.ID = primitive.NewObjectID()
	}
	r.tasks = append(r.tasks, *task)
	return nil
}

func (r *memTaskRepo) UpdateStatus(_ context.Context, id primitive.ObjectID, status models.TaskStatus) error {
	if r.failWith != nil {
		return r.failWith
	}
	for i := range r.tasks {
		if r.tasks[i].ID == id {
			r.tasks[i].Status = status
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

func (r *memTaskRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if r.failWith != nil {
		return r.failWith
	}
	for i, t := range r.tasks {
		if t.ID == id {
			r.tasks = append(r.tasks[:i], r.tasks[i+1:]...)
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

var errStoreDown = errors.New("store unavailable")
