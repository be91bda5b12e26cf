package repositories

import (
	"context"

	"github.com/sony/gobreaker"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/AnuragDayal94/role-based-task-manager/models"
)

// TaskRepo stores tasks in MongoDB, keyed by id with a secondary lookup by
// assignee.
type TaskRepo struct {
	collection *mongo.Collection
	breaker    *gobreaker.CircuitBreaker
}

func NewTaskRepo(collection *mongo.Collection, breaker *gobreaker.CircuitBreaker) *TaskRepo {
	return &TaskRepo{
		collection: collection,
		breaker:    breaker,
	}
}

func (r *TaskRepo) GetByID(ctx context.Context, id primitive.ObjectID) (models.Task, error) {
	result, err := r.breaker.Execute(func() (interface{}, error) {
		var task models.Task
		err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&task)
		return task, err
	})
	if err != nil {
		return models.Task{}, err
	}
	return result.(models.Task), nil
}

func (r *TaskRepo) GetAll(ctx context.Context) ([]models.Task, error) {
	return r.find(ctx, bson.M{})
}

func (r *TaskRepo) GetByAssignee(ctx context.Context, userID primitive.ObjectID) ([]models.Task, error) {
	return r.find(ctx, bson.M{"assignedTo": userID})
}

func (r *TaskRepo) find(ctx context.Context, filter bson.M) ([]models.Task, error) {
	result, err := r.breaker.Execute(func() (interface{}, error) {
		cursor, err := r.collection.Find(ctx, filter)
		if err != nil {
			return nil, err
		}
		defer cursor.Close(ctx)

		var tasks []models.Task
		if err := cursor.All(ctx, &tasks); err != nil {
			return nil, err
		}
		return tasks, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]models.Task), nil
}

func (r *TaskRepo) Insert(ctx context.Context, task *models.Task) error {
	result, err := r.breaker.Execute(func() (interface{}, error) {
		return r.collection.InsertOne(ctx, task)
	})
	if err != nil {
		return err
	}
	task.ID = result.(*mongo.InsertOneResult).InsertedID.(primitive.ObjectID)
	return nil
}

// UpdateStatus sets the status in place. Concurrent updates to the same task
// are last-writer-wins, there is no versioning.
func (r *TaskRepo) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.TaskStatus) error {
	result, err := r.breaker.Execute(func() (interface{}, error) {
		return r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"status": status}})
	})
	if err != nil {
		return err
	}
	if result.(*mongo.UpdateResult).MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *TaskRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.breaker.Execute(func() (interface{}, error) {
		return r.collection.DeleteOne(ctx, bson.M{"_id": id})
	})
	if err != nil {
		return err
	}
	if result.(*mongo.DeleteResult).DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
