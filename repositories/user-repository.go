package repositories

import (
	"context"

	"github.com/sony/gobreaker"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/AnuragDayal94/role-based-task-manager/models"
)

// UserRepo stores user accounts in MongoDB. All calls go through the
// circuit breaker so a struggling database fails fast instead of piling up
// requests.
type UserRepo struct {
	collection *mongo.Collection
	breaker    *gobreaker.CircuitBreaker
}

func NewUserRepo(collection *mongo.Collection, breaker *gobreaker.CircuitBreaker) *UserRepo {
	return &UserRepo{
		collection: collection,
		breaker:    breaker,
	}
}

// EnsureIndexes creates the unique index on email. The check-then-create in
// the user service is racy on its own; this index closes the window.
func (r *UserRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (r *UserRepo) GetByID(ctx context.Context, id primitive.ObjectID) (models.User, error) {
	result, err := r.breaker.Execute(func() (interface{}, error) {
		var user models.User
		err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
		return user, err
	})
	if err != nil {
		return models.User{}, err
	}
	return result.(models.User), nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (models.User, error) {
	result, err := r.breaker.Execute(func() (interface{}, error) {
		var user models.User
		err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
		return user, err
	})
	if err != nil {
		return models.User{}, err
	}
	return result.(models.User), nil
}

func (r *UserRepo) GetAll(ctx context.Context) ([]models.User, error) {
	result, err := r.breaker.Execute(func() (interface{}, error) {
		cursor, err := r.collection.Find(ctx, bson.M{})
		if err != nil {
			return nil, err
		}
		defer cursor.Close(ctx)

		var users []models.User
		if err := cursor.All(ctx, &users); err != nil {
			return nil, err
		}
		return users, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]models.User), nil
}

func (r *UserRepo) Insert(ctx context.Context, user *models.User) error {
	result, err := r.breaker.Execute(func() (interface{}, error) {
		return r.collection.InsertOne(ctx, user)
	})
	if err != nil {
		return err
	}
	user.ID = result.(*mongo.InsertOneResult).InsertedID.(primitive.ObjectID)
	return nil
}

func (r *UserRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
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

func (r *UserRepo) CountByRole(ctx context.Context, role models.Role) (int64, error) {
	result, err := r.breaker.Execute(func() (interface{}, error) {
		return r.collection.CountDocuments(ctx, bson.M{"role": role})
	})
	if err != nil {
		return 0, err
	}
	return result.(int64), nil
}
