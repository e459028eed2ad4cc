package stores

import (
	"context"
	"errors"

	"github.com/martwain/todobackend/models"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// TodoStore persists to-do items scoped by owning user.
type TodoStore interface {
	Create(ctx context.Context, item *models.TodoItem) error
	FindByID(ctx context.Context, id bson.ObjectID) (*models.TodoItem, error)
	ListByUser(ctx context.Context, userID bson.ObjectID) ([]models.TodoItem, error)
	Update(ctx context.Context, item *models.TodoItem) error
	Delete(ctx context.Context, id bson.ObjectID) error
}

type MongoTodoStore struct {
	col *mongo.Collection
}

func NewMongoTodoStore(col *mongo.Collection) *MongoTodoStore {
	return &MongoTodoStore{col: col}
}

func (s *MongoTodoStore) Create(ctx context.Context, item *models.TodoItem) error {
	res, err := s.col.InsertOne(ctx, item)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(bson.ObjectID); ok {
		item.ID = id
	}
	return nil
}

func (s *MongoTodoStore) FindByID(ctx context.Context, id bson.ObjectID) (*models.TodoItem, error) {
	var item models.TodoItem
	if err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&item); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (s *MongoTodoStore) ListByUser(ctx context.Context, userID bson.ObjectID) ([]models.TodoItem, error) {
	findOpts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := s.col.Find(ctx, bson.M{"userId": userID}, findOpts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := make([]models.TodoItem, 0)
	for cursor.Next(ctx) {
		var item models.TodoItem
		if err := cursor.Decode(&item); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *MongoTodoStore) Update(ctx context.Context, item *models.TodoItem) error {
	res, err := s.col.ReplaceOne(ctx, bson.M{"_id": item.ID}, item)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoTodoStore) Delete(ctx context.Context, id bson.ObjectID) error {
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
