package todos

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	apperrors "github.com/arjunms/dailydo/pkg/errors"
)

// MongoStore implements Store on a MongoDB collection.
type MongoStore struct {
	collection *mongo.Collection
}

// NewMongoStore initializes the collection and its indexes: one per owner for
// full listings, a composite (owner, completed) one for status filtering.
// Both carry createdAt descending so list queries read in result order.
func NewMongoStore(db *mongo.Database) *MongoStore {
	collection := db.Collection("todos")

	_, _ = collection.Indexes().CreateMany(context.Background(), []mongo.IndexModel{
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "completed", Value: 1}, {Key: "createdAt", Value: -1}}},
	})

	return &MongoStore{collection: collection}
}

func storeErr(err error) error {
	return fmt.Errorf("%w: %v", apperrors.ErrStoreUnavailable, err)
}

func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: malformed todo id %q", apperrors.ErrInvalidArgument, id)
	}
	return oid, nil
}

func (s *MongoStore) ListByOwner(ctx context.Context, ownerID string) ([]Todo, error) {
	return s.list(ctx, bson.M{"userId": ownerID})
}

func (s *MongoStore) ListByOwnerAndStatus(ctx context.Context, ownerID string, completed bool) ([]Todo, error) {
	return s.list(ctx, bson.M{"userId": ownerID, "completed": completed})
}

func (s *MongoStore) list(ctx context.Context, filter bson.M) ([]Todo, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := s.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, storeErr(err)
	}
	defer cursor.Close(ctx)

	var todos []Todo
	if err := cursor.All(ctx, &todos); err != nil {
		return nil, storeErr(err)
	}

	if todos == nil {
		todos = []Todo{}
	}

	return todos, nil
}

func (s *MongoStore) FindByID(ctx context.Context, id string) (*Todo, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	var todo Todo
	err = s.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&todo)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: todo %s", apperrors.ErrNotFound, id)
		}
		return nil, storeErr(err)
	}

	return &todo, nil
}

func (s *MongoStore) Insert(ctx context.Context, todo *Todo) error {
	todo.Completed = false
	todo.CreatedAt = time.Now()
	todo.UpdatedAt = todo.CreatedAt

	result, err := s.collection.InsertOne(ctx, todo)
	if err != nil {
		return storeErr(err)
	}

	todo.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (s *MongoStore) Patch(ctx context.Context, id string, fields map[string]interface{}) (*Todo, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	set := bson.M{"updatedAt": time.Now()}
	for key, value := range fields {
		set[key] = value
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated Todo
	err = s.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		opts,
	).Decode(&updated)

	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: todo %s", apperrors.ErrNotFound, id)
		}
		return nil, storeErr(err)
	}

	return &updated, nil
}

// ToggleCompleted flips the completed flag in a single server-side update, so
// concurrent toggles against the same record never lose a flip.
func (s *MongoStore) ToggleCompleted(ctx context.Context, id string) (*Todo, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	update := mongo.Pipeline{
		{{Key: "$set", Value: bson.M{
			"completed": bson.M{"$not": "$completed"},
			"updatedAt": "$$NOW",
		}}},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated Todo
	err = s.collection.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: todo %s", apperrors.ErrNotFound, id)
		}
		return nil, storeErr(err)
	}

	return &updated, nil
}

func (s *MongoStore) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}

	result, err := s.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return storeErr(err)
	}

	if result.DeletedCount == 0 {
		return fmt.Errorf("%w: todo %s", apperrors.ErrNotFound, id)
	}

	return nil
}

func (s *MongoStore) CountsByOwner(ctx context.Context, ownerID string) (*Stats, error) {
	total, err := s.collection.CountDocuments(ctx, bson.M{"userId": ownerID})
	if err != nil {
		return nil, storeErr(err)
	}

	completed, err := s.collection.CountDocuments(ctx, bson.M{"userId": ownerID, "completed": true})
	if err != nil {
		return nil, storeErr(err)
	}

	overdue, err := s.collection.CountDocuments(ctx, bson.M{
		"userId":    ownerID,
		"completed": false,
		"dueDate":   bson.M{"$lt": time.Now()},
	})
	if err != nil {
		return nil, storeErr(err)
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"userId": ownerID}}},
		{{Key: "$group", Value: bson.M{"_id": "$priority", "count": bson.M{"$sum": 1}}}},
	}

	cursor, err := s.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, storeErr(err)
	}
	defer cursor.Close(ctx)

	byPriority := map[Priority]int64{}
	for cursor.Next(ctx) {
		var group struct {
			Priority Priority `bson:"_id"`
			Count    int64    `bson:"count"`
		}
		if err := cursor.Decode(&group); err != nil {
			return nil, storeErr(err)
		}
		byPriority[group.Priority] = group.Count
	}
	if err := cursor.Err(); err != nil {
		return nil, storeErr(err)
	}

	return &Stats{
		Total:      total,
		Completed:  completed,
		Pending:    total - completed,
		Overdue:    overdue,
		ByPriority: byPriority,
	}, nil
}
