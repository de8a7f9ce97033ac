package auth

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

// Repository handles database interactions for the auth feature
type Repository struct {
	collection *mongo.Collection
}

// NewRepository initializes the users collection and its unique indexes
func NewRepository(db *mongo.Database) *Repository {
	collection := db.Collection("users")

	_, _ = collection.Indexes().CreateMany(context.Background(), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "googleId", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true),
		},
		{
			Keys:    bson.D{{Key: "firebaseUid", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true),
		},
	})

	return &Repository{collection: collection}
}

// Create inserts a new user
func (r *Repository) Create(ctx context.Context, user *User) error {
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt

	result, err := r.collection.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: email already registered", apperrors.ErrDuplicate)
		}
		return err
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		user.ID = oid
	}

	return nil
}

// FindByEmail finds a user by email; a missing user is (nil, nil)
func (r *Repository) FindByEmail(ctx context.Context, email string) (*User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

// FindByGoogleID finds a user by their Google subject id
func (r *Repository) FindByGoogleID(ctx context.Context, googleID string) (*User, error) {
	return r.findOne(ctx, bson.M{"googleId": googleID})
}

// FindByFirebaseUID finds a user by their Firebase UID
func (r *Repository) FindByFirebaseUID(ctx context.Context, uid string) (*User, error) {
	return r.findOne(ctx, bson.M{"firebaseUid": uid})
}

// FindByID finds a user by their MongoDB id
func (r *Repository) FindByID(ctx context.Context, userID string) (*User, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: malformed user id", apperrors.ErrInvalidArgument)
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *Repository) findOne(ctx context.Context, filter bson.M) (*User, error) {
	var user User
	err := r.collection.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// Update sets specific fields of a user
func (r *Repository) Update(ctx context.Context, userID string, updates map[string]interface{}) error {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return fmt.Errorf("%w: malformed user id", apperrors.ErrInvalidArgument)
	}

	updates["updatedAt"] = time.Now()

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": updates})
	if err != nil {
		return err
	}

	if result.MatchedCount == 0 {
		return fmt.Errorf("%w: user %s", apperrors.ErrNotFound, userID)
	}

	return nil
}
