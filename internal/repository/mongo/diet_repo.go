package mongo

import (
	"context"
	"errors"
	"time"

	"gymdesk/gym-app/internal/domain"
	"gymdesk/gym-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const dietCollectionName = "diets"

// mongoDietRepository implements the repository.DietRepository interface using MongoDB.
type mongoDietRepository struct {
	collection *mongo.Collection
}

// NewMongoDietRepository creates a new instance of mongoDietRepository.
func NewMongoDietRepository(db *mongo.Database) repository.DietRepository {
	return &mongoDietRepository{
		collection: db.Collection(dietCollectionName),
	}
}

// Create inserts a new diet plan. Name defaults to the weekly plan label.
func (r *mongoDietRepository) Create(ctx context.Context, diet *domain.Diet) (primitive.ObjectID, error) {
	if diet.UserID == primitive.NilObjectID || diet.AssignedBy == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("diet user and assignedBy are required")
	}

	diet.ID = primitive.NewObjectID()
	if diet.Name == "" {
		diet.Name = domain.DefaultDietName
	}
	if diet.CreatedAt.IsZero() {
		diet.CreatedAt = time.Now().UTC()
	}

	result, err := r.collection.InsertOne(ctx, diet)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}

	return insertedID, nil
}

// GetByUserID retrieves all diets assigned to a user, newest first.
func (r *mongoDietRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.Diet, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{"user": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var diets []domain.Diet
	if err = cursor.All(ctx, &diets); err != nil {
		return nil, err
	}
	return diets, nil
}

// EnsureDietIndexes creates necessary indexes for the diets collection.
func EnsureDietIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "user", Value: 1},
				{Key: "createdAt", Value: -1},
			},
			Options: options.Index(),
		},
	}

	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
