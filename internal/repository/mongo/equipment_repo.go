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

const equipmentCollectionName = "equipment"

// mongoEquipmentRepository implements the repository.EquipmentRepository interface using MongoDB.
type mongoEquipmentRepository struct {
	collection *mongo.Collection
}

// NewMongoEquipmentRepository creates a new instance of mongoEquipmentRepository.
func NewMongoEquipmentRepository(db *mongo.Database) repository.EquipmentRepository {
	return &mongoEquipmentRepository{
		collection: db.Collection(equipmentCollectionName),
	}
}

// Create inserts a new piece of equipment. Status defaults to Operational
// and LastMaintained to now if unset.
func (r *mongoEquipmentRepository) Create(ctx context.Context, equipment *domain.Equipment) (primitive.ObjectID, error) {
	if equipment.Name == "" {
		return primitive.NilObjectID, errors.New("equipment name is required")
	}

	equipment.ID = primitive.NewObjectID()
	if equipment.Status == "" {
		equipment.Status = domain.EquipmentOperational
	}
	if equipment.LastMaintained.IsZero() {
		equipment.LastMaintained = time.Now().UTC()
	}

	result, err := r.collection.InsertOne(ctx, equipment)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}

	return insertedID, nil
}

// GetByID retrieves a piece of equipment by its MongoDB ObjectID.
func (r *mongoEquipmentRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Equipment, error) {
	var equipment domain.Equipment
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&equipment)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &equipment, nil
}

// GetAll retrieves every piece of equipment.
func (r *mongoEquipmentRepository) GetAll(ctx context.Context) ([]domain.Equipment, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var equipment []domain.Equipment
	if err = cursor.All(ctx, &equipment); err != nil {
		return nil, err
	}
	return equipment, nil
}

// Update applies the allow-listed patch fields and returns the post-update
// document, or ErrNotFound if the id does not exist.
func (r *mongoEquipmentRepository) Update(ctx context.Context, id primitive.ObjectID, patch repository.EquipmentPatch) (*domain.Equipment, error) {
	set := bson.M{}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Status != nil {
		set["status"] = *patch.Status
	}
	if patch.LastMaintained != nil {
		set["lastMaintained"] = *patch.LastMaintained
	}
	if patch.NextMaintenanceDue != nil {
		set["nextMaintenanceDue"] = *patch.NextMaintenanceDue
	}
	if len(set) == 0 {
		// Nothing to change; behave like a read.
		return r.GetByID(ctx, id)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated domain.Equipment
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &updated, nil
}

// SetPhotoKey records the S3 object key of the equipment's photo.
func (r *mongoEquipmentRepository) SetPhotoKey(ctx context.Context, id primitive.ObjectID, objectKey string) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"photoKey": objectKey}})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureEquipmentIndexes creates necessary indexes for the equipment collection.
func EnsureEquipmentIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "status", Value: 1}},
			Options: options.Index(),
		},
	}

	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
