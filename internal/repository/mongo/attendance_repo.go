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

const attendanceCollectionName = "attendance"

// mongoAttendanceRepository implements the repository.AttendanceRepository interface using MongoDB.
type mongoAttendanceRepository struct {
	collection *mongo.Collection
}

// NewMongoAttendanceRepository creates a new instance of mongoAttendanceRepository.
func NewMongoAttendanceRepository(db *mongo.Database) repository.AttendanceRepository {
	return &mongoAttendanceRepository{
		collection: db.Collection(attendanceCollectionName),
	}
}

// Create inserts a new check-in record. The unique (user, day) index makes
// a second same-day insert fail with ErrConflict, so concurrent check-ins
// cannot both succeed.
func (r *mongoAttendanceRepository) Create(ctx context.Context, attendance *domain.Attendance) (primitive.ObjectID, error) {
	if attendance.UserID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("attendance user is required")
	}

	attendance.ID = primitive.NewObjectID()
	now := time.Now()
	if attendance.Date.IsZero() {
		attendance.Date = now
	}
	if attendance.CheckInTime.IsZero() {
		attendance.CheckInTime = now
	}
	if attendance.Day == "" {
		attendance.Day = attendance.Date.Format(domain.AttendanceDayFormat)
	}
	if attendance.Status == "" {
		attendance.Status = domain.AttendancePresent
	}

	result, err := r.collection.InsertOne(ctx, attendance)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, repository.ErrConflict
		}
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}

	return insertedID, nil
}

// FindByUserAndDay retrieves the user's check-in for the given calendar day,
// or ErrNotFound if they have not checked in.
func (r *mongoAttendanceRepository) FindByUserAndDay(ctx context.Context, userID primitive.ObjectID, day string) (*domain.Attendance, error) {
	var attendance domain.Attendance
	filter := bson.M{"user": userID, "day": day}

	err := r.collection.FindOne(ctx, filter).Decode(&attendance)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &attendance, nil
}

// EnsureAttendanceIndexes creates necessary indexes for the attendance
// collection. The unique (user, day) index is the backstop for the
// one-check-in-per-day invariant.
func EnsureAttendanceIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "user", Value: 1},
				{Key: "day", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "date", Value: -1}},
			Options: options.Index(),
		},
	}

	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
