package repository

import (
	"context"
	"time"

	"gymdesk/gym-app/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for the repository layer
var (
	ErrNotFound     = RepositoryError("not found")
	ErrConflict     = RepositoryError("conflict")
	ErrUpdateFailed = RepositoryError("update failed")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	FindByRole(ctx context.Context, role domain.Role) ([]domain.User, error)
	CountByRole(ctx context.Context, role domain.Role) (int64, error)
	FindActiveMembers(ctx context.Context) ([]domain.User, error)
	ReplaceMembership(ctx context.Context, userID primitive.ObjectID, membership domain.Membership) error
	SetMembershipActive(ctx context.Context, userID primitive.ObjectID, isActive bool) error
}

// PlanRepository defines the interface for interacting with plan data.
type PlanRepository interface {
	Create(ctx context.Context, plan *domain.Plan) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Plan, error)
	GetAll(ctx context.Context) ([]domain.Plan, error)
}

// EquipmentPatch carries the mutable equipment fields for a partial update.
// Nil fields are left unchanged. Callers cannot touch anything outside this
// allow-list.
type EquipmentPatch struct {
	Name               *string
	Status             *domain.EquipmentStatus
	LastMaintained     *time.Time
	NextMaintenanceDue *time.Time
}

// EquipmentRepository defines the interface for interacting with equipment data.
type EquipmentRepository interface {
	Create(ctx context.Context, equipment *domain.Equipment) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Equipment, error)
	GetAll(ctx context.Context) ([]domain.Equipment, error)
	Update(ctx context.Context, id primitive.ObjectID, patch EquipmentPatch) (*domain.Equipment, error)
	SetPhotoKey(ctx context.Context, id primitive.ObjectID, objectKey string) error
}

// AttendanceRepository defines the interface for interacting with check-in data.
type AttendanceRepository interface {
	Create(ctx context.Context, attendance *domain.Attendance) (primitive.ObjectID, error)
	FindByUserAndDay(ctx context.Context, userID primitive.ObjectID, day string) (*domain.Attendance, error)
}

// WorkoutRepository defines the interface for interacting with workout data.
type WorkoutRepository interface {
	Create(ctx context.Context, workout *domain.Workout) (primitive.ObjectID, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.Workout, error) // Sorted by date descending
}

// DietRepository defines the interface for interacting with diet plan data.
type DietRepository interface {
	Create(ctx context.Context, diet *domain.Diet) (primitive.ObjectID, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.Diet, error) // Sorted by createdAt descending
}
