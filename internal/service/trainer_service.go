package service

import (
	"context"
	"errors"

	"gymdesk/gym-app/internal/domain"
	"gymdesk/gym-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrClientNotFound = errors.New("client not found")
	ErrInvalidDiet    = errors.New("invalid diet fields")
)

// TrainerService exposes the trainer-facing operations.
type TrainerService interface {
	GetClients(ctx context.Context) ([]domain.User, error)
	AssignDiet(ctx context.Context, trainerID, userID primitive.ObjectID, name string, meals []domain.Meal) (*domain.Diet, error)
	GetClientProgress(ctx context.Context, clientID primitive.ObjectID) ([]domain.Workout, error)
}

// trainerService implements the TrainerService interface.
type trainerService struct {
	userRepo    repository.UserRepository
	dietRepo    repository.DietRepository
	workoutRepo repository.WorkoutRepository
}

// NewTrainerService creates a new instance of trainerService.
func NewTrainerService(
	userRepo repository.UserRepository,
	dietRepo repository.DietRepository,
	workoutRepo repository.WorkoutRepository,
) TrainerService {
	return &trainerService{
		userRepo:    userRepo,
		dietRepo:    dietRepo,
		workoutRepo: workoutRepo,
	}
}

// GetClients returns every member. The password hash never leaves the
// service layer (stripped here, excluded from JSON regardless).
func (s *trainerService) GetClients(ctx context.Context) ([]domain.User, error) {
	clients, err := s.userRepo.FindByRole(ctx, domain.RoleMember)
	if err != nil {
		return nil, err
	}
	for i := range clients {
		clients[i].PasswordHash = ""
	}
	return clients, nil
}

// AssignDiet creates a diet plan for a client, recording the caller as the
// assigning trainer. Name defaults to the weekly plan label.
func (s *trainerService) AssignDiet(ctx context.Context, trainerID, userID primitive.ObjectID, name string, meals []domain.Meal) (*domain.Diet, error) {
	if userID == primitive.NilObjectID {
		return nil, ErrInvalidDiet
	}

	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}

	diet := &domain.Diet{
		UserID:     userID,
		AssignedBy: trainerID,
		Name:       name,
		Meals:      meals,
	}
	if diet.Name == "" {
		diet.Name = domain.DefaultDietName
	}

	id, err := s.dietRepo.Create(ctx, diet)
	if err != nil {
		return nil, err
	}
	diet.ID = id
	return diet, nil
}

// GetClientProgress returns the given client's workouts, most recent first.
// Any authenticated trainer or admin can view any client's history; there is
// no trainer-client ownership check.
func (s *trainerService) GetClientProgress(ctx context.Context, clientID primitive.ObjectID) ([]domain.Workout, error) {
	return s.workoutRepo.GetByUserID(ctx, clientID)
}
