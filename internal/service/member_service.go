package service

import (
	"context"
	"errors"
	"time"

	"gymdesk/gym-app/internal/domain"
	"gymdesk/gym-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrPlanNotFound     = errors.New("plan not found")
	ErrAlreadyCheckedIn = errors.New("already checked in today")
	ErrInvalidWorkout   = errors.New("invalid workout fields")
)

// PurchaseResult pairs the updated user with the purchased plan so callers
// get the membership with its plan resolved.
type PurchaseResult struct {
	User *domain.User
	Plan *domain.Plan
}

// MemberService exposes the member-facing operations.
type MemberService interface {
	GetPlans(ctx context.Context) ([]domain.Plan, error)
	PurchasePlan(ctx context.Context, userID, planID primitive.ObjectID) (*PurchaseResult, error)
	MarkAttendance(ctx context.Context, userID primitive.ObjectID) (*domain.Attendance, error)
	LogWorkout(ctx context.Context, userID primitive.ObjectID, exercises []domain.Exercise, durationMinutes int, notes string) (*domain.Workout, error)
	GetWorkouts(ctx context.Context, userID primitive.ObjectID) ([]domain.Workout, error)
	GetDiets(ctx context.Context, userID primitive.ObjectID) ([]domain.Diet, error)
}

// memberService implements the MemberService interface.
type memberService struct {
	userRepo       repository.UserRepository
	planRepo       repository.PlanRepository
	attendanceRepo repository.AttendanceRepository
	workoutRepo    repository.WorkoutRepository
	dietRepo       repository.DietRepository
	now            func() time.Time // Injected for tests
}

// NewMemberService creates a new instance of memberService.
func NewMemberService(
	userRepo repository.UserRepository,
	planRepo repository.PlanRepository,
	attendanceRepo repository.AttendanceRepository,
	workoutRepo repository.WorkoutRepository,
	dietRepo repository.DietRepository,
) MemberService {
	return &memberService{
		userRepo:       userRepo,
		planRepo:       planRepo,
		attendanceRepo: attendanceRepo,
		workoutRepo:    workoutRepo,
		dietRepo:       dietRepo,
		now:            time.Now,
	}
}

// GetPlans returns every membership plan, no filtering.
func (s *memberService) GetPlans(ctx context.Context) ([]domain.Plan, error) {
	return s.planRepo.GetAll(ctx)
}

// PurchasePlan enrolls the caller in a plan. The membership sub-document is
// fully replaced: plan reference, startDate=now, endDate=now+durationMonths
// months, isActive=true. Any prior membership state is discarded.
func (s *memberService) PurchasePlan(ctx context.Context, userID, planID primitive.ObjectID) (*PurchaseResult, error) {
	plan, err := s.planRepo.GetByID(ctx, planID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}

	startDate := s.now()
	endDate := startDate.AddDate(0, plan.DurationMonths, 0)

	membership := domain.Membership{
		Plan:      &plan.ID,
		StartDate: &startDate,
		EndDate:   &endDate,
		IsActive:  true,
	}

	if err := s.userRepo.ReplaceMembership(ctx, userID, membership); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &PurchaseResult{User: user, Plan: plan}, nil
}

// MarkAttendance records today's check-in for the caller. A second check-in
// on the same calendar day fails with ErrAlreadyCheckedIn; the unique
// (user, day) index backs this up under concurrent requests.
func (s *memberService) MarkAttendance(ctx context.Context, userID primitive.ObjectID) (*domain.Attendance, error) {
	now := s.now()
	day := now.Format(domain.AttendanceDayFormat)

	_, err := s.attendanceRepo.FindByUserAndDay(ctx, userID, day)
	if err == nil {
		return nil, ErrAlreadyCheckedIn
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	attendance := &domain.Attendance{
		UserID:      userID,
		Date:        now,
		Day:         day,
		CheckInTime: now,
		Status:      domain.AttendancePresent,
	}

	id, err := s.attendanceRepo.Create(ctx, attendance)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			// Lost the race against a concurrent check-in.
			return nil, ErrAlreadyCheckedIn
		}
		return nil, err
	}
	attendance.ID = id
	return attendance, nil
}

// LogWorkout records a training session verbatim from caller-supplied
// fields. The exercise list shape is not further validated.
func (s *memberService) LogWorkout(ctx context.Context, userID primitive.ObjectID, exercises []domain.Exercise, durationMinutes int, notes string) (*domain.Workout, error) {
	if durationMinutes < 0 {
		return nil, ErrInvalidWorkout
	}

	workout := &domain.Workout{
		UserID:          userID,
		Exercises:       exercises,
		DurationMinutes: durationMinutes,
		Notes:           notes,
		Date:            s.now(),
	}

	id, err := s.workoutRepo.Create(ctx, workout)
	if err != nil {
		return nil, err
	}
	workout.ID = id
	return workout, nil
}

// GetWorkouts returns the caller's workout history, most recent first.
func (s *memberService) GetWorkouts(ctx context.Context, userID primitive.ObjectID) ([]domain.Workout, error) {
	return s.workoutRepo.GetByUserID(ctx, userID)
}

// GetDiets returns the diet plans assigned to the caller, newest first.
func (s *memberService) GetDiets(ctx context.Context, userID primitive.ObjectID) ([]domain.Diet, error) {
	return s.dietRepo.GetByUserID(ctx, userID)
}
