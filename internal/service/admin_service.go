package service

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"gymdesk/gym-app/internal/domain"
	"gymdesk/gym-app/internal/repository"
	"gymdesk/gym-app/internal/storage"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEquipmentNotFound  = errors.New("equipment not found")
	ErrInvalidEquipment   = errors.New("invalid equipment fields")
	ErrInvalidPlan        = errors.New("invalid plan fields")
	ErrPhotoNotFound      = errors.New("equipment has no photo")
	ErrInvalidPhotoType   = errors.New("invalid or missing image content type")
	ErrPhotoURLGeneration = errors.New("failed to generate photo URL")
)

// Stats is the admin dashboard summary. Revenue is the sum of resolved plan
// prices over active memberships, formatted to two decimal places.
type Stats struct {
	Members       int64  `json:"members"`
	Trainers      int64  `json:"trainers"`
	ActiveMembers int    `json:"activeMembers"`
	Revenue       string `json:"revenue"`
}

// MemberDetails pairs a member with their resolved plan (nil if the
// membership references no plan or the plan no longer exists).
type MemberDetails struct {
	User domain.User
	Plan *domain.Plan
}

// PhotoUploadGrant carries a presigned PUT URL and the object key it targets.
type PhotoUploadGrant struct {
	UploadURL string `json:"uploadUrl"`
	ObjectKey string `json:"objectKey"`
}

// AdminService exposes the admin dashboard operations.
type AdminService interface {
	GetStats(ctx context.Context) (*Stats, error)
	GetMembers(ctx context.Context) ([]MemberDetails, error)
	UpdateMemberStatus(ctx context.Context, userID primitive.ObjectID, isActive bool) (*domain.User, error)

	GetEquipment(ctx context.Context) ([]domain.Equipment, error)
	AddEquipment(ctx context.Context, equipment *domain.Equipment) (*domain.Equipment, error)
	UpdateEquipment(ctx context.Context, id primitive.ObjectID, patch repository.EquipmentPatch) (*domain.Equipment, error)

	CreatePlan(ctx context.Context, plan *domain.Plan) (*domain.Plan, error)

	RequestEquipmentPhotoUpload(ctx context.Context, id primitive.ObjectID, contentType string) (*PhotoUploadGrant, error)
	GetEquipmentPhotoURL(ctx context.Context, id primitive.ObjectID) (string, error)
}

// adminService implements the AdminService interface.
type adminService struct {
	userRepo      repository.UserRepository
	planRepo      repository.PlanRepository
	equipmentRepo repository.EquipmentRepository
	fileStorage   storage.FileStorage
}

// NewAdminService creates a new instance of adminService.
func NewAdminService(
	userRepo repository.UserRepository,
	planRepo repository.PlanRepository,
	equipmentRepo repository.EquipmentRepository,
	fileStorage storage.FileStorage,
) AdminService {
	return &adminService{
		userRepo:      userRepo,
		planRepo:      planRepo,
		equipmentRepo: equipmentRepo,
		fileStorage:   fileStorage,
	}
}

// === Dashboard ===

// GetStats counts members and trainers and folds the active members' plan
// prices into an estimated revenue figure. A membership whose plan cannot be
// resolved contributes 0.
func (s *adminService) GetStats(ctx context.Context) (*Stats, error) {
	memberCount, err := s.userRepo.CountByRole(ctx, domain.RoleMember)
	if err != nil {
		return nil, err
	}
	trainerCount, err := s.userRepo.CountByRole(ctx, domain.RoleTrainer)
	if err != nil {
		return nil, err
	}

	activeMembers, err := s.userRepo.FindActiveMembers(ctx)
	if err != nil {
		return nil, err
	}

	var revenue float64
	for _, member := range activeMembers {
		if member.Membership.Plan == nil {
			continue
		}
		plan, err := s.planRepo.GetByID(ctx, *member.Membership.Plan)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				continue // Unresolved plan counts as 0
			}
			return nil, err
		}
		revenue += plan.Price
	}

	return &Stats{
		Members:       memberCount,
		Trainers:      trainerCount,
		ActiveMembers: len(activeMembers),
		Revenue:       fmt.Sprintf("%.2f", revenue),
	}, nil
}

// GetMembers returns every member with their membership plan resolved.
func (s *adminService) GetMembers(ctx context.Context) ([]MemberDetails, error) {
	members, err := s.userRepo.FindByRole(ctx, domain.RoleMember)
	if err != nil {
		return nil, err
	}

	details := make([]MemberDetails, 0, len(members))
	for _, member := range members {
		d := MemberDetails{User: member}
		if member.Membership.Plan != nil {
			plan, err := s.planRepo.GetByID(ctx, *member.Membership.Plan)
			if err == nil {
				d.Plan = plan
			} else if !errors.Is(err, repository.ErrNotFound) {
				return nil, err
			}
		}
		details = append(details, d)
	}
	return details, nil
}

// UpdateMemberStatus toggles a member's membership.isActive flag. There is
// no check that a plan exists before activating.
func (s *adminService) UpdateMemberStatus(ctx context.Context, userID primitive.ObjectID, isActive bool) (*domain.User, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if err := s.userRepo.SetMembershipActive(ctx, userID, isActive); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return s.userRepo.GetByID(ctx, userID)
}

// === Equipment ===

func (s *adminService) GetEquipment(ctx context.Context) ([]domain.Equipment, error) {
	return s.equipmentRepo.GetAll(ctx)
}

// AddEquipment creates a new piece of equipment. Status defaults to
// Operational when omitted.
func (s *adminService) AddEquipment(ctx context.Context, equipment *domain.Equipment) (*domain.Equipment, error) {
	if equipment.Name == "" {
		return nil, ErrInvalidEquipment
	}
	if equipment.Status != "" && !domain.ValidEquipmentStatus(equipment.Status) {
		return nil, ErrInvalidEquipment
	}

	id, err := s.equipmentRepo.Create(ctx, equipment)
	if err != nil {
		return nil, err
	}
	equipment.ID = id
	return equipment, nil
}

// UpdateEquipment applies an allow-listed partial update and returns the
// post-update record.
func (s *adminService) UpdateEquipment(ctx context.Context, id primitive.ObjectID, patch repository.EquipmentPatch) (*domain.Equipment, error) {
	if patch.Status != nil && !domain.ValidEquipmentStatus(*patch.Status) {
		return nil, ErrInvalidEquipment
	}

	updated, err := s.equipmentRepo.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrEquipmentNotFound
		}
		return nil, err
	}
	return updated, nil
}

// === Plans ===

// CreatePlan adds a new membership plan.
func (s *adminService) CreatePlan(ctx context.Context, plan *domain.Plan) (*domain.Plan, error) {
	if plan.Name == "" || plan.Price < 0 || plan.DurationMonths < 1 {
		return nil, ErrInvalidPlan
	}

	id, err := s.planRepo.Create(ctx, plan)
	if err != nil {
		return nil, err
	}
	plan.ID = id
	return plan, nil
}

// === Equipment photos ===

// RequestEquipmentPhotoUpload generates a presigned PUT URL for an equipment
// photo and records the target object key on the equipment document.
func (s *adminService) RequestEquipmentPhotoUpload(ctx context.Context, id primitive.ObjectID, contentType string) (*PhotoUploadGrant, error) {
	if contentType == "" || !strings.HasPrefix(strings.ToLower(contentType), "image/") {
		return nil, ErrInvalidPhotoType
	}

	if _, err := s.equipmentRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrEquipmentNotFound
		}
		return nil, err
	}

	objectKey := path.Join("equipment", id.Hex(), uuid.NewString())

	uploadURL, err := s.fileStorage.GeneratePresignedUploadURL(ctx, objectKey, contentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return nil, ErrPhotoURLGeneration
	}

	if err := s.equipmentRepo.SetPhotoKey(ctx, id, objectKey); err != nil {
		return nil, err
	}

	return &PhotoUploadGrant{UploadURL: uploadURL, ObjectKey: objectKey}, nil
}

// GetEquipmentPhotoURL generates a presigned GET URL for the equipment's
// stored photo.
func (s *adminService) GetEquipmentPhotoURL(ctx context.Context, id primitive.ObjectID) (string, error) {
	equipment, err := s.equipmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrEquipmentNotFound
		}
		return "", err
	}
	if equipment.PhotoKey == "" {
		return "", ErrPhotoNotFound
	}

	downloadURL, err := s.fileStorage.GeneratePresignedDownloadURL(ctx, equipment.PhotoKey, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return "", ErrPhotoURLGeneration
	}
	return downloadURL, nil
}
