package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"gymdesk/gym-app/internal/domain"
	"gymdesk/gym-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newAdminFixture() (*mockUserRepo, *mockPlanRepo, *mockEquipmentRepo, *mockFileStorage, AdminService) {
	userRepo := newMockUserRepo()
	planRepo := newMockPlanRepo()
	equipmentRepo := newMockEquipmentRepo()
	fileStorage := &mockFileStorage{}
	svc := NewAdminService(userRepo, planRepo, equipmentRepo, fileStorage)
	return userRepo, planRepo, equipmentRepo, fileStorage, svc
}

func activeMember(planID *primitive.ObjectID) *domain.User {
	return &domain.User{
		Role: domain.RoleMember,
		Membership: domain.Membership{
			Plan:     planID,
			IsActive: true,
		},
	}
}

func TestGetStats_CountsAndRevenue(t *testing.T) {
	userRepo, planRepo, _, _, svc := newAdminFixture()

	basicID := planRepo.add(&domain.Plan{Name: "Basic", Price: 20, DurationMonths: 1})
	proID := planRepo.add(&domain.Plan{Name: "Pro", Price: 30, DurationMonths: 3})

	// 3 members, 2 active (on $20 and $30 plans), 1 trainer.
	userRepo.add(activeMember(&basicID))
	userRepo.add(activeMember(&proID))
	userRepo.add(&domain.User{Role: domain.RoleMember})
	userRepo.add(&domain.User{Role: domain.RoleTrainer})

	stats, err := svc.GetStats(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.Members != 3 {
		t.Errorf("expected 3 members, got %d", stats.Members)
	}
	if stats.Trainers != 1 {
		t.Errorf("expected 1 trainer, got %d", stats.Trainers)
	}
	if stats.ActiveMembers != 2 {
		t.Errorf("expected 2 active members, got %d", stats.ActiveMembers)
	}
	if stats.Revenue != "50.00" {
		t.Errorf("expected revenue %q, got %q", "50.00", stats.Revenue)
	}
}

func TestGetStats_IgnoresNonMemberMembership(t *testing.T) {
	userRepo, planRepo, _, _, svc := newAdminFixture()

	planID := planRepo.add(&domain.Plan{Name: "Gold", Price: 50, DurationMonths: 1})

	// A trainer with stray membership fields must not contribute to revenue
	// or the active-member count.
	userRepo.add(&domain.User{
		Role: domain.RoleTrainer,
		Membership: domain.Membership{
			Plan:     &planID,
			IsActive: true,
		},
	})

	stats, err := svc.GetStats(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.ActiveMembers != 0 {
		t.Errorf("expected 0 active members, got %d", stats.ActiveMembers)
	}
	if stats.Revenue != "0.00" {
		t.Errorf("expected revenue %q, got %q", "0.00", stats.Revenue)
	}
}

func TestGetStats_UnresolvedPlanCountsAsZero(t *testing.T) {
	userRepo, _, _, _, svc := newAdminFixture()

	missing := primitive.NewObjectID()
	userRepo.add(activeMember(&missing))
	userRepo.add(activeMember(nil))

	stats, err := svc.GetStats(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.ActiveMembers != 2 {
		t.Errorf("expected 2 active members, got %d", stats.ActiveMembers)
	}
	if stats.Revenue != "0.00" {
		t.Errorf("expected revenue %q, got %q", "0.00", stats.Revenue)
	}
}

func TestGetMembers_ResolvesPlans(t *testing.T) {
	userRepo, planRepo, _, _, svc := newAdminFixture()

	planID := planRepo.add(&domain.Plan{Name: "Gold", Price: 50, DurationMonths: 1})
	withPlan := userRepo.add(activeMember(&planID))
	userRepo.add(&domain.User{Role: domain.RoleMember})
	userRepo.add(&domain.User{Role: domain.RoleTrainer})

	members, err := svc.GetMembers(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(members) != 2 {
		t.Fatalf("expected 2 members, got %d", len(members))
	}
	for _, m := range members {
		if m.User.Role != domain.RoleMember {
			t.Errorf("expected only members, got role %q", m.User.Role)
		}
		if m.User.ID == withPlan {
			if m.Plan == nil || m.Plan.Name != "Gold" {
				t.Errorf("expected resolved Gold plan, got %+v", m.Plan)
			}
		} else if m.Plan != nil {
			t.Errorf("expected nil plan for member without one, got %+v", m.Plan)
		}
	}
}

func TestUpdateMemberStatus_TogglesFlag(t *testing.T) {
	userRepo, _, _, _, svc := newAdminFixture()

	id := userRepo.add(activeMember(nil))

	user, err := svc.UpdateMemberStatus(context.Background(), id, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Membership.IsActive {
		t.Error("expected membership to be deactivated")
	}
}

func TestUpdateMemberStatus_NotFoundNoWrite(t *testing.T) {
	userRepo, _, _, _, svc := newAdminFixture()

	_, err := svc.UpdateMemberStatus(context.Background(), primitive.NewObjectID(), true)
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if userRepo.writes != 0 {
		t.Errorf("expected no writes, got %d", userRepo.writes)
	}
}

func TestAddEquipment_DefaultsStatus(t *testing.T) {
	_, _, _, _, svc := newAdminFixture()

	created, err := svc.AddEquipment(context.Background(), &domain.Equipment{Name: "Treadmill"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.Status != domain.EquipmentOperational {
		t.Errorf("expected default status %q, got %q", domain.EquipmentOperational, created.Status)
	}
	if created.ID == primitive.NilObjectID {
		t.Error("expected an assigned ID")
	}
}

func TestAddEquipment_RejectsUnknownStatus(t *testing.T) {
	_, _, _, _, svc := newAdminFixture()

	_, err := svc.AddEquipment(context.Background(), &domain.Equipment{Name: "Rower", Status: "Exploded"})
	if !errors.Is(err, ErrInvalidEquipment) {
		t.Fatalf("expected ErrInvalidEquipment, got %v", err)
	}
}

func TestUpdateEquipment_AllowListPatch(t *testing.T) {
	_, _, equipmentRepo, _, svc := newAdminFixture()

	id, _ := equipmentRepo.Create(context.Background(), &domain.Equipment{Name: "Bench"})

	status := domain.EquipmentMaintenance
	due := time.Now().AddDate(0, 1, 0)
	updated, err := svc.UpdateEquipment(context.Background(), id, repository.EquipmentPatch{
		Status:             &status,
		NextMaintenanceDue: &due,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Status != domain.EquipmentMaintenance {
		t.Errorf("expected status %q, got %q", domain.EquipmentMaintenance, updated.Status)
	}
	if updated.Name != "Bench" {
		t.Errorf("expected name untouched, got %q", updated.Name)
	}
	if updated.NextMaintenanceDue == nil || !updated.NextMaintenanceDue.Equal(due) {
		t.Errorf("expected nextMaintenanceDue %v, got %v", due, updated.NextMaintenanceDue)
	}
}

func TestUpdateEquipment_NotFound(t *testing.T) {
	_, _, _, _, svc := newAdminFixture()

	name := "Ghost"
	_, err := svc.UpdateEquipment(context.Background(), primitive.NewObjectID(), repository.EquipmentPatch{Name: &name})
	if !errors.Is(err, ErrEquipmentNotFound) {
		t.Fatalf("expected ErrEquipmentNotFound, got %v", err)
	}
}

func TestCreatePlan_Validation(t *testing.T) {
	_, _, _, _, svc := newAdminFixture()

	if _, err := svc.CreatePlan(context.Background(), &domain.Plan{Name: "Free", Price: -1, DurationMonths: 1}); !errors.Is(err, ErrInvalidPlan) {
		t.Errorf("expected ErrInvalidPlan for negative price, got %v", err)
	}
	if _, err := svc.CreatePlan(context.Background(), &domain.Plan{Name: "Zero", Price: 10, DurationMonths: 0}); !errors.Is(err, ErrInvalidPlan) {
		t.Errorf("expected ErrInvalidPlan for zero duration, got %v", err)
	}

	created, err := svc.CreatePlan(context.Background(), &domain.Plan{Name: "Gold", Price: 50, DurationMonths: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID == primitive.NilObjectID {
		t.Error("expected an assigned ID")
	}
}

func TestEquipmentPhoto_UploadAndDownload(t *testing.T) {
	_, _, equipmentRepo, fileStorage, svc := newAdminFixture()

	id, _ := equipmentRepo.Create(context.Background(), &domain.Equipment{Name: "Squat Rack"})

	grant, err := svc.RequestEquipmentPhotoUpload(context.Background(), id, "image/jpeg")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(grant.ObjectKey, "equipment/"+id.Hex()+"/") {
		t.Errorf("unexpected object key %q", grant.ObjectKey)
	}
	if len(fileStorage.uploads) != 1 {
		t.Fatalf("expected 1 presigned upload, got %d", len(fileStorage.uploads))
	}

	url, err := svc.GetEquipmentPhotoURL(context.Background(), id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(url, grant.ObjectKey) {
		t.Errorf("expected download URL for %q, got %q", grant.ObjectKey, url)
	}
}

func TestEquipmentPhoto_RejectsNonImage(t *testing.T) {
	_, _, equipmentRepo, _, svc := newAdminFixture()

	id, _ := equipmentRepo.Create(context.Background(), &domain.Equipment{Name: "Kettlebell"})

	_, err := svc.RequestEquipmentPhotoUpload(context.Background(), id, "video/mp4")
	if !errors.Is(err, ErrInvalidPhotoType) {
		t.Fatalf("expected ErrInvalidPhotoType, got %v", err)
	}
}

func TestEquipmentPhoto_MissingPhoto(t *testing.T) {
	_, _, equipmentRepo, _, svc := newAdminFixture()

	id, _ := equipmentRepo.Create(context.Background(), &domain.Equipment{Name: "Barbell"})

	_, err := svc.GetEquipmentPhotoURL(context.Background(), id)
	if !errors.Is(err, ErrPhotoNotFound) {
		t.Fatalf("expected ErrPhotoNotFound, got %v", err)
	}
}
