package service

import (
	"context"
	"sort"
	"time"

	"gymdesk/gym-app/internal/domain"
	"gymdesk/gym-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory repository fakes shared by the service tests. They mirror the
// Mongo repositories' contracts: sentinel errors, sorting, defaults and the
// (user, day) uniqueness on attendance.

type mockUserRepo struct {
	users  map[primitive.ObjectID]*domain.User
	writes int
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: map[primitive.ObjectID]*domain.User{}}
}

func (m *mockUserRepo) add(user *domain.User) primitive.ObjectID {
	if user.ID == primitive.NilObjectID {
		user.ID = primitive.NewObjectID()
	}
	m.users[user.ID] = user
	return user.ID
}

func (m *mockUserRepo) Create(_ context.Context, user *domain.User) (primitive.ObjectID, error) {
	for _, u := range m.users {
		if u.Email == user.Email {
			return primitive.NilObjectID, repository.ErrConflict
		}
	}
	m.writes++
	stored := *user
	return m.add(&stored), nil
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *mockUserRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (m *mockUserRepo) FindByRole(_ context.Context, role domain.Role) ([]domain.User, error) {
	var out []domain.User
	for _, u := range m.users {
		if u.Role == role {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (m *mockUserRepo) CountByRole(_ context.Context, role domain.Role) (int64, error) {
	var n int64
	for _, u := range m.users {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

func (m *mockUserRepo) FindActiveMembers(_ context.Context) ([]domain.User, error) {
	var out []domain.User
	for _, u := range m.users {
		if u.Role == domain.RoleMember && u.Membership.IsActive {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (m *mockUserRepo) ReplaceMembership(_ context.Context, userID primitive.ObjectID, membership domain.Membership) error {
	u, ok := m.users[userID]
	if !ok {
		return repository.ErrNotFound
	}
	u.Membership = membership
	m.writes++
	return nil
}

func (m *mockUserRepo) SetMembershipActive(_ context.Context, userID primitive.ObjectID, isActive bool) error {
	u, ok := m.users[userID]
	if !ok {
		return repository.ErrNotFound
	}
	u.Membership.IsActive = isActive
	m.writes++
	return nil
}

type mockPlanRepo struct {
	plans map[primitive.ObjectID]*domain.Plan
}

func newMockPlanRepo() *mockPlanRepo {
	return &mockPlanRepo{plans: map[primitive.ObjectID]*domain.Plan{}}
}

func (m *mockPlanRepo) add(plan *domain.Plan) primitive.ObjectID {
	if plan.ID == primitive.NilObjectID {
		plan.ID = primitive.NewObjectID()
	}
	m.plans[plan.ID] = plan
	return plan.ID
}

func (m *mockPlanRepo) Create(_ context.Context, plan *domain.Plan) (primitive.ObjectID, error) {
	plan.CreatedAt = time.Now()
	return m.add(plan), nil
}

func (m *mockPlanRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Plan, error) {
	p, ok := m.plans[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *p
	return &copied, nil
}

func (m *mockPlanRepo) GetAll(_ context.Context) ([]domain.Plan, error) {
	var out []domain.Plan
	for _, p := range m.plans {
		out = append(out, *p)
	}
	return out, nil
}

type mockEquipmentRepo struct {
	equipment map[primitive.ObjectID]*domain.Equipment
}

func newMockEquipmentRepo() *mockEquipmentRepo {
	return &mockEquipmentRepo{equipment: map[primitive.ObjectID]*domain.Equipment{}}
}

func (m *mockEquipmentRepo) Create(_ context.Context, e *domain.Equipment) (primitive.ObjectID, error) {
	e.ID = primitive.NewObjectID()
	if e.Status == "" {
		e.Status = domain.EquipmentOperational
	}
	if e.LastMaintained.IsZero() {
		e.LastMaintained = time.Now()
	}
	m.equipment[e.ID] = e
	return e.ID, nil
}

func (m *mockEquipmentRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Equipment, error) {
	e, ok := m.equipment[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *e
	return &copied, nil
}

func (m *mockEquipmentRepo) GetAll(_ context.Context) ([]domain.Equipment, error) {
	var out []domain.Equipment
	for _, e := range m.equipment {
		out = append(out, *e)
	}
	return out, nil
}

func (m *mockEquipmentRepo) Update(_ context.Context, id primitive.ObjectID, patch repository.EquipmentPatch) (*domain.Equipment, error) {
	e, ok := m.equipment[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if patch.Name != nil {
		e.Name = *patch.Name
	}
	if patch.Status != nil {
		e.Status = *patch.Status
	}
	if patch.LastMaintained != nil {
		e.LastMaintained = *patch.LastMaintained
	}
	if patch.NextMaintenanceDue != nil {
		e.NextMaintenanceDue = patch.NextMaintenanceDue
	}
	copied := *e
	return &copied, nil
}

func (m *mockEquipmentRepo) SetPhotoKey(_ context.Context, id primitive.ObjectID, objectKey string) error {
	e, ok := m.equipment[id]
	if !ok {
		return repository.ErrNotFound
	}
	e.PhotoKey = objectKey
	return nil
}

type mockAttendanceRepo struct {
	records []domain.Attendance
}

func (m *mockAttendanceRepo) Create(_ context.Context, a *domain.Attendance) (primitive.ObjectID, error) {
	for _, existing := range m.records {
		if existing.UserID == a.UserID && existing.Day == a.Day {
			return primitive.NilObjectID, repository.ErrConflict
		}
	}
	a.ID = primitive.NewObjectID()
	if a.Status == "" {
		a.Status = domain.AttendancePresent
	}
	m.records = append(m.records, *a)
	return a.ID, nil
}

func (m *mockAttendanceRepo) FindByUserAndDay(_ context.Context, userID primitive.ObjectID, day string) (*domain.Attendance, error) {
	for i := range m.records {
		if m.records[i].UserID == userID && m.records[i].Day == day {
			copied := m.records[i]
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

type mockWorkoutRepo struct {
	workouts []domain.Workout
}

func (m *mockWorkoutRepo) Create(_ context.Context, w *domain.Workout) (primitive.ObjectID, error) {
	w.ID = primitive.NewObjectID()
	if w.Date.IsZero() {
		w.Date = time.Now()
	}
	m.workouts = append(m.workouts, *w)
	return w.ID, nil
}

func (m *mockWorkoutRepo) GetByUserID(_ context.Context, userID primitive.ObjectID) ([]domain.Workout, error) {
	var out []domain.Workout
	for _, w := range m.workouts {
		if w.UserID == userID {
			out = append(out, w)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

type mockDietRepo struct {
	diets []domain.Diet
}

func (m *mockDietRepo) Create(_ context.Context, d *domain.Diet) (primitive.ObjectID, error) {
	d.ID = primitive.NewObjectID()
	if d.Name == "" {
		d.Name = domain.DefaultDietName
	}
	if d.CreatedAt.IsZero() {
		d.CreatedAt = time.Now()
	}
	m.diets = append(m.diets, *d)
	return d.ID, nil
}

func (m *mockDietRepo) GetByUserID(_ context.Context, userID primitive.ObjectID) ([]domain.Diet, error) {
	var out []domain.Diet
	for _, d := range m.diets {
		if d.UserID == userID {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

type mockFileStorage struct {
	uploads   []string
	downloads []string
	deleted   []string
}

func (m *mockFileStorage) GeneratePresignedUploadURL(_ context.Context, objectKey, contentType string, _ time.Duration) (string, error) {
	m.uploads = append(m.uploads, objectKey)
	return "https://storage.example.com/upload/" + objectKey, nil
}

func (m *mockFileStorage) GeneratePresignedDownloadURL(_ context.Context, objectKey string, _ time.Duration) (string, error) {
	m.downloads = append(m.downloads, objectKey)
	return "https://storage.example.com/download/" + objectKey, nil
}

func (m *mockFileStorage) DeleteObject(_ context.Context, objectKey string) error {
	m.deleted = append(m.deleted, objectKey)
	return nil
}
