package service_test

import (
	"context"

	"clubsphere-backend/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) ListClubIDs(ctx context.Context, userID int32) ([]int32, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]int32), args.Error(1)
}
func (m *MockUserRepo) ListByRole(ctx context.Context, role domain.UserRole) ([]domain.User, error) {
	args := m.Called(ctx, role)
	return args.Get(0).([]domain.User), args.Error(1)
}

// MockClubRepo
type MockClubRepo struct {
	mock.Mock
}

func (m *MockClubRepo) Create(ctx context.Context, club *domain.Club) error {
	args := m.Called(ctx, club)
	return args.Error(0)
}
func (m *MockClubRepo) GetByID(ctx context.Context, id int32) (*domain.Club, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Club), args.Error(1)
}
func (m *MockClubRepo) ListByStatus(ctx context.Context, status domain.ClubStatus) ([]domain.Club, error) {
	args := m.Called(ctx, status)
	return args.Get(0).([]domain.Club), args.Error(1)
}
func (m *MockClubRepo) ListByMember(ctx context.Context, userID int32) ([]domain.Club, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Club), args.Error(1)
}
func (m *MockClubRepo) ListMemberIDs(ctx context.Context, clubID int32) ([]int32, error) {
	args := m.Called(ctx, clubID)
	return args.Get(0).([]int32), args.Error(1)
}
func (m *MockClubRepo) Decide(ctx context.Context, clubID int32, status domain.ClubStatus, decidedBy int32, addCreator bool) (*domain.Club, error) {
	args := m.Called(ctx, clubID, status, decidedBy, addCreator)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Club), args.Error(1)
}

// MockMembershipRequestRepo
type MockMembershipRequestRepo struct {
	mock.Mock
}

func (m *MockMembershipRequestRepo) Create(ctx context.Context, req *domain.MembershipRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}
func (m *MockMembershipRequestRepo) GetByID(ctx context.Context, id int32) (*domain.MembershipRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MembershipRequest), args.Error(1)
}
func (m *MockMembershipRequestRepo) ListPending(ctx context.Context) ([]domain.MembershipRequest, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.MembershipRequest), args.Error(1)
}
func (m *MockMembershipRequestRepo) ListByRequester(ctx context.Context, userID int32) ([]domain.MembershipRequest, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.MembershipRequest), args.Error(1)
}
func (m *MockMembershipRequestRepo) CountActive(ctx context.Context, userID, clubID int32) (int32, error) {
	args := m.Called(ctx, userID, clubID)
	return args.Get(0).(int32), args.Error(1)
}
func (m *MockMembershipRequestRepo) Approve(ctx context.Context, id, decidedBy int32) (*domain.MembershipRequest, error) {
	args := m.Called(ctx, id, decidedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MembershipRequest), args.Error(1)
}
func (m *MockMembershipRequestRepo) Reject(ctx context.Context, id, decidedBy int32, reason string) (*domain.MembershipRequest, error) {
	args := m.Called(ctx, id, decidedBy, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MembershipRequest), args.Error(1)
}

// MockNotificationRepo
type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, note *domain.Notification) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}
func (m *MockNotificationRepo) ListByUser(ctx context.Context, userID int32) ([]domain.Notification, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.Notification), args.Error(1)
}
func (m *MockNotificationRepo) MarkAsRead(ctx context.Context, id, userID int32) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendClubDecision(ctx context.Context, email, name, clubName string, approved bool) error {
	args := m.Called(ctx, email, name, clubName, approved)
	return args.Error(0)
}
func (m *MockEmailService) SendMembershipDecision(ctx context.Context, email, name, clubName string, approved bool, reason string) error {
	args := m.Called(ctx, email, name, clubName, approved, reason)
	return args.Error(0)
}
func (m *MockEmailService) SendPendingReminder(ctx context.Context, email, name string, pendingClubs, pendingRequests int) error {
	args := m.Called(ctx, email, name, pendingClubs, pendingRequests)
	return args.Error(0)
}
