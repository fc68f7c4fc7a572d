package service

import (
	"context"

	"clubsphere-backend/internal/domain"
)

// Decision is an admin's verdict on a pending entity.
type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
)

type AuthService interface {
	Signup(ctx context.Context, name, email, college, password string) (*domain.User, string, string, error) // user, access, refresh
	Login(ctx context.Context, email, password string) (*domain.User, string, string, error)
	Refresh(ctx context.Context, refreshToken string) (string, string, error)
}

// ClubService is the read side: the public club registry and the admin
// approval queues. Every method answers from the authoritative store, never
// from a cached snapshot, so two admins cannot act on an already-decided
// entity without one of them noticing.
type ClubService interface {
	ListApprovedClubs(ctx context.Context, sess *domain.Session) ([]domain.Club, error)
	GetClub(ctx context.Context, sess *domain.Session, clubID int32) (*domain.Club, error)
	ListMyClubs(ctx context.Context, sess *domain.Session) ([]domain.Club, error)
	ListMyMembershipRequests(ctx context.Context, sess *domain.Session) ([]domain.MembershipRequest, error)
	ListPendingClubs(ctx context.Context, sess *domain.Session) ([]domain.Club, error)
	ListPendingMembershipRequests(ctx context.Context, sess *domain.Session) ([]domain.MembershipRequest, error)
}

// WorkflowService owns every status transition of clubs and membership
// requests. All mutation routes through it so the monotonic
// PENDING -> {APPROVED, REJECTED} rule is enforced in one place.
type WorkflowService interface {
	SubmitClub(ctx context.Context, sess *domain.Session, draft domain.ClubDraft) (*domain.Club, error)
	DecideClub(ctx context.Context, sess *domain.Session, clubID int32, decision Decision) (*domain.Club, error)
	SubmitMembershipRequest(ctx context.Context, sess *domain.Session, clubID int32, message string) (*domain.MembershipRequest, error)
	DecideMembershipRequest(ctx context.Context, sess *domain.Session, requestID int32, decision Decision, reason string) (*domain.MembershipRequest, error)
}

type NotificationService interface {
	List(ctx context.Context, sess *domain.Session) ([]domain.Notification, error)
	MarkAsRead(ctx context.Context, sess *domain.Session, notificationID int32) error
}

type EmailService interface {
	SendClubDecision(ctx context.Context, email, name, clubName string, approved bool) error
	SendMembershipDecision(ctx context.Context, email, name, clubName string, approved bool, reason string) error
	SendPendingReminder(ctx context.Context, email, name string, pendingClubs, pendingRequests int) error
}
