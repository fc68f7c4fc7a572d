package repository

import (
	"context"

	"clubsphere-backend/internal/domain"
)

// Implementations translate storage-level failures into the domain error
// taxonomy: missing rows become domain.ErrNotFound, unique violations become
// domain.ErrConflict, and a decide on a non-pending entity becomes
// domain.ErrInvalidTransition.

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	// ListClubIDs returns the user's membership set.
	ListClubIDs(ctx context.Context, userID int32) ([]int32, error)
	ListByRole(ctx context.Context, role domain.UserRole) ([]domain.User, error)
}

type ClubRepository interface {
	Create(ctx context.Context, club *domain.Club) error
	GetByID(ctx context.Context, id int32) (*domain.Club, error)
	// ListByStatus returns clubs in creation-time order.
	ListByStatus(ctx context.Context, status domain.ClubStatus) ([]domain.Club, error)
	ListByMember(ctx context.Context, userID int32) ([]domain.Club, error)
	ListMemberIDs(ctx context.Context, clubID int32) ([]int32, error)
	// Decide flips a PENDING club to the given terminal status. The status
	// check and the flip are one conditional update, so concurrent decides
	// on the same club serialize and exactly one succeeds. When addCreator
	// is set and the decision is approval, the creator joins the member set
	// in the same transaction.
	Decide(ctx context.Context, clubID int32, status domain.ClubStatus, decidedBy int32, addCreator bool) (*domain.Club, error)
}

type MembershipRequestRepository interface {
	Create(ctx context.Context, req *domain.MembershipRequest) error
	GetByID(ctx context.Context, id int32) (*domain.MembershipRequest, error)
	ListPending(ctx context.Context) ([]domain.MembershipRequest, error)
	ListByRequester(ctx context.Context, userID int32) ([]domain.MembershipRequest, error)
	// CountActive counts PENDING or APPROVED requests for (user, club).
	CountActive(ctx context.Context, userID, clubID int32) (int32, error)
	// Approve marks the request APPROVED and inserts the requester into the
	// club's member set as a single transaction. No partial state is ever
	// visible to readers.
	Approve(ctx context.Context, id, decidedBy int32) (*domain.MembershipRequest, error)
	// Reject marks the request REJECTED with an optional reason. Membership
	// state is untouched.
	Reject(ctx context.Context, id, decidedBy int32, reason string) (*domain.MembershipRequest, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	ListByUser(ctx context.Context, userID int32) ([]domain.Notification, error)
	MarkAsRead(ctx context.Context, id, userID int32) error
}
