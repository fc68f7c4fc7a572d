package domain

type MembershipRequestStatus string

const (
	MembershipRequestStatusPending  MembershipRequestStatus = "PENDING"
	MembershipRequestStatusApproved MembershipRequestStatus = "APPROVED"
	MembershipRequestStatusRejected MembershipRequestStatus = "REJECTED"
)

type MembershipRequest struct {
	ID              int32                   `json:"id"`
	ClubID          int32                   `json:"club_id"`
	RequesterID     int32                   `json:"requester_id"`
	Message         string                  `json:"message"`
	Status          MembershipRequestStatus `json:"status"`
	RejectionReason string                  `json:"rejection_reason,omitempty"`
	CreatedOn       string                  `json:"created_on"`
	DecidedOn       *string                 `json:"decided_on,omitempty"`
	DecidedBy       *int32                  `json:"decided_by,omitempty"`
}
