package domain

type ClubStatus string

const (
	ClubStatusPending  ClubStatus = "PENDING"
	ClubStatusApproved ClubStatus = "APPROVED"
	ClubStatusRejected ClubStatus = "REJECTED"
)

type Club struct {
	ID          int32      `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Location    string     `json:"location"`
	CreatedBy   int32      `json:"created_by"`
	Status      ClubStatus `json:"status"`
	MemberIDs   []int32    `json:"member_ids,omitempty"` // Populated when needed
	CreatedOn   string     `json:"created_on"`
	DecidedOn   *string    `json:"decided_on,omitempty"`
	DecidedBy   *int32     `json:"decided_by,omitempty"`
}

// ClubDraft carries the user-supplied fields of a club submission.
type ClubDraft struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Location    string `json:"location"`
}
