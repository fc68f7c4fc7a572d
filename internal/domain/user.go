package domain

type UserRole string

const (
	UserRoleMember    UserRole = "member"
	UserRoleClubAdmin UserRole = "clubadmin"
	UserRoleAdmin     UserRole = "admin"
)

type User struct {
	ID           int32    `json:"id"`
	Name         string   `json:"userName"`
	Email        string   `json:"email"`
	College      string   `json:"college"`
	PasswordHash string   `json:"-"`
	Role         UserRole `json:"role"`
	ClubIDs      []int32  `json:"clubIds,omitempty"` // Populated when needed
	CreatedOn    string   `json:"created_on"`
}
