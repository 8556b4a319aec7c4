package model

// Role is the access level resolved for an authenticated request.
type Role string

const (
	RoleGuest   Role = "guest"
	RolePatient Role = "patient"
	RoleAdmin   Role = "admin"
)

func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

// User is a profile keyed by email. Role is the only access-control
// attribute; it is never written by the profile upsert.
type User struct {
	Base
	Email string  `db:"email" json:"email"`
	Name  string  `db:"name" json:"name"`
	Phone *string `db:"phone" json:"phone,omitempty"`
	Role  Role    `db:"role" json:"role"`
}

// UpsertUserRequest represents profile fields replaced on upsert
type UpsertUserRequest struct {
	Name  string  `json:"name" binding:"required"`
	Phone *string `json:"phone"`
}
