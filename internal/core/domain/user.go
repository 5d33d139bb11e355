package domain

import "time"

// Role is an enumerated permission tier checked against an action's requirement.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User models an authenticated actor in the system.
// The password hash never leaves the credential store layer in responses.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"column:password;not null"`
	Role         Role      `json:"role" gorm:"type:varchar(16);not null;default:USER"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TokenClaims is the verified content of a session token.
type TokenClaims struct {
	UserID uint
	Role   Role
}
