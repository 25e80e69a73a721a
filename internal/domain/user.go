package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// DefaultRole is assigned to every user at registration.
const DefaultRole = "User"

// AdminRole gates destructive business-entity operations.
const AdminRole = "Administrator"

type User struct {
	ID           uuid.UUID                   `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Email        string                      `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string                      `json:"-" gorm:"not null"`
	FirstName    string                      `json:"firstName" gorm:"not null"`
	LastName     string                      `json:"lastName" gorm:"not null"`
	Roles        datatypes.JSONSlice[string] `json:"roles"`

	// Current refresh token, stored inline so rotation is a single
	// compare-and-swap against the row. At most one live token per user.
	RefreshToken          *string    `json:"-"`
	RefreshTokenExpiresAt *time.Time `json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// HasRole reports whether the user carries the given role name.
func (u *User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}
