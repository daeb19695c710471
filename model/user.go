// Package model provides data models for the CMS auth service.
package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Role is the fixed set of user roles
type Role string

// Roles
const (
	RoleAdmin  Role = "admin"
	RoleAuthor Role = "author"
	RoleReader Role = "reader"
)

// Roles lists every valid role
var Roles = []Role{RoleAdmin, RoleAuthor, RoleReader}

// IsValid reports whether r is one of the known roles
func (r Role) IsValid() bool {
	for _, role := range Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Status is the account state used by the signin and request gates
type Status string

// Statuses
const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusBanned   Status = "banned"
)

// InitialStatus returns the status a freshly registered user gets.
// Authors wait for approval, everyone else can sign in right away.
func InitialStatus(role Role) Status {
	if role == RoleAuthor {
		return StatusPending
	}
	return StatusApproved
}

// User represents a user in the system
type User struct {
	Key          string    `json:"_key,omitempty"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash,omitempty"`
	Role         Role      `json:"role"`
	Status       Status    `json:"status"`
	ProfileImage string    `json:"profile_image,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewUser creates a new user with a fresh key and the role-derived status.
// The caller supplies an already hashed password.
func NewUser(name, email, passwordHash string, role Role) *User {
	if role == "" {
		role = RoleReader
	}
	now := time.Now().UTC()
	return &User{
		Key:          uuid.NewString(),
		Name:         strings.TrimSpace(name),
		Email:        NormalizeEmail(email),
		PasswordHash: passwordHash,
		Role:         role,
		Status:       InitialStatus(role),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// NormalizeEmail trims and lower-cases an identifier
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// IsBanned returns true if the account is banned
func (u *User) IsBanned() bool {
	return u.Status == StatusBanned
}

// IsPending returns true if the account still waits for approval
func (u *User) IsPending() bool {
	return u.Status == StatusPending
}

// Public returns the outward projection of the user, without the hash
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:           u.Key,
		Name:         u.Name,
		Email:        u.Email,
		Role:         u.Role,
		Status:       u.Status,
		ProfileImage: u.ProfileImage,
		CreatedAt:    u.CreatedAt,
	}
}

// PublicUser is what clients get to see of a user
type PublicUser struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Role         Role      `json:"role"`
	Status       Status    `json:"status"`
	ProfileImage string    `json:"profileImage,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Access is the minimal projection read on every authenticated request
type Access struct {
	ID     string `json:"id"`
	Role   Role   `json:"role"`
	Status Status `json:"status"`
}
