package model

import (
	"errors"
	"time"
)

// User represents a registered account.
type User struct {
	ID        int64     `db:"id" json:"id"`
	Username  string    `db:"username" json:"username"`
	Email     string    `db:"email" json:"email"`
	Password  string    `db:"password" json:"-"` // bcrypt hash, never serialized
	FullName  string    `db:"full_name" json:"fullName"`
	Bio       *string   `db:"bio" json:"bio"`
	AvatarURL *string   `db:"avatar_url" json:"avatarUrl"`
	AvatarKey *string   `db:"avatar_key" json:"-"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// UserSummary is the public author projection attached to posts, comments and
// likes. It deliberately carries no email, password or timestamps.
type UserSummary struct {
	ID       int64  `db:"id" json:"id"`
	Username string `db:"username" json:"username"`
	FullName string `db:"full_name" json:"fullName"`
}

// Summary projects the user into its public form.
func (u *User) Summary() *UserSummary {
	return &UserSummary{
		ID:       u.ID,
		Username: u.Username,
		FullName: u.FullName,
	}
}

// RegisterRequest is the request body for POST /api/auth/register.
type RegisterRequest struct {
	Username string  `json:"username"`
	Email    string  `json:"email"`
	Password string  `json:"password"`
	FullName string  `json:"fullName"`
	Bio      *string `json:"bio"`
}

// LoginRequest is the request body for POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateProfileRequest is the request body for PUT /api/auth/profile.
// Nil fields are left unchanged.
type UpdateProfileRequest struct {
	Username *string `json:"username"`
	FullName *string `json:"fullName"`
	Bio      *string `json:"bio"`
}

// ChangePasswordRequest is the request body for PUT /api/auth/password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// User field constraints
const (
	MinUsernameLength = 3
	MaxUsernameLength = 50
	MinPasswordLength = 6
	MinFullNameLength = 2
	MaxFullNameLength = 100
	MaxBioLength      = 500
)

var (
	// ErrUserNotFound is returned when a user cannot be found.
	ErrUserNotFound = errors.New("user not found")

	// ErrUsernameExists is returned when the username is already taken.
	ErrUsernameExists = errors.New("username already exists")

	// ErrEmailExists is returned when the email is already registered.
	ErrEmailExists = errors.New("email already exists")

	// ErrInvalidCredentials is returned when login credentials are incorrect.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
