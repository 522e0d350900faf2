package user

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("user not found")

// Role is the account-level role used for capability checks.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// User represents an account that can sign in and book classrooms.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	DisplayName  *string
	Role         Role
	IsActive     bool
	CreatedAt    time.Time
	LastLoginAt  *time.Time
}
