package domain

import "time"

// UserRole enumerates account roles. A role is immutable once persisted.
type UserRole string

const (
	RoleCitizen UserRole = "CITIZEN"
	RoleWorker  UserRole = "WORKER"
	RoleAdmin   UserRole = "ADMIN"
)

// Valid reports whether the role is one of the known values.
func (r UserRole) Valid() bool {
	switch r {
	case RoleCitizen, RoleWorker, RoleAdmin:
		return true
	}
	return false
}

// User is the base identity record owned by the user service.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         UserRole
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
