package dto

import (
	"time"

	"github.com/spec-kit/smartcity/internal/domain"
)

// RegisterRequest is the signup payload. Role-specific fields are checked by
// the registration saga on top of the tag validation here.
type RegisterRequest struct {
	Name           string          `json:"name" validate:"required"`
	Email          string          `json:"email" validate:"required,email"`
	Password       string          `json:"password" validate:"required,min=8"`
	Role           domain.UserRole `json:"role" validate:"required"`
	PhoneNumber    string          `json:"phoneNumber"`
	Address        string          `json:"address"`
	City           string          `json:"city"`
	PinCode        int             `json:"pinCode"`
	Specialization string          `json:"specialization"`
}

// UpdateUserRequest carries the mutable user/profile fields. Role, when
// present, must match the stored role; it can never change.
type UpdateUserRequest struct {
	Name           string          `json:"name" validate:"required"`
	Email          string          `json:"email"`
	Role           domain.UserRole `json:"role" validate:"required"`
	PhoneNumber    string          `json:"phoneNumber"`
	Address        string          `json:"address"`
	City           string          `json:"city"`
	PinCode        int             `json:"pinCode"`
	Specialization string          `json:"specialization"`
}

// LoginRequest is the credential payload.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserResponse is the sanitized user projection; no password field.
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedOn time.Time `json:"createdOn"`
	UpdatedOn time.Time `json:"updatedOn"`
}

// CitizenResponse joins the citizen profile with its user record.
type CitizenResponse struct {
	UserID      string    `json:"userId"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	PhoneNumber string    `json:"phoneNumber"`
	Address     string    `json:"address"`
	City        string    `json:"city"`
	PinCode     int       `json:"pinCode"`
	CreatedOn   time.Time `json:"createdOn"`
	UpdatedOn   time.Time `json:"updatedOn"`
}

// AuthData pairs a fresh token with the user it identifies.
type AuthData struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      UserResponse `json:"user"`
}

// NewUserResponse maps the domain user.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      string(user.Role),
		CreatedOn: user.CreatedAt,
		UpdatedOn: user.UpdatedAt,
	}
}

// NewCitizenResponse joins user and citizen records.
func NewCitizenResponse(user *domain.User, citizen *domain.Citizen) CitizenResponse {
	return CitizenResponse{
		UserID:      user.ID,
		Name:        user.Name,
		Email:       user.Email,
		Role:        string(user.Role),
		PhoneNumber: citizen.PhoneNumber,
		Address:     citizen.Address,
		City:        citizen.City,
		PinCode:     citizen.PinCode,
		CreatedOn:   user.CreatedAt,
		UpdatedOn:   user.UpdatedAt,
	}
}
