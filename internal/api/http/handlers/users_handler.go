package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/smartcity/internal/api/dto"
	"github.com/spec-kit/smartcity/internal/auth"
	"github.com/spec-kit/smartcity/internal/domain"
	"github.com/spec-kit/smartcity/internal/service"
	apperrors "github.com/spec-kit/smartcity/pkg/util/errorutil"
)

// UsersHandler exposes account endpoints.
type UsersHandler struct {
	users *service.UserService
}

// NewUsersHandler creates the handler.
func NewUsersHandler(users *service.UserService) *UsersHandler {
	return &UsersHandler{users: users}
}

// Register creates an account with its role profile and returns a token.
func (h *UsersHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body", nil)
	}
	data, err := h.users.Register(c.UserContext(), req)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusCreated, "user registered", data)
}

// Login exchanges credentials for a token.
func (h *UsersHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body", nil)
	}
	data, err := h.users.Login(c.UserContext(), req)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "login successful", data)
}

// Logout revokes the presented token.
func (h *UsersHandler) Logout(c *fiber.Ctx) error {
	token, ok := auth.TokenFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("missing token")
	}
	if err := h.users.Logout(c.UserContext(), token); err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "logged out", nil)
}

// Get returns the role-shaped view of one user. Non-admin callers can only
// read their own record.
func (h *UsersHandler) Get(c *fiber.Ctx) error {
	userID := c.Params("id")
	principal, _ := auth.PrincipalFromContext(c)
	if principal != nil && !principal.Service && principal.Role != domain.RoleAdmin && principal.UserID != userID {
		return apperrors.NewForbidden("cannot read other accounts")
	}
	data, err := h.users.GetUser(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "user fetched", data)
}

// List returns all base user records.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	data, err := h.users.ListUsers(c.UserContext())
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "users fetched", data)
}

// ListCitizens returns all citizen profiles.
func (h *UsersHandler) ListCitizens(c *fiber.Ctx) error {
	data, err := h.users.ListCitizens(c.UserContext())
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "citizens fetched", data)
}

// Update edits an account and its profile.
func (h *UsersHandler) Update(c *fiber.Ctx) error {
	userID := c.Params("id")
	principal, _ := auth.PrincipalFromContext(c)
	if principal != nil && !principal.Service && principal.Role != domain.RoleAdmin && principal.UserID != userID {
		return apperrors.NewForbidden("cannot update other accounts")
	}

	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body", nil)
	}
	data, err := h.users.UpdateUser(c.UserContext(), userID, req)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "user updated", data)
}

// Delete removes an account and its profile.
func (h *UsersHandler) Delete(c *fiber.Ctx) error {
	if err := h.users.DeleteUser(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "user deleted", nil)
}
