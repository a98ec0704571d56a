package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/smartcity/internal/api/dto"
	"github.com/spec-kit/smartcity/internal/auth"
	"github.com/spec-kit/smartcity/internal/domain"
	"github.com/spec-kit/smartcity/internal/service"
	apperrors "github.com/spec-kit/smartcity/pkg/util/errorutil"
)

// ComplaintsHandler exposes complaint endpoints.
type ComplaintsHandler struct {
	complaints *service.ComplaintService
}

// NewComplaintsHandler creates the handler.
func NewComplaintsHandler(complaints *service.ComplaintService) *ComplaintsHandler {
	return &ComplaintsHandler{complaints: complaints}
}

// Create files a complaint owned by the caller.
func (h *ComplaintsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.UserID == "" {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.CreateComplaintRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body", nil)
	}
	complaint, err := h.complaints.Create(c.UserContext(), principal.UserID, req)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusCreated, "complaint filed", dto.NewComplaintResponse(complaint))
}

// Get returns one complaint.
func (h *ComplaintsHandler) Get(c *fiber.Ctx) error {
	complaint, err := h.complaints.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "complaint fetched", dto.NewComplaintResponse(complaint))
}

// List returns complaints, optionally filtered by ?category=.
func (h *ComplaintsHandler) List(c *fiber.Ctx) error {
	complaints, err := h.complaints.List(c.UserContext(), c.Query("category"))
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "complaints fetched", dto.NewComplaintResponses(complaints))
}

// ListByUser returns the complaints filed by one citizen.
func (h *ComplaintsHandler) ListByUser(c *fiber.Ctx) error {
	userID := c.Params("userId")
	principal, _ := auth.PrincipalFromContext(c)
	if principal != nil && !principal.Service && principal.Role == domain.RoleCitizen && principal.UserID != userID {
		return apperrors.NewForbidden("cannot read other citizens' complaints")
	}
	complaints, err := h.complaints.ListByUser(c.UserContext(), userID)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "complaints fetched", dto.NewComplaintResponses(complaints))
}

// Update edits complaint text.
func (h *ComplaintsHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateComplaintRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body", nil)
	}
	complaint, err := h.complaints.Update(c.UserContext(), c.Params("id"), req)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "complaint updated", dto.NewComplaintResponse(complaint))
}

// UpdateStatus sets the complaint status. Driven by the worker service as
// assignments move.
func (h *ComplaintsHandler) UpdateStatus(c *fiber.Ctx) error {
	var req dto.UpdateComplaintStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}
	complaint, err := h.complaints.UpdateStatus(c.UserContext(), c.Params("id"), req.Status)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "complaint status updated", dto.NewComplaintResponse(complaint))
}

// Delete removes a complaint.
func (h *ComplaintsHandler) Delete(c *fiber.Ctx) error {
	if err := h.complaints.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "complaint deleted", nil)
}
