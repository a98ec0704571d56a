package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/smartcity/internal/api/dto"
	"github.com/spec-kit/smartcity/internal/service"
	apperrors "github.com/spec-kit/smartcity/pkg/util/errorutil"
)

// AssignmentsHandler exposes the assignment lifecycle endpoints.
type AssignmentsHandler struct {
	assignments *service.AssignmentService
}

// NewAssignmentsHandler creates the handler.
func NewAssignmentsHandler(assignments *service.AssignmentService) *AssignmentsHandler {
	return &AssignmentsHandler{assignments: assignments}
}

// Assign binds a complaint to a worker.
func (h *AssignmentsHandler) Assign(c *fiber.Ctx) error {
	var req dto.AssignRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}
	assignment, err := h.assignments.Assign(c.UserContext(), req.WorkerID, req.ComplaintID, req.CreditPoints)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusCreated, "complaint assigned", dto.NewAssignmentResponse(assignment))
}

// UpdateStatus moves an assignment to a new state.
func (h *AssignmentsHandler) UpdateStatus(c *fiber.Ctx) error {
	var req dto.UpdateAssignmentStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}
	assignment, err := h.assignments.UpdateStatus(c.UserContext(), c.Params("id"), req.Status)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "assignment status updated", dto.NewAssignmentResponse(assignment))
}

// Penalize applies a penalty to an assignment and its worker.
func (h *AssignmentsHandler) Penalize(c *fiber.Ctx) error {
	var req dto.PenaltyRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body", nil)
	}
	assignment, err := h.assignments.ApplyPenalty(c.UserContext(), c.Params("id"), req.PenaltyPoints)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "penalty applied", dto.NewAssignmentResponse(assignment))
}

// Get returns one assignment.
func (h *AssignmentsHandler) Get(c *fiber.Ctx) error {
	assignment, err := h.assignments.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "assignment fetched", dto.NewAssignmentResponse(assignment))
}

// List returns all assignments.
func (h *AssignmentsHandler) List(c *fiber.Ctx) error {
	assignments, err := h.assignments.List(c.UserContext())
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "assignments fetched", dto.NewAssignmentResponses(assignments))
}

// ListByWorker returns every assignment held by one worker.
func (h *AssignmentsHandler) ListByWorker(c *fiber.Ctx) error {
	assignments, err := h.assignments.ListByWorker(c.UserContext(), c.Params("workerId"))
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "assignments fetched", dto.NewAssignmentResponses(assignments))
}

// Delete removes an assignment record.
func (h *AssignmentsHandler) Delete(c *fiber.Ctx) error {
	if err := h.assignments.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "assignment deleted", nil)
}
