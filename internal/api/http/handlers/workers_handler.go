package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/smartcity/internal/api/dto"
	"github.com/spec-kit/smartcity/internal/service"
	apperrors "github.com/spec-kit/smartcity/pkg/util/errorutil"
)

// WorkersHandler exposes worker profile endpoints.
type WorkersHandler struct {
	workers *service.WorkerService
}

// NewWorkersHandler creates the handler.
func NewWorkersHandler(workers *service.WorkerService) *WorkersHandler {
	return &WorkersHandler{workers: workers}
}

// Create creates a worker profile. Called by the user service during worker
// registration.
func (h *WorkersHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateWorkerRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body", nil)
	}
	worker, err := h.workers.CreateProfile(c.UserContext(), req)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusCreated, "worker created", dto.NewWorkerResponse(worker))
}

// Get returns one worker.
func (h *WorkersHandler) Get(c *fiber.Ctx) error {
	worker, err := h.workers.GetProfile(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "worker fetched", dto.NewWorkerResponse(worker))
}

// List returns all workers.
func (h *WorkersHandler) List(c *fiber.Ctx) error {
	workers, err := h.workers.ListProfiles(c.UserContext())
	if err != nil {
		return err
	}
	out := make([]dto.WorkerResponse, 0, len(workers))
	for i := range workers {
		out = append(out, dto.NewWorkerResponse(&workers[i]))
	}
	return respond(c, fiber.StatusOK, "workers fetched", out)
}

// ListAvailable returns workers with a free slot.
func (h *WorkersHandler) ListAvailable(c *fiber.Ctx) error {
	workers, err := h.workers.ListAvailable(c.UserContext())
	if err != nil {
		return err
	}
	out := make([]dto.WorkerResponse, 0, len(workers))
	for i := range workers {
		out = append(out, dto.NewWorkerResponse(&workers[i]))
	}
	return respond(c, fiber.StatusOK, "available workers fetched", out)
}

// Update edits a worker profile.
func (h *WorkersHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateWorkerRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body", nil)
	}
	worker, err := h.workers.UpdateProfile(c.UserContext(), c.Params("id"), req)
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "worker updated", dto.NewWorkerResponse(worker))
}

// Delete removes a worker profile.
func (h *WorkersHandler) Delete(c *fiber.Ctx) error {
	if err := h.workers.DeleteProfile(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "worker deleted", nil)
}

// MatchingComplaints returns complaints matching the worker's specialization.
func (h *WorkersHandler) MatchingComplaints(c *fiber.Ctx) error {
	complaints, err := h.workers.MatchingComplaints(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return respond(c, fiber.StatusOK, "matching complaints fetched", complaints)
}
