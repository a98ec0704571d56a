package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/smartcity/internal/api/dto"
	"github.com/spec-kit/smartcity/internal/domain"
	"github.com/spec-kit/smartcity/internal/repository"
	"github.com/spec-kit/smartcity/internal/rpc"
	apperrors "github.com/spec-kit/smartcity/pkg/util/errorutil"
)

// WorkerService manages worker profiles. Profile ids mirror the user-service
// account id they were created for.
type WorkerService struct {
	workers    repository.WorkerRepository
	complaints rpc.ComplaintClient
	logger     *zap.Logger
}

// NewWorkerService creates the service.
func NewWorkerService(workers repository.WorkerRepository, complaints rpc.ComplaintClient, logger *zap.Logger) *WorkerService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WorkerService{workers: workers, complaints: complaints, logger: logger}
}

// CreateProfile creates a worker record for the given account id. New
// workers start available, with an empty ledger and no assignment.
func (s *WorkerService) CreateProfile(ctx context.Context, req dto.CreateWorkerRequest) (*domain.Worker, error) {
	if err := dto.Validate(req); err != nil {
		return nil, err
	}
	if _, err := s.workers.GetByID(ctx, req.UserID); err == nil {
		return nil, apperrors.NewConflict("worker profile already exists", map[string]any{"worker_id": req.UserID})
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}

	worker := &domain.Worker{
		ID:             req.UserID,
		Name:           req.Name,
		Email:          req.Email,
		PhoneNumber:    req.PhoneNumber,
		Specialization: req.Specialization,
		IsAvailable:    true,
		TotalCredits:   0,
	}
	if err := s.workers.Create(ctx, worker); err != nil {
		return nil, apperrors.MapError(err)
	}
	return worker, nil
}

// GetProfile fetches one worker.
func (s *WorkerService) GetProfile(ctx context.Context, workerID string) (*domain.Worker, error) {
	worker, err := s.workers.GetByID(ctx, workerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("worker", map[string]any{"worker_id": workerID})
		}
		return nil, apperrors.MapError(err)
	}
	return worker, nil
}

// ListProfiles returns every worker.
func (s *WorkerService) ListProfiles(ctx context.Context) ([]domain.Worker, error) {
	workers, err := s.workers.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return workers, nil
}

// ListAvailable returns workers with a free assignment slot.
func (s *WorkerService) ListAvailable(ctx context.Context) ([]domain.Worker, error) {
	workers, err := s.workers.ListAvailable(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return workers, nil
}

// UpdateProfile applies the non-empty fields from the request.
func (s *WorkerService) UpdateProfile(ctx context.Context, workerID string, req dto.UpdateWorkerRequest) (*domain.Worker, error) {
	worker, err := s.workers.GetByID(ctx, workerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("worker", map[string]any{"worker_id": workerID})
		}
		return nil, apperrors.MapError(err)
	}

	if req.Name != "" {
		worker.Name = req.Name
	}
	if req.Email != "" {
		worker.Email = req.Email
	}
	if req.PhoneNumber != "" {
		worker.PhoneNumber = req.PhoneNumber
	}
	if req.Specialization != "" {
		worker.Specialization = req.Specialization
	}
	if err := s.workers.Update(ctx, worker); err != nil {
		return nil, apperrors.MapError(err)
	}
	return worker, nil
}

// DeleteProfile removes a worker. A worker still holding an assignment
// cannot be deleted; the assignment has to be closed out first.
func (s *WorkerService) DeleteProfile(ctx context.Context, workerID string) error {
	worker, err := s.workers.GetByID(ctx, workerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("worker", map[string]any{"worker_id": workerID})
		}
		return apperrors.MapError(err)
	}
	if worker.HoldsAssignment() {
		return apperrors.NewConflict("worker still holds an assignment", map[string]any{
			"worker_id": workerID, "complaint_id": *worker.AssignedComplaint,
		})
	}
	if err := s.workers.Delete(ctx, workerID); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

// MatchingComplaints fetches, from the complaint service, the complaints
// whose category matches the worker's specialization.
func (s *WorkerService) MatchingComplaints(ctx context.Context, workerID string) ([]dto.ComplaintResponse, error) {
	worker, err := s.workers.GetByID(ctx, workerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("worker", map[string]any{"worker_id": workerID})
		}
		return nil, apperrors.MapError(err)
	}
	return s.complaints.FetchByCategory(ctx, worker.Specialization)
}
