package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/smartcity/internal/domain"
	"github.com/spec-kit/smartcity/internal/events"
	"github.com/spec-kit/smartcity/internal/ledger"
	"github.com/spec-kit/smartcity/internal/lock"
	"github.com/spec-kit/smartcity/internal/repository"
	"github.com/spec-kit/smartcity/internal/rpc"
	apperrors "github.com/spec-kit/smartcity/pkg/util/errorutil"
)

// Penalty amounts. The stake penalty reduces the assignment's own credit
// points; the ledger penalty debits the worker balance, floored at zero.
const (
	StakePenalty         = 100
	DefaultLedgerPenalty = 50
)

// AssignmentService owns the complaint-to-worker assignment lifecycle. Every
// transition keeps three records aligned: the assignment, the worker's
// slot/ledger, and the complaint's mirrored status (pushed via RPC).
type AssignmentService struct {
	assignments repository.AssignmentRepository
	workers     repository.WorkerRepository
	complaints  rpc.ComplaintClient
	locks       *lock.KeyMutex
	dispatcher  events.Dispatcher
	logger      *zap.Logger
}

// AssignmentDependencies bundles collaborators.
type AssignmentDependencies struct {
	AssignmentRepo  repository.AssignmentRepository
	WorkerRepo      repository.WorkerRepository
	ComplaintClient rpc.ComplaintClient
	Locks           *lock.KeyMutex
	Dispatcher      events.Dispatcher
	Logger          *zap.Logger
}

// NewAssignmentService creates the service.
func NewAssignmentService(deps AssignmentDependencies) *AssignmentService {
	locks := deps.Locks
	if locks == nil {
		locks = lock.New()
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssignmentService{
		assignments: deps.AssignmentRepo,
		workers:     deps.WorkerRepo,
		complaints:  deps.ComplaintClient,
		locks:       locks,
		dispatcher:  deps.Dispatcher,
		logger:      logger,
	}
}

// Assign binds a complaint to a worker with the given credit stake. The
// complaint and worker keys are held for the whole check-then-commit span so
// two concurrent assigns cannot both pass the existence checks.
func (s *AssignmentService) Assign(ctx context.Context, workerID, complaintID string, creditPoints int) (*domain.WorkAssignment, error) {
	keys := []string{"complaint:" + complaintID, "worker:" + workerID}
	s.locks.LockAll(keys...)
	defer s.locks.UnlockAll(keys...)

	if _, err := s.assignments.GetByComplaintID(ctx, complaintID); err == nil {
		return nil, apperrors.NewConflict("complaint already assigned", map[string]any{"complaint_id": complaintID})
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}

	worker, err := s.workers.GetByID(ctx, workerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("worker", map[string]any{"worker_id": workerID})
		}
		return nil, apperrors.MapError(err)
	}
	if worker.HoldsAssignment() {
		return nil, apperrors.NewConflict("cannot assign more than one complaint", map[string]any{"worker_id": workerID})
	}

	worker.AssignedComplaint = &complaintID
	worker.IsAvailable = false
	if err := s.workers.Update(ctx, worker); err != nil {
		return nil, apperrors.MapError(err)
	}

	if err := s.complaints.PushStatus(ctx, complaintID, domain.ComplaintStatusAssigned); err != nil {
		// release the slot again; committing it without an assignment
		// record would strand the worker as unavailable
		s.releaseWorker(ctx, worker)
		return nil, err
	}

	assignment := &domain.WorkAssignment{
		WorkerID:     workerID,
		ComplaintID:  complaintID,
		Status:       domain.AssignmentStatusAssigned,
		CreditPoints: creditPoints,
		AssignedOn:   time.Now(),
	}
	if err := s.assignments.Create(ctx, assignment); err != nil {
		s.releaseWorker(ctx, worker)
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, events.EventComplaintAssigned, events.ComplaintAssignedPayload{
		AssignmentID: assignment.ID,
		ComplaintID:  complaintID,
		WorkerID:     workerID,
		CreditPoints: creditPoints,
	})
	return assignment, nil
}

// UpdateStatus moves the assignment to newStatus and pushes the change to
// the complaint record. COMPLETED additionally credits the worker's ledger
// and releases the assignment slot.
func (s *AssignmentService) UpdateStatus(ctx context.Context, assignmentID, newStatus string) (*domain.WorkAssignment, error) {
	status := domain.AssignmentStatus(strings.ToUpper(strings.TrimSpace(newStatus)))
	if !status.Valid() {
		return nil, apperrors.NewValidationError("unknown assignment status", map[string]any{"status": newStatus})
	}

	s.locks.Lock("assignment:" + assignmentID)
	defer s.locks.Unlock("assignment:" + assignmentID)

	assignment, err := s.assignments.GetByID(ctx, assignmentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("assignment", map[string]any{"assignment_id": assignmentID})
		}
		return nil, apperrors.MapError(err)
	}
	if assignment.Status == status {
		return nil, apperrors.NewConflict("assignment status already updated", map[string]any{"status": string(status)})
	}
	if assignment.Status.Terminal() {
		return nil, apperrors.NewConflict("assignment already closed", map[string]any{"status": string(assignment.Status)})
	}

	s.locks.Lock("worker:" + assignment.WorkerID)
	defer s.locks.Unlock("worker:" + assignment.WorkerID)

	s.pushStatusBestEffort(ctx, assignment.ComplaintID, string(status))

	assignment.Status = status
	if status == domain.AssignmentStatusCompleted {
		now := time.Now()
		assignment.CompletedOn = &now

		worker, err := s.workers.GetByID(ctx, assignment.WorkerID)
		if err != nil {
			return nil, apperrors.MapError(err)
		}
		worker.TotalCredits = ledger.Credit(worker.TotalCredits, assignment.CreditPoints)
		worker.AssignedComplaint = nil
		worker.IsAvailable = true
		if err := s.workers.Update(ctx, worker); err != nil {
			return nil, apperrors.MapError(err)
		}

		s.publish(ctx, events.EventAssignmentCompleted, events.AssignmentCompletedPayload{
			AssignmentID:   assignment.ID,
			WorkerID:       worker.ID,
			CreditedPoints: assignment.CreditPoints,
			TotalCredits:   worker.TotalCredits,
		})
	}

	if err := s.assignments.Update(ctx, assignment); err != nil {
		return nil, apperrors.MapError(err)
	}
	return assignment, nil
}

// ApplyPenalty forces the assignment to PENALIZED, reduces its credit stake
// and debits the worker's ledger. The worker keeps the slot: a penalized job
// is not a finished one, and no automatic re-assignment is triggered.
func (s *AssignmentService) ApplyPenalty(ctx context.Context, assignmentID string, penaltyPoints int) (*domain.WorkAssignment, error) {
	if penaltyPoints <= 0 {
		penaltyPoints = DefaultLedgerPenalty
	}

	s.locks.Lock("assignment:" + assignmentID)
	defer s.locks.Unlock("assignment:" + assignmentID)

	assignment, err := s.assignments.GetByID(ctx, assignmentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("assignment", map[string]any{"assignment_id": assignmentID})
		}
		return nil, apperrors.MapError(err)
	}
	if assignment.Status.Terminal() {
		return nil, apperrors.NewConflict("assignment already closed", map[string]any{"status": string(assignment.Status)})
	}

	s.locks.Lock("worker:" + assignment.WorkerID)
	defer s.locks.Unlock("worker:" + assignment.WorkerID)

	s.pushStatusBestEffort(ctx, assignment.ComplaintID, domain.ComplaintStatusPenalized)

	assignment.Status = domain.AssignmentStatusPenalized
	assignment.CreditPoints -= StakePenalty

	worker, err := s.workers.GetByID(ctx, assignment.WorkerID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	worker.TotalCredits = ledger.Penalize(worker.TotalCredits, penaltyPoints)
	if err := s.workers.Update(ctx, worker); err != nil {
		return nil, apperrors.MapError(err)
	}
	if err := s.assignments.Update(ctx, assignment); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, events.EventWorkerPenalized, events.WorkerPenalizedPayload{
		AssignmentID:  assignment.ID,
		WorkerID:      worker.ID,
		PenaltyPoints: penaltyPoints,
		TotalCredits:  worker.TotalCredits,
	})
	return assignment, nil
}

// GetByID fetches a single assignment.
func (s *AssignmentService) GetByID(ctx context.Context, assignmentID string) (*domain.WorkAssignment, error) {
	assignment, err := s.assignments.GetByID(ctx, assignmentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("assignment", map[string]any{"assignment_id": assignmentID})
		}
		return nil, apperrors.MapError(err)
	}
	return assignment, nil
}

// ListByWorker returns all assignments ever held by the worker.
func (s *AssignmentService) ListByWorker(ctx context.Context, workerID string) ([]domain.WorkAssignment, error) {
	assignments, err := s.assignments.ListByWorker(ctx, workerID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return assignments, nil
}

// List returns every assignment.
func (s *AssignmentService) List(ctx context.Context) ([]domain.WorkAssignment, error) {
	assignments, err := s.assignments.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return assignments, nil
}

// Delete removes the assignment record. It does not notify the worker or
// complaint records.
func (s *AssignmentService) Delete(ctx context.Context, assignmentID string) error {
	s.locks.Lock("assignment:" + assignmentID)
	defer s.locks.Unlock("assignment:" + assignmentID)

	if _, err := s.assignments.GetByID(ctx, assignmentID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("assignment", map[string]any{"assignment_id": assignmentID})
		}
		return apperrors.MapError(err)
	}
	if err := s.assignments.Delete(ctx, assignmentID); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

func (s *AssignmentService) releaseWorker(ctx context.Context, worker *domain.Worker) {
	worker.AssignedComplaint = nil
	worker.IsAvailable = true
	if err := s.workers.Update(ctx, worker); err != nil {
		s.logger.Error("failed to release worker slot during compensation",
			zap.String("worker_id", worker.ID), zap.Error(err))
	}
}

func (s *AssignmentService) pushStatusBestEffort(ctx context.Context, complaintID, status string) {
	if err := s.complaints.PushStatus(ctx, complaintID, status); err != nil {
		s.logger.Warn("complaint status push failed; proceeding with local transition",
			zap.String("complaint_id", complaintID),
			zap.String("status", status),
			zap.Error(err))
	}
}

func (s *AssignmentService) publish(ctx context.Context, eventType events.EventType, payload any) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}
