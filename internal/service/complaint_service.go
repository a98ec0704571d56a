package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/smartcity/internal/api/dto"
	"github.com/spec-kit/smartcity/internal/domain"
	"github.com/spec-kit/smartcity/internal/repository"
	apperrors "github.com/spec-kit/smartcity/pkg/util/errorutil"
)

// ComplaintService manages citizen complaints. Status changes normally
// arrive from the worker service, which mirrors assignment transitions here.
type ComplaintService struct {
	complaints repository.ComplaintRepository
	logger     *zap.Logger
}

// NewComplaintService creates the service.
func NewComplaintService(complaints repository.ComplaintRepository, logger *zap.Logger) *ComplaintService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ComplaintService{complaints: complaints, logger: logger}
}

// Create files a complaint for the given owner. New complaints start
// unassigned.
func (s *ComplaintService) Create(ctx context.Context, userID string, req dto.CreateComplaintRequest) (*domain.Complaint, error) {
	if err := dto.Validate(req); err != nil {
		return nil, err
	}

	complaint := &domain.Complaint{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		ImageRef:    req.ImageRef,
		Status:      domain.ComplaintStatusNotAssigned,
	}
	if err := s.complaints.Create(ctx, complaint); err != nil {
		return nil, apperrors.MapError(err)
	}
	return complaint, nil
}

// GetByID fetches one complaint.
func (s *ComplaintService) GetByID(ctx context.Context, complaintID string) (*domain.Complaint, error) {
	complaint, err := s.complaints.GetByID(ctx, complaintID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("complaint", map[string]any{"complaint_id": complaintID})
		}
		return nil, apperrors.MapError(err)
	}
	return complaint, nil
}

// List returns all complaints, optionally narrowed to one category.
func (s *ComplaintService) List(ctx context.Context, category string) ([]domain.Complaint, error) {
	var (
		complaints []domain.Complaint
		err        error
	)
	if category == "" {
		complaints, err = s.complaints.List(ctx)
	} else {
		complaints, err = s.complaints.ListByCategory(ctx, category)
	}
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return complaints, nil
}

// ListByUser returns the complaints filed by one citizen.
func (s *ComplaintService) ListByUser(ctx context.Context, userID string) ([]domain.Complaint, error) {
	complaints, err := s.complaints.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return complaints, nil
}

// Update edits the complaint text. Status is not touched here.
func (s *ComplaintService) Update(ctx context.Context, complaintID string, req dto.UpdateComplaintRequest) (*domain.Complaint, error) {
	complaint, err := s.complaints.GetByID(ctx, complaintID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("complaint", map[string]any{"complaint_id": complaintID})
		}
		return nil, apperrors.MapError(err)
	}

	if req.Title != "" {
		complaint.Title = req.Title
	}
	if req.Description != "" {
		complaint.Description = req.Description
	}
	if err := s.complaints.Update(ctx, complaint); err != nil {
		return nil, apperrors.MapError(err)
	}
	return complaint, nil
}

// UpdateStatus sets the complaint's status token. This is the endpoint the
// worker service drives when assignments move.
func (s *ComplaintService) UpdateStatus(ctx context.Context, complaintID, status string) (*domain.Complaint, error) {
	status = strings.ToUpper(strings.TrimSpace(status))
	switch status {
	case domain.ComplaintStatusNotAssigned, domain.ComplaintStatusAssigned,
		domain.ComplaintStatusInProgress, domain.ComplaintStatusCompleted,
		domain.ComplaintStatusPenalized:
	default:
		return nil, apperrors.NewValidationError("unknown complaint status", map[string]any{"status": status})
	}

	complaint, err := s.complaints.GetByID(ctx, complaintID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("complaint", map[string]any{"complaint_id": complaintID})
		}
		return nil, apperrors.MapError(err)
	}

	complaint.Status = status
	if err := s.complaints.Update(ctx, complaint); err != nil {
		return nil, apperrors.MapError(err)
	}
	return complaint, nil
}

// Delete removes a complaint.
func (s *ComplaintService) Delete(ctx context.Context, complaintID string) error {
	if _, err := s.complaints.GetByID(ctx, complaintID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("complaint", map[string]any{"complaint_id": complaintID})
		}
		return apperrors.MapError(err)
	}
	if err := s.complaints.Delete(ctx, complaintID); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}
