package dto

import (
	"time"

	"github.com/spec-kit/smartcity/internal/domain"
)

// CreateComplaintRequest files a new complaint. The owner comes from the
// caller's claims, never from the body.
type CreateComplaintRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	Category    string `json:"category" validate:"required"`
	ImageRef    string `json:"imageRef"`
}

// UpdateComplaintRequest edits title/description; empty fields are kept.
type UpdateComplaintRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// UpdateComplaintStatusRequest is the body of the worker-service status push.
type UpdateComplaintStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// ComplaintResponse is the complaint projection.
type ComplaintResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	ImageRef    string    `json:"imageRef,omitempty"`
	Status      string    `json:"status"`
	CreatedOn   time.Time `json:"createdOn"`
	UpdatedOn   time.Time `json:"updatedOn"`
}

// NewComplaintResponse maps the domain complaint.
func NewComplaintResponse(complaint *domain.Complaint) ComplaintResponse {
	return ComplaintResponse{
		ID:          complaint.ID,
		UserID:      complaint.UserID,
		Title:       complaint.Title,
		Description: complaint.Description,
		Category:    complaint.Category,
		ImageRef:    complaint.ImageRef,
		Status:      complaint.Status,
		CreatedOn:   complaint.CreatedAt,
		UpdatedOn:   complaint.UpdatedAt,
	}
}

// NewComplaintResponses maps a slice.
func NewComplaintResponses(complaints []domain.Complaint) []ComplaintResponse {
	out := make([]ComplaintResponse, 0, len(complaints))
	for i := range complaints {
		out = append(out, NewComplaintResponse(&complaints[i]))
	}
	return out
}
