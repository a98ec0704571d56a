package dto

import (
	"time"

	"github.com/spec-kit/smartcity/internal/domain"
)

// CreateWorkerRequest is the worker-profile creation payload; also the body
// of the user-service → worker-service RPC.
type CreateWorkerRequest struct {
	UserID         string `json:"userId" validate:"required"`
	Name           string `json:"name" validate:"required"`
	Email          string `json:"email" validate:"required,email"`
	PhoneNumber    string `json:"phoneNumber" validate:"required"`
	Specialization string `json:"specialization" validate:"required"`
}

// UpdateWorkerRequest carries mutable worker fields; empty fields are kept.
type UpdateWorkerRequest struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	PhoneNumber    string `json:"phoneNumber"`
	Specialization string `json:"specialization"`
}

// WorkerResponse is the worker projection.
type WorkerResponse struct {
	WorkerID          string    `json:"workerId"`
	Name              string    `json:"name"`
	Email             string    `json:"email"`
	PhoneNumber       string    `json:"phoneNumber"`
	Specialization    string    `json:"specialization"`
	IsAvailable       bool      `json:"isAvailable"`
	TotalCredits      int       `json:"totalCredits"`
	AssignedComplaint *string   `json:"assignedComplaint,omitempty"`
	CreatedOn         time.Time `json:"createdOn"`
	UpdatedOn         time.Time `json:"updatedOn"`
}

// NewWorkerResponse maps the domain worker.
func NewWorkerResponse(worker *domain.Worker) WorkerResponse {
	return WorkerResponse{
		WorkerID:          worker.ID,
		Name:              worker.Name,
		Email:             worker.Email,
		PhoneNumber:       worker.PhoneNumber,
		Specialization:    worker.Specialization,
		IsAvailable:       worker.IsAvailable,
		TotalCredits:      worker.TotalCredits,
		AssignedComplaint: worker.AssignedComplaint,
		CreatedOn:         worker.CreatedAt,
		UpdatedOn:         worker.UpdatedAt,
	}
}
