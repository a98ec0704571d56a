package dto

import (
	"time"

	"github.com/spec-kit/smartcity/internal/domain"
)

// AssignRequest binds a complaint to a worker with a credit stake.
type AssignRequest struct {
	WorkerID     string `json:"workerId" validate:"required"`
	ComplaintID  string `json:"complaintId" validate:"required"`
	CreditPoints int    `json:"creditPoints" validate:"gte=0"`
}

// UpdateAssignmentStatusRequest moves an assignment to a new lifecycle state.
type UpdateAssignmentStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// PenaltyRequest applies a penalty; zero PenaltyPoints means the default.
type PenaltyRequest struct {
	PenaltyPoints int `json:"penaltyPoints" validate:"gte=0"`
}

// AssignmentResponse is the assignment projection.
type AssignmentResponse struct {
	AssignmentID string     `json:"assignmentId"`
	WorkerID     string     `json:"workerId"`
	ComplaintID  string     `json:"complaintId"`
	Status       string     `json:"status"`
	CreditPoints int        `json:"creditPoints"`
	AssignedOn   time.Time  `json:"assignedOn"`
	CompletedOn  *time.Time `json:"completedOn,omitempty"`
}

// NewAssignmentResponse maps the domain assignment.
func NewAssignmentResponse(assignment *domain.WorkAssignment) AssignmentResponse {
	return AssignmentResponse{
		AssignmentID: assignment.ID,
		WorkerID:     assignment.WorkerID,
		ComplaintID:  assignment.ComplaintID,
		Status:       string(assignment.Status),
		CreditPoints: assignment.CreditPoints,
		AssignedOn:   assignment.AssignedOn,
		CompletedOn:  assignment.CompletedOn,
	}
}

// NewAssignmentResponses maps a slice.
func NewAssignmentResponses(assignments []domain.WorkAssignment) []AssignmentResponse {
	out := make([]AssignmentResponse, 0, len(assignments))
	for i := range assignments {
		out = append(out, NewAssignmentResponse(&assignments[i]))
	}
	return out
}
