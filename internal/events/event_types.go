package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered      EventType = "user_registered"
	EventComplaintAssigned   EventType = "complaint_assigned"
	EventAssignmentCompleted EventType = "assignment_completed"
	EventWorkerPenalized     EventType = "worker_penalized"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

// ComplaintAssignedPayload payload.
type ComplaintAssignedPayload struct {
	AssignmentID string `json:"assignment_id"`
	ComplaintID  string `json:"complaint_id"`
	WorkerID     string `json:"worker_id"`
	CreditPoints int    `json:"credit_points"`
}

// AssignmentCompletedPayload payload.
type AssignmentCompletedPayload struct {
	AssignmentID   string `json:"assignment_id"`
	WorkerID       string `json:"worker_id"`
	CreditedPoints int    `json:"credited_points"`
	TotalCredits   int    `json:"total_credits"`
}

// WorkerPenalizedPayload payload.
type WorkerPenalizedPayload struct {
	AssignmentID  string `json:"assignment_id"`
	WorkerID      string `json:"worker_id"`
	PenaltyPoints int    `json:"penalty_points"`
	TotalCredits  int    `json:"total_credits"`
}
