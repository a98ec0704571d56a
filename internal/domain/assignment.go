package domain

import "time"

// AssignmentStatus enumerates the lifecycle of a complaint-to-worker binding.
// UNASSIGNED is implicit: it is the absence of a WorkAssignment record.
type AssignmentStatus string

const (
	AssignmentStatusAssigned   AssignmentStatus = "ASSIGNED"
	AssignmentStatusInProgress AssignmentStatus = "IN_PROGRESS"
	AssignmentStatusCompleted  AssignmentStatus = "COMPLETED"
	AssignmentStatusPenalized  AssignmentStatus = "PENALIZED"
)

// Valid reports whether the status is a known lifecycle token.
func (s AssignmentStatus) Valid() bool {
	switch s {
	case AssignmentStatusAssigned, AssignmentStatusInProgress, AssignmentStatusCompleted, AssignmentStatusPenalized:
		return true
	}
	return false
}

// Terminal reports whether no further transition is defined from the status.
func (s AssignmentStatus) Terminal() bool {
	return s == AssignmentStatusCompleted || s == AssignmentStatusPenalized
}

// WorkAssignment binds one complaint to one worker. Its status is the
// authority for the assignment lifecycle; the complaint record mirrors it.
type WorkAssignment struct {
	ID           string
	WorkerID     string
	ComplaintID  string
	Status       AssignmentStatus
	CreditPoints int
	AssignedOn   time.Time
	CompletedOn  *time.Time
}
