package domain

import "time"

// Worker mirrors a WORKER user in the worker service, plus the fields the
// assignment workflow mutates. AssignedComplaint and IsAvailable are always
// updated together: the worker is unavailable exactly while the slot is held.
type Worker struct {
	ID                string
	Name              string
	Email             string
	PhoneNumber       string
	Specialization    string
	IsAvailable       bool
	TotalCredits      int
	AssignedComplaint *string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// HoldsAssignment reports whether the worker's single assignment slot is occupied.
func (w *Worker) HoldsAssignment() bool {
	return w.AssignedComplaint != nil && *w.AssignedComplaint != ""
}
