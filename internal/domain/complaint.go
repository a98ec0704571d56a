package domain

import "time"

// Complaint status tokens. The complaint record is the single source of truth
// for its status; other services mirror it via RPC push, never pull.
const (
	ComplaintStatusNotAssigned = "NOT ASSIGNED"
	ComplaintStatusAssigned    = "ASSIGNED"
	ComplaintStatusInProgress  = "IN_PROGRESS"
	ComplaintStatusCompleted   = "COMPLETED"
	ComplaintStatusPenalized   = "PENALIZED"
)

// Complaint is a citizen-filed grievance owned by the complaint service.
type Complaint struct {
	ID          string
	UserID      string
	Title       string
	Description string
	Category    string
	ImageRef    string
	Status      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
