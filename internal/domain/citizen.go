package domain

import "time"

// Citizen is the 1:1 profile for a User with role CITIZEN. It lives in the
// same service (and failure domain) as the User record itself.
type Citizen struct {
	ID          string
	UserID      string
	PhoneNumber string
	Address     string
	City        string
	PinCode     int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
