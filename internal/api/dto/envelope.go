package dto

// Envelope is the uniform result wrapper every endpoint returns. Status is
// SUCCESS or FAILED; Data carries the optional payload.
type Envelope struct {
	StatusCode int    `json:"statusCode"`
	Status     string `json:"status"`
	Message    string `json:"message"`
	Data       any    `json:"data,omitempty"`
}

const (
	StatusSuccess = "SUCCESS"
	StatusFailed  = "FAILED"
)
