package errors

// represents a standardized error response
type ErrorResponse struct {
	Success bool   `json:"success"`           // always false
	Error   string `json:"error"`             // error code (e.g., "unauthorized", "quota_exceeded")
	Message string `json:"message"`           // user-friendly message
	Details string `json:"details,omitempty"` // optional details (sanitized in production)
}

// returned with 429 when the daily generation cap is reached
type QuotaErrorResponse struct {
	ErrorResponse
	Current int `json:"current"`
	Limit   int `json:"limit"`
}

// returned with 403 when the MVP is at capacity
type RegistrationErrorResponse struct {
	ErrorResponse
	Waitlist bool `json:"waitlist"`
}

type ErrorInfo struct {
	category  string
	sanitized string
}
