package errors

// ErrorInfo contains detailed error information rendered to clients.
type ErrorInfo struct {
	Code    string `json:"code"`              // Business error code, e.g., "WALK_NOT_FOUND"
	Details string `json:"details,omitempty"` // Detailed error information (optional)
}

// Response is the error response body shape shared with the delivery layer.
type Response struct {
	Success bool       `json:"success"`
	Code    int        `json:"code"`    // HTTP status code
	Message string     `json:"message"` // User-friendly message
	Error   *ErrorInfo `json:"error,omitempty"`
}
