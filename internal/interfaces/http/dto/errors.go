package dto

import "net/http"

// Messages placed in the "error" field of error responses.
// Clients display this field verbatim.
const (
	MsgMissingDateRange = "Missing date range parameters"
	MsgInvalidQuery     = "Invalid query parameters"
	MsgProxyError       = "Proxy error"
	MsgRateLimited      = "Too many requests"
	MsgNotFound         = "Not found"
)

// Domain error codes that map to client errors
const (
	CodeInvalidDate     = "INVALID_DATE"
	CodeInvalidCategory = "INVALID_CATEGORY"
	CodeInvalidInput    = "INVALID_INPUT"
	CodeNotFound        = "NOT_FOUND"
)

// ErrorCodeHTTPStatus maps domain error codes to HTTP status codes.
// Codes not listed here are server errors.
var ErrorCodeHTTPStatus = map[string]int{
	CodeInvalidDate:     http.StatusBadRequest,
	CodeInvalidCategory: http.StatusBadRequest,
	CodeInvalidInput:    http.StatusBadRequest,
	CodeNotFound:        http.StatusNotFound,
}

// GetHTTPStatus returns the HTTP status for a domain error code
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// NewErrorResponse creates an error response without details
func NewErrorResponse(message string) ErrorResponse {
	return ErrorResponse{Error: message}
}

// NewErrorResponseWithDetails creates an error response carrying the underlying cause
func NewErrorResponseWithDetails(message, details string) ErrorResponse {
	return ErrorResponse{Error: message, Details: details}
}
