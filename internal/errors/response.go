package errors

import "net/http"

// ErrorDetail is the client-facing shape of a single error.
type ErrorDetail struct {
	Message           string                 `json:"message"`
	InternalError     string                 `json:"internal_error,omitempty"`
	ReportableDetails map[string]interface{} `json:"details,omitempty"`
}

// ErrorResponse is the JSON body returned for failed requests.
type ErrorResponse struct {
	Success bool        `json:"success"`
	Error   ErrorDetail `json:"error"`
}

// NewErrorResponse converts any error into a transport response.
func NewErrorResponse(err error) *ErrorResponse {
	resp := &ErrorResponse{
		Success: false,
		Error: ErrorDetail{
			Message:           Hint(err),
			InternalError:     err.Error(),
			ReportableDetails: ReportableDetails(err),
		},
	}
	if resp.Error.Message == "" {
		resp.Error.Message = "An unexpected error occurred"
	}
	return resp
}

// HTTPStatusFromErr maps the error classification onto an HTTP status.
func HTTPStatusFromErr(err error) int {
	switch {
	case IsValidation(err), IsInvalidOperation(err):
		return http.StatusBadRequest
	case IsNotFound(err):
		return http.StatusNotFound
	case IsAlreadyExists(err), IsVersionConflict(err):
		return http.StatusConflict
	case IsSinkUnavailable(err):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
