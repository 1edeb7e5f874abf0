package dto

// Response statuses used by every API endpoint
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Response is the envelope returned by every JSON endpoint.
// Successful responses carry a payload; error responses carry a message
// and optionally structured details.
type Response struct {
	Status  string `json:"status"`
	Payload any    `json:"payload,omitempty"`
	Message string `json:"message,omitempty"`
	Details any    `json:"details,omitempty"`
}

// NewSuccessResponse creates a success envelope wrapping the payload
func NewSuccessResponse(payload any) Response {
	return Response{
		Status:  StatusSuccess,
		Payload: payload,
	}
}

// NewErrorResponse creates an error envelope with a human-readable message
func NewErrorResponse(message string) Response {
	return Response{
		Status:  StatusError,
		Message: message,
	}
}

// NewErrorResponseWithDetails creates an error envelope carrying structured
// details alongside the message (e.g. the products that blocked a checkout)
func NewErrorResponseWithDetails(message string, details any) Response {
	return Response{
		Status:  StatusError,
		Message: message,
		Details: details,
	}
}
