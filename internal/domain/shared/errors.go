package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// WithMessage returns a copy of the error with a more specific message
func (e *DomainError) WithMessage(message string) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: message,
		Details: e.Details,
	}
}

// WithDetails returns a copy of the error carrying structured details
func (e *DomainError) WithDetails(details any) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
	}
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound          = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists     = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput      = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrUnauthorized      = NewDomainError("UNAUTHORIZED", "Not authorized to perform this action")
	ErrEmptyCart         = NewDomainError("EMPTY_CART", "Cart has no items to purchase")
	ErrInsufficientStock = NewDomainError("INSUFFICIENT_STOCK", "Insufficient stock available")
)
