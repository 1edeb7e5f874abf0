package dto

import (
	"net/http"

	"github.com/storefront/backend/internal/domain/shared"
)

// statusByCode maps domain error codes to HTTP status codes
var statusByCode = map[string]int{
	shared.ErrNotFound.Code:          http.StatusNotFound,
	shared.ErrInvalidInput.Code:      http.StatusBadRequest,
	shared.ErrAlreadyExists.Code:     http.StatusConflict,
	shared.ErrEmptyCart.Code:         http.StatusBadRequest,
	shared.ErrInsufficientStock.Code: http.StatusBadRequest,
	shared.ErrUnauthorized.Code:      http.StatusUnauthorized,
}

// HTTPStatusForCode returns the HTTP status for a domain error code.
// Unknown codes map to 500.
func HTTPStatusForCode(code string) int {
	if status, ok := statusByCode[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
