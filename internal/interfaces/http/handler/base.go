package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/interfaces/http/dto"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// Success sends a 200 response wrapping the payload
func (h *BaseHandler) Success(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(payload))
}

// Created sends a 201 created response wrapping the payload
func (h *BaseHandler) Created(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(payload))
}

// NoContent sends a 204 no content response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// BadRequest sends a 400 error response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, dto.NewErrorResponse(message))
}

// NotFound sends a 404 error response
func (h *BaseHandler) NotFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, dto.NewErrorResponse(message))
}

// Unauthorized sends a 401 error response
func (h *BaseHandler) Unauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(message))
}

// InternalError sends a 500 error response
func (h *BaseHandler) InternalError(c *gin.Context, message string) {
	c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(message))
}

// parseUUIDParam parses a UUID path parameter, answering 400 on failure
func (h *BaseHandler) parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		h.BadRequest(c, "Invalid "+name+" parameter")
		return uuid.Nil, false
	}
	return id, true
}

// HandleDomainError converts domain errors to HTTP responses.
// The error code picks the status; structured details (e.g. the products
// that blocked a checkout) are passed through to the client.
func (h *BaseHandler) HandleDomainError(c *gin.Context, err error) {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		status := dto.HTTPStatusForCode(domainErr.Code)
		if domainErr.Details != nil {
			c.JSON(status, dto.NewErrorResponseWithDetails(domainErr.Message, domainErr.Details))
			return
		}
		c.JSON(status, dto.NewErrorResponse(domainErr.Message))
		return
	}

	h.InternalError(c, "An unexpected error occurred")
}
