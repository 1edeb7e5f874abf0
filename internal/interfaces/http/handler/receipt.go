package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	cartapp "github.com/storefront/backend/internal/application/cart"
	"github.com/storefront/backend/internal/infrastructure/printing"
)

// ReceiptHandler renders purchase tickets as PDF receipts
type ReceiptHandler struct {
	BaseHandler
	carts    *cartapp.CartService
	renderer printing.PDFRenderer
	logger   *zap.Logger
}

// NewReceiptHandler creates a new receipt handler
func NewReceiptHandler(carts *cartapp.CartService, renderer printing.PDFRenderer, logger *zap.Logger) *ReceiptHandler {
	return &ReceiptHandler{
		carts:    carts,
		renderer: renderer,
		logger:   logger.Named("receipt_handler"),
	}
}

// RegisterRoutes registers ticket routes
func (h *ReceiptHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/tickets/:tid/receipt", h.Receipt)
}

// Receipt renders the ticket as a PDF receipt
func (h *ReceiptHandler) Receipt(c *gin.Context) {
	ticketID, ok := h.parseUUIDParam(c, "tid")
	if !ok {
		return
	}

	ticket, err := h.carts.GetTicketRecord(c.Request.Context(), ticketID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	html, err := printing.BuildReceiptHTML(ticket)
	if err != nil {
		h.logger.Error("Failed to build receipt", zap.Error(err))
		h.InternalError(c, "Failed to build receipt")
		return
	}

	pdf, err := h.renderer.Render(c.Request.Context(), html)
	if err != nil {
		h.logger.Error("Failed to render receipt", zap.Error(err))
		h.InternalError(c, "Failed to render receipt")
		return
	}

	filename := fmt.Sprintf("receipt-%s.pdf", ticket.Code)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
