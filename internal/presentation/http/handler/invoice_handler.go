package handler

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/dukastore-api/internal/application/service"
	"github.com/sangkips/dukastore-api/internal/presentation/http/dto/response"
	"github.com/sangkips/dukastore-api/pkg/pagination"
)

// InvoiceHandler handles invoice HTTP requests
type InvoiceHandler struct {
	reportService *service.ReportService
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(reportService *service.ReportService) *InvoiceHandler {
	return &InvoiceHandler{reportService: reportService}
}

// List handles the invoice history listing
func (h *InvoiceHandler) List(c *gin.Context) {
	params := &pagination.PaginationParams{}
	if err := c.ShouldBindQuery(params); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}
	params.Validate()

	result, err := h.reportService.ListInvoices(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Invoices retrieved successfully", result)
}

// Get handles getting a single invoice with its items
func (h *InvoiceHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	invoice, err := h.reportService.GetInvoice(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice retrieved successfully", invoice)
}

// PDF handles downloading a printable copy of an invoice
func (h *InvoiceHandler) PDF(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	pdf, invoice, err := h.reportService.RenderInvoicePDF(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	filename := fmt.Sprintf("invoice-%s.pdf", invoice.Number)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(200, "application/pdf", pdf)
}
