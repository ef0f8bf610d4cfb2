package handler

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/dukastore-api/internal/application/service"
	"github.com/sangkips/dukastore-api/internal/domain/repository"
	"github.com/sangkips/dukastore-api/internal/presentation/http/dto/request"
	"github.com/sangkips/dukastore-api/internal/presentation/http/dto/response"
	"github.com/sangkips/dukastore-api/pkg/pagination"
)

// dateLayout is the format for sale filter date query parameters
const dateLayout = "2006-01-02"

// SaleHandler handles sale HTTP requests
type SaleHandler struct {
	saleService *service.SaleService
}

// NewSaleHandler creates a new sale handler
func NewSaleHandler(saleService *service.SaleService) *SaleHandler {
	return &SaleHandler{saleService: saleService}
}

// Record handles checkout: decrements stock, writes the sale rows and issues
// the invoice in one transaction
func (h *SaleHandler) Record(c *gin.Context) {
	var req request.RecordSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	lines := make([]service.SaleLine, 0, len(req.Items))
	for _, item := range req.Items {
		lines = append(lines, service.SaleLine{
			Code:     item.Code,
			Quantity: item.Quantity,
		})
	}

	invoice, err := h.saleService.RecordSale(c.Request.Context(), &service.RecordSaleInput{
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		Lines:         lines,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Sale recorded successfully", invoice)
}

// List handles the sales history listing with date and product filters
func (h *SaleHandler) List(c *gin.Context) {
	var filter request.SaleFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &repository.SaleFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    filter.Page,
			PerPage: filter.PerPage,
		},
	}
	params.Pagination.Validate()

	if filter.From != "" {
		from, err := time.Parse(dateLayout, filter.From)
		if err != nil {
			response.BadRequest(c, "Invalid from date, expected YYYY-MM-DD")
			return
		}
		params.From = &from
	}
	if filter.To != "" {
		to, err := time.Parse(dateLayout, filter.To)
		if err != nil {
			response.BadRequest(c, "Invalid to date, expected YYYY-MM-DD")
			return
		}
		// Include the whole closing day
		to = to.Add(24*time.Hour - time.Nanosecond)
		params.To = &to
	}
	if filter.Codes != "" {
		for _, code := range strings.Split(filter.Codes, ",") {
			if code = strings.TrimSpace(code); code != "" {
				params.Codes = append(params.Codes, code)
			}
		}
	}

	result, revenue, err := h.saleService.ListSales(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sales retrieved successfully", gin.H{
		"sales":         result,
		"total_revenue": revenue,
	})
}
