package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/dukastore-api/internal/domain/entity"
	"github.com/sangkips/dukastore-api/internal/domain/repository"
	"github.com/sangkips/dukastore-api/pkg/apperror"
	"github.com/sangkips/dukastore-api/pkg/pagination"
)

// ReportService serves invoice history and printable copies
type ReportService struct {
	invoiceRepo repository.InvoiceRepository
	productRepo repository.ProductRepository
	renderer    InvoicePDFRenderer
}

// NewReportService creates a new report service
func NewReportService(invoiceRepo repository.InvoiceRepository, productRepo repository.ProductRepository, renderer InvoicePDFRenderer) *ReportService {
	return &ReportService{
		invoiceRepo: invoiceRepo,
		productRepo: productRepo,
		renderer:    renderer,
	}
}

// ListInvoices returns the invoice history, newest first
func (s *ReportService) ListInvoices(ctx context.Context, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.Invoice], error) {
	invoices, total, err := s.invoiceRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(invoices, pag), nil
}

// GetInvoice retrieves one invoice with its items
func (s *ReportService) GetInvoice(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	return invoice, nil
}

// RenderInvoicePDF produces a printable copy of a stored invoice. Product
// details are re-read from the catalog to describe each line; items whose
// product has since been removed fall back to the stored snapshot.
func (s *ReportService) RenderInvoicePDF(ctx context.Context, id uuid.UUID) ([]byte, *entity.Invoice, error) {
	invoice, err := s.GetInvoice(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	codes := make([]string, 0, len(invoice.Items))
	for _, item := range invoice.Items {
		codes = append(codes, item.ProductCode)
	}

	products, err := s.productRepo.GetByCodes(ctx, codes)
	if err != nil {
		return nil, nil, err
	}
	byCode := make(map[string]*entity.Product, len(products))
	for i := range products {
		byCode[products[i].Code] = &products[i]
	}

	pdf, err := s.renderer.Render(invoice, byCode)
	if err != nil {
		return nil, nil, err
	}
	return pdf, invoice, nil
}
