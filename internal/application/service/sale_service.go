package service

import (
	"context"
	"log"
	"time"

	"github.com/sangkips/dukastore-api/internal/domain/entity"
	"github.com/sangkips/dukastore-api/internal/domain/repository"
	"github.com/sangkips/dukastore-api/pkg/apperror"
	"github.com/sangkips/dukastore-api/pkg/pagination"
	"github.com/sangkips/dukastore-api/pkg/utils"
)

// InvoicePDFRenderer renders a committed invoice into PDF bytes
type InvoicePDFRenderer interface {
	Render(invoice *entity.Invoice, products map[string]*entity.Product) ([]byte, error)
}

// InvoiceMailer delivers a rendered invoice to the customer
type InvoiceMailer interface {
	SendInvoice(to string, invoice *entity.Invoice, pdf []byte) error
}

// SaleNotifier pushes a short notification about a completed sale
type SaleNotifier interface {
	NotifySale(invoice *entity.Invoice) error
}

// SaleService records sales and issues invoices. The stock movement and the
// invoice commit atomically; delivery of the PDF, email and notification is
// best effort and never unwinds a recorded sale.
type SaleService struct {
	saleRepo    repository.SaleRepository
	productRepo repository.ProductRepository
	renderer    InvoicePDFRenderer
	mailer      InvoiceMailer
	notifier    SaleNotifier
}

// NewSaleService creates a new sale service. renderer, mailer and notifier
// may be nil when the corresponding channel is not configured.
func NewSaleService(
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	renderer InvoicePDFRenderer,
	mailer InvoiceMailer,
	notifier SaleNotifier,
) *SaleService {
	return &SaleService{
		saleRepo:    saleRepo,
		productRepo: productRepo,
		renderer:    renderer,
		mailer:      mailer,
		notifier:    notifier,
	}
}

// SaleLine is one product line of a checkout
type SaleLine struct {
	Code     string
	Quantity int
}

// RecordSaleInput represents a checkout request
type RecordSaleInput struct {
	CustomerName  string
	CustomerEmail string
	Lines         []SaleLine
}

// RecordSale processes a checkout: verifies every product exists, decrements
// stock and writes the sale and invoice rows in one transaction, then fires
// the delivery side effects. Any line short on stock aborts the whole sale
// and reports the offending codes.
func (s *SaleService) RecordSale(ctx context.Context, input *RecordSaleInput) (*entity.Invoice, error) {
	if len(input.Lines) == 0 {
		return nil, apperror.NewBadRequestError("A sale needs at least one item")
	}
	for _, line := range input.Lines {
		if line.Quantity <= 0 {
			return nil, apperror.NewBadRequestError("Item quantities must be positive")
		}
	}

	codes := make([]string, 0, len(input.Lines))
	for _, line := range input.Lines {
		codes = append(codes, line.Code)
	}

	products, err := s.productRepo.GetByCodes(ctx, codes)
	if err != nil {
		return nil, err
	}
	byCode := make(map[string]*entity.Product, len(products))
	for i := range products {
		byCode[products[i].Code] = &products[i]
	}
	for _, line := range input.Lines {
		if _, ok := byCode[line.Code]; !ok {
			return nil, apperror.NewNotFoundError("Product " + line.Code)
		}
	}

	now := time.Now()
	sales := make([]entity.Sale, 0, len(input.Lines))
	items := make([]entity.InvoiceItem, 0, len(input.Lines))
	var total int64
	for _, line := range input.Lines {
		product := byCode[line.Code]
		sales = append(sales, entity.Sale{
			ProductCode:  line.Code,
			QuantitySold: line.Quantity,
			SaleDate:     now,
		})
		items = append(items, entity.InvoiceItem{
			ProductCode: line.Code,
			Quantity:    line.Quantity,
			UnitPrice:   product.SellingPrice,
		})
		total += product.SellingPrice * int64(line.Quantity)
	}

	invoice := &entity.Invoice{
		Number:        utils.GenerateInvoiceNo(),
		CustomerName:  input.CustomerName,
		CustomerEmail: input.CustomerEmail,
		TotalAmount:   total,
		DateCreated:   now,
		Items:         items,
	}

	failed, err := s.saleRepo.RecordCheckout(ctx, invoice, sales)
	if err != nil {
		return nil, err
	}
	if len(failed) > 0 {
		return nil, apperror.NewInsufficientStockError(failed)
	}

	s.deliverInvoice(invoice, byCode)

	return invoice, nil
}

// deliverInvoice runs the post-commit side effects. Failures are logged and
// swallowed; the sale is already on the books.
func (s *SaleService) deliverInvoice(invoice *entity.Invoice, products map[string]*entity.Product) {
	var pdf []byte
	if s.renderer != nil {
		var err error
		pdf, err = s.renderer.Render(invoice, products)
		if err != nil {
			log.Printf("invoice %s: PDF rendering failed: %v", invoice.Number, err)
		}
	}

	if s.mailer != nil && invoice.CustomerEmail != "" && pdf != nil {
		if err := s.mailer.SendInvoice(invoice.CustomerEmail, invoice, pdf); err != nil {
			log.Printf("invoice %s: email delivery failed: %v", invoice.Number, err)
		}
	}

	if s.notifier != nil {
		if err := s.notifier.NotifySale(invoice); err != nil {
			log.Printf("invoice %s: sale notification failed: %v", invoice.Number, err)
		}
	}
}

// ListSales returns the filtered sales history with a running revenue total
// over the whole filtered set, not just the current page.
func (s *SaleService) ListSales(ctx context.Context, params *repository.SaleFilterParams) (*pagination.PaginatedResult[entity.Sale], float64, error) {
	sales, total, err := s.saleRepo.List(ctx, params)
	if err != nil {
		return nil, 0, err
	}

	revenue, err := s.saleRepo.SumFiltered(ctx, params)
	if err != nil {
		return nil, 0, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(sales, pag), float64(revenue) / 100, nil
}
