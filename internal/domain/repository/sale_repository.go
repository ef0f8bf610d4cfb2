package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/dukastore-api/internal/domain/entity"
	"github.com/sangkips/dukastore-api/pkg/pagination"
)

// SaleRepository defines the interface for sale data operations, including
// the checkout unit of work.
type SaleRepository interface {
	// RecordCheckout persists one checkout atomically: it conditionally
	// decrements stock for every sale line (only while quantity stays >= 0),
	// creates the Sale rows, and creates the Invoice with its items. If any
	// line has insufficient stock the whole transaction rolls back and the
	// failing product codes are returned with a nil error; nothing is
	// persisted in that case.
	RecordCheckout(ctx context.Context, invoice *entity.Invoice, sales []entity.Sale) (failedCodes []string, err error)
	List(ctx context.Context, params *SaleFilterParams) ([]entity.Sale, int64, error)
	// SumFiltered returns the running total of the filtered sales in cents,
	// quantity_sold times the product's current selling price
	SumFiltered(ctx context.Context, params *SaleFilterParams) (int64, error)
	// ExistsForProduct reports whether any sale references the product code
	ExistsForProduct(ctx context.Context, code string) (bool, error)
}

// SaleFilterParams contains filtering parameters for sale queries. From and
// To bound sale_date inclusively; Codes restricts to a set of product codes.
type SaleFilterParams struct {
	Pagination *pagination.PaginationParams
	From       *time.Time
	To         *time.Time
	Codes      []string
}

// InvoiceRepository defines the interface for invoice reads
type InvoiceRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error)
	List(ctx context.Context, params *pagination.PaginationParams) ([]entity.Invoice, int64, error)
}
