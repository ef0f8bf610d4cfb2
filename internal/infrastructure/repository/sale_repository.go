package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/dukastore-api/internal/domain/entity"
	domainRepo "github.com/sangkips/dukastore-api/internal/domain/repository"
	"github.com/sangkips/dukastore-api/pkg/pagination"
	"gorm.io/gorm"
)

// errStockShort aborts the checkout transaction when a conditional decrement
// affected no rows; it never escapes RecordCheckout.
var errStockShort = errors.New("insufficient stock")

type saleRepository struct {
	db *gorm.DB
}

// NewSaleRepository creates a new sale repository
func NewSaleRepository(db *gorm.DB) domainRepo.SaleRepository {
	return &saleRepository{db: db}
}

// RecordCheckout persists one checkout as a single unit of work. Stock is
// decremented with "UPDATE ... SET quantity = quantity - ? WHERE code = ? AND
// quantity >= ?", so two concurrent sales of the last unit cannot both
// succeed. Any short line rolls back every write from this call.
func (r *saleRepository) RecordCheckout(ctx context.Context, invoice *entity.Invoice, sales []entity.Sale) ([]string, error) {
	var failed []string

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, sale := range sales {
			result := tx.Model(&entity.Product{}).
				Where("code = ? AND quantity >= ?", sale.ProductCode, sale.QuantitySold).
				Update("quantity", gorm.Expr("quantity - ?", sale.QuantitySold))
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				failed = append(failed, sale.ProductCode)
			}
		}

		if len(failed) > 0 {
			return errStockShort
		}

		if err := tx.Create(&sales).Error; err != nil {
			return err
		}

		// Creating the invoice cascades its items
		return tx.Create(invoice).Error
	})

	if errors.Is(err, errStockShort) {
		return failed, nil
	}
	return nil, err
}

func (r *saleRepository) List(ctx context.Context, params *domainRepo.SaleFilterParams) ([]entity.Sale, int64, error) {
	var sales []entity.Sale
	var total int64

	query := filterSales(r.db.WithContext(ctx).Model(&entity.Sale{}), params)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Product").
		Order("sale_date DESC").
		Find(&sales).Error

	return sales, total, err
}

// SumFiltered totals quantity_sold times the product's current selling price
// over the filtered sales, in cents.
func (r *saleRepository) SumFiltered(ctx context.Context, params *domainRepo.SaleFilterParams) (int64, error) {
	var total *int64
	err := filterSales(r.db.WithContext(ctx).Model(&entity.Sale{}), params).
		Joins("JOIN products ON products.code = sales.product_code").
		Select("SUM(sales.quantity_sold * products.selling_price)").
		Scan(&total).Error
	if err != nil || total == nil {
		return 0, err
	}
	return *total, nil
}

func filterSales(query *gorm.DB, params *domainRepo.SaleFilterParams) *gorm.DB {
	if params.From != nil {
		query = query.Where("sale_date >= ?", *params.From)
	}
	if params.To != nil {
		query = query.Where("sale_date <= ?", *params.To)
	}
	if len(params.Codes) > 0 {
		query = query.Where("product_code IN ?", params.Codes)
	}
	return query
}

func (r *saleRepository) ExistsForProduct(ctx context.Context, code string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Sale{}).
		Where("product_code = ?", code).
		Count(&count).Error
	return count > 0, err
}

type invoiceRepository struct {
	db *gorm.DB
}

// NewInvoiceRepository creates a new invoice repository
func NewInvoiceRepository(db *gorm.DB) domainRepo.InvoiceRepository {
	return &invoiceRepository{db: db}
}

func (r *invoiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	var invoice entity.Invoice
	err := r.db.WithContext(ctx).
		Preload("Items").
		First(&invoice, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &invoice, err
}

func (r *invoiceRepository) List(ctx context.Context, params *pagination.PaginationParams) ([]entity.Invoice, int64, error) {
	var invoices []entity.Invoice
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Invoice{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Preload("Items").
		Order("date_created DESC").
		Find(&invoices).Error

	return invoices, total, err
}
