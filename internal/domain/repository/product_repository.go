package repository

import (
	"context"

	"github.com/sangkips/dukastore-api/internal/domain/entity"
	"github.com/sangkips/dukastore-api/pkg/pagination"
)

// ProductRepository defines the interface for catalog data operations
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByCode(ctx context.Context, code string) (*entity.Product, error)
	// GetByCodes retrieves multiple products by code in a single query
	GetByCodes(ctx context.Context, codes []string) ([]entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, code string) error
	List(ctx context.Context, params *ProductFilterParams) ([]entity.Product, int64, error)
	// All returns the whole catalog, for the aggregated inventory view
	All(ctx context.Context) ([]entity.Product, error)
	// Search does a case-insensitive substring match across item,
	// type_material, size, color and description
	Search(ctx context.Context, term string) ([]entity.Product, error)
	// Expand returns in-stock products matching an aggregate row exactly
	Expand(ctx context.Context, item, typeMaterial, size string, sellingPrice int64) ([]entity.Product, error)
	// CountByItemCategory counts products sharing an (item, category) pair,
	// used to derive the next code sequence number
	CountByItemCategory(ctx context.Context, item, category string) (int64, error)
	// IncrementQuantity atomically adds stock to a product (restocking)
	IncrementQuantity(ctx context.Context, code string, amount int) error
}

// ProductFilterParams contains filtering parameters for catalog queries
type ProductFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	// InStock limits the listing to products with quantity > 0 (the main
	// catalog view)
	InStock bool
}
