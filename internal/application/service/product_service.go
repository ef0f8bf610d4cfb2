package service

import (
	"context"
	"errors"
	"sort"

	"github.com/sangkips/dukastore-api/internal/domain/entity"
	"github.com/sangkips/dukastore-api/internal/domain/repository"
	"github.com/sangkips/dukastore-api/internal/domain/tag"
	"github.com/sangkips/dukastore-api/pkg/apperror"
	"github.com/sangkips/dukastore-api/pkg/pagination"
	"gorm.io/gorm"
)

// maxCodeAttempts bounds the retry loop that closes the count-then-insert
// race on code generation. Concurrent adds to the same (item, category) can
// both compute the same sequence; the unique index on products.code rejects
// the loser, which retries with the next sequence number.
const maxCodeAttempts = 5

// ProductService handles catalog operations
type ProductService struct {
	productRepo repository.ProductRepository
	saleRepo    repository.SaleRepository
}

// NewProductService creates a new product service
func NewProductService(productRepo repository.ProductRepository, saleRepo repository.SaleRepository) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		saleRepo:    saleRepo,
	}
}

// CreateProductInput represents the create product input. Item is the
// category name used for code generation; Category the optional subcategory.
type CreateProductInput struct {
	Item         string
	Category     string
	TypeMaterial string
	Size         string
	Color        string
	Description  string
	BuyingPrice  float64
	SellingPrice float64
	Quantity     int
}

// CreateProduct creates a new catalog entry with a generated code
func (s *ProductService) CreateProduct(ctx context.Context, input *CreateProductInput) (*entity.Product, error) {
	if input.BuyingPrice < 0 || input.SellingPrice < 0 {
		return nil, apperror.NewBadRequestError("Prices must not be negative")
	}
	if input.Quantity < 0 {
		return nil, apperror.NewBadRequestError("Quantity must not be negative")
	}

	// Validate the category pair up front so a bad request never burns a
	// sequence probe
	if _, err := tag.ResolvePrefix(input.Item, input.Category); err != nil {
		return nil, mapTagError(err)
	}

	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		count, err := s.productRepo.CountByItemCategory(ctx, input.Item, input.Category)
		if err != nil {
			return nil, err
		}

		code, err := tag.Generate(input.Item, input.Category, int(count)+1+attempt)
		if err != nil {
			return nil, mapTagError(err)
		}

		product := &entity.Product{
			Code:         code,
			Item:         input.Item,
			Category:     input.Category,
			TypeMaterial: input.TypeMaterial,
			Size:         input.Size,
			Color:        input.Color,
			Description:  input.Description,
			Quantity:     input.Quantity,
		}
		product.SetBuyingPriceFromDecimal(input.BuyingPrice)
		product.SetSellingPriceFromDecimal(input.SellingPrice)

		err = s.productRepo.Create(ctx, product)
		if err == nil {
			return product, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, err
		}
	}

	return nil, apperror.NewConflictError("Could not allocate a unique product code, please retry")
}

func mapTagError(err error) error {
	switch {
	case errors.Is(err, tag.ErrInvalidCategory):
		return apperror.NewBadRequestError("Unknown product category: " + err.Error())
	case errors.Is(err, tag.ErrInvalidSubcategory):
		return apperror.NewBadRequestError("Invalid subcategory: " + err.Error())
	default:
		return err
	}
}

// GetProduct retrieves a product by code
func (s *ProductService) GetProduct(ctx context.Context, code string) (*entity.Product, error) {
	product, err := s.productRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// UpdateProductInput represents the update product input. The code is
// immutable and not part of it.
type UpdateProductInput struct {
	Item         *string
	Category     *string
	TypeMaterial *string
	Size         *string
	Color        *string
	Description  *string
	BuyingPrice  *float64
	SellingPrice *float64
	Quantity     *int
}

// UpdateProduct mutates catalog attributes. Profit is recomputed on save so
// it stays consistent with the two prices.
func (s *ProductService) UpdateProduct(ctx context.Context, code string, input *UpdateProductInput) (*entity.Product, error) {
	product, err := s.productRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	if input.Item != nil {
		product.Item = *input.Item
	}
	if input.Category != nil {
		product.Category = *input.Category
	}
	if input.TypeMaterial != nil {
		product.TypeMaterial = *input.TypeMaterial
	}
	if input.Size != nil {
		product.Size = *input.Size
	}
	if input.Color != nil {
		product.Color = *input.Color
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.BuyingPrice != nil {
		if *input.BuyingPrice < 0 {
			return nil, apperror.NewBadRequestError("Prices must not be negative")
		}
		product.SetBuyingPriceFromDecimal(*input.BuyingPrice)
	}
	if input.SellingPrice != nil {
		if *input.SellingPrice < 0 {
			return nil, apperror.NewBadRequestError("Prices must not be negative")
		}
		product.SetSellingPriceFromDecimal(*input.SellingPrice)
	}
	if input.Quantity != nil {
		if *input.Quantity < 0 {
			return nil, apperror.NewBadRequestError("Quantity must not be negative")
		}
		product.Quantity = *input.Quantity
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct removes a product from the catalog. Deletion is refused
// while sales history references the code, so sale and invoice rows never
// point at a missing product.
func (s *ProductService) DeleteProduct(ctx context.Context, code string) error {
	product, err := s.productRepo.GetByCode(ctx, code)
	if err != nil {
		return err
	}
	if product == nil {
		return apperror.NewNotFoundError("Product")
	}

	referenced, err := s.saleRepo.ExistsForProduct(ctx, code)
	if err != nil {
		return err
	}
	if referenced {
		return apperror.NewConflictError("Product has recorded sales and cannot be deleted")
	}

	return s.productRepo.Delete(ctx, code)
}

// ListProducts returns the main catalog view: in-stock products, optionally
// narrowed by a search term.
func (s *ProductService) ListProducts(ctx context.Context, params *repository.ProductFilterParams) (*pagination.PaginatedResult[entity.Product], error) {
	params.InStock = true
	products, total, err := s.productRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(products, pag), nil
}

// SearchProducts matches the term case-insensitively against item,
// type_material, size, color and description.
func (s *ProductService) SearchProducts(ctx context.Context, term string) ([]entity.Product, error) {
	return s.productRepo.Search(ctx, term)
}

// ExpandProducts lists the in-stock products behind one aggregate row
func (s *ProductService) ExpandProducts(ctx context.Context, item, typeMaterial, size string, sellingPrice float64) ([]entity.Product, error) {
	return s.productRepo.Expand(ctx, item, typeMaterial, size, int64(sellingPrice*100))
}

// RestockProduct adds stock to an existing product
func (s *ProductService) RestockProduct(ctx context.Context, code string, amount int) (*entity.Product, error) {
	if amount <= 0 {
		return nil, apperror.NewBadRequestError("Restock amount must be positive")
	}

	err := s.productRepo.IncrementQuantity(ctx, code, amount)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NewNotFoundError("Product")
	}
	if err != nil {
		return nil, err
	}
	return s.productRepo.GetByCode(ctx, code)
}

// InventoryGroup is one row of the aggregated inventory view: all products
// sharing an (item, category) pair with quantity-weighted totals.
type InventoryGroup struct {
	Item              string           `json:"item"`
	Category          string           `json:"category"`
	Products          []entity.Product `json:"products"`
	TotalQuantity     int              `json:"total_quantity"`
	TotalBuyingValue  float64          `json:"total_buying_value"`
	TotalSellingValue float64          `json:"total_selling_value"`
	TotalProfit       float64          `json:"total_profit"`
}

// GroupInventory aggregates the whole catalog by (item, category)
func (s *ProductService) GroupInventory(ctx context.Context) ([]InventoryGroup, error) {
	products, err := s.productRepo.All(ctx)
	if err != nil {
		return nil, err
	}
	return GroupProducts(products), nil
}

// GroupProducts groups products by (item, category), producing one group per
// distinct key with every product counted exactly once. Totals are weighted
// by quantity. Groups come back sorted by item then category.
func GroupProducts(products []entity.Product) []InventoryGroup {
	type key struct{ item, category string }

	index := make(map[key]int)
	groups := make([]InventoryGroup, 0)

	for _, p := range products {
		k := key{item: p.Item, category: p.Category}
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, InventoryGroup{Item: p.Item, Category: p.Category})
		}

		qty := int64(p.Quantity)
		groups[i].Products = append(groups[i].Products, p)
		groups[i].TotalQuantity += p.Quantity
		groups[i].TotalBuyingValue += float64(p.BuyingPrice*qty) / 100
		groups[i].TotalSellingValue += float64(p.SellingPrice*qty) / 100
		groups[i].TotalProfit += float64(p.Profit*qty) / 100
	}

	sort.Slice(groups, func(a, b int) bool {
		if groups[a].Item != groups[b].Item {
			return groups[a].Item < groups[b].Item
		}
		return groups[a].Category < groups[b].Category
	})

	return groups
}
