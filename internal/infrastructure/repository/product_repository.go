package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/sangkips/dukastore-api/internal/domain/entity"
	domainRepo "github.com/sangkips/dukastore-api/internal/domain/repository"
	"gorm.io/gorm"
)

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *gorm.DB) domainRepo.ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *productRepository) GetByCode(ctx context.Context, code string) (*entity.Product, error) {
	var product entity.Product
	err := r.db.WithContext(ctx).First(&product, "code = ?", code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &product, err
}

// GetByCodes retrieves multiple products by code in a single query
func (r *productRepository) GetByCodes(ctx context.Context, codes []string) ([]entity.Product, error) {
	if len(codes) == 0 {
		return []entity.Product{}, nil
	}
	var products []entity.Product
	err := r.db.WithContext(ctx).
		Where("code IN ?", codes).
		Find(&products).Error
	return products, err
}

func (r *productRepository) Update(ctx context.Context, product *entity.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

func (r *productRepository) Delete(ctx context.Context, code string) error {
	return r.db.WithContext(ctx).Delete(&entity.Product{}, "code = ?", code).Error
}

func (r *productRepository) List(ctx context.Context, params *domainRepo.ProductFilterParams) ([]entity.Product, int64, error) {
	var products []entity.Product
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Product{})

	if params.InStock {
		query = query.Where("quantity > 0")
	}

	if params.Search != "" {
		query = searchScope(query, params.Search)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order("code ASC").
		Find(&products).Error

	return products, total, err
}

func (r *productRepository) All(ctx context.Context) ([]entity.Product, error) {
	var products []entity.Product
	err := r.db.WithContext(ctx).Order("code ASC").Find(&products).Error
	return products, err
}

func (r *productRepository) Search(ctx context.Context, term string) ([]entity.Product, error) {
	var products []entity.Product
	err := searchScope(r.db.WithContext(ctx).Model(&entity.Product{}), term).
		Order("code ASC").
		Find(&products).Error
	return products, err
}

// searchScope matches the term case-insensitively against every descriptive
// field. LOWER(...) LIKE keeps the query portable across postgres and the
// sqlite used in tests.
func searchScope(query *gorm.DB, term string) *gorm.DB {
	pattern := "%" + strings.ToLower(term) + "%"
	return query.Where(
		"LOWER(item) LIKE ? OR LOWER(type_material) LIKE ? OR LOWER(size) LIKE ? OR LOWER(color) LIKE ? OR LOWER(description) LIKE ?",
		pattern, pattern, pattern, pattern, pattern,
	)
}

func (r *productRepository) Expand(ctx context.Context, item, typeMaterial, size string, sellingPrice int64) ([]entity.Product, error) {
	var products []entity.Product
	err := r.db.WithContext(ctx).
		Where("item = ? AND type_material = ? AND size = ? AND selling_price = ? AND quantity > 0",
			item, typeMaterial, size, sellingPrice).
		Order("code ASC").
		Find(&products).Error
	return products, err
}

func (r *productRepository) CountByItemCategory(ctx context.Context, item, category string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Product{}).
		Where("item = ? AND category = ?", item, category).
		Count(&count).Error
	return count, err
}

// IncrementQuantity atomically adds stock to a product
func (r *productRepository) IncrementQuantity(ctx context.Context, code string, amount int) error {
	result := r.db.WithContext(ctx).Model(&entity.Product{}).
		Where("code = ?", code).
		Update("quantity", gorm.Expr("quantity + ?", amount))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
