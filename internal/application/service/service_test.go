package service

import (
	"context"
	"errors"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/sangkips/dukastore-api/internal/domain/entity"
	"github.com/sangkips/dukastore-api/internal/infrastructure/database"
	infraRepo "github.com/sangkips/dukastore-api/internal/infrastructure/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an in-memory sqlite database with the full schema. A
// single connection keeps every query on the same in-memory instance.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}

	return db
}

// seedProduct inserts a product directly, bypassing code generation
func seedProduct(t *testing.T, db *gorm.DB, code, item, category string, sellingCents int64, quantity int) *entity.Product {
	t.Helper()

	product := &entity.Product{
		Code:         code,
		Item:         item,
		Category:     category,
		TypeMaterial: "cotton",
		Size:         "M",
		Color:        "blue",
		BuyingPrice:  sellingCents / 2,
		SellingPrice: sellingCents,
		Quantity:     quantity,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("seed product %s: %v", code, err)
	}
	return product
}

func newProductService(db *gorm.DB) *ProductService {
	return NewProductService(infraRepo.NewProductRepository(db), infraRepo.NewSaleRepository(db))
}

// recordingNotifier captures notifications, optionally failing on purpose
type recordingNotifier struct {
	invoices []*entity.Invoice
	fail     bool
}

func (n *recordingNotifier) NotifySale(invoice *entity.Invoice) error {
	if n.fail {
		return errors.New("notification channel down")
	}
	n.invoices = append(n.invoices, invoice)
	return nil
}

// recordingMailer captures sent invoices, optionally failing on purpose
type recordingMailer struct {
	sent []string
	fail bool
}

func (m *recordingMailer) SendInvoice(to string, invoice *entity.Invoice, pdf []byte) error {
	if m.fail {
		return errors.New("smtp unreachable")
	}
	m.sent = append(m.sent, to)
	return nil
}

// stubRenderer produces a fixed payload instead of a real PDF
type stubRenderer struct {
	fail bool
}

func (r *stubRenderer) Render(invoice *entity.Invoice, products map[string]*entity.Product) ([]byte, error) {
	if r.fail {
		return nil, errors.New("render failed")
	}
	return []byte("%PDF-stub"), nil
}

func countRows(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var count int64
	if err := db.Model(model).Count(&count).Error; err != nil {
		t.Fatalf("count rows: %v", err)
	}
	return count
}

func ctx() context.Context {
	return context.Background()
}
