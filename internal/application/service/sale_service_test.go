package service

import (
	"testing"
	"time"

	"github.com/sangkips/dukastore-api/internal/domain/entity"
	"github.com/sangkips/dukastore-api/internal/domain/repository"
	infraRepo "github.com/sangkips/dukastore-api/internal/infrastructure/repository"
	"github.com/sangkips/dukastore-api/pkg/apperror"
	"github.com/sangkips/dukastore-api/pkg/pagination"
	"gorm.io/gorm"
)

func newSaleService(db *gorm.DB, renderer InvoicePDFRenderer, mailer InvoiceMailer, notifier SaleNotifier) *SaleService {
	return NewSaleService(
		infraRepo.NewSaleRepository(db),
		infraRepo.NewProductRepository(db),
		renderer, mailer, notifier,
	)
}

func TestRecordSale(t *testing.T) {
	db := newTestDB(t)
	seedProduct(t, db, "SC0001", "shirt", "casual", 2000, 1)
	seedProduct(t, db, "TIE0003", "tie", "", 500, 3)

	notifier := &recordingNotifier{}
	mailer := &recordingMailer{}
	svc := newSaleService(db, &stubRenderer{}, mailer, notifier)

	invoice, err := svc.RecordSale(ctx(), &RecordSaleInput{
		CustomerName:  "Wanjiku",
		CustomerEmail: "wanjiku@example.com",
		Lines: []SaleLine{
			{Code: "SC0001", Quantity: 1},
			{Code: "TIE0003", Quantity: 2},
		},
	})
	if err != nil {
		t.Fatalf("RecordSale: %v", err)
	}

	if invoice.TotalAmount != 3000 {
		t.Errorf("total = %d cents, want 3000", invoice.TotalAmount)
	}
	if invoice.Number == "" {
		t.Error("invoice number not generated")
	}
	if len(invoice.Items) != 2 {
		t.Fatalf("invoice has %d items, want 2", len(invoice.Items))
	}
	if invoice.Items[1].UnitPrice != 500 {
		t.Errorf("tie unit price = %d, want 500", invoice.Items[1].UnitPrice)
	}

	var shirt, tie entity.Product
	db.First(&shirt, "code = ?", "SC0001")
	db.First(&tie, "code = ?", "TIE0003")
	if shirt.Quantity != 0 || tie.Quantity != 1 {
		t.Errorf("stock after sale = %d/%d, want 0/1", shirt.Quantity, tie.Quantity)
	}

	if got := countRows(t, db, &entity.Sale{}); got != 2 {
		t.Errorf("sale rows = %d, want 2", got)
	}
	if got := countRows(t, db, &entity.Invoice{}); got != 1 {
		t.Errorf("invoice rows = %d, want 1", got)
	}
	if got := countRows(t, db, &entity.InvoiceItem{}); got != 2 {
		t.Errorf("invoice item rows = %d, want 2", got)
	}

	if len(notifier.invoices) != 1 {
		t.Errorf("notifications sent = %d, want 1", len(notifier.invoices))
	}
	if len(mailer.sent) != 1 || mailer.sent[0] != "wanjiku@example.com" {
		t.Errorf("emails sent = %v, want [wanjiku@example.com]", mailer.sent)
	}
}

func TestRecordSaleInsufficientStockRollsBackEverything(t *testing.T) {
	db := newTestDB(t)
	seedProduct(t, db, "SC0001", "shirt", "casual", 2000, 5)
	seedProduct(t, db, "TIE0003", "tie", "", 500, 1)

	svc := newSaleService(db, &stubRenderer{}, nil, nil)

	_, err := svc.RecordSale(ctx(), &RecordSaleInput{
		CustomerName: "Otieno",
		Lines: []SaleLine{
			{Code: "SC0001", Quantity: 2},
			{Code: "TIE0003", Quantity: 2}, // only 1 in stock
		},
	})
	if err == nil {
		t.Fatal("expected insufficient stock error")
	}
	appErr := apperror.GetAppError(err)
	if appErr.Code != 409 {
		t.Errorf("status = %d, want 409", appErr.Code)
	}

	// Nothing may be persisted, including the shirt line that had stock
	var shirt entity.Product
	db.First(&shirt, "code = ?", "SC0001")
	if shirt.Quantity != 5 {
		t.Errorf("shirt stock = %d, want 5 (rolled back)", shirt.Quantity)
	}
	if got := countRows(t, db, &entity.Sale{}); got != 0 {
		t.Errorf("sale rows = %d, want 0", got)
	}
	if got := countRows(t, db, &entity.Invoice{}); got != 0 {
		t.Errorf("invoice rows = %d, want 0", got)
	}
}

func TestRecordSaleUnknownCode(t *testing.T) {
	db := newTestDB(t)
	seedProduct(t, db, "SC0001", "shirt", "casual", 2000, 5)

	svc := newSaleService(db, &stubRenderer{}, nil, nil)

	_, err := svc.RecordSale(ctx(), &RecordSaleInput{
		CustomerName: "Amina",
		Lines: []SaleLine{
			{Code: "SC0001", Quantity: 1},
			{Code: "XX9999", Quantity: 1},
		},
	})
	appErr := apperror.GetAppError(err)
	if appErr.Code != 404 {
		t.Fatalf("status = %d, want 404", appErr.Code)
	}

	var shirt entity.Product
	db.First(&shirt, "code = ?", "SC0001")
	if shirt.Quantity != 5 {
		t.Errorf("shirt stock = %d, want 5", shirt.Quantity)
	}
}

func TestRecordSaleDuplicateLinesDrawFromSameStock(t *testing.T) {
	db := newTestDB(t)
	seedProduct(t, db, "BLT0001", "belt", "", 800, 3)

	svc := newSaleService(db, &stubRenderer{}, nil, nil)

	invoice, err := svc.RecordSale(ctx(), &RecordSaleInput{
		CustomerName: "Kiprop",
		Lines: []SaleLine{
			{Code: "BLT0001", Quantity: 2},
			{Code: "BLT0001", Quantity: 1},
		},
	})
	if err != nil {
		t.Fatalf("RecordSale: %v", err)
	}
	if invoice.TotalAmount != 2400 {
		t.Errorf("total = %d, want 2400", invoice.TotalAmount)
	}

	var belt entity.Product
	db.First(&belt, "code = ?", "BLT0001")
	if belt.Quantity != 0 {
		t.Errorf("belt stock = %d, want 0", belt.Quantity)
	}
}

func TestRecordSaleValidatesInput(t *testing.T) {
	db := newTestDB(t)
	svc := newSaleService(db, &stubRenderer{}, nil, nil)

	if _, err := svc.RecordSale(ctx(), &RecordSaleInput{CustomerName: "X"}); err == nil {
		t.Error("expected error for empty item list")
	}
	if _, err := svc.RecordSale(ctx(), &RecordSaleInput{
		CustomerName: "X",
		Lines:        []SaleLine{{Code: "SC0001", Quantity: 0}},
	}); err == nil {
		t.Error("expected error for zero quantity")
	}
}

func TestRecordSaleSurvivesFailingSideEffects(t *testing.T) {
	db := newTestDB(t)
	seedProduct(t, db, "SC0001", "shirt", "casual", 2000, 2)

	svc := newSaleService(db, &stubRenderer{fail: true}, &recordingMailer{fail: true}, &recordingNotifier{fail: true})

	invoice, err := svc.RecordSale(ctx(), &RecordSaleInput{
		CustomerName:  "Njeri",
		CustomerEmail: "njeri@example.com",
		Lines:         []SaleLine{{Code: "SC0001", Quantity: 1}},
	})
	if err != nil {
		t.Fatalf("RecordSale: %v", err)
	}
	if invoice.TotalAmount != 2000 {
		t.Errorf("total = %d, want 2000", invoice.TotalAmount)
	}
	if got := countRows(t, db, &entity.Invoice{}); got != 1 {
		t.Errorf("invoice rows = %d, want 1", got)
	}
}

func TestListSalesFilters(t *testing.T) {
	db := newTestDB(t)
	seedProduct(t, db, "SC0001", "shirt", "casual", 2000, 10)
	seedProduct(t, db, "TIE0001", "tie", "", 500, 10)

	base := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	for i, s := range []entity.Sale{
		{ProductCode: "SC0001", QuantitySold: 1, SaleDate: base},
		{ProductCode: "SC0001", QuantitySold: 2, SaleDate: base.AddDate(0, 0, 2)},
		{ProductCode: "TIE0001", QuantitySold: 3, SaleDate: base.AddDate(0, 0, 4)},
	} {
		if err := db.Create(&s).Error; err != nil {
			t.Fatalf("seed sale %d: %v", i, err)
		}
	}

	svc := newSaleService(db, &stubRenderer{}, nil, nil)

	from := base.AddDate(0, 0, 1)
	result, revenue, err := svc.ListSales(ctx(), &repository.SaleFilterParams{
		Pagination: pagination.DefaultPagination(),
		From:       &from,
	})
	if err != nil {
		t.Fatalf("ListSales: %v", err)
	}
	if len(result.Items) != 2 {
		t.Fatalf("filtered sales = %d, want 2", len(result.Items))
	}
	// 2 shirts at 20.00 plus 3 ties at 5.00
	if revenue != 55.00 {
		t.Errorf("revenue = %.2f, want 55.00", revenue)
	}

	result, revenue, err = svc.ListSales(ctx(), &repository.SaleFilterParams{
		Pagination: pagination.DefaultPagination(),
		Codes:      []string{"TIE0001"},
	})
	if err != nil {
		t.Fatalf("ListSales by code: %v", err)
	}
	if len(result.Items) != 1 {
		t.Fatalf("code-filtered sales = %d, want 1", len(result.Items))
	}
	if revenue != 15.00 {
		t.Errorf("revenue = %.2f, want 15.00", revenue)
	}
	if result.Items[0].Product == nil {
		t.Error("sale product not preloaded")
	}
}
