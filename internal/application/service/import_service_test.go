package service

import (
	"strings"
	"testing"

	"github.com/sangkips/dukastore-api/internal/domain/entity"
)

const importHeader = "item,category,type_material,size,color,description,buying_price,selling_price,quantity\n"

func TestImportCSV(t *testing.T) {
	db := newTestDB(t)
	svc := NewImportService(newProductService(db))

	csv := importHeader +
		"shirt,casual,cotton,M,blue,plain shirt,10.00,15.00,5\n" +
		"tie,,silk,,red,striped tie,2.00,5.00,10\n"

	result, err := svc.ImportCSV(ctx(), strings.NewReader(csv))
	if err != nil {
		t.Fatalf("ImportCSV: %v", err)
	}
	if result.Imported != 2 || result.Failed != 0 {
		t.Fatalf("imported/failed = %d/%d, want 2/0", result.Imported, result.Failed)
	}

	var shirt entity.Product
	if err := db.First(&shirt, "code = ?", "SC0001").Error; err != nil {
		t.Fatalf("imported shirt missing: %v", err)
	}
	if shirt.SellingPrice != 1500 || shirt.Quantity != 5 {
		t.Errorf("shirt = %d cents qty %d, want 1500/5", shirt.SellingPrice, shirt.Quantity)
	}
	if shirt.Profit != 500 {
		t.Errorf("shirt profit = %d, want 500", shirt.Profit)
	}
}

func TestImportCSVSkipsBadRowsAndReportsThem(t *testing.T) {
	db := newTestDB(t)
	svc := NewImportService(newProductService(db))

	csv := importHeader +
		"shirt,casual,cotton,M,blue,ok,10.00,15.00,5\n" +
		"hat,,felt,S,grey,unknown item,1.00,2.00,1\n" +
		"tie,,silk,,red,bad price,abc,5.00,2\n" +
		"tie,,silk,,green,ok,2.00,5.00,2\n"

	result, err := svc.ImportCSV(ctx(), strings.NewReader(csv))
	if err != nil {
		t.Fatalf("ImportCSV: %v", err)
	}
	if result.Imported != 2 {
		t.Errorf("imported = %d, want 2", result.Imported)
	}
	if result.Failed != 2 {
		t.Fatalf("failed = %d, want 2", result.Failed)
	}
	if result.Errors[0].Row != 3 {
		t.Errorf("first error row = %d, want 3", result.Errors[0].Row)
	}
	if result.Errors[1].Row != 4 {
		t.Errorf("second error row = %d, want 4", result.Errors[1].Row)
	}

	if got := countRows(t, db, &entity.Product{}); got != 2 {
		t.Errorf("products persisted = %d, want 2", got)
	}
}

func TestImportCSVRejectsWrongHeader(t *testing.T) {
	db := newTestDB(t)
	svc := NewImportService(newProductService(db))

	_, err := svc.ImportCSV(ctx(), strings.NewReader("name,price\nshirt,10\n"))
	if err == nil {
		t.Fatal("expected header validation error")
	}
	if got := countRows(t, db, &entity.Product{}); got != 0 {
		t.Errorf("products persisted = %d, want 0", got)
	}
}
