package service

import (
	"testing"

	"github.com/sangkips/dukastore-api/internal/domain/entity"
	"github.com/sangkips/dukastore-api/internal/domain/repository"
	"github.com/sangkips/dukastore-api/pkg/apperror"
	"github.com/sangkips/dukastore-api/pkg/pagination"
)

func TestCreateProductGeneratesSequentialCodes(t *testing.T) {
	db := newTestDB(t)
	svc := newProductService(db)

	input := &CreateProductInput{
		Item:         "shirt",
		Category:     "casual",
		TypeMaterial: "cotton",
		Size:         "L",
		Color:        "white",
		BuyingPrice:  10.00,
		SellingPrice: 15.50,
		Quantity:     4,
	}

	first, err := svc.CreateProduct(ctx(), input)
	if err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}
	if first.Code != "SC0001" {
		t.Errorf("first code = %q, want SC0001", first.Code)
	}
	if first.Profit != 550 {
		t.Errorf("profit = %d cents, want 550", first.Profit)
	}

	second, err := svc.CreateProduct(ctx(), input)
	if err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}
	if second.Code != "SC0002" {
		t.Errorf("second code = %q, want SC0002", second.Code)
	}

	// A different category pair runs its own sequence
	tie, err := svc.CreateProduct(ctx(), &CreateProductInput{
		Item: "tie", SellingPrice: 5, Quantity: 1,
	})
	if err != nil {
		t.Fatalf("CreateProduct tie: %v", err)
	}
	if tie.Code != "TIE0001" {
		t.Errorf("tie code = %q, want TIE0001", tie.Code)
	}
}

func TestCreateProductRetriesPastOccupiedCode(t *testing.T) {
	db := newTestDB(t)
	// Occupy SC0001 without raising the (shirt, casual) count
	seedProduct(t, db, "SC0001", "jacket", "imported", 9000, 1)

	svc := newProductService(db)
	product, err := svc.CreateProduct(ctx(), &CreateProductInput{
		Item:         "shirt",
		Category:     "casual",
		SellingPrice: 12,
		Quantity:     1,
	})
	if err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}
	if product.Code != "SC0002" {
		t.Errorf("code = %q, want SC0002 after retry", product.Code)
	}
}

func TestCreateProductRejectsBadCategories(t *testing.T) {
	db := newTestDB(t)
	svc := newProductService(db)

	cases := []struct {
		name  string
		input CreateProductInput
	}{
		{"unknown item", CreateProductInput{Item: "hat", SellingPrice: 1}},
		{"missing subcategory", CreateProductInput{Item: "shirt", SellingPrice: 1}},
		{"subcategory on simple item", CreateProductInput{Item: "tie", Category: "casual", SellingPrice: 1}},
		{"negative price", CreateProductInput{Item: "tie", SellingPrice: -1}},
		{"negative quantity", CreateProductInput{Item: "tie", SellingPrice: 1, Quantity: -2}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateProduct(ctx(), &tc.input)
			appErr := apperror.GetAppError(err)
			if err == nil || appErr.Code != 400 {
				t.Errorf("expected 400, got %v", err)
			}
		})
	}

	if got := countRows(t, db, &entity.Product{}); got != 0 {
		t.Errorf("products persisted = %d, want 0", got)
	}
}

func TestUpdateProductRecomputesProfitAndKeepsCode(t *testing.T) {
	db := newTestDB(t)
	seedProduct(t, db, "SO0001", "shirt", "official", 3000, 2)
	svc := newProductService(db)

	newSelling := 40.00
	updated, err := svc.UpdateProduct(ctx(), "SO0001", &UpdateProductInput{
		SellingPrice: &newSelling,
	})
	if err != nil {
		t.Fatalf("UpdateProduct: %v", err)
	}
	if updated.Code != "SO0001" {
		t.Errorf("code changed to %q", updated.Code)
	}
	if updated.Profit != 4000-1500 {
		t.Errorf("profit = %d, want 2500", updated.Profit)
	}

	var stored entity.Product
	db.First(&stored, "code = ?", "SO0001")
	if stored.Profit != 2500 {
		t.Errorf("stored profit = %d, want 2500", stored.Profit)
	}
}

func TestDeleteProductGuardedBySalesHistory(t *testing.T) {
	db := newTestDB(t)
	seedProduct(t, db, "TIE0001", "tie", "", 500, 5)
	if err := db.Create(&entity.Sale{ProductCode: "TIE0001", QuantitySold: 1}).Error; err != nil {
		t.Fatalf("seed sale: %v", err)
	}

	svc := newProductService(db)

	err := svc.DeleteProduct(ctx(), "TIE0001")
	appErr := apperror.GetAppError(err)
	if err == nil || appErr.Code != 409 {
		t.Fatalf("expected 409 for referenced product, got %v", err)
	}

	seedProduct(t, db, "TIE0002", "tie", "", 500, 5)
	if err := svc.DeleteProduct(ctx(), "TIE0002"); err != nil {
		t.Fatalf("DeleteProduct unreferenced: %v", err)
	}
	if err := svc.DeleteProduct(ctx(), "TIE0099"); apperror.GetAppError(err).Code != 404 {
		t.Errorf("expected 404 for missing product, got %v", err)
	}
}

func TestListProductsHidesOutOfStock(t *testing.T) {
	db := newTestDB(t)
	seedProduct(t, db, "SC0001", "shirt", "casual", 2000, 3)
	seedProduct(t, db, "SC0002", "shirt", "casual", 2000, 0)

	svc := newProductService(db)
	result, err := svc.ListProducts(ctx(), &repository.ProductFilterParams{
		Pagination: pagination.DefaultPagination(),
	})
	if err != nil {
		t.Fatalf("ListProducts: %v", err)
	}
	if len(result.Items) != 1 || result.Items[0].Code != "SC0001" {
		t.Errorf("listing = %v, want only SC0001", result.Items)
	}
	if result.Pagination.Total != 1 {
		t.Errorf("total = %d, want 1", result.Pagination.Total)
	}
}

func TestSearchProductsMatchesAnyField(t *testing.T) {
	db := newTestDB(t)
	p := seedProduct(t, db, "SC0001", "shirt", "casual", 2000, 3)
	p.Color = "Maroon"
	if err := db.Save(p).Error; err != nil {
		t.Fatalf("save: %v", err)
	}
	seedProduct(t, db, "TIE0001", "tie", "", 500, 2)

	svc := newProductService(db)
	found, err := svc.SearchProducts(ctx(), "maroon")
	if err != nil {
		t.Fatalf("SearchProducts: %v", err)
	}
	if len(found) != 1 || found[0].Code != "SC0001" {
		t.Errorf("search hit = %v, want SC0001 by color", found)
	}
}

func TestRestockProduct(t *testing.T) {
	db := newTestDB(t)
	seedProduct(t, db, "BX0001", "boxers", "", 300, 1)

	svc := newProductService(db)
	product, err := svc.RestockProduct(ctx(), "BX0001", 9)
	if err != nil {
		t.Fatalf("RestockProduct: %v", err)
	}
	if product.Quantity != 10 {
		t.Errorf("quantity = %d, want 10", product.Quantity)
	}

	if _, err := svc.RestockProduct(ctx(), "BX0001", 0); apperror.GetAppError(err).Code != 400 {
		t.Errorf("expected 400 for non-positive amount, got %v", err)
	}
	if _, err := svc.RestockProduct(ctx(), "BX9999", 1); apperror.GetAppError(err).Code != 404 {
		t.Errorf("expected 404 for missing product, got %v", err)
	}
}

func TestGroupProducts(t *testing.T) {
	products := []entity.Product{
		{Code: "SC0001", Item: "shirt", Category: "casual", BuyingPrice: 1000, SellingPrice: 1500, Profit: 500, Quantity: 2},
		{Code: "SC0002", Item: "shirt", Category: "casual", BuyingPrice: 1200, SellingPrice: 2000, Profit: 800, Quantity: 1},
		{Code: "TIE0001", Item: "tie", Category: "", BuyingPrice: 200, SellingPrice: 500, Profit: 300, Quantity: 4},
	}

	groups := GroupProducts(products)
	if len(groups) != 2 {
		t.Fatalf("groups = %d, want 2", len(groups))
	}

	shirts := groups[0]
	if shirts.Item != "shirt" || shirts.Category != "casual" {
		t.Fatalf("first group = %s/%s, want shirt/casual", shirts.Item, shirts.Category)
	}
	if len(shirts.Products) != 2 {
		t.Errorf("shirt group size = %d, want 2", len(shirts.Products))
	}
	if shirts.TotalQuantity != 3 {
		t.Errorf("shirt quantity = %d, want 3", shirts.TotalQuantity)
	}
	// 2x10.00 + 1x12.00 buying, 2x15.00 + 1x20.00 selling, 2x5.00 + 1x8.00 profit
	if shirts.TotalBuyingValue != 32.00 {
		t.Errorf("buying value = %.2f, want 32.00", shirts.TotalBuyingValue)
	}
	if shirts.TotalSellingValue != 50.00 {
		t.Errorf("selling value = %.2f, want 50.00", shirts.TotalSellingValue)
	}
	if shirts.TotalProfit != 18.00 {
		t.Errorf("profit = %.2f, want 18.00", shirts.TotalProfit)
	}

	ties := groups[1]
	if ties.Item != "tie" || ties.TotalQuantity != 4 {
		t.Errorf("second group = %s qty %d, want tie qty 4", ties.Item, ties.TotalQuantity)
	}

	if got := GroupProducts(nil); len(got) != 0 {
		t.Errorf("empty catalog groups = %d, want 0", len(got))
	}
}

func TestExpandProducts(t *testing.T) {
	db := newTestDB(t)
	seedProduct(t, db, "SC0001", "shirt", "casual", 2000, 3)
	seedProduct(t, db, "SC0002", "shirt", "casual", 2000, 0) // out of stock
	seedProduct(t, db, "SC0003", "shirt", "casual", 2500, 1) // different price

	svc := newProductService(db)
	products, err := svc.ExpandProducts(ctx(), "shirt", "cotton", "M", 20.00)
	if err != nil {
		t.Fatalf("ExpandProducts: %v", err)
	}
	if len(products) != 1 || products[0].Code != "SC0001" {
		t.Errorf("expanded = %v, want only SC0001", products)
	}
}
