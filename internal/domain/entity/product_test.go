package entity

import (
	"encoding/json"
	"testing"
)

func TestRecalculateProfit(t *testing.T) {
	p := Product{BuyingPrice: 1050, SellingPrice: 2000}
	p.RecalculateProfit()
	if p.Profit != 950 {
		t.Errorf("profit = %d, want 950", p.Profit)
	}

	// Selling below cost yields a negative margin, not an error
	p = Product{BuyingPrice: 2000, SellingPrice: 1500}
	p.RecalculateProfit()
	if p.Profit != -500 {
		t.Errorf("profit = %d, want -500", p.Profit)
	}
}

func TestProductDecimalHelpers(t *testing.T) {
	var p Product
	p.SetBuyingPriceFromDecimal(12.34)
	p.SetSellingPriceFromDecimal(19.99)
	if p.BuyingPrice != 1234 || p.SellingPrice != 1999 {
		t.Errorf("cents = %d/%d, want 1234/1999", p.BuyingPrice, p.SellingPrice)
	}
	if p.GetSellingPriceDecimal() != 19.99 {
		t.Errorf("decimal = %v, want 19.99", p.GetSellingPriceDecimal())
	}
}

func TestProductJSONUsesDecimalPrices(t *testing.T) {
	p := Product{
		Code:         "SC0001",
		Item:         "shirt",
		BuyingPrice:  1000,
		SellingPrice: 1550,
		Profit:       550,
	}

	data, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded["buying_price"] != 10.0 {
		t.Errorf("buying_price = %v, want 10", decoded["buying_price"])
	}
	if decoded["selling_price"] != 15.5 {
		t.Errorf("selling_price = %v, want 15.5", decoded["selling_price"])
	}
	if decoded["profit"] != 5.5 {
		t.Errorf("profit = %v, want 5.5", decoded["profit"])
	}
}
