package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Product represents a clothing item in the catalog. Item is the category
// name ("shirt", "tie"), Category the optional subcategory ("casual",
// "official") used for code generation.
type Product struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Code         string    `gorm:"size:20;uniqueIndex;not null" json:"code"`
	Item         string    `gorm:"size:100;not null;index:idx_products_item_category" json:"item"`
	Category     string    `gorm:"size:100;index:idx_products_item_category" json:"category"`
	TypeMaterial string    `gorm:"size:100;not null" json:"type_material"`
	Size         string    `gorm:"size:20;not null" json:"size"`
	Color        string    `gorm:"size:50;not null" json:"color"`
	Description  string    `gorm:"type:text" json:"description"`
	BuyingPrice  int64     `gorm:"not null;default:0" json:"-"` // Stored in cents
	SellingPrice int64     `gorm:"not null;default:0" json:"-"` // Stored in cents
	Profit       int64     `gorm:"not null;default:0" json:"-"` // Derived, stored in cents
	Quantity     int       `gorm:"not null;default:0" json:"quantity"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new product
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// BeforeSave recomputes the derived profit so it can never drift from the two
// prices, no matter which write path touched them.
func (p *Product) BeforeSave(tx *gorm.DB) error {
	p.RecalculateProfit()
	return nil
}

// RecalculateProfit enforces profit = selling price - buying price
func (p *Product) RecalculateProfit() {
	p.Profit = p.SellingPrice - p.BuyingPrice
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// GetBuyingPriceDecimal returns the buying price as a decimal (for display)
func (p *Product) GetBuyingPriceDecimal() float64 {
	return float64(p.BuyingPrice) / 100
}

// GetSellingPriceDecimal returns the selling price as a decimal (for display)
func (p *Product) GetSellingPriceDecimal() float64 {
	return float64(p.SellingPrice) / 100
}

// GetProfitDecimal returns the profit as a decimal (for display)
func (p *Product) GetProfitDecimal() float64 {
	return float64(p.Profit) / 100
}

// SetBuyingPriceFromDecimal sets the buying price from a decimal value
func (p *Product) SetBuyingPriceFromDecimal(price float64) {
	p.BuyingPrice = int64(price * 100)
}

// SetSellingPriceFromDecimal sets the selling price from a decimal value
func (p *Product) SetSellingPriceFromDecimal(price float64) {
	p.SellingPrice = int64(price * 100)
}

// MarshalJSON converts Product to JSON with decimal prices
func (p Product) MarshalJSON() ([]byte, error) {
	type Alias Product
	return json.Marshal(&struct {
		Alias
		BuyingPrice  float64 `json:"buying_price"`
		SellingPrice float64 `json:"selling_price"`
		Profit       float64 `json:"profit"`
	}{
		Alias:        Alias(p),
		BuyingPrice:  p.GetBuyingPriceDecimal(),
		SellingPrice: p.GetSellingPriceDecimal(),
		Profit:       p.GetProfitDecimal(),
	})
}
