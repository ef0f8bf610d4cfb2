package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Invoice is a customer-facing record of one checkout event. It exclusively
// owns its items; deleting an invoice deletes them.
type Invoice struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Number        string    `gorm:"size:100;uniqueIndex;not null" json:"number"`
	CustomerName  string    `gorm:"size:255;not null" json:"customer_name"`
	CustomerEmail string    `gorm:"size:255" json:"customer_email"`
	TotalAmount   int64     `gorm:"not null;default:0" json:"-"` // Stored in cents
	DateCreated   time.Time `gorm:"not null;index" json:"date_created"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	Items []InvoiceItem `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

// BeforeCreate generates a UUID before creating a new invoice
func (i *Invoice) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	if i.DateCreated.IsZero() {
		i.DateCreated = time.Now()
	}
	return nil
}

// TableName returns the table name for the Invoice model
func (Invoice) TableName() string {
	return "invoices"
}

// GetTotalAmountDecimal returns the total as a decimal (for display)
func (i *Invoice) GetTotalAmountDecimal() float64 {
	return float64(i.TotalAmount) / 100
}

// MarshalJSON converts Invoice to JSON with a decimal total
func (i Invoice) MarshalJSON() ([]byte, error) {
	type Alias Invoice
	return json.Marshal(&struct {
		Alias
		TotalAmount float64 `json:"total_amount"`
	}{
		Alias:       Alias(i),
		TotalAmount: i.GetTotalAmountDecimal(),
	})
}

// InvoiceItem is one line of an invoice. UnitPrice snapshots the selling
// price at sale time so invoices stay correct through later price edits.
type InvoiceItem struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	InvoiceID   uuid.UUID `gorm:"type:uuid;not null;index" json:"invoice_id"`
	ProductCode string    `gorm:"size:20;not null;index" json:"product_code"`
	Quantity    int       `gorm:"not null" json:"quantity"`
	UnitPrice   int64     `gorm:"not null" json:"-"` // Stored in cents
	CreatedAt   time.Time `json:"created_at"`
}

// BeforeCreate generates a UUID before creating a new invoice item
func (it *InvoiceItem) BeforeCreate(tx *gorm.DB) error {
	if it.ID == uuid.Nil {
		it.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the InvoiceItem model
func (InvoiceItem) TableName() string {
	return "invoice_items"
}

// GetUnitPriceDecimal returns the unit price as a decimal (for display)
func (it *InvoiceItem) GetUnitPriceDecimal() float64 {
	return float64(it.UnitPrice) / 100
}

// MarshalJSON converts InvoiceItem to JSON with a decimal unit price
func (it InvoiceItem) MarshalJSON() ([]byte, error) {
	type Alias InvoiceItem
	return json.Marshal(&struct {
		Alias
		UnitPrice float64 `json:"unit_price"`
	}{
		Alias:     Alias(it),
		UnitPrice: it.GetUnitPriceDecimal(),
	})
}
