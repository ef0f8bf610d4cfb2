package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Sale records one product line sold at a point in time. Rows are insert-only;
// they are never updated or deleted by the normal flow.
type Sale struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ProductCode  string    `gorm:"size:20;not null;index" json:"product_code"`
	QuantitySold int       `gorm:"not null" json:"quantity_sold"`
	SaleDate     time.Time `gorm:"not null;index" json:"sale_date"`
	CreatedAt    time.Time `json:"created_at"`

	// Read-only join for displaying item details alongside a sale
	Product *Product `gorm:"foreignKey:ProductCode;references:Code;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"product,omitempty"`
}

// BeforeCreate generates a UUID before creating a new sale
func (s *Sale) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.SaleDate.IsZero() {
		s.SaleDate = time.Now()
	}
	return nil
}

// TableName returns the table name for the Sale model
func (Sale) TableName() string {
	return "sales"
}
