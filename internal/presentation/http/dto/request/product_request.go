package request

// CreateProductRequest represents the create product request body. The
// product code is derived server-side and never supplied by the client.
type CreateProductRequest struct {
	Item         string  `json:"item" binding:"required"`
	Category     string  `json:"category"`
	TypeMaterial string  `json:"type_material"`
	Size         string  `json:"size"`
	Color        string  `json:"color"`
	Description  string  `json:"description"`
	BuyingPrice  float64 `json:"buying_price" binding:"min=0"`
	SellingPrice float64 `json:"selling_price" binding:"min=0"`
	Quantity     int     `json:"quantity" binding:"min=0"`
}

// UpdateProductRequest represents the update product request body. Absent
// fields are left unchanged.
type UpdateProductRequest struct {
	Item         *string  `json:"item"`
	Category     *string  `json:"category"`
	TypeMaterial *string  `json:"type_material"`
	Size         *string  `json:"size"`
	Color        *string  `json:"color"`
	Description  *string  `json:"description"`
	BuyingPrice  *float64 `json:"buying_price"`
	SellingPrice *float64 `json:"selling_price"`
	Quantity     *int     `json:"quantity"`
}

// ProductFilterRequest represents the product listing query parameters
type ProductFilterRequest struct {
	Page    int    `form:"page"`
	PerPage int    `form:"per_page"`
	Search  string `form:"search"`
}

// FilterRequest represents the free-text search request body
type FilterRequest struct {
	SearchTerm string `json:"search_term" binding:"required"`
}

// ExpandRequest represents the aggregate-row expansion request body
type ExpandRequest struct {
	Item         string  `json:"item" binding:"required"`
	TypeMaterial string  `json:"type_material"`
	Size         string  `json:"size"`
	SellingPrice float64 `json:"selling_price"`
}

// RestockRequest represents the restock request body
type RestockRequest struct {
	Amount int `json:"amount" binding:"required,min=1"`
}
