package request

// SaleLineRequest is one product line in a checkout
type SaleLineRequest struct {
	Code     string `json:"code" binding:"required"`
	Quantity int    `json:"quantity" binding:"required,min=1"`
}

// RecordSaleRequest represents the checkout request body
type RecordSaleRequest struct {
	CustomerName  string            `json:"customer_name" binding:"required"`
	CustomerEmail string            `json:"customer_email" binding:"omitempty,email"`
	Items         []SaleLineRequest `json:"items" binding:"required,min=1,dive"`
}

// SaleFilterRequest represents the sales listing query parameters. Dates use
// the YYYY-MM-DD format; codes is a comma-separated list of product codes.
type SaleFilterRequest struct {
	Page    int    `form:"page"`
	PerPage int    `form:"per_page"`
	From    string `form:"from"`
	To      string `form:"to"`
	Codes   string `form:"codes"`
}
