// Package invoicepdf renders customer invoices as printable PDF documents.
package invoicepdf

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/sangkips/dukastore-api/internal/domain/entity"
)

// StoreInfo is printed in the invoice header
type StoreInfo struct {
	Name    string
	Address string
	Phone   string
}

// Renderer renders invoices to PDF
type Renderer struct {
	store StoreInfo
}

// NewRenderer creates a new invoice PDF renderer
func NewRenderer(store StoreInfo) *Renderer {
	return &Renderer{store: store}
}

// Render produces a printable A4 invoice. products supplies the catalog
// details for each line's product code; lines whose product is gone are
// rendered from the invoice item's own snapshot.
func (r *Renderer) Render(invoice *entity.Invoice, products map[string]*entity.Product) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Invoice %s", invoice.Number), false)
	pdf.AddPage()

	// Header
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, r.store.Name)
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	if r.store.Address != "" {
		pdf.Cell(0, 6, r.store.Address)
		pdf.Ln(5)
	}
	if r.store.Phone != "" {
		pdf.Cell(0, 6, "Tel: "+r.store.Phone)
		pdf.Ln(5)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, fmt.Sprintf("Invoice %s", invoice.Number))
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", invoice.DateCreated.Format("02 Jan 2006 15:04")))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Customer: %s", invoice.CustomerName))
	pdf.Ln(5)
	if invoice.CustomerEmail != "" {
		pdf.Cell(0, 6, fmt.Sprintf("Email: %s", invoice.CustomerEmail))
		pdf.Ln(5)
	}
	pdf.Ln(4)

	// Line items
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(235, 235, 235)
	pdf.CellFormat(25, 8, "Code", "1", 0, "L", true, 0, "")
	pdf.CellFormat(75, 8, "Item", "1", 0, "L", true, 0, "")
	pdf.CellFormat(20, 8, "Qty", "1", 0, "R", true, 0, "")
	pdf.CellFormat(35, 8, "Unit Price", "1", 0, "R", true, 0, "")
	pdf.CellFormat(35, 8, "Amount", "1", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range invoice.Items {
		description := item.ProductCode
		if p, ok := products[item.ProductCode]; ok {
			description = fmt.Sprintf("%s %s, %s, %s", p.Category, p.Item, p.Size, p.Color)
		}
		amount := float64(item.UnitPrice*int64(item.Quantity)) / 100

		pdf.CellFormat(25, 8, item.ProductCode, "1", 0, "L", false, 0, "")
		pdf.CellFormat(75, 8, description, "1", 0, "L", false, 0, "")
		pdf.CellFormat(20, 8, fmt.Sprintf("%d", item.Quantity), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 8, fmt.Sprintf("%.2f", item.GetUnitPriceDecimal()), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 8, fmt.Sprintf("%.2f", amount), "1", 1, "R", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(155, 9, "Total", "1", 0, "R", false, 0, "")
	pdf.CellFormat(35, 9, fmt.Sprintf("%.2f", invoice.GetTotalAmountDecimal()), "1", 1, "R", false, 0, "")

	pdf.Ln(8)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.Cell(0, 6, "Thank you for shopping with us.")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render invoice PDF: %w", err)
	}
	return buf.Bytes(), nil
}
