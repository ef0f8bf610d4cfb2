package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sangkips/dukastore-api/pkg/apperror"
	"github.com/xuri/excelize/v2"
)

// importColumns is the expected header of bulk import files, in order
var importColumns = []string{
	"item", "category", "type_material", "size", "color",
	"description", "buying_price", "selling_price", "quantity",
}

// RowError describes a rejected import row. Row numbering is 1-based and
// counts the header.
type RowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// ImportResult summarizes a bulk import run
type ImportResult struct {
	Imported int        `json:"imported"`
	Failed   int        `json:"failed"`
	Errors   []RowError `json:"errors,omitempty"`
}

// ImportService loads catalog entries in bulk from CSV or XLSX files. Each
// row is inserted independently, so one bad row never blocks the rest; codes
// are generated the same way as for single creates.
type ImportService struct {
	productService *ProductService
}

// NewImportService creates a new import service
func NewImportService(productService *ProductService) *ImportService {
	return &ImportService{productService: productService}
}

// ImportCSV imports products from a CSV stream
func (s *ImportService) ImportCSV(ctx context.Context, r io.Reader) (*ImportResult, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, apperror.NewBadRequestError("Could not read CSV header")
	}
	if err := validateHeader(header); err != nil {
		return nil, err
	}

	result := &ImportResult{}
	row := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		row++
		if err != nil {
			result.addError(row, "malformed CSV row")
			continue
		}
		s.importRow(ctx, result, row, record)
	}
	return result, nil
}

// ImportXLSX imports products from the first sheet of an XLSX file
func (s *ImportService) ImportXLSX(ctx context.Context, r io.Reader) (*ImportResult, error) {
	file, err := excelize.OpenReader(r)
	if err != nil {
		return nil, apperror.NewBadRequestError("Could not open XLSX file")
	}
	defer file.Close()

	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return nil, apperror.NewBadRequestError("XLSX file has no sheets")
	}

	rows, err := file.GetRows(sheets[0])
	if err != nil {
		return nil, apperror.NewBadRequestError("Could not read XLSX rows")
	}
	if len(rows) == 0 {
		return nil, apperror.NewBadRequestError("XLSX sheet is empty")
	}
	if err := validateHeader(rows[0]); err != nil {
		return nil, err
	}

	result := &ImportResult{}
	for i, record := range rows[1:] {
		s.importRow(ctx, result, i+2, record)
	}
	return result, nil
}

// importRow parses and inserts a single row, recording the outcome
func (s *ImportService) importRow(ctx context.Context, result *ImportResult, row int, record []string) {
	input, err := parseRow(record)
	if err != nil {
		result.addError(row, err.Error())
		return
	}

	if _, err := s.productService.CreateProduct(ctx, input); err != nil {
		result.addError(row, apperror.GetAppError(err).Message)
		return
	}
	result.Imported++
}

func (r *ImportResult) addError(row int, message string) {
	r.Failed++
	r.Errors = append(r.Errors, RowError{Row: row, Message: message})
}

func validateHeader(header []string) error {
	if len(header) < len(importColumns) {
		return apperror.NewBadRequestError("Import header is missing columns, expected: " + strings.Join(importColumns, ","))
	}
	for i, want := range importColumns {
		got := strings.ToLower(strings.TrimSpace(header[i]))
		if got != want {
			return apperror.NewBadRequestError(fmt.Sprintf("Unexpected column %q at position %d, expected %q", header[i], i+1, want))
		}
	}
	return nil
}

func parseRow(record []string) (*CreateProductInput, error) {
	if len(record) < len(importColumns) {
		return nil, fmt.Errorf("expected %d columns, got %d", len(importColumns), len(record))
	}

	buyingPrice, err := strconv.ParseFloat(strings.TrimSpace(record[6]), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid buying_price %q", record[6])
	}
	sellingPrice, err := strconv.ParseFloat(strings.TrimSpace(record[7]), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid selling_price %q", record[7])
	}
	quantity, err := strconv.Atoi(strings.TrimSpace(record[8]))
	if err != nil {
		return nil, fmt.Errorf("invalid quantity %q", record[8])
	}

	return &CreateProductInput{
		Item:         strings.TrimSpace(record[0]),
		Category:     strings.TrimSpace(record[1]),
		TypeMaterial: strings.TrimSpace(record[2]),
		Size:         strings.TrimSpace(record[3]),
		Color:        strings.TrimSpace(record[4]),
		Description:  strings.TrimSpace(record[5]),
		BuyingPrice:  buyingPrice,
		SellingPrice: sellingPrice,
		Quantity:     quantity,
	}, nil
}
