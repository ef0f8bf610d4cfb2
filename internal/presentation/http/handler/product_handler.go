package handler

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/dukastore-api/internal/application/service"
	"github.com/sangkips/dukastore-api/internal/domain/repository"
	"github.com/sangkips/dukastore-api/internal/domain/tag"
	"github.com/sangkips/dukastore-api/internal/presentation/http/dto/request"
	"github.com/sangkips/dukastore-api/internal/presentation/http/dto/response"
	"github.com/sangkips/dukastore-api/pkg/pagination"
)

// ProductHandler handles catalog HTTP requests
type ProductHandler struct {
	productService *service.ProductService
	importService  *service.ImportService
}

// NewProductHandler creates a new product handler
func NewProductHandler(productService *service.ProductService, importService *service.ImportService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		importService:  importService,
	}
}

// List handles the main catalog listing: in-stock products, optionally
// narrowed by a search term
func (h *ProductHandler) List(c *gin.Context) {
	var filter request.ProductFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &repository.ProductFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    filter.Page,
			PerPage: filter.PerPage,
		},
		Search: filter.Search,
	}
	params.Pagination.Validate()

	result, err := h.productService.ListProducts(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Products retrieved successfully", result)
}

// Create handles creating a product
func (h *ProductHandler) Create(c *gin.Context) {
	var req request.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), &service.CreateProductInput{
		Item:         req.Item,
		Category:     req.Category,
		TypeMaterial: req.TypeMaterial,
		Size:         req.Size,
		Color:        req.Color,
		Description:  req.Description,
		BuyingPrice:  req.BuyingPrice,
		SellingPrice: req.SellingPrice,
		Quantity:     req.Quantity,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Product created successfully", product)
}

// Get handles getting a single product by code
func (h *ProductHandler) Get(c *gin.Context) {
	code := c.Param("code")
	if code == "" {
		response.BadRequest(c, "Product code is required")
		return
	}

	product, err := h.productService.GetProduct(c.Request.Context(), code)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product retrieved successfully", product)
}

// Update handles updating a product
func (h *ProductHandler) Update(c *gin.Context) {
	code := c.Param("code")
	if code == "" {
		response.BadRequest(c, "Product code is required")
		return
	}

	var req request.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), code, &service.UpdateProductInput{
		Item:         req.Item,
		Category:     req.Category,
		TypeMaterial: req.TypeMaterial,
		Size:         req.Size,
		Color:        req.Color,
		Description:  req.Description,
		BuyingPrice:  req.BuyingPrice,
		SellingPrice: req.SellingPrice,
		Quantity:     req.Quantity,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product updated successfully", product)
}

// Delete handles deleting a product by code
func (h *ProductHandler) Delete(c *gin.Context) {
	code := c.Param("code")
	if code == "" {
		response.BadRequest(c, "Product code is required")
		return
	}

	if err := h.productService.DeleteProduct(c.Request.Context(), code); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// Filter handles free-text catalog search
func (h *ProductHandler) Filter(c *gin.Context) {
	var req request.FilterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Search term is required")
		return
	}

	products, err := h.productService.SearchProducts(c.Request.Context(), req.SearchTerm)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Products retrieved successfully", products)
}

// Groups handles the aggregated inventory view
func (h *ProductHandler) Groups(c *gin.Context) {
	groups, err := h.productService.GroupInventory(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Inventory groups retrieved successfully", groups)
}

// Expand handles expanding one aggregate row into its individual products
func (h *ProductHandler) Expand(c *gin.Context) {
	var req request.ExpandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	products, err := h.productService.ExpandProducts(c.Request.Context(), req.Item, req.TypeMaterial, req.Size, req.SellingPrice)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Products retrieved successfully", products)
}

// Restock handles adding stock to a product
func (h *ProductHandler) Restock(c *gin.Context) {
	code := c.Param("code")
	if code == "" {
		response.BadRequest(c, "Product code is required")
		return
	}

	var req request.RestockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	product, err := h.productService.RestockProduct(c.Request.Context(), code, req.Amount)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product restocked successfully", product)
}

// Categories lists the known product categories and whether each one needs a
// casual/official subcategory, for form rendering
func (h *ProductHandler) Categories(c *gin.Context) {
	names := tag.Categories()
	sort.Strings(names)

	type categoryInfo struct {
		Name            string `json:"name"`
		HasSubcategories bool  `json:"has_subcategories"`
	}
	categories := make([]categoryInfo, 0, len(names))
	for _, name := range names {
		hasSub, err := tag.HasSubcategories(name)
		if err != nil {
			response.Error(c, err)
			return
		}
		categories = append(categories, categoryInfo{Name: name, HasSubcategories: hasSub})
	}

	response.OK(c, "Categories retrieved successfully", categories)
}

// Import handles bulk catalog import from an uploaded CSV or XLSX file
func (h *ProductHandler) Import(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "An import file is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, "Could not open uploaded file")
		return
	}
	defer file.Close()

	var result *service.ImportResult
	switch strings.ToLower(filepath.Ext(fileHeader.Filename)) {
	case ".csv":
		result, err = h.importService.ImportCSV(c.Request.Context(), file)
	case ".xlsx":
		result, err = h.importService.ImportXLSX(c.Request.Context(), file)
	default:
		response.BadRequest(c, "Unsupported file type, expected .csv or .xlsx")
		return
	}
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Import completed", result)
}
