package dto

import "github.com/shopspring/decimal"

// CreateBranchRequest body para POST /api/branches.
type CreateBranchRequest struct {
	Name          string `json:"name"`
	Location      string `json:"location"`
	ContactNumber string `json:"contact_number"`
}

// BranchResponse representación de una sucursal.
type BranchResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Location      string `json:"location"`
	ContactNumber string `json:"contact_number"`
	CreatedAt     string `json:"created_at"`
}

// CreateCategoryRequest body para POST /api/categories.
type CreateCategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CategoryResponse representación de una categoría.
type CategoryResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CreateProductRequest body para POST /api/products. La sucursal es obligatoria:
// un producto nace asignado a su sucursal, nunca se reasigna de forma implícita.
type CreateProductRequest struct {
	Name          string          `json:"name"`
	CategoryID    string          `json:"category_id"`
	BranchID      string          `json:"branch_id"`
	Barcode       string          `json:"barcode"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int64           `json:"stock_quantity"`
	Image         string          `json:"image,omitempty"`
}

// UpdateProductRequest body para PUT /api/products/:id. No incluye stock:
// el inventario solo cambia a través del ledger.
type UpdateProductRequest struct {
	Name       string          `json:"name"`
	CategoryID string          `json:"category_id"`
	BranchID   string          `json:"branch_id"`
	Barcode    string          `json:"barcode"`
	Price      decimal.Decimal `json:"price"`
	Image      string          `json:"image,omitempty"`
}

// ProductResponse representación de un producto del catálogo.
type ProductResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	CategoryID    string          `json:"category_id"`
	BranchID      string          `json:"branch_id"`
	Barcode       string          `json:"barcode"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int64           `json:"stock_quantity"`
	Image         string          `json:"image,omitempty"`
}
