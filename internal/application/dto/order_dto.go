package dto

import "github.com/shopspring/decimal"

// OrderItemRequest línea del carrito: tipo explícito en lugar de arreglos sueltos.
type OrderItemRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	Price     decimal.Decimal `json:"price"` // precio unitario acordado en la venta
}

// PlaceOrderRequest body para POST /api/orders.
// IdempotencyKey es opcional: reintentos con la misma clave devuelven la orden original.
type PlaceOrderRequest struct {
	BranchID       string             `json:"branch_id"`
	Items          []OrderItemRequest `json:"items"`
	Subtotal       decimal.Decimal    `json:"subtotal"`
	Tax            decimal.Decimal    `json:"tax"`
	Total          decimal.Decimal    `json:"total"`
	IdempotencyKey string             `json:"idempotency_key,omitempty"`
}

// TransitionOrderRequest body para PATCH /api/orders/:id/status.
type TransitionOrderRequest struct {
	Status string `json:"status"`
}

// OrderItemResponse línea persistida de una orden.
type OrderItemResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// OrderResponse orden persistida con sus líneas.
type OrderResponse struct {
	ID        string              `json:"id"`
	BranchID  string              `json:"branch_id"`
	Subtotal  decimal.Decimal     `json:"subtotal"`
	Tax       decimal.Decimal     `json:"tax"`
	Total     decimal.Decimal     `json:"total"`
	Status    string              `json:"status"`
	CreatedAt string              `json:"created_at"`
	Items     []OrderItemResponse `json:"items"`
}

// ReceiveStockRequest body para POST /api/inventory/receipts (entrada de mercancía).
type ReceiveStockRequest struct {
	BranchID  string           `json:"branch_id"`
	ProductID string           `json:"product_id"`
	Quantity  int64            `json:"quantity"`
	UnitCost  *decimal.Decimal `json:"unit_cost,omitempty"`
}

// AdjustStockRequest body para POST /api/inventory/adjustments. Quantity con signo.
type AdjustStockRequest struct {
	BranchID  string `json:"branch_id"`
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
	Reason    string `json:"reason,omitempty"`
}

// StockMovementResponse movimiento del ledger para consultas de auditoría.
type StockMovementResponse struct {
	ID          string          `json:"id"`
	ReferenceID string          `json:"reference_id,omitempty"`
	ProductID   string          `json:"product_id"`
	BranchID    string          `json:"branch_id"`
	Type        string          `json:"type"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	CreatedAt   string          `json:"created_at"`
}
