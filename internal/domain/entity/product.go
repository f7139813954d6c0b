package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo, asignado a una sucursal.
// StockQuantity es la cantidad disponible en esa sucursal; solo el Stock Ledger
// la modifica. Invariante: StockQuantity nunca es negativo.
type Product struct {
	ID            string
	Name          string
	CategoryID    string
	BranchID      string
	Barcode       string          // código de barras único
	Price         decimal.Decimal // precio de venta (> 0)
	StockQuantity int64
	Image         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
