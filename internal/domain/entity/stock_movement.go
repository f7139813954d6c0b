package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento del ledger de stock.
const (
	MovementTypeSALE       = "SALE"       // reserva por venta (negativo)
	MovementTypeRELEASE    = "RELEASE"    // liberación compensatoria (positivo)
	MovementTypeRECEIPT    = "RECEIPT"    // entrada de mercancía (positivo)
	MovementTypeADJUSTMENT = "ADJUSTMENT" // ajuste manual (signo libre)
)

// StockMovement es el registro auditable de cada cambio de stock_quantity.
// Todo cambio de inventario pasa por el ledger y deja exactamente un movimiento.
type StockMovement struct {
	ID          string
	ReferenceID string // ID de la orden u operación que originó el movimiento
	ProductID   string
	BranchID    string
	Type        string
	Quantity    int64           // positivo entrada, negativo salida
	UnitPrice   decimal.Decimal // precio o costo unitario asociado al movimiento
	CreatedAt   time.Time
}
