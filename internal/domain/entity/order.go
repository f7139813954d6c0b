package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden.
const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

// Order representa una venta registrada en una sucursal. Inmutable una vez
// completada, salvo transiciones de estado. Posee sus OrderItems.
type Order struct {
	ID             string
	BranchID       string
	Subtotal       decimal.Decimal
	Tax            decimal.Decimal
	Total          decimal.Decimal
	Status         string
	IdempotencyKey string // opcional; único si está presente
	CreatedAt      time.Time
	UpdatedAt      time.Time
	Items          []*OrderItem
}

// CanTransition valida la máquina de estados de la orden:
// pending → confirmed → completed, y cualquier estado → cancelled.
// completed y cancelled son terminales (completed solo admite cancelación).
func CanTransition(from, to string) bool {
	switch from {
	case OrderStatusPending:
		return to == OrderStatusConfirmed || to == OrderStatusCancelled
	case OrderStatusConfirmed:
		return to == OrderStatusCompleted || to == OrderStatusCancelled
	case OrderStatusCompleted:
		return to == OrderStatusCancelled
	default:
		return false
	}
}

// IsTerminal indica si el estado no admite más transiciones (salvo la cancelación
// de una orden completada, manejada en CanTransition).
func IsTerminal(status string) bool {
	return status == OrderStatusCancelled
}

// ValidStatus indica si el string corresponde a un estado conocido.
func ValidStatus(status string) bool {
	switch status {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}
