package repository

import (
	"time"

	"github.com/tu-usuario/retail-pos/internal/domain/entity"
)

// OrderRepository define el puerto de persistencia para Order y sus OrderItems.
type OrderRepository interface {
	// Create persiste la cabecera de la orden.
	Create(order *entity.Order) error
	// CreateItem persiste una línea de la orden.
	CreateItem(item *entity.OrderItem) error
	// GetByID obtiene la orden con sus líneas. Retorna nil si no existe.
	GetByID(id string) (*entity.Order, error)
	// GetByIdempotencyKey obtiene la orden registrada con esa clave. Retorna nil si no existe.
	GetByIdempotencyKey(key string) (*entity.Order, error)
	// UpdateStatus cambia el estado de la orden solo si su estado actual es
	// `from` (compare-and-set): dos transiciones concurrentes desde el mismo
	// estado no pueden ganar ambas. Retorna ErrInvalidTransition si la orden ya
	// no está en `from`.
	UpdateStatus(id, from, to string, updatedAt time.Time) error
	// ListByBranch lista órdenes de una sucursal en un rango de fechas, más recientes primero.
	ListByBranch(branchID string, from, to *time.Time, limit, offset int) ([]*entity.Order, error)
}
