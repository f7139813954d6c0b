package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/retail-pos/internal/domain"
	"github.com/tu-usuario/retail-pos/internal/domain/entity"
	"github.com/tu-usuario/retail-pos/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación del puerto OrderRepository sobre PostgreSQL (usable con pool o tx).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador de persistencia para órdenes. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create persiste la cabecera de la orden. idempotency_key único cuando no es
// NULL: una repetición se traduce a ErrDuplicate y el caso de uso resuelve el replay.
func (r *OrderRepo) Create(order *entity.Order) error {
	query := `
		INSERT INTO orders (id, branch_id, subtotal, tax, total, status, idempotency_key, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.BranchID, order.Subtotal, order.Tax, order.Total,
		order.Status, nullIfEmpty(order.IdempotencyKey), order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// CreateItem persiste una línea de la orden.
func (r *OrderRepo) CreateItem(item *entity.OrderItem) error {
	query := `
		INSERT INTO order_items (id, order_id, product_id, quantity, price)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.OrderID, item.ProductID, item.Quantity, item.Price,
	)
	if err != nil {
		return fmt.Errorf("insert order item: %w", err)
	}
	return nil
}

// GetByID obtiene la orden con sus líneas. Retorna nil si no existe.
func (r *OrderRepo) GetByID(id string) (*entity.Order, error) {
	order, err := r.getHeader(`WHERE id = $1`, id)
	if err != nil || order == nil {
		return order, err
	}
	order.Items, err = r.getItems(order.ID)
	if err != nil {
		return nil, err
	}
	return order, nil
}

// GetByIdempotencyKey obtiene la orden registrada con esa clave. Retorna nil si no existe.
func (r *OrderRepo) GetByIdempotencyKey(key string) (*entity.Order, error) {
	order, err := r.getHeader(`WHERE idempotency_key = $1`, key)
	if err != nil || order == nil {
		return order, err
	}
	order.Items, err = r.getItems(order.ID)
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (r *OrderRepo) getHeader(where string, arg any) (*entity.Order, error) {
	query := `
		SELECT id, branch_id, subtotal, tax, total, status, COALESCE(idempotency_key, ''), created_at, updated_at
		FROM orders ` + where
	var o entity.Order
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&o.ID, &o.BranchID, &o.Subtotal, &o.Tax, &o.Total,
		&o.Status, &o.IdempotencyKey, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return &o, nil
}

func (r *OrderRepo) getItems(orderID string) ([]*entity.OrderItem, error) {
	query := `
		SELECT id, order_id, product_id, quantity, price
		FROM order_items WHERE order_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()
	var items []*entity.OrderItem
	for rows.Next() {
		var it entity.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Quantity, &it.Price); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		items = append(items, &it)
	}
	return items, rows.Err()
}

// UpdateStatus cambia el estado de la orden con la condición de que siga en
// `from`. Cero filas afectadas significa que otra transición ganó la carrera
// (o la orden no existe): el caso de uso ya verificó existencia, así que se
// reporta como transición inválida.
func (r *OrderRepo) UpdateStatus(id, from, to string, updatedAt time.Time) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE orders SET status = $3, updated_at = $4 WHERE id = $1 AND status = $2`,
		id, from, to, updatedAt,
	)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrInvalidTransition
	}
	return nil
}

// ListByBranch lista órdenes de una sucursal en un rango de fechas, más recientes
// primero. from/to en nil omiten ese extremo del rango. No carga las líneas.
func (r *OrderRepo) ListByBranch(branchID string, from, to *time.Time, limit, offset int) ([]*entity.Order, error) {
	query := `
		SELECT id, branch_id, subtotal, tax, total, status, COALESCE(idempotency_key, ''), created_at, updated_at
		FROM orders
		WHERE branch_id = $1
		  AND ($2::timestamptz IS NULL OR created_at >= $2)
		  AND ($3::timestamptz IS NULL OR created_at <= $3)
		ORDER BY created_at DESC LIMIT $4 OFFSET $5`
	rows, err := r.q.Query(context.Background(), query, branchID, from, to, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()
	var list []*entity.Order
	for rows.Next() {
		var o entity.Order
		if err := rows.Scan(&o.ID, &o.BranchID, &o.Subtotal, &o.Tax, &o.Total,
			&o.Status, &o.IdempotencyKey, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, &o)
	}
	return list, rows.Err()
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
