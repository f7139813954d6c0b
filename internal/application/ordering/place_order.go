// Package ordering convierte un carrito validado en una orden persistida con
// sus efectos de inventario, como una operación todo-o-nada.
package ordering

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/retail-pos/internal/application/dto"
	"github.com/tu-usuario/retail-pos/internal/application/ledger"
	"github.com/tu-usuario/retail-pos/internal/domain"
	"github.com/tu-usuario/retail-pos/internal/domain/entity"
	"github.com/tu-usuario/retail-pos/internal/domain/repository"
)

// OrderProcessor procesa órdenes: valida el carrito, reserva stock vía ledger
// y persiste Order + OrderItems en una sola transacción.
type OrderProcessor struct {
	txRunner    ledger.TxRunner
	stockLedger Ledger
	branchRepo  repository.BranchRepository
	productRepo repository.ProductRepository
	orderRepo   repository.OrderRepository
}

// NewOrderProcessor construye el procesador de órdenes.
func NewOrderProcessor(
	txRunner ledger.TxRunner,
	stockLedger Ledger,
	branchRepo repository.BranchRepository,
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
) *OrderProcessor {
	return &OrderProcessor{
		txRunner:    txRunner,
		stockLedger: stockLedger,
		branchRepo:  branchRepo,
		productRepo: productRepo,
		orderRepo:   orderRepo,
	}
}

// PlaceOrder valida el carrito contra el catálogo, descuenta stock por cada
// línea y persiste la orden (estado completed) con sus líneas, todo dentro de
// una transacción: si una reserva falla, no queda orden parcial ni descuento
// parcial observable.
//
// Si in.IdempotencyKey viene con valor y ya existe una orden registrada con esa
// clave, se devuelve esa orden sin tocar el inventario (reintentos seguros).
func (p *OrderProcessor) PlaceOrder(ctx context.Context, in dto.PlaceOrderRequest) (*dto.OrderResponse, error) {
	if err := validatePlaceOrder(in); err != nil {
		return nil, err
	}

	// Validar sucursal y productos (solo lectura, fuera de la tx)
	branch, err := p.branchRepo.GetByID(in.BranchID)
	if err != nil {
		return nil, err
	}
	if branch == nil {
		return nil, domain.ErrBranchNotFound
	}
	productsByID := make(map[string]*entity.Product, len(in.Items))
	for _, item := range in.Items {
		product, err := p.productRepo.GetByID(item.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrProductNotFound
		}
		if product.BranchID != in.BranchID {
			return nil, domain.Validation("items.product_id",
				fmt.Sprintf("el producto %s no pertenece a la sucursal", item.ProductID))
		}
		productsByID[item.ProductID] = product
	}

	// Replay idempotente: misma clave, misma orden
	if in.IdempotencyKey != "" {
		existing, err := p.orderRepo.GetByIdempotencyKey(in.IdempotencyKey)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return toOrderResponse(existing), nil
		}
	}

	now := time.Now()
	order := &entity.Order{
		ID:             uuid.New().String(),
		BranchID:       in.BranchID,
		Subtotal:       in.Subtotal,
		Tax:            in.Tax,
		Total:          in.Total,
		Status:         entity.OrderStatusCompleted,
		IdempotencyKey: in.IdempotencyKey,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	for _, item := range in.Items {
		order.Items = append(order.Items, &entity.OrderItem{
			ID:        uuid.New().String(),
			OrderID:   order.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}

	err = p.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		orderRepo repository.OrderRepository,
	) error {
		if err := orderRepo.Create(order); err != nil {
			return err
		}
		for _, item := range order.Items {
			if err := orderRepo.CreateItem(item); err != nil {
				return err
			}
			// Reserva vía ledger: bloquea la fila del producto y descuenta.
			// Si retorna error (ej: sin stock), toda la transacción se revierte.
			if err := p.stockLedger.ReserveInTx(
				movRepo, productRepo,
				in.BranchID, item.ProductID,
				item.Quantity, item.Price,
				now, order.ID,
			); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		// Carrera entre dos reintentos con la misma clave: el perdedor del
		// UNIQUE lee la orden que ganó.
		if in.IdempotencyKey != "" && errors.Is(err, domain.ErrDuplicate) {
			existing, lookupErr := p.orderRepo.GetByIdempotencyKey(in.IdempotencyKey)
			if lookupErr == nil && existing != nil {
				return toOrderResponse(existing), nil
			}
		}
		return nil, err
	}

	return toOrderResponse(order), nil
}

// GetOrder obtiene una orden con sus líneas.
func (p *OrderProcessor) GetOrder(ctx context.Context, id string) (*dto.OrderResponse, error) {
	order, err := p.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrOrderNotFound
	}
	return toOrderResponse(order), nil
}

// ListOrders lista órdenes de una sucursal, más recientes primero.
func (p *OrderProcessor) ListOrders(ctx context.Context, branchID string, from, to *time.Time, limit, offset int) ([]*dto.OrderResponse, error) {
	orders, err := p.orderRepo.ListByBranch(branchID, from, to, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderResponse(o))
	}
	return out, nil
}

func validatePlaceOrder(in dto.PlaceOrderRequest) error {
	if in.BranchID == "" {
		return domain.Validation("branch_id", "requerido")
	}
	if len(in.Items) == 0 {
		return domain.Validation("items", "debe incluir al menos una línea")
	}
	for i, item := range in.Items {
		if item.ProductID == "" {
			return domain.Validation(fmt.Sprintf("items[%d].product_id", i), "requerido")
		}
		if item.Quantity < 1 {
			return domain.Validation(fmt.Sprintf("items[%d].quantity", i), "debe ser >= 1")
		}
		if item.Price.LessThan(decimal.Zero) {
			return domain.Validation(fmt.Sprintf("items[%d].price", i), "no puede ser negativo")
		}
	}
	if in.Subtotal.LessThan(decimal.Zero) {
		return domain.Validation("subtotal", "no puede ser negativo")
	}
	if in.Tax.LessThan(decimal.Zero) {
		return domain.Validation("tax", "no puede ser negativo")
	}
	if in.Total.LessThan(decimal.Zero) {
		return domain.Validation("total", "no puede ser negativo")
	}
	return nil
}

func toOrderResponse(order *entity.Order) *dto.OrderResponse {
	resp := &dto.OrderResponse{
		ID:        order.ID,
		BranchID:  order.BranchID,
		Subtotal:  order.Subtotal,
		Tax:       order.Tax,
		Total:     order.Total,
		Status:    order.Status,
		CreatedAt: order.CreatedAt.Format(time.RFC3339),
		Items:     make([]dto.OrderItemResponse, 0, len(order.Items)),
	}
	for _, item := range order.Items {
		resp.Items = append(resp.Items, dto.OrderItemResponse{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}
	return resp
}
