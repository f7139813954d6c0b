package ordering

import (
	"context"
	"time"

	"github.com/tu-usuario/retail-pos/internal/application/dto"
	"github.com/tu-usuario/retail-pos/internal/domain"
	"github.com/tu-usuario/retail-pos/internal/domain/entity"
	"github.com/tu-usuario/retail-pos/internal/domain/repository"
)

// Transition aplica una transición de estado a la orden según la máquina
// pending → confirmed → completed, cualquier estado → cancelled.
//
// La transición a cancelled libera el stock de cada línea vía ledger
// (acción compensatoria) en la misma transacción que cambia el estado:
// el stock de cada producto vuelve exactamente a su valor previo a la orden.
func (p *OrderProcessor) Transition(ctx context.Context, orderID, newStatus string) (*dto.OrderResponse, error) {
	if !entity.ValidStatus(newStatus) {
		return nil, domain.Validation("status", "estado desconocido: "+newStatus)
	}
	order, err := p.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrOrderNotFound
	}
	if !entity.CanTransition(order.Status, newStatus) {
		return nil, domain.ErrInvalidTransition
	}

	now := time.Now()

	if newStatus != entity.OrderStatusCancelled {
		// pending → confirmed → completed: solo cambia el estado; el stock ya
		// fue reservado al registrar la orden. El UPDATE es condicional al
		// estado leído: si otra transición ganó, falla en vez de pisarla.
		if err := p.orderRepo.UpdateStatus(orderID, order.Status, newStatus, now); err != nil {
			return nil, err
		}
		order.Status = newStatus
		order.UpdatedAt = now
		return toOrderResponse(order), nil
	}

	err = p.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		orderRepo repository.OrderRepository,
	) error {
		// Condicional al estado leído antes de la tx: dos cancelaciones
		// concurrentes de la misma orden pasan ambas la validación en memoria,
		// pero solo una logra el UPDATE; la otra hace rollback sin liberar
		// stock por segunda vez.
		if err := orderRepo.UpdateStatus(orderID, order.Status, entity.OrderStatusCancelled, now); err != nil {
			return err
		}
		for _, item := range order.Items {
			if err := p.stockLedger.ReleaseInTx(
				movRepo, productRepo,
				order.BranchID, item.ProductID,
				item.Quantity, item.Price,
				now, order.ID,
			); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	order.Status = entity.OrderStatusCancelled
	order.UpdatedAt = now
	return toOrderResponse(order), nil
}
