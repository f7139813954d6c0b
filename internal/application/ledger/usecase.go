// Package ledger implementa el Stock Ledger: la única autoridad que modifica
// la cantidad disponible de un producto. Cada cambio bloquea la fila del
// producto (SELECT FOR UPDATE) y deja un movimiento auditable.
package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/retail-pos/internal/domain"
	"github.com/tu-usuario/retail-pos/internal/domain/entity"
	"github.com/tu-usuario/retail-pos/internal/domain/repository"
)

// StockLedger registra reservas, liberaciones, entradas y ajustes de stock.
type StockLedger struct {
	txRunner     TxRunner
	productRepo  repository.ProductRepository
	branchRepo   repository.BranchRepository
	movementRepo repository.StockMovementRepository
}

// NewStockLedger construye el ledger. productRepo/branchRepo/movementRepo van
// atados al pool (lecturas fuera de tx); las mutaciones usan txRunner.
func NewStockLedger(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	branchRepo repository.BranchRepository,
	movementRepo repository.StockMovementRepository,
) *StockLedger {
	return &StockLedger{
		txRunner:     txRunner,
		productRepo:  productRepo,
		branchRepo:   branchRepo,
		movementRepo: movementRepo,
	}
}

// ReserveInTx descuenta stock por una venta usando los repositorios del caller
// (misma transacción). Bloquea la fila del producto, verifica que el stock
// alcance y registra el movimiento SALE con referencia a la orden.
// Dos reservas concurrentes sobre el mismo producto se serializan en el lock:
// nunca pueden ambas superar el stock disponible.
func (l *StockLedger) ReserveInTx(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	branchID, productID string,
	quantity int64,
	unitPrice decimal.Decimal,
	now time.Time,
	referenceID string,
) error {
	if quantity < 1 {
		return domain.Validation("quantity", "debe ser >= 1")
	}
	product, err := productRepo.GetForUpdate(productID, branchID)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrProductNotFound
	}
	if product.StockQuantity < quantity {
		return &domain.InsufficientStockError{
			ProductID: productID,
			BranchID:  branchID,
			Requested: quantity,
			Available: product.StockQuantity,
		}
	}
	if err := productRepo.UpdateStock(productID, product.StockQuantity-quantity); err != nil {
		return err
	}
	mov := &entity.StockMovement{
		ID:          uuid.New().String(),
		ReferenceID: referenceID,
		ProductID:   productID,
		BranchID:    branchID,
		Type:        entity.MovementTypeSALE,
		Quantity:    -quantity,
		UnitPrice:   unitPrice,
		CreatedAt:   now,
	}
	return movRepo.Create(mov)
}

// ReleaseInTx incrementa stock como compensación (cancelación/devolución) usando
// los repositorios del caller. Siempre tiene éxito si el producto existe; no se
// aplica tope superior (comportamiento del sistema original, los movimientos
// RELEASE dejan rastro auditable).
func (l *StockLedger) ReleaseInTx(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	branchID, productID string,
	quantity int64,
	unitPrice decimal.Decimal,
	now time.Time,
	referenceID string,
) error {
	if quantity < 1 {
		return domain.Validation("quantity", "debe ser >= 1")
	}
	product, err := productRepo.GetForUpdate(productID, branchID)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrProductNotFound
	}
	if err := productRepo.UpdateStock(productID, product.StockQuantity+quantity); err != nil {
		return err
	}
	mov := &entity.StockMovement{
		ID:          uuid.New().String(),
		ReferenceID: referenceID,
		ProductID:   productID,
		BranchID:    branchID,
		Type:        entity.MovementTypeRELEASE,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		CreatedAt:   now,
	}
	return movRepo.Create(mov)
}

// ReceiveInput entrada de mercancía a una sucursal.
type ReceiveInput struct {
	BranchID  string
	ProductID string
	Quantity  int64
	UnitCost  *decimal.Decimal
}

// ReceiveStock registra una entrada de mercancía en su propia transacción
// (RECEIPT, cantidad positiva).
func (l *StockLedger) ReceiveStock(ctx context.Context, in ReceiveInput) error {
	if in.BranchID == "" {
		return domain.Validation("branch_id", "requerido")
	}
	if in.ProductID == "" {
		return domain.Validation("product_id", "requerido")
	}
	if in.Quantity < 1 {
		return domain.Validation("quantity", "debe ser >= 1")
	}
	branch, err := l.branchRepo.GetByID(in.BranchID)
	if err != nil {
		return err
	}
	if branch == nil {
		return domain.ErrBranchNotFound
	}

	now := time.Now()
	refID := uuid.New().String()
	unitCost := decimal.Zero
	if in.UnitCost != nil {
		if in.UnitCost.LessThan(decimal.Zero) {
			return domain.Validation("unit_cost", "no puede ser negativo")
		}
		unitCost = *in.UnitCost
	}

	return l.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		_ repository.OrderRepository,
	) error {
		product, err := productRepo.GetForUpdate(in.ProductID, in.BranchID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrProductNotFound
		}
		if err := productRepo.UpdateStock(in.ProductID, product.StockQuantity+in.Quantity); err != nil {
			return err
		}
		return movRepo.Create(&entity.StockMovement{
			ID:          uuid.New().String(),
			ReferenceID: refID,
			ProductID:   in.ProductID,
			BranchID:    in.BranchID,
			Type:        entity.MovementTypeRECEIPT,
			Quantity:    in.Quantity,
			UnitPrice:   unitCost,
			CreatedAt:   now,
		})
	})
}

// AdjustInput ajuste manual de stock. Quantity con signo.
type AdjustInput struct {
	BranchID  string
	ProductID string
	Quantity  int64
}

// AdjustStock aplica un ajuste manual en su propia transacción. Un ajuste
// negativo no puede dejar el stock por debajo de cero.
func (l *StockLedger) AdjustStock(ctx context.Context, in AdjustInput) error {
	if in.BranchID == "" {
		return domain.Validation("branch_id", "requerido")
	}
	if in.ProductID == "" {
		return domain.Validation("product_id", "requerido")
	}
	if in.Quantity == 0 {
		return domain.Validation("quantity", "no puede ser cero")
	}

	now := time.Now()
	refID := uuid.New().String()

	return l.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		_ repository.OrderRepository,
	) error {
		product, err := productRepo.GetForUpdate(in.ProductID, in.BranchID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrProductNotFound
		}
		newQty := product.StockQuantity + in.Quantity
		if newQty < 0 {
			return &domain.InsufficientStockError{
				ProductID: in.ProductID,
				BranchID:  in.BranchID,
				Requested: -in.Quantity,
				Available: product.StockQuantity,
			}
		}
		if err := productRepo.UpdateStock(in.ProductID, newQty); err != nil {
			return err
		}
		return movRepo.Create(&entity.StockMovement{
			ID:          uuid.New().String(),
			ReferenceID: refID,
			ProductID:   in.ProductID,
			BranchID:    in.BranchID,
			Type:        entity.MovementTypeADJUSTMENT,
			Quantity:    in.Quantity,
			UnitPrice:   decimal.Zero,
			CreatedAt:   now,
		})
	})
}

// ListMovementsByProduct consulta el historial auditable de un producto.
func (l *StockLedger) ListMovementsByProduct(productID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	return l.movementRepo.ListByProduct(productID, from, to, limit, offset)
}

// ListMovementsByBranch consulta el historial auditable de una sucursal.
func (l *StockLedger) ListMovementsByBranch(branchID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	return l.movementRepo.ListByBranch(branchID, from, to, limit, offset)
}
