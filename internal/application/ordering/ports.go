package ordering

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/retail-pos/internal/domain/repository"
)

// Ledger interfaz para integrar el procesamiento de órdenes con el Stock Ledger.
// Ambas operaciones usan los repositorios del caller (misma transacción): si
// retornan error (ej: stock insuficiente), el caller hace rollback completo.
type Ledger interface {
	ReserveInTx(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		branchID, productID string,
		quantity int64,
		unitPrice decimal.Decimal,
		now time.Time,
		referenceID string,
	) error
	ReleaseInTx(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		branchID, productID string,
		quantity int64,
		unitPrice decimal.Decimal,
		now time.Time,
		referenceID string,
	) error
}
