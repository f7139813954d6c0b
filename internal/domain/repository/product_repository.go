package repository

import "github.com/tu-usuario/retail-pos/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product.
// Los métodos de stock son exclusivos del Stock Ledger y se usan dentro de
// transacciones para garantizar consistencia.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetByBarcode(barcode string) (*entity.Product, error)
	// Update modifica los datos de catálogo. No toca StockQuantity (eso es del ledger).
	Update(product *entity.Product) error
	ListByBranch(branchID string, limit, offset int) ([]*entity.Product, error)
	List(limit, offset int) ([]*entity.Product, error)
	Delete(id string) error

	// GetForUpdate obtiene el producto de la sucursal y bloquea la fila (SELECT FOR UPDATE).
	// Retorna nil si no existe producto con ese ID en esa sucursal.
	GetForUpdate(productID, branchID string) (*entity.Product, error)
	// UpdateStock fija stock_quantity (usado por el ledger, siempre bajo fila bloqueada).
	UpdateStock(productID string, quantity int64) error
}
