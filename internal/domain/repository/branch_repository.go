package repository

import "github.com/tu-usuario/retail-pos/internal/domain/entity"

// BranchRepository define el puerto de persistencia para Branch (DIP).
type BranchRepository interface {
	Create(branch *entity.Branch) error
	GetByID(id string) (*entity.Branch, error)
	Update(branch *entity.Branch) error
	List(limit, offset int) ([]*entity.Branch, error)
	// Delete elimina la sucursal. Retorna domain.ErrConflict si aún posee productos u órdenes.
	Delete(id string) error
	// CountProducts cuenta los productos asignados a la sucursal.
	CountProducts(id string) (int64, error)
}
