package repository

import "github.com/tu-usuario/retail-pos/internal/domain/entity"

// CategoryRepository define el puerto de persistencia para Category (DIP).
type CategoryRepository interface {
	Create(category *entity.Category) error
	GetByID(id string) (*entity.Category, error)
	Update(category *entity.Category) error
	List(limit, offset int) ([]*entity.Category, error)
	// Delete elimina la categoría. Retorna domain.ErrConflict si productos la referencian.
	Delete(id string) error
}
