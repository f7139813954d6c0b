// Package catalog contiene los casos de uso CRUD de sucursales, categorías y
// productos. Es la fuente de identidad y precios para el procesador de órdenes;
// nunca modifica stock (eso es del ledger).
package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/retail-pos/internal/application/dto"
	"github.com/tu-usuario/retail-pos/internal/domain"
	"github.com/tu-usuario/retail-pos/internal/domain/entity"
	"github.com/tu-usuario/retail-pos/internal/domain/repository"
)

// BranchUseCase CRUD de sucursales.
type BranchUseCase struct {
	branchRepo repository.BranchRepository
}

// NewBranchUseCase construye el caso de uso.
func NewBranchUseCase(branchRepo repository.BranchRepository) *BranchUseCase {
	return &BranchUseCase{branchRepo: branchRepo}
}

// Create registra una nueva sucursal.
func (uc *BranchUseCase) Create(ctx context.Context, in dto.CreateBranchRequest) (*dto.BranchResponse, error) {
	if in.Name == "" {
		return nil, domain.Validation("name", "requerido")
	}
	now := time.Now()
	branch := &entity.Branch{
		ID:            uuid.New().String(),
		Name:          in.Name,
		Location:      in.Location,
		ContactNumber: in.ContactNumber,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.branchRepo.Create(branch); err != nil {
		return nil, err
	}
	return toBranchResponse(branch), nil
}

// GetByID obtiene una sucursal.
func (uc *BranchUseCase) GetByID(ctx context.Context, id string) (*dto.BranchResponse, error) {
	branch, err := uc.branchRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if branch == nil {
		return nil, domain.ErrBranchNotFound
	}
	return toBranchResponse(branch), nil
}

// Update modifica los datos de una sucursal existente.
func (uc *BranchUseCase) Update(ctx context.Context, id string, in dto.CreateBranchRequest) (*dto.BranchResponse, error) {
	if in.Name == "" {
		return nil, domain.Validation("name", "requerido")
	}
	branch, err := uc.branchRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if branch == nil {
		return nil, domain.ErrBranchNotFound
	}
	branch.Name = in.Name
	branch.Location = in.Location
	branch.ContactNumber = in.ContactNumber
	branch.UpdatedAt = time.Now()
	if err := uc.branchRepo.Update(branch); err != nil {
		return nil, err
	}
	return toBranchResponse(branch), nil
}

// List lista sucursales con paginación.
func (uc *BranchUseCase) List(ctx context.Context, limit, offset int) ([]*dto.BranchResponse, error) {
	branches, err := uc.branchRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.BranchResponse, 0, len(branches))
	for _, b := range branches {
		out = append(out, toBranchResponse(b))
	}
	return out, nil
}

// Delete elimina una sucursal. Falla con ErrConflict si aún posee productos.
func (uc *BranchUseCase) Delete(ctx context.Context, id string) error {
	branch, err := uc.branchRepo.GetByID(id)
	if err != nil {
		return err
	}
	if branch == nil {
		return domain.ErrBranchNotFound
	}
	count, err := uc.branchRepo.CountProducts(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return domain.ErrConflict
	}
	return uc.branchRepo.Delete(id)
}

func toBranchResponse(b *entity.Branch) *dto.BranchResponse {
	return &dto.BranchResponse{
		ID:            b.ID,
		Name:          b.Name,
		Location:      b.Location,
		ContactNumber: b.ContactNumber,
		CreatedAt:     b.CreatedAt.Format(time.RFC3339),
	}
}
