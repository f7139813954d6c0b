package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/retail-pos/internal/application/dto"
	"github.com/tu-usuario/retail-pos/internal/domain"
	"github.com/tu-usuario/retail-pos/internal/domain/entity"
	"github.com/tu-usuario/retail-pos/internal/domain/repository"
)

// ProductUseCase CRUD de productos y lectura del catálogo para el procesador
// de órdenes. La sucursal se asigna explícitamente al crear el producto y solo
// cambia por una edición explícita, nunca como efecto lateral de una lectura.
type ProductUseCase struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	branchRepo   repository.BranchRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	branchRepo repository.BranchRepository,
) *ProductUseCase {
	return &ProductUseCase{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		branchRepo:   branchRepo,
	}
}

// Create registra un producto con su stock inicial. Barcode único
// (ErrDuplicate si ya existe); precio estrictamente positivo.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if err := uc.validateRefs(in.Name, in.CategoryID, in.BranchID, in.Barcode, in.Price); err != nil {
		return nil, err
	}
	if in.StockQuantity < 0 {
		return nil, domain.Validation("stock_quantity", "no puede ser negativo")
	}
	now := time.Now()
	product := &entity.Product{
		ID:            uuid.New().String(),
		Name:          in.Name,
		CategoryID:    in.CategoryID,
		BranchID:      in.BranchID,
		Barcode:       in.Barcode,
		Price:         in.Price,
		StockQuantity: in.StockQuantity,
		Image:         in.Image,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.productRepo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Update modifica los datos de catálogo de un producto. No toca el stock.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	if err := uc.validateRefs(in.Name, in.CategoryID, in.BranchID, in.Barcode, in.Price); err != nil {
		return nil, err
	}
	product.Name = in.Name
	product.CategoryID = in.CategoryID
	product.BranchID = in.BranchID
	product.Barcode = in.Barcode
	product.Price = in.Price
	product.Image = in.Image
	product.UpdatedAt = time.Now()
	if err := uc.productRepo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	return toProductResponse(product), nil
}

// ListByBranch lista los productos de una sucursal.
func (uc *ProductUseCase) ListByBranch(ctx context.Context, branchID string, limit, offset int) ([]*dto.ProductResponse, error) {
	branch, err := uc.branchRepo.GetByID(branchID)
	if err != nil {
		return nil, err
	}
	if branch == nil {
		return nil, domain.ErrBranchNotFound
	}
	products, err := uc.productRepo.ListByBranch(branchID, limit, offset)
	if err != nil {
		return nil, err
	}
	return toProductResponses(products), nil
}

// List lista todo el catálogo con paginación.
func (uc *ProductUseCase) List(ctx context.Context, limit, offset int) ([]*dto.ProductResponse, error) {
	products, err := uc.productRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	return toProductResponses(products), nil
}

// Delete elimina un producto. El repositorio retorna ErrConflict si existen
// líneas de orden que lo referencian (política restrict: el historial de ventas
// sobrevive al catálogo).
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrProductNotFound
	}
	return uc.productRepo.Delete(id)
}

func (uc *ProductUseCase) validateRefs(name, categoryID, branchID, barcode string, price decimal.Decimal) error {
	if name == "" {
		return domain.Validation("name", "requerido")
	}
	if barcode == "" {
		return domain.Validation("barcode", "requerido")
	}
	if !price.GreaterThan(decimal.Zero) {
		return domain.Validation("price", "debe ser mayor que cero")
	}
	if categoryID == "" {
		return domain.Validation("category_id", "requerido")
	}
	if branchID == "" {
		return domain.Validation("branch_id", "requerido")
	}
	category, err := uc.categoryRepo.GetByID(categoryID)
	if err != nil {
		return err
	}
	if category == nil {
		return domain.ErrCategoryNotFound
	}
	branch, err := uc.branchRepo.GetByID(branchID)
	if err != nil {
		return err
	}
	if branch == nil {
		return domain.ErrBranchNotFound
	}
	return nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		CategoryID:    p.CategoryID,
		BranchID:      p.BranchID,
		Barcode:       p.Barcode,
		Price:         p.Price,
		StockQuantity: p.StockQuantity,
		Image:         p.Image,
	}
}

func toProductResponses(products []*entity.Product) []*dto.ProductResponse {
	out := make([]*dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	return out
}
