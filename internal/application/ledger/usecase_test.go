package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/retail-pos/internal/application/ledger"
	"github.com/tu-usuario/retail-pos/internal/domain"
	"github.com/tu-usuario/retail-pos/internal/domain/entity"
	"github.com/tu-usuario/retail-pos/internal/domain/repository"
)

// Fakes mínimos: un solo producto y una lista de movimientos. Los métodos no
// usados por el ledger quedan en la interfaz embebida (panic si se llaman).

type stubProductRepo struct {
	repository.ProductRepository
	product *entity.Product // nil = no existe
}

func (r *stubProductRepo) GetForUpdate(productID, branchID string) (*entity.Product, error) {
	if r.product == nil || r.product.ID != productID || r.product.BranchID != branchID {
		return nil, nil
	}
	cp := *r.product
	return &cp, nil
}

func (r *stubProductRepo) UpdateStock(productID string, quantity int64) error {
	r.product.StockQuantity = quantity
	return nil
}

type stubBranchRepo struct {
	repository.BranchRepository
	branch *entity.Branch
}

func (r *stubBranchRepo) GetByID(id string) (*entity.Branch, error) {
	if r.branch == nil || r.branch.ID != id {
		return nil, nil
	}
	cp := *r.branch
	return &cp, nil
}

type stubMovementRepo struct {
	repository.StockMovementRepository
	movements []*entity.StockMovement
}

func (r *stubMovementRepo) Create(m *entity.StockMovement) error {
	r.movements = append(r.movements, m)
	return nil
}

// stubTxRunner pasa los repos tal cual: los tests del rollback transaccional
// viven en el paquete ordering; aquí se prueba la lógica del ledger.
type stubTxRunner struct {
	movRepo     *stubMovementRepo
	productRepo *stubProductRepo
}

func (r *stubTxRunner) Run(ctx context.Context, fn func(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
) error) error {
	return fn(r.movRepo, r.productRepo, nil)
}

func buildLedger(t *testing.T, stock int64) (*ledger.StockLedger, *stubProductRepo, *stubMovementRepo) {
	t.Helper()
	productRepo := &stubProductRepo{product: &entity.Product{
		ID: "prod-1", BranchID: "branch-1", Name: "Café 500g",
		Price: decimal.NewFromInt(10), StockQuantity: stock,
	}}
	branchRepo := &stubBranchRepo{branch: &entity.Branch{ID: "branch-1", Name: "Centro"}}
	movementRepo := &stubMovementRepo{}
	txRunner := &stubTxRunner{movRepo: movementRepo, productRepo: productRepo}
	return ledger.NewStockLedger(txRunner, productRepo, branchRepo, movementRepo), productRepo, movementRepo
}

// ──────────────────────────────────────────────────────────────────────────────
// ReserveInTx / ReleaseInTx
// ──────────────────────────────────────────────────────────────────────────────

func TestReserveInTx_DescuentaYDejaMovimientoNegativo(t *testing.T) {
	sl, productRepo, movementRepo := buildLedger(t, 5)

	err := sl.ReserveInTx(movementRepo, productRepo, "branch-1", "prod-1",
		3, decimal.NewFromInt(10), time.Now(), "order-1")
	require.NoError(t, err)

	assert.EqualValues(t, 2, productRepo.product.StockQuantity)
	require.Len(t, movementRepo.movements, 1)
	assert.Equal(t, entity.MovementTypeSALE, movementRepo.movements[0].Type)
	assert.EqualValues(t, -3, movementRepo.movements[0].Quantity)
	assert.Equal(t, "order-1", movementRepo.movements[0].ReferenceID)
}

func TestReserveInTx_StockExactoPermitido(t *testing.T) {
	sl, productRepo, movementRepo := buildLedger(t, 5)

	err := sl.ReserveInTx(movementRepo, productRepo, "branch-1", "prod-1",
		5, decimal.NewFromInt(10), time.Now(), "order-1")
	require.NoError(t, err)
	assert.EqualValues(t, 0, productRepo.product.StockQuantity)
}

func TestReserveInTx_StockInsuficiente(t *testing.T) {
	sl, productRepo, movementRepo := buildLedger(t, 5)

	err := sl.ReserveInTx(movementRepo, productRepo, "branch-1", "prod-1",
		6, decimal.NewFromInt(10), time.Now(), "order-1")
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.EqualValues(t, 6, stockErr.Requested)
	assert.EqualValues(t, 5, stockErr.Available)
	assert.EqualValues(t, 5, productRepo.product.StockQuantity, "sin descuento parcial")
	assert.Empty(t, movementRepo.movements, "sin movimiento fantasma")
}

func TestReserveInTx_CantidadInvalida(t *testing.T) {
	sl, productRepo, movementRepo := buildLedger(t, 5)
	err := sl.ReserveInTx(movementRepo, productRepo, "branch-1", "prod-1",
		0, decimal.Zero, time.Now(), "order-1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestReserveInTx_ProductoInexistente(t *testing.T) {
	sl, productRepo, movementRepo := buildLedger(t, 5)
	err := sl.ReserveInTx(movementRepo, productRepo, "branch-1", "prod-fantasma",
		1, decimal.Zero, time.Now(), "order-1")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestReleaseInTx_IncrementaYDejaMovimientoPositivo(t *testing.T) {
	sl, productRepo, movementRepo := buildLedger(t, 2)

	err := sl.ReleaseInTx(movementRepo, productRepo, "branch-1", "prod-1",
		3, decimal.NewFromInt(10), time.Now(), "order-1")
	require.NoError(t, err)

	assert.EqualValues(t, 5, productRepo.product.StockQuantity)
	require.Len(t, movementRepo.movements, 1)
	assert.Equal(t, entity.MovementTypeRELEASE, movementRepo.movements[0].Type)
	assert.EqualValues(t, 3, movementRepo.movements[0].Quantity)
}

// ──────────────────────────────────────────────────────────────────────────────
// ReceiveStock / AdjustStock
// ──────────────────────────────────────────────────────────────────────────────

func TestReceiveStock_EntradaDeMercancia(t *testing.T) {
	sl, productRepo, movementRepo := buildLedger(t, 5)
	cost := decimal.NewFromFloat(6.50)

	err := sl.ReceiveStock(context.Background(), ledger.ReceiveInput{
		BranchID: "branch-1", ProductID: "prod-1", Quantity: 20, UnitCost: &cost,
	})
	require.NoError(t, err)

	assert.EqualValues(t, 25, productRepo.product.StockQuantity)
	require.Len(t, movementRepo.movements, 1)
	assert.Equal(t, entity.MovementTypeRECEIPT, movementRepo.movements[0].Type)
	assert.EqualValues(t, 20, movementRepo.movements[0].Quantity)
	assert.True(t, movementRepo.movements[0].UnitPrice.Equal(cost))
}

func TestReceiveStock_SucursalInexistente(t *testing.T) {
	sl, _, _ := buildLedger(t, 5)
	err := sl.ReceiveStock(context.Background(), ledger.ReceiveInput{
		BranchID: "branch-fantasma", ProductID: "prod-1", Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrBranchNotFound)
}

func TestReceiveStock_CantidadInvalida(t *testing.T) {
	sl, _, _ := buildLedger(t, 5)
	err := sl.ReceiveStock(context.Background(), ledger.ReceiveInput{
		BranchID: "branch-1", ProductID: "prod-1", Quantity: 0,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAdjustStock_AjusteNegativo(t *testing.T) {
	sl, productRepo, movementRepo := buildLedger(t, 5)

	err := sl.AdjustStock(context.Background(), ledger.AdjustInput{
		BranchID: "branch-1", ProductID: "prod-1", Quantity: -2,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 3, productRepo.product.StockQuantity)
	require.Len(t, movementRepo.movements, 1)
	assert.Equal(t, entity.MovementTypeADJUSTMENT, movementRepo.movements[0].Type)
	assert.EqualValues(t, -2, movementRepo.movements[0].Quantity)
}

func TestAdjustStock_NoPuedeDejarStockNegativo(t *testing.T) {
	sl, productRepo, movementRepo := buildLedger(t, 5)

	err := sl.AdjustStock(context.Background(), ledger.AdjustInput{
		BranchID: "branch-1", ProductID: "prod-1", Quantity: -6,
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.EqualValues(t, 5, productRepo.product.StockQuantity)
	assert.Empty(t, movementRepo.movements)
}

func TestAdjustStock_CeroEsInvalido(t *testing.T) {
	sl, _, _ := buildLedger(t, 5)
	err := sl.AdjustStock(context.Background(), ledger.AdjustInput{
		BranchID: "branch-1", ProductID: "prod-1", Quantity: 0,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
