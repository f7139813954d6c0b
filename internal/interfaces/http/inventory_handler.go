package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/retail-pos/internal/application/dto"
	"github.com/tu-usuario/retail-pos/internal/application/ledger"
	"github.com/tu-usuario/retail-pos/internal/domain/entity"
	"github.com/tu-usuario/retail-pos/pkg/metrics"
)

// InventoryHandler maneja las operaciones de stock que no pasan por órdenes:
// entradas de mercancía, ajustes manuales y consulta del historial del ledger.
type InventoryHandler struct {
	stockLedger *ledger.StockLedger
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(stockLedger *ledger.StockLedger) *InventoryHandler {
	return &InventoryHandler{stockLedger: stockLedger}
}

// ReceiveStock registra una entrada de mercancía (RECEIPT).
// POST /api/inventory/receipts
func (h *InventoryHandler) ReceiveStock(c *fiber.Ctx) error {
	var in dto.ReceiveStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	err := h.stockLedger.ReceiveStock(c.Context(), ledger.ReceiveInput{
		BranchID:  in.BranchID,
		ProductID: in.ProductID,
		Quantity:  in.Quantity,
		UnitCost:  in.UnitCost,
	})
	if err != nil {
		return respondError(c, err)
	}
	metrics.RecordStockMovement(entity.MovementTypeRECEIPT)
	return c.SendStatus(fiber.StatusCreated)
}

// AdjustStock aplica un ajuste manual con signo (ADJUSTMENT).
// POST /api/inventory/adjustments
func (h *InventoryHandler) AdjustStock(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	err := h.stockLedger.AdjustStock(c.Context(), ledger.AdjustInput{
		BranchID:  in.BranchID,
		ProductID: in.ProductID,
		Quantity:  in.Quantity,
	})
	if err != nil {
		return respondError(c, err)
	}
	metrics.RecordStockMovement(entity.MovementTypeADJUSTMENT)
	return c.SendStatus(fiber.StatusCreated)
}

// ListMovements consulta el historial del ledger por producto o por sucursal.
// GET /api/inventory/movements?product_id=... | ?branch_id=...
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()

	from, err := parseTimeQuery(c, "from")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from inválido (RFC3339)", Field: "from"})
	}
	to, err := parseTimeQuery(c, "to")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to inválido (RFC3339)", Field: "to"})
	}

	productID := c.Query("product_id")
	branchID := c.Query("branch_id")

	var movements []*entity.StockMovement
	switch {
	case productID != "":
		movements, err = h.stockLedger.ListMovementsByProduct(productID, from, to, page.Limit, page.Offset)
	case branchID != "":
		movements, err = h.stockLedger.ListMovementsByBranch(branchID, from, to, page.Limit, page.Offset)
	default:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "VALIDATION", Message: "product_id o branch_id requerido",
		})
	}
	if err != nil {
		return respondError(c, err)
	}

	out := make([]dto.StockMovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, dto.StockMovementResponse{
			ID:          m.ID,
			ReferenceID: m.ReferenceID,
			ProductID:   m.ProductID,
			BranchID:    m.BranchID,
			Type:        m.Type,
			Quantity:    m.Quantity,
			UnitPrice:   m.UnitPrice,
			CreatedAt:   m.CreatedAt.Format(time.RFC3339),
		})
	}
	return c.JSON(out)
}
