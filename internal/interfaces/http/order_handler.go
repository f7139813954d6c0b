package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/retail-pos/internal/application/dto"
	"github.com/tu-usuario/retail-pos/internal/application/ordering"
	"github.com/tu-usuario/retail-pos/internal/domain"
	"github.com/tu-usuario/retail-pos/pkg/metrics"
)

// OrderHandler maneja las peticiones HTTP de órdenes.
type OrderHandler struct {
	uc *ordering.OrderProcessor
}

// NewOrderHandler construye el handler.
func NewOrderHandler(uc *ordering.OrderProcessor) *OrderHandler {
	return &OrderHandler{uc: uc}
}

// Create registra una orden y descuenta el stock de cada línea (atómico).
// Acepta Idempotency-Key como header o idempotency_key en el body.
// POST /api/orders
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.PlaceOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if key := c.Get("Idempotency-Key"); key != "" {
		in.IdempotencyKey = key
	}
	order, err := h.uc.PlaceOrder(c.Context(), in)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInsufficientStock):
			metrics.RecordOrderRejected("insufficient_stock")
		case errors.Is(err, domain.ErrInvalidInput):
			metrics.RecordOrderRejected("validation")
		case errors.Is(err, domain.ErrBranchNotFound), errors.Is(err, domain.ErrProductNotFound):
			metrics.RecordOrderRejected("not_found")
		}
		return respondError(c, err)
	}
	metrics.RecordOrderPlaced(order.BranchID)
	return c.Status(fiber.StatusCreated).JSON(order)
}

// GetByID obtiene una orden con sus líneas.
// GET /api/orders/:id
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	order, err := h.uc.GetOrder(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(order)
}

// Transition aplica una transición de estado. Cancelar libera el stock reservado.
// PATCH /api/orders/:id/status
func (h *OrderHandler) Transition(c *fiber.Ctx) error {
	var in dto.TransitionOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	order, err := h.uc.Transition(c.Context(), c.Params("id"), in.Status)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(order)
}

// List lista órdenes de una sucursal con rango de fechas opcional (?from, ?to en RFC3339).
// GET /api/orders?branch_id=...
func (h *OrderHandler) List(c *fiber.Ctx) error {
	branchID := c.Query("branch_id")
	if branchID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "branch_id requerido", Field: "branch_id"})
	}
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

	orders, err := h.uc.ListOrders(c.Context(), branchID, from, to, page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(orders)
}

// parseTimeQuery lee un query param RFC3339 opcional. nil si está ausente.
func parseTimeQuery(c *fiber.Ctx, name string) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
