package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/retail-pos/internal/application/dto"
	"github.com/tu-usuario/retail-pos/internal/application/reporting"
)

// DashboardHandler maneja las consultas del dashboard de ventas.
type DashboardHandler struct {
	uc *reporting.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *reporting.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Summary resumen completo del dashboard de una sucursal.
// GET /api/dashboard?branch_id=...
func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	branchID := c.Query("branch_id")
	if branchID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "branch_id requerido", Field: "branch_id"})
	}
	dashboard, err := h.uc.GetSummary(c.Context(), branchID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dashboard)
}

// Realtime KPIs del día para refresco frecuente.
// GET /api/dashboard/realtime?branch_id=...
func (h *DashboardHandler) Realtime(c *fiber.Ctx) error {
	branchID := c.Query("branch_id")
	if branchID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "branch_id requerido", Field: "branch_id"})
	}
	realtime, err := h.uc.GetRealtime(c.Context(), branchID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(realtime)
}
