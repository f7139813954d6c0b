package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/retail-pos/internal/application/dto"
	"github.com/tu-usuario/retail-pos/internal/application/reporting"
	"github.com/tu-usuario/retail-pos/internal/domain/repository"
)

// ReportHandler maneja las consultas de reportes de ventas.
type ReportHandler struct {
	uc *reporting.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *reporting.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Summary resumen de ventas de un período, con comparación contra el período
// anterior. Filtros opcionales: branch_id, category_id. start/end en RFC3339;
// por defecto los últimos 30 días.
// GET /api/reports/summary
func (h *ReportHandler) Summary(c *fiber.Ctx) error {
	end := time.Now()
	start := end.AddDate(0, 0, -30)
	if raw := c.Query("start"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "start inválido (RFC3339)", Field: "start"})
		}
		start = t
	}
	if raw := c.Query("end"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "end inválido (RFC3339)", Field: "end"})
		}
		end = t
	}

	summary, err := h.uc.Aggregate(c.Context(), repository.ReportFilter{
		BranchID:   c.Query("branch_id"),
		CategoryID: c.Query("category_id"),
		Start:      start,
		End:        end,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(summary)
}

// Series serie temporal de ventas de una sucursal.
// GET /api/reports/series?branch_id=...&granularity=daily|weekly|monthly|yearly
func (h *ReportHandler) Series(c *fiber.Ctx) error {
	branchID := c.Query("branch_id")
	if branchID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "branch_id requerido", Field: "branch_id"})
	}
	granularity := c.Query("granularity", reporting.GranularityDaily)
	series, err := h.uc.Series(c.Context(), branchID, granularity)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(series)
}

// TopProducts ranking de productos de una sucursal.
// GET /api/reports/top-products?branch_id=...&sort_by=quantity_sold|revenue|margin&sort_order=desc|asc&limit=N
func (h *ReportHandler) TopProducts(c *fiber.Ctx) error {
	branchID := c.Query("branch_id")
	products, err := h.uc.TopProducts(
		c.Context(),
		branchID,
		c.Query("sort_by"),
		c.Query("sort_order"),
		c.QueryInt("limit"),
	)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(products)
}
