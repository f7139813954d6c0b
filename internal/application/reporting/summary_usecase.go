// Package reporting contiene los casos de uso de solo lectura: resumen de
// ventas, series temporales, ranking de productos y dashboard. Nunca modifica
// estado; los fallos de un sub-agregado degradan ese campo a su valor por
// defecto en lugar de abortar la respuesta completa.
package reporting

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/retail-pos/internal/application/dto"
	"github.com/tu-usuario/retail-pos/internal/domain"
	"github.com/tu-usuario/retail-pos/internal/domain/repository"
)

// Criterios de ordenamiento para el ranking de productos.
const (
	SortByQuantitySold = "quantity_sold"
	SortByRevenue      = "revenue"
	SortByMargin       = "margin"
)

// ReportUseCase agregados de ventas sobre órdenes persistidas.
type ReportUseCase struct {
	reportRepo repository.ReportRepository
	log        zerolog.Logger
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(reportRepo repository.ReportRepository, log zerolog.Logger) *ReportUseCase {
	return &ReportUseCase{reportRepo: reportRepo, log: log}
}

// Aggregate calcula el resumen de ventas del filtro dado más la comparación con
// el período inmediatamente anterior de igual duración.
//
// Tres consultas en paralelo (totales, ítems, período anterior). Cada una que
// falle degrada sus campos a cero con un warning en el log; llamadas repetidas
// con el mismo filtro y sin escrituras intermedias devuelven el mismo resultado.
func (uc *ReportUseCase) Aggregate(ctx context.Context, f repository.ReportFilter) (*dto.SalesSummaryDTO, error) {
	if f.End.Before(f.Start) {
		return nil, domain.Validation("end", "debe ser posterior a start")
	}

	type totalsResult struct {
		total  decimal.Decimal
		orders int64
		err    error
	}
	type itemsResult struct {
		items int64
		err   error
	}

	totalsCh := make(chan totalsResult, 1)
	itemsCh := make(chan itemsResult, 1)
	prevCh := make(chan totalsResult, 1)

	go func() {
		total, orders, err := uc.reportRepo.GetSalesTotals(ctx, f)
		totalsCh <- totalsResult{total, orders, err}
	}()
	go func() {
		items, err := uc.reportRepo.GetItemsSold(ctx, f)
		itemsCh <- itemsResult{items, err}
	}()
	go func() {
		prev := previousPeriod(f)
		total, orders, err := uc.reportRepo.GetSalesTotals(ctx, prev)
		prevCh <- totalsResult{total, orders, err}
	}()

	totals := <-totalsCh
	items := <-itemsCh
	prev := <-prevCh

	summary := &dto.SalesSummaryDTO{
		TotalSales:          decimal.Zero,
		AverageOrderValue:   decimal.Zero,
		PreviousPeriodSales: decimal.Zero,
		PercentageChange:    decimal.Zero,
	}

	if totals.err != nil {
		uc.log.Warn().Err(totals.err).Msg("reporte: totales degradados a cero")
	} else {
		summary.TotalSales = totals.total
		summary.TotalOrders = totals.orders
		if totals.orders > 0 {
			summary.AverageOrderValue = totals.total.Div(decimal.NewFromInt(totals.orders)).Round(2)
		}
	}

	if items.err != nil {
		uc.log.Warn().Err(items.err).Msg("reporte: total de ítems degradado a cero")
	} else {
		summary.TotalItems = items.items
	}

	if prev.err != nil {
		uc.log.Warn().Err(prev.err).Msg("reporte: comparación de período degradada a cero")
	} else {
		summary.PreviousPeriodSales = prev.total
		if prev.total.GreaterThan(decimal.Zero) && totals.err == nil {
			summary.PercentageChange = totals.total.Sub(prev.total).
				Div(prev.total).Mul(decimal.NewFromInt(100)).Round(2)
		}
	}

	return summary, nil
}

// Series devuelve la serie temporal de ventas de una sucursal para la
// granularidad pedida, con buckets de ancho fijo en orden cronológico
// (incluyendo los que no tuvieron ventas).
func (uc *ReportUseCase) Series(ctx context.Context, branchID, granularity string) (dto.SeriesDTO, error) {
	// Buckets en UTC para que coincidan con el date_trunc en UTC del repositorio:
	// con la zona del servidor, una venta cercana a medianoche caería en el
	// bucket vecino o se perdería al proyectar la serie.
	now := time.Now().UTC()
	buckets, trunc, ok := bucketsFor(granularity, now)
	if !ok {
		return dto.SeriesDTO{}, domain.Validation("granularity", "debe ser daily, weekly, monthly o yearly")
	}
	start := buckets[0].Start
	end := now
	rows, err := uc.reportRepo.GetSalesSeries(ctx, branchID, start, end, trunc)
	if err != nil {
		// Dashboard: serie vacía (todo cero) en lugar de error fatal.
		uc.log.Warn().Err(err).Str("granularity", granularity).Msg("reporte: serie degradada a ceros")
		rows = nil
	}
	return fillSeries(buckets, rows), nil
}

// TopProducts devuelve el ranking de productos de una sucursal. sortBy acepta
// quantity_sold, revenue o margin; empates quedan en orden estable por id de
// producto.
func (uc *ReportUseCase) TopProducts(ctx context.Context, branchID, sortBy, sortOrder string, limit int) ([]dto.TopProductDTO, error) {
	switch sortBy {
	case "":
		sortBy = SortByQuantitySold
	case SortByQuantitySold, SortByRevenue, SortByMargin:
	default:
		return nil, domain.Validation("sort_by", "debe ser quantity_sold, revenue o margin")
	}
	if sortOrder != "asc" {
		sortOrder = "desc"
	}
	if limit <= 0 {
		limit = 10
	}
	rows, err := uc.reportRepo.GetTopProducts(ctx, branchID, time.Time{}, time.Time{}, sortBy, sortOrder, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TopProductDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, dto.TopProductDTO{
			ProductID:    row.ProductID,
			Name:         row.Name,
			CategoryName: row.CategoryName,
			Price:        row.Price,
			QuantitySold: row.QuantitySold,
			Revenue:      row.Revenue,
			Margin:       row.MarginPct,
		})
	}
	return out, nil
}

// previousPeriod desplaza el filtro una ventana hacia atrás, con la misma duración.
func previousPeriod(f repository.ReportFilter) repository.ReportFilter {
	length := f.End.Sub(f.Start)
	prev := f
	prev.End = f.Start.Add(-time.Nanosecond)
	prev.Start = prev.End.Add(-length)
	return prev
}
