package reporting

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/retail-pos/internal/application/dto"
	"github.com/tu-usuario/retail-pos/internal/domain/repository"
)

const dashboardTopProducts = 10 // productos en el widget del dashboard

// DashboardUseCase genera el resumen de ventas de una sucursal para el
// dashboard: KPIs del día, las cuatro series temporales, ranking de productos
// y metas configuradas.
//
// Fuente de datos: ReportRepository (consultas read-only). Cada bloque que
// falla se degrada a su valor por defecto; el dashboard nunca responde 500 por
// una sub-consulta caída.
type DashboardUseCase struct {
	reportUC   *ReportUseCase
	reportRepo repository.ReportRepository
	targets    dto.SalesTargetsDTO
	log        zerolog.Logger
}

// NewDashboardUseCase construye el caso de uso. targets viene de configuración.
func NewDashboardUseCase(reportUC *ReportUseCase, reportRepo repository.ReportRepository, targets dto.SalesTargetsDTO, log zerolog.Logger) *DashboardUseCase {
	return &DashboardUseCase{reportUC: reportUC, reportRepo: reportRepo, targets: targets, log: log}
}

// GetSummary construye el DashboardDTO de la sucursal. Las consultas corren en
// paralelo (goroutines con canal por bloque, igual que el resumen de ventas).
func (uc *DashboardUseCase) GetSummary(ctx context.Context, branchID string) (*dto.DashboardDTO, error) {
	now := time.Now()

	type todayResult struct {
		sales decimal.Decimal
		count int64
		err   error
	}
	type seriesResult struct {
		granularity string
		series      dto.SeriesDTO
		err         error
	}
	type topResult struct {
		products []dto.TopProductDTO
		err      error
	}

	todayCh := make(chan todayResult, 1)
	seriesCh := make(chan seriesResult, 4)
	topCh := make(chan topResult, 1)

	go func() {
		sales, count, err := uc.todayMetrics(ctx, branchID, now)
		todayCh <- todayResult{sales, count, err}
	}()
	for _, g := range []string{GranularityDaily, GranularityWeekly, GranularityMonthly, GranularityYearly} {
		go func(granularity string) {
			series, err := uc.reportUC.Series(ctx, branchID, granularity)
			seriesCh <- seriesResult{granularity, series, err}
		}(g)
	}
	go func() {
		products, err := uc.reportUC.TopProducts(ctx, branchID, SortByQuantitySold, "desc", dashboardTopProducts)
		topCh <- topResult{products, err}
	}()

	out := &dto.DashboardDTO{
		TodaySales:  decimal.Zero,
		LastUpdated: now.Format(time.RFC3339),
		TopProducts: []dto.TopProductDTO{},
		Targets:     uc.targets,
	}

	today := <-todayCh
	if today.err != nil {
		uc.log.Warn().Err(today.err).Msg("dashboard: métricas de hoy degradadas a cero")
	} else {
		out.TodaySales = today.sales
		out.TodayCount = today.count
	}

	for i := 0; i < 4; i++ {
		res := <-seriesCh
		if res.err != nil {
			uc.log.Warn().Err(res.err).Str("granularity", res.granularity).Msg("dashboard: serie degradada")
			continue
		}
		switch res.granularity {
		case GranularityDaily:
			out.DailySales = res.series
		case GranularityWeekly:
			out.WeeklySales = res.series
		case GranularityMonthly:
			out.MonthlySales = res.series
		case GranularityYearly:
			out.YearlySales = res.series
		}
	}

	top := <-topCh
	if top.err != nil {
		uc.log.Warn().Err(top.err).Msg("dashboard: top de productos degradado a lista vacía")
	} else {
		out.TopProducts = top.products
	}

	return out, nil
}

// GetRealtime devuelve solo los KPIs del día (para refresco frecuente).
func (uc *DashboardUseCase) GetRealtime(ctx context.Context, branchID string) (*dto.RealtimeDTO, error) {
	now := time.Now()
	sales, count, err := uc.todayMetrics(ctx, branchID, now)
	if err != nil {
		uc.log.Warn().Err(err).Msg("realtime: métricas de hoy degradadas a cero")
		sales, count = decimal.Zero, 0
	}
	return &dto.RealtimeDTO{
		TodaySales:  sales,
		TodayCount:  count,
		LastUpdated: now.Format(time.RFC3339),
	}, nil
}

// todayMetrics ventas y número de órdenes de hoy (00:00:00 – 23:59:59.999…).
func (uc *DashboardUseCase) todayMetrics(ctx context.Context, branchID string, now time.Time) (decimal.Decimal, int64, error) {
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	todayEnd := todayStart.Add(24*time.Hour - time.Nanosecond)
	return uc.reportRepo.GetSalesTotals(ctx, repository.ReportFilter{
		BranchID: branchID,
		Start:    todayStart,
		End:      todayEnd,
	})
}
