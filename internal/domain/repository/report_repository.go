package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ReportFilter acota las consultas de reportes. BranchID y CategoryID son
// opcionales (vacío = sin filtro); Start/End son inclusivos.
type ReportFilter struct {
	BranchID   string
	CategoryID string
	Start      time.Time
	End        time.Time
}

// SeriesRow es un punto crudo de una serie temporal: inicio del bucket y total vendido.
// Solo aparecen buckets con datos; el caso de uso rellena los vacíos con cero.
type SeriesRow struct {
	Bucket time.Time
	Total  decimal.Decimal
}

// TopProductRow es una fila cruda del ranking de productos más vendidos.
type TopProductRow struct {
	ProductID    string
	Name         string
	CategoryName string
	Price        decimal.Decimal
	QuantitySold int64
	Revenue      decimal.Decimal
	MarginPct    decimal.Decimal // (revenue - price*qty) / revenue * 100, 0 si revenue = 0
}

// ReportRepository define las consultas de solo lectura sobre órdenes persistidas.
// Solo considera órdenes con estado completed o confirmed. Las implementaciones
// no modifican datos ni retienen locks más allá de cada sentencia.
type ReportRepository interface {
	// GetSalesTotals devuelve la suma de totales y el número de órdenes del filtro.
	// COALESCE a cero cuando el período no tiene ventas.
	GetSalesTotals(ctx context.Context, f ReportFilter) (total decimal.Decimal, orders int64, err error)

	// GetItemsSold devuelve la suma de cantidades de líneas de las órdenes del filtro.
	GetItemsSold(ctx context.Context, f ReportFilter) (int64, error)

	// GetSalesSeries agrupa total vendido por bucket (trunc: day, week, month o year)
	// para una sucursal, en orden cronológico.
	GetSalesSeries(ctx context.Context, branchID string, start, end time.Time, trunc string) ([]SeriesRow, error)

	// GetTopProducts devuelve el ranking de productos por quantity_sold, revenue o
	// margin. Empates se resuelven de forma estable por product_id ascendente.
	GetTopProducts(ctx context.Context, branchID string, start, end time.Time, sortBy, sortOrder string, limit int) ([]TopProductRow, error)
}
