package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/retail-pos/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de solo lectura sobre órdenes persistidas. Solo considera
// órdenes en estado completed o confirmed; nunca retiene locks entre sentencias.
type ReportRepo struct {
	pool *pgxpool.Pool
}

// NewReportRepository construye el adaptador de reportes.
func NewReportRepository(pool *pgxpool.Pool) *ReportRepo {
	return &ReportRepo{pool: pool}
}

// saleStatuses estados de orden que cuentan como venta en los reportes.
const saleStatuses = `('completed', 'confirmed')`

// GetSalesTotals devuelve la suma de totales y el número de órdenes del filtro.
// Usa COALESCE para devolver cero si el período no tiene ventas. El filtro de
// categoría se aplica vía EXISTS sobre las líneas de la orden.
func (r *ReportRepo) GetSalesTotals(ctx context.Context, f repository.ReportFilter) (decimal.Decimal, int64, error) {
	const query = `
	SELECT
	    COALESCE(SUM(o.total), 0) AS total_sales,
	    COUNT(*)                  AS order_count
	FROM orders o
	WHERE o.status IN ` + saleStatuses + `
	  AND ($1 = '' OR o.branch_id = $1)
	  AND o.created_at BETWEEN $2 AND $3
	  AND ($4 = '' OR EXISTS (
	      SELECT 1 FROM order_items oi
	      JOIN products p ON p.id = oi.product_id
	      WHERE oi.order_id = o.id AND p.category_id = $4))`

	var total decimal.Decimal
	var orders int64
	err := r.pool.QueryRow(ctx, query, f.BranchID, f.Start, f.End, f.CategoryID).
		Scan(&total, &orders)
	if err != nil {
		return decimal.Zero, 0, fmt.Errorf("report.GetSalesTotals: %w", err)
	}
	return total, orders, nil
}

// GetItemsSold devuelve la suma de cantidades vendidas en las órdenes del filtro.
func (r *ReportRepo) GetItemsSold(ctx context.Context, f repository.ReportFilter) (int64, error) {
	const query = `
	SELECT COALESCE(SUM(oi.quantity), 0) AS items_sold
	FROM order_items oi
	JOIN orders o ON o.id = oi.order_id
	JOIN products p ON p.id = oi.product_id
	WHERE o.status IN ` + saleStatuses + `
	  AND ($1 = '' OR o.branch_id = $1)
	  AND o.created_at BETWEEN $2 AND $3
	  AND ($4 = '' OR p.category_id = $4)`

	var items int64
	err := r.pool.QueryRow(ctx, query, f.BranchID, f.Start, f.End, f.CategoryID).Scan(&items)
	if err != nil {
		return 0, fmt.Errorf("report.GetItemsSold: %w", err)
	}
	return items, nil
}

// GetSalesSeries agrupa el total vendido por bucket (day, week, month o year)
// para una sucursal. Solo retorna buckets con datos; el caso de uso rellena los
// vacíos con cero. El truncado se hace en UTC, no en la zona de la sesión:
// los inicios de bucket que genera el caso de uso también son medianoches UTC,
// y una venta cercana a medianoche debe caer en el mismo bucket en ambos lados.
func (r *ReportRepo) GetSalesSeries(ctx context.Context, branchID string, start, end time.Time, trunc string) ([]repository.SeriesRow, error) {
	switch trunc {
	case "day", "week", "month", "year":
	default:
		return nil, fmt.Errorf("report.GetSalesSeries: truncado inválido %q", trunc)
	}
	const query = `
	SELECT
	    date_trunc($4, o.created_at AT TIME ZONE 'UTC') AS bucket,
	    SUM(o.total)                                    AS total
	FROM orders o
	WHERE o.status IN ` + saleStatuses + `
	  AND o.branch_id = $1
	  AND o.created_at BETWEEN $2 AND $3
	GROUP BY bucket
	ORDER BY bucket`

	rows, err := r.pool.Query(ctx, query, branchID, start, end, trunc)
	if err != nil {
		return nil, fmt.Errorf("report.GetSalesSeries: %w", err)
	}
	defer rows.Close()

	var results []repository.SeriesRow
	for rows.Next() {
		var row repository.SeriesRow
		if err := rows.Scan(&row.Bucket, &row.Total); err != nil {
			return nil, fmt.Errorf("report.GetSalesSeries scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// GetTopProducts devuelve el ranking de productos por quantity_sold, revenue o
// margin. El margen se calcula como (revenue - cogs) / revenue * 100 protegido
// contra división por cero; los empates quedan estables por product_id ascendente.
// start/end en cero omiten ese extremo del rango.
func (r *ReportRepo) GetTopProducts(ctx context.Context, branchID string, start, end time.Time, sortBy, sortOrder string, limit int) ([]repository.TopProductRow, error) {
	var orderCol string
	switch sortBy {
	case "quantity_sold":
		orderCol = "quantity_sold"
	case "revenue":
		orderCol = "revenue"
	case "margin":
		orderCol = "margin_percentage"
	default:
		return nil, fmt.Errorf("report.GetTopProducts: criterio inválido %q", sortBy)
	}
	direction := "DESC"
	if sortOrder == "asc" {
		direction = "ASC"
	}

	query := `
	SELECT
	    p.id                                        AS product_id,
	    p.name                                      AS product_name,
	    c.name                                      AS category_name,
	    p.price,
	    SUM(oi.quantity)                            AS quantity_sold,
	    SUM(oi.quantity * oi.price)                 AS revenue,
	    CASE
	        WHEN SUM(oi.quantity * oi.price) > 0
	        THEN ROUND(
	            (SUM(oi.quantity * oi.price) - SUM(oi.quantity * p.price))
	            / SUM(oi.quantity * oi.price) * 100, 2)
	        ELSE 0
	    END                                         AS margin_percentage
	FROM order_items oi
	JOIN orders o     ON o.id = oi.order_id
	JOIN products p   ON p.id = oi.product_id
	JOIN categories c ON c.id = p.category_id
	WHERE o.status IN ` + saleStatuses + `
	  AND ($1 = '' OR o.branch_id = $1)
	  AND ($2::timestamptz IS NULL OR o.created_at >= $2)
	  AND ($3::timestamptz IS NULL OR o.created_at <= $3)
	GROUP BY p.id, p.name, c.name, p.price
	ORDER BY ` + orderCol + ` ` + direction + `, p.id ASC
	LIMIT $4`

	rows, err := r.pool.Query(ctx, query, branchID, nullIfZeroTime(start), nullIfZeroTime(end), limit)
	if err != nil {
		return nil, fmt.Errorf("report.GetTopProducts: %w", err)
	}
	defer rows.Close()

	var results []repository.TopProductRow
	for rows.Next() {
		var row repository.TopProductRow
		if err := rows.Scan(
			&row.ProductID,
			&row.Name,
			&row.CategoryName,
			&row.Price,
			&row.QuantitySold,
			&row.Revenue,
			&row.MarginPct,
		); err != nil {
			return nil, fmt.Errorf("report.GetTopProducts scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

func nullIfZeroTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
