package dto

import "github.com/shopspring/decimal"

// SalesSummaryDTO respuesta de GET /api/reports/summary.
// Cada campo se degrada a su cero documentado si su sub-consulta falla
// (esto es un dashboard, no una ruta transaccional).
type SalesSummaryDTO struct {
	TotalSales        decimal.Decimal `json:"total_sales"`
	TotalOrders       int64           `json:"total_orders"`
	AverageOrderValue decimal.Decimal `json:"average_order_value"` // 0 si no hay órdenes
	TotalItems        int64           `json:"total_items"`

	// Comparación con el período inmediatamente anterior de igual duración.
	PreviousPeriodSales decimal.Decimal `json:"previous_period_sales"`
	PercentageChange    decimal.Decimal `json:"percentage_change"` // 0 si el período anterior fue 0
}

// SeriesDTO serie temporal con buckets de ancho fijo, en orden cronológico,
// incluyendo buckets sin ventas (valor 0).
type SeriesDTO struct {
	Labels []string          `json:"labels"`
	Values []decimal.Decimal `json:"values"`
}

// TopProductDTO fila del ranking de productos para dashboard y reportes.
type TopProductDTO struct {
	ProductID    string          `json:"product_id"`
	Name         string          `json:"name"`
	CategoryName string          `json:"category_name"`
	Price        decimal.Decimal `json:"price"`
	QuantitySold int64           `json:"quantity_sold"`
	Revenue      decimal.Decimal `json:"revenue"`
	Margin       decimal.Decimal `json:"margin"`
}

// SalesTargetsDTO metas de venta configurables por período.
type SalesTargetsDTO struct {
	Daily   decimal.Decimal `json:"daily"`
	Weekly  decimal.Decimal `json:"weekly"`
	Monthly decimal.Decimal `json:"monthly"`
	Yearly  decimal.Decimal `json:"yearly"`
}

// DashboardDTO respuesta de GET /api/dashboard.
type DashboardDTO struct {
	TodaySales   decimal.Decimal `json:"today_sales"`
	TodayCount   int64           `json:"today_count"`
	LastUpdated  string          `json:"last_updated"`
	DailySales   SeriesDTO       `json:"daily_sales"`
	WeeklySales  SeriesDTO       `json:"weekly_sales"`
	MonthlySales SeriesDTO       `json:"monthly_sales"`
	YearlySales  SeriesDTO       `json:"yearly_sales"`
	TopProducts  []TopProductDTO `json:"top_products"`
	Targets      SalesTargetsDTO `json:"targets"`
}

// RealtimeDTO respuesta de GET /api/dashboard/realtime (solo KPIs del día).
type RealtimeDTO struct {
	TodaySales  decimal.Decimal `json:"today_sales"`
	TodayCount  int64           `json:"today_count"`
	LastUpdated string          `json:"last_updated"`
}
