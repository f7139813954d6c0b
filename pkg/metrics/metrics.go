// Package metrics define los contadores Prometheus de la aplicación.
// Se exponen en /metrics vía promhttp.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// OrdersPlacedCounter órdenes registradas con éxito, por sucursal.
	OrdersPlacedCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "retail_pos_orders_placed_total",
			Help: "Total de órdenes registradas con éxito",
		},
		[]string{"branch_id"},
	)

	// OrdersRejectedCounter órdenes rechazadas, por motivo (validation, insufficient_stock, not_found).
	OrdersRejectedCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "retail_pos_orders_rejected_total",
			Help: "Total de órdenes rechazadas",
		},
		[]string{"reason"},
	)

	// StockMovementsCounter movimientos del ledger, por tipo (SALE, RELEASE, RECEIPT, ADJUSTMENT).
	StockMovementsCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "retail_pos_stock_movements_total",
			Help: "Total de movimientos de stock registrados",
		},
		[]string{"type"},
	)

	// HTTPRequestDuration duración de requests HTTP en segundos.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "retail_pos_http_request_duration_seconds",
			Help:    "Duración de los requests HTTP en segundos",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)

// RecordOrderPlaced incrementa el contador de órdenes registradas.
func RecordOrderPlaced(branchID string) {
	OrdersPlacedCounter.WithLabelValues(branchID).Inc()
}

// RecordOrderRejected incrementa el contador de órdenes rechazadas.
func RecordOrderRejected(reason string) {
	OrdersRejectedCounter.WithLabelValues(reason).Inc()
}

// RecordStockMovement incrementa el contador de movimientos del ledger.
func RecordStockMovement(movementType string) {
	StockMovementsCounter.WithLabelValues(movementType).Inc()
}
