package reporting

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/retail-pos/internal/application/dto"
	"github.com/tu-usuario/retail-pos/internal/domain/repository"
)

// Granularidades de las series temporales del dashboard.
const (
	GranularityDaily   = "daily"   // últimos 7 días
	GranularityWeekly  = "weekly"  // últimas 4 semanas
	GranularityMonthly = "monthly" // últimos 12 meses
	GranularityYearly  = "yearly"  // últimos 5 años
)

// bucketSpec es un bucket de ancho fijo: inicio normalizado y etiqueta legible.
type bucketSpec struct {
	Start time.Time
	Label string
}

// startOfDay normaliza a las 00:00 locales.
func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// startOfWeek normaliza al lunes 00:00 (semana ISO, igual que date_trunc('week')).
func startOfWeek(t time.Time) time.Time {
	d := startOfDay(t)
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset)
}

// startOfMonth normaliza al día 1 a las 00:00.
func startOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// startOfYear normaliza al 1 de enero a las 00:00.
func startOfYear(t time.Time) time.Time {
	return time.Date(t.Year(), 1, 1, 0, 0, 0, 0, t.Location())
}

// dailyBuckets genera los últimos n días terminando hoy, en orden cronológico.
func dailyBuckets(now time.Time, n int) []bucketSpec {
	buckets := make([]bucketSpec, 0, n)
	first := startOfDay(now).AddDate(0, 0, -(n - 1))
	for i := 0; i < n; i++ {
		start := first.AddDate(0, 0, i)
		buckets = append(buckets, bucketSpec{Start: start, Label: start.Format("Jan 02")})
	}
	return buckets
}

// weeklyBuckets genera las últimas n semanas terminando en la semana actual.
func weeklyBuckets(now time.Time, n int) []bucketSpec {
	buckets := make([]bucketSpec, 0, n)
	first := startOfWeek(now).AddDate(0, 0, -7*(n-1))
	for i := 0; i < n; i++ {
		start := first.AddDate(0, 0, 7*i)
		buckets = append(buckets, bucketSpec{Start: start, Label: "Week " + start.Format("Jan 02")})
	}
	return buckets
}

// monthlyBuckets genera los últimos n meses terminando en el mes actual.
func monthlyBuckets(now time.Time, n int) []bucketSpec {
	buckets := make([]bucketSpec, 0, n)
	first := startOfMonth(now).AddDate(0, -(n - 1), 0)
	for i := 0; i < n; i++ {
		start := first.AddDate(0, i, 0)
		buckets = append(buckets, bucketSpec{Start: start, Label: start.Format("Jan 2006")})
	}
	return buckets
}

// yearlyBuckets genera los últimos n años terminando en el año actual.
func yearlyBuckets(now time.Time, n int) []bucketSpec {
	buckets := make([]bucketSpec, 0, n)
	first := startOfYear(now).AddDate(-(n - 1), 0, 0)
	for i := 0; i < n; i++ {
		start := first.AddDate(i, 0, 0)
		buckets = append(buckets, bucketSpec{Start: start, Label: start.Format("2006")})
	}
	return buckets
}

// bucketsFor devuelve los buckets y el truncado SQL para una granularidad.
// La ventana es la del sistema original: 7 días, 4 semanas, 12 meses, 5 años.
func bucketsFor(granularity string, now time.Time) (buckets []bucketSpec, trunc string, ok bool) {
	switch granularity {
	case GranularityDaily:
		return dailyBuckets(now, 7), "day", true
	case GranularityWeekly:
		return weeklyBuckets(now, 4), "week", true
	case GranularityMonthly:
		return monthlyBuckets(now, 12), "month", true
	case GranularityYearly:
		return yearlyBuckets(now, 5), "year", true
	}
	return nil, "", false
}

// fillSeries proyecta filas crudas sobre los buckets: produce un valor por
// bucket en orden cronológico, cero para los buckets sin ventas.
func fillSeries(buckets []bucketSpec, rows []repository.SeriesRow) dto.SeriesDTO {
	byStart := make(map[string]decimal.Decimal, len(rows))
	for _, row := range rows {
		byStart[row.Bucket.Format("2006-01-02")] = row.Total
	}
	series := dto.SeriesDTO{
		Labels: make([]string, 0, len(buckets)),
		Values: make([]decimal.Decimal, 0, len(buckets)),
	}
	for _, b := range buckets {
		total, found := byStart[b.Start.Format("2006-01-02")]
		if !found {
			total = decimal.Zero
		}
		series.Labels = append(series.Labels, b.Label)
		series.Values = append(series.Values, total)
	}
	return series
}
