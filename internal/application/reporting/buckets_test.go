package reporting

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/retail-pos/internal/domain/repository"
)

// now fijo para tests deterministas: miércoles 15 de marzo de 2023, 14:30 local.
var testNow = time.Date(2023, time.March, 15, 14, 30, 0, 0, time.UTC)

// ──────────────────────────────────────────────────────────────────────────────
// Ventanas por granularidad: 7 días, 4 semanas, 12 meses, 5 años
// ──────────────────────────────────────────────────────────────────────────────

func TestBucketsFor_Ventanas(t *testing.T) {
	cases := []struct {
		granularity string
		count       int
		trunc       string
	}{
		{GranularityDaily, 7, "day"},
		{GranularityWeekly, 4, "week"},
		{GranularityMonthly, 12, "month"},
		{GranularityYearly, 5, "year"},
	}
	for _, tc := range cases {
		buckets, trunc, ok := bucketsFor(tc.granularity, testNow)
		require.True(t, ok, tc.granularity)
		assert.Len(t, buckets, tc.count, tc.granularity)
		assert.Equal(t, tc.trunc, trunc, tc.granularity)
	}
}

func TestBucketsFor_GranularidadDesconocida(t *testing.T) {
	_, _, ok := bucketsFor("hourly", testNow)
	assert.False(t, ok)
}

func TestDailyBuckets_OrdenCronologicoYTerminaHoy(t *testing.T) {
	buckets := dailyBuckets(testNow, 7)
	require.Len(t, buckets, 7)

	// Cronológico estricto y el último bucket es hoy a las 00:00
	for i := 1; i < len(buckets); i++ {
		assert.True(t, buckets[i].Start.After(buckets[i-1].Start))
	}
	assert.Equal(t, time.Date(2023, time.March, 15, 0, 0, 0, 0, time.UTC), buckets[6].Start)
	assert.Equal(t, time.Date(2023, time.March, 9, 0, 0, 0, 0, time.UTC), buckets[0].Start)
	assert.Equal(t, "Mar 15", buckets[6].Label)
}

func TestWeeklyBuckets_EmpiezanEnLunes(t *testing.T) {
	buckets := weeklyBuckets(testNow, 4)
	require.Len(t, buckets, 4)
	for _, b := range buckets {
		assert.Equal(t, time.Monday, b.Start.Weekday(), b.Label)
	}
	// El 15 de marzo de 2023 es miércoles; su semana empieza el lunes 13.
	assert.Equal(t, time.Date(2023, time.March, 13, 0, 0, 0, 0, time.UTC), buckets[3].Start)
	assert.Equal(t, "Week Mar 13", buckets[3].Label)
}

func TestMonthlyBuckets_DozeMesesTerminandoEnElActual(t *testing.T) {
	buckets := monthlyBuckets(testNow, 12)
	require.Len(t, buckets, 12)
	assert.Equal(t, time.Date(2023, time.March, 1, 0, 0, 0, 0, time.UTC), buckets[11].Start)
	assert.Equal(t, time.Date(2022, time.April, 1, 0, 0, 0, 0, time.UTC), buckets[0].Start)
	assert.Equal(t, "Mar 2023", buckets[11].Label)
	assert.Equal(t, "Apr 2022", buckets[0].Label)
}

func TestYearlyBuckets_CincoAnios(t *testing.T) {
	buckets := yearlyBuckets(testNow, 5)
	require.Len(t, buckets, 5)
	assert.Equal(t, "2019", buckets[0].Label)
	assert.Equal(t, "2023", buckets[4].Label)
}

// ──────────────────────────────────────────────────────────────────────────────
// fillSeries: relleno con cero y proyección de filas crudas
// ──────────────────────────────────────────────────────────────────────────────

func TestFillSeries_SinVentasTodoCero(t *testing.T) {
	buckets := dailyBuckets(testNow, 7)
	series := fillSeries(buckets, nil)

	require.Len(t, series.Labels, 7)
	require.Len(t, series.Values, 7)
	for i, v := range series.Values {
		assert.True(t, v.IsZero(), "bucket %s debe ser cero", series.Labels[i])
	}
}

func TestFillSeries_ProyectaFilasEnSuBucket(t *testing.T) {
	buckets := dailyBuckets(testNow, 7)
	rows := []repository.SeriesRow{
		{Bucket: time.Date(2023, time.March, 13, 0, 0, 0, 0, time.UTC), Total: decimal.NewFromInt(150)},
		{Bucket: time.Date(2023, time.March, 15, 0, 0, 0, 0, time.UTC), Total: decimal.NewFromInt(80)},
	}
	series := fillSeries(buckets, rows)

	require.Len(t, series.Values, 7)
	// 13 de marzo es el índice 4 (9,10,11,12,13,14,15); 15 de marzo el índice 6
	assert.True(t, series.Values[4].Equal(decimal.NewFromInt(150)))
	assert.True(t, series.Values[6].Equal(decimal.NewFromInt(80)))
	// El resto queda en cero
	for _, i := range []int{0, 1, 2, 3, 5} {
		assert.True(t, series.Values[i].IsZero(), "índice %d", i)
	}
}

func TestFillSeries_IgnoraFilasFueraDeVentana(t *testing.T) {
	buckets := dailyBuckets(testNow, 7)
	rows := []repository.SeriesRow{
		// Fila de hace un año: no pertenece a ningún bucket de la ventana
		{Bucket: time.Date(2022, time.March, 15, 0, 0, 0, 0, time.UTC), Total: decimal.NewFromInt(999)},
	}
	series := fillSeries(buckets, rows)
	for _, v := range series.Values {
		assert.True(t, v.IsZero())
	}
}
