package analytics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satyenduM/Quant-Matrix-EDA-App/internal/dataset"
)

func TestSumByYear(t *testing.T) {
	t.Run("sums per year ascending and drops missing years", func(t *testing.T) {
		got := SumByYear(sampleRows(), MetricSalesValue)

		require.Len(t, got, 2)
		assert.Equal(t, Record{"Year": 2020, "SalesValue": 150.0}, got[0])
		assert.Equal(t, Record{"Year": 2021, "SalesValue": 200.0}, got[1])
	})

	t.Run("nil metric contributes zero but keeps the group", func(t *testing.T) {
		rows := sampleRows()
		rows[0].SalesValue = nil

		got := SumByYear(rows, MetricSalesValue)

		require.Len(t, got, 2)
		assert.Equal(t, 50.0, got[0]["SalesValue"])
	})

	t.Run("empty input yields empty result", func(t *testing.T) {
		got := SumByYear(nil, MetricSalesValue)
		assert.Empty(t, got)
	})
}

func TestSumByYearAndDimension(t *testing.T) {
	got := SumByYearAndDimension(sampleRows(), "Brand", MetricSalesValue)

	require.Len(t, got, 3)
	assert.Equal(t, Record{"Year": 2020, "Brand": "Alfa", "SalesValue": 100.0}, got[0])
	assert.Equal(t, Record{"Year": 2020, "Brand": "Bravo", "SalesValue": 50.0}, got[1])
	assert.Equal(t, Record{"Year": 2021, "Brand": "Alfa", "SalesValue": 200.0}, got[2])
}

func TestSumByDimensionAndYear(t *testing.T) {
	got := SumByDimensionAndYear(sampleRows(), "Brand", MetricSalesValue)

	require.Len(t, got, 3)
	// Dimension-major ordering: all Alfa years before Bravo.
	assert.Equal(t, Record{"Brand": "Alfa", "Year": 2020, "SalesValue": 100.0}, got[0])
	assert.Equal(t, Record{"Brand": "Alfa", "Year": 2021, "SalesValue": 200.0}, got[1])
	assert.Equal(t, Record{"Brand": "Bravo", "Year": 2020, "SalesValue": 50.0}, got[2])
}

func TestSumByComboAndYear(t *testing.T) {
	got := SumByComboAndYear(sampleRows(), MetricSalesValue)

	require.Len(t, got, 3)
	assert.Equal(t, "Alfa · Can · Small", got[0]["Combo"])
	assert.Equal(t, 2020, got[0]["Year"])
	assert.Equal(t, 100.0, got[0]["SalesValue"])
	assert.Equal(t, "Bravo · Bottle · Large", got[1]["Combo"])
	assert.Equal(t, 2021, got[2]["Year"])
}

func TestSumByComboThenYear(t *testing.T) {
	got := SumByComboThenYear(sampleRows(), MetricSalesValue)

	require.Len(t, got, 3)
	// Combo-major ordering: both Alfa years adjacent, then Bravo.
	assert.Equal(t, 2020, got[0]["Year"])
	assert.Equal(t, "Alfa", got[0]["Brand"])
	assert.Equal(t, 2021, got[1]["Year"])
	assert.Equal(t, "Alfa", got[1]["Brand"])
	assert.Equal(t, "Bravo", got[2]["Brand"])
}

func TestMarketShare(t *testing.T) {
	t.Run("orders descending by sales", func(t *testing.T) {
		got := MarketShare(sampleRows(), "Brand")

		require.Len(t, got, 2)
		// Alfa includes the nil-year row: market share has no time axis.
		assert.Equal(t, Record{"Brand": "Alfa", "SalesValue": 1299.0, "Volume": 129.0}, got[0])
		assert.Equal(t, Record{"Brand": "Bravo", "SalesValue": 50.0, "Volume": 5.0}, got[1])
	})

	t.Run("grand total matches row sum", func(t *testing.T) {
		got := MarketShare(sampleRows(), "Channel")

		var total float64
		for _, rec := range got {
			total += rec[MetricSalesValue].(float64)
		}
		assert.Equal(t, 1349.0, total)
	})
}

func TestMarketShareCombo(t *testing.T) {
	got := MarketShareCombo(sampleRows())

	require.Len(t, got, 2)
	assert.Equal(t, "Alfa", got[0]["Brand"])
	assert.Equal(t, "Alfa · Can · Small", got[0]["Combo"])
	assert.Equal(t, 1299.0, got[0]["SalesValue"])
}

func TestMonthlyTrend(t *testing.T) {
	got := MonthlyTrend(sampleRows())

	require.Len(t, got, 3)
	assert.Equal(t, "2020-01", got[0]["YearMonth"])
	assert.Equal(t, "2020-01-15", got[0]["date"])
	assert.Equal(t, 100.0, got[0]["SalesValue"])
	assert.Equal(t, "2020-02", got[1]["YearMonth"])
	assert.Equal(t, "2021-01", got[2]["YearMonth"])
}

func TestMonthlyTrendMissingDate(t *testing.T) {
	rows := []dataset.Row{
		makeRow(rowSpec{year: iptr(2020), month: iptr(3), sales: fptr(10), volume: fptr(1)}),
	}

	got := MonthlyTrend(rows)

	require.Len(t, got, 1)
	assert.Nil(t, got[0]["date"])
}

func TestMonthlyByDimension(t *testing.T) {
	got := MonthlyByDimension(sampleRows(), "Channel")

	require.Len(t, got, 3)
	assert.Equal(t, Record{
		"Year": 2020, "Month": 1, "YearMonth": "2020-01",
		"Channel": "Retail", "SalesValue": 100.0,
	}, got[0])
	assert.Equal(t, "Online", got[1]["Channel"])
}

func TestStats(t *testing.T) {
	t.Run("computes summary statistics", func(t *testing.T) {
		got := Stats(sampleRows())

		assert.Equal(t, 1349.0, got.SalesValue.Sum)
		assert.Equal(t, 4, got.SalesValue.Count)
		assert.Equal(t, 50.0, got.SalesValue.Min)
		assert.Equal(t, 999.0, got.SalesValue.Max)
		assert.InDelta(t, 337.25, got.SalesValue.Mean, 1e-9)
		assert.Equal(t, 134.0, got.Volume.Sum)
	})

	t.Run("empty input yields zeros", func(t *testing.T) {
		got := Stats(nil)

		assert.Zero(t, got.SalesValue.Sum)
		assert.Zero(t, got.SalesValue.Mean)
		assert.Zero(t, got.SalesValue.Min)
		assert.Zero(t, got.SalesValue.Max)
		assert.Zero(t, got.SalesValue.Count)
	})

	t.Run("non-finite values are treated as missing", func(t *testing.T) {
		rows := sampleRows()
		rows[3].SalesValue = fptr(math.Inf(1))
		rows[3].Volume = fptr(math.NaN())

		got := Stats(rows)

		assert.Equal(t, 3, got.SalesValue.Count)
		assert.Equal(t, 350.0, got.SalesValue.Sum)
		assert.Equal(t, 200.0, got.SalesValue.Max)
		assert.Equal(t, 3, got.Volume.Count)
		assert.Equal(t, 35.0, got.Volume.Sum)
	})

	t.Run("nil values do not count", func(t *testing.T) {
		rows := sampleRows()
		rows[3].SalesValue = nil

		got := Stats(rows)

		assert.Equal(t, 3, got.SalesValue.Count)
		assert.Equal(t, 350.0, got.SalesValue.Sum)
	})
}

func TestGroupingConsistency(t *testing.T) {
	rows := sampleRows()

	byYear := SumByYear(rows, MetricSalesValue)
	byBrandYear := SumByYearAndDimension(rows, "Brand", MetricSalesValue)

	perYear := make(map[int]float64)
	for _, rec := range byBrandYear {
		perYear[rec["Year"].(int)] += rec[MetricSalesValue].(float64)
	}
	for _, rec := range byYear {
		assert.InDelta(t, rec[MetricSalesValue].(float64), perYear[rec["Year"].(int)], 1e-9)
	}
}
