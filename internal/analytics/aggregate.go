package analytics

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/satyenduM/Quant-Matrix-EDA-App/internal/dataset"
	"github.com/satyenduM/Quant-Matrix-EDA-App/pkg/contracts/domain"
)

// Record is one output row of an aggregation: grouping-key names and the
// summed metric, ready for JSON serialization after sanitization.
type Record map[string]any

// Metric column names accepted by the aggregation shapes.
const (
	MetricSalesValue = "SalesValue"
	MetricVolume     = "Volume"
)

// comboSeparator joins Brand, PackType and PPG into the derived Combo label.
const comboSeparator = " · "

// ComboLabel derives the joint Brand/PackType/PPG label for a row. Missing
// values contribute an empty segment.
func ComboLabel(r dataset.Row) string {
	return r.Brand + comboSeparator + r.PackType + comboSeparator + r.PPG
}

func metricValue(r dataset.Row, metric string) *float64 {
	switch metric {
	case MetricSalesValue:
		return r.SalesValue
	case MetricVolume:
		return r.Volume
	}
	return nil
}

// addMetric accumulates with sum-ignoring-null semantics: a nil value
// contributes zero but still materializes the group.
func addMetric(sums map[string]float64, key string, v *float64) {
	if v != nil {
		sums[key] += *v
	} else {
		sums[key] += 0
	}
}

// SumByYear sums metric grouped by Year, ordered ascending by Year. Rows with
// a missing Year are excluded from the grouping.
func SumByYear(rows []dataset.Row, metric string) []Record {
	sums := make(map[int]float64)
	for _, r := range rows {
		if r.Year == nil {
			continue
		}
		v := 0.0
		if m := metricValue(r, metric); m != nil {
			v = *m
		}
		sums[*r.Year] += v
	}

	years := make([]int, 0, len(sums))
	for y := range sums {
		years = append(years, y)
	}
	sort.Ints(years)

	out := make([]Record, 0, len(years))
	for _, y := range years {
		out = append(out, Record{"Year": y, metric: sums[y]})
	}
	return out
}

type yearDimKey struct {
	year int
	dim  string
}

// SumByYearAndDimension sums metric grouped by (Year, dimension), ordered by
// ascending Year then dimension value.
func SumByYearAndDimension(rows []dataset.Row, dim, metric string) []Record {
	sums := make(map[yearDimKey]float64)
	for _, r := range rows {
		if r.Year == nil {
			continue
		}
		key := yearDimKey{year: *r.Year, dim: r.Dimension(dim)}
		v := 0.0
		if m := metricValue(r, metric); m != nil {
			v = *m
		}
		sums[key] += v
	}

	keys := make([]yearDimKey, 0, len(sums))
	for k := range sums {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].year != keys[j].year {
			return keys[i].year < keys[j].year
		}
		return keys[i].dim < keys[j].dim
	})

	out := make([]Record, 0, len(keys))
	for _, k := range keys {
		out = append(out, Record{"Year": k.year, dim: k.dim, metric: sums[k]})
	}
	return out
}

// SumByDimensionAndYear is the dimension-major variant: grouped by
// (dimension, Year), ordered by dimension value then ascending Year.
func SumByDimensionAndYear(rows []dataset.Row, dim, metric string) []Record {
	sums := make(map[yearDimKey]float64)
	for _, r := range rows {
		if r.Year == nil {
			continue
		}
		key := yearDimKey{year: *r.Year, dim: r.Dimension(dim)}
		v := 0.0
		if m := metricValue(r, metric); m != nil {
			v = *m
		}
		sums[key] += v
	}

	keys := make([]yearDimKey, 0, len(sums))
	for k := range sums {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].dim != keys[j].dim {
			return keys[i].dim < keys[j].dim
		}
		return keys[i].year < keys[j].year
	})

	out := make([]Record, 0, len(keys))
	for _, k := range keys {
		out = append(out, Record{dim: k.dim, "Year": k.year, metric: sums[k]})
	}
	return out
}

type comboYearKey struct {
	year     int
	brand    string
	packType string
	ppg      string
}

func (k comboYearKey) label() string {
	return k.brand + comboSeparator + k.packType + comboSeparator + k.ppg
}

func (k comboYearKey) lessCombo(o comboYearKey) bool {
	if k.brand != o.brand {
		return k.brand < o.brand
	}
	if k.packType != o.packType {
		return k.packType < o.packType
	}
	return k.ppg < o.ppg
}

func sumByCombo(rows []dataset.Row, metric string) map[comboYearKey]float64 {
	sums := make(map[comboYearKey]float64)
	for _, r := range rows {
		if r.Year == nil {
			continue
		}
		key := comboYearKey{year: *r.Year, brand: r.Brand, packType: r.PackType, ppg: r.PPG}
		v := 0.0
		if m := metricValue(r, metric); m != nil {
			v = *m
		}
		sums[key] += v
	}
	return sums
}

func comboRecord(k comboYearKey, metric string, sum float64) Record {
	return Record{
		"Year":     k.year,
		"Brand":    k.brand,
		"PackType": k.packType,
		"PPG":      k.ppg,
		"Combo":    k.label(),
		metric:     sum,
	}
}

// SumByComboAndYear sums metric grouped by (Year, Brand, PackType, PPG) with
// the derived Combo label, ordered ascending by Year then combo segments.
func SumByComboAndYear(rows []dataset.Row, metric string) []Record {
	sums := sumByCombo(rows, metric)

	keys := make([]comboYearKey, 0, len(sums))
	for k := range sums {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].year != keys[j].year {
			return keys[i].year < keys[j].year
		}
		return keys[i].lessCombo(keys[j])
	})

	out := make([]Record, 0, len(keys))
	for _, k := range keys {
		out = append(out, comboRecord(k, metric, sums[k]))
	}
	return out
}

// SumByComboThenYear is the combo-major variant, ordered by combo segments
// then ascending Year.
func SumByComboThenYear(rows []dataset.Row, metric string) []Record {
	sums := sumByCombo(rows, metric)

	keys := make([]comboYearKey, 0, len(sums))
	for k := range sums {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if !keys[i].lessCombo(keys[j]) && !keys[j].lessCombo(keys[i]) {
			return keys[i].year < keys[j].year
		}
		return keys[i].lessCombo(keys[j])
	})

	out := make([]Record, 0, len(keys))
	for _, k := range keys {
		out = append(out, comboRecord(k, metric, sums[k]))
	}
	return out
}

// MarketShare sums SalesValue and Volume grouped by dimension only (no time
// axis), ordered descending by summed SalesValue.
func MarketShare(rows []dataset.Row, dim string) []Record {
	sales := make(map[string]float64)
	volume := make(map[string]float64)
	for _, r := range rows {
		key := r.Dimension(dim)
		addMetric(sales, key, r.SalesValue)
		addMetric(volume, key, r.Volume)
	}

	keys := make([]string, 0, len(sales))
	for k := range sales {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if sales[keys[i]] != sales[keys[j]] {
			return sales[keys[i]] > sales[keys[j]]
		}
		return keys[i] < keys[j]
	})

	out := make([]Record, 0, len(keys))
	for _, k := range keys {
		out = append(out, Record{dim: k, MetricSalesValue: sales[k], MetricVolume: volume[k]})
	}
	return out
}

// MarketShareCombo sums both metrics grouped by the joint
// Brand/PackType/PPG combination, ordered by combo segments.
func MarketShareCombo(rows []dataset.Row) []Record {
	type comboKey struct{ brand, packType, ppg string }
	sales := make(map[comboKey]float64)
	volume := make(map[comboKey]float64)
	for _, r := range rows {
		key := comboKey{r.Brand, r.PackType, r.PPG}
		if r.SalesValue != nil {
			sales[key] += *r.SalesValue
		} else {
			sales[key] += 0
		}
		if r.Volume != nil {
			volume[key] += *r.Volume
		} else {
			volume[key] += 0
		}
	}

	keys := make([]comboKey, 0, len(sales))
	for k := range sales {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].brand != keys[j].brand {
			return keys[i].brand < keys[j].brand
		}
		if keys[i].packType != keys[j].packType {
			return keys[i].packType < keys[j].packType
		}
		return keys[i].ppg < keys[j].ppg
	})

	out := make([]Record, 0, len(keys))
	for _, k := range keys {
		out = append(out, Record{
			"Brand":          k.brand,
			"PackType":       k.packType,
			"PPG":            k.ppg,
			"Combo":          strings.Join([]string{k.brand, k.packType, k.ppg}, comboSeparator),
			MetricSalesValue: sales[k],
			MetricVolume:     volume[k],
		})
	}
	return out
}

type monthKey struct {
	year  int
	month int
}

func yearMonthLabel(k monthKey) string {
	return fmt.Sprintf("%d-%02d", k.year, k.month)
}

// MonthlyTrend sums SalesValue and Volume grouped by (Year, Month) with the
// derived YearMonth key, carrying the first non-missing date per bucket,
// ordered ascending by (Year, Month).
func MonthlyTrend(rows []dataset.Row) []Record {
	sales := make(map[monthKey]float64)
	volume := make(map[monthKey]float64)
	firstDate := make(map[monthKey]any)
	for _, r := range rows {
		if r.Year == nil || r.Month == nil {
			continue
		}
		key := monthKey{*r.Year, *r.Month}
		if _, seen := sales[key]; !seen {
			firstDate[key] = nil
		}
		if r.SalesValue != nil {
			sales[key] += *r.SalesValue
		} else {
			sales[key] += 0
		}
		if r.Volume != nil {
			volume[key] += *r.Volume
		} else {
			volume[key] += 0
		}
		if firstDate[key] == nil && r.Date != nil {
			firstDate[key] = r.Date.Format("2006-01-02")
		}
	}

	keys := make([]monthKey, 0, len(sales))
	for k := range sales {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].year != keys[j].year {
			return keys[i].year < keys[j].year
		}
		return keys[i].month < keys[j].month
	})

	out := make([]Record, 0, len(keys))
	for _, k := range keys {
		out = append(out, Record{
			"Year":           k.year,
			"Month":          k.month,
			"YearMonth":      yearMonthLabel(k),
			MetricSalesValue: sales[k],
			MetricVolume:     volume[k],
			"date":           firstDate[k],
		})
	}
	return out
}

type monthDimKey struct {
	year  int
	month int
	dim   string
}

// MonthlyByDimension sums SalesValue grouped by (Year, Month, dimension),
// ordered ascending by (Year, Month) then dimension value.
func MonthlyByDimension(rows []dataset.Row, dim string) []Record {
	sums := make(map[monthDimKey]float64)
	for _, r := range rows {
		if r.Year == nil || r.Month == nil {
			continue
		}
		key := monthDimKey{*r.Year, *r.Month, r.Dimension(dim)}
		if r.SalesValue != nil {
			sums[key] += *r.SalesValue
		} else {
			sums[key] += 0
		}
	}

	keys := make([]monthDimKey, 0, len(sums))
	for k := range sums {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].year != keys[j].year {
			return keys[i].year < keys[j].year
		}
		if keys[i].month != keys[j].month {
			return keys[i].month < keys[j].month
		}
		return keys[i].dim < keys[j].dim
	})

	out := make([]Record, 0, len(keys))
	for _, k := range keys {
		out = append(out, Record{
			"Year":           k.year,
			"Month":          k.month,
			"YearMonth":      yearMonthLabel(monthKey{k.year, k.month}),
			dim:              k.dim,
			MetricSalesValue: sums[k],
		})
	}
	return out
}

// Stats computes sum, mean, min, max and non-null count for SalesValue and
// Volume over rows. On an empty series mean, min and max default to zero.
func Stats(rows []dataset.Row) domain.KPIStats {
	return domain.KPIStats{
		SalesValue: metricStats(rows, MetricSalesValue),
		Volume:     metricStats(rows, MetricVolume),
	}
}

func metricStats(rows []dataset.Row, metric string) domain.MetricStats {
	var s domain.MetricStats
	for _, r := range rows {
		v := metricValue(r, metric)
		// Non-finite values are treated as missing, keeping every stat
		// representable in strict JSON.
		if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
			continue
		}
		if s.Count == 0 || *v < s.Min {
			s.Min = *v
		}
		if s.Count == 0 || *v > s.Max {
			s.Max = *v
		}
		s.Sum += *v
		s.Count++
	}
	if s.Count > 0 {
		s.Mean = s.Sum / float64(s.Count)
	}
	return s
}
