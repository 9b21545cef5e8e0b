package analytics

import (
	"math"
	"strings"

	"github.com/satyenduM/Quant-Matrix-EDA-App/internal/dataset"
	"github.com/satyenduM/Quant-Matrix-EDA-App/pkg/contracts/domain"
)

// kpiOrder fixes the axis order of the monthly KPI correlation matrix.
var kpiOrder = []string{MetricSalesValue, MetricVolume, "ASP"}

// correlationPrefixes select the extra numeric columns that participate in
// the general correlation matrix.
var correlationPrefixes = []string{"D", "AV", "EV"}

// KPICorrelation computes the Pearson correlation matrix over the monthly
// SalesValue, Volume and derived ASP series and emits one cell per defined
// matrix entry, row-major in the fixed KPI order. Correlation is best-effort:
// degenerate input yields fewer (possibly zero) cells, never an error.
func KPICorrelation(monthly []Record) []domain.KPICorrelationCell {
	series := map[string][]float64{
		MetricSalesValue: make([]float64, len(monthly)),
		MetricVolume:     make([]float64, len(monthly)),
		"ASP":            make([]float64, len(monthly)),
	}

	for i, rec := range monthly {
		sales := recordFloat(rec, MetricSalesValue)
		volume := recordFloat(rec, MetricVolume)
		series[MetricSalesValue][i] = sales
		series[MetricVolume][i] = volume
		// ASP is undefined where either input is missing or Volume is zero.
		if !math.IsNaN(sales) && !math.IsNaN(volume) && volume != 0 {
			series["ASP"][i] = sales / volume
		} else {
			series["ASP"][i] = math.NaN()
		}
	}

	cells := make([]domain.KPICorrelationCell, 0, len(kpiOrder)*len(kpiOrder))
	for _, row := range kpiOrder {
		for _, col := range kpiOrder {
			if v, ok := pearson(series[row], series[col]); ok {
				cells = append(cells, domain.KPICorrelationCell{Row: row, Col: col, Value: v})
			}
		}
	}
	return cells
}

// GeneralCorrelation computes the pairwise Pearson correlation matrix over
// the selected numeric columns of the filtered rows and emits the strict
// upper triangle, skipping undefined pairs. Fewer than two selectable columns
// yields an empty result.
func GeneralCorrelation(t *dataset.Table, rows []dataset.Row) []domain.CorrelationPair {
	columns := selectCorrelationColumns(t)
	if len(columns) < 2 {
		return []domain.CorrelationPair{}
	}

	series := make(map[string][]float64, len(columns))
	for _, col := range columns {
		series[col] = columnSeries(rows, col)
	}

	pairs := make([]domain.CorrelationPair, 0)
	for i := 0; i < len(columns); i++ {
		for j := i + 1; j < len(columns); j++ {
			if v, ok := pearson(series[columns[i]], series[columns[j]]); ok {
				pairs = append(pairs, domain.CorrelationPair{
					Var1: columns[i],
					Var2: columns[j],
					Corr: v,
				})
			}
		}
	}
	return pairs
}

// selectCorrelationColumns enumerates the schema once and picks columns in
// fixed priority order: SalesValue, Volume, VolumeUnits where present, then
// every numeric column whose name carries a reserved prefix, de-duplicated
// preserving first-seen order.
func selectCorrelationColumns(t *dataset.Table) []string {
	var columns []string
	seen := make(map[string]bool)
	add := func(name string) {
		if !seen[name] {
			seen[name] = true
			columns = append(columns, name)
		}
	}

	add(MetricSalesValue)
	add(MetricVolume)
	if t.HasNumericExtra("VolumeUnits") {
		add("VolumeUnits")
	}
	for _, name := range t.NumericExtras() {
		for _, prefix := range correlationPrefixes {
			if strings.HasPrefix(name, prefix) {
				add(name)
				break
			}
		}
	}
	return columns
}

// columnSeries extracts a column as a float series with NaN marking missing
// values.
func columnSeries(rows []dataset.Row, col string) []float64 {
	out := make([]float64, len(rows))
	for i, r := range rows {
		var v *float64
		switch col {
		case MetricSalesValue:
			v = r.SalesValue
		case MetricVolume:
			v = r.Volume
		default:
			v = r.Extra[col]
		}
		if v == nil {
			out[i] = math.NaN()
		} else {
			out[i] = *v
		}
	}
	return out
}

// pearson computes the Pearson correlation coefficient over the
// pairwise-complete observations of x and y. The second return value is false
// when the coefficient is undefined: fewer than two complete pairs, zero
// variance in either series, or non-finite intermediate results.
func pearson(x, y []float64) (float64, bool) {
	if len(x) != len(y) {
		return 0, false
	}

	var sumX, sumY float64
	valid := 0
	for i := range x {
		if usable(x[i]) && usable(y[i]) {
			sumX += x[i]
			sumY += y[i]
			valid++
		}
	}
	if valid < 2 {
		return 0, false
	}
	meanX := sumX / float64(valid)
	meanY := sumY / float64(valid)

	var sumXY, sumXX, sumYY float64
	for i := range x {
		if usable(x[i]) && usable(y[i]) {
			dx := x[i] - meanX
			dy := y[i] - meanY
			sumXY += dx * dy
			sumXX += dx * dx
			sumYY += dy * dy
		}
	}
	if sumXX == 0 || sumYY == 0 {
		return 0, false
	}

	r := sumXY / math.Sqrt(sumXX*sumYY)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0, false
	}
	return r, true
}

func usable(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func recordFloat(rec Record, key string) float64 {
	if v, ok := rec[key].(float64); ok {
		return v
	}
	return math.NaN()
}
