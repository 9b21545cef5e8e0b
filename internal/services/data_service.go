package services

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/satyenduM/Quant-Matrix-EDA-App/internal/analytics"
	"github.com/satyenduM/Quant-Matrix-EDA-App/internal/dataset"
	"github.com/satyenduM/Quant-Matrix-EDA-App/pkg/contracts/domain"
)

// Dimension column names used by the dashboard aggregations.
const (
	dimBrand    = "Brand"
	dimPackType = "PackType"
	dimPPG      = "PPG"
	dimChannel  = "Channel"
)

// allSentinel marks the aggregate pseudo-values some source files carry
// ("AllBrands", "AllChannel", ...). They are real rows for aggregation but
// are hidden from the filter option listings.
const allSentinel = "All"

// DataService serves filter options and the dashboard payload over the loaded
// dataset.
type DataService struct {
	store  *dataset.Store
	logger *slog.Logger
}

// NewDataService creates a new data service.
func NewDataService(store *dataset.Store, logger *slog.Logger) *DataService {
	return &DataService{
		store:  store,
		logger: logger.With(slog.String("service", "data")),
	}
}

// FilterOptions returns the distinct values available for each filterable
// column: deduplicated, sorted ascending, with missing values and the "All*"
// sentinel rows excluded.
func (s *DataService) FilterOptions(ctx context.Context) (domain.FilterOptions, error) {
	table := s.store.Get(ctx)

	brands := map[string]bool{}
	packTypes := map[string]bool{}
	ppgs := map[string]bool{}
	channels := map[string]bool{}
	years := map[int]bool{}
	for _, r := range table.Rows {
		brands[r.Brand] = true
		packTypes[r.PackType] = true
		ppgs[r.PPG] = true
		channels[r.Channel] = true
		if r.Year != nil {
			years[*r.Year] = true
		}
	}

	opts := domain.FilterOptions{
		Brands:    sortedOptions(brands),
		PackTypes: sortedOptions(packTypes),
		PPGs:      sortedOptions(ppgs),
		Channels:  sortedOptions(channels),
		Years:     sortedYears(years),
	}

	s.logger.DebugContext(ctx, "filter options computed",
		slog.Int("brands", len(opts.Brands)),
		slog.Int("years", len(opts.Years)))
	return opts, nil
}

// Dashboard applies the filter spec to the dataset and computes the complete
// set of aggregation, statistic and correlation result sets. Every table is
// sanitized so the payload marshals to strict JSON.
func (s *DataService) Dashboard(ctx context.Context, spec domain.FilterSpec) (map[string]any, error) {
	table := s.store.Get(ctx)
	rows := analytics.ApplyFilters(table, spec)

	s.logger.InfoContext(ctx, "computing dashboard",
		slog.Int("rows_total", table.Len()),
		slog.Int("rows_filtered", len(rows)),
		slog.Bool("filtered", !spec.IsEmpty()))

	monthly := analytics.MonthlyTrend(rows)

	payload := map[string]any{
		"salesByYear":  clean(analytics.SumByYear(rows, analytics.MetricSalesValue)),
		"volumeByYear": clean(analytics.SumByYear(rows, analytics.MetricVolume)),
		"kpiStats":     analytics.Stats(rows),

		"salesByBrandYear":    clean(analytics.SumByYearAndDimension(rows, dimBrand, analytics.MetricSalesValue)),
		"volumeByBrandYear":   clean(analytics.SumByYearAndDimension(rows, dimBrand, analytics.MetricVolume)),
		"salesByPackTypeYear": clean(analytics.SumByYearAndDimension(rows, dimPackType, analytics.MetricSalesValue)),
		"salesByPPGYear":      clean(analytics.SumByYearAndDimension(rows, dimPPG, analytics.MetricSalesValue)),
		"salesByChannelYear":  clean(analytics.SumByYearAndDimension(rows, dimChannel, analytics.MetricSalesValue)),
		"salesByComboYear":    clean(analytics.SumByComboAndYear(rows, analytics.MetricSalesValue)),

		"volumeByPackTypeYear": clean(analytics.SumByYearAndDimension(rows, dimPackType, analytics.MetricVolume)),
		"volumeByPPGYear":      clean(analytics.SumByYearAndDimension(rows, dimPPG, analytics.MetricVolume)),
		"volumeByChannelYear":  clean(analytics.SumByYearAndDimension(rows, dimChannel, analytics.MetricVolume)),
		"volumeByComboYear":    clean(analytics.SumByComboAndYear(rows, analytics.MetricVolume)),

		"monthlyTrend":        clean(monthly),
		"kpiCorrelation":      analytics.KPICorrelation(monthly),
		"monthlyBrandSales":   clean(analytics.MonthlyByDimension(rows, dimBrand)),
		"monthlyChannelSales": clean(analytics.MonthlyByDimension(rows, dimChannel)),

		"marketShareSales":    clean(analytics.MarketShare(rows, dimBrand)),
		"marketSharePackType": clean(analytics.MarketShare(rows, dimPackType)),
		"marketSharePPG":      clean(analytics.MarketShare(rows, dimPPG)),
		"marketShareChannel":  clean(analytics.MarketShare(rows, dimChannel)),
		"marketShareCombo":    clean(analytics.MarketShareCombo(rows)),

		"yearBrandSales":    clean(analytics.SumByDimensionAndYear(rows, dimBrand, analytics.MetricSalesValue)),
		"yearPackTypeSales": clean(analytics.SumByDimensionAndYear(rows, dimPackType, analytics.MetricSalesValue)),
		"yearPPGSales":      clean(analytics.SumByDimensionAndYear(rows, dimPPG, analytics.MetricSalesValue)),
		"yearComboSales":    clean(analytics.SumByComboThenYear(rows, analytics.MetricSalesValue)),

		"correlationMatrix": analytics.GeneralCorrelation(table, rows),
	}
	return payload, nil
}

func clean(records []analytics.Record) []analytics.Record {
	return analytics.SanitizeRecords(records)
}

func sortedOptions(values map[string]bool) []string {
	out := make([]string, 0, len(values))
	for v := range values {
		if v == "" || strings.HasPrefix(v, allSentinel) {
			continue
		}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

func sortedYears(values map[int]bool) []int {
	out := make([]int, 0, len(values))
	for v := range values {
		out = append(out, v)
	}
	sort.Ints(out)
	return out
}
