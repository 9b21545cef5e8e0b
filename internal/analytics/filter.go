package analytics

import (
	"github.com/satyenduM/Quant-Matrix-EDA-App/internal/dataset"
	"github.com/satyenduM/Quant-Matrix-EDA-App/pkg/contracts/domain"
)

// ApplyFilters returns the rows of t matching every constraint of spec.
// Constraints are AND-combined across columns; values within one column are
// OR-combined. Empty or absent lists impose no constraint. The input table is
// never mutated; rows with a nil Year never match a years constraint.
func ApplyFilters(t *dataset.Table, spec domain.FilterSpec) []dataset.Row {
	if t == nil {
		return nil
	}
	if spec.IsEmpty() {
		return t.Rows
	}

	brands := toSet(spec.Brands)
	packTypes := toSet(spec.PackTypes)
	ppgs := toSet(spec.PPGs)
	channels := toSet(spec.Channels)
	years := make(map[int]bool, len(spec.Years))
	for _, y := range spec.Years {
		years[y] = true
	}

	filtered := make([]dataset.Row, 0, len(t.Rows))
	for _, row := range t.Rows {
		if len(brands) > 0 && !brands[row.Brand] {
			continue
		}
		if len(packTypes) > 0 && !packTypes[row.PackType] {
			continue
		}
		if len(ppgs) > 0 && !ppgs[row.PPG] {
			continue
		}
		if len(channels) > 0 && !channels[row.Channel] {
			continue
		}
		if len(years) > 0 && (row.Year == nil || !years[*row.Year]) {
			continue
		}
		filtered = append(filtered, row)
	}
	return filtered
}

func toSet(items []string) map[string]bool {
	if len(items) == 0 {
		return nil
	}
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[item] = true
	}
	return set
}
