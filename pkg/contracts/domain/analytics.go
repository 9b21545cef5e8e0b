package domain

// FilterSpec is the set of optional inclusion constraints a client may apply
// to the sales dataset. Absent or empty lists impose no constraint on the
// corresponding column; present lists are combined with logical AND. Values
// that match nothing simply produce empty results, so years carry no range
// validation.
type FilterSpec struct {
	Brands    []string `json:"brands,omitempty" validate:"omitempty,dive,min=1"`
	PackTypes []string `json:"packTypes,omitempty" validate:"omitempty,dive,min=1"`
	PPGs      []string `json:"ppgs,omitempty" validate:"omitempty,dive,min=1"`
	Channels  []string `json:"channels,omitempty" validate:"omitempty,dive,min=1"`
	Years     []int    `json:"years,omitempty"`
}

// IsEmpty reports whether no constraint is set at all.
func (f FilterSpec) IsEmpty() bool {
	return len(f.Brands) == 0 && len(f.PackTypes) == 0 && len(f.PPGs) == 0 &&
		len(f.Channels) == 0 && len(f.Years) == 0
}

// FilterOptions lists the distinct values available for each filterable
// column: de-duplicated, sorted ascending, excluding missing values and the
// "All*" sentinel aggregate rows carried by the source dataset.
type FilterOptions struct {
	Brands    []string `json:"brands"`
	PackTypes []string `json:"packTypes"`
	PPGs      []string `json:"ppgs"`
	Channels  []string `json:"channels"`
	Years     []int    `json:"years"`
}

// MetricStats holds summary statistics for a single numeric measure.
// Mean, Min and Max default to zero when no values are present.
type MetricStats struct {
	Sum   float64 `json:"sum"`
	Mean  float64 `json:"mean"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Count int     `json:"count"`
}

// KPIStats carries per-metric summary statistics over the filtered dataset.
type KPIStats struct {
	SalesValue MetricStats `json:"SalesValue"`
	Volume     MetricStats `json:"Volume"`
}

// KPICorrelationCell is one cell of the monthly KPI correlation matrix
// (SalesValue, Volume, ASP). Undefined cells are omitted entirely.
type KPICorrelationCell struct {
	Row   string  `json:"row"`
	Col   string  `json:"col"`
	Value float64 `json:"value"`
}

// CorrelationPair is one entry of the general correlation matrix, emitted
// once per unordered column pair (strict upper triangle, no self-pairs).
type CorrelationPair struct {
	Var1 string  `json:"var1"`
	Var2 string  `json:"var2"`
	Corr float64 `json:"corr"`
}
