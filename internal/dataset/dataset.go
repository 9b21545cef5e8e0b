package dataset

import "time"

// Row is one sales record. Pointer fields are nullable: a nil value means the
// source cell was empty or failed to parse. Categorical columns use the empty
// string as their missing marker.
type Row struct {
	Date       *time.Time
	Year       *int
	Month      *int
	SalesValue *float64
	Volume     *float64
	Brand      string
	PackType   string
	PPG        string
	Channel    string

	// Extra holds values of numeric columns outside the core schema
	// (for example VolumeUnits or distribution measures). Keyed by the
	// source column name; nil marks an unparseable or empty cell.
	Extra map[string]*float64
}

// Column describes one non-core column discovered in the source header.
// Numeric is true when every non-empty cell of the column parsed as a float
// and at least one such cell exists.
type Column struct {
	Name    string
	Numeric bool
}

// Table is the in-memory dataset. It is loaded once and treated as immutable
// by every consumer; per-request derived values (YearMonth, Combo, ASP) are
// computed on the fly and never written back.
type Table struct {
	Rows []Row

	// Extras preserves the header order of the non-core columns, which
	// drives the column-selection order of the correlation engine.
	Extras []Column
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// NumericExtras returns the names of the numeric non-core columns in header
// order.
func (t *Table) NumericExtras() []string {
	var names []string
	for _, c := range t.Extras {
		if c.Numeric {
			names = append(names, c.Name)
		}
	}
	return names
}

// HasNumericExtra reports whether name is a numeric non-core column.
func (t *Table) HasNumericExtra(name string) bool {
	for _, c := range t.Extras {
		if c.Name == name {
			return c.Numeric
		}
	}
	return false
}

// Dimension returns the value of the named categorical column. Unknown names
// return the empty string.
func (r Row) Dimension(name string) string {
	switch name {
	case "Brand":
		return r.Brand
	case "PackType":
		return r.PackType
	case "PPG":
		return r.PPG
	case "Channel":
		return r.Channel
	}
	return ""
}
