package analytics

import "math"

// SanitizeRecords makes aggregation output JSON-safe: every NaN, positive
// infinity or negative infinity numeric cell becomes nil. All other values
// pass through untouched. Input records are not modified.
func SanitizeRecords(records []Record) []Record {
	out := make([]Record, len(records))
	for i, rec := range records {
		clean := make(Record, len(rec))
		for k, v := range rec {
			clean[k] = sanitizeValue(v)
		}
		out[i] = clean
	}
	return out
}

func sanitizeValue(v any) any {
	switch n := v.(type) {
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return nil
		}
	case float32:
		f := float64(n)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil
		}
	case *float64:
		if n == nil || math.IsNaN(*n) || math.IsInf(*n, 0) {
			return nil
		}
		return *n
	}
	return v
}
