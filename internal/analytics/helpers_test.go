package analytics

import (
	"time"

	"github.com/satyenduM/Quant-Matrix-EDA-App/internal/dataset"
)

func fptr(v float64) *float64 { return &v }
func iptr(v int) *int         { return &v }

func tptr(year, month, day int) *time.Time {
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return &t
}

type rowSpec struct {
	year    *int
	month   *int
	date    *time.Time
	brand   string
	pack    string
	ppg     string
	channel string
	sales   *float64
	volume  *float64
	extra   map[string]*float64
}

func makeRow(s rowSpec) dataset.Row {
	return dataset.Row{
		Date:       s.date,
		Year:       s.year,
		Month:      s.month,
		SalesValue: s.sales,
		Volume:     s.volume,
		Brand:      s.brand,
		PackType:   s.pack,
		PPG:        s.ppg,
		Channel:    s.channel,
		Extra:      s.extra,
	}
}

// sampleRows is a small dataset spanning two years, two brands and two
// channels with one row carrying a missing year.
func sampleRows() []dataset.Row {
	return []dataset.Row{
		makeRow(rowSpec{year: iptr(2020), month: iptr(1), date: tptr(2020, 1, 15),
			brand: "Alfa", pack: "Can", ppg: "Small", channel: "Retail",
			sales: fptr(100), volume: fptr(10)}),
		makeRow(rowSpec{year: iptr(2020), month: iptr(2), date: tptr(2020, 2, 15),
			brand: "Bravo", pack: "Bottle", ppg: "Large", channel: "Online",
			sales: fptr(50), volume: fptr(5)}),
		makeRow(rowSpec{year: iptr(2021), month: iptr(1), date: tptr(2021, 1, 15),
			brand: "Alfa", pack: "Can", ppg: "Small", channel: "Retail",
			sales: fptr(200), volume: fptr(20)}),
		makeRow(rowSpec{brand: "Alfa", pack: "Can", ppg: "Small", channel: "Retail",
			sales: fptr(999), volume: fptr(99)}),
	}
}

func sampleTable() *dataset.Table {
	return &dataset.Table{Rows: sampleRows()}
}
