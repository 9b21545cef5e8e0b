package dataset

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// dateLayout is the day-month-year format used by the source dataset.
const dateLayout = "02-01-2006"

// Core column names expected in the source header.
const (
	colDate       = "date"
	colYear       = "Year"
	colMonth      = "Month"
	colSalesValue = "SalesValue"
	colVolume     = "Volume"
	colBrand      = "Brand"
	colPackType   = "PackType"
	colPPG        = "PPG"
	colChannel    = "Channel"
)

// Loader reads the configured source into a Table.
type Loader interface {
	Load(ctx context.Context) (*Table, error)
}

// FileLoader loads the dataset from a delimited flat file or an XLSX
// workbook, selected by file extension.
type FileLoader struct {
	path      string
	delimiter rune
	logger    *slog.Logger
}

// NewFileLoader creates a loader for the given source path. delimiter applies
// to flat files only; zero means comma.
func NewFileLoader(path string, delimiter rune, logger *slog.Logger) *FileLoader {
	if delimiter == 0 {
		delimiter = ','
	}
	return &FileLoader{
		path:      path,
		delimiter: delimiter,
		logger:    logger.With(slog.String("component", "dataset_loader")),
	}
}

// Load reads and types the source file. Per-cell parse failures become nil
// values; only file-level problems (missing file, malformed container, no
// header) surface as errors.
func (l *FileLoader) Load(ctx context.Context) (*Table, error) {
	start := time.Now()

	var (
		records [][]string
		err     error
	)
	switch strings.ToLower(filepath.Ext(l.path)) {
	case ".xlsx", ".xlsm":
		records, err = l.readWorkbook()
	default:
		records, err = l.readDelimited()
	}
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("dataset %s has no header row", l.path)
	}

	table := buildTable(records[0], records[1:])

	l.logger.InfoContext(ctx, "dataset loaded",
		slog.String("path", l.path),
		slog.Int("rows", table.Len()),
		slog.Int("extra_columns", len(table.Extras)),
		slog.String("duration", time.Since(start).String()),
	)
	return table, nil
}

func (l *FileLoader) readDelimited() ([][]string, error) {
	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = l.delimiter
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read dataset %s: %w", l.path, err)
	}
	return records, nil
}

func (l *FileLoader) readWorkbook() ([][]string, error) {
	f, err := excelize.OpenFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook %s has no sheets", l.path)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read workbook %s: %w", l.path, err)
	}
	return rows, nil
}

// buildTable types the raw records according to the core schema and runs the
// schema-inspection pass over the remaining columns.
func buildTable(header []string, records [][]string) *Table {
	core := map[string]bool{
		colDate: true, colYear: true, colMonth: true,
		colSalesValue: true, colVolume: true,
		colBrand: true, colPackType: true, colPPG: true, colChannel: true,
	}

	index := make(map[string]int, len(header))
	var extras []Column
	for i, name := range header {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, dup := index[name]; dup {
			continue
		}
		index[name] = i
		if !core[name] {
			extras = append(extras, Column{Name: name})
		}
	}

	// A non-core column is numeric when at least one cell parses and no
	// non-empty cell fails to parse.
	for e := range extras {
		idx := index[extras[e].Name]
		sawValue := false
		numeric := true
		for _, rec := range records {
			cell := cellAt(rec, idx)
			if cell == "" {
				continue
			}
			if _, err := parseFloat(cell); err != nil {
				numeric = false
				break
			}
			sawValue = true
		}
		extras[e].Numeric = numeric && sawValue
	}

	rows := make([]Row, 0, len(records))
	for _, rec := range records {
		row := Row{
			Date:       parseDateCell(cellAt(rec, indexOf(index, colDate))),
			Year:       parseIntCell(cellAt(rec, indexOf(index, colYear))),
			Month:      parseIntCell(cellAt(rec, indexOf(index, colMonth))),
			SalesValue: parseFloatCell(cellAt(rec, indexOf(index, colSalesValue))),
			Volume:     parseFloatCell(cellAt(rec, indexOf(index, colVolume))),
			Brand:      cellAt(rec, indexOf(index, colBrand)),
			PackType:   cellAt(rec, indexOf(index, colPackType)),
			PPG:        cellAt(rec, indexOf(index, colPPG)),
			Channel:    cellAt(rec, indexOf(index, colChannel)),
		}
		if len(extras) > 0 {
			row.Extra = make(map[string]*float64, len(extras))
			for _, c := range extras {
				if !c.Numeric {
					continue
				}
				row.Extra[c.Name] = parseFloatCell(cellAt(rec, index[c.Name]))
			}
		}
		rows = append(rows, row)
	}

	return &Table{Rows: rows, Extras: extras}
}

func indexOf(index map[string]int, name string) int {
	if i, ok := index[name]; ok {
		return i
	}
	return -1
}

func cellAt(rec []string, i int) string {
	if i < 0 || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
}

func parseFloatCell(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := parseFloat(s)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func parseIntCell(s string) *int {
	if s == "" {
		return nil
	}
	// Year/Month columns sometimes carry a float representation ("2021.0").
	f, err := parseFloat(s)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	v := int(f)
	return &v
}

func parseDateCell(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil
	}
	return &t
}
