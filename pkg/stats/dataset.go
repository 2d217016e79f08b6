package stats

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/anrid/world-population/pkg/logger"
)

var (
	// ErrEmptyDataset is returned when a source holds no header or no rows.
	ErrEmptyDataset = errors.New("dataset is empty")
	// ErrMissingColumn is returned when a required column is absent.
	ErrMissingColumn = errors.New("required column missing")
	// ErrInvalidValue is returned when a required cell cannot be parsed.
	ErrInvalidValue = errors.New("invalid value")
)

var knownTypes = map[string]series.Type{
	ColYear:       series.Int,
	ColPopulation: series.Float,
	ColUrban:      series.Float,
	ColDensity:    series.Float,
	ColCountry:    series.String,
}

// Dataset is an immutable, fully loaded population table.
type Dataset struct {
	source  string
	frame   dataframe.DataFrame
	columns []string
	records []Record
}

// Load reads a population table from a path or URL. CSV is assumed unless
// the source ends in .xlsx or .xls.
func Load(source string) (*Dataset, error) {
	defer logger.TimeTrack(time.Now(), "load "+source)

	f := &File{Source: source}
	if err := f.ReadContent(); err != nil {
		return nil, err
	}
	return Parse(f)
}

// Parse builds a Dataset from a file whose content is already read.
func Parse(f *File) (*Dataset, error) {
	f.Content = bytes.TrimPrefix(f.Content, utf8BOM)
	if len(bytes.TrimSpace(f.Content)) == 0 {
		return nil, fmt.Errorf("%s: %w", f.Source, ErrEmptyDataset)
	}

	var df dataframe.DataFrame
	switch f.Ext() {
	case ".xlsx", ".xls":
		rows, err := ExtractRowsFromFile(f)
		if err != nil {
			return nil, err
		}
		if len(rows) < 2 {
			return nil, fmt.Errorf("%s: %w", f.Source, ErrEmptyDataset)
		}
		df = dataframe.LoadRecords(rows, dataframe.HasHeader(true), dataframe.WithTypes(knownTypes))
	default:
		logger.Infof("Loading CSV data: %s", f.Source)
		if countLines(f.Content) < 2 {
			return nil, fmt.Errorf("%s: %w", f.Source, ErrEmptyDataset)
		}
		df = dataframe.ReadCSV(bytes.NewReader(f.Content), dataframe.HasHeader(true), dataframe.WithTypes(knownTypes))
	}
	if df.Err != nil {
		return nil, fmt.Errorf("parse %s: %w", f.Source, df.Err)
	}
	if df.Nrow() == 0 {
		return nil, fmt.Errorf("%s: %w", f.Source, ErrEmptyDataset)
	}

	ds, err := fromFrame(f.Source, df)
	if err != nil {
		return nil, err
	}
	logger.Infof("Loaded %d rows, columns %v", ds.Len(), ds.columns)
	return ds, nil
}

// Excel's "CSV UTF-8" export starts with one.
var utf8BOM = []byte("\xef\xbb\xbf")

func countLines(content []byte) int {
	n := 0
	for _, line := range bytes.Split(content, []byte("\n")) {
		if len(bytes.TrimSpace(line)) > 0 {
			n++
		}
	}
	return n
}

func fromFrame(source string, df dataframe.DataFrame) (*Dataset, error) {
	ds := &Dataset{source: source, frame: df, columns: df.Names()}

	for _, col := range []string{ColYear, ColPopulation} {
		if !ds.Has(col) {
			return nil, fmt.Errorf("%s: %w: %s", source, ErrMissingColumn, col)
		}
	}

	years := df.Col(ColYear)
	pops := df.Col(ColPopulation).Float()

	floats := func(col string) []float64 {
		if !ds.Has(col) {
			return nil
		}
		return df.Col(col).Float()
	}
	urban := floats(ColUrban)
	density := floats(ColDensity)

	var countries []string
	if ds.Has(ColCountry) {
		countries = df.Col(ColCountry).Records()
	}

	extra := make(map[string][]string)
	for _, name := range ds.columns {
		if _, known := knownTypes[name]; known {
			continue
		}
		extra[name] = df.Col(name).Records()
	}

	ds.records = make([]Record, df.Nrow())
	for i := range ds.records {
		// Header is line 1 of the file.
		line := i + 2

		y, err := years.Elem(i).Int()
		if err != nil || years.Elem(i).IsNA() {
			return nil, fmt.Errorf("%s: line %d: %w: Year %q", source, line, ErrInvalidValue, years.Elem(i).String())
		}
		if math.IsNaN(pops[i]) {
			return nil, fmt.Errorf("%s: line %d: %w: Population", source, line, ErrInvalidValue)
		}

		r := Record{Year: y, Population: pops[i]}
		if urban != nil {
			r.Urban = urban[i]
		}
		if density != nil {
			r.Density = density[i]
		}
		if countries != nil {
			r.Country = countries[i]
		}
		if len(extra) > 0 {
			r.Extra = make(map[string]string, len(extra))
			for name, values := range extra {
				r.Extra[name] = values[i]
			}
		}
		ds.records[i] = r
	}

	return ds, nil
}

// Source returns the path or URL the dataset was loaded from.
func (ds *Dataset) Source() string { return ds.source }

// Len returns the number of rows.
func (ds *Dataset) Len() int { return len(ds.records) }

// Columns returns the header names in file order.
func (ds *Dataset) Columns() []string {
	return append([]string(nil), ds.columns...)
}

// Has reports whether the named column is present.
func (ds *Dataset) Has(col string) bool {
	for _, c := range ds.columns {
		if c == col {
			return true
		}
	}
	return false
}

// Records returns a copy of all rows in file order.
func (ds *Dataset) Records() []Record {
	return append([]Record(nil), ds.records...)
}

// Column returns the named column as a gota series. The dataset keeps its own
// copy, so callers may not mutate the result.
func (ds *Dataset) Column(col string) series.Series {
	return ds.frame.Col(col).Copy()
}

// YearRange returns the smallest and the largest Year.
func (ds *Dataset) YearRange() (min, max int) {
	for i, r := range ds.records {
		if i == 0 || r.Year < min {
			min = r.Year
		}
		if i == 0 || r.Year > max {
			max = r.Year
		}
	}
	return min, max
}

// FilterYears returns the rows with from <= Year <= to, sorted by year and
// otherwise in file order. Reversed bounds are swapped.
func (ds *Dataset) FilterYears(from, to int) []Record {
	if from > to {
		from, to = to, from
	}
	out := make([]Record, 0, len(ds.records))
	for _, r := range ds.records {
		if r.Year >= from && r.Year <= to {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}

// Rows returns every record as strings, one cell per column in Columns order.
func (ds *Dataset) Rows() [][]string {
	return RecordRows(ds.columns, ds.records)
}

// RecordRows formats records as table rows for the given columns.
func RecordRows(columns []string, records []Record) [][]string {
	rows := make([][]string, len(records))
	for i, r := range records {
		row := make([]string, len(columns))
		for j, c := range columns {
			row[j] = r.Value(c)
		}
		rows[i] = row
	}
	return rows
}

// Value returns the cell for the named column as a string.
func (r Record) Value(col string) string {
	switch col {
	case ColCountry:
		return r.Country
	case ColYear:
		return strconv.Itoa(r.Year)
	case ColPopulation:
		return formatCell(r.Population)
	case ColUrban:
		return formatCell(r.Urban)
	case ColDensity:
		return formatCell(r.Density)
	}
	return r.Extra[col]
}

func formatCell(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
