package stats

// Column names recognised in a population table.
const (
	ColCountry    = "Country"
	ColYear       = "Year"
	ColPopulation = "Population"
	ColUrban      = "Urban"
	ColDensity    = "Density"
)

// Record is one row of a population table.
type Record struct {
	Country    string
	Year       int
	Population float64
	Urban      float64
	Density    float64

	// Extra holds the raw values of any column not listed above, keyed by
	// header name.
	Extra map[string]string
}

// Stat holds max / min / mean of one numeric column. Available is false when
// the column is absent from the dataset, in which case the numbers carry no
// meaning.
type Stat struct {
	Column    string
	Max       float64
	Min       float64
	Mean      float64
	Available bool
}

// Summary is computed once over the full dataset.
type Summary struct {
	Rows       int
	FirstYear  int
	LastYear   int
	Population Stat
	Urban      Stat
	Density    Stat
}
