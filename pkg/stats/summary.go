package stats

import (
	"math"

	"github.com/go-gota/gota/series"
)

// Summarize computes max / min / mean of Population, and of Urban and Density
// when those columns exist. Missing cells are skipped.
func Summarize(ds *Dataset) Summary {
	s := Summary{Rows: ds.Len()}
	s.FirstYear, s.LastYear = ds.YearRange()

	s.Population = columnStat(ds, ColPopulation)
	s.Urban = columnStat(ds, ColUrban)
	s.Density = columnStat(ds, ColDensity)
	return s
}

func columnStat(ds *Dataset, col string) Stat {
	st := Stat{Column: col}
	if !ds.Has(col) {
		return st
	}

	var values []float64
	for _, v := range ds.Column(col).Float() {
		if !math.IsNaN(v) {
			values = append(values, v)
		}
	}
	if len(values) == 0 {
		return st
	}

	s := series.Floats(values)
	st.Max = s.Max()
	st.Min = s.Min()
	st.Mean = s.Mean()
	st.Available = true
	return st
}
