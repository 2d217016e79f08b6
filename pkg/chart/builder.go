package chart

import (
	"sort"
	"strconv"

	"github.com/anrid/world-population/pkg/stats"
)

// Component IDs of the three dashboard charts.
const (
	PieID  = "pie-chart"
	BarID  = "bar-chart"
	LineID = "line-chart"
)

// Pie sums Population per Year, one slice per distinct year in ascending
// order.
func Pie(records []stats.Record) Spec {
	totals := make(map[int]float64)
	for _, r := range records {
		totals[r.Year] += r.Population
	}
	years := make([]int, 0, len(totals))
	for y := range totals {
		years = append(years, y)
	}
	sort.Ints(years)

	points := make([]Point, 0, len(years))
	for _, y := range years {
		points = append(points, Point{Label: strconv.Itoa(y), X: float64(y), Value: totals[y]})
	}

	return Spec{
		ID:     PieID,
		Kind:   KindPie,
		Title:  "World Population Distribution by Year",
		Colors: assignColors(len(points)),
		Points: points,
	}
}

// Bar draws one bar per record, x = Year, y = Population.
func Bar(records []stats.Record) Spec {
	return Spec{
		ID:     BarID,
		Kind:   KindBar,
		Title:  "World Population Over the Years",
		XLabel: "Year",
		YLabel: "Population",
		Colors: assignColors(1),
		Points: yearPoints(records),
	}
}

// Line draws population per year with a marker on every point.
func Line(records []stats.Record) Spec {
	return Spec{
		ID:      LineID,
		Kind:    KindLine,
		Title:   "World Population Trend",
		XLabel:  "Year",
		YLabel:  "Population",
		Markers: true,
		Colors:  assignColors(1),
		Points:  yearPoints(records),
	}
}

// All builds the three dashboard charts from the same rows.
func All(records []stats.Record) []Spec {
	return []Spec{Pie(records), Bar(records), Line(records)}
}

func yearPoints(records []stats.Record) []Point {
	sorted := append([]stats.Record(nil), records...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Year < sorted[j].Year })

	points := make([]Point, 0, len(sorted))
	for _, r := range sorted {
		points = append(points, Point{Label: strconv.Itoa(r.Year), X: float64(r.Year), Value: r.Population})
	}
	return points
}
