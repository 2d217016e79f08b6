package stats

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// FormatCount prints v with thousands grouping, without decimals when v is a
// whole number and with two decimals otherwise.
func FormatCount(v float64) string {
	if v == math.Trunc(v) {
		return printer.Sprintf("%.f", v)
	}
	return FormatDecimal(v)
}

// FormatDecimal prints v with thousands grouping and two decimals.
func FormatDecimal(v float64) string {
	return printer.Sprintf("%.2f", v)
}

// StatLine is one labelled line of a statistics section.
type StatLine struct {
	Label string
	Value string
}

// Section is a titled block of statistics lines, ready for display. When the
// column is absent every line carries the section's NotAvailable text.
type Section struct {
	Title        string
	NotAvailable string
	Available    bool
	Lines        []StatLine
}

// Text renders a line the way it is shown to a reader.
func (l StatLine) Text() string {
	if l.Value == "" {
		return l.Label
	}
	return l.Label + ": " + l.Value
}

// Sections lays the summary out as the three statistics blocks of the report.
func (s Summary) Sections() []Section {
	return []Section{
		section("Total Population Statistics", "", s.Population,
			[3]string{"Maximum Total Population", "Minimum Total Population", "Mean Total Population"},
			FormatCount, FormatDecimal),
		section("Urban Population Statistics", "Urban population data not available.", s.Urban,
			[3]string{"Maximum Urban Population", "Minimum Urban Population", "Mean Urban Population"},
			FormatCount, FormatDecimal),
		section("Population Density Statistics", "Density data not available.", s.Density,
			[3]string{"Maximum Density", "Minimum Density", "Mean Density"},
			FormatDecimal, FormatDecimal),
	}
}

func section(title, na string, st Stat, labels [3]string, extreme, mean func(float64) string) Section {
	sec := Section{Title: title, NotAvailable: na, Available: st.Available}
	if !st.Available {
		for range labels {
			sec.Lines = append(sec.Lines, StatLine{Label: na})
		}
		return sec
	}
	sec.Lines = []StatLine{
		{Label: labels[0], Value: extreme(st.Max)},
		{Label: labels[1], Value: extreme(st.Min)},
		{Label: labels[2], Value: mean(st.Mean)},
	}
	return sec
}
