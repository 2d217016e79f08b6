package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/davecgh/go-spew/spew"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/anrid/world-population/pkg/chart"
	"github.com/anrid/world-population/pkg/logger"
	"github.com/anrid/world-population/pkg/stats"
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("63")).Bold(true)
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	subtle      = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

func main() {
	dataPath := flag.String("data", "WorldPopulation.csv", "path or URL of the population data")
	from := flag.Int("from", 0, "first year of the chart table (default: first year in data)")
	to := flag.Int("to", 0, "last year of the chart table (default: last year in data)")
	dump := flag.Bool("dump", false, "dump the computed summary")
	flag.Parse()

	ds, err := stats.Load(*dataPath)
	if err != nil {
		logger.Errorf("error loading data: %v", err)
		os.Exit(1)
	}

	summary := stats.Summarize(ds)
	if *dump {
		spew.Dump(summary)
	}

	fmt.Println(headerStyle.Render("World Population Analysis"))
	fmt.Println(subtle.Render(fmt.Sprintf("%s · %d rows · %d - %d", ds.Source(), summary.Rows, summary.FirstYear, summary.LastYear)))

	for _, sec := range summary.Sections() {
		fmt.Println()
		fmt.Println(titleStyle.Render(sec.Title))
		for _, l := range sec.Lines {
			fmt.Println("  " + l.Text())
		}
	}

	first, last := summary.FirstYear, summary.LastYear
	if *from != 0 {
		first = *from
	}
	if *to != 0 {
		last = *to
	}

	// New locale number printer.
	p := message.NewPrinter(language.English)

	pie := chart.Pie(ds.FilterYears(first, last))
	total := pie.Total()

	fmt.Println()
	fmt.Println(titleStyle.Render(fmt.Sprintf("Population by Year (%d-%d)", first, last)))
	if pie.Empty() {
		fmt.Println(subtle.Render("  no rows in range"))
		return
	}
	for _, pt := range pie.Points {
		share := 0.0
		if total > 0 {
			share = pt.Value / total
		}
		p.Printf("  %s  %18.f  %6.2f%%  %s\n", pt.Label, pt.Value, share*100, bar(share, 30))
	}
}

func bar(share float64, width int) string {
	n := int(share*float64(width) + 0.5)
	return strings.Repeat("█", n)
}
