// Package dashboard serves the population report in a browser: a static
// layout of statistics, charts and a data table, plus the bindings that
// refresh charts and table when a control changes.
package dashboard

import (
	"github.com/anrid/world-population/pkg/stats"
	"github.com/anrid/world-population/pkg/table"
)

// DefaultTitle heads the page.
const DefaultTitle = "World Population Analysis"

// Context is everything the layout and the bindings read. It is built once
// at startup and never modified, so handlers share it without locking.
type Context struct {
	Title     string
	Dataset   *stats.Dataset
	Summary   stats.Summary
	MinYear   int
	MaxYear   int
	PageSizes []int
}

// NewContext computes the summary of ds and the control ranges.
func NewContext(ds *stats.Dataset) *Context {
	min, max := ds.YearRange()
	return &Context{
		Title:     DefaultTitle,
		Dataset:   ds,
		Summary:   stats.Summarize(ds),
		MinYear:   min,
		MaxYear:   max,
		PageSizes: table.PageSizes(ds.Len()),
	}
}
