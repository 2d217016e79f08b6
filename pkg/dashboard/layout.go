package dashboard

import (
	"github.com/anrid/world-population/pkg/chart"
	"github.com/anrid/world-population/pkg/table"
)

// Component IDs of the interactive controls.
const (
	YearSliderID      = "year-range-slider"
	PageSizeID        = "num-rows-dropdown"
	PopulationTableID = "population-table"
)

// markStep is the year distance between slider labels.
const markStep = 5

// Kind is the type of a layout node.
type Kind string

const (
	KindDiv       Kind = "div"
	KindH1        Kind = "h1"
	KindH2        Kind = "h2"
	KindP         Kind = "p"
	KindSlider    Kind = "range-slider"
	KindDropdown  Kind = "dropdown"
	KindGraph     Kind = "graph"
	KindDataTable Kind = "data-table"
)

// Component is one node of the page. Only the field matching Kind is set
// among Slider, Dropdown and Table.
type Component struct {
	Kind     Kind
	ID       string
	Text     string
	Children []Component

	Slider   *Slider
	Dropdown *Dropdown
	Table    *TableProps
}

type Slider struct {
	Min   int
	Max   int
	From  int
	To    int
	Step  int
	Marks []int
}

type Dropdown struct {
	Options   []int
	Value     int
	Clearable bool
}

type TableProps struct {
	Columns      []string
	PageSize     int
	FilterAction string
	SortAction   string
	OverflowX    string
}

// Layout builds the page tree. It is static: controls start at the full
// year range and the default page size.
func Layout(ctx *Context) Component {
	root := Component{Kind: KindDiv, Children: []Component{
		{Kind: KindH1, Text: ctx.Title},
		{Kind: KindDiv, Children: []Component{
			{Kind: KindP, Text: "Use the slider below to select the range of years shown in the charts."},
		}},
		{Kind: KindSlider, ID: YearSliderID, Slider: &Slider{
			Min:   ctx.MinYear,
			Max:   ctx.MaxYear,
			From:  ctx.MinYear,
			To:    ctx.MaxYear,
			Step:  1,
			Marks: marks(ctx.MinYear, ctx.MaxYear, markStep),
		}},
		graphSection("Pie Chart", chart.PieID),
		graphSection("Bar Chart", chart.BarID),
		graphSection("Line Chart", chart.LineID),
	}}

	for _, sec := range ctx.Summary.Sections() {
		div := Component{Kind: KindDiv, Children: []Component{{Kind: KindH2, Text: sec.Title}}}
		for _, line := range sec.Lines {
			div.Children = append(div.Children, Component{Kind: KindP, Text: line.Text()})
		}
		root.Children = append(root.Children, div)
	}

	root.Children = append(root.Children,
		Component{Kind: KindDiv, Children: []Component{
			{Kind: KindH2, Text: "Select Number of Rows to Display:"},
			{Kind: KindDropdown, ID: PageSizeID, Dropdown: &Dropdown{
				Options:   ctx.PageSizes,
				Value:     table.DefaultPageSize,
				Clearable: false,
			}},
		}},
		Component{Kind: KindDiv, Children: []Component{
			{Kind: KindH2, Text: "World Population Data"},
			{Kind: KindDataTable, ID: PopulationTableID, Table: &TableProps{
				Columns:      ctx.Dataset.Columns(),
				PageSize:     table.DefaultPageSize,
				FilterAction: "native",
				SortAction:   "native",
				OverflowX:    "auto",
			}},
		}},
	)
	return root
}

func graphSection(title, id string) Component {
	return Component{Kind: KindDiv, Children: []Component{
		{Kind: KindH2, Text: title},
		{Kind: KindGraph, ID: id},
	}}
}

// marks returns every step-th year from min up to max inclusive.
func marks(min, max, step int) []int {
	var out []int
	for y := min; y <= max; y += step {
		out = append(out, y)
	}
	return out
}

// Find returns the first node with the given ID, depth first.
func (c Component) Find(id string) (Component, bool) {
	if c.ID == id {
		return c, true
	}
	for _, child := range c.Children {
		if found, ok := child.Find(id); ok {
			return found, true
		}
	}
	return Component{}, false
}
