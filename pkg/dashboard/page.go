package dashboard

import (
	"encoding/json"
	"html/template"
	"io"
	"strconv"
	"strings"

	"github.com/anrid/world-population/pkg/table"
)

type pageData struct {
	Title    string
	Root     Component
	Graphs   map[string]template.HTML
	Table    table.Result
	Bindings template.JS
}

// node pairs a layout component with the page it is drawn on, so the
// recursive component template can reach the rendered charts and table.
type node struct {
	C    Component
	Page *pageData
}

var funcs = template.FuncMap{
	"node": func(c Component, p *pageData) node { return node{C: c, Page: p} },
	"svg":  func(p *pageData, id string) template.HTML { return p.Graphs[id] },
	"join": joinInts,
	"inc":  func(n int) int { return n + 1 },
}

var pageTemplate = template.Must(template.New("page").Funcs(funcs).Parse(pageHTML))

// RenderPage writes the whole dashboard: the layout tree with every chart
// drawn for the full year range and the first table page.
func RenderPage(ctx *Context, reg *Registry, w io.Writer) error {
	root := Layout(ctx)

	figures, err := Figures(ctx, ctx.MinYear, ctx.MaxYear)
	if err != nil {
		return err
	}
	graphs := make(map[string]template.HTML, len(figures))
	for _, f := range figures {
		// go-chart output is generated from our own numbers and labels.
		graphs[f.Spec.ID] = template.HTML(f.SVG)
	}

	first, err := table.Apply(ctx.Dataset.Columns(), ctx.Dataset.Rows(), table.Query{PageSize: table.DefaultPageSize})
	if err != nil {
		return err
	}

	bindings, err := json.Marshal(reg.Bindings())
	if err != nil {
		return err
	}

	return pageTemplate.Execute(w, &pageData{
		Title:    ctx.Title,
		Root:     root,
		Graphs:   graphs,
		Table:    first,
		Bindings: template.JS(bindings),
	})
}

func joinInts(v []int) string {
	parts := make([]string, len(v))
	for i, n := range v {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ",")
}
