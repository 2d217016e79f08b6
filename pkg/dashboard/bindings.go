package dashboard

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/anrid/world-population/pkg/chart"
	"github.com/anrid/world-population/pkg/logger"
	"github.com/anrid/world-population/pkg/table"
)

// Binding IDs.
const (
	UpdateChartsID   = "update-charts"
	UpdatePageSizeID = "update-page-size"
)

var (
	// ErrBadInput is returned when a control value cannot be used.
	ErrBadInput = errors.New("bad binding input")
	// ErrUnknownBinding is returned by Dispatch for an unregistered ID.
	ErrUnknownBinding = errors.New("unknown binding")
)

// Dependency names one property of one component, e.g. pie-chart.figure.
type Dependency struct {
	ID       string `json:"id"`
	Property string `json:"property"`
}

func (d Dependency) String() string { return d.ID + "." + d.Property }

// Handler turns the current input values into replacement outputs keyed by
// Dependency.String().
type Handler func(ctx *Context, inputs []json.RawMessage) (map[string]interface{}, error)

// Binding ties input properties to output properties through a handler.
type Binding struct {
	ID      string       `json:"id"`
	Inputs  []Dependency `json:"inputs"`
	Outputs []Dependency `json:"outputs"`
	Handle  Handler      `json:"-"`
}

// Figure is what a graph output is replaced with.
type Figure struct {
	Spec chart.Spec `json:"spec"`
	SVG  string     `json:"svg"`
}

// Registry holds the bindings of one page.
type Registry struct {
	bindings map[string]Binding
	order    []string
}

func NewRegistry() *Registry {
	return &Registry{bindings: make(map[string]Binding)}
}

// Register adds b. IDs must be unique.
func (r *Registry) Register(b Binding) error {
	if b.ID == "" || b.Handle == nil {
		return fmt.Errorf("binding %q: id and handler are required", b.ID)
	}
	if _, dup := r.bindings[b.ID]; dup {
		return fmt.Errorf("binding %q registered twice", b.ID)
	}
	r.bindings[b.ID] = b
	r.order = append(r.order, b.ID)
	return nil
}

// Bindings lists the registered bindings in registration order.
func (r *Registry) Bindings() []Binding {
	out := make([]Binding, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.bindings[id])
	}
	return out
}

// Dispatch runs one binding. The handler must return a value for every
// declared output and nothing else, so a page never sees a partial update.
func (r *Registry) Dispatch(ctx *Context, id string, inputs []json.RawMessage) (map[string]interface{}, error) {
	b, ok := r.bindings[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownBinding, id)
	}
	if len(inputs) != len(b.Inputs) {
		return nil, fmt.Errorf("%w: %s wants %d inputs, got %d", ErrBadInput, id, len(b.Inputs), len(inputs))
	}

	out, err := b.Handle(ctx, inputs)
	if err != nil {
		return nil, err
	}
	if len(out) != len(b.Outputs) {
		return nil, fmt.Errorf("binding %s returned %d outputs, declared %d", id, len(out), len(b.Outputs))
	}
	for _, dep := range b.Outputs {
		if _, ok := out[dep.String()]; !ok {
			return nil, fmt.Errorf("binding %s did not return %s", id, dep)
		}
	}
	logger.Debugf("binding %s -> %d outputs", id, len(out))
	return out, nil
}

// DefaultRegistry registers the two bindings of the population page.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, b := range []Binding{UpdateCharts(), UpdatePageSize()} {
		if err := r.Register(b); err != nil {
			panic(err)
		}
	}
	return r
}

// UpdateCharts recomputes the three charts for a [from, to] year range.
func UpdateCharts() Binding {
	return Binding{
		ID:     UpdateChartsID,
		Inputs: []Dependency{{ID: YearSliderID, Property: "value"}},
		Outputs: []Dependency{
			{ID: chart.PieID, Property: "figure"},
			{ID: chart.BarID, Property: "figure"},
			{ID: chart.LineID, Property: "figure"},
		},
		Handle: func(ctx *Context, inputs []json.RawMessage) (map[string]interface{}, error) {
			from, to, err := decodeRange(inputs[0])
			if err != nil {
				return nil, err
			}
			figures, err := Figures(ctx, from, to)
			if err != nil {
				return nil, err
			}
			out := make(map[string]interface{}, len(figures))
			for _, f := range figures {
				out[Dependency{ID: f.Spec.ID, Property: "figure"}.String()] = f
			}
			return out, nil
		},
	}
}

// UpdatePageSize sets the table page size from the dropdown.
func UpdatePageSize() Binding {
	return Binding{
		ID:      UpdatePageSizeID,
		Inputs:  []Dependency{{ID: PageSizeID, Property: "value"}},
		Outputs: []Dependency{{ID: PopulationTableID, Property: "page_size"}},
		Handle: func(ctx *Context, inputs []json.RawMessage) (map[string]interface{}, error) {
			size, err := decodeInt(inputs[0])
			if err != nil {
				return nil, err
			}
			if !table.ValidPageSize(size, ctx.Dataset.Len()) {
				return nil, fmt.Errorf("%w: page size %d not in %v", ErrBadInput, size, ctx.PageSizes)
			}
			return map[string]interface{}{
				Dependency{ID: PopulationTableID, Property: "page_size"}.String(): size,
			}, nil
		},
	}
}

// Figures builds and renders pie, bar and line for the rows in [from, to].
func Figures(ctx *Context, from, to int) ([]Figure, error) {
	rows := ctx.Dataset.FilterYears(from, to)
	specs := chart.All(rows)

	figures := make([]Figure, 0, len(specs))
	for _, spec := range specs {
		svg, err := chart.RenderString(spec)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", spec.ID, err)
		}
		figures = append(figures, Figure{Spec: spec, SVG: svg})
	}
	return figures, nil
}

func decodeRange(raw json.RawMessage) (int, int, error) {
	var v []float64
	if err := json.Unmarshal(raw, &v); err != nil || len(v) != 2 {
		return 0, 0, fmt.Errorf("%w: year range must be [from, to], got %s", ErrBadInput, raw)
	}
	from, err := wholeNumber(v[0])
	if err != nil {
		return 0, 0, err
	}
	to, err := wholeNumber(v[1])
	if err != nil {
		return 0, 0, err
	}
	return from, to, nil
}

func decodeInt(raw json.RawMessage) (int, error) {
	var v float64
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0, fmt.Errorf("%w: expected a number, got %s", ErrBadInput, raw)
	}
	return wholeNumber(v)
}

func wholeNumber(v float64) (int, error) {
	if v != math.Trunc(v) || math.IsInf(v, 0) || math.Abs(v) > 1e9 {
		return 0, fmt.Errorf("%w: %v is not a whole number", ErrBadInput, v)
	}
	return int(v), nil
}
