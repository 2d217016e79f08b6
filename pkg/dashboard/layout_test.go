package dashboard

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"
)

const withOptional = "Year,Population,Urban,Density\n1990,100,40,10.5\n1995,200,80,12\n2001,300,150,14.25\n"

func TestLayoutControls(t *testing.T) {
	ctx := newTestContext(t, withOptional)
	root := Layout(ctx)

	slider, ok := root.Find(YearSliderID)
	if !ok || slider.Slider == nil {
		t.Fatalf("slider not found")
	}
	s := slider.Slider
	if s.Min != 1990 || s.Max != 2001 || s.From != 1990 || s.To != 2001 || s.Step != 1 {
		t.Fatalf("unexpected slider %+v", s)
	}
	if !reflect.DeepEqual(s.Marks, []int{1990, 1995, 2000}) {
		t.Fatalf("marks every 5 years, got %v", s.Marks)
	}

	dd, ok := root.Find(PageSizeID)
	if !ok || dd.Dropdown == nil {
		t.Fatalf("dropdown not found")
	}
	if dd.Dropdown.Value != 10 || dd.Dropdown.Clearable {
		t.Fatalf("unexpected dropdown %+v", dd.Dropdown)
	}
	if !reflect.DeepEqual(dd.Dropdown.Options, []int{3, 5, 10, 20, 50, 70}) {
		t.Fatalf("unexpected options %v", dd.Dropdown.Options)
	}

	tbl, ok := root.Find(PopulationTableID)
	if !ok || tbl.Table == nil {
		t.Fatalf("table not found")
	}
	if tbl.Table.PageSize != 10 || tbl.Table.SortAction != "native" || tbl.Table.FilterAction != "native" {
		t.Fatalf("unexpected table props %+v", tbl.Table)
	}

	for _, id := range []string{"pie-chart", "bar-chart", "line-chart"} {
		if g, ok := root.Find(id); !ok || g.Kind != KindGraph {
			t.Fatalf("graph %s missing", id)
		}
	}
}

func TestLayoutStatistics(t *testing.T) {
	ctx := newTestContext(t, withOptional)

	var texts []string
	var walk func(c Component)
	walk = func(c Component) {
		if c.Kind == KindP {
			texts = append(texts, c.Text)
		}
		for _, child := range c.Children {
			walk(child)
		}
	}
	walk(Layout(ctx))
	all := strings.Join(texts, "\n")

	for _, want := range []string{
		"Maximum Total Population: 300",
		"Mean Urban Population: 90.00",
		"Minimum Density: 10.50",
	} {
		if !strings.Contains(all, want) {
			t.Fatalf("missing %q in\n%s", want, all)
		}
	}
	if strings.Contains(all, "not available") {
		t.Fatalf("present columns reported unavailable:\n%s", all)
	}
}

func TestRegistry(t *testing.T) {
	ctx := newTestContext(t, withOptional)
	reg := DefaultRegistry()

	if err := reg.Register(UpdateCharts()); err == nil {
		t.Fatalf("duplicate binding accepted")
	}
	if got := len(reg.Bindings()); got != 2 {
		t.Fatalf("expected 2 bindings, got %d", got)
	}

	broken := Binding{
		ID:      "broken",
		Inputs:  []Dependency{{ID: PageSizeID, Property: "value"}},
		Outputs: []Dependency{{ID: "a", Property: "x"}, {ID: "b", Property: "x"}},
		Handle: func(*Context, []json.RawMessage) (map[string]interface{}, error) {
			return map[string]interface{}{"a.x": 1}, nil
		},
	}
	if err := reg.Register(broken); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := reg.Dispatch(ctx, "broken", []json.RawMessage{json.RawMessage("1")}); err == nil {
		t.Fatalf("partial outputs must be rejected")
	}

	_, err := reg.Dispatch(ctx, UpdatePageSizeID, nil)
	if !errors.Is(err, ErrBadInput) {
		t.Fatalf("expected ErrBadInput for missing input, got %v", err)
	}

	out, err := reg.Dispatch(ctx, UpdateChartsID, []json.RawMessage{json.RawMessage("[2001, 1990]")})
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	fig := out["line-chart.figure"].(Figure)
	if len(fig.Spec.Points) != 3 {
		t.Fatalf("reversed range should be swapped, got %+v", fig.Spec.Points)
	}
}
