package chart

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/anrid/world-population/pkg/stats"
)

var threeYears = []stats.Record{
	{Year: 2000, Population: 100},
	{Year: 2001, Population: 200},
	{Year: 2002, Population: 300},
}

func filtered(from, to int) []stats.Record {
	var out []stats.Record
	for _, r := range threeYears {
		if r.Year >= from && r.Year <= to {
			out = append(out, r)
		}
	}
	return out
}

func TestBuildersOnFilteredRange(t *testing.T) {
	rows := filtered(2001, 2002)

	for _, spec := range []Spec{Bar(rows), Line(rows)} {
		if len(spec.Points) != 2 {
			t.Fatalf("%s: expected 2 points, got %d", spec.Kind, len(spec.Points))
		}
		if spec.Points[0].Label != "2001" || spec.Points[0].Value != 200 {
			t.Fatalf("%s: first point %+v", spec.Kind, spec.Points[0])
		}
		if spec.Points[1].Label != "2002" || spec.Points[1].Value != 300 {
			t.Fatalf("%s: second point %+v", spec.Kind, spec.Points[1])
		}
	}

	pie := Pie(rows)
	if len(pie.Points) != 2 {
		t.Fatalf("pie: expected 2 slices, got %d", len(pie.Points))
	}
	if pie.Total() != 500 {
		t.Fatalf("pie: slices sum to %v want 500", pie.Total())
	}
}

func TestPieGroupsByYear(t *testing.T) {
	rows := []stats.Record{
		{Country: "A", Year: 2001, Population: 5},
		{Country: "B", Year: 2000, Population: 1},
		{Country: "C", Year: 2001, Population: 7},
	}
	pie := Pie(rows)
	if len(pie.Points) != 2 {
		t.Fatalf("expected 2 slices, got %+v", pie.Points)
	}
	if pie.Points[0].Label != "2000" || pie.Points[1].Label != "2001" || pie.Points[1].Value != 12 {
		t.Fatalf("unexpected slices %+v", pie.Points)
	}
	if len(pie.Colors) != 2 {
		t.Fatalf("expected one color per slice, got %v", pie.Colors)
	}
}

func TestBuildersArePure(t *testing.T) {
	rows := []stats.Record{{Year: 2002, Population: 3}, {Year: 2000, Population: 1}}
	_ = Line(rows)
	if rows[0].Year != 2002 {
		t.Fatalf("builder reordered caller rows: %+v", rows)
	}
	a, _ := json.Marshal(Bar(rows))
	b, _ := json.Marshal(Bar(rows))
	if string(a) != string(b) {
		t.Fatalf("builder output differs between calls")
	}
	if !Line(rows).Markers {
		t.Fatalf("line chart must draw markers")
	}
}

func TestRenderSVG(t *testing.T) {
	for _, spec := range All(threeYears) {
		svg, err := RenderString(spec)
		if err != nil {
			t.Fatalf("%s: render: %v", spec.Kind, err)
		}
		if !strings.HasPrefix(strings.TrimSpace(svg), "<svg") {
			t.Fatalf("%s: output is not svg: %.60q", spec.Kind, svg)
		}
	}
}

func TestRenderSingleYear(t *testing.T) {
	for _, spec := range All(filtered(2001, 2001)) {
		if _, err := RenderString(spec); err != nil {
			t.Fatalf("%s: single point should render: %v", spec.Kind, err)
		}
	}
}

func TestRenderEmptyPlaceholder(t *testing.T) {
	for _, spec := range All(nil) {
		svg, err := RenderString(spec)
		if err != nil {
			t.Fatalf("%s: empty chart should not fail: %v", spec.Kind, err)
		}
		if !strings.Contains(svg, ErrNoData.Error()) {
			t.Fatalf("%s: expected placeholder text, got %.80q", spec.Kind, svg)
		}
	}
}

func TestRenderUnknownKind(t *testing.T) {
	if _, err := RenderString(Spec{Kind: "radar"}); err == nil {
		t.Fatalf("expected error for unknown kind")
	}
}
