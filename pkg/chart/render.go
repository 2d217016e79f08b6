package chart

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"io"
	"math"
	"strings"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/anrid/world-population/pkg/stats"
)

// ErrNoData is returned by the go-chart backed renderers for an empty spec.
var ErrNoData = errors.New("no data in selected range")

const (
	defaultWidth  = 900
	defaultHeight = 420
)

// Render draws the spec as SVG. An empty spec, or a pie whose slices sum to
// zero, yields a placeholder image instead of an error.
func Render(spec Spec, w io.Writer) error {
	var err error
	switch spec.Kind {
	case KindPie:
		err = renderPie(spec, w)
	case KindBar:
		err = renderBar(spec, w)
	case KindLine:
		err = renderLine(spec, w)
	default:
		return fmt.Errorf("unknown chart kind %q", spec.Kind)
	}
	if errors.Is(err, ErrNoData) {
		return renderPlaceholder(spec, w)
	}
	return err
}

// RenderString is Render into a string, for embedding in JSON responses.
func RenderString(spec Spec) (string, error) {
	var buf bytes.Buffer
	if err := Render(spec, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func renderPie(spec Spec, w io.Writer) error {
	if spec.Empty() || spec.Total() <= 0 {
		return ErrNoData
	}

	values := make([]gochart.Value, 0, len(spec.Points))
	for i, p := range spec.Points {
		values = append(values, gochart.Value{
			Label: p.Label,
			Value: p.Value,
			Style: gochart.Style{
				FillColor:   color(spec, i),
				StrokeColor: drawing.ColorWhite,
				FontColor:   drawing.ColorWhite,
			},
		})
	}

	pie := gochart.PieChart{
		Title:  spec.Title,
		Width:  defaultHeight + 60,
		Height: defaultHeight + 60,
		Values: values,
	}
	return pie.Render(gochart.SVG, w)
}

func renderBar(spec Spec, w io.Writer) error {
	if spec.Empty() {
		return ErrNoData
	}

	bars := make([]gochart.Value, 0, len(spec.Points))
	for _, p := range spec.Points {
		bars = append(bars, gochart.Value{
			Label: p.Label,
			Value: p.Value,
			Style: gochart.Style{
				FillColor:   color(spec, 0),
				StrokeColor: color(spec, 0),
			},
		})
	}

	barWidth, spacing := barGeometry(len(bars))
	width := len(bars)*(barWidth+spacing) + 160
	if width < defaultWidth {
		width = defaultWidth
	}

	_, max := valueBounds(spec.Points)
	bar := gochart.BarChart{
		Title:      spec.Title,
		Width:      width,
		Height:     defaultHeight,
		BarWidth:   barWidth,
		BarSpacing: spacing,
		Background: gochart.Style{Padding: gochart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis:      gochart.Style{FontSize: 8},
		YAxis: gochart.YAxis{
			Name:           spec.YLabel,
			Range:          &gochart.ContinuousRange{Min: 0, Max: headroom(max)},
			ValueFormatter: countFormatter,
		},
		Bars: bars,
	}
	return bar.Render(gochart.SVG, w)
}

func renderLine(spec Spec, w io.Writer) error {
	if spec.Empty() {
		return ErrNoData
	}

	xs := make([]float64, len(spec.Points))
	ys := make([]float64, len(spec.Points))
	for i, p := range spec.Points {
		xs[i] = p.X
		ys[i] = p.Value
	}

	style := gochart.Style{
		StrokeWidth: 2,
		StrokeColor: color(spec, 0),
	}
	if spec.Markers {
		style.DotWidth = 4
		style.DotColor = color(spec, 0)
	}

	// go-chart refuses zero-width ranges, so a single year or a flat series
	// still gets a visible window.
	minY, maxY := valueBounds(spec.Points)
	minX, maxX := xs[0], xs[len(xs)-1]
	if minX == maxX {
		minX, maxX = minX-1, maxX+1
	}
	if minY == maxY {
		minY, maxY = 0, headroom(maxY)
	}

	ch := gochart.Chart{
		Title:      spec.Title,
		Width:      defaultWidth,
		Height:     defaultHeight,
		Background: gochart.Style{Padding: gochart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis: gochart.XAxis{
			Name:           spec.XLabel,
			Range:          &gochart.ContinuousRange{Min: minX, Max: maxX},
			ValueFormatter: yearFormatter,
		},
		YAxis: gochart.YAxis{
			Name:           spec.YLabel,
			Range:          &gochart.ContinuousRange{Min: minY, Max: maxY},
			ValueFormatter: countFormatter,
		},
		Series: []gochart.Series{
			gochart.ContinuousSeries{Name: spec.YLabel, XValues: xs, YValues: ys, Style: style},
		},
	}
	return ch.Render(gochart.SVG, w)
}

func renderPlaceholder(spec Spec, w io.Writer) error {
	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`,
		defaultWidth, defaultHeight, defaultWidth, defaultHeight)
	fmt.Fprintf(&b, `<text x="%d" y="40" text-anchor="middle" font-family="sans-serif" font-size="18">%s</text>`,
		defaultWidth/2, html.EscapeString(spec.Title))
	fmt.Fprintf(&b, `<text x="%d" y="%d" text-anchor="middle" font-family="sans-serif" font-size="14" fill="#64748b">%s</text>`,
		defaultWidth/2, defaultHeight/2, html.EscapeString(ErrNoData.Error()))
	b.WriteString(`</svg>`)
	_, err := io.WriteString(w, b.String())
	return err
}

func barGeometry(n int) (width, spacing int) {
	width = 600 / n
	if width > 40 {
		width = 40
	}
	if width < 6 {
		width = 6
	}
	spacing = width / 3
	if spacing < 2 {
		spacing = 2
	}
	return width, spacing
}

func valueBounds(points []Point) (min, max float64) {
	min, max = math.Inf(1), math.Inf(-1)
	for _, p := range points {
		min = math.Min(min, p.Value)
		max = math.Max(max, p.Value)
	}
	return min, max
}

func headroom(max float64) float64 {
	if max <= 0 {
		return 1
	}
	return max * 1.1
}

func color(spec Spec, i int) drawing.Color {
	hex := defaultColors[0]
	if len(spec.Colors) > 0 {
		hex = spec.Colors[i%len(spec.Colors)]
	}
	return drawing.ColorFromHex(strings.TrimPrefix(hex, "#"))
}

func countFormatter(v interface{}) string {
	if f, ok := v.(float64); ok {
		return stats.FormatCount(math.Round(f))
	}
	return fmt.Sprint(v)
}

func yearFormatter(v interface{}) string {
	if f, ok := v.(float64); ok {
		return fmt.Sprintf("%.0f", f)
	}
	return fmt.Sprint(v)
}
