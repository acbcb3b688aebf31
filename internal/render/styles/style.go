package styles

import (
	"fmt"
	"image/color"
)

type Marker string

const (
	MarkerCircle   Marker = "circle"
	MarkerSquare   Marker = "square"
	MarkerTriangle Marker = "triangle"
	MarkerDiamond  Marker = "diamond"
	MarkerCross    Marker = "cross"
)

type SeriesStyle struct {
	Color     color.RGBA
	Dashes    []float64 // dash pattern in points, nil for solid
	LineWidth float64   // points
	Marker    Marker
}

var (
	dashed = []float64{6, 3}
	dotted = []float64{1.5, 2.5}
)

// matplotlib's tab10 cycle.
var cycle = []color.RGBA{
	{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff},
	{R: 0xff, G: 0x7f, B: 0x0e, A: 0xff},
	{R: 0x2c, G: 0xa0, B: 0x2c, A: 0xff},
	{R: 0xd6, G: 0x27, B: 0x28, A: 0xff},
	{R: 0x94, G: 0x67, B: 0xbd, A: 0xff},
	{R: 0x8c, G: 0x56, B: 0x4b, A: 0xff},
	{R: 0xe3, G: 0x77, B: 0xc2, A: 0xff},
	{R: 0x7f, G: 0x7f, B: 0x7f, A: 0xff},
	{R: 0xbc, G: 0xbd, B: 0x22, A: 0xff},
	{R: 0x17, G: 0xbe, B: 0xcf, A: 0xff},
}

var markers = []Marker{MarkerCircle, MarkerSquare, MarkerTriangle, MarkerDiamond, MarkerCross}

var SeriesStyles = buildStyles()

// First ten: solid lines. Next ten: dashed, then densely dotted.
func buildStyles() []SeriesStyle {
	var out []SeriesStyle
	for _, dashes := range [][]float64{nil, dashed, dotted} {
		for i, c := range cycle {
			out = append(out, SeriesStyle{
				Color:     c,
				Dashes:    dashes,
				LineWidth: 1.5,
				Marker:    markers[i%len(markers)],
			})
		}
	}
	return out
}

func ForSeries(seriesIndex int) SeriesStyle {
	if seriesIndex < 0 {
		seriesIndex = 0
	}
	return SeriesStyles[seriesIndex%len(SeriesStyles)]
}

var tikzMarks = map[Marker]string{
	MarkerCircle:   "*",
	MarkerSquare:   "square*",
	MarkerTriangle: "triangle*",
	MarkerDiamond:  "diamond*",
	MarkerCross:    "x",
}

// TikZOptions renders the style as a pgfplots \addplot option list.
func (s SeriesStyle) TikZOptions() string {
	rgb := fmt.Sprintf("{rgb,255:red,%d;green,%d;blue,%d}", s.Color.R, s.Color.G, s.Color.B)

	options := "color=" + rgb
	switch {
	case s.Dashes == nil:
		options += ",solid"
	case s.Dashes[0] < 2:
		options += ",densely dotted"
	default:
		options += ",densely dashed"
	}
	options += ",thick"

	if mark, ok := tikzMarks[s.Marker]; ok {
		options += ",mark=" + mark
		options += ",mark options={solid,scale=0.6,fill=" + rgb + "}"
	}
	return options
}
