// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"fmt"
	"image/color"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgsvg"
)

// Chart formats accepted by WriteChart.
const (
	PNG = "png"
	SVG = "svg"
)

const (
	chartWidth  = 11 * vg.Centimeter
	chartHeight = 10 * vg.Centimeter
	chartDPI    = 150
)

// xcolor names and their RGB values.
var xcolors = map[string]color.RGBA{
	"red":       rgb(1, 0, 0),
	"green":     rgb(0, 1, 0),
	"blue":      rgb(0, 0, 1),
	"cyan":      rgb(0, 1, 1),
	"magenta":   rgb(1, 0, 1),
	"yellow":    rgb(1, 1, 0),
	"black":     rgb(0, 0, 0),
	"gray":      rgb(.5, .5, .5),
	"darkgray":  rgb(.25, .25, .25),
	"lightgray": rgb(.75, .75, .75),
	"brown":     rgb(.75, .5, .25),
	"lime":      rgb(.75, 1, 0),
	"olive":     rgb(.5, .5, 0),
	"orange":    rgb(1, .5, 0),
	"pink":      rgb(1, .75, .75),
	"purple":    rgb(.75, 0, .25),
	"teal":      rgb(0, .5, .5),
	"violet":    rgb(.5, 0, .5),
	"white":     rgb(1, 1, 1),
}

func rgb(r, g, b float64) color.RGBA {
	return color.RGBA{uint8(r * 255), uint8(g * 255), uint8(b * 255), 0xff}
}

// chartColor maps the i'th series color to an RGB value. Names xcolor
// knows but this table does not fall back to plotutil's palette.
func chartColor(name string, i int) color.Color {
	if c, ok := xcolors[name]; ok {
		return c
	}
	return plotutil.Color(i)
}

// chartShape maps a pgfplots mark to a glyph.
func chartShape(mark string, i int) draw.GlyphDrawer {
	switch mark {
	case "circle", "o":
		return draw.RingGlyph{}
	case "*":
		return draw.CircleGlyph{}
	case "square":
		return draw.SquareGlyph{}
	case "square*":
		return draw.BoxGlyph{}
	case "triangle":
		return draw.TriangleGlyph{}
	case "triangle*":
		return draw.PyramidGlyph{}
	case "x":
		return draw.CrossGlyph{}
	case "+":
		return draw.PlusGlyph{}
	}
	return plotutil.Shape(i)
}

// Plot returns g as a gonum plot with a line and a set of marks per
// series.
func (g *Graph) Plot() (*plot.Plot, error) {
	p := plot.New()
	p.X.Label.Text = "Dimension"
	p.Y.Label.Text = g.Kind.AxisLabel()
	p.Legend.Top = true
	p.Add(plotter.NewGrid())

	for i, s := range g.Series {
		xys := make(plotter.XYs, len(s.Points))
		for j, pt := range s.Points {
			xys[j].X = float64(pt.X)
			xys[j].Y = pt.Y
		}
		line, points, err := plotter.NewLinePoints(xys)
		if err != nil {
			return nil, fmt.Errorf("series %s: %w", s.Label(), err)
		}
		c := chartColor(s.Color, i)
		line.Color = c
		points.Color = c
		points.Shape = chartShape(s.Mark, i)
		p.Add(line, points)
		p.Legend.Add(s.Label(), line, points)
	}
	return p, nil
}

// WriteChart draws g and writes it to w as an image in the given
// format, PNG or SVG.
func WriteChart(w io.Writer, g *Graph, format string) error {
	p, err := g.Plot()
	if err != nil {
		return err
	}

	var can vg.CanvasWriterTo
	switch format {
	case PNG:
		can = vgimg.PngCanvas{Canvas: vgimg.NewWith(
			vgimg.UseWH(chartWidth, chartHeight),
			vgimg.UseDPI(chartDPI),
			vgimg.UseBackgroundColor(color.White))}
	case SVG:
		can = vgsvg.New(chartWidth, chartHeight)
	default:
		return fmt.Errorf("unknown chart format %q", format)
	}

	p.Draw(draw.New(can))
	_, err = can.WriteTo(w)
	return err
}
