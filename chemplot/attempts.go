/*
 * attempts.go, part of gofill.
 *
 * Copyright 2026 The gofill Authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

//Package chemplot draws plots of the statistics of fills.
package chemplot

import (
	"fmt"
	"image/color"
	"math"

	"github.com/rmera/gofill/histo"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

//Series is the attempts needed to place each molecule in one fill.
type Series struct {
	Label    string
	Attempts []int
}

func basicPlot(title, xlabel, ylabel string) *plot.Plot {
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = title
	p.X.Label.Text = xlabel
	p.Y.Label.Text = ylabel
	p.Add(plotter.NewGrid())
	return p
}

//AttemptsHistogram plots, for each series, the histogram of the attempts needed per
//placed molecule, with bins bins spanning up to maxiter attempts. The plot is saved to
//plotname, in the format given by its extension (png, svg, pdf...).
func AttemptsHistogram(series []Series, maxiter, bins int, title, plotname string) error {
	if len(series) == 0 {
		return fmt.Errorf("chemplot: no data to plot")
	}
	p := basicPlot(title, "Attempts", "Molecules")
	width := vg.Points(20) / vg.Length(len(series))
	for key, s := range series {
		h := histo.Ints(s.Attempts, bins, maxiter)
		d := h.Dividers()
		vals := plotter.Values(h.View())
		bars, err := plotter.NewBarChart(vals, width)
		if err != nil {
			return err
		}
		r, g, b := colors(key, len(series))
		bars.Color = color.RGBA{R: r, G: g, B: b, A: 255}
		bars.LineStyle.Width = 0
		bars.Offset = width * vg.Length(key-len(series)/2)
		p.Add(bars)
		if s.Label != "" {
			p.Legend.Add(s.Label, bars)
		}
		if key == 0 {
			names := make([]string, len(vals))
			for i := range names {
				names[i] = fmt.Sprintf("%.0f", math.Floor(d[i]))
			}
			p.NominalX(names...)
		}
	}
	p.Legend.Top = true
	return p.Save(6*vg.Inch, 4*vg.Inch, plotname)
}

//SaturationCurve plots the attempts needed to place each molecule against the number of
//molecules already placed, one line per series. As the cell gets crowded, the
//attempts grow until they reach the budget.
func SaturationCurve(series []Series, maxiter int, title, plotname string) error {
	if len(series) == 0 {
		return fmt.Errorf("chemplot: no data to plot")
	}
	p := basicPlot(title, "Molecules placed", "Attempts")
	p.Y.Min = 0
	p.Y.Max = float64(maxiter)
	for key, s := range series {
		if len(s.Attempts) == 0 {
			continue
		}
		pts := make(plotter.XYs, len(s.Attempts))
		for i, v := range s.Attempts {
			pts[i].X = float64(i + 1)
			pts[i].Y = float64(v)
		}
		line, points, err := plotter.NewLinePoints(pts)
		if err != nil {
			return err
		}
		r, g, b := colors(key, len(series))
		line.Color = color.RGBA{R: r, G: g, B: b, A: 255}
		points.Color = line.Color
		p.Add(line, points)
		if s.Label != "" {
			p.Legend.Add(s.Label, line, points)
		}
	}
	return p.Save(6*vg.Inch, 4*vg.Inch, plotname)
}

//takes hue (0-360), v and s (0-1), returns r,g,b (0-255)
func iHVS2RGB(h, v, s float64) (uint8, uint8, uint8) {
	var i, f, p, q, t float64
	var r, g, b float64
	maxcolor := 255.0
	conversion := maxcolor * v
	if s == 0.0 {
		return uint8(conversion), uint8(conversion), uint8(conversion)
	}
	//conversion:=math.Sqrt(3*math.Pow(maxcolor,2))*v
	h = h / 60
	i = math.Floor(h)
	f = h - i
	p = v * (1 - s)
	q = v * (1 - s*f)
	t = v * (1 - s*(1-f))
	switch int(i) {
	case 0:
		r = v
		g = t
		b = p
	case 1:
		r = q
		g = v
		b = p
	case 2:
		r = p
		g = v
		b = t
	case 3:
		r = p
		g = q
		b = v
	case 4:
		r = t
		g = p
		b = v
	default: //case 5
		r = v
		g = p
		b = q
	}

	r = r * conversion
	g = g * conversion
	b = b * conversion
	return uint8(r), uint8(g), uint8(b)
}

func colors(key, steps int) (r, g, b uint8) {
	norm := 260.0 / float64(steps)
	hp := float64((float64(key) * norm) + 20.0)
	var h float64
	if hp < 55 {
		h = hp - 20.0
	} else {
		h = hp + 20.0
	}
	s := 1.0
	v := 1.0
	r, g, b = iHVS2RGB(h, v, s)
	return r, g, b
}
