// Package viz renders generated walks and computed dynamic programs: walk
// traces as PNG line plots and occupancy grids as standalone HTML charts.
package viz

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/banshee-data/walk.report/internal/monitoring"
	"github.com/banshee-data/walk.report/internal/walk"
)

// PlotWalks renders the walks as line traces into a PNG file at path. Each
// walk gets its own color; start points are marked with circles.
func PlotWalks(path, title string, walks []walk.Walk) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "X"
	p.Y.Label.Text = "Y"

	colors := walkColors(len(walks))

	var starts, ends plotter.XYs
	for i, w := range walks {
		if len(w) == 0 {
			continue
		}

		pts := make(plotter.XYs, len(w))
		for j, pt := range w {
			pts[j] = plotter.XY{X: float64(pt.X), Y: float64(pt.Y)}
		}

		line, err := plotter.NewLine(pts)
		if err != nil {
			return fmt.Errorf("walk %d line: %w", i, err)
		}
		line.Color = colors[i]
		line.Width = vg.Points(1)
		p.Add(line)

		starts = append(starts, pts[0])
		ends = append(ends, pts[len(pts)-1])
	}

	if len(starts) > 0 {
		startScatter, err := plotter.NewScatter(starts)
		if err != nil {
			return fmt.Errorf("start markers: %w", err)
		}
		startScatter.GlyphStyle.Color = color.RGBA{G: 160, A: 255}
		startScatter.GlyphStyle.Radius = vg.Points(3)
		p.Add(startScatter)
		p.Legend.Add("start", startScatter)

		endScatter, err := plotter.NewScatter(ends)
		if err != nil {
			return fmt.Errorf("end markers: %w", err)
		}
		endScatter.GlyphStyle.Color = color.RGBA{R: 200, A: 255}
		endScatter.GlyphStyle.Radius = vg.Points(3)
		p.Add(endScatter)
		p.Legend.Add("end", endScatter)
	}

	p.Legend.Top = true
	p.Legend.Left = false

	if err := p.Save(8*vg.Inch, 8*vg.Inch, path); err != nil {
		return fmt.Errorf("save walk plot: %w", err)
	}
	monitoring.Logf("[viz] plotted %d walks to %s", len(walks), path)
	return nil
}

// walkColors creates a palette of distinct colors, one per walk.
func walkColors(n int) []color.Color {
	if n <= 0 {
		return nil
	}

	colors := make([]color.Color, n)
	for i := 0; i < n; i++ {
		hue := float64(i) / float64(n)
		r, g, b := hslToRGB(hue, 0.7, 0.5)
		colors[i] = color.RGBA{R: r, G: g, B: b, A: 255}
	}
	return colors
}

// hslToRGB converts HSL to RGB (0-255 range)
func hslToRGB(h, s, l float64) (r, g, b uint8) {
	var rf, gf, bf float64

	if s == 0 {
		rf, gf, bf = l, l, l
	} else {
		var q float64
		if l < 0.5 {
			q = l * (1 + s)
		} else {
			q = l + s - l*s
		}
		p := 2*l - q
		rf = hueToRGB(p, q, h+1.0/3.0)
		gf = hueToRGB(p, q, h)
		bf = hueToRGB(p, q, h-1.0/3.0)
	}

	return uint8(rf * 255), uint8(gf * 255), uint8(bf * 255)
}

func hueToRGB(p, q, t float64) float64 {
	if t < 0 {
		t += 1
	}
	if t > 1 {
		t -= 1
	}
	if t < 1.0/6.0 {
		return p + (q-p)*6*t
	}
	if t < 1.0/2.0 {
		return q
	}
	if t < 2.0/3.0 {
		return p + (q-p)*(2.0/3.0-t)*6
	}
	return p
}
