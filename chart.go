package csvhist

import (
	"fmt"
	"image/color"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Chart describes appearance of a rendered histogram.
type Chart struct {
	Title  string
	XLabel string
	YLabel string

	// Fill is a bar color.
	Fill color.Color

	// Outline is a bar edge color.
	Outline color.Color

	// GridAlpha is an opacity of horizontal gridlines, 0 disables them.
	GridAlpha float64

	Width  vg.Length
	Height vg.Length
}

// DefaultChart returns a sky blue bar chart of performance scores.
func DefaultChart() Chart {
	return Chart{
		Title:     "Distribution of Performance Scores",
		XLabel:    "Performance Score",
		YLabel:    "Frequency",
		Fill:      color.RGBA{R: 0x87, G: 0xce, B: 0xeb, A: 0xff},
		Outline:   color.Black,
		GridAlpha: 0.75,
		Width:     8 * vg.Inch,
		Height:    6 * vg.Inch,
	}
}

// Plot builds a bar chart of bucket counts.
func (c Chart) Plot(h *Histogram) *plot.Plot {
	p := plot.New()
	p.Title.Text = c.Title
	p.X.Label.Text = c.XLabel
	p.Y.Label.Text = c.YLabel

	bars := &plotter.Histogram{
		Bins:      make([]plotter.HistogramBin, len(h.Buckets)),
		Width:     h.Width(),
		FillColor: c.Fill,
		LineStyle: plotter.DefaultLineStyle,
	}
	bars.LineStyle.Color = c.Outline

	for i, b := range h.Buckets {
		bars.Bins[i] = plotter.HistogramBin{Min: b.Min, Max: b.Max, Weight: float64(b.Count)}
	}

	p.Add(bars)

	if c.GridAlpha > 0 {
		grid := plotter.NewGrid()
		grid.Vertical.Color = nil
		grid.Horizontal.Color = color.NRGBA{R: 0xb0, G: 0xb0, B: 0xb0, A: uint8(0xff * c.GridAlpha)}
		p.Add(grid)
	}

	return p
}

// Render writes chart image in a format supported by gonum plot (png, svg, pdf, ...).
func (c Chart) Render(w io.Writer, h *Histogram, format string) error {
	wt, err := c.Plot(h).WriterTo(c.Width, c.Height, format)
	if err != nil {
		return fmt.Errorf("render %s: %w", format, err)
	}

	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("render %s: %w", format, err)
	}

	return nil
}
