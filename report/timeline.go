package report

import (
	"image/color"

	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/nvr-ai/go-linecounter/controller"
)

type series struct {
	label string
	times []float64
	color color.RGBA
}

// Timeline builds a scatter plot with one row of points per region role, x being the
// confirmation time in seconds.
func Timeline(s controller.Summary) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Confirmed events"
	p.X.Label.Text = "Time (s)"
	p.Y.Label.Text = "Region"
	p.X.Min = 0

	rows := []series{
		{"basket entry", s.EntryTimes, controller.EntryColor},
		{"basket exit", s.ExitTimes, controller.ExitColor},
	}
	if s.HasBurgerRegion {
		rows = append(rows, series{"burger", s.BurgerTimes, controller.BurgerColor})
	}

	ticks := make([]plot.Tick, 0, len(rows))
	for i, row := range rows {
		y := float64(i + 1)
		ticks = append(ticks, plot.Tick{Value: y, Label: row.label})
		if len(row.times) == 0 {
			continue
		}

		pts := make(plotter.XYs, len(row.times))
		for j, t := range row.times {
			pts[j] = plotter.XY{X: t, Y: y}
		}
		sc, err := plotter.NewScatter(pts)
		if err != nil {
			return nil, errors.Wrapf(err, "scatter %s", row.label)
		}
		sc.GlyphStyle.Color = row.color
		sc.GlyphStyle.Shape = draw.CircleGlyph{}
		sc.GlyphStyle.Radius = vg.Points(3)
		p.Add(sc)
		p.Legend.Add(row.label, sc)
	}

	p.Y.Min = 0
	p.Y.Max = float64(len(rows) + 1)
	p.Y.Tick.Marker = plot.ConstantTicks(ticks)
	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10
	return p, nil
}

// WriteTimeline saves the event timeline to path. The image format follows the file
// extension (png, svg, pdf...).
func WriteTimeline(path string, s controller.Summary) error {
	p, err := Timeline(s)
	if err != nil {
		return err
	}
	if err := p.Save(14*vg.Inch, 4*vg.Inch, path); err != nil {
		return errors.Wrapf(err, "save timeline %s", path)
	}
	return nil
}
