package venue

import (
	"fmt"
	"image"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/fogleman/gg"
	"github.com/fogleman/pt/pt"
)

type Point2D struct {
	X, Y float64
}

// To2D projects a venue position onto the floor plan
func To2D(v pt.Vector) Point2D {
	return Point2D{v.X, v.Z}
}

func (p Point2D) Translate(x, y float64) Point2D {
	return Point2D{p.X + x, p.Y + y}
}

func (p Point2D) Scale(s float64) Point2D {
	return Point2D{p.X * s, p.Y * s}
}

// SeatMap draws a top-down plan of a layout.
type SeatMap struct {
	Layout Layout
	Source Source
	// Highlighted seat, 0 for none
	Selected int
	XSize    int
	YSize    int
	// Border around the drawing, in pixels
	Margin float64
	// These cache the values needed to scale and translate from the venue to the requested image size
	scale      float64
	xTranslate float64
	yTranslate float64
}

func (m SeatMap) BoundingBox() (XMin, XMax, YMin, YMax float64) {
	focal := To2D(m.Layout.Geometry.FocalPoint)
	XMin, XMax, YMin, YMax = focal.X, focal.X, focal.Y, focal.Y
	grow := func(p Point2D) {
		XMin = math.Min(XMin, p.X)
		XMax = math.Max(XMax, p.X)
		YMin = math.Min(YMin, p.Y)
		YMax = math.Max(YMax, p.Y)
	}
	grow(To2D(m.Source.Position))
	for _, s := range m.Layout.seats {
		grow(To2D(s.Position))
	}
	return
}

func (m *SeatMap) computeScaleAndTranslation() {
	XMin, XMax, YMin, YMax := m.BoundingBox()
	m.xTranslate = -XMin
	m.yTranslate = -YMin
	width := float64(m.XSize) - 2*m.Margin
	height := float64(m.YSize) - 2*m.Margin
	XScale := width / math.Max(XMax-XMin, 1e-9)
	YScale := height / math.Max(YMax-YMin, 1e-9)
	m.scale = math.Min(XScale, YScale)
}

func (m *SeatMap) translateAndScale(v pt.Vector) Point2D {
	if m.scale == 0 {
		m.computeScaleAndTranslation()
	}
	p := To2D(v).Translate(m.xTranslate, m.yTranslate).Scale(m.scale)
	return p.Translate(m.Margin, m.Margin)
}

// Draw renders the plan. The focal point is gold, the selected seat is highlighted and every seat
// carries a short tick in its facing direction.
func (m *SeatMap) Draw() image.Image {
	c := gg.NewContext(m.XSize, m.YSize)
	c.SetRGB(0.09, 0.09, 0.09)
	c.Clear()

	focal := m.translateAndScale(m.Layout.Geometry.FocalPoint)
	c.SetRGB(1, 0.84, 0)
	c.DrawRectangle(focal.X-12, focal.Y-4, 24, 8)
	c.Fill()

	src := m.translateAndScale(m.Source.Position)
	c.SetRGB(1, 0.65, 0)
	c.DrawCircle(src.X, src.Y, 3)
	c.Fill()

	const radius = 4.0
	for _, s := range m.Layout.seats {
		p := m.translateAndScale(s.Position)
		if s.ID == m.Selected {
			c.SetRGB(1, 0.84, 0)
			c.DrawCircle(p.X, p.Y, radius*1.6)
		} else {
			c.SetRGB(0.55, 0.55, 0.55)
			c.DrawCircle(p.X, p.Y, radius)
		}
		c.Fill()

		c.SetLineWidth(1)
		c.DrawLine(p.X, p.Y, p.X+math.Sin(s.Facing)*radius*2, p.Y+math.Cos(s.Facing)*radius*2)
		c.Stroke()
	}
	return c.Image()
}

// SavePNG draws the plan to path.
func (m *SeatMap) SavePNG(path string) error {
	if err := gg.SavePNG(path, m.Draw()); err != nil {
		return fmt.Errorf("saving seat map: %w", err)
	}
	return nil
}

// PlotSweep charts gain against yaw offset, in degrees, and saves it to path.
func PlotSweep(points []SweepPoint, title, path string) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Yaw offset (deg)"
	p.Y.Label.Text = "Gain"
	p.Y.Min = 0
	p.Y.Max = 1

	xys := make(plotter.XYs, len(points))
	for i, sp := range points {
		xys[i].X = Degrees(sp.YawOffset)
		xys[i].Y = sp.Gain
	}
	line, err := plotter.NewLine(xys)
	if err != nil {
		return fmt.Errorf("building sweep line: %w", err)
	}
	p.Add(plotter.NewGrid(), line)

	if err := p.Save(8*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("saving sweep plot: %w", err)
	}
	return nil
}
