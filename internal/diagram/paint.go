package diagram

import (
	"fmt"
	"image"
	"image/draw"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// circleSegments is the polygon resolution used for circles.
const circleSegments = 48

// Paint rasterises d into the area r of dst, scaling the logical surface to
// the width of r.
func Paint(dst draw.Image, r image.Rectangle, d *Diagram, fonts *Fonts) error {
	if err := d.Validate(); err != nil {
		return err
	}
	if r.Empty() {
		return fmt.Errorf("paint: empty target rectangle")
	}
	p := painter{
		dst:    dst,
		origin: r.Min,
		clip:   r.Intersect(dst.Bounds()),
		scale:  float64(r.Dx()) / d.Width,
		fonts:  fonts,
	}
	for i, s := range d.Shapes {
		if err := p.shape(s); err != nil {
			return fmt.Errorf("paint shape %d: %w", i, err)
		}
	}
	return nil
}

type painter struct {
	dst    draw.Image
	origin image.Point
	clip   image.Rectangle
	scale  float64
	fonts  *Fonts
	ras    vector.Rasterizer
}

func (p *painter) pt(x, y float64) Point {
	return Point{float64(p.origin.X) + x*p.scale, float64(p.origin.Y) + y*p.scale}
}

func (p *painter) shape(s Shape) error {
	switch s := s.(type) {
	case Rect:
		p.fill([]Point{
			p.pt(s.X, s.Y), p.pt(s.X+s.W, s.Y),
			p.pt(s.X+s.W, s.Y+s.H), p.pt(s.X, s.Y+s.H),
		}, image.NewUniform(s.Fill))
	case Line:
		p.fill(p.stroke(s), image.NewUniform(s.Stroke))
	case Circle:
		pts := make([]Point, circleSegments)
		for i := range pts {
			a := 2 * math.Pi * float64(i) / circleSegments
			pts[i] = p.pt(s.CX+s.R*math.Cos(a), s.CY+s.R*math.Sin(a))
		}
		p.fill(pts, image.NewUniform(s.Fill))
	case Polygon:
		pts := make([]Point, len(s.Points))
		for i, q := range s.Points {
			pts[i] = p.pt(q.X, q.Y)
		}
		p.fill(pts, image.NewUniform(s.Fill))
	case Text:
		return p.text(s)
	default:
		return fmt.Errorf("unsupported shape %T", s)
	}
	return nil
}

// stroke expands a line into the quadrilateral covering its stroke width.
func (p *painter) stroke(l Line) []Point {
	dx, dy := l.X2-l.X1, l.Y2-l.Y1
	n := math.Hypot(dx, dy)
	if n == 0 {
		return nil
	}
	hw := l.Width / 2
	nx, ny := -dy/n*hw, dx/n*hw
	return []Point{
		p.pt(l.X1+nx, l.Y1+ny), p.pt(l.X2+nx, l.Y2+ny),
		p.pt(l.X2-nx, l.Y2-ny), p.pt(l.X1-nx, l.Y1-ny),
	}
}

// fill rasterises a closed polygon, limiting the rasteriser to the
// polygon's bounding box.
func (p *painter) fill(pts []Point, src image.Image) {
	if len(pts) < 3 {
		return
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, q := range pts {
		minX, maxX = math.Min(minX, q.X), math.Max(maxX, q.X)
		minY, maxY = math.Min(minY, q.Y), math.Max(maxY, q.Y)
	}
	box := image.Rect(int(math.Floor(minX)), int(math.Floor(minY)), int(math.Ceil(maxX)), int(math.Ceil(maxY)))
	box = box.Intersect(p.clip)
	if box.Empty() {
		return
	}

	p.ras.Reset(box.Dx(), box.Dy())
	p.ras.DrawOp = draw.Over
	ox, oy := float64(box.Min.X), float64(box.Min.Y)
	p.ras.MoveTo(float32(pts[0].X-ox), float32(pts[0].Y-oy))
	for _, q := range pts[1:] {
		p.ras.LineTo(float32(q.X-ox), float32(q.Y-oy))
	}
	p.ras.ClosePath()
	p.ras.Draw(p.dst, box, src, image.Point{})
}

func (p *painter) text(t Text) error {
	if p.fonts == nil {
		return fmt.Errorf("text %q: no fonts loaded", t.Content)
	}
	face, err := p.fonts.Face(t.Size*p.scale, t.Bold)
	if err != nil {
		return err
	}
	at := p.pt(t.X, t.Y)
	width := fixedToFloat(font.MeasureString(face, t.Content))
	switch t.Anchor {
	case AnchorMiddle:
		at.X -= width / 2
	case AnchorEnd:
		at.X -= width
	}
	m := face.Metrics()
	baseline := at.Y + (fixedToFloat(m.Ascent)-fixedToFloat(m.Descent))/2

	dr := font.Drawer{
		Dst:  p.dst,
		Src:  image.NewUniform(t.Fill),
		Face: face,
		Dot:  fixed.Point26_6{X: floatToFixed(at.X), Y: floatToFixed(baseline)},
	}
	dr.DrawString(t.Content)
	return nil
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}

func floatToFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(v * 64))
}
