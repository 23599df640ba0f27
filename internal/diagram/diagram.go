// Package diagram describes the four-axis learning styles cross as a list
// of vector shapes, and renders that description to SVG, raster images and
// plain text.
package diagram

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"unicode/utf8"

	"github.com/somdipdey/Learning-Styles/internal/questionnaire"
	"github.com/somdipdey/Learning-Styles/internal/scoring"
)

// Surface geometry in logical pixels.
const (
	Width  = 520.0
	Height = 520.0

	// AxisMax is the score at the outer end of every arm.
	AxisMax = 20

	axisPad   = 110.0
	labelPad  = 24.0
	tickHalf  = 7.0
	labelSize = 16.0
	valueSize = 26.0
	valueGap  = 22.0

	// SafeInset is the minimum distance kept between any label box and the
	// surface edge.
	SafeInset = 4.0

	// glyphWidth is a deliberately generous average advance per rune, as a
	// fraction of the font size, for sans-serif faces.
	glyphWidth = 0.7
)

var (
	ColorBackground = color.NRGBA{0x0f, 0x11, 0x18, 0xff}
	ColorAxis       = color.NRGBA{0x2a, 0x2d, 0x3a, 0xff}
	ColorTick       = color.NRGBA{0x1d, 0x20, 0x30, 0xff}
	ColorCentre     = color.NRGBA{0x7a, 0xa2, 0xff, 0xff}
	ColorArea       = color.NRGBA{0x7a, 0xa2, 0xff, 0x40}
	ColorLabel      = color.NRGBA{0xa9, 0xa9, 0xb6, 0xff}
	ColorValue      = color.NRGBA{0xe9, 0xe9, 0xee, 0xff}
)

// Anchor is the horizontal alignment of a text shape relative to its X.
type Anchor string

const (
	AnchorStart  Anchor = "start"
	AnchorMiddle Anchor = "middle"
	AnchorEnd    Anchor = "end"
)

// Point is a position on the surface.
type Point struct{ X, Y float64 }

// Shape is one drawable element of a diagram.
type Shape interface {
	shape()
}

type Rect struct {
	X, Y, W, H float64
	Fill       color.NRGBA
}

type Line struct {
	X1, Y1, X2, Y2 float64
	Width          float64
	Stroke         color.NRGBA
}

type Circle struct {
	CX, CY, R float64
	Fill      color.NRGBA
}

type Polygon struct {
	Points []Point
	Fill   color.NRGBA
}

// Text is vertically centred on Y.
type Text struct {
	X, Y    float64
	Content string
	Size    float64
	Bold    bool
	Anchor  Anchor
	Fill    color.NRGBA
}

func (Rect) shape()    {}
func (Line) shape()    {}
func (Circle) shape()  {}
func (Polygon) shape() {}
func (Text) shape()    {}

// Diagram is a complete drawing. Shapes are painted in order.
type Diagram struct {
	Width  float64
	Height float64
	Shapes []Shape
}

// arm describes where a category sits on the cross.
type arm struct {
	cat    questionnaire.Category
	dx, dy float64
	label  Point
	anchor Anchor
}

// arms lists the categories clockwise from the top. Label anchors are fixed
// points inside the safe margin and never depend on the score.
var arms = []arm{
	{questionnaire.Activist, 0, -1, Point{Width / 2, labelPad + 10}, AnchorMiddle},
	{questionnaire.Pragmatist, 1, 0, Point{Width - labelPad, Height / 2}, AnchorEnd},
	{questionnaire.Theorist, 0, 1, Point{Width / 2, Height - (labelPad + 32)}, AnchorMiddle},
	{questionnaire.Reflector, -1, 0, Point{labelPad, Height / 2}, AnchorStart},
}

// Render builds the cross for snap. Each call produces a fresh diagram.
func Render(snap scoring.Snapshot) *Diagram {
	cx, cy := Width/2, Height/2
	armLen := cx - axisPad

	d := &Diagram{Width: Width, Height: Height}
	add := func(s Shape) { d.Shapes = append(d.Shapes, s) }

	add(Rect{X: 0, Y: 0, W: Width, H: Height, Fill: ColorBackground})

	// Score area, scaled linearly to AxisMax along each arm.
	area := Polygon{Fill: ColorArea}
	for _, a := range arms {
		r := armLen * float64(clampScore(snap.Of(a.cat))) / AxisMax
		area.Points = append(area.Points, Point{cx + a.dx*r, cy + a.dy*r})
	}
	if snap.Ticked > 0 {
		add(area)
	}

	add(Line{X1: cx, Y1: axisPad, X2: cx, Y2: Height - axisPad, Width: 3, Stroke: ColorAxis})
	add(Line{X1: axisPad, Y1: cy, X2: Width - axisPad, Y2: cy, Width: 3, Stroke: ColorAxis})
	add(Circle{CX: cx, CY: cy, R: 5, Fill: ColorCentre})

	for _, a := range arms {
		add(Text{X: a.label.X, Y: a.label.Y, Content: a.cat.Label(), Size: labelSize, Anchor: a.anchor, Fill: ColorLabel})
		add(Text{
			X: a.label.X, Y: a.label.Y + valueGap,
			Content: strconv.Itoa(snap.Of(a.cat)),
			Size:    valueSize, Bold: true, Anchor: a.anchor, Fill: ColorValue,
		})
	}

	for i := 1; i < AxisMax; i++ {
		r := armLen * float64(i) / AxisMax
		for _, a := range arms {
			x, y := cx+a.dx*r, cy+a.dy*r
			if a.dx == 0 {
				add(Line{X1: x - tickHalf, Y1: y, X2: x + tickHalf, Y2: y, Width: 2, Stroke: ColorTick})
			} else {
				add(Line{X1: x, Y1: y - tickHalf, X2: x, Y2: y + tickHalf, Width: 2, Stroke: ColorTick})
			}
		}
	}

	for _, a := range arms {
		score := clampScore(snap.Of(a.cat))
		if score == 0 {
			continue
		}
		r := armLen * float64(score) / AxisMax
		add(Circle{CX: cx + a.dx*r, CY: cy + a.dy*r, R: 4, Fill: ColorCentre})
	}

	return d
}

func clampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > AxisMax {
		return AxisMax
	}
	return v
}

// TextBox returns a conservative bounding box for t that does not depend on
// any particular font.
func TextBox(t Text) (minX, minY, maxX, maxY float64) {
	w := float64(utf8.RuneCountInString(t.Content)) * t.Size * glyphWidth
	switch t.Anchor {
	case AnchorMiddle:
		minX = t.X - w/2
	case AnchorEnd:
		minX = t.X - w
	default:
		minX = t.X
	}
	maxX = minX + w
	minY = t.Y - t.Size/2
	maxY = t.Y + t.Size/2
	return minX, minY, maxX, maxY
}

// LabelsConfined reports whether every text shape sits at least SafeInset
// inside the surface.
func (d *Diagram) LabelsConfined() bool {
	for _, s := range d.Shapes {
		t, ok := s.(Text)
		if !ok {
			continue
		}
		minX, minY, maxX, maxY := TextBox(t)
		if minX < SafeInset || minY < SafeInset || maxX > d.Width-SafeInset || maxY > d.Height-SafeInset {
			return false
		}
	}
	return true
}

// ErrEmpty is returned for a diagram without a drawable surface or shapes.
var ErrEmpty = errors.New("diagram has no content")

// Validate checks that d can be rasterised.
func (d *Diagram) Validate() error {
	if d == nil || d.Width <= 0 || d.Height <= 0 || len(d.Shapes) == 0 {
		return ErrEmpty
	}
	for i, s := range d.Shapes {
		if p, ok := s.(Polygon); ok && len(p.Points) < 3 {
			return fmt.Errorf("shape %d: polygon needs at least 3 points, has %d", i, len(p.Points))
		}
	}
	return nil
}

// Texts returns the text shapes of d in paint order.
func (d *Diagram) Texts() []Text {
	var out []Text
	for _, s := range d.Shapes {
		if t, ok := s.(Text); ok {
			out = append(out, t)
		}
	}
	return out
}
