package export

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"strconv"
	"time"

	"github.com/somdipdey/Learning-Styles/internal/diagram"
	"github.com/somdipdey/Learning-Styles/internal/questionnaire"
	"github.com/somdipdey/Learning-Styles/internal/report"
	"github.com/somdipdey/Learning-Styles/internal/scoring"
)

// Page geometry in logical pixels.
const (
	PageWidth  = 1100.0
	PageHeight = 800.0
	Scale      = 2

	margin = 40.0

	boxX, boxY = 40.0, 150.0
	boxW, boxH = 420.0, 240.0
	rowStart   = 70.0
	rowGap     = 38.0
	labelX     = 16.0
	valueX     = 200.0

	crossX, crossY = 520.0, 150.0
	crossSize      = 520.0
)

var (
	colorPage    = color.NRGBA{0xff, 0xff, 0xff, 0xff}
	colorInk     = color.NRGBA{0x11, 0x18, 0x27, 0xff}
	colorMuted   = color.NRGBA{0x6b, 0x72, 0x80, 0xff}
	colorBoxLine = color.NRGBA{0xd1, 0xd5, 0xdb, 0xff}
)

// Request is the input of one export.
type Request struct {
	Name      string
	Snapshot  scoring.Snapshot
	Diagram   *diagram.Diagram
	Generated time.Time
}

// NewRequest builds a request for the current scores with a fresh diagram.
func NewRequest(name string, snap scoring.Snapshot, generated time.Time) Request {
	return Request{
		Name:      name,
		Snapshot:  snap,
		Diagram:   diagram.Render(snap),
		Generated: generated,
	}
}

// Page returns the page layout of req without the embedded diagram.
func Page(req Request) *diagram.Diagram {
	p := &diagram.Diagram{Width: PageWidth, Height: PageHeight}
	add := func(s diagram.Shape) { p.Shapes = append(p.Shapes, s) }
	// Texts are positioned by baseline like a canvas; shapes are centred.
	text := func(x, baseline float64, s string, size float64, bold bool, c color.NRGBA) {
		add(diagram.Text{
			X: x, Y: baseline - size*0.35, Content: s, Size: size, Bold: bold,
			Anchor: diagram.AnchorStart, Fill: c,
		})
	}

	add(diagram.Rect{W: PageWidth, H: PageHeight, Fill: colorPage})

	text(margin, 60, report.Title, 28, true, colorInk)
	name := fitText("Name: "+questionnaire.DisplayName(req.Name), 18, PageWidth-2*margin)
	text(margin, 95, name, 18, false, colorInk)
	text(margin, 120, "Generated: "+req.Generated.Format(report.DateLayout), 18, false, colorInk)

	for _, l := range []diagram.Line{
		{X1: boxX, Y1: boxY, X2: boxX + boxW, Y2: boxY},
		{X1: boxX + boxW, Y1: boxY, X2: boxX + boxW, Y2: boxY + boxH},
		{X1: boxX + boxW, Y1: boxY + boxH, X2: boxX, Y2: boxY + boxH},
		{X1: boxX, Y1: boxY + boxH, X2: boxX, Y2: boxY},
	} {
		l.Width = 2
		l.Stroke = colorBoxLine
		add(l)
	}

	text(boxX+labelX, boxY+34, "Scores", 20, true, colorInk)
	y := boxY + rowStart
	for _, c := range questionnaire.Categories() {
		text(boxX+labelX, y, c.Label()+":", 18, false, colorInk)
		text(boxX+valueX, y, strconv.Itoa(req.Snapshot.Of(c)), 18, true, colorInk)
		y += rowGap
	}
	text(boxX+labelX, boxY+boxH-16, report.Orientation, 12, false, colorMuted)

	text(crossX, crossY-14, "Honey & Mumford Cross", 20, true, colorInk)

	text(margin, PageHeight-40, report.Footer[0], 12, false, colorMuted)
	text(margin, PageHeight-22, report.Footer[1], 12, false, colorMuted)
	return p
}

// fitText shortens s with an ellipsis until its estimated width fits.
func fitText(s string, size, maxWidth float64) string {
	fits := func(s string) bool {
		minX, _, maxX, _ := diagram.TextBox(diagram.Text{Content: s, Size: size})
		return maxX-minX <= maxWidth
	}
	if fits(s) {
		return s
	}
	runes := []rune(s)
	for n := len(runes) - 1; n > 0; n-- {
		if t := string(runes[:n]) + "…"; fits(t) {
			return t
		}
	}
	return "…"
}

// diagramImage serialises d to SVG and parses it back, so the raster always
// shows exactly what the SVG export contains.
func diagramImage(d *diagram.Diagram) (*diagram.Diagram, error) {
	if d == nil {
		return nil, errors.New("no diagram to export")
	}
	src, err := diagram.EncodeSVG(d)
	if err != nil {
		return nil, fmt.Errorf("serialise diagram: %w", err)
	}
	parsed, err := diagram.ParseSVG(bytes.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("load diagram image: %w", err)
	}
	return parsed, nil
}

// Compose paints the export page for req at Scale.
func Compose(req Request, fonts *diagram.Fonts) (*image.RGBA, error) {
	cross, err := diagramImage(req.Diagram)
	if err != nil {
		return nil, &Error{Stage: StageDiagram, Err: err}
	}

	img := image.NewRGBA(image.Rect(0, 0, int(PageWidth)*Scale, int(PageHeight)*Scale))
	if err := diagram.Paint(img, img.Bounds(), Page(req), fonts); err != nil {
		return nil, &Error{Stage: StageCompose, Err: err}
	}
	at := image.Rect(int(crossX)*Scale, int(crossY)*Scale, int(crossX+crossSize)*Scale, int(crossY+crossSize)*Scale)
	if err := diagram.Paint(img, at, cross, fonts); err != nil {
		return nil, &Error{Stage: StageCompose, Err: err}
	}
	return img, nil
}

// EncodePNG encodes img as PNG.
func EncodePNG(img image.Image) ([]byte, error) {
	if img == nil || img.Bounds().Empty() {
		return nil, &Error{Stage: StageEncode, Err: ErrEmptyOutput}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, &Error{Stage: StageEncode, Err: err}
	}
	if buf.Len() == 0 {
		return nil, &Error{Stage: StageEncode, Err: ErrEmptyOutput}
	}
	return buf.Bytes(), nil
}
