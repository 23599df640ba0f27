package diagram

import (
	"bytes"
	"image"
	"image/color"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/somdipdey/Learning-Styles/internal/questionnaire"
	"github.com/somdipdey/Learning-Styles/internal/scoring"
)

func snapWith(a, r, th, p int) scoring.Snapshot {
	return scoring.Snapshot{
		Totals: map[questionnaire.Category]int{
			questionnaire.Activist:   a,
			questionnaire.Reflector:  r,
			questionnaire.Theorist:   th,
			questionnaire.Pragmatist: p,
		},
		Ticked: a + r + th + p,
		Items:  80,
	}
}

func labelPositions(d *Diagram) []Point {
	var out []Point
	for _, t := range d.Texts() {
		out = append(out, Point{t.X, t.Y})
	}
	return out
}

func TestRender_LabelsIndependentOfScore(t *testing.T) {
	low := Render(snapWith(0, 0, 0, 0))
	high := Render(snapWith(20, 20, 20, 20))
	mixed := Render(snapWith(3, 17, 20, 1))

	assert.Equal(t, labelPositions(low), labelPositions(high))
	assert.Equal(t, labelPositions(low), labelPositions(mixed))
}

func TestRender_LabelsConfined(t *testing.T) {
	for _, s := range []scoring.Snapshot{
		snapWith(0, 0, 0, 0),
		snapWith(20, 20, 20, 20),
		snapWith(20, 0, 20, 0),
		snapWith(999, -5, 20, 7),
	} {
		d := Render(s)
		assert.True(t, d.LabelsConfined(), "labels escape the surface for %v", s.Totals)
	}
}

func TestRender_TextMatchesScores(t *testing.T) {
	d := Render(snapWith(12, 5, 9, 20))
	var contents []string
	for _, tx := range d.Texts() {
		contents = append(contents, tx.Content)
	}
	assert.Equal(t, []string{
		"Activist", "12", "Pragmatist", "20", "Theorist", "9", "Reflector", "5",
	}, contents)
}

func TestRender_TicksPerArm(t *testing.T) {
	d := Render(snapWith(0, 0, 0, 0))
	ticks := 0
	for _, s := range d.Shapes {
		if l, ok := s.(Line); ok && l.Stroke == ColorTick {
			ticks++
		}
	}
	assert.Equal(t, 4*(AxisMax-1), ticks)
}

func TestRender_AreaOnlyWhenTicked(t *testing.T) {
	hasArea := func(d *Diagram) bool {
		for _, s := range d.Shapes {
			if _, ok := s.(Polygon); ok {
				return true
			}
		}
		return false
	}
	assert.False(t, hasArea(Render(snapWith(0, 0, 0, 0))))
	assert.True(t, hasArea(Render(snapWith(4, 0, 0, 0))))
}

func TestRender_AreaProportional(t *testing.T) {
	d := Render(snapWith(20, 10, 0, 5))
	var area Polygon
	for _, s := range d.Shapes {
		if p, ok := s.(Polygon); ok {
			area = p
		}
	}
	require.Len(t, area.Points, 4)
	armLen := Width/2 - axisPad
	assert.InDelta(t, Height/2-armLen, area.Points[0].Y, 1e-9)       // activist, full arm
	assert.InDelta(t, Width/2+armLen/4, area.Points[1].X, 1e-9)      // pragmatist 5/20
	assert.InDelta(t, Height/2, area.Points[2].Y, 1e-9)              // theorist 0
	assert.InDelta(t, Width/2-armLen/2, area.Points[3].X, 1e-9)      // reflector 10/20
}

func TestLabelsConfined_DetectsOverflow(t *testing.T) {
	d := &Diagram{Width: 100, Height: 100, Shapes: []Shape{
		Text{X: 98, Y: 50, Content: "overflowing", Size: 16, Anchor: AnchorStart},
	}}
	assert.False(t, d.LabelsConfined())
}

func TestTextBox_ConservativeForGoFonts(t *testing.T) {
	fonts, err := LoadFonts()
	require.NoError(t, err)
	defer fonts.Close()

	for _, tx := range Render(snapWith(20, 20, 20, 20)).Texts() {
		minX, _, maxX, _ := TextBox(tx)
		w, err := fonts.Measure(tx.Content, tx.Size, tx.Bold)
		require.NoError(t, err)
		assert.LessOrEqual(t, w, maxX-minX, "text %q", tx.Content)
	}
}

func TestValidate(t *testing.T) {
	var nilDiagram *Diagram
	assert.ErrorIs(t, nilDiagram.Validate(), ErrEmpty)
	assert.ErrorIs(t, (&Diagram{Width: 10, Height: 10}).Validate(), ErrEmpty)
	assert.Error(t, (&Diagram{Width: 10, Height: 10, Shapes: []Shape{Polygon{}}}).Validate())
	assert.NoError(t, Render(snapWith(1, 2, 3, 4)).Validate())
}

func TestSVG_RoundTrip(t *testing.T) {
	d := Render(snapWith(7, 13, 2, 20))
	data, err := EncodeSVG(d)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte(`<svg xmlns="http://www.w3.org/2000/svg"`)))

	got, err := ParseSVG(bytes.NewReader(data))
	require.NoError(t, err)
	if diff := cmp.Diff(d, got); diff != "" {
		t.Fatalf("svg round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestSVG_EscapesText(t *testing.T) {
	d := &Diagram{Width: 10, Height: 10, Shapes: []Shape{
		Text{X: 1, Y: 1, Content: `<A & "B">`, Size: 4, Anchor: AnchorStart, Fill: ColorLabel},
	}}
	data, err := EncodeSVG(d)
	require.NoError(t, err)
	assert.NotContains(t, string(data), `<A &`)

	got, err := ParseSVG(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, `<A & "B">`, got.Texts()[0].Content)
}

func TestParseSVG_Errors(t *testing.T) {
	tests := map[string]string{
		"garbage":      "this is not xml",
		"wrong root":   `<html width="1" height="1"></html>`,
		"no size":      `<svg xmlns="http://www.w3.org/2000/svg"><rect x="0" y="0" width="1" height="1" fill="#000000"/></svg>`,
		"bad colour":   `<svg width="10" height="10"><rect x="0" y="0" width="1" height="1" fill="red"/></svg>`,
		"no shapes":    `<svg width="10" height="10"></svg>`,
		"bad polygon":  `<svg width="10" height="10"><polygon points="1;2" fill="#000000"/></svg>`,
		"bad position": `<svg width="10" height="10"><circle cx="a" cy="1" r="1" fill="#000000"/></svg>`,
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseSVG(strings.NewReader(doc))
			assert.Error(t, err)
		})
	}
}

func TestParseSVG_FlattensGroups(t *testing.T) {
	doc := `<svg xmlns="http://www.w3.org/2000/svg" width="20" height="20">
  <g><text x="2" y="3" font-size="4" text-anchor="end" fill="#ffffff">hi</text></g>
</svg>`
	d, err := ParseSVG(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, d.Texts(), 1)
	assert.Equal(t, AnchorEnd, d.Texts()[0].Anchor)
}

func TestSVGDataURL(t *testing.T) {
	u, err := SVGDataURL(Render(snapWith(1, 1, 1, 1)))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(u, "data:image/svg+xml;charset=utf-8,"))
	assert.NotContains(t, u, `"`)
	assert.NotContains(t, u, " ")
}

func TestPaint(t *testing.T) {
	fonts, err := LoadFonts()
	require.NoError(t, err)
	defer fonts.Close()

	img := image.NewRGBA(image.Rect(0, 0, 1040, 1040))
	require.NoError(t, Paint(img, img.Bounds(), Render(snapWith(0, 0, 0, 0)), fonts))

	assertRGB(t, ColorBackground, img.At(2, 2))
	assertRGB(t, ColorCentre, img.At(520, 520))
	assertRGB(t, ColorAxis, img.At(520, 300))
}

func TestPaint_Offset(t *testing.T) {
	fonts, err := LoadFonts()
	require.NoError(t, err)
	defer fonts.Close()

	img := image.NewRGBA(image.Rect(0, 0, 800, 600))
	target := image.Rect(100, 50, 360, 310)
	require.NoError(t, Paint(img, target, Render(snapWith(0, 0, 0, 0)), fonts))

	assert.Equal(t, color.RGBA{}, img.RGBAAt(50, 20), "outside target stays untouched")
	assertRGB(t, ColorBackground, img.At(102, 52))
}

func TestPaint_RequiresFontsForText(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 520, 520))
	err := Paint(img, img.Bounds(), Render(snapWith(0, 0, 0, 0)), nil)
	assert.Error(t, err)
}

func assertRGB(t *testing.T, want color.NRGBA, got color.Color) {
	t.Helper()
	r, g, b, _ := got.RGBA()
	assert.Equal(t, [3]uint8{want.R, want.G, want.B}, [3]uint8{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8)})
}

func TestTerminalLines(t *testing.T) {
	lines := TerminalLines(snapWith(20, 3, 0, 11))
	require.NotEmpty(t, lines)

	width := utf8.RuneCountInString(lines[0])
	for i, l := range lines {
		if l == "" {
			continue
		}
		assert.Equal(t, width, utf8.RuneCountInString(l), "line %d %q", i, l)
	}
	joined := Terminal(snapWith(20, 3, 0, 11))
	assert.Contains(t, joined, "Activist 20")
	assert.Contains(t, joined, "Theorist 0")
	assert.Contains(t, joined, "Reflector")
	assert.Contains(t, joined, "Pragmatist")
	assert.Equal(t, 3, strings.Count(joined, "◆"))
}
