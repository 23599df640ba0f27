package diagram

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"image/color"
	"io"
	"net/url"
	"strconv"
	"strings"
)

const svgNS = "http://www.w3.org/2000/svg"

// WriteSVG serialises d as a standalone SVG document.
func WriteSVG(w io.Writer, d *Diagram) error {
	if err := d.Validate(); err != nil {
		return err
	}
	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="%s" width="%s" height="%s" viewBox="0 0 %s %s">`,
		svgNS, num(d.Width), num(d.Height), num(d.Width), num(d.Height))
	b.WriteByte('\n')
	for _, s := range d.Shapes {
		switch s := s.(type) {
		case Rect:
			fmt.Fprintf(&b, `  <rect x="%s" y="%s" width="%s" height="%s"%s/>`,
				num(s.X), num(s.Y), num(s.W), num(s.H), paint("fill", s.Fill))
		case Line:
			fmt.Fprintf(&b, `  <line x1="%s" y1="%s" x2="%s" y2="%s" stroke-width="%s"%s/>`,
				num(s.X1), num(s.Y1), num(s.X2), num(s.Y2), num(s.Width), paint("stroke", s.Stroke))
		case Circle:
			fmt.Fprintf(&b, `  <circle cx="%s" cy="%s" r="%s"%s/>`,
				num(s.CX), num(s.CY), num(s.R), paint("fill", s.Fill))
		case Polygon:
			pts := make([]string, len(s.Points))
			for i, p := range s.Points {
				pts[i] = num(p.X) + "," + num(p.Y)
			}
			fmt.Fprintf(&b, `  <polygon points="%s"%s/>`, strings.Join(pts, " "), paint("fill", s.Fill))
		case Text:
			weight := ""
			if s.Bold {
				weight = ` font-weight="700"`
			}
			fmt.Fprintf(&b, `  <text x="%s" y="%s" font-size="%s"%s text-anchor="%s" dominant-baseline="middle"%s>`,
				num(s.X), num(s.Y), num(s.Size), weight, s.Anchor, paint("fill", s.Fill))
			if err := xml.EscapeText(&b, []byte(s.Content)); err != nil {
				return fmt.Errorf("escape text: %w", err)
			}
			b.WriteString("</text>")
		default:
			return fmt.Errorf("unsupported shape %T", s)
		}
		b.WriteByte('\n')
	}
	b.WriteString("</svg>\n")
	_, err := io.WriteString(w, b.String())
	return err
}

// EncodeSVG returns d as SVG bytes.
func EncodeSVG(d *Diagram) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteSVG(&buf, d); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SVGDataURL returns d as an embeddable data URL.
func SVGDataURL(d *Diagram) (string, error) {
	b, err := EncodeSVG(d)
	if err != nil {
		return "", err
	}
	return "data:image/svg+xml;charset=utf-8," + url.PathEscape(string(b)), nil
}

// svgNode is a generic element used when reading SVG back.
type svgNode struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Content  string     `xml:",chardata"`
	Children []svgNode  `xml:",any"`
}

func (n svgNode) attr(name string) string {
	for _, a := range n.Attrs {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

// ErrNotSVG is returned when the input has no <svg> root.
var ErrNotSVG = errors.New("not an svg document")

// ParseSVG reads a document produced by WriteSVG. Unknown elements are
// ignored; <g> groups are flattened.
func ParseSVG(r io.Reader) (*Diagram, error) {
	var root svgNode
	if err := xml.NewDecoder(r).Decode(&root); err != nil {
		return nil, fmt.Errorf("decode svg: %w", err)
	}
	if root.XMLName.Local != "svg" {
		return nil, ErrNotSVG
	}
	w, err := parseNum(root.attr("width"))
	if err != nil {
		return nil, fmt.Errorf("svg width: %w", err)
	}
	h, err := parseNum(root.attr("height"))
	if err != nil {
		return nil, fmt.Errorf("svg height: %w", err)
	}

	d := &Diagram{Width: w, Height: h}
	if err := collectShapes(d, root.Children); err != nil {
		return nil, err
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

func collectShapes(d *Diagram, nodes []svgNode) error {
	for _, n := range nodes {
		p := attrParser{node: n}
		switch n.XMLName.Local {
		case "g":
			if err := collectShapes(d, n.Children); err != nil {
				return err
			}
			continue
		case "rect":
			d.Shapes = append(d.Shapes, Rect{
				X: p.num("x"), Y: p.num("y"), W: p.num("width"), H: p.num("height"),
				Fill: p.color("fill"),
			})
		case "line":
			d.Shapes = append(d.Shapes, Line{
				X1: p.num("x1"), Y1: p.num("y1"), X2: p.num("x2"), Y2: p.num("y2"),
				Width: p.num("stroke-width"), Stroke: p.color("stroke"),
			})
		case "circle":
			d.Shapes = append(d.Shapes, Circle{
				CX: p.num("cx"), CY: p.num("cy"), R: p.num("r"), Fill: p.color("fill"),
			})
		case "polygon":
			d.Shapes = append(d.Shapes, Polygon{Points: p.points("points"), Fill: p.color("fill")})
		case "text":
			d.Shapes = append(d.Shapes, Text{
				X: p.num("x"), Y: p.num("y"),
				Content: strings.TrimSpace(n.Content),
				Size:    p.num("font-size"),
				Bold:    n.attr("font-weight") == "700" || n.attr("font-weight") == "bold",
				Anchor:  anchorOf(n.attr("text-anchor")),
				Fill:    p.color("fill"),
			})
		}
		if p.err != nil {
			return fmt.Errorf("<%s>: %w", n.XMLName.Local, p.err)
		}
	}
	return nil
}

// attrParser keeps the first conversion error so callers check once.
type attrParser struct {
	node svgNode
	err  error
}

func (p *attrParser) num(name string) float64 {
	v, err := parseNum(p.node.attr(name))
	if err != nil && p.err == nil {
		p.err = fmt.Errorf("attribute %s: %w", name, err)
	}
	return v
}

func (p *attrParser) color(name string) color.NRGBA {
	c, err := parseColor(p.node.attr(name))
	if err != nil && p.err == nil {
		p.err = fmt.Errorf("attribute %s: %w", name, err)
	}
	if op := p.node.attr(name + "-opacity"); op != "" {
		a, err := strconv.ParseFloat(op, 64)
		if err != nil && p.err == nil {
			p.err = fmt.Errorf("attribute %s-opacity: %w", name, err)
		}
		c.A = uint8(a*255 + 0.5)
	}
	return c
}

func (p *attrParser) points(name string) []Point {
	var out []Point
	for _, pair := range strings.Fields(p.node.attr(name)) {
		xs, ys, ok := strings.Cut(pair, ",")
		if !ok {
			if p.err == nil {
				p.err = fmt.Errorf("attribute %s: malformed point %q", name, pair)
			}
			return nil
		}
		x, errX := parseNum(xs)
		y, errY := parseNum(ys)
		if err := errors.Join(errX, errY); err != nil {
			if p.err == nil {
				p.err = fmt.Errorf("attribute %s: %w", name, err)
			}
			return nil
		}
		out = append(out, Point{x, y})
	}
	return out
}

func anchorOf(s string) Anchor {
	switch Anchor(s) {
	case AnchorMiddle, AnchorEnd:
		return Anchor(s)
	default:
		return AnchorStart
	}
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func parseNum(s string) (float64, error) {
	s = strings.TrimSuffix(strings.TrimSpace(s), "px")
	if s == "" {
		return 0, errors.New("missing value")
	}
	return strconv.ParseFloat(s, 64)
}

// paint renders a colour attribute, adding an opacity attribute when the
// colour is translucent.
func paint(attr string, c color.NRGBA) string {
	s := fmt.Sprintf(` %s="#%02x%02x%02x"`, attr, c.R, c.G, c.B)
	if c.A != 0xff {
		s += fmt.Sprintf(` %s-opacity="%s"`, attr, strconv.FormatFloat(float64(c.A)/255, 'f', 4, 64))
	}
	return s
}

func parseColor(s string) (color.NRGBA, error) {
	s = strings.TrimSpace(s)
	if len(s) != 7 || s[0] != '#' {
		return color.NRGBA{}, fmt.Errorf("unsupported colour %q", s)
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("unsupported colour %q: %w", s, err)
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}
