package diagram

import (
	"fmt"
	"math"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// Fonts caches sized Go font faces for raster output.
type Fonts struct {
	regular *opentype.Font
	bold    *opentype.Font

	mu    sync.Mutex
	faces map[faceKey]font.Face
}

type faceKey struct {
	size float64
	bold bool
}

// LoadFonts parses the embedded Go regular and bold faces.
func LoadFonts() (*Fonts, error) {
	regular, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse regular font: %w", err)
	}
	bold, err := opentype.Parse(gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse bold font: %w", err)
	}
	return &Fonts{regular: regular, bold: bold, faces: make(map[faceKey]font.Face)}, nil
}

// Face returns a face of the given pixel size.
func (f *Fonts) Face(size float64, bold bool) (font.Face, error) {
	key := faceKey{size: math.Round(size*4) / 4, bold: bold}

	f.mu.Lock()
	defer f.mu.Unlock()

	if face, ok := f.faces[key]; ok {
		return face, nil
	}
	src := f.regular
	if bold {
		src = f.bold
	}
	face, err := opentype.NewFace(src, &opentype.FaceOptions{
		Size:    key.size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("new face %.2fpx: %w", key.size, err)
	}
	f.faces[key] = face
	return face, nil
}

// Measure returns the advance width of s in pixels.
func (f *Fonts) Measure(s string, size float64, bold bool) (float64, error) {
	face, err := f.Face(size, bold)
	if err != nil {
		return 0, err
	}
	return fixedToFloat(font.MeasureString(face, s)), nil
}

// Close releases every cached face.
func (f *Fonts) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for k, face := range f.faces {
		face.Close()
		delete(f.faces, k)
	}
	return nil
}
