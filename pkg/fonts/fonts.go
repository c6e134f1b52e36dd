// Package fonts provides the embedded font used for tooltip labels.
//
// The Go Regular typeface ships with golang.org/x/image, so labels render
// identically on every machine without looking up system fonts.
package fonts

import (
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// FontFamily is the CSS font-family used for labels in SVG output.
const FontFamily = "Go, sans-serif"

// DefaultSize is the label font size in points.
const DefaultSize = 12

var (
	parsed      *opentype.Font
	parseErr    error
	parseOnce   sync.Once
	facesMu     sync.Mutex
	facesBySize = map[float64]font.Face{}
)

// GoRegularTTF returns the raw TrueType data.
func GoRegularTTF() []byte {
	return goregular.TTF
}

// Face returns a font face of the given size, cached after first use.
// A non-positive size selects [DefaultSize].
func Face(size float64) (font.Face, error) {
	if size <= 0 {
		size = DefaultSize
	}
	parseOnce.Do(func() {
		parsed, parseErr = opentype.Parse(goregular.TTF)
	})
	if parseErr != nil {
		return nil, parseErr
	}

	facesMu.Lock()
	defer facesMu.Unlock()
	if f, ok := facesBySize[size]; ok {
		return f, nil
	}
	f, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, err
	}
	facesBySize[size] = f
	return f, nil
}
