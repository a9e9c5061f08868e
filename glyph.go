package termfont

import (
	"fmt"
	"sync/atomic"
)

// FontKey is an opaque handle for a face loaded into a rasterizer.
// Keys are unique within a process and are never re-issued.
type FontKey uint64

var lastFontKey atomic.Uint64

// NextFontKey mints a fresh FontKey. The zero key is never returned.
func NextFontKey() FontKey {
	key := FontKey(lastFontKey.Add(1))
	tracer().Debugf("minted font key %d", key)
	return key
}

func (key FontKey) String() string {
	return fmt.Sprintf("FontKey(%d)", uint64(key))
}

// Size is a font size in points. Sizes are always combined with a device
// pixel ratio before being used for scaling.
type Size float32

// NewSize creates a size from a value in points.
func NewSize(pts float32) Size {
	return Size(pts)
}

// AsPoints returns the size in points.
func (s Size) AsPoints() float32 {
	return float32(s)
}

// GlyphKey identifies a single glyph render request.
type GlyphKey struct {
	FontKey FontKey
	C       rune
	Size    Size
}

func (gk GlyphKey) String() string {
	return fmt.Sprintf("glyph %q of %s at %.2fpt", gk.C, gk.FontKey, gk.Size.AsPoints())
}

// Metrics holds the cell metrics of a face at a given size, in device pixels.
type Metrics struct {
	AverageAdvance float64
	LineHeight     float64
}

// RasterizedGlyph is an 8-bit coverage mask of a glyph.
//
// Top and Left are offsets in device pixels from the glyph origin to the
// top-left corner of the bitmap, with the y axis pointing up from the
// baseline. Buf is row-major, one byte per pixel.
type RasterizedGlyph struct {
	C      rune
	Top    int32
	Left   int32
	Width  int32
	Height int32
	Buf    []byte
}

// Stride returns the number of bytes of one row of the coverage mask.
func (g RasterizedGlyph) Stride() int {
	return int(g.Width)
}

// At returns the coverage at (x, y), or 0 outside of the mask.
func (g RasterizedGlyph) At(x, y int) uint8 {
	if x < 0 || y < 0 || x >= int(g.Width) {
		return 0
	}
	i := y*g.Stride() + x
	if i >= len(g.Buf) {
		return 0
	}
	return g.Buf[i]
}
