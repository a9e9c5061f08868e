/*
Package engine defines the font engine a rasterizer is built upon.

The engine enumerates font families, selects faces by weight, stretch and
style, exposes design-space metrics and draws glyph runs into off-screen
8-bit render targets. All metrics are expressed in design units, i.e. in the
coordinate space of the font file. The y axis grows up from the baseline.

Package gotext provides an engine on top of go-text/typesetting.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package engine

import "errors"

// ErrFamilyNotFound is returned by Collection.FamilyByName for unknown
// family names.
var ErrFamilyNotFound = errors.New("font family not found")

// ErrNoMatchingFace is returned by Family.FirstMatchingFace if a family has
// no usable face at all.
var ErrNoMatchingFace = errors.New("no matching face in font family")

// Collection is a set of font families.
type Collection interface {
	// FamilyByName returns the family called name. Names are compared
	// case-insensitive and without white space.
	FamilyByName(name string) (Family, error)
	// FamilyNames lists the families of the collection.
	FamilyNames() []string
	// NewRenderTarget creates an off-screen 8-bit render target of
	// width × height pixels.
	NewRenderTarget(width, height int) (RenderTarget, error)
}

// Family is a group of faces sharing a family name.
type Family interface {
	Name() string
	// FirstMatchingFace selects the face closest to the requested
	// properties.
	FirstMatchingFace(weight FontWeight, stretch FontStretch, style FontStyle) (Face, error)
}

// Face is a single face of a family.
type Face interface {
	// FullName returns a human readable name of the face, e.g.
	// "Go Mono Bold".
	FullName() string
	// Metrics returns font-wide design metrics.
	Metrics() FontMetrics
	// GlyphIndices maps code-points to glyph indices. Code-points not
	// covered by the face map to glyph 0 (".notdef").
	GlyphIndices(codepoints []rune) []GlyphIndex
	// DesignGlyphMetrics returns glyph metrics in design units.
	DesignGlyphMetrics(glyphs []GlyphIndex, isSideways bool) []GlyphMetrics
}

// RenderTarget is an off-screen 8-bit coverage surface.
//
// Render targets are not meant to be cached: acquire one, draw, read the
// mask and release it.
type RenderTarget interface {
	// Size returns the size of the target in pixels.
	Size() (width, height int)
	// SetPixelsPerDip sets the number of pixels per device independent
	// pixel.
	SetPixelsPerDip(ppd float32)
	// DrawGlyphRun draws glyphs with their baseline origin at (x, y), in
	// device independent pixels measured from the top-left corner.
	DrawGlyphRun(x, y float32, mode MeasuringMode, face Face, emSize float32,
		glyphs []GlyphIndex, advances []float32, offsets []GlyphOffset, color Color) error
	// Mask returns the coverage values, row by row.
	Mask() []byte
	// Release frees the resources of the target.
	Release()
}
