/*
Package rasterizer turns font descriptions into faces, cell metrics and glyph
coverage masks.

A Rasterizer resolves a termfont.FontDesc to a face of a font engine and hands
out a FontKey for it. Faces are cached for the lifetime of the rasterizer.
Metrics and glyphs are computed in device pixels, using the resolution and
device pixel ratio the rasterizer has been created with. If either of them
changes, clients create a new rasterizer.

Every call into the font engine is guarded: engine failures (including
panics) are reported as errors of type termfont.MissingFontError while
loading a font, and as termfont.EngineError afterwards.

Rasterizers are not safe for concurrent use. Glyph bitmaps are not cached,
see package glyphcache for a cache on top of a rasterizer.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package rasterizer

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/termfont"
	"github.com/npillmayer/termfont/engine"
	"github.com/npillmayer/termfont/registry"
)

// tracer writes to trace with key 'termfont'
func tracer() tracing.Trace {
	return tracing.Select("termfont")
}

// averageAdvanceRune is measured as the average advance of a font, as
// engines do not offer a true average character width.
const averageAdvanceRune = 'A'

// referencePixelsPerEm is the fixed reference size of glyph bitmaps:
// a glyph of size s is scaled by s / (unitsPerEm / referencePixelsPerEm).
const referencePixelsPerEm = 16

// maxGlyphPixels limits the area of a glyph bitmap.
const maxGlyphPixels = 1 << 24

// Rasterizer loads faces and rasterizes glyphs.
type Rasterizer struct {
	coll          engine.Collection
	faces         *registry.Registry[engine.Face]
	dpiX, dpiY    float32
	dpr           float32
	squareBitmaps bool
}

// New creates a rasterizer for a device with the given resolution and device
// pixel ratio. Faces are looked up in the system font collection, unless an
// option selects a different one.
//
// useThinStrokes is accepted for compatibility with other rasterizers and has
// no effect.
func New(dpiX, dpiY, devicePixelRatio float32, useThinStrokes bool, opts ...Option) (*Rasterizer, error) {
	if !(devicePixelRatio > 0) || math.IsInf(float64(devicePixelRatio), 0) {
		return nil, fmt.Errorf("invalid device pixel ratio %v", devicePixelRatio)
	}
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}
	coll, err := cfg.openCollection()
	if err != nil {
		return nil, err
	}
	if useThinStrokes {
		tracer().Debugf("thin strokes are not supported, ignoring")
	}
	tracer().Infof("rasterizer for %.0f × %.0f dpi, device pixel ratio %.2f", dpiX, dpiY, devicePixelRatio)
	return &Rasterizer{
		coll:          coll,
		faces:         registry.New[engine.Face](),
		dpiX:          dpiX,
		dpiY:          dpiY,
		dpr:           devicePixelRatio,
		squareBitmaps: cfg.squareBitmaps,
	}, nil
}

// NewWithCollection creates a rasterizer which looks up faces in coll.
func NewWithCollection(coll engine.Collection, dpiX, dpiY, devicePixelRatio float32,
	useThinStrokes bool, opts ...Option) (*Rasterizer, error) {
	//
	if coll == nil {
		return nil, errors.New("font collection is nil")
	}
	return New(dpiX, dpiY, devicePixelRatio, useThinStrokes, append(opts, WithCollection(coll))...)
}

// DPI returns the resolution the rasterizer has been created for.
func (r *Rasterizer) DPI() (x, y float32) {
	return r.dpiX, r.dpiY
}

// DevicePixelRatio returns the device pixel ratio the rasterizer has been
// created for.
func (r *Rasterizer) DevicePixelRatio() float32 {
	return r.dpr
}

// Collection returns the font collection faces are looked up in.
func (r *Rasterizer) Collection() engine.Collection {
	return r.coll
}

// FontDesc returns the description a font has been loaded for.
func (r *Rasterizer) FontDesc(key termfont.FontKey) (termfont.FontDesc, error) {
	desc, ok := r.faces.Desc(key)
	if !ok {
		return termfont.FontDesc{}, termfont.ErrFontNotLoaded
	}
	return desc, nil
}

// FaceName returns the name of the face a font has been resolved to.
func (r *Rasterizer) FaceName(key termfont.FontKey) (name string, err error) {
	face, ok := r.faces.Face(key)
	if !ok {
		return "", termfont.ErrFontNotLoaded
	}
	defer guard(&err, "face name", key)
	return face.FullName(), nil
}

// Fonts returns the keys of all loaded fonts, in the order of loading.
func (r *Rasterizer) Fonts() []termfont.FontKey {
	keys := r.faces.Keys()
	slices.Sort(keys)
	return keys
}

// LoadFont resolves desc to a face and returns its key. Loading the same
// description again returns the same key. The size is not used for face
// selection.
//
// If the family of desc does not exist or the engine fails to provide a face,
// a *termfont.MissingFontError is returned.
func (r *Rasterizer) LoadFont(desc termfont.FontDesc, size termfont.Size) (termfont.FontKey, error) {
	desc = desc.Normalized()
	if key, ok := r.faces.LookupByDescriptor(desc); ok {
		tracer().Debugf("font with %s already loaded as %s", desc, key)
		return key, nil
	}
	face, err := r.resolveFace(desc)
	if err != nil {
		return 0, err
	}
	key := r.faces.Insert(desc, face)
	tracer().Infof("loaded font with %s as %s", desc, key)
	return key, nil
}

// Metrics returns the cell metrics of a loaded font at size.
//
// The average advance is the advance width of glyph 'A'. The line height is
// ascent - descent + cap height, with descent negative below the baseline.
func (r *Rasterizer) Metrics(key termfont.FontKey, size termfont.Size) (m termfont.Metrics, err error) {
	face, ok := r.faces.Face(key)
	if !ok {
		return termfont.Metrics{}, termfont.ErrFontNotLoaded
	}
	defer guard(&err, "metrics", key)
	fm := face.Metrics()
	if fm.DesignUnitsPerEm == 0 {
		return termfont.Metrics{}, &termfont.EngineError{Op: "metrics", Key: key, Err: errNoUnitsPerEm}
	}
	ref := face.GlyphIndices([]rune{averageAdvanceRune})
	gm := face.DesignGlyphMetrics(ref, false)[0]
	//
	scale := float64(r.dpr) * float64(size.AsPoints()) / float64(fm.DesignUnitsPerEm)
	m = termfont.Metrics{
		AverageAdvance: float64(gm.AdvanceWidth) * scale,
		LineHeight:     float64(fm.Ascent-fm.Descent+fm.CapHeight) * scale,
	}
	return m, nil
}

// GetGlyph rasterizes a single glyph into an 8-bit coverage mask.
// Characters missing from the font are rendered as glyph 0 ('.notdef').
//
// The bitmap has room for the ink box of the glyph at the reference scale,
// see referencePixelsPerEm.
func (r *Rasterizer) GetGlyph(gk termfont.GlyphKey) (g termfont.RasterizedGlyph, err error) {
	face, ok := r.faces.Face(gk.FontKey)
	if !ok {
		return termfont.RasterizedGlyph{}, termfont.ErrFontNotLoaded
	}
	defer guard(&err, "rasterization", gk.FontKey)
	size := gk.Size.AsPoints() * r.dpr
	gids := face.GlyphIndices([]rune{gk.C})
	if gids[0] == engine.NotDef {
		tracer().Debugf("no glyph for %#U in %s, using .notdef", gk.C, gk.FontKey)
	}
	gm := face.DesignGlyphMetrics(gids, false)[0]
	upem := face.Metrics().DesignUnitsPerEm
	if upem == 0 {
		return termfont.RasterizedGlyph{}, &termfont.EngineError{Op: "rasterization", Key: gk.FontKey, Err: errNoUnitsPerEm}
	}
	designUnitsPerPixel := float32(upem) / referencePixelsPerEm
	scale := size / designUnitsPerPixel
	//
	width := float32(gm.InkWidth()) * scale
	height := float32(gm.InkHeight()) * scale
	x := float32(-gm.LeftSideBearing) * scale
	y := float32(gm.VerticalOriginY-gm.TopSideBearing) * scale
	w, h := pixels(width), pixels(height)
	if int64(w)*int64(h) > maxGlyphPixels {
		err = fmt.Errorf("%w: %d × %d pixels", errGlyphTooLarge, w, h)
		return termfont.RasterizedGlyph{}, &termfont.EngineError{Op: "rasterization", Key: gk.FontKey, Err: err}
	}
	//
	buf, err := r.drawGlyph(face, gids[0], size, x, y, w, h)
	if err != nil {
		return termfont.RasterizedGlyph{}, &termfont.EngineError{Op: "rasterization", Key: gk.FontKey, Err: err}
	}
	g = termfont.RasterizedGlyph{
		C:      gk.C,
		Top:    int32(y),
		Left:   int32(x),
		Width:  w,
		Height: h,
		Buf:    buf,
	}
	if r.squareBitmaps {
		g.Height = g.Width
	}
	return g, nil
}

// drawGlyph renders a single glyph into a fresh render target of w × h
// pixels and returns its coverage mask. The render target does not outlive
// the call.
func (r *Rasterizer) drawGlyph(face engine.Face, gid engine.GlyphIndex, size, x, y float32,
	w, h int32) ([]byte, error) {
	//
	rt, err := r.coll.NewRenderTarget(int(w), int(h))
	if err != nil {
		return nil, err
	}
	defer rt.Release()
	rt.SetPixelsPerDip(r.dpr)
	err = rt.DrawGlyphRun(x, y, engine.MeasuringModeNatural, face, size,
		[]engine.GlyphIndex{gid}, []float32{0}, []engine.GlyphOffset{{}}, engine.White)
	if err != nil {
		return nil, err
	}
	return rt.Mask(), nil
}

var (
	errNoUnitsPerEm  = errors.New("font has no units per em")
	errGlyphTooLarge = errors.New("glyph bitmap too large")
)

// pixels truncates a pixel extent, clamping it at 0.
func pixels(v float32) int32 {
	if !(v > 0) {
		return 0
	}
	if v >= math.MaxInt32 {
		return math.MaxInt32
	}
	return int32(v)
}

// guard converts a panic of the font engine into an EngineError.
// It has to be deferred.
func guard(err *error, op string, key termfont.FontKey) {
	if p := recover(); p != nil {
		tracer().Errorf("font engine panic in %s for %s: %v", op, key, p)
		*err = &termfont.EngineError{Op: op, Key: key, Err: fmt.Errorf("font engine panic: %v", p)}
	}
}
