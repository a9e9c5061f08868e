package gotext

import (
	"math"

	"github.com/go-text/typesetting/font"
	"github.com/npillmayer/termfont/engine"
)

// Face is a font face of a collection. It wraps a go-text face, which
// caches glyph extents and code-point mappings.
type Face struct {
	face    *font.Face
	metrics engine.FontMetrics
}

var _ engine.Face = (*Face)(nil)

func newFace(f *font.Face) *Face {
	ext, ok := f.FontHExtents()
	if !ok {
		tracer().Debugf("font has incomplete horizontal extents: %v", ext)
	}
	return &Face{
		face: f,
		metrics: engine.FontMetrics{
			DesignUnitsPerEm: f.Upem(),
			Ascent:           units(ext.Ascender),
			Descent:          units(ext.Descender),
			LineGap:          units(ext.LineGap),
			CapHeight:        units(f.LineMetric(font.CapHeight)),
			XHeight:          units(f.LineMetric(font.XHeight)),
		},
	}
}

// Metrics returns font-wide metrics in design units.
func (f *Face) Metrics() engine.FontMetrics {
	return f.metrics
}

// FullName returns a human readable description of the face.
func (f *Face) FullName() string {
	desc := f.face.Describe()
	return desc.Family + " " + aspectName(desc.Aspect)
}

// GlyphIndices maps code-points to glyph indices, without applying any
// substitutions.
func (f *Face) GlyphIndices(codepoints []rune) []engine.GlyphIndex {
	gids := make([]engine.GlyphIndex, len(codepoints))
	for i, r := range codepoints {
		gid, ok := f.face.NominalGlyph(r)
		if !ok || gid > math.MaxUint16 {
			gids[i] = engine.NotDef
			continue
		}
		gids[i] = engine.GlyphIndex(gid)
	}
	return gids
}

// DesignGlyphMetrics returns glyph metrics in design units.
//
// Fonts without vertical metrics get a vertical advance of ascent minus
// descent, with the vertical origin at the ascent. Sideways glyphs are
// measured like upright ones.
func (f *Face) DesignGlyphMetrics(glyphs []engine.GlyphIndex, isSideways bool) []engine.GlyphMetrics {
	gms := make([]engine.GlyphMetrics, len(glyphs))
	for i, g := range glyphs {
		gms[i] = f.glyphMetrics(font.GID(g))
	}
	return gms
}

func (f *Face) glyphMetrics(gid font.GID) engine.GlyphMetrics {
	advance := units(f.face.HorizontalAdvance(gid))
	ext, ok := f.face.GlyphExtents(gid)
	if !ok {
		ext = font.GlyphExtents{}
	}
	// extents: y grows up, Height is negative
	lsb := units(ext.XBearing)
	inkWidth := units(ext.Width)
	inkTop := units(ext.YBearing)
	inkHeight := -units(ext.Height)
	//
	var advanceHeight, vOrigin int32
	if f.face.HasVerticalMetrics() {
		advanceHeight = units(-f.face.VerticalAdvance(gid))
		_, y := f.face.GlyphVOrigin(gid)
		vOrigin = units(y)
	} else {
		advanceHeight = f.metrics.Ascent - f.metrics.Descent
		vOrigin = f.metrics.Ascent
	}
	tsb := vOrigin - inkTop
	return engine.GlyphMetrics{
		LeftSideBearing:   lsb,
		AdvanceWidth:      uint32(max(advance, 0)),
		RightSideBearing:  advance - (lsb + inkWidth),
		TopSideBearing:    tsb,
		AdvanceHeight:     uint32(max(advanceHeight, 0)),
		BottomSideBearing: advanceHeight - (tsb + inkHeight),
		VerticalOriginY:   vOrigin,
	}
}

func (f *Face) outline(g engine.GlyphIndex) (font.GlyphOutline, bool) {
	switch data := f.face.GlyphData(font.GID(g)).(type) {
	case font.GlyphOutline:
		return data, true
	case nil:
		tracer().Debugf("no glyph data for glyph %d", g)
	default:
		tracer().Debugf("glyph %d is not an outline glyph (%T), skipping", g, data)
	}
	return font.GlyphOutline{}, false
}

func units(v float32) int32 {
	return int32(math.Round(float64(v)))
}

func aspectName(as font.Aspect) string {
	name := "Regular"
	switch {
	case as.Weight >= font.WeightBold:
		name = "Bold"
	case as.Weight >= font.WeightMedium+50:
		name = "SemiBold"
	case as.Weight >= font.WeightMedium:
		name = "Medium"
	case as.Weight <= font.WeightLight:
		name = "Light"
	}
	if as.Style == font.StyleItalic {
		if name == "Regular" {
			return "Italic"
		}
		name += " Italic"
	}
	return name
}
