package engine

// GlyphIndex is the index of a glyph within a face.
type GlyphIndex uint16

// NotDef is the glyph used for code-points not covered by a face.
const NotDef GlyphIndex = 0

// FontWeight is a font weight on the usual 1–1000 scale.
type FontWeight uint16

const (
	FontWeightThin       FontWeight = 100
	FontWeightExtraLight FontWeight = 200
	FontWeightLight      FontWeight = 300
	FontWeightRegular    FontWeight = 400
	FontWeightMedium     FontWeight = 500
	FontWeightSemiBold   FontWeight = 600
	FontWeightBold       FontWeight = 700
	FontWeightExtraBold  FontWeight = 800
	FontWeightBlack      FontWeight = 900
)

// FontStretch is the width class of a face, from 1 (ultra condensed) to 9
// (ultra expanded).
type FontStretch uint8

const (
	FontStretchUndefined FontStretch = iota
	FontStretchUltraCondensed
	FontStretchExtraCondensed
	FontStretchCondensed
	FontStretchSemiCondensed
	FontStretchNormal
	FontStretchSemiExpanded
	FontStretchExpanded
	FontStretchExtraExpanded
	FontStretchUltraExpanded
)

// FontStyle is the slope of a face.
type FontStyle uint8

const (
	FontStyleNormal FontStyle = iota
	FontStyleOblique
	FontStyleItalic
)

func (s FontStyle) String() string {
	switch s {
	case FontStyleOblique:
		return "oblique"
	case FontStyleItalic:
		return "italic"
	}
	return "normal"
}

// MeasuringMode selects how glyph advances are measured when drawing.
type MeasuringMode uint8

const (
	MeasuringModeNatural MeasuringMode = iota
	MeasuringModeGDIClassic
	MeasuringModeGDINatural
)

// GlyphOffset shifts a glyph of a run, in device independent pixels.
type GlyphOffset struct {
	AdvanceOffset  float32
	AscenderOffset float32
}

// Color is a foreground color with components in [0…255].
type Color struct {
	R, G, B float32
}

// White is full white foreground.
var White = Color{R: 255, G: 255, B: 255}

// Intensity returns the coverage scale factor of a color, in [0…1].
func (c Color) Intensity() float32 {
	v := (c.R + c.G + c.B) / (3 * 255)
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// FontMetrics contains font-wide metrics in design units.
//
// Ascent is positive, Descent is negative for fonts with descenders
// below the baseline.
type FontMetrics struct {
	DesignUnitsPerEm uint16
	Ascent           int32
	Descent          int32
	LineGap          int32
	CapHeight        int32
	XHeight          int32
}

// GlyphMetrics contains metrics of a single glyph in design units.
//
// Side bearings are the distances between the ink box of the glyph and its
// advance box. VerticalOriginY is the y coordinate of the vertical origin,
// i.e. the top of the vertical advance box.
type GlyphMetrics struct {
	LeftSideBearing   int32
	AdvanceWidth      uint32
	RightSideBearing  int32
	TopSideBearing    int32
	AdvanceHeight     uint32
	BottomSideBearing int32
	VerticalOriginY   int32
}

// InkWidth returns the width of the ink box.
func (gm GlyphMetrics) InkWidth() int32 {
	return int32(gm.AdvanceWidth) - (gm.LeftSideBearing + gm.RightSideBearing)
}

// InkHeight returns the height of the ink box.
func (gm GlyphMetrics) InkHeight() int32 {
	return int32(gm.AdvanceHeight) - (gm.TopSideBearing + gm.BottomSideBearing)
}
