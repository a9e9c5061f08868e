package rasterizer

import (
	"errors"
	"testing"

	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/termfont"
	"github.com/npillmayer/termfont/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFakeRasterizer(t *testing.T, dpr float32, opts ...Option) (*Rasterizer, *fakeCollection) {
	coll := newFakeCollection()
	r, err := NewWithCollection(coll, 96, 96, dpr, false, opts...)
	require.NoError(t, err)
	return r, coll
}

func TestNewRejectsInvalidDPR(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "termfont")
	defer teardown()
	//
	for _, dpr := range []float32{0, -1} {
		_, err := NewWithCollection(newFakeCollection(), 96, 96, dpr, false)
		assert.Error(t, err, "dpr = %v", dpr)
	}
	_, err := NewWithCollection(nil, 96, 96, 1, false)
	assert.Error(t, err)
}

func TestAccessors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "termfont")
	defer teardown()
	//
	coll := newFakeCollection()
	r, err := NewWithCollection(coll, 110, 120, 1.5, true)
	require.NoError(t, err)
	x, y := r.DPI()
	assert.Equal(t, float32(110), x)
	assert.Equal(t, float32(120), y)
	assert.Equal(t, float32(1.5), r.DevicePixelRatio())
	assert.Same(t, coll, r.Collection())
}

func TestLoadFontIsIdempotent(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "termfont")
	defer teardown()
	//
	r, _ := newFakeRasterizer(t, 1)
	desc := termfont.NewFontDesc("Fake", termfont.Description{Weight: termfont.WeightBold})
	key1, err := r.LoadFont(desc, termfont.NewSize(12))
	require.NoError(t, err)
	key2, err := r.LoadFont(desc, termfont.NewSize(20))
	require.NoError(t, err)
	assert.Equal(t, key1, key2)
	assert.Equal(t, 1, r.faces.Len())
	//
	got, err := r.FontDesc(key1)
	require.NoError(t, err)
	assert.Equal(t, desc, got)
	// nil style is the regular description
	key3, err := r.LoadFont(termfont.FontDesc{Name: "Fake"}, 12)
	require.NoError(t, err)
	key4, err := r.LoadFont(termfont.NewFontDesc("Fake", termfont.Description{}), 12)
	require.NoError(t, err)
	assert.Equal(t, key3, key4)
	assert.Equal(t, 2, r.faces.Len())
}

func TestFaceSelection(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "termfont")
	defer teardown()
	//
	r, _ := newFakeRasterizer(t, 1)
	for _, tc := range []struct {
		style    termfont.Style
		expected string
	}{
		{termfont.Description{}, "Regular"},
		{termfont.Description{Weight: termfont.WeightBold}, "Bold"},
		{termfont.Description{Slant: termfont.SlantItalic}, "Italic"},
		{termfont.Description{Slant: termfont.SlantOblique}, "Oblique"},
		{termfont.Specific("Normal"), "Regular"},
		{termfont.Specific("Bold"), "Bold"},
		{termfont.Specific("Italic"), "Italic"},
		{termfont.Specific("Unrecognized"), "Regular"},
		{termfont.Specific("bold"), "Regular"}, // names are case sensitive
	} {
		key, err := r.LoadFont(termfont.NewFontDesc("Fake", tc.style), 12)
		require.NoError(t, err, "style %v", tc.style)
		face, ok := r.faces.Face(key)
		require.True(t, ok)
		assert.Equal(t, tc.expected, face.(*fakeFace).name, "style %v", tc.style)
		name, err := r.FaceName(key)
		require.NoError(t, err)
		assert.Equal(t, "Fake "+tc.expected, name)
	}
}

func TestMissingFont(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "termfont")
	defer teardown()
	//
	r, _ := newFakeRasterizer(t, 1)
	desc := termfont.NewFontDesc("Nonexistent", termfont.Description{})
	_, err := r.LoadFont(desc, 12)
	require.Error(t, err)
	var missing *termfont.MissingFontError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, desc, missing.Desc)
	assert.ErrorIs(t, err, engine.ErrFamilyNotFound)
	assert.Contains(t, err.Error(), "Nonexistent")
	assert.Equal(t, 0, r.faces.Len(), "failed loads must not touch the registry")
	//
	_, err = r.LoadFont(termfont.NewFontDesc("Panic", termfont.Description{}), 12)
	assert.True(t, termfont.IsMissingFont(err), "engine panics should surface as missing fonts")
	assert.Equal(t, 0, r.faces.Len())
}

func TestUnknownKeyFailsClosed(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "termfont")
	defer teardown()
	//
	r, _ := newFakeRasterizer(t, 1)
	other, _ := newFakeRasterizer(t, 1)
	foreign, err := other.LoadFont(termfont.NewFontDesc("Fake", nil), 12)
	require.NoError(t, err)
	for _, key := range []termfont.FontKey{0, foreign, foreign + 1000} {
		m, err := r.Metrics(key, 12)
		assert.ErrorIs(t, err, termfont.ErrFontNotLoaded)
		assert.Zero(t, m)
		g, err := r.GetGlyph(termfont.GlyphKey{FontKey: key, C: 'A', Size: 12})
		assert.ErrorIs(t, err, termfont.ErrFontNotLoaded)
		assert.Nil(t, g.Buf)
		_, err = r.FontDesc(key)
		assert.ErrorIs(t, err, termfont.ErrFontNotLoaded)
		_, err = r.FaceName(key)
		assert.ErrorIs(t, err, termfont.ErrFontNotLoaded)
	}
}

func TestMetrics(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "termfont")
	defer teardown()
	//
	r, _ := newFakeRasterizer(t, 1)
	key, err := r.LoadFont(termfont.NewFontDesc("Fake", nil), 25)
	require.NoError(t, err)
	m, err := r.Metrics(key, 25)
	require.NoError(t, err)
	// scale = 25 / 1600
	assert.InDelta(t, 600.0/64, m.AverageAdvance, 1e-9)
	assert.InDelta(t, (800.0+200+700)/64, m.LineHeight, 1e-9)
	//
	r2, _ := newFakeRasterizer(t, 2)
	key2, err := r2.LoadFont(termfont.NewFontDesc("Fake", nil), 25)
	require.NoError(t, err)
	m2, err := r2.Metrics(key2, 25)
	require.NoError(t, err)
	assert.InDelta(t, 2*m.AverageAdvance, m2.AverageAdvance, 1e-6)
	assert.InDelta(t, 2*m.LineHeight, m2.LineHeight, 1e-6)
}

func TestEnginePanicDuringMetrics(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "termfont")
	defer teardown()
	//
	r, _ := newFakeRasterizer(t, 1)
	key, err := r.LoadFont(termfont.NewFontDesc("Fake", nil), 12)
	require.NoError(t, err)
	face, _ := r.faces.Face(key)
	face.(*fakeFace).panics = true
	defer func() { face.(*fakeFace).panics = false }()
	//
	_, err = r.Metrics(key, 12)
	var engineErr *termfont.EngineError
	require.True(t, errors.As(err, &engineErr), "expected engine error, got %v", err)
	assert.Equal(t, key, engineErr.Key)
	_, err = r.GetGlyph(termfont.GlyphKey{FontKey: key, C: 'A', Size: 12})
	assert.True(t, errors.As(err, &engineErr), "expected engine error, got %v", err)
}

func TestGetGlyph(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "termfont")
	defer teardown()
	//
	r, coll := newFakeRasterizer(t, 1)
	key, err := r.LoadFont(termfont.NewFontDesc("Fake", nil), 25)
	require.NoError(t, err)
	g, err := r.GetGlyph(termfont.GlyphKey{FontKey: key, C: 'A', Size: 25})
	require.NoError(t, err)
	// scale = 25 / (1600/16) = 0.25
	assert.Equal(t, 'A', g.C)
	assert.Equal(t, int32(125), g.Width)
	assert.Equal(t, int32(175), g.Height)
	assert.Equal(t, int32(-12), g.Left)
	assert.Equal(t, int32(175), g.Top)
	assert.Len(t, g.Buf, 125*175)
	//
	rt := coll.lastTarget()
	require.NotNil(t, rt)
	assert.True(t, rt.released, "render target should be released")
	assert.Equal(t, 125, rt.width)
	assert.Equal(t, 175, rt.height)
	assert.Equal(t, float32(1), rt.ppd)
	require.Len(t, rt.draws, 1)
	draw := rt.draws[0]
	assert.Equal(t, float32(-12.5), draw.x)
	assert.Equal(t, float32(175), draw.y)
	assert.Equal(t, engine.MeasuringModeNatural, draw.mode)
	assert.Equal(t, float32(25), draw.emSize)
	assert.Equal(t, []engine.GlyphIndex{1}, draw.glyphs)
	assert.Equal(t, []float32{0}, draw.advances)
	assert.Equal(t, []engine.GlyphOffset{{}}, draw.offsets)
	assert.Equal(t, engine.White, draw.color)
}

func TestGetGlyphWithDPR(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "termfont")
	defer teardown()
	//
	r, coll := newFakeRasterizer(t, 2)
	key, err := r.LoadFont(termfont.NewFontDesc("Fake", nil), 25)
	require.NoError(t, err)
	g, err := r.GetGlyph(termfont.GlyphKey{FontKey: key, C: 'A', Size: 12.5})
	require.NoError(t, err)
	assert.Equal(t, int32(125), g.Width)
	assert.Equal(t, int32(175), g.Height)
	rt := coll.lastTarget()
	assert.Equal(t, float32(2), rt.ppd)
	assert.Equal(t, float32(25), rt.draws[0].emSize)
}

func TestGetGlyphEdgeCases(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "termfont")
	defer teardown()
	//
	r, coll := newFakeRasterizer(t, 1)
	key, err := r.LoadFont(termfont.NewFontDesc("Fake", nil), 25)
	require.NoError(t, err)
	// missing character renders .notdef
	g, err := r.GetGlyph(termfont.GlyphKey{FontKey: key, C: '€', Size: 25})
	require.NoError(t, err)
	assert.Equal(t, '€', g.C)
	assert.Equal(t, int32(100), g.Width)
	assert.Equal(t, int32(150), g.Height)
	assert.Equal(t, []engine.GlyphIndex{engine.NotDef}, coll.lastTarget().draws[0].glyphs)
	// blank glyph
	g, err = r.GetGlyph(termfont.GlyphKey{FontKey: key, C: ' ', Size: 25})
	require.NoError(t, err)
	assert.Zero(t, g.Width)
	assert.Zero(t, g.Height)
	assert.Empty(t, g.Buf)
	// zero size
	g, err = r.GetGlyph(termfont.GlyphKey{FontKey: key, C: 'A', Size: 0})
	require.NoError(t, err)
	assert.Zero(t, g.Width)
}

func TestGetGlyphRejectsHugeBitmaps(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "termfont")
	defer teardown()
	//
	r, coll := newFakeRasterizer(t, 1)
	key, err := r.LoadFont(termfont.NewFontDesc("Fake", nil), 25)
	require.NoError(t, err)
	g, err := r.GetGlyph(termfont.GlyphKey{FontKey: key, C: 'A', Size: 400})
	require.NoError(t, err)
	assert.Equal(t, int32(2000), g.Width)
	targets := len(coll.targets)
	//
	g, err = r.GetGlyph(termfont.GlyphKey{FontKey: key, C: 'A', Size: 1e6})
	var eerr *termfont.EngineError
	require.ErrorAs(t, err, &eerr)
	assert.Equal(t, key, eerr.Key)
	assert.ErrorIs(t, err, errGlyphTooLarge)
	assert.Nil(t, g.Buf)
	assert.Len(t, coll.targets, targets, "no render target for rejected glyphs")
}

func TestSquareBitmaps(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "termfont")
	defer teardown()
	//
	r, _ := newFakeRasterizer(t, 1, WithSquareBitmaps(true))
	key, err := r.LoadFont(termfont.NewFontDesc("Fake", nil), 25)
	require.NoError(t, err)
	g, err := r.GetGlyph(termfont.GlyphKey{FontKey: key, C: 'A', Size: 25})
	require.NoError(t, err)
	assert.Equal(t, int32(125), g.Width)
	assert.Equal(t, int32(125), g.Height)
	assert.Len(t, g.Buf, 125*175, "buffer keeps the height of the render target")
}

func TestFromConfig(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "termfont")
	defer teardown()
	//
	conf := testconfig.Conf{
		ConfCollection:    "builtin",
		ConfDPIX:          "144",
		ConfDPR:           "2",
		ConfSquareBitmaps: "true",
		ConfThinStrokes:   true,
	}
	r, err := FromConfig(conf)
	require.NoError(t, err)
	x, y := r.DPI()
	assert.Equal(t, float32(144), x)
	assert.Equal(t, float32(DefaultDPI), y)
	assert.Equal(t, float32(2), r.DevicePixelRatio())
	assert.True(t, r.squareBitmaps)
	assert.Contains(t, r.Collection().FamilyNames(), "Go Mono")
	//
	_, err = FromConfig(testconfig.Conf{ConfCollection: "builtin", ConfDPR: "x"})
	assert.Error(t, err)
	_, err = FromConfig(testconfig.Conf{ConfCollection: "nosuchthing"})
	assert.Error(t, err)
	_, err = FromConfig(testconfig.Conf{ConfCollection: "builtin", ConfFontFiles: "/does/not/exist.ttf"})
	assert.Error(t, err)
	// fake collections cannot load font files
	_, err = FromConfig(testconfig.Conf{ConfFontFiles: "a.ttf"}, WithCollection(newFakeCollection()))
	assert.Error(t, err)
}
