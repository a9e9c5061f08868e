package rasterizer

import (
	"fmt"
	"strings"

	"github.com/npillmayer/termfont/engine"
)

// A fake font engine with a single family "Fake" and exactly representable
// metrics. Design units per em is 1600, so the reference scale at size 25 is
// 25 / (1600/16) = 0.25.

type fakeCollection struct {
	families map[string]*fakeFamily
	targets  []*fakeTarget
}

func newFakeCollection() *fakeCollection {
	regular := newFakeFace("Regular")
	return &fakeCollection{
		families: map[string]*fakeFamily{
			"fake": {
				name: "Fake",
				faces: map[fakeQuery]*fakeFace{
					{engine.FontWeightRegular, engine.FontStyleNormal}:  regular,
					{engine.FontWeightBold, engine.FontStyleNormal}:     newFakeFace("Bold"),
					{engine.FontWeightRegular, engine.FontStyleItalic}:  newFakeFace("Italic"),
					{engine.FontWeightRegular, engine.FontStyleOblique}: newFakeFace("Oblique"),
				},
			},
			"panic": {name: "Panic", panics: true},
		},
	}
}

func (c *fakeCollection) FamilyByName(name string) (engine.Family, error) {
	fam, ok := c.families[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", engine.ErrFamilyNotFound, name)
	}
	return fam, nil
}

func (c *fakeCollection) FamilyNames() []string {
	return []string{"Fake", "Panic"}
}

func (c *fakeCollection) NewRenderTarget(width, height int) (engine.RenderTarget, error) {
	rt := &fakeTarget{width: width, height: height}
	c.targets = append(c.targets, rt)
	return rt, nil
}

func (c *fakeCollection) lastTarget() *fakeTarget {
	if len(c.targets) == 0 {
		return nil
	}
	return c.targets[len(c.targets)-1]
}

type fakeQuery struct {
	weight engine.FontWeight
	style  engine.FontStyle
}

type fakeFamily struct {
	name   string
	faces  map[fakeQuery]*fakeFace
	panics bool
}

func (fam *fakeFamily) Name() string { return fam.name }

func (fam *fakeFamily) FirstMatchingFace(weight engine.FontWeight, stretch engine.FontStretch,
	style engine.FontStyle) (engine.Face, error) {
	//
	if fam.panics {
		panic("font engine exploded")
	}
	if stretch != engine.FontStretchNormal {
		return nil, engine.ErrNoMatchingFace
	}
	face, ok := fam.faces[fakeQuery{weight, style}]
	if !ok {
		return nil, engine.ErrNoMatchingFace
	}
	return face, nil
}

type fakeFace struct {
	name   string
	panics bool
}

func newFakeFace(name string) *fakeFace {
	return &fakeFace{name: name}
}

func (f *fakeFace) FullName() string {
	return "Fake " + f.name
}

func (f *fakeFace) Metrics() engine.FontMetrics {
	if f.panics {
		panic("metrics exploded")
	}
	return engine.FontMetrics{
		DesignUnitsPerEm: 1600,
		Ascent:           800,
		Descent:          -200,
		LineGap:          0,
		CapHeight:        700,
		XHeight:          500,
	}
}

// GlyphIndices maps 'A' to 1, ' ' to 2 and everything else to .notdef.
func (f *fakeFace) GlyphIndices(codepoints []rune) []engine.GlyphIndex {
	gids := make([]engine.GlyphIndex, len(codepoints))
	for i, r := range codepoints {
		switch r {
		case 'A':
			gids[i] = 1
		case ' ':
			gids[i] = 2
		}
	}
	return gids
}

func (f *fakeFace) DesignGlyphMetrics(glyphs []engine.GlyphIndex, isSideways bool) []engine.GlyphMetrics {
	gms := make([]engine.GlyphMetrics, len(glyphs))
	for i, g := range glyphs {
		switch g {
		case 1: // ink box 500 × 700
			gms[i] = engine.GlyphMetrics{
				LeftSideBearing:   50,
				AdvanceWidth:      600,
				RightSideBearing:  50,
				TopSideBearing:    100,
				AdvanceHeight:     1000,
				BottomSideBearing: 200,
				VerticalOriginY:   800,
			}
		case 2: // no ink
			gms[i] = engine.GlyphMetrics{
				LeftSideBearing:   600,
				AdvanceWidth:      600,
				RightSideBearing:  0,
				TopSideBearing:    1000,
				AdvanceHeight:     1000,
				BottomSideBearing: 0,
				VerticalOriginY:   800,
			}
		default: // .notdef, ink box 400 × 600
			gms[i] = engine.GlyphMetrics{
				LeftSideBearing:   100,
				AdvanceWidth:      600,
				RightSideBearing:  100,
				TopSideBearing:    200,
				AdvanceHeight:     1000,
				BottomSideBearing: 200,
				VerticalOriginY:   800,
			}
		}
	}
	return gms
}

type fakeTarget struct {
	width, height int
	ppd           float32
	released      bool
	draws         []fakeDraw
}

type fakeDraw struct {
	x, y     float32
	mode     engine.MeasuringMode
	emSize   float32
	glyphs   []engine.GlyphIndex
	advances []float32
	offsets  []engine.GlyphOffset
	color    engine.Color
}

func (rt *fakeTarget) Size() (int, int) { return rt.width, rt.height }

func (rt *fakeTarget) SetPixelsPerDip(ppd float32) { rt.ppd = ppd }

func (rt *fakeTarget) DrawGlyphRun(x, y float32, mode engine.MeasuringMode, face engine.Face,
	emSize float32, glyphs []engine.GlyphIndex, advances []float32, offsets []engine.GlyphOffset,
	color engine.Color) error {
	//
	if rt.released {
		return fmt.Errorf("render target has been released")
	}
	rt.draws = append(rt.draws, fakeDraw{x, y, mode, emSize, glyphs, advances, offsets, color})
	return nil
}

// Mask returns full coverage everywhere.
func (rt *fakeTarget) Mask() []byte {
	buf := make([]byte, rt.width*rt.height)
	for i := range buf {
		buf[i] = 0xff
	}
	return buf
}

func (rt *fakeTarget) Release() { rt.released = true }
