package termfont

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func TestFontDescAsMapKey(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "termfont")
	defer teardown()
	//
	keys := map[FontDesc]int{}
	keys[NewFontDesc("Go Mono", Description{Slant: SlantItalic, Weight: WeightBold})] = 1
	keys[NewFontDesc("Go Mono", Specific("Bold"))] = 2
	keys[NewFontDesc("Go Mono", nil)] = 3
	assert.Equal(t, 1, keys[FontDesc{Name: "Go Mono", Style: Description{Slant: SlantItalic, Weight: WeightBold}}])
	assert.Equal(t, 2, keys[FontDesc{Name: "Go Mono", Style: Specific("Bold")}])
	assert.Equal(t, 3, keys[FontDesc{Name: "Go Mono", Style: Description{}}])
	assert.Len(t, keys, 3)
}

func TestFontDescNormalized(t *testing.T) {
	desc := FontDesc{Name: "Go"}
	assert.Equal(t, FontDesc{Name: "Go", Style: Description{}}, desc.Normalized())
	assert.Equal(t, "name 'Go' and style '<none>'", desc.String())
	assert.Equal(t, "name 'Go' and style 'Italic Bold'",
		NewFontDesc("Go", Description{Slant: SlantItalic, Weight: WeightBold}).String())
	assert.Equal(t, "name 'Go' and style 'Book'", NewFontDesc("Go", Specific("Book")).String())
}

func TestFontKeysAreUnique(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "termfont")
	defer teardown()
	//
	seen := map[FontKey]bool{}
	for i := 0; i < 100; i++ {
		k := NextFontKey()
		assert.False(t, seen[k], "font key %s issued twice", k)
		assert.NotZero(t, k)
		seen[k] = true
	}
}

func TestFontKeysDoNotWrapAt32Bits(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "termfont")
	defer teardown()
	//
	const boundary = uint64(math.MaxUint32)
	if lastFontKey.Load() < boundary-1 {
		lastFontKey.Store(boundary - 1)
	}
	k1 := NextFontKey()
	k2 := NextFontKey()
	k3 := NextFontKey()
	assert.NotZero(t, k2)
	assert.NotZero(t, k3)
	assert.Less(t, uint64(k1), uint64(k2))
	assert.Less(t, uint64(k2), uint64(k3))
	assert.Greater(t, uint64(k3), boundary)
	assert.Equal(t, "FontKey(4294967296)", FontKey(boundary+1).String())
}

func TestErrors(t *testing.T) {
	cause := errors.New("no such family")
	err := fmt.Errorf("loading: %w", MissingFont(NewFontDesc("Nope", nil), cause))
	assert.True(t, IsMissingFont(err))
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "name 'Nope'")
	assert.Contains(t, err.Error(), "check the font configuration")
	//
	assert.False(t, IsMissingFont(ErrFontNotLoaded))
	eerr := &EngineError{Op: "metrics", Key: 7, Err: cause}
	assert.ErrorIs(t, eerr, cause)
	assert.Contains(t, eerr.Error(), "FontKey(7)")
}

func TestRasterizedGlyphAt(t *testing.T) {
	g := RasterizedGlyph{C: 'x', Width: 2, Height: 2, Buf: []byte{1, 2, 3, 4}}
	assert.Equal(t, uint8(1), g.At(0, 0))
	assert.Equal(t, uint8(4), g.At(1, 1))
	assert.Equal(t, uint8(0), g.At(2, 0))
	assert.Equal(t, uint8(0), g.At(0, 5))
	assert.Equal(t, uint8(0), g.At(-1, 0))
}
