/*
Package glyphview displays rasterized glyphs for diagnostic tools.

Glyphs may be printed as lines of shade characters or written to PNG images,
with black ink on white background.
*/
package glyphview

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-text/typesetting/language"
	"github.com/npillmayer/termfont"
	"golang.org/x/text/unicode/runenames"
)

// shades maps coverage to characters, from blank to full.
var shades = []rune{' ', '░', '▒', '▓', '█'}

// Shade returns the character for a coverage value.
func Shade(coverage uint8) rune {
	return shades[int(coverage)*(len(shades)-1)/255]
}

// Lines renders the coverage mask of g as lines of shade characters, one
// line per row of the mask. Rows without any ink at the top and bottom are
// dropped if trim is set.
func Lines(g termfont.RasterizedGlyph, trim bool) []string {
	rows := rowCount(g)
	lines := make([]string, 0, rows)
	for y := 0; y < rows; y++ {
		var sb strings.Builder
		for x := 0; x < int(g.Width); x++ {
			sb.WriteRune(Shade(g.At(x, y)))
		}
		lines = append(lines, sb.String())
	}
	if !trim {
		return lines
	}
	blank := func(l string) bool { return strings.TrimLeft(l, " ") == "" }
	for len(lines) > 0 && blank(lines[0]) {
		lines = lines[1:]
	}
	for len(lines) > 0 && blank(lines[len(lines)-1]) {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// rowCount is the number of rows in the buffer of g, which may differ from
// g.Height for square bitmaps.
func rowCount(g termfont.RasterizedGlyph) int {
	if g.Width <= 0 {
		return 0
	}
	return len(g.Buf) / int(g.Width)
}

// Image converts g to a gray image, magnified by scale.
func Image(g termfont.RasterizedGlyph, scale int) *image.Gray {
	if scale < 1 {
		scale = 1
	}
	w, h := int(g.Width), rowCount(g)
	img := image.NewGray(image.Rect(0, 0, w*scale, h*scale))
	for y := 0; y < h*scale; y++ {
		for x := 0; x < w*scale; x++ {
			img.SetGray(x, y, color.Gray{Y: 255 - g.At(x/scale, y/scale)})
		}
	}
	return img
}

// WritePNG writes g, magnified by scale, to a PNG file. Missing directories
// are created.
func WritePNG(path string, g termfont.RasterizedGlyph, scale int) error {
	if g.Width <= 0 || rowCount(g) == 0 {
		return fmt.Errorf("glyph %q has no pixels", g.C)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("cannot create output directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create output file: %w", err)
	}
	defer f.Close()
	if err := png.Encode(f, Image(g, scale)); err != nil {
		return fmt.Errorf("cannot encode png: %w", err)
	}
	return nil
}

// RuneInfo describes a character by code-point, Unicode name and script.
func RuneInfo(r rune) string {
	name := runenames.Name(r)
	if name == "" {
		name = "<unnamed>"
	}
	return fmt.Sprintf("%U %s (%s)", r, name, language.LookupScript(r))
}
