package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/npillmayer/termfont"
	"github.com/npillmayer/termfont/internal/glyphview"
	"github.com/pterm/pterm"
)

func familiesOp(intp *Intp, op *Op) (error, bool) {
	names := intp.r.Collection().FamilyNames()
	if prefix, ok := op.hasArg(); ok {
		names = slices.DeleteFunc(names, func(name string) bool {
			return !strings.HasPrefix(strings.ToLower(name), strings.ToLower(prefix))
		})
	}
	pterm.Printf("%d families\n", len(names))
	for _, name := range names {
		pterm.Println(name)
	}
	return nil, false
}

// metricsOp prints the metrics of the current font, optionally at a size
// given as argument.
func metricsOp(intp *Intp, op *Op) (error, bool) {
	if intp.key == 0 {
		return errNoFont, false
	}
	size := intp.size
	if arg, ok := op.hasArg(); ok {
		var err error
		if size, err = parseSize(arg); err != nil {
			return err, false
		}
	}
	m, err := intp.r.Metrics(intp.key, size)
	if err != nil {
		return err, false
	}
	data := [][]string{
		{"Size", "Average advance", "Line height"},
		{fmt.Sprintf("%.1fpt", size.AsPoints()), fmt.Sprintf("%.3f", m.AverageAdvance), fmt.Sprintf("%.3f", m.LineHeight)},
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	return nil, false
}

// glyphOp rasterizes a character of the current font, e.g. "glyph:A" or
// "glyph:U+00E9:full".
func glyphOp(intp *Intp, op *Op) (error, bool) {
	if intp.key == 0 {
		return errNoFont, false
	}
	arg, ok := op.hasArg()
	if !ok {
		return fmt.Errorf("glyph needs a character"), false
	}
	c, err := parseChar(arg)
	if err != nil {
		return err, false
	}
	gk := termfont.GlyphKey{FontKey: intp.key, C: c, Size: intp.size}
	cached := ""
	if intp.cache.Contains(gk) {
		cached = " (cached)"
	}
	g, err := intp.cache.Get(gk)
	if err != nil {
		return err, false
	}
	pterm.Info.Printf("%s: %d × %d, left=%d, top=%d%s\n", glyphview.RuneInfo(c), g.Width, g.Height, g.Left, g.Top, cached)
	for _, line := range glyphview.Lines(g, op.format != "full") {
		pterm.Println(line)
	}
	return nil, false
}

// parseChar accepts a single character or a code-point in U+ notation.
func parseChar(s string) (rune, error) {
	if r := []rune(s); len(r) == 1 {
		return r[0], nil
	}
	if strings.HasPrefix(s, "U+") || strings.HasPrefix(s, "u+") {
		var r rune
		if _, err := fmt.Sscanf(s[2:], "%x", &r); err == nil && r <= 0x10FFFF {
			return r, nil
		}
	}
	return 0, fmt.Errorf("not a character: %q", s)
}

// keysOp lists the fonts loaded so far.
func keysOp(intp *Intp, op *Op) (error, bool) {
	hits, misses := intp.cache.Stats()
	pterm.DefaultTable.WithHasHeader().WithData(intp.fontTable()).Render()
	pterm.Printf("glyph cache: %d of %d glyphs, %d hits, %d misses\n",
		intp.cache.Len(), intp.cache.Capacity(), hits, misses)
	return nil, false
}

// fontTable has a header row and a row per loaded font.
func (intp *Intp) fontTable() [][]string {
	data := [][]string{{"Key", "Font", "Face"}}
	for _, key := range intp.r.Fonts() {
		desc, _ := intp.r.FontDesc(key)
		face, err := intp.r.FaceName(key)
		if err != nil {
			face = err.Error()
		}
		data = append(data, []string{key.String(), desc.String(), face})
	}
	return data
}
