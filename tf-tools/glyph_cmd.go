package main

import (
	"fmt"
	"strings"

	"github.com/npillmayer/termfont"
	"github.com/npillmayer/termfont/glyphcache"
	"github.com/npillmayer/termfont/internal/glyphview"
	"github.com/pterm/pterm"
	"github.com/thatisuday/commando"
)

func runGlyphCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	r := mustRasterizer(flags)
	key, size := mustLoadFont(r, args, flags)
	input, err := parseGlyphInput(args["text"], flags["codepoints"])
	if err != nil {
		fatalf("%v", err)
	}
	if len(input) == 0 {
		fatalf("no characters given")
	}
	verbose := mustFlagBool(flags["verbose"], "verbose")
	outPath := optionalFlag(flags["output"], "output")
	scale := mustFlagInt(flags["scale"], "scale")
	if scale <= 0 {
		fatalf("--scale must be > 0")
	}
	// repeated characters are rasterized once
	cache := glyphcache.New(r, len(input))
	for i, c := range input {
		g, err := cache.Get(termfont.GlyphKey{FontKey: key, C: c, Size: size})
		if err != nil {
			fatalf("%v", err)
		}
		if outPath != "" {
			if i > 0 {
				break
			}
			if err := glyphview.WritePNG(outPath, g, scale); err != nil {
				fatalf("render failed: %v", err)
			}
			fmt.Printf("wrote %s (%s, %d × %d)\n", outPath, glyphview.RuneInfo(c), g.Width, g.Height)
			continue
		}
		pterm.Info.Printf("%s: %d × %d, left=%d, top=%d\n", glyphview.RuneInfo(c), g.Width, g.Height, g.Left, g.Top)
		for _, line := range glyphview.Lines(g, !verbose) {
			fmt.Println(line)
		}
	}
	if verbose {
		hits, misses := cache.Stats()
		fmt.Printf("glyph cache: %d hits, %d misses\n", hits, misses)
	}
}

func parseGlyphInput(textArg commando.ArgValue, cpFlag commando.FlagValue) ([]rune, error) {
	cp, err := cpFlag.GetString()
	if err != nil {
		return nil, fmt.Errorf("invalid --codepoints flag: %w", err)
	}
	cp = strings.TrimSpace(cp)
	if cp != "" && cp != "-" {
		return parseCodepoints(cp)
	}
	// commando joins variadic argument parts by comma
	return []rune(strings.ReplaceAll(textArg.Value, ",", "")), nil
}
