package main

import (
	"strings"

	"github.com/pterm/pterm"
)

func helpOp(intp *Intp, op *Op) (error, bool) {
	help(op.arg)
	return nil, false
}

func help(topic string) {
	tracer().Debugf("help %v", topic)
	t := strings.ToLower(topic)
	switch t {
	case "load", "style", "styles":
		pterm.Info.Println("load:<family>[:<style>]")
		pterm.Println(`
	Loads a font family and makes it the current font.
	Underscores in the family name stand for spaces, e.g. load:Go_Mono.
	Styles regular, bold, italic, oblique and bolditalic select the
	closest matching face. Any other style is taken as a specific style
	name; unknown style names select the regular face.
	`)
	case "glyph", "glyphs":
		pterm.Info.Println("glyph:<char>[:full]")
		pterm.Println(`
	Rasterizes a character of the current font at the current size.
	Characters may be given literally or as code-points, e.g. glyph:U+00E9.
	Empty rows are trimmed, unless the format 'full' is given.
	`)
	case "metrics", "size":
		pterm.Info.Println("metrics[:<size>], size[:<size>]")
		pterm.Println(`
	metrics prints the average advance and line height of the current font,
	in device pixels. size sets the size in points for subsequent commands.
	`)
	default:
		pterm.Info.Println("Commands")
		pterm.Println(`
	families[:<prefix>]   list font families
	load:<family>[:style] load a font
	size[:<points>]       show or set the font size
	metrics[:<points>]    print font metrics
	glyph:<char>[:full]   rasterize a glyph
	keys                  list loaded fonts
	help[:<topic>]        help on load, glyph or metrics
	quit                  leave
	`)
	}
}
