package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/npillmayer/termfont"
	"github.com/npillmayer/termfont/rasterizer"
	"github.com/thatisuday/commando"
)

func main() {
	commando.
		SetExecutableName("tf-tools").
		SetVersion("v0.0.1").
		SetDescription("CLI for font rasterization diagnostics.")

	commando.
		Register(nil).
		AddFlag("verbose,V", "display additional output", commando.Bool, nil)

	commando.
		Register("families").
		SetDescription("List the font families of a font collection.").
		SetShortDescription("list families").
		AddFlag("collection,c", "font collection: system|builtin", commando.String, "builtin").
		AddFlag("fontfile,f", "additional font files (comma separated)", commando.String, "-").
		AddFlag("trace,T", "trace level [Debug|Info|Error]", commando.String, "Error").
		AddFlag("verbose,V", "display additional output", commando.Bool, nil).
		SetAction(runFamiliesCommand)

	commando.
		Register("metrics").
		SetDescription("Print the cell metrics of a font at a given size.").
		SetShortDescription("font metrics").
		AddArgument("family", "font family name", "").
		AddFlag("collection,c", "font collection: system|builtin", commando.String, "builtin").
		AddFlag("fontfile,f", "additional font files (comma separated)", commando.String, "-").
		AddFlag("style,s", "specific style name (e.g. Bold), overrides --bold and --italic", commando.String, "-").
		AddFlag("bold,b", "select bold face", commando.Bool, nil).
		AddFlag("italic,i", "select italic face", commando.Bool, nil).
		AddFlag("size,z", "font size in points", commando.String, "12").
		AddFlag("dpr,d", "device pixel ratio", commando.String, "1").
		AddFlag("trace,T", "trace level [Debug|Info|Error]", commando.String, "Error").
		AddFlag("verbose,V", "display additional output", commando.Bool, nil).
		SetAction(runMetricsCommand)

	commando.
		Register("glyph").
		SetDescription("Rasterize glyphs and print them to the terminal or to a PNG image.").
		SetShortDescription("rasterize glyphs").
		AddArgument("family", "font family name", "").
		AddArgument("text...", "characters to rasterize", "").
		AddFlag("codepoints,C", "codepoints instead of text (comma/space separated, e.g. U+0041,U+00E9)", commando.String, "-").
		AddFlag("collection,c", "font collection: system|builtin", commando.String, "builtin").
		AddFlag("fontfile,f", "additional font files (comma separated)", commando.String, "-").
		AddFlag("style,s", "specific style name (e.g. Bold), overrides --bold and --italic", commando.String, "-").
		AddFlag("bold,b", "select bold face", commando.Bool, nil).
		AddFlag("italic,i", "select italic face", commando.Bool, nil).
		AddFlag("size,z", "font size in points", commando.String, "4").
		AddFlag("dpr,d", "device pixel ratio", commando.String, "1").
		AddFlag("output,o", "output PNG file (first character only)", commando.String, "-").
		AddFlag("scale,x", "magnification of PNG output", commando.Int, 1).
		AddFlag("trace,T", "trace level [Debug|Info|Error]", commando.String, "Error").
		AddFlag("verbose,V", "display additional output", commando.Bool, nil).
		SetAction(runGlyphCommand)

	commando.Parse(nil)
}

// --- Setup -----------------------------------------------------------------

// setupTracing routes traces to the Go logger.
func setupTracing(flags map[string]commando.FlagValue) {
	level := mustFlagString(flags["trace"], "trace")
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter":       "go",
		"trace.termfont":        level,
		"trace.termfont.engine": level,
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fatalf("error configuring tracing: %v", err)
	}
	tracing.SetTraceSelector(trace2go.Selector())
}

// mustRasterizer creates a rasterizer from the collection flags.
func mustRasterizer(flags map[string]commando.FlagValue) *rasterizer.Rasterizer {
	setupTracing(flags)
	conf := testconfig.Conf{
		rasterizer.ConfCollection: mustFlagString(flags["collection"], "collection"),
	}
	if files := optionalFlag(flags["fontfile"], "fontfile"); files != "" {
		conf[rasterizer.ConfFontFiles] = files
	}
	if _, ok := flags["dpr"]; ok {
		conf[rasterizer.ConfDPR] = mustFlagString(flags["dpr"], "dpr")
	}
	r, err := rasterizer.FromConfig(conf)
	if err != nil {
		fatalf("cannot create rasterizer: %v", err)
	}
	return r
}

// mustLoadFont loads the font selected by the family argument and the style
// flags.
func mustLoadFont(r *rasterizer.Rasterizer, args map[string]commando.ArgValue,
	flags map[string]commando.FlagValue) (termfont.FontKey, termfont.Size) {
	//
	family := strings.TrimSpace(args["family"].Value)
	if family == "" {
		fatalf("font family is required")
	}
	size := mustSize(flags["size"])
	desc := termfont.NewFontDesc(family, styleFromFlags(flags))
	key, err := r.LoadFont(desc, size)
	if err != nil {
		fatalf("%v", err)
	}
	return key, size
}

func styleFromFlags(flags map[string]commando.FlagValue) termfont.Style {
	if name := optionalFlag(flags["style"], "style"); name != "" {
		return termfont.Specific(name)
	}
	d := termfont.Description{}
	if mustFlagBool(flags["bold"], "bold") {
		d.Weight = termfont.WeightBold
	}
	if mustFlagBool(flags["italic"], "italic") {
		d.Slant = termfont.SlantItalic
	}
	return d
}

// --- Flag helpers ----------------------------------------------------------

func mustSize(flag commando.FlagValue) termfont.Size {
	s := mustFlagString(flag, "size")
	pts, err := strconv.ParseFloat(strings.TrimSpace(s), 32)
	if err != nil || pts <= 0 {
		fatalf("invalid --size %q: must be a positive number", s)
	}
	return termfont.NewSize(float32(pts))
}

func parseCodepoints(list string) ([]rune, error) {
	parts := splitCSVSpace(list)
	out := make([]rune, 0, len(parts))
	for _, p := range parts {
		r, err := parseCodepointToken(p)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

func parseCodepointToken(token string) (rune, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return 0, errors.New("empty codepoint token")
	}
	hex := token
	switch {
	case strings.HasPrefix(hex, "U+"), strings.HasPrefix(hex, "u+"):
		hex = hex[2:]
	case strings.HasPrefix(hex, "0x"), strings.HasPrefix(hex, "0X"):
		hex = hex[2:]
	}
	u, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid codepoint %q: %w", token, err)
	}
	if u > 0x10FFFF {
		return 0, fmt.Errorf("codepoint %q out of range", token)
	}
	return rune(u), nil
}

func splitCSVSpace(list string) []string {
	return strings.FieldsFunc(list, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
}

// optionalFlag returns the value of a string flag, with "-" meaning unset.
func optionalFlag(flag commando.FlagValue, name string) string {
	s := strings.TrimSpace(mustFlagString(flag, name))
	if s == "-" {
		return ""
	}
	return s
}

func mustFlagString(flag commando.FlagValue, name string) string {
	s, err := flag.GetString()
	if err != nil {
		fatalf("invalid --%s flag: %v", name, err)
	}
	return s
}

func mustFlagInt(flag commando.FlagValue, name string) int {
	n, err := flag.GetInt()
	if err != nil {
		fatalf("invalid --%s flag: %v", name, err)
	}
	return n
}

func mustFlagBool(flag commando.FlagValue, name string) bool {
	b, err := flag.GetBool()
	if err != nil {
		fatalf("invalid --%s flag: %v", name, err)
	}
	return b
}

func fatalf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(os.Stderr, "tf-tools: "+format+"\n", args...)
	os.Exit(1)
}
