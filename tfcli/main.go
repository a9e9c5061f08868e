package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/npillmayer/termfont"
	"github.com/npillmayer/termfont/glyphcache"
	"github.com/npillmayer/termfont/rasterizer"
	"github.com/pterm/pterm"
)

// tracer traces with key 'termfont.cli'
func tracer() tracing.Trace {
	return tracing.Select("termfont.cli")
}

func main() {
	initDisplay()

	// set up logging
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter":       "go",
		"trace.termfont.cli":    "Info",
		"trace.termfont":        "Error",
		"trace.termfont.engine": "Error",
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Printf("error configuring tracing")
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())

	// command line flags
	tlevel := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	collection := flag.String("collection", "builtin", "Font collection [system|builtin]")
	cachedir := flag.String("cachedir", "", "Directory for the system font index")
	fontfiles := flag.String("fontfile", "", "Additional font files, comma separated")
	dpr := flag.String("dpr", "1", "Device pixel ratio")
	square := flag.Bool("square", false, "Report glyph bitmaps as square")
	fontname := flag.String("font", "", "Font family to load")
	flag.Parse()
	tracer().SetTraceLevel(tracing.LevelError)     // will set the correct level later
	pterm.Info.Println("Welcome to the termfont CLI") // colored welcome message
	//
	// set up rasterizer
	rconf := testconfig.Conf{
		rasterizer.ConfCollection:    *collection,
		rasterizer.ConfDPR:           *dpr,
		rasterizer.ConfSquareBitmaps: *square,
		rasterizer.ConfFontFiles:     *fontfiles,
	}
	if *cachedir != "" {
		rconf[rasterizer.ConfCacheDir] = *cachedir
	}
	r, err := rasterizer.FromConfig(rconf)
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(2)
	}
	//
	// set up REPL
	repl, err := readline.New("tf > ")
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	intp := NewIntp(r, repl)
	//
	// load font to use
	if *fontname != "" { // font name provided by flag
		if err := intp.loadFont(*fontname, nil); err != nil {
			tracer().Errorf(err.Error())
			os.Exit(4)
		}
	}
	//
	// start receiving commands
	pterm.Info.Println("Quit with <ctrl>D") // inform user how to stop the CLI
	switch *tlevel {
	case "Debug":
		tracer().SetTraceLevel(tracing.LevelDebug)
	case "Info":
		tracer().SetTraceLevel(tracing.LevelInfo)
	case "Error":
		tracer().SetTraceLevel(tracing.LevelError)
	default:
		tracer().Errorf("Invalid trace level: %s", *tlevel)
		os.Exit(5)
	}
	tracer().Infof("Trace level is %s", *tlevel)
	intp.REPL() // go into interactive mode
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// Intp is our interpreter object
type Intp struct {
	r     *rasterizer.Rasterizer
	cache *glyphcache.Cache
	repl  *readline.Instance
	key   termfont.FontKey // current font, 0 if none loaded
	size  termfont.Size
}

// NewIntp creates an interpreter for a rasterizer. repl may be nil for
// non-interactive use.
func NewIntp(r *rasterizer.Rasterizer, repl *readline.Instance) *Intp {
	return &Intp{
		r:     r,
		cache: glyphcache.New(r, 256),
		repl:  repl,
		size:  termfont.NewSize(12),
	}
}

func (intp *Intp) String() string {
	if intp == nil || intp.key == 0 {
		return "( no font )"
	}
	desc, err := intp.r.FontDesc(intp.key)
	if err != nil {
		return "( no font )"
	}
	return fmt.Sprintf("( %s, %s @ %.1fpt )", intp.key, desc, intp.size.AsPoints())
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		pterm.Println(intp.String())
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		cmd, err := intp.parseCommand(line)
		if err != nil {
			tracer().Errorf(err.Error())
			continue
		}
		err, quit := intp.execute(cmd)
		if err != nil {
			tracer().Errorf(err.Error())
			continue
		}
		if quit {
			break
		}
	}
	pterm.Info.Println("Good bye!")
}
