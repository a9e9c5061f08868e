package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/npillmayer/termfont"
	"github.com/pterm/pterm"
)

// Op is a single step of a command, e.g. "glyph:A:12".
type Op struct {
	code   int
	arg    string
	format string
}

// Command is a sequence of steps, separated by spaces.
type Command struct {
	count int
	op    [32]Op
}

const NOOP = -1
const (
	// op-code QUIT will not have arguments
	QUIT int = iota
	// op-codes below may have arguments
	HELP
	FAMILIES
	LOAD
	SIZE
	METRICS
	GLYPH
	KEYS
)

var opMap = map[string]int{
	"quit":     QUIT,
	"help":     HELP,
	"families": FAMILIES,
	"load":     LOAD,
	"size":     SIZE,
	"metrics":  METRICS,
	"glyph":    GLYPH,
	"keys":     KEYS,
}

var opNames = []string{
	"quit",
	"help",
	"families",
	"load",
	"size",
	"metrics",
	"glyph",
	"keys",
}

var errTooManySteps = errors.New("too many steps in command")

func (intp *Intp) parseCommand(line string) (*Command, error) {
	command := &Command{}
	for i := range command.op {
		command.op[i].code = NOOP
	}
	steps := strings.Fields(line)
	if len(steps) > len(command.op) {
		return nil, errTooManySteps
	}
	command.count = len(steps)
	for i, step := range steps {
		c := strings.Split(step, ":") // e.g.  "load:Go_Mono:Bold" or "glyph:A" or "help:load"
		code, ok := opMap[strings.ToLower(c[0])]
		if !ok {
			code = HELP
		}
		command.op[i].code = code
		if code == QUIT {
			command.count = i + 1
			return command, nil
		}
		command.op[i].arg = getOptArg(c, 1)
		command.op[i].format = getOptArg(c, 2)
		if command.op[i].arg == "" {
			tracer().Debugf("%s", opNames[code])
		} else {
			tracer().Debugf("%s: looking for '%s'", opNames[code], command.op[i].arg)
		}
	}
	return command, nil
}

var commandFn = map[int]func(*Intp, *Op) (error, bool){
	QUIT:     quitOp,
	HELP:     helpOp,
	FAMILIES: familiesOp,
	LOAD:     loadOp,
	SIZE:     sizeOp,
	METRICS:  metricsOp,
	GLYPH:    glyphOp,
	KEYS:     keysOp,
}

func (intp *Intp) execute(cmd *Command) (err error, stop bool) {
	tracer().Debugf("cmd = %v", cmd.op[:cmd.count])
	for _, c := range cmd.op {
		if c.code == NOOP {
			break
		}
		f, ok := commandFn[c.code]
		if !ok {
			pterm.Error.Printf("unknown command code: %d\n", c.code)
			return nil, false
		}
		err, stop = f(intp, &c)
		if err != nil {
			pterm.Error.Println(err)
			return
		}
		if stop {
			return
		}
	}
	return
}

func quitOp(intp *Intp, op *Op) (error, bool) {
	pterm.Println("Goodbye!")
	return nil, true
}

// --- Font Loading -----------------------------------------------------

var errNoFont = errors.New("no font loaded")

// loadOp loads a family, e.g. "load:Go_Mono" or "load:Go:Bold".
// Underscores in family names stand for spaces.
func loadOp(intp *Intp, op *Op) (error, bool) {
	name, ok := op.hasArg()
	if !ok {
		return errors.New("load needs a family name"), false
	}
	var style termfont.Style
	if op.format != "" {
		style = parseStyle(op.format)
	}
	return intp.loadFont(strings.ReplaceAll(name, "_", " "), style), false
}

func (intp *Intp) loadFont(family string, style termfont.Style) error {
	key, err := intp.r.LoadFont(termfont.NewFontDesc(family, style), intp.size)
	if err != nil {
		return err
	}
	intp.key = key
	tracer().Infof("loaded font %q as %s", family, key)
	return nil
}

// parseStyle interprets "bold", "italic", "oblique" and "bolditalic" as
// descriptions; other names are passed on as specific style names.
func parseStyle(s string) termfont.Style {
	switch strings.ToLower(s) {
	case "regular":
		return termfont.Description{}
	case "bold":
		return termfont.Description{Weight: termfont.WeightBold}
	case "italic":
		return termfont.Description{Slant: termfont.SlantItalic}
	case "oblique":
		return termfont.Description{Slant: termfont.SlantOblique}
	case "bolditalic":
		return termfont.Description{Weight: termfont.WeightBold, Slant: termfont.SlantItalic}
	}
	return termfont.Specific(s)
}

func sizeOp(intp *Intp, op *Op) (error, bool) {
	arg, ok := op.hasArg()
	if !ok {
		pterm.Printf("size is %.1fpt\n", intp.size.AsPoints())
		return nil, false
	}
	size, err := parseSize(arg)
	if err != nil {
		return err, false
	}
	intp.size = size
	return nil, false
}

func parseSize(s string) (termfont.Size, error) {
	pts, err := strconv.ParseFloat(s, 32)
	if err != nil || pts <= 0 {
		return 0, fmt.Errorf("invalid size %q", s)
	}
	return termfont.NewSize(float32(pts)), nil
}

// ----------------------------------------------------------------------

func getOptArg(s []string, inx int) string {
	if len(s) > inx {
		return s[inx]
	}
	return ""
}

func (op *Op) hasArg() (string, bool) {
	if op.arg == "" {
		return "", false
	}
	return op.arg, true
}
