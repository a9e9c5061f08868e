package rasterizer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/npillmayer/schuko"
	"github.com/npillmayer/termfont/engine"
	"github.com/npillmayer/termfont/engine/gotext"
)

// Option configures the creation of a Rasterizer.
type Option func(*config)

type config struct {
	collection    engine.Collection
	builtin       bool
	cacheDir      string
	squareBitmaps bool
	fontFiles     []string
}

// WithCollection makes a rasterizer use coll instead of the system font
// collection.
func WithCollection(coll engine.Collection) Option {
	return func(c *config) {
		c.collection = coll
	}
}

// WithBuiltinFonts makes a rasterizer use the Go fonts instead of the system
// font collection.
func WithBuiltinFonts() Option {
	return func(c *config) {
		c.builtin = true
	}
}

// WithCacheDir sets the directory for the index of system fonts.
// The default is a platform dependent user cache directory.
func WithCacheDir(dir string) Option {
	return func(c *config) {
		c.cacheDir = dir
	}
}

// WithSquareBitmaps makes GetGlyph report the width of a glyph bitmap as
// its height. The buffer still has the computed height.
func WithSquareBitmaps(square bool) Option {
	return func(c *config) {
		c.squareBitmaps = square
	}
}

// WithFontFiles adds font files (or collections) to the font collection.
// The collection has to support adding files, as the go-text collections do.
func WithFontFiles(paths ...string) Option {
	return func(c *config) {
		c.fontFiles = append(c.fontFiles, paths...)
	}
}

// fontFileAdder is implemented by collections which may be extended by font
// files.
type fontFileAdder interface {
	AddFontFile(path string, family string) error
}

func (c *config) openCollection() (engine.Collection, error) {
	coll := c.collection
	if coll == nil {
		if c.builtin {
			coll = gotext.BuiltinCollection()
		} else {
			sys, err := gotext.SystemCollection(c.cacheDir)
			if err != nil {
				return nil, err
			}
			coll = sys
		}
	}
	if len(c.fontFiles) == 0 {
		return coll, nil
	}
	adder, ok := coll.(fontFileAdder)
	if !ok {
		return nil, fmt.Errorf("font collection of type %T cannot load font files", coll)
	}
	for _, path := range c.fontFiles {
		if err := adder.AddFontFile(path, ""); err != nil {
			return nil, fmt.Errorf("loading font file: %w", err)
		}
		tracer().Infof("added font file %s", path)
	}
	return coll, nil
}

// --- Configuration ---------------------------------------------------------

// Configuration keys read by FromConfig.
const (
	ConfCollection    = "font.collection" // "system" (default) or "builtin"
	ConfCacheDir      = "font.cachedir"
	ConfDPIX          = "font.dpi.x"
	ConfDPIY          = "font.dpi.y"
	ConfDPR           = "font.dpr"
	ConfThinStrokes   = "font.thinstrokes"
	ConfSquareBitmaps = "font.squarebitmaps"
	ConfFontFiles     = "font.files" // comma separated list of paths
)

// Defaults for unset configuration keys.
const (
	DefaultDPI = 96
	DefaultDPR = 1.0
)

// FromConfig creates a rasterizer from configuration values. Unset keys take
// their defaults. Additional options are applied after the configuration.
func FromConfig(conf schuko.Configuration, opts ...Option) (*Rasterizer, error) {
	dpiX, dpiY := float32(DefaultDPI), float32(DefaultDPI)
	if conf.IsSet(ConfDPIX) {
		dpiX = float32(conf.GetInt(ConfDPIX))
	}
	if conf.IsSet(ConfDPIY) {
		dpiY = float32(conf.GetInt(ConfDPIY))
	}
	dpr := float32(DefaultDPR)
	if conf.IsSet(ConfDPR) {
		v, err := strconv.ParseFloat(conf.GetString(ConfDPR), 32)
		if err != nil {
			return nil, fmt.Errorf("configuration %s: %w", ConfDPR, err)
		}
		dpr = float32(v)
	}
	var confOpts []Option
	switch coll := conf.GetString(ConfCollection); coll {
	case "", "system":
	case "builtin":
		confOpts = append(confOpts, WithBuiltinFonts())
	default:
		return nil, fmt.Errorf("configuration %s: unknown font collection %q", ConfCollection, coll)
	}
	if conf.IsSet(ConfCacheDir) {
		confOpts = append(confOpts, WithCacheDir(conf.GetString(ConfCacheDir)))
	}
	confOpts = append(confOpts, WithSquareBitmaps(conf.GetBool(ConfSquareBitmaps)))
	for _, path := range strings.Split(conf.GetString(ConfFontFiles), ",") {
		if path = strings.TrimSpace(path); path != "" {
			confOpts = append(confOpts, WithFontFiles(path))
		}
	}
	return New(dpiX, dpiY, dpr, conf.GetBool(ConfThinStrokes), append(confOpts, opts...)...)
}
