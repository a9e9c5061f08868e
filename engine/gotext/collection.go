/*
Package gotext implements a font engine on top of go-text/typesetting.

System fonts are enumerated with package fontscan, which keeps an on-disk
index of the font files found in the platform's font directories. Faces are
parsed lazily, on first selection. Glyphs are drawn with the vector
rasterizer of golang.org/x/image/vector.

Collections are not safe for concurrent use.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package gotext

import (
	"fmt"
	"slices"

	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/fontscan"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/termfont/engine"
	"github.com/npillmayer/termfont/internal/fontload"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/gomediumitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"
	"golang.org/x/image/font/gofont/goregular"
)

// tracer writes to trace with key 'termfont.engine'
func tracer() tracing.Trace {
	return tracing.Select("termfont.engine")
}

// Collection is a set of font families, either enumerated from the system
// or populated manually.
type Collection struct {
	families map[string]*Family // keyed by normalized family name
	order    []string           // normalized names in insertion order
}

var _ engine.Collection = (*Collection)(nil)

// NewCollection creates an empty collection. Populate it with AddFontData
// or AddFontFile.
func NewCollection() *Collection {
	return &Collection{families: make(map[string]*Family)}
}

// SystemCollection enumerates the fonts installed on the system. Scanning
// the font directories is slow the first time; an index is stored below
// cacheDir to speed up subsequent calls. If cacheDir is empty, a platform
// dependent default is used.
func SystemCollection(cacheDir string) (*Collection, error) {
	footprints, err := fontscan.SystemFonts(scanLogger{}, cacheDir)
	if err != nil {
		return nil, fmt.Errorf("scanning system fonts: %w", err)
	}
	c := NewCollection()
	// footprints carry normalized family names
	for _, fp := range footprints {
		c.add(fp.Family, &member{
			aspect:   fp.Aspect,
			location: fp.Location,
		})
	}
	tracer().Infof("system font collection has %d families in %d fonts", len(c.order), len(footprints))
	return c, nil
}

// BuiltinCollection returns a collection of the Go fonts, with families
// "Go" and "Go Mono". It does not touch the file system.
func BuiltinCollection() *Collection {
	c := NewCollection()
	builtin := []struct {
		id   string
		data []byte
	}{
		{"goregular", goregular.TTF},
		{"gobold", gobold.TTF},
		{"goitalic", goitalic.TTF},
		{"gobolditalic", gobolditalic.TTF},
		{"gomedium", gomedium.TTF},
		{"gomediumitalic", gomediumitalic.TTF},
		{"gomono", gomono.TTF},
		{"gomonobold", gomonobold.TTF},
		{"gomonoitalic", gomonoitalic.TTF},
		{"gomonobolditalic", gomonobolditalic.TTF},
	}
	for _, b := range builtin {
		if err := c.AddFontData(b.id, b.data, ""); err != nil {
			// the Go fonts are known to be valid
			panic(fmt.Sprintf("builtin font %s: %v", b.id, err))
		}
	}
	return c
}

// AddFontData adds the fonts contained in data (a single font or a
// collection). If family is not empty, it replaces the family name found in
// the font.
func (c *Collection) AddFontData(id string, data []byte, family string) error {
	ff, err := fontload.ParseFontFile(id, data)
	if err != nil {
		return err
	}
	return c.addFontFile(ff, family)
}

// AddFontFile loads a font file (or collection) from disk and adds its
// fonts. If family is not empty, it replaces the family name found in the
// font.
func (c *Collection) AddFontFile(path string, family string) error {
	ff, err := fontload.LoadFontFile(path)
	if err != nil {
		return err
	}
	return c.addFontFile(ff, family)
}

func (c *Collection) addFontFile(ff *fontload.FontFile, family string) error {
	descs, err := ff.Describe()
	if err != nil {
		return err
	}
	if len(descs) != ff.Count() {
		return fmt.Errorf("font %s: %d fonts described, %d fonts named", ff.Path, len(descs), ff.Count())
	}
	for i, desc := range descs {
		name := desc.Family
		if family != "" {
			name = family
		}
		if name == "" {
			tracer().Errorf("font %s[%d] has no family name, skipping", ff.Path, i)
			continue
		}
		aspect := desc.Aspect
		aspect.SetDefaults()
		c.add(name, &member{
			aspect:   aspect,
			location: fontscan.Location{File: ff.Path, Index: uint16(i)},
			file:     ff,
		})
		tracer().Debugf("added font %q as family %q (%v)", ff.Names[i], name, aspect)
	}
	return nil
}

func (c *Collection) add(family string, m *member) {
	key := font.NormalizeFamily(family)
	fam, ok := c.families[key]
	if !ok {
		fam = &Family{name: family}
		c.families[key] = fam
		c.order = append(c.order, key)
	}
	fam.members = append(fam.members, m)
}

// FamilyByName returns the family called name. Family names are compared
// in normalized form, i.e. case-insensitive and ignoring white space.
func (c *Collection) FamilyByName(name string) (engine.Family, error) {
	fam, ok := c.families[font.NormalizeFamily(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", engine.ErrFamilyNotFound, name)
	}
	return fam, nil
}

// FamilyNames lists the families of the collection, sorted by name.
func (c *Collection) FamilyNames() []string {
	names := make([]string, 0, len(c.order))
	for _, key := range c.order {
		names = append(names, c.families[key].name)
	}
	slices.Sort(names)
	return names
}

// NewRenderTarget creates an off-screen 8-bit render target.
func (c *Collection) NewRenderTarget(width, height int) (engine.RenderTarget, error) {
	return NewRenderTarget(width, height)
}

// --- Families --------------------------------------------------------------

// Family is a group of fonts sharing a family name.
type Family struct {
	name    string
	members []*member
}

var _ engine.Family = (*Family)(nil)

// member is a font of a family, located either in memory or on disk.
type member struct {
	aspect   font.Aspect
	location fontscan.Location
	file     *fontload.FontFile // nil for system fonts
	face     *Face              // loaded on demand
}

// Name returns the family name.
func (fam *Family) Name() string {
	return fam.name
}

// FirstMatchingFace selects the face closest to the requested properties,
// following the CSS font matching rules for stretch, style and weight.
func (fam *Family) FirstMatchingFace(weight engine.FontWeight, stretch engine.FontStretch,
	style engine.FontStyle) (engine.Face, error) {
	//
	query := Aspect(weight, stretch, style)
	candidates := retainBestMatches(fam.members, query)
	// candidates are in insertion order; the first one which loads wins
	for _, m := range candidates {
		face, err := m.load()
		if err != nil {
			tracer().Errorf("cannot load font %s[%d]: %v", m.location.File, m.location.Index, err)
			continue
		}
		tracer().Debugf("family %q: selected %v for query %v", fam.name, m.aspect, query)
		return face, nil
	}
	return nil, fmt.Errorf("%w: %q", engine.ErrNoMatchingFace, fam.name)
}

func (m *member) load() (*Face, error) {
	if m.face != nil {
		return m.face, nil
	}
	ff := m.file
	if ff == nil {
		var err error
		if ff, err = fontload.LoadFontFile(m.location.File); err != nil {
			return nil, err
		}
	}
	f, err := ff.Face(int(m.location.Index))
	if err != nil {
		return nil, err
	}
	m.face = newFace(f)
	return m.face, nil
}

// --- Logging ---------------------------------------------------------------

// scanLogger forwards messages of package fontscan to our tracer.
type scanLogger struct{}

func (scanLogger) Printf(format string, args ...interface{}) {
	tracer().Infof(format, args...)
}
