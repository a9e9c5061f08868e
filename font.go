/*
Package termfont is a font rasterization backend for terminal-style renderers.

Clients describe a logical font by family name and style, load it into a
rasterizer and receive an opaque FontKey in return. The key is then used to
query cell metrics and to rasterize single glyphs into 8-bit coverage masks.

We will stick to the following nomenclature:

▪︎ A "family" is a typeface with all of its variants, e.g. "Go Mono".

▪︎ A "face" is one variant of a family with a certain weight, stretch and
slant, e.g. "Go Mono Bold". Faces are owned by an engine (see package
engine) and referenced by FontKeys.

▪︎ "Design units" are the coordinates of the font file, scaled by the
units-per-em value of a face to real sizes.

The rasterizer itself lives in package rasterizer, the face cache in package
registry.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package termfont

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'termfont'
func tracer() tracing.Trace {
	return tracing.Select("termfont")
}

// Slant is the symbolic slant of a font description.
type Slant uint8

const (
	SlantNormal Slant = iota
	SlantItalic
	SlantOblique
)

func (s Slant) String() string {
	switch s {
	case SlantItalic:
		return "Italic"
	case SlantOblique:
		return "Oblique"
	}
	return "Normal"
}

// Weight is the symbolic weight of a font description.
type Weight uint8

const (
	WeightNormal Weight = iota
	WeightBold
)

func (w Weight) String() string {
	if w == WeightBold {
		return "Bold"
	}
	return "Normal"
}

// Style selects a face within a family. It is either a Description
// (symbolic slant and weight, matched to the closest available face) or a
// Specific style name.
type Style interface {
	isStyle()
	String() string
}

// Description selects a face by slant and weight.
type Description struct {
	Slant  Slant
	Weight Weight
}

func (Description) isStyle() {}

func (d Description) String() string {
	return d.Slant.String() + " " + d.Weight.String()
}

// Specific selects a face by an engine-specific style name, e.g. "Bold".
// Names the engine does not recognize select the regular face.
type Specific string

func (Specific) isStyle() {}

func (s Specific) String() string {
	return string(s)
}

// FontDesc identifies a logical font. FontDescs are comparable and are
// used as cache keys.
type FontDesc struct {
	Name  string
	Style Style
}

// NewFontDesc creates a font description for a family and a style.
// A nil style is replaced by the regular Description.
func NewFontDesc(name string, style Style) FontDesc {
	if style == nil {
		style = Description{}
	}
	return FontDesc{Name: name, Style: style}
}

// Normalized returns desc with a nil Style replaced by the regular
// Description.
func (desc FontDesc) Normalized() FontDesc {
	return NewFontDesc(desc.Name, desc.Style)
}

func (desc FontDesc) String() string {
	style := "<none>"
	if desc.Style != nil {
		style = desc.Style.String()
	}
	return fmt.Sprintf("name '%s' and style '%s'", desc.Name, style)
}
