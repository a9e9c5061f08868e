package fontload

import (
	"bytes"
	"fmt"
	"os"

	"github.com/go-text/typesetting/font"
	ot "github.com/go-text/typesetting/font/opentype"
	"golang.org/x/image/font/sfnt"
)

// FontFile is a font file (TTF, OTF or a TTC/OTC collection) loaded into
// memory.
type FontFile struct {
	Path   string   // file path, or an identifier for in-memory fonts
	Binary []byte   // raw data
	Names  []string // full names of the contained fonts
}

// LoadFontFile loads an OpenType font file or collection.
func LoadFontFile(fontfile string) (*FontFile, error) {
	bytez, err := os.ReadFile(fontfile)
	if err != nil {
		return nil, err
	}
	f, err := ParseFontFile(fontfile, bytez)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// ParseFontFile loads an OpenType font file or collection from memory.
// id identifies the font data for diagnostics.
func ParseFontFile(id string, fbytes []byte) (*FontFile, error) {
	f := &FontFile{Path: id, Binary: fbytes}
	coll, err := sfnt.ParseCollection(f.Binary)
	if err != nil {
		return nil, fmt.Errorf("font %s: %w", id, err)
	}
	var buf sfnt.Buffer
	for i := 0; i < coll.NumFonts(); i++ {
		sf, err := coll.Font(i)
		if err != nil {
			return nil, fmt.Errorf("font %s[%d]: %w", id, i, err)
		}
		name, err := sf.Name(&buf, sfnt.NameIDFull)
		if err != nil {
			name = fmt.Sprintf("%s[%d]", id, i)
		}
		f.Names = append(f.Names, name)
	}
	return f, nil
}

// Resource returns a reader for the raw font data.
func (f *FontFile) Resource() font.Resource {
	return bytes.NewReader(f.Binary)
}

// Count returns the number of fonts in the file.
func (f *FontFile) Count() int {
	return len(f.Names)
}

// Describe returns family name and aspect of every font in the file.
func (f *FontFile) Describe() ([]font.Description, error) {
	loaders, err := ot.NewLoaders(f.Resource())
	if err != nil {
		return nil, fmt.Errorf("font %s: %w", f.Path, err)
	}
	descs := make([]font.Description, len(loaders))
	var buffer []byte
	for i, ld := range loaders {
		descs[i], buffer = font.Describe(ld, buffer)
	}
	return descs, nil
}

// Face parses the font at index inx of the file.
func (f *FontFile) Face(inx int) (*font.Face, error) {
	loaders, err := ot.NewLoaders(f.Resource())
	if err != nil {
		return nil, fmt.Errorf("font %s: %w", f.Path, err)
	}
	if inx < 0 || inx >= len(loaders) {
		return nil, fmt.Errorf("font %s: no font at index %d", f.Path, inx)
	}
	ft, err := font.NewFont(loaders[inx])
	if err != nil {
		return nil, fmt.Errorf("font %s[%d]: %w", f.Path, inx, err)
	}
	return font.NewFace(ft), nil
}
