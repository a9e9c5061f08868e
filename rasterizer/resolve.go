package rasterizer

import (
	"fmt"

	"github.com/npillmayer/termfont"
	"github.com/npillmayer/termfont/engine"
)

// resolveFace finds the face of the collection best matching desc.
// Every failure, including a panic of the engine, is reported as a
// MissingFontError.
func (r *Rasterizer) resolveFace(desc termfont.FontDesc) (face engine.Face, err error) {
	defer func() {
		if p := recover(); p != nil {
			tracer().Errorf("font engine panic while resolving %s: %v", desc, p)
			face, err = nil, termfont.MissingFont(desc, fmt.Errorf("font engine panic: %v", p))
		}
	}()
	fam, err := r.coll.FamilyByName(desc.Name)
	if err != nil {
		return nil, termfont.MissingFont(desc, err)
	}
	weight, stretch, style := faceProperties(desc.Style)
	face, err = fam.FirstMatchingFace(weight, stretch, style)
	if err != nil {
		return nil, termfont.MissingFont(desc, err)
	}
	if face == nil {
		return nil, termfont.MissingFont(desc, engine.ErrNoMatchingFace)
	}
	tracer().Debugf("resolved %s to (%d, %d, %s) of family %q", desc, weight, stretch, style, fam.Name())
	return face, nil
}

// faceProperties maps a style to the properties of a face to select.
// Specific style names other than "Normal", "Bold" and "Italic" select the
// regular face.
func faceProperties(style termfont.Style) (engine.FontWeight, engine.FontStretch, engine.FontStyle) {
	switch s := style.(type) {
	case termfont.Description:
		weight := engine.FontWeightRegular
		if s.Weight == termfont.WeightBold {
			weight = engine.FontWeightBold
		}
		fontStyle := engine.FontStyleNormal
		switch s.Slant {
		case termfont.SlantItalic:
			fontStyle = engine.FontStyleItalic
		case termfont.SlantOblique:
			fontStyle = engine.FontStyleOblique
		}
		return weight, engine.FontStretchNormal, fontStyle
	case termfont.Specific:
		switch s {
		case "Normal":
			return engine.FontWeightRegular, engine.FontStretchNormal, engine.FontStyleNormal
		case "Bold":
			return engine.FontWeightBold, engine.FontStretchNormal, engine.FontStyleNormal
		case "Italic":
			return engine.FontWeightRegular, engine.FontStretchNormal, engine.FontStyleItalic
		}
		tracer().Debugf("unknown style name %q, using regular face", string(s))
	}
	return engine.FontWeightRegular, engine.FontStretchNormal, engine.FontStyleNormal
}
