package gotext

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/go-text/typesetting/font"
	ot "github.com/go-text/typesetting/font/opentype"
	"github.com/npillmayer/termfont/engine"
	"golang.org/x/image/vector"
)

// RenderTarget is an off-screen 8-bit alpha surface.
type RenderTarget struct {
	mask     *image.Alpha
	ppd      float32 // pixels per device independent pixel
	released bool
}

var _ engine.RenderTarget = (*RenderTarget)(nil)

// NewRenderTarget creates a transparent render target of width × height
// pixels.
func NewRenderTarget(width, height int) (*RenderTarget, error) {
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("invalid render target size %d × %d", width, height)
	}
	return &RenderTarget{
		mask: image.NewAlpha(image.Rect(0, 0, width, height)),
		ppd:  1,
	}, nil
}

// Size returns the size of the target in pixels.
func (rt *RenderTarget) Size() (width, height int) {
	b := rt.mask.Bounds()
	return b.Dx(), b.Dy()
}

// SetPixelsPerDip sets the number of pixels per device independent pixel.
// Values ≤ 0 are ignored.
func (rt *RenderTarget) SetPixelsPerDip(ppd float32) {
	if ppd > 0 {
		rt.ppd = ppd
	}
}

// DrawGlyphRun draws glyphs of face with their baseline origin at (x, y).
// Positions, advances, offsets and the em size are given in device
// independent pixels. Coverage is blended over the current content.
//
// Only outline glyphs are drawn; bitmap and color glyphs leave the target
// untouched.
func (rt *RenderTarget) DrawGlyphRun(x, y float32, mode engine.MeasuringMode, face engine.Face,
	emSize float32, glyphs []engine.GlyphIndex, advances []float32, offsets []engine.GlyphOffset,
	fg engine.Color) error {
	//
	if rt.released {
		return errors.New("render target has been released")
	}
	f, ok := face.(*Face)
	if !ok {
		return fmt.Errorf("cannot draw face of type %T", face)
	}
	if len(advances) < len(glyphs) || len(offsets) < len(glyphs) {
		return errors.New("glyph run needs an advance and an offset for every glyph")
	}
	if mode != engine.MeasuringModeNatural {
		tracer().Debugf("measuring mode %d not supported, using natural mode", mode)
	}
	width, height := rt.Size()
	upem := float32(f.metrics.DesignUnitsPerEm)
	if width == 0 || height == 0 || len(glyphs) == 0 || upem == 0 {
		return nil
	}
	scale := emSize * rt.ppd / upem // design units -> pixels
	src := image.NewUniform(color.Alpha{A: uint8(255 * fg.Intensity())})
	penX, baseline := x*rt.ppd, y*rt.ppd
	z := vector.NewRasterizer(width, height)
	for i, g := range glyphs {
		outline, ok := f.outline(g)
		if ok && len(outline.Segments) > 0 {
			ox := penX + offsets[i].AdvanceOffset*rt.ppd
			oy := baseline - offsets[i].AscenderOffset*rt.ppd
			z.Reset(width, height)
			drawOutline(z, outline, ox, oy, scale)
			z.Draw(rt.mask, rt.mask.Bounds(), src, image.Point{})
		}
		penX += advances[i] * rt.ppd
	}
	return nil
}

// drawOutline adds the segments of an outline to z. Font coordinates grow
// up, image coordinates grow down.
func drawOutline(z *vector.Rasterizer, outline font.GlyphOutline, ox, oy, scale float32) {
	open := false
	px := func(p font.SegmentPoint) (float32, float32) {
		return ox + p.X*scale, oy - p.Y*scale
	}
	for _, seg := range outline.Segments {
		switch seg.Op {
		case ot.SegmentOpMoveTo:
			if open {
				z.ClosePath()
			}
			z.MoveTo(px(seg.Args[0]))
			open = true
		case ot.SegmentOpLineTo:
			z.LineTo(px(seg.Args[0]))
		case ot.SegmentOpQuadTo:
			bx, by := px(seg.Args[0])
			cx, cy := px(seg.Args[1])
			z.QuadTo(bx, by, cx, cy)
		case ot.SegmentOpCubeTo:
			bx, by := px(seg.Args[0])
			cx, cy := px(seg.Args[1])
			dx, dy := px(seg.Args[2])
			z.CubeTo(bx, by, cx, cy, dx, dy)
		}
	}
	if open {
		z.ClosePath()
	}
}

// Mask returns the coverage values of the target, row by row.
func (rt *RenderTarget) Mask() []byte {
	width, height := rt.Size()
	buf := make([]byte, width*height)
	for row := 0; row < height; row++ {
		copy(buf[row*width:(row+1)*width], rt.mask.Pix[row*rt.mask.Stride:])
	}
	return buf
}

// Release frees the pixel buffer. A released target cannot be drawn on.
func (rt *RenderTarget) Release() {
	rt.released = true
	rt.mask = image.NewAlpha(image.Rectangle{})
}
