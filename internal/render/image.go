package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/tiff"
)

// Glyph cell size of basicfont.Face7x13.
const (
	glyphW = 7
	glyphH = 13
)

var background = color.NRGBA{R: 18, G: 18, B: 24, A: 255}

var kindColors = map[Kind]color.NRGBA{
	KindTerrain:    {R: 138, G: 138, B: 138, A: 255},
	KindPath:       {R: 255, G: 255, B: 85, A: 255},
	KindStart:      {R: 85, G: 255, B: 85, A: 255},
	KindGoal:       {R: 255, G: 85, B: 85, A: 255},
	KindViewer:     {R: 85, G: 255, B: 255, A: 255},
	KindVisible:    {R: 240, G: 240, B: 240, A: 255},
	KindRemembered: {R: 100, G: 100, B: 110, A: 255},
	KindLight:      {R: 255, G: 135, B: 0, A: 255},
	KindFlow:       {R: 85, G: 140, B: 255, A: 255},
	KindUnreached:  {R: 190, G: 30, B: 30, A: 255},
	KindChanged:    {R: 255, G: 85, B: 255, A: 255},
}

// basicfont only covers ASCII.
var asciiGlyphs = map[rune]rune{
	'→': '>', '←': '<', '↑': '^', '↓': 'v',
	'↗': '/', '↙': '/', '↖': '\\', '↘': '\\',
	'·': '.',
}

// Image draws the canvas in the same layout Render uses, one 7x13 glyph
// per character, then scales it up by scale using nearest neighbor.
// Tinted cells get a dimmed tint as background.
func Image(c *Canvas, layout Layout, scale int) *image.NRGBA {
	lines := layoutLines(c, layout)

	cols := 0
	for _, line := range lines {
		n := 0
		for _, s := range line {
			n += len([]rune(s.text))
		}
		cols = max(cols, n)
	}

	src := image.NewNRGBA(image.Rect(0, 0, max(cols, 1)*glyphW, max(len(lines), 1)*glyphH))
	xdraw.Draw(src, src.Bounds(), image.NewUniform(background), image.Point{}, xdraw.Src)

	d := &font.Drawer{Dst: src, Face: basicfont.Face7x13}
	for y, line := range lines {
		x := 0
		for _, s := range line {
			for i, g := range []rune(s.text) {
				// Only the first rune of a span is the cell; the rest is spacing.
				if s.pad || i > 0 {
					x++
					continue
				}
				cell := image.Rect(x*glyphW, y*glyphH, (x+1)*glyphW, (y+1)*glyphH)
				if s.key.tint.A != 0 {
					xdraw.Draw(src, cell, image.NewUniform(dim(s.key.tint)), image.Point{}, xdraw.Src)
				}
				if a, ok := asciiGlyphs[g]; ok {
					g = a
				}
				d.Src = image.NewUniform(glyphColor(s.key))
				d.Dot = fixed.P(x*glyphW, y*glyphH+basicfont.Face7x13.Ascent)
				d.DrawString(string(g))
				x++
			}
		}
	}

	if scale <= 1 {
		return src
	}
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), src, b, xdraw.Src, nil)
	return dst
}

func glyphColor(k styleKey) color.NRGBA {
	if k.tint.A != 0 {
		return k.tint
	}
	if c, ok := kindColors[k.kind]; ok {
		return c
	}
	return kindColors[KindTerrain]
}

func dim(c color.NRGBA) color.NRGBA {
	return color.NRGBA{R: c.R / 4, G: c.G / 4, B: c.B / 4, A: 255}
}

// ErrImageFormat is returned by Encode for an unsupported file extension.
var ErrImageFormat = errors.New("unsupported image format")

// Encode writes img in the format named by the extension of name: .png,
// .bmp, .tif or .tiff.
func Encode(w io.Writer, img image.Image, name string) error {
	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".png":
		return png.Encode(w, img)
	case ".bmp":
		return bmp.Encode(w, img)
	case ".tif", ".tiff":
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("%w: %q", ErrImageFormat, ext)
	}
}
