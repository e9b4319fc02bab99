// This file is part of Xplay.
//
// Xplay is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Xplay is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Xplay.  If not, see <https://www.gnu.org/licenses/>.

package font

import (
	"image"
	"os"

	"github.com/jetsetilly/xplay/curated"
	"github.com/jetsetilly/xplay/logger"
	"github.com/jetsetilly/xplay/video"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/draw"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Sentinal error patterns returned by New().
const (
	LoadError  = "font: load: %v"
	ParseError = "font: parse: %v"
	FaceError  = "font: face: %v"
)

// DefaultSize is the size of the font in pixels if the requested size is not
// usable.
const DefaultSize = 16.0

// the range of runes in the atlas
const (
	firstRune = ' '
	lastRune  = '~'
)

const (
	atlasWidth = 512

	// empty pixels between glyphs
	padding = 1
)

// Font implements the video.FontProvider interface.
type Font struct {
	face   xfont.Face
	glyphs map[rune]video.Glyph
	atlas  video.FontAtlas
}

// New is the preferred method of initialisation for the Font type. The font
// file at path is loaded and rasterised at the size given in pixels. An
// empty path selects the built-in font.
func New(path string, size float64) (*Font, error) {
	data := goregular.TTF
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, curated.Errorf(LoadError, err)
		}
	}

	f, err := opentype.Parse(data)
	if err != nil {
		return nil, curated.Errorf(ParseError, err)
	}

	if size <= 0 {
		logger.Logf(logger.Allow, "font", "unusable font size (%.1f). using %.1f", size, DefaultSize)
		size = DefaultSize
	}

	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: xfont.HintingFull,
	})
	if err != nil {
		return nil, curated.Errorf(FaceError, err)
	}

	fnt := &Font{
		face:   face,
		glyphs: make(map[rune]video.Glyph),
	}
	fnt.rasterise()

	logger.Logf(logger.Allow, "font", "%d glyphs in %dx%d atlas", len(fnt.glyphs), fnt.atlas.Width, fnt.atlas.Height)

	return fnt, nil
}

// a glyph that has been rasterised but not yet placed in the atlas
type pending struct {
	r       rune
	mask    *image.Alpha
	bounds  image.Rectangle
	advance fixed.Int26_6
}

func (fnt *Font) rasterise() {
	var glyphs []pending

	for r := rune(firstRune); r <= lastRune; r++ {
		dr, mask, maskp, advance, ok := fnt.face.Glyph(fixed.Point26_6{}, r)
		if !ok {
			continue
		}

		// the mask returned by Glyph() is only valid until the next call so
		// it is copied
		m := image.NewAlpha(image.Rect(0, 0, dr.Dx(), dr.Dy()))
		draw.Draw(m, m.Bounds(), mask, maskp, draw.Src)

		glyphs = append(glyphs, pending{
			r:       r,
			mask:    m,
			bounds:  dr,
			advance: advance,
		})
	}

	// place glyphs in shelves from the top-left of the atlas
	positions := make([]image.Point, len(glyphs))
	x, y := padding, padding
	shelf := 0
	for i, g := range glyphs {
		w := g.bounds.Dx()
		h := g.bounds.Dy()
		if x+w+padding > atlasWidth {
			x = padding
			y += shelf + padding
			shelf = 0
		}
		positions[i] = image.Pt(x, y)
		x += w + padding
		shelf = max(shelf, h)
	}

	height := nextPowerOfTwo(y + shelf + padding)
	img := image.NewAlpha(image.Rect(0, 0, atlasWidth, height))

	for i, g := range glyphs {
		p := positions[i]
		draw.Draw(img, g.mask.Bounds().Add(p), g.mask, image.Point{}, draw.Src)

		fnt.glyphs[g.r] = video.Glyph{
			AdvanceX:     g.advance.Round(),
			DrawOffsetX:  g.bounds.Min.X,
			DrawOffsetY:  g.bounds.Min.Y,
			Width:        g.bounds.Dx(),
			Height:       g.bounds.Dy(),
			AtlasOffsetX: p.X,
			AtlasOffsetY: p.Y,
		}
	}

	fnt.atlas = video.FontAtlas{
		Width:  atlasWidth,
		Height: height,
		Buffer: img.Pix,
		Dirty:  true,
	}
}

func nextPowerOfTwo(v int) int {
	p := 1
	for p < v {
		p <<= 1
	}
	return p
}

// Atlas implements the video.FontProvider interface.
func (fnt *Font) Atlas() *video.FontAtlas {
	return &fnt.atlas
}

// Glyph implements the video.FontProvider interface.
func (fnt *Font) Glyph(r rune) (video.Glyph, bool) {
	g, ok := fnt.glyphs[r]
	return g, ok
}

// Free implements the video.FontProvider interface.
func (fnt *Font) Free() {
	if fnt.face != nil {
		_ = fnt.face.Close()
		fnt.face = nil
	}
	fnt.glyphs = nil
	fnt.atlas = video.FontAtlas{}
}
