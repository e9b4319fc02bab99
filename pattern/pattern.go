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

package pattern

import (
	"encoding/binary"
	"fmt"

	"github.com/jetsetilly/xplay/video"
)

// Colour is an 8 bit per channel colour.
type Colour struct {
	R, G, B, A uint8
}

// Put writes the colour to the first bytes of dst in the pixel format.
func Put(dst []byte, format video.PixelFormat, c Colour) {
	switch format {
	case video.FormatRGB565:
		v := uint16(c.R>>3)<<11 | uint16(c.G>>2)<<5 | uint16(c.B>>3)
		binary.LittleEndian.PutUint16(dst, v)
	case video.FormatRGBA4444:
		v := uint16(c.R>>4)<<12 | uint16(c.G>>4)<<8 | uint16(c.B>>4)<<4 | uint16(c.A>>4)
		binary.LittleEndian.PutUint16(dst, v)
	case video.FormatRGBA8888:
		dst[0], dst[1], dst[2], dst[3] = c.B, c.G, c.R, c.A
	case video.FormatRGB8888:
		dst[0], dst[1], dst[2], dst[3] = c.B, c.G, c.R, 0xff
	}
}

// Generator creates frames of a moving test pattern.
type Generator struct {
	Width   int
	Height  int
	Format  video.PixelFormat
	Padding int

	pix []byte
}

// NewGenerator is the preferred method of initialisation for the Generator
// type. Padding is the number of bytes added to the end of each row.
func NewGenerator(width int, height int, format video.PixelFormat, padding int) (*Generator, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("pattern: frame too small (%dx%d)", width, height)
	}
	if format == video.FormatNone {
		return nil, fmt.Errorf("pattern: no pixel format")
	}
	if padding < 0 {
		return nil, fmt.Errorf("pattern: negative padding (%d)", padding)
	}

	gen := &Generator{
		Width:   width,
		Height:  height,
		Format:  format,
		Padding: padding,
	}
	gen.pix = make([]byte, gen.Pitch()*height)

	return gen, nil
}

// Pitch returns the number of bytes between the start of each row.
func (gen *Generator) Pitch() int {
	return gen.Width*gen.Format.TexelSize() + gen.Padding
}

// Frame returns the pixels of the pattern for the frame number. The returned
// slice is reused by the next call to Frame().
func (gen *Generator) Frame(n uint64) []byte {
	sz := gen.Format.TexelSize()
	pitch := gen.Pitch()
	shift := int(n % uint64(gen.Width))

	for y := 0; y < gen.Height; y++ {
		row := gen.pix[y*pitch:]
		for x := 0; x < gen.Width; x++ {
			Put(row[x*sz:], gen.Format, gen.colour(x, y, shift))
		}
	}

	return gen.pix
}

// eight vertical bars of colour that scroll horizontally, with a fading
// band across the bottom quarter of the frame
func (gen *Generator) colour(x int, y int, shift int) Colour {
	bar := ((x + shift) % gen.Width) * 8 / gen.Width

	var c Colour
	if bar&0x04 != 0 {
		c.R = 0xff
	}
	if bar&0x02 != 0 {
		c.G = 0xff
	}
	if bar&0x01 != 0 {
		c.B = 0xff
	}
	c.A = 0xff

	if y >= gen.Height*3/4 {
		v := uint8(x * 0xff / gen.Width)
		c = Colour{R: v, G: v, B: v, A: 0xff}
	}

	return c
}

// Menu returns a tightly packed overlay of the size. The overlay is a
// translucent panel with an opaque border. A 32 bit overlay uses
// FormatRGBA8888 and a 16 bit overlay FormatRGBA4444.
func Menu(width int, height int, rgb32 bool) []byte {
	format := video.FormatRGBA4444
	if rgb32 {
		format = video.FormatRGBA8888
	}
	sz := format.TexelSize()

	pix := make([]byte, width*height*sz)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := Colour{R: 0x20, G: 0x20, B: 0x60, A: 0x80}
			if x < 2 || y < 2 || x >= width-2 || y >= height-2 {
				c = Colour{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
			}
			Put(pix[(y*width+x)*sz:], format, c)
		}
	}

	return pix
}
