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

package video

// PixelFormat of a source pixel buffer.
type PixelFormat int

// List of valid PixelFormat values.
const (
	FormatNone PixelFormat = iota
	FormatRGBA4444
	FormatRGB565
	FormatRGBA8888

	// 32 bit pixels with an unused alpha channel
	FormatRGB8888
)

func (f PixelFormat) String() string {
	switch f {
	case FormatRGBA4444:
		return "RGBA4444"
	case FormatRGB565:
		return "RGB565"
	case FormatRGBA8888:
		return "RGBA8888"
	case FormatRGB8888:
		return "RGB8888"
	}
	return "none"
}

// TexelSize returns the number of bytes used by one pixel. Returns zero for
// FormatNone.
func (f PixelFormat) TexelSize() int {
	switch f {
	case FormatRGBA4444, FormatRGB565:
		return 2
	case FormatRGBA8888, FormatRGB8888:
		return 4
	}
	return 0
}

// ResolveFormat returns the PixelFormat for a frame source. The rgb32 flag
// indicates a 32 bit source and useRGBA indicates that the source makes use
// of the alpha channel.
func ResolveFormat(rgb32 bool, useRGBA bool) PixelFormat {
	if rgb32 {
		if useRGBA {
			return FormatRGBA8888
		}
		return FormatRGB8888
	}
	if useRGBA {
		return FormatRGBA4444
	}
	return FormatRGB565
}
