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

// FontAtlas is a single channel image containing every glyph known to a
// FontProvider. Each byte of the buffer is the coverage (alpha) of one pixel.
type FontAtlas struct {
	Width  int
	Height int
	Buffer []byte

	// the atlas has changed since it was last uploaded
	Dirty bool
}

// Glyph describes the metrics of a single glyph and its location in the
// FontAtlas. All values are in pixels.
type Glyph struct {
	// the distance to move the pen after drawing the glyph
	AdvanceX int
	AdvanceY int

	// position of the glyph's top-left corner relative to the pen. the y
	// axis increases downwards, the same as the atlas, so DrawOffsetY is
	// usually negative
	DrawOffsetX int
	DrawOffsetY int

	Width  int
	Height int

	// position of the glyph in the FontAtlas
	AtlasOffsetX int
	AtlasOffsetY int
}

// FontProvider is implemented by font renderers.
type FontProvider interface {
	// Atlas returns the atlas image. The Dirty flag should be cleared by the
	// consumer once the atlas has been uploaded.
	Atlas() *FontAtlas

	// Glyph returns the glyph for the rune. Returns false if the font has no
	// glyph for the rune.
	Glyph(r rune) (Glyph, bool)

	Free()
}
