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

// Package font rasterises the printable ASCII glyphs of an OpenType font into
// a single alpha atlas. The Font type implements the video.FontProvider
// interface.
//
// The atlas is packed into shelves of glyphs. Each glyph is separated from
// its neighbours, and from the edge of the atlas, by at least one empty
// pixel. If no font file is specified then the Go Regular font is used.
package font
