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

// Package framebuffer provides a way of rotating between a pair of GPU
// resources. The Flip type holds two pages. Before each write the page index
// is advanced so that the page written to is never the page that the
// previous draw call was reading from:
//
//	var fl framebuffer.Flip[texture]
//	tex := fl.Next()
//	upload(tex, pixels)
//	draw(tex)
//
// Current() returns the most recent page returned by Next() without
// advancing.
package framebuffer
