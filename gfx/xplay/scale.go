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

package xplay

// Output resolution of the driver. The driver always draws to the full
// output.
const (
	OutputWidth  = 854
	OutputHeight = 480
)

// ScaleFactor returns the whole number scaling for a source of the given
// size. The scaling is the same in both axes unless the source is at least
// twice as wide as it is high, in which case the vertical scaling is bumped by
// one if the result still fits in the output.
//
// Both scale factors are zero if the source has no size. The horizontal
// factor is zero if the source is larger than the output in either axis but
// the vertical factor may still have been bumped to one.
func ScaleFactor(width int, height int) (int, int) {
	if width < 1 || height < 1 {
		return 0, 0
	}

	sx := min(OutputWidth/width, OutputHeight/height)
	sy := sx

	if width/height >= 2 && height*(sy+1) <= OutputHeight {
		sy++
	}

	return sx, sy
}

// QuadGeometry returns the vertices of a quad centred in the output in
// normalised device coordinates. The order of the vertices is top-left,
// bottom-left, top-right, bottom-right.
//
// Without integer scaling the quad covers the entire output. With integer
// scaling the quad is the size of the scaled source.
//
// Returns false if the quad can not be drawn. ie. the source has no size or
// the integer scaling is zero.
func QuadGeometry(width int, height int, integerScale bool) ([8]float32, bool) {
	if width < 1 || height < 1 {
		return [8]float32{}, false
	}

	dx := float32(1.0)
	dy := float32(1.0)

	if integerScale {
		sx, sy := ScaleFactor(width, height)
		if sx == 0 || sy == 0 {
			return [8]float32{}, false
		}
		dx = float32(sx*width) / OutputWidth
		dy = float32(sy*height) / OutputHeight
	}

	return [8]float32{
		-dx, dy,
		-dx, -dy,
		dx, dy,
		dx, -dy,
	}, true
}

// gridVariant returns the grid mode for a source with the scale factors. The
// grid is only possible for uniform scaling of two or three.
func gridVariant(sx int, sy int, allowGrid bool) gridMode {
	if !allowGrid || sx != sy {
		return gridNone
	}
	switch sx {
	case 2:
		return grid2x
	case 3:
		return grid3x
	}
	return gridNone
}
