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

// Package pattern generates test frames for the compositor. The frames are
// written in any of the video.PixelFormat layouts, optionally with padding at
// the end of each row so that the pitch of the frame is larger than the
// width.
//
// The pixels of 32 bit frames are stored in memory as blue, green, red and
// alpha. 16 bit pixels are stored as little-endian 16 bit words.
package pattern
