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

// Package gpu defines the narrow set of GPU operations used by the display
// driver. The Device interface mirrors the shape of the OpenGL ES 2 API: a
// texture must be bound before it is allocated or updated and a program must
// be in use before its uniforms are set.
//
// Package gles2 implements the interface with OpenGL ES 2. Package gputest
// implements it in software for testing.
package gpu
