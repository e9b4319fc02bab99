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

// Package shaders contains the GLSL source used by the xplay driver.
package shaders

import _ "embed"

//go:embed "framebuffer.vert"
var FramebufferVertexShader []byte

// HSBCHelpers declares the inputs of the framebuffer fragment shader and the
// colour correction functions. It does not include a main() function.
//
//go:embed "hsbc.frag"
var HSBCHelpers []byte

//go:embed "text.vert"
var TextVertexShader []byte

//go:embed "text.frag"
var TextFragmentShader []byte
