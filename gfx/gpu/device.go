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

package gpu

// Texture, Shader, Program and Buffer are handles to GPU objects. The zero
// value is never a valid handle.
type (
	Texture uint32
	Shader  uint32
	Program uint32
	Buffer  uint32
)

// Layout is the memory layout of texel data.
type Layout int

// List of valid Layout values.
const (
	LayoutRGBA4444 Layout = iota
	LayoutRGB565
	LayoutRGBA8888
	LayoutAlpha8
)

func (l Layout) String() string {
	switch l {
	case LayoutRGBA4444:
		return "RGBA4444"
	case LayoutRGB565:
		return "RGB565"
	case LayoutRGBA8888:
		return "RGBA8888"
	case LayoutAlpha8:
		return "Alpha8"
	}
	return "unknown"
}

// TexelSize returns the number of bytes used by a single texel.
func (l Layout) TexelSize() int {
	switch l {
	case LayoutRGBA4444, LayoutRGB565:
		return 2
	case LayoutRGBA8888:
		return 4
	}
	return 1
}

// ShaderType distinguishes vertex and fragment shaders.
type ShaderType int

// List of valid ShaderType values.
const (
	VertexShader ShaderType = iota
	FragmentShader
)

func (t ShaderType) String() string {
	if t == VertexShader {
		return "vertex"
	}
	return "fragment"
}

// Capability is a GPU feature that can be enabled or disabled.
type Capability int

// List of valid Capability values.
const (
	DepthTest Capability = iota
	StencilTest
	CullFace
	Blend
)

func (c Capability) String() string {
	switch c {
	case DepthTest:
		return "DepthTest"
	case StencilTest:
		return "StencilTest"
	case CullFace:
		return "CullFace"
	case Blend:
		return "Blend"
	}
	return "unknown"
}

// Device is the set of GPU operations required by the display driver.
type Device interface {
	// Error returns and clears the oldest pending GPU error. Returns nil if
	// there is no pending error.
	Error() error

	// Strings returns the vendor, renderer and version strings of the GPU.
	Strings() (vendor string, renderer string, version string)

	Enable(c Capability)
	Disable(c Capability)

	// DepthFuncAlways sets the depth test to always pass.
	DepthFuncAlways()

	// BlendAlpha sets the blend function to source-alpha/one-minus-source-alpha
	// and the blend equation to addition. Blending must still be enabled
	// with Enable(Blend).
	BlendAlpha()

	ClearColor(r, g, b, a float32)
	Clear()
	Viewport(x, y, width, height int)

	// NewTexture creates a texture with clamp-to-edge wrapping and nearest
	// filtering. The texture is left bound.
	NewTexture() (Texture, error)
	DeleteTexture(t Texture)
	BindTexture(t Texture)

	// AllocTexture allocates storage for the bound texture. The content of
	// the storage is undefined.
	AllocTexture(layout Layout, width int, height int)

	// UpdateTexture replaces the content of the bound texture from the
	// origin. The pixels must be tightly packed.
	UpdateTexture(layout Layout, width int, height int, pixels []byte)

	// CompileShader returns an error containing the compiler log on failure.
	// No shader object remains on failure.
	CompileShader(typ ShaderType, source string) (Shader, error)
	DeleteShader(s Shader)

	// LinkProgram returns an error containing the linker log on failure. No
	// program object remains on failure. The shaders are not deleted.
	LinkProgram(vertex Shader, fragment Shader) (Program, error)
	DeleteProgram(p Program)
	UseProgram(p Program)

	// AttribLocation and UniformLocation return -1 if the name can not be
	// resolved.
	AttribLocation(p Program, name string) int32
	UniformLocation(p Program, name string) int32

	Uniform1i(loc int32, v int32)
	Uniform1f(loc int32, v float32)
	Uniform2f(loc int32, v0, v1 float32)
	Uniform3f(loc int32, v0, v1, v2 float32)

	NewBuffer() Buffer
	DeleteBuffer(b Buffer)

	// ArrayBuffer binds the buffer as the vertex buffer and replaces its
	// content.
	ArrayBuffer(b Buffer, data []float32)

	// ElementBuffer binds the buffer as the index buffer and replaces its
	// content.
	ElementBuffer(b Buffer, indices []uint16)

	// VertexAttrib enables the attribute and sources it from the bound
	// vertex buffer. Size, stride and offset are measured in floats.
	VertexAttrib(loc int32, size int, stride int, offset int)

	// DrawArrays draws triangles from the first count vertices of the bound
	// vertex buffer.
	DrawArrays(count int)

	// DrawElements draws triangles from the first count indices of the bound
	// index buffer.
	DrawElements(count int)
}
