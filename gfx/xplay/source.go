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

import (
	"fmt"
	"io"

	"github.com/jetsetilly/xplay/gfx/xplay/shaders"
)

// channelOrder of the texels sampled by the framebuffer program.
type channelOrder int

// List of valid channelOrder values.
const (
	orderRGB channelOrder = iota
	orderBGR
	numChannelOrders
)

func (o channelOrder) String() string {
	if o == orderBGR {
		return "bgr"
	}
	return "rgb"
}

// orderForSource returns the channel order for frames from a source with the
// rgb32 flag.
func orderForSource(rgb32 bool) channelOrder {
	if rgb32 {
		return orderBGR
	}
	return orderRGB
}

// gridMode of the framebuffer program.
type gridMode int

// List of valid gridMode values.
const (
	gridNone gridMode = iota
	grid2x
	grid3x
	numGridModes
)

func (g gridMode) String() string {
	switch g {
	case grid2x:
		return "grid2x"
	case grid3x:
		return "grid3x"
	}
	return "none"
}

// period returns the number of output pixels between grid lines. Zero means
// no grid lines.
func (g gridMode) period() int {
	switch g {
	case grid2x:
		return 2
	case grid3x:
		return 3
	}
	return 0
}

// colour correction constants. 0.5 is neutral for saturation, brightness and
// contrast, 0.0 is neutral for hue.
const (
	hue        = 0.0
	saturation = 0.6
	contrast   = 0.55

	// contrast used with a grid period of two
	contrastGrid2x = 0.57
)

// gridExpression returns the GLSL expression for the grid intensity at the
// current fragment. The hlines period applies to the y axis and the vlines
// period to the x axis.
func gridExpression(hlines int, vlines int) string {
	if hlines == 0 && vlines == 0 {
		return "1.0"
	}

	mody := "1.0"
	if hlines != 0 {
		mody = fmt.Sprintf("floor(mod(gl_FragCoord.y, %d.0))", hlines)
	}

	modx := "1.0"
	if vlines != 0 {
		modx = fmt.Sprintf("floor(mod(gl_FragCoord.x, %d.0))", vlines)
	}

	return fmt.Sprintf("min(1.0, min(%s, %s))", mody, modx)
}

// brightnessExpression returns the GLSL expression for the brightness and the
// contrast to go with it. A grid dims the image, so the brightness is
// adjusted to suit the period of the grid lines.
func brightnessExpression(hlines int) (string, float64) {
	switch hlines {
	case 2:
		return "0.5 + (grid * 0.05)", contrastGrid2x
	case 3:
		return "0.5 - ((1.0 - grid) * 0.03)", contrast
	}
	return "0.5", contrast
}

const framebufferMain = `
void main()
{
	vec4 c = texture2D(s_texture, v_texCoord);
	float grid = %s;
	float hue = %.2f;
	float saturation = %.2f;
	float brightness = %s;
	float contrast = %.2f;
	gl_FragColor = applyHSBCEffect(vec4(c.%s, c.a * f_alpha), vec4(hue, saturation, brightness, contrast));
}
`

// framebufferFragmentSource returns the fragment shader source for the
// channel order and grid periods. The result depends only on the arguments.
func framebufferFragmentSource(order channelOrder, hlines int, vlines int) string {
	brightness, con := brightnessExpression(hlines)
	body := fmt.Sprintf(framebufferMain,
		gridExpression(hlines, vlines),
		hue, saturation, brightness, con,
		order)
	return string(shaders.HSBCHelpers) + body
}

// framebufferVertexSource returns the vertex shader source used by every
// framebuffer program.
func framebufferVertexSource() string {
	return string(shaders.FramebufferVertexShader)
}

// WriteShaders writes the source of the framebuffer vertex shader and of
// every framebuffer fragment shader, in the order the programs are built.
func WriteShaders(w io.Writer) error {
	_, err := fmt.Fprintf(w, "// vertex\n%s\n", framebufferVertexSource())
	if err != nil {
		return err
	}

	for g := gridMode(0); g < numGridModes; g++ {
		for o := channelOrder(0); o < numChannelOrders; o++ {
			_, err = fmt.Fprintf(w, "// fragment: %s %s\n%s\n", o, g, framebufferFragmentSource(o, g.period(), g.period()))
			if err != nil {
				return err
			}
		}
	}

	return nil
}
