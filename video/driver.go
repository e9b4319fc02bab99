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

// FrameInfo is the per-frame state supplied by the host alongside the pixel
// data of a frame.
type FrameInfo struct {
	// the source makes use of the alpha channel
	UseRGBA bool

	// the menu overlay should be drawn
	MenuIsAlive bool

	// scale the frame by whole numbers only and, if the scaling is uniform,
	// overlay a pixel grid
	IntegerScale bool
	GridOverlay  bool

	// position of the on-screen message as a fraction of the output size.
	// the origin is the bottom-left corner
	MsgPosX float32
	MsgPosY float32
}

// Viewport describes the area of the output drawn to by the driver.
type Viewport struct {
	X          int
	Y          int
	Width      int
	Height     int
	FullWidth  int
	FullHeight int
}

// Driver is implemented by display drivers.
type Driver interface {
	// Frame draws and presents a frame. The pitch is the number of bytes
	// between the start of successive rows in the frame buffer. The message
	// is drawn over the frame if it is not empty.
	//
	// Returns false if the driver can no longer accept frames.
	Frame(frame []byte, width int, height int, frameCount uint64, pitch int, msg string, info FrameInfo) bool

	// SetNonblockState changes the swap interval. A nonblocking driver
	// presents frames as soon as possible.
	SetNonblockState(nonblock bool, adaptiveVSync bool, swapInterval int)

	Alive() bool
	Focus() bool
	SuppressScreensaver(enable bool) bool
	HasWindowed() bool
	ViewportInfo() Viewport

	// SetTextureFrame supplies the pixels for the menu overlay. The pixels
	// are always tightly packed.
	SetTextureFrame(frame []byte, rgb32 bool, width int, height int, alpha float32)
	SetTextureEnable(enable bool, fullscreen bool)

	SetFiltering(index int, smooth bool, ctxScaling bool)
	ApplyStateChanges()
	Flags() uint32

	// Free releases every resource held by the driver, including the
	// context.
	Free()
}

// ContextProvider is implemented by the windowing layer. It owns the window
// and graphics context used by a Driver.
type ContextProvider interface {
	// Ident returns the name of the context provider. The name "null" is
	// reserved for contexts that can not draw.
	Ident() string

	SetSwapInterval(interval int) error
	SupportsAdaptiveVSync() bool

	SetVideoMode(width int, height int, fullscreen bool) error
	SwapBuffers()

	HasFocus() bool
	SuppressScreensaver(enable bool) bool
	HasWindowed() bool

	Destroy()
}
