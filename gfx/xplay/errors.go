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

// Error patterns returned by the driver. Use curated.Is() to check for them.
const (
	ContextError     = "xplay: context: %v"
	VideoModeError   = "xplay: video mode: %v"
	NullContextError = "xplay: null context"
	StateError       = "xplay: gl state: %v"
	ProgramError     = "xplay: program: %v"
	TextureError     = "xplay: texture: %v"

	// per-frame errors. these are logged and never returned from New()
	BlitError      = "xplay: blit: %v"
	MalformedFrame = "xplay: malformed frame (%dx%d pitch %d, %d bytes)"
	AtlasError     = "xplay: font atlas (%dx%d, %d bytes)"
)
