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

// Package modalflag is a wrapper for the flag package in the Go standard
// library. It provides a convenient method of handling program modes (and
// sub-modes) and allows different flags for each mode.
//
// Arguments are supplied with NewArgs() and then Parse() is called with no
// arguments. Flags are added before each call to Parse():
//
//	md := modalflag.Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	frames := md.AddInt("frames", 0, "number of frames to render")
//	md.AddSubModes("run", "shaders", "version")
//
//	switch p, err := md.Parse(); p {
//	case modalflag.ParseHelp:
//		return
//	case modalflag.ParseError:
//		return err
//	}
//
// The first argument after the flags is compared with the list of sub-modes.
// If it matches, the mode is added to the mode path and the argument is
// consumed. If it doesn't match, the first sub-mode in the list is selected.
// Sub-mode comparisons are case insensitive and modes are reported in upper
// case:
//
//	switch md.Mode() {
//	case "RUN":
//		md.NewMode()
//		vsync := md.AddBool("vsync", true, "synchronise with display")
//		...
//	}
//
// A call to NewMode() discards the flags and sub-modes of the previous mode
// but the mode path is kept. The path is used to head the help message of
// the current mode.
package modalflag
