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

// Package prefs facilitates the storage and retrieval of preference values.
//
// Preference values are represented by the Bool, Int, Float and String types.
// Values are stored atomically and so can be read from any goroutine. Each
// type supports a pre and post hook, called either side of a Set().
//
// Values are associated with a key in a Disk instance. Many Disk instances
// can share the same file: Save() only replaces the entries the instance
// knows about and leaves the other entries in the file untouched. The file
// format is one entry per line:
//
//	key :: value
//
// Values can be overridden from the command line by pushing a prefs string
// onto the command line stack before the Disk is loaded:
//
//	prefs.PushCommandLineStack("xplay.integerScale::true; xplay.fontSize::16")
//
// Overridden values are not saved unless they are changed by the program.
package prefs
