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

// Package curated is a helper package for the plain Go language error type.
// Curated errors are created with the Errorf() function, which takes a
// formatting pattern and placeholder values in the same way as fmt.Errorf().
//
// The pattern is retained and is used to identify the error. Patterns that
// are used for identification should be stored as exported constants in the
// package that creates the error:
//
//	const TextureError = "texture: %v"
//
//	err := curated.Errorf(TextureError, "cannot allocate")
//	if curated.Is(err, TextureError) {
//		...
//	}
//
// Has() is similar to Is() but checks the whole error chain. Errors in the
// chain are placeholder values that are themselves errors, curated or
// otherwise, so the standard library errors.Is() and errors.As() functions
// also see through curated errors.
//
// The Error() function normalises the message by removing duplicate adjacent
// parts, where parts are separated by the sub-string ": ". This means that
// wrapping an error with the same prefix more than once does not produce a
// stuttering message:
//
//	xplay: xplay: cannot set video mode
//
// is output as
//
//	xplay: cannot set video mode
package curated
