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

package main

import (
	"testing"

	"github.com/jetsetilly/xplay/test"
	"github.com/jetsetilly/xplay/video"
)

func TestParseFormat(t *testing.T) {
	cases := []struct {
		name    string
		rgb32   bool
		useRGBA bool
		format  video.PixelFormat
	}{
		{"565", false, false, video.FormatRGB565},
		{"4444", false, true, video.FormatRGBA4444},
		{"8888", true, true, video.FormatRGBA8888},
		{"X888", true, false, video.FormatRGB8888},
	}

	for _, c := range cases {
		rgb32, useRGBA, err := parseFormat(c.name)
		test.DemandSuccess(t, err, c.name)
		test.ExpectEquality(t, rgb32, c.rgb32, c.name)
		test.ExpectEquality(t, useRGBA, c.useRGBA, c.name)
		test.ExpectEquality(t, video.ResolveFormat(rgb32, useRGBA), c.format, c.name)
	}

	_, _, err := parseFormat("555")
	test.ExpectFailure(t, err)
}
