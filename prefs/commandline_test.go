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

package prefs_test

import (
	"path/filepath"
	"testing"

	"github.com/jetsetilly/xplay/prefs"
	"github.com/jetsetilly/xplay/test"
)

func TestCommandLineStack(t *testing.T) {
	prefs.PushCommandLineStack("foo::bar; baz::qux; badly formed; ::empty")

	ok, v := prefs.GetCommandLinePref("foo")
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, v, "bar")

	// entries are consumed by the lookup
	ok, _ = prefs.GetCommandLinePref("foo")
	test.ExpectFailure(t, ok)

	test.ExpectEquality(t, prefs.PopCommandLineStack(), "baz::qux")
	test.ExpectEquality(t, prefs.PopCommandLineStack(), "")
}

func TestCommandLineOverride(t *testing.T) {
	fn := filepath.Join(t.TempDir(), prefs.DefaultPrefsFile)

	dsk, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)
	var size prefs.Int
	var path prefs.String
	test.ExpectSuccess(t, dsk.Add("fontSize", &size))
	test.ExpectSuccess(t, dsk.Add("fontPath", &path))
	test.ExpectSuccess(t, size.Set(12))
	test.ExpectSuccess(t, path.Set("a.ttf"))
	test.ExpectSuccess(t, dsk.Save())

	prefs.PushCommandLineStack("fontSize::16")
	defer prefs.PopCommandLineStack()

	dsk2, err := prefs.NewDisk(fn)
	test.DemandSuccess(t, err)
	var size2 prefs.Int
	var path2 prefs.String
	test.ExpectSuccess(t, dsk2.Add("fontSize", &size2))
	test.ExpectSuccess(t, dsk2.Add("fontPath", &path2))
	test.ExpectSuccess(t, dsk2.Load())

	// the override survives the load
	test.ExpectEquality(t, size2.Get().(int), 16)
	test.ExpectEquality(t, path2.String(), "a.ttf")

	// and an unchanged override is not saved
	test.ExpectSuccess(t, dsk2.Save())
	cmpFile(t, fn, "fontPath :: a.ttf\nfontSize :: 12\n")
}
