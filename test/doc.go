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

// Package test contains helper functions to remove common boilerplate to make
// testing easier.
//
// The "Expect" functions report a failure with t.Errorf() and allow the test
// to continue. The "Demand" functions make the same check but stop the test
// with t.FailNow() on failure. Use Demand when the remainder of the test
// depends on the result.
//
// ExpectSuccess() and ExpectFailure() test for success and failure under
// generic conditions. Supported types are bool and error. It is worth
// describing how nil is handled because it is not obvious: nil is considered
// a success. This is because of how errors usually work (nil to indicate no
// error).
//
// The optional tags argument is printed at the start of the failure message
// and is useful in table driven tests to identify the failing entry.
//
// The CompareWriter type implements the io.Writer interface and should be
// used to capture output. The Compare() function can then be used to test for
// equality.
package test
