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

package logger

// Permission implementations indicate whether the environment making a log
// request is allowed to create new log entries. Used to silence repeated
// per-frame diagnostics without wrapping every call in a condition.
type Permission interface {
	AllowLogging() bool
}

type allow struct{}

func (_ allow) AllowLogging() bool {
	return true
}

// Allow indicates that the logging request should be allowed. A good default to
// use if a log entry should always be made.
var Allow Permission = allow{}

// Once is a Permission that allows exactly one log entry. Subsequent requests
// are refused until Reset() is called.
type Once struct {
	used bool
}

// AllowLogging implements the Permission interface.
func (o *Once) AllowLogging() bool {
	if o.used {
		return false
	}
	o.used = true
	return true
}

// Reset allows the next log request.
func (o *Once) Reset() {
	o.used = false
}
