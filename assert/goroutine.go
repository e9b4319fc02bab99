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

// Package assert contains checks useful during development. The checks are
// cheap enough to leave in release builds.
package assert

import (
	"bytes"
	"runtime"
	"strconv"
	"sync/atomic"
)

// GetGoRoutineID returns the ID of the current goroutine. The ID is parsed
// from the first line of the goroutine's stack trace.
func GetGoRoutineID() uint64 {
	b := make([]byte, 64)
	b = b[:runtime.Stack(b, false)]
	b = bytes.TrimPrefix(b, []byte("goroutine "))
	b = b[:bytes.IndexByte(b, ' ')]
	n, _ := strconv.ParseUint(string(b), 10, 64)
	return n
}

// Goroutine records the goroutine that owns a resource. The zero value has
// no owner and every call to Check() will succeed until Claim() is called.
type Goroutine struct {
	owner atomic.Uint64
}

// Claim the resource for the current goroutine.
func (g *Goroutine) Claim() {
	g.owner.Store(GetGoRoutineID())
}

// Release the resource. Any goroutine may claim it again.
func (g *Goroutine) Release() {
	g.owner.Store(0)
}

// Check returns true if the current goroutine owns the resource or if the
// resource has no owner.
func (g *Goroutine) Check() bool {
	o := g.owner.Load()
	return o == 0 || o == GetGoRoutineID()
}
