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

package prefs

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// command line preferences are stored on a stack. the top of the stack is
// consulted when a Disk entry is added or loaded.
var (
	cmdLineCrit  sync.Mutex
	cmdLineStack []map[string]string
)

// PushCommandLineStack parses a prefs string and pushes the result onto the
// command line stack. The string is a list of key::value pairs separated by
// semi-colons. Badly formed pairs are ignored.
func PushCommandLineStack(prefs string) {
	cmdLineCrit.Lock()
	defer cmdLineCrit.Unlock()

	m := make(map[string]string)
	for _, kv := range strings.Split(prefs, ";") {
		k, v, ok := strings.Cut(kv, "::")
		if !ok {
			continue
		}
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		m[k] = strings.TrimSpace(v)
	}

	cmdLineStack = append(cmdLineStack, m)
}

// PopCommandLineStack removes the top of the command line stack. Returns the
// entries that were never consulted by a Disk, in the same format accepted by
// PushCommandLineStack().
func PopCommandLineStack() string {
	cmdLineCrit.Lock()
	defer cmdLineCrit.Unlock()

	if len(cmdLineStack) == 0 {
		return ""
	}

	m := cmdLineStack[len(cmdLineStack)-1]
	cmdLineStack = cmdLineStack[:len(cmdLineStack)-1]

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	s := make([]string, 0, len(keys))
	for _, k := range keys {
		s = append(s, fmt.Sprintf("%s::%s", k, m[k]))
	}

	return strings.Join(s, "; ")
}

// GetCommandLinePref returns the command line value for key. The entry is
// consumed by the lookup.
func GetCommandLinePref(key string) (bool, string) {
	cmdLineCrit.Lock()
	defer cmdLineCrit.Unlock()

	if len(cmdLineStack) == 0 {
		return false, ""
	}

	m := cmdLineStack[len(cmdLineStack)-1]
	v, ok := m[key]
	if ok {
		delete(m, key)
	}
	return ok, v
}
