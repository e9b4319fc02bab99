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

package resources

import (
	"os"
	"path/filepath"
	"strings"
)

// EnvironmentPath is the name of the environment variable that overrides
// every other base path.
const EnvironmentPath = "XPLAY_RESOURCES"

// the portable path is used in preference to the resource path if it exists.
const portablePath = "xplay_resources"

// basePath returns the directory that resource paths are rooted in.
func basePath() (string, error) {
	if b := os.Getenv(EnvironmentPath); b != "" {
		return filepath.Clean(b), nil
	}
	if fi, err := os.Stat(portablePath); err == nil && fi.IsDir() {
		return portablePath, nil
	}
	return resourcePath()
}

// JoinPath prepends the resource base path to the supplied path elements.
// Directories leading up to the final element are created as required. The
// final element itself is never created.
func JoinPath(path ...string) (string, error) {
	b, err := basePath()
	if err != nil {
		return "", err
	}

	p := filepath.Join(path...)
	if p != b && !strings.HasPrefix(p, b+string(filepath.Separator)) {
		p = filepath.Join(b, p)
	}

	err = os.MkdirAll(filepath.Dir(p), 0o700)
	if err != nil {
		return "", err
	}

	return p, nil
}
