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

package framebuffer

// number of pages in a Flip.
const numPages = 2

// Flip is a two page rotating holder. The zero value is ready to use, with
// the index at the first page.
type Flip[T any] struct {
	flip    [numPages]T
	flipIdx int
}

// Next advances the page index and returns the page at the new index.
func (fl *Flip[T]) Next() *T {
	fl.flipIdx++
	if fl.flipIdx >= len(fl.flip) {
		fl.flipIdx = 0
	}
	return &fl.flip[fl.flipIdx]
}

// Current returns the page at the current index.
func (fl *Flip[T]) Current() *T {
	return &fl.flip[fl.flipIdx]
}

// Index returns the current page index.
func (fl *Flip[T]) Index() int {
	return fl.flipIdx
}

// Pages calls the function for each page in order. The function should
// return an error to stop the iteration.
func (fl *Flip[T]) Pages(f func(idx int, page *T) error) error {
	for i := range fl.flip {
		if err := f(i, &fl.flip[i]); err != nil {
			return err
		}
	}
	return nil
}
