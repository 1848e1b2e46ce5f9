/*
Copyright © 2013 the fieldsfile authors.
This file is part of fieldsfile.

fieldsfile is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

fieldsfile is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with fieldsfile.  If not, see <http://www.gnu.org/licenses/>.
*/

package fieldsfile

// UniqueHeights renumbers the height level of every field with the given
// STASH code so that no two fields with the same valid time and pseudo
// dimension share a height. Within each such group the fields are
// numbered 1, 2, 3... in file order. Only the in-memory lookup table is
// changed; call Write to save it. It returns the number of fields
// renumbered, or a *NotFoundError if there are none.
func UniqueHeights(f *FieldsFile, stash int64) (int, error) {
	if err := f.closed("write"); err != nil {
		return 0, err
	}
	type group struct {
		time float64
		bin  int64
	}
	next := make(map[group]float64)
	n := 0
	for i := range f.lookup {
		l := &f.lookup[i]
		if l.StashCode != stash {
			continue
		}
		g := group{time: l.ValidTime.Unix(), bin: l.PseudoDimension}
		next[g]++
		l.HeightLevel = next[g]
		n++
	}
	if n == 0 {
		return 0, &NotFoundError{Path: f.name, StashCode: stash}
	}
	return n, nil
}
