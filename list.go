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

import (
	"fmt"
	"math"
	"sort"
)

// NotFound is the index returned for values that are not in a ValueList.
const NotFound = -1

// ValueList is an ordered set of values. It holds each value added to it
// once, in increasing order, and is used to give every distinct
// coordinate value a fixed position along an axis.
// Values are compared with ==, so coordinates that should coincide must be
// bit-identical. The zero value is an empty list.
type ValueList []float64

// search returns the index where v is or would be inserted.
func (l *ValueList) search(v float64) int {
	return sort.Search(len(*l), func(i int) bool {
		return (*l)[i] >= v
	})
}

// Add adds v to the list if it is not already present.
// NaN is never equal to a value in the list and is ignored.
func (l *ValueList) Add(v float64) {
	if math.IsNaN(v) {
		return
	}
	i := l.search(v)
	if i < len(*l) && (*l)[i] == v {
		return
	}

	// Insert the value.
	(*l) = append((*l), 0)
	copy((*l)[i+1:], (*l)[i:])
	(*l)[i] = v
}

// Len returns the number of values in the list.
func (l *ValueList) Len() int {
	return len(*l)
}

// Array returns a copy of the values in the list in increasing order.
func (l *ValueList) Array() []float64 {
	o := make([]float64, len(*l))
	copy(o, *l)
	return o
}

// Index returns the position of v in the list, or NotFound if v has
// not been added.
func (l *ValueList) Index(v float64) int {
	i := l.search(v)
	if i < len(*l) && (*l)[i] == v {
		return i
	}
	return NotFound
}

func (l *ValueList) String() string {
	s := ""
	for i, v := range *l {
		if i != 0 {
			s += "\n"
		}
		s += fmt.Sprint(v)
	}
	return s
}
