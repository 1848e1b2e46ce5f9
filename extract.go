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

	"github.com/ctessum/sparse"
)

// Axes holds the coordinates of every field with one STASH code.
// The time, height and bin axes hold each distinct value of the fields'
// valid time (Unix seconds, UTC), height level and pseudo dimension.
// The horizontal grid is regular and is taken from the matching lookup
// records; no other grid types are supported.
type Axes struct {
	StashCode int64

	Time   ValueList
	Height ValueList
	Bin    ValueList

	Rows, Columns     int
	OriginLatitude    float64
	LatitudeInterval  float64
	OriginLongitude   float64
	LongitudeInterval float64

	// Count is the number of matching lookup records.
	Count int
}

// NewAxes scans the lookup table of f for fields with the given
// STASH code and builds their axes. It returns a *NotFoundError if there
// are none.
func NewAxes(f *FieldsFile, stash int64) (*Axes, error) {
	if err := f.closed("read"); err != nil {
		return nil, err
	}
	a := &Axes{StashCode: stash}
	for i := range f.lookup {
		l := &f.lookup[i]
		if l.StashCode != stash {
			continue
		}
		// Each value will only be added once.
		a.Time.Add(l.ValidTime.Unix())
		a.Height.Add(l.HeightLevel)
		a.Bin.Add(float64(l.PseudoDimension))

		// The horizontal grid of the last match is used.
		a.Rows = int(l.Rows)
		a.Columns = int(l.Columns)
		a.OriginLatitude = l.OriginLatitude
		a.LatitudeInterval = l.LatitudeInterval
		a.OriginLongitude = l.OriginLongitude
		a.LongitudeInterval = l.LongitudeInterval
		a.Count++
	}
	if a.Count == 0 {
		return nil, &NotFoundError{Path: f.name, StashCode: stash}
	}
	return a, nil
}

// Latitudes returns the latitude of each grid row.
func (a *Axes) Latitudes() []float64 {
	return gridPoints(a.OriginLatitude, a.LatitudeInterval, a.Rows)
}

// Longitudes returns the longitude of each grid column.
func (a *Axes) Longitudes() []float64 {
	return gridPoints(a.OriginLongitude, a.LongitudeInterval, a.Columns)
}

// gridPoints returns n points starting one step past origin.
func gridPoints(origin, step float64, n int) []float64 {
	o := make([]float64, n)
	for i := range o {
		o[i] = origin + step*float64(i+1)
	}
	return o
}

// Shape returns the extent of the time, height, bin, row and column axes.
func (a *Axes) Shape() []int {
	return []int{a.Time.Len(), a.Height.Len(), a.Bin.Len(), a.Rows, a.Columns}
}

// size returns the number of points in the full grid of a after checking
// that the data of every matching field of f lie inside the file.
func (a *Axes) size(f *FieldsFile) (int, error) {
	if err := f.closed("read"); err != nil {
		return 0, err
	}
	for _, i := range f.Match(a.StashCode) {
		if _, err := f.payloadLen(i); err != nil {
			return 0, err
		}
	}
	n := 1
	for _, d := range a.Shape() {
		if d < 0 || d != 0 && n > math.MaxInt/d {
			return 0, &FormatError{Path: f.name, Field: "grid size", Value: int64(d), Err: ErrInconsistentGrid}
		}
		n *= d
	}
	return n, nil
}

// Slice is the data of one field along with its position on the
// time, height and bin axes.
type Slice struct {
	Index  int // position of the field in the lookup table
	Time   int
	Height int
	Bin    int
	Data   []float64 // Rows*Columns values, row major
}

// Slices reads, in file order, each field of f with the STASH code of a and
// calls fn with it. The Data buffer is reused between calls; fn must copy
// anything it wants to keep. Slices stops at the first error from
// reading or from fn.
func (a *Axes) Slices(f *FieldsFile, fn func(Slice) error) error {
	if err := f.closed("read"); err != nil {
		return err
	}
	var data []float64
	for i := range f.lookup {
		l := &f.lookup[i]
		if l.StashCode != a.StashCode {
			continue
		}
		if l.Rows != int64(a.Rows) || l.Columns != int64(a.Columns) {
			return &FormatError{Path: f.name, Field: fmt.Sprintf("lookup[%d] rows*columns", i),
				Value: l.Rows * l.Columns, Err: ErrInconsistentGrid}
		}
		s := Slice{
			Index:  i,
			Time:   a.Time.Index(l.ValidTime.Unix()),
			Height: a.Height.Index(l.HeightLevel),
			Bin:    a.Bin.Index(float64(l.PseudoDimension)),
		}
		switch {
		case s.Time == NotFound:
			return &FormatError{Path: f.name, Field: fmt.Sprintf("lookup[%d] valid_time", i),
				Value: int64(l.ValidTime.Unix()), Err: ErrNotOnAxes}
		case s.Height == NotFound:
			return &FormatError{Path: f.name, Field: fmt.Sprintf("lookup[%d] height", i),
				Value: int64(l.HeightLevel), Err: ErrNotOnAxes}
		case s.Bin == NotFound:
			return &FormatError{Path: f.name, Field: fmt.Sprintf("lookup[%d] pseudo_dimension", i),
				Value: l.PseudoDimension, Err: ErrNotOnAxes}
		}
		var err error
		data, err = f.ReadPayload(i, data)
		if err != nil {
			return err
		}
		s.Data = data
		if err = fn(s); err != nil {
			return err
		}
	}
	return nil
}

// Extraction is every field with one STASH code arranged in a single
// array.
type Extraction struct {
	*Axes

	// Data has the dimensions [time, height, bin, row, column].
	// Positions with no matching field are zero.
	Data *sparse.DenseArray
}

// Extract reads all the fields of f with the given STASH code.
func Extract(f *FieldsFile, stash int64) (*Extraction, error) {
	a, err := NewAxes(f, stash)
	if err != nil {
		return nil, err
	}
	if _, err = a.size(f); err != nil {
		return nil, err
	}
	e := &Extraction{
		Axes: a,
		Data: sparse.ZerosDense(a.Shape()...),
	}
	layer := a.Rows * a.Columns
	err = a.Slices(f, func(s Slice) error {
		if layer == 0 {
			return nil
		}
		// The field is contiguous in the output array.
		start := e.Data.Index1d(s.Time, s.Height, s.Bin, 0, 0)
		copy(e.Data.Elements[start:start+layer], s.Data)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return e, nil
}
