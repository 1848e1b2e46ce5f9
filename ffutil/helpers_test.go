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

package ffutil

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/arloliu/mebo/endian"
)

// testField is one field of a test file.
type testField struct {
	stash      int64
	height     float64
	rows, cols int64
	missing    float64
	data       []float64
}

// writeTestFile writes a fieldsfile holding fields to dir and returns
// its path. The words are laid out by hand following UM documentation
// paper F3, independently of the fieldsfile package.
func writeTestFile(t *testing.T, dir string, fields []testField) string {
	t.Helper()
	const (
		headerWords = 256
		lookupWords = 64
	)
	lookupStart := int64(headerWords + 1)
	dataStart := lookupStart + int64(len(fields))*lookupWords

	n := int(dataStart) - 1
	for _, f := range fields {
		n += len(f.data)
	}
	words := make([]uint64, n)
	words[0] = 20 // version
	words[149] = uint64(lookupStart)
	words[150] = lookupWords
	words[151] = uint64(len(fields))
	words[159] = uint64(dataStart)

	start := dataStart
	for i, f := range fields {
		l := words[headerWords+i*lookupWords:]
		copy(l[0:6], []uint64{2013, 2, 3, 6, 0, 0}) // valid time
		l[14] = uint64(len(f.data))
		l[17] = uint64(f.rows)
		l[18] = uint64(f.cols)
		l[28] = uint64(start)
		l[41] = uint64(f.stash)
		l[51] = math.Float64bits(f.height)
		l[58] = math.Float64bits(-10) // origin latitude
		l[59] = math.Float64bits(5)
		l[60] = math.Float64bits(100) // origin longitude
		l[61] = math.Float64bits(0.5)
		l[62] = math.Float64bits(f.missing)
		for j, v := range f.data {
			words[int(start)-1+j] = math.Float64bits(v)
		}
		start += int64(len(f.data))
	}

	be := endian.GetBigEndianEngine()
	b := make([]byte, 0, len(words)*8)
	for _, w := range words {
		b = be.AppendUint64(b, w)
	}
	path := filepath.Join(dir, "test.pp")
	if err := os.WriteFile(path, b, 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

// testFile writes a file with two STASH 16 fields, at heights 0 and 1000,
// and one STASH 3 field between them.
func testFile(t *testing.T) string {
	t.Helper()
	return writeTestFile(t, t.TempDir(), []testField{
		{stash: 16, height: 0, rows: 2, cols: 2, missing: -99, data: []float64{1, 2, 3, 4}},
		{stash: 3, height: 0, rows: 1, cols: 1, missing: -99, data: []float64{42}},
		{stash: 16, height: 1000, rows: 2, cols: 2, missing: -99, data: []float64{5, 6, -99, 8}},
	})
}
