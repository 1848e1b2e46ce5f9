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
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"
)

// memFile is an in-memory ReaderWriterAt.
type memFile struct {
	b []byte
}

func (m *memFile) ReadAt(p []byte, off int64) (int, error) {
	if off >= int64(len(m.b)) {
		return 0, io.EOF
	}
	n := copy(p, m.b[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

func (m *memFile) WriteAt(p []byte, off int64) (int, error) {
	if end := int(off) + len(p); end > len(m.b) {
		m.b = append(m.b, make([]byte, end-len(m.b))...)
	}
	return copy(m.b[off:], p), nil
}

// testLookupStart is the word where the lookup table of test files begins.
const testLookupStart = HeaderWords + 1

// newTestHeader returns a valid header for a file with n fields.
// Some reserved words are set so that round trips can be checked.
func newTestHeader(n int) *Header {
	h := &Header{
		Version:     SupportedVersion,
		InitialTime: Date{Year: 2013, Month: 1, Day: 1},
		ValidTime:   Date{Year: 2013, Month: 1, Day: 2},
		LookupStart: testLookupStart,
		LookupSize:  LookupWords,
		FieldCount:  int64(n),
		DataStart:   testLookupStart + int64(n)*LookupWords,
	}
	h.raw[1] = 3          // word 2
	h.raw[99] = 1<<63 | 7 // word 100
	h.raw[255] = 0xdeadbeef
	return h
}

// buildTestFile lays out a file with the given lookups and payloads.
// The Rows, Columns and FileStart of each lookup are set from its
// payload, which is stored as a single row.
func buildTestFile(t *testing.T, w ReaderWriterAt, h *Header, lookups []Lookup, payloads [][]float64) {
	t.Helper()
	start := h.DataStart
	for i := range lookups {
		if lookups[i].Rows == 0 && lookups[i].Columns == 0 {
			lookups[i].Rows = 1
			lookups[i].Columns = int64(len(payloads[i]))
		}
		lookups[i].FileStart = start
		lookups[i].raw[12] = uint64(100 + i) // word 13
		words := make([]uint64, len(payloads[i]))
		for j, v := range payloads[i] {
			words[j] = math.Float64bits(v)
		}
		if err := writeWords(w, "test", start, words); err != nil {
			t.Fatal(err)
		}
		start += int64(len(words))
	}
	if err := writeRecords(w, "test", 1, h); err != nil {
		t.Fatal(err)
	}
	recs := make([]record, len(lookups))
	for i := range lookups {
		recs[i] = &lookups[i]
	}
	if len(recs) > 0 {
		if err := writeRecords(w, "test", h.LookupStart, recs...); err != nil {
			t.Fatal(err)
		}
	}
}

// createTestFile writes a test file to a temporary directory and
// returns its path.
func createTestFile(t *testing.T, h *Header, lookups []Lookup, payloads [][]float64) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.pp")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	buildTestFile(t, f, h, lookups, payloads)
	return path
}

// scenarioFile creates a file with two STASH 16 fields, at heights 0 and
// 1000, and one STASH 24 field.
func scenarioFile(t *testing.T) string {
	t.Helper()
	valid := Date{Year: 2013, Month: 2, Day: 3, Hour: 6}
	lookups := []Lookup{
		{StashCode: 16, HeightLevel: 0, ValidTime: valid, Rows: 2, Columns: 3,
			OriginLatitude: -10, LatitudeInterval: 5, OriginLongitude: 100, LongitudeInterval: 0.5},
		{StashCode: 24, HeightLevel: 0, ValidTime: valid},
		{StashCode: 16, HeightLevel: 1000, ValidTime: valid, Rows: 2, Columns: 3,
			OriginLatitude: -10, LatitudeInterval: 5, OriginLongitude: 100, LongitudeInterval: 0.5},
	}
	payloads := [][]float64{
		{1, 2, 3, 4, 5, 6},
		{-1, -2},
		{7, 8, 9, 10, 11, 12},
	}
	return createTestFile(t, newTestHeader(len(lookups)), lookups, payloads)
}
