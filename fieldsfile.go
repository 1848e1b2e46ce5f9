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

// Package fieldsfile reads and writes UM fieldsfiles, the output format of
// the Unified Model.
//
// A fieldsfile is an array of big-endian 64 bit words. It starts with a
// header of 256 words, which gives the location of a lookup table holding
// one record per field, and each lookup record gives the location and
// shape of that field's data. Word offsets in the file are 1-based.
// The full format is described in UM technical paper F3.
//
// Fields are selected by STASH code. NewAxes and Extract arrange all
// fields with a given code along time, height and pseudo-level axes, and
// the result can be saved as netCDF.
package fieldsfile

import (
	"fmt"
	"io"
	"math"
	"os"
)

// Version gives the version number.
const Version = "0.2.0"

// ReaderWriterAt is the random-access storage underlying a FieldsFile.
type ReaderWriterAt interface {
	io.ReaderAt
	io.WriterAt
}

// FieldsFile is an open fieldsfile. The header and lookup table are read
// when the file is opened and held in memory; field data are read on
// request.
type FieldsFile struct {
	name   string
	rw     ReaderWriterAt
	closer io.Closer

	header *Header
	lookup []Lookup
}

// Open opens the named file in read-write mode and reads its header and
// lookup table. The file must already exist.
func Open(path string) (*FieldsFile, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, &IOError{Op: "open", Path: path, Err: err}
	}
	ff, err := OpenReaderWriter(f, path)
	if err != nil {
		f.Close()
		return nil, err
	}
	ff.closer = f
	return ff, nil
}

// OpenReaderWriter reads the header and lookup table from rw. name is only
// used in error messages. If rw is also an io.Closer, Close will not close
// it; that is left to the caller.
func OpenReaderWriter(rw ReaderWriterAt, name string) (*FieldsFile, error) {
	h := new(Header)
	if err := readRecords(rw, name, 1, h); err != nil {
		return nil, err
	}
	if err := h.validate(name); err != nil {
		return nil, err
	}

	if h.FieldCount > maxWord/LookupWords {
		return nil, &FormatError{Path: name, Field: "field_count", Value: h.FieldCount, Err: ErrBadFieldCount}
	}
	// The table must be in the file before it is allocated.
	if err := checkWords(rw, name, h.LookupStart, h.FieldCount*LookupWords); err != nil {
		return nil, err
	}
	lookup := make([]Lookup, h.FieldCount)
	if len(lookup) > 0 {
		recs := make([]record, len(lookup))
		for i := range lookup {
			recs[i] = &lookup[i]
		}
		if err := readRecords(rw, name, h.LookupStart, recs...); err != nil {
			return nil, err
		}
	}
	return &FieldsFile{
		name:   name,
		rw:     rw,
		header: h,
		lookup: lookup,
	}, nil
}

// Name returns the name the file was opened with.
func (f *FieldsFile) Name() string { return f.name }

// Header returns the file header. Changes to it are kept in memory
// until Write is called.
func (f *FieldsFile) Header() *Header { return f.header }

// Lookups returns the lookup table. As with Header, changes to the returned
// records are only saved by Write.
func (f *FieldsFile) Lookups() []Lookup { return f.lookup }

// FieldCount returns the number of lookup records.
func (f *FieldsFile) FieldCount() int { return len(f.lookup) }

// Write saves the in-memory header and lookup table to the file.
// Field data are not touched.
func (f *FieldsFile) Write() error {
	if err := f.closed("write"); err != nil {
		return err
	}
	if err := writeRecords(f.rw, f.name, 1, f.header); err != nil {
		return err
	}
	if len(f.lookup) == 0 {
		return nil
	}
	recs := make([]record, len(f.lookup))
	for i := range f.lookup {
		recs[i] = &f.lookup[i]
	}
	return writeRecords(f.rw, f.name, f.header.LookupStart, recs...)
}

// Close releases the file and the in-memory header and lookup table.
// It does not call Write. Close may be called on a nil or already closed
// FieldsFile.
func (f *FieldsFile) Close() error {
	if f == nil || f.rw == nil {
		return nil
	}
	c := f.closer
	f.rw, f.closer, f.header, f.lookup = nil, nil, nil, nil
	if c == nil {
		return nil
	}
	if err := c.Close(); err != nil {
		return &IOError{Op: "close", Path: f.name, Err: err}
	}
	return nil
}

// ReadPayload reads the data of field i, Rows*Columns values starting at
// its FileStart word, in file order. dst is reused if it is large enough.
// On error the returned slice is nil.
func (f *FieldsFile) ReadPayload(i int, dst []float64) ([]float64, error) {
	if err := f.closed("read"); err != nil {
		return nil, err
	}
	if i < 0 || i >= len(f.lookup) {
		return nil, &IOError{Op: "read", Path: f.name, Err: fmt.Errorf("%w: %d", ErrBadIndex, i)}
	}
	n, err := f.payloadLen(i)
	if err != nil {
		return nil, err
	}
	if cap(dst) < n {
		dst = make([]float64, n)
	}
	dst = dst[:n]
	w := make([]uint64, n)
	if err = readWords(f.rw, f.name, f.lookup[i].FileStart, w); err != nil {
		return nil, err
	}
	for j, v := range w {
		dst[j] = math.Float64frombits(v)
	}
	return dst, nil
}

// payloadLen returns the number of values in field i after checking
// that its grid is valid and its data lie inside the file.
func (f *FieldsFile) payloadLen(i int) (int, error) {
	l := &f.lookup[i]
	n := l.Len()
	if n < 0 {
		return 0, &FormatError{Path: f.name, Field: fmt.Sprintf("lookup[%d] rows", i),
			Value: l.Rows, Err: ErrInconsistentGrid}
	}
	if err := checkWords(f.rw, f.name, l.FileStart, int64(n)); err != nil {
		return 0, err
	}
	return n, nil
}

// closed returns an ErrClosed IOError for op if f has been closed.
func (f *FieldsFile) closed(op string) error {
	if f.rw == nil {
		return &IOError{Op: op, Path: f.name, Err: ErrClosed}
	}
	return nil
}

// Match returns the indices of the lookup records with the given STASH
// code, in file order. It returns nil once f is closed.
func (f *FieldsFile) Match(stash int64) []int {
	var o []int
	for i := range f.lookup {
		if f.lookup[i].StashCode == stash {
			o = append(o, i)
		}
	}
	return o
}

// StashCodes returns the STASH code of every lookup record, in file order.
// It returns an empty slice once f is closed.
func (f *FieldsFile) StashCodes() []int64 {
	o := make([]int64, len(f.lookup))
	for i := range f.lookup {
		o[i] = f.lookup[i].StashCode
	}
	return o
}
