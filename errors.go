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
	"errors"
	"fmt"
)

// Reasons carried by FormatError.
var (
	ErrUnsupportedVersion = errors.New("unsupported file format version")
	ErrObservationFile    = errors.New("observation files are not supported")
	ErrInconsistentGrid   = errors.New("inconsistent grid shape")
	ErrBadFieldCount      = errors.New("field count out of range")
	ErrNotOnAxes          = errors.New("coordinate not on axes")
)

// Reasons carried by IOError.
var (
	ErrShortRead  = errors.New("short read")
	ErrShortWrite = errors.New("short write")
	ErrBadOffset  = errors.New("word offset out of range")
	ErrBadIndex   = errors.New("lookup index out of range")
	ErrClosed     = errors.New("file already closed")
)

// FormatError reports a file whose structure is not supported, for example
// a header version other than 20 or a lookup record of the wrong size.
type FormatError struct {
	Path  string
	Field string // header or lookup field that failed validation
	Value int64
	Err   error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("fieldsfile: %s: %s=%d: %v", e.Path, e.Field, e.Value, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }

// IOError reports a failure to read or write the underlying file.
// Word is the 1-based word offset of the operation, or 0 if there is none.
type IOError struct {
	Op   string
	Path string
	Word int64
	Err  error
}

func (e *IOError) Error() string {
	if e.Word > 0 {
		return fmt.Sprintf("fieldsfile: %s %s at word %d: %v", e.Op, e.Path, e.Word, e.Err)
	}
	return fmt.Sprintf("fieldsfile: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// NotFoundError is returned when no lookup record carries the requested
// stash code.
type NotFoundError struct {
	Path      string
	StashCode int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("fieldsfile: STASH %d not present in %s", e.StashCode, e.Path)
}
