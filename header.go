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

const (
	// HeaderWords is the number of words in the fixed-length header.
	HeaderWords = 256

	// IMDI is the integer missing data value.
	IMDI = -32768

	// SupportedVersion is the only header version, besides IMDI, that
	// can be opened.
	SupportedVersion = 20
)

// Zero-based word positions of the named header fields.
const (
	hVersion       = 0
	hInitialTime   = 20
	hValidTime     = 27
	hGeneratedTime = 34
	hLookupStart   = 149
	hLookupSize    = 150
	hFieldCount    = 151
	hDataStart     = 159
)

// Header is the fixed-length header at the start of every file.
// Only the words with a known meaning have fields; every other word is
// kept as read and written back unchanged.
type Header struct {
	Version       int64
	InitialTime   Date
	ValidTime     Date
	GeneratedTime Date

	LookupStart int64 // 1-based word offset of the lookup table
	LookupSize  int64 // words per lookup record
	FieldCount  int64 // number of lookup records
	DataStart   int64 // 1-based word offset of the data section

	raw [HeaderWords]uint64
}

func (h *Header) size() int { return HeaderWords }

func (h *Header) decode(w []uint64) {
	copy(h.raw[:], w)
	h.Version = int64(w[hVersion])
	h.InitialTime.decode(w[hInitialTime : hInitialTime+dateWords])
	h.ValidTime.decode(w[hValidTime : hValidTime+dateWords])
	h.GeneratedTime.decode(w[hGeneratedTime : hGeneratedTime+dateWords])
	h.LookupStart = int64(w[hLookupStart])
	h.LookupSize = int64(w[hLookupSize])
	h.FieldCount = int64(w[hFieldCount])
	h.DataStart = int64(w[hDataStart])
}

func (h *Header) encode(w []uint64) {
	copy(w, h.raw[:])
	w[hVersion] = uint64(h.Version)
	h.InitialTime.encode(w[hInitialTime : hInitialTime+dateWords])
	h.ValidTime.encode(w[hValidTime : hValidTime+dateWords])
	h.GeneratedTime.encode(w[hGeneratedTime : hGeneratedTime+dateWords])
	w[hLookupStart] = uint64(h.LookupStart)
	w[hLookupSize] = uint64(h.LookupSize)
	w[hFieldCount] = uint64(h.FieldCount)
	w[hDataStart] = uint64(h.DataStart)
}

// Word returns the raw header word at the 1-based position i, including
// any named field stored there as last read from the file. ok is false
// if i is not between 1 and HeaderWords.
func (h *Header) Word(i int) (w int64, ok bool) {
	if i < 1 || i > len(h.raw) {
		return 0, false
	}
	return int64(h.raw[i-1]), true
}

// validate checks that h describes a file this package can read.
func (h *Header) validate(name string) error {
	if h.Version != SupportedVersion && h.Version != IMDI {
		return &FormatError{Path: name, Field: "version", Value: h.Version, Err: ErrUnsupportedVersion}
	}
	if h.LookupSize != LookupWords {
		return &FormatError{Path: name, Field: "lookup_size", Value: h.LookupSize, Err: ErrObservationFile}
	}
	if h.FieldCount < 0 {
		return &FormatError{Path: name, Field: "field_count", Value: h.FieldCount, Err: ErrBadFieldCount}
	}
	return nil
}
