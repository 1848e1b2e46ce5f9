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
	"io"
	"math"

	"github.com/arloliu/mebo/endian"
)

// WordSize is the size in bytes of one file word.
const WordSize = 8

// byteOrder is the order of every word on disk.
var byteOrder = endian.GetBigEndianEngine()

// record is a fixed-size structure made of whole file words.
type record interface {
	// size is the number of words in the record.
	size() int
	// decode sets the record from native-order words.
	decode(w []uint64)
	// encode stores the record as native-order words.
	encode(w []uint64)
}

// maxWord is the last word whose byte offset fits in an int64.
const maxWord = math.MaxInt64/WordSize + 1

// wordByteOffset converts a 1-based word offset into a byte offset
// from the start of the file.
func wordByteOffset(word int64) (int64, error) {
	if word < 1 || word > maxWord {
		return 0, ErrBadOffset
	}
	return (word - 1) * WordSize, nil
}

// checkWords returns an error unless the n words starting at word are
// all inside r. Only the last of them is read.
func checkWords(r io.ReaderAt, name string, word, n int64) error {
	if n <= 0 {
		return nil
	}
	if word < 1 || n > maxWord-word+1 {
		return &IOError{Op: "read", Path: name, Word: word,
			Err: fmt.Errorf("%w: %d words from word %d", ErrBadOffset, n, word)}
	}
	var last [1]uint64
	err := readWords(r, name, word+n-1, last[:])
	var ioe *IOError
	if errors.As(err, &ioe) {
		ioe.Word = word
	}
	return err
}

// readWords reads len(dst) consecutive big-endian words starting at
// the 1-based word offset word and stores them in dst in native order.
// Anything less than the full amount is an error.
func readWords(r io.ReaderAt, name string, word int64, dst []uint64) error {
	off, err := wordByteOffset(word)
	if err != nil {
		return &IOError{Op: "read", Path: name, Word: word, Err: err}
	}
	buf := make([]byte, len(dst)*WordSize)
	n, err := r.ReadAt(buf, off)
	if n < len(buf) {
		if err == nil || err == io.EOF || err == io.ErrUnexpectedEOF {
			err = fmt.Errorf("%w: got %d of %d bytes", ErrShortRead, n, len(buf))
		} else {
			err = fmt.Errorf("%w: %w", ErrShortRead, err)
		}
		return &IOError{Op: "read", Path: name, Word: word, Err: err}
	}
	for i := range dst {
		dst[i] = byteOrder.Uint64(buf[i*WordSize:])
	}
	return nil
}

// writeWords writes src as big-endian words starting at the 1-based
// word offset word. src itself is not modified.
func writeWords(w io.WriterAt, name string, word int64, src []uint64) error {
	off, err := wordByteOffset(word)
	if err != nil {
		return &IOError{Op: "write", Path: name, Word: word, Err: err}
	}
	buf := make([]byte, 0, len(src)*WordSize)
	for _, v := range src {
		buf = byteOrder.AppendUint64(buf, v)
	}
	n, err := w.WriteAt(buf, off)
	if n < len(buf) {
		if err == nil {
			err = fmt.Errorf("%w: wrote %d of %d bytes", ErrShortWrite, n, len(buf))
		} else {
			err = fmt.Errorf("%w: %w", ErrShortWrite, err)
		}
		return &IOError{Op: "write", Path: name, Word: word, Err: err}
	}
	return nil
}

// readRecords reads the given records back to back, starting at word.
func readRecords(r io.ReaderAt, name string, word int64, recs ...record) error {
	n := 0
	for _, rec := range recs {
		n += rec.size()
	}
	w := make([]uint64, n)
	if err := readWords(r, name, word, w); err != nil {
		return err
	}
	for _, rec := range recs {
		rec.decode(w[:rec.size()])
		w = w[rec.size():]
	}
	return nil
}

// writeRecords writes the given records back to back, starting at word.
func writeRecords(wa io.WriterAt, name string, word int64, recs ...record) error {
	var w []uint64
	for _, rec := range recs {
		start := len(w)
		w = append(w, make([]uint64, rec.size())...)
		rec.encode(w[start:])
	}
	return writeWords(wa, name, word, w)
}
