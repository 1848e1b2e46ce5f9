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
	"math"
	"reflect"
	"testing"
)

func TestWordByteOffset(t *testing.T) {
	for word, want := range map[int64]int64{1: 0, 2: 8, 257: 2048} {
		have, err := wordByteOffset(word)
		if err != nil {
			t.Fatal(err)
		}
		if have != want {
			t.Errorf("word %d: have %d, want %d", word, have, want)
		}
	}
	if _, err := wordByteOffset(maxWord); err != nil {
		t.Errorf("last word: %v", err)
	}
	for _, word := range []int64{0, -3, maxWord + 1, math.MaxInt64} {
		if _, err := wordByteOffset(word); !errors.Is(err, ErrBadOffset) {
			t.Errorf("word %d: want bad offset, have %v", word, err)
		}
	}
}

func TestWriteReadWords(t *testing.T) {
	m := new(memFile)
	src := []uint64{0x0102030405060708, 1 << 63, 0}
	orig := append([]uint64(nil), src...)
	if err := writeWords(m, "mem", 2, src); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(src, orig) {
		t.Errorf("source modified: %x", src)
	}
	if len(m.b) != 4*WordSize {
		t.Fatalf("file length: have %d, want %d", len(m.b), 4*WordSize)
	}
	// Big-endian, after one untouched word.
	want := []byte{0, 0, 0, 0, 0, 0, 0, 0, 1, 2, 3, 4, 5, 6, 7, 8, 0x80}
	if !reflect.DeepEqual(m.b[:len(want)], want) {
		t.Errorf("bytes: have %x, want %x", m.b[:len(want)], want)
	}

	dst := make([]uint64, 3)
	if err := readWords(m, "mem", 2, dst); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(dst, src) {
		t.Errorf("have %x, want %x", dst, src)
	}
}

func TestReadWordsShort(t *testing.T) {
	m := &memFile{b: make([]byte, 3*WordSize)}
	err := readWords(m, "mem", 2, make([]uint64, 3))
	var ioe *IOError
	if !errors.As(err, &ioe) {
		t.Fatalf("want IOError, have %v", err)
	}
	if !errors.Is(err, ErrShortRead) || ioe.Word != 2 || ioe.Op != "read" {
		t.Errorf("wrong error: %v", err)
	}
	if err := readWords(m, "mem", 0, make([]uint64, 1)); !errors.Is(err, ErrBadOffset) {
		t.Errorf("want bad offset, have %v", err)
	}
}

func TestCheckWords(t *testing.T) {
	m := &memFile{b: make([]byte, 4*WordSize)}
	for _, n := range []int64{0, 1, 3} {
		if err := checkWords(m, "mem", 2, n); err != nil {
			t.Errorf("%d words: %v", n, err)
		}
	}
	err := checkWords(m, "mem", 2, 4)
	var ioe *IOError
	if !errors.As(err, &ioe) || !errors.Is(err, ErrShortRead) || ioe.Word != 2 {
		t.Errorf("past end: have %v", err)
	}
	for _, n := range []int64{maxWord, math.MaxInt64} {
		if err = checkWords(m, "mem", 2, n); !errors.Is(err, ErrBadOffset) {
			t.Errorf("%d words: want bad offset, have %v", n, err)
		}
	}
}
