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
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/coecms/fieldsfile"
	"github.com/ctessum/cdf"
)

func TestStash(t *testing.T) {
	path := testFile(t)
	ctx := context.Background()

	var b bytes.Buffer
	if err := Stash(ctx, &b, path, false); err != nil {
		t.Fatal(err)
	}
	if have, want := b.String(), "16\n3\n16\n"; have != want {
		t.Errorf("have %q, want %q", have, want)
	}

	b.Reset()
	if err := Stash(ctx, &b, path, true); err != nil {
		t.Fatal(err)
	}
	if have, want := b.String(), "3\n16\n"; have != want {
		t.Errorf("unique: have %q, want %q", have, want)
	}
}

func TestStashMissingFile(t *testing.T) {
	err := Stash(context.Background(), new(bytes.Buffer), filepath.Join(t.TempDir(), "nope.pp"), false)
	var ioe *fieldsfile.IOError
	if !errors.As(err, &ioe) {
		t.Errorf("want IOError, have %v", err)
	}
}

func TestDescribe(t *testing.T) {
	path := testFile(t)
	ctx := context.Background()

	var b bytes.Buffer
	if err := Describe(ctx, &b, path, 16, false); err != nil {
		t.Fatal(err)
	}
	want := `valid: 2013-02-03T06:00:00
size: 2x2
height: 0.000000e+00
valid: 2013-02-03T06:00:00
size: 2x2
height: 1.000000e+03
`
	if b.String() != want {
		t.Errorf("have\n%s\nwant\n%s", b.String(), want)
	}

	b.Reset()
	if err := Describe(ctx, &b, path, 16, true); err != nil {
		t.Fatal(err)
	}
	want = `valid: 2013-02-03T06:00:00
size: 2x2
height: 0.000000e+00
min: 1.000000e+00
max: 4.000000e+00
mean: 2.500000e+00
valid: 2013-02-03T06:00:00
size: 2x2
height: 1.000000e+03
min: 5.000000e+00
max: 8.000000e+00
mean: 6.333333e+00
`
	if b.String() != want {
		t.Errorf("stats: have\n%s\nwant\n%s", b.String(), want)
	}

	err := Describe(ctx, &b, path, 99, false)
	var nf *fieldsfile.NotFoundError
	if !errors.As(err, &nf) || nf.StashCode != 99 {
		t.Errorf("want NotFoundError, have %v", err)
	}
}

// failWriter accepts n writes and fails after that.
type failWriter struct{ n int }

var errFull = errors.New("writer full")

func (w *failWriter) Write(p []byte) (int, error) {
	if w.n == 0 {
		return 0, errFull
	}
	w.n--
	return len(p), nil
}

func TestDescribeWriteError(t *testing.T) {
	path := testFile(t)
	for _, tc := range []struct {
		n     int
		stats bool
	}{{0, false}, {1, false}, {1, true}} {
		err := Describe(context.Background(), &failWriter{n: tc.n}, path, 16, tc.stats)
		if !errors.Is(err, errFull) {
			t.Errorf("%d writes, stats %v: want write error, have %v", tc.n, tc.stats, err)
		}
	}
}

func TestFieldStats(t *testing.T) {
	if _, _, _, ok := fieldStats([]float64{-1, -1}, -1); ok {
		t.Error("all missing should not be ok")
	}
	lo, hi, mean, ok := fieldStats([]float64{3, -1, 1, 2}, -1)
	if !ok || lo != 1 || hi != 3 || mean != 2 {
		t.Errorf("have %g, %g, %g, %v", lo, hi, mean, ok)
	}
}

func TestExtract(t *testing.T) {
	path := testFile(t)
	out := filepath.Join(t.TempDir(), "out.nc")
	if err := Extract(context.Background(), path, 16, out, "theta"); err != nil {
		t.Fatal(err)
	}
	checkExtract(t, out, "theta")
}

func checkExtract(t *testing.T, path, name string) {
	t.Helper()
	w, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()
	f, err := cdf.Open(w)
	if err != nil {
		t.Fatal(err)
	}
	if have := f.Header.Lengths(name); !reflect.DeepEqual(have, []int{1, 2, 1, 2, 2}) {
		t.Fatalf("lengths: have %v", have)
	}
	r := f.Reader(name, nil, nil)
	data := make([]float64, 8)
	if _, err = r.Read(data); err != nil {
		t.Fatal(err)
	}
	want := []float64{1, 2, 3, 4, 5, 6, -99, 8}
	if !reflect.DeepEqual(data, want) {
		t.Errorf("have %v, want %v", data, want)
	}
}

func TestUniqueHeights(t *testing.T) {
	path := testFile(t)
	if err := UniqueHeights(path, 16); err != nil {
		t.Fatal(err)
	}
	var b bytes.Buffer
	if err := Describe(context.Background(), &b, path, 16, false); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(b.String(), "height: 1.000000e+00\n") || !strings.Contains(b.String(), "height: 2.000000e+00\n") {
		t.Errorf("heights not renumbered:\n%s", b.String())
	}
	if err := UniqueHeights("file://bucket/test.pp", 16); err == nil {
		t.Error("remote file should not be modified")
	}
}
