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
	"context"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/coecms/fieldsfile"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// input is a fieldsfile opened for reading.
type input struct {
	*fieldsfile.FieldsFile
	f  *os.File
	dl downloader
}

// openInput downloads path if it is remote and opens it read-only.
func openInput(ctx context.Context, path string) (*input, error) {
	in := new(input)
	local, err := in.dl.maybeDownload(ctx, path)
	if err != nil {
		return nil, err
	}
	in.f, err = os.Open(local)
	if err != nil {
		in.dl.cleanup()
		return nil, &fieldsfile.IOError{Op: "open", Path: path, Err: err}
	}
	in.FieldsFile, err = fieldsfile.OpenReaderWriter(in.f, path)
	if err != nil {
		in.f.Close()
		in.dl.cleanup()
		return nil, err
	}
	Log.WithFields(logrus.Fields{
		"file":   path,
		"fields": in.FieldCount(),
	}).Debug("opened fieldsfile")
	return in, nil
}

func (in *input) Close() error {
	in.FieldsFile.Close()
	err := in.f.Close()
	in.dl.cleanup()
	return err
}

// Stash writes the STASH code of every field in the file at path to w,
// one per line. If unique is true each code is written once, in
// increasing order.
func Stash(ctx context.Context, w io.Writer, path string, unique bool) error {
	in, err := openInput(ctx, path)
	if err != nil {
		return err
	}
	defer in.Close()

	codes := in.StashCodes()
	if unique {
		var l fieldsfile.ValueList
		for _, c := range codes {
			l.Add(float64(c))
		}
		codes = codes[:0]
		for _, v := range l.Array() {
			codes = append(codes, int64(v))
		}
	}
	for _, c := range codes {
		if _, err := fmt.Fprintf(w, "%d\n", c); err != nil {
			return err
		}
	}
	return nil
}

// Describe writes the valid time, grid size and height of every field
// with the given STASH code in the file at path to w. If stats is true the
// minimum, maximum and mean of each field are also written.
func Describe(ctx context.Context, w io.Writer, path string, stash int64, stats bool) error {
	in, err := openInput(ctx, path)
	if err != nil {
		return err
	}
	defer in.Close()

	idx := in.Match(stash)
	if len(idx) == 0 {
		return &fieldsfile.NotFoundError{Path: path, StashCode: stash}
	}
	var data []float64
	for _, i := range idx {
		l := in.Lookups()[i]
		_, err = fmt.Fprintf(w, "valid: %s\nsize: %dx%d\nheight: %e\n",
			l.ValidTime, l.Rows, l.Columns, l.HeightLevel)
		if err != nil {
			return err
		}
		if !stats {
			continue
		}
		data, err = in.ReadPayload(i, data)
		if err != nil {
			return err
		}
		lo, hi, mean, ok := fieldStats(data, l.MissingData)
		if !ok {
			if _, err = fmt.Fprintln(w, "stats: no valid data"); err != nil {
				return err
			}
			continue
		}
		if _, err = fmt.Fprintf(w, "min: %e\nmax: %e\nmean: %e\n", lo, hi, mean); err != nil {
			return err
		}
	}
	return nil
}

// fieldStats returns the minimum, maximum and mean of the points in data
// that are not missing. ok is false if every point is missing.
func fieldStats(data []float64, missing float64) (lo, hi, mean float64, ok bool) {
	valid := make([]float64, 0, len(data))
	for _, v := range data {
		if v == missing || math.IsNaN(v) {
			continue
		}
		valid = append(valid, v)
	}
	if len(valid) == 0 {
		return 0, 0, 0, false
	}
	return floats.Min(valid), floats.Max(valid), stat.Mean(valid, nil), true
}

// Extract writes every field with the given STASH code in the file at
// path to a netCDF file at output, with the data in a variable called
// name. output is overwritten if it exists.
func Extract(ctx context.Context, path string, stash int64, output, name string) error {
	in, err := openInput(ctx, path)
	if err != nil {
		return err
	}
	defer in.Close()

	a, err := fieldsfile.NewAxes(in.FieldsFile, stash)
	if err != nil {
		return err
	}

	up := new(uploader)
	defer up.cleanup()
	local := up.maybeUpload(output)
	if up.err != nil {
		return fmt.Errorf("ffutil: preparing output '%s': %v", output, up.err)
	}
	w, err := os.Create(local)
	if err != nil {
		return &fieldsfile.IOError{Op: "create", Path: output, Err: err}
	}
	if err = a.WriteNetCDF(in.FieldsFile, w, name); err != nil {
		w.Close()
		return err
	}
	if err = w.Close(); err != nil {
		return &fieldsfile.IOError{Op: "close", Path: output, Err: err}
	}
	Log.WithFields(logrus.Fields{
		"stash":  stash,
		"fields": a.Count,
		"shape":  a.Shape(),
		"output": output,
	}).Info("extracted field")
	return up.uploadOutput(ctx)
}

// UniqueHeights renumbers the height levels of the fields with the given
// STASH code in the local file at path and saves the change.
func UniqueHeights(path string, stash int64) error {
	if IsBlob(path) {
		return fmt.Errorf("ffutil: uniqueheights can only modify local files, not '%s'", path)
	}
	ff, err := fieldsfile.Open(path)
	if err != nil {
		return err
	}
	defer ff.Close()
	n, err := fieldsfile.UniqueHeights(ff, stash)
	if err != nil {
		return err
	}
	if err = ff.Write(); err != nil {
		return err
	}
	Log.WithFields(logrus.Fields{
		"file":   path,
		"stash":  stash,
		"fields": n,
	}).Info("renumbered height levels")
	return nil
}
