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
	"io"
	"os"

	"github.com/ctessum/cdf"
)

// netCDF dimension names, outermost first.
var ncDims = []string{"time", "height", "bin", "grid_latitude", "grid_longitude"}

// VariableName returns the default netCDF variable name for the data of
// the STASH code of a.
func (a *Axes) VariableName() string {
	return fmt.Sprintf("stash.%d", a.StashCode)
}

// netCDFHeader returns a defined header for the axes of a with a single
// data variable called name. Units and other field metadata are not
// known and are not written.
func (a *Axes) netCDFHeader(name string) (*cdf.Header, error) {
	// Zero-length dimensions are record dimensions in netCDF.
	if a.Rows < 1 || a.Columns < 1 {
		return nil, &FormatError{Field: "rows*columns", Value: int64(a.Rows * a.Columns), Err: ErrInconsistentGrid}
	}
	h := cdf.NewHeader(ncDims, a.Shape())
	h.AddAttribute("", "comment", fmt.Sprintf("STASH %d extracted from a UM fieldsfile", a.StashCode))

	h.AddVariable("time", []string{"time"}, []float64{0})
	h.AddAttribute("time", "units", "seconds since 1970-01-01 00:00:00 UTC")
	h.AddAttribute("time", "description", "Field validity time")
	h.AddVariable("height", []string{"height"}, []float64{0})
	h.AddAttribute("height", "description", "Field height level")
	h.AddVariable("bin", []string{"bin"}, []float64{0})
	h.AddAttribute("bin", "description", "Field pseudo dimension")
	h.AddVariable("grid_latitude", []string{"grid_latitude"}, []float64{0})
	h.AddAttribute("grid_latitude", "description", "Grid row latitude")
	h.AddVariable("grid_longitude", []string{"grid_longitude"}, []float64{0})
	h.AddAttribute("grid_longitude", "description", "Grid column longitude")

	h.AddVariable(name, ncDims, []float64{0})
	h.AddAttribute(name, "description", fmt.Sprintf("STASH %d", a.StashCode))
	h.AddAttribute(name, "stash_code", []int32{int32(a.StashCode)})
	h.Define()

	for _, err := range h.Check() {
		return nil, fmt.Errorf("fieldsfile: creating netcdf header: %v", err)
	}
	return h, nil
}

// createNetCDF writes the header and coordinate variables of a to w.
func (a *Axes) createNetCDF(w *os.File, name string) (*cdf.File, error) {
	if name == "" {
		name = a.VariableName()
	}
	h, err := a.netCDFHeader(name)
	if err != nil {
		return nil, err
	}
	f, err := cdf.Create(w, h) // writes the header to w
	if err != nil {
		return nil, fmt.Errorf("fieldsfile: creating netcdf file: %v", err)
	}
	coords := [][]float64{a.Time.Array(), a.Height.Array(), a.Bin.Array(), a.Latitudes(), a.Longitudes()}
	for i, v := range ncDims {
		if err := writeNCF(f, v, nil, coords[i]); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// WriteNetCDF writes every field of f with the STASH code of a to w as a
// classic netCDF file, reading one field at a time. The data variable is
// called name, or VariableName() if name is empty.
func (a *Axes) WriteNetCDF(f *FieldsFile, w *os.File, name string) error {
	if _, err := a.size(f); err != nil {
		return err
	}
	nf, err := a.createNetCDF(w, name)
	if err != nil {
		return err
	}
	if name == "" {
		name = a.VariableName()
	}
	err = a.Slices(f, func(s Slice) error {
		// Hyperslice of the field at a single level.
		return writeNCF(nf, name, []int{s.Time, s.Height, s.Bin, 0, 0}, s.Data)
	})
	if err != nil {
		return err
	}
	return cdf.UpdateNumRecs(w)
}

// WriteNetCDF writes e to w in the same layout as Axes.WriteNetCDF.
func (e *Extraction) WriteNetCDF(w *os.File, name string) error {
	nf, err := e.createNetCDF(w, name)
	if err != nil {
		return err
	}
	if name == "" {
		name = e.VariableName()
	}
	if err = writeNCF(nf, name, nil, e.Data.Elements); err != nil {
		return err
	}
	return cdf.UpdateNumRecs(w)
}

// writeNCF writes data to variable v starting at begin, or at the
// origin if begin is nil.
func writeNCF(f *cdf.File, v string, begin []int, data []float64) error {
	if len(data) == 0 {
		return nil
	}
	wr := f.Writer(v, begin, nil)
	n, err := wr.Write(data)
	if err == io.EOF && n == len(data) {
		// The writer reports io.EOF once it reaches the end of v.
		err = nil
	}
	if err != nil {
		return fmt.Errorf("fieldsfile: writing variable %s to netcdf file: %v", v, err)
	}
	return nil
}
