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

import "math"

// LookupWords is the number of words in a lookup record. Files whose
// header gives a different lookup size (observation files) cannot be read.
const LookupWords = 64

// Zero-based word positions of the named lookup fields.
const (
	lValidTime         = 0
	lDataTime          = 6
	lDataLength        = 14
	lRows              = 17
	lColumns           = 18
	lFileStart         = 28
	lRecordCount       = 29
	lStashCode         = 41
	lPseudoDimension   = 42
	lHeightLevel       = 51
	lPoleLatitude      = 55
	lPoleLongitude     = 56
	lOriginLatitude    = 58
	lLatitudeInterval  = 59
	lOriginLongitude   = 60
	lLongitudeInterval = 61
	lMissingData       = 62
	lMKSScale          = 63
)

// Lookup is the lookup table entry describing a single field.
// As with the header, words without a name are carried through unchanged.
type Lookup struct {
	ValidTime Date
	DataTime  Date

	DataLength      int64
	Rows            int64
	Columns         int64
	FileStart       int64 // 1-based word offset of the field data
	RecordCount     int64
	StashCode       int64
	PseudoDimension int64

	HeightLevel       float64
	PoleLatitude      float64
	PoleLongitude     float64
	OriginLatitude    float64
	LatitudeInterval  float64
	OriginLongitude   float64
	LongitudeInterval float64
	MissingData       float64
	MKSScale          float64

	raw [LookupWords]uint64
}

func (l *Lookup) size() int { return LookupWords }

func (l *Lookup) decode(w []uint64) {
	copy(l.raw[:], w)
	l.ValidTime.decode(w[lValidTime : lValidTime+dateWords])
	l.DataTime.decode(w[lDataTime : lDataTime+dateWords])
	l.DataLength = int64(w[lDataLength])
	l.Rows = int64(w[lRows])
	l.Columns = int64(w[lColumns])
	l.FileStart = int64(w[lFileStart])
	l.RecordCount = int64(w[lRecordCount])
	l.StashCode = int64(w[lStashCode])
	l.PseudoDimension = int64(w[lPseudoDimension])
	l.HeightLevel = math.Float64frombits(w[lHeightLevel])
	l.PoleLatitude = math.Float64frombits(w[lPoleLatitude])
	l.PoleLongitude = math.Float64frombits(w[lPoleLongitude])
	l.OriginLatitude = math.Float64frombits(w[lOriginLatitude])
	l.LatitudeInterval = math.Float64frombits(w[lLatitudeInterval])
	l.OriginLongitude = math.Float64frombits(w[lOriginLongitude])
	l.LongitudeInterval = math.Float64frombits(w[lLongitudeInterval])
	l.MissingData = math.Float64frombits(w[lMissingData])
	l.MKSScale = math.Float64frombits(w[lMKSScale])
}

func (l *Lookup) encode(w []uint64) {
	copy(w, l.raw[:])
	l.ValidTime.encode(w[lValidTime : lValidTime+dateWords])
	l.DataTime.encode(w[lDataTime : lDataTime+dateWords])
	w[lDataLength] = uint64(l.DataLength)
	w[lRows] = uint64(l.Rows)
	w[lColumns] = uint64(l.Columns)
	w[lFileStart] = uint64(l.FileStart)
	w[lRecordCount] = uint64(l.RecordCount)
	w[lStashCode] = uint64(l.StashCode)
	w[lPseudoDimension] = uint64(l.PseudoDimension)
	w[lHeightLevel] = math.Float64bits(l.HeightLevel)
	w[lPoleLatitude] = math.Float64bits(l.PoleLatitude)
	w[lPoleLongitude] = math.Float64bits(l.PoleLongitude)
	w[lOriginLatitude] = math.Float64bits(l.OriginLatitude)
	w[lLatitudeInterval] = math.Float64bits(l.LatitudeInterval)
	w[lOriginLongitude] = math.Float64bits(l.OriginLongitude)
	w[lLongitudeInterval] = math.Float64bits(l.LongitudeInterval)
	w[lMissingData] = math.Float64bits(l.MissingData)
	w[lMKSScale] = math.Float64bits(l.MKSScale)
}

// Len returns the number of data values in the field, Rows*Columns.
// It returns -1 if either is negative or the product overflows an int.
func (l *Lookup) Len() int {
	if l.Rows < 0 || l.Columns < 0 {
		return -1
	}
	if l.Columns != 0 && l.Rows > math.MaxInt/l.Columns {
		return -1
	}
	return int(l.Rows * l.Columns)
}
