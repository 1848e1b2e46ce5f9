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
	"time"
)

// dateWords is the number of words in a Date.
const dateWords = 6

// Date is a calendar date as stored in header and lookup records.
// It carries no time zone; Time interprets it as UTC.
type Date struct {
	Year   int64
	Month  int64 // 1-based
	Day    int64 // 1-based
	Hour   int64
	Minute int64
	Second int64
}

func (d *Date) decode(w []uint64) {
	d.Year = int64(w[0])
	d.Month = int64(w[1])
	d.Day = int64(w[2])
	d.Hour = int64(w[3])
	d.Minute = int64(w[4])
	d.Second = int64(w[5])
}

func (d Date) encode(w []uint64) {
	w[0] = uint64(d.Year)
	w[1] = uint64(d.Month)
	w[2] = uint64(d.Day)
	w[3] = uint64(d.Hour)
	w[4] = uint64(d.Minute)
	w[5] = uint64(d.Second)
}

// Time returns d as an instant in UTC. Out-of-range fields are normalized
// the way time.Date normalizes them.
func (d Date) Time() time.Time {
	return time.Date(int(d.Year), time.Month(d.Month), int(d.Day),
		int(d.Hour), int(d.Minute), int(d.Second), 0, time.UTC)
}

// Unix returns the number of seconds between the Unix epoch and d.
// Equal dates always give bit-identical results, so the value is usable
// as a time-axis key.
func (d Date) Unix() float64 {
	return float64(d.Time().Unix())
}

// String formats d as YYYY-MM-DDThh:mm:ss without normalizing it.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02dT%02d:%02d:%02d",
		d.Year, d.Month, d.Day, d.Hour, d.Minute, d.Second)
}
