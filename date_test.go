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
	"testing"
	"time"
)

func TestDate(t *testing.T) {
	t.Setenv("TZ", "Australia/Melbourne")
	d := Date{Year: 2013, Month: 2, Day: 3, Hour: 6, Minute: 30, Second: 15}

	want := time.Date(2013, 2, 3, 6, 30, 15, 0, time.UTC)
	if !d.Time().Equal(want) {
		t.Errorf("time: have %v, want %v", d.Time(), want)
	}
	if d.Unix() != 1359873015 {
		t.Errorf("unix: have %f, want 1359873015", d.Unix())
	}
	if s := d.String(); s != "2013-02-03T06:30:15" {
		t.Errorf("string: have %s", s)
	}

	w := make([]uint64, dateWords)
	d.encode(w)
	var d2 Date
	d2.decode(w)
	if d2 != d {
		t.Errorf("have %v, want %v", d2, d)
	}
}

func TestDateNormalized(t *testing.T) {
	d := Date{Year: 2013, Month: 1, Day: 32}
	if have := d.Time(); have.Month() != time.February || have.Day() != 1 {
		t.Errorf("have %v", have)
	}
	if s := d.String(); s != "2013-01-32T00:00:00" {
		t.Errorf("string: have %s", s)
	}
}
