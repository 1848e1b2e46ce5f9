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

// Command fieldsfile is a command-line interface for reading UM fieldsfiles.
package main

import (
	"fmt"
	"os"

	"github.com/coecms/fieldsfile/ffutil"
)

func main() {
	if err := ffutil.Root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
