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
	"fmt"

	"github.com/spf13/cobra"
)

// UsageError is returned when a command is called with the wrong
// arguments.
type UsageError struct {
	Cmd string
	Msg string
}

func (e *UsageError) Error() string {
	return fmt.Sprintf("ffutil: usage of %s: %s", e.Cmd, e.Msg)
}

// exactArgs returns an argument validator that requires n arguments.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			return &UsageError{
				Cmd: cmd.Name(),
				Msg: fmt.Sprintf("accepts %d arg(s), received %d; usage: %s", n, len(args), cmd.UseLine()),
			}
		}
		return nil
	}
}
