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
	"strings"
	"time"

	"github.com/lnashier/viper"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cast"
)

// Log receives the log messages of the commands.
var Log = logrus.New()

func init() {
	Log.Formatter = &logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339Nano,
		DisableSorting:  true,
	}
}

// setLogLevel sets the level of Log from the LogLevel option.
func setLogLevel(cfg *viper.Viper) error {
	s, err := cast.ToStringE(cfg.Get("LogLevel"))
	if err != nil {
		return fmt.Errorf("ffutil: invalid LogLevel: %v", err)
	}
	if s == "" {
		s = "info"
	}
	level, err := logrus.ParseLevel(s)
	if err != nil {
		return fmt.Errorf("ffutil: invalid LogLevel: %v", err)
	}
	Log.Level = level
	return nil
}

// variableName returns the name of the netCDF data variable for the
// given STASH code from the VariableName option.
func variableName(cfg *viper.Viper, stash int64) (string, error) {
	tmpl, err := cast.ToStringE(cfg.Get("VariableName"))
	if err != nil {
		return "", fmt.Errorf("ffutil: invalid VariableName: %v", err)
	}
	tmpl = strings.TrimSpace(tmpl)
	switch strings.Count(tmpl, "%") {
	case 0:
		if tmpl == "" {
			return fmt.Sprintf("stash.%d", stash), nil
		}
		return tmpl, nil
	case 1:
		if strings.Contains(tmpl, "%d") {
			return fmt.Sprintf(tmpl, stash), nil
		}
	}
	return "", fmt.Errorf("ffutil: invalid VariableName %q: it may only contain a single %%d", tmpl)
}
