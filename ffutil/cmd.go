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

// Package ffutil contains the command-line interface for reading UM
// fieldsfiles.
package ffutil

import (
	"context"
	"fmt"
	"strconv"

	"github.com/coecms/fieldsfile"
	"github.com/lnashier/viper"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	// Options are the configuration options available to the commands.
	options = []struct {
		name, usage, shorthand string
		defaultVal             interface{}
		flagsets               []*pflag.FlagSet
	}{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "LogLevel",
			usage: `
              LogLevel specifies the level of messages to log. It can be
              one of panic, fatal, error, warning, info or debug.`,
			defaultVal: "info",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "unique",
			usage: `
              unique specifies whether to print each STASH code only once,
              in increasing order, instead of once per field in file order.`,
			shorthand:  "u",
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{stashCmd.Flags()},
		},
		{
			name: "stats",
			usage: `
              stats specifies whether to also print the minimum, maximum and
              mean of each field. Points equal to the field's missing data
              value are not included.`,
			shorthand:  "s",
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{describeCmd.Flags()},
		},
		{
			name: "VariableName",
			usage: `
              VariableName specifies the name of the data variable in the
              output netCDF file. A %d in the name is replaced with the
              STASH code.`,
			defaultVal: "stash.%d",
			flagsets:   []*pflag.FlagSet{extractCmd.Flags()},
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("FIELDSFILE")
	Cfg.AutomaticEnv()

	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 { // We don't want to create the same flag twice.
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch option.defaultVal.(type) {
			case string:
				if option.shorthand == "" {
					set.String(option.name, option.defaultVal.(string), option.usage)
				} else {
					set.StringP(option.name, option.shorthand, option.defaultVal.(string), option.usage)
				}
			case bool:
				if option.shorthand == "" {
					set.Bool(option.name, option.defaultVal.(bool), option.usage)
				} else {
					set.BoolP(option.name, option.shorthand, option.defaultVal.(bool), option.usage)
				}
			default:
				panic("invalid argument type")
			}
			Cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}
}

func init() {
	// Link the commands together.
	Root.AddCommand(versionCmd)
	Root.AddCommand(stashCmd)
	Root.AddCommand(describeCmd)
	Root.AddCommand(extractCmd)
	Root.AddCommand(uniqueHeightsCmd)
}

// setConfig finds and reads in the configuration file, if there is one,
// and sets up logging.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(cfgpath)
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("ffutil: problem reading configuration file: %v", err)
		}
	}
	return setLogLevel(Cfg)
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "fieldsfile",
	Short: "Tools for UM fieldsfiles.",
	Long: `fieldsfile reads the fieldsfile output of the Unified Model (UM).
Use the subcommands specified below to list, describe and extract fields.

Input files may be local paths, http(s) URLs, or blob storage locations
starting with gs://, s3:// or file://. Remote inputs are downloaded to a
temporary directory before they are read.

Configuration can be changed by using a configuration file (and providing the
path to the file using the --config flag), by using command-line arguments,
or by setting environment variables in the format 'FIELDSFILE_var' where 'var'
is the name of the variable to be set.
Refer to https://github.com/spf13/viper for additional configuration information.`,
	DisableAutoGenTag: true,
	SilenceUsage:      true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of fieldsfile.",
	Args:  exactArgs(0),
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("fieldsfile v%s\n", fieldsfile.Version)
	},
	DisableAutoGenTag: true,
}

var stashCmd = &cobra.Command{
	Use:   "stash FILENAME",
	Short: "List the STASH code of each field.",
	Long: `stash prints the STASH code of every field in FILENAME, one per line,
in the order the fields appear in the lookup table. With --unique each code
is printed once, in increasing order.`,
	Args: exactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return Stash(context.Background(), cmd.OutOrStdout(), args[0], Cfg.GetBool("unique"))
	},
	DisableAutoGenTag: true,
}

var describeCmd = &cobra.Command{
	Use:   "describe FILENAME STASHCODE",
	Short: "Describe the fields with a STASH code.",
	Long: `describe prints the valid time, grid size and height level of every
field in FILENAME with the given STASH code.`,
	Args: exactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		stash, err := parseStash(cmd, args[1])
		if err != nil {
			return err
		}
		return Describe(context.Background(), cmd.OutOrStdout(), args[0], stash, Cfg.GetBool("stats"))
	},
	DisableAutoGenTag: true,
}

var extractCmd = &cobra.Command{
	Use:   "extract FILENAME STASHCODE OUTPUT",
	Short: "Extract a STASH variable to netCDF.",
	Long: `extract writes every field in FILENAME with the given STASH code to
the netCDF file OUTPUT, on the dimensions time, height, bin, grid_latitude
and grid_longitude. OUTPUT is overwritten if it exists. Units and other
metadata are not written. OUTPUT may be a blob storage location, in which
case the file is written locally and then uploaded.`,
	Args: exactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		stash, err := parseStash(cmd, args[1])
		if err != nil {
			return err
		}
		name, err := variableName(Cfg, stash)
		if err != nil {
			return err
		}
		return Extract(context.Background(), args[0], stash, args[2], name)
	},
	DisableAutoGenTag: true,
}

var uniqueHeightsCmd = &cobra.Command{
	Use:   "uniqueheights FILENAME STASHCODE",
	Short: "Make the height levels of a STASH variable unique.",
	Long: `uniqueheights modifies FILENAME in place so that no two fields with the
given STASH code, valid time and pseudo dimension share a height level. The
fields in each group are numbered 1, 2, 3... in file order. FILENAME must be
a local file.`,
	Args: exactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		stash, err := parseStash(cmd, args[1])
		if err != nil {
			return err
		}
		return UniqueHeights(args[0], stash)
	},
	DisableAutoGenTag: true,
}

// parseStash reads a STASH code command-line argument.
func parseStash(cmd *cobra.Command, arg string) (int64, error) {
	stash, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, &UsageError{Cmd: cmd.Name(), Msg: fmt.Sprintf("invalid STASH code %q", arg)}
	}
	return stash, nil
}
