/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"dirpx.dev/tix/internal/gen"
)

func newGenerateCmd() *cobra.Command {
	v := viper.New()
	cmd := &cobra.Command{
		Use:   "generate [dir]",
		Short: "Write the registration file for a package",
		Long: `Scan the Go files of dir (default ".") and write the registration file.
Settings come from tixgen.yaml in dir, TIXGEN_* environment variables and flags.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := bindFlags(v, cmd.Flags()); err != nil {
				return err
			}
			dir := dirArg(args)
			cfg, err := gen.Load(v, dir)
			if err != nil {
				return err
			}
			target, err := gen.Generate(cmd.Context(), dir, cfg)
			if err != nil {
				return err
			}
			success.Fprintf(cmd.OutOrStdout(), "wrote %s\n", target)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringP("output", "o", gen.DefaultOutput, "generated file name")
	f.StringSlice("include", nil, "type name patterns to include")
	f.StringSlice("exclude", nil, "type name patterns to exclude")
	f.Bool("models", true, "emit model registrations")
	f.Bool("methods", true, "add exported methods to models")
	f.Bool("enums", true, "emit enum registrations")
	f.Bool("trim-enum-prefix", false, "drop the type name from enum constant names")
	return cmd
}

// configKeys maps generate flags to their configuration keys.
var configKeys = map[string]string{
	"output":           "output",
	"include":          "include",
	"exclude":          "exclude",
	"models":           "models",
	"methods":          "methods",
	"enums":            "enums",
	"trim-enum-prefix": "trim_enum_prefix",
}

// bindFlags lets set flags override the config file and environment.
func bindFlags(v *viper.Viper, f *pflag.FlagSet) error {
	for flag, key := range configKeys {
		if err := v.BindPFlag(key, f.Lookup(flag)); err != nil {
			return fmt.Errorf("binding flag %q: %w", flag, err)
		}
	}
	return nil
}

func dirArg(args []string) string {
	if len(args) == 0 {
		return "."
	}
	return args[0]
}
