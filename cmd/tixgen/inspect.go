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
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"dirpx.dev/tix/internal/gen"
)

func newInspectCmd() *cobra.Command {
	var render bool
	cmd := &cobra.Command{
		Use:   "inspect [dir]",
		Short: "List the declarations tixgen would register",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := dirArg(args)
			cfg, err := gen.Load(viper.New(), dir)
			if err != nil {
				return err
			}
			pkg, err := gen.ScanDir(cmd.Context(), dir, cfg.Output)
			if err != nil {
				return err
			}
			plan, err := gen.NewPlan(pkg, cfg)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if render {
				src, err := gen.Render(plan)
				if err != nil {
					return err
				}
				_, err = out.Write(src)
				return err
			}
			printPlan(out, plan)
			return nil
		},
	}
	cmd.Flags().BoolVar(&render, "render", false, "print the generated source instead of a summary")
	return cmd
}

func printPlan(w io.Writer, p *gen.Plan) {
	heading.Fprintf(w, "package %s\n", p.Package)
	for _, m := range p.Models {
		names := make([]string, 0, len(m.Symbols))
		for _, s := range m.Symbols {
			names = append(names, s.Name)
		}
		fmt.Fprintf(w, "  model %s ", m.Type)
		muted.Fprintf(w, "(%d)", len(names))
		fmt.Fprintf(w, ": %s\n", strings.Join(names, ", "))
	}
	for _, e := range p.Enums {
		names := make([]string, 0, len(e.Values))
		for _, v := range e.Values {
			names = append(names, v.Name)
		}
		fmt.Fprintf(w, "  enum %s ", e.Type)
		muted.Fprintf(w, "(%d)", len(names))
		fmt.Fprintf(w, ": %s\n", strings.Join(names, ", "))
	}
}
