// seehuhn.de/go/megamerge - build composite fonts from many font repositories
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"seehuhn.de/go/megamerge"
	"seehuhn.de/go/megamerge/internal/planfile"
)

func newPlanCmd(flags *globalFlags) *cobra.Command {
	var writeDir, againstDir string

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Show the merge list of every variant",
		Long: `Show the merge list of every variant.

With --against, the merge lists are compared to plan files written by an
earlier run with --write, and only the differences are shown.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(flags, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if writeDir != "" {
				if err := os.MkdirAll(writeDir, 0o755); err != nil {
					return err
				}
			}

			results := megamerge.PlanAll(cmd.Context(), s.catalog, s.variants, s.counter, s.options)
			for _, res := range results {
				if res.Err != nil {
					continue
				}
				name := res.Variant.Name
				text := planfile.Format(res.Selection, res.Truncation)

				if againstDir != "" {
					old, err := planfile.Read(againstDir, name)
					if err != nil {
						return err
					}
					d, err := planfile.Diff(name, old, text)
					if err != nil {
						return err
					}
					if d == "" {
						fmt.Fprintf(out, "# %s: unchanged\n", name)
					} else {
						fmt.Fprint(out, d)
					}
				} else {
					fmt.Fprint(out, text)
				}

				if writeDir != "" {
					if err := planfile.Write(writeDir, res.Selection, res.Truncation); err != nil {
						return err
					}
				}
			}

			return report(out, s.logger, results)
		},
	}
	cmd.Flags().StringVar(&writeDir, "write", "", "store plan files in `dir`")
	cmd.Flags().StringVar(&againstDir, "against", "", "compare with plan files in `dir`")
	return cmd
}
