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
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"seehuhn.de/go/megamerge"
	"seehuhn.de/go/megamerge/merge"
)

func newBuildCmd(flags *globalFlags) *cobra.Command {
	var dryRun bool
	var tool string

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Merge the fonts described by the recipe",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := openSession(flags, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			ctx := cmd.Context()

			var results []*megamerge.Result
			if dryRun {
				results = megamerge.PlanAll(ctx, s.catalog, s.variants, s.counter, s.options)
				for _, res := range results {
					if res.Err == nil {
						printMergeList(out, res.Variant.Name, res.Selection.Paths())
					}
				}
			} else {
				if err := os.MkdirAll(s.recipe.OutputDir, 0o755); err != nil {
					return err
				}
				m := &listingMerger{
					out: out,
					next: &merge.Engine{
						Command:   tool,
						OutputDir: s.recipe.OutputDir,
						Logger:    s.logger,
					},
				}
				results = megamerge.Build(ctx, s.catalog, s.variants, s.counter, m, s.options)
			}

			return report(out, s.logger, results)
		},
	}
	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "show the merge lists without merging")
	cmd.Flags().StringVar(&tool, "merge-tool", merge.DefaultCommand, "fontTools merge `command`")
	return cmd
}

// listingMerger prints the merge list before passing a request on.
type listingMerger struct {
	mu   sync.Mutex
	out  io.Writer
	next megamerge.Merger
}

func (m *listingMerger) Merge(ctx context.Context, req *megamerge.MergeRequest) (string, error) {
	m.mu.Lock()
	printMergeList(m.out, req.Name, req.Paths)
	m.mu.Unlock()
	return m.next.Merge(ctx, req)
}

func printMergeList(w io.Writer, name string, paths []string) {
	fmt.Fprintf(w, "Merging %s:\n", name)
	for _, p := range paths {
		fmt.Fprintf(w, "  %s\n", filepath.Base(p))
	}
}

// report prints the truncation warnings of all variants and returns an
// error if any variant failed.
func report(w io.Writer, logger hclog.Logger, results []*megamerge.Result) error {
	var failed int
	var warnings []string
	for _, res := range results {
		if res.Err != nil {
			logger.Error("variant failed", "variant", res.Variant.Name, "error", res.Err)
			failed++
		}
		if res.Truncation != nil {
			warnings = append(warnings, res.Truncation.String())
		}
	}

	if len(warnings) > 0 {
		fmt.Fprint(w, "\n\nWARNINGS:\n")
		for _, msg := range warnings {
			fmt.Fprintln(w, msg)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d variants failed", failed, len(results))
	}
	if len(warnings) == 0 {
		fmt.Fprintln(w, "Completed successfully")
	}
	return nil
}
