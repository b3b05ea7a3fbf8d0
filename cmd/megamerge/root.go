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
	"io"
	"slices"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"seehuhn.de/go/megamerge"
	"seehuhn.de/go/megamerge/catalog"
	"seehuhn.de/go/megamerge/glyphcount"
	"seehuhn.de/go/megamerge/internal/buildinfo"
	"seehuhn.de/go/megamerge/internal/logging"
	"seehuhn.de/go/megamerge/recipe"
)

type globalFlags struct {
	recipe   string
	logLevel string
	only     []string
	jobs     int
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:           "megamerge",
		Short:         "Build composite fonts from many font repositories",
		Long:          buildinfo.Short("megamerge") + "\n\nBuild composite fonts from many font repositories.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	pf := root.PersistentFlags()
	pf.StringVarP(&flags.recipe, "recipe", "r", "megamerge.yaml", "build recipe `file`")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level (trace, debug, info, warn, error)")
	pf.StringArrayVar(&flags.only, "only", nil, "process only the named `variant` (may be repeated)")
	pf.IntVarP(&flags.jobs, "jobs", "j", 0, "number of variants to process in parallel")

	root.AddCommand(newBuildCmd(flags), newPlanCmd(flags), newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), buildinfo.Short("megamerge"))
		},
	}
}

// session holds everything loaded before variants are processed.
type session struct {
	recipe   *recipe.Recipe
	catalog  *catalog.Catalog
	variants []*megamerge.Variant
	counter  *glyphcount.Counter
	logger   hclog.Logger
	options  *megamerge.Options
}

func openSession(flags *globalFlags, stderr io.Writer) (*session, error) {
	logger := logging.New("megamerge", flags.logLevel, stderr)

	r, err := recipe.Load(flags.recipe)
	if err != nil {
		return nil, err
	}

	logger.Debug("loading catalog", "repositories", r.Catalog.Repositories, "state", r.Catalog.State)
	cat, err := catalog.Load(r.Catalog.Repositories, r.Catalog.State, r.Catalog.Root)
	if err != nil {
		return nil, err
	}

	variants := r.Variants()
	if len(flags.only) > 0 {
		var selected []*megamerge.Variant
		for _, v := range variants {
			if slices.Contains(flags.only, v.Name) {
				selected = append(selected, v)
			}
		}
		for _, name := range flags.only {
			if !slices.ContainsFunc(selected, func(v *megamerge.Variant) bool { return v.Name == name }) {
				return nil, fmt.Errorf("unknown variant %q", name)
			}
		}
		variants = selected
	}

	jobs := r.Jobs
	if flags.jobs > 0 {
		jobs = flags.jobs
	}

	return &session{
		recipe:   r,
		catalog:  cat,
		variants: variants,
		counter:  glyphcount.New(),
		logger:   logger,
		options: &megamerge.Options{
			Ceiling:     r.Ceiling,
			Jobs:        jobs,
			Diagnostics: logging.Diagnostics(logger),
		},
	}, nil
}
