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

package megamerge

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"seehuhn.de/go/megamerge/catalog"
)

// Variant is one output font, for example the bold weight of a
// sans-serif build.
type Variant struct {
	// Name is the display name of the merged font.
	Name string

	Weight string

	// Base is the path of the base font.  The base font always comes
	// first in the merge list.
	Base string

	Query Query

	// DropTables lists the tables to omit from the merged font.
	DropTables []string

	// CopyMetrics requests that the vertical metrics of the merged font
	// are taken from the base font.
	CopyMetrics bool
}

// VariantError indicates that a variant could not be processed.
type VariantError struct {
	Variant string
	Err     error
}

func (err *VariantError) Error() string {
	return "variant " + err.Variant + ": " + err.Err.Error()
}

func (err *VariantError) Unwrap() error {
	return err.Err
}

// Result is the outcome of processing one variant.
type Result struct {
	Variant    *Variant
	Selection  *Selection
	Truncation *Truncation

	// Output is the file written by the merger.  It is empty if no
	// merge was performed.
	Output string

	// Err is set if the variant failed.  Failures of one variant do not
	// affect other variants.
	Err error
}

// PlanVariant computes the merge list for v.
//
// The query of v is used with its Variant field set to v.Name.
// A non-nil Truncation is also reported to diag.
func PlanVariant(c *catalog.Catalog, v *Variant, counter GlyphCounter, diag Diagnostics, ceiling int) (*Result, error) {
	if diag == nil {
		diag = Discard
	}

	baseGlyphs, err := counter.NumGlyphs(v.Base)
	if err != nil {
		return nil, &VariantError{Variant: v.Name, Err: err}
	}

	q := v.Query
	q.Variant = v.Name
	candidates := Resolve(c, &q, diag)

	sel, trunc, err := Select(v.Name, v.Base, baseGlyphs, candidates, counter, ceiling)
	if err != nil {
		return nil, &VariantError{Variant: v.Name, Err: err}
	}
	if trunc != nil {
		diag.Truncated(trunc)
	}

	return &Result{
		Variant:    v,
		Selection:  sel,
		Truncation: trunc,
	}, nil
}

// MergeRequest describes one merge operation.
type MergeRequest struct {
	// Name is the display name of the merged font.
	Name string

	// Paths lists the input files; the base font comes first.
	Paths []string

	DropTables  []string
	CopyMetrics bool
}

// Merger combines font files into one font and saves the result.
type Merger interface {
	// Merge writes the merged font and returns the name of the file
	// written.
	Merge(ctx context.Context, req *MergeRequest) (string, error)
}

// Options controls the processing of several variants.
type Options struct {
	// Ceiling is the glyph budget.  If zero, MaxGlyphs is used.
	Ceiling int

	// Jobs is the maximum number of variants processed at the same
	// time.  If zero, runtime.GOMAXPROCS(0) is used.
	Jobs int

	Diagnostics Diagnostics
}

// PlanAll computes the merge lists for all variants.
//
// The results are in the same order as variants.  Variants run
// concurrently; variants which have not started when ctx is cancelled
// fail with the context's error.
func PlanAll(ctx context.Context, c *catalog.Catalog, variants []*Variant, counter GlyphCounter, opt *Options) []*Result {
	return run(ctx, c, variants, counter, nil, opt)
}

// Build computes the merge list for every variant and passes it to m.
// A variant whose merge fails reports the error in its Result; other
// variants are not affected.
func Build(ctx context.Context, c *catalog.Catalog, variants []*Variant, counter GlyphCounter, m Merger, opt *Options) []*Result {
	return run(ctx, c, variants, counter, m, opt)
}

func run(ctx context.Context, c *catalog.Catalog, variants []*Variant, counter GlyphCounter, m Merger, opt *Options) []*Result {
	if opt == nil {
		opt = &Options{}
	}
	jobs := opt.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	results := make([]*Result, len(variants))

	var g errgroup.Group
	g.SetLimit(jobs)
	for i, v := range variants {
		g.Go(func() error {
			results[i] = runOne(ctx, c, v, counter, m, opt)
			return nil
		})
	}
	_ = g.Wait() // errors are reported per variant

	return results
}

func runOne(ctx context.Context, c *catalog.Catalog, v *Variant, counter GlyphCounter, m Merger, opt *Options) *Result {
	if err := ctx.Err(); err != nil {
		return &Result{Variant: v, Err: &VariantError{Variant: v.Name, Err: err}}
	}

	res, err := PlanVariant(c, v, counter, opt.Diagnostics, opt.Ceiling)
	if err != nil {
		return &Result{Variant: v, Err: err}
	}
	if m == nil {
		return res
	}

	out, err := m.Merge(ctx, &MergeRequest{
		Name:        v.Name,
		Paths:       res.Selection.Paths(),
		DropTables:  v.DropTables,
		CopyMetrics: v.CopyMetrics,
	})
	if err != nil {
		res.Err = &VariantError{Variant: v.Name, Err: err}
		return res
	}
	res.Output = out
	return res
}
