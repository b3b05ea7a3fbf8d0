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
	"fmt"
)

// MaxGlyphs is the largest number of glyphs a TrueType or OpenType font
// can hold.  Glyph IDs are 16 bit values.
const MaxGlyphs = 65535

// GlyphCounter reports the number of glyphs in a font file.
type GlyphCounter interface {
	NumGlyphs(path string) (int, error)
}

// Budget tracks the number of glyphs used so far against a fixed ceiling.
type Budget struct {
	Ceiling int
	Total   int
}

// Add adds n glyphs to the total, if the new total does not exceed the
// ceiling.  The return value reports whether the glyphs were added.
func (b *Budget) Add(n int) bool {
	if b.Total+n > b.Ceiling {
		return false
	}
	b.Total += n
	return true
}

// Entry is a candidate which was accepted into a selection.
type Entry struct {
	Candidate
	NumGlyphs int
}

// Selection is the ordered list of files to be merged for one variant.
type Selection struct {
	Variant string

	Base       string
	BaseGlyphs int

	// Entries lists the accepted candidates in merge order.
	Entries []Entry

	// Total is the number of glyphs in all selected files combined.
	Total int
}

// Paths returns the file names to merge, starting with the base font.
func (s *Selection) Paths() []string {
	res := make([]string, 0, len(s.Entries)+1)
	res = append(res, s.Base)
	for _, e := range s.Entries {
		res = append(res, e.Path)
	}
	return res
}

// Truncation describes the point where a selection was cut short
// because the glyph budget was exhausted.
type Truncation struct {
	Variant    string
	Repository string
	Path       string

	Total     int // glyphs selected before the rejected candidate
	NumGlyphs int // glyphs in the rejected candidate
	Ceiling   int

	// Dropped is the number of candidates left out, including the
	// rejected one.
	Dropped int
}

func (t *Truncation) String() string {
	return fmt.Sprintf("too many glyphs while building %s, stopped at %s (%d+%d > %d)",
		t.Variant, t.Repository, t.Total, t.NumGlyphs, t.Ceiling)
}

// Select builds the merge list for a variant.
//
// The base font is always included and its glyphs count towards the
// budget.  Candidates are then added in order, looking up each glyph
// count with counter, as long as the running total stays at or below
// ceiling.  At the first candidate which does not fit, selection stops;
// the returned Truncation names this candidate.  Later candidates are
// not considered, even if they would fit.  If ceiling is zero,
// [MaxGlyphs] is used.
//
// An error is returned only if a glyph count cannot be determined.
func Select(variant, base string, baseGlyphs int, candidates []Candidate, counter GlyphCounter, ceiling int) (*Selection, *Truncation, error) {
	if ceiling == 0 {
		ceiling = MaxGlyphs
	}

	sel := &Selection{
		Variant:    variant,
		Base:       base,
		BaseGlyphs: baseGlyphs,
	}
	budget := &Budget{Ceiling: ceiling, Total: baseGlyphs}

	for i, cand := range candidates {
		n, err := counter.NumGlyphs(cand.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("repository %s: %w", cand.Repository, err)
		}
		if !budget.Add(n) {
			sel.Total = budget.Total
			trunc := &Truncation{
				Variant:    variant,
				Repository: cand.Repository,
				Path:       cand.Path,
				Total:      budget.Total,
				NumGlyphs:  n,
				Ceiling:    ceiling,
				Dropped:    len(candidates) - i,
			}
			return sel, trunc, nil
		}
		sel.Entries = append(sel.Entries, Entry{Candidate: cand, NumGlyphs: n})
	}

	sel.Total = budget.Total
	return sel, nil, nil
}
