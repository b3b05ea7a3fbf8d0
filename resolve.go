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
	"cmp"
	"slices"
	"strings"

	"seehuhn.de/go/megamerge/catalog"
)

// TierPredicate decides whether repositories of the given tier are
// eligible.
type TierPredicate func(tier int) bool

// TierRange returns a predicate which accepts tiers t with lo <= t <= hi.
func TierRange(lo, hi int) TierPredicate {
	return func(tier int) bool {
		return lo <= tier && tier <= hi
	}
}

// Query describes which files to pick for one output variant.
type Query struct {
	// Variant names the output variant in diagnostics.
	Variant string

	// Tiers selects the eligible repositories.  If Tiers is nil, all
	// tiers are eligible.
	Tiers TierPredicate

	// Banned lists repository identifiers which are never used.
	Banned []string

	// Style must be contained in the name of the family used from each
	// repository, for example "Sans".
	Style string

	// ExcludeFamilies lists substrings which disqualify a family name.
	ExcludeFamilies []string

	// Chain is the weight fallback chain.
	Chain []string

	// Secondary is tried, after the whole of Chain has failed, before a
	// repository is given up.  This can be used to fall back to the
	// Regular weight for repositories which only provide that.
	Secondary []string

	// ExcludeFiles lists substrings which disqualify a file path.
	ExcludeFiles []string

	// StrictWeights selects [catalog.File.MatchesWeightStrict] instead of
	// the substring test [catalog.File.MatchesWeight].
	StrictWeights bool
}

// Candidate is a font file chosen from one repository.
type Candidate struct {
	Repository string
	Tier       int
	Family     string
	File       catalog.File

	// Path is the location of File on disk.
	Path string
}

// Resolve chooses at most one file from every eligible repository.
//
// Repositories are eligible if their tier is accepted by q.Tiers and
// they are not banned.  The result is ordered by tier, with ties broken
// by repository identifier; this is the order in which the files are to
// be merged.  Repositories without a suitable file are reported to diag
// and omitted from the result.
func Resolve(c *catalog.Catalog, q *Query, diag Diagnostics) []Candidate {
	if diag == nil {
		diag = Discard
	}

	banned := make(map[string]bool, len(q.Banned))
	for _, id := range q.Banned {
		banned[id] = true
	}

	var repos []*catalog.Repository
	for id, r := range c.Repositories {
		if banned[id] {
			continue
		}
		if q.Tiers != nil && !q.Tiers(r.Tier) {
			continue
		}
		repos = append(repos, r)
	}
	slices.SortFunc(repos, func(a, b *catalog.Repository) int {
		return cmp.Or(cmp.Compare(a.Tier, b.Tier), strings.Compare(a.ID, b.ID))
	})

	match := catalog.File.MatchesWeight
	if q.StrictWeights {
		match = catalog.File.MatchesWeightStrict
	}

	var res []Candidate
	for _, r := range repos {
		if !r.HasFamilies() {
			diag.Skipped(q.Variant, r.ID, SkipNoFamilies)
			continue
		}

		fam := pickFamily(r.Families, q.Style, q.ExcludeFamilies)
		if fam == nil {
			diag.Skipped(q.Variant, r.ID, SkipNoFamily)
			continue
		}

		file, ok := pickFile(fam.Files, q.Chain, q.ExcludeFiles, match)
		if !ok && len(q.Secondary) > 0 {
			file, ok = pickFile(fam.Files, q.Secondary, q.ExcludeFiles, match)
		}
		if !ok {
			diag.Skipped(q.Variant, r.ID, SkipNoTarget)
			continue
		}

		res = append(res, Candidate{
			Repository: r.ID,
			Tier:       r.Tier,
			Family:     fam.Name,
			File:       file,
			Path:       c.Path(file),
		})
	}
	return res
}

// pickFamily returns the first family whose name contains style and none
// of the excluded substrings.
func pickFamily(families []*catalog.Family, style string, exclude []string) *catalog.Family {
	for _, fam := range families {
		if strings.Contains(fam.Name, style) && !fam.ContainsAny(exclude) {
			return fam
		}
	}
	return nil
}

// PickFile walks the weight chain and returns the file for the first
// weight which has one.  Weights are matched with
// [catalog.File.MatchesWeight].
//
// For each weight, files whose path contains one of the excluded
// substrings are ignored.  A hinted file is preferred; otherwise the
// first unhinted file is used.  Files which are neither hinted nor
// unhinted are never chosen.  Later weights in the chain are only
// considered if all earlier weights have no match.
func PickFile(files []catalog.File, chain, exclude []string) (catalog.File, bool) {
	return pickFile(files, chain, exclude, catalog.File.MatchesWeight)
}

// PickFileStrict is like [PickFile], but matches weights with
// [catalog.File.MatchesWeightStrict].
func PickFileStrict(files []catalog.File, chain, exclude []string) (catalog.File, bool) {
	return pickFile(files, chain, exclude, catalog.File.MatchesWeightStrict)
}

func pickFile(files []catalog.File, chain, exclude []string, match func(catalog.File, string) bool) (catalog.File, bool) {
	for _, weight := range chain {
		var unhinted catalog.File
		found := false
		for _, f := range files {
			if !match(f, weight) || f.ContainsAny(exclude) {
				continue
			}
			if f.Hinted() {
				return f, true
			}
			if !found && f.Unhinted() {
				unhinted = f
				found = true
			}
		}
		if found {
			return unhinted, true
		}
	}
	return "", false
}
