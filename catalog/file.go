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

package catalog

import (
	"path"
	"strings"
	"unicode"
	"unicode/utf8"
)

// File is the path of a font file, relative to the catalog root and using
// forward slashes.  Weight, hinting and style are encoded in the path, for
// example "fonts/NotoSansAdlam/hinted/ttf/NotoSansAdlam-Bold.ttf".
type File string

// Hinted reports whether the file is in a "hinted" directory.
func (f File) Hinted() bool {
	return strings.Contains(string(f), "/hinted/")
}

// Unhinted reports whether the file is in an "unhinted" directory.
func (f File) Unhinted() bool {
	return strings.Contains(string(f), "/unhinted/")
}

// MatchesWeight reports whether f is a TrueType file for the given weight,
// that is whether the path contains weight followed by ".ttf".
//
// This is a plain substring test: "NotoSans-ExtraBold.ttf" and
// "NotoSans-CondensedBold.ttf" both match "Bold".  Unwanted variants are
// removed with exclusion substrings, or by using [File.MatchesWeightStrict].
func (f File) MatchesWeight(weight string) bool {
	if weight == "" {
		return false
	}
	return strings.Contains(string(f), weight+".ttf")
}

// MatchesWeightStrict is like [File.MatchesWeight], but the weight must be
// the final component of the file name and must not be the tail of a
// longer word.  Thus "NotoSans-Bold.ttf" matches "Bold", but
// "NotoSans-ExtraBold.ttf" does not.
func (f File) MatchesWeightStrict(weight string) bool {
	if weight == "" {
		return false
	}
	name, ok := strings.CutSuffix(path.Base(string(f)), ".ttf")
	if !ok {
		return false
	}
	rest, ok := strings.CutSuffix(name, weight)
	if !ok {
		return false
	}
	if rest == "" {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(rest)
	return !unicode.IsLetter(r)
}

// ContainsAny reports whether the path contains any of the given
// substrings.  Empty substrings are ignored.
func (f File) ContainsAny(subs []string) bool {
	return containsAny(string(f), subs)
}

// ContainsAny reports whether the family name contains any of the given
// substrings.  Empty substrings are ignored.
func (fam *Family) ContainsAny(subs []string) bool {
	return containsAny(fam.Name, subs)
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if sub != "" && strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
