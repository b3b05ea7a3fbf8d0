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

// Package planfile stores merge lists as text files, so that changes
// between runs can be reviewed.
package planfile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"seehuhn.de/go/megamerge"
)

// Name returns the file name used for the plan of the named variant.
func Name(variant string) string {
	return strings.ReplaceAll(variant, " ", "") + ".plan"
}

// Format renders the merge list of a variant.
// The result has one line per font file, starting with the base font.
func Format(sel *megamerge.Selection, trunc *megamerge.Truncation) string {
	b := &strings.Builder{}
	fmt.Fprintf(b, "# %s\n", sel.Variant)
	fmt.Fprintf(b, "base\t%d\t%s\n", sel.BaseGlyphs, filepath.ToSlash(sel.Base))
	for _, e := range sel.Entries {
		fmt.Fprintf(b, "%s\t%d\t%s\n", e.Repository, e.NumGlyphs, e.File)
	}
	fmt.Fprintf(b, "# total %d glyphs\n", sel.Total)
	if trunc != nil {
		fmt.Fprintf(b, "# stopped at %s, %d candidates dropped\n", trunc.Repository, trunc.Dropped)
	}
	return b.String()
}

// Write stores the plan of a variant in dir.
func Write(dir string, sel *megamerge.Selection, trunc *megamerge.Truncation) error {
	fname := filepath.Join(dir, Name(sel.Variant))
	return os.WriteFile(fname, []byte(Format(sel, trunc)), 0o644)
}

// Read returns the stored plan of a variant.  If no plan is stored, the
// empty string is returned.
func Read(dir, variant string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, Name(variant)))
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Diff returns a unified diff between two plans of the named variant.
// The result is empty if the plans are equal.
func Diff(variant, before, after string) (string, error) {
	if before == after {
		return "", nil
	}
	u := difflib.UnifiedDiff{
		A:        splitLines(before),
		B:        splitLines(after),
		FromFile: "old/" + Name(variant),
		ToFile:   "new/" + Name(variant),
		Context:  2,
	}
	return difflib.GetUnifiedDiffString(u)
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return difflib.SplitLines(strings.TrimSuffix(s, "\n"))
}
