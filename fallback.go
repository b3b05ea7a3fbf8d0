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
	"errors"
	"fmt"
	"maps"
	"slices"
)

// FallbackTable maps a target weight to its fallback chain.
//
// The first element of each chain is the target weight itself, the
// remaining elements are tried in order when no file for the preceding
// weights exists.  Chains are flat: a fallback weight is never expanded
// into its own chain.
type FallbackTable map[string][]string

// DefaultFallbacks lists the fallback chains for the standard weight
// names.  Lighter weights fall back towards Regular, heavier weights fall
// back to the nearest available heavier or lighter neighbour.
var DefaultFallbacks = FallbackTable{
	"Thin":       {"Thin", "ExtraLight", "Light", "Regular"},
	"ExtraLight": {"ExtraLight", "Light", "Thin", "Regular"},
	"Light":      {"Light", "ExtraLight", "Regular"},
	"Regular":    {"Regular"},
	"Medium":     {"Medium", "Regular", "SemiBold"},
	"SemiBold":   {"SemiBold", "Medium", "Bold"},
	"Bold":       {"Bold", "SemiBold", "ExtraBold"},
	"ExtraBold":  {"ExtraBold", "Bold", "Black"},
	"Black":      {"Black", "ExtraBold", "Bold"},
}

var (
	errEmptyChain = errors.New("empty fallback chain")
)

// Chain returns the fallback chain for weight.
// Weights without an entry in the table have the chain {weight}.
func (t FallbackTable) Chain(weight string) []string {
	if chain, ok := t[weight]; ok {
		return slices.Clone(chain)
	}
	return []string{weight}
}

// With returns a new table where the entries of t are replaced by the
// entries of override.
func (t FallbackTable) With(override FallbackTable) FallbackTable {
	res := maps.Clone(t)
	if res == nil {
		res = FallbackTable{}
	}
	maps.Copy(res, override)
	return res
}

// Validate checks that every chain is non-empty, starts with its own
// weight and lists every weight at most once.
func (t FallbackTable) Validate() error {
	for _, weight := range slices.Sorted(maps.Keys(t)) {
		chain := t[weight]
		if len(chain) == 0 {
			return fmt.Errorf("weight %q: %w", weight, errEmptyChain)
		}
		if chain[0] != weight {
			return fmt.Errorf("weight %q: chain starts with %q", weight, chain[0])
		}
		seen := make(map[string]bool, len(chain))
		for _, w := range chain {
			if w == "" {
				return fmt.Errorf("weight %q: empty weight name in chain", weight)
			}
			if seen[w] {
				return fmt.Errorf("weight %q: %q listed twice", weight, w)
			}
			seen[w] = true
		}
	}
	return nil
}
