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

// SkipReason explains why a repository contributes no file to a variant.
type SkipReason int

// These are the possible values of SkipReason.
const (
	SkipNoFamilies SkipReason = iota + 1 // no family metadata at all
	SkipNoFamily                         // no family matches the style
	SkipNoTarget                         // no file matches any fallback weight
)

func (r SkipReason) String() string {
	switch r {
	case SkipNoFamilies:
		return "no families"
	case SkipNoFamily:
		return "no matching family"
	case SkipNoTarget:
		return "no target found"
	default:
		return "unknown reason"
	}
}

// Diagnostics receives notices about skipped repositories and truncated
// variants.  Implementations must be safe for concurrent use, since
// variants may be processed in parallel.
type Diagnostics interface {
	Skipped(variant, repository string, reason SkipReason)
	Truncated(t *Truncation)
}

// Discard is a Diagnostics which ignores all notices.
var Discard Diagnostics = discard{}

type discard struct{}

func (discard) Skipped(string, string, SkipReason) {}
func (discard) Truncated(*Truncation)              {}
