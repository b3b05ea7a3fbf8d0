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

// Package megamerge selects the font files which are combined into a
// composite font.
//
// For every output variant, for example the bold weight of a sans-serif
// build, the package picks at most one font file from each eligible font
// repository and keeps the combined glyph count within the limit of the
// TrueType format.  The selection is done in two steps:
//
//   - [Resolve] filters and orders the repositories of a
//     [catalog.Catalog] and chooses one candidate file per repository,
//     walking a weight fallback chain (see [FallbackTable]).
//   - [Select] accumulates glyph counts, starting from the base font,
//     and truncates the candidate list at the first candidate which
//     would exceed the glyph budget.
//
// [PlanVariant] combines both steps for one variant.  [PlanAll] and
// [Build] process many variants concurrently; variants share only the
// read-only catalog and the glyph count cache.  The actual merging of
// font tables is delegated to a [Merger].
//
// Repositories which cannot contribute a file are skipped and reported
// through [Diagnostics].  Truncation is not an error; it is returned as a
// [Truncation] and also reported through Diagnostics.
package megamerge
