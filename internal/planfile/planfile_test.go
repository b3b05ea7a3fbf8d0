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

package planfile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seehuhn.de/go/megamerge"
)

func testSelection() *megamerge.Selection {
	return &megamerge.Selection{
		Variant:    "Noto Sans Living - Bold",
		Base:       "fonts/Inter/Inter_24pt-Bold.ttf",
		BaseGlyphs: 2500,
		Entries: []megamerge.Entry{
			{Candidate: megamerge.Candidate{Repository: "adlam", File: "fonts/NotoSansAdlam/hinted/ttf/NotoSansAdlam-Bold.ttf"}, NumGlyphs: 200},
			{Candidate: megamerge.Candidate{Repository: "arabic", File: "fonts/NotoSansArabic/hinted/ttf/NotoSansArabic-Bold.ttf"}, NumGlyphs: 1500},
		},
		Total: 4200,
	}
}

func TestFormat(t *testing.T) {
	sel := testSelection()
	got := Format(sel, &megamerge.Truncation{Repository: "cjk", Dropped: 4})
	want := "# Noto Sans Living - Bold\n" +
		"base\t2500\tfonts/Inter/Inter_24pt-Bold.ttf\n" +
		"adlam\t200\tfonts/NotoSansAdlam/hinted/ttf/NotoSansAdlam-Bold.ttf\n" +
		"arabic\t1500\tfonts/NotoSansArabic/hinted/ttf/NotoSansArabic-Bold.ttf\n" +
		"# total 4200 glyphs\n" +
		"# stopped at cjk, 4 candidates dropped\n"
	assert.Equal(t, want, got)
}

func TestWriteRead(t *testing.T) {
	dir := t.TempDir()
	sel := testSelection()

	old, err := Read(dir, sel.Variant)
	require.NoError(t, err)
	assert.Empty(t, old)

	require.NoError(t, Write(dir, sel, nil))
	old, err = Read(dir, sel.Variant)
	require.NoError(t, err)
	assert.Equal(t, Format(sel, nil), old)

	d, err := Diff(sel.Variant, old, Format(sel, nil))
	require.NoError(t, err)
	assert.Empty(t, d)

	sel.Entries[1].NumGlyphs = 1600
	sel.Total = 4300
	d, err = Diff(sel.Variant, old, Format(sel, nil))
	require.NoError(t, err)
	assert.Contains(t, d, "--- old/NotoSansLiving-Bold.plan")
	assert.Contains(t, d, "-arabic\t1500\t")
	assert.Contains(t, d, "+arabic\t1600\t")
	assert.Contains(t, d, "+# total 4300 glyphs")
}
