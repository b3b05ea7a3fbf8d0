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
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seehuhn.de/go/megamerge/internal/makefont"
)

// setup writes a small catalog where every font is a copy of Go Regular.
// The glyph budget allows the base font and two more fonts.
func setup(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	n := makefont.TrueType().NumGlyphs()

	files := []string{
		"fonts/Inter/Inter-Regular.ttf",
		"fonts/a/hinted/ttf/A-Regular.ttf",
		"fonts/b/unhinted/ttf/B-Regular.ttf",
		"fonts/c/hinted/ttf/C-Regular.ttf",
		"fonts/d/hinted/ttf/D-Regular.ttf",
	}
	for _, f := range files {
		require.NoError(t, makefont.WriteTrueType(filepath.Join(dir, filepath.FromSlash(f))))
	}

	repos := `{"a": {"tier": 1}, "b": {"tier": 2}, "c": {"tier": 2}, "d": {"tier": 5}, "e": {"tier": 1}}`
	state := `{
		"a": {"families": {"Noto Sans A": {"files": ["fonts/a/hinted/ttf/A-Regular.ttf"]}}},
		"b": {"families": {"Noto Sans B": {"files": ["fonts/b/unhinted/ttf/B-Regular.ttf"]}}},
		"c": {"families": {"Noto Sans C": {"files": ["fonts/c/hinted/ttf/C-Regular.ttf"]}}},
		"d": {"families": {"Noto Sans D": {"files": ["fonts/d/hinted/ttf/D-Regular.ttf"]}}}
	}`
	recipe := fmt.Sprintf(`
ceiling: %d
output_dir: out
builds:
  - name: "Test {style} - {weight}"
    style: Sans
    tiers: {max: 3}
    base: "fonts/Inter/Inter-{weight}.ttf"
    weights: [Regular]
`, 3*n)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "fontrepos.json"), []byte(repos), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "state.json"), []byte(state), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "megamerge.yaml"), []byte(recipe), 0o644))
	return dir
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestBuildDryRun(t *testing.T) {
	dir := setup(t)
	recipe := filepath.Join(dir, "megamerge.yaml")

	out, _, err := execute(t, "build", "-r", recipe, "--dry-run")
	require.NoError(t, err)

	assert.Contains(t, out, "Merging Test Sans - Regular:\n"+
		"  Inter-Regular.ttf\n"+
		"  A-Regular.ttf\n"+
		"  B-Regular.ttf\n")
	assert.NotContains(t, out, "C-Regular.ttf")
	assert.NotContains(t, out, "D-Regular.ttf")
	assert.Contains(t, out, "WARNINGS:\ntoo many glyphs while building Test Sans - Regular, stopped at c")
	assert.NotContains(t, out, "Completed successfully")
}

func TestBuildToolFailure(t *testing.T) {
	dir := setup(t)
	recipe := filepath.Join(dir, "megamerge.yaml")

	_, stderr, err := execute(t, "build", "-r", recipe, "--merge-tool", filepath.Join(dir, "no-such-tool"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 1 variants failed")
	assert.Contains(t, stderr, "variant failed")
}

func TestPlan(t *testing.T) {
	dir := setup(t)
	recipe := filepath.Join(dir, "megamerge.yaml")
	plans := filepath.Join(dir, "plans")

	out, _, err := execute(t, "plan", "-r", recipe, "--write", plans)
	require.NoError(t, err)
	assert.Contains(t, out, "# Test Sans - Regular\n")
	assert.Contains(t, out, "a\t")
	assert.Contains(t, out, "# stopped at c, 1 candidates dropped\n")
	assert.FileExists(t, filepath.Join(plans, "TestSans-Regular.plan"))

	out, _, err = execute(t, "plan", "-r", recipe, "--against", plans)
	require.NoError(t, err)
	assert.Contains(t, out, "# Test Sans - Regular: unchanged\n")

	empty := t.TempDir()
	out, _, err = execute(t, "plan", "-r", recipe, "--against", empty)
	require.NoError(t, err)
	assert.Contains(t, out, "+# Test Sans - Regular\n")
}

func TestOnly(t *testing.T) {
	dir := setup(t)
	recipe := filepath.Join(dir, "megamerge.yaml")

	_, _, err := execute(t, "plan", "-r", recipe, "--only", "Test Sans - Bold")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown variant")

	out, _, err := execute(t, "plan", "-r", recipe, "--only", "Test Sans - Regular")
	require.NoError(t, err)
	assert.Contains(t, out, "# Test Sans - Regular\n")
}

func TestVersion(t *testing.T) {
	out, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "megamerge")
}
