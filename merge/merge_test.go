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

package merge

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"seehuhn.de/go/sfnt"

	"seehuhn.de/go/megamerge"
	"seehuhn.de/go/megamerge/internal/makefont"
)

func TestOutputName(t *testing.T) {
	got := OutputName("Noto Sans Living - Bold")
	if got != "NotoSansLiving-Bold.ttf" {
		t.Errorf("unexpected name %q", got)
	}
}

func TestSaveRename(t *testing.T) {
	font := makefont.TrueType()
	Rename(font, "Go Living - Regular")

	fname := filepath.Join(t.TempDir(), "out.ttf")
	if err := Save(font, fname); err != nil {
		t.Fatal(err)
	}

	back, err := sfnt.ReadFile(fname)
	if err != nil {
		t.Fatal(err)
	}
	if back.FamilyName != "Go Living - Regular" {
		t.Errorf("wrong family name %q", back.FamilyName)
	}
	if full := back.FullName(); !strings.HasPrefix(full, "Go Living - Regular") {
		t.Errorf("full name %q does not follow the family name", full)
	}
	if ps := back.PostScriptName(); !strings.HasPrefix(ps, "GoLiving-") || strings.Contains(ps, " ") {
		t.Errorf("unexpected PostScript name %q", ps)
	}
	if back.NumGlyphs() != font.NumGlyphs() {
		t.Errorf("glyph count changed: %d != %d", back.NumGlyphs(), font.NumGlyphs())
	}
}

func TestCopyMetrics(t *testing.T) {
	dst := makefont.Bold()
	src := makefont.TrueType()
	src.Ascent += 10
	src.LineGap = 7

	if err := CopyMetrics(dst, src); err != nil {
		t.Fatal(err)
	}
	if dst.Ascent != src.Ascent || dst.LineGap != 7 || dst.Descent != src.Descent {
		t.Error("metrics not copied")
	}

	src.UnitsPerEm *= 2
	if err := CopyMetrics(dst, src); !errors.Is(err, ErrUnitsPerEm) {
		t.Errorf("expected ErrUnitsPerEm, got %v", err)
	}
}

// fakeTool copies the first input font to the output file.
type fakeTool struct {
	args []string
	fail bool
}

func (ft *fakeTool) run(_ context.Context, name string, args []string) ([]byte, error) {
	ft.args = append([]string{name}, args...)
	if ft.fail {
		return []byte("Traceback: something went wrong\n"), errors.New("exit status 1")
	}

	var out string
	var inputs []string
	for _, a := range args {
		if o, ok := strings.CutPrefix(a, "--output-file="); ok {
			out = o
		} else if !strings.HasPrefix(a, "--") {
			inputs = append(inputs, a)
		}
	}
	data, err := os.ReadFile(inputs[0])
	if err != nil {
		return nil, err
	}
	return nil, os.WriteFile(out, data, 0o644)
}

func TestMerge(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "Go-Regular.ttf")
	other := filepath.Join(dir, "Go-Bold.ttf")
	if err := makefont.WriteTrueType(base); err != nil {
		t.Fatal(err)
	}
	if err := makefont.WriteBold(other); err != nil {
		t.Fatal(err)
	}

	tool := &fakeTool{}
	e := &Engine{OutputDir: dir, run: tool.run}
	req := &megamerge.MergeRequest{
		Name:        "Go Living - Regular",
		Paths:       []string{base, other},
		DropTables:  []string{"vmtx", "vhea", "MATH"},
		CopyMetrics: true,
	}
	out, err := e.Merge(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	if out != filepath.Join(dir, "GoLiving-Regular.ttf") {
		t.Errorf("unexpected output %q", out)
	}

	if tool.args[0] != DefaultCommand {
		t.Errorf("wrong command %q", tool.args[0])
	}
	wantTail := []string{"--drop-tables=vmtx,vhea,MATH", base, other}
	if d := cmp.Diff(wantTail, tool.args[2:]); d != "" {
		t.Errorf("unexpected arguments (-want +got):\n%s", d)
	}

	font, err := sfnt.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if font.FamilyName != "Go Living - Regular" {
		t.Errorf("wrong family name %q", font.FamilyName)
	}

	// temporary files are cleaned up
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 3 {
		var names []string
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("unexpected files %v", names)
	}
}

func TestMergeErrors(t *testing.T) {
	e := &Engine{OutputDir: t.TempDir(), Command: "merge-tool", run: (&fakeTool{fail: true}).run}

	_, err := e.Merge(context.Background(), &megamerge.MergeRequest{Name: "X"})
	if !errors.Is(err, ErrNoInputs) {
		t.Errorf("expected ErrNoInputs, got %v", err)
	}

	_, err = e.Merge(context.Background(), &megamerge.MergeRequest{Name: "X", Paths: []string{"a.ttf"}})
	var te *ToolError
	if !errors.As(err, &te) {
		t.Fatalf("expected ToolError, got %v", err)
	}
	if te.Command != "merge-tool" || !strings.Contains(err.Error(), "Traceback") {
		t.Errorf("unexpected error %v", err)
	}
}
