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

// Package merge combines font files into a single font.
//
// The glyph table splice is performed by the fontTools merge tool
// (pyftmerge), which must be installed separately.  The merged font is
// then renamed, optionally given the vertical metrics of the base font,
// and saved using seehuhn.de/go/sfnt.
package merge

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-hclog"
	"seehuhn.de/go/sfnt"

	"seehuhn.de/go/megamerge"
)

// DefaultCommand is the merge tool used if Engine.Command is empty.
const DefaultCommand = "pyftmerge"

var (
	// ErrNoInputs is returned if a merge request lists no files.
	ErrNoInputs = errors.New("no input fonts")

	// ErrUnitsPerEm is returned if metrics are copied between fonts with
	// different design units.
	ErrUnitsPerEm = errors.New("units per em differ")
)

// ToolError indicates that the external merge tool failed.
type ToolError struct {
	Command string
	Stderr  string
	Err     error
}

func (err *ToolError) Error() string {
	msg := err.Command + ": " + err.Err.Error()
	if s := strings.TrimSpace(err.Stderr); s != "" {
		msg += ": " + s
	}
	return msg
}

func (err *ToolError) Unwrap() error {
	return err.Err
}

// Engine merges fonts using an external tool.
// An Engine can be used concurrently.
type Engine struct {
	// Command is the merge tool.  If empty, DefaultCommand is used.
	Command string

	// OutputDir is the directory where merged fonts are written.
	OutputDir string

	// Logger receives progress messages.  If nil, nothing is logged.
	Logger hclog.Logger

	run func(ctx context.Context, name string, args []string) ([]byte, error)
}

var _ megamerge.Merger = (*Engine)(nil)

// OutputName returns the file name used for a font with the given
// display name.
func OutputName(displayName string) string {
	return strings.ReplaceAll(displayName, " ", "") + ".ttf"
}

// Merge combines the fonts in req.Paths, renames the result to req.Name
// and writes it to OutputDir.  The name of the output file is returned.
func (e *Engine) Merge(ctx context.Context, req *megamerge.MergeRequest) (string, error) {
	if len(req.Paths) == 0 {
		return "", ErrNoInputs
	}
	logger := e.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	logger = logger.With("variant", req.Name)

	outName := filepath.Join(e.OutputDir, OutputName(req.Name))

	tmp, err := os.CreateTemp(e.OutputDir, ".megamerge-*.ttf")
	if err != nil {
		return "", err
	}
	tmpName := tmp.Name()
	tmp.Close()
	defer os.Remove(tmpName)

	args := []string{"--output-file=" + tmpName}
	if len(req.DropTables) > 0 {
		args = append(args, "--drop-tables="+strings.Join(req.DropTables, ","))
	}
	args = append(args, req.Paths...)

	command := e.Command
	if command == "" {
		command = DefaultCommand
	}
	run := e.run
	if run == nil {
		run = runCommand
	}
	logger.Debug("running merge tool", "command", command, "inputs", len(req.Paths))
	if stderr, err := run(ctx, command, args); err != nil {
		return "", &ToolError{Command: command, Stderr: string(stderr), Err: err}
	}

	merged, err := sfnt.ReadFile(tmpName)
	if err != nil {
		return "", fmt.Errorf("reading merged font: %w", err)
	}
	Rename(merged, req.Name)

	if req.CopyMetrics {
		base, err := sfnt.ReadFile(req.Paths[0])
		if err != nil {
			return "", fmt.Errorf("reading base font: %w", err)
		}
		if err := CopyMetrics(merged, base); err != nil {
			return "", err
		}
	}

	if err := Save(merged, outName); err != nil {
		return "", err
	}
	logger.Info("font written", "file", outName, "glyphs", merged.NumGlyphs())
	return outName, nil
}

func runCommand(ctx context.Context, name string, args []string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stderr.Bytes(), err
}

// Rename sets the family name of the font.
//
// The font does not store a full name or a PostScript name of its own.
// When the font is written, sfnt derives both from the family name and the
// subfamily (weight, width and slant), via [sfnt.Font.FullName] and
// [sfnt.Font.PostScriptName], so the name table is consistent with name.
func Rename(font *sfnt.Font, name string) {
	font.FamilyName = name
}

// CopyMetrics copies the vertical metrics of src into dst.
// Both fonts must use the same number of design units per em.
func CopyMetrics(dst, src *sfnt.Font) error {
	if dst.UnitsPerEm != src.UnitsPerEm {
		return fmt.Errorf("%w: %d != %d", ErrUnitsPerEm, dst.UnitsPerEm, src.UnitsPerEm)
	}
	dst.Ascent = src.Ascent
	dst.Descent = src.Descent
	dst.LineGap = src.LineGap
	dst.CapHeight = src.CapHeight
	dst.UnderlinePosition = src.UnderlinePosition
	dst.UnderlineThickness = src.UnderlineThickness
	return nil
}

// Save writes the font to the named file.  The file is replaced
// atomically.
func Save(font *sfnt.Font, fname string) error {
	fd, err := os.CreateTemp(filepath.Dir(fname), ".megamerge-*.tmp")
	if err != nil {
		return err
	}
	tmpName := fd.Name()

	_, err = font.Write(fd)
	if err != nil {
		fd.Close()
		os.Remove(tmpName)
		return err
	}
	err = fd.Close()
	if err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, fname)
}
