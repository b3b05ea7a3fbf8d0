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

// Package logging sets up the loggers used by the command line tools.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"
	"golang.org/x/term"

	"seehuhn.de/go/megamerge"
)

// Environment variables which control logging.
const (
	EnvLevel = "MEGAMERGE_LOG_LEVEL"
	EnvJSON  = "MEGAMERGE_JSON_LOG"
)

// DefaultLevel is used if no log level is configured.
const DefaultLevel = "info"

// New creates a logger writing to w.  If w is nil, os.Stderr is used.
// If level is empty, the level is taken from the environment.
func New(name, level string, w io.Writer) hclog.Logger {
	if w == nil {
		w = os.Stderr
	}
	if level == "" {
		level = Level()
	}

	color := hclog.ColorOff
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		color = hclog.AutoColor
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:            name,
		Level:           hclog.LevelFromString(level),
		Output:          w,
		JSONFormat:      os.Getenv(EnvJSON) == "1",
		Color:           color,
		DisableTime:     true,
		IncludeLocation: false,
	})
}

// Level returns the log level configured in the environment.
func Level() string {
	level := strings.TrimSpace(os.Getenv(EnvLevel))
	if level == "" {
		level = DefaultLevel
	}
	return level
}

// Diagnostics returns a megamerge.Diagnostics which reports to logger.
// Skipped repositories are logged at debug level, truncations as
// warnings.
func Diagnostics(logger hclog.Logger) megamerge.Diagnostics {
	return &diagnostics{logger: logger}
}

type diagnostics struct {
	logger hclog.Logger
}

func (d *diagnostics) Skipped(variant, repository string, reason megamerge.SkipReason) {
	d.logger.Debug("skipping repository",
		"variant", variant, "repository", repository, "reason", reason.String())
}

func (d *diagnostics) Truncated(t *megamerge.Truncation) {
	d.logger.Warn("too many glyphs",
		"variant", t.Variant, "stopped_at", t.Repository,
		"total", t.Total, "glyphs", t.NumGlyphs, "ceiling", t.Ceiling,
		"dropped", t.Dropped)
}
