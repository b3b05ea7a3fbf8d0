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

// Package glyphcount determines the number of glyphs in font files.
//
// A [Counter] reads each file at most once.  Font files are not expected
// to change while a Counter is in use.
package glyphcount

import (
	"errors"
	"os"
	"sync"

	"golang.org/x/sync/singleflight"
	"seehuhn.de/go/sfnt"
)

var errNegative = errors.New("negative glyph count")

// ReadFunc returns the number of glyphs in the font file at path.
type ReadFunc func(path string) (int, error)

// ReadError indicates that the glyph count of a file could not be
// determined.
type ReadError struct {
	Path string
	Err  error
}

func (err *ReadError) Error() string {
	return "cannot read glyph count of " + err.Path + ": " + err.Err.Error()
}

func (err *ReadError) Unwrap() error {
	return err.Err
}

// Counter reports glyph counts of font files.
// It is safe for concurrent use.
type Counter struct {
	read ReadFunc

	mu     sync.Mutex
	counts map[string]int

	// group merges concurrent reads of the same file
	group singleflight.Group
}

// New returns a Counter which reads TrueType and OpenType files.
func New() *Counter {
	return NewWithReader(ReadFont)
}

// NewWithReader returns a Counter which uses read to open font files.
func NewWithReader(read ReadFunc) *Counter {
	return &Counter{
		read:   read,
		counts: make(map[string]int),
	}
}

// NumGlyphs returns the number of glyphs in the font file at path.
// Successful counts are remembered for the lifetime of c, failed reads
// are retried on the next call.
func (c *Counter) NumGlyphs(path string) (int, error) {
	c.mu.Lock()
	n, ok := c.counts[path]
	c.mu.Unlock()
	if ok {
		return n, nil
	}

	v, err, _ := c.group.Do(path, func() (any, error) {
		n, err := c.read(path)
		if err != nil {
			return 0, &ReadError{Path: path, Err: err}
		}
		if n < 0 {
			return 0, &ReadError{Path: path, Err: errNegative}
		}
		c.mu.Lock()
		c.counts[path] = n
		c.mu.Unlock()
		return n, nil
	})
	if err != nil {
		return 0, err
	}
	return v.(int), nil
}

// ReadFont returns the number of glyphs in a TrueType or OpenType file.
func ReadFont(path string) (int, error) {
	fd, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer fd.Close()

	font, err := sfnt.Read(fd)
	if err != nil {
		return 0, err
	}
	return font.NumGlyphs(), nil
}
