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

// Package makefont provides fonts for use in tests.
package makefont

import (
	"bytes"
	"os"
	"path/filepath"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"seehuhn.de/go/sfnt"
)

// TrueType returns the Go Regular font, which has glyf outlines.
func TrueType() *sfnt.Font {
	return mustRead(goregular.TTF)
}

// Bold returns the Go Bold font.
func Bold() *sfnt.Font {
	return mustRead(gobold.TTF)
}

func mustRead(data []byte) *sfnt.Font {
	info, err := sfnt.Read(bytes.NewReader(data))
	if err != nil {
		panic(err)
	}
	return info
}

// WriteTrueType stores the Go Regular font in the named file.
// Missing parent directories are created.
func WriteTrueType(fname string) error {
	return writeFile(fname, goregular.TTF)
}

// WriteBold stores the Go Bold font in the named file.
// Missing parent directories are created.
func WriteBold(fname string) error {
	return writeFile(fname, gobold.TTF)
}

func writeFile(fname string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(fname), 0o755); err != nil {
		return err
	}
	return os.WriteFile(fname, data, 0o644)
}
