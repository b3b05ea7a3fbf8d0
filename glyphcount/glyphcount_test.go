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

package glyphcount

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"seehuhn.de/go/megamerge/internal/makefont"
)

func TestCounterKeepsAll(t *testing.T) {
	// Every path is read once, however many files are looked up.
	var calls atomic.Int32
	c := NewWithReader(func(path string) (int, error) {
		calls.Add(1)
		return len(path), nil
	})

	const numFiles = 5000
	for range 2 {
		for i := range numFiles {
			path := fmt.Sprintf("fonts/%d/hinted/ttf/X-Regular.ttf", i)
			n, err := c.NumGlyphs(path)
			if err != nil {
				t.Fatal(err)
			}
			if n != len(path) {
				t.Fatalf("%s: wrong glyph count %d", path, n)
			}
		}
	}
	if got := calls.Load(); got != numFiles {
		t.Errorf("%d reads for %d files", got, numFiles)
	}
}

func TestCounterCaches(t *testing.T) {
	var calls atomic.Int32
	c := NewWithReader(func(path string) (int, error) {
		calls.Add(1)
		return len(path), nil
	})

	for range 3 {
		n, err := c.NumGlyphs("abc.ttf")
		if err != nil {
			t.Fatal(err)
		}
		if n != 7 {
			t.Errorf("wrong glyph count %d", n)
		}
	}
	if calls.Load() != 1 {
		t.Errorf("file read %d times", calls.Load())
	}
}

func TestCounterErrors(t *testing.T) {
	boom := errors.New("boom")
	fail := true
	c := NewWithReader(func(path string) (int, error) {
		if fail {
			return 0, boom
		}
		return 42, nil
	})

	_, err := c.NumGlyphs("x.ttf")
	var re *ReadError
	if !errors.As(err, &re) {
		t.Fatalf("expected ReadError, got %v", err)
	}
	if re.Path != "x.ttf" || !errors.Is(err, boom) {
		t.Errorf("unexpected error %v", err)
	}

	fail = false
	n, err := c.NumGlyphs("x.ttf")
	if err != nil {
		t.Fatal(err)
	}
	if n != 42 {
		t.Errorf("wrong glyph count %d", n)
	}

	neg := NewWithReader(func(string) (int, error) { return -1, nil })
	if _, err := neg.NumGlyphs("x.ttf"); !errors.Is(err, errNegative) {
		t.Errorf("expected errNegative, got %v", err)
	}
}

func TestCounterConcurrent(t *testing.T) {
	c := NewWithReader(func(path string) (int, error) {
		return len(path), nil
	})

	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			path := fmt.Sprintf("%0*d.ttf", i%4+1, 0)
			n, err := c.NumGlyphs(path)
			if err != nil {
				t.Error(err)
				return
			}
			if n != len(path) {
				t.Errorf("%s: wrong glyph count %d", path, n)
			}
		}()
	}
	wg.Wait()
}

func TestReadFont(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "Go-Regular.ttf")
	if err := makefont.WriteTrueType(fname); err != nil {
		t.Fatal(err)
	}
	ref := makefont.TrueType()

	n, err := New().NumGlyphs(fname)
	if err != nil {
		t.Fatal(err)
	}
	if n == 0 || n != ref.NumGlyphs() {
		t.Errorf("wrong glyph count %d, expected %d", n, ref.NumGlyphs())
	}

	_, err = New().NumGlyphs(filepath.Join(t.TempDir(), "missing.ttf"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected ErrNotExist, got %v", err)
	}
}
