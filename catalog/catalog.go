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

// Package catalog holds the metadata describing a collection of font
// repositories: which repositories exist, their merge tier, the font
// families each repository provides and the font files of each family.
//
// A Catalog is constructed once, either with [Load] from the
// fontrepos.json and state.json files or directly in code, and is not
// modified afterwards.  It can be shared between goroutines without
// locking.
package catalog

import (
	"path/filepath"
	"slices"
)

// DefaultTier is the tier of repositories which do not declare one.
const DefaultTier = 4

// Catalog describes a set of font repositories.
type Catalog struct {
	// Root is the directory which file paths are relative to.
	Root string

	// Repositories maps repository identifiers to repository metadata.
	Repositories map[string]*Repository
}

// Repository is the metadata for one font repository.
type Repository struct {
	ID   string
	Tier int

	// Families lists the families in the order they appear in the
	// repository state.  Families is nil if no family metadata is known
	// for the repository.
	Families []*Family
}

// Family is one font family within a repository.
type Family struct {
	Name  string
	Files []File
}

// New returns a catalog containing the given repositories.
func New(root string, repos ...*Repository) *Catalog {
	c := &Catalog{
		Root:         root,
		Repositories: make(map[string]*Repository, len(repos)),
	}
	for _, r := range repos {
		c.Repositories[r.ID] = r
	}
	return c
}

// IDs returns the repository identifiers in lexicographic order.
func (c *Catalog) IDs() []string {
	ids := make([]string, 0, len(c.Repositories))
	for id := range c.Repositories {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Path returns the location of f on disk.
func (c *Catalog) Path(f File) string {
	p := filepath.FromSlash(string(f))
	if c.Root == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Root, p)
}

// HasFamilies reports whether family metadata is known for the repository.
func (r *Repository) HasFamilies() bool {
	return r.Families != nil
}
