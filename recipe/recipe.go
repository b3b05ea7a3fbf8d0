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

// Package recipe reads build recipes.
//
// A recipe is a YAML file which names the catalog files and describes
// one or more builds.  Each build is expanded into one output variant per
// weight.  Relative paths are interpreted relative to the directory
// containing the recipe.
package recipe

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"seehuhn.de/go/megamerge"
)

var (
	// ErrNoBuilds is returned for recipes which describe no builds.
	ErrNoBuilds = errors.New("recipe: no builds")

	// ErrBadChain is returned if a fallback chain is invalid.
	ErrBadChain = errors.New("recipe: invalid fallback chain")
)

// Recipe is the contents of a recipe file.
type Recipe struct {
	Catalog   Catalog                 `yaml:"catalog"`
	OutputDir string                  `yaml:"output_dir"`
	Ceiling   int                     `yaml:"ceiling"`
	Jobs      int                     `yaml:"jobs"`
	Fallbacks megamerge.FallbackTable `yaml:"fallbacks"`
	Builds    []*Build                `yaml:"builds"`
}

// Catalog gives the location of the catalog files.
type Catalog struct {
	Repositories string `yaml:"repositories"`
	State        string `yaml:"state"`

	// Root is the directory which font paths in the state are relative to.
	Root string `yaml:"root"`
}

// Tiers restricts the repositories used by a build.
// A missing Max means that there is no upper bound.
type Tiers struct {
	Min int  `yaml:"min"`
	Max *int `yaml:"max"`
}

// Build describes a family of output fonts, one per weight.
//
// The placeholders "{style}" and "{weight}" are expanded in Name and
// Base.  In Name, the style is title-cased.
type Build struct {
	Name    string   `yaml:"name"`
	Style   string   `yaml:"style"`
	Tiers   Tiers    `yaml:"tiers"`
	Banned  []string `yaml:"banned"`
	Base    string   `yaml:"base"`
	Weights []string `yaml:"weights"`

	ExcludeFamilies []string `yaml:"exclude_families"`
	ExcludeFiles    []string `yaml:"exclude_files"`
	Secondary       []string `yaml:"secondary"`
	DropTables      []string `yaml:"drop_tables"`
	CopyMetrics     bool     `yaml:"copy_metrics"`

	// StrictWeights requires the weight to end the file name, so that for
	// example "ExtraBold.ttf" is not used for "Bold".
	StrictWeights bool `yaml:"strict_weights"`
}

// These values are used for fields which are missing from a recipe.
var (
	DefaultRepositories    = "fontrepos.json"
	DefaultState           = "state.json"
	DefaultExcludeFamilies = []string{"UI"}
	DefaultExcludeFiles    = []string{"UI"}
	DefaultSecondary       = []string{"Regular"}
	DefaultDropTables      = []string{"vmtx", "vhea", "MATH"}
)

// Load reads the recipe file with the given name.
func Load(fname string) (*Recipe, error) {
	data, err := os.ReadFile(fname)
	if err != nil {
		return nil, fmt.Errorf("recipe: read %s: %w", fname, err)
	}
	r, err := Parse(data, filepath.Dir(fname))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fname, err)
	}
	return r, nil
}

// Parse decodes a recipe.  Relative paths are resolved against dir.
func Parse(data []byte, dir string) (*Recipe, error) {
	r := &Recipe{}
	if err := yaml.Unmarshal(data, r); err != nil {
		return nil, fmt.Errorf("recipe: parse: %w", err)
	}
	r.applyDefaults()
	r.normalize(dir)
	if err := r.validate(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Recipe) applyDefaults() {
	if r.Catalog.Repositories == "" {
		r.Catalog.Repositories = DefaultRepositories
	}
	if r.Catalog.State == "" {
		r.Catalog.State = DefaultState
	}
	if r.Ceiling == 0 {
		r.Ceiling = megamerge.MaxGlyphs
	}
	for _, b := range r.Builds {
		if b == nil {
			continue
		}
		if b.ExcludeFamilies == nil {
			b.ExcludeFamilies = DefaultExcludeFamilies
		}
		if b.ExcludeFiles == nil {
			b.ExcludeFiles = DefaultExcludeFiles
		}
		if b.Secondary == nil {
			b.Secondary = DefaultSecondary
		}
		if b.DropTables == nil {
			b.DropTables = DefaultDropTables
		}
	}
}

func (r *Recipe) normalize(dir string) {
	r.Catalog.Repositories = resolvePath(dir, r.Catalog.Repositories)
	r.Catalog.State = resolvePath(dir, r.Catalog.State)
	r.Catalog.Root = resolvePath(dir, r.Catalog.Root)
	r.OutputDir = resolvePath(dir, r.OutputDir)
	for _, b := range r.Builds {
		if b == nil {
			continue
		}
		b.Name = strings.TrimSpace(b.Name)
		if b.Base != "" {
			b.Base = resolvePath(dir, b.Base)
		}
	}
}

func resolvePath(dir, p string) string {
	p = filepath.FromSlash(p)
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}

func (r *Recipe) validate() error {
	if len(r.Builds) == 0 {
		return ErrNoBuilds
	}
	if r.Ceiling < 0 || r.Ceiling > megamerge.MaxGlyphs {
		return fmt.Errorf("recipe: ceiling %d out of range", r.Ceiling)
	}
	if r.Jobs < 0 {
		return fmt.Errorf("recipe: invalid number of jobs %d", r.Jobs)
	}
	if err := r.Fallbacks.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrBadChain, err)
	}

	names := make(map[string]bool)
	for i, b := range r.Builds {
		if b == nil {
			return fmt.Errorf("recipe: build %d is empty", i+1)
		}
		if b.Name == "" {
			return fmt.Errorf("recipe: build %d has no name", i+1)
		}
		if b.Base == "" {
			return fmt.Errorf("recipe: build %q has no base font", b.Name)
		}
		if len(b.Weights) == 0 {
			return fmt.Errorf("recipe: build %q has no weights", b.Name)
		}
		if b.Tiers.Max != nil && *b.Tiers.Max < b.Tiers.Min {
			return fmt.Errorf("recipe: build %q: empty tier range", b.Name)
		}
		if len(b.Weights) > 1 && !strings.Contains(b.Name, "{weight}") {
			return fmt.Errorf("recipe: build %q: name must contain {weight}", b.Name)
		}
		for _, w := range b.Weights {
			name := b.displayName(w)
			if names[name] {
				return fmt.Errorf("recipe: duplicate variant %q", name)
			}
			names[name] = true
		}
	}
	return nil
}

// FallbackTable returns the default fallback chains, updated with the
// chains given in the recipe.
func (r *Recipe) FallbackTable() megamerge.FallbackTable {
	return megamerge.DefaultFallbacks.With(r.Fallbacks)
}

// Variants expands the builds into output variants.
func (r *Recipe) Variants() []*megamerge.Variant {
	table := r.FallbackTable()

	var res []*megamerge.Variant
	for _, b := range r.Builds {
		hi := math.MaxInt
		if b.Tiers.Max != nil {
			hi = *b.Tiers.Max
		}
		tiers := megamerge.TierRange(b.Tiers.Min, hi)

		for _, w := range b.Weights {
			res = append(res, &megamerge.Variant{
				Name:   b.displayName(w),
				Weight: w,
				Base:   expand(b.Base, b.Style, w),
				Query: megamerge.Query{
					Tiers:           tiers,
					Banned:          b.Banned,
					Style:           b.Style,
					ExcludeFamilies: b.ExcludeFamilies,
					Chain:           table.Chain(w),
					Secondary:       b.Secondary,
					ExcludeFiles:    b.ExcludeFiles,
					StrictWeights:   b.StrictWeights,
				},
				DropTables:  b.DropTables,
				CopyMetrics: b.CopyMetrics,
			})
		}
	}
	return res
}

func (b *Build) displayName(weight string) string {
	style := cases.Title(language.English, cases.NoLower).String(b.Style)
	return expand(b.Name, style, weight)
}

func expand(s, style, weight string) string {
	return strings.NewReplacer("{style}", style, "{weight}", weight).Replace(s)
}
