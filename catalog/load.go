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

package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

var (
	errNotObject = errors.New("expected a JSON object")
	errNoFiles   = errors.New("missing \"files\" list")
)

// MalformedError indicates that the catalog data could not be interpreted.
type MalformedError struct {
	File       string
	Repository string
	Err        error
}

func (err *MalformedError) Error() string {
	msg := "malformed catalog data"
	if err.File != "" {
		msg += " in " + err.File
	}
	if err.Repository != "" {
		msg += " for repository " + err.Repository
	}
	if err.Err != nil {
		msg += ": " + err.Err.Error()
	}
	return msg
}

func (err *MalformedError) Unwrap() error {
	return err.Err
}

// Load reads the repository list and the repository state from the
// given files.  File paths in the state are interpreted relative to root.
func Load(reposPath, statePath, root string) (*Catalog, error) {
	repos, err := os.Open(reposPath)
	if err != nil {
		return nil, err
	}
	defer repos.Close()

	state, err := os.Open(statePath)
	if err != nil {
		return nil, err
	}
	defer state.Close()

	c, err := decode(repos, state, root)
	if err != nil {
		var m *MalformedError
		if errors.As(err, &m) {
			if m.File == "repositories" {
				m.File = reposPath
			} else if m.File == "state" {
				m.File = statePath
			}
		}
		return nil, err
	}
	return c, nil
}

// Decode reads a catalog from the JSON encoded repository list and
// repository state.
//
// The repository list is an object mapping repository identifiers to
// objects with an optional integer "tier" field.  The state is an object
// mapping repository identifiers to objects with an optional "families"
// field, which maps family names to objects with a "files" list.
// Repositories which are missing from the state, or have no "families"
// field, have no family metadata.
func Decode(repos, state io.Reader, root string) (*Catalog, error) {
	return decode(repos, state, root)
}

type repoJSON struct {
	Tier *int `json:"tier"`
}

type stateJSON struct {
	Families *familyList `json:"families"`
}

func decode(reposR, stateR io.Reader, root string) (*Catalog, error) {
	var repos map[string]json.RawMessage
	if err := json.NewDecoder(reposR).Decode(&repos); err != nil {
		return nil, &MalformedError{File: "repositories", Err: err}
	}
	var state map[string]json.RawMessage
	if err := json.NewDecoder(stateR).Decode(&state); err != nil {
		return nil, &MalformedError{File: "state", Err: err}
	}

	c := &Catalog{
		Root:         root,
		Repositories: make(map[string]*Repository, len(repos)),
	}
	for id, raw := range repos {
		var rj repoJSON
		if err := json.Unmarshal(raw, &rj); err != nil {
			return nil, &MalformedError{File: "repositories", Repository: id, Err: err}
		}
		r := &Repository{
			ID:   id,
			Tier: DefaultTier,
		}
		if rj.Tier != nil {
			r.Tier = *rj.Tier
		}

		if raw, ok := state[id]; ok {
			var sj stateJSON
			if err := json.Unmarshal(raw, &sj); err != nil {
				return nil, &MalformedError{File: "state", Repository: id, Err: err}
			}
			if sj.Families != nil {
				r.Families = *sj.Families
				if r.Families == nil {
					r.Families = []*Family{}
				}
			}
		}

		c.Repositories[id] = r
	}
	return c, nil
}

// familyList decodes a JSON object of families, keeping the order of the
// keys in the document.
type familyList []*Family

func (l *familyList) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return errNotObject
	}

	var res familyList
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name := tok.(string) // object keys are always strings

		var body struct {
			Files *[]string `json:"files"`
		}
		if err := dec.Decode(&body); err != nil {
			return fmt.Errorf("family %q: %w", name, err)
		}
		if body.Files == nil {
			return fmt.Errorf("family %q: %w", name, errNoFiles)
		}

		fam := &Family{
			Name:  name,
			Files: make([]File, len(*body.Files)),
		}
		for i, f := range *body.Files {
			fam.Files[i] = File(f)
		}
		res = append(res, fam)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*l = res
	return nil
}
