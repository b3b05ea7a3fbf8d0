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

// Megamerge builds composite fonts from a collection of font repositories.
//
// Usage:
//
//	megamerge build [-r recipe.yaml] [--only NAME] [--dry-run]
//	megamerge plan [-r recipe.yaml] [--write DIR] [--against DIR]
//	megamerge version
//
// The recipe names the catalog files (fontrepos.json and state.json) and
// lists the fonts to build.  Merging requires the fontTools "pyftmerge"
// command.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "megamerge:", err)
		os.Exit(1)
	}
}
