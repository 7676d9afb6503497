// Copyright 2025 Sonic Labs
// This file is part of Aida Testing Infrastructure for Sonic
//
// Aida is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Aida is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Aida. If not, see <http://www.gnu.org/licenses/>.

package main

import (
	"fmt"
	"os"
	"regexp"
	"strconv"

	"github.com/urfave/cli/v2"
)

var yearFlag = cli.IntFlag{
	Name:  "year",
	Usage: "year to set; 0 increments the year found in each header",
}

// updateYearCommand rewrites the copyright year of all sources
var updateYearCommand = cli.Command{
	Action: updateYearAction,
	Name:   "year",
	Usage:  "Updates the year in the license header and the cli copyright of all .go files in the workspace",
	Flags:  []cli.Flag{&yearFlag},
}

var (
	reHeader = regexp.MustCompile(`// Copyright (\d{4}) Sonic Labs`)
	reCLI    = regexp.MustCompile(`Copyright:\s*"\(c\)\s*(\d{4})\s+Sonic Labs"`)
)

func updateYearAction(ctx *cli.Context) error {
	return updateYear(ctx.Path(rootFlag.Name), ctx.Int(yearFlag.Name))
}

// nextYear returns year unless it is 0, in which case the found year is incremented.
func nextYear(found string, year int) int {
	if year != 0 {
		return year
	}
	y, _ := strconv.Atoi(found)
	return y + 1
}

// updateYear walks through files and updates copyright years.
// Returns an error if something goes wrong.
func updateYear(root string, year int) error {
	return walkSources(root, func(path string) error {
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		content := string(data)

		updated := reHeader.ReplaceAllStringFunc(content, func(match string) string {
			matches := reHeader.FindStringSubmatch(match)
			return fmt.Sprintf("// Copyright %d Sonic Labs", nextYear(matches[1], year))
		})
		updated = reCLI.ReplaceAllStringFunc(updated, func(match string) string {
			matches := reCLI.FindStringSubmatch(match)
			return fmt.Sprintf(`Copyright: "(c) %d Sonic Labs"`, nextYear(matches[1], year))
		})

		if updated != content {
			return os.WriteFile(path, []byte(updated), 0644)
		}
		return nil
	})
}
