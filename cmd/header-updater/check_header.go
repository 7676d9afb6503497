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
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v2"
)

var fixFlag = cli.BoolFlag{
	Name:  "fix",
	Usage: "prepend the license header to files missing it",
}

var headerYearFlag = cli.IntFlag{
	Name:  "year",
	Usage: "year written into fixed headers",
	Value: time.Now().Year(),
}

// checkHeaderCommand reports sources without license header
var checkHeaderCommand = cli.Command{
	Action: checkHeaderAction,
	Name:   "check",
	Usage:  "Lists .go files in the workspace that miss the license header",
	Flags:  []cli.Flag{&fixFlag, &headerYearFlag},
}

const licenseHeader = `// Copyright %d Sonic Labs
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

`

func checkHeaderAction(ctx *cli.Context) error {
	missing, err := checkHeaders(ctx.Path(rootFlag.Name), ctx.Bool(fixFlag.Name), ctx.Int(headerYearFlag.Name))
	if err != nil {
		return err
	}
	for _, path := range missing {
		fmt.Println(path)
	}
	if len(missing) > 0 && !ctx.Bool(fixFlag.Name) {
		return errors.Newf("%d files miss the license header", len(missing))
	}
	return nil
}

// hasHeader reports whether the first line of path is a copyright line.
func hasHeader(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()
	s := bufio.NewScanner(f)
	if !s.Scan() {
		return false, s.Err()
	}
	return strings.HasPrefix(s.Text(), "// Copyright"), nil
}

// checkHeaders returns the sources below root without license header. With
// fix set the header is prepended to them.
func checkHeaders(root string, fix bool, year int) ([]string, error) {
	var missing []string
	err := walkSources(root, func(path string) error {
		ok, err := hasHeader(path)
		if err != nil || ok {
			return err
		}
		missing = append(missing, path)
		if !fix {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		return os.WriteFile(path, append([]byte(fmt.Sprintf(licenseHeader, year)), data...), 0644)
	})
	return missing, err
}
