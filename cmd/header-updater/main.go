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
	"log"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/urfave/cli/v2"
)

var rootFlag = cli.PathFlag{
	Name:  "root",
	Usage: "workspace directory to scan",
	Value: ".",
}

var headerApp = cli.App{
	Name:      "Update Headers",
	HelpName:  "header-updater",
	Usage:     "Commands to maintain the license headers of the workspace.",
	Copyright: "(c) 2025 Sonic Labs",
	Flags:     []cli.Flag{&rootFlag},
	Before:    checkRoot,
	Commands: []*cli.Command{
		&updateYearCommand,
		&checkHeaderCommand,
	},
}

// checkRoot fails early when --root does not name a directory.
func checkRoot(ctx *cli.Context) error {
	root := ctx.Path(rootFlag.Name)
	info, err := os.Stat(root)
	if err != nil {
		return errors.Wrapf(err, "cannot scan workspace %s", root)
	}
	if !info.IsDir() {
		return errors.Newf("workspace %s is not a directory", root)
	}
	return nil
}

func main() {
	if err := headerApp.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
