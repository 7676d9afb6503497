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
	"io"
	"os"
	"strings"

	"github.com/0xsoniclabs/prng-audit/config"
	"github.com/0xsoniclabs/prng-audit/rng"
	"github.com/0xsoniclabs/prng-audit/sampling"
	"github.com/0xsoniclabs/prng-audit/seeds"
	"github.com/urfave/cli/v2"
)

var seedsCommand = cli.Command{
	Action: seedsAction,
	Name:   "seeds",
	Usage:  "Prints the seed list used by the test commands.",
	Flags: []cli.Flag{
		&config.MasterSeedFlag,
		&config.SeedCountFlag,
	},
}

var listCommand = cli.Command{
	Action: listAction,
	Name:   "list",
	Usage:  "Lists the supported generators and sampling algorithms.",
}

func seedsAction(ctx *cli.Context) error {
	return printSeeds(os.Stdout, ctx.Uint64(config.MasterSeedFlag.Name), ctx.Int(config.SeedCountFlag.Name))
}

func printSeeds(w io.Writer, master uint64, count int) error {
	list, err := seeds.Generate(master, count)
	if err != nil {
		return err
	}
	for _, s := range list {
		if _, err = fmt.Fprintln(w, s); err != nil {
			return err
		}
	}
	return nil
}

func listAction(*cli.Context) error {
	return printList(os.Stdout)
}

func printList(w io.Writer) error {
	_, err := fmt.Fprintf(w, "generators: %s\nalgorithms: %s\n",
		strings.Join(rng.Generators(), ", "),
		strings.Join(sampling.Algorithms(), ", "))
	return err
}
