// Copyright 2017-25 the original author or authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package dump implements the o5m CLI's "dump" subcommand: list the
// entities in an o5m/o5c file one JSON object per line, optionally
// restricted to a subset of entity kinds.
package dump

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/maguro/o5m"
	"github.com/maguro/o5m/cmd/o5m/cli"
	"github.com/maguro/o5m/model"
)

var out io.Writer = os.Stdout

func init() {
	cli.RootCmd.AddCommand(dumpCmd)

	dumpCmd.Flags().StringP("kinds", "k", "node,way,relation", "comma-separated entity kinds to dump")
}

var dumpCmd = &cobra.Command{
	Use:   "dump [<o5m file>]",
	Short: "List the entities in an o5m/o5c file as newline-delimited JSON",
	Long:  "List the entities in an o5m/o5c file as newline-delimited JSON",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var f *os.File
		var err error
		if len(args) == 1 {
			f, err = os.Open(args[0])
			if err != nil {
				cli.Fatal("dump", err)
			}
		} else {
			f = os.Stdin
		}

		in, err := cli.WrapInputFile(f)
		if err != nil {
			cli.Fatal("dump", err)
		}
		defer in.Close()

		kinds, err := cmd.Flags().GetString("kinds")
		if err != nil {
			cli.Fatal("dump", err)
		}

		mask, err := parseMask(kinds)
		if err != nil {
			cli.Fatal("dump", err)
		}

		if err := runDump(in, mask); err != nil {
			cli.Fatal("dump", err)
		}
	},
}

func parseMask(kinds string) (model.EntityMask, error) {
	var mask model.EntityMask
	for _, k := range strings.Split(kinds, ",") {
		switch strings.TrimSpace(strings.ToLower(k)) {
		case "node":
			mask |= model.NodeMask
		case "way":
			mask |= model.WayMask
		case "relation":
			mask |= model.RelationMask
		case "":
			// allow trailing commas
		default:
			return 0, fmt.Errorf("dump: unknown entity kind %q", k)
		}
	}
	return mask, nil
}

func runDump(in io.Reader, mask model.EntityMask) error {
	d, err := o5m.NewDecoder(context.Background(), in, o5m.WithEntityMask(mask))
	if err != nil {
		return err
	}
	defer d.Close()

	enc := json.NewEncoder(out)

	for {
		v, err := d.Decode()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		if err := enc.Encode(v); err != nil {
			return err
		}
	}
}
