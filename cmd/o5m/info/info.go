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

// Package info implements the o5m CLI's "info" subcommand: report a
// stream's header and, optionally, its entity counts.
package info

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	humanize "github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/maguro/o5m"
	"github.com/maguro/o5m/cmd/o5m/cli"
	"github.com/maguro/o5m/model"
)

var out io.Writer = os.Stdout

type summary struct {
	model.Header

	NodeCount     int64 `json:"node_count"`
	WayCount      int64 `json:"way_count"`
	RelationCount int64 `json:"relation_count"`
}

func init() {
	cli.RootCmd.AddCommand(infoCmd)

	flags := infoCmd.Flags()
	flags.BoolP("json", "j", false, "format information in JSON")
	flags.BoolP("extended", "e", false, "provide extended information (scans the entire file)")
}

var infoCmd = &cobra.Command{
	Use:   "info [<o5m file>]",
	Short: "Print information about an o5m/o5c file",
	Long:  "Print information about an o5m/o5c file",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var f *os.File
		var err error
		if len(args) == 1 {
			f, err = os.Open(args[0])
			if err != nil {
				cli.Fatal("info", err)
			}
		} else {
			f = os.Stdin
		}

		in, err := cli.WrapInputFile(f)
		if err != nil {
			cli.Fatal("info", err)
		}

		flags := cmd.Flags()

		extended, err := flags.GetBool("extended")
		if err != nil {
			cli.Fatal("info", err)
		}

		info := runInfo(in, extended)

		if err := in.Close(); err != nil {
			cli.Fatal("info", err)
		}

		jsonfmt, err := flags.GetBool("json")
		if err != nil {
			cli.Fatal("info", err)
		}
		if jsonfmt {
			renderJSON(info, extended)
		} else {
			renderTxt(info, extended)
		}
	},
}

func runInfo(in io.Reader, extended bool) *summary {
	d, err := o5m.NewDecoder(context.Background(), in)
	if err != nil {
		cli.Fatal("info", err)
	}
	defer d.Close()

	header, err := d.Header()
	if err != nil {
		cli.Fatal("info", err)
	}

	s := &summary{Header: header}

	if extended {
		var nc, wc, rc int64
		for {
			v, err := d.Decode()
			if err == io.EOF {
				break
			} else if err != nil {
				cli.Fatal("info", err)
			}

			switch v.(type) {
			case model.Node:
				nc++
			case model.Way:
				wc++
			case model.Relation:
				rc++
			default:
				cli.Fatal("info", fmt.Errorf("unknown type %T", v))
			}
		}

		s.NodeCount = nc
		s.WayCount = wc
		s.RelationCount = rc
	}

	return s
}

func renderJSON(info *summary, extended bool) {
	var v interface{} = info.Header
	if extended {
		v = info
	}

	b, err := json.Marshal(v)
	if err != nil {
		cli.Fatal("info", err)
	}

	fmt.Fprint(out, string(b))
}

func renderTxt(info *summary, extended bool) {
	if info.BoundingBox != nil {
		fmt.Fprintf(out, "BoundingBox: %s\n", info.BoundingBox)
	}
	if info.Timestamp != nil {
		fmt.Fprintf(out, "Timestamp: %s\n", info.Timestamp.Format("2006-01-02T15:04:05Z07:00"))
	}
	fmt.Fprintf(out, "HasMultipleVersions: %t\n", info.HasMultipleVersions)

	if extended {
		fmt.Fprintf(out, "NodeCount: %s\n", humanize.Comma(info.NodeCount))
		fmt.Fprintf(out, "WayCount: %s\n", humanize.Comma(info.WayCount))
		fmt.Fprintf(out, "RelationCount: %s\n", humanize.Comma(info.RelationCount))
	}
}
