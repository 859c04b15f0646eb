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

// Package cli holds the o5m CLI's shared root command and input-file
// plumbing; individual subcommands live in their own packages and
// register themselves onto RootCmd from an init function.
package cli

import (
	"github.com/spf13/cobra"
)

// RootCmd is the o5m command-line tool's root command. Subcommand
// packages add themselves to it from their own init functions.
var RootCmd = &cobra.Command{
	Use:   "o5m",
	Short: "Inspect o5m/o5c OpenStreetMap files",
	Long:  "o5m reads o5m/o5c OpenStreetMap interchange files and reports on their contents.",
}
