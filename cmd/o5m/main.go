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

// Command o5m inspects o5m/o5c OpenStreetMap files from the command line.
package main

import (
	"github.com/maguro/o5m"
	"github.com/maguro/o5m/cmd/o5m/cli"
	_ "github.com/maguro/o5m/cmd/o5m/dump"
	_ "github.com/maguro/o5m/cmd/o5m/info"
)

func init() {
	// Populate the default parser registry explicitly, rather than have
	// the o5m package do it as an import-time side effect.
	o5m.Register(o5m.DefaultRegistry)
}

func main() {
	if err := cli.RootCmd.Execute(); err != nil {
		cli.Fatal("o5m", err)
	}
}
