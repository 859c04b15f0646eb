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

package cli

import (
	"log/slog"
	"os"
)

// Fatal logs err at error level with msg as context and exits with
// status 1. Subcommands use this instead of returning an error from
// their cobra Run function, matching the teacher's own fail-fast CLI
// style.
func Fatal(msg string, err error) {
	slog.Error(msg, "err", err)
	os.Exit(1)
}
