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

package o5m

import (
	"context"
	"fmt"
	"io"
	"sync"
)

// Constructor builds a Decoder for one registered file-format tag.
type Constructor func(ctx context.Context, r io.Reader, opts ...DecoderOption) (*Decoder, error)

// Registry maps file-format tags ("o5m", "o5c", ...) to the Constructor
// that decodes them. A Registry is safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	ctors map[string]Constructor
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{ctors: make(map[string]Constructor)}
}

// Add registers ctor under tag, replacing any prior registration.
func (reg *Registry) Add(tag string, ctor Constructor) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	reg.ctors[tag] = ctor
}

// New constructs a Decoder for tag. It returns an error if no
// Constructor has been registered under that tag.
func (reg *Registry) New(tag string, ctx context.Context, r io.Reader, opts ...DecoderOption) (*Decoder, error) {
	reg.mu.RLock()
	ctor, ok := reg.ctors[tag]
	reg.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("o5m: no decoder registered for format %q", tag)
	}

	return ctor(ctx, r, opts...)
}

// DefaultRegistry is the process-wide registry a caller is expected to
// populate explicitly (see Register) rather than rely on import-time
// side effects to fill in.
var DefaultRegistry = NewRegistry()

// Register adds this package's decoder to registry under the tags
// "o5m" and "o5c". Callers choose when and whether to call this —
// typically once, from a program's own explicit startup path — rather
// than have it happen implicitly as a side effect of importing this
// package.
func Register(registry *Registry) {
	registry.Add("o5m", NewDecoder)
	registry.Add("o5c", NewDecoder)
}
