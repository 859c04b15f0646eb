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
	"io"
	"sync"

	"github.com/destel/rill"

	"github.com/maguro/o5m/internal/arena"
	"github.com/maguro/o5m/internal/decoder"
	"github.com/maguro/o5m/internal/transport"
	"github.com/maguro/o5m/model"
)

// Decoder reads entities from an o5m/o5c stream. A Decoder runs its own
// background goroutine that owns the sequential delta/reference-table
// state; Decode drains entities produced by that goroutine over a
// bounded channel, and Header blocks until the stream's header has been
// published.
type Decoder struct {
	cancel context.CancelFunc

	ch      <-chan rill.Try[*arena.Buffer]
	pending []model.Entity

	headerOnce sync.Once
	headerDone chan struct{}
	header     model.Header
	headerErr  error
}

// NewDecoder constructs a Decoder reading from r. The returned Decoder
// owns a background goroutine until the stream reaches EOF, a fatal
// error, or ctx is cancelled; callers that stop consuming early must
// call Close to release it.
func NewDecoder(ctx context.Context, r io.Reader, opts ...DecoderOption) (*Decoder, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	wrapped, err := transport.Wrap(o.compression, r)
	if err != nil {
		return nil, err
	}

	runCtx, cancel := context.WithCancel(ctx)

	d := &Decoder{
		cancel:     cancel,
		headerDone: make(chan struct{}),
	}
	d.ch = d.run(runCtx, wrapped, decoder.Config{
		Mask:       o.resolvedMask(),
		BufferCap:  o.bufferCap,
		GrowPolicy: arena.GrowthPolicy(o.growth),
	})

	return d, nil
}

func (d *Decoder) run(ctx context.Context, r io.Reader, cfg decoder.Config) <-chan rill.Try[*arena.Buffer] {
	ch := make(chan rill.Try[*arena.Buffer])

	go func() {
		defer close(ch)

		st := decoder.NewStream(r, cfg)

		headerReady := func(h model.Header) {
			d.headerOnce.Do(func() {
				d.header = h
				close(d.headerDone)
			})
		}

		emit := func(buf *arena.Buffer) error {
			select {
			case ch <- rill.Try[*arena.Buffer]{Value: buf}:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		err := st.Run(headerReady, emit)

		d.headerOnce.Do(func() {
			d.headerErr = err
			close(d.headerDone)
		})

		if err != nil {
			select {
			case ch <- rill.Try[*arena.Buffer]{Error: err}:
			case <-ctx.Done():
			}
		}
	}()

	return ch
}

// Header blocks until the stream's header has been published (before
// the first body entity, or at clean EOF if the stream carried none) or
// the stream fails before reaching that point.
func (d *Decoder) Header() (model.Header, error) {
	<-d.headerDone
	return d.header, d.headerErr
}

// Decode returns the next entity in the stream, or io.EOF once the
// stream is exhausted. A non-EOF error is fatal: the Decoder must not
// be used again.
func (d *Decoder) Decode() (model.Entity, error) {
	for len(d.pending) == 0 {
		v, ok := <-d.ch
		if !ok {
			return nil, io.EOF
		}
		if v.Error != nil {
			return nil, v.Error
		}

		for item := range v.Value.Iterate() {
			e, err := decoder.DecodeItem(item)
			if err != nil {
				return nil, err
			}
			d.pending = append(d.pending, e)
		}
	}

	e := d.pending[0]
	d.pending = d.pending[1:]

	return e, nil
}

// Close releases the Decoder's background goroutine. It is safe to call
// Close after the stream has already reached EOF or a fatal error.
func (d *Decoder) Close() error {
	d.cancel()
	return nil
}
