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

// Package decoder implements the o5m/o5c state machine: magic-header
// verification, dataset dispatch, and the node/way/relation/header
// payload decoders that rebuild entities into a packed item buffer.
package decoder

import (
	"io"

	"github.com/maguro/o5m/internal/arena"
	"github.com/maguro/o5m/internal/delta"
	"github.com/maguro/o5m/internal/reftable"
	"github.com/maguro/o5m/model"
)

const (
	typeNode       = 0x10
	typeWay        = 0x11
	typeRelation   = 0x12
	typeBBox       = 0xDB
	typeTimestamp  = 0xDC
	typeFileHeader = 0xE0
	typeSync       = 0xEE
	typeJump       = 0xEF
	typeReset      = 0xFF
)

// Worst-case fixed-field sizes used to decide, before decoding an
// entity, whether the current buffer should be flushed and replaced
// rather than relying on the arena to grow mid-record. Tag lists are
// unbounded, so these are heuristics, not hard bounds; grow-by-chaining
// in the underlying arena is the authoritative overflow path.
const (
	worstCaseNode     = 64
	worstCaseWay      = 48
	worstCaseRelation = 48
)

// EmitFunc hands a filled buffer to the consumer. It is called once per
// flush and once more, with a buffer that has zero committed bytes, as
// the end-of-stream sentinel.
type EmitFunc func(*arena.Buffer) error

// PublishHeaderFunc fulfils the header promise exactly once, before the
// first EmitFunc call that carries a body entity.
type PublishHeaderFunc func(model.Header)

// Stream is the o5m/o5c state machine. A Stream is not safe for
// concurrent use; it is meant to be driven by exactly one producer
// goroutine, matching the format's inherently sequential delta/
// reference-table state.
type Stream struct {
	cur *cursor

	idDelta      delta.Decoder
	tsDelta      delta.Decoder
	csDelta      delta.Decoder
	lonDelta     delta.Decoder
	latDelta     delta.Decoder
	wayNodeDelta delta.Decoder
	memberDelta  [3]delta.Decoder

	table reftable.Table

	mask model.EntityMask

	header    model.Header
	published bool

	bufCap int
	policy arena.GrowthPolicy
	buf    *arena.Buffer
}

// Config carries the knobs NewStream needs beyond the raw byte source.
type Config struct {
	Mask       model.EntityMask
	BufferCap  int
	GrowPolicy arena.GrowthPolicy
}

// NewStream constructs a Stream reading from r.
func NewStream(r io.Reader, cfg Config) *Stream {
	if cfg.BufferCap <= 0 {
		cfg.BufferCap = 1 << 20
	}

	// cfg.Mask is trusted as-is: the zero value is a legitimate "decode
	// no entity kinds" request (§4.5.7), not "caller forgot to set it".
	// Resolving "unset" to model.AllKinds is the caller's job, done once
	// in the root package's decoderOptions.resolvedMask, before a Config
	// ever reaches here.
	s := &Stream{
		cur:    newCursor(r),
		mask:   cfg.Mask,
		bufCap: cfg.BufferCap,
		policy: cfg.GrowPolicy,
	}
	s.buf = arena.New(s.bufCap, s.policy)

	return s
}

// Run verifies the magic header, then dispatches datasets until clean
// EOF or a fatal error. headerReady is invoked exactly once, before the
// first emit that carries a body entity (or at clean EOF if the stream
// had no body). emit is called once per filled buffer and a final time
// with an empty buffer as the end-of-stream sentinel.
func (s *Stream) Run(headerReady PublishHeaderFunc, emit EmitFunc) error {
	if err := s.readMagic(); err != nil {
		return err
	}

	for {
		b, err := s.cur.readByte()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fatal(ErrPrematureEnd, s.cur.offset, err.Error())
		}

		if err := s.dispatch(b, headerReady, emit); err != nil {
			return err
		}

		// §4.5.7: once the header has been published, an empty mask
		// means the consumer wants nothing further materialised. The
		// mask never changes over a Stream's lifetime, so this fires
		// at most once, right after the header is published.
		if s.published && s.mask.Empty() {
			break
		}
	}

	if !s.published {
		s.published = true
		headerReady(s.header)
	}

	for s.buf.HasPredecessor() {
		pred, err := s.buf.DetachDeepestPredecessor()
		if err != nil {
			return err
		}
		if err := emit(pred); err != nil {
			return err
		}
	}

	if s.buf.Written() > 0 {
		if err := emit(s.buf); err != nil {
			return err
		}
	}

	return emit(arena.New(0, s.policy))
}

func (s *Stream) dispatch(b byte, headerReady PublishHeaderFunc, emit EmitFunc) error {
	switch b {
	case typeNode, typeWay, typeRelation:
		return s.dispatchBody(b, headerReady, emit)

	case typeBBox:
		payload, err := s.readLengthPrefixed()
		if err != nil {
			return err
		}
		return s.decodeBBox(payload)

	case typeTimestamp:
		payload, err := s.readLengthPrefixed()
		if err != nil {
			return err
		}
		return s.decodeHeaderTimestamp(payload)

	case typeFileHeader:
		_, err := s.readLengthPrefixed()
		return err

	case typeSync, typeJump:
		return nil

	case typeReset:
		s.idDelta.Clear()
		s.tsDelta.Clear()
		s.csDelta.Clear()
		s.lonDelta.Clear()
		s.latDelta.Clear()
		s.wayNodeDelta.Clear()
		for i := range s.memberDelta {
			s.memberDelta[i].Clear()
		}
		s.table.Clear()

		return nil

	default:
		if b <= 0xEF {
			_, err := s.readLengthPrefixed()
			return err
		}

		return nil
	}
}

func (s *Stream) dispatchBody(b byte, headerReady PublishHeaderFunc, emit EmitFunc) error {
	payload, err := s.readLengthPrefixed()
	if err != nil {
		return err
	}

	if !s.published {
		s.published = true
		headerReady(s.header)
	}

	baseOffset := s.cur.offset - int64(len(payload))

	var (
		typeTag byte
		record  []byte
	)

	switch b {
	case typeNode:
		node, derr := s.decodeNode(payload, baseOffset)
		if derr != nil {
			return derr
		}
		if !s.mask.Has(model.NODE) {
			return nil
		}
		typeTag = byte(model.NODE)
		record = encodeNode(node)

	case typeWay:
		way, derr := s.decodeWay(payload, baseOffset)
		if derr != nil {
			return derr
		}
		if !s.mask.Has(model.WAY) {
			return nil
		}
		typeTag = byte(model.WAY)
		record = encodeWay(way)

	case typeRelation:
		rel, derr := s.decodeRelation(payload, baseOffset)
		if derr != nil {
			return derr
		}
		if !s.mask.Has(model.RELATION) {
			return nil
		}
		typeTag = byte(model.RELATION)
		record = encodeRelation(rel)
	}

	return s.addAndMaybeFlush(b, typeTag, record, emit)
}

func (s *Stream) addAndMaybeFlush(datasetType byte, typeTag byte, record []byte, emit EmitFunc) error {
	worst := worstCaseFor(datasetType)
	if s.buf.Written() > 0 && s.buf.Written()+worst > s.buf.Capacity() {
		if err := s.flushCurrent(emit); err != nil {
			return err
		}
	}

	if _, err := s.buf.AddItem(typeTag, record); err != nil {
		if err == arena.ErrBufferFull {
			return fatal(ErrBufferFull, s.cur.offset, "")
		}
		return err
	}

	for s.buf.HasPredecessor() {
		pred, err := s.buf.DetachDeepestPredecessor()
		if err != nil {
			return err
		}
		if err := emit(pred); err != nil {
			return err
		}
	}

	return nil
}

func (s *Stream) flushCurrent(emit EmitFunc) error {
	if err := emit(s.buf); err != nil {
		return err
	}

	s.buf = arena.New(s.bufCap, s.policy)

	return nil
}

func worstCaseFor(datasetType byte) int {
	switch datasetType {
	case typeNode:
		return worstCaseNode
	case typeWay:
		return worstCaseWay
	default:
		return worstCaseRelation
	}
}

func (s *Stream) readLengthPrefixed() ([]byte, error) {
	length, err := s.cur.readUvarint()
	if err != nil {
		return nil, err
	}

	return s.cur.readFull(int(length))
}
