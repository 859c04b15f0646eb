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
	"github.com/maguro/o5m/internal/transport"
	"github.com/maguro/o5m/model"
)

// GrowthPolicy selects how a Decoder's output buffers behave once full.
type GrowthPolicy int

const (
	// NoGrow fails the decode with ErrBufferFull once a buffer fills.
	NoGrow GrowthPolicy = iota

	// GrowInPlace reallocates a full buffer to a larger capacity.
	GrowInPlace

	// GrowByChaining seals a full buffer's contents into a predecessor
	// link and keeps writing into fresh storage. This is the default:
	// it never stalls the producer on a large reallocation and never
	// invalidates an offset a consumer is holding onto.
	GrowByChaining
)

type decoderOptions struct {
	bufferCap   int
	growth      GrowthPolicy
	mask        *model.EntityMask
	compression transport.Kind
}

func defaultOptions() decoderOptions {
	return decoderOptions{
		bufferCap:   1 << 20,
		growth:      GrowByChaining,
		mask:        nil, // unset; resolved to model.AllKinds in NewDecoder
		compression: transport.Auto,
	}
}

// resolvedMask reports the mask NewDecoder should configure the stream
// with, distinguishing "WithEntityMask was never called" (AllKinds) from
// "WithEntityMask(0) was called" (decode nothing), which a bare
// model.EntityMask zero value cannot tell apart.
func (o decoderOptions) resolvedMask() model.EntityMask {
	if o.mask == nil {
		return model.AllKinds
	}
	return *o.mask
}

// DecoderOption configures a Decoder constructed by NewDecoder.
type DecoderOption func(*decoderOptions)

// WithBufferCapacity sets the byte capacity of each output buffer the
// decoder hands to its consumer.
func WithBufferCapacity(n int) DecoderOption {
	return func(o *decoderOptions) { o.bufferCap = n }
}

// WithGrowthPolicy overrides the default growth policy for the
// decoder's output buffers.
func WithGrowthPolicy(p GrowthPolicy) DecoderOption {
	return func(o *decoderOptions) { o.growth = p }
}

// WithEntityMask restricts which entity kinds the decoder materializes.
// Excluded kinds are still parsed far enough to keep delta decoders and
// the reference table correct, just not placed in an output buffer.
func WithEntityMask(mask model.EntityMask) DecoderOption {
	return func(o *decoderOptions) { o.mask = &mask }
}

// WithCompression overrides automatic compression sniffing on the input
// stream. Pass transport.None to disable sniffing entirely when the
// caller already knows the stream is raw o5m.
func WithCompression(kind transport.Kind) DecoderOption {
	return func(o *decoderOptions) { o.compression = kind }
}
