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

import "github.com/maguro/o5m/internal/decoder"

// The ten domain-level error kinds a Decoder can report. Every fatal
// decoding error returned from Decode/Header satisfies errors.Is against
// exactly one of these; cancellation of the Decoder's context surfaces
// as the context's own error instead.
var (
	ErrHeaderMalformed       = decoder.ErrHeaderMalformed
	ErrPrematureEnd          = decoder.ErrPrematureEnd
	ErrVarintOverflow        = decoder.ErrVarintOverflow
	ErrFieldOutOfRange       = decoder.ErrFieldOutOfRange
	ErrStringMalformed       = decoder.ErrStringMalformed
	ErrReferenceInvalid      = decoder.ErrReferenceInvalid
	ErrUnknownMemberType     = decoder.ErrUnknownMemberType
	ErrPayloadLengthMismatch = decoder.ErrPayloadLengthMismatch
	ErrBufferFull            = decoder.ErrBufferFull
	ErrLogicViolation        = decoder.ErrLogicViolation
)
