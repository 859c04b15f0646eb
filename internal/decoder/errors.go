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

package decoder

import (
	"errors"
	"fmt"
)

// The ten domain-level error kinds from the format's error handling
// design. The root package re-exports these under the o5m.Err* names;
// they live here so that both the decode loop and its tests can use
// errors.Is against them without an import cycle.
var (
	ErrHeaderMalformed     = errors.New("o5m: malformed header")
	ErrPrematureEnd        = errors.New("o5m: premature end of input")
	ErrVarintOverflow      = errors.New("o5m: varint overflow")
	ErrFieldOutOfRange     = errors.New("o5m: field out of range")
	ErrStringMalformed     = errors.New("o5m: malformed string")
	ErrReferenceInvalid    = errors.New("o5m: invalid reference table index")
	ErrUnknownMemberType   = errors.New("o5m: unknown relation member type")
	ErrPayloadLengthMismatch = errors.New("o5m: payload length mismatch")
	ErrBufferFull          = errors.New("o5m: output buffer full")
	ErrLogicViolation      = errors.New("o5m: logic violation")
)

// decodeError wraps a sentinel kind with the byte offset it was detected
// at, matching the decoder's policy of attributing every fatal error to
// a position in the stream.
type decodeError struct {
	kind   error
	offset int64
	detail string
}

func (e *decodeError) Error() string {
	if e.detail == "" {
		return fmt.Sprintf("%v at offset %d", e.kind, e.offset)
	}

	return fmt.Sprintf("%v at offset %d: %s", e.kind, e.offset, e.detail)
}

func (e *decodeError) Unwrap() error { return e.kind }

func fatal(kind error, offset int64, detail string) error {
	return &decodeError{kind: kind, offset: offset, detail: detail}
}

func fatalf(kind error, offset int64, format string, args ...any) error {
	return fatal(kind, offset, fmt.Sprintf(format, args...))
}
