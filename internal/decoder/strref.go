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

import "github.com/maguro/o5m/internal/reftable"

// readInternedBlob reads one interned-string reference starting at
// payload[pos]: either the inline form (a 0x00 marker followed by raw
// bytes up to and including nulCount NUL terminators, which is then
// interned) or a back-reference (a uvarint index into table). The
// returned blob is the same shape in both cases — tag pairs, user
// blocks, and relation-member/role blocks all reuse this primitive,
// differing only in nulCount and in how they split the blob afterwards.
func readInternedBlob(payload []byte, pos int, baseOffset int64, table *reftable.Table, nulCount int) ([]byte, int, error) {
	if pos >= len(payload) {
		return nil, pos, fatal(ErrPrematureEnd, baseOffset+int64(pos), "expected interned string")
	}

	if payload[pos] == 0x00 {
		start := pos + 1
		i := start
		nuls := 0

		for i < len(payload) && nuls < nulCount {
			if payload[i] == 0x00 {
				nuls++
			}
			i++
		}

		if nuls < nulCount {
			return nil, i, fatal(ErrStringMalformed, baseOffset+int64(i), "missing NUL terminator")
		}

		blob := payload[start:i]
		table.Add(blob)

		return blob, i, nil
	}

	idx, newPos, err := sliceUvarint(payload, pos, baseOffset)
	if err != nil {
		return nil, newPos, err
	}

	blob, err := table.Get(int(idx))
	if err != nil {
		return nil, newPos, fatal(ErrReferenceInvalid, baseOffset+int64(pos), "")
	}

	return blob, newPos, nil
}

// decodeTags reads tag pairs from payload[pos:] until it is exhausted.
func decodeTags(payload []byte, pos int, baseOffset int64, table *reftable.Table) (map[string]string, error) {
	if pos >= len(payload) {
		return nil, nil
	}

	var tags map[string]string

	for pos < len(payload) {
		blob, newPos, err := readInternedBlob(payload, pos, baseOffset, table, 2)
		if err != nil {
			return nil, err
		}
		pos = newPos

		nul := -1
		for i, b := range blob {
			if b == 0x00 {
				nul = i
				break
			}
		}
		if nul < 0 {
			return nil, fatal(ErrStringMalformed, baseOffset+int64(pos), "tag pair missing key terminator")
		}

		key := string(blob[:nul])
		value := string(blob[nul+1 : len(blob)-1])

		if tags == nil {
			tags = make(map[string]string)
		}
		tags[key] = value
	}

	return tags, nil
}
