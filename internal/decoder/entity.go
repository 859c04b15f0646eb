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
	"math"
	"time"

	"github.com/maguro/o5m/model"
)

// magic is the five fixed bytes every o5m/o5c file begins with.
var magic = [5]byte{0xFF, 0xE0, 0x04, 0x6F, 0x35}

const (
	variantData   = 'm'
	variantChange = 'c'
	formatVersion = '2'

	maxLonE7 = 1_800_000_000
	maxLatE7 = 900_000_000
)

func (s *Stream) readMagic() error {
	hdr, err := s.cur.readFull(7)
	if err != nil {
		return fatal(ErrHeaderMalformed, s.cur.offset, "short magic")
	}

	for i, want := range magic {
		if hdr[i] != want {
			return fatal(ErrHeaderMalformed, s.cur.offset, "bad magic prefix")
		}
	}

	switch hdr[5] {
	case variantData:
		s.header.HasMultipleVersions = false
	case variantChange:
		s.header.HasMultipleVersions = true
	default:
		return fatal(ErrHeaderMalformed, s.cur.offset, "bad variant byte")
	}

	if hdr[6] != formatVersion {
		return fatal(ErrHeaderMalformed, s.cur.offset, "bad version byte")
	}

	return nil
}

func (s *Stream) decodeBBox(payload []byte) error {
	if s.published {
		return nil
	}

	var lon1, lat1, lon2, lat2 int64
	pos := 0
	baseOffset := s.cur.offset - int64(len(payload))

	for _, dst := range []*int64{&lon1, &lat1, &lon2, &lat2} {
		v, newPos, err := sliceSvarint(payload, pos, baseOffset)
		if err != nil {
			return err
		}
		*dst = v
		pos = newPos
	}

	if s.header.BoundingBox == nil {
		s.header.BoundingBox = &model.BoundingBox{}
	}

	sw := model.FromE7(lon1, lat1)
	ne := model.FromE7(lon2, lat2)
	s.header.BoundingBox.Left = sw.Lon
	s.header.BoundingBox.Bottom = sw.Lat
	s.header.BoundingBox.Right = ne.Lon
	s.header.BoundingBox.Top = ne.Lat

	return nil
}

func (s *Stream) decodeHeaderTimestamp(payload []byte) error {
	if s.published {
		return nil
	}

	sec, _, err := sliceSvarint(payload, 0, s.cur.offset-int64(len(payload)))
	if err != nil {
		return err
	}

	ts := time.Unix(sec, 0).UTC()
	s.header.Timestamp = &ts

	if s.header.Options == nil {
		s.header.Options = make(map[string]string)
	}
	s.header.Options["o5m_timestamp"] = ts.Format(time.RFC3339)

	return nil
}

// decodeCommon reads the id delta and the optional metadata section
// shared by node, way, and relation payloads. pos is the offset into
// payload where type-specific fields, if any, begin.
func (s *Stream) decodeCommon(payload []byte, baseOffset int64) (id model.ID, info *model.Info, pos int, err error) {
	idDelta, pos, err := sliceSvarint(payload, 0, baseOffset)
	if err != nil {
		return 0, nil, pos, err
	}
	id = model.ID(s.idDelta.Update(idDelta))

	if pos >= len(payload) {
		return id, nil, pos, nil
	}

	if payload[pos] == 0x00 {
		return id, nil, pos + 1, nil
	}

	version, pos2, err := sliceUvarint(payload, pos, baseOffset)
	if err != nil {
		return id, nil, pos, err
	}
	pos = pos2

	if version > math.MaxInt32 {
		return id, nil, pos, fatal(ErrFieldOutOfRange, baseOffset+int64(pos), "version")
	}

	tsDelta, pos2, err := sliceSvarint(payload, pos, baseOffset)
	if err != nil {
		return id, nil, pos, err
	}
	pos = pos2

	ts := s.tsDelta.Update(tsDelta)
	info = &model.Info{Version: int32(version), Visible: true}

	if ts == 0 {
		return id, info, pos, nil
	}
	info.Timestamp = time.Unix(ts, 0).UTC()

	csDelta, pos2, err := sliceSvarint(payload, pos, baseOffset)
	if err != nil {
		return id, nil, pos, err
	}
	pos = pos2
	info.Changeset = s.csDelta.Update(csDelta)

	if pos >= len(payload) {
		return id, info, pos, nil
	}

	blob, pos2, err := readInternedBlob(payload, pos, baseOffset, &s.table, 2)
	if err != nil {
		return id, nil, pos, err
	}
	pos = pos2

	uid, n, err := sliceUvarint(blob, 0, baseOffset)
	if err != nil {
		return id, nil, pos, err
	}
	if uid > math.MaxInt32 {
		return id, nil, pos, fatal(ErrFieldOutOfRange, baseOffset+int64(pos), "uid")
	}

	nameStart, nameEnd := n+1, len(blob)-1
	name := ""
	if nameStart <= nameEnd {
		name = string(blob[nameStart:nameEnd])
	}

	info.UID = model.UID(uid)
	info.User = name

	return id, info, pos, nil
}

func (s *Stream) decodeNode(payload []byte, baseOffset int64) (model.Node, error) {
	id, info, pos, err := s.decodeCommon(payload, baseOffset)
	if err != nil {
		return model.Node{}, err
	}

	if pos >= len(payload) {
		if info != nil {
			info.Visible = false
		} else {
			info = &model.Info{Visible: false}
		}
		return model.Node{ID: id, Info: info}, nil
	}

	lonDelta, pos, err := sliceSvarint(payload, pos, baseOffset)
	if err != nil {
		return model.Node{}, err
	}
	latDelta, pos, err := sliceSvarint(payload, pos, baseOffset)
	if err != nil {
		return model.Node{}, err
	}

	lon := s.lonDelta.Update(lonDelta)
	lat := s.latDelta.Update(latDelta)

	if lon < -maxLonE7 || lon > maxLonE7 {
		return model.Node{}, fatal(ErrFieldOutOfRange, baseOffset+int64(pos), "lon")
	}
	if lat < -maxLatE7 || lat > maxLatE7 {
		return model.Node{}, fatal(ErrFieldOutOfRange, baseOffset+int64(pos), "lat")
	}

	loc := model.FromE7(lon, lat)

	tags, err := decodeTags(payload, pos, baseOffset, &s.table)
	if err != nil {
		return model.Node{}, err
	}

	return model.Node{ID: id, Info: info, Location: &loc, Tags: tags}, nil
}

func (s *Stream) decodeWay(payload []byte, baseOffset int64) (model.Way, error) {
	id, info, pos, err := s.decodeCommon(payload, baseOffset)
	if err != nil {
		return model.Way{}, err
	}

	if pos >= len(payload) {
		if info != nil {
			info.Visible = false
		} else {
			info = &model.Info{Visible: false}
		}
		return model.Way{ID: id, Info: info}, nil
	}

	refsLen, pos2, err := sliceUvarint(payload, pos, baseOffset)
	if err != nil {
		return model.Way{}, err
	}
	pos = pos2

	target := pos + int(refsLen)
	if target > len(payload) {
		return model.Way{}, fatal(ErrPayloadLengthMismatch, baseOffset+int64(pos), "way refs")
	}

	var nodeIDs []model.ID
	for pos < target {
		d, newPos, err := sliceSvarint(payload, pos, baseOffset)
		if err != nil {
			return model.Way{}, err
		}
		pos = newPos
		nodeIDs = append(nodeIDs, model.ID(s.wayNodeDelta.Update(d)))
	}
	if pos != target {
		return model.Way{}, fatal(ErrPayloadLengthMismatch, baseOffset+int64(pos), "way refs overrun")
	}

	tags, err := decodeTags(payload, pos, baseOffset, &s.table)
	if err != nil {
		return model.Way{}, err
	}

	return model.Way{ID: id, Info: info, NodeIDs: nodeIDs, Tags: tags}, nil
}

func (s *Stream) decodeRelation(payload []byte, baseOffset int64) (model.Relation, error) {
	id, info, pos, err := s.decodeCommon(payload, baseOffset)
	if err != nil {
		return model.Relation{}, err
	}

	if pos >= len(payload) {
		if info != nil {
			info.Visible = false
		} else {
			info = &model.Info{Visible: false}
		}
		return model.Relation{ID: id, Info: info}, nil
	}

	refsLen, pos2, err := sliceUvarint(payload, pos, baseOffset)
	if err != nil {
		return model.Relation{}, err
	}
	pos = pos2

	target := pos + int(refsLen)
	if target > len(payload) {
		return model.Relation{}, fatal(ErrPayloadLengthMismatch, baseOffset+int64(pos), "relation members")
	}

	var members []model.Member
	for pos < target {
		d, newPos, err := sliceSvarint(payload, pos, baseOffset)
		if err != nil {
			return model.Relation{}, err
		}
		pos = newPos

		blob, newPos, err := readInternedBlob(payload, pos, baseOffset, &s.table, 1)
		if err != nil {
			return model.Relation{}, err
		}
		pos = newPos

		if len(blob) < 1 {
			return model.Relation{}, fatal(ErrStringMalformed, baseOffset+int64(pos), "empty member blob")
		}

		var kind model.EntityType
		switch blob[0] {
		case '0':
			kind = model.NODE
		case '1':
			kind = model.WAY
		case '2':
			kind = model.RELATION
		default:
			return model.Relation{}, fatal(ErrUnknownMemberType, baseOffset+int64(pos), string(blob[0]))
		}

		role := string(blob[1 : len(blob)-1])
		absID := s.memberDelta[kind].Update(d)

		members = append(members, model.Member{ID: model.ID(absID), Type: kind, Role: role})
	}
	if pos != target {
		return model.Relation{}, fatal(ErrPayloadLengthMismatch, baseOffset+int64(pos), "relation members overrun")
	}

	tags, err := decodeTags(payload, pos, baseOffset, &s.table)
	if err != nil {
		return model.Relation{}, err
	}

	return model.Relation{ID: id, Info: info, Members: members, Tags: tags}, nil
}
