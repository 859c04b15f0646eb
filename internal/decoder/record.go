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
	"bytes"
	"encoding/binary"
	"math"
	"time"

	"github.com/maguro/o5m/internal/arena"
	"github.com/maguro/o5m/model"
)

func timeFromUnix(sec int64) time.Time {
	return time.Unix(sec, 0).UTC()
}

// This file packs decoded entities into the arena's byte payloads and
// unpacks them again. The layout is private to this module: it is not
// the o5m wire format, just the in-memory shape the packed item buffer
// stores between the producer writing a record and the consumer reading
// it back out.

const (
	flagHasInfo     = 1 << 0
	flagHasLocation = 1 << 1
)

func encodeNode(n model.Node) []byte {
	var buf bytes.Buffer

	writeInt64(&buf, int64(n.ID))

	flags := byte(0)
	if n.Info != nil {
		flags |= flagHasInfo
	}
	if n.Location != nil {
		flags |= flagHasLocation
	}
	buf.WriteByte(flags)

	writeInfo(&buf, n.Info)

	if n.Location != nil {
		writeFloat64(&buf, float64(n.Location.Lon))
		writeFloat64(&buf, float64(n.Location.Lat))
	}

	writeTags(&buf, n.Tags)

	return buf.Bytes()
}

func decodeNodeRecord(payload []byte) (model.Node, error) {
	r := bytes.NewReader(payload)

	id, err := readInt64(r)
	if err != nil {
		return model.Node{}, err
	}

	flags, err := r.ReadByte()
	if err != nil {
		return model.Node{}, err
	}

	info, err := readInfo(r, flags&flagHasInfo != 0)
	if err != nil {
		return model.Node{}, err
	}

	var loc *model.Location
	if flags&flagHasLocation != 0 {
		lon, err := readFloat64(r)
		if err != nil {
			return model.Node{}, err
		}
		lat, err := readFloat64(r)
		if err != nil {
			return model.Node{}, err
		}
		loc = &model.Location{Lon: model.Degrees(lon), Lat: model.Degrees(lat)}
	}

	tags, err := readTags(r)
	if err != nil {
		return model.Node{}, err
	}

	return model.Node{ID: model.ID(id), Info: info, Location: loc, Tags: tags}, nil
}

func encodeWay(w model.Way) []byte {
	var buf bytes.Buffer

	writeInt64(&buf, int64(w.ID))

	flags := byte(0)
	if w.Info != nil {
		flags |= flagHasInfo
	}
	buf.WriteByte(flags)

	writeInfo(&buf, w.Info)

	writeUint32(&buf, uint32(len(w.NodeIDs)))
	for _, id := range w.NodeIDs {
		writeInt64(&buf, int64(id))
	}

	writeTags(&buf, w.Tags)

	return buf.Bytes()
}

func decodeWayRecord(payload []byte) (model.Way, error) {
	r := bytes.NewReader(payload)

	id, err := readInt64(r)
	if err != nil {
		return model.Way{}, err
	}

	flags, err := r.ReadByte()
	if err != nil {
		return model.Way{}, err
	}

	info, err := readInfo(r, flags&flagHasInfo != 0)
	if err != nil {
		return model.Way{}, err
	}

	n, err := readUint32(r)
	if err != nil {
		return model.Way{}, err
	}

	var nodeIDs []model.ID
	if n > 0 {
		nodeIDs = make([]model.ID, n)
		for i := range nodeIDs {
			v, err := readInt64(r)
			if err != nil {
				return model.Way{}, err
			}
			nodeIDs[i] = model.ID(v)
		}
	}

	tags, err := readTags(r)
	if err != nil {
		return model.Way{}, err
	}

	return model.Way{ID: model.ID(id), Info: info, NodeIDs: nodeIDs, Tags: tags}, nil
}

func encodeRelation(rel model.Relation) []byte {
	var buf bytes.Buffer

	writeInt64(&buf, int64(rel.ID))

	flags := byte(0)
	if rel.Info != nil {
		flags |= flagHasInfo
	}
	buf.WriteByte(flags)

	writeInfo(&buf, rel.Info)

	writeUint32(&buf, uint32(len(rel.Members)))
	for _, m := range rel.Members {
		writeInt64(&buf, int64(m.ID))
		buf.WriteByte(byte(m.Type))
		writeString(&buf, m.Role)
	}

	writeTags(&buf, rel.Tags)

	return buf.Bytes()
}

func decodeRelationRecord(payload []byte) (model.Relation, error) {
	r := bytes.NewReader(payload)

	id, err := readInt64(r)
	if err != nil {
		return model.Relation{}, err
	}

	flags, err := r.ReadByte()
	if err != nil {
		return model.Relation{}, err
	}

	info, err := readInfo(r, flags&flagHasInfo != 0)
	if err != nil {
		return model.Relation{}, err
	}

	n, err := readUint32(r)
	if err != nil {
		return model.Relation{}, err
	}

	var members []model.Member
	if n > 0 {
		members = make([]model.Member, n)
		for i := range members {
			v, err := readInt64(r)
			if err != nil {
				return model.Relation{}, err
			}
			typByte, err := r.ReadByte()
			if err != nil {
				return model.Relation{}, err
			}
			role, err := readString(r)
			if err != nil {
				return model.Relation{}, err
			}
			members[i] = model.Member{ID: model.ID(v), Type: model.EntityType(typByte), Role: role}
		}
	}

	tags, err := readTags(r)
	if err != nil {
		return model.Relation{}, err
	}

	return model.Relation{ID: model.ID(id), Info: info, Members: members, Tags: tags}, nil
}

// DecodeItem turns an arena.Item back into the model.Entity it stores,
// dispatching on the type tag AddItem was called with.
func DecodeItem(item arena.Item) (model.Entity, error) {
	switch model.EntityType(item.TypeTag) {
	case model.NODE:
		return decodeNodeRecord(item.Payload)
	case model.WAY:
		return decodeWayRecord(item.Payload)
	case model.RELATION:
		return decodeRelationRecord(item.Payload)
	default:
		return nil, fatal(ErrLogicViolation, 0, "unknown record type tag")
	}
}

func writeInfo(buf *bytes.Buffer, info *model.Info) {
	if info == nil {
		return
	}

	writeUint32(buf, uint32(info.Version))
	writeInt64(buf, info.Timestamp.Unix())
	writeInt64(buf, info.Changeset)
	writeUint32(buf, uint32(int32(info.UID)))
	writeString(buf, info.User)

	flag := byte(0)
	if info.Visible {
		flag = 1
	}
	buf.WriteByte(flag)
}

func readInfo(r *bytes.Reader, present bool) (*model.Info, error) {
	if !present {
		return nil, nil
	}

	version, err := readUint32(r)
	if err != nil {
		return nil, err
	}

	ts, err := readInt64(r)
	if err != nil {
		return nil, err
	}

	changeset, err := readInt64(r)
	if err != nil {
		return nil, err
	}

	uid, err := readUint32(r)
	if err != nil {
		return nil, err
	}

	user, err := readString(r)
	if err != nil {
		return nil, err
	}

	visible, err := r.ReadByte()
	if err != nil {
		return nil, err
	}

	return &model.Info{
		Version:   int32(version),
		Timestamp: timeFromUnix(ts),
		Changeset: changeset,
		UID:       model.UID(int32(uid)),
		User:      user,
		Visible:   visible != 0,
	}, nil
}

func writeTags(buf *bytes.Buffer, tags map[string]string) {
	writeUint32(buf, uint32(len(tags)))
	for k, v := range tags {
		writeString(buf, k)
		writeString(buf, v)
	}
}

func readTags(r *bytes.Reader) (map[string]string, error) {
	n, err := readUint32(r)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}

	tags := make(map[string]string, n)
	for i := uint32(0); i < n; i++ {
		k, err := readString(r)
		if err != nil {
			return nil, err
		}
		v, err := readString(r)
		if err != nil {
			return nil, err
		}
		tags[k] = v
	}

	return tags, nil
}

func writeString(buf *bytes.Buffer, s string) {
	writeUint32(buf, uint32(len(s)))
	buf.WriteString(s)
}

func readString(r *bytes.Reader) (string, error) {
	n, err := readUint32(r)
	if err != nil {
		return "", err
	}
	if n == 0 {
		return "", nil
	}

	b := make([]byte, n)
	if _, err := r.Read(b); err != nil {
		return "", err
	}

	return string(b), nil
}

func writeInt64(buf *bytes.Buffer, v int64) {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], uint64(v))
	buf.Write(tmp[:])
}

func readInt64(r *bytes.Reader) (int64, error) {
	var tmp [8]byte
	if _, err := r.Read(tmp[:]); err != nil {
		return 0, err
	}
	return int64(binary.LittleEndian.Uint64(tmp[:])), nil
}

func writeUint32(buf *bytes.Buffer, v uint32) {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	buf.Write(tmp[:])
}

func readUint32(r *bytes.Reader) (uint32, error) {
	var tmp [4]byte
	if _, err := r.Read(tmp[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(tmp[:]), nil
}

func writeFloat64(buf *bytes.Buffer, v float64) {
	writeUint64(buf, math.Float64bits(v))
}

func readFloat64(r *bytes.Reader) (float64, error) {
	u, err := readUint64(r)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(u), nil
}

func writeUint64(buf *bytes.Buffer, v uint64) {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], v)
	buf.Write(tmp[:])
}

func readUint64(r *bytes.Reader) (uint64, error) {
	var tmp [8]byte
	if _, err := r.Read(tmp[:]); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(tmp[:]), nil
}
