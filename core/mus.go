package core

import (
	"time"

	"github.com/mus-format/mus-go"
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
)

// Hand-written MUS serializers for the types persisted in storage.
// Timestamps are stored as Unix microseconds.
var (
	IDMUS             = idMUS{}
	DocumentRecordMUS = documentRecordMUS{}
	VectorEntryMUS    = vectorEntryMUS{}

	vectorMUS = ord.NewSliceSer[float32](raw.Float32)
	fieldsMUS = ord.NewMapSer[string, string](ord.String, ord.String)
)

type idMUS struct{}

var _ mus.Serializer[ID] = idMUS{}

func (idMUS) Marshal(id ID, bs []byte) int {
	return varint.Uint64.Marshal(uint64(id), bs)
}

func (idMUS) Unmarshal(bs []byte) (ID, int, error) {
	v, n, err := varint.Uint64.Unmarshal(bs)
	return ID(v), n, err
}

func (idMUS) Size(id ID) int {
	return varint.Uint64.Size(uint64(id))
}

func (idMUS) Skip(bs []byte) (int, error) {
	return varint.Uint64.Skip(bs)
}

type documentRecordMUS struct{}

var _ mus.Serializer[DocumentRecord] = documentRecordMUS{}

func (documentRecordMUS) Marshal(r DocumentRecord, bs []byte) (n int) {
	n = IDMUS.Marshal(r.Id, bs)
	n += ord.String.Marshal(r.Title, bs[n:])
	n += ord.String.Marshal(r.Text, bs[n:])
	n += fieldsMUS.Marshal(r.Fields, bs[n:])
	n += ord.String.Marshal(r.URL, bs[n:])
	n += varint.Int64.Marshal(r.InsertedAt.UnixMicro(), bs[n:])
	n += vectorMUS.Marshal(r.Vector, bs[n:])
	return n
}

func (documentRecordMUS) Unmarshal(bs []byte) (r DocumentRecord, n int, err error) {
	var n1 int
	if r.Id, n, err = IDMUS.Unmarshal(bs); err != nil {
		return
	}
	if r.Title, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return r, n + n1, err
	}
	n += n1
	if r.Text, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return r, n + n1, err
	}
	n += n1
	if r.Fields, n1, err = fieldsMUS.Unmarshal(bs[n:]); err != nil {
		return r, n + n1, err
	}
	n += n1
	if r.URL, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return r, n + n1, err
	}
	n += n1
	var micros int64
	if micros, n1, err = varint.Int64.Unmarshal(bs[n:]); err != nil {
		return r, n + n1, err
	}
	n += n1
	r.InsertedAt = time.UnixMicro(micros).UTC()
	if r.Vector, n1, err = vectorMUS.Unmarshal(bs[n:]); err != nil {
		return r, n + n1, err
	}
	return r, n + n1, nil
}

func (documentRecordMUS) Size(r DocumentRecord) (size int) {
	size = IDMUS.Size(r.Id)
	size += ord.String.Size(r.Title)
	size += ord.String.Size(r.Text)
	size += fieldsMUS.Size(r.Fields)
	size += ord.String.Size(r.URL)
	size += varint.Int64.Size(r.InsertedAt.UnixMicro())
	size += vectorMUS.Size(r.Vector)
	return size
}

func (s documentRecordMUS) Skip(bs []byte) (int, error) {
	_, n, err := s.Unmarshal(bs)
	return n, err
}

type vectorEntryMUS struct{}

var _ mus.Serializer[VectorEntry] = vectorEntryMUS{}

func (vectorEntryMUS) Marshal(e VectorEntry, bs []byte) (n int) {
	n = IDMUS.Marshal(e.Id, bs)
	n += ord.String.Marshal(e.Model, bs[n:])
	n += vectorMUS.Marshal(e.Vector, bs[n:])
	n += varint.Int64.Marshal(e.InsertedAt.UnixMicro(), bs[n:])
	return n
}

func (vectorEntryMUS) Unmarshal(bs []byte) (e VectorEntry, n int, err error) {
	var n1 int
	if e.Id, n, err = IDMUS.Unmarshal(bs); err != nil {
		return
	}
	if e.Model, n1, err = ord.String.Unmarshal(bs[n:]); err != nil {
		return e, n + n1, err
	}
	n += n1
	if e.Vector, n1, err = vectorMUS.Unmarshal(bs[n:]); err != nil {
		return e, n + n1, err
	}
	n += n1
	var micros int64
	if micros, n1, err = varint.Int64.Unmarshal(bs[n:]); err != nil {
		return e, n + n1, err
	}
	e.InsertedAt = time.UnixMicro(micros).UTC()
	return e, n + n1, nil
}

func (vectorEntryMUS) Size(e VectorEntry) (size int) {
	size = IDMUS.Size(e.Id)
	size += ord.String.Size(e.Model)
	size += vectorMUS.Size(e.Vector)
	size += varint.Int64.Size(e.InsertedAt.UnixMicro())
	return size
}

func (s vectorEntryMUS) Skip(bs []byte) (int, error) {
	_, n, err := s.Unmarshal(bs)
	return n, err
}
