package core

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is derived from content via hashing, so identical content maps to the same ID.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Document is a single text-bearing record to be ranked or clustered.
// Title and Text are the recognized text fields; any other string-valued
// attributes of the source record go into Fields. A document's identity is
// its position in the input sequence - extraction never mutates documents.
type Document struct {
	Title  string            `json:"title,omitempty"`
	Text   string            `json:"text,omitempty"`
	Fields map[string]string `json:"fields,omitempty"`
}

// ID returns the content-derived identifier for the document.
// Two documents with identical derived text share an ID, which is what the
// embedding cache wants; callers needing positional identity should key on
// the input index instead.
func (d *Document) ID() ID {
	return IDFromContent(DeriveText(d))
}

// DocumentRecord is a Document persisted in storage, enriched with its
// content ID, source metadata and an optional embedding vector.
type DocumentRecord struct {
	Id         ID
	Title      string
	Text       string
	Fields     map[string]string
	URL        string
	InsertedAt time.Time
	Vector     []float32
}

// Document returns the in-memory document view of the record.
func (r *DocumentRecord) Document() Document {
	return Document{Title: r.Title, Text: r.Text, Fields: r.Fields}
}

// VectorEntry is a cached embedding for a piece of text, keyed by the
// content ID of the text it was computed from.
type VectorEntry struct {
	Id         ID
	Model      string
	Vector     []float32
	InsertedAt time.Time
}
