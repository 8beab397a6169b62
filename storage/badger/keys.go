package badger

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/poiesic/sift/core"
)

// Key prefixes for different data types
const (
	documentRecordPrefix     = "docrec"
	documentRecordDatePrefix = "docrecd"
	vectorEntryPrefix        = "vecent"
)

// makeDocumentKey generates a key for a document record by ID.
func makeDocumentKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", documentRecordPrefix, id))
}

// makeDocumentDateKey generates a composite key for the date index.
// Format: prefix:timestamp:id
func makeDocumentDateKey(timestamp time.Time, id core.ID) []byte {
	prefix := documentRecordDatePrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 16 // 8 bytes for timestamp + 8 bytes for ID
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(timestamp.UnixMicro()))
	offset += 8
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makePartialDocumentDateKey generates a partial key for date range queries.
// Format: prefix:timestamp
func makePartialDocumentDateKey(timestamp time.Time) []byte {
	prefix := documentRecordDatePrefix + ":"
	prefixBytes := []byte(prefix)
	prefixSize := len(prefixBytes)
	totalSize := prefixSize + 8 // 8 bytes for timestamp
	buf := make([]byte, totalSize)
	offset := copy(buf, prefixBytes)
	// Write in BigEndian order so lexicographic sort works correctly
	binary.BigEndian.PutUint64(buf[offset:], uint64(timestamp.UnixMicro()))
	return buf
}

// makeVectorKey generates a key for a cached vector entry.
// Format: prefix:model:id
func makeVectorKey(model string, id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%s:%d", vectorEntryPrefix, model, id))
}
