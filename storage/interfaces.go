package storage

import (
	"context"
	"time"

	"github.com/poiesic/sift/core"
)

// VectorRepository caches embedding vectors keyed by content ID and model.
// Implementations must be thread-safe and support concurrent access.
type VectorRepository interface {
	// PutVectors stores one or more vector entries.
	// Sets InsertedAt if not already set. Existing entries are overwritten.
	PutVectors(ctx context.Context, entries ...*core.VectorEntry) error

	// GetVectors retrieves cached entries for the given IDs and model.
	// Returns only the entries that exist, in no particular order
	// (no error for missing entries).
	GetVectors(ctx context.Context, model string, ids ...core.ID) ([]*core.VectorEntry, error)

	// DeleteVectors removes cached entries for the given IDs and model.
	// Missing entries are ignored.
	DeleteVectors(ctx context.Context, model string, ids ...core.ID) error

	// Close closes the repository and releases resources.
	Close() error
}

// DocumentRepository persists research documents.
// Implementations must be thread-safe and support concurrent access.
type DocumentRepository interface {
	// AddDocumentRecords adds one or more document records to storage.
	// For records with Id=0, derives the ID from content.
	// Sets InsertedAt if not already set.
	// Returns the records with IDs and timestamps populated.
	AddDocumentRecords(ctx context.Context, records ...*core.DocumentRecord) ([]*core.DocumentRecord, error)

	// GetDocumentRecord retrieves a single document record by ID.
	// Returns ErrNotFound if the record doesn't exist.
	GetDocumentRecord(ctx context.Context, id core.ID) (*core.DocumentRecord, error)

	// GetDocumentRecords retrieves multiple document records by their IDs.
	// Returns only the records that exist (no error for missing records).
	GetDocumentRecords(ctx context.Context, ids ...core.ID) ([]*core.DocumentRecord, error)

	// GetRecentDocumentRecords retrieves up to limit records ordered by
	// insertion time, most recent first.
	GetRecentDocumentRecords(ctx context.Context, limit int) ([]*core.DocumentRecord, error)

	// GetDocumentRecordsByDateRange retrieves records where
	// start <= InsertedAt < end, ordered by insertion time ascending.
	GetDocumentRecordsByDateRange(ctx context.Context, start, end time.Time) ([]*core.DocumentRecord, error)

	// DeleteDocumentRecords removes document records by their IDs.
	// Also removes associated indices.
	// Returns ErrNotFound if any record doesn't exist.
	DeleteDocumentRecords(ctx context.Context, ids ...core.ID) error

	// Close closes the repository and releases resources.
	Close() error
}
