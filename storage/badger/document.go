package badger

import (
	"context"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/sift/core"
	"github.com/poiesic/sift/storage"
)

// DocumentRepository implements storage.DocumentRepository for BadgerDB.
type DocumentRepository struct {
	backend *Backend
}

var _ storage.DocumentRepository = (*DocumentRepository)(nil)

// NewDocumentRepository creates a new DocumentRepository.
func NewDocumentRepository(backend *Backend) (*DocumentRepository, error) {
	return &DocumentRepository{backend: backend}, nil
}

// Close releases repository resources.
func (r *DocumentRepository) Close() error {
	return nil
}

// AddDocumentRecords adds one or more document records to storage.
// Records with Id=0 get a content-derived ID; identical content overwrites
// the earlier record rather than duplicating it.
func (r *DocumentRepository) AddDocumentRecords(ctx context.Context, records ...*core.DocumentRecord) ([]*core.DocumentRecord, error) {
	for _, record := range records {
		if err := core.ValidateDocumentRecord(record); err != nil {
			return nil, err
		}
	}

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, record := range records {
			if record.Id == 0 {
				doc := record.Document()
				record.Id = core.IDFromContent(core.DeriveText(&doc))
			}
			if record.InsertedAt.IsZero() {
				record.InsertedAt = time.Now().UTC()
			}

			// Store primary record
			key := makeDocumentKey(record.Id)
			value := storage.MarshalDocumentRecord(record)
			if err := tx.Set(key, value); err != nil {
				return err
			}

			// Update date index
			dateKey := makeDocumentDateKey(record.InsertedAt, record.Id)
			if err := tx.Set(dateKey, storage.MarshalID(record.Id)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return records, err
}

// GetDocumentRecord retrieves a single document record by ID.
func (r *DocumentRepository) GetDocumentRecord(ctx context.Context, id core.ID) (*core.DocumentRecord, error) {
	var result *core.DocumentRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		result, err = r.readDocumentRecord(tx, makeDocumentKey(id))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// GetDocumentRecords retrieves multiple document records by their IDs.
// Missing records are skipped without error.
func (r *DocumentRepository) GetDocumentRecords(ctx context.Context, ids ...core.ID) ([]*core.DocumentRecord, error) {
	var result []*core.DocumentRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			record, err := r.readDocumentRecord(tx, makeDocumentKey(id))
			if err != nil {
				return err
			}
			if record != nil {
				result = append(result, record)
			}
		}
		return nil
	}, false)
	return result, err
}

// GetDocumentRecordsByDateRange retrieves records where start <= InsertedAt < end,
// ordered by insertion time ascending.
func (r *DocumentRepository) GetDocumentRecordsByDateRange(ctx context.Context, start, end time.Time) ([]*core.DocumentRecord, error) {
	if start.Equal(end) {
		end = start.Add(1 * time.Microsecond)
	}

	var results []*core.DocumentRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		startKey := makePartialDocumentDateKey(start)
		endKey := makePartialDocumentDateKey(end)
		iter := tx.NewIterator(badger.DefaultIteratorOptions)
		defer iter.Close()

		for iter.Seek(startKey); iter.Valid(); iter.Next() {
			key := iter.Item().Key()
			if slices.Compare(key, endKey) > 0 {
				break
			}

			// Read the ID from the index
			var recordID core.ID
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				recordID, err = storage.UnmarshalID(val)
				return err
			}); err != nil {
				return err
			}

			// Look up the full record
			record, err := r.readDocumentRecord(tx, makeDocumentKey(recordID))
			if err != nil {
				return err
			}
			if record != nil {
				results = append(results, record)
			}
		}
		return nil
	}, false)

	return results, err
}

// GetRecentDocumentRecords retrieves up to limit records, most recent first.
func (r *DocumentRepository) GetRecentDocumentRecords(ctx context.Context, limit int) ([]*core.DocumentRecord, error) {
	var results []*core.DocumentRecord
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		// Use reverse iterator to get most recent records first
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true

		iter := tx.NewIterator(opts)
		defer iter.Close()

		// Seek to the last possible key in the date index
		startKey := makePartialDocumentDateKey(time.Date(9999, 12, 31, 23, 59, 59, 999999999, time.UTC))
		prefix := []byte(documentRecordDatePrefix + ":")

		count := 0
		for iter.Seek(startKey); iter.Valid() && count < limit; iter.Next() {
			key := iter.Item().Key()

			// Check if we're still in the date index
			if len(key) < len(prefix) || slices.Compare(key[:len(prefix)], prefix) != 0 {
				break
			}

			var recordID core.ID
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				recordID, err = storage.UnmarshalID(val)
				return err
			}); err != nil {
				return err
			}

			record, err := r.readDocumentRecord(tx, makeDocumentKey(recordID))
			if err != nil {
				return err
			}
			if record != nil {
				results = append(results, record)
				count++
			}
		}
		return nil
	}, false)

	return results, err
}

// DeleteDocumentRecords removes document records by their IDs.
func (r *DocumentRepository) DeleteDocumentRecords(ctx context.Context, ids ...core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeDocumentKey(id)

			// Read record to find its date index entry
			record, err := r.readDocumentRecord(tx, key)
			if err != nil {
				return err
			}
			if record == nil {
				return storage.ErrNotFound
			}

			dateKey := makeDocumentDateKey(record.InsertedAt, record.Id)
			if err := tx.Delete(dateKey); err != nil {
				return err
			}

			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// readDocumentRecord reads and unmarshals a record within a transaction.
// Returns nil without error when the key does not exist.
func (r *DocumentRepository) readDocumentRecord(tx *badger.Txn, key []byte) (*core.DocumentRecord, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var record *core.DocumentRecord
	err = item.Value(func(val []byte) error {
		var err error
		record, err = storage.UnmarshalDocumentRecord(val)
		return err
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}
