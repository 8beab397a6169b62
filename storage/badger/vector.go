package badger

import (
	"context"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/sift/core"
	"github.com/poiesic/sift/storage"
)

// VectorRepository implements storage.VectorRepository for BadgerDB.
// Entries are keyed by model name plus content ID, so switching embedding
// models never serves stale vectors.
type VectorRepository struct {
	backend *Backend
}

var _ storage.VectorRepository = (*VectorRepository)(nil)

// NewVectorRepository creates a new VectorRepository.
func NewVectorRepository(backend *Backend) (*VectorRepository, error) {
	return &VectorRepository{backend: backend}, nil
}

// Close releases repository resources.
func (r *VectorRepository) Close() error {
	return nil
}

// PutVectors stores one or more vector entries, overwriting existing ones.
func (r *VectorRepository) PutVectors(ctx context.Context, entries ...*core.VectorEntry) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, entry := range entries {
			if entry.InsertedAt.IsZero() {
				entry.InsertedAt = time.Now().UTC()
			}

			key := makeVectorKey(entry.Model, entry.Id)
			value := storage.MarshalVectorEntry(entry)
			if err := tx.Set(key, value); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetVectors retrieves cached entries for the given IDs and model.
// Missing entries are skipped without error.
func (r *VectorRepository) GetVectors(ctx context.Context, model string, ids ...core.ID) ([]*core.VectorEntry, error) {
	var result []*core.VectorEntry
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			item, err := tx.Get(makeVectorKey(model, id))
			if err != nil {
				if err == badger.ErrKeyNotFound {
					continue
				}
				return err
			}

			var entry *core.VectorEntry
			if err := item.Value(func(val []byte) error {
				var err error
				entry, err = storage.UnmarshalVectorEntry(val)
				return err
			}); err != nil {
				return err
			}
			result = append(result, entry)
		}
		return nil
	}, false)
	return result, err
}

// DeleteVectors removes cached entries for the given IDs and model.
// Missing entries are ignored.
func (r *VectorRepository) DeleteVectors(ctx context.Context, model string, ids ...core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			if err := tx.Delete(makeVectorKey(model, id)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}
