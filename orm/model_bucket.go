package orm

import (
	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/errors"
)

// ModelBucket is a high level interface to manage a set of objects of
// the same type written to the database.
type ModelBucket interface {
	// One query the database for a single model instance. Lookup is
	// done by the primary index key. Result is loaded into given
	// destination model.
	// This method returns ErrNotFound if the entity does not exist in
	// the database.
	One(db tokenswap.ReadOnlyKVStore, key []byte, dest Model) error

	// ByIndex returns the primary keys of all entities that the named
	// index associates with the given index key. Returned slice is
	// empty if no match was found.
	ByIndex(db tokenswap.ReadOnlyKVStore, indexName string, key []byte) ([][]byte, error)

	// Put saves given model in the database under the given key.
	Put(db tokenswap.KVStore, key []byte, m Model) error

	// Delete removes an entity with given primary key from the
	// database. It returns ErrNotFound if an entity with given key
	// does not exist.
	Delete(db tokenswap.KVStore, key []byte) error

	// Has returns nil if an entity with given primary key value
	// exists, or ErrNotFound.
	Has(db tokenswap.ReadOnlyKVStore, key []byte) error
}

// NewModelBucket returns a ModelBucket instance. Given model is used as
// a template to determine the type of all entities stored in this bucket.
func NewModelBucket(name string, m Model, opts ...ModelBucketOption) ModelBucket {
	b := NewBucket(name, m)
	mb := &modelBucket{b: b}
	for _, fn := range opts {
		fn(mb)
	}
	return mb
}

// ModelBucketOption is implemented by any function that can configure
// ModelBucket during creation.
type ModelBucketOption func(mb *modelBucket)

// WithIndex configures a secondary index on the bucket. Indexer is
// called with the model instance and must return the index key.
func WithIndex(name string, indexer ModelIndexer, unique bool) ModelBucketOption {
	return func(mb *modelBucket) {
		mb.b = mb.b.WithIndex(name, asObjectIndexer(indexer), unique)
	}
}

// ModelIndexer calculates a secondary index key for a given model
type ModelIndexer func(Model) ([]byte, error)

// asObjectIndexer adapts a model indexer to the raw object signature
// used by the index implementation
func asObjectIndexer(indexer ModelIndexer) Indexer {
	return func(obj Object) ([]byte, error) {
		if obj == nil {
			return nil, errors.Wrap(errors.ErrHuman, "cannot index nil object")
		}
		m, ok := obj.Value().(Model)
		if !ok {
			return nil, errors.Wrapf(errors.ErrType, "expected model, got %T", obj.Value())
		}
		return indexer(m)
	}
}

type modelBucket struct {
	b Bucket
}

var _ ModelBucket = (*modelBucket)(nil)

func (mb *modelBucket) One(db tokenswap.ReadOnlyKVStore, key []byte, dest Model) error {
	raw, err := db.Get(mb.b.DBKey(key))
	if err != nil {
		return err
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "%s %X", mb.b.Name(), key)
	}
	return dest.Unmarshal(raw)
}

func (mb *modelBucket) ByIndex(db tokenswap.ReadOnlyKVStore, indexName string, key []byte) ([][]byte, error) {
	idx, err := mb.b.Index(indexName)
	if err != nil {
		return nil, err
	}
	return idx.GetAt(db, key)
}

func (mb *modelBucket) Put(db tokenswap.KVStore, key []byte, m Model) error {
	if len(key) == 0 {
		return errors.Wrap(errors.ErrEmpty, "key is required")
	}
	if err := m.Validate(); err != nil {
		return errors.Wrap(err, "invalid model")
	}
	return mb.b.Save(db, NewSimpleObj(key, m))
}

func (mb *modelBucket) Delete(db tokenswap.KVStore, key []byte) error {
	if err := mb.Has(db, key); err != nil {
		return err
	}
	return mb.b.Delete(db, key)
}

func (mb *modelBucket) Has(db tokenswap.ReadOnlyKVStore, key []byte) error {
	ok, err := db.Has(mb.b.DBKey(key))
	if err != nil {
		return err
	}
	if !ok {
		return errors.Wrapf(errors.ErrNotFound, "%s %X", mb.b.Name(), key)
	}
	return nil
}
