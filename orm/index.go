package orm

import (
	"bytes"

	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/errors"
)

// Index represents a secondary index on some data.
// It is indexed by an arbitrary key returned by Indexer.
//
// A unique index stores the primary key directly under the index key.
// A multi-value index stores one marker entry per (index key, primary
// key) pair, so index keys of a multi-value index should have a fixed
// length to keep the ranges unambiguous.
type Index struct {
	id     []byte
	unique bool
	index  Indexer
}

// NewIndex constructs an index for a bucket, identified by its own name.
func NewIndex(bucket, name string, indexer Indexer, unique bool) Index {
	id := append([]byte("_i."+bucket+"_"+name), ':')
	return Index{
		id:     id,
		unique: unique,
		index:  indexer,
	}
}

// IndexKey is the full key we store in the db, including the index prefix
func (i Index) IndexKey(key []byte) []byte {
	return append(append([]byte{}, i.id...), key...)
}

// pairKey joins the index key with the primary key for multi-value storage
func (i Index) pairKey(key, pk []byte) []byte {
	out := i.IndexKey(key)
	out = append(out, 0)
	return append(out, pk...)
}

// Update handles updating the reference to the object in
// the secondary index.
//
// prev == nil means insert, save == nil means delete,
// both non-nil means a move.
func (i Index) Update(db tokenswap.KVStore, prev Object, save Object) error {
	switch {
	case prev == nil && save == nil:
		return errors.Wrap(errors.ErrHuman, "update requires at least one non-nil object")
	case prev == nil:
		return i.insert(db, save)
	case save == nil:
		return i.remove(db, prev)
	}
	oldKey, err := i.index(prev)
	if err != nil {
		return err
	}
	newKey, err := i.index(save)
	if err != nil {
		return err
	}
	if bytes.Equal(oldKey, newKey) {
		return nil
	}
	if err := i.remove(db, prev); err != nil {
		return err
	}
	return i.insert(db, save)
}

func (i Index) insert(db tokenswap.KVStore, obj Object) error {
	key, err := i.index(obj)
	if err != nil {
		return err
	}
	if key == nil {
		return nil
	}
	if i.unique {
		full := i.IndexKey(key)
		existing, err := db.Get(full)
		if err != nil {
			return err
		}
		if existing != nil && !bytes.Equal(existing, obj.Key()) {
			return errors.Wrapf(errors.ErrDuplicate, "unique index %X", key)
		}
		return db.Set(full, obj.Key())
	}
	return db.Set(i.pairKey(key, obj.Key()), obj.Key())
}

func (i Index) remove(db tokenswap.KVStore, obj Object) error {
	key, err := i.index(obj)
	if err != nil {
		return err
	}
	if key == nil {
		return nil
	}
	if i.unique {
		return db.Delete(i.IndexKey(key))
	}
	return db.Delete(i.pairKey(key, obj.Key()))
}

// GetAt returns the primary keys of all objects indexed under the
// given index key
func (i Index) GetAt(db tokenswap.ReadOnlyKVStore, key []byte) ([][]byte, error) {
	if i.unique {
		pk, err := db.Get(i.IndexKey(key))
		if err != nil {
			return nil, err
		}
		if pk == nil {
			return nil, nil
		}
		return [][]byte{pk}, nil
	}
	prefix := append(i.IndexKey(key), 0)
	iter, err := db.Iterator(prefix, prefixEnd(prefix))
	if err != nil {
		return nil, err
	}
	defer iter.Release()
	var pks [][]byte
	for iter.Valid() {
		pks = append(pks, append([]byte{}, iter.Value()...))
		if err := iter.Next(); err != nil {
			return nil, err
		}
	}
	return pks, nil
}

// GetLike calculates the index for the given pattern, and
// returns the primary keys of all objects with the same index value
func (i Index) GetLike(db tokenswap.ReadOnlyKVStore, pattern Object) ([][]byte, error) {
	index, err := i.index(pattern)
	if err != nil {
		return nil, err
	}
	return i.GetAt(db, index)
}

// prefixEnd returns the smallest key strictly greater than all keys
// starting with the given prefix, or nil for an unbounded range
func prefixEnd(prefix []byte) []byte {
	end := append([]byte{}, prefix...)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xff {
			end[i]++
			return end[:i+1]
		}
	}
	return nil
}
