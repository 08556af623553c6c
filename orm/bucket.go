package orm

import (
	"fmt"
	"regexp"

	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/errors"
)

var isBucketName = regexp.MustCompile(`^[a-z]{3,8}$`).MatchString

// Bucket is a generic holder that stores data as well
// as references to secondary indexes.
type Bucket struct {
	name    string
	prefix  []byte
	proto   Model
	indexes []namedIndex
}

type namedIndex struct {
	name string
	Index
}

// NewBucket creates a bucket to store data under the given short name.
// The model is used as a template to parse stored values.
//
// Panics on invalid name, as this is a programming error.
func NewBucket(name string, proto Model) Bucket {
	if !isBucketName(name) {
		panic(fmt.Sprintf("Illegal bucket: %s", name))
	}
	return Bucket{
		name:   name,
		prefix: append([]byte(name), ':'),
		proto:  proto,
	}
}

// Name returns the name of the bucket
func (b Bucket) Name() string {
	return b.name
}

// DBKey is the full key we store in the db, including the bucket prefix
func (b Bucket) DBKey(key []byte) []byte {
	return append(b.prefix, key...)
}

// Get one element from the bucket, returns nil Object if not present
func (b Bucket) Get(db tokenswap.ReadOnlyKVStore, key []byte) (Object, error) {
	bz, err := db.Get(b.DBKey(key))
	if err != nil {
		return nil, err
	}
	if bz == nil {
		return nil, nil
	}
	return b.Parse(key, bz)
}

// Parse takes a key and value data (weakly typed bytes) and
// reconstructs the full object
func (b Bucket) Parse(key, value []byte) (Object, error) {
	model := b.proto.Copy()
	if err := model.Unmarshal(value); err != nil {
		return nil, errors.Wrap(err, "parse")
	}
	return NewSimpleObj(key, model), nil
}

// Save stores the object in the bucket and updates all indexes
func (b Bucket) Save(db tokenswap.KVStore, model Object) error {
	if err := model.Validate(); err != nil {
		return errors.Wrap(err, "invalid object")
	}
	bz, err := model.Value().Marshal()
	if err != nil {
		return err
	}
	if err := b.updateIndexes(db, model.Key(), model); err != nil {
		return err
	}
	return db.Set(b.DBKey(model.Key()), bz)
}

// Delete removes the object from the bucket and all indexes.
// It is a no-op if the key is not present.
func (b Bucket) Delete(db tokenswap.KVStore, key []byte) error {
	if err := b.updateIndexes(db, key, nil); err != nil {
		return err
	}
	return db.Delete(b.DBKey(key))
}

func (b Bucket) updateIndexes(db tokenswap.KVStore, key []byte, model Object) error {
	if len(b.indexes) == 0 {
		return nil
	}
	// load prev object for cleanup, ignore missing
	prev, err := b.Get(db, key)
	if err != nil {
		return err
	}
	if prev == nil && model == nil {
		return nil
	}
	for _, idx := range b.indexes {
		if err := idx.Update(db, prev, model); err != nil {
			return err
		}
	}
	return nil
}

// WithIndex returns a copy of this bucket with given index,
// panics if it an index with that name is already registered.
//
// The indexer function may return a nil index key to skip indexing
// a given object.
func (b Bucket) WithIndex(name string, indexer Indexer, unique bool) Bucket {
	for _, idx := range b.indexes {
		if idx.name == name {
			panic(fmt.Sprintf("Index %s registered twice", name))
		}
	}
	idx := NewIndex(b.name, name, indexer, unique)
	indexes := append(b.indexes, namedIndex{name: name, Index: idx})
	b.indexes = indexes
	return b
}

// Index returns the index with the given name, or an error if not registered
func (b Bucket) Index(name string) (Index, error) {
	for _, idx := range b.indexes {
		if idx.name == name {
			return idx.Index, nil
		}
	}
	return Index{}, errors.Wrapf(errors.ErrNotFound, "no index %s on bucket %s", name, b.name)
}

// GetIndexed loads all objects that the named index associates with
// the given index key
func (b Bucket) GetIndexed(db tokenswap.ReadOnlyKVStore, name string, key []byte) ([]Object, error) {
	idx, err := b.Index(name)
	if err != nil {
		return nil, err
	}
	refs, err := idx.GetAt(db, key)
	if err != nil {
		return nil, err
	}
	objs := make([]Object, 0, len(refs))
	for _, ref := range refs {
		obj, err := b.Get(db, ref)
		if err != nil {
			return nil, err
		}
		if obj != nil {
			objs = append(objs, obj)
		}
	}
	return objs, nil
}
