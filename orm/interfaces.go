package orm

import (
	"github.com/iov-one/tokenswap"
)

// Object is what is stored in the bucket
// Key is joined with the prefix to set the full key
// Value is the data stored
type Object interface {
	Keyed
	// Validate returns error if the object is not in a valid
	// state to save to the db (eg. field missing, out of range, ...)
	Validate() error
	Value() tokenswap.Persistent
}

// Keyed is anything that can identify itself
type Keyed interface {
	Key() []byte
	SetKey([]byte)
}

// Model is implemented by any entity that can be stored using ModelBucket.
type Model interface {
	tokenswap.Persistent
	Validate() error
	Copy() Model
}

// Indexer calculates the secondary index key for a given object
type Indexer func(Object) ([]byte, error)

// Reader defines an interface that allows reading objects from the db
type Reader interface {
	Get(db tokenswap.ReadOnlyKVStore, key []byte) (Object, error)
}
