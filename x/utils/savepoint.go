package utils

import (
	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/errors"
)

// Savepoint will isolate all data inside of the call,
// and commit/rollback to savepoint based on if error
type Savepoint struct {
	onCheck   bool
	onDeliver bool
}

var _ tokenswap.Decorator = Savepoint{}

// NewSavepoint creates a Savepoint decorator,
// but you must call OnCheck/OnDeliver or it is a noop
func NewSavepoint() Savepoint {
	return Savepoint{}
}

// OnCheck returns a savepoint that commits/rolls back on Check
func (s Savepoint) OnCheck() Savepoint {
	return Savepoint{onCheck: true, onDeliver: s.onDeliver}
}

// OnDeliver returns a savepoint that commits/rolls back on Deliver
func (s Savepoint) OnDeliver() Savepoint {
	return Savepoint{onCheck: s.onCheck, onDeliver: true}
}

// Check will optionally set a checkpoint
func (s Savepoint) Check(ctx tokenswap.Context, store tokenswap.KVStore, tx tokenswap.Tx, next tokenswap.Checker) (*tokenswap.CheckResult, error) {
	if !s.onCheck {
		return next.Check(ctx, store, tx)
	}
	cstore, ok := store.(tokenswap.CacheableKVStore)
	if !ok {
		return nil, errors.Wrap(errors.ErrHuman, "need cachable kvstore")
	}
	cache := cstore.CacheWrap()

	res, err := next.Check(ctx, cache, tx)
	if err == nil {
		err = cache.Write()
	} else {
		cache.Discard()
	}
	return res, err
}

// Deliver will optionally set a checkpoint
func (s Savepoint) Deliver(ctx tokenswap.Context, store tokenswap.KVStore, tx tokenswap.Tx, next tokenswap.Deliverer) (*tokenswap.DeliverResult, error) {
	if !s.onDeliver {
		return next.Deliver(ctx, store, tx)
	}
	cstore, ok := store.(tokenswap.CacheableKVStore)
	if !ok {
		return nil, errors.Wrap(errors.ErrHuman, "need cachable kvstore")
	}
	cache := cstore.CacheWrap()

	res, err := next.Deliver(ctx, cache, tx)
	if err == nil {
		err = cache.Write()
	} else {
		cache.Discard()
	}
	return res, err
}
