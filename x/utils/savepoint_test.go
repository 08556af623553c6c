package utils

import (
	"context"
	"testing"

	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/errors"
	"github.com/iov-one/tokenswap/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeHandler writes the given key, value pair on every call and
// returns the preset error
type writeHandler struct {
	key   []byte
	value []byte
	err   error
}

func (h writeHandler) Check(ctx tokenswap.Context, db tokenswap.KVStore, tx tokenswap.Tx) (*tokenswap.CheckResult, error) {
	if err := db.Set(h.key, h.value); err != nil {
		return nil, err
	}
	return &tokenswap.CheckResult{}, h.err
}

func (h writeHandler) Deliver(ctx tokenswap.Context, db tokenswap.KVStore, tx tokenswap.Tx) (*tokenswap.DeliverResult, error) {
	if err := db.Set(h.key, h.value); err != nil {
		return nil, err
	}
	return &tokenswap.DeliverResult{}, h.err
}

func TestSavepointCommitsOnSuccess(t *testing.T) {
	h := writeHandler{key: []byte("a"), value: []byte("1")}
	deco := NewSavepoint().OnCheck().OnDeliver()

	ctx := context.Background()
	db := store.MemStore()
	_, err := deco.Check(ctx, db, nil, h)
	require.NoError(t, err)
	got, err := db.Get([]byte("a"))
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), got)

	db = store.MemStore()
	_, err = deco.Deliver(ctx, db, nil, h)
	require.NoError(t, err)
	got, err = db.Get([]byte("a"))
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), got)
}

func TestSavepointRollsBackOnError(t *testing.T) {
	fail := errors.Wrap(errors.ErrAmount, "insufficient funds")
	h := writeHandler{key: []byte("a"), value: []byte("1"), err: fail}
	deco := NewSavepoint().OnCheck().OnDeliver()

	ctx := context.Background()
	db := store.MemStore()
	_, err := deco.Check(ctx, db, nil, h)
	require.Error(t, err)
	got, err := db.Get([]byte("a"))
	require.NoError(t, err)
	assert.Nil(t, got, "partial write must not survive a failed check")

	db = store.MemStore()
	_, err = deco.Deliver(ctx, db, nil, h)
	require.Error(t, err)
	got, err = db.Get([]byte("a"))
	require.NoError(t, err)
	assert.Nil(t, got, "partial write must not survive a failed deliver")
}

func TestSavepointInactiveWritesThrough(t *testing.T) {
	fail := errors.Wrap(errors.ErrAmount, "insufficient funds")
	h := writeHandler{key: []byte("a"), value: []byte("1"), err: fail}
	// without OnCheck/OnDeliver the decorator is a noop
	deco := NewSavepoint()

	ctx := context.Background()
	db := store.MemStore()
	_, err := deco.Deliver(ctx, db, nil, h)
	require.Error(t, err)
	got, err := db.Get([]byte("a"))
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), got)
}
