package store

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBTreeCacheGetSet(t *testing.T) {
	base := MemStore()

	k, v := []byte("french"), []byte("fry")
	require.NoError(t, base.Set(k, v))

	got, err := base.Get(k)
	require.NoError(t, err)
	assert.Equal(t, v, got)

	// cache wrap sees the parent data
	cache := base.CacheWrap()
	got, err = cache.Get(k)
	require.NoError(t, err)
	assert.Equal(t, v, got)

	// write in cache is not visible in parent until Write
	k2, v2 := []byte("waffle"), []byte("belgian")
	require.NoError(t, cache.Set(k2, v2))
	got, err = base.Get(k2)
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, cache.Write())
	got, err = base.Get(k2)
	require.NoError(t, err)
	assert.Equal(t, v2, got)
}

func TestBTreeCacheDiscard(t *testing.T) {
	base := MemStore()
	k, v := []byte("top"), []byte("hat")
	require.NoError(t, base.Set(k, v))

	cache := base.CacheWrap()
	require.NoError(t, cache.Delete(k))
	require.NoError(t, cache.Set([]byte("extra"), []byte("stuff")))

	has, err := cache.Has(k)
	require.NoError(t, err)
	assert.False(t, has)

	cache.Discard()

	// parent is untouched after discard
	got, err := base.Get(k)
	require.NoError(t, err)
	assert.Equal(t, v, got)
	got, err = base.Get([]byte("extra"))
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestBTreeCacheDelete(t *testing.T) {
	base := MemStore()
	k := []byte("sous")
	require.NoError(t, base.Set(k, []byte("chef")))

	cache := base.CacheWrap()
	require.NoError(t, cache.Delete(k))
	require.NoError(t, cache.Write())

	got, err := base.Get(k)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestIteratorCombinesOverlayAndParent(t *testing.T) {
	base := MemStore()
	require.NoError(t, base.Set([]byte{1}, []byte("a")))
	require.NoError(t, base.Set([]byte{3}, []byte("c")))
	require.NoError(t, base.Set([]byte{5}, []byte("e")))

	cache := base.CacheWrap()
	// overwrite, delete and insert in the overlay
	require.NoError(t, cache.Set([]byte{3}, []byte("C")))
	require.NoError(t, cache.Delete([]byte{5}))
	require.NoError(t, cache.Set([]byte{4}, []byte("d")))

	iter, err := cache.Iterator(nil, nil)
	require.NoError(t, err)
	defer iter.Release()

	var keys [][]byte
	var values []string
	for ; iter.Valid(); require.NoError(t, iter.Next()) {
		keys = append(keys, iter.Key())
		values = append(values, string(iter.Value()))
	}
	assert.Equal(t, [][]byte{{1}, {3}, {4}}, keys)
	assert.Equal(t, []string{"a", "C", "d"}, values)
}

func TestReverseIterator(t *testing.T) {
	base := MemStore()
	for i := byte(1); i <= 5; i++ {
		require.NoError(t, base.Set([]byte{i}, []byte{i}))
	}

	cache := base.CacheWrap()
	require.NoError(t, cache.Delete([]byte{2}))

	iter, err := cache.ReverseIterator(nil, nil)
	require.NoError(t, err)
	defer iter.Release()

	var keys [][]byte
	for ; iter.Valid(); require.NoError(t, iter.Next()) {
		keys = append(keys, iter.Key())
	}
	assert.Equal(t, [][]byte{{5}, {4}, {3}, {1}}, keys)
}

func TestIteratorRange(t *testing.T) {
	base := MemStore()
	words := [][]byte{[]byte("aa"), []byte("ab"), []byte("ac"), []byte("b")}
	for _, w := range words {
		require.NoError(t, base.Set(w, w))
	}

	iter, err := base.Iterator([]byte("ab"), []byte("b"))
	require.NoError(t, err)
	defer iter.Release()

	var keys [][]byte
	for ; iter.Valid(); require.NoError(t, iter.Next()) {
		keys = append(keys, iter.Key())
	}
	require.Len(t, keys, 2)
	assert.True(t, bytes.Equal([]byte("ab"), keys[0]))
	assert.True(t, bytes.Equal([]byte("ac"), keys[1]))
}
