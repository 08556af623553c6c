package orm

import (
	"encoding/binary"
	"testing"

	"github.com/iov-one/tokenswap/errors"
	"github.com/iov-one/tokenswap/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// counter is a trivial model used to exercise the buckets
type counter struct {
	Owner []byte
	Count int64
}

var _ Model = (*counter)(nil)

func (c *counter) Marshal() ([]byte, error) {
	out := make([]byte, 0, 1+len(c.Owner)+8)
	out = append(out, byte(len(c.Owner)))
	out = append(out, c.Owner...)
	var cnt [8]byte
	binary.BigEndian.PutUint64(cnt[:], uint64(c.Count))
	return append(out, cnt[:]...), nil
}

func (c *counter) Unmarshal(bz []byte) error {
	if len(bz) < 9 {
		return errors.Wrap(errors.ErrInput, "truncated counter")
	}
	n := int(bz[0])
	if len(bz) != 1+n+8 {
		return errors.Wrap(errors.ErrInput, "malformed counter")
	}
	c.Owner = append([]byte{}, bz[1:1+n]...)
	c.Count = int64(binary.BigEndian.Uint64(bz[1+n:]))
	return nil
}

func (c *counter) Validate() error {
	if len(c.Owner) == 0 {
		return errors.Wrap(errors.ErrEmpty, "owner")
	}
	return nil
}

func (c *counter) Copy() Model {
	return &counter{
		Owner: append([]byte{}, c.Owner...),
		Count: c.Count,
	}
}

func ownerIndexer(m Model) ([]byte, error) {
	c, ok := m.(*counter)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "%T", m)
	}
	return c.Owner, nil
}

func TestBucketName(t *testing.T) {
	assert.Panics(t, func() {
		NewBucket("l33t", &counter{})
	})
	assert.Panics(t, func() {
		NewBucket("waytoolongname", &counter{})
	})
	// good names don't panic
	NewBucket("cnt", &counter{})
}

func TestBucketSaveGet(t *testing.T) {
	db := store.MemStore()
	b := NewBucket("cnt", &counter{})

	// empty read
	obj, err := b.Get(db, []byte("some"))
	require.NoError(t, err)
	require.Nil(t, obj)

	cnt := &counter{Owner: []byte("alice_______________"), Count: 55}
	require.NoError(t, b.Save(db, NewSimpleObj([]byte("some"), cnt)))

	obj, err = b.Get(db, []byte("some"))
	require.NoError(t, err)
	require.NotNil(t, obj)
	loaded, ok := obj.Value().(*counter)
	require.True(t, ok)
	assert.Equal(t, cnt.Owner, loaded.Owner)
	assert.Equal(t, int64(55), loaded.Count)

	// data of one bucket is not visible in another
	b2 := NewBucket("cash", &counter{})
	obj, err = b2.Get(db, []byte("some"))
	require.NoError(t, err)
	assert.Nil(t, obj)
}

func TestBucketRejectsInvalid(t *testing.T) {
	db := store.MemStore()
	b := NewBucket("cnt", &counter{})

	err := b.Save(db, NewSimpleObj([]byte("bad"), &counter{Count: 1}))
	require.Error(t, err)
	assert.True(t, errors.ErrEmpty.Is(err))
}

func TestBucketIndexed(t *testing.T) {
	db := store.MemStore()
	b := NewBucket("cnt", &counter{}).
		WithIndex("owner", asObjectIndexer(ownerIndexer), false)

	alice := []byte("alice_______________")
	bob := []byte("bob_________________")

	require.NoError(t, b.Save(db, NewSimpleObj([]byte{1}, &counter{Owner: alice, Count: 1})))
	require.NoError(t, b.Save(db, NewSimpleObj([]byte{2}, &counter{Owner: alice, Count: 2})))
	require.NoError(t, b.Save(db, NewSimpleObj([]byte{3}, &counter{Owner: bob, Count: 3})))

	objs, err := b.GetIndexed(db, "owner", alice)
	require.NoError(t, err)
	assert.Len(t, objs, 2)
	objs, err = b.GetIndexed(db, "owner", bob)
	require.NoError(t, err)
	assert.Len(t, objs, 1)

	// moving an object between index values updates both sides
	require.NoError(t, b.Save(db, NewSimpleObj([]byte{2}, &counter{Owner: bob, Count: 2})))
	objs, err = b.GetIndexed(db, "owner", alice)
	require.NoError(t, err)
	assert.Len(t, objs, 1)
	objs, err = b.GetIndexed(db, "owner", bob)
	require.NoError(t, err)
	assert.Len(t, objs, 2)

	// deletion cleans up the index
	require.NoError(t, b.Delete(db, []byte{3}))
	objs, err = b.GetIndexed(db, "owner", bob)
	require.NoError(t, err)
	assert.Len(t, objs, 1)

	// unknown index errors out
	_, err = b.GetIndexed(db, "ghost", alice)
	require.Error(t, err)
	assert.True(t, errors.ErrNotFound.Is(err))
}

func TestUniqueIndexConflict(t *testing.T) {
	db := store.MemStore()
	b := NewBucket("cnt", &counter{}).
		WithIndex("owner", asObjectIndexer(ownerIndexer), true)

	alice := []byte("alice_______________")
	require.NoError(t, b.Save(db, NewSimpleObj([]byte{1}, &counter{Owner: alice, Count: 1})))

	// same owner under a different primary key violates uniqueness
	err := b.Save(db, NewSimpleObj([]byte{2}, &counter{Owner: alice, Count: 2}))
	require.Error(t, err)
	assert.True(t, errors.ErrDuplicate.Is(err))

	// overwriting the same primary key is fine
	require.NoError(t, b.Save(db, NewSimpleObj([]byte{1}, &counter{Owner: alice, Count: 9})))
}
