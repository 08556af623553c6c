package swap

import (
	"testing"

	"github.com/iov-one/tokenswap/errors"
	"github.com/iov-one/tokenswap/store"
	"github.com/iov-one/tokenswap/swaptest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveRecord(t *testing.T) {
	initializer := swaptest.NewKey()
	seed := swaptest.SequenceID(7)

	addr, bump, err := DeriveRecord(initializer, seed)
	require.NoError(t, err)
	require.NoError(t, addr.Validate())
	assert.False(t, addr.Equals(initializer))

	// derivation is a pure function
	again, bump2, err := DeriveRecord(initializer, seed)
	require.NoError(t, err)
	assert.True(t, addr.Equals(again))
	assert.Equal(t, bump, bump2)

	// the stored bump re-derives the owning condition
	cond := RecordCondition(initializer, seed, bump)
	assert.True(t, addr.Equals(cond.Address()))

	// other inputs land elsewhere
	other, _, err := DeriveRecord(initializer, swaptest.SequenceID(8))
	require.NoError(t, err)
	assert.False(t, addr.Equals(other))

	other, _, err = DeriveRecord(swaptest.NewKey(), seed)
	require.NoError(t, err)
	assert.False(t, addr.Equals(other))
}

func TestDeriveRecordRejectsBadInput(t *testing.T) {
	_, _, err := DeriveRecord(swaptest.NewKey(), []byte("short"))
	require.Error(t, err)
	assert.True(t, errors.ErrInput.Is(err))

	_, _, err = DeriveRecord([]byte("not-an-address"), swaptest.SequenceID(1))
	require.Error(t, err)
	assert.True(t, errors.ErrInput.Is(err))
}

func TestVaultAddresses(t *testing.T) {
	record := swaptest.NewKey()

	vaultA := VaultAddress(record, "IOV")
	vaultB := VaultAddress(record, "ETH")
	require.NoError(t, vaultA.Validate())
	require.NoError(t, vaultB.Validate())
	assert.False(t, vaultA.Equals(vaultB))

	// deterministic and bound to the record
	assert.True(t, vaultA.Equals(VaultAddress(record, "IOV")))
	assert.False(t, vaultA.Equals(VaultAddress(swaptest.NewKey(), "IOV")))
}

func TestSwapValidate(t *testing.T) {
	valid := func() *Swap {
		return &Swap{
			Seed:          swaptest.SequenceID(1),
			Initializer:   swaptest.NewKey(),
			Taker:         swaptest.NewKey(),
			TickerA:       "IOV",
			TickerB:       "ETH",
			ReceiveAmount: 100,
			Bump:          255,
		}
	}
	require.NoError(t, valid().Validate())

	cases := map[string]struct {
		mod     func(*Swap)
		wantErr *errors.Error
	}{
		"short seed": {
			mod:     func(s *Swap) { s.Seed = []byte{1, 2} },
			wantErr: errors.ErrInput,
		},
		"missing taker": {
			mod:     func(s *Swap) { s.Taker = nil },
			wantErr: errors.ErrInput,
		},
		"bad ticker": {
			mod:     func(s *Swap) { s.TickerA = "io" },
			wantErr: errors.ErrInput,
		},
		"same ticker": {
			mod:     func(s *Swap) { s.TickerB = s.TickerA },
			wantErr: errors.ErrInput,
		},
		"zero amount": {
			mod:     func(s *Swap) { s.ReceiveAmount = 0 },
			wantErr: errors.ErrAmount,
		},
		"negative amount": {
			mod:     func(s *Swap) { s.ReceiveAmount = -5 },
			wantErr: errors.ErrAmount,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			s := valid()
			tc.mod(s)
			err := s.Validate()
			require.Error(t, err)
			assert.True(t, tc.wantErr.Is(err), "unexpected error: %+v", err)
		})
	}
}

func TestSwapRoundTrip(t *testing.T) {
	s := &Swap{
		Seed:          swaptest.SequenceID(42),
		Initializer:   swaptest.NewKey(),
		Taker:         swaptest.NewKey(),
		TickerA:       "IOV",
		TickerB:       "ETHS",
		ReceiveAmount: 123456,
		Bump:          254,
	}
	bz, err := s.Marshal()
	require.NoError(t, err)
	assert.Len(t, bz, recordSize)

	var loaded Swap
	require.NoError(t, loaded.Unmarshal(bz))
	assert.Equal(t, s, &loaded)

	assert.Error(t, loaded.Unmarshal(bz[:recordSize-1]))
}

func TestBucketIndexes(t *testing.T) {
	db := store.MemStore()
	bucket := NewBucket()

	initializer := swaptest.NewKey()
	taker := swaptest.NewKey()

	for i := uint64(1); i <= 3; i++ {
		seed := swaptest.SequenceID(i)
		addr, bump, err := DeriveRecord(initializer, seed)
		require.NoError(t, err)
		s := &Swap{
			Seed:          seed,
			Initializer:   initializer,
			Taker:         taker,
			TickerA:       "IOV",
			TickerB:       "ETH",
			ReceiveAmount: int64(i * 10),
			Bump:          bump,
		}
		require.NoError(t, bucket.Put(db, addr, s))
	}

	byInit, err := bucket.ByIndex(db, "initializer", initializer)
	require.NoError(t, err)
	assert.Len(t, byInit, 3)

	byTaker, err := bucket.ByIndex(db, "taker", taker)
	require.NoError(t, err)
	assert.Len(t, byTaker, 3)

	byOther, err := bucket.ByIndex(db, "taker", swaptest.NewKey())
	require.NoError(t, err)
	assert.Empty(t, byOther)
}
