package swaptest

import (
	"encoding/binary"
	"sync/atomic"

	"github.com/iov-one/tokenswap"
)

// condCnt is a counter used to ensure uniqueness of generated conditions
var condCnt uint64

// NewCondition returns a mocked condition. Each call returns a
// different condition, deterministic within the process.
func NewCondition() tokenswap.Condition {
	raw := make([]byte, 8)
	cnt := atomic.AddUint64(&condCnt, 1)
	binary.BigEndian.PutUint64(raw, cnt)
	return tokenswap.NewCondition("mock", "cond", raw)
}

// NewKey returns the address of a freshly generated condition. Use it
// whenever a test needs an arbitrary but valid address.
func NewKey() tokenswap.Address {
	return NewCondition().Address()
}

// SequenceID returns an 8 byte, big endian encoded identifier, the
// way record seeds and sequence counters are stored.
func SequenceID(n uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, n)
	return b
}
