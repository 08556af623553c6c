package coin

import (
	"encoding/binary"

	"github.com/iov-one/tokenswap/errors"
)

// Wire layout of a single coin: a length prefixed ticker followed by
// the amount as 8 big endian bytes.

// AppendTo serializes the coin at the end of the given buffer
func (c Coin) AppendTo(out []byte) []byte {
	out = append(out, byte(len(c.Ticker)))
	out = append(out, c.Ticker...)
	var amt [8]byte
	binary.BigEndian.PutUint64(amt[:], uint64(c.Amount))
	return append(out, amt[:]...)
}

// ReadCoin parses one coin from the front of the buffer and returns
// the remaining bytes
func ReadCoin(bz []byte) (Coin, []byte, error) {
	if len(bz) < 1 {
		return Coin{}, nil, errors.Wrap(errors.ErrInput, "truncated coin")
	}
	n := int(bz[0])
	if len(bz) < 1+n+8 {
		return Coin{}, nil, errors.Wrap(errors.ErrInput, "truncated coin")
	}
	c := Coin{
		Ticker: string(bz[1 : 1+n]),
		Amount: int64(binary.BigEndian.Uint64(bz[1+n : 1+n+8])),
	}
	return c, bz[1+n+8:], nil
}

// AppendTo serializes the coin set at the end of the given buffer,
// a count byte followed by the entries
func (cs Coins) AppendTo(out []byte) []byte {
	out = append(out, byte(len(cs)))
	for _, c := range cs {
		out = c.AppendTo(out)
	}
	return out
}

// ReadCoins parses a coin set from the front of the buffer and
// returns the remaining bytes
func ReadCoins(bz []byte) (Coins, []byte, error) {
	if len(bz) < 1 {
		return nil, nil, errors.Wrap(errors.ErrInput, "truncated coins")
	}
	cnt := int(bz[0])
	bz = bz[1:]
	var cs Coins
	for i := 0; i < cnt; i++ {
		var (
			c   Coin
			err error
		)
		c, bz, err = ReadCoin(bz)
		if err != nil {
			return nil, nil, err
		}
		cs = append(cs, &c)
	}
	return cs, bz, nil
}
