package cash

import (
	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/coin"
	"github.com/iov-one/tokenswap/errors"
)

const (
	// maxMemoSize is the maximum length of the memo field
	maxMemoSize = 128
)

// SendMsg transfers funds between two wallets.
type SendMsg struct {
	Src    tokenswap.Address
	Dest   tokenswap.Address
	Amount coin.Coin
	Memo   string
}

var _ tokenswap.Msg = (*SendMsg)(nil)

// Path returns the routing path for this message
func (SendMsg) Path() string {
	return "cash/send"
}

// Validate makes sure that this is sensible
func (s *SendMsg) Validate() error {
	if err := s.Src.Validate(); err != nil {
		return errors.Wrap(err, "src")
	}
	if err := s.Dest.Validate(); err != nil {
		return errors.Wrap(err, "dest")
	}
	if err := s.Amount.Validate(); err != nil {
		return errors.Wrap(err, "amount")
	}
	if !s.Amount.IsPositive() {
		return errors.Wrapf(errors.ErrAmount, "non-positive send: %v", s.Amount)
	}
	if len(s.Memo) > maxMemoSize {
		return errors.Wrap(errors.ErrInput, "memo too long")
	}
	return nil
}

// Marshal encodes the message into the fixed wire layout
func (s *SendMsg) Marshal() ([]byte, error) {
	if len(s.Src) != tokenswap.AddressLength || len(s.Dest) != tokenswap.AddressLength {
		return nil, errors.Wrap(errors.ErrInput, "malformed address")
	}
	out := make([]byte, 0, 2*tokenswap.AddressLength+16+len(s.Memo))
	out = append(out, s.Src...)
	out = append(out, s.Dest...)
	out = s.Amount.AppendTo(out)
	out = append(out, byte(len(s.Memo)))
	out = append(out, s.Memo...)
	return out, nil
}

// Unmarshal parses the fixed wire layout
func (s *SendMsg) Unmarshal(bz []byte) error {
	al := tokenswap.AddressLength
	if len(bz) < 2*al {
		return errors.Wrap(errors.ErrInput, "truncated message")
	}
	s.Src = append(tokenswap.Address{}, bz[:al]...)
	s.Dest = append(tokenswap.Address{}, bz[al:2*al]...)
	amount, rest, err := coin.ReadCoin(bz[2*al:])
	if err != nil {
		return err
	}
	s.Amount = amount
	if len(rest) < 1 {
		return errors.Wrap(errors.ErrInput, "truncated message")
	}
	n := int(rest[0])
	if len(rest) != 1+n {
		return errors.Wrap(errors.ErrInput, "malformed memo")
	}
	s.Memo = string(rest[1:])
	return nil
}
