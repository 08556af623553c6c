package swap

import (
	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/coin"
	"github.com/iov-one/tokenswap/errors"
)

// CreateSwapMsg opens a new swap: it locks the deposit in vault A and
// persists the escrow record under its derived address.
type CreateSwapMsg struct {
	// Initializer is the account funding the deposit. Optional, it
	// defaults to the main signer of the transaction.
	Initializer tokenswap.Address
	// Seed distinguishes swaps of the same initializer, 8 bytes.
	Seed []byte
	// Taker is the designated counterparty.
	Taker tokenswap.Address
	// DepositAmount is locked in vault A until settlement.
	DepositAmount coin.Coin
	// ReceiveAmount is the payment expected in return.
	ReceiveAmount coin.Coin
}

var _ tokenswap.Msg = (*CreateSwapMsg)(nil)

// Path returns the routing path for this message
func (CreateSwapMsg) Path() string {
	return "swap/create"
}

// Validate makes sure the message is sensible without any state access
func (m *CreateSwapMsg) Validate() error {
	if len(m.Seed) != SeedLength {
		return errors.Wrapf(errors.ErrInput, "seed must be %d bytes", SeedLength)
	}
	if m.Initializer != nil {
		if err := m.Initializer.Validate(); err != nil {
			return errors.Wrap(err, "initializer")
		}
	}
	if err := m.Taker.Validate(); err != nil {
		return errors.Wrap(err, "taker")
	}
	if err := m.DepositAmount.Validate(); err != nil {
		return errors.Wrap(err, "deposit amount")
	}
	if !m.DepositAmount.IsPositive() {
		return errors.Wrapf(errors.ErrAmount, "non-positive deposit: %v", m.DepositAmount)
	}
	if err := m.ReceiveAmount.Validate(); err != nil {
		return errors.Wrap(err, "receive amount")
	}
	if !m.ReceiveAmount.IsPositive() {
		return errors.Wrapf(errors.ErrAmount, "non-positive receive: %v", m.ReceiveAmount)
	}
	if m.DepositAmount.Ticker == m.ReceiveAmount.Ticker {
		return errors.Wrap(errors.ErrInput, "same ticker on both sides")
	}
	return nil
}

// Marshal encodes the message into the wire layout
func (m *CreateSwapMsg) Marshal() ([]byte, error) {
	if len(m.Seed) != SeedLength {
		return nil, errors.Wrap(errors.ErrInput, "malformed seed")
	}
	if len(m.Taker) != tokenswap.AddressLength {
		return nil, errors.Wrap(errors.ErrInput, "malformed taker")
	}
	out := make([]byte, 0, 2+SeedLength+2*tokenswap.AddressLength+26)
	out = append(out, m.Seed...)
	if m.Initializer == nil {
		out = append(out, 0)
	} else {
		if len(m.Initializer) != tokenswap.AddressLength {
			return nil, errors.Wrap(errors.ErrInput, "malformed initializer")
		}
		out = append(out, 1)
		out = append(out, m.Initializer...)
	}
	out = append(out, m.Taker...)
	out = m.DepositAmount.AppendTo(out)
	out = m.ReceiveAmount.AppendTo(out)
	return out, nil
}

// Unmarshal parses the wire layout
func (m *CreateSwapMsg) Unmarshal(bz []byte) error {
	al := tokenswap.AddressLength
	if len(bz) < SeedLength+1 {
		return errors.Wrap(errors.ErrInput, "truncated message")
	}
	m.Seed = append([]byte{}, bz[:SeedLength]...)
	bz = bz[SeedLength:]
	switch bz[0] {
	case 0:
		m.Initializer = nil
		bz = bz[1:]
	case 1:
		if len(bz) < 1+al {
			return errors.Wrap(errors.ErrInput, "truncated message")
		}
		m.Initializer = append(tokenswap.Address{}, bz[1:1+al]...)
		bz = bz[1+al:]
	default:
		return errors.Wrap(errors.ErrInput, "malformed initializer flag")
	}
	if len(bz) < al {
		return errors.Wrap(errors.ErrInput, "truncated message")
	}
	m.Taker = append(tokenswap.Address{}, bz[:al]...)
	bz = bz[al:]
	var err error
	if m.DepositAmount, bz, err = coin.ReadCoin(bz); err != nil {
		return err
	}
	if m.ReceiveAmount, bz, err = coin.ReadCoin(bz); err != nil {
		return err
	}
	if len(bz) != 0 {
		return errors.Wrap(errors.ErrInput, "trailing bytes")
	}
	return nil
}

// ExchangeSwapMsg settles a funded swap. The derived record address is
// the only identifier needed.
type ExchangeSwapMsg struct {
	SwapAddress tokenswap.Address
}

var _ tokenswap.Msg = (*ExchangeSwapMsg)(nil)

// Path returns the routing path for this message
func (ExchangeSwapMsg) Path() string {
	return "swap/exchange"
}

// Validate makes sure the message is sensible without any state access
func (m *ExchangeSwapMsg) Validate() error {
	return errors.Wrap(m.SwapAddress.Validate(), "swap address")
}

// Marshal encodes the message into the wire layout
func (m *ExchangeSwapMsg) Marshal() ([]byte, error) {
	if len(m.SwapAddress) != tokenswap.AddressLength {
		return nil, errors.Wrap(errors.ErrInput, "malformed swap address")
	}
	return append([]byte{}, m.SwapAddress...), nil
}

// Unmarshal parses the wire layout
func (m *ExchangeSwapMsg) Unmarshal(bz []byte) error {
	if len(bz) != tokenswap.AddressLength {
		return errors.Wrap(errors.ErrInput, "malformed swap address")
	}
	m.SwapAddress = append(tokenswap.Address{}, bz...)
	return nil
}

// CancelSwapMsg aborts an open swap, returning all funds.
type CancelSwapMsg struct {
	SwapAddress tokenswap.Address
}

var _ tokenswap.Msg = (*CancelSwapMsg)(nil)

// Path returns the routing path for this message
func (CancelSwapMsg) Path() string {
	return "swap/cancel"
}

// Validate makes sure the message is sensible without any state access
func (m *CancelSwapMsg) Validate() error {
	return errors.Wrap(m.SwapAddress.Validate(), "swap address")
}

// Marshal encodes the message into the wire layout
func (m *CancelSwapMsg) Marshal() ([]byte, error) {
	if len(m.SwapAddress) != tokenswap.AddressLength {
		return nil, errors.Wrap(errors.ErrInput, "malformed swap address")
	}
	return append([]byte{}, m.SwapAddress...), nil
}

// Unmarshal parses the wire layout
func (m *CancelSwapMsg) Unmarshal(bz []byte) error {
	if len(bz) != tokenswap.AddressLength {
		return errors.Wrap(errors.ErrInput, "malformed swap address")
	}
	m.SwapAddress = append(tokenswap.Address{}, bz...)
	return nil
}
