package swap

import (
	"bytes"
	"encoding/binary"

	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/coin"
	"github.com/iov-one/tokenswap/errors"
	"github.com/iov-one/tokenswap/orm"
)

const (
	// BucketName contains all swap records
	BucketName = "swp"

	// SeedLength is the required size of the swap seed in bytes
	SeedLength = 8

	// tickerSlot is the fixed width a ticker occupies in the record,
	// shorter tickers are zero padded
	tickerSlot = 4
)

// recordSize is the full size of a serialized swap record
var recordSize = SeedLength + 2*tokenswap.AddressLength + 2*tickerSlot + 8 + 1

// Swap is the escrow record of one pending exchange. It is stored
// under its derived address and owns both custody vaults.
type Swap struct {
	// Seed disambiguates multiple swaps of the same initializer.
	Seed []byte
	// Initializer opened the swap and deposited the A tokens.
	Initializer tokenswap.Address
	// Taker is the designated counterparty receiving the deposit.
	Taker tokenswap.Address
	// TickerA is the currency locked in vault A by the initializer.
	TickerA string
	// TickerB is the currency the initializer expects in return.
	TickerB string
	// ReceiveAmount is how many TickerB units vault B must hold
	// before the exchange may settle.
	ReceiveAmount int64
	// Bump is the derivation offset that produced the record address.
	Bump byte
}

var _ orm.Model = (*Swap)(nil)

// Validate ensures the record is complete and internally consistent
func (s *Swap) Validate() error {
	if len(s.Seed) != SeedLength {
		return errors.Wrapf(errors.ErrInput, "seed must be %d bytes", SeedLength)
	}
	if err := s.Initializer.Validate(); err != nil {
		return errors.Wrap(err, "initializer")
	}
	if err := s.Taker.Validate(); err != nil {
		return errors.Wrap(err, "taker")
	}
	if !coin.IsCC(s.TickerA) {
		return errors.Wrapf(errors.ErrInput, "invalid ticker: %s", s.TickerA)
	}
	if !coin.IsCC(s.TickerB) {
		return errors.Wrapf(errors.ErrInput, "invalid ticker: %s", s.TickerB)
	}
	if s.TickerA == s.TickerB {
		return errors.Wrap(errors.ErrInput, "same ticker on both sides")
	}
	if s.ReceiveAmount <= 0 || s.ReceiveAmount > coin.MaxAmount {
		return errors.Wrapf(errors.ErrAmount, "receive amount: %d", s.ReceiveAmount)
	}
	return nil
}

// Copy produces an independent deep copy of the record
func (s *Swap) Copy() orm.Model {
	return &Swap{
		Seed:          append([]byte{}, s.Seed...),
		Initializer:   s.Initializer.Clone(),
		Taker:         s.Taker.Clone(),
		TickerA:       s.TickerA,
		TickerB:       s.TickerB,
		ReceiveAmount: s.ReceiveAmount,
		Bump:          s.Bump,
	}
}

// Marshal encodes the record into its fixed 65 byte layout
func (s *Swap) Marshal() ([]byte, error) {
	if len(s.Seed) != SeedLength {
		return nil, errors.Wrap(errors.ErrInput, "malformed seed")
	}
	if len(s.Initializer) != tokenswap.AddressLength || len(s.Taker) != tokenswap.AddressLength {
		return nil, errors.Wrap(errors.ErrInput, "malformed address")
	}
	if len(s.TickerA) > tickerSlot || len(s.TickerB) > tickerSlot {
		return nil, errors.Wrap(errors.ErrInput, "ticker too long")
	}
	out := make([]byte, 0, recordSize)
	out = append(out, s.Seed...)
	out = append(out, s.Initializer...)
	out = append(out, s.Taker...)
	out = appendTicker(out, s.TickerA)
	out = appendTicker(out, s.TickerB)
	var amt [8]byte
	binary.BigEndian.PutUint64(amt[:], uint64(s.ReceiveAmount))
	out = append(out, amt[:]...)
	out = append(out, s.Bump)
	return out, nil
}

// Unmarshal parses the fixed 65 byte layout
func (s *Swap) Unmarshal(bz []byte) error {
	if len(bz) != recordSize {
		return errors.Wrapf(errors.ErrInput, "record must be %d bytes", recordSize)
	}
	s.Seed = append([]byte{}, bz[:SeedLength]...)
	bz = bz[SeedLength:]
	al := tokenswap.AddressLength
	s.Initializer = append(tokenswap.Address{}, bz[:al]...)
	s.Taker = append(tokenswap.Address{}, bz[al:2*al]...)
	bz = bz[2*al:]
	s.TickerA = readTicker(bz[:tickerSlot])
	s.TickerB = readTicker(bz[tickerSlot : 2*tickerSlot])
	bz = bz[2*tickerSlot:]
	s.ReceiveAmount = int64(binary.BigEndian.Uint64(bz[:8]))
	s.Bump = bz[8]
	return nil
}

// ReceiveCoin is the payment vault B must hold for settlement
func (s *Swap) ReceiveCoin() coin.Coin {
	return coin.NewCoin(s.ReceiveAmount, s.TickerB)
}

func appendTicker(out []byte, ticker string) []byte {
	out = append(out, ticker...)
	for i := len(ticker); i < tickerSlot; i++ {
		out = append(out, 0)
	}
	return out
}

func readTicker(bz []byte) string {
	return string(bytes.TrimRight(bz, "\x00"))
}

// RecordCondition is the condition owning a swap record, built from
// everything that identifies the swap
func RecordCondition(initializer tokenswap.Address, seed []byte, bump byte) tokenswap.Condition {
	data := make([]byte, 0, len(initializer)+len(seed)+1)
	data = append(data, initializer...)
	data = append(data, seed...)
	data = append(data, bump)
	return tokenswap.NewCondition("swap", "seed", data)
}

// DeriveRecord finds the address for a swap record of the given
// initializer and seed. It searches bump offsets from the top until
// the derived address differs from the initializer's own, so a record
// can never shadow the account that created it. The result is a pure
// function of the inputs.
func DeriveRecord(initializer tokenswap.Address, seed []byte) (tokenswap.Address, byte, error) {
	if err := initializer.Validate(); err != nil {
		return nil, 0, errors.Wrap(err, "initializer")
	}
	if len(seed) != SeedLength {
		return nil, 0, errors.Wrapf(errors.ErrInput, "seed must be %d bytes", SeedLength)
	}
	for bump := 255; bump >= 0; bump-- {
		addr := RecordCondition(initializer, seed, byte(bump)).Address()
		if !addr.Equals(initializer) {
			return addr, byte(bump), nil
		}
	}
	return nil, 0, errors.Wrap(errors.ErrHuman, "no valid bump offset")
}

// VaultCondition is the condition owning the custody vault of one
// currency of one swap record
func VaultCondition(record tokenswap.Address, ticker string) tokenswap.Condition {
	data := make([]byte, 0, len(record)+len(ticker))
	data = append(data, record...)
	data = append(data, ticker...)
	return tokenswap.NewCondition("swap", "vault", data)
}

// VaultAddress derives the wallet address of the custody vault
func VaultAddress(record tokenswap.Address, ticker string) tokenswap.Address {
	return VaultCondition(record, ticker).Address()
}

// NewBucket returns a bucket for the swap records, indexed by both
// parties so open swaps can be listed per account
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket(BucketName, &Swap{},
		orm.WithIndex("initializer", initializerIndexer, false),
		orm.WithIndex("taker", takerIndexer, false),
	)
}

func initializerIndexer(m orm.Model) ([]byte, error) {
	s, ok := m.(*Swap)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "%T", m)
	}
	return s.Initializer, nil
}

func takerIndexer(m orm.Model) ([]byte, error) {
	s, ok := m.(*Swap)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "%T", m)
	}
	return s.Taker, nil
}
