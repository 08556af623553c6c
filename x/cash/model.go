package cash

import (
	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/coin"
	"github.com/iov-one/tokenswap/errors"
	"github.com/iov-one/tokenswap/orm"
)

// BucketName is where we store the balances
const BucketName = "cash"

// Set is the model stored for every wallet, a set of coins
// held by one address.
type Set struct {
	Coins coin.Coins
}

var _ orm.Model = (*Set)(nil)

// Validate requires that all coins are in the valid range and the set
// is normalized
func (s *Set) Validate() error {
	return s.Coins.Validate()
}

// Copy makes a deep copy of the set
func (s *Set) Copy() orm.Model {
	return &Set{
		Coins: s.Coins.Clone(),
	}
}

// Marshal encodes the set into the fixed wallet layout
func (s *Set) Marshal() ([]byte, error) {
	return s.Coins.AppendTo(nil), nil
}

// Unmarshal parses the fixed wallet layout
func (s *Set) Unmarshal(bz []byte) error {
	cs, rest, err := coin.ReadCoins(bz)
	if err != nil {
		return err
	}
	if len(rest) != 0 {
		return errors.Wrap(errors.ErrInput, "trailing wallet bytes")
	}
	s.Coins = cs
	return nil
}

// Add modifies the wallet to add Coin c
func (s *Set) Add(c coin.Coin) error {
	cs, err := s.Coins.Add(c)
	if err != nil {
		return err
	}
	s.Coins = cs
	return nil
}

// Subtract modifies the wallet to remove Coin c
func (s *Set) Subtract(c coin.Coin) error {
	return s.Add(c.Negative())
}

// NewWalletBucket builds the bucket that stores all wallets,
// keyed by address.
func NewWalletBucket() orm.ModelBucket {
	return orm.NewModelBucket(BucketName, &Set{})
}

// mustAddress ensures we always use valid addresses as wallet keys
func mustAddress(addr tokenswap.Address) ([]byte, error) {
	if err := addr.Validate(); err != nil {
		return nil, errors.Wrap(err, "wallet address")
	}
	return addr, nil
}
