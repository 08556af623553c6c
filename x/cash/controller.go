package cash

import (
	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/coin"
	"github.com/iov-one/tokenswap/errors"
	"github.com/iov-one/tokenswap/orm"
)

// Controller is the functionality needed by other handlers to move
// value around. This is implemented by CashController, but that
// can be replaced if we have another implementation of the logic.
type Controller interface {
	// Balance returns the coins held by the given wallet. An address
	// without a wallet holds no funds.
	Balance(db tokenswap.ReadOnlyKVStore, addr tokenswap.Address) (coin.Coins, error)

	// MoveCoins removes funds from the source wallet and adds them to
	// the destination wallet, creating the destination if needed.
	MoveCoins(db tokenswap.KVStore, src, dest tokenswap.Address, amount coin.Coin) error

	// IssueCoins increases the balance of the wallet, minting new
	// funds out of nowhere. Use only from trusted setup paths.
	IssueCoins(db tokenswap.KVStore, dest tokenswap.Address, amount coin.Coin) error

	// CreateAccount initializes an empty wallet under the address.
	CreateAccount(db tokenswap.KVStore, addr tokenswap.Address) error

	// CloseAccount removes an empty wallet from the store. Closing a
	// wallet that still holds funds is an error.
	CloseAccount(db tokenswap.KVStore, addr tokenswap.Address) error

	// HasAccount returns true if a wallet exists under the address,
	// even if it is empty.
	HasAccount(db tokenswap.ReadOnlyKVStore, addr tokenswap.Address) (bool, error)
}

// CashController is the standard implementation of the Controller,
// serving wallets from the cash bucket.
type CashController struct {
	bucket orm.ModelBucket
}

var _ Controller = CashController{}

// NewController returns a base CashController
func NewController(bucket orm.ModelBucket) CashController {
	return CashController{bucket: bucket}
}

func (c CashController) Balance(db tokenswap.ReadOnlyKVStore, addr tokenswap.Address) (coin.Coins, error) {
	key, err := mustAddress(addr)
	if err != nil {
		return nil, err
	}
	var wallet Set
	switch err := c.bucket.One(db, key, &wallet); {
	case err == nil:
		return wallet.Coins, nil
	case errors.ErrNotFound.Is(err):
		return nil, nil
	default:
		return nil, errors.Wrap(err, "load wallet")
	}
}

func (c CashController) MoveCoins(db tokenswap.KVStore, src, dest tokenswap.Address, amount coin.Coin) error {
	if err := amount.Validate(); err != nil {
		return errors.Wrap(err, "move amount")
	}
	if !amount.IsPositive() {
		return errors.Wrapf(errors.ErrAmount, "non-positive amount: %v", amount)
	}
	srcKey, err := mustAddress(src)
	if err != nil {
		return err
	}
	destKey, err := mustAddress(dest)
	if err != nil {
		return err
	}

	var sender Set
	if err := c.bucket.One(db, srcKey, &sender); err != nil {
		if errors.ErrNotFound.Is(err) {
			return errors.Wrapf(errors.ErrEmpty, "empty wallet %s", src)
		}
		return errors.Wrap(err, "load source")
	}
	if !sender.Coins.Contains(amount) {
		return errors.Wrapf(errors.ErrAmount, "insufficient funds %s", src)
	}
	if err := sender.Subtract(amount); err != nil {
		return err
	}
	if err := c.bucket.Put(db, srcKey, &sender); err != nil {
		return errors.Wrap(err, "save source")
	}

	var recipient Set
	if err := c.bucket.One(db, destKey, &recipient); err != nil && !errors.ErrNotFound.Is(err) {
		return errors.Wrap(err, "load destination")
	}
	if err := recipient.Add(amount); err != nil {
		return err
	}
	return errors.Wrap(c.bucket.Put(db, destKey, &recipient), "save destination")
}

func (c CashController) IssueCoins(db tokenswap.KVStore, dest tokenswap.Address, amount coin.Coin) error {
	if err := amount.Validate(); err != nil {
		return errors.Wrap(err, "issue amount")
	}
	key, err := mustAddress(dest)
	if err != nil {
		return err
	}
	var recipient Set
	if err := c.bucket.One(db, key, &recipient); err != nil && !errors.ErrNotFound.Is(err) {
		return errors.Wrap(err, "load wallet")
	}
	if err := recipient.Add(amount); err != nil {
		return err
	}
	if !recipient.Coins.IsNonNegative() {
		return errors.Wrapf(errors.ErrAmount, "negative balance %s", dest)
	}
	return errors.Wrap(c.bucket.Put(db, key, &recipient), "save wallet")
}

func (c CashController) CreateAccount(db tokenswap.KVStore, addr tokenswap.Address) error {
	key, err := mustAddress(addr)
	if err != nil {
		return err
	}
	if err := c.bucket.Has(db, key); err == nil {
		return errors.Wrapf(errors.ErrDuplicate, "wallet %s", addr)
	} else if !errors.ErrNotFound.Is(err) {
		return err
	}
	return errors.Wrap(c.bucket.Put(db, key, &Set{}), "create wallet")
}

func (c CashController) CloseAccount(db tokenswap.KVStore, addr tokenswap.Address) error {
	key, err := mustAddress(addr)
	if err != nil {
		return err
	}
	var wallet Set
	if err := c.bucket.One(db, key, &wallet); err != nil {
		return errors.Wrap(err, "load wallet")
	}
	if !wallet.Coins.IsEmpty() {
		return errors.Wrapf(errors.ErrState, "wallet %s is not empty", addr)
	}
	return errors.Wrap(c.bucket.Delete(db, key), "close wallet")
}

func (c CashController) HasAccount(db tokenswap.ReadOnlyKVStore, addr tokenswap.Address) (bool, error) {
	key, err := mustAddress(addr)
	if err != nil {
		return false, err
	}
	switch err := c.bucket.Has(db, key); {
	case err == nil:
		return true, nil
	case errors.ErrNotFound.Is(err):
		return false, nil
	default:
		return false, err
	}
}
