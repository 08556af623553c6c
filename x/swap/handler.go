package swap

import (
	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/errors"
	"github.com/iov-one/tokenswap/orm"
	"github.com/iov-one/tokenswap/x"
	"github.com/iov-one/tokenswap/x/cash"
	"github.com/tendermint/tendermint/libs/common"
)

const (
	createSwapCost int64 = 300
	settleSwapCost int64 = 200
)

// tagKey marks every delivered swap result with the record address
const tagKey = "swap"

// RegisterRoutes will instantiate and register all handlers in this package
func RegisterRoutes(r tokenswap.Registry, auth x.Authenticator, control cash.Controller) {
	bucket := NewBucket()
	r.Handle(&CreateSwapMsg{}, CreateSwapHandler{auth: auth, bucket: bucket, cash: control})
	r.Handle(&ExchangeSwapMsg{}, ExchangeSwapHandler{bucket: bucket, cash: control})
	r.Handle(&CancelSwapMsg{}, CancelSwapHandler{auth: auth, bucket: bucket, cash: control})
}

// CreateSwapHandler opens a swap: it derives the record address,
// creates both custody vaults, locks the deposit in vault A and
// persists the record.
type CreateSwapHandler struct {
	auth   x.Authenticator
	bucket orm.ModelBucket
	cash   cash.Controller
}

var _ tokenswap.Handler = CreateSwapHandler{}

// Check validates the message and reserves the gas
func (h CreateSwapHandler) Check(ctx tokenswap.Context, db tokenswap.KVStore, tx tokenswap.Tx) (*tokenswap.CheckResult, error) {
	if _, _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &tokenswap.CheckResult{GasAllocated: createSwapCost}, nil
}

// Deliver creates the record and vaults and moves the deposit
func (h CreateSwapHandler) Deliver(ctx tokenswap.Context, db tokenswap.KVStore, tx tokenswap.Tx) (*tokenswap.DeliverResult, error) {
	msg, initializer, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}

	record, bump, err := DeriveRecord(initializer, msg.Seed)
	if err != nil {
		return nil, err
	}
	if err := h.bucket.Has(db, record); err == nil {
		return nil, errors.Wrapf(errors.ErrDuplicate, "swap %s", record)
	} else if !errors.ErrNotFound.Is(err) {
		return nil, err
	}

	swap := &Swap{
		Seed:          msg.Seed,
		Initializer:   initializer,
		Taker:         msg.Taker,
		TickerA:       msg.DepositAmount.Ticker,
		TickerB:       msg.ReceiveAmount.Ticker,
		ReceiveAmount: msg.ReceiveAmount.Amount,
		Bump:          bump,
	}

	vaultA := VaultAddress(record, swap.TickerA)
	vaultB := VaultAddress(record, swap.TickerB)
	if err := h.cash.CreateAccount(db, vaultA); err != nil {
		return nil, errors.Wrap(err, "vault A")
	}
	if err := h.cash.CreateAccount(db, vaultB); err != nil {
		return nil, errors.Wrap(err, "vault B")
	}
	if err := h.cash.MoveCoins(db, initializer, vaultA, msg.DepositAmount); err != nil {
		return nil, errors.Wrap(err, "deposit")
	}
	if err := h.bucket.Put(db, record, swap); err != nil {
		return nil, errors.Wrap(err, "save swap")
	}

	return &tokenswap.DeliverResult{
		Data: record,
		Tags: []common.KVPair{
			{Key: []byte(tagKey), Value: record},
		},
	}, nil
}

func (h CreateSwapHandler) validate(ctx tokenswap.Context, tx tokenswap.Tx) (*CreateSwapMsg, tokenswap.Address, error) {
	var msg CreateSwapMsg
	if err := tokenswap.LoadMsg(tx, &msg); err != nil {
		return nil, nil, err
	}

	initializer := msg.Initializer
	if initializer == nil {
		signer := x.MainSigner(ctx, h.auth)
		if signer == nil {
			return nil, nil, errors.Wrap(errors.ErrUnauthorized, "no signer")
		}
		initializer = signer.Address()
	}
	// whoever funds the deposit must have signed
	if !h.auth.HasAddress(ctx, initializer) {
		return nil, nil, errors.Wrapf(errors.ErrUnauthorized, "initializer %s", initializer)
	}
	return &msg, initializer, nil
}

// ExchangeSwapHandler settles a funded swap. Anyone may deliver this
// message: the authorization comes from the vault being funded, not
// from a signature.
type ExchangeSwapHandler struct {
	bucket orm.ModelBucket
	cash   cash.Controller
}

var _ tokenswap.Handler = ExchangeSwapHandler{}

// Check validates the message and reserves the gas
func (h ExchangeSwapHandler) Check(ctx tokenswap.Context, db tokenswap.KVStore, tx tokenswap.Tx) (*tokenswap.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &tokenswap.CheckResult{GasAllocated: settleSwapCost}, nil
}

// Deliver pays both sides out and destroys the record and vaults
func (h ExchangeSwapHandler) Deliver(ctx tokenswap.Context, db tokenswap.KVStore, tx tokenswap.Tx) (*tokenswap.DeliverResult, error) {
	record, swap, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	vaultB := VaultAddress(record, swap.TickerB)
	funds, err := h.cash.Balance(db, vaultB)
	if err != nil {
		return nil, errors.Wrap(err, "vault B")
	}
	if !funds.Contains(swap.ReceiveCoin()) {
		return nil, errors.Wrapf(ErrTakerFunds, "vault holds %s, needs %s",
			funds.AmountOf(swap.TickerB), swap.ReceiveCoin())
	}

	// deposit to the taker, full payment (over-funding included) to
	// the initializer
	vaultA := VaultAddress(record, swap.TickerA)
	if err := drainVault(db, h.cash, vaultA, swap.Taker); err != nil {
		return nil, errors.Wrap(err, "vault A")
	}
	if err := drainVault(db, h.cash, vaultB, swap.Initializer); err != nil {
		return nil, errors.Wrap(err, "vault B")
	}
	if err := h.bucket.Delete(db, record); err != nil {
		return nil, errors.Wrap(err, "delete swap")
	}

	return &tokenswap.DeliverResult{
		Data: record,
		Tags: []common.KVPair{
			{Key: []byte(tagKey), Value: record},
		},
	}, nil
}

func (h ExchangeSwapHandler) validate(ctx tokenswap.Context, db tokenswap.KVStore, tx tokenswap.Tx) (tokenswap.Address, *Swap, error) {
	var msg ExchangeSwapMsg
	if err := tokenswap.LoadMsg(tx, &msg); err != nil {
		return nil, nil, err
	}
	swap, err := loadSwap(h.bucket, db, msg.SwapAddress)
	if err != nil {
		return nil, nil, err
	}
	return msg.SwapAddress, swap, nil
}

// CancelSwapHandler aborts an open swap, refunding both sides.
type CancelSwapHandler struct {
	auth   x.Authenticator
	bucket orm.ModelBucket
	cash   cash.Controller
}

var _ tokenswap.Handler = CancelSwapHandler{}

// Check validates the message and reserves the gas
func (h CancelSwapHandler) Check(ctx tokenswap.Context, db tokenswap.KVStore, tx tokenswap.Tx) (*tokenswap.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &tokenswap.CheckResult{GasAllocated: settleSwapCost}, nil
}

// Deliver returns all funds and destroys the record and vaults
func (h CancelSwapHandler) Deliver(ctx tokenswap.Context, db tokenswap.KVStore, tx tokenswap.Tx) (*tokenswap.DeliverResult, error) {
	record, swap, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	// deposit back to the initializer, whatever the counter vault
	// collected back to the taker
	vaultA := VaultAddress(record, swap.TickerA)
	if err := drainVault(db, h.cash, vaultA, swap.Initializer); err != nil {
		return nil, errors.Wrap(err, "vault A")
	}
	vaultB := VaultAddress(record, swap.TickerB)
	if err := drainVault(db, h.cash, vaultB, swap.Taker); err != nil {
		return nil, errors.Wrap(err, "vault B")
	}
	if err := h.bucket.Delete(db, record); err != nil {
		return nil, errors.Wrap(err, "delete swap")
	}

	return &tokenswap.DeliverResult{
		Data: record,
		Tags: []common.KVPair{
			{Key: []byte(tagKey), Value: record},
		},
	}, nil
}

func (h CancelSwapHandler) validate(ctx tokenswap.Context, db tokenswap.KVStore, tx tokenswap.Tx) (tokenswap.Address, *Swap, error) {
	var msg CancelSwapMsg
	if err := tokenswap.LoadMsg(tx, &msg); err != nil {
		return nil, nil, err
	}
	swap, err := loadSwap(h.bucket, db, msg.SwapAddress)
	if err != nil {
		return nil, nil, err
	}
	// only the two parties may abort
	if !h.auth.HasAddress(ctx, swap.Initializer) && !h.auth.HasAddress(ctx, swap.Taker) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "neither initializer nor taker")
	}
	return msg.SwapAddress, swap, nil
}

// loadSwap fetches the record and proves its integrity: the stored
// initializer, seed and bump must derive the address the record is
// stored under, otherwise the authority over the vaults is void.
func loadSwap(bucket orm.ModelBucket, db tokenswap.ReadOnlyKVStore, addr tokenswap.Address) (*Swap, error) {
	var swap Swap
	if err := bucket.One(db, addr, &swap); err != nil {
		return nil, errors.Wrap(err, "swap")
	}
	derived := RecordCondition(swap.Initializer, swap.Seed, swap.Bump).Address()
	if !derived.Equals(addr) {
		return nil, errors.Wrapf(errors.ErrState, "record fails derivation check: %s", addr)
	}
	return &swap, nil
}

// drainVault moves the full vault balance to the recipient and closes
// the vault wallet
func drainVault(db tokenswap.KVStore, control cash.Controller, vault, recipient tokenswap.Address) error {
	funds, err := control.Balance(db, vault)
	if err != nil {
		return err
	}
	for _, c := range funds {
		if err := control.MoveCoins(db, vault, recipient, *c); err != nil {
			return err
		}
	}
	return control.CloseAccount(db, vault)
}
