package swap

import (
	"context"
	"testing"

	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/coin"
	"github.com/iov-one/tokenswap/errors"
	"github.com/iov-one/tokenswap/orm"
	"github.com/iov-one/tokenswap/store"
	"github.com/iov-one/tokenswap/swaptest"
	"github.com/iov-one/tokenswap/x"
	"github.com/iov-one/tokenswap/x/cash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	db      tokenswap.CacheableKVStore
	control cash.CashController
	bucket  orm.ModelBucket

	initializer tokenswap.Condition
	taker       tokenswap.Condition
	stranger    tokenswap.Condition
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		db:          store.MemStore(),
		control:     cash.NewController(cash.NewWalletBucket()),
		bucket:      NewBucket(),
		initializer: swaptest.NewCondition(),
		taker:       swaptest.NewCondition(),
		stranger:    swaptest.NewCondition(),
	}
	require.NoError(t, env.control.IssueCoins(env.db, env.initializer.Address(), coin.NewCoin(1000, "IOV")))
	require.NoError(t, env.control.IssueCoins(env.db, env.taker.Address(), coin.NewCoin(1000, "ETH")))
	return env
}

func (env *testEnv) auth(signer tokenswap.Condition) x.Authenticator {
	return &swaptest.Auth{Signer: signer}
}

func (env *testEnv) createMsg() *CreateSwapMsg {
	return &CreateSwapMsg{
		Seed:          swaptest.SequenceID(1),
		Taker:         env.taker.Address(),
		DepositAmount: coin.NewCoin(100, "IOV"),
		ReceiveAmount: coin.NewCoin(50, "ETH"),
	}
}

// openSwap delivers a create message signed by the initializer and
// returns the derived record address
func (env *testEnv) openSwap(t *testing.T) tokenswap.Address {
	t.Helper()
	h := CreateSwapHandler{auth: env.auth(env.initializer), bucket: env.bucket, cash: env.control}
	res, err := h.Deliver(context.Background(), env.db, &swaptest.Tx{Msg: env.createMsg()})
	require.NoError(t, err)
	return tokenswap.Address(res.Data)
}

// fundVaultB moves taker tokens into the counter vault via a plain
// cash send, the way any depositor would
func (env *testEnv) fundVaultB(t *testing.T, record tokenswap.Address, amount int64) {
	t.Helper()
	vaultB := VaultAddress(record, "ETH")
	require.NoError(t, env.control.MoveCoins(env.db, env.taker.Address(), vaultB, coin.NewCoin(amount, "ETH")))
}

func (env *testEnv) balance(t *testing.T, addr tokenswap.Address, ticker string) int64 {
	t.Helper()
	coins, err := env.control.Balance(env.db, addr)
	require.NoError(t, err)
	return coins.AmountOf(ticker).Amount
}

func TestCreateSwap(t *testing.T) {
	env := newTestEnv(t)
	record := env.openSwap(t)

	// the deposit sits in vault A, nowhere else
	assert.Equal(t, int64(900), env.balance(t, env.initializer.Address(), "IOV"))
	assert.Equal(t, int64(100), env.balance(t, VaultAddress(record, "IOV"), "IOV"))

	// the counter vault exists and is empty
	has, err := env.control.HasAccount(env.db, VaultAddress(record, "ETH"))
	require.NoError(t, err)
	assert.True(t, has)
	assert.Equal(t, int64(0), env.balance(t, VaultAddress(record, "ETH"), "ETH"))

	// the record is stored under the derived address
	var swap Swap
	require.NoError(t, env.bucket.One(env.db, record, &swap))
	assert.True(t, swap.Initializer.Equals(env.initializer.Address()))
	assert.True(t, swap.Taker.Equals(env.taker.Address()))
	assert.Equal(t, int64(50), swap.ReceiveAmount)

	derived, bump, err := DeriveRecord(env.initializer.Address(), swap.Seed)
	require.NoError(t, err)
	assert.True(t, derived.Equals(record))
	assert.Equal(t, bump, swap.Bump)
}

func TestCreateSwapDefaultsToMainSigner(t *testing.T) {
	env := newTestEnv(t)
	h := CreateSwapHandler{auth: env.auth(env.initializer), bucket: env.bucket, cash: env.control}

	msg := env.createMsg()
	msg.Initializer = nil
	res, err := h.Deliver(context.Background(), env.db, &swaptest.Tx{Msg: msg})
	require.NoError(t, err)

	var swap Swap
	require.NoError(t, env.bucket.One(env.db, tokenswap.Address(res.Data), &swap))
	assert.True(t, swap.Initializer.Equals(env.initializer.Address()))
}

func TestCreateSwapUnauthorized(t *testing.T) {
	env := newTestEnv(t)
	h := CreateSwapHandler{auth: env.auth(env.stranger), bucket: env.bucket, cash: env.control}

	msg := env.createMsg()
	msg.Initializer = env.initializer.Address()
	_, err := h.Deliver(context.Background(), env.db, &swaptest.Tx{Msg: msg})
	require.Error(t, err)
	assert.True(t, errors.ErrUnauthorized.Is(err))

	// nothing moved
	assert.Equal(t, int64(1000), env.balance(t, env.initializer.Address(), "IOV"))
}

func TestCreateSwapDuplicate(t *testing.T) {
	env := newTestEnv(t)
	env.openSwap(t)

	h := CreateSwapHandler{auth: env.auth(env.initializer), bucket: env.bucket, cash: env.control}
	_, err := h.Deliver(context.Background(), env.db, &swaptest.Tx{Msg: env.createMsg()})
	require.Error(t, err)
	assert.True(t, errors.ErrDuplicate.Is(err))
}

func TestCreateSwapInsufficientFunds(t *testing.T) {
	env := newTestEnv(t)
	h := CreateSwapHandler{auth: env.auth(env.initializer), bucket: env.bucket, cash: env.control}

	msg := env.createMsg()
	msg.DepositAmount = coin.NewCoin(5000, "IOV")
	_, err := h.Deliver(context.Background(), env.db, &swaptest.Tx{Msg: msg})
	require.Error(t, err)
	assert.True(t, errors.ErrAmount.Is(err))
}

func TestExchangeSwap(t *testing.T) {
	env := newTestEnv(t)
	record := env.openSwap(t)
	h := ExchangeSwapHandler{bucket: env.bucket, cash: env.control}
	tx := &swaptest.Tx{Msg: &ExchangeSwapMsg{SwapAddress: record}}

	// not funded yet
	_, err := h.Deliver(context.Background(), env.db, tx)
	require.Error(t, err)
	assert.True(t, ErrTakerFunds.Is(err))

	// partially funded is not enough
	env.fundVaultB(t, record, 49)
	_, err = h.Deliver(context.Background(), env.db, tx)
	require.Error(t, err)
	assert.True(t, ErrTakerFunds.Is(err))
	// the partial payment stays put
	assert.Equal(t, int64(49), env.balance(t, VaultAddress(record, "ETH"), "ETH"))

	// top up to the requested amount and settle; the sender needs no
	// signature at all
	env.fundVaultB(t, record, 1)
	res, err := h.Deliver(context.Background(), env.db, tx)
	require.NoError(t, err)
	assert.Equal(t, []byte(record), res.Data)

	assert.Equal(t, int64(100), env.balance(t, env.taker.Address(), "IOV"))
	assert.Equal(t, int64(50), env.balance(t, env.initializer.Address(), "ETH"))

	// record and vaults are gone
	var swap Swap
	err = env.bucket.One(env.db, record, &swap)
	assert.True(t, errors.ErrNotFound.Is(err))
	for _, ticker := range []string{"IOV", "ETH"} {
		has, err := env.control.HasAccount(env.db, VaultAddress(record, ticker))
		require.NoError(t, err)
		assert.False(t, has)
	}

	// settling twice fails cleanly
	_, err = h.Deliver(context.Background(), env.db, tx)
	require.Error(t, err)
	assert.True(t, errors.ErrNotFound.Is(err))
}

func TestExchangeSwapOverfunded(t *testing.T) {
	env := newTestEnv(t)
	record := env.openSwap(t)
	env.fundVaultB(t, record, 75)

	h := ExchangeSwapHandler{bucket: env.bucket, cash: env.control}
	_, err := h.Deliver(context.Background(), env.db, &swaptest.Tx{Msg: &ExchangeSwapMsg{SwapAddress: record}})
	require.NoError(t, err)

	// the full vault content goes to the initializer, nothing sticks
	assert.Equal(t, int64(75), env.balance(t, env.initializer.Address(), "ETH"))
}

func TestCancelSwapByInitializer(t *testing.T) {
	env := newTestEnv(t)
	record := env.openSwap(t)
	// the taker already paid in part of the amount
	env.fundVaultB(t, record, 20)

	h := CancelSwapHandler{auth: env.auth(env.initializer), bucket: env.bucket, cash: env.control}
	_, err := h.Deliver(context.Background(), env.db, &swaptest.Tx{Msg: &CancelSwapMsg{SwapAddress: record}})
	require.NoError(t, err)

	// everyone is made whole
	assert.Equal(t, int64(1000), env.balance(t, env.initializer.Address(), "IOV"))
	assert.Equal(t, int64(1000), env.balance(t, env.taker.Address(), "ETH"))

	var swap Swap
	err = env.bucket.One(env.db, record, &swap)
	assert.True(t, errors.ErrNotFound.Is(err))
	for _, ticker := range []string{"IOV", "ETH"} {
		has, err := env.control.HasAccount(env.db, VaultAddress(record, ticker))
		require.NoError(t, err)
		assert.False(t, has)
	}
}

func TestCancelSwapByTaker(t *testing.T) {
	env := newTestEnv(t)
	record := env.openSwap(t)

	h := CancelSwapHandler{auth: env.auth(env.taker), bucket: env.bucket, cash: env.control}
	_, err := h.Deliver(context.Background(), env.db, &swaptest.Tx{Msg: &CancelSwapMsg{SwapAddress: record}})
	require.NoError(t, err)
	assert.Equal(t, int64(1000), env.balance(t, env.initializer.Address(), "IOV"))
}

func TestCancelSwapUnauthorized(t *testing.T) {
	env := newTestEnv(t)
	record := env.openSwap(t)

	h := CancelSwapHandler{auth: env.auth(env.stranger), bucket: env.bucket, cash: env.control}
	_, err := h.Deliver(context.Background(), env.db, &swaptest.Tx{Msg: &CancelSwapMsg{SwapAddress: record}})
	require.Error(t, err)
	assert.True(t, errors.ErrUnauthorized.Is(err))

	// escrow is untouched
	assert.Equal(t, int64(100), env.balance(t, VaultAddress(record, "IOV"), "IOV"))
	var swap Swap
	require.NoError(t, env.bucket.One(env.db, record, &swap))
}

func TestCancelThenExchange(t *testing.T) {
	env := newTestEnv(t)
	record := env.openSwap(t)

	cancel := CancelSwapHandler{auth: env.auth(env.initializer), bucket: env.bucket, cash: env.control}
	_, err := cancel.Deliver(context.Background(), env.db, &swaptest.Tx{Msg: &CancelSwapMsg{SwapAddress: record}})
	require.NoError(t, err)

	exchange := ExchangeSwapHandler{bucket: env.bucket, cash: env.control}
	_, err = exchange.Deliver(context.Background(), env.db, &swaptest.Tx{Msg: &ExchangeSwapMsg{SwapAddress: record}})
	require.Error(t, err)
	assert.True(t, errors.ErrNotFound.Is(err))
}

func TestRecordIntegrityCheck(t *testing.T) {
	env := newTestEnv(t)

	// a record stored under an address its fields do not derive is
	// rejected before any funds move
	forged := &Swap{
		Seed:          swaptest.SequenceID(66),
		Initializer:   env.initializer.Address(),
		Taker:         env.taker.Address(),
		TickerA:       "IOV",
		TickerB:       "ETH",
		ReceiveAmount: 50,
		Bump:          255,
	}
	wrong := swaptest.NewKey()
	require.NoError(t, env.bucket.Put(env.db, wrong, forged))

	h := ExchangeSwapHandler{bucket: env.bucket, cash: env.control}
	_, err := h.Deliver(context.Background(), env.db, &swaptest.Tx{Msg: &ExchangeSwapMsg{SwapAddress: wrong}})
	require.Error(t, err)
	assert.True(t, errors.ErrState.Is(err))
}

func TestCreateSwapCheck(t *testing.T) {
	env := newTestEnv(t)
	h := CreateSwapHandler{auth: env.auth(env.initializer), bucket: env.bucket, cash: env.control}

	res, err := h.Check(context.Background(), env.db, &swaptest.Tx{Msg: env.createMsg()})
	require.NoError(t, err)
	assert.Equal(t, createSwapCost, res.GasAllocated)

	// check does not touch state
	assert.Equal(t, int64(1000), env.balance(t, env.initializer.Address(), "IOV"))
}
