package x_test

import (
	"context"
	"testing"

	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/swaptest"
	"github.com/iov-one/tokenswap/x"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMultiAuth(t *testing.T) {
	a := swaptest.NewCondition()
	b := swaptest.NewCondition()
	c := swaptest.NewCondition()

	auth := x.ChainAuth(
		&swaptest.Auth{Signer: a},
		&swaptest.Auth{Signer: b},
	)
	ctx := context.Background()

	assert.True(t, auth.HasAddress(ctx, a.Address()))
	assert.True(t, auth.HasAddress(ctx, b.Address()))
	assert.False(t, auth.HasAddress(ctx, c.Address()))

	conds := auth.GetConditions(ctx)
	require.Len(t, conds, 2)
	assert.True(t, conds[0].Equals(a))
	assert.True(t, conds[1].Equals(b))
}

func TestMainSigner(t *testing.T) {
	a := swaptest.NewCondition()
	b := swaptest.NewCondition()
	ctx := context.Background()

	auth := &swaptest.Auth{Signers: []tokenswap.Condition{a, b}}
	assert.True(t, a.Equals(x.MainSigner(ctx, auth)))

	empty := &swaptest.Auth{}
	assert.Nil(t, x.MainSigner(ctx, empty))
}

func TestHasAllAddresses(t *testing.T) {
	a := swaptest.NewCondition()
	b := swaptest.NewCondition()
	c := swaptest.NewCondition()
	ctx := context.Background()

	auth := &swaptest.Auth{Signers: []tokenswap.Condition{a, b}}
	both := []tokenswap.Address{a.Address(), b.Address()}
	assert.True(t, x.HasAllAddresses(ctx, auth, both))

	more := append(both, c.Address())
	assert.False(t, x.HasAllAddresses(ctx, auth, more))

	assert.True(t, x.HasNAddresses(ctx, auth, more, 2))
	assert.False(t, x.HasNAddresses(ctx, auth, more, 3))
	assert.True(t, x.HasNAddresses(ctx, auth, nil, 0))
}

func TestGetAddresses(t *testing.T) {
	a := swaptest.NewCondition()
	b := swaptest.NewCondition()
	ctx := context.Background()

	auth := &swaptest.Auth{Signers: []tokenswap.Condition{a, b}}
	addrs := x.GetAddresses(ctx, auth)
	require.Len(t, addrs, 2)
	assert.True(t, addrs[0].Equals(a.Address()))
	assert.True(t, addrs[1].Equals(b.Address()))
}

func TestHasAllConditions(t *testing.T) {
	a := swaptest.NewCondition()
	b := swaptest.NewCondition()
	ctx := context.Background()

	auth := &swaptest.Auth{Signers: []tokenswap.Condition{a}}
	assert.True(t, x.HasAllConditions(ctx, auth, []tokenswap.Condition{a}))
	assert.False(t, x.HasAllConditions(ctx, auth, []tokenswap.Condition{a, b}))
}
