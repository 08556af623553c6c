package tokenswap

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextHeight(t *testing.T) {
	ctx := context.Background()

	_, ok := GetHeight(ctx)
	assert.False(t, ok)

	ctx = WithHeight(ctx, 123)
	height, ok := GetHeight(ctx)
	assert.True(t, ok)
	assert.Equal(t, int64(123), height)
}

func TestContextChainID(t *testing.T) {
	ctx := context.Background()

	assert.Panics(t, func() { GetChainID(ctx) })
	assert.Panics(t, func() { WithChainID(ctx, "bad!") })
	assert.Panics(t, func() { WithChainID(ctx, "ab") })

	ctx = WithChainID(ctx, "test-chain-1")
	assert.Equal(t, "test-chain-1", GetChainID(ctx))
}

func TestContextBlockTime(t *testing.T) {
	ctx := context.Background()

	_, err := BlockTime(ctx)
	assert.Error(t, err)

	now := time.Now().UTC()
	ctx = WithBlockTime(ctx, now)
	got, err := BlockTime(ctx)
	require.NoError(t, err)
	assert.Equal(t, now, got)
}

func TestContextLogger(t *testing.T) {
	ctx := context.Background()
	// an unset logger falls back to the default, never nil
	assert.NotNil(t, GetLogger(ctx))

	ctx = WithLogger(ctx, DefaultLogger)
	assert.Equal(t, DefaultLogger, GetLogger(ctx))
}
