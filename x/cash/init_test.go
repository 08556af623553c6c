package cash

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/store"
	"github.com/iov-one/tokenswap/swaptest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenesisAccounts(t *testing.T) {
	addr := swaptest.NewKey()
	genesis := fmt.Sprintf(`[
		{
			"address": "%s",
			"coins": [
				{"ticker": "IOV", "amount": 123456789},
				{"ticker": "ETH", "amount": 42}
			]
		}
	]`, addr)

	opts := tokenswap.Options{
		"cash": json.RawMessage(genesis),
	}

	db := store.MemStore()
	var ini Initializer
	require.NoError(t, ini.FromGenesis(opts, db))

	control := NewController(NewWalletBucket())
	coins, err := control.Balance(db, addr)
	require.NoError(t, err)
	assert.Equal(t, int64(123456789), coins.AmountOf("IOV").Amount)
	assert.Equal(t, int64(42), coins.AmountOf("ETH").Amount)
}

func TestGenesisMissingSection(t *testing.T) {
	db := store.MemStore()
	var ini Initializer
	// no "cash" key in options is not an error
	require.NoError(t, ini.FromGenesis(tokenswap.Options{}, db))
}
