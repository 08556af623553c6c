package cash

import (
	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/coin"
	"github.com/iov-one/tokenswap/errors"
)

// GenesisAccount is used to parse the json from genesis file.
// The address is hex encoded, not base64
type GenesisAccount struct {
	Address tokenswap.Address `json:"address"`
	Coins   []genesisCoin     `json:"coins"`
}

// genesisCoin is the on-disk representation of a single balance entry
type genesisCoin struct {
	Ticker string `json:"ticker"`
	Amount int64  `json:"amount"`
}

// Initializer fulfils the Initializer interface to load data from
// the genesis file
type Initializer struct{}

var _ tokenswap.Initializer = (*Initializer)(nil)

// FromGenesis will parse initial account info from genesis
// and save it to the database
func (Initializer) FromGenesis(opts tokenswap.Options, kv tokenswap.KVStore) error {
	accts := []GenesisAccount{}
	if err := opts.ReadOptions("cash", &accts); err != nil {
		return err
	}
	control := NewController(NewWalletBucket())
	for _, acct := range accts {
		if err := acct.Address.Validate(); err != nil {
			return errors.Wrap(err, "genesis account")
		}
		for _, c := range acct.Coins {
			amount := coin.NewCoin(c.Amount, c.Ticker)
			if err := control.IssueCoins(kv, acct.Address, amount); err != nil {
				return errors.Wrapf(err, "issue %s to %s", amount, acct.Address)
			}
		}
	}
	return nil
}
