package coin

import (
	"sort"
	"strings"

	"github.com/iov-one/tokenswap/errors"
)

// Coins represents a set of coins. Most operations assume the set is
// normalized: sorted by ticker, with no duplicates and no zero values.
type Coins []*Coin

// CombineCoins creates a Coins set out of given coins. The resulting set is
// normalized.
func CombineCoins(cs ...Coin) (Coins, error) {
	var res Coins
	for _, c := range cs {
		added, err := res.Add(c)
		if err != nil {
			return nil, err
		}
		res = added
	}
	return res, nil
}

// Clone returns a deep copy of this set
func (cs Coins) Clone() Coins {
	res := make(Coins, len(cs))
	for i, c := range cs {
		res[i] = c.Clone()
	}
	return res
}

// Add modifies the set, to increase the holdings by c. The receiver is not
// mutated, a normalized copy is returned.
func (cs Coins) Add(c Coin) (Coins, error) {
	// Result retains the same size unless a new currency shows up.
	res := make(Coins, 0, len(cs)+1)

	placed := false
	for _, have := range cs {
		switch {
		case have.Ticker == c.Ticker:
			sum, err := have.Add(c)
			if err != nil {
				return nil, err
			}
			placed = true
			if sum.IsZero() {
				continue
			}
			res = append(res, &sum)
		case !placed && have.Ticker > c.Ticker:
			placed = true
			if !c.IsZero() {
				cpy := c
				res = append(res, &cpy)
			}
			res = append(res, have.Clone())
		default:
			res = append(res, have.Clone())
		}
	}
	if !placed && !c.IsZero() {
		cpy := c
		res = append(res, &cpy)
	}
	return res, nil
}

// Subtract modifies the set, to decrease the holdings by c.
func (cs Coins) Subtract(c Coin) (Coins, error) {
	return cs.Add(c.Negative())
}

// Combine adds a set of coins to the receiver set and returns the
// normalized result.
func (cs Coins) Combine(o Coins) (Coins, error) {
	res := cs.Clone()
	for _, c := range o {
		next, err := res.Add(*c)
		if err != nil {
			return nil, err
		}
		res = next
	}
	return res, nil
}

// Contains returns true if the set holds at least the given amount
func (cs Coins) Contains(c Coin) bool {
	for _, have := range cs {
		if have.Ticker == c.Ticker {
			return have.IsGTE(c)
		}
	}
	// A zero or negative amount is trivially contained.
	return !c.IsPositive()
}

// AmountOf returns the amount of tokens held for the given ticker.
// Missing ticker means a zero amount.
func (cs Coins) AmountOf(ticker string) Coin {
	for _, c := range cs {
		if c.Ticker == ticker {
			return *c
		}
	}
	return Coin{Ticker: ticker}
}

// IsEmpty returns true if there is nothing in the set
func (cs Coins) IsEmpty() bool {
	for _, c := range cs {
		if !c.IsZero() {
			return false
		}
	}
	return true
}

// IsPositive returns true there is at least one coin
// and all coins are positive
func (cs Coins) IsPositive() bool {
	if len(cs) == 0 {
		return false
	}
	return cs.IsNonNegative()
}

// IsNonNegative returns true if all coins are positive,
// but also accepts an empty set
func (cs Coins) IsNonNegative() bool {
	for _, c := range cs {
		if !c.IsPositive() {
			return false
		}
	}
	return true
}

// Equals returns true if both sets contain the same coins
func (cs Coins) Equals(o Coins) bool {
	if len(cs) != len(o) {
		return false
	}
	for i := range cs {
		if !cs[i].Equals(*o[i]) {
			return false
		}
	}
	return true
}

// Count returns the number of unique currencies in the set
func (cs Coins) Count() int {
	return len(cs)
}

// Validate requires that all coins are valid, in alphabetical
// order, with no duplicates and no zero values.
func (cs Coins) Validate() error {
	last := ""
	for _, c := range cs {
		if c == nil {
			return errors.Wrap(errors.ErrEmpty, "nil coin")
		}
		if err := c.Validate(); err != nil {
			return err
		}
		if c.IsZero() {
			return errors.Wrap(errors.ErrState, "zero coin in the set")
		}
		if c.Ticker <= last {
			return errors.Wrapf(errors.ErrState, "coins not sorted: %s", c.Ticker)
		}
		last = c.Ticker
	}
	return nil
}

// String provides a human readable representation of the set
func (cs Coins) String() string {
	if len(cs) == 0 {
		return "(empty)"
	}
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.String()
	}
	return strings.Join(out, ", ")
}

// NormalizeCoins sorts given set and combines duplicated tickers.
func NormalizeCoins(cs Coins) (Coins, error) {
	sorted := cs.Clone()
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Ticker < sorted[j].Ticker
	})
	var res Coins
	for _, c := range sorted {
		next, err := res.Add(*c)
		if err != nil {
			return nil, err
		}
		res = next
	}
	return res, nil
}
