package coin

import (
	"fmt"
	"regexp"

	"github.com/iov-one/tokenswap/errors"
)

// IsCC is the RegExp to ensure valid currency codes
var IsCC = regexp.MustCompile(`^[A-Z]{3,4}$`).MatchString

const (
	// MaxAmount is the largest amount of a single token we accept
	MaxAmount int64 = 999999999999999 // 10^15-1
	// MinAmount is the lowest amount of a single token we accept
	MinAmount = -MaxAmount
)

// Coin is an amount of a single token type. The amount counts indivisible
// base units of the currency identified by the ticker. There is no
// fractional part, the same way raw token ledgers count their smallest
// denomination.
type Coin struct {
	// Ticker is the currency code, the identity of the token mint.
	Ticker string
	// Amount is the number of base token units.
	Amount int64
}

// NewCoin creates a new coin object
func NewCoin(amount int64, ticker string) Coin {
	return Coin{
		Ticker: ticker,
		Amount: amount,
	}
}

// NewCoinp returns a pointer to a new coin.
func NewCoinp(amount int64, ticker string) *Coin {
	c := NewCoin(amount, ticker)
	return &c
}

// ID returns a coin ticker name.
func (c Coin) ID() string {
	return c.Ticker
}

// Add combines two coins of the same currency.
// It returns an error on a currency mismatch or if the
// result would exceed the valid amount range.
func (c Coin) Add(o Coin) (Coin, error) {
	// If any of the coins is zero then currency doesn't matter.
	if c.IsZero() {
		if o.Ticker != "" {
			c.Ticker = o.Ticker
		}
	} else if o.IsZero() {
		if c.Ticker != "" {
			o.Ticker = c.Ticker
		}
	}

	if !c.SameType(o) {
		err := errors.Wrapf(errors.ErrType, "adding %s to %s", c.Ticker, o.Ticker)
		return Coin{}, err
	}

	amount, err := add64(c.Amount, o.Amount)
	if err != nil {
		return Coin{}, err
	}
	c.Amount = amount
	return c, c.Validate()
}

// Subtract given amount.
func (c Coin) Subtract(amount Coin) (Coin, error) {
	return c.Add(amount.Negative())
}

// Negative returns the opposite coin value
//   c.Add(c.Negative()).IsZero() == true
func (c Coin) Negative() Coin {
	return Coin{
		Ticker: c.Ticker,
		Amount: -1 * c.Amount,
	}
}

// Compare will check values of two coins, without currency.
// Returns 1 if c is larger, -1 if o is larger, 0 if equal.
func (c Coin) Compare(o Coin) int {
	switch {
	case c.Amount > o.Amount:
		return 1
	case c.Amount < o.Amount:
		return -1
	default:
		return 0
	}
}

// Equals returns true if all fields are identical
func (c Coin) Equals(o Coin) bool {
	return c.Ticker == o.Ticker && c.Amount == o.Amount
}

// IsEmpty returns true on null or zero amount
func IsEmpty(c *Coin) bool {
	return c == nil || c.IsZero()
}

// IsZero returns true amount is 0
func (c Coin) IsZero() bool {
	return c.Amount == 0
}

// IsPositive returns true if the value is greater than 0
func (c Coin) IsPositive() bool {
	return c.Amount > 0
}

// IsNonNegative returns true if the value is 0 or higher
func (c Coin) IsNonNegative() bool {
	return c.Amount >= 0
}

// IsGTE returns true if c is same type and at least
// as large as o.
// It assumes they were already validated.
func (c Coin) IsGTE(o Coin) bool {
	if !c.SameType(o) || c.Amount < o.Amount {
		return false
	}
	return true
}

// SameType returns true if they have the same currency
func (c Coin) SameType(o Coin) bool {
	return c.Ticker == o.Ticker
}

// Clone provides an independent copy of a coin pointer
func (c *Coin) Clone() *Coin {
	if c == nil {
		return nil
	}
	return &Coin{
		Ticker: c.Ticker,
		Amount: c.Amount,
	}
}

// Validate ensures that the coin is in the valid amount range
// and has a valid ticker
func (c Coin) Validate() error {
	if !IsCC(c.Ticker) {
		return errors.Wrapf(errors.ErrInput, "invalid currency: %s", c.Ticker)
	}
	if c.Amount < MinAmount || c.Amount > MaxAmount {
		return errors.Wrap(errors.ErrOverflow, "amount")
	}
	return nil
}

// String provides a human readable representation of the coin
func (c Coin) String() string {
	return fmt.Sprintf("%d %s", c.Amount, c.Ticker)
}

// add64 adds two int64 numbers making sure the result does not overflow.
func add64(a, b int64) (int64, error) {
	if b > 0 && a > MaxAmount-b {
		return 0, errors.Wrapf(errors.ErrOverflow, "%d + %d", a, b)
	}
	if b < 0 && a < MinAmount-b {
		return 0, errors.Wrapf(errors.ErrOverflow, "%d + %d", a, b)
	}
	return a + b, nil
}
