package swap

import (
	"github.com/iov-one/tokenswap/errors"
)

// ErrTakerFunds is returned when an exchange is triggered before the
// counter vault holds the full requested payment.
var ErrTakerFunds = errors.Register(1000, "insufficient taker tokens")
