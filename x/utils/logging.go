package utils

import (
	"time"

	"github.com/iov-one/tokenswap"
)

// Logging is a decorator to log messages as they pass through
type Logging struct{}

var _ tokenswap.Decorator = Logging{}

// NewLogging creates a Logging decorator
func NewLogging() Logging {
	return Logging{}
}

// Check logs error -> info, success -> debug
func (r Logging) Check(ctx tokenswap.Context, store tokenswap.KVStore, tx tokenswap.Tx, next tokenswap.Checker) (*tokenswap.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, store, tx)
	logDuration(ctx, start, tokenswap.GetPath(tx), err, true)
	return res, err
}

// Deliver logs error -> error, success -> info
func (r Logging) Deliver(ctx tokenswap.Context, store tokenswap.KVStore, tx tokenswap.Tx, next tokenswap.Deliverer) (*tokenswap.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, store, tx)
	logDuration(ctx, start, tokenswap.GetPath(tx), err, false)
	return res, err
}

// logDuration writes information about the call to the logger
func logDuration(ctx tokenswap.Context, start time.Time, path string, err error, lowPrio bool) {
	delta := time.Now().Sub(start)
	logger := tokenswap.GetLogger(ctx).With("path", path)
	logger = logger.With("duration", micros(delta))

	if err != nil {
		logger = logger.With("err", err)
	}

	if lowPrio {
		if err != nil {
			logger.Info("Check failed")
		} else {
			logger.Debug("Check")
		}
	} else {
		if err != nil {
			logger.Error("Deliver failed")
		} else {
			logger.Info("Deliver")
		}
	}
}

// micros returns how many microseconds passed in a call
func micros(d time.Duration) int {
	return int(d.Seconds() * 1000000)
}
