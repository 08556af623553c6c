package swaptest

import (
	"sync"

	"github.com/iov-one/tokenswap"
)

// Handler implements tokenswap.Handler interface, remembering all the
// calls and returning preconfigured results.
type Handler struct {
	mu sync.Mutex

	checkCall   int
	deliverCall int

	// CheckResult is returned by the Check method.
	CheckResult tokenswap.CheckResult
	// CheckErr if set is returned by the Check method.
	CheckErr error

	// DeliverResult is returned by the Deliver method.
	DeliverResult tokenswap.DeliverResult
	// DeliverErr if set is returned by the Deliver method.
	DeliverErr error
}

var _ tokenswap.Handler = (*Handler)(nil)

func (h *Handler) Check(ctx tokenswap.Context, db tokenswap.KVStore, tx tokenswap.Tx) (*tokenswap.CheckResult, error) {
	h.mu.Lock()
	h.checkCall++
	h.mu.Unlock()
	if h.CheckErr != nil {
		return nil, h.CheckErr
	}
	res := h.CheckResult
	return &res, nil
}

func (h *Handler) Deliver(ctx tokenswap.Context, db tokenswap.KVStore, tx tokenswap.Tx) (*tokenswap.DeliverResult, error) {
	h.mu.Lock()
	h.deliverCall++
	h.mu.Unlock()
	if h.DeliverErr != nil {
		return nil, h.DeliverErr
	}
	res := h.DeliverResult
	return &res, nil
}

// CheckCallCount returns the number of times Check was called
func (h *Handler) CheckCallCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.checkCall
}

// DeliverCallCount returns the number of times Deliver was called
func (h *Handler) DeliverCallCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.deliverCall
}

// CallCount returns the total number of Check and Deliver calls
func (h *Handler) CallCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.checkCall + h.deliverCall
}
