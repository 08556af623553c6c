package app

import (
	"github.com/iov-one/tokenswap"
)

// Chain holds a chain of decorators, the first decorator sees the
// request first
type Chain struct {
	chain []tokenswap.Decorator
}

// ChainDecorators takes a chain of decorators,
// and upon adding a final Handler, returns a Handler
// that will execute this whole stack.
func ChainDecorators(chain ...tokenswap.Decorator) Chain {
	return Chain{chain: chain}
}

// Chain appends more decorators to the end of the chain
func (c Chain) Chain(chain ...tokenswap.Decorator) Chain {
	return Chain{chain: append(c.chain, chain...)}
}

// WithHandler resolves the stack and returns a Handler that
// passes through the whole chain before hitting the final handler
func (c Chain) WithHandler(h tokenswap.Handler) tokenswap.Handler {
	for i := len(c.chain) - 1; i >= 0; i-- {
		h = decoratedHandler{d: c.chain[i], next: h}
	}
	return h
}

// decoratedHandler joins one decorator with the rest of the stack
type decoratedHandler struct {
	d    tokenswap.Decorator
	next tokenswap.Handler
}

var _ tokenswap.Handler = decoratedHandler{}

// Check passes the decorator the rest of the stack as next
func (h decoratedHandler) Check(ctx tokenswap.Context, db tokenswap.KVStore, tx tokenswap.Tx) (*tokenswap.CheckResult, error) {
	return h.d.Check(ctx, db, tx, h.next)
}

// Deliver passes the decorator the rest of the stack as next
func (h decoratedHandler) Deliver(ctx tokenswap.Context, db tokenswap.KVStore, tx tokenswap.Tx) (*tokenswap.DeliverResult, error) {
	return h.d.Deliver(ctx, db, tx, h.next)
}
