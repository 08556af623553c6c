package swaptest

import (
	"context"

	"github.com/iov-one/tokenswap"
)

// Auth is a mock implementing x.Authenticator interface.
//
// This structure authenticates any of the specified conditions. Using
// it in tests spares the overhead of running a full signature
// extension.
type Auth struct {
	// Signer is returned by GetConditions as the only entry,
	// unless Signers is set.
	Signer tokenswap.Condition
	// Signers when set overrides Signer.
	Signers []tokenswap.Condition
}

func (a *Auth) signers() []tokenswap.Condition {
	if len(a.Signers) > 0 {
		return a.Signers
	}
	if a.Signer != nil {
		return []tokenswap.Condition{a.Signer}
	}
	return nil
}

func (a *Auth) GetConditions(tokenswap.Context) []tokenswap.Condition {
	return a.signers()
}

func (a *Auth) HasAddress(ctx tokenswap.Context, addr tokenswap.Address) bool {
	for _, s := range a.signers() {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	return false
}

// CtxAuth is a mock implementing x.Authenticator interface.
//
// Unlike Auth it reads the conditions from the context, so a single
// instance can serve tests that switch identities between calls.
type CtxAuth struct {
	// Key used to set and read conditions from the context.
	Key string
}

type ctxAuthKey string

// SetConditions stores the conditions in the context
func (a *CtxAuth) SetConditions(ctx tokenswap.Context, conds ...tokenswap.Condition) tokenswap.Context {
	return context.WithValue(ctx, ctxAuthKey(a.Key), conds)
}

func (a *CtxAuth) GetConditions(ctx tokenswap.Context) []tokenswap.Condition {
	val := ctx.Value(ctxAuthKey(a.Key))
	if val == nil {
		return nil
	}
	conds, ok := val.([]tokenswap.Condition)
	if !ok {
		panic("conditions stored in the context are of invalid type")
	}
	return conds
}

func (a *CtxAuth) HasAddress(ctx tokenswap.Context, addr tokenswap.Address) bool {
	for _, s := range a.GetConditions(ctx) {
		if addr.Equals(s.Address()) {
			return true
		}
	}
	return false
}
