package cash

import (
	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/errors"
	"github.com/iov-one/tokenswap/x"
)

const sendTxCost int64 = 100

// RegisterRoutes will instantiate and register all handlers in this package
func RegisterRoutes(r tokenswap.Registry, auth x.Authenticator, control Controller) {
	r.Handle(&SendMsg{}, NewSendHandler(auth, control))
}

// SendHandler will handle sending coins
type SendHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ tokenswap.Handler = SendHandler{}

// NewSendHandler creates a handler for SendMsg
func NewSendHandler(auth x.Authenticator, control Controller) SendHandler {
	return SendHandler{
		auth:    auth,
		control: control,
	}
}

// Check verifies the signatures and allocates the gas
func (h SendHandler) Check(ctx tokenswap.Context, db tokenswap.KVStore, tx tokenswap.Tx) (*tokenswap.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &tokenswap.CheckResult{GasAllocated: sendTxCost}, nil
}

// Deliver moves the tokens from sender to receiver if all conditions are met
func (h SendHandler) Deliver(ctx tokenswap.Context, db tokenswap.KVStore, tx tokenswap.Tx) (*tokenswap.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.control.MoveCoins(db, msg.Src, msg.Dest, msg.Amount); err != nil {
		return nil, err
	}
	return &tokenswap.DeliverResult{}, nil
}

func (h SendHandler) validate(ctx tokenswap.Context, tx tokenswap.Tx) (*SendMsg, error) {
	var msg SendMsg
	if err := tokenswap.LoadMsg(tx, &msg); err != nil {
		return nil, err
	}
	// the source must have signed the transaction
	if !h.auth.HasAddress(ctx, msg.Src) {
		return nil, errors.Wrapf(errors.ErrUnauthorized, "source %s", msg.Src)
	}
	return &msg, nil
}
