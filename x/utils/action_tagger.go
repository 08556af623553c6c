package utils

import (
	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/errors"
	"github.com/tendermint/tendermint/libs/common"
)

// ActionKey is used by ActionTagger as the tag key
const ActionKey = "action"

// ActionTagger will inspect the message being executed and
// tag the transaction with its path, so all transactions can
// be searched by the action they performed
type ActionTagger struct{}

var _ tokenswap.Decorator = ActionTagger{}

// NewActionTagger creates an ActionTagger decorator
func NewActionTagger() ActionTagger {
	return ActionTagger{}
}

// Check just passes the request along
func (ActionTagger) Check(ctx tokenswap.Context, store tokenswap.KVStore, tx tokenswap.Tx, next tokenswap.Checker) (*tokenswap.CheckResult, error) {
	return next.Check(ctx, store, tx)
}

// Deliver appends an action tag with the message path on success
func (ActionTagger) Deliver(ctx tokenswap.Context, store tokenswap.KVStore, tx tokenswap.Tx, next tokenswap.Deliverer) (*tokenswap.DeliverResult, error) {
	res, err := next.Deliver(ctx, store, tx)
	if err != nil {
		return res, err
	}
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "action tagger")
	}
	res.Tags = append(res.Tags, common.KVPair{
		Key:   []byte(ActionKey),
		Value: []byte(msg.Path()),
	})
	return res, nil
}
