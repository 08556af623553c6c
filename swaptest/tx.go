package swaptest

import (
	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/errors"
)

// Tx is a mock implementing tokenswap.Tx interface.
type Tx struct {
	// Msg is the message that this transaction is carrying.
	Msg tokenswap.Msg
}

var _ tokenswap.Tx = (*Tx)(nil)

func (tx *Tx) GetMsg() (tokenswap.Msg, error) {
	if tx.Msg == nil {
		return nil, errors.Wrap(errors.ErrState, "transaction without a message")
	}
	return tx.Msg, nil
}

func (tx *Tx) Marshal() ([]byte, error) {
	if tx.Msg == nil {
		return nil, nil
	}
	return tx.Msg.Marshal()
}

func (tx *Tx) Unmarshal([]byte) error {
	return errors.Wrap(errors.ErrHuman, "operation not supported")
}
