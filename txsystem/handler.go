package txsystem

import (
	"fmt"

	"github.com/hashgraph/hedera-services-sub009/types"
)

type (
	/*
	TransactionHandler implements one transaction type.

	PureChecks must not access the state, PreHandle declares the keys which
	must sign the transaction (in addition to the payer) using read-only
	view of the state, Handle validates the transaction against the current
	state and mutates it through the writable stores.
	*/
	TransactionHandler interface {
		PureChecks(tx *types.Transaction) error
		PreHandle(ctx PreHandleContext) error
		Handle(ctx HandleContext) error
		CalculateFees(ctx FeeContext) types.Fees
	}

	Module interface {
		TxHandlers() map[string]TransactionHandler
	}

	TxHandlers map[string]TransactionHandler
)

func (h TxHandlers) Add(src map[string]TransactionHandler) error {
	for name, handler := range src {
		if name == "" {
			return fmt.Errorf("tx handler must have non-empty tx type name")
		}
		if handler == nil {
			return fmt.Errorf("tx handler must not be nil (%s)", name)
		}
		if _, ok := h[name]; ok {
			return fmt.Errorf("tx handler for %q is already registered", name)
		}
		h[name] = handler
	}
	return nil
}

// Get returns handler of the transaction and the transaction type.
func (h TxHandlers) Get(tx *types.Transaction) (TransactionHandler, string, error) {
	txType, err := tx.Body.Type()
	if err != nil {
		return nil, "", err
	}
	handler, ok := h[txType]
	if !ok {
		return nil, txType, fmt.Errorf("%w %s", ErrUnknownTxType, txType)
	}
	return handler, txType, nil
}
