package txsystem

import (
	"fmt"
	"slices"

	"github.com/hashgraph/hedera-services-sub009/config"
	"github.com/hashgraph/hedera-services-sub009/status"
	"github.com/hashgraph/hedera-services-sub009/store"
	"github.com/hashgraph/hedera-services-sub009/txsystem/fees"
	"github.com/hashgraph/hedera-services-sub009/types"
)

type (
	// PreHandleContext is the read-only environment of the pre-handle phase.
	PreHandleContext interface {
		Transaction() *types.Transaction
		Payer() types.AccountID
		Config() *config.Configuration
		Stores() *store.Readable
		// RequireKey adds key to the set of keys which must sign the transaction.
		RequireKey(key types.Key)
		// RequireKeyOrThrow requires the key of the account, returns PreCheckError
		// with code when the account doesn't exist.
		RequireKeyOrThrow(id types.AccountID, code status.Code) error
		// RequireKeyIfReceiverSigRequired requires the key of the account only
		// when the account has receiverSigRequired flag set.
		RequireKeyIfReceiverSigRequired(id types.AccountID, code status.Code) error
		RequiredNonPayerKeys() []types.Key
	}

	// HandleContext is the environment of the handle phase.
	HandleContext interface {
		Transaction() *types.Transaction
		Payer() types.AccountID
		ConsensusTime() int64
		Config() *config.Configuration
		Stores() *store.Writable
		ExpiryValidator() ExpiryValidator
		SavepointStack() *SavepointStack
		// RecordBuilder returns the builder of the user transaction record.
		RecordBuilder() *RecordBuilder
		// IsRequiredSigner reports whether the key was required (and thus has
		// signed) in the pre-handle phase, payer key included.
		IsRequiredSigner(key types.Key) bool
		DeletedAccountBeneficiaries() *DeletedAccountBeneficiaries
	}

	FeeContext interface {
		Transaction() *types.Transaction
		Config() *config.Configuration
		Stores() *store.Readable
		FeeCalculator() fees.Calculator
	}
)

type preHandleContext struct {
	tx       *types.Transaction
	payerKey types.Key
	cfg      *config.Configuration
	stores   *store.Readable
	keys     []types.Key
}

func newPreHandleContext(tx *types.Transaction, cfg *config.Configuration, stores *store.Readable) (*preHandleContext, error) {
	payer, err := stores.Accounts.Get(tx.Payer())
	if err != nil {
		return nil, fmt.Errorf("loading payer account: %w", err)
	}
	if payer == nil {
		return nil, NewPreCheckError(status.PayerAccountNotFound)
	}
	return &preHandleContext{tx: tx, payerKey: payer.Key, cfg: cfg, stores: stores}, nil
}

func (c *preHandleContext) Transaction() *types.Transaction { return c.tx }

func (c *preHandleContext) Payer() types.AccountID { return c.tx.Payer() }

func (c *preHandleContext) Config() *config.Configuration { return c.cfg }

func (c *preHandleContext) Stores() *store.Readable { return c.stores }

func (c *preHandleContext) RequireKey(key types.Key) {
	if key == c.payerKey || slices.Contains(c.keys, key) {
		return
	}
	c.keys = append(c.keys, key)
}

func (c *preHandleContext) RequireKeyOrThrow(id types.AccountID, code status.Code) error {
	acc, err := c.account(id)
	if err != nil {
		return err
	}
	if acc == nil {
		return NewPreCheckError(code)
	}
	c.RequireKey(acc.Key)
	return nil
}

func (c *preHandleContext) RequireKeyIfReceiverSigRequired(id types.AccountID, code status.Code) error {
	acc, err := c.account(id)
	if err != nil {
		return err
	}
	if acc == nil {
		return NewPreCheckError(code)
	}
	if acc.ReceiverSigRequired {
		c.RequireKey(acc.Key)
	}
	return nil
}

func (c *preHandleContext) RequiredNonPayerKeys() []types.Key { return c.keys }

// allKeys returns payer key followed by the other required keys.
func (c *preHandleContext) allKeys() []types.Key {
	return append([]types.Key{c.payerKey}, c.keys...)
}

func (c *preHandleContext) account(id types.AccountID) (*types.Account, error) {
	if id == 0 {
		return nil, nil
	}
	acc, err := c.stores.Accounts.Get(id)
	if err != nil {
		return nil, fmt.Errorf("loading account %s: %w", id, err)
	}
	return acc, nil
}

type handleContext struct {
	tx            *types.Transaction
	consensusTime int64
	cfg           *config.Configuration
	stores        *store.Writable
	expiry        ExpiryValidator
	stack         *SavepointStack
	keys          []types.Key
	beneficiaries *DeletedAccountBeneficiaries
}

func (c *handleContext) Transaction() *types.Transaction { return c.tx }

func (c *handleContext) Payer() types.AccountID { return c.tx.Payer() }

func (c *handleContext) ConsensusTime() int64 { return c.consensusTime }

func (c *handleContext) Config() *config.Configuration { return c.cfg }

func (c *handleContext) Stores() *store.Writable { return c.stores }

func (c *handleContext) ExpiryValidator() ExpiryValidator { return c.expiry }

func (c *handleContext) SavepointStack() *SavepointStack { return c.stack }

func (c *handleContext) RecordBuilder() *RecordBuilder { return c.stack.BaseBuilder(RecordTypeUser) }

func (c *handleContext) IsRequiredSigner(key types.Key) bool { return slices.Contains(c.keys, key) }

func (c *handleContext) DeletedAccountBeneficiaries() *DeletedAccountBeneficiaries {
	return c.beneficiaries
}

type feeContext struct {
	tx     *types.Transaction
	cfg    *config.Configuration
	stores *store.Readable
	calc   fees.Calculator
}

func (c *feeContext) Transaction() *types.Transaction { return c.tx }

func (c *feeContext) Config() *config.Configuration { return c.cfg }

func (c *feeContext) Stores() *store.Readable { return c.stores }

func (c *feeContext) FeeCalculator() fees.Calculator { return c.calc }

/*
DeletedAccountBeneficiaries tracks the accounts deleted by the transaction
and the accounts receiving their hbar.
*/
type DeletedAccountBeneficiaries struct {
	beneficiaries map[types.AccountID]types.AccountID
}

func NewDeletedAccountBeneficiaries() *DeletedAccountBeneficiaries {
	return &DeletedAccountBeneficiaries{beneficiaries: make(map[types.AccountID]types.AccountID)}
}

func (b *DeletedAccountBeneficiaries) Add(deleted, beneficiary types.AccountID) {
	b.beneficiaries[deleted] = beneficiary
}

// Beneficiary returns zero when the account wasn't deleted.
func (b *DeletedAccountBeneficiaries) Beneficiary(deleted types.AccountID) types.AccountID {
	return b.beneficiaries[deleted]
}

func (b *DeletedAccountBeneficiaries) Len() int { return len(b.beneficiaries) }
