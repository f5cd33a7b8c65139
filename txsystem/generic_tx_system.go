package txsystem

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/hashgraph/hedera-services-sub009/config"
	"github.com/hashgraph/hedera-services-sub009/logger"
	"github.com/hashgraph/hedera-services-sub009/observability"
	"github.com/hashgraph/hedera-services-sub009/state"
	"github.com/hashgraph/hedera-services-sub009/status"
	"github.com/hashgraph/hedera-services-sub009/store"
	"github.com/hashgraph/hedera-services-sub009/txsystem/fees"
	"github.com/hashgraph/hedera-services-sub009/types"
)

type Observability interface {
	Meter(name string, opts ...metric.MeterOption) metric.Meter
	Logger() *slog.Logger
}

/*
GenericTxSystem executes transactions in consensus order. Every transaction
runs in its own savepoint, the handle phase in a child savepoint of it, so
that failed handler is rolled back while the charged fee is kept.
*/
type GenericTxSystem struct {
	cfg                 config.Configuration
	state               *state.State
	handlers            TxHandlers
	feeCalculator       fees.Calculator
	expiryValidator     ExpiryValidator
	signatureVerifier   SignatureVerifier
	beginBlockFunctions []func(round uint64) error
	endBlockFunctions   []func(round uint64) error

	currentRound   uint64
	blockTime      int64
	txCount        int64
	roundCommitted bool

	log   *slog.Logger
	txCnt metric.Int64Counter
	txDur metric.Float64Histogram
}

func NewGenericTxSystem(cfg config.Configuration, modules []Module, observe Observability, opts ...Option) (*GenericTxSystem, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	options := DefaultOptions()
	for _, option := range opts {
		option(options)
	}
	if options.feeCalculator == nil {
		options.feeCalculator = fees.NewLinearCalculator(cfg.Fees)
	}
	if options.expiryValidator == nil {
		options.expiryValidator = NewExpiryValidator(&cfg)
	}

	txs := &GenericTxSystem{
		cfg:                 cfg,
		state:               options.state,
		handlers:            make(TxHandlers),
		feeCalculator:       options.feeCalculator,
		expiryValidator:     options.expiryValidator,
		signatureVerifier:   options.signatureVerifier,
		beginBlockFunctions: options.beginBlockFunctions,
		endBlockFunctions:   options.endBlockFunctions,
		roundCommitted:      true,
		log:                 observe.Logger(),
	}
	for _, module := range modules {
		if err := txs.handlers.Add(module.TxHandlers()); err != nil {
			return nil, fmt.Errorf("registering tx handlers: %w", err)
		}
	}
	if err := txs.initMetrics(observe.Meter(observability.ScopeTxSystem)); err != nil {
		return nil, fmt.Errorf("initializing metrics: %w", err)
	}
	return txs, nil
}

func (m *GenericTxSystem) Config() config.Configuration { return m.cfg }

func (m *GenericTxSystem) State() *state.State { return m.state }

// Snapshot returns the last committed state.
func (m *GenericTxSystem) Snapshot() *state.Snapshot { return m.state.Snapshot() }

// SerializeState writes the last committed state to w.
func (m *GenericTxSystem) SerializeState(w io.Writer) error { return m.state.Serialize(w) }

func (m *GenericTxSystem) CurrentRound() uint64 { return m.currentRound }

/*
BeginBlock starts a new round, consensusTime is the time of the first
transaction of the round (in nanoseconds), following transactions get
consecutive timestamps.
*/
func (m *GenericTxSystem) BeginBlock(round uint64, consensusTime int64) error {
	if !m.state.IsCommitted() {
		return ErrStateContainsUncommittedChanges
	}
	m.currentRound = round
	m.blockTime = consensusTime
	m.txCount = 0
	m.roundCommitted = false
	for _, function := range m.beginBlockFunctions {
		if err := function(round); err != nil {
			return fmt.Errorf("begin block function call failed: %w", err)
		}
	}
	return nil
}

func (m *GenericTxSystem) EndBlock() error {
	for _, function := range m.endBlockFunctions {
		if err := function(m.currentRound); err != nil {
			return fmt.Errorf("end block function call failed: %w", err)
		}
	}
	return nil
}

func (m *GenericTxSystem) Commit() error {
	if err := m.state.Commit(m.currentRound); err != nil {
		return fmt.Errorf("committing round %d: %w", m.currentRound, err)
	}
	m.roundCommitted = true
	return nil
}

// Revert discards all changes of the current round.
func (m *GenericTxSystem) Revert() {
	if m.roundCommitted {
		return
	}
	m.state.Revert()
}

/*
Precheck validates the transaction against the committed state without
changing it, returns PreCheckError when the transaction must be rejected.
*/
func (m *GenericTxSystem) Precheck(tx *types.Transaction) error {
	handler, _, err := m.handlers.Get(tx)
	if err != nil {
		if errors.Is(err, ErrUnknownTxType) {
			return NewPreCheckError(status.NotSupported)
		}
		return NewPreCheckError(status.InvalidTransaction)
	}
	_, err = m.preHandle(tx, handler, store.NewReadable(m.state.Snapshot()))
	return err
}

/*
Execute executes the transaction and returns its record. The returned error
is not nil only when the execution failed for a reason not described by a
response code (ie corrupt state), the whole round should be reverted then.
*/
func (m *GenericTxSystem) Execute(tx *types.Transaction) (_ *types.TransactionRecord, rErr error) {
	start := time.Now()
	consensusTime := m.blockTime + m.txCount
	m.txCount++

	user := NewRecordBuilder(RecordTypeUser)
	handler, txType, err := m.handlers.Get(tx)
	user.SetTransaction(tx.ID, txType, consensusTime)
	if err != nil {
		code := status.InvalidTransaction
		if errors.Is(err, ErrUnknownTxType) {
			code = status.NotSupported
		}
		m.log.Info("invalid transaction", logger.Error(err), logger.Account(tx.Payer()), logger.Round(m.currentRound))
		m.recordMetrics(txType, code, start)
		return user.SetStatus(code).Build(), nil
	}

	m.log.Debug(fmt.Sprintf("execute %s", txType), logger.Account(tx.Payer()), logger.Data(tx), logger.Round(m.currentRound))

	stack := NewSavepointStack(m.state, user)
	stack.Begin()
	code, err := m.execute(tx, handler, stack, consensusTime)
	if err != nil {
		stack.RollbackAll()
		m.log.Error(fmt.Sprintf("executing %s", txType), logger.Error(err), logger.Round(m.currentRound))
		return nil, fmt.Errorf("executing %s: %w", txType, err)
	}
	stack.Commit()

	rec := user.SetStatus(code).Build()
	for _, child := range stack.ChildBuilders() {
		rec.Children = append(rec.Children, child.Build())
	}
	if code != status.OK {
		m.log.Info(fmt.Sprintf("%s failed", txType), logger.Status(code), logger.Account(tx.Payer()), logger.Round(m.currentRound))
	}
	m.recordMetrics(txType, code, start)
	return rec, nil
}

func (m *GenericTxSystem) execute(tx *types.Transaction, handler TransactionHandler, stack *SavepointStack, consensusTime int64) (status.Code, error) {
	readable := store.NewReadable(m.state)
	phc, err := m.preHandle(tx, handler, readable)
	if err != nil {
		return codeOrError(err)
	}

	stores := store.NewWritable(m.state)
	fee := handler.CalculateFees(&feeContext{tx: tx, cfg: &m.cfg, stores: readable, calc: m.feeCalculator})
	if code, err := m.chargeFee(tx, stores, fee.Total()); code != status.OK || err != nil {
		return code, err
	}
	stack.BaseBuilder(RecordTypeUser).SetChargedFee(fee.Total())

	keys := phc.allKeys()
	for _, key := range keys {
		if !m.signatureVerifier.Verified(tx, key) {
			return status.InvalidSignature, nil
		}
	}

	hc := &handleContext{
		tx:            tx,
		consensusTime: consensusTime,
		cfg:           &m.cfg,
		stores:        stores,
		expiry:        m.expiryValidator,
		stack:         stack,
		keys:          keys,
		beneficiaries: NewDeletedAccountBeneficiaries(),
	}
	stack.Begin()
	if err := handler.Handle(hc); err != nil {
		stack.Rollback()
		return codeOrError(err)
	}
	stack.Commit()
	return status.OK, nil
}

func (m *GenericTxSystem) preHandle(tx *types.Transaction, handler TransactionHandler, stores *store.Readable) (*preHandleContext, error) {
	if err := handler.PureChecks(tx); err != nil {
		return nil, err
	}
	ctx, err := newPreHandleContext(tx, &m.cfg, stores)
	if err != nil {
		return nil, err
	}
	if err := handler.PreHandle(ctx); err != nil {
		return nil, err
	}
	return ctx, nil
}

/*
chargeFee moves the fee from the payer to the funding account. Returns
non-OK code when the payer can't pay, the fee is not charged then.
*/
func (m *GenericTxSystem) chargeFee(tx *types.Transaction, stores *store.Writable, fee int64) (status.Code, error) {
	if tx.MaxFee > 0 && fee > tx.MaxFee {
		return status.InsufficientTxFee, nil
	}
	payer, err := stores.Accounts.Get(tx.Payer())
	if err != nil {
		return 0, fmt.Errorf("loading payer: %w", err)
	}
	switch {
	case payer == nil:
		return status.PayerAccountNotFound, nil
	case payer.Deleted:
		return status.AccountDeleted, nil
	case payer.Balance < fee:
		return status.InsufficientPayerBalance, nil
	}
	if fee == 0 || payer.AccountID == m.cfg.Ledger.FundingAccount {
		return status.OK, nil
	}

	funding, err := stores.Accounts.Get(m.cfg.Ledger.FundingAccount)
	if err != nil {
		return 0, fmt.Errorf("loading funding account: %w", err)
	}
	if funding == nil {
		return 0, fmt.Errorf("funding account %s does not exist", m.cfg.Ledger.FundingAccount)
	}
	payer.Balance -= fee
	funding.Balance += fee
	if err := stores.Accounts.Put(payer); err != nil {
		return 0, err
	}
	if err := stores.Accounts.Put(funding); err != nil {
		return 0, err
	}
	return status.OK, nil
}

func codeOrError(err error) (status.Code, error) {
	if code, ok := CodeOf(err); ok {
		return code, nil
	}
	return 0, err
}

func (m *GenericTxSystem) recordMetrics(txType string, code status.Code, start time.Time) {
	ctx := context.Background()
	m.txCnt.Add(ctx, 1, metric.WithAttributeSet(attribute.NewSet(observability.TxType(txType), observability.Status(code))))
	m.txDur.Record(ctx, time.Since(start).Seconds(), metric.WithAttributeSet(attribute.NewSet(observability.TxType(txType))))
}

func (m *GenericTxSystem) initMetrics(mtr metric.Meter) (err error) {
	if m.txCnt, err = mtr.Int64Counter("tx.count",
		metric.WithDescription("Number of transactions executed"),
		metric.WithUnit("{transaction}")); err != nil {
		return fmt.Errorf("creating tx counter: %w", err)
	}
	if m.txDur, err = mtr.Float64Histogram("tx.duration",
		metric.WithDescription("How long it took to execute the transaction"),
		metric.WithUnit("s")); err != nil {
		return fmt.Errorf("creating tx duration histogram: %w", err)
	}
	if _, err := mtr.Int64ObservableGauge(
		"state.entities",
		metric.WithDescription(`Number of entities in the state.`),
		metric.WithUnit("{entity}"),
		metric.WithInt64Callback(func(ctx context.Context, io metric.Int64Observer) error {
			for kind, name := range store.KindNames {
				io.Observe(m.state.Count(kind), metric.WithAttributes(observability.Kind(kind, name)))
			}
			return nil
		}),
	); err != nil {
		return fmt.Errorf("creating state entity gauge: %w", err)
	}
	return nil
}
