package txsystem

import (
	"github.com/hashgraph/hedera-services-sub009/state"
	"github.com/hashgraph/hedera-services-sub009/store"
	"github.com/hashgraph/hedera-services-sub009/txsystem/fees"
)

type Options struct {
	state               *state.State
	feeCalculator       fees.Calculator
	expiryValidator     ExpiryValidator
	signatureVerifier   SignatureVerifier
	beginBlockFunctions []func(round uint64) error
	endBlockFunctions   []func(round uint64) error
}

type Option func(*Options)

func DefaultOptions() *Options {
	return &Options{
		state:             state.NewEmptyState(state.WithValueConstructor(store.NewValue)),
		signatureVerifier: UpstreamSignatures{},
	}
}

func WithState(s *state.State) Option {
	return func(o *Options) {
		o.state = s
	}
}

// WithFeeCalculator overrides the linear calculator built from the fees configuration.
func WithFeeCalculator(c fees.Calculator) Option {
	return func(o *Options) {
		o.feeCalculator = c
	}
}

func WithExpiryValidator(v ExpiryValidator) Option {
	return func(o *Options) {
		o.expiryValidator = v
	}
}

func WithSignatureVerifier(v SignatureVerifier) Option {
	return func(o *Options) {
		o.signatureVerifier = v
	}
}

func WithBeginBlockFunctions(funcs ...func(round uint64) error) Option {
	return func(o *Options) {
		o.beginBlockFunctions = append(o.beginBlockFunctions, funcs...)
	}
}

func WithEndBlockFunctions(funcs ...func(round uint64) error) Option {
	return func(o *Options) {
		o.endBlockFunctions = append(o.endBlockFunctions, funcs...)
	}
}
