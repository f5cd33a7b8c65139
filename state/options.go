package state

import "github.com/hashgraph/hedera-services-sub009/keyvaluedb"

type (
	Options struct {
		db               keyvaluedb.KeyValueDB
		valueConstructor ValueConstructor
	}

	Option func(o *Options)
)

// WithDB makes the State persist committed changes into db.
func WithDB(db keyvaluedb.KeyValueDB) Option {
	return func(o *Options) {
		o.db = db
	}
}

// WithValueConstructor sets the function used to decode persisted or serialized records.
func WithValueConstructor(f ValueConstructor) Option {
	return func(o *Options) {
		o.valueConstructor = f
	}
}

func loadOptions(opts ...Option) *Options {
	options := &Options{}
	for _, opt := range opts {
		opt(options)
	}
	return options
}
