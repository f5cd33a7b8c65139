package store

import "github.com/hashgraph/hedera-services-sub009/state"

// Readable groups read-only stores over one consistent view of the state.
type Readable struct {
	Accounts  *ReadableAccountStore
	Tokens    *ReadableTokenStore
	Relations *ReadableTokenRelationStore
	Nfts      *ReadableNftStore
	Airdrops  *ReadableAirdropStore
}

func NewReadable(r state.Reader) *Readable {
	return &Readable{
		Accounts:  NewReadableAccountStore(r),
		Tokens:    NewReadableTokenStore(r),
		Relations: NewReadableTokenRelationStore(r),
		Nfts:      NewReadableNftStore(r),
		Airdrops:  NewReadableAirdropStore(r),
	}
}

// Writable groups stores writing into the latest savepoint of the state.
type Writable struct {
	Accounts  *WritableAccountStore
	Tokens    *WritableTokenStore
	Relations *WritableTokenRelationStore
	Nfts      *WritableNftStore
	Airdrops  *WritableAirdropStore
}

func NewWritable(st *state.State) *Writable {
	return &Writable{
		Accounts:  NewWritableAccountStore(st),
		Tokens:    NewWritableTokenStore(st),
		Relations: NewWritableTokenRelationStore(st),
		Nfts:      NewWritableNftStore(st),
		Airdrops:  NewWritableAirdropStore(st),
	}
}

// Readable returns read-only stores over the same (uncommitted) view.
func (w *Writable) Readable() *Readable {
	return &Readable{
		Accounts:  &w.Accounts.ReadableAccountStore,
		Tokens:    &w.Tokens.ReadableTokenStore,
		Relations: &w.Relations.ReadableTokenRelationStore,
		Nfts:      &w.Nfts.ReadableNftStore,
		Airdrops:  &w.Airdrops.ReadableAirdropStore,
	}
}
