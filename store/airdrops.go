package store

import (
	"fmt"

	"github.com/hashgraph/hedera-services-sub009/state"
	"github.com/hashgraph/hedera-services-sub009/types"
)

type ReadableAirdropStore struct {
	r state.Reader
}

func NewReadableAirdropStore(r state.Reader) *ReadableAirdropStore {
	return &ReadableAirdropStore{r: r}
}

// Get returns a copy of the pending airdrop, nil if there is no such airdrop.
func (s *ReadableAirdropStore) Get(id types.PendingAirdropID) (*types.AccountPendingAirdrop, error) {
	p, err := get[types.AccountPendingAirdrop](s.r, AirdropKey(id))
	if err != nil {
		return nil, err
	}
	return p.Clone(), nil
}

func (s *ReadableAirdropStore) Exists(id types.PendingAirdropID) bool {
	_, ok := s.r.Get(AirdropKey(id))
	return ok
}

func (s *ReadableAirdropStore) SizeOfState() int64 {
	return s.r.Count(KindAirdrop)
}

type WritableAirdropStore struct {
	ReadableAirdropStore
	st *state.State
}

func NewWritableAirdropStore(st *state.State) *WritableAirdropStore {
	return &WritableAirdropStore{ReadableAirdropStore: ReadableAirdropStore{r: st}, st: st}
}

func (s *WritableAirdropStore) Put(p *types.AccountPendingAirdrop) error {
	if p == nil {
		return fmt.Errorf("pending airdrop is nil")
	}
	if err := s.st.Apply(state.SetValue(AirdropKey(p.ID), p.Clone())); err != nil {
		return fmt.Errorf("storing pending airdrop %s: %w", p.ID, err)
	}
	return nil
}

// Remove deletes the airdrop. The airdrop must be unlinked from the sender's list before.
func (s *WritableAirdropStore) Remove(id types.PendingAirdropID) error {
	if err := s.st.Apply(state.DeleteValue(AirdropKey(id))); err != nil {
		return fmt.Errorf("removing pending airdrop %s: %w", id, err)
	}
	return nil
}
