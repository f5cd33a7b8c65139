package store

import (
	"fmt"

	"github.com/hashgraph/hedera-services-sub009/state"
	"github.com/hashgraph/hedera-services-sub009/types"
)

type ReadableTokenRelationStore struct {
	r state.Reader
}

func NewReadableTokenRelationStore(r state.Reader) *ReadableTokenRelationStore {
	return &ReadableTokenRelationStore{r: r}
}

// Get returns a copy of the relation, nil if the account is not associated with the token.
func (s *ReadableTokenRelationStore) Get(account types.AccountID, token types.TokenID) (*types.TokenRelation, error) {
	rel, err := get[types.TokenRelation](s.r, RelationKey(account, token))
	if err != nil {
		return nil, err
	}
	return rel.Clone(), nil
}

func (s *ReadableTokenRelationStore) SizeOfState() int64 {
	return s.r.Count(KindRelation)
}

type WritableTokenRelationStore struct {
	ReadableTokenRelationStore
	st *state.State
}

func NewWritableTokenRelationStore(st *state.State) *WritableTokenRelationStore {
	return &WritableTokenRelationStore{ReadableTokenRelationStore: ReadableTokenRelationStore{r: st}, st: st}
}

func (s *WritableTokenRelationStore) Put(rel *types.TokenRelation) error {
	if rel == nil || rel.AccountID == 0 || rel.TokenID == 0 {
		return fmt.Errorf("invalid token relation %v", rel)
	}
	if err := s.st.Apply(state.SetValue(RelationKey(rel.AccountID, rel.TokenID), rel.Clone())); err != nil {
		return fmt.Errorf("storing token relation %s: %w", rel.ID(), err)
	}
	return nil
}

// Remove deletes the relation. The relation must be unlinked from the account's list before.
func (s *WritableTokenRelationStore) Remove(rel *types.TokenRelation) error {
	if err := s.st.Apply(state.DeleteValue(RelationKey(rel.AccountID, rel.TokenID))); err != nil {
		return fmt.Errorf("removing token relation %s: %w", rel.ID(), err)
	}
	return nil
}
