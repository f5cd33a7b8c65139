package store

import (
	"fmt"

	"github.com/hashgraph/hedera-services-sub009/state"
	"github.com/hashgraph/hedera-services-sub009/types"
)

type ReadableTokenStore struct {
	r state.Reader
}

func NewReadableTokenStore(r state.Reader) *ReadableTokenStore {
	return &ReadableTokenStore{r: r}
}

// Get returns a copy of the token, nil if the token does not exist.
func (s *ReadableTokenStore) Get(id types.TokenID) (*types.Token, error) {
	t, err := get[types.Token](s.r, TokenKey(id))
	if err != nil {
		return nil, err
	}
	return t.Clone(), nil
}

func (s *ReadableTokenStore) SizeOfState() int64 {
	return s.r.Count(KindToken)
}

type WritableTokenStore struct {
	ReadableTokenStore
	st *state.State
}

func NewWritableTokenStore(st *state.State) *WritableTokenStore {
	return &WritableTokenStore{ReadableTokenStore: ReadableTokenStore{r: st}, st: st}
}

func (s *WritableTokenStore) Put(t *types.Token) error {
	if t == nil || t.TokenID == 0 {
		return fmt.Errorf("invalid token %v", t)
	}
	if err := s.st.Apply(state.SetValue(TokenKey(t.TokenID), t.Clone())); err != nil {
		return fmt.Errorf("storing token %s: %w", t.TokenID, err)
	}
	return nil
}
