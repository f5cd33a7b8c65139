package store

import (
	"fmt"

	"github.com/hashgraph/hedera-services-sub009/state"
	"github.com/hashgraph/hedera-services-sub009/types"
)

// ReadableAccountStore provides read access to accounts and the alias index.
type ReadableAccountStore struct {
	r state.Reader
}

func NewReadableAccountStore(r state.Reader) *ReadableAccountStore {
	return &ReadableAccountStore{r: r}
}

// Get returns a copy of the account, nil if the account does not exist.
func (s *ReadableAccountStore) Get(id types.AccountID) (*types.Account, error) {
	a, err := get[types.Account](s.r, AccountKey(id))
	if err != nil {
		return nil, err
	}
	return a.Clone(), nil
}

// GetByAlias resolves the alias and returns a copy of the account, nil if not found.
func (s *ReadableAccountStore) GetByAlias(alias string) (*types.Account, error) {
	id, err := s.AccountIDByAlias(alias)
	if err != nil || id == 0 {
		return nil, err
	}
	return s.Get(id)
}

// AccountIDByAlias returns zero when the alias is not in use.
func (s *ReadableAccountStore) AccountIDByAlias(alias string) (types.AccountID, error) {
	if alias == "" {
		return 0, nil
	}
	id, err := get[types.AccountID](s.r, AliasKey(alias))
	if err != nil || id == nil {
		return 0, err
	}
	return *id, nil
}

// Contains reports whether the account exists.
func (s *ReadableAccountStore) Contains(id types.AccountID) bool {
	_, ok := s.r.Get(AccountKey(id))
	return ok
}

func (s *ReadableAccountStore) SizeOfAccountState() int64 {
	return s.r.Count(KindAccount)
}

// WritableAccountStore writes into the latest savepoint of the state.
type WritableAccountStore struct {
	ReadableAccountStore
	st *state.State
}

func NewWritableAccountStore(st *state.State) *WritableAccountStore {
	return &WritableAccountStore{ReadableAccountStore: ReadableAccountStore{r: st}, st: st}
}

// Put stores a copy of the account and maintains the alias index.
func (s *WritableAccountStore) Put(a *types.Account) error {
	if a == nil || a.AccountID == 0 {
		return fmt.Errorf("invalid account %v", a)
	}
	actions := []state.Action{state.SetValue(AccountKey(a.AccountID), a.Clone())}
	if a.Alias != "" {
		id := a.AccountID
		actions = append(actions, state.SetValue(AliasKey(a.Alias), &id))
	}
	if err := s.st.Apply(actions...); err != nil {
		return fmt.Errorf("storing account %s: %w", a.AccountID, err)
	}
	return nil
}
