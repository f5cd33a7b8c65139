package store

import (
	"fmt"

	"github.com/hashgraph/hedera-services-sub009/state"
	"github.com/hashgraph/hedera-services-sub009/types"
)

type ReadableNftStore struct {
	r state.Reader
}

func NewReadableNftStore(r state.Reader) *ReadableNftStore {
	return &ReadableNftStore{r: r}
}

// Get returns a copy of the NFT, nil if the serial does not exist.
func (s *ReadableNftStore) Get(id types.NftID) (*types.Nft, error) {
	n, err := get[types.Nft](s.r, NftKey(id))
	if err != nil {
		return nil, err
	}
	return n.Clone(), nil
}

func (s *ReadableNftStore) SizeOfState() int64 {
	return s.r.Count(KindNft)
}

type WritableNftStore struct {
	ReadableNftStore
	st *state.State
}

func NewWritableNftStore(st *state.State) *WritableNftStore {
	return &WritableNftStore{ReadableNftStore: ReadableNftStore{r: st}, st: st}
}

func (s *WritableNftStore) Put(n *types.Nft) error {
	if n == nil || n.NftID.TokenID == 0 || n.NftID.Serial <= 0 {
		return fmt.Errorf("invalid nft %v", n)
	}
	if err := s.st.Apply(state.SetValue(NftKey(n.NftID), n.Clone())); err != nil {
		return fmt.Errorf("storing nft %s: %w", n.NftID, err)
	}
	return nil
}
