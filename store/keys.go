package store

import (
	"encoding/binary"
	"fmt"

	"github.com/hashgraph/hedera-services-sub009/state"
	"github.com/hashgraph/hedera-services-sub009/types"
)

// Kinds of values kept in the ledger state.
const (
	KindAccount  state.Kind = 'a'
	KindAlias    state.Kind = 'l'
	KindToken    state.Kind = 't'
	KindRelation state.Kind = 'r'
	KindNft      state.Kind = 'n'
	KindAirdrop  state.Kind = 'p'
)

func u64(b []byte, v uint64) []byte {
	return binary.BigEndian.AppendUint64(b, v)
}

func AccountKey(id types.AccountID) state.Key {
	return state.Key(u64([]byte{byte(KindAccount)}, uint64(id)))
}

func AliasKey(alias string) state.Key {
	return state.Key(string(KindAlias) + alias)
}

func TokenKey(id types.TokenID) state.Key {
	return state.Key(u64([]byte{byte(KindToken)}, uint64(id)))
}

func RelationKey(account types.AccountID, token types.TokenID) state.Key {
	b := u64([]byte{byte(KindRelation)}, uint64(account))
	return state.Key(u64(b, uint64(token)))
}

func NftKey(id types.NftID) state.Key {
	b := u64([]byte{byte(KindNft)}, uint64(id.TokenID))
	return state.Key(u64(b, uint64(id.Serial)))
}

func AirdropKey(id types.PendingAirdropID) state.Key {
	b := u64([]byte{byte(KindAirdrop)}, uint64(id.SenderID))
	b = u64(b, uint64(id.ReceiverID))
	b = u64(b, uint64(id.FungibleToken))
	b = u64(b, uint64(id.NonFungibleToken.TokenID))
	return state.Key(u64(b, uint64(id.NonFungibleToken.Serial)))
}

// NewValue is the state.ValueConstructor for ledger records.
func NewValue(key state.Key) (any, error) {
	switch key.Kind() {
	case KindAccount:
		return &types.Account{}, nil
	case KindAlias:
		return new(types.AccountID), nil
	case KindToken:
		return &types.Token{}, nil
	case KindRelation:
		return &types.TokenRelation{}, nil
	case KindNft:
		return &types.Nft{}, nil
	case KindAirdrop:
		return &types.AccountPendingAirdrop{}, nil
	default:
		return nil, fmt.Errorf("unknown value kind %q", key.Kind())
	}
}

// get returns typed value of key, nil when there is no such value.
func get[T any](r state.Reader, key state.Key) (*T, error) {
	v, ok := r.Get(key)
	if !ok {
		return nil, nil
	}
	t, ok := v.(*T)
	if !ok {
		return nil, fmt.Errorf("value of %x is %T, expected %T", []byte(key), v, t)
	}
	return t, nil
}

// KindNames names the value kinds for logs and metrics.
var KindNames = map[state.Kind]string{
	KindAccount:  "account",
	KindAlias:    "alias",
	KindToken:    "token",
	KindRelation: "token_relation",
	KindNft:      "nft",
	KindAirdrop:  "pending_airdrop",
}
