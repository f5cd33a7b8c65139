package types

import (
	"fmt"
	"strconv"
	"strings"
)

type (
	// AccountID is the entity number of an account in the default shard and realm.
	// Zero is not a valid account and is used as the "not set" sentinel.
	AccountID uint64

	// TokenID is the entity number of a token. Zero is the "not set" sentinel.
	TokenID uint64

	// NftID identifies a single serial of a non-fungible token.
	NftID struct {
		TokenID TokenID `json:"tokenId" yaml:"tokenId"`
		Serial  int64   `json:"serial" yaml:"serial"`
	}

	// RelationID is the key of a TokenRelation.
	RelationID struct {
		AccountID AccountID `json:"accountId" yaml:"accountId"`
		TokenID   TokenID   `json:"tokenId" yaml:"tokenId"`
	}

	// PendingAirdropID is the key of a pending airdrop. Exactly one of
	// FungibleToken and NonFungibleToken is set in a well formed ID.
	PendingAirdropID struct {
		SenderID         AccountID `json:"senderId" yaml:"senderId"`
		ReceiverID       AccountID `json:"receiverId" yaml:"receiverId"`
		FungibleToken    TokenID   `json:"fungibleToken,omitempty" yaml:"fungibleToken,omitempty"`
		NonFungibleToken NftID     `json:"nonFungibleToken,omitempty" yaml:"nonFungibleToken,omitempty"`
	}

	// Key is opaque public key material. The empty Key means "no key".
	Key string
)

const entityPrefix = "0.0."

func (id AccountID) String() string { return entityPrefix + strconv.FormatUint(uint64(id), 10) }

func (id TokenID) String() string { return entityPrefix + strconv.FormatUint(uint64(id), 10) }

func (id NftID) String() string { return fmt.Sprintf("%s/%d", id.TokenID, id.Serial) }

func (id RelationID) String() string { return id.AccountID.String() + "/" + id.TokenID.String() }

func (id NftID) IsZero() bool { return id == NftID{} }

// IsFungible reports whether the airdrop ID references a fungible token.
func (id PendingAirdropID) IsFungible() bool { return id.FungibleToken != 0 }

// TokenID returns the token referenced by the airdrop, fungible or not.
func (id PendingAirdropID) TokenID() TokenID {
	if id.FungibleToken != 0 {
		return id.FungibleToken
	}
	return id.NonFungibleToken.TokenID
}

func (id PendingAirdropID) String() string {
	if id.IsFungible() {
		return fmt.Sprintf("%s->%s:%s", id.SenderID, id.ReceiverID, id.FungibleToken)
	}
	return fmt.Sprintf("%s->%s:%s", id.SenderID, id.ReceiverID, id.NonFungibleToken)
}

// ParseAccountID accepts "0.0.N" or plain "N".
func ParseAccountID(s string) (AccountID, error) {
	n, err := parseEntityNum(s)
	return AccountID(n), err
}

// ParseTokenID accepts "0.0.N" or plain "N".
func ParseTokenID(s string) (TokenID, error) {
	n, err := parseEntityNum(s)
	return TokenID(n), err
}

func parseEntityNum(s string) (uint64, error) {
	n, err := strconv.ParseUint(strings.TrimPrefix(s, entityPrefix), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid entity id %q: %w", s, err)
	}
	return n, nil
}

// PendingAirdropIDForNft is a helper for building NFT airdrop keys.
func PendingAirdropIDForNft(sender, receiver AccountID, nft NftID) PendingAirdropID {
	return PendingAirdropID{SenderID: sender, ReceiverID: receiver, NonFungibleToken: nft}
}

// PendingAirdropIDForToken is a helper for building fungible airdrop keys.
func PendingAirdropIDForToken(sender, receiver AccountID, token TokenID) PendingAirdropID {
	return PendingAirdropID{SenderID: sender, ReceiverID: receiver, FungibleToken: token}
}
