package types

import "slices"

type (
	Account struct {
		AccountID                AccountID `json:"accountId" yaml:"accountId"`
		Alias                    string    `json:"alias,omitempty" yaml:"alias,omitempty"`
		Key                      Key       `json:"key,omitempty" yaml:"key,omitempty"`
		Balance                  int64     `json:"balance" yaml:"balance"`
		Deleted                  bool      `json:"deleted,omitempty" yaml:"deleted,omitempty"`
		ExpiredAndPendingRemoval bool      `json:"expiredAndPendingRemoval,omitempty" yaml:"expiredAndPendingRemoval,omitempty"`
		ExpirationSecond         int64     `json:"expirationSecond,omitempty" yaml:"expirationSecond,omitempty"`
		ReceiverSigRequired      bool      `json:"receiverSigRequired,omitempty" yaml:"receiverSigRequired,omitempty"`

		// HeadTokenID is the first node of the token relation list, zero when the list is empty.
		HeadTokenID TokenID `json:"headTokenId,omitempty" yaml:"headTokenId,omitempty"`
		// HeadPendingAirdropID is the first node of the pending airdrop list (airdrops sent by
		// this account), nil when the list is empty.
		HeadPendingAirdropID *PendingAirdropID `json:"headPendingAirdropId,omitempty" yaml:"headPendingAirdropId,omitempty"`

		NumberAssociations     int64 `json:"numberAssociations" yaml:"numberAssociations"`
		NumberPositiveBalances int64 `json:"numberPositiveBalances" yaml:"numberPositiveBalances"`
		NumberTreasuryTitles   int64 `json:"numberTreasuryTitles" yaml:"numberTreasuryTitles"`
		NumberPendingAirdrops  int64 `json:"numberPendingAirdrops" yaml:"numberPendingAirdrops"`
		NumberOwnedNfts        int64 `json:"numberOwnedNfts" yaml:"numberOwnedNfts"`

		// MaxAutoAssociations of -1 means unlimited.
		MaxAutoAssociations  int32 `json:"maxAutoAssociations" yaml:"maxAutoAssociations"`
		UsedAutoAssociations int32 `json:"usedAutoAssociations" yaml:"usedAutoAssociations"`

		CryptoAllowances           []CryptoAllowanceEntry        `json:"cryptoAllowances,omitempty" yaml:"cryptoAllowances,omitempty"`
		TokenAllowances            []TokenAllowanceEntry         `json:"tokenAllowances,omitempty" yaml:"tokenAllowances,omitempty"`
		ApproveForAllNftAllowances []ApproveForAllAllowanceEntry `json:"approveForAllNftAllowances,omitempty" yaml:"approveForAllNftAllowances,omitempty"`
	}

	CryptoAllowanceEntry struct {
		SpenderID AccountID `json:"spenderId" yaml:"spenderId"`
		Amount    int64     `json:"amount" yaml:"amount"`
	}

	TokenAllowanceEntry struct {
		TokenID   TokenID   `json:"tokenId" yaml:"tokenId"`
		SpenderID AccountID `json:"spenderId" yaml:"spenderId"`
		Amount    int64     `json:"amount" yaml:"amount"`
	}

	ApproveForAllAllowanceEntry struct {
		TokenID   TokenID   `json:"tokenId" yaml:"tokenId"`
		SpenderID AccountID `json:"spenderId" yaml:"spenderId"`
	}

	TokenType  uint8
	SupplyType uint8

	Token struct {
		TokenID     TokenID    `json:"tokenId" yaml:"tokenId"`
		Name        string     `json:"name,omitempty" yaml:"name,omitempty"`
		Symbol      string     `json:"symbol,omitempty" yaml:"symbol,omitempty"`
		Type        TokenType  `json:"type" yaml:"type"`
		SupplyType  SupplyType `json:"supplyType" yaml:"supplyType"`
		MaxSupply   int64      `json:"maxSupply,omitempty" yaml:"maxSupply,omitempty"`
		TotalSupply int64      `json:"totalSupply" yaml:"totalSupply"`
		Decimals    uint32     `json:"decimals,omitempty" yaml:"decimals,omitempty"`
		TreasuryID  AccountID  `json:"treasuryId" yaml:"treasuryId"`

		AdminKey       Key `json:"adminKey,omitempty" yaml:"adminKey,omitempty"`
		KycKey         Key `json:"kycKey,omitempty" yaml:"kycKey,omitempty"`
		FreezeKey      Key `json:"freezeKey,omitempty" yaml:"freezeKey,omitempty"`
		WipeKey        Key `json:"wipeKey,omitempty" yaml:"wipeKey,omitempty"`
		SupplyKey      Key `json:"supplyKey,omitempty" yaml:"supplyKey,omitempty"`
		FeeScheduleKey Key `json:"feeScheduleKey,omitempty" yaml:"feeScheduleKey,omitempty"`
		PauseKey       Key `json:"pauseKey,omitempty" yaml:"pauseKey,omitempty"`
		MetadataKey    Key `json:"metadataKey,omitempty" yaml:"metadataKey,omitempty"`

		Paused  bool `json:"paused,omitempty" yaml:"paused,omitempty"`
		Deleted bool `json:"deleted,omitempty" yaml:"deleted,omitempty"`
		// Applies to new associations only when FreezeKey is set. New
		// associations get KYC granted exactly when KycKey is empty.
		AccountsFrozenByDefault bool `json:"accountsFrozenByDefault,omitempty" yaml:"accountsFrozenByDefault,omitempty"`

		CustomFees     []CustomFee `json:"customFees,omitempty" yaml:"customFees,omitempty"`
		LastUsedSerial int64       `json:"lastUsedSerial,omitempty" yaml:"lastUsedSerial,omitempty"`
	}

	CustomFee struct {
		CollectorID AccountID      `json:"collectorId" yaml:"collectorId"`
		Fixed       *FixedFee      `json:"fixed,omitempty" yaml:"fixed,omitempty"`
		Fractional  *FractionalFee `json:"fractional,omitempty" yaml:"fractional,omitempty"`
		Royalty     *RoyaltyFee    `json:"royalty,omitempty" yaml:"royalty,omitempty"`
	}

	FixedFee struct {
		Amount int64 `json:"amount" yaml:"amount"`
		// DenominatingToken zero means the fee is paid in hbar.
		DenominatingToken TokenID `json:"denominatingToken,omitempty" yaml:"denominatingToken,omitempty"`
	}

	FractionalFee struct {
		Numerator   int64 `json:"numerator" yaml:"numerator"`
		Denominator int64 `json:"denominator" yaml:"denominator"`
		Minimum     int64 `json:"minimum,omitempty" yaml:"minimum,omitempty"`
		Maximum     int64 `json:"maximum,omitempty" yaml:"maximum,omitempty"`
	}

	RoyaltyFee struct {
		Numerator   int64     `json:"numerator" yaml:"numerator"`
		Denominator int64     `json:"denominator" yaml:"denominator"`
		FallbackFee *FixedFee `json:"fallbackFee,omitempty" yaml:"fallbackFee,omitempty"`
	}

	TokenRelation struct {
		AccountID            AccountID `json:"accountId" yaml:"accountId"`
		TokenID              TokenID   `json:"tokenId" yaml:"tokenId"`
		Balance              int64     `json:"balance" yaml:"balance"`
		Frozen               bool      `json:"frozen,omitempty" yaml:"frozen,omitempty"`
		KycGranted           bool      `json:"kycGranted,omitempty" yaml:"kycGranted,omitempty"`
		AutomaticAssociation bool      `json:"automaticAssociation,omitempty" yaml:"automaticAssociation,omitempty"`
		PreviousToken        TokenID   `json:"previousToken,omitempty" yaml:"previousToken,omitempty"`
		NextToken            TokenID   `json:"nextToken,omitempty" yaml:"nextToken,omitempty"`
	}

	Nft struct {
		NftID NftID `json:"nftId" yaml:"nftId"`
		// OwnerID zero means the NFT is owned by the token treasury.
		OwnerID   AccountID `json:"ownerId,omitempty" yaml:"ownerId,omitempty"`
		SpenderID AccountID `json:"spenderId,omitempty" yaml:"spenderId,omitempty"`
		Metadata  []byte    `json:"metadata,omitempty" yaml:"metadata,omitempty"`
		MintTime  int64     `json:"mintTime,omitempty" yaml:"mintTime,omitempty"`
	}

	AccountPendingAirdrop struct {
		ID PendingAirdropID `json:"id" yaml:"id"`
		// Amount is the pending fungible amount, unused for NFT airdrops.
		Amount          int64             `json:"amount,omitempty" yaml:"amount,omitempty"`
		PreviousAirdrop *PendingAirdropID `json:"previousAirdrop,omitempty" yaml:"previousAirdrop,omitempty"`
		NextAirdrop     *PendingAirdropID `json:"nextAirdrop,omitempty" yaml:"nextAirdrop,omitempty"`
	}
)

const (
	FungibleCommon TokenType = iota
	NonFungibleUnique
)

const (
	Infinite SupplyType = iota
	Finite
)

func (t TokenType) String() string {
	if t == NonFungibleUnique {
		return "NON_FUNGIBLE_UNIQUE"
	}
	return "FUNGIBLE_COMMON"
}

func (a *Account) Clone() *Account {
	if a == nil {
		return nil
	}
	c := *a
	if a.HeadPendingAirdropID != nil {
		id := *a.HeadPendingAirdropID
		c.HeadPendingAirdropID = &id
	}
	c.CryptoAllowances = slices.Clone(a.CryptoAllowances)
	c.TokenAllowances = slices.Clone(a.TokenAllowances)
	c.ApproveForAllNftAllowances = slices.Clone(a.ApproveForAllNftAllowances)
	return &c
}

// HasFreeAutoAssociationSlot reports whether the account may be associated with one more
// token automatically.
func (a *Account) HasFreeAutoAssociationSlot() bool {
	return a.MaxAutoAssociations < 0 || a.UsedAutoAssociations < a.MaxAutoAssociations
}

// NumberOfAllowances counts all allowance entries stored on the account.
func (a *Account) NumberOfAllowances() int {
	return len(a.CryptoAllowances) + len(a.TokenAllowances) + len(a.ApproveForAllNftAllowances)
}

func (t *Token) Clone() *Token {
	if t == nil {
		return nil
	}
	c := *t
	c.CustomFees = make([]CustomFee, len(t.CustomFees))
	for i, f := range t.CustomFees {
		c.CustomFees[i] = f.clone()
	}
	if t.CustomFees == nil {
		c.CustomFees = nil
	}
	return &c
}

func (f CustomFee) clone() CustomFee {
	if f.Fixed != nil {
		v := *f.Fixed
		f.Fixed = &v
	}
	if f.Fractional != nil {
		v := *f.Fractional
		f.Fractional = &v
	}
	if f.Royalty != nil {
		v := *f.Royalty
		if v.FallbackFee != nil {
			fb := *v.FallbackFee
			v.FallbackFee = &fb
		}
		f.Royalty = &v
	}
	return f
}

func (t *Token) IsFungible() bool { return t.Type == FungibleCommon }

func (r *TokenRelation) Clone() *TokenRelation {
	if r == nil {
		return nil
	}
	c := *r
	return &c
}

func (r *TokenRelation) ID() RelationID {
	return RelationID{AccountID: r.AccountID, TokenID: r.TokenID}
}

func (n *Nft) Clone() *Nft {
	if n == nil {
		return nil
	}
	c := *n
	c.Metadata = slices.Clone(n.Metadata)
	return &c
}

func (p *AccountPendingAirdrop) Clone() *AccountPendingAirdrop {
	if p == nil {
		return nil
	}
	c := *p
	if p.PreviousAirdrop != nil {
		id := *p.PreviousAirdrop
		c.PreviousAirdrop = &id
	}
	if p.NextAirdrop != nil {
		id := *p.NextAirdrop
		c.NextAirdrop = &id
	}
	return &c
}
