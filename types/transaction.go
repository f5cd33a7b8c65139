package types

import (
	"errors"
	"fmt"
)

// Transaction types, also used as handler registry keys.
const (
	TxCryptoApproveAllowance = "CryptoApproveAllowance"
	TxCryptoDeleteAllowance  = "CryptoDeleteAllowance"
	TxCryptoDelete           = "CryptoDelete"
	TxCryptoTransfer         = "CryptoTransfer"
	TxTokenAssociate         = "TokenAssociateToAccount"
	TxTokenDissociate        = "TokenDissociateFromAccount"
	TxTokenAirdrop           = "TokenAirdrop"
	TxTokenCancelAirdrop     = "TokenCancelAirdrop"
	TxTokenClaimAirdrop      = "TokenClaimAirdrop"
	TxTokenReject            = "TokenReject"
)

type (
	TransactionID struct {
		Payer AccountID `json:"payer" yaml:"payer"`
		// ValidStart is in nanoseconds since epoch.
		ValidStart int64 `json:"validStart" yaml:"validStart"`
	}

	Transaction struct {
		ID     TransactionID `json:"id" yaml:"id"`
		MaxFee int64         `json:"maxFee,omitempty" yaml:"maxFee,omitempty"`
		Memo   string        `json:"memo,omitempty" yaml:"memo,omitempty"`
		// SignedBy lists the keys whose signatures were verified by the upstream layer.
		SignedBy []Key           `json:"signedBy,omitempty" yaml:"signedBy,omitempty"`
		Body     TransactionBody `json:"body" yaml:"body"`
	}

	// TransactionBody holds exactly one operation body.
	TransactionBody struct {
		CryptoApproveAllowance *CryptoApproveAllowanceBody `json:"cryptoApproveAllowance,omitempty" yaml:"cryptoApproveAllowance,omitempty"`
		CryptoDeleteAllowance  *CryptoDeleteAllowanceBody  `json:"cryptoDeleteAllowance,omitempty" yaml:"cryptoDeleteAllowance,omitempty"`
		CryptoDelete           *CryptoDeleteBody           `json:"cryptoDelete,omitempty" yaml:"cryptoDelete,omitempty"`
		CryptoTransfer         *CryptoTransferBody         `json:"cryptoTransfer,omitempty" yaml:"cryptoTransfer,omitempty"`
		TokenAssociate         *TokenAssociateBody         `json:"tokenAssociate,omitempty" yaml:"tokenAssociate,omitempty"`
		TokenDissociate        *TokenDissociateBody        `json:"tokenDissociate,omitempty" yaml:"tokenDissociate,omitempty"`
		TokenAirdrop           *TokenAirdropBody           `json:"tokenAirdrop,omitempty" yaml:"tokenAirdrop,omitempty"`
		TokenCancelAirdrop     *PendingAirdropsBody        `json:"tokenCancelAirdrop,omitempty" yaml:"tokenCancelAirdrop,omitempty"`
		TokenClaimAirdrop      *PendingAirdropsBody        `json:"tokenClaimAirdrop,omitempty" yaml:"tokenClaimAirdrop,omitempty"`
		TokenReject            *TokenRejectBody            `json:"tokenReject,omitempty" yaml:"tokenReject,omitempty"`
	}

	CryptoApproveAllowanceBody struct {
		CryptoAllowances []CryptoAllowance `json:"cryptoAllowances,omitempty" yaml:"cryptoAllowances,omitempty"`
		TokenAllowances  []TokenAllowance  `json:"tokenAllowances,omitempty" yaml:"tokenAllowances,omitempty"`
		NftAllowances    []NftAllowance    `json:"nftAllowances,omitempty" yaml:"nftAllowances,omitempty"`
	}

	CryptoAllowance struct {
		// OwnerID zero means the payer is the owner.
		OwnerID   AccountID `json:"ownerId,omitempty" yaml:"ownerId,omitempty"`
		SpenderID AccountID `json:"spenderId" yaml:"spenderId"`
		Amount    int64     `json:"amount" yaml:"amount"`
	}

	TokenAllowance struct {
		TokenID   TokenID   `json:"tokenId" yaml:"tokenId"`
		OwnerID   AccountID `json:"ownerId,omitempty" yaml:"ownerId,omitempty"`
		SpenderID AccountID `json:"spenderId" yaml:"spenderId"`
		Amount    int64     `json:"amount" yaml:"amount"`
	}

	NftAllowance struct {
		TokenID        TokenID   `json:"tokenId" yaml:"tokenId"`
		OwnerID        AccountID `json:"ownerId,omitempty" yaml:"ownerId,omitempty"`
		SpenderID      AccountID `json:"spenderId" yaml:"spenderId"`
		SerialNumbers  []int64   `json:"serialNumbers,omitempty" yaml:"serialNumbers,omitempty"`
		ApprovedForAll *bool     `json:"approvedForAll,omitempty" yaml:"approvedForAll,omitempty"`
		// DelegatingSpender is an account holding approve-for-all on the token which grants
		// serial allowances on the owner's behalf.
		DelegatingSpender AccountID `json:"delegatingSpender,omitempty" yaml:"delegatingSpender,omitempty"`
	}

	CryptoDeleteAllowanceBody struct {
		NftAllowances []NftRemoveAllowance `json:"nftAllowances" yaml:"nftAllowances"`
	}

	NftRemoveAllowance struct {
		TokenID       TokenID   `json:"tokenId" yaml:"tokenId"`
		OwnerID       AccountID `json:"ownerId,omitempty" yaml:"ownerId,omitempty"`
		SerialNumbers []int64   `json:"serialNumbers" yaml:"serialNumbers"`
	}

	CryptoDeleteBody struct {
		DeleteAccountID   AccountID `json:"deleteAccountId" yaml:"deleteAccountId"`
		TransferAccountID AccountID `json:"transferAccountId" yaml:"transferAccountId"`
	}

	AccountAmount struct {
		AccountID AccountID `json:"accountId,omitempty" yaml:"accountId,omitempty"`
		// Alias references the account by its alias when AccountID is not set.
		Alias      string `json:"alias,omitempty" yaml:"alias,omitempty"`
		Amount     int64  `json:"amount" yaml:"amount"`
		IsApproval bool   `json:"isApproval,omitempty" yaml:"isApproval,omitempty"`
	}

	NftTransfer struct {
		SenderID   AccountID `json:"senderId" yaml:"senderId"`
		ReceiverID AccountID `json:"receiverId" yaml:"receiverId"`
		Serial     int64     `json:"serial" yaml:"serial"`
		IsApproval bool      `json:"isApproval,omitempty" yaml:"isApproval,omitempty"`
	}

	TokenTransferList struct {
		TokenID      TokenID         `json:"tokenId" yaml:"tokenId"`
		Transfers    []AccountAmount `json:"transfers,omitempty" yaml:"transfers,omitempty"`
		NftTransfers []NftTransfer   `json:"nftTransfers,omitempty" yaml:"nftTransfers,omitempty"`
	}

	CryptoTransferBody struct {
		Transfers      []AccountAmount     `json:"transfers,omitempty" yaml:"transfers,omitempty"`
		TokenTransfers []TokenTransferList `json:"tokenTransfers,omitempty" yaml:"tokenTransfers,omitempty"`
	}

	TokenAssociateBody struct {
		AccountID AccountID `json:"accountId" yaml:"accountId"`
		Tokens    []TokenID `json:"tokens" yaml:"tokens"`
	}

	TokenDissociateBody struct {
		AccountID AccountID `json:"accountId" yaml:"accountId"`
		Tokens    []TokenID `json:"tokens" yaml:"tokens"`
	}

	TokenAirdropBody struct {
		TokenTransfers []TokenTransferList `json:"tokenTransfers" yaml:"tokenTransfers"`
	}

	PendingAirdropsBody struct {
		PendingAirdrops []PendingAirdropID `json:"pendingAirdrops" yaml:"pendingAirdrops"`
	}

	// TokenReference points either to a fungible token or to a single NFT.
	TokenReference struct {
		FungibleToken TokenID `json:"fungibleToken,omitempty" yaml:"fungibleToken,omitempty"`
		Nft           NftID   `json:"nft,omitempty" yaml:"nft,omitempty"`
	}

	TokenRejectBody struct {
		// OwnerID zero means the payer rejects its own tokens.
		OwnerID    AccountID        `json:"ownerId,omitempty" yaml:"ownerId,omitempty"`
		Rejections []TokenReference `json:"rejections" yaml:"rejections"`
	}
)

var errNoBody = errors.New("transaction body is empty")

// Type returns the type of the single operation set in the body.
func (b *TransactionBody) Type() (string, error) {
	var types []string
	if b.CryptoApproveAllowance != nil {
		types = append(types, TxCryptoApproveAllowance)
	}
	if b.CryptoDeleteAllowance != nil {
		types = append(types, TxCryptoDeleteAllowance)
	}
	if b.CryptoDelete != nil {
		types = append(types, TxCryptoDelete)
	}
	if b.CryptoTransfer != nil {
		types = append(types, TxCryptoTransfer)
	}
	if b.TokenAssociate != nil {
		types = append(types, TxTokenAssociate)
	}
	if b.TokenDissociate != nil {
		types = append(types, TxTokenDissociate)
	}
	if b.TokenAirdrop != nil {
		types = append(types, TxTokenAirdrop)
	}
	if b.TokenCancelAirdrop != nil {
		types = append(types, TxTokenCancelAirdrop)
	}
	if b.TokenClaimAirdrop != nil {
		types = append(types, TxTokenClaimAirdrop)
	}
	if b.TokenReject != nil {
		types = append(types, TxTokenReject)
	}
	switch len(types) {
	case 0:
		return "", errNoBody
	case 1:
		return types[0], nil
	default:
		return "", fmt.Errorf("transaction body has %d operations: %v", len(types), types)
	}
}

// Payer returns the account paying for the transaction.
func (tx *Transaction) Payer() AccountID {
	return tx.ID.Payer
}

// IsSignedBy reports whether the upstream verifier has confirmed a signature by key.
func (tx *Transaction) IsSignedBy(key Key) bool {
	for _, k := range tx.SignedBy {
		if k == key {
			return true
		}
	}
	return false
}

// Fees is the cost of a transaction split by recipient.
type Fees struct {
	NetworkFee int64 `json:"networkFee" yaml:"networkFee"`
	NodeFee    int64 `json:"nodeFee" yaml:"nodeFee"`
	ServiceFee int64 `json:"serviceFee" yaml:"serviceFee"`
}

func (f Fees) Total() int64 {
	return f.NetworkFee + f.NodeFee + f.ServiceFee
}
