package validators

import (
	"math"

	"github.com/hashgraph/hedera-services-sub009/config"
	"github.com/hashgraph/hedera-services-sub009/status"
	"github.com/hashgraph/hedera-services-sub009/txsystem"
	"github.com/hashgraph/hedera-services-sub009/types"
)

/*
TransferPureChecks validates the hbar and token transfer lists without
accessing the state. Both lists may be empty.
*/
func TransferPureChecks(transfers []types.AccountAmount, tokenTransfers []types.TokenTransferList) error {
	if err := validateHbarTransfers(transfers); err != nil {
		return err
	}
	return TokenTransfersPureChecks(tokenTransfers)
}

func validateHbarTransfers(transfers []types.AccountAmount) error {
	var sum int64
	seen := make(map[accountRef]struct{}, len(transfers))
	for _, aa := range transfers {
		ref, ok := refOf(aa)
		if !ok {
			return txsystem.NewPreCheckError(status.InvalidAccountID)
		}
		if _, dup := seen[ref]; dup {
			return txsystem.NewPreCheckError(status.AccountRepeatedInAccountAmounts)
		}
		seen[ref] = struct{}{}
		if sum, ok = AddAmount(sum, aa.Amount); !ok {
			return txsystem.NewPreCheckError(status.InvalidAccountAmounts)
		}
	}
	if sum != 0 {
		return txsystem.NewPreCheckError(status.InvalidAccountAmounts)
	}
	return nil
}

// TokenTransfersPureChecks validates the token transfer lists.
func TokenTransfersPureChecks(tokenTransfers []types.TokenTransferList) error {
	seen := make(map[types.TokenID]bool, len(tokenTransfers))
	for _, tl := range tokenTransfers {
		if tl.TokenID == 0 {
			return txsystem.NewPreCheckError(status.InvalidTokenID)
		}
		hasNfts := len(tl.NftTransfers) > 0
		// the value tells whether an earlier list of the token had NFT transfers
		if nftsBefore, ok := seen[tl.TokenID]; ok && (hasNfts || nftsBefore) {
			return txsystem.NewPreCheckError(status.TokenIDRepeatedInTokenList)
		}
		seen[tl.TokenID] = seen[tl.TokenID] || hasNfts

		switch {
		case len(tl.Transfers) == 0 && !hasNfts:
			return txsystem.NewPreCheckError(status.EmptyTokenTransferAccountAmounts)
		case len(tl.Transfers) > 0 && hasNfts:
			return txsystem.NewPreCheckError(status.InvalidAccountAmounts)
		}
		if err := validateFungibleTransfers(tl.Transfers); err != nil {
			return err
		}
		if err := validateNftTransfers(tl.NftTransfers); err != nil {
			return err
		}
	}
	return nil
}

func validateFungibleTransfers(transfers []types.AccountAmount) error {
	var sum int64
	seen := make(map[accountRef]struct{}, len(transfers))
	for _, aa := range transfers {
		ref, ok := refOf(aa)
		if !ok {
			return txsystem.NewPreCheckError(status.InvalidTransferAccountID)
		}
		if _, dup := seen[ref]; dup {
			return txsystem.NewPreCheckError(status.AccountRepeatedInAccountAmounts)
		}
		seen[ref] = struct{}{}
		if sum, ok = AddAmount(sum, aa.Amount); !ok {
			return txsystem.NewPreCheckError(status.TransfersNotZeroSumForToken)
		}
	}
	if sum != 0 {
		return txsystem.NewPreCheckError(status.TransfersNotZeroSumForToken)
	}
	return nil
}

func validateNftTransfers(transfers []types.NftTransfer) error {
	for _, nt := range transfers {
		if nt.Serial <= 0 {
			return txsystem.NewPreCheckError(status.InvalidTokenNftSerialNumber)
		}
		if nt.SenderID == 0 || nt.ReceiverID == 0 {
			return txsystem.NewPreCheckError(status.InvalidTransferAccountID)
		}
	}
	return nil
}

/*
ValidateTransferLimits checks the sizes of the transfer lists against the
ledger configuration.
*/
func ValidateTransferLimits(cfg *config.Configuration, transfers []types.AccountAmount, tokenTransfers []types.TokenTransferList) error {
	if len(transfers) > cfg.Ledger.Transfers.MaxLen {
		return txsystem.NewPreCheckError(status.TransferListSizeLimitExceeded)
	}
	fungible, nfts := CountTokenTransfers(tokenTransfers)
	if fungible > cfg.Ledger.TokenTransfers.MaxLen {
		return txsystem.NewPreCheckError(status.TokenTransferListSizeLimitExceeded)
	}
	if nfts > 0 && !cfg.Tokens.Nfts.AreEnabled {
		return txsystem.NewPreCheckError(status.NotSupported)
	}
	if nfts > cfg.Ledger.NftTransfers.MaxLen {
		return txsystem.NewPreCheckError(status.BatchSizeLimitExceeded)
	}
	return nil
}

// CountTokenTransfers returns the number of fungible entries and NFT exchanges in the lists.
func CountTokenTransfers(tokenTransfers []types.TokenTransferList) (fungible, nfts int) {
	for _, tl := range tokenTransfers {
		fungible += len(tl.Transfers)
		nfts += len(tl.NftTransfers)
	}
	return fungible, nfts
}

// AddAmount returns a+b, false when the sum overflows int64.
func AddAmount(a, b int64) (int64, bool) {
	if (b > 0 && a > math.MaxInt64-b) || (b < 0 && a < math.MinInt64-b) {
		return 0, false
	}
	return a + b, true
}

// accountRef is an account referenced either by number or by alias.
type accountRef struct {
	id    types.AccountID
	alias string
}

func refOf(aa types.AccountAmount) (accountRef, bool) {
	switch {
	case aa.AccountID != 0:
		return accountRef{id: aa.AccountID}, true
	case aa.Alias != "":
		return accountRef{alias: aa.Alias}, true
	default:
		return accountRef{}, false
	}
}
