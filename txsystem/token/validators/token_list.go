package validators

import (
	"github.com/hashgraph/hedera-services-sub009/status"
	"github.com/hashgraph/hedera-services-sub009/txsystem"
	"github.com/hashgraph/hedera-services-sub009/types"
)

// TokenListPureChecks rejects zero and repeated token IDs.
func TokenListPureChecks(tokens []types.TokenID) error {
	seen := make(map[types.TokenID]struct{}, len(tokens))
	for _, id := range tokens {
		if id == 0 {
			return txsystem.NewPreCheckError(status.InvalidTokenID)
		}
		if _, dup := seen[id]; dup {
			return txsystem.NewPreCheckError(status.TokenIDRepeatedInTokenList)
		}
		seen[id] = struct{}{}
	}
	return nil
}

// TokenReferencesPureChecks validates the references of TokenReject.
func TokenReferencesPureChecks(refs []types.TokenReference) error {
	if len(refs) == 0 {
		return txsystem.NewPreCheckError(status.EmptyTokenReferenceList)
	}
	seen := make(map[types.TokenReference]struct{}, len(refs))
	for _, ref := range refs {
		fungible := ref.FungibleToken != 0
		nft := !ref.Nft.IsZero()
		switch {
		case fungible == nft:
			return txsystem.NewPreCheckError(status.InvalidTokenID)
		case nft && ref.Nft.TokenID == 0:
			return txsystem.NewPreCheckError(status.InvalidNftID)
		case nft && ref.Nft.Serial <= 0:
			return txsystem.NewPreCheckError(status.InvalidTokenNftSerialNumber)
		}
		if _, dup := seen[ref]; dup {
			return txsystem.NewPreCheckError(status.TokenReferenceRepeated)
		}
		seen[ref] = struct{}{}
	}
	return nil
}

/*
ValidateTokenUsable checks that the token exists and can be transacted
with.
*/
func ValidateTokenUsable(token *types.Token) error {
	switch {
	case token == nil:
		return txsystem.NewHandleError(status.InvalidTokenID)
	case token.Deleted:
		return txsystem.NewHandleError(status.TokenWasDeleted)
	case token.Paused:
		return txsystem.NewHandleError(status.TokenIsPaused)
	}
	return nil
}

/*
ValidateAccountUsable checks that the account exists, is not deleted and is
not detached. Missing account results in "missing" code.
*/
func ValidateAccountUsable(acc *types.Account, expiry txsystem.ExpiryValidator, missing status.Code) error {
	switch {
	case acc == nil:
		return txsystem.NewHandleError(missing)
	case acc.Deleted:
		return txsystem.NewHandleError(status.AccountDeleted)
	case expiry.IsDetached(acc):
		return txsystem.NewHandleError(status.AccountExpiredAndPendingRemoval)
	}
	return nil
}

// ValidateNoTreasuryTitles checks that the account is not a treasury of any token.
func ValidateNoTreasuryTitles(acc *types.Account) error {
	return txsystem.Ensure(acc.NumberTreasuryTitles == 0, status.AccountIsTreasury)
}
