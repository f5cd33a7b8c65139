package validators

import (
	"github.com/hashgraph/hedera-services-sub009/status"
	"github.com/hashgraph/hedera-services-sub009/txsystem"
	"github.com/hashgraph/hedera-services-sub009/types"
)

// ApproveAllowancePureChecks validates the structure of CryptoApproveAllowance body.
func ApproveAllowancePureChecks(body *types.CryptoApproveAllowanceBody) error {
	if body == nil || len(body.CryptoAllowances)+len(body.TokenAllowances)+len(body.NftAllowances) == 0 {
		return txsystem.NewPreCheckError(status.EmptyAllowances)
	}
	for _, a := range body.CryptoAllowances {
		if a.Amount < 0 {
			return txsystem.NewPreCheckError(status.NegativeAllowanceAmount)
		}
		if a.SpenderID == 0 {
			return txsystem.NewPreCheckError(status.InvalidAllowanceSpenderID)
		}
	}
	for _, a := range body.TokenAllowances {
		if a.Amount < 0 {
			return txsystem.NewPreCheckError(status.NegativeAllowanceAmount)
		}
		if a.SpenderID == 0 {
			return txsystem.NewPreCheckError(status.InvalidAllowanceSpenderID)
		}
		if a.TokenID == 0 {
			return txsystem.NewPreCheckError(status.InvalidTokenID)
		}
	}
	for _, a := range body.NftAllowances {
		if a.SpenderID == 0 {
			return txsystem.NewPreCheckError(status.InvalidAllowanceSpenderID)
		}
		if a.TokenID == 0 {
			return txsystem.NewPreCheckError(status.InvalidTokenID)
		}
	}
	return nil
}

// DeleteAllowancePureChecks validates the structure of CryptoDeleteAllowance body.
func DeleteAllowancePureChecks(body *types.CryptoDeleteAllowanceBody) error {
	if body == nil || len(body.NftAllowances) == 0 {
		return txsystem.NewPreCheckError(status.EmptyAllowances)
	}
	for _, a := range body.NftAllowances {
		if len(a.SerialNumbers) == 0 {
			return txsystem.NewPreCheckError(status.EmptyAllowances)
		}
		if a.TokenID == 0 {
			return txsystem.NewPreCheckError(status.InvalidTokenID)
		}
	}
	return nil
}

/*
AggregateApproveAllowances returns the number of allowances the approve
transaction grants or removes, every NFT serial counts as one allowance.
*/
func AggregateApproveAllowances(body *types.CryptoApproveAllowanceBody) int {
	n := len(body.CryptoAllowances) + len(body.TokenAllowances)
	for _, a := range body.NftAllowances {
		n += len(a.SerialNumbers)
		if a.ApprovedForAll != nil {
			n++
		}
	}
	return n
}

// AggregateDeleteAllowances returns the number of NFT serials in the body.
func AggregateDeleteAllowances(body *types.CryptoDeleteAllowanceBody) int {
	n := 0
	for _, a := range body.NftAllowances {
		n += len(a.SerialNumbers)
	}
	return n
}

/*
ValidateAllowanceCount checks the number of allowances of one transaction
against the configured limit.
*/
func ValidateAllowanceCount(count, limit int) error {
	return txsystem.Ensure(count <= limit, status.MaxAllowancesExceeded)
}

/*
ValidateFungibleAllowanceAmount checks that the allowance doesn't exceed the
supply of a finite token.
*/
func ValidateFungibleAllowanceAmount(token *types.Token, amount int64) error {
	if !token.IsFungible() {
		return txsystem.NewHandleError(status.NftInFungibleTokenAllowances)
	}
	if token.SupplyType == types.Finite && amount > token.MaxSupply {
		return txsystem.NewHandleError(status.AmountExceedsTokenMaxSupply)
	}
	return nil
}

/*
ValidateDelegatingSpender checks that the delegating spender holds an
approve-for-all allowance of the owner on the token and is not trying to
pass on the approve-for-all itself.
*/
func ValidateDelegatingSpender(owner *types.Account, a *types.NftAllowance) error {
	if a.DelegatingSpender == 0 {
		return nil
	}
	if a.ApprovedForAll != nil && *a.ApprovedForAll {
		return txsystem.NewHandleError(status.DelegatingSpenderCannotGrantApproveForAll)
	}
	if !HasApproveForAll(owner, a.TokenID, a.DelegatingSpender) {
		return txsystem.NewHandleError(status.DelegatingSpenderDoesNotHaveApproveForAll)
	}
	return nil
}

// HasApproveForAll reports whether spender may transfer all NFTs of the token owned by the owner.
func HasApproveForAll(owner *types.Account, token types.TokenID, spender types.AccountID) bool {
	for _, e := range owner.ApproveForAllNftAllowances {
		if e.TokenID == token && e.SpenderID == spender {
			return true
		}
	}
	return false
}
