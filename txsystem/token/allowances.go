package token

import (
	"slices"

	"github.com/hashgraph/hedera-services-sub009/types"
)

/*
The functions below return the allowance list with the allowance of the
spender set to "amount". Zero amount removes the allowance, the lists never
contain zero entries. Existing allowance is updated in place.
*/

func setCryptoAllowance(list []types.CryptoAllowanceEntry, spender types.AccountID, amount int64) []types.CryptoAllowanceEntry {
	i := slices.IndexFunc(list, func(e types.CryptoAllowanceEntry) bool { return e.SpenderID == spender })
	switch {
	case i < 0 && amount == 0:
		return list
	case i < 0:
		return append(list, types.CryptoAllowanceEntry{SpenderID: spender, Amount: amount})
	case amount == 0:
		return slices.Delete(list, i, i+1)
	default:
		list[i].Amount = amount
		return list
	}
}

func setTokenAllowance(list []types.TokenAllowanceEntry, token types.TokenID, spender types.AccountID, amount int64) []types.TokenAllowanceEntry {
	i := slices.IndexFunc(list, func(e types.TokenAllowanceEntry) bool { return e.TokenID == token && e.SpenderID == spender })
	switch {
	case i < 0 && amount == 0:
		return list
	case i < 0:
		return append(list, types.TokenAllowanceEntry{TokenID: token, SpenderID: spender, Amount: amount})
	case amount == 0:
		return slices.Delete(list, i, i+1)
	default:
		list[i].Amount = amount
		return list
	}
}

func setApproveForAll(list []types.ApproveForAllAllowanceEntry, token types.TokenID, spender types.AccountID, approved bool) []types.ApproveForAllAllowanceEntry {
	i := slices.IndexFunc(list, func(e types.ApproveForAllAllowanceEntry) bool { return e.TokenID == token && e.SpenderID == spender })
	switch {
	case i < 0 && approved:
		return append(list, types.ApproveForAllAllowanceEntry{TokenID: token, SpenderID: spender})
	case i >= 0 && !approved:
		return slices.Delete(list, i, i+1)
	default:
		return list
	}
}

func cryptoAllowance(acc *types.Account, spender types.AccountID) int64 {
	for _, e := range acc.CryptoAllowances {
		if e.SpenderID == spender {
			return e.Amount
		}
	}
	return 0
}

func tokenAllowance(acc *types.Account, token types.TokenID, spender types.AccountID) int64 {
	for _, e := range acc.TokenAllowances {
		if e.TokenID == token && e.SpenderID == spender {
			return e.Amount
		}
	}
	return 0
}
