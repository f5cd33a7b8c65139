package validators

import (
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/hashgraph/hedera-services-sub009/config"
	"github.com/hashgraph/hedera-services-sub009/status"
	"github.com/hashgraph/hedera-services-sub009/txsystem"
	"github.com/hashgraph/hedera-services-sub009/types"
)

func requireCode(t *testing.T, want status.Code, err error) {
	t.Helper()
	if want == status.OK {
		require.NoError(t, err)
		return
	}
	code, ok := txsystem.CodeOf(err)
	require.True(t, ok, "expected coded error, got %v", err)
	require.Equal(t, want, code, "got %s", code)
}

func TestTransferPureChecks(t *testing.T) {
	var tests = []struct {
		name      string
		transfers []types.AccountAmount
		tokens    []types.TokenTransferList
		wantCode  status.Code
	}{
		{name: "empty body", wantCode: status.OK},
		{
			name:      "zero sum",
			transfers: []types.AccountAmount{{AccountID: 1, Amount: -10}, {AccountID: 2, Amount: 10}},
			wantCode:  status.OK,
		},
		{
			name:      "alias",
			transfers: []types.AccountAmount{{AccountID: 1, Amount: -10}, {Alias: "alice", Amount: 10}},
			wantCode:  status.OK,
		},
		{
			name:      "not zero sum",
			transfers: []types.AccountAmount{{AccountID: 1, Amount: -10}, {AccountID: 2, Amount: 11}},
			wantCode:  status.InvalidAccountAmounts,
		},
		{
			name:      "credits wrapping around to zero",
			transfers: []types.AccountAmount{{AccountID: 1, Amount: math.MaxInt64}, {AccountID: 2, Amount: math.MaxInt64}, {AccountID: 3, Amount: 2}},
			wantCode:  status.InvalidAccountAmounts,
		},
		{
			name:      "debits wrapping around to zero",
			transfers: []types.AccountAmount{{AccountID: 1, Amount: math.MinInt64}, {AccountID: 2, Amount: math.MinInt64}},
			wantCode:  status.InvalidAccountAmounts,
		},
		{
			name:      "missing account",
			transfers: []types.AccountAmount{{Amount: -10}, {AccountID: 2, Amount: 10}},
			wantCode:  status.InvalidAccountID,
		},
		{
			name:      "repeated account",
			transfers: []types.AccountAmount{{AccountID: 1, Amount: -10}, {AccountID: 1, Amount: 10}},
			wantCode:  status.AccountRepeatedInAccountAmounts,
		},
		{
			name:      "repeated alias",
			transfers: []types.AccountAmount{{Alias: "a", Amount: -10}, {Alias: "a", Amount: 10}},
			wantCode:  status.AccountRepeatedInAccountAmounts,
		},
		{
			name:     "missing token",
			tokens:   []types.TokenTransferList{{Transfers: []types.AccountAmount{{AccountID: 1, Amount: -1}, {AccountID: 2, Amount: 1}}}},
			wantCode: status.InvalidTokenID,
		},
		{
			name:     "empty token list",
			tokens:   []types.TokenTransferList{{TokenID: 5}},
			wantCode: status.EmptyTokenTransferAccountAmounts,
		},
		{
			name: "mixed token list",
			tokens: []types.TokenTransferList{{
				TokenID:      5,
				Transfers:    []types.AccountAmount{{AccountID: 1, Amount: -1}, {AccountID: 2, Amount: 1}},
				NftTransfers: []types.NftTransfer{{SenderID: 1, ReceiverID: 2, Serial: 1}},
			}},
			wantCode: status.InvalidAccountAmounts,
		},
		{
			name:     "token not zero sum",
			tokens:   []types.TokenTransferList{{TokenID: 5, Transfers: []types.AccountAmount{{AccountID: 1, Amount: -1}, {AccountID: 2, Amount: 2}}}},
			wantCode: status.TransfersNotZeroSumForToken,
		},
		{
			name: "token credits wrapping around to zero",
			tokens: []types.TokenTransferList{{TokenID: 5, Transfers: []types.AccountAmount{
				{AccountID: 1, Amount: math.MaxInt64}, {AccountID: 2, Amount: math.MaxInt64}, {AccountID: 3, Amount: 2},
			}}},
			wantCode: status.TransfersNotZeroSumForToken,
		},
		{
			name:     "token missing account",
			tokens:   []types.TokenTransferList{{TokenID: 5, Transfers: []types.AccountAmount{{Amount: -1}, {AccountID: 2, Amount: 1}}}},
			wantCode: status.InvalidTransferAccountID,
		},
		{
			name:     "token repeated account",
			tokens:   []types.TokenTransferList{{TokenID: 5, Transfers: []types.AccountAmount{{AccountID: 2, Amount: -1}, {AccountID: 2, Amount: 1}}}},
			wantCode: status.AccountRepeatedInAccountAmounts,
		},
		{
			name:     "nft serial",
			tokens:   []types.TokenTransferList{{TokenID: 5, NftTransfers: []types.NftTransfer{{SenderID: 1, ReceiverID: 2}}}},
			wantCode: status.InvalidTokenNftSerialNumber,
		},
		{
			name:     "nft receiver",
			tokens:   []types.TokenTransferList{{TokenID: 5, NftTransfers: []types.NftTransfer{{SenderID: 1, Serial: 1}}}},
			wantCode: status.InvalidTransferAccountID,
		},
		{
			name: "repeated nft token",
			tokens: []types.TokenTransferList{
				{TokenID: 5, NftTransfers: []types.NftTransfer{{SenderID: 1, ReceiverID: 2, Serial: 1}}},
				{TokenID: 5, NftTransfers: []types.NftTransfer{{SenderID: 1, ReceiverID: 2, Serial: 2}}},
			},
			wantCode: status.TokenIDRepeatedInTokenList,
		},
		{
			name: "repeated fungible token",
			tokens: []types.TokenTransferList{
				{TokenID: 5, Transfers: []types.AccountAmount{{AccountID: 1, Amount: -1}, {AccountID: 2, Amount: 1}}},
				{TokenID: 5, Transfers: []types.AccountAmount{{AccountID: 1, Amount: -2}, {AccountID: 2, Amount: 2}}},
			},
			wantCode: status.OK,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			requireCode(t, tt.wantCode, TransferPureChecks(tt.transfers, tt.tokens))
		})
	}
}

func TestTransferPureChecks_ZeroSumProperty(t *testing.T) {
	amounts := rapid.OneOf(
		rapid.Int64Range(-1_000_000, 1_000_000),
		rapid.SampledFrom([]int64{math.MaxInt64, math.MinInt64, math.MaxInt64 - 1, math.MinInt64 + 1}),
		rapid.Int64(),
	)
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 10).Draw(t, "n")
		transfers := make([]types.AccountAmount, n)
		sum := new(big.Int)
		small := true
		for i := range transfers {
			amount := amounts.Draw(t, "amount")
			transfers[i] = types.AccountAmount{AccountID: types.AccountID(i + 1), Amount: amount}
			sum.Add(sum, big.NewInt(amount))
			small = small && amount >= -1_000_000 && amount <= 1_000_000
		}
		err := TransferPureChecks(transfers, nil)
		if err == nil {
			require.Zero(t, sum.Sign(), "accepted list sums to %s", sum)
			return
		}
		code, _ := txsystem.CodeOf(err)
		require.Equal(t, status.InvalidAccountAmounts, code)
		if !small {
			return
		}
		require.NotZero(t, sum.Sign())

		// balancing the list with one more account makes it valid
		transfers = append(transfers, types.AccountAmount{AccountID: types.AccountID(n + 1), Amount: -sum.Int64()})
		require.NoError(t, TransferPureChecks(transfers, nil))
	})
}

func TestAddAmount(t *testing.T) {
	var tests = []struct {
		a, b   int64
		want   int64
		wantOk bool
	}{
		{a: 1, b: 2, want: 3, wantOk: true},
		{a: math.MaxInt64, b: 0, want: math.MaxInt64, wantOk: true},
		{a: math.MaxInt64, b: 1, wantOk: false},
		{a: math.MaxInt64, b: math.MinInt64, want: -1, wantOk: true},
		{a: math.MinInt64, b: -1, wantOk: false},
		{a: math.MinInt64 + 1, b: -1, want: math.MinInt64, wantOk: true},
	}
	for _, tt := range tests {
		got, ok := AddAmount(tt.a, tt.b)
		require.Equal(t, tt.wantOk, ok, "%d + %d", tt.a, tt.b)
		require.Equal(t, tt.want, got, "%d + %d", tt.a, tt.b)
	}
}

func TestValidateTransferLimits(t *testing.T) {
	cfg := config.Default()
	cfg.Ledger.Transfers.MaxLen = 2
	cfg.Ledger.TokenTransfers.MaxLen = 2
	cfg.Ledger.NftTransfers.MaxLen = 1

	aa := []types.AccountAmount{{AccountID: 1}, {AccountID: 2}}
	requireCode(t, status.OK, ValidateTransferLimits(&cfg, aa, nil))
	requireCode(t, status.TransferListSizeLimitExceeded, ValidateTransferLimits(&cfg, append(aa, types.AccountAmount{AccountID: 3}), nil))

	tokens := []types.TokenTransferList{{TokenID: 1, Transfers: aa}, {TokenID: 2, Transfers: aa[:1]}}
	requireCode(t, status.TokenTransferListSizeLimitExceeded, ValidateTransferLimits(&cfg, nil, tokens))

	nfts := []types.TokenTransferList{{TokenID: 1, NftTransfers: make([]types.NftTransfer, 2)}}
	requireCode(t, status.BatchSizeLimitExceeded, ValidateTransferLimits(&cfg, nil, nfts))

	cfg.Tokens.Nfts.AreEnabled = false
	requireCode(t, status.NotSupported, ValidateTransferLimits(&cfg, nil, nfts[:1]))
}

func TestApproveAllowancePureChecks(t *testing.T) {
	yes := true
	var tests = []struct {
		name     string
		body     *types.CryptoApproveAllowanceBody
		wantCode status.Code
	}{
		{name: "nil", body: nil, wantCode: status.EmptyAllowances},
		{name: "empty", body: &types.CryptoApproveAllowanceBody{}, wantCode: status.EmptyAllowances},
		{
			name:     "negative crypto",
			body:     &types.CryptoApproveAllowanceBody{CryptoAllowances: []types.CryptoAllowance{{SpenderID: 2, Amount: -1}}},
			wantCode: status.NegativeAllowanceAmount,
		},
		{
			name:     "negative token",
			body:     &types.CryptoApproveAllowanceBody{TokenAllowances: []types.TokenAllowance{{TokenID: 1, SpenderID: 2, Amount: -1}}},
			wantCode: status.NegativeAllowanceAmount,
		},
		{
			name:     "missing crypto spender",
			body:     &types.CryptoApproveAllowanceBody{CryptoAllowances: []types.CryptoAllowance{{Amount: 1}}},
			wantCode: status.InvalidAllowanceSpenderID,
		},
		{
			name:     "missing nft spender",
			body:     &types.CryptoApproveAllowanceBody{NftAllowances: []types.NftAllowance{{TokenID: 1, ApprovedForAll: &yes}}},
			wantCode: status.InvalidAllowanceSpenderID,
		},
		{
			name:     "missing token",
			body:     &types.CryptoApproveAllowanceBody{TokenAllowances: []types.TokenAllowance{{SpenderID: 2, Amount: 1}}},
			wantCode: status.InvalidTokenID,
		},
		{
			name: "valid",
			body: &types.CryptoApproveAllowanceBody{
				CryptoAllowances: []types.CryptoAllowance{{SpenderID: 2}},
				TokenAllowances:  []types.TokenAllowance{{TokenID: 1, SpenderID: 2, Amount: 5}},
				NftAllowances:    []types.NftAllowance{{TokenID: 3, SpenderID: 2, SerialNumbers: []int64{1}}},
			},
			wantCode: status.OK,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			requireCode(t, tt.wantCode, ApproveAllowancePureChecks(tt.body))
		})
	}
}

func TestDeleteAllowancePureChecks(t *testing.T) {
	requireCode(t, status.EmptyAllowances, DeleteAllowancePureChecks(&types.CryptoDeleteAllowanceBody{}))
	requireCode(t, status.EmptyAllowances, DeleteAllowancePureChecks(&types.CryptoDeleteAllowanceBody{
		NftAllowances: []types.NftRemoveAllowance{{TokenID: 1}},
	}))
	requireCode(t, status.InvalidTokenID, DeleteAllowancePureChecks(&types.CryptoDeleteAllowanceBody{
		NftAllowances: []types.NftRemoveAllowance{{SerialNumbers: []int64{1}}},
	}))
	requireCode(t, status.OK, DeleteAllowancePureChecks(&types.CryptoDeleteAllowanceBody{
		NftAllowances: []types.NftRemoveAllowance{{TokenID: 1, SerialNumbers: []int64{1, 2}}},
	}))
}

func TestAggregateAllowances(t *testing.T) {
	no := false
	body := &types.CryptoApproveAllowanceBody{
		CryptoAllowances: []types.CryptoAllowance{{SpenderID: 2}, {SpenderID: 3}},
		TokenAllowances:  []types.TokenAllowance{{TokenID: 1, SpenderID: 2}},
		NftAllowances:    []types.NftAllowance{{TokenID: 3, SpenderID: 2, SerialNumbers: []int64{1, 2}, ApprovedForAll: &no}},
	}
	require.Equal(t, 6, AggregateApproveAllowances(body))
	require.Equal(t, 3, AggregateDeleteAllowances(&types.CryptoDeleteAllowanceBody{
		NftAllowances: []types.NftRemoveAllowance{{SerialNumbers: []int64{1}}, {SerialNumbers: []int64{4, 5}}},
	}))
	requireCode(t, status.OK, ValidateAllowanceCount(6, 6))
	requireCode(t, status.MaxAllowancesExceeded, ValidateAllowanceCount(7, 6))
}

func TestValidateFungibleAllowanceAmount(t *testing.T) {
	requireCode(t, status.NftInFungibleTokenAllowances, ValidateFungibleAllowanceAmount(&types.Token{Type: types.NonFungibleUnique}, 1))
	finite := &types.Token{SupplyType: types.Finite, MaxSupply: 100}
	requireCode(t, status.OK, ValidateFungibleAllowanceAmount(finite, 100))
	requireCode(t, status.AmountExceedsTokenMaxSupply, ValidateFungibleAllowanceAmount(finite, 101))
	requireCode(t, status.OK, ValidateFungibleAllowanceAmount(&types.Token{}, 1<<40))
}

func TestValidateDelegatingSpender(t *testing.T) {
	yes := true
	owner := &types.Account{ApproveForAllNftAllowances: []types.ApproveForAllAllowanceEntry{{TokenID: 7, SpenderID: 3}}}
	requireCode(t, status.OK, ValidateDelegatingSpender(owner, &types.NftAllowance{TokenID: 7}))
	requireCode(t, status.OK, ValidateDelegatingSpender(owner, &types.NftAllowance{TokenID: 7, DelegatingSpender: 3}))
	requireCode(t, status.DelegatingSpenderDoesNotHaveApproveForAll, ValidateDelegatingSpender(owner, &types.NftAllowance{TokenID: 8, DelegatingSpender: 3}))
	requireCode(t, status.DelegatingSpenderCannotGrantApproveForAll, ValidateDelegatingSpender(owner, &types.NftAllowance{TokenID: 7, DelegatingSpender: 3, ApprovedForAll: &yes}))
}

func TestPendingAirdropIDsPureChecks(t *testing.T) {
	fungible := types.PendingAirdropIDForToken(1, 2, 5)
	nft := types.PendingAirdropIDForNft(1, 2, types.NftID{TokenID: 6, Serial: 1})
	var tests = []struct {
		name     string
		ids      []types.PendingAirdropID
		wantCode status.Code
	}{
		{name: "empty", wantCode: status.EmptyPendingAirdropIDList},
		{name: "valid", ids: []types.PendingAirdropID{fungible, nft}, wantCode: status.OK},
		{name: "repeated", ids: []types.PendingAirdropID{fungible, nft, fungible}, wantCode: status.PendingAirdropIDRepeated},
		{name: "missing sender", ids: []types.PendingAirdropID{types.PendingAirdropIDForToken(0, 2, 5)}, wantCode: status.InvalidPendingAirdropID},
		{name: "missing receiver", ids: []types.PendingAirdropID{types.PendingAirdropIDForToken(1, 0, 5)}, wantCode: status.InvalidPendingAirdropID},
		{name: "no token", ids: []types.PendingAirdropID{{SenderID: 1, ReceiverID: 2}}, wantCode: status.InvalidPendingAirdropID},
		{
			name:     "both tokens",
			ids:      []types.PendingAirdropID{{SenderID: 1, ReceiverID: 2, FungibleToken: 5, NonFungibleToken: types.NftID{TokenID: 6, Serial: 1}}},
			wantCode: status.InvalidPendingAirdropID,
		},
		{
			name:     "nft serial",
			ids:      []types.PendingAirdropID{types.PendingAirdropIDForNft(1, 2, types.NftID{TokenID: 6, Serial: -1})},
			wantCode: status.InvalidTokenNftSerialNumber,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			requireCode(t, tt.wantCode, PendingAirdropIDsPureChecks(tt.ids))
		})
	}
	requireCode(t, status.PendingAirdropIDListTooLong, ValidatePendingAirdropsLimit([]types.PendingAirdropID{fungible, nft}, 1))
	requireCode(t, status.OK, ValidatePendingAirdropsLimit([]types.PendingAirdropID{fungible, nft}, 2))
}

func TestAirdropPureChecks(t *testing.T) {
	requireCode(t, status.EmptyTokenTransferBody, AirdropPureChecks(&types.TokenAirdropBody{}))
	requireCode(t, status.OK, AirdropPureChecks(&types.TokenAirdropBody{TokenTransfers: []types.TokenTransferList{
		{TokenID: 5, Transfers: []types.AccountAmount{{AccountID: 1, Amount: -3}, {AccountID: 2, Amount: 1}, {AccountID: 3, Amount: 2}}},
	}}))
	requireCode(t, status.InvalidAccountAmounts, AirdropPureChecks(&types.TokenAirdropBody{TokenTransfers: []types.TokenTransferList{
		{TokenID: 5, Transfers: []types.AccountAmount{{AccountID: 1, Amount: -1}, {AccountID: 4, Amount: -1}, {AccountID: 2, Amount: 2}}},
	}}))
	requireCode(t, status.TransfersNotZeroSumForToken, AirdropPureChecks(&types.TokenAirdropBody{TokenTransfers: []types.TokenTransferList{
		{TokenID: 5, Transfers: []types.AccountAmount{{AccountID: 1, Amount: -1}, {AccountID: 2, Amount: 2}}},
	}}))

	body := &types.TokenAirdropBody{TokenTransfers: []types.TokenTransferList{
		{TokenID: 5, Transfers: make([]types.AccountAmount, 2)},
		{TokenID: 6, NftTransfers: make([]types.NftTransfer, 2)},
	}}
	requireCode(t, status.OK, ValidateAirdropLimit(body, 4))
	requireCode(t, status.TokenReferenceListSizeLimitExceeded, ValidateAirdropLimit(body, 3))
}

func TestCustomFees(t *testing.T) {
	fallback := &types.Token{CustomFees: []types.CustomFee{{
		CollectorID: 9,
		Royalty:     &types.RoyaltyFee{Numerator: 1, Denominator: 10, FallbackFee: &types.FixedFee{Amount: 5}},
	}}}
	requireCode(t, status.TokenAirdropWithFallbackRoyalty, ValidateAirdropCustomFees(fallback))
	requireCode(t, status.OK, ValidateCustomFees(fallback.CustomFees))

	plain := &types.Token{CustomFees: []types.CustomFee{{CollectorID: 9, Fixed: &types.FixedFee{Amount: 1}}}}
	requireCode(t, status.OK, ValidateAirdropCustomFees(plain))
	requireCode(t, status.OK, ValidateCustomFees(plain.CustomFees))


	var tests = []struct {
		name     string
		fee      types.CustomFee
		wantCode status.Code
	}{
		{name: "no fee kind", fee: types.CustomFee{CollectorID: 9}, wantCode: status.CustomFeeNotFullySpecified},
		{
			name:     "two fee kinds",
			fee:      types.CustomFee{CollectorID: 9, Fixed: &types.FixedFee{Amount: 1}, Fractional: &types.FractionalFee{Numerator: 1, Denominator: 2}},
			wantCode: status.CustomFeeNotFullySpecified,
		},
		{name: "no collector", fee: types.CustomFee{Fixed: &types.FixedFee{Amount: 1}}, wantCode: status.InvalidCustomFeeCollector},
		{name: "fixed zero", fee: types.CustomFee{CollectorID: 9, Fixed: &types.FixedFee{}}, wantCode: status.CustomFeeMustBePositive},
		{
			name:     "fraction divides by zero",
			fee:      types.CustomFee{CollectorID: 9, Fractional: &types.FractionalFee{Numerator: 1}},
			wantCode: status.FractionDividesByZero,
		},
		{
			name:     "negative fraction",
			fee:      types.CustomFee{CollectorID: 9, Fractional: &types.FractionalFee{Numerator: -1, Denominator: 2}},
			wantCode: status.CustomFeeMustBePositive,
		},
		{
			name:     "max less than min",
			fee:      types.CustomFee{CollectorID: 9, Fractional: &types.FractionalFee{Numerator: 1, Denominator: 2, Minimum: 5, Maximum: 4}},
			wantCode: status.FractionalFeeMaxAmountLessThanMinAmount,
		},
		{
			name:     "royalty above one",
			fee:      types.CustomFee{CollectorID: 9, Royalty: &types.RoyaltyFee{Numerator: 3, Denominator: 2}},
			wantCode: status.RoyaltyFractionCannotExceedOne,
		},
		{
			name:     "royalty divides by zero",
			fee:      types.CustomFee{CollectorID: 9, Royalty: &types.RoyaltyFee{Numerator: 1}},
			wantCode: status.FractionDividesByZero,
		},
		{
			name:     "royalty fallback zero",
			fee:      types.CustomFee{CollectorID: 9, Royalty: &types.RoyaltyFee{Numerator: 1, Denominator: 2, FallbackFee: &types.FixedFee{}}},
			wantCode: status.CustomFeeMustBePositive,
		},
		{
			name:     "fractional ok",
			fee:      types.CustomFee{CollectorID: 9, Fractional: &types.FractionalFee{Numerator: 1, Denominator: 2, Minimum: 1, Maximum: 4}},
			wantCode: status.OK,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			requireCode(t, tt.wantCode, ValidateCustomFees([]types.CustomFee{tt.fee}))
		})
	}
}

func TestTokenListPureChecks(t *testing.T) {
	requireCode(t, status.OK, TokenListPureChecks(nil))
	requireCode(t, status.OK, TokenListPureChecks([]types.TokenID{1, 2}))
	requireCode(t, status.InvalidTokenID, TokenListPureChecks([]types.TokenID{1, 0}))
	requireCode(t, status.TokenIDRepeatedInTokenList, TokenListPureChecks([]types.TokenID{1, 2, 1}))
}

func TestTokenReferencesPureChecks(t *testing.T) {
	nft := types.TokenReference{Nft: types.NftID{TokenID: 3, Serial: 1}}
	requireCode(t, status.EmptyTokenReferenceList, TokenReferencesPureChecks(nil))
	requireCode(t, status.OK, TokenReferencesPureChecks([]types.TokenReference{{FungibleToken: 1}, nft}))
	requireCode(t, status.InvalidTokenID, TokenReferencesPureChecks([]types.TokenReference{{}}))
	requireCode(t, status.InvalidTokenID, TokenReferencesPureChecks([]types.TokenReference{{FungibleToken: 5, Nft: types.NftID{TokenID: 6, Serial: 1}}}))
	requireCode(t, status.InvalidNftID, TokenReferencesPureChecks([]types.TokenReference{{Nft: types.NftID{Serial: 1}}}))
	requireCode(t, status.InvalidTokenNftSerialNumber, TokenReferencesPureChecks([]types.TokenReference{{Nft: types.NftID{TokenID: 3}}}))
	requireCode(t, status.TokenReferenceRepeated, TokenReferencesPureChecks([]types.TokenReference{nft, {FungibleToken: 1}, nft}))
}

type expiry bool

func (e expiry) IsDetached(*types.Account) bool { return bool(e) }

func TestValidateUsable(t *testing.T) {
	requireCode(t, status.InvalidTokenID, ValidateTokenUsable(nil))
	requireCode(t, status.TokenWasDeleted, ValidateTokenUsable(&types.Token{Deleted: true, Paused: true}))
	requireCode(t, status.TokenIsPaused, ValidateTokenUsable(&types.Token{Paused: true}))
	requireCode(t, status.OK, ValidateTokenUsable(&types.Token{}))

	requireCode(t, status.InvalidTransferAccountID, ValidateAccountUsable(nil, expiry(false), status.InvalidTransferAccountID))
	requireCode(t, status.AccountDeleted, ValidateAccountUsable(&types.Account{Deleted: true}, expiry(true), status.InvalidAccountID))
	requireCode(t, status.AccountExpiredAndPendingRemoval, ValidateAccountUsable(&types.Account{}, expiry(true), status.InvalidAccountID))
	requireCode(t, status.OK, ValidateAccountUsable(&types.Account{}, expiry(false), status.InvalidAccountID))
}
