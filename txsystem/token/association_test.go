package token

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hashgraph/hedera-services-sub009/status"
	"github.com/hashgraph/hedera-services-sub009/types"
)

func associateBody(account types.AccountID, tokens ...types.TokenID) types.TransactionBody {
	return types.TransactionBody{TokenAssociate: &types.TokenAssociateBody{AccountID: account, Tokens: tokens}}
}

func dissociateBody(account types.AccountID, tokens ...types.TokenID) types.TransactionBody {
	return types.TransactionBody{TokenDissociate: &types.TokenDissociateBody{AccountID: account, Tokens: tokens}}
}

func TestAssociate_InsertsAtHead(t *testing.T) {
	f := newFixture(t)
	f.account(carolID)
	f.account(bobID)
	f.token(ftID, carolID)
	f.token(ft2ID, carolID)
	f.start()

	rec := f.execute(associateBody(bobID, ftID, ft2ID), bobID)
	f.requireStatus(status.OK, rec)

	require.Equal(t, []types.TokenID{ft2ID, ftID}, f.relationTokens(bobID))
	first := f.getRelation(bobID, ftID)
	require.Equal(t, ft2ID, first.PreviousToken)
	require.Zero(t, first.NextToken)
	bob := f.getAccount(bobID)
	require.EqualValues(t, 2, bob.NumberAssociations)
	require.True(t, first.KycGranted)
	require.False(t, first.Frozen)
}

func TestAssociate_OrphanedHead(t *testing.T) {
	f := newFixture(t)
	f.account(carolID)
	f.account(bobID, func(a *types.Account) { a.HeadTokenID = 9999 })
	f.token(ftID, carolID)
	f.start()

	f.requireStatus(status.OK, f.execute(associateBody(bobID, ftID), bobID))
	require.Equal(t, []types.TokenID{ftID}, f.relationTokens(bobID))
}

func TestAssociate_DefaultFlags(t *testing.T) {
	var tests = []struct {
		name          string
		freezeKey     types.Key
		kycKey        types.Key
		frozenDefault bool
		wantFrozen    bool
		wantKyc       bool
	}{
		{name: "no keys", wantKyc: true},
		{name: "no keys, frozen by default", frozenDefault: true, wantKyc: true},
		{name: "freeze key, not frozen by default", freezeKey: "freeze", wantKyc: true},
		{name: "freeze key, frozen by default", freezeKey: "freeze", frozenDefault: true, wantFrozen: true, wantKyc: true},
		{name: "kyc key", kycKey: "kyc"},
		{name: "all set", freezeKey: "freeze", kycKey: "kyc", frozenDefault: true, wantFrozen: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.account(carolID)
			f.account(bobID)
			f.token(ftID, carolID, func(t *types.Token) {
				t.FreezeKey = tt.freezeKey
				t.KycKey = tt.kycKey
				t.AccountsFrozenByDefault = tt.frozenDefault
			})
			f.start()

			f.requireStatus(status.OK, f.execute(associateBody(bobID, ftID), bobID))
			rel := f.getRelation(bobID, ftID)
			require.Equal(t, tt.wantFrozen, rel.Frozen)
			require.Equal(t, tt.wantKyc, rel.KycGranted)
		})
	}
}

func TestAssociate_Errors(t *testing.T) {
	var tests = []struct {
		name    string
		setup   func(f *fixture)
		body    types.TransactionBody
		signers []types.AccountID
		want    status.Code
	}{
		{
			name:    "repeated token",
			body:    associateBody(bobID, ftID, ftID),
			signers: []types.AccountID{bobID},
			want:    status.TokenIDRepeatedInTokenList,
		},
		{
			name:    "missing account",
			body:    associateBody(aliceID, ftID),
			signers: []types.AccountID{aliceID},
			want:    status.InvalidAccountID,
		},
		{
			name: "missing signature",
			body: associateBody(bobID, ftID),
			want: status.InvalidSignature,
		},
		{
			name:    "unknown token",
			body:    associateBody(bobID, 4242),
			signers: []types.AccountID{bobID},
			want:    status.InvalidTokenID,
		},
		{
			name:    "already associated",
			setup:   func(f *fixture) { f.associate(bobID, ftID) },
			body:    associateBody(bobID, ftID),
			signers: []types.AccountID{bobID},
			want:    status.TokenAlreadyAssociatedToAccount,
		},
		{
			name: "deleted token",
			setup: func(f *fixture) {
				f.token(ft2ID, carolID, func(t *types.Token) { t.Deleted = true })
			},
			body:    associateBody(bobID, ft2ID),
			signers: []types.AccountID{bobID},
			want:    status.TokenWasDeleted,
		},
		{
			name: "paused token",
			setup: func(f *fixture) {
				f.token(ft2ID, carolID, func(t *types.Token) { t.Paused = true })
			},
			body:    associateBody(bobID, ft2ID),
			signers: []types.AccountID{bobID},
			want:    status.TokenIsPaused,
		},
		{
			name: "per account limit",
			setup: func(f *fixture) {
				f.token(ft2ID, carolID)
				f.cfg.Entities.LimitTokenAssociations = true
				f.cfg.Tokens.MaxPerAccount = 1
			},
			body:    associateBody(bobID, ftID, ft2ID),
			signers: []types.AccountID{bobID},
			want:    status.TokensPerAccountLimitExceeded,
		},
		{
			name:    "global limit",
			setup:   func(f *fixture) { f.cfg.Tokens.MaxAggregateRels = 1 },
			body:    associateBody(bobID, ftID),
			signers: []types.AccountID{bobID},
			want:    status.MaxEntitiesInPriceRegimeHaveBeenCreated,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.account(carolID)
			f.account(bobID)
			f.token(ftID, carolID)
			if tt.setup != nil {
				tt.setup(f)
			}
			f.start()
			rec := f.execute(tt.body, tt.signers...)
			f.requireStatus(tt.want, rec)
			if tt.want == status.TokenAlreadyAssociatedToAccount {
				require.Equal(t, []types.TokenID{ftID}, f.relationTokens(bobID))
			}
		})
	}
}

func TestDissociate(t *testing.T) {
	setup := func(t *testing.T) *fixture {
		f := newFixture(t)
		f.account(carolID)
		f.account(bobID)
		f.token(ftID, carolID)
		f.token(ft2ID, carolID)
		f.token(nftID, carolID, nonFungible)
		f.associate(bobID, ftID, ft2ID, nftID)
		return f
	}

	t.Run("middle of the list", func(t *testing.T) {
		f := setup(t).start()
		f.requireStatus(status.OK, f.execute(dissociateBody(bobID, ft2ID), bobID))
		require.Equal(t, []types.TokenID{nftID, ftID}, f.relationTokens(bobID))
		require.Nil(t, f.findRelation(bobID, ft2ID))
		require.EqualValues(t, 2, f.getAccount(bobID).NumberAssociations)
	})
	t.Run("whole list", func(t *testing.T) {
		f := setup(t).start()
		f.requireStatus(status.OK, f.execute(dissociateBody(bobID, ftID, nftID, ft2ID), bobID))
		require.Empty(t, f.relationTokens(bobID))
		bob := f.getAccount(bobID)
		require.Zero(t, bob.HeadTokenID)
		require.Zero(t, bob.NumberAssociations)
	})
	t.Run("non-zero balance", func(t *testing.T) {
		f := setup(t)
		f.balance(bobID, ftID, 5)
		f.start()
		f.requireStatus(status.TransactionRequiresZeroTokenBalances, f.execute(dissociateBody(bobID, ftID), bobID))
		require.Equal(t, []types.TokenID{nftID, ft2ID, ftID}, f.relationTokens(bobID))
	})
	t.Run("balance of deleted token is burned", func(t *testing.T) {
		f := setup(t)
		f.balance(bobID, ftID, 5)
		tok := f.getToken(ftID)
		tok.Deleted = true
		require.NoError(t, f.stores.Tokens.Put(tok))
		f.start()
		f.requireStatus(status.OK, f.execute(dissociateBody(bobID, ftID), bobID))
		require.Zero(t, f.getAccount(bobID).NumberPositiveBalances)
	})
	t.Run("treasury", func(t *testing.T) {
		f := setup(t).start()
		f.requireStatus(status.AccountIsTreasury, f.execute(dissociateBody(carolID, ftID), carolID))
	})
	t.Run("frozen", func(t *testing.T) {
		f := setup(t)
		rel := f.getRelation(bobID, ftID)
		rel.Frozen = true
		require.NoError(t, f.stores.Relations.Put(rel))
		f.start()
		f.requireStatus(status.AccountFrozenForToken, f.execute(dissociateBody(bobID, ftID), bobID))
	})
	t.Run("not associated", func(t *testing.T) {
		f := setup(t).start()
		f.requireStatus(status.TokenNotAssociatedToAccount, f.execute(dissociateBody(payerID, ftID)))
	})
}
