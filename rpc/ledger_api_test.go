package rpc

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	testobserve "github.com/hashgraph/hedera-services-sub009/internal/testutils/observability"
	"github.com/hashgraph/hedera-services-sub009/state"
	"github.com/hashgraph/hedera-services-sub009/store"
	"github.com/hashgraph/hedera-services-sub009/types"
)

const (
	aliceID types.AccountID = 1002
	bobID   types.AccountID = 1003
	ftID    types.TokenID   = 2001
	ft2ID   types.TokenID   = 2002
	nftID   types.TokenID   = 2003
)

type testLedger struct {
	st *state.State
}

func (l testLedger) Snapshot() *state.Snapshot { return l.st.Snapshot() }

func (l testLedger) SerializeState(w io.Writer) error { return l.st.Serialize(w) }

/*
newTestLedger commits round 5 with alice associated with three tokens
(list order nft, ft2, ft) and two pending airdrops sent by alice.
*/
func newTestLedger(t *testing.T) testLedger {
	st := state.NewEmptyState(state.WithValueConstructor(store.NewValue))
	w := store.NewWritable(st)
	ftAirdrop := types.PendingAirdropIDForToken(aliceID, bobID, ftID)
	nftAirdrop := types.PendingAirdropIDForNft(aliceID, bobID, types.NftID{TokenID: nftID, Serial: 1})

	require.NoError(t, w.Accounts.Put(&types.Account{
		AccountID:             aliceID,
		Alias:                 "alice",
		Balance:               100,
		HeadTokenID:           nftID,
		NumberAssociations:    3,
		HeadPendingAirdropID:  &nftAirdrop,
		NumberPendingAirdrops: 2,
	}))
	require.NoError(t, w.Accounts.Put(&types.Account{AccountID: bobID}))
	require.NoError(t, w.Tokens.Put(&types.Token{TokenID: ftID, TreasuryID: bobID, TotalSupply: 1000}))
	require.NoError(t, w.Relations.Put(&types.TokenRelation{AccountID: aliceID, TokenID: nftID, Balance: 1, NextToken: ft2ID}))
	require.NoError(t, w.Relations.Put(&types.TokenRelation{AccountID: aliceID, TokenID: ft2ID, PreviousToken: nftID, NextToken: ftID}))
	require.NoError(t, w.Relations.Put(&types.TokenRelation{AccountID: aliceID, TokenID: ftID, Balance: 7, PreviousToken: ft2ID}))
	require.NoError(t, w.Nfts.Put(&types.Nft{NftID: types.NftID{TokenID: nftID, Serial: 1}, OwnerID: aliceID}))
	require.NoError(t, w.Airdrops.Put(&types.AccountPendingAirdrop{ID: nftAirdrop, NextAirdrop: &ftAirdrop}))
	require.NoError(t, w.Airdrops.Put(&types.AccountPendingAirdrop{ID: ftAirdrop, Amount: 5, PreviousAirdrop: &nftAirdrop}))
	require.NoError(t, st.Commit(5))
	return testLedger{st: st}
}

func doGet(t *testing.T, ledger LedgerState, maxListLen int, path string) *httptest.ResponseRecorder {
	t.Helper()
	obs := testobserve.Default(t)
	req := httptest.NewRequest(http.MethodGet, path, nil)
	recorder := httptest.NewRecorder()
	NewHTTPServer(DefaultServerConfiguration(), obs, LedgerEndpoints(ledger, maxListLen, obs.Logger())).Handler.ServeHTTP(recorder, req)
	return recorder
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.Equal(t, applicationJson, rec.Header().Get(headerContentType))
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	return v
}

func TestLedgerAPI_Info(t *testing.T) {
	rec := doGet(t, newTestLedger(t), 10, "/api/v1/info")
	require.Equal(t, http.StatusOK, rec.Code)
	info := decode[infoResponse](t, rec)
	require.EqualValues(t, 5, info.Round)
	require.EqualValues(t, 2, info.Entities["account"])
	require.EqualValues(t, 1, info.Entities["alias"])
	require.EqualValues(t, 3, info.Entities["token_relation"])
	require.EqualValues(t, 2, info.Entities["pending_airdrop"])
}

func TestLedgerAPI_Account(t *testing.T) {
	ledger := newTestLedger(t)
	for _, path := range []string{"/api/v1/accounts/0.0.1002", "/api/v1/accounts/1002", "/api/v1/accounts/alice"} {
		rec := doGet(t, ledger, 10, path)
		require.Equal(t, http.StatusOK, rec.Code, path)
		acc := decode[types.Account](t, rec)
		require.Equal(t, aliceID, acc.AccountID)
		require.EqualValues(t, 100, acc.Balance)
	}

	for _, path := range []string{"/api/v1/accounts/0.0.5000", "/api/v1/accounts/nobody"} {
		rec := doGet(t, ledger, 10, path)
		require.Equal(t, http.StatusNotFound, rec.Code, path)
		require.Equal(t, "not found", decode[errorResponse](t, rec).Error)
	}
}

func TestLedgerAPI_Relations(t *testing.T) {
	ledger := newTestLedger(t)

	t.Run("all", func(t *testing.T) {
		rec := doGet(t, ledger, 10, "/api/v1/accounts/1002/relations")
		require.Equal(t, http.StatusOK, rec.Code)
		rsp := decode[relationsResponse](t, rec)
		require.Equal(t, []types.TokenID{nftID, ft2ID, ftID}, relationTokens(rsp))
		require.Zero(t, rsp.Next)
	})
	t.Run("capped by the maximum", func(t *testing.T) {
		rec := doGet(t, ledger, 2, "/api/v1/accounts/1002/relations?limit=50")
		require.Equal(t, http.StatusOK, rec.Code)
		rsp := decode[relationsResponse](t, rec)
		require.Equal(t, []types.TokenID{nftID, ft2ID}, relationTokens(rsp))
		require.Equal(t, ftID, rsp.Next)
	})
	t.Run("next page", func(t *testing.T) {
		rec := doGet(t, ledger, 10, "/api/v1/accounts/1002/relations?start=0.0.2002&limit=1")
		require.Equal(t, http.StatusOK, rec.Code)
		rsp := decode[relationsResponse](t, rec)
		require.Equal(t, []types.TokenID{ft2ID}, relationTokens(rsp))
		require.Equal(t, ftID, rsp.Next)
	})
	t.Run("no relations", func(t *testing.T) {
		rec := doGet(t, ledger, 10, "/api/v1/accounts/1003/relations")
		require.Equal(t, http.StatusOK, rec.Code)
		require.Empty(t, decode[relationsResponse](t, rec).Relations)
	})

	var tests = []struct {
		name string
		path string
		code int
	}{
		{name: "unknown account", path: "/api/v1/accounts/5000/relations", code: http.StatusNotFound},
		{name: "start not associated", path: "/api/v1/accounts/1002/relations?start=7", code: http.StatusNotFound},
		{name: "invalid start", path: "/api/v1/accounts/1002/relations?start=x", code: http.StatusBadRequest},
		{name: "invalid limit", path: "/api/v1/accounts/1002/relations?limit=0", code: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.code, doGet(t, ledger, 10, tt.path).Code)
		})
	}
}

func relationTokens(rsp relationsResponse) []types.TokenID {
	var res []types.TokenID
	for _, rel := range rsp.Relations {
		res = append(res, rel.TokenID)
	}
	return res
}

func TestLedgerAPI_Airdrops(t *testing.T) {
	ledger := newTestLedger(t)

	rec := doGet(t, ledger, 10, "/api/v1/accounts/alice/airdrops")
	require.Equal(t, http.StatusOK, rec.Code)
	rsp := decode[airdropsResponse](t, rec)
	require.Len(t, rsp.Airdrops, 2)
	require.False(t, rsp.Airdrops[0].ID.IsFungible())
	require.EqualValues(t, 5, rsp.Airdrops[1].Amount)
	require.False(t, rsp.Truncated)

	rec = doGet(t, ledger, 10, "/api/v1/accounts/alice/airdrops?limit=1")
	require.Equal(t, http.StatusOK, rec.Code)
	rsp = decode[airdropsResponse](t, rec)
	require.Len(t, rsp.Airdrops, 1)
	require.True(t, rsp.Truncated)

	require.Equal(t, http.StatusNotFound, doGet(t, ledger, 10, "/api/v1/accounts/5000/airdrops").Code)
}

func TestLedgerAPI_TokenAndNft(t *testing.T) {
	ledger := newTestLedger(t)

	rec := doGet(t, ledger, 10, "/api/v1/tokens/2001")
	require.Equal(t, http.StatusOK, rec.Code)
	require.EqualValues(t, 1000, decode[types.Token](t, rec).TotalSupply)

	rec = doGet(t, ledger, 10, "/api/v1/nfts/0.0.2003/1")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, aliceID, decode[types.Nft](t, rec).OwnerID)

	var tests = []struct {
		path string
		code int
	}{
		{path: "/api/v1/tokens/2002", code: http.StatusNotFound},
		{path: "/api/v1/tokens/abc", code: http.StatusBadRequest},
		{path: "/api/v1/nfts/2003/2", code: http.StatusNotFound},
		{path: "/api/v1/nfts/2003/0", code: http.StatusBadRequest},
		{path: "/api/v1/nfts/2003/x", code: http.StatusBadRequest},
		{path: "/api/v1/nfts/x/1", code: http.StatusBadRequest},
	}
	for _, tt := range tests {
		require.Equal(t, tt.code, doGet(t, ledger, 10, tt.path).Code, tt.path)
	}
}

func TestLedgerAPI_State(t *testing.T) {
	ledger := newTestLedger(t)
	rec := doGet(t, ledger, 10, "/api/v1/state")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, applicationCBOR, rec.Header().Get(headerContentType))

	recovered, err := state.NewRecoveredState(bytes.NewReader(rec.Body.Bytes()), state.WithValueConstructor(store.NewValue))
	require.NoError(t, err)
	require.EqualValues(t, 5, recovered.Snapshot().Round())
	acc, err := store.NewReadable(recovered.Snapshot()).Accounts.Get(aliceID)
	require.NoError(t, err)
	require.EqualValues(t, 100, acc.Balance)
}

func TestLedgerAPI_UncommittedChangesAreNotVisible(t *testing.T) {
	ledger := newTestLedger(t)
	w := store.NewWritable(ledger.st)
	require.NoError(t, w.Accounts.Put(&types.Account{AccountID: 1004}))

	require.Equal(t, http.StatusNotFound, doGet(t, ledger, 10, "/api/v1/accounts/1004").Code)
	require.NoError(t, ledger.st.Commit(6))
	require.Equal(t, http.StatusOK, doGet(t, ledger, 10, "/api/v1/accounts/1004").Code)
}
