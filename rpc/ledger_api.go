package rpc

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/hashgraph/hedera-services-sub009/logger"
	"github.com/hashgraph/hedera-services-sub009/state"
	"github.com/hashgraph/hedera-services-sub009/store"
	"github.com/hashgraph/hedera-services-sub009/types"
)

// LedgerState is the committed ledger the API reads from.
type LedgerState interface {
	Snapshot() *state.Snapshot
	SerializeState(w io.Writer) error
}

type (
	infoResponse struct {
		Round    uint64           `json:"round"`
		Entities map[string]int64 `json:"entities"`
	}

	relationsResponse struct {
		AccountID types.AccountID        `json:"accountId"`
		Relations []*types.TokenRelation `json:"relations"`
		// Next is the token to start the following page from, zero on the last page.
		Next types.TokenID `json:"next,omitempty"`
	}

	airdropsResponse struct {
		SenderID types.AccountID                `json:"senderId"`
		Airdrops []*types.AccountPendingAirdrop `json:"airdrops"`
		// Truncated is set when the list has more airdrops than the limit allowed to return.
		Truncated bool `json:"truncated,omitempty"`
	}
)

var errNotFound = errors.New("not found")

/*
LedgerEndpoints registers read-only queries over the last committed state.
List queries return at most maxListLen items.
*/
func LedgerEndpoints(ledger LedgerState, maxListLen int, log *slog.Logger) RegistrarFunc {
	return func(r *mux.Router) {
		r.HandleFunc("/info", getInfo(ledger, log)).Methods(http.MethodGet, http.MethodOptions)
		r.HandleFunc("/state", getState(ledger, log)).Methods(http.MethodGet)
		r.HandleFunc("/accounts/{accountID}", getAccount(ledger, log)).Methods(http.MethodGet, http.MethodOptions)
		r.HandleFunc("/accounts/{accountID}/relations", getRelations(ledger, maxListLen, log)).Methods(http.MethodGet, http.MethodOptions)
		r.HandleFunc("/accounts/{accountID}/airdrops", getAirdrops(ledger, maxListLen, log)).Methods(http.MethodGet, http.MethodOptions)
		r.HandleFunc("/tokens/{tokenID}", getToken(ledger, log)).Methods(http.MethodGet, http.MethodOptions)
		r.HandleFunc("/nfts/{tokenID}/{serial}", getNft(ledger, log)).Methods(http.MethodGet, http.MethodOptions)
	}
}

func getInfo(ledger LedgerState, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap := ledger.Snapshot()
		rsp := infoResponse{Round: snap.Round(), Entities: make(map[string]int64, len(store.KindNames))}
		for kind, name := range store.KindNames {
			rsp.Entities[name] = snap.Count(kind)
		}
		writeJSONResponse(w, rsp, http.StatusOK, log)
	}
}

func getState(ledger LedgerState, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(headerContentType, applicationCBOR)
		if err := ledger.SerializeState(w); err != nil {
			// headers are most likely sent already, only log it
			log.WarnContext(r.Context(), "serializing state", logger.Error(err))
		}
	}
}

func getAccount(ledger LedgerState, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		acc, err := lookupAccount(store.NewReadable(ledger.Snapshot()), mux.Vars(r)["accountID"])
		if err != nil {
			writeLookupError(w, err, log)
			return
		}
		writeJSONResponse(w, acc, http.StatusOK, log)
	}
}

/*
getRelations returns token relations of the account in list order. Query
parameter "start" selects the token to start from (must be associated with
the account), "limit" the page size.
*/
func getRelations(ledger LedgerState, maxListLen int, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := parseLimit(r.URL.Query().Get("limit"), maxListLen)
		if err != nil {
			writeJSONError(w, err, http.StatusBadRequest, log)
			return
		}
		stores := store.NewReadable(ledger.Snapshot())
		acc, err := lookupAccount(stores, mux.Vars(r)["accountID"])
		if err != nil {
			writeLookupError(w, err, log)
			return
		}

		next := acc.HeadTokenID
		if s := strings.TrimSpace(r.URL.Query().Get("start")); s != "" {
			if next, err = types.ParseTokenID(s); err != nil {
				writeJSONError(w, fmt.Errorf("invalid start: %w", err), http.StatusBadRequest, log)
				return
			}
			rel, err := stores.Relations.Get(acc.AccountID, next)
			if err != nil {
				writeJSONError(w, err, http.StatusInternalServerError, log)
				return
			}
			if rel == nil {
				writeJSONError(w, fmt.Errorf("token %s is not associated with the account", next), http.StatusNotFound, log)
				return
			}
		}

		rsp := relationsResponse{AccountID: acc.AccountID, Relations: []*types.TokenRelation{}}
		for next != 0 && len(rsp.Relations) < limit {
			rel, err := stores.Relations.Get(acc.AccountID, next)
			if err != nil {
				writeJSONError(w, err, http.StatusInternalServerError, log)
				return
			}
			if rel == nil {
				// orphaned head or link ends the list
				next = 0
				break
			}
			rsp.Relations = append(rsp.Relations, rel)
			next = rel.NextToken
		}
		rsp.Next = next
		writeJSONResponse(w, rsp, http.StatusOK, log)
	}
}

// getAirdrops returns pending airdrops sent by the account, newest first.
func getAirdrops(ledger LedgerState, maxListLen int, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := parseLimit(r.URL.Query().Get("limit"), maxListLen)
		if err != nil {
			writeJSONError(w, err, http.StatusBadRequest, log)
			return
		}
		stores := store.NewReadable(ledger.Snapshot())
		acc, err := lookupAccount(stores, mux.Vars(r)["accountID"])
		if err != nil {
			writeLookupError(w, err, log)
			return
		}

		rsp := airdropsResponse{SenderID: acc.AccountID, Airdrops: []*types.AccountPendingAirdrop{}}
		for next := acc.HeadPendingAirdropID; next != nil; {
			if len(rsp.Airdrops) == limit {
				rsp.Truncated = true
				break
			}
			airdrop, err := stores.Airdrops.Get(*next)
			if err != nil {
				writeJSONError(w, err, http.StatusInternalServerError, log)
				return
			}
			if airdrop == nil {
				break
			}
			rsp.Airdrops = append(rsp.Airdrops, airdrop)
			next = airdrop.NextAirdrop
		}
		writeJSONResponse(w, rsp, http.StatusOK, log)
	}
}

func getToken(ledger LedgerState, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := types.ParseTokenID(mux.Vars(r)["tokenID"])
		if err != nil {
			writeJSONError(w, err, http.StatusBadRequest, log)
			return
		}
		token, err := store.NewReadable(ledger.Snapshot()).Tokens.Get(id)
		if err != nil {
			writeJSONError(w, err, http.StatusInternalServerError, log)
			return
		}
		if token == nil {
			writeJSONError(w, errNotFound, http.StatusNotFound, log)
			return
		}
		writeJSONResponse(w, token, http.StatusOK, log)
	}
}

func getNft(ledger LedgerState, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		tokenID, err := types.ParseTokenID(vars["tokenID"])
		if err != nil {
			writeJSONError(w, err, http.StatusBadRequest, log)
			return
		}
		serial, err := strconv.ParseInt(vars["serial"], 10, 64)
		if err != nil || serial <= 0 {
			writeJSONError(w, fmt.Errorf("invalid serial number %q", vars["serial"]), http.StatusBadRequest, log)
			return
		}
		nft, err := store.NewReadable(ledger.Snapshot()).Nfts.Get(types.NftID{TokenID: tokenID, Serial: serial})
		if err != nil {
			writeJSONError(w, err, http.StatusInternalServerError, log)
			return
		}
		if nft == nil {
			writeJSONError(w, errNotFound, http.StatusNotFound, log)
			return
		}
		writeJSONResponse(w, nft, http.StatusOK, log)
	}
}

/*
lookupAccount accepts entity ID ("0.0.N" or "N") or an alias of the account.
Returns errNotFound when there is no such account.
*/
func lookupAccount(stores *store.Readable, s string) (*types.Account, error) {
	var acc *types.Account
	var err error
	if id, perr := types.ParseAccountID(s); perr == nil {
		acc, err = stores.Accounts.Get(id)
	} else {
		acc, err = stores.Accounts.GetByAlias(s)
	}
	if err != nil {
		return nil, fmt.Errorf("reading account: %w", err)
	}
	if acc == nil {
		return nil, errNotFound
	}
	return acc, nil
}

func writeLookupError(w http.ResponseWriter, err error, log *slog.Logger) {
	if errors.Is(err, errNotFound) {
		writeJSONError(w, err, http.StatusNotFound, log)
		return
	}
	writeJSONError(w, err, http.StatusInternalServerError, log)
}

// parseLimit returns max when s is empty or exceeds it.
func parseLimit(s string, max int) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return max, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid limit %q", s)
	}
	return min(n, max), nil
}
