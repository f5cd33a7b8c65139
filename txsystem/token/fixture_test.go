package token

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hashgraph/hedera-services-sub009/config"
	testobserve "github.com/hashgraph/hedera-services-sub009/internal/testutils/observability"
	"github.com/hashgraph/hedera-services-sub009/state"
	"github.com/hashgraph/hedera-services-sub009/status"
	"github.com/hashgraph/hedera-services-sub009/store"
	"github.com/hashgraph/hedera-services-sub009/txsystem"
	"github.com/hashgraph/hedera-services-sub009/txsystem/fees"
	"github.com/hashgraph/hedera-services-sub009/types"
)

const (
	fundingID types.AccountID = 98
	payerID   types.AccountID = 1001
	aliceID   types.AccountID = 1002
	bobID     types.AccountID = 1003
	carolID   types.AccountID = 1004

	ftID  types.TokenID = 2001
	ft2ID types.TokenID = 2002
	nftID types.TokenID = 2003
)

func keyOf(id types.AccountID) types.Key { return types.Key(fmt.Sprintf("key-%d", id)) }

/*
fixture builds the initial state of a test and executes transactions
against it with zero fees.
*/
type fixture struct {
	t      *testing.T
	cfg    config.Configuration
	st     *state.State
	stores *store.Writable
	txs    *txsystem.GenericTxSystem
}

func newFixture(t *testing.T) *fixture {
	f := &fixture{t: t, cfg: config.Default()}
	f.st = state.NewEmptyState(state.WithValueConstructor(store.NewValue))
	f.stores = store.NewWritable(f.st)
	f.account(fundingID)
	f.account(payerID, func(a *types.Account) { a.Balance = 1_000_000 })
	return f
}

func (f *fixture) account(id types.AccountID, mods ...func(*types.Account)) *types.Account {
	f.t.Helper()
	acc := &types.Account{AccountID: id, Key: keyOf(id)}
	for _, m := range mods {
		m(acc)
	}
	require.NoError(f.t, f.stores.Accounts.Put(acc))
	return acc
}

// token creates the token and associates it with its treasury.
func (f *fixture) token(id types.TokenID, treasury types.AccountID, mods ...func(*types.Token)) *types.Token {
	f.t.Helper()
	token := &types.Token{TokenID: id, TreasuryID: treasury, Type: types.FungibleCommon}
	for _, m := range mods {
		m(token)
	}
	require.NoError(f.t, f.stores.Tokens.Put(token))
	acc := f.getAccount(treasury)
	acc.NumberTreasuryTitles++
	require.NoError(f.t, f.stores.Accounts.Put(acc))
	f.associate(treasury, id)
	return token
}

func nonFungible(t *types.Token) { t.Type = types.NonFungibleUnique }

func (f *fixture) associate(account types.AccountID, tokens ...types.TokenID) {
	f.t.Helper()
	acc := f.getAccount(account)
	var list []*types.Token
	for _, id := range tokens {
		list = append(list, f.getToken(id))
	}
	_, err := associate(&f.cfg, f.stores, acc, list, false)
	require.NoError(f.t, err)
	require.NoError(f.t, f.stores.Accounts.Put(acc))
}

func (f *fixture) balance(account types.AccountID, token types.TokenID, balance int64) {
	f.t.Helper()
	rel := f.getRelation(account, token)
	acc := f.getAccount(account)
	switch {
	case rel.Balance == 0 && balance > 0:
		acc.NumberPositiveBalances++
	case rel.Balance > 0 && balance == 0:
		acc.NumberPositiveBalances--
	}
	rel.Balance = balance
	require.NoError(f.t, f.stores.Relations.Put(rel))
	require.NoError(f.t, f.stores.Accounts.Put(acc))
}

// mint creates NFTs owned by the treasury.
func (f *fixture) mint(token types.TokenID, serials ...int64) {
	f.t.Helper()
	tok := f.getToken(token)
	for _, s := range serials {
		require.NoError(f.t, f.stores.Nfts.Put(&types.Nft{NftID: types.NftID{TokenID: token, Serial: s}}))
	}
	rel := f.getRelation(tok.TreasuryID, token)
	f.balance(tok.TreasuryID, token, rel.Balance+int64(len(serials)))
	acc := f.getAccount(tok.TreasuryID)
	acc.NumberOwnedNfts += int64(len(serials))
	require.NoError(f.t, f.stores.Accounts.Put(acc))
	tok.LastUsedSerial = serials[len(serials)-1]
	require.NoError(f.t, f.stores.Tokens.Put(tok))
}

// start commits the initial state and opens the first round.
func (f *fixture) start() *fixture {
	f.t.Helper()
	require.NoError(f.t, f.st.Commit(0))
	txs, err := txsystem.NewGenericTxSystem(f.cfg, []txsystem.Module{NewModule()}, testobserve.Default(f.t),
		txsystem.WithState(f.st),
		txsystem.WithFeeCalculator(fees.FreeCalculator{}),
	)
	require.NoError(f.t, err)
	require.NoError(f.t, txs.BeginBlock(1, 1_000))
	f.txs = txs
	return f
}

/*
execute runs the transaction paid by payerID, the payer and "signers" are
reported as verified signatures.
*/
func (f *fixture) execute(body types.TransactionBody, signers ...types.AccountID) *types.TransactionRecord {
	f.t.Helper()
	tx := &types.Transaction{
		ID:       types.TransactionID{Payer: payerID, ValidStart: 1},
		SignedBy: []types.Key{keyOf(payerID)},
		Body:     body,
	}
	for _, s := range signers {
		tx.SignedBy = append(tx.SignedBy, keyOf(s))
	}
	rec, err := f.txs.Execute(tx)
	require.NoError(f.t, err)
	return rec
}

func (f *fixture) requireStatus(want status.Code, rec *types.TransactionRecord) {
	f.t.Helper()
	require.Equal(f.t, want.String(), rec.Status.String())
}

func (f *fixture) getAccount(id types.AccountID) *types.Account {
	f.t.Helper()
	acc, err := f.stores.Accounts.Get(id)
	require.NoError(f.t, err)
	require.NotNil(f.t, acc, "account %s", id)
	return acc
}

func (f *fixture) getToken(id types.TokenID) *types.Token {
	f.t.Helper()
	token, err := f.stores.Tokens.Get(id)
	require.NoError(f.t, err)
	require.NotNil(f.t, token, "token %s", id)
	return token
}

func (f *fixture) findRelation(account types.AccountID, token types.TokenID) *types.TokenRelation {
	f.t.Helper()
	rel, err := f.stores.Relations.Get(account, token)
	require.NoError(f.t, err)
	return rel
}

func (f *fixture) getRelation(account types.AccountID, token types.TokenID) *types.TokenRelation {
	f.t.Helper()
	rel := f.findRelation(account, token)
	require.NotNil(f.t, rel, "relation %s/%s", account, token)
	return rel
}

func (f *fixture) getNft(token types.TokenID, serial int64) *types.Nft {
	f.t.Helper()
	nft, err := f.stores.Nfts.Get(types.NftID{TokenID: token, Serial: serial})
	require.NoError(f.t, err)
	require.NotNil(f.t, nft)
	return nft
}

func (f *fixture) findAirdrop(id types.PendingAirdropID) *types.AccountPendingAirdrop {
	f.t.Helper()
	p, err := f.stores.Airdrops.Get(id)
	require.NoError(f.t, err)
	return p
}

// relationTokens walks the relation list of the account from its head, checking the back links.
func (f *fixture) relationTokens(account types.AccountID) []types.TokenID {
	f.t.Helper()
	var res []types.TokenID
	var prev types.TokenID
	for id := f.getAccount(account).HeadTokenID; id != 0; {
		rel := f.getRelation(account, id)
		require.Equal(f.t, prev, rel.PreviousToken, "previous of %s", id)
		res = append(res, id)
		prev, id = id, rel.NextToken
	}
	return res
}

// pendingAirdrops walks the pending airdrop list of the sender, checking the back links.
func (f *fixture) pendingAirdrops(sender types.AccountID) []types.PendingAirdropID {
	f.t.Helper()
	var res []types.PendingAirdropID
	var prev *types.PendingAirdropID
	for id := f.getAccount(sender).HeadPendingAirdropID; id != nil; {
		p := f.findAirdrop(*id)
		require.NotNil(f.t, p, "airdrop %s", id)
		require.Equal(f.t, prev, p.PreviousAirdrop, "previous of %s", id)
		res = append(res, *id)
		prev, id = id, p.NextAirdrop
	}
	return res
}
