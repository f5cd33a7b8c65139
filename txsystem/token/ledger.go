package token

import (
	"fmt"

	"github.com/hashgraph/hedera-services-sub009/config"
	"github.com/hashgraph/hedera-services-sub009/status"
	"github.com/hashgraph/hedera-services-sub009/store"
	"github.com/hashgraph/hedera-services-sub009/txsystem"
	"github.com/hashgraph/hedera-services-sub009/txsystem/token/validators"
	"github.com/hashgraph/hedera-services-sub009/types"
)

/*
ledger moves hbar, fungible tokens and NFTs between accounts for the
handlers which transfer value. Every movement is validated against the
current state, stored right away and added to the user record.
*/
type ledger struct {
	ctx    txsystem.HandleContext
	cfg    *config.Configuration
	stores *store.Writable
	rec    *txsystem.RecordBuilder
}

func newLedger(ctx txsystem.HandleContext) *ledger {
	return &ledger{ctx: ctx, cfg: ctx.Config(), stores: ctx.Stores(), rec: ctx.RecordBuilder()}
}

// account loads the account, "missing" is returned when the account doesn't exist.
func (l *ledger) account(id types.AccountID, missing status.Code) (*types.Account, error) {
	acc, err := l.stores.Accounts.Get(id)
	if err != nil {
		return nil, fmt.Errorf("loading account %s: %w", id, err)
	}
	if err := validators.ValidateAccountUsable(acc, l.ctx.ExpiryValidator(), missing); err != nil {
		return nil, err
	}
	return acc, nil
}

// token loads the token which must exist, not be deleted nor paused.
func (l *ledger) token(id types.TokenID) (*types.Token, error) {
	token, err := l.stores.Tokens.Get(id)
	if err != nil {
		return nil, fmt.Errorf("loading token %s: %w", id, err)
	}
	if err := validators.ValidateTokenUsable(token); err != nil {
		return nil, err
	}
	return token, nil
}

// resolve returns the account number of the transfer entry, aliases are looked up.
func (l *ledger) resolve(aa types.AccountAmount) (types.AccountID, error) {
	if aa.AccountID != 0 {
		return aa.AccountID, nil
	}
	id, err := l.stores.Accounts.AccountIDByAlias(aa.Alias)
	if err != nil {
		return 0, err
	}
	if id == 0 {
		return 0, txsystem.NewHandleError(status.InvalidAccountID)
	}
	return id, nil
}

func (l *ledger) adjustHbar(id types.AccountID, amount int64) error {
	acc, err := l.account(id, status.InvalidAccountID)
	if err != nil {
		return err
	}
	balance, ok := validators.AddAmount(acc.Balance, amount)
	if !ok {
		return txsystem.NewHandleError(status.InvalidAccountAmounts)
	}
	if balance < 0 {
		return txsystem.NewHandleError(status.InsufficientAccountBalance)
	}
	acc.Balance = balance
	if err := l.stores.Accounts.Put(acc); err != nil {
		return err
	}
	l.rec.AddTransfer(id, amount)
	return nil
}

/*
spendCryptoAllowance decreases the hbar allowance the owner has granted to
the payer of the transaction.
*/
func (l *ledger) spendCryptoAllowance(owner types.AccountID, amount int64) error {
	acc, err := l.account(owner, status.InvalidAccountID)
	if err != nil {
		return err
	}
	allowance := cryptoAllowance(acc, l.ctx.Payer())
	if err := checkAllowance(allowance, amount); err != nil {
		return err
	}
	acc.CryptoAllowances = setCryptoAllowance(acc.CryptoAllowances, l.ctx.Payer(), allowance-amount)
	return l.stores.Accounts.Put(acc)
}

func (l *ledger) spendTokenAllowance(owner types.AccountID, token types.TokenID, amount int64) error {
	acc, err := l.account(owner, status.InvalidAccountID)
	if err != nil {
		return err
	}
	allowance := tokenAllowance(acc, token, l.ctx.Payer())
	if err := checkAllowance(allowance, amount); err != nil {
		return err
	}
	acc.TokenAllowances = setTokenAllowance(acc.TokenAllowances, token, l.ctx.Payer(), allowance-amount)
	return l.stores.Accounts.Put(acc)
}

func checkAllowance(allowance, amount int64) error {
	switch {
	case allowance == 0:
		return txsystem.NewHandleError(status.SpenderDoesNotHaveAllowance)
	case allowance < amount:
		return txsystem.NewHandleError(status.AmountExceedsAllowance)
	}
	return nil
}

/*
relation returns the relation of the account with the token. When the
account is not associated and "autoAssociate" is set the account is
associated automatically in a child savepoint.
*/
func (l *ledger) relation(account types.AccountID, token *types.Token, autoAssociate bool) (*types.TokenRelation, error) {
	rel, err := l.stores.Relations.Get(account, token.TokenID)
	if err != nil {
		return nil, fmt.Errorf("loading token relation: %w", err)
	}
	if rel != nil {
		return rel, nil
	}
	if !autoAssociate {
		return nil, txsystem.NewHandleError(status.TokenNotAssociatedToAccount)
	}
	acc, err := l.account(account, status.InvalidAccountID)
	if err != nil {
		return nil, err
	}
	if acc.MaxAutoAssociations == 0 {
		return nil, txsystem.NewHandleError(status.TokenNotAssociatedToAccount)
	}
	if err := l.associate(account, token, true); err != nil {
		return nil, err
	}
	l.rec.AddAutomaticAssociation(types.RelationID{AccountID: account, TokenID: token.TokenID})
	return l.stores.Relations.Get(account, token.TokenID)
}

// associate creates the relation of the account with the token in a child savepoint.
func (l *ledger) associate(account types.AccountID, token *types.Token, automatic bool) error {
	acc, err := l.account(account, status.InvalidAccountID)
	if err != nil {
		return err
	}
	return l.ctx.SavepointStack().Attempt(func() error {
		if _, err := associate(l.cfg, l.stores, acc, []*types.Token{token}, automatic); err != nil {
			return err
		}
		return l.stores.Accounts.Put(acc)
	})
}

// canAutoAssociate reports whether the account has a free automatic association slot.
func (l *ledger) canAutoAssociate(account types.AccountID) (bool, error) {
	acc, err := l.account(account, status.InvalidAccountID)
	if err != nil {
		return false, err
	}
	return acc.HasFreeAutoAssociationSlot(), nil
}

func checkTransferable(rel *types.TokenRelation) error {
	if rel.Frozen {
		return txsystem.NewHandleError(status.AccountFrozenForToken)
	}
	if !rel.KycGranted {
		return txsystem.NewHandleError(status.AccountKycNotGrantedForToken)
	}
	return nil
}

/*
adjustToken changes the fungible token balance of the account, positive and
owned NFT counters of the account are kept up to date.
*/
func (l *ledger) adjustToken(token *types.Token, account types.AccountID, amount int64, autoAssociate bool) error {
	if !token.IsFungible() {
		return txsystem.NewHandleError(status.AccountAmountTransfersOnlyAllowedForFungibleCommon)
	}
	if _, err := l.account(account, status.InvalidAccountID); err != nil {
		return err
	}
	rel, err := l.relation(account, token, autoAssociate && amount > 0)
	if err != nil {
		return err
	}
	if err := checkTransferable(rel); err != nil {
		return err
	}
	balance, ok := validators.AddAmount(rel.Balance, amount)
	if !ok {
		return txsystem.NewHandleError(status.TransfersNotZeroSumForToken)
	}
	if balance < 0 {
		return txsystem.NewHandleError(status.InsufficientTokenBalance)
	}
	if err := l.setBalance(rel, balance, 0); err != nil {
		return err
	}
	l.rec.AddTokenTransfer(token.TokenID, account, amount)
	return nil
}

/*
setBalance stores the relation with the new balance and updates the
counters of the account.
*/
func (l *ledger) setBalance(rel *types.TokenRelation, balance int64, ownedNftsDelta int64) error {
	acc, err := l.stores.Accounts.Get(rel.AccountID)
	if err != nil {
		return err
	}
	if acc == nil {
		return fmt.Errorf("account %s of the relation %s does not exist", rel.AccountID, rel.ID())
	}
	switch {
	case rel.Balance == 0 && balance > 0:
		acc.NumberPositiveBalances++
	case rel.Balance > 0 && balance == 0:
		acc.NumberPositiveBalances--
	}
	acc.NumberOwnedNfts += ownedNftsDelta
	rel.Balance = balance
	if err := l.stores.Relations.Put(rel); err != nil {
		return err
	}
	return l.stores.Accounts.Put(acc)
}

// nft returns the NFT and its owner, the owner of NFTs held by treasury is resolved.
func (l *ledger) nft(token *types.Token, serial int64) (*types.Nft, types.AccountID, error) {
	if token.IsFungible() {
		return nil, 0, txsystem.NewHandleError(status.InvalidNftID)
	}
	id := types.NftID{TokenID: token.TokenID, Serial: serial}
	nft, err := l.stores.Nfts.Get(id)
	if err != nil {
		return nil, 0, fmt.Errorf("loading NFT %s: %w", id, err)
	}
	if nft == nil {
		return nil, 0, txsystem.NewHandleError(status.InvalidNftID)
	}
	return nft, ownerOf(nft, token), nil
}

func ownerOf(nft *types.Nft, token *types.Token) types.AccountID {
	if nft.OwnerID == 0 {
		return token.TreasuryID
	}
	return nft.OwnerID
}

/*
moveNft transfers the NFT from "from" to "to", the spender of the NFT is
cleared. With "approval" the payer must be the spender of the NFT or hold
approve-for-all allowance of the owner.
*/
func (l *ledger) moveNft(token *types.Token, serial int64, from, to types.AccountID, approval, autoAssociate bool) error {
	nft, owner, err := l.nft(token, serial)
	if err != nil {
		return err
	}
	if owner != from {
		return txsystem.NewHandleError(status.SenderDoesNotOwnNftSerialNo)
	}
	sender, err := l.account(from, status.InvalidAccountID)
	if err != nil {
		return err
	}
	if approval && nft.SpenderID != l.ctx.Payer() && !validators.HasApproveForAll(sender, token.TokenID, l.ctx.Payer()) {
		return txsystem.NewHandleError(status.SpenderDoesNotHaveAllowance)
	}
	if _, err := l.account(to, status.InvalidAccountID); err != nil {
		return err
	}
	fromRel, err := l.relation(from, token, false)
	if err != nil {
		return err
	}
	toRel, err := l.relation(to, token, autoAssociate)
	if err != nil {
		return err
	}
	if err := checkTransferable(fromRel); err != nil {
		return err
	}
	if err := checkTransferable(toRel); err != nil {
		return err
	}
	if fromRel.Balance < 1 {
		return fmt.Errorf("relation %s owns NFT %s/%d but has zero balance", fromRel.ID(), token.TokenID, serial)
	}
	if err := l.setBalance(fromRel, fromRel.Balance-1, -1); err != nil {
		return err
	}
	if err := l.setBalance(toRel, toRel.Balance+1, 1); err != nil {
		return err
	}

	nft.OwnerID = to
	if to == token.TreasuryID {
		nft.OwnerID = 0
	}
	nft.SpenderID = 0
	if err := l.stores.Nfts.Put(nft); err != nil {
		return err
	}
	l.rec.AddNftTransfer(token.TokenID, from, to, serial)
	return nil
}
