package token

import (
	"fmt"

	"github.com/hashgraph/hedera-services-sub009/status"
	"github.com/hashgraph/hedera-services-sub009/txsystem"
	"github.com/hashgraph/hedera-services-sub009/txsystem/token/validators"
	"github.com/hashgraph/hedera-services-sub009/types"
)

/*
ApproveAllowanceHandler grants (or with zero amount revokes) hbar, fungible
token and NFT allowances. The owner of an allowance is the payer unless set
explicitly.
*/
type ApproveAllowanceHandler struct{}

func (h *ApproveAllowanceHandler) PureChecks(tx *types.Transaction) error {
	return validators.ApproveAllowancePureChecks(tx.Body.CryptoApproveAllowance)
}

func (h *ApproveAllowanceHandler) PreHandle(ctx txsystem.PreHandleContext) error {
	body := ctx.Transaction().Body.CryptoApproveAllowance
	requireOwner := func(owner types.AccountID) error {
		if owner == 0 || owner == ctx.Payer() {
			return nil
		}
		return ctx.RequireKeyOrThrow(owner, status.InvalidAllowanceOwnerID)
	}
	for _, a := range body.CryptoAllowances {
		if err := requireOwner(a.OwnerID); err != nil {
			return err
		}
	}
	for _, a := range body.TokenAllowances {
		if err := requireOwner(a.OwnerID); err != nil {
			return err
		}
	}
	for _, a := range body.NftAllowances {
		if a.DelegatingSpender != 0 {
			if err := ctx.RequireKeyOrThrow(a.DelegatingSpender, status.InvalidDelegatingSpender); err != nil {
				return err
			}
			continue
		}
		if err := requireOwner(a.OwnerID); err != nil {
			return err
		}
	}
	return nil
}

func (h *ApproveAllowanceHandler) Handle(ctx txsystem.HandleContext) error {
	cfg := ctx.Config().Hedera.Allowances
	if !cfg.IsEnabled {
		return txsystem.NewHandleError(status.NotSupported)
	}
	body := ctx.Transaction().Body.CryptoApproveAllowance
	if err := validators.ValidateAllowanceCount(validators.AggregateApproveAllowances(body), cfg.MaxTransactionLimit); err != nil {
		return err
	}

	a := &allowances{ctx: ctx}
	for _, ca := range body.CryptoAllowances {
		if err := a.approveCrypto(ca); err != nil {
			return err
		}
	}
	for _, ta := range body.TokenAllowances {
		if err := a.approveToken(ta); err != nil {
			return err
		}
	}
	for _, na := range body.NftAllowances {
		if err := a.approveNft(na); err != nil {
			return err
		}
	}
	return a.checkAccountLimits(cfg.MaxAccountLimit)
}

func (h *ApproveAllowanceHandler) CalculateFees(ctx txsystem.FeeContext) types.Fees {
	n := validators.AggregateApproveAllowances(ctx.Transaction().Body.CryptoApproveAllowance)
	return calculateFees(ctx, n, 0)
}

// allowances applies allowance changes of one transaction.
type allowances struct {
	ctx txsystem.HandleContext
	// owners whose allowances were changed
	owners []types.AccountID
}

/*
owner resolves the owner of the allowance. Owner other than the payer must
have signed the transaction, unless the allowance is granted by a
delegating spender whose signature is checked instead.
*/
func (a *allowances) owner(id types.AccountID, delegating types.AccountID) (*types.Account, error) {
	if id == 0 {
		id = a.ctx.Payer()
	}
	acc, err := a.ctx.Stores().Accounts.Get(id)
	if err != nil {
		return nil, fmt.Errorf("loading allowance owner: %w", err)
	}
	if acc == nil || acc.Deleted {
		return nil, txsystem.NewHandleError(status.InvalidAllowanceOwnerID)
	}
	signer := acc.AccountID
	if delegating != 0 {
		signer = delegating
	}
	if signer != a.ctx.Payer() {
		key := acc.Key
		if delegating != 0 {
			d, err := a.ctx.Stores().Accounts.Get(delegating)
			if err != nil {
				return nil, err
			}
			if d == nil || d.Deleted {
				return nil, txsystem.NewHandleError(status.InvalidDelegatingSpender)
			}
			key = d.Key
		}
		if !a.ctx.IsRequiredSigner(key) {
			return nil, txsystem.NewHandleError(status.InvalidSignature)
		}
	}
	return acc, nil
}

func (a *allowances) spender(owner *types.Account, id types.AccountID) error {
	if id == owner.AccountID {
		return txsystem.NewHandleError(status.SpenderAccountSameAsOwner)
	}
	spender, err := a.ctx.Stores().Accounts.Get(id)
	if err != nil {
		return fmt.Errorf("loading spender: %w", err)
	}
	if spender == nil || spender.Deleted {
		return txsystem.NewHandleError(status.InvalidAllowanceSpenderID)
	}
	return nil
}

// associatedToken loads the token and checks that the owner is associated with it.
func (a *allowances) associatedToken(owner *types.Account, id types.TokenID) (*types.Token, error) {
	stores := a.ctx.Stores()
	token, err := stores.Tokens.Get(id)
	if err != nil {
		return nil, fmt.Errorf("loading token %s: %w", id, err)
	}
	if token == nil {
		return nil, txsystem.NewHandleError(status.InvalidTokenID)
	}
	rel, err := stores.Relations.Get(owner.AccountID, id)
	if err != nil {
		return nil, fmt.Errorf("loading token relation: %w", err)
	}
	if rel == nil {
		return nil, txsystem.NewHandleError(status.TokenNotAssociatedToAccount)
	}
	return token, nil
}

func (a *allowances) put(owner *types.Account) error {
	if err := a.ctx.Stores().Accounts.Put(owner); err != nil {
		return err
	}
	for _, id := range a.owners {
		if id == owner.AccountID {
			return nil
		}
	}
	a.owners = append(a.owners, owner.AccountID)
	return nil
}

func (a *allowances) approveCrypto(ca types.CryptoAllowance) error {
	owner, err := a.owner(ca.OwnerID, 0)
	if err != nil {
		return err
	}
	if err := a.spender(owner, ca.SpenderID); err != nil {
		return err
	}
	owner.CryptoAllowances = setCryptoAllowance(owner.CryptoAllowances, ca.SpenderID, ca.Amount)
	return a.put(owner)
}

func (a *allowances) approveToken(ta types.TokenAllowance) error {
	owner, err := a.owner(ta.OwnerID, 0)
	if err != nil {
		return err
	}
	if err := a.spender(owner, ta.SpenderID); err != nil {
		return err
	}
	token, err := a.associatedToken(owner, ta.TokenID)
	if err != nil {
		return err
	}
	if err := validators.ValidateFungibleAllowanceAmount(token, ta.Amount); err != nil {
		return err
	}
	owner.TokenAllowances = setTokenAllowance(owner.TokenAllowances, ta.TokenID, ta.SpenderID, ta.Amount)
	return a.put(owner)
}

func (a *allowances) approveNft(na types.NftAllowance) error {
	owner, err := a.owner(na.OwnerID, na.DelegatingSpender)
	if err != nil {
		return err
	}
	if err := a.spender(owner, na.SpenderID); err != nil {
		return err
	}
	token, err := a.associatedToken(owner, na.TokenID)
	if err != nil {
		return err
	}
	if token.IsFungible() {
		return txsystem.NewHandleError(status.FungibleTokenInNftAllowances)
	}
	if err := validators.ValidateDelegatingSpender(owner, &na); err != nil {
		return err
	}

	nfts := a.ctx.Stores().Nfts
	for _, serial := range na.SerialNumbers {
		nft, err := nfts.Get(types.NftID{TokenID: na.TokenID, Serial: serial})
		if err != nil {
			return fmt.Errorf("loading NFT: %w", err)
		}
		if nft == nil {
			return txsystem.NewHandleError(status.InvalidTokenNftSerialNumber)
		}
		if ownerOf(nft, token) != owner.AccountID {
			return txsystem.NewHandleError(status.SenderDoesNotOwnNftSerialNo)
		}
		nft.SpenderID = na.SpenderID
		if err := nfts.Put(nft); err != nil {
			return err
		}
	}
	if na.ApprovedForAll != nil {
		owner.ApproveForAllNftAllowances = setApproveForAll(owner.ApproveForAllNftAllowances, na.TokenID, na.SpenderID, *na.ApprovedForAll)
		return a.put(owner)
	}
	return nil
}

// checkAccountLimits checks the number of allowances of every changed owner.
func (a *allowances) checkAccountLimits(limit int) error {
	for _, id := range a.owners {
		acc, err := a.ctx.Stores().Accounts.Get(id)
		if err != nil {
			return err
		}
		if acc.NumberOfAllowances() > limit {
			return txsystem.NewHandleError(status.MaxAllowancesExceeded)
		}
	}
	return nil
}
