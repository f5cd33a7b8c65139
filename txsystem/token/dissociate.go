package token

import (
	"fmt"

	"github.com/hashgraph/hedera-services-sub009/status"
	"github.com/hashgraph/hedera-services-sub009/txsystem"
	"github.com/hashgraph/hedera-services-sub009/txsystem/token/validators"
	"github.com/hashgraph/hedera-services-sub009/types"
)

/*
DissociateHandler removes relations of an account with tokens. Balances of
deleted (or removed) tokens are burned with the relation.
*/
type DissociateHandler struct{}

func (h *DissociateHandler) PureChecks(tx *types.Transaction) error {
	body := tx.Body.TokenDissociate
	if body.AccountID == 0 {
		return txsystem.NewPreCheckError(status.InvalidAccountID)
	}
	return validators.TokenListPureChecks(body.Tokens)
}

func (h *DissociateHandler) PreHandle(ctx txsystem.PreHandleContext) error {
	return ctx.RequireKeyOrThrow(ctx.Transaction().Body.TokenDissociate.AccountID, status.InvalidAccountID)
}

func (h *DissociateHandler) Handle(ctx txsystem.HandleContext) error {
	body := ctx.Transaction().Body.TokenDissociate
	stores := ctx.Stores()

	acc, err := stores.Accounts.Get(body.AccountID)
	if err != nil {
		return err
	}
	if err := validators.ValidateAccountUsable(acc, ctx.ExpiryValidator(), status.InvalidAccountID); err != nil {
		return err
	}

	rels := make([]*types.TokenRelation, 0, len(body.Tokens))
	for _, id := range body.Tokens {
		rel, err := stores.Relations.Get(acc.AccountID, id)
		if err != nil {
			return fmt.Errorf("loading token relation: %w", err)
		}
		if rel == nil {
			return txsystem.NewHandleError(status.TokenNotAssociatedToAccount)
		}
		token, err := stores.Tokens.Get(id)
		if err != nil {
			return fmt.Errorf("loading token %s: %w", id, err)
		}
		if token != nil && !token.Deleted {
			if token.TreasuryID == acc.AccountID {
				return txsystem.NewHandleError(status.AccountIsTreasury)
			}
			if rel.Frozen {
				return txsystem.NewHandleError(status.AccountFrozenForToken)
			}
			if rel.Balance > 0 {
				return txsystem.NewHandleError(status.TransactionRequiresZeroTokenBalances)
			}
		}
		if rel.Balance > 0 {
			acc.NumberPositiveBalances--
			if token != nil && !token.IsFungible() {
				acc.NumberOwnedNfts -= rel.Balance
			}
		}
		rels = append(rels, rel)
	}
	if err := dissociate(stores, acc, rels); err != nil {
		return err
	}
	return stores.Accounts.Put(acc)
}

func (h *DissociateHandler) CalculateFees(ctx txsystem.FeeContext) types.Fees {
	return calculateFees(ctx, 1+len(ctx.Transaction().Body.TokenDissociate.Tokens), 0)
}
