package token

import (
	"fmt"

	"github.com/hashgraph/hedera-services-sub009/status"
	"github.com/hashgraph/hedera-services-sub009/txsystem"
	"github.com/hashgraph/hedera-services-sub009/txsystem/token/validators"
	"github.com/hashgraph/hedera-services-sub009/types"
)

// AssociateHandler associates an account with tokens.
type AssociateHandler struct{}

func (h *AssociateHandler) PureChecks(tx *types.Transaction) error {
	body := tx.Body.TokenAssociate
	if body.AccountID == 0 {
		return txsystem.NewPreCheckError(status.InvalidAccountID)
	}
	return validators.TokenListPureChecks(body.Tokens)
}

func (h *AssociateHandler) PreHandle(ctx txsystem.PreHandleContext) error {
	return ctx.RequireKeyOrThrow(ctx.Transaction().Body.TokenAssociate.AccountID, status.InvalidAccountID)
}

func (h *AssociateHandler) Handle(ctx txsystem.HandleContext) error {
	body := ctx.Transaction().Body.TokenAssociate
	stores := ctx.Stores()

	acc, err := stores.Accounts.Get(body.AccountID)
	if err != nil {
		return err
	}
	if err := validators.ValidateAccountUsable(acc, ctx.ExpiryValidator(), status.InvalidAccountID); err != nil {
		return err
	}
	tokens := make([]*types.Token, 0, len(body.Tokens))
	for _, id := range body.Tokens {
		token, err := stores.Tokens.Get(id)
		if err != nil {
			return fmt.Errorf("loading token %s: %w", id, err)
		}
		if err := validators.ValidateTokenUsable(token); err != nil {
			return err
		}
		tokens = append(tokens, token)
	}
	if _, err := associate(ctx.Config(), stores, acc, tokens, false); err != nil {
		return err
	}
	return stores.Accounts.Put(acc)
}

func (h *AssociateHandler) CalculateFees(ctx txsystem.FeeContext) types.Fees {
	n := len(ctx.Transaction().Body.TokenAssociate.Tokens)
	return calculateFees(ctx, 1+n, int64(n)*relationBytes)
}
