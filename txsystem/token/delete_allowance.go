package token

import (
	"fmt"

	"github.com/hashgraph/hedera-services-sub009/status"
	"github.com/hashgraph/hedera-services-sub009/txsystem"
	"github.com/hashgraph/hedera-services-sub009/txsystem/token/validators"
	"github.com/hashgraph/hedera-services-sub009/types"
)

/*
DeleteAllowanceHandler clears the spender of NFT serials. Serials which
don't exist are skipped.
*/
type DeleteAllowanceHandler struct{}

func (h *DeleteAllowanceHandler) PureChecks(tx *types.Transaction) error {
	return validators.DeleteAllowancePureChecks(tx.Body.CryptoDeleteAllowance)
}

func (h *DeleteAllowanceHandler) PreHandle(ctx txsystem.PreHandleContext) error {
	for _, a := range ctx.Transaction().Body.CryptoDeleteAllowance.NftAllowances {
		if a.OwnerID == 0 || a.OwnerID == ctx.Payer() {
			continue
		}
		if err := ctx.RequireKeyOrThrow(a.OwnerID, status.InvalidAllowanceOwnerID); err != nil {
			return err
		}
	}
	return nil
}

func (h *DeleteAllowanceHandler) Handle(ctx txsystem.HandleContext) error {
	cfg := ctx.Config().Hedera.Allowances
	if !cfg.IsEnabled {
		return txsystem.NewHandleError(status.NotSupported)
	}
	body := ctx.Transaction().Body.CryptoDeleteAllowance
	if err := validators.ValidateAllowanceCount(validators.AggregateDeleteAllowances(body), cfg.MaxTransactionLimit); err != nil {
		return err
	}

	a := &allowances{ctx: ctx}
	nfts := ctx.Stores().Nfts
	for _, ra := range body.NftAllowances {
		owner, err := a.owner(ra.OwnerID, 0)
		if err != nil {
			return err
		}
		token, err := a.associatedToken(owner, ra.TokenID)
		if err != nil {
			return err
		}
		if token.IsFungible() {
			return txsystem.NewHandleError(status.FungibleTokenInNftAllowances)
		}
		for _, serial := range ra.SerialNumbers {
			nft, err := nfts.Get(types.NftID{TokenID: ra.TokenID, Serial: serial})
			if err != nil {
				return fmt.Errorf("loading NFT: %w", err)
			}
			if nft == nil {
				continue
			}
			if ownerOf(nft, token) != owner.AccountID {
				return txsystem.NewHandleError(status.SenderDoesNotOwnNftSerialNo)
			}
			if nft.SpenderID == 0 {
				continue
			}
			nft.SpenderID = 0
			if err := nfts.Put(nft); err != nil {
				return err
			}
		}
	}
	return nil
}

func (h *DeleteAllowanceHandler) CalculateFees(ctx txsystem.FeeContext) types.Fees {
	return calculateFees(ctx, validators.AggregateDeleteAllowances(ctx.Transaction().Body.CryptoDeleteAllowance), 0)
}
