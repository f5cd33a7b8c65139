package token

import (
	"github.com/hashgraph/hedera-services-sub009/status"
	"github.com/hashgraph/hedera-services-sub009/txsystem"
	"github.com/hashgraph/hedera-services-sub009/txsystem/token/validators"
	"github.com/hashgraph/hedera-services-sub009/types"
)

// CancelAirdropHandler removes pending airdrops on behalf of their senders, no tokens move.
type CancelAirdropHandler struct{}

func (h *CancelAirdropHandler) PureChecks(tx *types.Transaction) error {
	return validators.PendingAirdropIDsPureChecks(tx.Body.TokenCancelAirdrop.PendingAirdrops)
}

func (h *CancelAirdropHandler) PreHandle(ctx txsystem.PreHandleContext) error {
	ids := ctx.Transaction().Body.TokenCancelAirdrop.PendingAirdrops
	if err := validators.ValidatePendingAirdropsLimit(ids, ctx.Config().Tokens.MaxAllowedPendingAirdropsToCancel); err != nil {
		return err
	}
	for _, id := range ids {
		if err := ctx.RequireKeyOrThrow(id.SenderID, status.InvalidAccountID); err != nil {
			return err
		}
	}
	return nil
}

func (h *CancelAirdropHandler) Handle(ctx txsystem.HandleContext) error {
	airdrops := ctx.Config().Tokens.Airdrops
	if !airdrops.Enabled || !airdrops.Cancel.Enabled {
		return txsystem.NewHandleError(status.NotSupported)
	}
	ids := ctx.Transaction().Body.TokenCancelAirdrop.PendingAirdrops
	stores := ctx.Stores()
	if _, err := loadPendingAirdrops(stores, ids); err != nil {
		return err
	}
	return removePendingAirdrops(stores, ids)
}

func (h *CancelAirdropHandler) CalculateFees(ctx txsystem.FeeContext) types.Fees {
	return calculateFees(ctx, len(ctx.Transaction().Body.TokenCancelAirdrop.PendingAirdrops), 0)
}
