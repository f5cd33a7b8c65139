package token

import (
	"github.com/hashgraph/hedera-services-sub009/status"
	"github.com/hashgraph/hedera-services-sub009/txsystem"
	"github.com/hashgraph/hedera-services-sub009/txsystem/token/validators"
	"github.com/hashgraph/hedera-services-sub009/types"
)

/*
ClaimAirdropHandler moves the tokens of pending airdrops to their receivers
and removes the airdrops. Receivers not yet associated with the token are
associated explicitly, no automatic association slot is used.
*/
type ClaimAirdropHandler struct{}

func (h *ClaimAirdropHandler) PureChecks(tx *types.Transaction) error {
	return validators.PendingAirdropIDsPureChecks(tx.Body.TokenClaimAirdrop.PendingAirdrops)
}

func (h *ClaimAirdropHandler) PreHandle(ctx txsystem.PreHandleContext) error {
	ids := ctx.Transaction().Body.TokenClaimAirdrop.PendingAirdrops
	if err := validators.ValidatePendingAirdropsLimit(ids, ctx.Config().Tokens.MaxAllowedPendingAirdropsToClaim); err != nil {
		return err
	}
	for _, id := range ids {
		if err := ctx.RequireKeyOrThrow(id.ReceiverID, status.InvalidAccountID); err != nil {
			return err
		}
	}
	return nil
}

func (h *ClaimAirdropHandler) Handle(ctx txsystem.HandleContext) error {
	airdrops := ctx.Config().Tokens.Airdrops
	if !airdrops.Enabled || !airdrops.Claim.Enabled {
		return txsystem.NewHandleError(status.NotSupported)
	}
	ids := ctx.Transaction().Body.TokenClaimAirdrop.PendingAirdrops
	stores := ctx.Stores()
	pending, err := loadPendingAirdrops(stores, ids)
	if err != nil {
		return err
	}

	l := newLedger(ctx)
	for _, p := range pending {
		if err := h.claim(l, p); err != nil {
			return err
		}
	}
	return removePendingAirdrops(stores, ids)
}

func (h *ClaimAirdropHandler) claim(l *ledger, p *types.AccountPendingAirdrop) error {
	token, err := l.token(p.ID.TokenID())
	if err != nil {
		return err
	}
	if _, err := l.account(p.ID.SenderID, status.InvalidAccountID); err != nil {
		return err
	}
	if _, err := l.account(p.ID.ReceiverID, status.InvalidAccountID); err != nil {
		return err
	}
	rel, err := l.stores.Relations.Get(p.ID.ReceiverID, token.TokenID)
	if err != nil {
		return err
	}
	if rel == nil {
		if err := l.associate(p.ID.ReceiverID, token, false); err != nil {
			return err
		}
	}

	if p.ID.IsFungible() {
		if err := l.adjustToken(token, p.ID.SenderID, -p.Amount, false); err != nil {
			return err
		}
		return l.adjustToken(token, p.ID.ReceiverID, p.Amount, false)
	}
	return l.moveNft(token, p.ID.NonFungibleToken.Serial, p.ID.SenderID, p.ID.ReceiverID, false, false)
}

func (h *ClaimAirdropHandler) CalculateFees(ctx txsystem.FeeContext) types.Fees {
	return calculateFees(ctx, len(ctx.Transaction().Body.TokenClaimAirdrop.PendingAirdrops), 0)
}
