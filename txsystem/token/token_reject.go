package token

import (
	"fmt"

	"github.com/hashgraph/hedera-services-sub009/status"
	"github.com/hashgraph/hedera-services-sub009/txsystem"
	"github.com/hashgraph/hedera-services-sub009/txsystem/token/validators"
	"github.com/hashgraph/hedera-services-sub009/types"
)

/*
RejectHandler returns tokens of the owner to the treasuries of the tokens:
the whole balance of a fungible token or the referenced NFTs.
*/
type RejectHandler struct{}

func (h *RejectHandler) PureChecks(tx *types.Transaction) error {
	return validators.TokenReferencesPureChecks(tx.Body.TokenReject.Rejections)
}

func (h *RejectHandler) PreHandle(ctx txsystem.PreHandleContext) error {
	body := ctx.Transaction().Body.TokenReject
	if err := txsystem.Precheck(len(body.Rejections) <= ctx.Config().Ledger.TokenRejects.MaxLen, status.TokenReferenceListSizeLimitExceeded); err != nil {
		return err
	}
	if body.OwnerID != 0 && body.OwnerID != ctx.Payer() {
		return ctx.RequireKeyOrThrow(body.OwnerID, status.InvalidOwnerID)
	}
	return nil
}

func (h *RejectHandler) Handle(ctx txsystem.HandleContext) error {
	body := ctx.Transaction().Body.TokenReject
	owner := body.OwnerID
	if owner == 0 {
		owner = ctx.Payer()
	}
	l := newLedger(ctx)
	if _, err := l.account(owner, status.InvalidOwnerID); err != nil {
		return err
	}
	for _, ref := range body.Rejections {
		if err := h.reject(l, owner, ref); err != nil {
			return err
		}
	}
	return nil
}

func (h *RejectHandler) reject(l *ledger, owner types.AccountID, ref types.TokenReference) error {
	tokenID := ref.FungibleToken
	if tokenID == 0 {
		tokenID = ref.Nft.TokenID
	}
	token, err := l.token(tokenID)
	if err != nil {
		return err
	}
	if token.TreasuryID == owner {
		return txsystem.NewHandleError(status.AccountIsTreasury)
	}

	if ref.FungibleToken != 0 {
		if !token.IsFungible() {
			return txsystem.NewHandleError(status.InvalidTokenID)
		}
		rel, err := l.relation(owner, token, false)
		if err != nil {
			return err
		}
		if rel.Balance <= 0 {
			return txsystem.NewHandleError(status.InsufficientTokenBalance)
		}
		if err := l.adjustToken(token, owner, -rel.Balance, false); err != nil {
			return err
		}
		return l.adjustToken(token, token.TreasuryID, rel.Balance, false)
	}

	_, nftOwner, err := l.nft(token, ref.Nft.Serial)
	if err != nil {
		return err
	}
	if nftOwner != owner {
		return txsystem.NewHandleError(status.InvalidOwnerID)
	}
	if err := l.moveNft(token, ref.Nft.Serial, owner, token.TreasuryID, false, false); err != nil {
		return fmt.Errorf("returning NFT %s to treasury: %w", ref.Nft, err)
	}
	return nil
}

func (h *RejectHandler) CalculateFees(ctx txsystem.FeeContext) types.Fees {
	return calculateFees(ctx, len(ctx.Transaction().Body.TokenReject.Rejections), 0)
}
