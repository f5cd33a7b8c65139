package token

import (
	"fmt"

	"github.com/hashgraph/hedera-services-sub009/status"
	"github.com/hashgraph/hedera-services-sub009/txsystem"
	"github.com/hashgraph/hedera-services-sub009/txsystem/token/validators"
	"github.com/hashgraph/hedera-services-sub009/types"
)

/*
AirdropHandler distributes tokens to receivers. Receivers which are (or can
be automatically) associated with the token get the tokens right away, for
the rest a pending airdrop is created which the receiver may claim.
*/
type AirdropHandler struct{}

func (h *AirdropHandler) PureChecks(tx *types.Transaction) error {
	return validators.AirdropPureChecks(tx.Body.TokenAirdrop)
}

func (h *AirdropHandler) PreHandle(ctx txsystem.PreHandleContext) error {
	body := ctx.Transaction().Body.TokenAirdrop
	if err := validators.ValidateAirdropLimit(body, ctx.Config().Tokens.MaxAllowedAirdropTransfersPerTx); err != nil {
		return err
	}
	for _, tl := range body.TokenTransfers {
		for _, aa := range tl.Transfers {
			if aa.Amount > 0 {
				continue
			}
			if err := requireTransferKey(ctx, aa); err != nil {
				return err
			}
		}
		for _, nt := range tl.NftTransfers {
			if nt.IsApproval {
				continue
			}
			if err := ctx.RequireKeyOrThrow(nt.SenderID, status.InvalidAccountID); err != nil {
				return err
			}
		}
	}
	return nil
}

func (h *AirdropHandler) Handle(ctx txsystem.HandleContext) error {
	if !ctx.Config().Tokens.Airdrops.Enabled {
		return txsystem.NewHandleError(status.NotSupported)
	}
	l := newLedger(ctx)
	for _, tl := range ctx.Transaction().Body.TokenAirdrop.TokenTransfers {
		token, err := l.token(tl.TokenID)
		if err != nil {
			return err
		}
		if err := validators.ValidateAirdropCustomFees(token); err != nil {
			return err
		}
		if err := h.airdropFungible(l, token, tl.Transfers); err != nil {
			return err
		}
		for _, nt := range tl.NftTransfers {
			if err := h.airdropNft(l, token, nt); err != nil {
				return err
			}
		}
	}
	return nil
}

// receives reports whether the account can receive the token without claiming it.
func (h *AirdropHandler) receives(l *ledger, account types.AccountID, token types.TokenID) (bool, error) {
	rel, err := l.stores.Relations.Get(account, token)
	if err != nil {
		return false, fmt.Errorf("loading token relation: %w", err)
	}
	if rel != nil {
		return true, nil
	}
	return l.canAutoAssociate(account)
}

func (h *AirdropHandler) airdropFungible(l *ledger, token *types.Token, transfers []types.AccountAmount) error {
	if len(transfers) == 0 {
		return nil
	}
	var sender types.AccountAmount
	for _, aa := range transfers {
		if aa.Amount < 0 {
			sender = aa
		}
	}
	senderID, err := l.resolve(sender)
	if err != nil {
		return err
	}

	type credit struct {
		id     types.AccountID
		amount int64
	}
	var direct, pending []credit
	var directSum, total int64
	for _, aa := range transfers {
		if aa.Amount < 0 {
			continue
		}
		id, err := l.resolve(aa)
		if err != nil {
			return err
		}
		if _, err := l.account(id, status.InvalidAccountID); err != nil {
			return err
		}
		ok, err := h.receives(l, id, token.TokenID)
		if err != nil {
			return err
		}
		if ok {
			direct = append(direct, credit{id: id, amount: aa.Amount})
			directSum += aa.Amount
		} else {
			pending = append(pending, credit{id: id, amount: aa.Amount})
		}
		if total, ok = validators.AddAmount(total, aa.Amount); !ok {
			return txsystem.NewHandleError(status.InvalidAccountAmounts)
		}
	}

	if _, err := l.account(senderID, status.InvalidAccountID); err != nil {
		return err
	}
	rel, err := l.relation(senderID, token, false)
	if err != nil {
		return err
	}
	if err := checkTransferable(rel); err != nil {
		return err
	}
	if rel.Balance < total {
		return txsystem.NewHandleError(status.InsufficientTokenBalance)
	}

	if directSum > 0 {
		if sender.IsApproval {
			if err := l.spendTokenAllowance(senderID, token.TokenID, directSum); err != nil {
				return err
			}
		}
		if err := l.adjustToken(token, senderID, -directSum, false); err != nil {
			return err
		}
		for _, c := range direct {
			if err := l.adjustToken(token, c.id, c.amount, true); err != nil {
				return err
			}
		}
	}
	for _, c := range pending {
		id := types.PendingAirdropIDForToken(senderID, c.id, token.TokenID)
		amount, err := addPendingAirdrop(l.stores, id, c.amount)
		if err != nil {
			return err
		}
		l.rec.AddPendingAirdrop(id, amount)
	}
	return nil
}

func (h *AirdropHandler) airdropNft(l *ledger, token *types.Token, nt types.NftTransfer) error {
	if _, err := l.account(nt.ReceiverID, status.InvalidAccountID); err != nil {
		return err
	}
	ok, err := h.receives(l, nt.ReceiverID, token.TokenID)
	if err != nil {
		return err
	}
	if ok {
		return l.moveNft(token, nt.Serial, nt.SenderID, nt.ReceiverID, nt.IsApproval, true)
	}

	_, owner, err := l.nft(token, nt.Serial)
	if err != nil {
		return err
	}
	if owner != nt.SenderID {
		return txsystem.NewHandleError(status.SenderDoesNotOwnNftSerialNo)
	}
	if _, err := l.account(nt.SenderID, status.InvalidAccountID); err != nil {
		return err
	}
	id := types.PendingAirdropIDForNft(nt.SenderID, nt.ReceiverID, types.NftID{TokenID: token.TokenID, Serial: nt.Serial})
	if _, err := addPendingAirdrop(l.stores, id, 0); err != nil {
		return err
	}
	l.rec.AddPendingAirdrop(id, 0)
	return nil
}

func (h *AirdropHandler) CalculateFees(ctx txsystem.FeeContext) types.Fees {
	body := ctx.Transaction().Body.TokenAirdrop
	fungible, nfts := validators.CountTokenTransfers(body.TokenTransfers)
	n := fungible + nfts
	return calculateFees(ctx, n, int64(n)*airdropBytes)
}
