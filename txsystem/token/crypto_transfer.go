package token

import (
	"github.com/hashgraph/hedera-services-sub009/status"
	"github.com/hashgraph/hedera-services-sub009/txsystem"
	"github.com/hashgraph/hedera-services-sub009/txsystem/token/validators"
	"github.com/hashgraph/hedera-services-sub009/types"
)

/*
CryptoTransferHandler moves hbar, fungible tokens and NFTs. Receivers which
are not associated with a token are associated automatically when they
have a free automatic association slot.
*/
type CryptoTransferHandler struct{}

func (h *CryptoTransferHandler) PureChecks(tx *types.Transaction) error {
	body := tx.Body.CryptoTransfer
	return validators.TransferPureChecks(body.Transfers, body.TokenTransfers)
}

func (h *CryptoTransferHandler) PreHandle(ctx txsystem.PreHandleContext) error {
	body := ctx.Transaction().Body.CryptoTransfer
	if err := validators.ValidateTransferLimits(ctx.Config(), body.Transfers, body.TokenTransfers); err != nil {
		return err
	}
	for _, aa := range body.Transfers {
		if err := requireTransferKey(ctx, aa); err != nil {
			return err
		}
	}
	return requireTokenTransferKeys(ctx, body.TokenTransfers)
}

func (h *CryptoTransferHandler) Handle(ctx txsystem.HandleContext) error {
	body := ctx.Transaction().Body.CryptoTransfer
	l := newLedger(ctx)
	for _, aa := range body.Transfers {
		id, err := l.resolve(aa)
		if err != nil {
			return err
		}
		if aa.IsApproval && aa.Amount < 0 {
			if err := l.spendCryptoAllowance(id, -aa.Amount); err != nil {
				return err
			}
		}
		if err := l.adjustHbar(id, aa.Amount); err != nil {
			return err
		}
	}
	for _, tl := range body.TokenTransfers {
		token, err := l.token(tl.TokenID)
		if err != nil {
			return err
		}
		for _, aa := range tl.Transfers {
			id, err := l.resolve(aa)
			if err != nil {
				return err
			}
			if aa.IsApproval && aa.Amount < 0 {
				if err := l.spendTokenAllowance(id, token.TokenID, -aa.Amount); err != nil {
					return err
				}
			}
			if err := l.adjustToken(token, id, aa.Amount, true); err != nil {
				return err
			}
		}
		for _, nt := range tl.NftTransfers {
			if err := l.moveNft(token, nt.Serial, nt.SenderID, nt.ReceiverID, nt.IsApproval, true); err != nil {
				return err
			}
		}
	}
	return nil
}

func (h *CryptoTransferHandler) CalculateFees(ctx txsystem.FeeContext) types.Fees {
	body := ctx.Transaction().Body.CryptoTransfer
	fungible, nfts := validators.CountTokenTransfers(body.TokenTransfers)
	return calculateFees(ctx, len(body.Transfers)+fungible+nfts, 0)
}

/*
requireTransferKey requires the key of the sender unless the transfer uses
an allowance, and the key of the receiver when it requires receiver
signatures.
*/
func requireTransferKey(ctx txsystem.PreHandleContext, aa types.AccountAmount) error {
	id := aa.AccountID
	if id == 0 {
		var err error
		if id, err = ctx.Stores().Accounts.AccountIDByAlias(aa.Alias); err != nil {
			return err
		}
		if id == 0 {
			return txsystem.NewPreCheckError(status.InvalidAccountID)
		}
	}
	switch {
	case aa.Amount < 0 && !aa.IsApproval:
		return ctx.RequireKeyOrThrow(id, status.InvalidAccountID)
	case aa.Amount > 0:
		return ctx.RequireKeyIfReceiverSigRequired(id, status.InvalidAccountID)
	}
	return nil
}

func requireTokenTransferKeys(ctx txsystem.PreHandleContext, lists []types.TokenTransferList) error {
	for _, tl := range lists {
		for _, aa := range tl.Transfers {
			if err := requireTransferKey(ctx, aa); err != nil {
				return err
			}
		}
		for _, nt := range tl.NftTransfers {
			if !nt.IsApproval {
				if err := ctx.RequireKeyOrThrow(nt.SenderID, status.InvalidAccountID); err != nil {
					return err
				}
			}
			if err := ctx.RequireKeyIfReceiverSigRequired(nt.ReceiverID, status.InvalidAccountID); err != nil {
				return err
			}
		}
	}
	return nil
}
