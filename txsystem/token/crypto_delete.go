package token

import (
	"github.com/hashgraph/hedera-services-sub009/status"
	"github.com/hashgraph/hedera-services-sub009/txsystem"
	"github.com/hashgraph/hedera-services-sub009/txsystem/token/validators"
	"github.com/hashgraph/hedera-services-sub009/types"
)

/*
CryptoDeleteHandler marks an account deleted. The hbar of the account is
not moved, the transfer account is recorded as the beneficiary.
*/
type CryptoDeleteHandler struct{}

func (h *CryptoDeleteHandler) PureChecks(tx *types.Transaction) error {
	body := tx.Body.CryptoDelete
	if body.DeleteAccountID == 0 || body.TransferAccountID == 0 {
		return txsystem.NewPreCheckError(status.AccountIDDoesNotExist)
	}
	return txsystem.Precheck(body.DeleteAccountID != body.TransferAccountID, status.TransferAccountSameAsDeleteAccount)
}

func (h *CryptoDeleteHandler) PreHandle(ctx txsystem.PreHandleContext) error {
	body := ctx.Transaction().Body.CryptoDelete
	if err := ctx.RequireKeyOrThrow(body.DeleteAccountID, status.InvalidAccountID); err != nil {
		return err
	}
	return ctx.RequireKeyIfReceiverSigRequired(body.TransferAccountID, status.InvalidTransferAccountID)
}

func (h *CryptoDeleteHandler) Handle(ctx txsystem.HandleContext) error {
	body := ctx.Transaction().Body.CryptoDelete
	accounts := ctx.Stores().Accounts

	target, err := accounts.Get(body.DeleteAccountID)
	if err != nil {
		return err
	}
	if target == nil {
		return txsystem.NewHandleError(status.InvalidAccountID)
	}
	transfer, err := accounts.Get(body.TransferAccountID)
	if err != nil {
		return err
	}
	if transfer == nil {
		return txsystem.NewHandleError(status.InvalidTransferAccountID)
	}
	if target.Deleted || transfer.Deleted {
		return txsystem.NewHandleError(status.AccountDeleted)
	}
	expiry := ctx.ExpiryValidator()
	if expiry.IsDetached(target) || expiry.IsDetached(transfer) {
		return txsystem.NewHandleError(status.AccountExpiredAndPendingRemoval)
	}
	if err := validators.ValidateNoTreasuryTitles(target); err != nil {
		return err
	}
	if err := txsystem.Ensure(target.NumberPositiveBalances == 0, status.TransactionRequiresZeroTokenBalances); err != nil {
		return err
	}

	target.Deleted = true
	if err := accounts.Put(target); err != nil {
		return err
	}
	ctx.DeletedAccountBeneficiaries().Add(target.AccountID, transfer.AccountID)
	ctx.RecordBuilder().AddBeneficiary(target.AccountID, transfer.AccountID)
	return nil
}

func (h *CryptoDeleteHandler) CalculateFees(ctx txsystem.FeeContext) types.Fees {
	return calculateFees(ctx, 2, 0)
}
