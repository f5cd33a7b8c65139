package token

import (
	"github.com/hashgraph/hedera-services-sub009/txsystem"
	"github.com/hashgraph/hedera-services-sub009/types"
)

var _ txsystem.Module = (*Module)(nil)

// Module registers the handlers of the crypto and token transactions.
type Module struct {
	handlers map[string]txsystem.TransactionHandler
}

func NewModule() *Module {
	return &Module{
		handlers: map[string]txsystem.TransactionHandler{
			types.TxCryptoApproveAllowance: &ApproveAllowanceHandler{},
			types.TxCryptoDeleteAllowance:  &DeleteAllowanceHandler{},
			types.TxCryptoDelete:           &CryptoDeleteHandler{},
			types.TxCryptoTransfer:         &CryptoTransferHandler{},
			types.TxTokenAssociate:         &AssociateHandler{},
			types.TxTokenDissociate:        &DissociateHandler{},
			types.TxTokenAirdrop:           &AirdropHandler{},
			types.TxTokenCancelAirdrop:     &CancelAirdropHandler{},
			types.TxTokenClaimAirdrop:      &ClaimAirdropHandler{},
			types.TxTokenReject:            &RejectHandler{},
		},
	}
}

func (m *Module) TxHandlers() map[string]txsystem.TransactionHandler {
	return m.handlers
}
