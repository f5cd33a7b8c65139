package types

import "github.com/hashgraph/hedera-services-sub009/status"

type (
	// TransactionRecord is the side effect summary of one executed transaction.
	TransactionRecord struct {
		TransactionID  TransactionID       `json:"transactionId" yaml:"transactionId"`
		Type           string              `json:"type" yaml:"type"`
		Status         status.Code         `json:"status" yaml:"status"`
		ConsensusTime  int64               `json:"consensusTime" yaml:"consensusTime"`
		ChargedFee     int64               `json:"chargedFee" yaml:"chargedFee"`
		Transfers      []AccountAmount     `json:"transfers,omitempty" yaml:"transfers,omitempty"`
		TokenTransfers []TokenTransferList `json:"tokenTransfers,omitempty" yaml:"tokenTransfers,omitempty"`

		AutomaticAssociations []RelationID           `json:"automaticAssociations,omitempty" yaml:"automaticAssociations,omitempty"`
		NewPendingAirdrops    []PendingAirdropRecord `json:"newPendingAirdrops,omitempty" yaml:"newPendingAirdrops,omitempty"`
		// Beneficiaries maps deleted accounts to the account receiving their remaining hbar.
		Beneficiaries []Beneficiary `json:"beneficiaries,omitempty" yaml:"beneficiaries,omitempty"`

		Children []*TransactionRecord `json:"children,omitempty" yaml:"children,omitempty"`
	}

	PendingAirdropRecord struct {
		ID     PendingAirdropID `json:"id" yaml:"id"`
		Amount int64            `json:"amount,omitempty" yaml:"amount,omitempty"`
	}

	Beneficiary struct {
		DeletedAccountID  AccountID `json:"deletedAccountId" yaml:"deletedAccountId"`
		TransferAccountID AccountID `json:"transferAccountId" yaml:"transferAccountId"`
	}
)
