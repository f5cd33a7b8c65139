package txsystem

import (
	"github.com/hashgraph/hedera-services-sub009/status"
	"github.com/hashgraph/hedera-services-sub009/types"
)

type RecordType int

const (
	// RecordTypeUser is the record of the transaction submitted by the user.
	RecordTypeUser RecordType = iota
	// RecordTypeChild is a record of an operation triggered by the user transaction.
	RecordTypeChild
)

/*
RecordBuilder collects the side effects of a transaction into a
types.TransactionRecord.
*/
type RecordBuilder struct {
	recordType RecordType
	record     types.TransactionRecord
}

func NewRecordBuilder(recordType RecordType) *RecordBuilder {
	return &RecordBuilder{recordType: recordType, record: types.TransactionRecord{Status: status.OK}}
}

func (b *RecordBuilder) Type() RecordType { return b.recordType }

func (b *RecordBuilder) Status() status.Code { return b.record.Status }

func (b *RecordBuilder) SetStatus(code status.Code) *RecordBuilder {
	b.record.Status = code
	return b
}

func (b *RecordBuilder) SetTransaction(id types.TransactionID, txType string, consensusTime int64) *RecordBuilder {
	b.record.TransactionID = id
	b.record.Type = txType
	b.record.ConsensusTime = consensusTime
	return b
}

func (b *RecordBuilder) SetChargedFee(fee int64) *RecordBuilder {
	b.record.ChargedFee = fee
	return b
}

/*
AddTransfer adds hbar movement of the account, amounts of the same account
are merged and zero sum entries are removed.
*/
func (b *RecordBuilder) AddTransfer(account types.AccountID, amount int64) *RecordBuilder {
	b.record.Transfers = addAmount(b.record.Transfers, account, amount)
	return b
}

// AddTokenTransfer adds fungible token movement of the account.
func (b *RecordBuilder) AddTokenTransfer(token types.TokenID, account types.AccountID, amount int64) *RecordBuilder {
	l := b.tokenTransferList(token)
	l.Transfers = addAmount(l.Transfers, account, amount)
	return b
}

func (b *RecordBuilder) AddNftTransfer(token types.TokenID, sender, receiver types.AccountID, serial int64) *RecordBuilder {
	l := b.tokenTransferList(token)
	l.NftTransfers = append(l.NftTransfers, types.NftTransfer{SenderID: sender, ReceiverID: receiver, Serial: serial})
	return b
}

func (b *RecordBuilder) AddAutomaticAssociation(id types.RelationID) *RecordBuilder {
	b.record.AutomaticAssociations = append(b.record.AutomaticAssociations, id)
	return b
}

func (b *RecordBuilder) AddPendingAirdrop(id types.PendingAirdropID, amount int64) *RecordBuilder {
	b.record.NewPendingAirdrops = append(b.record.NewPendingAirdrops, types.PendingAirdropRecord{ID: id, Amount: amount})
	return b
}

// AddBeneficiary records the account which receives the hbar of the deleted account.
func (b *RecordBuilder) AddBeneficiary(deleted, beneficiary types.AccountID) *RecordBuilder {
	b.record.Beneficiaries = append(b.record.Beneficiaries, types.Beneficiary{DeletedAccountID: deleted, TransferAccountID: beneficiary})
	return b
}

/*
Build returns the record. Side effects of a failed transaction, except the
charged fee, are not part of the record.
*/
func (b *RecordBuilder) Build() *types.TransactionRecord {
	rec := b.record
	if rec.Status != status.OK {
		rec.Transfers = nil
		rec.TokenTransfers = nil
		rec.AutomaticAssociations = nil
		rec.NewPendingAirdrops = nil
		rec.Beneficiaries = nil
	}
	return &rec
}

func (b *RecordBuilder) tokenTransferList(token types.TokenID) *types.TokenTransferList {
	for i := range b.record.TokenTransfers {
		if b.record.TokenTransfers[i].TokenID == token {
			return &b.record.TokenTransfers[i]
		}
	}
	b.record.TokenTransfers = append(b.record.TokenTransfers, types.TokenTransferList{TokenID: token})
	return &b.record.TokenTransfers[len(b.record.TokenTransfers)-1]
}

func addAmount(list []types.AccountAmount, account types.AccountID, amount int64) []types.AccountAmount {
	for i := range list {
		if list[i].AccountID == account {
			list[i].Amount += amount
			if list[i].Amount == 0 {
				return append(list[:i], list[i+1:]...)
			}
			return list
		}
	}
	if amount == 0 {
		return list
	}
	return append(list, types.AccountAmount{AccountID: account, Amount: amount})
}
