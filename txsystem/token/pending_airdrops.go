package token

import (
	"fmt"

	"github.com/hashgraph/hedera-services-sub009/status"
	"github.com/hashgraph/hedera-services-sub009/store"
	"github.com/hashgraph/hedera-services-sub009/txsystem"
	"github.com/hashgraph/hedera-services-sub009/types"
)

/*
addPendingAirdrop stores an airdrop which the receiver has to claim. A new
airdrop becomes the head of the pending airdrop list of the sender, the
amount of an existing fungible airdrop is increased. Returns the amount
now pending.
*/
func addPendingAirdrop(stores *store.Writable, id types.PendingAirdropID, amount int64) (int64, error) {
	existing, err := stores.Airdrops.Get(id)
	if err != nil {
		return 0, fmt.Errorf("loading pending airdrop %s: %w", id, err)
	}
	if existing != nil {
		if !id.IsFungible() {
			return 0, txsystem.NewHandleError(status.PendingNftAirdropAlreadyExists)
		}
		existing.Amount += amount
		return existing.Amount, stores.Airdrops.Put(existing)
	}

	sender, err := stores.Accounts.Get(id.SenderID)
	if err != nil {
		return 0, err
	}
	if sender == nil {
		return 0, fmt.Errorf("sender %s of the airdrop does not exist", id.SenderID)
	}
	list := newAirdropList(sender, &stores.Airdrops.ReadableAirdropStore)
	if err := list.InsertHead(id, &types.AccountPendingAirdrop{ID: id, Amount: amount}); err != nil {
		return 0, err
	}
	for _, p := range list.Changed() {
		if err := stores.Airdrops.Put(p); err != nil {
			return 0, err
		}
	}
	sender.HeadPendingAirdropID = airdropPtr(list.Head())
	sender.NumberPendingAirdrops++
	if err := stores.Accounts.Put(sender); err != nil {
		return 0, err
	}
	return amount, nil
}

/*
removePendingAirdrops unlinks the airdrops from the lists of their senders
and deletes them. Every airdrop must exist.
*/
func removePendingAirdrops(stores *store.Writable, ids []types.PendingAirdropID) error {
	var senders []types.AccountID
	bySender := make(map[types.AccountID][]types.PendingAirdropID)
	for _, id := range ids {
		if _, ok := bySender[id.SenderID]; !ok {
			senders = append(senders, id.SenderID)
		}
		bySender[id.SenderID] = append(bySender[id.SenderID], id)
	}

	for _, senderID := range senders {
		sender, err := stores.Accounts.Get(senderID)
		if err != nil {
			return err
		}
		if sender == nil {
			return fmt.Errorf("sender %s of the airdrop does not exist", senderID)
		}
		list := newAirdropList(sender, &stores.Airdrops.ReadableAirdropStore)
		for _, id := range bySender[senderID] {
			if err := list.Remove(id); err != nil {
				return fmt.Errorf("unlinking pending airdrop: %w", err)
			}
		}
		for _, p := range list.Changed() {
			if err := stores.Airdrops.Put(p); err != nil {
				return err
			}
		}
		for _, id := range list.Removed() {
			if err := stores.Airdrops.Remove(id); err != nil {
				return err
			}
		}
		sender.HeadPendingAirdropID = airdropPtr(list.Head())
		sender.NumberPendingAirdrops -= int64(len(bySender[senderID]))
		if err := stores.Accounts.Put(sender); err != nil {
			return err
		}
	}
	return nil
}

// loadPendingAirdrops returns the airdrops in the order of ids, InvalidPendingAirdropID when one is missing.
func loadPendingAirdrops(stores *store.Writable, ids []types.PendingAirdropID) ([]*types.AccountPendingAirdrop, error) {
	res := make([]*types.AccountPendingAirdrop, 0, len(ids))
	for _, id := range ids {
		p, err := stores.Airdrops.Get(id)
		if err != nil {
			return nil, fmt.Errorf("loading pending airdrop %s: %w", id, err)
		}
		if p == nil {
			return nil, txsystem.NewHandleError(status.InvalidPendingAirdropID)
		}
		res = append(res, p)
	}
	return res, nil
}
