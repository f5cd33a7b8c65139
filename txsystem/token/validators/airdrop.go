package validators

import (
	"github.com/hashgraph/hedera-services-sub009/status"
	"github.com/hashgraph/hedera-services-sub009/txsystem"
	"github.com/hashgraph/hedera-services-sub009/types"
)

/*
PendingAirdropIDsPureChecks validates the list of pending airdrops of a
claim or cancel transaction.
*/
func PendingAirdropIDsPureChecks(ids []types.PendingAirdropID) error {
	if len(ids) == 0 {
		return txsystem.NewPreCheckError(status.EmptyPendingAirdropIDList)
	}
	seen := make(map[types.PendingAirdropID]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			return txsystem.NewPreCheckError(status.PendingAirdropIDRepeated)
		}
		seen[id] = struct{}{}
		if err := validatePendingAirdropID(id); err != nil {
			return err
		}
	}
	return nil
}

func validatePendingAirdropID(id types.PendingAirdropID) error {
	if id.SenderID == 0 || id.ReceiverID == 0 {
		return txsystem.NewPreCheckError(status.InvalidPendingAirdropID)
	}
	fungible := id.FungibleToken != 0
	nft := !id.NonFungibleToken.IsZero()
	if fungible == nft {
		return txsystem.NewPreCheckError(status.InvalidPendingAirdropID)
	}
	if nft {
		if id.NonFungibleToken.TokenID == 0 {
			return txsystem.NewPreCheckError(status.InvalidPendingAirdropID)
		}
		if id.NonFungibleToken.Serial <= 0 {
			return txsystem.NewPreCheckError(status.InvalidTokenNftSerialNumber)
		}
	}
	return nil
}

// ValidatePendingAirdropsLimit checks the length of the pending airdrop list.
func ValidatePendingAirdropsLimit(ids []types.PendingAirdropID, limit int) error {
	return txsystem.Precheck(len(ids) <= limit, status.PendingAirdropIDListTooLong)
}

/*
AirdropPureChecks validates the token lists of TokenAirdrop. On top of the
transfer rules every fungible list must have exactly one sender, the
pending part of the airdrop is owed by it.
*/
func AirdropPureChecks(body *types.TokenAirdropBody) error {
	if body == nil || len(body.TokenTransfers) == 0 {
		return txsystem.NewPreCheckError(status.EmptyTokenTransferBody)
	}
	if err := TokenTransfersPureChecks(body.TokenTransfers); err != nil {
		return err
	}
	for _, tl := range body.TokenTransfers {
		if len(tl.Transfers) == 0 {
			continue
		}
		senders := 0
		for _, aa := range tl.Transfers {
			if aa.Amount < 0 {
				senders++
			}
		}
		if senders != 1 {
			return txsystem.NewPreCheckError(status.InvalidAccountAmounts)
		}
	}
	return nil
}

// ValidateAirdropLimit checks the number of transfers of TokenAirdrop.
func ValidateAirdropLimit(body *types.TokenAirdropBody, limit int) error {
	fungible, nfts := CountTokenTransfers(body.TokenTransfers)
	return txsystem.Precheck(fungible+nfts <= limit, status.TokenReferenceListSizeLimitExceeded)
}
