package token

import (
	"github.com/hashgraph/hedera-services-sub009/config"
	"github.com/hashgraph/hedera-services-sub009/status"
	"github.com/hashgraph/hedera-services-sub009/store"
	"github.com/hashgraph/hedera-services-sub009/txsystem"
	"github.com/hashgraph/hedera-services-sub009/types"
)

/*
associate creates relations of the account with the tokens. Every new
relation is inserted at the head of the account's relation list, in the
order of "tokens". The counters and head of "acc" are updated, storing the
account is up to the caller.

Automatic associations consume the free auto-association slots of the
account.
*/
func associate(cfg *config.Configuration, stores *store.Writable, acc *types.Account, tokens []*types.Token, automatic bool) ([]*types.TokenRelation, error) {
	n := int64(len(tokens))
	if stores.Relations.SizeOfState()+n > cfg.Tokens.MaxAggregateRels {
		return nil, txsystem.NewHandleError(status.MaxEntitiesInPriceRegimeHaveBeenCreated)
	}
	if cfg.Entities.LimitTokenAssociations && acc.NumberAssociations+n > cfg.Tokens.MaxPerAccount {
		return nil, txsystem.NewHandleError(status.TokensPerAccountLimitExceeded)
	}

	list := newRelationList(acc, &stores.Relations.ReadableTokenRelationStore)
	created := make([]*types.TokenRelation, 0, len(tokens))
	for _, token := range tokens {
		existing, err := stores.Relations.Get(acc.AccountID, token.TokenID)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, txsystem.NewHandleError(status.TokenAlreadyAssociatedToAccount)
		}
		if automatic {
			if !acc.HasFreeAutoAssociationSlot() {
				return nil, txsystem.NewHandleError(status.NoRemainingAutomaticAssociations)
			}
			acc.UsedAutoAssociations++
		}
		rel := &types.TokenRelation{
			AccountID:            acc.AccountID,
			TokenID:              token.TokenID,
			Frozen:               token.FreezeKey != "" && token.AccountsFrozenByDefault,
			KycGranted:           token.KycKey == "",
			AutomaticAssociation: automatic,
		}
		if err := list.InsertHead(token.TokenID, rel); err != nil {
			return nil, err
		}
		created = append(created, rel)
	}
	for _, rel := range list.Changed() {
		if err := stores.Relations.Put(rel); err != nil {
			return nil, err
		}
	}
	acc.HeadTokenID = list.Head()
	acc.NumberAssociations += n
	return created, nil
}

/*
dissociate unlinks the relations from the account's relation list and
removes them. The counters and head of "acc" are updated, storing the
account is up to the caller.
*/
func dissociate(stores *store.Writable, acc *types.Account, rels []*types.TokenRelation) error {
	list := newRelationList(acc, &stores.Relations.ReadableTokenRelationStore)
	for _, rel := range rels {
		if err := list.Remove(rel.TokenID); err != nil {
			return err
		}
		acc.NumberAssociations--
		if rel.AutomaticAssociation && acc.UsedAutoAssociations > 0 {
			acc.UsedAutoAssociations--
		}
	}
	for _, rel := range list.Changed() {
		if err := stores.Relations.Put(rel); err != nil {
			return err
		}
	}
	for _, rel := range rels {
		if err := stores.Relations.Remove(rel); err != nil {
			return err
		}
	}
	acc.HeadTokenID = list.Head()
	return nil
}
