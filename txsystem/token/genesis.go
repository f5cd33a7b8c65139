package token

import (
	"errors"
	"fmt"

	"github.com/hashgraph/hedera-services-sub009/config"
	"github.com/hashgraph/hedera-services-sub009/store"
	"github.com/hashgraph/hedera-services-sub009/txsystem/token/validators"
	"github.com/hashgraph/hedera-services-sub009/types"
)

type (
	/*
	Genesis describes the initial ledger. Derived fields (list heads and links,
	counters, NFT supply) are computed when the genesis is applied, values
	given for them are ignored.
	*/
	Genesis struct {
		Accounts     []types.Account      `yaml:"accounts"`
		Tokens       []types.Token        `yaml:"tokens"`
		Associations []GenesisAssociation `yaml:"associations"`
		Nfts         []types.Nft          `yaml:"nfts"`
	}

	// GenesisAssociation relates an account with a token. The treasury of a token
	// is associated implicitly, an entry for it only sets the balance and flags.
	GenesisAssociation struct {
		AccountID  types.AccountID `yaml:"accountId"`
		TokenID    types.TokenID   `yaml:"tokenId"`
		Balance    int64           `yaml:"balance"`
		Frozen     bool            `yaml:"frozen"`
		KycGranted bool            `yaml:"kycGranted"`
	}
)

var ErrInvalidGenesis = errors.New("invalid genesis")

/*
Apply writes the genesis into the stores. Relations are inserted at the head
of the account's list in the order of Associations so the last association
of an account becomes its head.
*/
func (g *Genesis) Apply(cfg *config.Configuration, stores *store.Writable) error {
	if err := g.addAccounts(stores); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidGenesis, err)
	}
	tokens, err := g.addTokens(cfg, stores)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidGenesis, err)
	}
	if err := g.addAssociations(cfg, stores, tokens); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidGenesis, err)
	}
	if err := g.addNfts(stores, tokens); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidGenesis, err)
	}
	for _, id := range tokenOrder(g.Tokens) {
		t := tokens[id]
		if t.SupplyType == types.Finite && t.MaxSupply < t.TotalSupply {
			return fmt.Errorf("%w: token %s supply %d exceeds max supply %d", ErrInvalidGenesis, id, t.TotalSupply, t.MaxSupply)
		}
	}
	for _, id := range tokenOrder(g.Tokens) {
		if err := stores.Tokens.Put(tokens[id]); err != nil {
			return err
		}
	}
	return nil
}

func (g *Genesis) addAccounts(stores *store.Writable) error {
	for i := range g.Accounts {
		acc := g.Accounts[i].Clone()
		if acc.AccountID == 0 {
			return fmt.Errorf("account #%d: account ID is not set", i)
		}
		if stores.Accounts.Contains(acc.AccountID) {
			return fmt.Errorf("account %s: duplicate account ID", acc.AccountID)
		}
		if acc.Balance < 0 {
			return fmt.Errorf("account %s: negative balance", acc.AccountID)
		}
		if id, err := stores.Accounts.AccountIDByAlias(acc.Alias); err != nil {
			return err
		} else if id != 0 {
			return fmt.Errorf("account %s: alias %q is used by %s", acc.AccountID, acc.Alias, id)
		}
		acc.HeadTokenID = 0
		acc.HeadPendingAirdropID = nil
		acc.NumberAssociations = 0
		acc.NumberPositiveBalances = 0
		acc.NumberTreasuryTitles = 0
		acc.NumberPendingAirdrops = 0
		acc.NumberOwnedNfts = 0
		acc.UsedAutoAssociations = 0
		if err := stores.Accounts.Put(acc); err != nil {
			return err
		}
	}
	return nil
}

// addTokens stores the tokens and associates them with the treasuries.
func (g *Genesis) addTokens(cfg *config.Configuration, stores *store.Writable) (map[types.TokenID]*types.Token, error) {
	tokens := make(map[types.TokenID]*types.Token, len(g.Tokens))
	for i := range g.Tokens {
		token := g.Tokens[i].Clone()
		if token.TokenID == 0 {
			return nil, fmt.Errorf("token #%d: token ID is not set", i)
		}
		if _, ok := tokens[token.TokenID]; ok {
			return nil, fmt.Errorf("token %s: duplicate token ID", token.TokenID)
		}
		if err := validators.ValidateCustomFees(token.CustomFees); err != nil {
			return nil, fmt.Errorf("token %s custom fees: %w", token.TokenID, err)
		}
		treasury, err := stores.Accounts.Get(token.TreasuryID)
		if err != nil {
			return nil, err
		}
		if treasury == nil {
			return nil, fmt.Errorf("token %s: treasury %s does not exist", token.TokenID, token.TreasuryID)
		}
		if !token.IsFungible() {
			token.TotalSupply = 0
			token.LastUsedSerial = 0
		}
		if err := stores.Tokens.Put(token); err != nil {
			return nil, err
		}
		if _, err := associate(cfg, stores, treasury, []*types.Token{token}, false); err != nil {
			return nil, fmt.Errorf("associating token %s with treasury: %w", token.TokenID, err)
		}
		treasury.NumberTreasuryTitles++
		if err := stores.Accounts.Put(treasury); err != nil {
			return nil, err
		}
		tokens[token.TokenID] = token
	}
	return tokens, nil
}

func (g *Genesis) addAssociations(cfg *config.Configuration, stores *store.Writable, tokens map[types.TokenID]*types.Token) error {
	supply := make(map[types.TokenID]int64)
	for _, a := range g.Associations {
		token, ok := tokens[a.TokenID]
		if !ok {
			return fmt.Errorf("association %s/%s: token does not exist", a.AccountID, a.TokenID)
		}
		acc, err := stores.Accounts.Get(a.AccountID)
		if err != nil {
			return err
		}
		if acc == nil {
			return fmt.Errorf("association %s/%s: account does not exist", a.AccountID, a.TokenID)
		}
		if a.Balance < 0 || (a.Balance != 0 && !token.IsFungible()) {
			return fmt.Errorf("association %s/%s: invalid balance %d", a.AccountID, a.TokenID, a.Balance)
		}

		rel, err := stores.Relations.Get(a.AccountID, a.TokenID)
		if err != nil {
			return err
		}
		switch {
		case rel == nil:
			created, err := associate(cfg, stores, acc, []*types.Token{token}, false)
			if err != nil {
				return fmt.Errorf("association %s/%s: %w", a.AccountID, a.TokenID, err)
			}
			rel = created[0]
		case a.AccountID != token.TreasuryID:
			return fmt.Errorf("association %s/%s: duplicate association", a.AccountID, a.TokenID)
		}
		rel.Frozen = rel.Frozen || a.Frozen
		rel.KycGranted = rel.KycGranted || a.KycGranted
		if a.Balance > 0 && rel.Balance == 0 {
			acc.NumberPositiveBalances++
		}
		rel.Balance += a.Balance
		supply[a.TokenID] += a.Balance
		if err := stores.Relations.Put(rel); err != nil {
			return err
		}
		if err := stores.Accounts.Put(acc); err != nil {
			return err
		}
	}

	for id, token := range tokens {
		if !token.IsFungible() {
			continue
		}
		switch {
		case token.TotalSupply == 0:
			token.TotalSupply = supply[id]
		case token.TotalSupply != supply[id]:
			return fmt.Errorf("token %s: total supply %d does not match the balances %d", id, token.TotalSupply, supply[id])
		}
	}
	return nil
}

// addNfts stores the NFTs, the owner must be associated with the token.
func (g *Genesis) addNfts(stores *store.Writable, tokens map[types.TokenID]*types.Token) error {
	for i := range g.Nfts {
		nft := g.Nfts[i]
		token, ok := tokens[nft.NftID.TokenID]
		if !ok || token.IsFungible() {
			return fmt.Errorf("NFT %s: non-fungible token does not exist", nft.NftID)
		}
		if nft.NftID.Serial <= 0 {
			return fmt.Errorf("NFT %s: invalid serial number", nft.NftID)
		}
		existing, err := stores.Nfts.Get(nft.NftID)
		if err != nil {
			return err
		}
		if existing != nil {
			return fmt.Errorf("NFT %s: duplicate serial number", nft.NftID)
		}
		if nft.OwnerID == token.TreasuryID {
			nft.OwnerID = 0
		}
		nft.SpenderID = 0

		owner := ownerOf(&nft, token)
		rel, err := stores.Relations.Get(owner, token.TokenID)
		if err != nil {
			return err
		}
		if rel == nil {
			return fmt.Errorf("NFT %s: owner %s is not associated with the token", nft.NftID, owner)
		}
		acc, err := stores.Accounts.Get(owner)
		if err != nil {
			return err
		}
		if rel.Balance == 0 {
			acc.NumberPositiveBalances++
		}
		rel.Balance++
		acc.NumberOwnedNfts++
		token.TotalSupply++
		token.LastUsedSerial = max(token.LastUsedSerial, nft.NftID.Serial)

		if err := stores.Nfts.Put(&nft); err != nil {
			return err
		}
		if err := stores.Relations.Put(rel); err != nil {
			return err
		}
		if err := stores.Accounts.Put(acc); err != nil {
			return err
		}
	}
	return nil
}

// tokenOrder returns token IDs in the order of the genesis file.
func tokenOrder(tokens []types.Token) []types.TokenID {
	ids := make([]types.TokenID, len(tokens))
	for i, t := range tokens {
		ids[i] = t.TokenID
	}
	return ids
}
