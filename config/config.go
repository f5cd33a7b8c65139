package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"

	"github.com/hashgraph/hedera-services-sub009/types"
)

/*
Configuration is the set of tunables the transaction handlers consult. It is
loaded once and then passed by value, handlers never modify it.

Field names follow the dotted property names, ie "tokens.maxPerAccount" is
Tokens.MaxPerAccount.
*/
type Configuration struct {
	Tokens    TokensConfig    `mapstructure:"tokens" yaml:"tokens"`
	Hedera    HederaConfig    `mapstructure:"hedera" yaml:"hedera"`
	Ledger    LedgerConfig    `mapstructure:"ledger" yaml:"ledger"`
	Entities  EntitiesConfig  `mapstructure:"entities" yaml:"entities"`
	AutoRenew AutoRenewConfig `mapstructure:"autoRenew" yaml:"autoRenew"`
	Fees      FeesConfig      `mapstructure:"fees" yaml:"fees"`
}

type TokensConfig struct {
	// global ceiling of token relations
	MaxAggregateRels    int64 `mapstructure:"maxAggregateRels" yaml:"maxAggregateRels"`
	MaxPerAccount       int64 `mapstructure:"maxPerAccount" yaml:"maxPerAccount"`
	MaxRelsPerInfoQuery int   `mapstructure:"maxRelsPerInfoQuery" yaml:"maxRelsPerInfoQuery"`

	Airdrops                          AirdropsConfig `mapstructure:"airdrops" yaml:"airdrops"`
	MaxAllowedPendingAirdropsToClaim  int            `mapstructure:"maxAllowedPendingAirdropsToClaim" yaml:"maxAllowedPendingAirdropsToClaim"`
	MaxAllowedPendingAirdropsToCancel int            `mapstructure:"maxAllowedPendingAirdropsToCancel" yaml:"maxAllowedPendingAirdropsToCancel"`
	MaxAllowedAirdropTransfersPerTx   int            `mapstructure:"maxAllowedAirdropTransfersPerTx" yaml:"maxAllowedAirdropTransfersPerTx"`
	Nfts                              NftsConfig     `mapstructure:"nfts" yaml:"nfts"`
}

type AirdropsConfig struct {
	Enabled bool          `mapstructure:"enabled" yaml:"enabled"`
	Claim   FeatureConfig `mapstructure:"claim" yaml:"claim"`
	Cancel  FeatureConfig `mapstructure:"cancel" yaml:"cancel"`
}

type FeatureConfig struct {
	Enabled bool `mapstructure:"enabled" yaml:"enabled"`
}

type NftsConfig struct {
	AreEnabled bool `mapstructure:"areEnabled" yaml:"areEnabled"`
}

type HederaConfig struct {
	Allowances AllowancesConfig `mapstructure:"allowances" yaml:"allowances"`
}

type AllowancesConfig struct {
	// max number of allowances an account may hold
	MaxAccountLimit int `mapstructure:"maxAccountLimit" yaml:"maxAccountLimit"`
	// max number of allowances in one transaction
	MaxTransactionLimit int  `mapstructure:"maxTransactionLimit" yaml:"maxTransactionLimit"`
	IsEnabled           bool `mapstructure:"isEnabled" yaml:"isEnabled"`
}

type LedgerConfig struct {
	Transfers      LimitConfig     `mapstructure:"transfers" yaml:"transfers"`
	TokenTransfers LimitConfig     `mapstructure:"tokenTransfers" yaml:"tokenTransfers"`
	NftTransfers   LimitConfig     `mapstructure:"nftTransfers" yaml:"nftTransfers"`
	TokenRejects   LimitConfig     `mapstructure:"tokenRejects" yaml:"tokenRejects"`
	FundingAccount types.AccountID `mapstructure:"fundingAccount" yaml:"fundingAccount"`
}

type LimitConfig struct {
	MaxLen int `mapstructure:"maxLen" yaml:"maxLen"`
}

type EntitiesConfig struct {
	LimitTokenAssociations bool `mapstructure:"limitTokenAssociations" yaml:"limitTokenAssociations"`
}

type AutoRenewConfig struct {
	ExpireAccounts bool `mapstructure:"expireAccounts" yaml:"expireAccounts"`
}

// FeesConfig holds the coefficients of the linear fee calculator.
type FeesConfig struct {
	NetworkBase      int64 `mapstructure:"networkBase" yaml:"networkBase"`
	NodeBase         int64 `mapstructure:"nodeBase" yaml:"nodeBase"`
	ServiceBase      int64 `mapstructure:"serviceBase" yaml:"serviceBase"`
	PerByte          int64 `mapstructure:"perByte" yaml:"perByte"`
	PerOperation     int64 `mapstructure:"perOperation" yaml:"perOperation"`
	PerRamByteSecond int64 `mapstructure:"perRamByteSecond" yaml:"perRamByteSecond"`
}

// Default returns the production defaults.
func Default() Configuration {
	return Configuration{
		Tokens: TokensConfig{
			MaxAggregateRels:    15_000_000,
			MaxPerAccount:       1000,
			MaxRelsPerInfoQuery: 1000,
			Airdrops: AirdropsConfig{
				Enabled: true,
				Claim:   FeatureConfig{Enabled: true},
				Cancel:  FeatureConfig{Enabled: true},
			},
			MaxAllowedPendingAirdropsToClaim:  10,
			MaxAllowedPendingAirdropsToCancel: 10,
			MaxAllowedAirdropTransfersPerTx:   10,
			Nfts:                              NftsConfig{AreEnabled: true},
		},
		Hedera: HederaConfig{
			Allowances: AllowancesConfig{
				MaxAccountLimit:     100,
				MaxTransactionLimit: 20,
				IsEnabled:           true,
			},
		},
		Ledger: LedgerConfig{
			Transfers:      LimitConfig{MaxLen: 10},
			TokenTransfers: LimitConfig{MaxLen: 10},
			NftTransfers:   LimitConfig{MaxLen: 10},
			TokenRejects:   LimitConfig{MaxLen: 10},
			FundingAccount: 98,
		},
		Fees: FeesConfig{
			NetworkBase:      10_000,
			NodeBase:         1_000,
			ServiceBase:      50_000,
			PerByte:          10,
			PerOperation:     5_000,
			PerRamByteSecond: 1,
		},
	}
}

/*
Load returns defaults overridden with the values set in "v".
*/
func Load(v *viper.Viper) (Configuration, error) {
	cfg := Default()
	if v != nil {
		if err := v.Unmarshal(&cfg); err != nil {
			return cfg, fmt.Errorf("decoding configuration: %w", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c *Configuration) Validate() error {
	var errs []error
	positive := func(name string, v int64) {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %d", name, v))
		}
	}
	positive("tokens.maxAggregateRels", c.Tokens.MaxAggregateRels)
	positive("tokens.maxPerAccount", c.Tokens.MaxPerAccount)
	positive("tokens.maxAllowedPendingAirdropsToClaim", int64(c.Tokens.MaxAllowedPendingAirdropsToClaim))
	positive("tokens.maxAllowedPendingAirdropsToCancel", int64(c.Tokens.MaxAllowedPendingAirdropsToCancel))
	positive("tokens.maxAllowedAirdropTransfersPerTx", int64(c.Tokens.MaxAllowedAirdropTransfersPerTx))
	positive("hedera.allowances.maxAccountLimit", int64(c.Hedera.Allowances.MaxAccountLimit))
	positive("hedera.allowances.maxTransactionLimit", int64(c.Hedera.Allowances.MaxTransactionLimit))
	positive("ledger.transfers.maxLen", int64(c.Ledger.Transfers.MaxLen))
	positive("ledger.tokenTransfers.maxLen", int64(c.Ledger.TokenTransfers.MaxLen))
	positive("ledger.nftTransfers.maxLen", int64(c.Ledger.NftTransfers.MaxLen))
	positive("ledger.tokenRejects.maxLen", int64(c.Ledger.TokenRejects.MaxLen))
	if c.Ledger.FundingAccount == 0 {
		errs = append(errs, errors.New("ledger.fundingAccount is not set"))
	}
	return errors.Join(errs...)
}
