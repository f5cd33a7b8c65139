package config

import (
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	require.EqualValues(t, 10, cfg.Tokens.MaxAllowedPendingAirdropsToClaim)
	require.EqualValues(t, 10, cfg.Tokens.MaxAllowedPendingAirdropsToCancel)
	require.True(t, cfg.Tokens.Airdrops.Cancel.Enabled)
	require.False(t, cfg.Entities.LimitTokenAssociations)
}

func TestLoad(t *testing.T) {
	t.Run("nil viper", func(t *testing.T) {
		cfg, err := Load(nil)
		require.NoError(t, err)
		require.Equal(t, Default(), cfg)
	})

	t.Run("yaml overrides", func(t *testing.T) {
		v := viper.New()
		v.SetConfigType("yaml")
		require.NoError(t, v.ReadConfig(strings.NewReader(`
tokens:
  maxPerAccount: 3
  airdrops:
    claim:
      enabled: false
hedera:
  allowances:
    maxAccountLimit: 2
ledger:
  tokenRejects:
    maxLen: 4
entities:
  limitTokenAssociations: true
`)))
		cfg, err := Load(v)
		require.NoError(t, err)
		require.EqualValues(t, 3, cfg.Tokens.MaxPerAccount)
		require.False(t, cfg.Tokens.Airdrops.Claim.Enabled)
		require.True(t, cfg.Tokens.Airdrops.Cancel.Enabled)
		require.Equal(t, 2, cfg.Hedera.Allowances.MaxAccountLimit)
		require.Equal(t, 20, cfg.Hedera.Allowances.MaxTransactionLimit)
		require.Equal(t, 4, cfg.Ledger.TokenRejects.MaxLen)
		require.True(t, cfg.Entities.LimitTokenAssociations)
		require.EqualValues(t, 98, cfg.Ledger.FundingAccount)
	})

	t.Run("explicit key", func(t *testing.T) {
		v := viper.New()
		v.Set("tokens.maxAllowedPendingAirdropsToCancel", 5)
		cfg, err := Load(v)
		require.NoError(t, err)
		require.Equal(t, 5, cfg.Tokens.MaxAllowedPendingAirdropsToCancel)
	})

	t.Run("invalid values", func(t *testing.T) {
		v := viper.New()
		v.Set("ledger.transfers.maxLen", 0)
		v.Set("ledger.fundingAccount", 0)
		_, err := Load(v)
		require.ErrorContains(t, err, "ledger.transfers.maxLen must be positive, got 0")
		require.ErrorContains(t, err, "ledger.fundingAccount is not set")
	})
}
