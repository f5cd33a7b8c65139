package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hashgraph/hedera-services-sub009/status"
	"github.com/hashgraph/hedera-services-sub009/types"
)

func TestNew(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		l, err := New(nil)
		require.NoError(t, err)
		require.True(t, l.Enabled(context.Background(), slog.LevelInfo))
		require.False(t, l.Enabled(context.Background(), slog.LevelDebug))
	})

	t.Run("invalid level", func(t *testing.T) {
		l, err := New(&LogConfiguration{Level: "LOUD"})
		require.ErrorContains(t, err, `invalid log level "LOUD"`)
		require.Nil(t, l)
	})

	t.Run("invalid format", func(t *testing.T) {
		l, err := New(&LogConfiguration{Format: "xml"})
		require.EqualError(t, err, `unknown log format "xml"`)
		require.Nil(t, l)
	})

	t.Run("file output", func(t *testing.T) {
		cfg := &LogConfiguration{OutputPath: filepath.Join(t.TempDir(), "ledger.log"), Rotation: &Rotation{MaxSizeMB: 1}}
		out, err := cfg.output()
		require.NoError(t, err)
		require.NotNil(t, out)
	})
}

func TestNew_JSON(t *testing.T) {
	buf := &bytes.Buffer{}
	cfg := LogConfiguration{Level: "DEBUG", Format: FormatJSON, TimeFormat: "none"}
	l, err := New(cfg.WithWriter(buf))
	require.NoError(t, err)

	l.Debug("executed", TxType(types.TxCryptoDelete), Account(7), Status(status.AccountIsTreasury), Round(3), Error(errors.New("boom")))

	var m map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &m))
	require.NotContains(t, m, slog.TimeKey)
	require.Equal(t, "executed", m[slog.MessageKey])
	require.Equal(t, "CryptoDelete", m[TxTypeKey])
	require.Equal(t, "0.0.7", m[AccountKey])
	require.Equal(t, "ACCOUNT_IS_TREASURY", m[StatusKey])
	require.EqualValues(t, 3, m[RoundKey])
	require.Equal(t, "boom", m[ErrorKey])
}

func TestNew_ECS(t *testing.T) {
	buf := &bytes.Buffer{}
	cfg := LogConfiguration{Format: FormatECS}
	l, err := New(cfg.WithWriter(buf))
	require.NoError(t, err)

	l.Info("deleted", Account(9), Data(types.NftID{TokenID: 1, Serial: 2}))
	var m map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &m))
	require.Equal(t, "deleted", m["message"])
	require.Equal(t, map[string]any{"account": map[string]any{"id": "0.0.9"}}, m["ledger"])
	require.Contains(t, m[DataKey], "types_NftID")
}

func TestNew_Console(t *testing.T) {
	buf := &bytes.Buffer{}
	cfg := LogConfiguration{Format: FormatConsole}
	l, err := New(cfg.WithWriter(buf))
	require.NoError(t, err)

	l.Warn("airdrop cancelled", Account(5))
	out := buf.String()
	require.Contains(t, out, "WRN")
	require.Contains(t, out, "airdrop cancelled")
	require.Contains(t, out, "account=0.0.5")
}

func TestParseLevel(t *testing.T) {
	for s, want := range map[string]slog.Level{"": slog.LevelInfo, "debug": slog.LevelDebug, "WARN": slog.LevelWarn, "ERROR": slog.LevelError} {
		lvl, err := ParseLevel(s)
		require.NoError(t, err)
		require.Equal(t, want, lvl, s)
	}
}

func Test_consoleLevel(t *testing.T) {
	require.Equal(t, "debug", consoleLevel(slog.LevelDebug))
	require.Equal(t, "info", consoleLevel(slog.LevelInfo))
	require.Equal(t, "warn", consoleLevel(slog.LevelWarn))
	require.Equal(t, "error", consoleLevel(slog.LevelError+2))
}
