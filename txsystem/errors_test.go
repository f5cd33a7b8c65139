package txsystem

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hashgraph/hedera-services-sub009/status"
)

func TestCodeOf(t *testing.T) {
	var tests = []struct {
		name     string
		err      error
		wantCode status.Code
		wantOK   bool
	}{
		{name: "nil", err: nil, wantCode: status.OK},
		{name: "plain error", err: errors.New("boom"), wantCode: status.OK},
		{name: "pre-check", err: NewPreCheckError(status.InvalidAccountID), wantCode: status.InvalidAccountID, wantOK: true},
		{name: "handle", err: NewHandleError(status.TokenIsPaused), wantCode: status.TokenIsPaused, wantOK: true},
		{name: "wrapped", err: fmt.Errorf("validating: %w", NewHandleError(status.AccountDeleted)), wantCode: status.AccountDeleted, wantOK: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, ok := CodeOf(tt.err)
			require.Equal(t, tt.wantOK, ok)
			require.Equal(t, tt.wantCode, code)
		})
	}
}

func TestPrecheckAndEnsure(t *testing.T) {
	require.NoError(t, Precheck(true, status.InvalidAccountID))
	require.NoError(t, Ensure(true, status.InvalidAccountID))

	var pe *PreCheckError
	require.ErrorAs(t, Precheck(false, status.InvalidAccountID), &pe)
	require.Equal(t, status.InvalidAccountID, pe.Code)
	require.EqualError(t, pe, "pre-check failed: INVALID_ACCOUNT_ID")

	var he *HandleError
	require.ErrorAs(t, Ensure(false, status.TokenWasDeleted), &he)
	require.Equal(t, status.TokenWasDeleted, he.Code)
	require.EqualError(t, he, "handle failed: TOKEN_WAS_DELETED")
}

func TestAsHandleError(t *testing.T) {
	var he *HandleError
	require.ErrorAs(t, AsHandleError(NewPreCheckError(status.EmptyAllowances)), &he)
	require.Equal(t, status.EmptyAllowances, he.Code)

	plain := errors.New("boom")
	require.Same(t, plain, AsHandleError(plain))
	require.NoError(t, AsHandleError(nil))
}
