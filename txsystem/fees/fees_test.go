package fees

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hashgraph/hedera-services-sub009/config"
	"github.com/hashgraph/hedera-services-sub009/types"
)

func TestLinearCalculator(t *testing.T) {
	c := NewLinearCalculator(config.FeesConfig{
		NetworkBase:      100,
		NodeBase:         10,
		ServiceBase:      1000,
		PerByte:          2,
		PerOperation:     50,
		PerRamByteSecond: 1,
	})
	f := c.Calculate(Usage{Bytes: 50, Operations: 3, RamByteSeconds: 7})
	require.Equal(t, types.Fees{NetworkFee: 200, NodeFee: 20, ServiceFee: 1157}, f)
	require.EqualValues(t, 1377, f.Total())

	require.Equal(t, types.Fees{NetworkFee: 100, NodeFee: 10, ServiceFee: 1000}, c.Calculate(Usage{}))
	require.Zero(t, FreeCalculator{}.Calculate(Usage{Bytes: 100}).Total())
}

func TestForTransaction(t *testing.T) {
	small := &types.Transaction{ID: types.TransactionID{Payer: 2}, Body: types.TransactionBody{CryptoDelete: &types.CryptoDeleteBody{DeleteAccountID: 3, TransferAccountID: 4}}}
	big := &types.Transaction{ID: types.TransactionID{Payer: 2}, Memo: "a much longer memo for the transaction", Body: small.Body}

	u := ForTransaction(small, 2)
	require.Positive(t, u.Bytes)
	require.EqualValues(t, 2, u.Operations)
	require.Greater(t, TxBytes(big), u.Bytes)
}
