package token

import (
	"github.com/hashgraph/hedera-services-sub009/txsystem"
	"github.com/hashgraph/hedera-services-sub009/txsystem/fees"
	"github.com/hashgraph/hedera-services-sub009/types"
)

const (
	// approximate storage size of the entities created by the handlers
	relationBytes = 88
	airdropBytes  = 120
	// new entities are charged for storing them this long
	storageSeconds = 3600
)

/*
calculateFees charges the transaction for its size, the number of
operations and the storage of "newBytes" of new state.
*/
func calculateFees(ctx txsystem.FeeContext, operations int, newBytes int64) types.Fees {
	u := fees.ForTransaction(ctx.Transaction(), operations)
	u.RamByteSeconds = newBytes * storageSeconds
	return ctx.FeeCalculator().Calculate(u)
}
