package fees

import (
	"github.com/fxamacker/cbor/v2"

	"github.com/hashgraph/hedera-services-sub009/config"
	"github.com/hashgraph/hedera-services-sub009/types"
)

/*
Usage is the amount of resources the transaction consumes, reported by the
handler of the transaction.
*/
type Usage struct {
	// size of the transaction
	Bytes int64
	// number of state entities read or written
	Operations int64
	// state storage added by the transaction times the time it's stored
	RamByteSeconds int64
}

// Calculator turns resource usage into fees.
type Calculator interface {
	Calculate(u Usage) types.Fees
}

/*
LinearCalculator charges base fee plus fixed price per unit of every
resource.
*/
type LinearCalculator struct {
	cfg config.FeesConfig
}

func NewLinearCalculator(cfg config.FeesConfig) *LinearCalculator {
	return &LinearCalculator{cfg: cfg}
}

func (c *LinearCalculator) Calculate(u Usage) types.Fees {
	bytes := u.Bytes * c.cfg.PerByte
	return types.Fees{
		NetworkFee: c.cfg.NetworkBase + bytes,
		NodeFee:    c.cfg.NodeBase + bytes/10,
		ServiceFee: c.cfg.ServiceBase + u.Operations*c.cfg.PerOperation + u.RamByteSeconds*c.cfg.PerRamByteSecond,
	}
}

// FreeCalculator returns zero fees for everything.
type FreeCalculator struct{}

func (FreeCalculator) Calculate(Usage) types.Fees { return types.Fees{} }

/*
TxBytes returns the size of the transaction in its canonical CBOR encoding.
*/
func TxBytes(tx *types.Transaction) int64 {
	b, err := cbor.Marshal(tx)
	if err != nil {
		return 0
	}
	return int64(len(b))
}

// ForTransaction returns base usage of the transaction with given number of operations.
func ForTransaction(tx *types.Transaction, operations int) Usage {
	return Usage{Bytes: TxBytes(tx), Operations: int64(operations)}
}
