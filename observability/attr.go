package observability

import (
	"go.opentelemetry.io/otel/attribute"

	"github.com/hashgraph/hedera-services-sub009/state"
	"github.com/hashgraph/hedera-services-sub009/status"
)

const TxTypeKey attribute.Key = "tx.type"
const StatusKey attribute.Key = "status"
const KindKey attribute.Key = "kind"

func Round(round uint64) attribute.KeyValue {
	return attribute.Int64("round", int64(round)) /* #nosec G115 its unlikely that value of round exceeds int64 max value */
}

func TxType(name string) attribute.KeyValue {
	return TxTypeKey.String(name)
}

// Status is the protocol name of the response code.
func Status(code status.Code) attribute.KeyValue {
	return StatusKey.String(code.String())
}

func Kind(kind state.Kind, name string) attribute.KeyValue {
	if name == "" {
		name = string(kind)
	}
	return KindKey.String(name)
}

/*
ErrStatus returns attribute named "status" with value "ok" if the param
err is nil and "err" when it is not.
*/
func ErrStatus(err error) attribute.KeyValue {
	status := "ok"
	if err != nil {
		status = "err"
	}
	return StatusKey.String(status)
}
