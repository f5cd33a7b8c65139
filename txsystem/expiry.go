package txsystem

import (
	"github.com/hashgraph/hedera-services-sub009/config"
	"github.com/hashgraph/hedera-services-sub009/types"
)

type (
	ExpiryValidator interface {
		// IsDetached reports whether the account is expired and waiting to be removed.
		IsDetached(acc *types.Account) bool
	}

	SignatureVerifier interface {
		// Verified reports whether the transaction is signed by the key.
		Verified(tx *types.Transaction, key types.Key) bool
	}
)

/*
AccountExpiryValidator treats expired accounts with zero balance as
detached when account expiry is enabled.
*/
type AccountExpiryValidator struct {
	expireAccounts bool
}

func NewExpiryValidator(cfg *config.Configuration) AccountExpiryValidator {
	return AccountExpiryValidator{expireAccounts: cfg.AutoRenew.ExpireAccounts}
}

func (v AccountExpiryValidator) IsDetached(acc *types.Account) bool {
	return v.expireAccounts && acc.ExpiredAndPendingRemoval && acc.Balance == 0
}

/*
UpstreamSignatures trusts the list of verified keys attached to the
transaction by the ingest layer. Empty key never verifies.
*/
type UpstreamSignatures struct{}

func (UpstreamSignatures) Verified(tx *types.Transaction, key types.Key) bool {
	return key != "" && tx.IsSignedBy(key)
}
