package validators

import (
	"github.com/hashgraph/hedera-services-sub009/status"
	"github.com/hashgraph/hedera-services-sub009/txsystem"
	"github.com/hashgraph/hedera-services-sub009/types"
)

/*
ValidateAirdropCustomFees rejects airdrops of tokens whose royalty fee has a
fallback fee, the receiver of a pending airdrop can't be charged the
fallback.
*/
func ValidateAirdropCustomFees(token *types.Token) error {
	for _, f := range token.CustomFees {
		if f.Royalty != nil && f.Royalty.FallbackFee != nil {
			return txsystem.NewHandleError(status.TokenAirdropWithFallbackRoyalty)
		}
	}
	return nil
}

// ValidateCustomFees checks that every custom fee is well formed.
func ValidateCustomFees(fees []types.CustomFee) error {
	for _, f := range fees {
		if f.CollectorID == 0 {
			return txsystem.NewHandleError(status.InvalidCustomFeeCollector)
		}
		set := 0
		if f.Fixed != nil {
			set++
			if f.Fixed.Amount <= 0 {
				return txsystem.NewHandleError(status.CustomFeeMustBePositive)
			}
		}
		if f.Fractional != nil {
			set++
			if err := validateFraction(f.Fractional.Numerator, f.Fractional.Denominator); err != nil {
				return err
			}
			if f.Fractional.Minimum < 0 || f.Fractional.Maximum < 0 {
				return txsystem.NewHandleError(status.CustomFeeMustBePositive)
			}
			if f.Fractional.Maximum > 0 && f.Fractional.Maximum < f.Fractional.Minimum {
				return txsystem.NewHandleError(status.FractionalFeeMaxAmountLessThanMinAmount)
			}
		}
		if f.Royalty != nil {
			set++
			if err := validateFraction(f.Royalty.Numerator, f.Royalty.Denominator); err != nil {
				return err
			}
			if f.Royalty.Numerator > f.Royalty.Denominator {
				return txsystem.NewHandleError(status.RoyaltyFractionCannotExceedOne)
			}
			if f.Royalty.FallbackFee != nil && f.Royalty.FallbackFee.Amount <= 0 {
				return txsystem.NewHandleError(status.CustomFeeMustBePositive)
			}
		}
		if set != 1 {
			return txsystem.NewHandleError(status.CustomFeeNotFullySpecified)
		}
	}
	return nil
}

func validateFraction(numerator, denominator int64) error {
	switch {
	case denominator == 0:
		return txsystem.NewHandleError(status.FractionDividesByZero)
	case numerator <= 0 || denominator < 0:
		return txsystem.NewHandleError(status.CustomFeeMustBePositive)
	}
	return nil
}
