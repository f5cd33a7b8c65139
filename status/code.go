// Package status defines the response codes produced by transaction
// validation and execution.
package status

import "fmt"

// Code is a protocol response code. The zero value is OK.
type Code uint32

const (
	OK Code = iota
	InvalidTransaction
	PayerAccountNotFound
	InvalidSignature
	InsufficientPayerBalance
	InsufficientTxFee
	InsufficientAccountBalance
	InvalidAccountID
	AccountIDDoesNotExist
	AccountDeleted
	AccountExpiredAndPendingRemoval
	InvalidTransferAccountID
	TransferAccountSameAsDeleteAccount
	AccountIsTreasury
	TransactionRequiresZeroTokenBalances
	InvalidAccountAmounts
	AccountRepeatedInAccountAmounts
	TransferListSizeLimitExceeded
	TokenTransferListSizeLimitExceeded
	BatchSizeLimitExceeded
	EmptyTokenTransferBody
	EmptyTokenTransferAccountAmounts
	TokenIDRepeatedInTokenList
	InvalidTokenID
	TokenWasDeleted
	TokenIsPaused
	TokenAlreadyAssociatedToAccount
	TokenNotAssociatedToAccount
	TokensPerAccountLimitExceeded
	MaxEntitiesInPriceRegimeHaveBeenCreated
	AccountFrozenForToken
	AccountKycNotGrantedForToken
	InsufficientTokenBalance
	TransfersNotZeroSumForToken
	InvalidNftID
	InvalidTokenNftSerialNumber
	SenderDoesNotOwnNftSerialNo
	AccountAmountTransfersOnlyAllowedForFungibleCommon
	InvalidOwnerID
	EmptyAllowances
	NegativeAllowanceAmount
	InvalidAllowanceOwnerID
	InvalidAllowanceSpenderID
	SpenderAccountSameAsOwner
	MaxAllowancesExceeded
	AmountExceedsTokenMaxSupply
	NftInFungibleTokenAllowances
	FungibleTokenInNftAllowances
	InvalidDelegatingSpender
	DelegatingSpenderDoesNotHaveApproveForAll
	DelegatingSpenderCannotGrantApproveForAll
	SpenderDoesNotHaveAllowance
	AmountExceedsAllowance
	NoRemainingAutomaticAssociations
	NotSupported
	EmptyPendingAirdropIDList
	PendingAirdropIDListTooLong
	PendingAirdropIDRepeated
	InvalidPendingAirdropID
	PendingNftAirdropAlreadyExists
	TokenAirdropWithFallbackRoyalty
	TokenReferenceListSizeLimitExceeded
	EmptyTokenReferenceList
	TokenReferenceRepeated
	InvalidReceivingNodeAccount
	TokenHasNoFreezeKey
	TokenNotAssociatedOrDeleted
	InvalidAliasKey
	CustomFeeMustBePositive
	FractionDividesByZero
	FractionalFeeMaxAmountLessThanMinAmount
	RoyaltyFractionCannotExceedOne
	InvalidCustomFeeCollector
	CustomFeeNotFullySpecified
	FailInvalid
)

var names = map[Code]string{
	OK:                                   "SUCCESS",
	InvalidTransaction:                   "INVALID_TRANSACTION",
	PayerAccountNotFound:                 "PAYER_ACCOUNT_NOT_FOUND",
	InvalidSignature:                     "INVALID_SIGNATURE",
	InsufficientPayerBalance:             "INSUFFICIENT_PAYER_BALANCE",
	InsufficientTxFee:                    "INSUFFICIENT_TX_FEE",
	InsufficientAccountBalance:           "INSUFFICIENT_ACCOUNT_BALANCE",
	InvalidAccountID:                     "INVALID_ACCOUNT_ID",
	AccountIDDoesNotExist:                "ACCOUNT_ID_DOES_NOT_EXIST",
	AccountDeleted:                       "ACCOUNT_DELETED",
	AccountExpiredAndPendingRemoval:      "ACCOUNT_EXPIRED_AND_PENDING_REMOVAL",
	InvalidTransferAccountID:             "INVALID_TRANSFER_ACCOUNT_ID",
	TransferAccountSameAsDeleteAccount:   "TRANSFER_ACCOUNT_SAME_AS_DELETE_ACCOUNT",
	AccountIsTreasury:                    "ACCOUNT_IS_TREASURY",
	TransactionRequiresZeroTokenBalances: "TRANSACTION_REQUIRES_ZERO_TOKEN_BALANCES",
	InvalidAccountAmounts:                "INVALID_ACCOUNT_AMOUNTS",
	AccountRepeatedInAccountAmounts:      "ACCOUNT_REPEATED_IN_ACCOUNT_AMOUNTS",
	TransferListSizeLimitExceeded:        "TRANSFER_LIST_SIZE_LIMIT_EXCEEDED",
	TokenTransferListSizeLimitExceeded:   "TOKEN_TRANSFER_LIST_SIZE_LIMIT_EXCEEDED",
	BatchSizeLimitExceeded:               "BATCH_SIZE_LIMIT_EXCEEDED",
	EmptyTokenTransferBody:               "EMPTY_TOKEN_TRANSFER_BODY",
	EmptyTokenTransferAccountAmounts:     "EMPTY_TOKEN_TRANSFER_ACCOUNT_AMOUNTS",
	TokenIDRepeatedInTokenList:           "TOKEN_ID_REPEATED_IN_TOKEN_LIST",
	InvalidTokenID:                       "INVALID_TOKEN_ID",
	TokenWasDeleted:                      "TOKEN_WAS_DELETED",
	TokenIsPaused:                        "TOKEN_IS_PAUSED",
	TokenAlreadyAssociatedToAccount:      "TOKEN_ALREADY_ASSOCIATED_TO_ACCOUNT",
	TokenNotAssociatedToAccount:          "TOKEN_NOT_ASSOCIATED_TO_ACCOUNT",
	TokensPerAccountLimitExceeded:        "TOKENS_PER_ACCOUNT_LIMIT_EXCEEDED",
	MaxEntitiesInPriceRegimeHaveBeenCreated:            "MAX_ENTITIES_IN_PRICE_REGIME_HAVE_BEEN_CREATED",
	AccountFrozenForToken:                              "ACCOUNT_FROZEN_FOR_TOKEN",
	AccountKycNotGrantedForToken:                       "ACCOUNT_KYC_NOT_GRANTED_FOR_TOKEN",
	InsufficientTokenBalance:                           "INSUFFICIENT_TOKEN_BALANCE",
	TransfersNotZeroSumForToken:                        "TRANSFERS_NOT_ZERO_SUM_FOR_TOKEN",
	InvalidNftID:                                       "INVALID_NFT_ID",
	InvalidTokenNftSerialNumber:                        "INVALID_TOKEN_NFT_SERIAL_NUMBER",
	SenderDoesNotOwnNftSerialNo:                        "SENDER_DOES_NOT_OWN_NFT_SERIAL_NO",
	AccountAmountTransfersOnlyAllowedForFungibleCommon: "ACCOUNT_AMOUNT_TRANSFERS_ONLY_ALLOWED_FOR_FUNGIBLE_COMMON",
	InvalidOwnerID:                            "INVALID_OWNER_ID",
	EmptyAllowances:                           "EMPTY_ALLOWANCES",
	NegativeAllowanceAmount:                   "NEGATIVE_ALLOWANCE_AMOUNT",
	InvalidAllowanceOwnerID:                   "INVALID_ALLOWANCE_OWNER_ID",
	InvalidAllowanceSpenderID:                 "INVALID_ALLOWANCE_SPENDER_ID",
	SpenderAccountSameAsOwner:                 "SPENDER_ACCOUNT_SAME_AS_OWNER",
	MaxAllowancesExceeded:                     "MAX_ALLOWANCES_EXCEEDED",
	AmountExceedsTokenMaxSupply:               "AMOUNT_EXCEEDS_TOKEN_MAX_SUPPLY",
	NftInFungibleTokenAllowances:              "NFT_IN_FUNGIBLE_TOKEN_ALLOWANCES",
	FungibleTokenInNftAllowances:              "FUNGIBLE_TOKEN_IN_NFT_ALLOWANCES",
	InvalidDelegatingSpender:                  "INVALID_DELEGATING_SPENDER",
	DelegatingSpenderDoesNotHaveApproveForAll: "DELEGATING_SPENDER_DOES_NOT_HAVE_APPROVE_FOR_ALL",
	DelegatingSpenderCannotGrantApproveForAll: "DELEGATING_SPENDER_CANNOT_GRANT_APPROVE_FOR_ALL",
	SpenderDoesNotHaveAllowance:               "SPENDER_DOES_NOT_HAVE_ALLOWANCE",
	AmountExceedsAllowance:                    "AMOUNT_EXCEEDS_ALLOWANCE",
	NoRemainingAutomaticAssociations:          "NO_REMAINING_AUTOMATIC_ASSOCIATIONS",
	NotSupported:                              "NOT_SUPPORTED",
	EmptyPendingAirdropIDList:                 "EMPTY_PENDING_AIRDROP_ID_LIST",
	PendingAirdropIDListTooLong:               "PENDING_AIRDROP_ID_LIST_TOO_LONG",
	PendingAirdropIDRepeated:                  "PENDING_AIRDROP_ID_REPEATED",
	InvalidPendingAirdropID:                   "INVALID_PENDING_AIRDROP_ID",
	PendingNftAirdropAlreadyExists:            "PENDING_NFT_AIRDROP_ALREADY_EXISTS",
	TokenAirdropWithFallbackRoyalty:           "TOKEN_AIRDROP_WITH_FALLBACK_ROYALTY",
	TokenReferenceListSizeLimitExceeded:       "TOKEN_REFERENCE_LIST_SIZE_LIMIT_EXCEEDED",
	EmptyTokenReferenceList:                   "EMPTY_TOKEN_REFERENCE_LIST",
	TokenReferenceRepeated:                    "TOKEN_REFERENCE_REPEATED",
	InvalidReceivingNodeAccount:               "INVALID_RECEIVING_NODE_ACCOUNT",
	TokenHasNoFreezeKey:                       "TOKEN_HAS_NO_FREEZE_KEY",
	TokenNotAssociatedOrDeleted:               "TOKEN_NOT_ASSOCIATED_OR_DELETED",
	InvalidAliasKey:                           "INVALID_ALIAS_KEY",
	CustomFeeMustBePositive:                   "CUSTOM_FEE_MUST_BE_POSITIVE",
	FractionDividesByZero:                     "FRACTION_DIVIDES_BY_ZERO",
	FractionalFeeMaxAmountLessThanMinAmount:   "FRACTIONAL_FEE_MAX_AMOUNT_LESS_THAN_MIN_AMOUNT",
	RoyaltyFractionCannotExceedOne:            "ROYALTY_FRACTION_CANNOT_EXCEED_ONE",
	InvalidCustomFeeCollector:                 "INVALID_CUSTOM_FEE_COLLECTOR",
	CustomFeeNotFullySpecified:                "CUSTOM_FEE_NOT_FULLY_SPECIFIED",
	FailInvalid:                               "FAIL_INVALID",
}

var byName = func() map[string]Code {
	m := make(map[string]Code, len(names))
	for c, n := range names {
		m[n] = c
	}
	return m
}()

// String returns the protocol name of the code, e.g. "INVALID_ACCOUNT_ID".
func (c Code) String() string {
	if n, ok := names[c]; ok {
		return n
	}
	return fmt.Sprintf("Code(%d)", uint32(c))
}

// Parse converts protocol name back to Code.
func Parse(name string) (Code, error) {
	if c, ok := byName[name]; ok {
		return c, nil
	}
	return 0, fmt.Errorf("unknown response code %q", name)
}

func (c Code) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Code) UnmarshalText(b []byte) error {
	v, err := Parse(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}
