package txsystem

import (
	"errors"
	"fmt"

	"github.com/hashgraph/hedera-services-sub009/status"
)

var (
	ErrStateContainsUncommittedChanges = errors.New("state contains uncommitted changes")
	ErrUnknownTxType                   = errors.New("unknown transaction type")
)

/*
PreCheckError is returned by the pure checks and pre-handle phases. The
transaction is rejected before fees are charged.
*/
type PreCheckError struct {
	Code status.Code
}

func NewPreCheckError(code status.Code) *PreCheckError {
	return &PreCheckError{Code: code}
}

func (e *PreCheckError) Error() string {
	return fmt.Sprintf("pre-check failed: %s", e.Code)
}

/*
HandleError is returned by the handle phase. The transaction is charged
and its state changes are rolled back.
*/
type HandleError struct {
	Code status.Code
}

func NewHandleError(code status.Code) *HandleError {
	return &HandleError{Code: code}
}

func (e *HandleError) Error() string {
	return fmt.Sprintf("handle failed: %s", e.Code)
}

/*
CodeOf returns the response code carried by err. The second return value is
false when err is not a coded error (nil included).
*/
func CodeOf(err error) (status.Code, bool) {
	var pe *PreCheckError
	if errors.As(err, &pe) {
		return pe.Code, true
	}
	var he *HandleError
	if errors.As(err, &he) {
		return he.Code, true
	}
	return status.OK, false
}

// Precheck returns PreCheckError with code unless cond holds.
func Precheck(cond bool, code status.Code) error {
	if cond {
		return nil
	}
	return NewPreCheckError(code)
}

// Ensure returns HandleError with code unless cond holds.
func Ensure(cond bool, code status.Code) error {
	if cond {
		return nil
	}
	return NewHandleError(code)
}

/*
AsHandleError converts pre-check error into HandleError with the same code,
used when pure checks are repeated inside the handle phase. Other errors are
returned unchanged.
*/
func AsHandleError(err error) error {
	var pe *PreCheckError
	if errors.As(err, &pe) {
		return NewHandleError(pe.Code)
	}
	return err
}
