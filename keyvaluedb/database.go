// Package keyvaluedb persists the committed ledger records in an ordered key-value store.
package keyvaluedb

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	ErrInvalidKey = errors.New("invalid key")
	ErrValueIsNil = errors.New("value is nil")
)

// KeyValueDB is the store the ledger state is loaded from and committed to.
// Values are encoded by the implementation.
type KeyValueDB interface {
	// First returns an iterator on the smallest key, not valid when the DB is empty.
	// The iterator must be closed before StartTx is called.
	First() Iterator
	// StartTx begins a batch of writes which becomes visible on Commit. At most
	// one batch may be open at a time.
	StartTx() (Tx, error)
	Close() error
}

// Iterator walks the records in ascending binary key order.
type Iterator interface {
	Next()
	Valid() bool
	// Key is nil when the iterator is not valid.
	Key() []byte
	// Value decodes the current record into v.
	Value(v any) error
	// Close is safe to call more than once.
	Close() error
}

// Tx collects writes and deletes which are applied atomically by Commit.
type Tx interface {
	Write(key []byte, value any) error
	Delete(key []byte) error
	Commit() error
	Rollback() error
}

// IsEmpty reports whether db holds no records.
func IsEmpty(db KeyValueDB) (bool, error) {
	if db == nil {
		return true, fmt.Errorf("db is nil")
	}
	it := db.First()
	valid := it.Valid()
	return !valid, it.Close()
}

// CheckKey rejects empty keys.
func CheckKey(key []byte) error {
	if len(key) == 0 {
		return ErrInvalidKey
	}
	return nil
}

// CheckWrite validates the arguments of Tx.Write.
func CheckWrite(key []byte, value any) error {
	if err := CheckKey(key); err != nil {
		return err
	}
	if value == nil {
		return ErrValueIsNil
	}
	if rv := reflect.ValueOf(value); rv.Kind() == reflect.Pointer && rv.IsNil() {
		return ErrValueIsNil
	}
	return nil
}
