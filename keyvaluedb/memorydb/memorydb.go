// Package memorydb keeps CBOR encoded records in a map, it backs tests and short lived ledgers.
package memorydb

import (
	"errors"
	"maps"
	"slices"
	"sync"

	"github.com/fxamacker/cbor/v2"

	"github.com/hashgraph/hedera-services-sub009/keyvaluedb"
)

var (
	errTxClosed        = errors.New("memorydb: tx closed")
	errIteratorInvalid = errors.New("memorydb: iterator invalid")
)

type MemoryDB struct {
	mu       sync.RWMutex
	records  map[string][]byte
	writeErr error
}

func New() *MemoryDB {
	return &MemoryDB{records: make(map[string][]byte)}
}

// SetWriteError makes every following Tx.Write fail with err, nil restores normal writes.
func (db *MemoryDB) SetWriteError(err error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.writeErr = err
}

// Len returns the number of committed records.
func (db *MemoryDB) Len() int {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return len(db.records)
}

// First iterates over the records committed at the time of the call.
func (db *MemoryDB) First() keyvaluedb.Iterator {
	db.mu.RLock()
	defer db.mu.RUnlock()
	it := &iterator{keys: slices.Sorted(maps.Keys(db.records))}
	it.values = make([][]byte, len(it.keys))
	for i, k := range it.keys {
		it.values[i] = db.records[k]
	}
	return it
}

func (db *MemoryDB) StartTx() (keyvaluedb.Tx, error) {
	return &tx{db: db, pending: make(map[string][]byte)}, nil
}

func (db *MemoryDB) Close() error { return nil }

// tx buffers the changes, a nil value marks a deleted key.
type tx struct {
	db      *MemoryDB
	pending map[string][]byte
	closed  bool
}

func (t *tx) Write(key []byte, value any) error {
	if err := keyvaluedb.CheckWrite(key, value); err != nil {
		return err
	}
	if t.closed {
		return errTxClosed
	}
	t.db.mu.RLock()
	writeErr := t.db.writeErr
	t.db.mu.RUnlock()
	if writeErr != nil {
		return writeErr
	}
	b, err := cbor.Marshal(value)
	if err != nil {
		return err
	}
	t.pending[string(key)] = b
	return nil
}

func (t *tx) Delete(key []byte) error {
	if err := keyvaluedb.CheckKey(key); err != nil {
		return err
	}
	if t.closed {
		return errTxClosed
	}
	t.pending[string(key)] = nil
	return nil
}

func (t *tx) Commit() error {
	if t.closed {
		return errTxClosed
	}
	t.closed = true
	t.db.mu.Lock()
	defer t.db.mu.Unlock()
	for k, b := range t.pending {
		if b == nil {
			delete(t.db.records, k)
			continue
		}
		t.db.records[k] = b
	}
	return nil
}

func (t *tx) Rollback() error {
	t.closed = true
	t.pending = nil
	return nil
}

type iterator struct {
	keys   []string
	values [][]byte
	pos    int
}

func (it *iterator) Valid() bool { return it.pos < len(it.keys) }

func (it *iterator) Next() {
	if it.Valid() {
		it.pos++
	}
}

func (it *iterator) Key() []byte {
	if !it.Valid() {
		return nil
	}
	return []byte(it.keys[it.pos])
}

func (it *iterator) Value(v any) error {
	if !it.Valid() {
		return errIteratorInvalid
	}
	return cbor.Unmarshal(it.values[it.pos], v)
}

func (it *iterator) Close() error {
	it.pos = len(it.keys)
	return nil
}
