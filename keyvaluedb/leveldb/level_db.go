// Package leveldb stores the ledger records CBOR encoded in a goleveldb directory.
package leveldb

import (
	"bytes"
	"errors"
	"fmt"
	"sync"

	"github.com/fxamacker/cbor/v2"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/iterator"
	"github.com/syndtr/goleveldb/leveldb/opt"

	"github.com/hashgraph/hedera-services-sub009/keyvaluedb"
)

var (
	errTxClosed        = errors.New("leveldb: tx closed")
	errIteratorInvalid = errors.New("leveldb: iterator invalid")
)

type LevelDB struct {
	db *leveldb.DB
	// held by the open tx
	txLock sync.Mutex
}

// New opens the database in dir, creating it when missing.
func New(dir string) (*LevelDB, error) {
	db, err := leveldb.OpenFile(dir, nil)
	if err != nil {
		return nil, fmt.Errorf("opening leveldb %q: %w", dir, err)
	}
	return &LevelDB{db: db}, nil
}

// First iterates over an implicit snapshot taken when it is called.
func (l *LevelDB) First() keyvaluedb.Iterator {
	it := &levelIterator{it: l.db.NewIterator(nil, nil)}
	it.valid = it.it.First()
	return it
}

// StartTx collects the changes into a batch which is written synchronously on
// Commit. StartTx blocks while another tx is open.
func (l *LevelDB) StartTx() (keyvaluedb.Tx, error) {
	l.txLock.Lock()
	return &batchTx{l: l, batch: new(leveldb.Batch)}, nil
}

func (l *LevelDB) Close() error {
	return l.db.Close()
}

type batchTx struct {
	l     *LevelDB
	batch *leveldb.Batch
}

func (t *batchTx) Write(key []byte, value any) error {
	if err := keyvaluedb.CheckWrite(key, value); err != nil {
		return err
	}
	if t.batch == nil {
		return errTxClosed
	}
	data, err := cbor.Marshal(value)
	if err != nil {
		return err
	}
	t.batch.Put(key, data)
	return nil
}

func (t *batchTx) Delete(key []byte) error {
	if err := keyvaluedb.CheckKey(key); err != nil {
		return err
	}
	if t.batch == nil {
		return errTxClosed
	}
	t.batch.Delete(key)
	return nil
}

func (t *batchTx) Commit() error {
	if t.batch == nil {
		return errTxClosed
	}
	defer t.release()
	if err := t.l.db.Write(t.batch, &opt.WriteOptions{Sync: true}); err != nil {
		return fmt.Errorf("writing leveldb batch: %w", err)
	}
	return nil
}

func (t *batchTx) Rollback() error {
	if t.batch != nil {
		t.release()
	}
	return nil
}

func (t *batchTx) release() {
	t.batch = nil
	t.l.txLock.Unlock()
}

type levelIterator struct {
	it    iterator.Iterator
	valid bool
}

func (it *levelIterator) Valid() bool { return it.valid }

func (it *levelIterator) Next() {
	if it.valid {
		it.valid = it.it.Next()
	}
}

// Key returns a copy, leveldb reuses the buffer on Next.
func (it *levelIterator) Key() []byte {
	if !it.valid {
		return nil
	}
	return bytes.Clone(it.it.Key())
}

func (it *levelIterator) Value(v any) error {
	if !it.valid {
		return errIteratorInvalid
	}
	return cbor.Unmarshal(it.it.Value(), v)
}

func (it *levelIterator) Close() error {
	it.valid = false
	it.it.Release()
	return it.it.Error()
}
