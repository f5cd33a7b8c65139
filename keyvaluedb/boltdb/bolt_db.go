// Package boltdb stores the ledger records CBOR encoded in a single bucket of a bbolt file.
package boltdb

import (
	"errors"
	"fmt"
	"time"

	"github.com/fxamacker/cbor/v2"
	bolt "go.etcd.io/bbolt"

	"github.com/hashgraph/hedera-services-sub009/keyvaluedb"
)

var (
	bucketName         = []byte("ledger")
	errIteratorInvalid = errors.New("boltdb: iterator invalid")
)

type BoltDB struct {
	db *bolt.DB
}

// New opens the file, creating it when missing. Opening fails after three
// seconds when another process holds the file lock.
func New(file string) (*BoltDB, error) {
	db, err := bolt.Open(file, 0600, &bolt.Options{Timeout: 3 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening bolt db %q: %w", file, err)
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	}); err != nil {
		return nil, errors.Join(fmt.Errorf("creating bucket: %w", err), db.Close())
	}
	return &BoltDB{db: db}, nil
}

// First holds a read-only bolt transaction until the iterator is closed.
func (b *BoltDB) First() keyvaluedb.Iterator {
	tx, err := b.db.Begin(false)
	if err != nil {
		return &iterator{err: fmt.Errorf("starting read tx: %w", err)}
	}
	it := &iterator{tx: tx, cursor: tx.Bucket(bucketName).Cursor()}
	it.key, it.value = it.cursor.First()
	return it
}

func (b *BoltDB) StartTx() (keyvaluedb.Tx, error) {
	tx, err := b.db.Begin(true)
	if err != nil {
		return nil, fmt.Errorf("starting bolt tx: %w", err)
	}
	return &boltTx{tx: tx, bucket: tx.Bucket(bucketName)}, nil
}

func (b *BoltDB) Close() error {
	return b.db.Close()
}

type boltTx struct {
	tx     *bolt.Tx
	bucket *bolt.Bucket
}

func (t *boltTx) Write(key []byte, value any) error {
	if err := keyvaluedb.CheckWrite(key, value); err != nil {
		return err
	}
	data, err := cbor.Marshal(value)
	if err != nil {
		return err
	}
	return t.bucket.Put(key, data)
}

func (t *boltTx) Delete(key []byte) error {
	if err := keyvaluedb.CheckKey(key); err != nil {
		return err
	}
	return t.bucket.Delete(key)
}

func (t *boltTx) Commit() error {
	return t.tx.Commit()
}

// Rollback of a finished tx is a no-op, bolt has already released it.
func (t *boltTx) Rollback() error {
	if err := t.tx.Rollback(); err != nil && !errors.Is(err, bolt.ErrTxClosed) {
		return err
	}
	return nil
}

type iterator struct {
	tx     *bolt.Tx
	cursor *bolt.Cursor
	key    []byte
	value  []byte
	err    error
}

func (it *iterator) Valid() bool { return it.key != nil }

func (it *iterator) Next() {
	if it.Valid() {
		it.key, it.value = it.cursor.Next()
	}
}

func (it *iterator) Key() []byte { return it.key }

func (it *iterator) Value(v any) error {
	if !it.Valid() {
		return errIteratorInvalid
	}
	return cbor.Unmarshal(it.value, v)
}

func (it *iterator) Close() error {
	it.key, it.value, it.cursor = nil, nil, nil
	if it.tx != nil {
		if err := it.tx.Rollback(); err != nil {
			it.err = errors.Join(it.err, err)
		}
		it.tx = nil
	}
	err := it.err
	it.err = nil
	return err
}
