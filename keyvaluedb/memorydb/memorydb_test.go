package memorydb

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hashgraph/hedera-services-sub009/keyvaluedb"
	"github.com/hashgraph/hedera-services-sub009/keyvaluedb/dbtest"
)

func TestMemoryDB(t *testing.T) {
	dbtest.Run(t, func(t *testing.T) keyvaluedb.KeyValueDB { return New() })
}

func TestMemoryDB_WriteError(t *testing.T) {
	db := New()
	db.SetWriteError(errors.New("disk full"))
	tx, err := db.StartTx()
	require.NoError(t, err)
	require.EqualError(t, tx.Write([]byte("k"), "v"), "disk full")
	require.NoError(t, tx.Rollback())
	require.Zero(t, db.Len())

	db.SetWriteError(nil)
	dbtest.Put(t, db, dbtest.Record{Name: "k"})
	require.Equal(t, 1, db.Len())
}

func TestMemoryDB_TxClosed(t *testing.T) {
	db := New()
	tx, err := db.StartTx()
	require.NoError(t, err)
	require.NoError(t, tx.Rollback())
	require.ErrorIs(t, tx.Write([]byte("k"), "v"), errTxClosed)
	require.ErrorIs(t, tx.Delete([]byte("k")), errTxClosed)
	require.ErrorIs(t, tx.Commit(), errTxClosed)
}

func TestMemoryDB_IteratorIsSnapshot(t *testing.T) {
	db := New()
	dbtest.Put(t, db, dbtest.Record{Name: "a"})
	it := db.First()
	dbtest.Put(t, db, dbtest.Record{Name: "b"})

	require.Equal(t, []byte("a"), it.Key())
	it.Next()
	require.False(t, it.Valid())
	require.NoError(t, it.Close())
	require.Len(t, dbtest.Dump(t, db), 2)
}
