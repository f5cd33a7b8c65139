package leveldb

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hashgraph/hedera-services-sub009/keyvaluedb"
	"github.com/hashgraph/hedera-services-sub009/keyvaluedb/dbtest"
)

func initLevelDB(t *testing.T) *LevelDB {
	t.Helper()
	db, err := New(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, db.Close()) })
	return db
}

func TestLevelDB(t *testing.T) {
	dbtest.Run(t, func(t *testing.T) keyvaluedb.KeyValueDB { return initLevelDB(t) })
}

func TestLevelDB_Reopen(t *testing.T) {
	dir := t.TempDir()
	db, err := New(dir)
	require.NoError(t, err)
	dbtest.Put(t, db, dbtest.Record{Name: "k", Value: 7})
	require.NoError(t, db.Close())

	db, err = New(dir)
	require.NoError(t, err)
	defer db.Close()
	require.Equal(t, []dbtest.Record{{Name: "k", Value: 7}}, dbtest.Dump(t, db))
}

func TestLevelDB_OneTxAtATime(t *testing.T) {
	db := initLevelDB(t)
	first, err := db.StartTx()
	require.NoError(t, err)

	started := make(chan struct{})
	go func() {
		second, err := db.StartTx()
		if err == nil {
			_ = second.Rollback()
		}
		close(started)
	}()
	select {
	case <-started:
		t.Fatal("second tx started while the first one is open")
	case <-time.After(100 * time.Millisecond):
	}

	require.NoError(t, first.Commit())
	require.Eventually(t, func() bool {
		select {
		case <-started:
			return true
		default:
			return false
		}
	}, time.Second, 10*time.Millisecond)
}
