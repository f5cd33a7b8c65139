/*
Package dbtest contains the behaviour tests every keyvaluedb implementation must pass.
*/
package dbtest

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hashgraph/hedera-services-sub009/keyvaluedb"
)

type Record struct {
	Name  string
	Value int64
}

// Put commits records keyed by their names in one tx.
func Put(t *testing.T, db keyvaluedb.KeyValueDB, records ...Record) {
	t.Helper()
	tx, err := db.StartTx()
	require.NoError(t, err)
	for _, r := range records {
		require.NoError(t, tx.Write([]byte(r.Name), &r))
	}
	require.NoError(t, tx.Commit())
}

// Dump returns all records of db in iteration order.
func Dump(t *testing.T, db keyvaluedb.KeyValueDB) []Record {
	t.Helper()
	var out []Record
	it := db.First()
	for ; it.Valid(); it.Next() {
		var r Record
		require.NoError(t, it.Value(&r))
		require.Equal(t, r.Name, string(it.Key()))
		out = append(out, r)
	}
	require.NoError(t, it.Close())
	return out
}

// Run executes the shared test suite against databases created by newDB.
func Run(t *testing.T, newDB func(t *testing.T) keyvaluedb.KeyValueDB) {
	t.Run("empty", func(t *testing.T) {
		db := newDB(t)
		empty, err := keyvaluedb.IsEmpty(db)
		require.NoError(t, err)
		require.True(t, empty)

		it := db.First()
		require.False(t, it.Valid())
		require.Nil(t, it.Key())
		require.Error(t, it.Value(&Record{}))
		require.NoError(t, it.Close())
		require.NoError(t, it.Close())
	})

	t.Run("invalid input", func(t *testing.T) {
		db := newDB(t)
		tx, err := db.StartTx()
		require.NoError(t, err)
		require.ErrorIs(t, tx.Write(nil, &Record{}), keyvaluedb.ErrInvalidKey)
		require.ErrorIs(t, tx.Write([]byte("k"), nil), keyvaluedb.ErrValueIsNil)
		var r *Record
		require.ErrorIs(t, tx.Write([]byte("k"), r), keyvaluedb.ErrValueIsNil)
		require.ErrorIs(t, tx.Delete([]byte{}), keyvaluedb.ErrInvalidKey)
		require.NoError(t, tx.Rollback())
	})

	t.Run("commit iterates in key order", func(t *testing.T) {
		db := newDB(t)
		Put(t, db, Record{Name: "c", Value: 3}, Record{Name: "a", Value: 1}, Record{Name: "b", Value: 2})
		require.Equal(t, []Record{{"a", 1}, {"b", 2}, {"c", 3}}, Dump(t, db))

		empty, err := keyvaluedb.IsEmpty(db)
		require.NoError(t, err)
		require.False(t, empty)
	})

	t.Run("overwrite and delete", func(t *testing.T) {
		db := newDB(t)
		Put(t, db, Record{Name: "a", Value: 1}, Record{Name: "b", Value: 2})

		tx, err := db.StartTx()
		require.NoError(t, err)
		require.NoError(t, tx.Write([]byte("a"), &Record{Name: "a", Value: 10}))
		require.NoError(t, tx.Delete([]byte("b")))
		// deleting missing key is not an error
		require.NoError(t, tx.Delete([]byte("x")))
		require.NoError(t, tx.Commit())

		require.Equal(t, []Record{{"a", 10}}, Dump(t, db))
	})

	t.Run("changes are invisible until commit", func(t *testing.T) {
		db := newDB(t)
		tx, err := db.StartTx()
		require.NoError(t, err)
		require.NoError(t, tx.Write([]byte("k"), &Record{Name: "k"}))
		require.NoError(t, tx.Rollback())

		empty, err := keyvaluedb.IsEmpty(db)
		require.NoError(t, err)
		require.True(t, empty)

		// the DB accepts a new tx after rollback
		Put(t, db, Record{Name: "k"})
		require.Len(t, Dump(t, db), 1)
	})

	t.Run("committed tx is closed", func(t *testing.T) {
		db := newDB(t)
		tx, err := db.StartTx()
		require.NoError(t, err)
		require.NoError(t, tx.Commit())
		require.Error(t, tx.Commit())
	})
}
