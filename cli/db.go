package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/hashgraph/hedera-services-sub009/keyvaluedb"
	"github.com/hashgraph/hedera-services-sub009/keyvaluedb/boltdb"
	"github.com/hashgraph/hedera-services-sub009/keyvaluedb/leveldb"
	"github.com/hashgraph/hedera-services-sub009/state"
	"github.com/hashgraph/hedera-services-sub009/store"
)

const (
	dbTypeBolt    = "bolt"
	dbTypeLevelDB = "leveldb"

	defaultDBFile = "ledger.db"
)

type dbFlags struct {
	DBFile string
	DBType string
}

func (f *dbFlags) addDBFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.DBFile, "db", defaultDBFile, "path to the ledger database, relative paths are resolved against $LEDGER_HOME")
	cmd.Flags().StringVar(&f.DBType, "db-type", dbTypeBolt, fmt.Sprintf("database engine, one of: %s, %s", dbTypeBolt, dbTypeLevelDB))
}

// open opens the database, bolt uses a single file while leveldb uses a directory.
func (f *dbFlags) open(base *baseConfiguration) (keyvaluedb.KeyValueDB, error) {
	path := base.pathInHome(f.DBFile)
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}
	var db keyvaluedb.KeyValueDB
	var err error
	switch f.DBType {
	case dbTypeBolt:
		db, err = boltdb.New(path)
	case dbTypeLevelDB:
		db, err = leveldb.New(path)
	default:
		return nil, fmt.Errorf("unknown database type %q", f.DBType)
	}
	if err != nil {
		return nil, err
	}
	return db, nil
}

// loadState opens the database and loads the committed ledger from it.
func (f *dbFlags) loadState(base *baseConfiguration) (*state.State, keyvaluedb.KeyValueDB, error) {
	db, err := f.open(base)
	if err != nil {
		return nil, nil, err
	}
	empty, err := keyvaluedb.IsEmpty(db)
	if err != nil {
		return nil, nil, closeOnErr(db, fmt.Errorf("checking database: %w", err))
	}
	if empty {
		return nil, nil, closeOnErr(db, fmt.Errorf("database %s is empty, run the genesis command first", base.pathInHome(f.DBFile)))
	}
	st, err := state.New(state.WithDB(db), state.WithValueConstructor(store.NewValue))
	if err != nil {
		return nil, nil, closeOnErr(db, err)
	}
	return st, db, nil
}

func closeOnErr(db keyvaluedb.KeyValueDB, err error) error {
	if cerr := db.Close(); cerr != nil {
		return fmt.Errorf("%w (closing database: %w)", err, cerr)
	}
	return err
}
