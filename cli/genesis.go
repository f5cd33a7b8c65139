package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/hashgraph/hedera-services-sub009/keyvaluedb"
	"github.com/hashgraph/hedera-services-sub009/logger"
	"github.com/hashgraph/hedera-services-sub009/state"
	"github.com/hashgraph/hedera-services-sub009/store"
	"github.com/hashgraph/hedera-services-sub009/txsystem/token"
)

type genesisConfig struct {
	Base         *baseConfiguration
	DB           dbFlags
	GenesisFile  string
	StateOutFile string
}

func newGenesisCmd(baseConfig *baseConfiguration) *cobra.Command {
	config := &genesisConfig{Base: baseConfig}
	var cmd = &cobra.Command{
		Use:   "genesis",
		Short: "Creates the initial ledger from a genesis file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return genesisRunFun(cmd, config)
		},
	}
	config.DB.addDBFlags(cmd)
	cmd.Flags().StringVarP(&config.GenesisFile, "genesis-file", "g", "", "path to the YAML genesis file")
	cmd.Flags().StringVar(&config.StateOutFile, "state-out", "", "optional path where the serialized genesis state is written")
	_ = cmd.MarkFlagRequired("genesis-file")
	return cmd
}

func genesisRunFun(_ *cobra.Command, config *genesisConfig) (rErr error) {
	ledgerCfg, err := config.Base.ledgerConfiguration()
	if err != nil {
		return fmt.Errorf("loading ledger configuration: %w", err)
	}
	genesis, err := readGenesis(config.GenesisFile)
	if err != nil {
		return err
	}

	db, err := config.DB.open(config.Base)
	if err != nil {
		return err
	}
	defer func() { rErr = errors.Join(rErr, db.Close()) }()
	empty, err := keyvaluedb.IsEmpty(db)
	if err != nil {
		return fmt.Errorf("checking database: %w", err)
	}
	if !empty {
		return fmt.Errorf("database %s already contains a ledger", config.Base.pathInHome(config.DB.DBFile))
	}

	st, err := state.New(state.WithDB(db), state.WithValueConstructor(store.NewValue))
	if err != nil {
		return err
	}
	if err := genesis.Apply(&ledgerCfg, store.NewWritable(st)); err != nil {
		st.Revert()
		return err
	}
	if err := st.Commit(0); err != nil {
		return fmt.Errorf("committing genesis state: %w", err)
	}

	log := config.Base.observe.Logger()
	snap := st.Snapshot()
	log.Info("genesis state created",
		logger.Data(map[string]int64{
			"accounts":  snap.Count(store.KindAccount),
			"tokens":    snap.Count(store.KindToken),
			"relations": snap.Count(store.KindRelation),
			"nfts":      snap.Count(store.KindNft),
		}))

	if config.StateOutFile != "" {
		if err := writeStateFile(st, config.Base.pathInHome(config.StateOutFile)); err != nil {
			return err
		}
	}
	return nil
}

func readGenesis(path string) (*token.Genesis, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening genesis file: %w", err)
	}
	defer f.Close()

	genesis := &token.Genesis{}
	if err := yaml.NewDecoder(f).Decode(genesis); err != nil {
		return nil, fmt.Errorf("decoding genesis file %s: %w", path, err)
	}
	return genesis, nil
}

func writeStateFile(st *state.State, path string) (rErr error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating state file: %w", err)
	}
	defer func() { rErr = errors.Join(rErr, f.Close()) }()
	if err := st.Serialize(f); err != nil {
		return fmt.Errorf("writing state file: %w", err)
	}
	return nil
}
