package cli

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/hashgraph/hedera-services-sub009/logger"
	"github.com/hashgraph/hedera-services-sub009/txsystem"
	"github.com/hashgraph/hedera-services-sub009/txsystem/token"
	"github.com/hashgraph/hedera-services-sub009/types"
)

type applyConfig struct {
	Base          *baseConfiguration
	DB            dbFlags
	TxFile        string
	ConsensusTime int64
}

func newApplyCmd(baseConfig *baseConfiguration) *cobra.Command {
	config := &applyConfig{Base: baseConfig}
	var cmd = &cobra.Command{
		Use:   "apply",
		Short: "Executes a batch of transactions as the next round and prints the records",
		Long: `Executes the transactions of the YAML file in the file order as one round.
The round is committed into the database when every transaction produced a
record, records are printed to stdout as YAML.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return applyRunFun(cmd, config)
		},
	}
	config.DB.addDBFlags(cmd)
	cmd.Flags().StringVarP(&config.TxFile, "tx-file", "t", "", "path to the YAML list of transactions")
	cmd.Flags().Int64Var(&config.ConsensusTime, "consensus-time", 0, "consensus time of the first transaction in unix nanoseconds (default is current time)")
	_ = cmd.MarkFlagRequired("tx-file")
	return cmd
}

func applyRunFun(cmd *cobra.Command, config *applyConfig) (rErr error) {
	ledgerCfg, err := config.Base.ledgerConfiguration()
	if err != nil {
		return fmt.Errorf("loading ledger configuration: %w", err)
	}
	txs, err := readTransactions(config.TxFile)
	if err != nil {
		return err
	}

	st, db, err := config.DB.loadState(config.Base)
	if err != nil {
		return err
	}
	defer func() { rErr = errors.Join(rErr, db.Close()) }()

	obs := config.Base.observe
	txSystem, err := txsystem.NewGenericTxSystem(ledgerCfg, []txsystem.Module{token.NewModule()}, obs, txsystem.WithState(st))
	if err != nil {
		return fmt.Errorf("creating transaction system: %w", err)
	}

	consensusTime := config.ConsensusTime
	if consensusTime == 0 {
		consensusTime = time.Now().UnixNano()
	}
	round := txSystem.Snapshot().Round() + 1
	records, err := executeRound(txSystem, round, consensusTime, txs)
	if err != nil {
		return fmt.Errorf("round %d: %w", round, err)
	}
	obs.Logger().Info(fmt.Sprintf("round %d committed", round), logger.Round(round), logger.Data(len(records)))

	enc := yaml.NewEncoder(cmd.OutOrStdout())
	defer func() { rErr = errors.Join(rErr, enc.Close()) }()
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("encoding records: %w", err)
	}
	return nil
}

// executeRound executes txs as the round, the round is reverted when any of the transactions fails without a record.
func executeRound(txSystem *txsystem.GenericTxSystem, round uint64, consensusTime int64, txs []*types.Transaction) ([]*types.TransactionRecord, error) {
	if err := txSystem.BeginBlock(round, consensusTime); err != nil {
		return nil, err
	}
	records := make([]*types.TransactionRecord, 0, len(txs))
	for i, tx := range txs {
		rec, err := txSystem.Execute(tx)
		if err != nil {
			txSystem.Revert()
			return nil, fmt.Errorf("transaction #%d: %w", i, err)
		}
		records = append(records, rec)
	}
	if err := txSystem.EndBlock(); err != nil {
		txSystem.Revert()
		return nil, err
	}
	if err := txSystem.Commit(); err != nil {
		txSystem.Revert()
		return nil, err
	}
	return records, nil
}

func readTransactions(path string) ([]*types.Transaction, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading transactions file: %w", err)
	}
	var txs []*types.Transaction
	if err := yaml.Unmarshal(data, &txs); err != nil {
		return nil, fmt.Errorf("decoding transactions file %s: %w", path, err)
	}
	return txs, nil
}
