package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newConfigCmd(baseConfig *baseConfiguration) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Prints the effective ledger configuration",
		Long:  `Prints the ledger configuration as YAML after defaults, the config file and LEDGER_* environment variables have been merged.`,
		RunE: func(cmd *cobra.Command, args []string) (rErr error) {
			cfg, err := baseConfig.ledgerConfiguration()
			if err != nil {
				return fmt.Errorf("loading ledger configuration: %w", err)
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			defer func() { rErr = errors.Join(rErr, enc.Close()) }()
			return enc.Encode(cfg)
		},
	}
}
