package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

type ledgerApp struct {
	baseCmd    *cobra.Command
	baseConfig *baseConfiguration
}

// New creates the ledgercore application, logF builds the logger from the logger configuration.
func New(logF LoggerFactory) *ledgerApp {
	baseCmd, baseConfig := newBaseCmd(logF)
	baseCmd.AddCommand(
		newGenesisCmd(baseConfig),
		newApplyCmd(baseConfig),
		newServeCmd(baseConfig),
		newConfigCmd(baseConfig),
	)
	return &ledgerApp{baseCmd: baseCmd, baseConfig: baseConfig}
}

// Execute runs the command selected by the arguments of the process.
func (a *ledgerApp) Execute(ctx context.Context) (err error) {
	defer func() {
		if a.baseConfig.observe != nil {
			err = errors.Join(err, a.baseConfig.observe.Shutdown())
		}
	}()
	return a.baseCmd.ExecuteContext(ctx)
}

func newBaseCmd(logF LoggerFactory) (*cobra.Command, *baseConfiguration) {
	config := &baseConfiguration{loggerBuilder: logF}
	var baseCmd = &cobra.Command{
		Use:           "ledgercore",
		Short:         "Token and crypto transaction execution core",
		Long:          `ledgercore builds the initial ledger, executes transaction batches against it and serves the committed state over REST.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// subcommands which do not define PersistentPreRunE inherit this one
			if err := initializeConfig(cmd, config); err != nil {
				return fmt.Errorf("failed to initialize configuration: %w", err)
			}
			return nil
		},
	}
	config.addConfigurationFlags(baseCmd)
	return baseCmd, config
}

func initializeConfig(cmd *cobra.Command, config *baseConfiguration) error {
	var errs []error

	if err := config.initializeConfig(cmd); err != nil {
		errs = append(errs, fmt.Errorf("reading configuration: %w", err))
	}

	log, err := config.initLogger(cmd)
	if err != nil {
		errs = append(errs, fmt.Errorf("initializing logger: %w", err))
	} else {
		metrics, err := cmd.Flags().GetString(keyMetrics)
		if err != nil {
			errs = append(errs, fmt.Errorf("reading flag %q: %w", keyMetrics, err))
		} else if config.observe, err = newObservability(metrics, log); err != nil {
			errs = append(errs, fmt.Errorf("initializing observability: %w", err))
		}
	}

	return errors.Join(errs...)
}
