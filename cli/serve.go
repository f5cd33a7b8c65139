package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/ainvaltin/httpsrv"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/hashgraph/hedera-services-sub009/logger"
	"github.com/hashgraph/hedera-services-sub009/rpc"
	"github.com/hashgraph/hedera-services-sub009/txsystem"
	"github.com/hashgraph/hedera-services-sub009/txsystem/token"
)

type serveConfig struct {
	Base *baseConfiguration
	DB   dbFlags
	rpc.ServerConfiguration
}

func newServeCmd(baseConfig *baseConfiguration) *cobra.Command {
	config := &serveConfig{Base: baseConfig, ServerConfiguration: rpc.DefaultServerConfiguration()}
	var cmd = &cobra.Command{
		Use:   "serve",
		Short: "Serves the committed ledger state over REST",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serveRunFun(cmd.Context(), config)
		},
	}
	config.DB.addDBFlags(cmd)
	config.addServerFlags(cmd)
	return cmd
}

func (c *serveConfig) addServerFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&c.Address, "rest-server-address", c.Address, "the REST server listen address with port, server is not started when empty")
	cmd.Flags().DurationVar(&c.ReadTimeout, "rest-server-read-timeout", c.ReadTimeout, "maximum duration for reading the entire request, including the body")
	cmd.Flags().DurationVar(&c.ReadHeaderTimeout, "rest-server-read-header-timeout", c.ReadHeaderTimeout, "amount of time allowed to read request headers")
	cmd.Flags().DurationVar(&c.WriteTimeout, "rest-server-write-timeout", c.WriteTimeout, "maximum duration before timing out writes of the response")
	cmd.Flags().DurationVar(&c.IdleTimeout, "rest-server-idle-timeout", c.IdleTimeout, "maximum amount of time to wait for the next request when keep-alive is enabled")
	cmd.Flags().IntVar(&c.MaxHeaderBytes, "rest-server-max-header", http.DefaultMaxHeaderBytes, "maximum number of bytes the server will read parsing the request header")
	cmd.Flags().Int64Var(&c.MaxBodyBytes, "rest-server-max-body", c.MaxBodyBytes, "maximum number of bytes the server will read parsing the request body")
	if err := cmd.Flags().MarkHidden("rest-server-max-header"); err != nil {
		panic(err)
	}
}

func serveRunFun(ctx context.Context, config *serveConfig) (rErr error) {
	ledgerCfg, err := config.Base.ledgerConfiguration()
	if err != nil {
		return fmt.Errorf("loading ledger configuration: %w", err)
	}
	if config.IsAddressEmpty() {
		return fmt.Errorf("REST server address is not set")
	}

	st, db, err := config.DB.loadState(config.Base)
	if err != nil {
		return err
	}
	defer func() { rErr = errors.Join(rErr, db.Close()) }()

	obs := config.Base.observe
	log := obs.Logger()
	txSystem, err := txsystem.NewGenericTxSystem(ledgerCfg, []txsystem.Module{token.NewModule()}, obs, txsystem.WithState(st))
	if err != nil {
		return fmt.Errorf("creating transaction system: %w", err)
	}

	srv := rpc.NewHTTPServer(config.ServerConfiguration, obs,
		rpc.LedgerEndpoints(txSystem, ledgerCfg.Tokens.MaxRelsPerInfoQuery, log))

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.InfoContext(ctx, fmt.Sprintf("REST server starting on %s, serving round %d", srv.Addr, txSystem.Snapshot().Round()))
		err := httpsrv.Run(ctx, *srv, httpsrv.ShutdownTimeout(5*time.Second))
		log.InfoContext(ctx, "REST server exited", logger.Error(err))
		return err
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
