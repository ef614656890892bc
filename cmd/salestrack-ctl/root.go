package main

import (
	"os"

	"github.com/BearBump/SalesTrack/config"
	"github.com/BearBump/SalesTrack/internal/logging"
	"github.com/BearBump/SalesTrack/internal/storage/pgstore"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// ctl holds what the subcommands share; fields are filled in PersistentPreRunE.
type ctl struct {
	configPath string
	logLevel   string

	log *zap.Logger
}

func newRootCmd() *cobra.Command {
	c := &ctl{}
	root := &cobra.Command{
		Use:           "salestrack-ctl",
		Short:         "Operational tooling for SalesTrack",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			log, err := logging.New(c.logLevel)
			if err != nil {
				return err
			}
			c.log = log
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if c.log != nil {
				_ = c.log.Sync()
			}
		},
	}
	root.PersistentFlags().StringVar(&c.configPath, "config", os.Getenv("configPath"), "path to the YAML config")
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "warn", "log level: debug, info, warn, error")

	root.AddCommand(
		newMetricsCmd(c),
		newCarriersCmd(),
		newOrdersCmd(c),
	)
	return root
}

func (c *ctl) loadConfig() (*config.Config, error) {
	if c.configPath == "" {
		return nil, errors.New("--config (or configPath env var) is required")
	}
	return config.LoadConfig(c.configPath)
}

func (c *ctl) openStore() (*pgstore.Storage, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	st, err := pgstore.New(cfg.Database.ConnString())
	if err != nil {
		return nil, errors.Wrap(err, "open postgres")
	}
	return st, nil
}
