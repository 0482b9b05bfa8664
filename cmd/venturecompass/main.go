package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/1234bibhash/venture-idea-compass/internal/config"
	"github.com/1234bibhash/venture-idea-compass/internal/logging"
	"github.com/1234bibhash/venture-idea-compass/internal/store"
)

// app carries what PersistentPreRunE resolved for the subcommands.
type app struct {
	configPath string
	logLevel   string

	cfg    config.Config
	logger *logrus.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "venturecompass",
		Short: "VentureCompass - startup idea validation and business plans",
		Long: `VentureCompass scores a startup idea on market potential, competition
and execution complexity, and turns the result into a business plan.

Run "venturecompass serve" for the web API, or use analyze/plan from the shell.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.configPath)
			if err != nil {
				return err
			}
			if strings.TrimSpace(a.logLevel) != "" {
				cfg.Log.Level = a.logLevel
			}
			a.cfg = cfg

			// Only serve logs to stdout; the other commands print results there.
			console := cmd.ErrOrStderr()
			if cmd.Name() == "serve" {
				console = cmd.OutOrStdout()
			}
			logger, err := logging.NewWithWriter(cfg.Log.Level, cfg.Log.File, console)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			a.logger = logger
			return nil
		},
	}
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "Path to YAML config file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Override log level (debug, info, warn, error)")

	root.AddCommand(newServeCmd(a))
	root.AddCommand(newAnalyzeCmd(a))
	root.AddCommand(newPlanCmd(a))
	root.AddCommand(newPremiumCmd(a))
	root.AddCommand(newSubmitCmd(a))
	return root
}

func openStore(cfg config.StoreConfig) (store.Backend, error) {
	if cfg.Driver == "memory" {
		return store.NewMemory(), nil
	}
	return store.OpenSQL(cfg.Driver, cfg.DSN)
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
