package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"prev-engine/internal/config"
	"prev-engine/internal/tables"
)

// app carries what PersistentPreRunE resolved for the subcommands.
type app struct {
	cfgFile string
	cfg     config.Config
	logger  *zap.Logger
}

func NewRootCmd() *cobra.Command {
	a := &app{}
	v := config.New()

	root := &cobra.Command{
		Use:   "prev-engine",
		Short: "Statutory social-security calculations (INSS, contribution time, late payments, BPC/LOAS)",
		Long: `prev-engine computes Brazilian social-security figures: INSS employee withholding,
contribution time from employment periods, late contribution penalties and BPC/LOAS
eligibility. Run "serve" for the HTTP API or use the subcommands directly.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(v, a.cfgFile)
			if err != nil {
				return err
			}
			logger, err := config.NewLogger(cfg.LogLevel, cfg.LogFormat)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.logger = logger
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (yaml)")
	root.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	root.PersistentFlags().String("tables", "", "statutory tables file (default: embedded 2024 tables)")
	_ = v.BindPFlag("log_level", root.PersistentFlags().Lookup("log-level"))
	_ = v.BindPFlag("tables_file", root.PersistentFlags().Lookup("tables"))

	root.AddCommand(
		a.serveCmd(),
		a.inssCmd(),
		a.tempoCmd(),
		a.atrasoCmd(),
		a.bpcCmd(),
	)
	return root
}

func Execute(ctx context.Context) int {
	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func (a *app) loadTables() (*tables.Tables, error) {
	store, err := tables.Open(a.cfg.TablesFile, a.logger)
	if err != nil {
		return nil, err
	}
	return store.Current(), nil
}
