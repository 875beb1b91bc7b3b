package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/amenitygen/internal/adapter/postgres"
	"github.com/heartmarshall/amenitygen/internal/adapter/postgres/category"
	"github.com/heartmarshall/amenitygen/internal/app/generator"
)

// Compile-time interface assertions.
var (
	_ generator.CategoryRepo = (*category.Repo)(nil)
	_ generator.TxManager    = (*postgres.TxManager)(nil)
)

var publishMigrate bool

var publishCmd = &cobra.Command{
	Use:   "publish <document>",
	Short: "Store the compiled categories in PostgreSQL",
	Long: `Store the compiled categories in PostgreSQL as a new generation.

Every run appends a generation; category positions match the generated
enumeration values.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signalContext()
		defer cancel()

		pcfg := generator.NewConfig(cfg, args[0])
		if dryRun {
			return runPipeline(ctx, pcfg, generator.Deps{}, generator.PhasePublish)
		}

		if err := cfg.Database.Validate(); err != nil {
			return err
		}
		if publishMigrate {
			if err := postgres.Migrate(ctx, cfg.Database.DSN, logger); err != nil {
				return err
			}
		}

		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			return err
		}
		defer pool.Close()
		logger.Info("connected to database", slog.Int("max_conns", int(cfg.Database.MaxConns)))

		deps := generator.Deps{
			Repo: category.New(pool),
			Tx:   postgres.NewTxManager(pool),
		}
		return runPipeline(ctx, pcfg, deps, generator.PhasePublish)
	},
}

func init() {
	publishCmd.Flags().BoolVar(&publishMigrate, "migrate", true, "apply pending migrations first")
}
