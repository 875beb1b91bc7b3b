package main

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/amenitygen/internal/adapter/postgres"
	"github.com/heartmarshall/amenitygen/internal/adapter/postgres/category"
	"github.com/heartmarshall/amenitygen/internal/app"
	"github.com/heartmarshall/amenitygen/internal/app/generator"
	"github.com/heartmarshall/amenitygen/internal/compiler"
	"github.com/heartmarshall/amenitygen/internal/transport/rest"
)

type pinger interface {
	Ping(ctx context.Context) error
}

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve <document>",
	Short: "Serve the compiled categories and classify tag sets over HTTP",
	Long: `Serve the compiled categories and classify tag sets over HTTP.

Endpoints: GET /categories, GET /categories/{name}, POST /classify,
GET /live, GET /ready, GET /health. When a database DSN is configured its
health is reported too and GET /published/latest lists the categories of
the last published generation.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("port") {
			cfg.Server.Port = servePort
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		doc, err := generator.LoadDocument(args[0])
		if err != nil {
			return err
		}
		art := doc.Artifact
		logger.Info("document compiled",
			slog.String("source", doc.Source),
			slog.Int("rules", art.RuleCount()),
			slog.Int("dropped", len(doc.Report.Dropped)),
		)

		ctx, cancel := signalContext()
		defer cancel()

		var (
			db        pinger
			published *rest.PublishedHandler
		)
		if cfg.Database.DSN != "" {
			pool, err := postgres.NewPool(ctx, cfg.Database)
			if err != nil {
				return err
			}
			defer pool.Close()
			db = pool
			published = rest.NewPublishedHandler(category.New(pool), logger)
		}

		router := rest.NewRouter(
			rest.NewCategoryHandler(art, compiler.NewMatcher(art), logger),
			published,
			rest.NewHealthHandler(db, app.BuildVersion(), art.RuleCount()),
			cfg.CORS,
			logger,
		)
		return app.Serve(ctx, cfg.Server, router, logger)
	},
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "listen port")
}
