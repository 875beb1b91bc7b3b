// Command amenitygen turns the wiki amenity category table into a
// classifier and companion assets.
//
// Commands:
//
//	generate <document> [output]  render the category classifier
//	icons <document>              download the category icons
//	publish <document>            store the categories in PostgreSQL
//	serve <document>              run the classification preview server
//	version                       print build information
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/amenitygen/internal/app"
	"github.com/heartmarshall/amenitygen/internal/app/generator"
	"github.com/heartmarshall/amenitygen/internal/config"
)

var (
	configPath string
	dryRun     bool

	cfg    *config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "amenitygen",
	Short: "Generate an amenity classifier from the wiki category table",
	Long: `amenitygen reads the amenity category table of a rendered wiki page and
compiles its tag combinations into an ordered, first-match-wins classifier.

Rows are matched in table order. Each row becomes one category; the synthetic
"none" and "extra" categories frame the generated ones.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == versionCmd.Name() {
			return nil
		}

		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		logger = app.NewLogger(cfg.Log)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to YAML config file (default: $CONFIG_PATH or "+config.DefaultPath+")")
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "parse and compile without writing anything")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(iconsCmd)
	rootCmd.AddCommand(publishCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "amenitygen:", err)
		os.Exit(1)
	}
}

// signalContext is canceled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// runPipeline executes the given phases and turns recorded phase failures
// into a command error.
func runPipeline(ctx context.Context, pcfg generator.Config, deps generator.Deps, phases ...string) error {
	pcfg.DryRun = dryRun

	p := generator.NewPipeline(logger, pcfg, deps)
	if err := p.Run(ctx, phases); err != nil {
		return err
	}

	results := p.Results()
	names := make([]string, 0, len(results))
	for name := range results {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		r := results[name]
		if r.Err != nil {
			logger.Error("phase failed", slog.String("phase", name), slog.String("error", r.Err.Error()))
		}
	}
	if p.HasErrors() {
		return fmt.Errorf("%d of %d phases reported errors", countFailed(results), len(results))
	}
	return nil
}

func countFailed(results map[string]generator.PhaseResult) int {
	n := 0
	for _, r := range results {
		if r.Err != nil || r.Errors > 0 {
			n++
		}
	}
	return n
}
