package main

import (
	"github.com/spf13/cobra"

	"github.com/heartmarshall/amenitygen/internal/app/generator"
	"github.com/heartmarshall/amenitygen/internal/icons"
)

var (
	iconsOutput      string
	iconsBaseURL     string
	iconsOverwrite   bool
	iconsConcurrency int
)

var iconsCmd = &cobra.Command{
	Use:   "icons <document>",
	Short: "Download the SVG icon of every category",
	Long: `Download the SVG icon of every category row into a directory.

Files already present are kept unless --overwrite is given. A page without
any icon is an error.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		// CLI flags override config.
		if cmd.Flags().Changed("output") {
			cfg.Icons.Output = iconsOutput
		}
		if cmd.Flags().Changed("base-url") {
			cfg.Icons.BaseURL = iconsBaseURL
		}
		if cmd.Flags().Changed("overwrite") {
			cfg.Icons.Overwrite = iconsOverwrite
		}
		if cmd.Flags().Changed("concurrency") {
			cfg.Icons.Concurrency = iconsConcurrency
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		ctx, cancel := signalContext()
		defer cancel()

		dl := icons.NewDownloader(cfg.Icons.Timeout, cfg.Icons.Concurrency, logger)
		return runPipeline(ctx, generator.NewConfig(cfg, args[0]), generator.Deps{Icons: dl}, generator.PhaseIcons)
	},
}

func init() {
	iconsCmd.Flags().StringVarP(&iconsOutput, "output", "o", "", "directory to write icons into")
	iconsCmd.Flags().StringVar(&iconsBaseURL, "base-url", "", "base URL for relative icon links")
	iconsCmd.Flags().BoolVar(&iconsOverwrite, "overwrite", false, "replace icons that already exist")
	iconsCmd.Flags().IntVar(&iconsConcurrency, "concurrency", 0, "parallel downloads")
}
