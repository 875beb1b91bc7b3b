package main

import (
	"github.com/spf13/cobra"

	"github.com/heartmarshall/amenitygen/internal/app/generator"
)

var (
	generateFormat    string
	generateNamespace string
	generatePackage   string
)

var generateCmd = &cobra.Command{
	Use:   "generate <document> [output]",
	Short: "Render the category classifier from a saved wiki page",
	Long: `Render the category classifier from a saved wiki page.

The output is replaced atomically. Formats: cpp (default), go, json, yaml.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		// CLI flags override config.
		if len(args) == 2 {
			cfg.Generate.Output = args[1]
		}
		if cmd.Flags().Changed("format") {
			cfg.Generate.Format = generateFormat
		}
		if cmd.Flags().Changed("namespace") {
			cfg.Generate.Namespace = generateNamespace
		}
		if cmd.Flags().Changed("package") {
			cfg.Generate.Package = generatePackage
		}
		if err := cfg.Validate(); err != nil {
			return err
		}

		ctx, cancel := signalContext()
		defer cancel()

		return runPipeline(ctx, generator.NewConfig(cfg, args[0]), generator.Deps{}, generator.PhaseGenerate)
	},
}

func init() {
	generateCmd.Flags().StringVarP(&generateFormat, "format", "f", "", "output format: cpp, go, json or yaml")
	generateCmd.Flags().StringVar(&generateNamespace, "namespace", "", "C++ namespace of the generated header")
	generateCmd.Flags().StringVar(&generatePackage, "package", "", "Go package of the generated source")
}
