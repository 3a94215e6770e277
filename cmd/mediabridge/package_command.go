package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"mediabridge/internal/config"
	"mediabridge/internal/logging"
	"mediabridge/internal/packaging"
)

func newPackageCommand(ctx *commandContext) *cobra.Command {
	var sourceDir string
	var outputDir string
	var verbose bool

	cmd := &cobra.Command{
		Use:   "package",
		Short: "Build a distributable plugin archive",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if dir := strings.TrimSpace(sourceDir); dir != "" {
				expanded, expandErr := config.ExpandPath(dir)
				if expandErr != nil {
					return fmt.Errorf("resolve source dir: %w", expandErr)
				}
				cfg.Packaging.SourceDir = expanded
			}
			if dir := strings.TrimSpace(outputDir); dir != "" {
				expanded, expandErr := config.ExpandPath(dir)
				if expandErr != nil {
					return fmt.Errorf("resolve output dir: %w", expandErr)
				}
				cfg.Packaging.OutputDir = expanded
			}

			level := cfg.Logging.Level
			if verbose {
				level = "debug"
			}
			logger, err := logging.New(logging.Options{Level: level, Format: "console"})
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}

			builder := packaging.NewBuilder(logger, cfg)
			result, err := builder.Build(cmd.Context())
			if err != nil {
				return err
			}

			stdout := cmd.OutOrStdout()
			fmt.Fprintf(stdout, "Built plugin archive %s\n", result.ArchivePath)
			if result.Vendored {
				fmt.Fprintln(stdout, "Python dependencies vendored into deps/")
			}
			for _, entry := range result.Entries {
				fmt.Fprintf(stdout, "  %s\n", entry)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&sourceDir, "source", "", "Plugin source directory (defaults to packaging.source_dir)")
	cmd.Flags().StringVar(&outputDir, "output", "", "Archive output directory (defaults to packaging.output_dir)")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "Log packaging steps at debug level")
	return cmd
}
