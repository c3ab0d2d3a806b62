// Package main provides the nucleus-format CLI. Run from the project's
// tools/ directory, it normalizes whitespace in every C, C++ and GLSL
// source under nucleus/, resources/shaders/ and tests/unit/:
//
//   - tabs are expanded to four spaces
//   - spaces and tabs before a carriage return are removed
//
// Files are rewritten in place only when their content changes. Generated
// lexer/parser sources (*.l.cpp, *.y.cpp, *.y.hpp) are never touched.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"nucleus-format/internal/config"
	"nucleus-format/internal/reformat"
	"nucleus-format/internal/version"
)

type cliOptions struct {
	dir     string
	jobs    int
	verbose bool
}

func newRootCmd() *cobra.Command {
	opts := &cliOptions{}
	var logger *zap.Logger

	cmd := &cobra.Command{
		Use:           "nucleus-format",
		Short:         "Normalize whitespace in Nucleus source trees",
		Args:          cobra.NoArgs,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			logger, err = newLogger(opts.verbose)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := buildConfig(opts)
			if err != nil {
				return err
			}
			logger.Debug("starting pass",
				zap.String("base", cfg.BaseDir),
				zap.Strings("roots", cfg.Roots),
				zap.Int("jobs", cfg.Jobs))

			sum, err := reformat.Run(cmd.Context(), cfg, reformat.Options{Logger: logger})
			if err != nil {
				return err
			}
			logger.Info("done", zap.Int("scanned", sum.Scanned), zap.Int("rewritten", sum.Rewritten))
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")
	cmd.Flags().StringVar(&opts.dir, "dir", config.DefaultBaseDir, "project directory containing nucleus/, resources/ and tests/")
	cmd.Flags().IntVarP(&opts.jobs, "jobs", "j", 0, "files processed concurrently (0 = GOMAXPROCS)")

	cmd.AddCommand(newVersionCmd())
	return cmd
}

func buildConfig(opts *cliOptions) (config.Config, error) {
	cfg, err := config.Default(opts.dir)
	if err != nil {
		return config.Config{}, err
	}
	if opts.jobs < 0 {
		return config.Config{}, fmt.Errorf("--jobs must not be negative, got %d", opts.jobs)
	}
	if opts.jobs > 0 {
		cfg.Jobs = opts.jobs
	}
	return cfg, nil
}

func newLogger(verbose bool) (*zap.Logger, error) {
	zc := zap.NewDevelopmentConfig()
	zc.Development = false
	zc.DisableStacktrace = true
	zc.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	if verbose {
		zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return zc.Build()
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "ERROR:", err)
		os.Exit(1)
	}
}
