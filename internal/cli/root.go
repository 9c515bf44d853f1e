// Package cli provides the Cobra command structure for gosfc.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gosfc/internal/configloader"
	"github.com/yaklabco/gosfc/internal/logging"
	"github.com/yaklabco/gosfc/pkg/config"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// globalFlags are the persistent flags shared by every subcommand.
type globalFlags struct {
	debug      bool
	configPath string
	color      string
	logFormat  string
}

// NewRootCommand creates the root gosfc command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	globals := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "gosfc",
		Short: "Inspect and rewrite the blocks of single file components",
		Long: `gosfc reads .vue single file components, splits them into their
<template>, <script>, <style> and custom blocks, and reports structural
problems such as missing end tags, duplicate blocks and template
expressions that do not parse.

Blocks can be replaced in place: everything outside the replaced block,
including comments and whitespace between blocks, is preserved byte for
byte.`,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			level := "warn"
			if globals.debug {
				level = "debug"
			}
			logger := logging.NewWithWriter(cmd.ErrOrStderr(), level, globals.logFormat)
			logging.SetDefault(logger)

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(logging.WithLogger(ctx, logger))
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&globals.debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&globals.configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&globals.color, "color", "auto",
		"colorize output: auto, always, never")
	rootCmd.PersistentFlags().StringVar(&globals.logFormat, "log-format", logging.FormatText,
		"log output format: text, json, logfmt")

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return errors.Join(ErrUsage, err)
	})

	rootCmd.AddCommand(newCheckCommand(globals))
	rootCmd.AddCommand(newBlocksCommand(globals))
	rootCmd.AddCommand(newSetCommand(globals))
	rootCmd.AddCommand(newConfigCommand(globals))
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	helpFormatter := NewHelpFormatter(globals.color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}

// usageArgs marks argument validation failures as usage errors.
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return errors.Join(ErrUsage, err)
		}
		return nil
	}
}

// commandContext returns the command's context, which carries the logger
// once PersistentPreRun has run.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// resolveConfig merges every configuration layer with the flags in cliCfg.
// It returns the final config and the working directory used for discovery.
func resolveConfig(ctx context.Context, globals *globalFlags, cliCfg *config.Config) (*config.Config, string, error) {
	logger := logging.FromContext(ctx)

	workDir, err := workingDir()
	if err != nil {
		return nil, "", err
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: globals.configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return nil, "", errors.Join(ErrConfig, err)
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration", logging.FieldFiles, loadResult.LoadedFrom)
	}

	cfg := loadResult.Config
	logger.Debug("configuration resolved",
		logging.FieldDisableCache, cfg.CacheDisabled(),
		logging.FieldJobs, cfg.Jobs,
		logging.FieldFormat, cfg.Format,
		logging.FieldDryRun, cfg.DryRun,
	)

	return cfg, workDir, nil
}

func workingDir() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}
	return dir, nil
}
