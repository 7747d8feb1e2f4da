// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Command depmanifest writes dependency-tree.json for a finished bundling
// pass: for every output artifact, the source files that produced it.
package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const version = "0.1.0"

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd builds the command tree around its own viper instance.
func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	v := viper.New()

	rootCmd := &cobra.Command{
		Use:          "depmanifest",
		Short:        "Build-dependency manifest extractor",
		Long:         "depmanifest maps every output artifact of a bundling pass to the source files it was built from, for incremental-build orchestrators.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadConfig(v)
		},
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	// Global flags.
	rootCmd.PersistentFlags().String("config", "", "Config file (default .depmanifest.yaml in the working directory)")
	rootCmd.PersistentFlags().String("env-file", ".env", "Dotenv file loaded before reading DEPMANIFEST_* variables")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-format", "text", "Log format: text or json")

	// Bind flags to viper.
	v.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	v.BindPFlag("env-file", rootCmd.PersistentFlags().Lookup("env-file"))
	v.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))
	v.BindPFlag("log-format", rootCmd.PersistentFlags().Lookup("log-format"))

	// Env vars: DEPMANIFEST_INPUT, DEPMANIFEST_LOG_LEVEL, etc.
	v.SetEnvPrefix("DEPMANIFEST")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	// Add commands.
	rootCmd.AddCommand(newExtractCmd(v))
	rootCmd.AddCommand(newDiffCmd(v))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// loadConfig loads the dotenv file and the optional config file. Both are
// optional unless named explicitly.
func loadConfig(v *viper.Viper) error {
	if envFile := v.GetString("env-file"); envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("loading %s: %w", envFile, err)
		}
	}

	if cfgFile := v.GetString("config"); cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config %s: %w", cfgFile, err)
		}
		return nil
	}

	v.SetConfigName(".depmanifest")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("reading config: %w", err)
		}
	}
	return nil
}

// newVersionCmd creates the "version" command.
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print depmanifest version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "depmanifest %s\n", version)
		},
	}
}
