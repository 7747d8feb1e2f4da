// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/petar-djukic/depmanifest/internal/assetio"
	"github.com/petar-djukic/depmanifest/internal/buildgraph"
	"github.com/petar-djukic/depmanifest/internal/fsinfo"
	"github.com/petar-djukic/depmanifest/internal/logging"
	"github.com/petar-djukic/depmanifest/internal/snapshot"
	"github.com/petar-djukic/depmanifest/pkg/manifest"
	"github.com/petar-djukic/depmanifest/pkg/types"
)

// errNoInput is returned when no build graph file is configured.
var errNoInput = errors.New("--input is required")

// newExtractCmd creates the "extract" command.
func newExtractCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Write the dependency manifest for a finished build",
		Long:  "Extract loads a build graph (native JSON/YAML or an esbuild metafile), maps each output artifact to its source files and writes the manifest asset.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd, v)
		},
	}

	cmd.Flags().StringP("input", "i", "", "Build graph file (required)")
	cmd.Flags().StringP("output", "o", ".", "Directory the manifest asset is written to")
	cmd.Flags().String("format", string(buildgraph.FormatAuto), "Build graph format: auto, graph, metafile")
	cmd.Flags().String("base-dir", "", "Directory relative metafile inputs resolve against (default: the working directory)")
	cmd.Flags().String("asset-name", types.DefaultAssetName, "Manifest asset file name")
	cmd.Flags().StringSlice("exclude-names", snapshot.DefaultExcludedNames, "Basenames never listed as sources")
	cmd.Flags().Int("stat-cache-size", fsinfo.DefaultCacheSize, "Number of memoised file checks")
	cmd.Flags().String("indent", "", "Indent the JSON with this string (default compact)")
	cmd.Flags().Bool("stdout", false, "Print the manifest instead of writing it")

	for _, name := range []string{"input", "output", "format", "base-dir", "asset-name", "exclude-names", "stat-cache-size", "indent", "stdout"} {
		v.BindPFlag(name, cmd.Flags().Lookup(name))
	}

	return cmd
}

// runExtract executes the extraction and emits the asset.
func runExtract(cmd *cobra.Command, v *viper.Viper) error {
	logger, err := logging.New(v.GetString("log-level"), v.GetString("log-format"), cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	input := v.GetString("input")
	if input == "" {
		return errNoInput
	}

	format, err := buildgraph.ParseFormat(v.GetString("format"))
	if err != nil {
		return err
	}

	osFS := afero.NewOsFs()

	build, err := buildgraph.LoadFile(osFS, input, buildgraph.Options{
		Format:  format,
		BaseDir: v.GetString("base-dir"),
	})
	if err != nil {
		return err
	}
	logger.Debug("build graph loaded", "input", input, "format", format, "chunks", len(build.Chunks))

	ex, err := manifest.New(manifest.Config{
		AssetName:     v.GetString("asset-name"),
		ExcludeNames:  splitNames(v.GetStringSlice("exclude-names")),
		Indent:        v.GetString("indent"),
		FS:            osFS,
		StatCacheSize: v.GetInt("stat-cache-size"),
		Logger:        logger,
	})
	if err != nil {
		return err
	}

	res, err := ex.Extract(build)
	if err != nil {
		return fmt.Errorf("extracting manifest: %w", err)
	}

	if v.GetBool("stdout") {
		out := cmd.OutOrStdout()
		if _, err := out.Write(res.Asset.Source); err != nil {
			return err
		}
		_, err := fmt.Fprintln(out)
		return err
	}

	path, err := assetio.Write(osFS, v.GetString("output"), res.Asset)
	if err != nil {
		return err
	}

	logger.Info("dependency manifest written",
		"path", path,
		"records", len(res.Manifest),
		"edges", res.Manifest.EdgeCount(),
		"bytes", res.Asset.Size(),
		"skipped_modules", res.SkippedModules,
		"excluded_files", res.ExcludedFiles,
	)
	if res.EmptyChunks > 0 || res.TruncatedBranches > 0 {
		logger.Warn("build graph was partially malformed",
			"empty_chunks", res.EmptyChunks,
			"truncated_branches", res.TruncatedBranches,
		)
	}
	return nil
}

// splitNames normalises a name list from any config source. Flags arrive
// comma-split, but environment and .env values only split on whitespace, so
// each entry is split on commas again. Blank entries are dropped; the result
// is never nil so an explicitly empty list excludes nothing.
func splitNames(entries []string) []string {
	names := []string{}
	for _, e := range entries {
		for _, n := range strings.Split(e, ",") {
			if n = strings.TrimSpace(n); n != "" {
				names = append(names, n)
			}
		}
	}
	return names
}
