// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package manifest

import (
	"fmt"
	"strings"

	"github.com/petar-djukic/depmanifest/internal/extract"
	"github.com/petar-djukic/depmanifest/internal/fsinfo"
	"github.com/petar-djukic/depmanifest/internal/logging"
	"github.com/petar-djukic/depmanifest/pkg/types"
)

const defaultStatCacheSize = fsinfo.DefaultCacheSize

// New validates the config and returns a ready-to-use Extractor.
func New(cfg Config) (Extractor, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	applyDefaults(&cfg)

	return &extractorAdapter{cfg: cfg}, nil
}

// Extract runs a one-off extraction with default settings and the given
// checker.
func Extract(build *types.BuildResult, checker FileChecker) (types.Asset, error) {
	ex, err := New(Config{Checker: checker})
	if err != nil {
		return types.Asset{}, err
	}
	res, err := ex.Extract(build)
	if err != nil {
		return types.Asset{}, err
	}
	return res.Asset, nil
}

// extractorAdapter adapts internal/extract.Runner to the public Extractor
// interface.
type extractorAdapter struct {
	cfg Config
}

func (a *extractorAdapter) Extract(build *types.BuildResult) (*Result, error) {
	var checker fsinfo.Checker = a.cfg.Checker
	var cached *fsinfo.CachedChecker
	if checker == nil {
		c, err := fsinfo.NewCachedChecker(fsinfo.NewFSChecker(a.cfg.FS), a.cfg.StatCacheSize)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
		checker, cached = c, c
	}

	runner := extract.NewRunner(extract.Deps{
		Checker:      checker,
		ExcludeNames: a.cfg.ExcludeNames,
		AssetName:    a.cfg.AssetName,
		Indent:       a.cfg.Indent,
		Logger:       a.cfg.Logger,
	})

	rr, err := runner.Run(build)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Asset:             rr.Asset,
		Manifest:          rr.Manifest,
		Chunks:            rr.Walk.Chunks,
		Modules:           rr.Walk.Modules,
		SkippedModules:    rr.Walk.SkippedModules,
		EmptyChunks:       rr.Walk.EmptyChunks,
		ExcludedFiles:     rr.Snapshot.Excluded,
		TruncatedBranches: rr.Snapshot.Revisited + rr.Snapshot.Dangling,
	}
	if cached != nil {
		res.StatCacheHits, _ = cached.Stats()
	}
	return res, nil
}

// validateConfig checks field formats.
func validateConfig(cfg Config) error {
	if strings.ContainsAny(cfg.AssetName, `/\`) || cfg.AssetName == "." || cfg.AssetName == ".." {
		return fmt.Errorf("AssetName %q must be a bare file name", cfg.AssetName)
	}
	for _, n := range cfg.ExcludeNames {
		if n == "" || strings.ContainsAny(n, `/\,`) {
			return fmt.Errorf("ExcludeNames entry %q must be a single non-empty basename", n)
		}
	}
	if strings.Trim(cfg.Indent, " \t") != "" {
		return fmt.Errorf("Indent must contain only spaces or tabs")
	}
	if cfg.StatCacheSize < 0 {
		return fmt.Errorf("StatCacheSize must not be negative")
	}
	return nil
}

// applyDefaults fills in zero-value fields with their defaults.
func applyDefaults(cfg *Config) {
	if cfg.AssetName == "" {
		cfg.AssetName = types.DefaultAssetName
	}
	if cfg.StatCacheSize == 0 {
		cfg.StatCacheSize = defaultStatCacheSize
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Discard()
	}
}
