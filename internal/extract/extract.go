// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package extract wires the walker, aggregator and serializer into a single
// pass over a finished build.
package extract

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/petar-djukic/depmanifest/internal/aggregate"
	"github.com/petar-djukic/depmanifest/internal/fsinfo"
	"github.com/petar-djukic/depmanifest/internal/logging"
	"github.com/petar-djukic/depmanifest/internal/render"
	"github.com/petar-djukic/depmanifest/internal/snapshot"
	"github.com/petar-djukic/depmanifest/internal/walker"
	"github.com/petar-djukic/depmanifest/pkg/types"
)

// ErrNoChecker is returned by Run when Deps carries no file checker.
var ErrNoChecker = errors.New("no file checker configured")

// Deps holds injected dependencies for the runner.
type Deps struct {
	Checker      fsinfo.Checker // Required
	ExcludeNames []string       // Basenames never emitted; nil means package.json
	AssetName    string
	Indent       string
	Logger       *slog.Logger
}

// RunResult holds the outcome of Runner.Run.
type RunResult struct {
	Asset    types.Asset
	Manifest types.Manifest
	Walk     walker.Stats
	Snapshot snapshot.Stats
}

// Runner runs one extraction per call. It keeps no state between calls.
type Runner struct {
	deps Deps
}

// NewRunner creates a Runner with the given dependencies.
func NewRunner(deps Deps) *Runner {
	if deps.Logger == nil {
		deps.Logger = logging.Discard()
	}
	if deps.AssetName == "" {
		deps.AssetName = types.DefaultAssetName
	}
	return &Runner{deps: deps}
}

// Run walks build, aggregates the edges and renders the manifest asset.
// The only error is a serialization failure.
func (r *Runner) Run(build *types.BuildResult) (*RunResult, error) {
	if r.deps.Checker == nil {
		return nil, ErrNoChecker
	}

	flattener := snapshot.NewFlattener(r.deps.Checker, r.deps.ExcludeNames, r.deps.Logger)
	agg := aggregate.New()

	// Step 1: Walk chunks and modules into the aggregator.
	walkStats := walker.New(flattener, r.deps.Logger).Walk(build, agg)

	// Step 2: Freeze the aggregated records.
	m := agg.Manifest()

	// Step 3: Serialize.
	asset, err := render.Asset(r.deps.AssetName, m, render.Options{Indent: r.deps.Indent})
	if err != nil {
		return nil, fmt.Errorf("rendering %s: %w", r.deps.AssetName, err)
	}

	snapStats := flattener.Stats()
	r.deps.Logger.Debug("dependency manifest extracted",
		"chunks", walkStats.Chunks,
		"modules", walkStats.Modules,
		"skipped_modules", walkStats.SkippedModules,
		"records", len(m),
		"edges", m.EdgeCount(),
		"excluded_files", snapStats.Excluded,
		"bytes", asset.Size(),
	)

	return &RunResult{
		Asset:    asset,
		Manifest: m,
		Walk:     walkStats,
		Snapshot: snapStats,
	}, nil
}
