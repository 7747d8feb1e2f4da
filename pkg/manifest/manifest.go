// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package manifest is the public entry point of depmanifest: it turns a
// finished bundling pass into a dependency-tree.json asset mapping each
// output artifact to the source files that produced it.
package manifest

import (
	"errors"
	"log/slog"

	"github.com/spf13/afero"

	"github.com/petar-djukic/depmanifest/internal/render"
	"github.com/petar-djukic/depmanifest/pkg/types"
)

// Error types for the manifest API.
var (
	ErrInvalidConfig   = errors.New("invalid config")
	ErrUnrepresentable = render.ErrUnrepresentable
)

// FileChecker reports whether a path is a regular file on disk. It must not
// fail; an uninspectable path is reported as absent.
type FileChecker interface {
	IsRegularFile(path string) bool
}

// FileCheckerFunc adapts a function to FileChecker.
type FileCheckerFunc func(path string) bool

// IsRegularFile calls f(path).
func (f FileCheckerFunc) IsRegularFile(path string) bool {
	return f(path)
}

// Config configures an Extractor.
type Config struct {
	AssetName     string       // Asset name (default dependency-tree.json)
	ExcludeNames  []string     // Basenames never emitted (default package.json)
	Indent        string       // JSON indent; empty for compact output
	Checker       FileChecker  // File check; overrides FS when set
	FS            afero.Fs     // Filesystem for the default checker (default OS)
	StatCacheSize int          // Memoised file checks per extraction (default 4096)
	Logger        *slog.Logger // Diagnostics; nil discards
}

// Result holds the outcome of one extraction.
type Result struct {
	Asset    types.Asset    // Serialized manifest, ready to emit
	Manifest types.Manifest // The records behind Asset

	Chunks            int // Chunks visited
	Modules           int // Modules visited
	SkippedModules    int // Modules without file dependencies
	EmptyChunks       int // Chunks with no output artifacts
	ExcludedFiles     int // Paths dropped as missing, non-regular or package manifests
	TruncatedBranches int // Snapshot links cut to avoid revisiting a node
	StatCacheHits     int // File checks answered from the cache
}

// Extractor computes dependency manifests. Calls must not overlap; each
// call is independent of the previous one.
type Extractor interface {
	// Extract walks build and returns the serialized manifest. The only
	// error is ErrUnrepresentable.
	Extract(build *types.BuildResult) (*Result, error)
}
