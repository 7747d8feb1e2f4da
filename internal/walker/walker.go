// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package walker turns a finished build's chunks and modules into
// (output, source) dependency edges.
package walker

import (
	"log/slog"

	"github.com/petar-djukic/depmanifest/internal/logging"
	"github.com/petar-djukic/depmanifest/internal/snapshot"
	"github.com/petar-djukic/depmanifest/pkg/types"
)

// Sink receives the walk's output. The aggregator implements it.
type Sink interface {
	AddOutput(output string)
	Add(edge types.Edge)
}

// Stats summarises one walk.
type Stats struct {
	Chunks         int // Chunks visited
	EmptyChunks    int // Chunks with no output artifacts
	Modules        int // Modules visited
	SkippedModules int // Modules without dependency info
	Edges          int // Edges emitted, duplicates included
}

// Walker drives the snapshot flattener over every module of every chunk.
type Walker struct {
	flattener *snapshot.Flattener
	logger    *slog.Logger
}

// New returns a walker using f to resolve module dependencies.
func New(f *snapshot.Flattener, logger *slog.Logger) *Walker {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Walker{flattener: f, logger: logger}
}

// Walk visits chunks in order. Every output of a chunk is registered with
// the sink first, so outputs without sources still reach the manifest. Then,
// for each module carrying dependency info, one edge is emitted per
// (output, source) pair, primary outputs before auxiliary ones.
func (w *Walker) Walk(build *types.BuildResult, sink Sink) Stats {
	var st Stats
	if build == nil {
		return st
	}

	for _, chunk := range build.Chunks {
		st.Chunks++
		outputs := chunk.Outputs()
		if len(outputs) == 0 {
			st.EmptyChunks++
			w.logger.Warn("chunk has no output artifacts, skipping", "chunk", chunk.ID, "modules", len(chunk.Modules))
			continue
		}
		for _, out := range outputs {
			sink.AddOutput(out)
		}

		for _, mod := range chunk.Modules {
			st.Modules++
			if !mod.HasDependencyInfo() {
				st.SkippedModules++
				w.logger.Debug("module has no file dependencies", "chunk", chunk.ID, "module", mod.ID)
				continue
			}

			for _, src := range w.sources(mod) {
				for _, out := range outputs {
					sink.Add(types.Edge{Output: out, Source: src})
					st.Edges++
				}
			}
		}
	}

	return st
}

// sources resolves a module's flat list, then its snapshot tree.
func (w *Walker) sources(mod types.Module) []string {
	var files []string
	if len(mod.FileDependencies) > 0 {
		files = append(files, w.flattener.Flatten(types.NewFlatSnapshot(mod.FileDependencies))...)
	}
	if mod.Snapshot != nil {
		files = append(files, w.flattener.Flatten(mod.Snapshot)...)
	}
	return files
}
